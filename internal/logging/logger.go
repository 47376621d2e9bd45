// Package logging is the structured logger shared by the feed client's
// transport, storage, navigation and CLI layers.
package logging

import "context"

// Logger takes a message plus alternating key/value attributes:
//
//	log.Warn(ctx, "tab store write failed", "key", "currentView", "err", err)
//
// Every call carries the caller's context so handlers can pick up trace ids.
type Logger interface {
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)

	// With binds attributes to every record the child emits,
	// e.g. log.With("component", "nav").
	With(args ...any) Logger
}

var _ Logger = (*SlogLogger)(nil)
