// Package client is the single choke point for talking to the social feed
// REST API.
//
// # Overview
//
// The package provides:
//  1. The Client interface consumed by the services: auth calls, post,
//     comment, like and profile resources.
//  2. HTTPClient, the concrete implementation over net/http. It holds the
//     session token in memory and mirrors it into exactly one of the
//     tab-scoped or durable stores, attaches the "Authorization: Token ..."
//     header when a token is held, sends the CSRF header read from the
//     csrftoken cookie on non-safe methods, and keeps server cookies in a
//     cookie jar.
//  3. Request, the generic call every resource wrapper goes through.
//
// # Error Handling
//
// Non-2xx responses become *Error whose Error() is the message extracted
// from the body. Transport failures wrap ErrUnavailable. Use errors.Is with
// ErrUnauthorized and ErrNotFound to branch on common statuses. A 204
// response is success with no body.
//
// # Observability
//
// Every request is a span of the "socialfeed.api" tracer and is counted in
// the optional prometheus Metrics.
package client
