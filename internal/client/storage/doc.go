// Package storage holds the two key/value stores the client persists session
// and view state into.
//
// The tab-scoped store lives as long as the running client process and is
// backed by an in-memory Badger instance. The durable store survives
// restarts and is a SQLite file with a single metadata table. Both satisfy
// Store; SafeStore wraps either one so that a failing call falls back to
// memory instead of surfacing an error. The backend is retried on every call.
package storage
