// Package cli provides the interactive social feed command-line client.
//
// It wires configuration, the client stores, the API client, services and
// the view navigator into a REPL. On start it restores a saved session,
// resolves the current location and prints the active view: the auth
// prompt without a session, otherwise the feed, a profile or a post.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
