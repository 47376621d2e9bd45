// Package common contains wire-level constants shared by the API client and
// its tests.
package common

const (
	// AuthHeaderName carries the session token as "Token <value>".
	AuthHeaderName = "Authorization"
	// AuthScheme prefixes the token value in AuthHeaderName.
	AuthScheme = "Token"

	// CSRFHeaderName is sent on every non-safe request.
	CSRFHeaderName = "X-CSRFToken"
	// CSRFCookieName is the cookie the CSRF header value is read from.
	CSRFCookieName = "csrftoken"
)
