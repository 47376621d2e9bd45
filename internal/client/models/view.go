package models

// View is the top-level screen the client shows.
type View string

const (
	ViewFeed    View = "feed"
	ViewProfile View = "profile"
	ViewPost    View = "post"
	ViewAuth    View = "auth"
)

// ParseView maps a stored value back to a View, defaulting to feed.
func ParseView(s string) View {
	switch View(s) {
	case ViewProfile, ViewPost, ViewAuth:
		return View(s)
	default:
		return ViewFeed
	}
}

// AuthMode is the sub-state of ViewAuth.
type AuthMode string

const (
	AuthLogin    AuthMode = "login"
	AuthRegister AuthMode = "register"
)

// ViewState is the navigation triple persisted to the tab-scoped store.
type ViewState struct {
	Active        View
	ProfileTarget *ProfileRef
	PostTarget    string
}
