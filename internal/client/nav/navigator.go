// Package nav holds the client's view state machine: which screen is shown,
// which profile or post it targets, and how locations map to screens.
package nav

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/dmitrijs2005/socialfeed/internal/client/models"
	"github.com/dmitrijs2005/socialfeed/internal/client/storage"
	"github.com/dmitrijs2005/socialfeed/internal/logging"
	"github.com/google/uuid"
)

// Lookup fetches the canonical data behind a deep link.
type Lookup interface {
	GetProfileByUsername(ctx context.Context, username string) (*models.Profile, error)
	GetPost(ctx context.Context, id string) (*models.Post, error)
}

// Navigator owns the view state and persists it to the tab-scoped store on
// every change.
type Navigator struct {
	history History
	lookup  Lookup
	store   storage.Store
	log     logging.Logger

	mu       sync.Mutex
	state    models.ViewState
	authMode models.AuthMode
	gen      string
}

func NewNavigator(h History, lookup Lookup, tab storage.Store, log logging.Logger) *Navigator {
	return &Navigator{
		history:  h,
		lookup:   lookup,
		store:    tab,
		log:      log,
		state:    models.ViewState{Active: models.ViewFeed},
		authMode: models.AuthLogin,
		gen:      uuid.NewString(),
	}
}

// Start restores the persisted view state, resolves the current location
// and follows history changes from then on.
func (n *Navigator) Start(ctx context.Context) {
	n.restore(ctx)
	n.history.Listen(func(path string) {
		n.resolve(ctx, path)
	})
	n.resolve(ctx, n.history.Path())
}

func (n *Navigator) restore(ctx context.Context) {
	st := models.ViewState{Active: models.ViewFeed}

	if v, err := n.store.Get(ctx, storage.KeyMainView); err == nil && len(v) > 0 {
		st.Active = models.ParseView(string(v))
	}
	if v, err := n.store.Get(ctx, storage.KeyProfileUser); err == nil && len(v) > 0 {
		var ref models.ProfileRef
		if err := json.Unmarshal(v, &ref); err == nil {
			st.ProfileTarget = &ref
		}
	}
	if v, err := n.store.Get(ctx, storage.KeyPostID); err == nil && len(v) > 0 {
		st.PostTarget = string(v)
	}

	n.mu.Lock()
	n.state = st
	n.mu.Unlock()
}

// State returns a copy of the current view state.
func (n *Navigator) State() models.ViewState {
	n.mu.Lock()
	defer n.mu.Unlock()
	st := n.state
	if st.ProfileTarget != nil {
		ref := *st.ProfileTarget
		st.ProfileTarget = &ref
	}
	return st
}

// ActiveView is the screen to show. Without a session it is always
// ViewAuth, whatever the view state says.
func (n *Navigator) ActiveView(hasSession bool) models.View {
	if !hasSession {
		return models.ViewAuth
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.state.Active
}

func (n *Navigator) AuthMode() models.AuthMode {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.authMode
}

// ToggleAuthMode switches between the login and register forms.
func (n *Navigator) ToggleAuthMode() models.AuthMode {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.authMode == models.AuthLogin {
		n.authMode = models.AuthRegister
	} else {
		n.authMode = models.AuthLogin
	}
	return n.authMode
}

// Generation identifies the current state. It changes on every transition;
// a result obtained under an older generation is stale.
func (n *Navigator) Generation() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.gen
}

func (n *Navigator) IsCurrent(gen string) bool {
	return n.Generation() == gen
}

// OpenOwnProfile shows the signed-in user's profile.
func (n *Navigator) OpenOwnProfile(ctx context.Context, s *models.Session) {
	if s == nil {
		return
	}
	n.OpenProfile(ctx, s.Ref())
}

// OpenProfile shows the profile described by ref. ref may be partial; the
// profile view fetches the rest.
func (n *Navigator) OpenProfile(ctx context.Context, ref models.ProfileRef) {
	if ref.Username == "" {
		return
	}
	n.history.Push(profilePath(ref.Username))
	n.transition(ctx, func(st *models.ViewState) {
		st.Active = models.ViewProfile
		st.ProfileTarget = &ref
	})
}

func (n *Navigator) OpenPost(ctx context.Context, id string) {
	if id == "" {
		return
	}
	n.history.Push(postPath(id))
	n.transition(ctx, func(st *models.ViewState) {
		st.Active = models.ViewPost
		st.PostTarget = id
	})
}

// OpenPath pushes path and resolves it as a deep link.
func (n *Navigator) OpenPath(ctx context.Context, path string) {
	n.history.Push(path)
	n.resolve(ctx, n.history.Path())
}

// Back returns to the previous location; the history listener re-resolves
// it. It reports false at the first entry.
func (n *Navigator) Back() bool {
	return n.history.Back()
}

// OnLogin shows the feed after a successful login or registration.
func (n *Navigator) OnLogin(ctx context.Context) {
	n.transition(ctx, func(st *models.ViewState) {
		st.Active = models.ViewFeed
	})
}

// OnLogout resets to the feed with no targets and the login form.
func (n *Navigator) OnLogout(ctx context.Context) {
	if err := storage.DeleteMany(ctx, n.store, storage.KeyMainView, storage.KeyProfileUser, storage.KeyPostID); err != nil {
		n.log.Warn(ctx, "failed to clear view state", "error", err)
	}
	n.mu.Lock()
	n.authMode = models.AuthLogin
	n.mu.Unlock()
	n.transition(ctx, func(st *models.ViewState) {
		*st = models.ViewState{Active: models.ViewFeed}
	})
}

// newGeneration starts a resolve. Earlier in-flight resolves become stale.
func (n *Navigator) newGeneration() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.gen = uuid.NewString()
	return n.gen
}

// transition applies fn under a new generation and persists the result.
func (n *Navigator) transition(ctx context.Context, fn func(*models.ViewState)) {
	n.mu.Lock()
	fn(&n.state)
	n.gen = uuid.NewString()
	st := n.state
	n.mu.Unlock()

	n.persist(ctx, st)
}

// commit is transition for a resolve started under gen. It is dropped when
// another transition happened in the meantime.
func (n *Navigator) commit(ctx context.Context, gen string, fn func(*models.ViewState)) bool {
	n.mu.Lock()
	if n.gen != gen {
		n.mu.Unlock()
		n.log.Debug(ctx, "discarding stale navigation result")
		return false
	}
	fn(&n.state)
	n.gen = uuid.NewString()
	st := n.state
	n.mu.Unlock()

	n.persist(ctx, st)
	return true
}

// persist writes the triple to the tab-scoped store. Absent targets remove
// their key.
func (n *Navigator) persist(ctx context.Context, st models.ViewState) {
	values := map[string][]byte{storage.KeyMainView: []byte(st.Active)}
	var absent []string

	if st.ProfileTarget != nil {
		b, err := json.Marshal(st.ProfileTarget)
		if err != nil {
			n.log.Warn(ctx, "failed to encode profile target", "error", err)
		} else {
			values[storage.KeyProfileUser] = b
		}
	} else {
		absent = append(absent, storage.KeyProfileUser)
	}
	if st.PostTarget != "" {
		values[storage.KeyPostID] = []byte(st.PostTarget)
	} else {
		absent = append(absent, storage.KeyPostID)
	}

	if err := storage.SetMany(ctx, n.store, values); err != nil {
		n.log.Warn(ctx, "failed to persist view state", "error", err)
	}
	if err := storage.DeleteMany(ctx, n.store, absent...); err != nil {
		n.log.Warn(ctx, "failed to persist view state", "error", err)
	}
}
