// Package services contains application services for the social feed
// client. This file defines the authentication service: register, login,
// logout and bookkeeping of the signed-in user in the client stores.
package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/socialfeed/internal/client/client"
	"github.com/dmitrijs2005/socialfeed/internal/client/models"
	"github.com/dmitrijs2005/socialfeed/internal/client/storage"
	"github.com/dmitrijs2005/socialfeed/internal/logging"
)

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - Register: create an account; the session lives in the tab-scoped store.
//   - Login: authenticate; the session goes to the durable store when
//     remember is set, to the tab-scoped store otherwise.
//   - Logout: end the session remotely and always forget it locally.
//   - CurrentSession: the stored session, or nil when signed out.
//   - UpdateAvatar: upload a new avatar and patch the stored session.
type AuthService interface {
	Register(ctx context.Context, req models.RegisterRequest) (*models.Session, error)
	Login(ctx context.Context, req models.LoginRequest, remember bool) (*models.Session, error)
	Logout(ctx context.Context) error
	CurrentSession(ctx context.Context) (*models.Session, error)
	UpdateAvatar(ctx context.Context, avatar client.FormFile) (*models.Session, error)
}

type authService struct {
	client client.Client
	stores storage.Stores
	log    logging.Logger
}

// NewAuthService constructs an AuthService bound to the given API client
// and stores.
func NewAuthService(c client.Client, stores storage.Stores, log logging.Logger) AuthService {
	return &authService{client: c, stores: stores, log: log}
}

func (a *authService) Register(ctx context.Context, req models.RegisterRequest) (*models.Session, error) {
	if err := models.Validate(req); err != nil {
		return nil, err
	}

	res, err := a.client.Register(ctx, req)
	if err != nil {
		return nil, err
	}

	s := res.Session(req.Email)
	if err := a.saveSession(ctx, s, false); err != nil {
		return nil, err
	}
	a.log.Info(ctx, "registered", "username", s.Username)
	return s, nil
}

func (a *authService) Login(ctx context.Context, req models.LoginRequest, remember bool) (*models.Session, error) {
	if err := models.Validate(req); err != nil {
		return nil, err
	}

	res, err := a.client.Login(ctx, req, remember)
	if err != nil {
		return nil, err
	}

	s := res.Session("")
	if err := a.saveSession(ctx, s, remember); err != nil {
		return nil, err
	}
	a.log.Info(ctx, "logged in", "username", s.Username, "remember", remember)
	return s, nil
}

// Logout clears the stored session from both stores even when the remote
// call fails. The remote error is returned.
func (a *authService) Logout(ctx context.Context) error {
	err := a.client.Logout(ctx)

	var errs []error
	for _, s := range []storage.Store{a.stores.Tab, a.stores.Durable} {
		errs = append(errs, s.Delete(ctx, storage.KeyCurrentUser))
	}
	if cerr := errors.Join(errs...); cerr != nil {
		a.log.Warn(ctx, "failed to clear stored user", "error", cerr)
	}
	return err
}

// CurrentSession returns the stored session, looking in the tab-scoped
// store first. It returns nil, nil when nobody is signed in.
func (a *authService) CurrentSession(ctx context.Context) (*models.Session, error) {
	s, _, err := a.loadSession(ctx)
	return s, err
}

func (a *authService) UpdateAvatar(ctx context.Context, avatar client.FormFile) (*models.Session, error) {
	s, store, err := a.loadSession(ctx)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, client.ErrUnauthorized
	}

	p, err := a.client.UpdateAvatar(ctx, avatar)
	if err != nil {
		return nil, err
	}

	s.AvatarURL = p.AvatarURL
	if err := writeSession(ctx, store, s); err != nil {
		return nil, err
	}
	return s, nil
}

// saveSession writes s to the store picked by remember and removes any copy
// from the other one.
func (a *authService) saveSession(ctx context.Context, s *models.Session, remember bool) error {
	chosen, other := a.stores.Pick(remember)
	if err := writeSession(ctx, chosen, s); err != nil {
		return err
	}
	if err := other.Delete(ctx, storage.KeyCurrentUser); err != nil {
		return fmt.Errorf("remove stale user: %w", err)
	}
	return nil
}

func writeSession(ctx context.Context, store storage.Store, s *models.Session) error {
	b, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := store.Set(ctx, storage.KeyCurrentUser, b); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (a *authService) loadSession(ctx context.Context) (*models.Session, storage.Store, error) {
	for _, store := range []storage.Store{a.stores.Tab, a.stores.Durable} {
		b, err := store.Get(ctx, storage.KeyCurrentUser)
		if err != nil {
			return nil, nil, fmt.Errorf("load session: %w", err)
		}
		if len(b) == 0 {
			continue
		}
		var s models.Session
		if err := json.Unmarshal(b, &s); err != nil {
			a.log.Warn(ctx, "discarding unreadable stored user", "error", err)
			_ = store.Delete(ctx, storage.KeyCurrentUser)
			continue
		}
		return &s, store, nil
	}
	return nil, nil, nil
}
