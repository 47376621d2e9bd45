package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/socialfeed/internal/client/models"
)

// authCall posts credentials without an Authorization header. Any stale
// token must not leak into a fresh sign-in.
func (c *HTTPClient) authCall(ctx context.Context, path string, payload any, out any, msgFn func(int, []byte) string) error {
	b, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode json: %w", err)
	}

	header := http.Header{}
	header.Set("Content-Type", "application/json")
	c.attachCSRF(header)

	resp, err := c.send(ctx, http.MethodPost, path, bytes.NewReader(b), header)
	if err != nil {
		return err
	}
	return c.decode(ctx, resp, out, msgFn)
}

// Register creates an account. If the server returns a token it is held
// for this session only.
func (c *HTTPClient) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error) {
	var res models.AuthResponse
	if err := c.authCall(ctx, "/auth/register/", req, &res, registerErrorMessage); err != nil {
		return nil, err
	}
	if res.Token != "" {
		c.SetToken(ctx, res.Token, false)
	}
	return &res, nil
}

// Login authenticates and stores the returned token according to remember.
func (c *HTTPClient) Login(ctx context.Context, req models.LoginRequest, remember bool) (*models.AuthResponse, error) {
	var res models.AuthResponse
	if err := c.authCall(ctx, "/auth/login/", req, &res, loginErrorMessage); err != nil {
		return nil, err
	}
	if res.Token != "" {
		c.SetToken(ctx, res.Token, remember)
	}
	return &res, nil
}

// Logout invalidates the server session. The local token is cleared even
// when the call fails; the error is still returned.
func (c *HTTPClient) Logout(ctx context.Context) error {
	err := c.Request(ctx, "/auth/logout/", RequestOptions{Method: http.MethodPost}, nil)
	c.ClearToken(ctx)
	if err != nil {
		c.log.Error(ctx, "logout failed", "error", err)
		return err
	}
	return nil
}
