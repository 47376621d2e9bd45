// Package models defines the data the client exchanges with the social feed
// API and keeps in its stores.
package models

import "strconv"

// Session is the signed-in user as returned by login/register, plus the
// token. It is stored as JSON under storage.KeyCurrentUser.
type Session struct {
	UserID      int64  `json:"user_id"`
	Username    string `json:"username"`
	IsSuperuser bool   `json:"is_superuser"`
	AvatarURL   string `json:"avatar_url,omitempty"`
	Email       string `json:"email,omitempty"`
	Token       string `json:"token,omitempty"`
}

// Ref returns the session's own identity as a profile reference.
func (s *Session) Ref() ProfileRef {
	return ProfileRef{
		ID:          s.UserID,
		Username:    s.Username,
		IsSuperuser: s.IsSuperuser,
		AvatarURL:   s.AvatarURL,
		Email:       s.Email,
	}
}

// ProfileRef is a denormalized snapshot of a profile. Only ID and Username
// are guaranteed; views that need the rest fetch the canonical Profile.
type ProfileRef struct {
	ID          int64  `json:"id"`
	Username    string `json:"username"`
	IsSuperuser bool   `json:"is_superuser,omitempty"`
	AvatarURL   string `json:"avatar_url,omitempty"`
	Email       string `json:"email,omitempty"`
}

// Profile is the canonical profile resource.
type Profile struct {
	ID          int64  `json:"id"`
	User        int64  `json:"user"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	IsSuperuser bool   `json:"is_superuser"`
	AvatarURL   string `json:"avatar_url"`
}

// Ref converts a fetched profile into a reference. The user id wins over
// the profile row id; fallbackUsername fills an empty username.
func (p *Profile) Ref(fallbackUsername string) ProfileRef {
	id := p.User
	if id == 0 {
		id = p.ID
	}
	username := p.Username
	if username == "" {
		username = fallbackUsername
	}
	return ProfileRef{
		ID:          id,
		Username:    username,
		IsSuperuser: p.IsSuperuser,
		AvatarURL:   p.AvatarURL,
		Email:       p.Email,
	}
}

// UserRef is the nested author object on posts and comments.
type UserRef struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

// AuthResponse is the body of a successful register or login call.
type AuthResponse struct {
	Message     string `json:"message"`
	UserID      int64  `json:"user_id"`
	Username    string `json:"username"`
	IsSuperuser bool   `json:"is_superuser"`
	AvatarURL   string `json:"avatar_url"`
	Token       string `json:"token"`
}

// Session builds the session for the response; email is not part of the
// login/register response and is supplied by the caller when known.
func (r *AuthResponse) Session(email string) *Session {
	return &Session{
		UserID:      r.UserID,
		Username:    r.Username,
		IsSuperuser: r.IsSuperuser,
		AvatarURL:   r.AvatarURL,
		Email:       email,
		Token:       r.Token,
	}
}

func FormatID(id int64) string {
	return strconv.FormatInt(id, 10)
}
