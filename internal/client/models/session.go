package models

import (
	"time"

	"github.com/dmitrijs2005/devfolio/internal/timex"
)

// Credentials is the login form.
type Credentials struct {
	EmailOrUsername string `json:"emailOrUsername"`
	Password        string `json:"password"`
	RememberMe      bool   `json:"rememberMe,omitempty"`
}

// Registration is the sign-up form. ConfirmPassword is checked locally and
// sent along for the backend's own validation.
type Registration struct {
	Username        string `json:"username"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	FirstName       string `json:"firstName,omitempty"`
	LastName        string `json:"lastName,omitempty"`
	Role            Role   `json:"role,omitempty"`
}

// Token is the persisted bearer token with its refresh companion.
type Token struct {
	Token        string     `json:"token"`
	RefreshToken string     `json:"refreshToken,omitempty"`
	ExpiresAt    timex.Time `json:"expiresAt,omitempty"`
}

// Session is the authenticated state: token plus user.
type Session struct {
	User         *User      `json:"user"`
	Token        string     `json:"token"`
	RefreshToken string     `json:"refreshToken,omitempty"`
	ExpiresAt    timex.Time `json:"expiresAt,omitempty"`
}

// IsAuthenticated reports whether both a user and a token are present.
func (s *Session) IsAuthenticated() bool {
	return s != nil && s.User != nil && s.Token != ""
}

// Expired reports whether a known expiry lies before now.
func (s *Session) Expired(now time.Time) bool {
	return s != nil && !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt.Time)
}

// TokenPart returns the persisted token record of the session.
func (s *Session) TokenPart() Token {
	return Token{Token: s.Token, RefreshToken: s.RefreshToken, ExpiresAt: s.ExpiresAt}
}
