// Package auth wraps the identity provider behind a narrow interface and
// carries authenticated-session state through an explicit context object
// instead of package-level globals.
package auth

import (
	"errors"
	"time"
)

var (
	// ErrInvalidCredentials is returned for a wrong email or password.
	// Deliberately one error for both, so sign-in failures don't reveal
	// which half was wrong.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrTooManyAttempts is returned when sign-in attempts for an account
	// are rate limited.
	ErrTooManyAttempts = errors.New("too many sign-in attempts, try again shortly")

	// ErrOAuthUnavailable is returned when the configured provider has no
	// OAuth backend.
	ErrOAuthUnavailable = errors.New("oauth sign-in is not available")

	// ErrNotSignedIn is returned by operations that need a session.
	ErrNotSignedIn = errors.New("not signed in")
)

// Session is an authenticated session. The UI consumes only the presence
// of a session plus the user's identifier and email for display.
type Session struct {
	Token     string
	UserID    string
	Email     string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Provider is the identity service. Implementations return collaborator
// errors as-is; nothing here retries.
type Provider interface {
	SignIn(email, password string) (Session, error)
	SignUp(email, password string, metadata map[string]string) (Session, error)
	SignOut() error
	ResetPassword(email string) error
	SignInWithOAuth(provider string) (Session, error)

	// Session returns the current session, if any.
	Session() (Session, bool)

	// OnSessionChange registers a callback fired on every sign-in and
	// sign-out, with the new session or nil. Returns an unsubscribe func.
	OnSessionChange(fn func(*Session)) func()
}
