// Package session owns the current-authentication state: credential sign-in,
// sign-out, token refresh, and an ordered stream of auth state-change events.
// The rest of the application observes sessions through Current and the event
// stream; it never mutates session state directly.
package session

import (
	"context"
	"errors"
	"time"
)

// Session identifies an authenticated subject. There is no partial session:
// either a live one exists or Current returns nil.
type Session struct {
	SubjectID string
	Email     string
	SID       string
}

// TokenPair carries the issued access/refresh tokens and their expiries.
type TokenPair struct {
	AccessToken        string
	AccessTokenExpiry  time.Time
	RefreshToken       string
	RefreshTokenExpiry time.Time
}

type EventType string

const (
	SignedIn       EventType = "SIGNED_IN"
	SignedOut      EventType = "SIGNED_OUT"
	TokenRefreshed EventType = "TOKEN_REFRESHED"
	UserUpdated    EventType = "USER_UPDATED"
)

// Event is delivered to subscribers whenever authentication state changes.
// Session is nil for SIGNED_OUT.
type Event struct {
	Type    EventType
	Session *Session
}

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailNotVerified   = errors.New("email not verified")
	ErrSessionExpired     = errors.New("session expired")
)

// Store is the session capability consumed by the auth controller and the
// action guard.
type Store interface {
	// Current resolves a live session from an access token. It returns
	// (nil, nil) when no live session exists; expired or revoked tokens are
	// an absence, not an error.
	Current(ctx context.Context, accessToken string) (*Session, error)
	SignIn(ctx context.Context, email, password string) (*Session, TokenPair, error)
	// SignOut destroys the subject's session. It is idempotent and always
	// emits SIGNED_OUT, so callers can use it as a stale-state safety net.
	SignOut(ctx context.Context, subjectID string) error
	Refresh(ctx context.Context, refreshToken string) (*Session, TokenPair, error)
	// Subscribe registers a handler on the ordered event stream. The handle
	// must be released with Unsubscribe when the subscriber goes away.
	Subscribe(handler func(Event)) *Subscription
	// EmitUserUpdated publishes USER_UPDATED after an out-of-band change to
	// the subject's account data.
	EmitUserUpdated(s *Session)
}
