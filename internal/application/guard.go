package application

import (
	"context"

	"github.com/bakemart/backend/internal/session"
)

// Guard is the precondition check run before every mutating action. It
// re-verifies a live session at call time rather than trusting anything
// cached earlier, since sessions expire and get revoked between page load
// and user action.
type Guard struct {
	Store session.Store
}

func NewGuard(store session.Store) *Guard {
	return &Guard{Store: store}
}

// Subject returns the session for the presented token, or ErrLoginRequired
// when none exists. ErrLoginRequired is a redirect signal, not an error to
// report: callers send the user to the login route and stay silent.
func (g *Guard) Subject(ctx context.Context, accessToken string) (*session.Session, error) {
	sess, err := g.Store.Current(ctx, accessToken)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, ErrLoginRequired
	}
	return sess, nil
}
