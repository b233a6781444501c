package application_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bakemart/backend/internal/application"
	"github.com/bakemart/backend/internal/session"
)

func TestGuardRejectsMissingSession(t *testing.T) {
	guard := application.NewGuard(&stubStore{})

	_, err := guard.Subject(context.Background(), "")
	assert.ErrorIs(t, err, application.ErrLoginRequired)
}

func TestGuardRejectsExpiredSession(t *testing.T) {
	// An expired token resolves to no session, not to an error.
	store := &stubStore{currentFn: func(context.Context, string) (*session.Session, error) {
		return nil, nil
	}}
	guard := application.NewGuard(store)

	_, err := guard.Subject(context.Background(), "expired-token")
	assert.ErrorIs(t, err, application.ErrLoginRequired)
}

func TestGuardRejectsEveryCallWithoutSession(t *testing.T) {
	// Two mutating actions in immediate succession each hit the store and
	// each come back as a redirect; nothing is cached between calls.
	calls := 0
	store := &stubStore{currentFn: func(context.Context, string) (*session.Session, error) {
		calls++
		return nil, nil
	}}
	guard := application.NewGuard(store)

	for i := 0; i < 2; i++ {
		_, err := guard.Subject(context.Background(), "gone-token")
		assert.ErrorIs(t, err, application.ErrLoginRequired)
	}
	assert.Equal(t, 2, calls)
}

func TestGuardReturnsLiveSession(t *testing.T) {
	live := &session.Session{SubjectID: "u1", Email: "u@x.dev"}
	guard := application.NewGuard(liveStore(live))

	sess, err := guard.Subject(context.Background(), "token")
	require.NoError(t, err)
	assert.Equal(t, live, sess)
}

func TestGuardPropagatesStoreError(t *testing.T) {
	boom := errors.New("redis unavailable")
	store := &stubStore{currentFn: func(context.Context, string) (*session.Session, error) {
		return nil, boom
	}}
	guard := application.NewGuard(store)

	_, err := guard.Subject(context.Background(), "token")
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, application.ErrLoginRequired)
}
