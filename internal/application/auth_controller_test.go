package application_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bakemart/backend/internal/application"
	"github.com/bakemart/backend/internal/domain/entity"
	"github.com/bakemart/backend/internal/session"
)

func newController(store *stubStore, profiles *stubProfiles, rec *noteRecorder) *application.AuthController {
	guard := application.NewGuard(store)
	resolver := application.NewProfileService(guard, profiles, store, rec, testLogger())
	return application.NewAuthController(store, resolver, rec, testLogger(), application.DefaultRoutes())
}

func signInAs(sess *session.Session) func(context.Context, string, string) (*session.Session, session.TokenPair, error) {
	return func(context.Context, string, string) (*session.Session, session.TokenPair, error) {
		return sess, session.TokenPair{AccessToken: "at", RefreshToken: "rt"}, nil
	}
}

func TestLoginRoutesByRole(t *testing.T) {
	cases := []struct {
		role entity.Role
		want string
	}{
		{entity.RoleAdmin, "/admin"},
		{entity.RoleBaker, "/baker/dashboard"},
		{entity.RoleBuyer, "/products"},
		{entity.Role("something-else"), "/products"},
	}
	for _, tc := range cases {
		t.Run(string(tc.role), func(t *testing.T) {
			store := &stubStore{signInFn: signInAs(&session.Session{SubjectID: "u1", Email: "u@x.dev"})}
			profiles := &stubProfiles{getByIDFn: func(_ context.Context, id string) (*entity.Profile, error) {
				return &entity.Profile{ID: id, Role: tc.role}, nil
			}}
			ctrl := newController(store, profiles, &noteRecorder{})
			defer ctrl.Close()

			dest, pair, err := ctrl.Login(context.Background(), "u@x.dev", "secret")
			require.NoError(t, err)
			assert.Equal(t, tc.want, dest)
			assert.Equal(t, "at", pair.AccessToken)
			assert.False(t, ctrl.Loading())
			assert.Empty(t, ctrl.Err())
		})
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	store := &stubStore{signInFn: func(context.Context, string, string) (*session.Session, session.TokenPair, error) {
		return nil, session.TokenPair{}, session.ErrInvalidCredentials
	}}
	rec := &noteRecorder{}
	ctrl := newController(store, &stubProfiles{}, rec)
	defer ctrl.Close()

	_, _, err := ctrl.Login(context.Background(), "u@x.dev", "wrong")
	require.Error(t, err)
	assert.Equal(t, "Invalid email or password", ctrl.Err())
	assert.False(t, ctrl.Loading())

	n, ok := rec.last()
	require.True(t, ok)
	assert.Equal(t, "Login Failed", n.Title)
	assert.True(t, n.Destructive)
}

func TestLoginUnverifiedEmail(t *testing.T) {
	store := &stubStore{signInFn: func(context.Context, string, string) (*session.Session, session.TokenPair, error) {
		return nil, session.TokenPair{}, session.ErrEmailNotVerified
	}}
	ctrl := newController(store, &stubProfiles{}, &noteRecorder{})
	defer ctrl.Close()

	_, _, err := ctrl.Login(context.Background(), "u@x.dev", "secret")
	require.Error(t, err)
	assert.Equal(t, "Please verify your email before logging in", ctrl.Err())
}

func TestLoginExpiredSessionSignsOutDefensively(t *testing.T) {
	store := &stubStore{signInFn: func(context.Context, string, string) (*session.Session, session.TokenPair, error) {
		return nil, session.TokenPair{}, session.ErrSessionExpired
	}}
	ctrl := newController(store, &stubProfiles{}, &noteRecorder{})
	defer ctrl.Close()

	_, _, err := ctrl.Login(context.Background(), "u@x.dev", "secret")
	require.Error(t, err)
	assert.Equal(t, "Your session has expired. Please log in again.", ctrl.Err())
	assert.NotEmpty(t, store.signOuts)
}

func TestLoginProfileFailureSignsOutCompensating(t *testing.T) {
	store := &stubStore{signInFn: signInAs(&session.Session{SubjectID: "u1", Email: "u@x.dev"})}
	profiles := &stubProfiles{getByIDFn: func(context.Context, string) (*entity.Profile, error) {
		return nil, errors.New("db down")
	}}
	ctrl := newController(store, profiles, &noteRecorder{})
	defer ctrl.Close()

	_, _, err := ctrl.Login(context.Background(), "u@x.dev", "secret")
	require.ErrorIs(t, err, application.ErrProfileUnavailable)
	assert.Equal(t, "error accessing user profile", ctrl.Err())
	assert.Contains(t, store.signOuts, "u1")
	assert.False(t, ctrl.Loading())
}

func TestSignOutClearsErrorState(t *testing.T) {
	store := &stubStore{signInFn: signInAs(&session.Session{SubjectID: "u1", Email: "u@x.dev"})}
	profiles := &stubProfiles{getByIDFn: func(context.Context, string) (*entity.Profile, error) {
		return nil, errors.New("db down")
	}}
	ctrl := newController(store, profiles, &noteRecorder{})
	defer ctrl.Close()

	// The profile failure is visible once the login settles, even though the
	// compensating sign-out already fired in between.
	_, _, err := ctrl.Login(context.Background(), "u@x.dev", "secret")
	require.ErrorIs(t, err, application.ErrProfileUnavailable)
	require.NotEmpty(t, ctrl.Err())

	// Any later SIGNED_OUT clears the error state.
	require.NoError(t, store.SignOut(context.Background(), "u1"))
	assert.Empty(t, ctrl.Err())
}

func TestLoginClearsPreviousError(t *testing.T) {
	attempts := 0
	store := &stubStore{signInFn: func(context.Context, string, string) (*session.Session, session.TokenPair, error) {
		attempts++
		if attempts == 1 {
			return nil, session.TokenPair{}, session.ErrInvalidCredentials
		}
		return &session.Session{SubjectID: "u1"}, session.TokenPair{AccessToken: "at"}, nil
	}}
	profiles := &stubProfiles{getByIDFn: func(_ context.Context, id string) (*entity.Profile, error) {
		return &entity.Profile{ID: id, Role: entity.RoleBuyer}, nil
	}}
	ctrl := newController(store, profiles, &noteRecorder{})
	defer ctrl.Close()

	_, _, err := ctrl.Login(context.Background(), "u@x.dev", "wrong")
	require.Error(t, err)
	require.NotEmpty(t, ctrl.Err())

	dest, _, err := ctrl.Login(context.Background(), "u@x.dev", "right")
	require.NoError(t, err)
	assert.Equal(t, "/products", dest)
	assert.Empty(t, ctrl.Err())
}

func TestEnsureSessionSignsOutWhenStale(t *testing.T) {
	store := &stubStore{} // Current resolves nothing
	ctrl := newController(store, &stubProfiles{}, &noteRecorder{})
	defer ctrl.Close()

	sess, err := ctrl.EnsureSession(context.Background(), "stale-token")
	require.NoError(t, err)
	assert.Nil(t, sess)
	assert.Len(t, store.signOuts, 1)
}

func TestEnsureSessionReturnsLiveSession(t *testing.T) {
	live := &session.Session{SubjectID: "u1"}
	store := liveStore(live)
	ctrl := newController(store, &stubProfiles{}, &noteRecorder{})
	defer ctrl.Close()

	sess, err := ctrl.EnsureSession(context.Background(), "token")
	require.NoError(t, err)
	assert.Equal(t, live, sess)
	assert.Empty(t, store.signOuts)
}
