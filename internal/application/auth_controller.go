package application

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/bakemart/backend/internal/domain/entity"
	"github.com/bakemart/backend/internal/notify"
	"github.com/bakemart/backend/internal/session"
)

// ErrProfileUnavailable reports a sign-in whose subject could not be resolved
// to a profile. The controller has already signed the subject out by the time
// it is returned.
var ErrProfileUnavailable = errors.New("error accessing user profile")

// ErrLoginRequired is the guard's redirect signal: the caller should send the
// user to the login route and must not surface an error notification.
var ErrLoginRequired = errors.New("login required")

// Routes are the role landing destinations and the login redirect target.
type Routes struct {
	AdminLanding   string
	BakerDashboard string
	Browse         string
	Login          string
	Orders         string
}

func DefaultRoutes() Routes {
	return Routes{
		AdminLanding:   "/admin",
		BakerDashboard: "/baker/dashboard",
		Browse:         "/products",
		Login:          "/login",
		Orders:         "/orders",
	}
}

// ProfileResolver fetches the account profile for a session subject.
type ProfileResolver interface {
	Resolve(ctx context.Context, subjectID string) (*entity.Profile, error)
}

// AuthController owns the subscription to the session store's event stream
// for its lifetime. On SIGNED_IN it resolves the subject's profile and
// computes the role landing destination; if the profile cannot be resolved it
// issues a compensating sign-out so a subject is never left signed in but
// unroutable, and Login reports the failure once the events settle. On
// SIGNED_OUT the error state is cleared. Navigation is driven only by the
// event, not by the Login call itself.
type AuthController struct {
	Store    session.Store
	Profiles ProfileResolver
	Notifier notify.Notifier
	Logger   *logrus.Logger
	Routes   Routes

	sub *session.Subscription

	mu           sync.Mutex
	loading      bool
	errMsg       string
	destinations map[string]string // subject id -> landing computed on SIGNED_IN
}

func NewAuthController(store session.Store, profiles ProfileResolver, notifier notify.Notifier, logger *logrus.Logger, routes Routes) *AuthController {
	c := &AuthController{
		Store:        store,
		Profiles:     profiles,
		Notifier:     notifier,
		Logger:       logger,
		Routes:       routes,
		destinations: make(map[string]string),
	}
	c.sub = store.Subscribe(c.handleEvent)
	return c
}

// Close releases the event subscription. The controller must not be used
// after Close.
func (c *AuthController) Close() {
	c.sub.Unsubscribe()
}

// EnsureSession is the startup/restore check: when the presented token does
// not resolve to a live session a sign-out is issued so no stale client-side
// artifacts survive. It returns the live session, or nil.
func (c *AuthController) EnsureSession(ctx context.Context, accessToken string) (*session.Session, error) {
	sess, err := c.Store.Current(ctx, accessToken)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		_ = c.Store.SignOut(ctx, "")
		return nil, nil
	}
	return sess, nil
}

func (c *AuthController) handleEvent(e session.Event) {
	switch e.Type {
	case session.SignedIn:
		if e.Session != nil {
			c.onSignedIn(e.Session)
		}
	case session.SignedOut:
		c.mu.Lock()
		c.errMsg = ""
		c.mu.Unlock()
	case session.TokenRefreshed, session.UserUpdated:
		// no routing consequence
	}
}

func (c *AuthController) onSignedIn(sess *session.Session) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	p, err := c.Profiles.Resolve(ctx, sess.SubjectID)
	if err != nil || p == nil {
		if c.Logger != nil {
			c.Logger.WithError(err).WithField("subject_id", sess.SubjectID).Error("profile resolution failed after sign-in")
		}
		c.mu.Lock()
		delete(c.destinations, sess.SubjectID)
		c.mu.Unlock()
		// Compensating action: a subject whose identity cannot be resolved
		// must not be routed into a dashboard. The SIGNED_OUT this publishes
		// wipes the error state, so Login records the failure afterwards.
		_ = c.Store.SignOut(ctx, sess.SubjectID)
		return
	}

	dest := c.DestinationFor(p.Role)
	c.mu.Lock()
	c.destinations[sess.SubjectID] = dest
	c.mu.Unlock()
}

// DestinationFor maps a role onto its landing destination. The enum is
// closed; anything that is not admin or baker browses products.
func (c *AuthController) DestinationFor(role entity.Role) string {
	switch role {
	case entity.RoleAdmin:
		return c.Routes.AdminLanding
	case entity.RoleBaker:
		return c.Routes.BakerDashboard
	default:
		return c.Routes.Browse
	}
}

// Login signs the subject in with credentials and returns the landing
// destination computed by the SIGNED_IN event handling. Loading is reset on
// every path out.
func (c *AuthController) Login(ctx context.Context, email, password string) (string, session.TokenPair, error) {
	c.mu.Lock()
	c.loading = true
	c.errMsg = ""
	c.mu.Unlock()
	defer func() {
		c.mu.Lock()
		c.loading = false
		c.mu.Unlock()
	}()

	sess, pair, err := c.Store.SignIn(ctx, email, password)
	if err != nil {
		msg := loginErrorMessage(err)
		if errors.Is(err, session.ErrSessionExpired) {
			_ = c.Store.SignOut(ctx, "")
		}
		c.mu.Lock()
		c.errMsg = msg
		c.mu.Unlock()
		if c.Notifier != nil {
			c.Notifier.Notify(ctx, notify.Notification{Title: "Login Failed", Message: msg, Destructive: true})
		}
		return "", session.TokenPair{}, err
	}

	// The event stream delivered SIGNED_IN synchronously during SignIn, so
	// either a destination is recorded or the profile resolution failed and
	// the compensating sign-out has already run.
	c.mu.Lock()
	dest, ok := c.destinations[sess.SubjectID]
	if ok {
		delete(c.destinations, sess.SubjectID)
	}
	if !ok {
		// Profile resolution failed and the compensating sign-out already
		// ran, clearing the error state with it; record the failure only now
		// that the event cascade has settled.
		c.errMsg = ErrProfileUnavailable.Error()
	}
	c.mu.Unlock()
	if !ok {
		return "", session.TokenPair{}, ErrProfileUnavailable
	}
	return dest, pair, nil
}

// Loading reports whether a login call is in flight.
func (c *AuthController) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// Err returns the current error state; empty when there is none.
func (c *AuthController) Err() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.errMsg
}

func loginErrorMessage(err error) string {
	switch {
	case errors.Is(err, session.ErrInvalidCredentials):
		return "Invalid email or password"
	case errors.Is(err, session.ErrEmailNotVerified):
		return "Please verify your email before logging in"
	case errors.Is(err, session.ErrSessionExpired):
		return "Your session has expired. Please log in again."
	default:
		return err.Error()
	}
}
