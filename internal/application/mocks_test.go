package application_test

import (
	"context"
	"io"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/bakemart/backend/internal/domain/entity"
	"github.com/bakemart/backend/internal/notify"
	"github.com/bakemart/backend/internal/session"
)

func testLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// stubStore is a function-field session store. SignIn and SignOut deliver
// their events synchronously to subscribers, matching the real store's
// ordered delivery.
type stubStore struct {
	handlers []func(session.Event)

	currentFn func(ctx context.Context, token string) (*session.Session, error)
	signInFn  func(ctx context.Context, email, password string) (*session.Session, session.TokenPair, error)

	signOuts []string
	updated  []*session.Session
}

func (s *stubStore) Current(ctx context.Context, token string) (*session.Session, error) {
	if s.currentFn == nil {
		return nil, nil
	}
	return s.currentFn(ctx, token)
}

func (s *stubStore) SignIn(ctx context.Context, email, password string) (*session.Session, session.TokenPair, error) {
	if s.signInFn == nil {
		return nil, session.TokenPair{}, session.ErrInvalidCredentials
	}
	sess, pair, err := s.signInFn(ctx, email, password)
	if err == nil {
		s.emit(session.Event{Type: session.SignedIn, Session: sess})
	}
	return sess, pair, err
}

func (s *stubStore) SignOut(_ context.Context, subjectID string) error {
	s.signOuts = append(s.signOuts, subjectID)
	s.emit(session.Event{Type: session.SignedOut})
	return nil
}

func (s *stubStore) Refresh(context.Context, string) (*session.Session, session.TokenPair, error) {
	return nil, session.TokenPair{}, session.ErrSessionExpired
}

func (s *stubStore) Subscribe(h func(session.Event)) *session.Subscription {
	s.handlers = append(s.handlers, h)
	return &session.Subscription{}
}

func (s *stubStore) EmitUserUpdated(sess *session.Session) {
	s.updated = append(s.updated, sess)
	s.emit(session.Event{Type: session.UserUpdated, Session: sess})
}

func (s *stubStore) emit(e session.Event) {
	for _, h := range s.handlers {
		h(e)
	}
}

// liveStore returns a stub whose Current always resolves the given session.
func liveStore(sess *session.Session) *stubStore {
	return &stubStore{currentFn: func(context.Context, string) (*session.Session, error) {
		return sess, nil
	}}
}

type stubProfiles struct {
	createFn      func(ctx context.Context, p *entity.Profile) error
	getByIDFn     func(ctx context.Context, id string) (*entity.Profile, error)
	getByEmailFn  func(ctx context.Context, email string) (*entity.Profile, error)
	updateFn      func(ctx context.Context, id, fullName, phone string) error
	setRoleFn     func(ctx context.Context, id string, role entity.Role, phone string) error
	listFn        func(ctx context.Context, role entity.Role) ([]entity.Profile, error)
	setApprovedFn func(ctx context.Context, id string, approved bool) error
	setBlockedFn  func(ctx context.Context, id string, blocked bool) error
}

func (s *stubProfiles) Create(ctx context.Context, p *entity.Profile) error {
	if s.createFn == nil {
		p.ID = "created-id"
		return nil
	}
	return s.createFn(ctx, p)
}

func (s *stubProfiles) GetByID(ctx context.Context, id string) (*entity.Profile, error) {
	if s.getByIDFn == nil {
		return nil, nil
	}
	return s.getByIDFn(ctx, id)
}

func (s *stubProfiles) GetByEmail(ctx context.Context, email string) (*entity.Profile, error) {
	if s.getByEmailFn == nil {
		return nil, nil
	}
	return s.getByEmailFn(ctx, email)
}

func (s *stubProfiles) UpdateContact(ctx context.Context, id, fullName, phone string) error {
	if s.updateFn == nil {
		return nil
	}
	return s.updateFn(ctx, id, fullName, phone)
}

func (s *stubProfiles) SetRole(ctx context.Context, id string, role entity.Role, phone string) error {
	if s.setRoleFn == nil {
		return nil
	}
	return s.setRoleFn(ctx, id, role, phone)
}

func (s *stubProfiles) ListByRole(ctx context.Context, role entity.Role) ([]entity.Profile, error) {
	if s.listFn == nil {
		return nil, nil
	}
	return s.listFn(ctx, role)
}

func (s *stubProfiles) SetApproved(ctx context.Context, id string, approved bool) error {
	if s.setApprovedFn == nil {
		return nil
	}
	return s.setApprovedFn(ctx, id, approved)
}

func (s *stubProfiles) SetBlocked(ctx context.Context, id string, blocked bool) error {
	if s.setBlockedFn == nil {
		return nil
	}
	return s.setBlockedFn(ctx, id, blocked)
}

type stubOrders struct {
	createFn func(ctx context.Context, o *entity.Order) error
	created  []*entity.Order
}

func (s *stubOrders) Create(ctx context.Context, o *entity.Order) error {
	s.created = append(s.created, o)
	if s.createFn == nil {
		return nil
	}
	return s.createFn(ctx, o)
}

func (s *stubOrders) ListByUser(context.Context, string) ([]entity.Order, error) {
	return nil, nil
}

type stubRatings struct {
	createFn func(ctx context.Context, r *entity.Rating) error
	created  []*entity.Rating
}

func (s *stubRatings) Create(ctx context.Context, r *entity.Rating) error {
	s.created = append(s.created, r)
	if s.createFn == nil {
		return nil
	}
	return s.createFn(ctx, r)
}

func (s *stubRatings) ListByProduct(context.Context, string) ([]entity.Rating, error) {
	return nil, nil
}

// noteRecorder captures notifications for assertions.
type noteRecorder struct {
	mu    sync.Mutex
	notes []notify.Notification
}

func (r *noteRecorder) Notify(_ context.Context, n notify.Notification) {
	r.mu.Lock()
	r.notes = append(r.notes, n)
	r.mu.Unlock()
}

func (r *noteRecorder) last() (notify.Notification, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.notes) == 0 {
		return notify.Notification{}, false
	}
	return r.notes[len(r.notes)-1], true
}
