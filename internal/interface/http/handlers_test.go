package handlers_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bakemart/backend/internal/application"
	"github.com/bakemart/backend/internal/domain/entity"
	handlers "github.com/bakemart/backend/internal/interface/http"
	"github.com/bakemart/backend/internal/notify"
	"github.com/bakemart/backend/internal/session"
)

type fakeStore struct {
	session  *session.Session
	signOuts []string
}

func (f *fakeStore) Current(context.Context, string) (*session.Session, error) {
	return f.session, nil
}

func (f *fakeStore) SignIn(context.Context, string, string) (*session.Session, session.TokenPair, error) {
	return nil, session.TokenPair{}, session.ErrInvalidCredentials
}

func (f *fakeStore) SignOut(_ context.Context, subjectID string) error {
	f.signOuts = append(f.signOuts, subjectID)
	return nil
}

func (f *fakeStore) Refresh(context.Context, string) (*session.Session, session.TokenPair, error) {
	return nil, session.TokenPair{}, session.ErrSessionExpired
}

func (f *fakeStore) Subscribe(func(session.Event)) *session.Subscription {
	return &session.Subscription{}
}

func (f *fakeStore) EmitUserUpdated(*session.Session) {}

type fakeOrders struct {
	created []*entity.Order
}

func (f *fakeOrders) Create(_ context.Context, o *entity.Order) error {
	f.created = append(f.created, o)
	return nil
}

func (f *fakeOrders) ListByUser(context.Context, string) ([]entity.Order, error) {
	return nil, nil
}

type noopNotifier struct{}

func (noopNotifier) Notify(context.Context, notify.Notification) {}

func orderRouter(store session.Store, orders *fakeOrders) *gin.Engine {
	gin.SetMode(gin.TestMode)
	routes := application.DefaultRoutes()
	svc := application.NewOrderService(application.NewGuard(store), orders, noopNotifier{}, nil, routes)
	h := handlers.NewOrderHandler(svc, nil, routes.Login)

	r := gin.New()
	r.POST("/api/orders", h.Place)
	return r
}

func logoutRouter(store *fakeStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := handlers.NewAuthHandler(nil, nil, store, nil, "", false)

	r := gin.New()
	r.POST("/api/logout", h.Logout)
	return r
}

func TestLogoutWithStaleTokenStillSignsOut(t *testing.T) {
	store := &fakeStore{} // token no longer resolves to a session
	r := logoutRouter(store)

	req := httptest.NewRequest(http.MethodPost, "/api/logout", nil)
	req.AddCookie(&http.Cookie{Name: "access_token", Value: "rotated-away"})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	require.Len(t, store.signOuts, 1)
	assert.Equal(t, "", store.signOuts[0])
}

func TestLogoutSignsOutLiveSubject(t *testing.T) {
	store := &fakeStore{session: &session.Session{SubjectID: "u1"}}
	r := logoutRouter(store)

	req := httptest.NewRequest(http.MethodPost, "/api/logout", nil)
	req.AddCookie(&http.Cookie{Name: "access_token", Value: "token"})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	require.Len(t, store.signOuts, 1)
	assert.Equal(t, "u1", store.signOuts[0])
}

func TestPlaceOrderRedirectsWithoutSession(t *testing.T) {
	r := orderRouter(&fakeStore{}, &fakeOrders{})

	req := httptest.NewRequest(http.MethodPost, "/api/orders",
		strings.NewReader(`{"product_id":"6f1db2cb-46ba-4d18-9a34-9575c4c95d2c","quantity":1}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	// Silent redirect: no error body, just a send-to-login.
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
}

func TestPlaceOrderRejectsBadPayload(t *testing.T) {
	orders := &fakeOrders{}
	r := orderRouter(&fakeStore{session: &session.Session{SubjectID: "u1"}}, orders)

	req := httptest.NewRequest(http.MethodPost, "/api/orders",
		strings.NewReader(`{"product_id":"6f1db2cb-46ba-4d18-9a34-9575c4c95d2c","quantity":0}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, orders.created)
}

func TestPlaceOrderCreatesForLiveSession(t *testing.T) {
	orders := &fakeOrders{}
	r := orderRouter(&fakeStore{session: &session.Session{SubjectID: "u1", Email: "u@x.dev"}}, orders)

	req := httptest.NewRequest(http.MethodPost, "/api/orders",
		strings.NewReader(`{"product_id":"6f1db2cb-46ba-4d18-9a34-9575c4c95d2c","quantity":2}`))
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(&http.Cookie{Name: "access_token", Value: "token"})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	require.Len(t, orders.created, 1)
	assert.Equal(t, "u1", orders.created[0].UserID)
	assert.Contains(t, w.Body.String(), "/orders")
}
