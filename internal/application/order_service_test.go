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

func newOrderService(store *stubStore, orders *stubOrders, rec *noteRecorder) *application.OrderService {
	return application.NewOrderService(application.NewGuard(store), orders, rec, testLogger(), application.DefaultRoutes())
}

func TestPlaceOrderRejectsInvalidQuantity(t *testing.T) {
	orders := &stubOrders{}
	svc := newOrderService(liveStore(&session.Session{SubjectID: "u1"}), orders, &noteRecorder{})

	for _, qty := range []int{0, -1} {
		_, err := svc.PlaceOrder(context.Background(), "token", "p1", qty)
		assert.ErrorIs(t, err, application.ErrInvalidInput)
	}
	assert.Empty(t, orders.created, "invalid input must never reach storage")
}

func TestPlaceOrderRequiresProduct(t *testing.T) {
	svc := newOrderService(liveStore(&session.Session{SubjectID: "u1"}), &stubOrders{}, &noteRecorder{})

	_, err := svc.PlaceOrder(context.Background(), "token", "", 1)
	assert.ErrorIs(t, err, application.ErrInvalidInput)
}

func TestPlaceOrderRequiresSession(t *testing.T) {
	orders := &stubOrders{}
	rec := &noteRecorder{}
	svc := newOrderService(&stubStore{}, orders, rec)

	_, err := svc.PlaceOrder(context.Background(), "", "p1", 2)
	assert.ErrorIs(t, err, application.ErrLoginRequired)
	assert.Empty(t, orders.created)

	// A guard rejection is a redirect signal, never an error notification.
	_, notified := rec.last()
	assert.False(t, notified)
}

func TestPlaceOrderCreatesPendingOrder(t *testing.T) {
	orders := &stubOrders{}
	rec := &noteRecorder{}
	svc := newOrderService(liveStore(&session.Session{SubjectID: "u1", Email: "u@x.dev"}), orders, rec)

	dest, err := svc.PlaceOrder(context.Background(), "token", "p1", 3)
	require.NoError(t, err)
	assert.Equal(t, "/orders", dest)

	require.Len(t, orders.created, 1)
	o := orders.created[0]
	assert.Equal(t, "p1", o.ProductID)
	assert.Equal(t, "u1", o.UserID)
	assert.Equal(t, 3, o.Quantity)
	assert.Equal(t, entity.OrderPending, o.Status)
	assert.Equal(t, entity.PaymentPending, o.PaymentStatus)

	n, ok := rec.last()
	require.True(t, ok)
	assert.Equal(t, "Order placed successfully", n.Title)
	assert.False(t, n.Destructive)
}

func TestPlaceOrderNotifiesOnInsertFailure(t *testing.T) {
	orders := &stubOrders{createFn: func(context.Context, *entity.Order) error {
		return errors.New("insert failed")
	}}
	rec := &noteRecorder{}
	svc := newOrderService(liveStore(&session.Session{SubjectID: "u1", Email: "u@x.dev"}), orders, rec)

	_, err := svc.PlaceOrder(context.Background(), "token", "p1", 1)
	require.Error(t, err)

	n, ok := rec.last()
	require.True(t, ok)
	assert.Equal(t, "Failed to place order", n.Title)
	assert.Equal(t, "An unexpected error occurred", n.Message)
	assert.True(t, n.Destructive)
}
