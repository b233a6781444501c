package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/bakemart/backend/internal/domain/entity"
	"github.com/bakemart/backend/internal/domain/repository"
	"github.com/bakemart/backend/internal/notify"
)

// ErrInvalidInput wraps input-contract violations checked before any write.
var ErrInvalidInput = errors.New("invalid input")

// OrderService places orders on behalf of the current buyer. One guarded
// write per call; orders are always created pending/pending, transitions out
// of pending belong to fulfillment.
type OrderService struct {
	Guard    *Guard
	Orders   repository.OrderRepository
	Notifier notify.Notifier
	Logger   *logrus.Logger
	Routes   Routes
}

func NewOrderService(guard *Guard, orders repository.OrderRepository, notifier notify.Notifier, logger *logrus.Logger, routes Routes) *OrderService {
	return &OrderService{Guard: guard, Orders: orders, Notifier: notifier, Logger: logger, Routes: routes}
}

// PlaceOrder writes one pending order and returns the order-list destination
// to land on. A guard rejection propagates as ErrLoginRequired with no
// notification; any other failure notifies destructively.
func (s *OrderService) PlaceOrder(ctx context.Context, accessToken, productID string, quantity int) (string, error) {
	if productID == "" {
		return "", fmt.Errorf("%w: product is required", ErrInvalidInput)
	}
	if quantity < 1 {
		return "", fmt.Errorf("%w: quantity must be at least 1", ErrInvalidInput)
	}

	sess, err := s.Guard.Subject(ctx, accessToken)
	if err != nil {
		return "", err
	}

	order := &entity.Order{
		ProductID:     productID,
		UserID:        sess.SubjectID,
		Quantity:      quantity,
		Status:        entity.OrderPending,
		PaymentStatus: entity.PaymentPending,
	}
	if err := s.Orders.Create(ctx, order); err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("product_id", productID).Error("order insert failed")
		}
		s.Notifier.Notify(ctx, notify.Notification{
			To:          sess.Email,
			Title:       "Failed to place order",
			Message:     "An unexpected error occurred",
			Destructive: true,
		})
		return "", err
	}

	s.Notifier.Notify(ctx, notify.Notification{
		To:      sess.Email,
		Title:   "Order placed successfully",
		Message: "Your order has been placed and is pending payment.",
	})
	return s.Routes.Orders, nil
}

// ListOrders returns the current buyer's orders, newest first.
func (s *OrderService) ListOrders(ctx context.Context, accessToken string) ([]entity.Order, error) {
	sess, err := s.Guard.Subject(ctx, accessToken)
	if err != nil {
		return nil, err
	}
	return s.Orders.ListByUser(ctx, sess.SubjectID)
}
