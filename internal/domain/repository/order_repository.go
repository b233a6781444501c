package repository

import (
	"context"

	"github.com/bakemart/backend/internal/domain/entity"
)

// OrderRepository defines database operations on orders.
type OrderRepository interface {
	Create(ctx context.Context, o *entity.Order) error
	ListByUser(ctx context.Context, userID string) ([]entity.Order, error)
}

// RatingRepository defines database operations on product ratings.
type RatingRepository interface {
	Create(ctx context.Context, r *entity.Rating) error
	ListByProduct(ctx context.Context, productID string) ([]entity.Rating, error)
}
