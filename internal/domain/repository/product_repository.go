package repository

import (
	"context"

	"github.com/bakemart/backend/internal/domain/entity"
)

// ProductRepository defines database operations on product listings.
type ProductRepository interface {
	Create(ctx context.Context, p *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	List(ctx context.Context, category string) ([]entity.Product, error)
	ListByBaker(ctx context.Context, bakerID string) ([]entity.Product, error)
	// Update is scoped to the owning baker; it affects no rows when the
	// product belongs to someone else.
	Update(ctx context.Context, p *entity.Product) error
	Delete(ctx context.Context, id, bakerID string) error
	SetImageURL(ctx context.Context, id, bakerID, url string) error
}
