package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bakemart/backend/internal/domain/entity"
	"github.com/bakemart/backend/internal/domain/repository"
)

type OrderRepository struct {
	pool *pgxpool.Pool
}

func NewOrderRepository(pool *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{pool: pool}
}

func (r *OrderRepository) Create(ctx context.Context, o *entity.Order) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO orders (product_id, user_id, quantity, status, payment_status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`, o.ProductID, o.UserID, o.Quantity, string(o.Status), string(o.PaymentStatus))
	return row.Scan(&o.ID, &o.CreatedAt)
}

func (r *OrderRepository) ListByUser(ctx context.Context, userID string) ([]entity.Order, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT o.id, o.product_id, o.user_id, o.quantity, o.status, o.payment_status,
		       p.name, p.price, o.created_at
		FROM orders o
		JOIN products p ON p.id = o.product_id
		WHERE o.user_id = $1
		ORDER BY o.created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]entity.Order, 0)
	for rows.Next() {
		var (
			o              entity.Order
			status, paySts string
		)
		if err := rows.Scan(&o.ID, &o.ProductID, &o.UserID, &o.Quantity, &status, &paySts,
			&o.ProductName, &o.ProductPrice, &o.CreatedAt); err != nil {
			return nil, err
		}
		o.Status = entity.OrderStatus(status)
		o.PaymentStatus = entity.PaymentStatus(paySts)
		out = append(out, o)
	}
	return out, rows.Err()
}

var _ repository.OrderRepository = (*OrderRepository)(nil)
