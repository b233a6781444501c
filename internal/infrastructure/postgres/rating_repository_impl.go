package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bakemart/backend/internal/domain/entity"
	"github.com/bakemart/backend/internal/domain/repository"
)

type RatingRepository struct {
	pool *pgxpool.Pool
}

func NewRatingRepository(pool *pgxpool.Pool) *RatingRepository {
	return &RatingRepository{pool: pool}
}

func (r *RatingRepository) Create(ctx context.Context, rt *entity.Rating) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO ratings (product_id, user_id, score)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`, rt.ProductID, rt.UserID, rt.Score)
	return row.Scan(&rt.ID, &rt.CreatedAt)
}

func (r *RatingRepository) ListByProduct(ctx context.Context, productID string) ([]entity.Rating, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, product_id, user_id, score, created_at
		FROM ratings WHERE product_id = $1 ORDER BY created_at DESC
	`, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]entity.Rating, 0)
	for rows.Next() {
		var rt entity.Rating
		if err := rows.Scan(&rt.ID, &rt.ProductID, &rt.UserID, &rt.Score, &rt.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, rt)
	}
	return out, rows.Err()
}

var _ repository.RatingRepository = (*RatingRepository)(nil)
