package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bakemart/backend/internal/domain/entity"
	"github.com/bakemart/backend/internal/domain/repository"
)

type ProductRepository struct {
	pool *pgxpool.Pool
}

func NewProductRepository(pool *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{pool: pool}
}

// productSelect joins the owning baker and computes the derived aggregates
// (average rating, order count) in storage, matching the view columns the
// browse and detail pages consume.
const productSelect = `
	SELECT p.id, p.name, p.price, p.description, p.image_url, p.category,
	       p.baker_id, b.full_name, b.phone,
	       COALESCE((SELECT AVG(score)::float8 FROM ratings r WHERE r.product_id = p.id), 0),
	       COALESCE((SELECT COUNT(*) FROM orders o WHERE o.product_id = p.id), 0),
	       p.created_at, p.updated_at
	FROM products p
	JOIN profiles b ON b.id = p.baker_id`

func scanProduct(row pgx.Row) (*entity.Product, error) {
	p := &entity.Product{}
	if err := row.Scan(&p.ID, &p.Name, &p.Price, &p.Description, &p.ImageURL, &p.Category,
		&p.BakerID, &p.BakerName, &p.BakerPhone, &p.AverageRating, &p.OrderCount,
		&p.CreatedAt, &p.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *ProductRepository) Create(ctx context.Context, p *entity.Product) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO products (name, price, description, image_url, category, baker_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`, p.Name, p.Price, p.Description, p.ImageURL, p.Category, p.BakerID)
	return row.Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

func (r *ProductRepository) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	return scanProduct(r.pool.QueryRow(ctx, productSelect+` WHERE p.id = $1`, id))
}

func (r *ProductRepository) List(ctx context.Context, category string) ([]entity.Product, error) {
	var (
		rows pgx.Rows
		err  error
	)
	if category != "" {
		rows, err = r.pool.Query(ctx, productSelect+` WHERE p.category = $1 ORDER BY p.created_at DESC`, category)
	} else {
		rows, err = r.pool.Query(ctx, productSelect+` ORDER BY p.created_at DESC`)
	}
	if err != nil {
		return nil, err
	}
	return collectProducts(rows)
}

func (r *ProductRepository) ListByBaker(ctx context.Context, bakerID string) ([]entity.Product, error) {
	rows, err := r.pool.Query(ctx, productSelect+` WHERE p.baker_id = $1 ORDER BY p.created_at DESC`, bakerID)
	if err != nil {
		return nil, err
	}
	return collectProducts(rows)
}

func collectProducts(rows pgx.Rows) ([]entity.Product, error) {
	defer rows.Close()
	out := make([]entity.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

func (r *ProductRepository) Update(ctx context.Context, p *entity.Product) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE products
		SET name = $1, price = $2, description = $3, category = $4, updated_at = $5
		WHERE id = $6 AND baker_id = $7
	`, p.Name, p.Price, p.Description, p.Category, time.Now(), p.ID, p.BakerID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ProductRepository) Delete(ctx context.Context, id, bakerID string) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1 AND baker_id = $2`, id, bakerID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ProductRepository) SetImageURL(ctx context.Context, id, bakerID, url string) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE products SET image_url = $1, updated_at = $2 WHERE id = $3 AND baker_id = $4
	`, url, time.Now(), id, bakerID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

var _ repository.ProductRepository = (*ProductRepository)(nil)
