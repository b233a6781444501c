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

// ErrNotFound is returned when a row does not exist or an ownership-scoped
// write affects no rows.
var ErrNotFound = errors.New("not found")

type ProfileRepository struct {
	pool *pgxpool.Pool
}

func NewProfileRepository(pool *pgxpool.Pool) *ProfileRepository {
	return &ProfileRepository{pool: pool}
}

const profileColumns = `id, email, password_hash, full_name, phone, role, is_verified, is_approved, is_blocked, created_at, updated_at`

func scanProfile(row pgx.Row) (*entity.Profile, error) {
	p := &entity.Profile{}
	var role string
	if err := row.Scan(&p.ID, &p.Email, &p.Password, &p.FullName, &p.Phone, &role,
		&p.IsVerified, &p.IsApproved, &p.IsBlocked, &p.CreatedAt, &p.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	p.Role = entity.ParseRole(role)
	return p, nil
}

func (r *ProfileRepository) Create(ctx context.Context, p *entity.Profile) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO profiles (email, password_hash, full_name, phone, role)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`, p.Email, p.Password, p.FullName, p.Phone, string(p.Role))
	return row.Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

func (r *ProfileRepository) GetByID(ctx context.Context, id string) (*entity.Profile, error) {
	return scanProfile(r.pool.QueryRow(ctx, `
		SELECT `+profileColumns+` FROM profiles WHERE id = $1
	`, id))
}

func (r *ProfileRepository) GetByEmail(ctx context.Context, email string) (*entity.Profile, error) {
	return scanProfile(r.pool.QueryRow(ctx, `
		SELECT `+profileColumns+` FROM profiles WHERE email = $1
	`, email))
}

func (r *ProfileRepository) UpdateContact(ctx context.Context, id, fullName, phone string) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE profiles SET full_name = $1, phone = $2, updated_at = $3 WHERE id = $4
	`, fullName, phone, time.Now(), id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ProfileRepository) SetRole(ctx context.Context, id string, role entity.Role, phone string) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE profiles SET role = $1, phone = $2, updated_at = $3 WHERE id = $4
	`, string(role), phone, time.Now(), id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ProfileRepository) ListByRole(ctx context.Context, role entity.Role) ([]entity.Profile, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+profileColumns+` FROM profiles WHERE role = $1 ORDER BY created_at
	`, string(role))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]entity.Profile, 0)
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

func (r *ProfileRepository) SetApproved(ctx context.Context, id string, approved bool) error {
	return r.setFlag(ctx, "is_approved", id, approved)
}

func (r *ProfileRepository) SetBlocked(ctx context.Context, id string, blocked bool) error {
	return r.setFlag(ctx, "is_blocked", id, blocked)
}

func (r *ProfileRepository) setFlag(ctx context.Context, column, id string, v bool) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE profiles SET `+column+` = $1, updated_at = $2 WHERE id = $3
	`, v, time.Now(), id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

var _ repository.ProfileRepository = (*ProfileRepository)(nil)
