package repository

import (
	"context"

	"github.com/bakemart/backend/internal/domain/entity"
)

// ProfileRepository defines database operations on account profiles.
type ProfileRepository interface {
	Create(ctx context.Context, p *entity.Profile) error
	GetByID(ctx context.Context, id string) (*entity.Profile, error)
	GetByEmail(ctx context.Context, email string) (*entity.Profile, error)
	// UpdateContact writes the self-editable fields only.
	UpdateContact(ctx context.Context, id, fullName, phone string) error
	// SetRole promotes an account (used by baker registration).
	SetRole(ctx context.Context, id string, role entity.Role, phone string) error
	ListByRole(ctx context.Context, role entity.Role) ([]entity.Profile, error)
	SetApproved(ctx context.Context, id string, approved bool) error
	SetBlocked(ctx context.Context, id string, blocked bool) error
}
