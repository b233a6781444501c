package application

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/bakemart/backend/internal/domain/entity"
	"github.com/bakemart/backend/internal/domain/repository"
	"github.com/bakemart/backend/internal/notify"
)

// ErrForbidden reports a non-admin caller on an admin-facing operation.
var ErrForbidden = errors.New("forbidden")

// AdminService backs the admin dashboard: listing bakers and flipping their
// approval/block flags. No optimistic updates; every toggle re-fetches the
// list so the displayed state matches storage.
type AdminService struct {
	Guard    *Guard
	Profiles repository.ProfileRepository
	Notifier notify.Notifier
	Logger   *logrus.Logger
}

func NewAdminService(guard *Guard, profiles repository.ProfileRepository, notifier notify.Notifier, logger *logrus.Logger) *AdminService {
	return &AdminService{Guard: guard, Profiles: profiles, Notifier: notifier, Logger: logger}
}

func (s *AdminService) requireAdmin(ctx context.Context, accessToken string) (*entity.Profile, error) {
	sess, err := s.Guard.Subject(ctx, accessToken)
	if err != nil {
		return nil, err
	}
	p, err := s.Profiles.GetByID(ctx, sess.SubjectID)
	if err != nil || p == nil {
		return nil, ErrProfileNotFound
	}
	if p.Role != entity.RoleAdmin {
		return nil, ErrForbidden
	}
	return p, nil
}

// ListBakers returns every baker account with its approval state.
func (s *AdminService) ListBakers(ctx context.Context, accessToken string) ([]entity.Profile, error) {
	if _, err := s.requireAdmin(ctx, accessToken); err != nil {
		return nil, err
	}
	return s.Profiles.ListByRole(ctx, entity.RoleBaker)
}

// ToggleApproval flips a baker's approval flag and returns the refreshed
// baker list. The approved baker gets a notification email.
func (s *AdminService) ToggleApproval(ctx context.Context, accessToken, bakerID string) ([]entity.Profile, error) {
	if _, err := s.requireAdmin(ctx, accessToken); err != nil {
		return nil, err
	}
	baker, err := s.Profiles.GetByID(ctx, bakerID)
	if err != nil || baker == nil {
		return nil, ErrProfileNotFound
	}

	approved := !baker.IsApproved
	if err := s.Profiles.SetApproved(ctx, bakerID, approved); err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("baker_id", bakerID).Error("approval toggle failed")
		}
		s.Notifier.Notify(ctx, notify.Notification{
			Title:       "Error",
			Message:     "Failed to update baker status",
			Destructive: true,
		})
		return nil, err
	}
	if approved {
		s.Notifier.Notify(ctx, notify.Notification{
			To:      baker.Email,
			Title:   "Your bakery has been approved",
			Message: "You can now list products on the marketplace.",
		})
	}
	return s.Profiles.ListByRole(ctx, entity.RoleBaker)
}

// ToggleBlocked flips the block flag on any profile and returns the
// refreshed baker list.
func (s *AdminService) ToggleBlocked(ctx context.Context, accessToken, profileID string) ([]entity.Profile, error) {
	if _, err := s.requireAdmin(ctx, accessToken); err != nil {
		return nil, err
	}
	target, err := s.Profiles.GetByID(ctx, profileID)
	if err != nil || target == nil {
		return nil, ErrProfileNotFound
	}

	if err := s.Profiles.SetBlocked(ctx, profileID, !target.IsBlocked); err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("profile_id", profileID).Error("block toggle failed")
		}
		s.Notifier.Notify(ctx, notify.Notification{
			Title:       "Error",
			Message:     "Failed to update account status",
			Destructive: true,
		})
		return nil, err
	}
	return s.Profiles.ListByRole(ctx, entity.RoleBaker)
}
