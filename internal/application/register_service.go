package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/bakemart/backend/internal/domain/entity"
	"github.com/bakemart/backend/internal/domain/repository"
	"github.com/bakemart/backend/internal/notify"
	"github.com/bakemart/backend/pkg/helpers"
)

var ErrEmailTaken = errors.New("email already registered")

// RegisterService creates accounts. Baker registration is a sign-up followed
// by a role promotion carrying the contact phone, mirroring how a baker
// account differs from a buyer account only in its profile record.
type RegisterService struct {
	Profiles repository.ProfileRepository
	Notifier notify.Notifier
	Logger   *logrus.Logger
}

func NewRegisterService(profiles repository.ProfileRepository, notifier notify.Notifier, logger *logrus.Logger) *RegisterService {
	return &RegisterService{Profiles: profiles, Notifier: notifier, Logger: logger}
}

type RegisterInput struct {
	Email    string
	Password string
	FullName string
	Phone    string // required for bakers
}

func (s *RegisterService) RegisterBuyer(ctx context.Context, in RegisterInput) (*entity.Profile, error) {
	return s.register(ctx, in, entity.RoleBuyer)
}

func (s *RegisterService) RegisterBaker(ctx context.Context, in RegisterInput) (*entity.Profile, error) {
	if len(in.Phone) < 10 {
		return nil, fmt.Errorf("%w: phone number must be at least 10 characters", ErrInvalidInput)
	}
	p, err := s.register(ctx, in, entity.RoleBuyer)
	if err != nil {
		return nil, err
	}
	// Promotion is a separate write, as in the sign-up flow this mirrors:
	// the account exists first, then the baker role and phone are set.
	if err := s.Profiles.SetRole(ctx, p.ID, entity.RoleBaker, in.Phone); err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("profile_id", p.ID).Error("baker promotion failed")
		}
		s.Notifier.Notify(ctx, notify.Notification{
			To:          p.Email,
			Title:       "Profile update failed",
			Message:     "Failed to set baker role. Please contact support.",
			Destructive: true,
		})
		return nil, err
	}
	p.Role = entity.RoleBaker
	p.Phone = in.Phone

	s.Notifier.Notify(ctx, notify.Notification{
		To:      p.Email,
		Title:   "Registration successful!",
		Message: "Your bakery account is pending admin approval.",
	})
	return p, nil
}

func (s *RegisterService) register(ctx context.Context, in RegisterInput, role entity.Role) (*entity.Profile, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", ErrInvalidInput)
	}
	if len(in.Password) < 6 {
		return nil, fmt.Errorf("%w: password must be at least 6 characters", ErrInvalidInput)
	}
	if len(in.FullName) < 2 {
		return nil, fmt.Errorf("%w: full name must be at least 2 characters", ErrInvalidInput)
	}

	if existing, _ := s.Profiles.GetByEmail(ctx, email); existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	p := &entity.Profile{
		Email:    email,
		Password: hash,
		FullName: in.FullName,
		Phone:    in.Phone,
		Role:     role,
	}
	if err := s.Profiles.Create(ctx, p); err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("email", email).Error("profile insert failed")
		}
		return nil, err
	}
	p.Role = role
	return p, nil
}
