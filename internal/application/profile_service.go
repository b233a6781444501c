package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/bakemart/backend/internal/domain/entity"
	"github.com/bakemart/backend/internal/domain/repository"
	"github.com/bakemart/backend/internal/notify"
	"github.com/bakemart/backend/internal/session"
)

var ErrProfileNotFound = errors.New("profile not found")

// ProfileService is the profile resolver plus the self-edit executor. The
// edited identity always comes from the live session, never from caller
// input, so nobody edits someone else's profile.
type ProfileService struct {
	Guard    *Guard
	Profiles repository.ProfileRepository
	Store    session.Store
	Notifier notify.Notifier
	Logger   *logrus.Logger
}

func NewProfileService(guard *Guard, profiles repository.ProfileRepository, store session.Store, notifier notify.Notifier, logger *logrus.Logger) *ProfileService {
	return &ProfileService{Guard: guard, Profiles: profiles, Store: store, Notifier: notifier, Logger: logger}
}

// Resolve fetches the profile record backing a session subject.
func (s *ProfileService) Resolve(ctx context.Context, subjectID string) (*entity.Profile, error) {
	p, err := s.Profiles.GetByID(ctx, subjectID)
	if err != nil || p == nil {
		return nil, ErrProfileNotFound
	}
	return p, nil
}

// Current returns the profile of the guarded caller.
func (s *ProfileService) Current(ctx context.Context, accessToken string) (*entity.Profile, error) {
	sess, err := s.Guard.Subject(ctx, accessToken)
	if err != nil {
		return nil, err
	}
	return s.Resolve(ctx, sess.SubjectID)
}

// UpdateProfile writes the caller's own contact fields. Full name and phone
// length are input contracts checked before submission.
func (s *ProfileService) UpdateProfile(ctx context.Context, accessToken, fullName, phone string) (*entity.Profile, error) {
	if len(fullName) < 2 {
		return nil, fmt.Errorf("%w: full name must be at least 2 characters", ErrInvalidInput)
	}
	if len(phone) < 10 {
		return nil, fmt.Errorf("%w: phone number must be at least 10 characters", ErrInvalidInput)
	}

	sess, err := s.Guard.Subject(ctx, accessToken)
	if err != nil {
		return nil, err
	}

	if err := s.Profiles.UpdateContact(ctx, sess.SubjectID, fullName, phone); err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("subject_id", sess.SubjectID).Error("profile update failed")
		}
		s.Notifier.Notify(ctx, notify.Notification{
			To:          sess.Email,
			Title:       "Failed to update profile",
			Message:     "An unexpected error occurred",
			Destructive: true,
		})
		return nil, err
	}

	s.Store.EmitUserUpdated(sess)
	s.Notifier.Notify(ctx, notify.Notification{
		To:      sess.Email,
		Title:   "Profile updated",
		Message: "Your profile has been updated successfully.",
	})
	return s.Resolve(ctx, sess.SubjectID)
}
