package application

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/bakemart/backend/internal/domain/entity"
	"github.com/bakemart/backend/internal/domain/repository"
	"github.com/bakemart/backend/internal/notify"
)

// RatingService records a buyer's 1-5 score for a product. Uniqueness per
// (product, rater) is enforced by the storage layer's unique index.
type RatingService struct {
	Guard    *Guard
	Ratings  repository.RatingRepository
	Notifier notify.Notifier
	Logger   *logrus.Logger
}

func NewRatingService(guard *Guard, ratings repository.RatingRepository, notifier notify.Notifier, logger *logrus.Logger) *RatingService {
	return &RatingService{Guard: guard, Ratings: ratings, Notifier: notifier, Logger: logger}
}

func (s *RatingService) SubmitRating(ctx context.Context, accessToken, productID string, score int) error {
	if productID == "" {
		return fmt.Errorf("%w: product is required", ErrInvalidInput)
	}
	if score < 1 || score > 5 {
		return fmt.Errorf("%w: score must be between 1 and 5", ErrInvalidInput)
	}

	sess, err := s.Guard.Subject(ctx, accessToken)
	if err != nil {
		return err
	}

	rating := &entity.Rating{ProductID: productID, UserID: sess.SubjectID, Score: score}
	if err := s.Ratings.Create(ctx, rating); err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("product_id", productID).Error("rating insert failed")
		}
		s.Notifier.Notify(ctx, notify.Notification{
			To:          sess.Email,
			Title:       "Failed to submit rating",
			Message:     "An unexpected error occurred",
			Destructive: true,
		})
		return err
	}

	s.Notifier.Notify(ctx, notify.Notification{
		To:      sess.Email,
		Title:   "Rating submitted",
		Message: "Thank you for rating this product!",
	})
	return nil
}
