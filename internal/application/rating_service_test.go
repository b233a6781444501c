package application_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bakemart/backend/internal/application"
	"github.com/bakemart/backend/internal/session"
)

func newRatingService(store *stubStore, ratings *stubRatings, rec *noteRecorder) *application.RatingService {
	return application.NewRatingService(application.NewGuard(store), ratings, rec, testLogger())
}

func TestSubmitRatingRejectsOutOfRangeScores(t *testing.T) {
	ratings := &stubRatings{}
	svc := newRatingService(liveStore(&session.Session{SubjectID: "u1"}), ratings, &noteRecorder{})

	for _, score := range []int{0, -3, 6, 100} {
		err := svc.SubmitRating(context.Background(), "token", "p1", score)
		assert.ErrorIs(t, err, application.ErrInvalidInput, "score %d", score)
	}
	assert.Empty(t, ratings.created)
}

func TestSubmitRatingRequiresSession(t *testing.T) {
	ratings := &stubRatings{}
	svc := newRatingService(&stubStore{}, ratings, &noteRecorder{})

	err := svc.SubmitRating(context.Background(), "", "p1", 4)
	assert.ErrorIs(t, err, application.ErrLoginRequired)
	assert.Empty(t, ratings.created)
}

func TestSubmitRatingRecordsScore(t *testing.T) {
	ratings := &stubRatings{}
	rec := &noteRecorder{}
	svc := newRatingService(liveStore(&session.Session{SubjectID: "u1", Email: "u@x.dev"}), ratings, rec)

	err := svc.SubmitRating(context.Background(), "token", "p1", 5)
	require.NoError(t, err)

	require.Len(t, ratings.created, 1)
	assert.Equal(t, "p1", ratings.created[0].ProductID)
	assert.Equal(t, "u1", ratings.created[0].UserID)
	assert.Equal(t, 5, ratings.created[0].Score)

	n, ok := rec.last()
	require.True(t, ok)
	assert.Equal(t, "Rating submitted", n.Title)
}
