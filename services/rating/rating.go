package rating

import (
	"context"
	"fmt"
	"math"

	reviewRepo "ceylonescape/database/repository/review"
	tourRepo "ceylonescape/database/repository/tour"
	"ceylonescape/models"

	"go.uber.org/zap"
)

// Engine recomputes a tour's rating summary from its review set.
type Engine interface {
	RecomputeTourRating(ctx context.Context, tourID string) error
}

// DefaultEngine is the production implementation. It recomputes the full
// summary on every call instead of patching counters incrementally, so the
// stored aggregate can never drift from the review set.
type DefaultEngine struct {
	Reviews reviewRepo.ReviewRepository
	Tours   tourRepo.TourRepository
	Logger  *zap.Logger
}

// RecomputeTourRating aggregates the tour's current reviews and writes the
// derived summary onto the tour. A tour with no reviews gets the default
// summary {quantity: 0, average: 4.5}.
func (e *DefaultEngine) RecomputeTourRating(ctx context.Context, tourID string) error {
	count, average, err := e.Reviews.AggregateTourRating(ctx, tourID)
	if err != nil {
		return fmt.Errorf("failed to aggregate reviews for tour %s: %w", tourID, err)
	}

	if count == 0 {
		average = models.DefaultRatingsAverage
	} else {
		average = roundHalfUp(average)
	}

	if err := e.Tours.UpdateRatingSummary(ctx, tourID, average, count); err != nil {
		return fmt.Errorf("failed to write rating summary for tour %s: %w", tourID, err)
	}

	e.Logger.Debug("recomputed tour rating",
		zap.String("tourID", tourID),
		zap.Int64("quantity", count),
		zap.Float64("average", average),
	)
	return nil
}

// roundHalfUp rounds to one decimal place, ties away from zero.
func roundHalfUp(v float64) float64 {
	return math.Floor(v*10+0.5) / 10
}
