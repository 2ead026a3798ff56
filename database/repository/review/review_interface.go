package reviewRepo

import (
	"context"
	"errors"

	"ceylonescape/models"
)

var ErrNotFound = errors.New("review not found")

// ReviewRepository defines the interface for review data access.
type ReviewRepository interface {
	Create(ctx context.Context, review *models.Review) error
	GetByID(ctx context.Context, id string) (*models.Review, error)
	Update(ctx context.Context, review *models.Review) error
	Delete(ctx context.Context, id string) error
	ListByTour(ctx context.Context, tourID string) ([]models.Review, error)

	// AggregateTourRating computes count and mean rating over the current
	// review set of a tour. Returns (0, 0, nil) when the tour has no reviews.
	AggregateTourRating(ctx context.Context, tourID string) (count int64, average float64, err error)
}
