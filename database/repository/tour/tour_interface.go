package tourRepo

import (
	"context"
	"errors"

	"ceylonescape/models"
)

var ErrNotFound = errors.New("tour not found")

// TourRepository defines the interface for tour data access.
type TourRepository interface {
	Create(ctx context.Context, tour *models.Tour) error
	GetByID(ctx context.Context, id string) (*models.Tour, error)
	GetAll(ctx context.Context) ([]models.Tour, error)
	Update(ctx context.Context, id string, input models.TourInput) (*models.Tour, error)
	Delete(ctx context.Context, id string) error

	// UpdateRatingSummary writes the derived rating fields. It is the only
	// write path for ratings_average / ratings_quantity.
	UpdateRatingSummary(ctx context.Context, id string, average float64, quantity int64) error
}
