package booking

import (
	"context"

	"ceylonescape/models"
)

// Service is the booking admission controller. It decides whether a new or
// updated booking may be accepted given existing state, leaning on the
// store's unique index rather than read-then-write checks.
type Service interface {
	Create(ctx context.Context, userID, tourID, bookingDate string) (*models.Booking, error)
	Get(ctx context.Context, id string) (*models.Booking, error)
	Update(ctx context.Context, id string, patch models.BookingUpdate) (*models.Booking, error)
	Cancel(ctx context.Context, id string) error
	List(ctx context.Context, filter models.BookingFilter) ([]models.BookingDetails, error)
}
