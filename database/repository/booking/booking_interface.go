package bookingRepo

import (
	"context"
	"errors"

	"ceylonescape/models"
)

// Sentinel errors surfaced by the repository. Raw Mongo errors never cross
// this boundary.
var (
	// ErrDuplicate maps the store's unique-index violation on
	// (user_id, tour_id, booking_date).
	ErrDuplicate = errors.New("booking already exists for this user, tour and date")
	ErrNotFound  = errors.New("booking not found")
)

// BookingRepository defines the interface for booking data access.
type BookingRepository interface {
	Create(ctx context.Context, booking *models.Booking) error
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	Update(ctx context.Context, booking *models.Booking) error
	UpdateStatus(ctx context.Context, id, status string) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter models.BookingFilter) ([]models.BookingDetails, error)
}
