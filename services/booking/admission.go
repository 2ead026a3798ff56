package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	bookingRepo "ceylonescape/database/repository/booking"
	tourRepo "ceylonescape/database/repository/tour"
	"ceylonescape/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

// DefaultBookingService implements Service.
type DefaultBookingService struct {
	Repo   bookingRepo.BookingRepository
	Tours  tourRepo.TourRepository
	Logger *zap.Logger
}

// Create validates the request and admits the booking by inserting it. The
// store's unique index is the duplicate check; a violation is translated to
// ErrDuplicateBooking. There is deliberately no existence pre-check, since a
// check-then-insert sequence is not atomic across concurrent requests.
func (s *DefaultBookingService) Create(ctx context.Context, userID, tourID, bookingDate string) (*models.Booking, error) {
	if userID == "" {
		return nil, newValidationError("userId is required")
	}
	if tourID == "" {
		return nil, newValidationError("tourId is required")
	}
	if _, err := time.Parse(dateLayout, bookingDate); err != nil {
		return nil, newValidationError("bookingDate must be a valid YYYY-MM-DD date")
	}
	if _, err := s.Tours.GetByID(ctx, tourID); err != nil {
		if errors.Is(err, tourRepo.ErrNotFound) {
			return nil, newValidationError("tour does not exist")
		}
		return nil, fmt.Errorf("failed to verify tour %s: %w", tourID, err)
	}

	b := &models.Booking{
		ID:          uuid.New().String(),
		UserID:      userID,
		TourID:      tourID,
		BookingDate: bookingDate,
		Status:      models.BookingStatusPending,
	}

	if err := s.Repo.Create(ctx, b); err != nil {
		if errors.Is(err, bookingRepo.ErrDuplicate) {
			return nil, ErrDuplicateBooking
		}
		return nil, err
	}

	s.Logger.Info("booking admitted",
		zap.String("bookingID", b.ID),
		zap.String("userID", userID),
		zap.String("tourID", tourID),
		zap.String("date", bookingDate),
	)
	return b, nil
}

// Get retrieves a booking by ID.
func (s *DefaultBookingService) Get(ctx context.Context, id string) (*models.Booking, error) {
	b, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return b, nil
}

// Update applies a patch to a booking. A date or tour change collides with
// the same unique index as creation and surfaces the identical
// ErrDuplicateBooking outcome.
func (s *DefaultBookingService) Update(ctx context.Context, id string, patch models.BookingUpdate) (*models.Booking, error) {
	b, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.TourID != nil {
		if *patch.TourID == "" {
			return nil, newValidationError("tourId must not be empty")
		}
		if _, err := s.Tours.GetByID(ctx, *patch.TourID); err != nil {
			if errors.Is(err, tourRepo.ErrNotFound) {
				return nil, newValidationError("tour does not exist")
			}
			return nil, fmt.Errorf("failed to verify tour %s: %w", *patch.TourID, err)
		}
		b.TourID = *patch.TourID
	}
	if patch.BookingDate != nil {
		if _, err := time.Parse(dateLayout, *patch.BookingDate); err != nil {
			return nil, newValidationError("bookingDate must be a valid YYYY-MM-DD date")
		}
		b.BookingDate = *patch.BookingDate
	}
	if patch.Status != nil {
		switch *patch.Status {
		case models.BookingStatusPending, models.BookingStatusConfirmed, models.BookingStatusCancelled:
			b.Status = *patch.Status
		default:
			return nil, newValidationError("status must be pending, confirmed or cancelled")
		}
	}

	if err := s.Repo.Update(ctx, b); err != nil {
		if errors.Is(err, bookingRepo.ErrDuplicate) {
			return nil, ErrDuplicateBooking
		}
		if errors.Is(err, bookingRepo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return b, nil
}

// Cancel deletes the booking so the (user, tour, date) slot becomes bookable
// again.
func (s *DefaultBookingService) Cancel(ctx context.Context, id string) error {
	if err := s.Repo.Delete(ctx, id); err != nil {
		if errors.Is(err, bookingRepo.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	s.Logger.Info("booking cancelled", zap.String("bookingID", id))
	return nil
}

// List returns bookings joined with minimal tour/user projections.
func (s *DefaultBookingService) List(ctx context.Context, filter models.BookingFilter) ([]models.BookingDetails, error) {
	return s.Repo.List(ctx, filter)
}
