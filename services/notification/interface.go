package notification

import (
	"context"

	"ceylonescape/models"
)

// Mailer delivers booking-confirmation email. Delivery failure is this
// subsystem's problem alone; the payment flow never waits on it or fails
// because of it.
type Mailer interface {
	SendBookingConfirmation(ctx context.Context, email models.BookingConfirmationEmail) error
}

// Enqueuer hands confirmation email off to the background worker so the
// webhook handler can acknowledge the provider promptly.
type Enqueuer interface {
	EnqueueBookingConfirmation(ctx context.Context, email models.BookingConfirmationEmail) error
}
