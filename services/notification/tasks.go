package notification

import (
	"context"
	"encoding/json"
	"fmt"

	"ceylonescape/models"

	"github.com/hibiken/asynq"
)

// TypeBookingConfirmation is the asynq task type for confirmation email.
const TypeBookingConfirmation = "email:booking_confirmation"

// NewBookingConfirmationTask builds the asynq task carrying the email payload.
func NewBookingConfirmationTask(email models.BookingConfirmationEmail) (*asynq.Task, error) {
	payload, err := json.Marshal(email)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal confirmation email payload: %w", err)
	}
	return asynq.NewTask(TypeBookingConfirmation, payload, asynq.MaxRetry(3)), nil
}

// AsynqEnqueuer implements Enqueuer on top of an asynq client.
type AsynqEnqueuer struct {
	Client *asynq.Client
}

func (e *AsynqEnqueuer) EnqueueBookingConfirmation(ctx context.Context, email models.BookingConfirmationEmail) error {
	task, err := NewBookingConfirmationTask(email)
	if err != nil {
		return err
	}
	if _, err := e.Client.EnqueueContext(ctx, task); err != nil {
		return fmt.Errorf("failed to enqueue confirmation email for booking %s: %w", email.BookingID, err)
	}
	return nil
}
