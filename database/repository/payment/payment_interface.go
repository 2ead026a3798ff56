package paymentRepo

import (
	"context"
	"errors"

	"ceylonescape/models"
)

var ErrNotFound = errors.New("payment session not found")

// PaymentSessionRepository defines the interface for payment session data
// access.
type PaymentSessionRepository interface {
	Create(ctx context.Context, session *models.PaymentSession) error
	GetBySessionID(ctx context.Context, sessionID string) (*models.PaymentSession, error)

	// Complete transitions a session from "created" to "completed" exactly
	// once. It reports first=true only for the call that performed the
	// transition; replays and races observe first=false with the stored
	// session. A session this instance never recorded (created elsewhere) is
	// upserted as completed so later replays still deduplicate.
	Complete(ctx context.Context, sessionID string, fallback models.PaymentSession) (session *models.PaymentSession, first bool, err error)
}
