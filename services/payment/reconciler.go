package payment

import (
	"context"
	"encoding/json"
	"fmt"

	bookingRepo "ceylonescape/database/repository/booking"
	paymentRepo "ceylonescape/database/repository/payment"
	userRepo "ceylonescape/database/repository/user"
	"ceylonescape/models"
	"ceylonescape/services/notification"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/webhook"
	"go.uber.org/zap"
)

// checkoutCompletedEvent is the provider event that settles a session.
const checkoutCompletedEvent = "checkout.session.completed"

// DefaultPaymentService implements Service.
type DefaultPaymentService struct {
	Checkout CheckoutClient
	Sessions paymentRepo.PaymentSessionRepository
	Bookings bookingRepo.BookingRepository
	Users    userRepo.UserRepository
	Notifier notification.Enqueuer

	WebhookSecret string
	SuccessURL    string
	CancelURL     string
	Logger        *zap.Logger
}

// HandleWebhook verifies and applies a provider webhook. Verification runs
// over the raw payload bytes before anything is interpreted; the provider's
// signature covers exact bytes, not a re-serialized object. A forged event
// therefore never reaches the apply step.
func (s *DefaultPaymentService) HandleWebhook(ctx context.Context, payload []byte, sigHeader string) error {
	event, err := webhook.ConstructEvent(payload, sigHeader, s.WebhookSecret)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSignatureInvalid, err)
	}

	if string(event.Type) != checkoutCompletedEvent {
		s.Logger.Debug("ignoring webhook event", zap.String("type", string(event.Type)))
		return nil
	}

	var sess stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
		return fmt.Errorf("failed to parse checkout session event: %w", err)
	}

	fallback := models.PaymentSession{
		BookingID: sess.Metadata["booking_id"],
		Amount:    sess.AmountTotal,
		Currency:  string(sess.Currency),
	}
	record, first, err := s.Sessions.Complete(ctx, sess.ID, fallback)
	if err != nil {
		return fmt.Errorf("failed to apply completion for session %s: %w", sess.ID, err)
	}
	if !first {
		// Replayed delivery: the completion was already applied, converge
		// without repeating downstream effects.
		s.Logger.Info("duplicate webhook delivery ignored", zap.String("sessionID", sess.ID))
		return nil
	}

	s.Logger.Info("payment received",
		zap.String("sessionID", sess.ID),
		zap.String("bookingID", record.BookingID),
		zap.Int64("amount", record.Amount),
	)

	s.settleBooking(ctx, record)
	return nil
}

// settleBooking runs the downstream effects of a first-time completion:
// confirm the correlated booking and queue the confirmation email. The
// completion is already recorded at this point, so failures here are logged
// and never fail the webhook response.
func (s *DefaultPaymentService) settleBooking(ctx context.Context, record *models.PaymentSession) {
	if record.BookingID == "" {
		s.Logger.Warn("completed session has no booking correlation",
			zap.String("sessionID", record.SessionID))
		return
	}

	if err := s.Bookings.UpdateStatus(ctx, record.BookingID, models.BookingStatusConfirmed); err != nil {
		s.Logger.Error("failed to confirm booking after payment",
			zap.String("bookingID", record.BookingID),
			zap.String("sessionID", record.SessionID),
			zap.Error(err))
		return
	}

	b, err := s.Bookings.GetByID(ctx, record.BookingID)
	if err != nil {
		s.Logger.Error("failed to load booking for confirmation email",
			zap.String("bookingID", record.BookingID), zap.Error(err))
		return
	}
	u, err := s.Users.GetByID(ctx, b.UserID)
	if err != nil {
		s.Logger.Error("failed to load user for confirmation email",
			zap.String("userID", b.UserID), zap.Error(err))
		return
	}

	email := models.BookingConfirmationEmail{
		To:        u.Email,
		BookingID: record.BookingID,
		SessionID: record.SessionID,
	}
	if err := s.Notifier.EnqueueBookingConfirmation(ctx, email); err != nil {
		s.Logger.Error("failed to enqueue confirmation email",
			zap.String("bookingID", record.BookingID), zap.Error(err))
	}
}
