package payment

import (
	"context"
	"fmt"

	"ceylonescape/models"

	"github.com/stripe/stripe-go/v76"
	"go.uber.org/zap"
)

// minimumChargeAmount is the smallest chargeable amount in minor units.
const minimumChargeAmount = 100

// CreateCheckoutSession validates the request, opens a Stripe Checkout
// session, and records it locally with status "created". The booking ID, when
// provided, travels both in the local record and in the session metadata so
// the webhook can correlate the completion back to the booking.
func (s *DefaultPaymentService) CreateCheckoutSession(ctx context.Context, req models.CheckoutRequest) (string, error) {
	if req.Name == "" {
		return "", newValidationError("name", "Name is required")
	}
	if req.Amount < minimumChargeAmount {
		return "", newValidationError("amount", "Amount must be at least 100 (i.e. $1.00)")
	}

	params := &stripe.CheckoutSessionParams{
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String(string(stripe.CurrencyUSD)),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(req.Name),
					},
					UnitAmount: stripe.Int64(req.Amount),
				},
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL: stripe.String(s.SuccessURL),
		CancelURL:  stripe.String(s.CancelURL),
	}
	if req.BookingID != "" {
		params.AddMetadata("booking_id", req.BookingID)
	}

	sess, err := s.Checkout.NewSession(params)
	if err != nil {
		return "", fmt.Errorf("failed to create checkout session: %w", err)
	}

	record := &models.PaymentSession{
		SessionID: sess.ID,
		BookingID: req.BookingID,
		Amount:    req.Amount,
		Currency:  string(stripe.CurrencyUSD),
		Status:    models.PaymentSessionCreated,
	}
	if err := s.Sessions.Create(ctx, record); err != nil {
		return "", fmt.Errorf("failed to record checkout session %s: %w", sess.ID, err)
	}

	s.Logger.Info("checkout session created",
		zap.String("sessionID", sess.ID),
		zap.String("bookingID", req.BookingID),
		zap.Int64("amount", req.Amount),
	)
	return sess.URL, nil
}
