package payment

import (
	"context"

	"ceylonescape/models"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/checkout/session"
)

// Service is the payment session reconciler: it opens checkout sessions with
// the card-payment provider and applies the provider's asynchronous
// completion webhooks back onto booking state, idempotently.
type Service interface {
	CreateCheckoutSession(ctx context.Context, req models.CheckoutRequest) (sessionURL string, err error)
	HandleWebhook(ctx context.Context, payload []byte, sigHeader string) error
}

// CheckoutClient opens sessions with the payment provider. Abstracted so the
// reconciler can be exercised without the live Stripe API.
type CheckoutClient interface {
	NewSession(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error)
}

type stripeCheckoutClient struct{}

func (stripeCheckoutClient) NewSession(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
	return session.New(params)
}

// NewStripeCheckoutClient returns the production CheckoutClient backed by the
// Stripe SDK. The API key is taken from the global stripe.Key set at startup.
func NewStripeCheckoutClient() CheckoutClient {
	return stripeCheckoutClient{}
}
