package models

import "time"

// Payment session status values.
const (
	PaymentSessionCreated   = "created"
	PaymentSessionCompleted = "completed"
)

// PaymentSession tracks a Stripe Checkout session. Its session_id is the
// idempotency key for applying the completion event exactly once.
type PaymentSession struct {
	SessionID   string     `bson:"session_id" json:"sessionId"`
	BookingID   string     `bson:"booking_id,omitempty" json:"bookingId,omitempty"`
	Amount      int64      `bson:"amount" json:"amount"` // minor units
	Currency    string     `bson:"currency" json:"currency"`
	Status      string     `bson:"status" json:"status"`
	CreatedAt   time.Time  `bson:"created_at" json:"createdAt"`
	CompletedAt *time.Time `bson:"completed_at,omitempty" json:"completedAt,omitempty"`
}

// CheckoutRequest is the client payload for starting a checkout.
type CheckoutRequest struct {
	Name      string `json:"name"`
	Amount    int64  `json:"amount"` // minor units, >= 100
	BookingID string `json:"bookingId"`
}
