package models

// BookingConfirmationEmail carries everything the mailer needs to notify a
// user that their booking was paid.
type BookingConfirmationEmail struct {
	To        string `json:"to"`
	BookingID string `json:"bookingId"`
	SessionID string `json:"sessionId"`
}
