package models

import "time"

// Booking status values.
const (
	BookingStatusPending   = "pending"
	BookingStatusConfirmed = "confirmed"
	BookingStatusCancelled = "cancelled"
)

// Booking represents a user's booking of a tour on a given date.
// The triple (user_id, tour_id, booking_date) is unique across bookings,
// enforced by a compound unique index in the store.
type Booking struct {
	ID          string    `bson:"id" json:"id"`
	UserID      string    `bson:"user_id" json:"userId"`
	TourID      string    `bson:"tour_id" json:"tourId"`
	BookingDate string    `bson:"booking_date" json:"bookingDate"` // "YYYY-MM-DD"
	Status      string    `bson:"status" json:"status"`
	CreatedAt   time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updatedAt"`
}

// BookingUpdate is the patch shape accepted on booking updates. Nil fields
// are left untouched.
type BookingUpdate struct {
	TourID      *string `json:"tourId"`
	BookingDate *string `json:"bookingDate"`
	Status      *string `json:"status"`
}

// BookingDetails is a booking joined with minimal tour/user projections for
// display.
type BookingDetails struct {
	Booking `bson:",inline"`
	Tour    *TourSummary `bson:"tour,omitempty" json:"tour,omitempty"`
	User    *UserSummary `bson:"user,omitempty" json:"user,omitempty"`
}

// BookingFilter narrows booking listings.
type BookingFilter struct {
	UserID string
	TourID string
	Status string
}
