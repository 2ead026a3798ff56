package models

import "time"

// Review represents a user's review of a tour.
type Review struct {
	ID        string    `bson:"id" json:"id"`
	UserID    string    `bson:"user_id" json:"userId"`
	TourID    string    `bson:"tour_id" json:"tourId"`
	Rating    int       `bson:"rating" json:"rating"` // 1..5
	Comment   string    `bson:"comment" json:"comment"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// ReviewInput is the client payload for creating a review.
type ReviewInput struct {
	TourID  string `json:"tourId"`
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// ReviewUpdate is the patch shape for review updates. Nil fields are left
// untouched.
type ReviewUpdate struct {
	TourID  *string `json:"tourId"`
	Rating  *int    `json:"rating"`
	Comment *string `json:"comment"`
}

// Actor identifies the authenticated caller of a review mutation.
type Actor struct {
	ID   string
	Role string
}

// IsAdmin reports whether the actor carries the administrator role.
func (a Actor) IsAdmin() bool {
	return a.Role == "admin"
}
