package models

import "time"

// User is the slice of the account record this service reads. Account
// issuance and credentials live in the auth service.
type User struct {
	ID        string    `bson:"id" json:"id"`
	Name      string    `bson:"name" json:"name"`
	Email     string    `bson:"email" json:"email"`
	Role      string    `bson:"role" json:"role"` // "user" or "admin"
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
}

// UserSummary is the minimal projection joined into booking listings.
type UserSummary struct {
	ID    string `bson:"id" json:"id"`
	Name  string `bson:"name" json:"name"`
	Email string `bson:"email" json:"email"`
}
