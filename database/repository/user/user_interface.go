package userRepo

import (
	"context"
	"errors"

	"ceylonescape/models"
)

var ErrNotFound = errors.New("user not found")

// UserRepository is the read-only slice of account data this service needs.
// Accounts are created and credentialed by the auth service.
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}
