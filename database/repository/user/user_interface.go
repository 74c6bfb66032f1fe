package userRepo

import (
	"context"
	"errors"
	"time"

	"turfacademy/models"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrUserExists   = errors.New("user with this mobile already exists")
)

// UserRepository defines methods for user data access.
type UserRepository interface {
	// GetByID retrieves a user by its unique ID.
	GetByID(ctx context.Context, id string) (*models.User, error)
	// GetByMobile retrieves a user by the mobile number used to sign in.
	GetByMobile(ctx context.Context, mobile string) (*models.User, error)
	// GetAll retrieves users, newest first.
	GetAll(ctx context.Context, limit int64) ([]models.User, error)
	// Create inserts a new user record.
	Create(ctx context.Context, user *models.User) error
	// RecordLogin stores the hash of the newly issued token.
	RecordLogin(ctx context.Context, id, tokenHash string, at time.Time) error
	// RevokeToken clears the stored token hash.
	RevokeToken(ctx context.Context, id string) error
	EnsureIndexes(ctx context.Context) error
}
