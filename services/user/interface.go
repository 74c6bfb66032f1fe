package user

import (
	"context"
	"errors"
	"time"

	userRepo "turfacademy/database/repository/user"
	"turfacademy/models"
	"turfacademy/utils"

	"go.uber.org/zap"
)

var (
	ErrInvalidOTP      = errors.New("invalid or expired OTP")
	ErrTooManyAttempts = errors.New("too many attempts, request a new OTP")
	ErrUserNotFound    = errors.New("user not found")
)

type UserService interface {
	// Authentication
	RequestOTP(ctx context.Context, req models.OTPRequest) error
	VerifyOTP(ctx context.Context, req models.OTPVerifyRequest) (*models.AuthResponse, error)
	Logout(ctx context.Context, userID string) error

	// User Management
	GetUserByID(ctx context.Context, userID string) (*models.User, error)

	// Admin / Utility
	GetAllUsers(ctx context.Context, limit int64) ([]models.User, error)
}

// OTPStore issues and checks one-time codes.
type OTPStore interface {
	Issue(ctx context.Context, mobile string) (string, error)
	Verify(ctx context.Context, mobile, code string) error
}

// DefaultUserService is the production implementation.
type DefaultUserService struct {
	Repo     userRepo.UserRepository
	OTP      OTPStore
	Sessions utils.AuthSessionCache
	SendSMS  func(mobile, message string) error
	TokenTTL time.Duration
	Logger   *zap.Logger
}
