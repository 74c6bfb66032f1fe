package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	userRepo "turfacademy/database/repository/user"
	"turfacademy/models"
	"turfacademy/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func (s *DefaultUserService) RequestOTP(ctx context.Context, req models.OTPRequest) error {
	if err := utils.Validate(req); err != nil {
		return err
	}
	code, err := s.OTP.Issue(ctx, req.Mobile)
	if err != nil {
		return fmt.Errorf("failed to issue OTP: %w", err)
	}

	msg := fmt.Sprintf("Your turf booking login code is %s. It expires in %d minutes.", code, int(utils.OTPTTL.Minutes()))
	if err := s.SendSMS(req.Mobile, msg); err != nil {
		return fmt.Errorf("failed to send OTP: %w", err)
	}
	s.Logger.Info("OTP issued", zap.String("mobile", maskMobile(req.Mobile)))
	return nil
}

func (s *DefaultUserService) VerifyOTP(ctx context.Context, req models.OTPVerifyRequest) (*models.AuthResponse, error) {
	if err := utils.Validate(req); err != nil {
		return nil, err
	}
	if err := s.OTP.Verify(ctx, req.Mobile, req.OTP); err != nil {
		switch {
		case errors.Is(err, utils.ErrOTPNotFound), errors.Is(err, utils.ErrOTPMismatch):
			return nil, ErrInvalidOTP
		case errors.Is(err, utils.ErrOTPTooManyAttempts):
			return nil, ErrTooManyAttempts
		default:
			return nil, err
		}
	}

	user, newUser, err := s.findOrCreate(ctx, req.Mobile)
	if err != nil {
		return nil, err
	}

	token, err := utils.GenerateToken(user.ID, user.Mobile, s.TokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	tokenHash := utils.HashToken(token)
	now := time.Now()
	if err := s.Repo.RecordLogin(ctx, user.ID, tokenHash, now); err != nil {
		return nil, fmt.Errorf("failed to record login: %w", err)
	}

	session := utils.AuthSession{UserID: user.ID, Mobile: user.Mobile, TokenHash: tokenHash, CreatedAt: now}
	if err := s.Sessions.Save(ctx, session, s.TokenTTL); err != nil {
		// The middleware falls back to Mongo when the cache misses.
		s.Logger.Warn("Failed to cache auth session", zap.String("userID", user.ID), zap.Error(err))
	}

	s.Logger.Info("User signed in", zap.String("userID", user.ID), zap.Bool("newUser", newUser))
	return &models.AuthResponse{
		ID:        user.ID,
		Mobile:    user.Mobile,
		Token:     token,
		NewUser:   newUser,
		ExpiresIn: int64(s.TokenTTL.Seconds()),
	}, nil
}

func (s *DefaultUserService) findOrCreate(ctx context.Context, mobile string) (*models.User, bool, error) {
	existing, err := s.Repo.GetByMobile(ctx, mobile)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, userRepo.ErrUserNotFound) {
		return nil, false, fmt.Errorf("failed to look up user: %w", err)
	}

	user := &models.User{ID: uuid.New().String(), Mobile: mobile}
	if err := s.Repo.Create(ctx, user); err != nil {
		if errors.Is(err, userRepo.ErrUserExists) {
			// Another verification for the same number won the insert.
			existing, err := s.Repo.GetByMobile(ctx, mobile)
			if err != nil {
				return nil, false, fmt.Errorf("failed to look up user: %w", err)
			}
			return existing, false, nil
		}
		return nil, false, err
	}
	return user, true, nil
}

func (s *DefaultUserService) Logout(ctx context.Context, userID string) error {
	if err := s.Repo.RevokeToken(ctx, userID); err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	if err := s.Sessions.Delete(ctx, userID); err != nil {
		s.Logger.Warn("Failed to drop cached auth session", zap.String("userID", userID), zap.Error(err))
	}
	return nil
}

func (s *DefaultUserService) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *DefaultUserService) GetAllUsers(ctx context.Context, limit int64) ([]models.User, error) {
	users, err := s.Repo.GetAll(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

func maskMobile(mobile string) string {
	if len(mobile) <= 4 {
		return mobile
	}
	return "******" + mobile[len(mobile)-4:]
}
