// models/user.go
package models

import "time"

// User is an account created on first OTP login.
type User struct {
	ID          string    `bson:"id" json:"id"`
	Mobile      string    `bson:"mobile" json:"mobile"`
	Name        string    `bson:"name,omitempty" json:"name,omitempty"`
	TokenHash   string    `bson:"tokenHash,omitempty" json:"-"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time `bson:"updatedAt" json:"updatedAt"`
	LastLoginAt time.Time `bson:"lastLoginAt,omitempty" json:"lastLoginAt,omitempty"`
}

// AuthResponse is returned after a successful OTP verification.
type AuthResponse struct {
	ID        string `json:"id"`
	Mobile    string `json:"mobile"`
	Token     string `json:"token"`
	NewUser   bool   `json:"newUser"`
	ExpiresIn int64  `json:"expiresIn"` // seconds
}

type OTPRequest struct {
	Mobile string `json:"mobile" validate:"required,numeric,min=10,max=15"`
}

type OTPVerifyRequest struct {
	Mobile string `json:"mobile" validate:"required,numeric,min=10,max=15"`
	OTP    string `json:"otp" validate:"required,numeric,len=6"`
}
