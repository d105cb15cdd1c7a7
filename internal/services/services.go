package services

import (
	"context"
	"errors"

	"github.com/fathima-sithara/account-service/internal/models"
)

var (
	ErrUserExists         = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidLoginMethod = errors.New("invalid login method, use OTP or register with password")
	// wrong code and expired code report the same error
	ErrInvalidOrExpiredOTP = errors.New("invalid or expired OTP")
	ErrInvalidPhone        = errors.New("please provide a valid phone number (E.164 format: +1234567890)")
	ErrInvalidName         = errors.New("name cannot be empty")
	ErrForbidden           = errors.New("forbidden")
	ErrInternal            = errors.New("internal server error")
)

// AuthResult is what every successful auth operation hands the transport
// layer. OTP is populated only in development mode for flows that echo it.
type AuthResult struct {
	Token string
	User  *models.Summary
	OTP   string
}

// AuthService orchestrates registration, OTP verification and login across
// the email and phone identity channels.
type AuthService interface {
	RegisterEmail(ctx context.Context, email, password, name string) (*AuthResult, error)
	VerifyEmailOTP(ctx context.Context, email, code string) (*AuthResult, error)
	LoginEmail(ctx context.Context, email, password string) (*AuthResult, error)

	RegisterPhone(ctx context.Context, phone, name string) (*AuthResult, error)
	VerifyPhoneOTP(ctx context.Context, phone, code string) (*AuthResult, error)
	RequestLoginOTP(ctx context.Context, phone string) (string, error)
	VerifyLoginOTP(ctx context.Context, phone, code string) (*AuthResult, error)

	ResendOTP(ctx context.Context, email, phone string) (string, error)
}

// ProfileService reads and mutates the non-auth profile fields.
type ProfileService interface {
	Get(ctx context.Context, userID string) (*models.User, error)
	Update(ctx context.Context, userID string, req models.UpdateProfileRequest) (*models.User, error)
	UploadPicture(ctx context.Context, userID, filename, contentType string, data []byte) (*models.User, error)
	DeletePicture(ctx context.Context, userID string) (*models.User, error)
}
