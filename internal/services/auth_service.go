package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fathima-sithara/account-service/internal/models"
	"github.com/fathima-sithara/account-service/internal/notifier"
	"github.com/fathima-sithara/account-service/internal/repository"
	"github.com/fathima-sithara/account-service/internal/token"
	"github.com/fathima-sithara/account-service/internal/utils"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type authService struct {
	repo          repository.UserRepository
	sms           notifier.SMSSender
	email         notifier.EmailSender
	tokens        *token.Manager
	otpTTL        time.Duration
	hashCost      int
	notifyTimeout time.Duration
	devMode       bool
	logger        *zap.SugaredLogger
}

func NewAuthService(
	repo repository.UserRepository,
	sms notifier.SMSSender,
	email notifier.EmailSender,
	tokens *token.Manager,
	otpTTL time.Duration,
	hashCost int,
	notifyTimeout time.Duration,
	devMode bool,
	logger *zap.SugaredLogger,
) AuthService {
	return &authService{
		repo:          repo,
		sms:           sms,
		email:         email,
		tokens:        tokens,
		otpTTL:        otpTTL,
		hashCost:      hashCost,
		notifyTimeout: notifyTimeout,
		devMode:       devMode,
		logger:        logger,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *authService) RegisterEmail(ctx context.Context, email, password, name string) (*AuthResult, error) {
	email = normalizeEmail(email)

	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return nil, ErrUserExists
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check existing email: %w", ErrInternal)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), s.hashCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", ErrInternal)
	}

	otp, expiresAt := s.newOTP()
	user := &models.User{
		Email:        email,
		PasswordHash: string(hashed),
		Name:         name,
		OTP:          otp,
		OTPExpiresAt: &expiresAt,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, ErrUserExists
		}
		return nil, fmt.Errorf("failed to create user: %w", ErrInternal)
	}

	// delivery is best-effort: the record and OTP are the durable truth,
	// recovery goes through resend
	s.sendOTPEmail(ctx, email, name, otp)

	tok, err := s.tokens.Issue(user.ID.Hex())
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", ErrInternal)
	}
	return &AuthResult{Token: tok, User: models.EmailSummary(user)}, nil
}

func (s *authService) VerifyEmailOTP(ctx context.Context, email, code string) (*AuthResult, error) {
	email = normalizeEmail(email)
	user, err := s.consumeOTP(ctx, bson.M{"email": email}, code, "is_email_verified",
		func() error { _, e := s.repo.FindByEmail(ctx, email); return e })
	if err != nil {
		return nil, err
	}
	tok, err := s.tokens.Issue(user.ID.Hex())
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", ErrInternal)
	}
	return &AuthResult{Token: tok, User: models.EmailSummary(user)}, nil
}

func (s *authService) LoginEmail(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := s.repo.FindByEmail(ctx, normalizeEmail(email))
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", ErrInternal)
	}
	if user.PasswordHash == "" {
		// phone-only account, no password to check against
		return nil, ErrInvalidLoginMethod
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}

	tok, err := s.tokens.Issue(user.ID.Hex())
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", ErrInternal)
	}
	return &AuthResult{Token: tok, User: models.EmailSummary(user)}, nil
}

func (s *authService) RegisterPhone(ctx context.Context, phone, name string) (*AuthResult, error) {
	if !utils.IsValidPhoneNumber(phone) {
		return nil, ErrInvalidPhone
	}

	if _, err := s.repo.FindByPhone(ctx, phone); err == nil {
		return nil, ErrUserExists
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check existing phone: %w", ErrInternal)
	}

	otp, expiresAt := s.newOTP()
	user := &models.User{
		Phone:        phone,
		Name:         name,
		OTP:          otp,
		OTPExpiresAt: &expiresAt,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, ErrUserExists
		}
		return nil, fmt.Errorf("failed to create user: %w", ErrInternal)
	}

	s.sendOTPSMS(ctx, phone, fmt.Sprintf("Your verification code is: %s. It will expire in %d minutes.", otp, int(s.otpTTL.Minutes())))

	tok, err := s.tokens.Issue(user.ID.Hex())
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", ErrInternal)
	}
	res := &AuthResult{Token: tok, User: models.PhoneSummary(user)}
	if s.devMode {
		res.OTP = otp
	}
	return res, nil
}

func (s *authService) VerifyPhoneOTP(ctx context.Context, phone, code string) (*AuthResult, error) {
	user, err := s.consumeOTP(ctx, bson.M{"phone": phone}, code, "is_phone_verified",
		func() error { _, e := s.repo.FindByPhone(ctx, phone); return e })
	if err != nil {
		return nil, err
	}
	tok, err := s.tokens.Issue(user.ID.Hex())
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", ErrInternal)
	}
	return &AuthResult{Token: tok, User: models.PhoneSummary(user)}, nil
}

// RequestLoginOTP issues a login code for an already registered phone.
// No token is returned until the code is verified.
func (s *authService) RequestLoginOTP(ctx context.Context, phone string) (string, error) {
	if !utils.IsValidPhoneNumber(phone) {
		return "", ErrInvalidPhone
	}
	user, err := s.repo.FindByPhone(ctx, phone)
	if errors.Is(err, repository.ErrUserNotFound) {
		return "", ErrUserNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to look up user: %w", ErrInternal)
	}

	otp, expiresAt := s.newOTP()
	if err := s.repo.SetOTP(ctx, user.ID, otp, expiresAt); err != nil {
		return "", fmt.Errorf("failed to store OTP: %w", ErrInternal)
	}
	s.sendOTPSMS(ctx, phone, fmt.Sprintf("Your login OTP code is: %s. It will expire in %d minutes.", otp, int(s.otpTTL.Minutes())))

	if s.devMode {
		return otp, nil
	}
	return "", nil
}

// VerifyLoginOTP consumes the code like the registration verifications but
// leaves the verified flag untouched.
func (s *authService) VerifyLoginOTP(ctx context.Context, phone, code string) (*AuthResult, error) {
	user, err := s.consumeOTP(ctx, bson.M{"phone": phone}, code, "",
		func() error { _, e := s.repo.FindByPhone(ctx, phone); return e })
	if err != nil {
		return nil, err
	}
	tok, err := s.tokens.Issue(user.ID.Hex())
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", ErrInternal)
	}
	return &AuthResult{Token: tok, User: models.PhoneSummary(user)}, nil
}

// ResendOTP regenerates the outstanding code for the given identifier and
// re-delivers it; email takes precedence when both are supplied.
func (s *authService) ResendOTP(ctx context.Context, email, phone string) (string, error) {
	var (
		user *models.User
		err  error
	)
	switch {
	case email != "":
		user, err = s.repo.FindByEmail(ctx, normalizeEmail(email))
	case phone != "":
		if !utils.IsValidPhoneNumber(phone) {
			return "", ErrInvalidPhone
		}
		user, err = s.repo.FindByPhone(ctx, phone)
	default:
		return "", ErrUserNotFound
	}
	if errors.Is(err, repository.ErrUserNotFound) {
		return "", ErrUserNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to look up user: %w", ErrInternal)
	}

	otp, expiresAt := s.newOTP()
	if err := s.repo.SetOTP(ctx, user.ID, otp, expiresAt); err != nil {
		return "", fmt.Errorf("failed to store OTP: %w", ErrInternal)
	}

	if email != "" {
		s.sendOTPEmail(ctx, user.Email, user.Name, otp)
	} else {
		s.sendOTPSMS(ctx, user.Phone, fmt.Sprintf("Your new OTP code is: %s. It will expire in %d minutes.", otp, int(s.otpTTL.Minutes())))
	}

	if s.devMode {
		return otp, nil
	}
	return "", nil
}

func (s *authService) newOTP() (string, time.Time) {
	return utils.GenerateOTP(utils.OTPLength), utils.OTPExpiry(time.Now().UTC(), s.otpTTL)
}

// consumeOTP is the single verification routine shared by the email verify,
// phone verify and phone-login verify flows. exists distinguishes a missing
// record (404) from a bad code; the bad-code and expired cases stay merged.
func (s *authService) consumeOTP(ctx context.Context, filter bson.M, code string, verifiedField string, exists func() error) (*models.User, error) {
	if err := exists(); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to look up user: %w", ErrInternal)
	}
	user, err := s.repo.ConsumeOTP(ctx, filter, code, time.Now().UTC(), verifiedField)
	if errors.Is(err, repository.ErrOTPMismatch) {
		return nil, ErrInvalidOrExpiredOTP
	}
	if err != nil {
		return nil, fmt.Errorf("failed to consume OTP: %w", ErrInternal)
	}
	return user, nil
}

func (s *authService) sendOTPSMS(ctx context.Context, phone, message string) {
	nctx, cancel := context.WithTimeout(ctx, s.notifyTimeout)
	defer cancel()
	if err := s.sms.SendSMS(nctx, phone, message); err != nil {
		s.logger.Warnf("failed to send OTP SMS to %s: %v", phone, err)
	}
}

func (s *authService) sendOTPEmail(ctx context.Context, email, name, otp string) {
	nctx, cancel := context.WithTimeout(ctx, s.notifyTimeout)
	defer cancel()
	if err := s.email.SendOTPEmail(nctx, email, name, otp); err != nil {
		s.logger.Warnf("failed to send OTP email to %s: %v", email, err)
	}
}
