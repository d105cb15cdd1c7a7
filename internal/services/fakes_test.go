package services

import (
	"context"
	"sync"
	"time"

	"github.com/fathima-sithara/account-service/internal/models"
	"github.com/fathima-sithara/account-service/internal/repository"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// fakeUserRepo is an in-memory UserRepository mirroring the Mongo
// implementation's semantics, including the conditional OTP consume.
type fakeUserRepo struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[primitive.ObjectID]*models.User{}}
}

func (r *fakeUserRepo) Create(_ context.Context, u *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if u.Email != "" && existing.Email == u.Email {
			return repository.ErrDuplicateKey
		}
		if u.Phone != "" && existing.Phone == u.Phone {
			return repository.ErrDuplicateKey
		}
	}
	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	if u.Role == "" {
		u.Role = "user"
	}
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, repository.ErrUserNotFound
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	return r.findBy(func(u *models.User) bool { return u.Email != "" && u.Email == email })
}

func (r *fakeUserRepo) FindByPhone(_ context.Context, phone string) (*models.User, error) {
	return r.findBy(func(u *models.User) bool { return u.Phone != "" && u.Phone == phone })
}

func (r *fakeUserRepo) findBy(match func(*models.User) bool) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if match(u) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (r *fakeUserRepo) SetOTP(_ context.Context, id primitive.ObjectID, code string, expiresAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return repository.ErrUserNotFound
	}
	exp := expiresAt.UTC()
	u.OTP = code
	u.OTPExpiresAt = &exp
	u.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *fakeUserRepo) ConsumeOTP(_ context.Context, filter bson.M, code string, now time.Time, verifiedField string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if email, ok := filter["email"]; ok && u.Email != email {
			continue
		}
		if phone, ok := filter["phone"]; ok && u.Phone != phone {
			continue
		}
		if u.OTP == "" || u.OTP != code || u.OTPExpiresAt == nil || !u.OTPExpiresAt.After(now.UTC()) {
			return nil, repository.ErrOTPMismatch
		}
		u.OTP = ""
		u.OTPExpiresAt = nil
		switch verifiedField {
		case "is_email_verified":
			u.IsEmailVerified = true
		case "is_phone_verified":
			u.IsPhoneVerified = true
		}
		u.UpdatedAt = now.UTC()
		cp := *u
		return &cp, nil
	}
	return nil, repository.ErrOTPMismatch
}

func (r *fakeUserRepo) UpdateFields(_ context.Context, id primitive.ObjectID, set bson.M) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	for k, v := range set {
		s, _ := v.(string)
		switch k {
		case "name":
			u.Name = s
		case "bio":
			u.Bio = s
		case "location":
			u.Location = s
		case "profile_picture":
			u.ProfilePicture = s
		}
	}
	u.UpdatedAt = time.Now().UTC()
	cp := *u
	return &cp, nil
}

// stored returns the raw record so tests can inspect persisted state.
func (r *fakeUserRepo) stored(id primitive.ObjectID) *models.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		cp := *u
		return &cp
	}
	return nil
}

// expireOTP backdates the outstanding code.
func (r *fakeUserRepo) expireOTP(id primitive.ObjectID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok && u.OTPExpiresAt != nil {
		past := time.Now().UTC().Add(-time.Second)
		u.OTPExpiresAt = &past
	}
}

type fakeSMSSender struct {
	mu   sync.Mutex
	sent []string
	err  error
}

func (f *fakeSMSSender) SendSMS(_ context.Context, to, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, to)
	return nil
}

type fakeEmailSender struct {
	mu   sync.Mutex
	sent []string
	err  error
}

func (f *fakeEmailSender) SendOTPEmail(_ context.Context, to, _, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, to)
	return nil
}
