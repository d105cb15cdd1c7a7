package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidPhoneNumber(t *testing.T) {
	tests := []struct {
		name  string
		phone string
		want  bool
	}{
		{"e164 with plus", "+15551234567", true},
		{"digits only", "15551234567", true},
		{"short national number", "911234", true},
		{"leading zero", "0551234567", false},
		{"plus only", "+", false},
		{"empty", "", false},
		{"letters", "+1555abc4567", false},
		{"spaces", "+1 555 123 4567", false},
		{"too long", "+1234567890123456", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValidPhoneNumber(tt.phone))
		})
	}
}

func TestValidateStruct(t *testing.T) {
	type req struct {
		Email    string `validate:"required,email"`
		Password string `validate:"required,min=6"`
		OTP      string `validate:"omitempty,len=6"`
	}

	t.Run("valid", func(t *testing.T) {
		err := ValidateStruct(req{Email: "a@b.com", Password: "secret1"})
		assert.NoError(t, err)
	})

	t.Run("missing required", func(t *testing.T) {
		err := ValidateStruct(req{Password: "secret1"})
		assert.EqualError(t, err, "Email is required")
	})

	t.Run("bad email", func(t *testing.T) {
		err := ValidateStruct(req{Email: "not-an-email", Password: "secret1"})
		assert.EqualError(t, err, "Email must be a valid email address")
	})

	t.Run("short password", func(t *testing.T) {
		err := ValidateStruct(req{Email: "a@b.com", Password: "abc"})
		assert.EqualError(t, err, "Password must be at least 6 characters long")
	})

	t.Run("wrong otp length", func(t *testing.T) {
		err := ValidateStruct(req{Email: "a@b.com", Password: "secret1", OTP: "123"})
		assert.EqualError(t, err, "OTP must be exactly 6 characters long")
	})
}
