package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateOTP_LengthAndCharset(t *testing.T) {
	for i := 0; i < 100; i++ {
		code := GenerateOTP(OTPLength)
		require.Len(t, code, OTPLength)
		for _, c := range code {
			assert.True(t, c >= '0' && c <= '9', "unexpected character %q in %q", c, code)
		}
	}
}

func TestGenerateOTP_KeepsLeadingZeros(t *testing.T) {
	// with enough draws a leading zero shows up if padding works
	seen := false
	for i := 0; i < 2000 && !seen; i++ {
		code := GenerateOTP(OTPLength)
		require.Len(t, code, OTPLength)
		if code[0] == '0' {
			seen = true
		}
	}
	assert.True(t, seen, "never saw a leading zero in 2000 draws")
}

func TestGenerateOTP_ZeroLength(t *testing.T) {
	assert.Empty(t, GenerateOTP(0))
	assert.Empty(t, GenerateOTP(-1))
}

func TestOTPExpiry(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	exp := OTPExpiry(now, 10*time.Minute)
	assert.Equal(t, now.Add(10*time.Minute), exp)
}

func TestIsOTPExpired(t *testing.T) {
	issued := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	exp := OTPExpiry(issued, 10*time.Minute)

	assert.False(t, IsOTPExpired(exp, issued))
	assert.False(t, IsOTPExpired(exp, exp.Add(-time.Second)))
	// boundary: a code is invalid exactly at its expiry instant
	assert.True(t, IsOTPExpired(exp, exp))
	assert.True(t, IsOTPExpired(exp, exp.Add(time.Second)))
}
