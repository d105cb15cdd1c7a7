package utils

import (
	"math/rand"
	"time"
)

// OTPLength is the fixed width of generated codes.
const OTPLength = 6

// GenerateOTP returns a random numeric code of the given length,
// zero-padding included (each digit drawn uniformly).
func GenerateOTP(length int) string {
	if length <= 0 {
		return ""
	}
	const charset = "0123456789"
	b := make([]byte, length)
	for i := range b {
		b[i] = charset[rand.Intn(len(charset))]
	}
	return string(b)
}

// OTPExpiry returns the expiry timestamp for a code issued at now.
func OTPExpiry(now time.Time, ttl time.Duration) time.Time {
	return now.Add(ttl)
}

// IsOTPExpired reports whether a code with the given expiry is no longer
// valid at now.
func IsOTPExpired(expiresAt, now time.Time) bool {
	return !now.Before(expiresAt)
}
