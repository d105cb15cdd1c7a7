package notifier

import "context"

// SMSSender delivers a one-off text message. Delivery is best-effort: the
// auth core logs failures and never rolls back on them.
type SMSSender interface {
	SendSMS(ctx context.Context, to, message string) error
}

// EmailSender delivers a templated OTP email.
type EmailSender interface {
	SendOTPEmail(ctx context.Context, toEmail, name, otp string) error
}
