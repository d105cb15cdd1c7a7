package notifier

import (
	"context"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

// newBreaker builds a circuit breaker for an outbound provider so a dead
// Twilio or Brevo endpoint stops eating the per-request notify timeout.
func newBreaker(name string, logger *zap.SugaredLogger) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Infow("circuit breaker state", "name", name, "from", from.String(), "to", to.String())
		},
	})
}

// BreakerSMS wraps an SMSSender with a circuit breaker.
type BreakerSMS struct {
	next SMSSender
	cb   *gobreaker.CircuitBreaker
}

func NewBreakerSMS(next SMSSender, logger *zap.SugaredLogger) *BreakerSMS {
	return &BreakerSMS{next: next, cb: newBreaker("twilio", logger)}
}

func (b *BreakerSMS) SendSMS(ctx context.Context, to, message string) error {
	_, err := b.cb.Execute(func() (interface{}, error) {
		return nil, b.next.SendSMS(ctx, to, message)
	})
	return err
}

// BreakerEmail wraps an EmailSender with a circuit breaker.
type BreakerEmail struct {
	next EmailSender
	cb   *gobreaker.CircuitBreaker
}

func NewBreakerEmail(next EmailSender, logger *zap.SugaredLogger) *BreakerEmail {
	return &BreakerEmail{next: next, cb: newBreaker("brevo", logger)}
}

func (b *BreakerEmail) SendOTPEmail(ctx context.Context, toEmail, name, otp string) error {
	_, err := b.cb.Execute(func() (interface{}, error) {
		return nil, b.next.SendOTPEmail(ctx, toEmail, name, otp)
	})
	return err
}
