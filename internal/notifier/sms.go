package notifier

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

// SMSNotifier sends SMS via the Twilio REST API. An unconfigured client
// logs the would-be message and reports success, so development setups
// work without credentials.
type SMSNotifier struct {
	accountSID string
	authToken  string
	from       string
	client     *http.Client
	logger     *zap.SugaredLogger
	configured bool
}

func NewSMSNotifier(sid, authToken, from string, logger *zap.SugaredLogger) *SMSNotifier {
	return &SMSNotifier{
		accountSID: sid,
		authToken:  authToken,
		from:       from,
		client:     &http.Client{Timeout: 10 * time.Second},
		logger:     logger,
		configured: sid != "" && authToken != "" && from != "",
	}
}

func (s *SMSNotifier) IsConfigured() bool { return s.configured }

func (s *SMSNotifier) SendSMS(ctx context.Context, to, message string) error {
	if !s.configured {
		s.logger.Infow("Twilio not configured, SMS skipped", "to", to, "message", message)
		return nil
	}

	endpoint := fmt.Sprintf("https://api.twilio.com/2010-04-01/Accounts/%s/Messages.json", s.accountSID)
	data := url.Values{}
	data.Set("To", to)
	data.Set("From", s.from)
	data.Set("Body", message)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(data.Encode()))
	if err != nil {
		return fmt.Errorf("failed to create Twilio request: %w", err)
	}
	req.SetBasicAuth(s.accountSID, s.authToken)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send Twilio request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("twilio returned status %d: %s", resp.StatusCode, string(body))
	}
	s.logger.Infof("SMS sent to %s", to)
	return nil
}
