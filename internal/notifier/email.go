package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"go.uber.org/zap"
)

const brevoAPIURL = "https://api.brevo.com/v3/smtp/email"

var otpTemplate = template.Must(template.New("otp").Parse(`<html><body>
<p>Hi {{.Name}},</p>
<p>Your verification code is <strong>{{.OTP}}</strong>.</p>
<p>It will expire in 10 minutes.</p>
</body></html>`))

// EmailNotifier sends transactional OTP emails via the Brevo v3 SMTP API.
// Like the SMS notifier, an unconfigured client degrades to a log line.
type EmailNotifier struct {
	apiKey      string
	senderEmail string
	senderName  string
	client      *http.Client
	logger      *zap.SugaredLogger
	configured  bool
}

func NewEmailNotifier(apiKey, senderEmail, senderName string, logger *zap.SugaredLogger) *EmailNotifier {
	return &EmailNotifier{
		apiKey:      apiKey,
		senderEmail: senderEmail,
		senderName:  senderName,
		client:      &http.Client{Timeout: 10 * time.Second},
		logger:      logger,
		configured:  apiKey != "" && senderEmail != "",
	}
}

func (e *EmailNotifier) IsConfigured() bool { return e.configured }

func (e *EmailNotifier) SendOTPEmail(ctx context.Context, toEmail, name, otp string) error {
	if !e.configured {
		e.logger.Infow("Brevo not configured, email skipped", "to", toEmail, "otp", otp)
		return nil
	}

	var buf bytes.Buffer
	if err := otpTemplate.Execute(&buf, struct{ Name, OTP string }{name, otp}); err != nil {
		return err
	}

	payload := map[string]any{
		"sender":      map[string]string{"name": e.senderName, "email": e.senderEmail},
		"to":          []map[string]string{{"email": toEmail}},
		"subject":     "Your OTP Code",
		"htmlContent": buf.String(),
	}
	var body bytes.Buffer
	if err := json.NewEncoder(&body).Encode(payload); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, brevoAPIURL, &body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("api-key", e.apiKey)

	resp, err := e.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		e.logger.Infof("email sent to %s", toEmail)
		return nil
	}
	return fmt.Errorf("brevo send failed status=%d", resp.StatusCode)
}
