// FILE: internal/pkg/mailer/email_service.go
package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"gopkg.in/gomail.v2"

	"gulfcv-be/internal/config"
	"gulfcv-be/internal/pkg/logger"
)

// IEmailService delivers the password reset link. Which transport backs it
// is a deployment decision (PASSWORD_RESET_DELIVERY); callers never care.
type IEmailService interface {
	SendPasswordResetLink(ctx context.Context, email, resetURL, requestId string) error
}

// New picks the transport for the configured delivery mode.
func New(cfg *config.Config, log logger.ILogger) IEmailService {
	switch cfg.PasswordReset.Delivery {
	case "resend":
		return NewResendEmailService(cfg.PasswordReset.ResendAPIKey, cfg.PasswordReset.ResendFromEmail)
	case "smtp":
		return NewSMTPEmailService(cfg.SMTP)
	default:
		return NewLogEmailService(log)
	}
}

// LogEmailService writes the link to the application log instead of sending
// anything. This is the development default.
type LogEmailService struct {
	logger logger.ILogger
}

func NewLogEmailService(log logger.ILogger) *LogEmailService {
	return &LogEmailService{logger: log}
}

func (s *LogEmailService) SendPasswordResetLink(_ context.Context, email, resetURL, requestId string) error {
	s.logger.Info("mailer", "password reset link (log mode)", map[string]interface{}{
		"request_id": requestId,
		"email":      email,
		"reset_url":  resetURL,
	})
	return nil
}

// ResendEmailService posts to the Resend HTTP API.
type ResendEmailService struct {
	apiKey    string
	fromEmail string
	client    *http.Client
}

func NewResendEmailService(apiKey, fromEmail string) *ResendEmailService {
	return &ResendEmailService{
		apiKey:    apiKey,
		fromEmail: fromEmail,
		client:    &http.Client{Timeout: 15 * time.Second},
	}
}

func (s *ResendEmailService) SendPasswordResetLink(ctx context.Context, email, resetURL, _ string) error {
	if s.apiKey == "" || s.fromEmail == "" {
		return fmt.Errorf("resend delivery is not configured")
	}

	payload, err := json.Marshal(map[string]interface{}{
		"from":    s.fromEmail,
		"to":      []string{email},
		"subject": "Reset your GulfCV Pro password",
		"text":    fmt.Sprintf("Reset your GulfCV Pro password using this link: %s", resetURL),
		"html": fmt.Sprintf(
			`<p>We received a request to reset your GulfCV Pro password.</p><p><a href="%s">Reset Password</a></p><p>If you did not request this, you can ignore this email.</p>`,
			resetURL,
		),
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, "https://api.resend.com/emails", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 300))
		return fmt.Errorf("resend request failed (%d): %s", resp.StatusCode, string(body))
	}
	return nil
}

// SMTPEmailService sends through a plain SMTP relay.
type SMTPEmailService struct {
	cfg config.SMTPConfig
}

func NewSMTPEmailService(cfg config.SMTPConfig) *SMTPEmailService {
	return &SMTPEmailService{cfg: cfg}
}

func (s *SMTPEmailService) SendPasswordResetLink(_ context.Context, email, resetURL, _ string) error {
	if s.cfg.Host == "" || s.cfg.Email == "" {
		return fmt.Errorf("smtp delivery is not configured")
	}

	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(s.cfg.Email, s.cfg.SenderName))
	m.SetHeader("To", email)
	m.SetHeader("Subject", "Reset your GulfCV Pro password")
	m.SetBody("text/html", fmt.Sprintf(
		`<p>We received a request to reset your GulfCV Pro password.</p><p><a href="%s">Reset Password</a></p><p>If you did not request this, you can ignore this email.</p>`,
		resetURL,
	))

	d := gomail.NewDialer(s.cfg.Host, s.cfg.Port, s.cfg.Email, s.cfg.Password)
	return d.DialAndSend(m)
}
