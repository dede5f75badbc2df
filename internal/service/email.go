package service

import (
	"context"
	"fmt"

	"carrental-backend/internal/config"
	"carrental-backend/internal/logger"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

const sendGridMailEndpoint = "/v3/mail/send"

type emailService struct {
	apiKey   string
	host     string
	from     string
	fromName string
}

// NewEmailService returns a SendGrid backed sender, or a log-only sender when
// no API key is configured.
func NewEmailService(cfg config.EmailConfig) EmailService {
	if cfg.SendGridAPIKey == "" {
		return &logEmailService{}
	}
	return newSendGridEmailService(cfg, "")
}

// host overrides the SendGrid API host; empty means the public API.
func newSendGridEmailService(cfg config.EmailConfig, host string) *emailService {
	return &emailService{
		apiKey:   cfg.SendGridAPIKey,
		host:     host,
		from:     cfg.From,
		fromName: cfg.FromName,
	}
}

func (s *emailService) SendAdminNotification(ctx context.Context, adminEmail, subject, message string) error {
	if adminEmail == "" {
		return fmt.Errorf("admin email is required")
	}

	from := mail.NewEmail(s.fromName, s.from)
	to := mail.NewEmail("", adminEmail)
	msg := mail.NewSingleEmail(from, subject, to, message, "")

	request := sendgrid.GetRequest(s.apiKey, sendGridMailEndpoint, s.host)
	request.Method = "POST"
	request.Body = mail.GetRequestBody(msg)

	logger.ExternalServiceCall("sendgrid", "send", "to", adminEmail, "subject", subject)
	response, err := sendgrid.MakeRequestWithContext(ctx, request)
	if err != nil {
		logger.ExternalServiceResult("sendgrid", "send", err)
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		err = fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
		logger.ExternalServiceResult("sendgrid", "send", err)
		return err
	}

	logger.ExternalServiceResult("sendgrid", "send", nil, "status", response.StatusCode)
	return nil
}

type logEmailService struct{}

func (s *logEmailService) SendAdminNotification(ctx context.Context, adminEmail, subject, message string) error {
	logger.Info("Email delivery disabled, logging admin notification", "to", adminEmail, "subject", subject, "body", message)
	return nil
}
