package email

import (
	"fmt"
	"net/smtp"
	"strconv"

	"github.com/rs/zerolog"
)

// EmailService defines the interface for email operations
type EmailService interface {
	SendWelcomeEmail(toEmail, toName string) error
	SendApprovalEmail(toEmail, toName string) error
}

// SMTPConfig holds configuration for the SMTP server
type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromName  string
	FromEmail string
}

// EmailServiceImpl implements EmailService
type EmailServiceImpl struct {
	config SMTPConfig
	logger zerolog.Logger
}

// NewEmailService creates a new EmailService
func NewEmailService(config SMTPConfig, logger zerolog.Logger) EmailService {
	return &EmailServiceImpl{
		config: config,
		logger: logger,
	}
}

// SendWelcomeEmail notifies a newly created staff account
func (s *EmailServiceImpl) SendWelcomeEmail(toEmail, toName string) error {
	subject := "Welcome to the Placement Portal"
	body := fmt.Sprintf("Hello %s,\r\n\r\nAn account has been created for you on the placement portal. You can sign in with this email address.\r\n", toName)
	return s.send(toEmail, subject, body)
}

// SendApprovalEmail notifies a student that their account was approved
func (s *EmailServiceImpl) SendApprovalEmail(toEmail, toName string) error {
	subject := "Your Placement Portal account is approved"
	body := fmt.Sprintf("Hello %s,\r\n\r\nYour account has been approved by the placement cell. You can now apply to job postings.\r\n", toName)
	return s.send(toEmail, subject, body)
}

func (s *EmailServiceImpl) send(toEmail, subject, body string) error {
	// Without SMTP credentials, log the mail instead of sending (development mode)
	if s.config.Username == "" || s.config.Password == "" {
		s.logger.Warn().
			Str("toEmail", toEmail).
			Str("subject", subject).
			Msg("SMTP credentials not configured - email not sent")
		return nil
	}

	addr := s.config.Host + ":" + strconv.Itoa(s.config.Port)
	auth := smtp.PlainAuth("", s.config.Username, s.config.Password, s.config.Host)

	from := s.config.FromEmail
	msg := []byte(
		"From: " + s.config.FromName + " <" + from + ">\r\n" +
			"To: " + toEmail + "\r\n" +
			"Subject: " + subject + "\r\n" +
			"MIME-Version: 1.0\r\n" +
			"Content-Type: text/plain; charset=\"UTF-8\"\r\n" +
			"\r\n" + body)

	if err := smtp.SendMail(addr, auth, from, []string{toEmail}, msg); err != nil {
		s.logger.Error().Err(err).Str("toEmail", toEmail).Msg("Failed to send email")
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.logger.Info().Str("toEmail", toEmail).Str("subject", subject).Msg("Email sent")
	return nil
}
