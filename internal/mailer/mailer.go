// Package mailer delivers one-time-code emails over SMTP.
package mailer

import (
	"bytes"
	"context"
	"fmt"

	"github.com/wneessen/go-mail"

	"github.com/MKhiriev/invest-keeper/internal/config"
	"github.com/MKhiriev/invest-keeper/internal/logger"
)

// SMTPMailer sends transactional mail through a single SMTP account.
// It is safe for concurrent use; the underlying client serialises dials.
type SMTPMailer struct {
	client *mail.Client
	from   string
	logger *logger.Logger
}

// NewSMTPMailer builds a mailer from SMTP settings. Authentication is only
// configured when a username is present, so a local relay without auth also
// works.
func NewSMTPMailer(cfg config.SMTP, logger *logger.Logger) (*SMTPMailer, error) {
	opts := []mail.Option{
		mail.WithPort(cfg.Port),
		mail.WithTLSPortPolicy(mail.TLSOpportunistic),
	}
	if cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.Username),
			mail.WithPassword(cfg.Password),
		)
	}

	client, err := mail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("smtp client creation failed: %w", err)
	}

	return &SMTPMailer{
		client: client,
		from:   cfg.From,
		logger: logger,
	}, nil
}

// SendTwoFactorCode delivers a sign-in / 2FA-enable code.
func (m *SMTPMailer) SendTwoFactorCode(ctx context.Context, to, name, code string) error {
	return m.sendCode(ctx, to, "Your Two-Factor Authentication Code", codeEmail{
		Title:   "2FA Code",
		Heading: "Two-Factor Authentication",
		Intro:   "You've requested a two-factor authentication code. Use the code below to complete your login:",
		Name:    name,
		Code:    code,
		Expiry:  "10 minutes",
		Warning: "If you didn't request this code, please ignore this email or contact support if you have concerns.",
	})
}

// SendEmailVerificationCode delivers the code that confirms a new address
// during an email change. It goes to the address being claimed.
func (m *SMTPMailer) SendEmailVerificationCode(ctx context.Context, to, name, code string) error {
	return m.sendCode(ctx, to, "Verify Your New Email Address", codeEmail{
		Title:   "Email Verification",
		Heading: "Email Verification",
		Intro:   "You've requested to change your email address. Use the verification code below to confirm your new email:",
		Name:    name,
		Code:    code,
		Expiry:  "30 minutes",
		Warning: "If you didn't request this email change, please ignore this email or contact support immediately.",
	})
}

// SendPasswordResetCode delivers a forgot-password code.
func (m *SMTPMailer) SendPasswordResetCode(ctx context.Context, to, name, code string) error {
	return m.sendCode(ctx, to, "Password Reset Code", codeEmail{
		Title:   "Password Reset",
		Heading: "Password Reset",
		Intro:   "You've requested to reset your password. Use the verification code below to reset your password:",
		Name:    name,
		Code:    code,
		Expiry:  "30 minutes",
		Warning: "If you didn't request a password reset, please ignore this email or contact support immediately. Your password will remain unchanged.",
	})
}

func (m *SMTPMailer) sendCode(ctx context.Context, to, subject string, data codeEmail) error {
	log := logger.FromContext(ctx)

	var body bytes.Buffer
	if err := codeEmailTemplate.Execute(&body, data); err != nil {
		return fmt.Errorf("email template rendering failed: %w", err)
	}

	msg := mail.NewMsg()
	if err := msg.From(m.from); err != nil {
		return fmt.Errorf("invalid sender address: %w", err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("invalid recipient address: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextHTML, body.String())

	if err := m.client.DialAndSendWithContext(ctx, msg); err != nil {
		log.Err(err).Str("subject", subject).Msg("smtp delivery failed")
		return fmt.Errorf("smtp delivery failed: %w", err)
	}

	return nil
}
