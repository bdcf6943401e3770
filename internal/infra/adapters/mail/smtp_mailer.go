// File: internal/infra/adapters/mail/smtp_mailer.go
package mail

import (
	"context"
	"fmt"

	gomail "github.com/wneessen/go-mail"

	"ai-mock-interview/internal/config"
	"ai-mock-interview/internal/domain"
	"ai-mock-interview/internal/domain/ports/adapter"
)

var _ adapter.Mailer = (*SMTPMailer)(nil)

// SMTPMailer delivers notifications over plain SMTP with LOGIN auth.
// Configuration is checked per send, not at construction: the refund relay
// reports missing mail configuration as a request-time error rather than
// refusing to start.
type SMTPMailer struct {
	cfg config.SMTPConfig
}

func NewSMTPMailer(cfg config.SMTPConfig) *SMTPMailer {
	return &SMTPMailer{cfg: cfg}
}

func (m *SMTPMailer) Name() string { return "smtp" }

func (m *SMTPMailer) Send(ctx context.Context, msg adapter.Mail) error {
	if m.cfg.Host == "" || m.cfg.Username == "" || m.cfg.Password == "" || m.cfg.From == "" {
		return fmt.Errorf("smtp credentials: %w", domain.ErrNotConfigured)
	}
	if msg.To == "" {
		return fmt.Errorf("mail recipient: %w", domain.ErrInvalidArgument)
	}

	message := gomail.NewMsg()
	if err := message.From(m.cfg.From); err != nil {
		return fmt.Errorf("mail from: %w", err)
	}
	if err := message.To(msg.To); err != nil {
		return fmt.Errorf("mail to: %w", err)
	}
	if msg.ReplyTo != "" {
		// Best effort; a bad requester address must not block the relay.
		_ = message.ReplyTo(msg.ReplyTo)
	}
	message.Subject(msg.Subject)
	message.SetBodyString(gomail.TypeTextPlain, msg.Body)

	client, err := gomail.NewClient(m.cfg.Host,
		gomail.WithPort(m.cfg.Port),
		gomail.WithSMTPAuth(gomail.SMTPAuthLogin),
		gomail.WithUsername(m.cfg.Username),
		gomail.WithPassword(m.cfg.Password),
		gomail.WithTLSPolicy(gomail.TLSOpportunistic),
	)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, message); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}
