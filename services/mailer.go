package services

import (
	"errors"
	"fmt"

	mail "gopkg.in/mail.v2"

	"github.com/taskforge/task-tracker/config"
)

// Mailer delivers a rendered digest. The reminder job needs no more
// surface than this, which also keeps transport failures easy to fake
// in tests.
type Mailer interface {
	Send(subject, htmlBody string) error
}

// SMTPMailer sends mail through the transport configured at startup.
type SMTPMailer struct {
	cfg config.SMTPConfig
	to  string
}

func NewSMTPMailer(cfg config.SMTPConfig, recipient string) *SMTPMailer {
	return &SMTPMailer{cfg: cfg, to: recipient}
}

// Send delivers one HTML message to the configured recipient. An
// unconfigured transport is an error the caller logs; it must never be
// fatal.
func (m *SMTPMailer) Send(subject, htmlBody string) error {
	if m.cfg.Host == "" || m.to == "" {
		return errors.New("smtp transport not configured")
	}

	from := m.cfg.From
	if from == "" {
		from = m.cfg.Username
	}

	msg := mail.NewMessage()
	msg.SetAddressHeader("From", from, "Task Manager")
	msg.SetHeader("To", m.to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	dialer := mail.NewDialer(m.cfg.Host, m.cfg.Port, m.cfg.Username, m.cfg.Password)
	if err := dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}
