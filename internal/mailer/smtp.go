package mailer

import (
	"fmt"
	"net/http"
	"time"

	"gopkg.in/mail.v2"
)

type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromEmail string
	Timeout   time.Duration
}

type SMTPMailer struct {
	dialer    *mail.Dialer
	fromEmail string
	backoff   time.Duration
}

func NewSMTPMailer(cfg SMTPConfig) *SMTPMailer {
	d := mail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	if cfg.Timeout > 0 {
		d.Timeout = cfg.Timeout
	}
	return &SMTPMailer{dialer: d, fromEmail: cfg.FromEmail, backoff: time.Second}
}

// Send renders templateFile and delivers it, retrying with a linear backoff.
func (m *SMTPMailer) Send(templateFile, name, email string, data any) (int, error) {
	rendered, err := Render(templateFile, data)
	if err != nil {
		return -1, err
	}

	message := mail.NewMessage()
	message.SetAddressHeader("From", m.fromEmail, FromName)
	message.SetAddressHeader("To", email, name)
	message.SetHeader("Subject", rendered.Subject)
	message.SetBody("text/plain", rendered.Plain)
	message.AddAlternative("text/html", rendered.HTML)

	var lastErr error
	for i := 1; i <= maxRetries; i++ {
		lastErr = m.dialer.DialAndSend(message)
		if lastErr == nil {
			return http.StatusOK, nil
		}
		if i < maxRetries {
			time.Sleep(m.backoff * time.Duration(i))
		}
	}

	return -1, fmt.Errorf("mailer: failed to send to %s after %d attempts: %w", email, maxRetries, lastErr)
}
