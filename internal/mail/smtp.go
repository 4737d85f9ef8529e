// Package mail delivers email over authenticated SMTP submission.
package mail

import (
	"context"
	"fmt"
	"time"

	"github.com/wneessen/go-mail"
)

// SMTPSender sends plain-text email through an SMTP submission server.
// STARTTLS is mandatory; a server that refuses to upgrade fails the send.
type SMTPSender struct {
	client *mail.Client
	from   string
}

// NewSMTPSender configures a client for the given server. The timeout
// bounds the connection dial and each command exchange.
func NewSMTPSender(host string, port int, username, password, from string, timeout time.Duration) (*SMTPSender, error) {
	client, err := mail.NewClient(host,
		mail.WithPort(port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(username),
		mail.WithPassword(password),
		mail.WithTLSPolicy(mail.TLSMandatory),
		mail.WithTimeout(timeout),
	)
	if err != nil {
		return nil, fmt.Errorf("create smtp client: %w", err)
	}
	return &SMTPSender{client: client, from: from}, nil
}

// Send delivers one message. Any transport or auth failure comes back as
// an error for the caller to translate; nothing is retried here.
func (s *SMTPSender) Send(ctx context.Context, to, subject, body string) error {
	msg := mail.NewMsg()
	if err := msg.From(s.from); err != nil {
		return fmt.Errorf("set from address: %w", err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("set to address: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, body)

	if err := s.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}
	return nil
}
