package notify

import (
	"context"
	"fmt"

	"github.com/wneessen/go-mail"
)

// SMTP sends emails through an authenticated submission server (gmail by default).
type SMTP struct {
	client *mail.Client
	from   string
}

func NewSMTP(host string, port int, username, password, from string) (*SMTP, error) {
	client, err := mail.NewClient(host,
		mail.WithPort(port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithTLSPortPolicy(mail.TLSMandatory),
		mail.WithUsername(username),
		mail.WithPassword(password),
	)
	if err != nil {
		return nil, fmt.Errorf("err when creating smtp client: %w", err)
	}
	if from == "" {
		from = username
	}
	return &SMTP{client: client, from: from}, nil
}

func (s *SMTP) Send(ctx context.Context, to, subject, body string) error {
	msg := mail.NewMsg()
	if err := msg.From(s.from); err != nil {
		return fmt.Errorf("err when setting sender %s: %w", s.from, err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("err when setting recipient %s: %w", to, err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextHTML, body)

	if err := s.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("%w: %w", ErrDelivery, err)
	}
	return nil
}
