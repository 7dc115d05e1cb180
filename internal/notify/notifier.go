package notify

import (
	"context"
	"errors"
	"log/slog"
)

var ErrDelivery = errors.New("email delivery failed")

// Notifier delivers an html email to a single address.
type Notifier interface {
	Send(ctx context.Context, to, subject, body string) error
}

// Log writes emails to the logger instead of sending them, for local development.
type Log struct {
	logger *slog.Logger
}

func NewLog(logger *slog.Logger) *Log {
	return &Log{logger: logger}
}

func (l *Log) Send(ctx context.Context, to, subject, body string) error {
	l.logger.InfoContext(ctx, "email not sent, no smtp configured", "to", to, "subject", subject, "body", body)
	return nil
}
