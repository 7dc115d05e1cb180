package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/aph138/residence/internal/notify"
)

type ContactRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Message string `json:"message" validate:"required"`
}

// Contact forwards contact form messages to the inbox and thanks the sender.
type Contact struct {
	notifier notify.Notifier
	render   notify.Renderer
	inbox    string
	logger   *slog.Logger
}

func NewContact(notifier notify.Notifier, render notify.Renderer, inbox string, logger *slog.Logger) *Contact {
	return &Contact{notifier: notifier, render: render, inbox: inbox, logger: logger}
}

// Submit sends the message to the inbox first, then the confirmation to the sender.
func (c *Contact) Submit(ctx context.Context, req ContactRequest) error {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = normalizeEmail(req.Email)
	req.Message = strings.TrimSpace(req.Message)
	if err := check(req); err != nil {
		return err
	}

	details := notify.ContactDetails{Name: req.Name, Email: req.Email, Message: req.Message}
	admin, err := c.render.ContactAdmin(details)
	if err != nil {
		return err
	}
	guest, err := c.render.ContactGuest(details)
	if err != nil {
		return err
	}
	if err := c.notifier.Send(ctx, c.inbox, admin.Subject, admin.Body); err != nil {
		c.logger.ErrorContext(ctx, "err when sending contact message", "err", err)
		return errors.Join(ErrDeliveryFailed, err)
	}
	if err := c.notifier.Send(ctx, req.Email, guest.Subject, guest.Body); err != nil {
		c.logger.ErrorContext(ctx, "err when sending contact confirmation", "to", req.Email, "err", err)
		return errors.Join(ErrDeliveryFailed, err)
	}
	return nil
}
