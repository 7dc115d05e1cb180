package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aph138/residence/internal/cache"
	"github.com/aph138/residence/internal/notify"
	"github.com/aph138/residence/pkg/otp"
)

const DefaultCodeTTL = 5 * time.Minute

// Verification implements the two code based flows: the booking OTP, keyed by phone
// or email, and the booking access token that gates looking bookings up by email.
// Both flows share one SecretStore but never share keys.
type Verification struct {
	store    cache.SecretStore
	notifier notify.Notifier
	render   notify.Renderer
	ttl      time.Duration
	logger   *slog.Logger
}

func NewVerification(store cache.SecretStore, notifier notify.Notifier, render notify.Renderer, ttl time.Duration, logger *slog.Logger) *Verification {
	if ttl <= 0 {
		ttl = DefaultCodeTTL
	}
	return &Verification{
		store:    store,
		notifier: notifier,
		render:   render,
		ttl:      ttl,
		logger:   logger,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// otpKey prefers the phone when both are given.
func otpKey(email, phone string) (string, error) {
	if phone = strings.TrimSpace(phone); phone != "" {
		return "otp:phone:" + phone, nil
	}
	if email = normalizeEmail(email); email != "" {
		return "otp:email:" + email, nil
	}
	return "", fmt.Errorf("%w: email or phone required", ErrInvalidInput)
}

func tokenKey(email string) (string, error) {
	if email = normalizeEmail(email); email != "" {
		return "token:" + email, nil
	}
	return "", fmt.Errorf("%w: email is required", ErrInvalidInput)
}

// SendOTP generates a booking OTP and emails it when an email is given.
// Delivery is best effort: a failed email is logged and SendOTP still succeeds.
func (v *Verification) SendOTP(ctx context.Context, email, phone string) error {
	key, err := otpKey(email, phone)
	if err != nil {
		return err
	}
	code, err := v.store.Generate(ctx, key, v.ttl)
	if err != nil {
		return fmt.Errorf("err when generating otp: %w", err)
	}

	if email = normalizeEmail(email); email != "" {
		if err := v.deliver(ctx, email, func() (notify.Email, error) { return v.render.OTP(code) }); err != nil {
			v.logger.ErrorContext(ctx, "err when sending otp email", "to", email, "err", err)
		}
	}
	if strings.TrimSpace(phone) != "" {
		// there is no sms transport yet, the code can only be verified if it was emailed too
		v.logger.WarnContext(ctx, "otp generated for phone but sms delivery is not available", "phone", strings.TrimSpace(phone))
	}
	return nil
}

func (v *Verification) VerifyOTP(ctx context.Context, email, phone, code string) (otp.Outcome, error) {
	key, err := otpKey(email, phone)
	if err != nil {
		return otp.NotFound, err
	}
	return v.verify(ctx, key, code)
}

// RequestAccess emails a booking access code. Unlike SendOTP, a failed email is an error.
func (v *Verification) RequestAccess(ctx context.Context, email string) error {
	key, err := tokenKey(email)
	if err != nil {
		return err
	}
	code, err := v.store.Generate(ctx, key, v.ttl)
	if err != nil {
		return fmt.Errorf("err when generating access token: %w", err)
	}
	err = v.deliver(ctx, normalizeEmail(email), func() (notify.Email, error) { return v.render.AccessCode(code, v.ttl) })
	if err != nil {
		v.logger.ErrorContext(ctx, "err when sending access code email", "to", normalizeEmail(email), "err", err)
		return errors.Join(ErrDeliveryFailed, err)
	}
	return nil
}

func (v *Verification) ConfirmAccess(ctx context.Context, email, token string) (otp.Outcome, error) {
	key, err := tokenKey(email)
	if err != nil {
		return otp.NotFound, err
	}
	return v.verify(ctx, key, token)
}

func (v *Verification) verify(ctx context.Context, key, code string) (otp.Outcome, error) {
	outcome, err := v.store.Verify(ctx, key, strings.TrimSpace(code))
	if err != nil {
		return otp.NotFound, fmt.Errorf("err when verifying code: %w", err)
	}
	return outcome, nil
}

func (v *Verification) deliver(ctx context.Context, to string, build func() (notify.Email, error)) error {
	email, err := build()
	if err != nil {
		return err
	}
	return v.notifier.Send(ctx, to, email.Subject, email.Body)
}

// Reason is the message shown to the guest for a verification outcome.
func Reason(o otp.Outcome) string {
	switch o {
	case otp.Verified:
		return "Code verified"
	case otp.Expired:
		return "Code expired"
	default:
		return "Invalid code"
	}
}
