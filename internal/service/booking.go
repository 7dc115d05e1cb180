package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aph138/residence/internal/cache"
	"github.com/aph138/residence/internal/db"
	"github.com/aph138/residence/internal/entity"
	"github.com/aph138/residence/internal/notify"
	"github.com/aph138/residence/pkg/clock"
	"golang.org/x/sync/errgroup"
)

type BookingRequest struct {
	Name            string `json:"name" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	Phone           string `json:"phone" validate:"required"`
	IqamaNumber     string `json:"iqama_number,omitempty"`
	RoomID          string `json:"room_id" validate:"required"`
	Checkin         string `json:"checkin" validate:"required"`
	Checkout        string `json:"checkout" validate:"required"`
	SpecialRequests string `json:"special_requests,omitempty"`
}

func (r *BookingRequest) trim() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = normalizeEmail(r.Email)
	r.Phone = strings.TrimSpace(r.Phone)
	r.IqamaNumber = strings.TrimSpace(r.IqamaNumber)
	r.RoomID = strings.TrimSpace(r.RoomID)
	r.Checkin = strings.TrimSpace(r.Checkin)
	r.Checkout = strings.TrimSpace(r.Checkout)
	r.SpecialRequests = strings.TrimSpace(r.SpecialRequests)
}

// Bookings validates, stores and announces booking requests, and serves the room list.
type Bookings struct {
	db         db.Database
	rooms      *cache.RoomCache
	notifier   notify.Notifier
	render     notify.Renderer
	adminEmail string
	clock      clock.Clock
	logger     *slog.Logger
}

func NewBookings(database db.Database, rooms *cache.RoomCache, notifier notify.Notifier, render notify.Renderer, adminEmail string, c clock.Clock, logger *slog.Logger) *Bookings {
	if c == nil {
		c = clock.Real{}
	}
	return &Bookings{
		db:         database,
		rooms:      rooms,
		notifier:   notifier,
		render:     render,
		adminEmail: adminEmail,
		clock:      c,
		logger:     logger,
	}
}

func parseDate(s string) (time.Time, error) {
	t, err := time.Parse(time.DateOnly, s)
	if err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

// Submit stores a pending booking and emails the admin and the guest.
// Email failures are logged only, a stored booking is always a success.
func (b *Bookings) Submit(ctx context.Context, req BookingRequest) (*entity.BookingView, error) {
	req.trim()
	if err := check(req); err != nil {
		return nil, err
	}

	checkin, err := parseDate(req.Checkin)
	if err != nil {
		return nil, &ValidationError{Invalid: map[string]string{"checkin": "must be a date like 2006-01-02"}}
	}
	checkout, err := parseDate(req.Checkout)
	if err != nil {
		return nil, &ValidationError{Invalid: map[string]string{"checkout": "must be a date like 2006-01-02"}}
	}
	if !checkin.Before(checkout) {
		return nil, ErrInvalidDateRange
	}

	booking, err := b.db.InsertBooking(ctx, &entity.Booking{
		Name:            req.Name,
		Email:           req.Email,
		Phone:           req.Phone,
		IqamaNumber:     req.IqamaNumber,
		RoomID:          req.RoomID,
		Checkin:         req.Checkin,
		Checkout:        req.Checkout,
		SpecialRequests: req.SpecialRequests,
		Status:          entity.BookingStatusPending,
		CreatedAt:       b.clock.Now().UTC(),
	})
	if errors.Is(err, db.ErrRoomNotFound) {
		return nil, &ValidationError{Invalid: map[string]string{"room_id": "unknown room"}}
	} else if err != nil {
		b.logger.ErrorContext(ctx, "err when inserting booking", "err", err)
		return nil, fmt.Errorf("%w: %w", ErrPersistence, err)
	}

	view := booking.View()
	if err := b.announce(ctx, booking, view.Room); err != nil {
		b.logger.ErrorContext(ctx, "err when sending booking emails", "booking", booking.ID, "err", err)
	}
	return view, nil
}

func (b *Bookings) announce(ctx context.Context, booking *entity.Booking, room string) error {
	details := notify.BookingDetails{
		ID:              booking.ID,
		Name:            booking.Name,
		Email:           booking.Email,
		Phone:           booking.Phone,
		IqamaNumber:     booking.IqamaNumber,
		Room:            room,
		Checkin:         booking.Checkin,
		Checkout:        booking.Checkout,
		SpecialRequests: booking.SpecialRequests,
	}
	admin, err := b.render.AdminBooking(details)
	if err != nil {
		return err
	}
	guest, err := b.render.GuestBooking(details)
	if err != nil {
		return err
	}

	var g errgroup.Group
	if b.adminEmail != "" {
		g.Go(func() error {
			return b.notifier.Send(ctx, b.adminEmail, admin.Subject, admin.Body)
		})
	}
	g.Go(func() error {
		return b.notifier.Send(ctx, booking.Email, guest.Subject, guest.Body)
	})
	return g.Wait()
}

// ByID looks a booking up by its id. Knowing the id is enough, no access code is needed.
func (b *Bookings) ByID(ctx context.Context, id string) (*entity.BookingView, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, fmt.Errorf("%w: booking id is required", ErrInvalidInput)
	}
	list, err := b.db.FindBookings(ctx, db.FindBookingByID(id))
	if err != nil {
		b.logger.ErrorContext(ctx, "err when finding booking by id", "err", err)
		return nil, fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	if len(list) == 0 {
		return nil, ErrNotFound
	}
	return list[0].View(), nil
}

// ByEmail returns every booking of email, newest first. The caller must have
// confirmed access for email beforehand.
func (b *Bookings) ByEmail(ctx context.Context, email string) ([]*entity.BookingView, error) {
	email = normalizeEmail(email)
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", ErrInvalidInput)
	}
	list, err := b.db.FindBookings(ctx, db.FindBookingByEmail(email))
	if err != nil {
		b.logger.ErrorContext(ctx, "err when finding bookings by email", "err", err)
		return nil, fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	if len(list) == 0 {
		return nil, ErrNotFound
	}
	views := make([]*entity.BookingView, 0, len(list))
	for i := range list {
		views = append(views, list[i].View())
	}
	return views, nil
}

// Rooms returns the available rooms, priced ascending, and whether they came from cache.
func (b *Bookings) Rooms(ctx context.Context) ([]entity.Room, bool, error) {
	snap, cached, err := b.rooms.Get(ctx, b.db.FetchAvailableRooms)
	if err != nil {
		b.logger.ErrorContext(ctx, "err when fetching rooms", "err", err)
		return nil, false, fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	return snap.Rooms, cached, nil
}
