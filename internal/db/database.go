package db

import (
	"context"
	"errors"

	"github.com/aph138/residence/internal/entity"
)

var ErrRoomNotFound = errors.New("room not found")

type Database interface {
	// FetchAvailableRooms returns rooms marked available, ordered by price ascending.
	FetchAvailableRooms(ctx context.Context) ([]entity.Room, error)

	// InsertBooking stores b, filling its ID, and returns it with RoomName joined.
	// It returns ErrRoomNotFound if b.RoomID points to no room.
	InsertBooking(ctx context.Context, b *entity.Booking) (*entity.Booking, error)

	// FindBookings returns bookings matching every filter, newest first, with RoomName joined.
	FindBookings(ctx context.Context, filters ...BookingFilter) ([]entity.Booking, error)

	// Close closes all connections and releases resources.
	Close(ctx context.Context) error
}

type bookingFilter struct {
	id    string
	email string
}

type BookingFilter func(*bookingFilter)

func FindBookingByID(id string) BookingFilter {
	return func(f *bookingFilter) {
		f.id = id
	}
}

func FindBookingByEmail(email string) BookingFilter {
	return func(f *bookingFilter) {
		f.email = email
	}
}

func applyFilters(filters []BookingFilter) bookingFilter {
	var f bookingFilter
	for _, opt := range filters {
		opt(&f)
	}
	return f
}
