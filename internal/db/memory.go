package db

import (
	"context"
	"sort"
	"sync"

	"github.com/aph138/residence/internal/entity"
	"github.com/google/uuid"
)

// Memory holds rooms and bookings in memory. It is meant for local development and tests.
type Memory struct {
	mu       sync.RWMutex
	rooms    map[string]entity.Room
	bookings map[string]entity.Booking
}

func NewMemory(rooms ...entity.Room) *Memory {
	m := &Memory{
		rooms:    make(map[string]entity.Room),
		bookings: make(map[string]entity.Booking),
	}
	for _, r := range rooms {
		m.rooms[r.ID] = r
	}
	return m
}

func (m *Memory) FetchAvailableRooms(context.Context) ([]entity.Room, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]entity.Room, 0, len(m.rooms))
	for _, r := range m.rooms {
		if r.Available {
			result = append(result, r)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		if result[i].Price == result[j].Price {
			return result[i].ID < result[j].ID
		}
		return result[i].Price < result[j].Price
	})
	return result, nil
}

func (m *Memory) InsertBooking(_ context.Context, b *entity.Booking) (*entity.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	room, exist := m.rooms[b.RoomID]
	if !exist {
		return nil, ErrRoomNotFound
	}
	stored := *b
	stored.ID = uuid.NewString()
	stored.RoomName = ""
	m.bookings[stored.ID] = stored

	stored.RoomName = room.Name
	return &stored, nil
}

func (m *Memory) FindBookings(_ context.Context, filters ...BookingFilter) ([]entity.Booking, error) {
	f := applyFilters(filters)
	m.mu.RLock()
	defer m.mu.RUnlock()

	var result []entity.Booking
	for _, b := range m.bookings {
		if f.id != "" && b.ID != f.id {
			continue
		}
		if f.email != "" && b.Email != f.email {
			continue
		}
		b.RoomName = m.rooms[b.RoomID].Name
		result = append(result, b)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (m *Memory) Close(context.Context) error {
	return nil
}
