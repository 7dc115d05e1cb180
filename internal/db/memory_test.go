package db

import (
	"context"
	"testing"
	"time"

	"github.com/aph138/residence/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRooms() []entity.Room {
	return []entity.Room{
		{ID: "suite", Name: "Royal Suite", Price: 900, Available: true},
		{ID: "single", Name: "Single", Price: 150, Available: true},
		{ID: "closed", Name: "Closed", Price: 50, Available: false},
		{ID: "double", Name: "Double", Price: 300, Available: true},
	}
}

func TestMemoryFetchAvailableRooms(t *testing.T) {
	m := NewMemory(testRooms()...)
	rooms, err := m.FetchAvailableRooms(context.Background())
	require.NoError(t, err)

	var ids []string
	for _, r := range rooms {
		ids = append(ids, r.ID)
	}
	assert.Equal(t, []string{"single", "double", "suite"}, ids)
}

func TestMemoryInsertAndFindBookings(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(testRooms()...)

	older, err := m.InsertBooking(ctx, &entity.Booking{Email: "a@b.com", RoomID: "single", CreatedAt: time.Unix(100, 0)})
	require.NoError(t, err)
	assert.NotEmpty(t, older.ID)
	assert.Equal(t, "Single", older.RoomName)

	newer, err := m.InsertBooking(ctx, &entity.Booking{Email: "a@b.com", RoomID: "suite", CreatedAt: time.Unix(200, 0)})
	require.NoError(t, err)
	_, err = m.InsertBooking(ctx, &entity.Booking{Email: "c@d.com", RoomID: "double", CreatedAt: time.Unix(300, 0)})
	require.NoError(t, err)

	byEmail, err := m.FindBookings(ctx, FindBookingByEmail("a@b.com"))
	require.NoError(t, err)
	require.Len(t, byEmail, 2)
	assert.Equal(t, newer.ID, byEmail[0].ID)
	assert.Equal(t, "Royal Suite", byEmail[0].RoomName)

	byID, err := m.FindBookings(ctx, FindBookingByID(older.ID))
	require.NoError(t, err)
	require.Len(t, byID, 1)
	assert.Equal(t, "a@b.com", byID[0].Email)
}

func TestMemoryInsertUnknownRoom(t *testing.T) {
	m := NewMemory()
	_, err := m.InsertBooking(context.Background(), &entity.Booking{RoomID: "nope"})
	assert.ErrorIs(t, err, ErrRoomNotFound)
}
