package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aph138/residence/internal/entity"
	"github.com/aph138/residence/pkg/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingFetcher struct {
	calls int
	rooms []entity.Room
	err   error
}

func (f *countingFetcher) fetch(context.Context) ([]entity.Room, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.rooms, nil
}

func TestRoomCacheTTL(t *testing.T) {
	ctx := context.Background()
	c := clock.NewManual(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))
	rc := NewRoomCache(DefaultRoomTTL, c)
	f := &countingFetcher{rooms: []entity.Room{{ID: "r1", Price: 100}, {ID: "r2", Price: 200}}}

	first, cached, err := rc.Get(ctx, f.fetch)
	require.NoError(t, err)
	assert.False(t, cached)
	assert.Equal(t, 1, f.calls)

	c.Advance(299 * time.Second)
	second, cached, err := rc.Get(ctx, f.fetch)
	require.NoError(t, err)
	assert.True(t, cached)
	assert.Same(t, first, second)
	assert.Equal(t, 1, f.calls)

	c.Advance(2 * time.Second)
	third, cached, err := rc.Get(ctx, f.fetch)
	require.NoError(t, err)
	assert.False(t, cached)
	assert.NotSame(t, first, third)
	assert.Equal(t, 2, f.calls)
}

func TestRoomCacheFetchErrorIsNotCached(t *testing.T) {
	ctx := context.Background()
	c := clock.NewManual(time.Unix(0, 0))
	rc := NewRoomCache(time.Minute, c)
	boom := errors.New("db down")
	f := &countingFetcher{err: boom}

	_, _, err := rc.Get(ctx, f.fetch)
	require.ErrorIs(t, err, boom)

	f.err = nil
	f.rooms = []entity.Room{{ID: "r1"}}
	snap, cached, err := rc.Get(ctx, f.fetch)
	require.NoError(t, err)
	assert.False(t, cached)
	assert.Len(t, snap.Rooms, 1)
	assert.Equal(t, 2, f.calls)
}

func TestRoomCacheInvalidate(t *testing.T) {
	ctx := context.Background()
	rc := NewRoomCache(0, clock.NewManual(time.Unix(0, 0)))
	f := &countingFetcher{}

	_, _, _ = rc.Get(ctx, f.fetch)
	rc.Invalidate()
	_, cached, _ := rc.Get(ctx, f.fetch)
	assert.False(t, cached)
	assert.Equal(t, 2, f.calls)
}
