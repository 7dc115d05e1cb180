package cache

import (
	"context"
	"sync"
	"time"

	"github.com/aph138/residence/internal/entity"
	"github.com/aph138/residence/pkg/clock"
)

const DefaultRoomTTL = 5 * time.Minute

// RoomSnapshot is the list of available rooms, priced ascending, as it was at FetchedAt.
// It must be treated as read only.
type RoomSnapshot struct {
	Rooms     []entity.Room
	FetchedAt time.Time
}

type RoomFetcher func(ctx context.Context) ([]entity.Room, error)

// RoomCache keeps a single snapshot of the available rooms for ttl.
// The lock is never held while fetching, so two concurrent misses may both
// hit the database and the last one to finish wins the slot.
type RoomCache struct {
	mu    sync.Mutex
	entry *RoomSnapshot
	ttl   time.Duration
	clock clock.Clock
}

func NewRoomCache(ttl time.Duration, c clock.Clock) *RoomCache {
	if ttl <= 0 {
		ttl = DefaultRoomTTL
	}
	if c == nil {
		c = clock.Real{}
	}
	return &RoomCache{ttl: ttl, clock: c}
}

// Get returns the cached snapshot while it is younger than ttl, otherwise it calls
// fetch and stores the result. The bool result reports whether the snapshot came from cache.
// A failed fetch is returned as is and leaves the cache untouched.
func (c *RoomCache) Get(ctx context.Context, fetch RoomFetcher) (*RoomSnapshot, bool, error) {
	c.mu.Lock()
	entry := c.entry
	c.mu.Unlock()
	if entry != nil && c.clock.Now().Sub(entry.FetchedAt) < c.ttl {
		return entry, true, nil
	}

	rooms, err := fetch(ctx)
	if err != nil {
		return nil, false, err
	}
	fresh := &RoomSnapshot{Rooms: rooms, FetchedAt: c.clock.Now()}

	c.mu.Lock()
	c.entry = fresh
	c.mu.Unlock()
	return fresh, false, nil
}

// Invalidate drops the current snapshot so the next Get fetches again.
func (c *RoomCache) Invalidate() {
	c.mu.Lock()
	c.entry = nil
	c.mu.Unlock()
}
