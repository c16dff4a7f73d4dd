// internal/store/memory.go
//
// In-memory implementation of the room.Store interface.
// This is a lightweight persistence layer used when durability is not
// required, primarily in development/testing.
//
// Characteristics:
//   - Stores deep copies of room state keyed by room id.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - State is lost when the process restarts.
//   - A room.NotFoundError is returned for missing room ids on Get().

package store

import (
	"context"
	"sync"

	"github.com/recruiting-bingo/go-server/internal/room"
)

// memory is an in-memory map-based room.Store implementation.
type memory struct {
	mu    sync.RWMutex               // guards rooms map
	rooms map[string]*room.RoomState // keyed by RoomState.RoomID
}

// NewMemoryStore constructs a new in-memory store.
func NewMemoryStore() room.Store {
	return &memory{rooms: make(map[string]*room.RoomState)}
}

// Save stores a deep copy of the state so later engine mutations cannot
// alias the stored record.
func (m *memory) Save(ctx context.Context, state *room.RoomState) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rooms[state.RoomID] = state.Clone()
	return nil
}

// Get returns a deep copy of the stored state, or a NotFoundError.
func (m *memory) Get(ctx context.Context, roomID string) (*room.RoomState, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if state, ok := m.rooms[roomID]; ok {
		return state.Clone(), nil
	}
	return nil, room.NotFoundError{Msg: "room not found"}
}

// Count reports the number of stored rooms.
func (m *memory) Count(ctx context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.rooms), nil
}
