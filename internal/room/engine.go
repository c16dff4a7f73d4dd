// internal/room/engine.go
//
// The room session engine: sole writer of RoomState.
// Responsibilities:
//   - Create / Join / MarkCell / RequestBingo / GetState operations.
//   - Per-room serialization: every operation against one room runs alone,
//     operations against different rooms run in parallel.
//   - Strict load -> validate -> mutate -> persist -> distribute sequencing;
//     a store failure propagates and leaves the in-memory state untouched.
//
// The engine caches loaded rooms and falls back to the Store on a cache miss,
// so state created before a process restart is picked up transparently.

package room

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/recruiting-bingo/go-server/internal/bingo"
	"github.com/recruiting-bingo/go-server/internal/card"
)

// Store defines the persistence layer for room state.
// Implementations may be backed by memory, SQLite, etc. Get returns a
// NotFoundError for unknown room ids.
type Store interface {
	// Save persists or updates a room's full state.
	Save(ctx context.Context, state *RoomState) error

	// Get retrieves a room by id.
	Get(ctx context.Context, roomID string) (*RoomState, error)

	// Count reports the number of stored rooms.
	Count(ctx context.Context) (int, error)
}

// Notifier receives room events after a successful persist. It is called
// while the room lock is held, so event order matches mutation order.
// Implementations must not block; the update distributor hands messages to
// buffered per-subscriber channels.
type Notifier interface {
	RoomUpdated(state *RoomState)
	PlayerJoined(state *RoomState, playerID string)
	BingoConfirmed(state *RoomState, playerID string, winnerIndex int)
	GameEnded(state *RoomState)
}

// NopNotifier discards all events. Useful in tests and tooling.
type NopNotifier struct{}

func (NopNotifier) RoomUpdated(*RoomState)                 {}
func (NopNotifier) PlayerJoined(*RoomState, string)        {}
func (NopNotifier) BingoConfirmed(*RoomState, string, int) {}
func (NopNotifier) GameEnded(*RoomState)                   {}

// Engine holds the rooms this process is serving. All state transitions go
// through its methods.
type Engine struct {
	store   Store
	notify  Notifier
	library []string

	mu    sync.Mutex // guards rooms
	rooms map[string]*roomHandle
}

// roomHandle serializes access to one room. state is nil until first load.
type roomHandle struct {
	mu    sync.Mutex
	state *RoomState
}

// NewEngine constructs an Engine over the given store and notifier. library
// supplies card content for rooms without (enough) custom entries.
func NewEngine(st Store, notify Notifier, library []string) *Engine {
	if notify == nil {
		notify = NopNotifier{}
	}
	return &Engine{
		store:   st,
		notify:  notify,
		library: library,
		rooms:   make(map[string]*roomHandle),
	}
}

// CreateParams carries the inputs of a Create operation.
type CreateParams struct {
	RoomID            string
	RoomName          string
	CreatorName       string
	CreatorColor      string
	StopAtFirstWinner bool
	CustomEntries     []string
}

// Create initializes a new room with its card and the creator as host.
// Returns the new state and the creator's player id.
func (e *Engine) Create(ctx context.Context, p CreateParams) (*RoomState, string, error) {
	name := strings.TrimSpace(p.CreatorName)
	if name == "" {
		return nil, "", validationErrorf("creator name must not be empty")
	}
	if p.RoomID == "" {
		return nil, "", validationErrorf("room id must not be empty")
	}

	entries, err := e.buildCard(p.CustomEntries)
	if err != nil {
		return nil, "", ValidationError{Msg: err.Error()}
	}

	playerID := uuid.NewString()
	var snap *RoomState
	err = func() error {
		h := e.handle(p.RoomID)
		h.mu.Lock()
		defer h.mu.Unlock()

		if h.state != nil {
			return StateError{Msg: "room already exists"}
		}
		var nf NotFoundError
		if _, err := e.store.Get(ctx, p.RoomID); err == nil {
			return StateError{Msg: "room already exists"}
		} else if !errors.As(err, &nf) {
			return err
		}

		now := time.Now().UTC()
		state := &RoomState{
			RoomID:         p.RoomID,
			RoomName:       strings.TrimSpace(p.RoomName),
			Card:           entries,
			CreatedAt:      now,
			LastActivityAt: now,
			Settings:       Settings{StopAtFirstWinner: p.StopAtFirstWinner},
			Players: map[string]*PlayerState{
				playerID: {
					PlayerID: playerID,
					Name:     name,
					Color:    p.CreatorColor,
					Marked:   make([]bool, bingo.CellCount),
					JoinedAt: now,
					IsHost:   true,
				},
			},
			Winners: []string{},
		}

		if err := e.store.Save(ctx, state); err != nil {
			return err
		}
		h.state = state
		snap = state.Clone()
		e.notify.RoomUpdated(snap)
		return nil
	}()
	if err != nil {
		return nil, "", err
	}
	return snap, playerID, nil
}

// buildCard generates a room card, honoring custom entries when any slot is
// non-blank.
func (e *Engine) buildCard(custom []string) ([]string, error) {
	for _, entry := range custom {
		if strings.TrimSpace(entry) != "" {
			return card.BuildFromCustomInputs(custom, e.library, card.Size)
		}
	}
	return card.GenerateRandom(e.library, card.Size)
}

// Join adds a participant to a room, or reconnects an existing one when
// rejoin is set and a case-insensitive name match exists. Returns the state
// and the joined player's id.
func (e *Engine) Join(ctx context.Context, roomID, name, color string, rejoin bool) (*RoomState, string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, "", validationErrorf("player name must not be empty")
	}

	var snap *RoomState
	var playerID string
	err := e.withRoom(ctx, roomID, func(state *RoomState) error {
		if state.Ended() {
			return StateError{Msg: "room has ended"}
		}

		now := time.Now().UTC()
		prevActivity := state.LastActivityAt
		if existing := FindPlayerByName(state.Players, name); existing != nil && rejoin {
			// Idempotent reconnect: same id, no new player.
			playerID = existing.PlayerID
			state.LastActivityAt = now
			if err := e.store.Save(ctx, state); err != nil {
				state.LastActivityAt = prevActivity
				return err
			}
			snap = state.Clone()
			e.notify.PlayerJoined(snap, playerID)
			return nil
		}

		playerID = uuid.NewString()
		state.Players[playerID] = &PlayerState{
			PlayerID: playerID,
			Name:     DisambiguateName(state.Players, name),
			Color:    color,
			Marked:   make([]bool, bingo.CellCount),
			JoinedAt: now,
		}
		state.LastActivityAt = now
		if err := e.store.Save(ctx, state); err != nil {
			delete(state.Players, playerID)
			state.LastActivityAt = prevActivity
			return err
		}
		snap = state.Clone()
		e.notify.PlayerJoined(snap, playerID)
		return nil
	})
	if err != nil {
		return nil, "", err
	}
	return snap, playerID, nil
}

// MarkCell sets one cell of a player's marked vector. Setting a cell to its
// current value is a no-op in observable outcome but still counts as
// activity.
func (e *Engine) MarkCell(ctx context.Context, roomID, playerID string, index int, value bool) (*RoomState, error) {
	if index < 0 || index >= bingo.CellCount {
		return nil, validationErrorf("cell index %d out of range [0, %d)", index, bingo.CellCount)
	}

	var snap *RoomState
	err := e.withRoom(ctx, roomID, func(state *RoomState) error {
		player, ok := state.Players[playerID]
		if !ok {
			return notFoundErrorf("player not found")
		}
		if state.Ended() {
			return StateError{Msg: "room has ended"}
		}

		prev := player.Marked[index]
		prevActivity := state.LastActivityAt
		player.Marked[index] = value
		state.LastActivityAt = time.Now().UTC()
		if err := e.store.Save(ctx, state); err != nil {
			player.Marked[index] = prev
			state.LastActivityAt = prevActivity
			return err
		}
		snap = state.Clone()
		e.notify.RoomUpdated(snap)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return snap, nil
}

// RequestBingo evaluates a player's claim. A claim with no complete line is
// side-effect free and repeatable. A confirmed claim appends the player to
// the winners exactly once; re-claims return the existing rank. Under
// StopAtFirstWinner the first confirmation is the room's one terminal
// transition.
func (e *Engine) RequestBingo(ctx context.Context, roomID, playerID string) (*RoomState, bool, int, error) {
	var snap *RoomState
	winnerIndex := -1
	ended := false
	err := e.withRoom(ctx, roomID, func(state *RoomState) error {
		player, ok := state.Players[playerID]
		if !ok {
			return notFoundErrorf("player not found")
		}

		won, err := bingo.HasBingo(player.Marked)
		if err != nil {
			return ValidationError{Msg: err.Error()}
		}
		if !won {
			snap = state.Clone()
			return nil
		}

		appended := false
		if idx := state.WinnerIndex(playerID); idx >= 0 {
			winnerIndex = idx
		} else {
			state.Winners = append(state.Winners, playerID)
			winnerIndex = len(state.Winners) - 1
			appended = true
		}

		now := time.Now().UTC()
		prevActivity := state.LastActivityAt
		if state.Settings.StopAtFirstWinner && winnerIndex == 0 && state.EndedAt == nil {
			state.EndedAt = &now
			ended = true
		}
		state.LastActivityAt = now
		if err := e.store.Save(ctx, state); err != nil {
			if appended {
				state.Winners = state.Winners[:len(state.Winners)-1]
			}
			if ended {
				state.EndedAt = nil
				ended = false
			}
			state.LastActivityAt = prevActivity
			return err
		}
		snap = state.Clone()
		e.notify.BingoConfirmed(snap, playerID, winnerIndex)
		if ended {
			e.notify.GameEnded(snap)
		}
		return nil
	})
	if err != nil {
		return nil, false, -1, err
	}
	if winnerIndex < 0 {
		return snap, false, -1, nil
	}
	return snap, true, winnerIndex, nil
}

// GetState returns a point-in-time snapshot of a room.
func (e *Engine) GetState(ctx context.Context, roomID string) (*RoomState, error) {
	var snap *RoomState
	err := e.withRoom(ctx, roomID, func(state *RoomState) error {
		snap = state.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return snap, nil
}

// RoomCount reports how many rooms the store currently holds.
func (e *Engine) RoomCount(ctx context.Context) (int, error) {
	return e.store.Count(ctx)
}

// handle returns the serialization handle for a room, creating it if needed.
func (e *Engine) handle(roomID string) *roomHandle {
	e.mu.Lock()
	defer e.mu.Unlock()
	h, ok := e.rooms[roomID]
	if !ok {
		h = &roomHandle{}
		e.rooms[roomID] = h
	}
	return h
}

// withRoom runs fn with exclusive access to the room's state, loading it
// from the store on a cache miss (e.g. after a process restart).
func (e *Engine) withRoom(ctx context.Context, roomID string, fn func(*RoomState) error) error {
	h := e.handle(roomID)
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.state == nil {
		state, err := e.store.Get(ctx, roomID)
		if err != nil {
			e.evictEmpty(roomID, h)
			return err
		}
		h.state = state
	}
	return fn(h.state)
}

// evictEmpty removes a handle that never loaded state, so unknown room ids
// do not accumulate handles.
func (e *Engine) evictEmpty(roomID string, h *roomHandle) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if cur, ok := e.rooms[roomID]; ok && cur == h && h.state == nil {
		delete(e.rooms, roomID)
	}
}
