// internal/ws/hub.go
//
// The update distributor: tracks the live subscribers of each room and fans
// out serialized state after every mutation. Sending to a subscriber that
// has gone away (closed or backed-up send channel) prunes that subscriber
// and continues with the rest; one broken connection never blocks or loses
// updates for the others.
//
// The Hub implements room.Notifier, so the engine hands it every accepted
// mutation directly after persist.

package ws

import (
	"encoding/json"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/recruiting-bingo/go-server/internal/room"
)

// Hub maintains per-room subscriber sets.
type Hub struct {
	mu    sync.RWMutex // guards rooms
	rooms map[string]map[*Client]bool
}

// NewHub constructs an empty Hub.
func NewHub() *Hub {
	return &Hub{rooms: make(map[string]map[*Client]bool)}
}

// Subscribe adds a client to a room's subscriber set.
func (h *Hub) Subscribe(roomID string, c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	set, ok := h.rooms[roomID]
	if !ok {
		set = make(map[*Client]bool)
		h.rooms[roomID] = set
	}
	set[c] = true
}

// Unsubscribe removes a client and closes its send channel. Safe to call
// more than once for the same client.
func (h *Hub) Unsubscribe(roomID string, c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.drop(roomID, c)
}

// drop removes the client from the set and closes it. Caller holds h.mu.
func (h *Hub) drop(roomID string, c *Client) {
	set, ok := h.rooms[roomID]
	if !ok || !set[c] {
		return
	}
	delete(set, c)
	if len(set) == 0 {
		delete(h.rooms, roomID)
	}
	c.closeSend()
}

// SubscriberCount reports the live subscribers of a room.
func (h *Hub) SubscriberCount(roomID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[roomID])
}

// Broadcast serializes msg once and pushes it to every subscriber of the
// room. Subscribers whose send buffer is full are dropped.
func (h *Hub) Broadcast(roomID string, msg ServerMessage) {
	payload, err := json.Marshal(msg)
	if err != nil {
		log.Error().Err(err).Str("roomId", roomID).Str("type", msg.Type).Msg("marshal broadcast")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	var stale []*Client
	for c := range h.rooms[roomID] {
		if !c.enqueue(payload) {
			stale = append(stale, c)
		}
	}
	for _, c := range stale {
		log.Debug().Str("roomId", roomID).Msg("dropping slow subscriber")
		h.drop(roomID, c)
	}
}

// room.Notifier implementation: the engine calls these after each persisted
// mutation with a snapshot that is safe to share.

func (h *Hub) RoomUpdated(state *room.RoomState) {
	h.Broadcast(state.RoomID, stateUpdate(state))
}

func (h *Hub) PlayerJoined(state *room.RoomState, playerID string) {
	h.Broadcast(state.RoomID, playerJoined(state, playerID))
}

func (h *Hub) BingoConfirmed(state *room.RoomState, playerID string, winnerIndex int) {
	h.Broadcast(state.RoomID, bingoConfirmed(state, playerID, winnerIndex))
}

func (h *Hub) GameEnded(state *room.RoomState) {
	h.Broadcast(state.RoomID, gameEnded(state))
}
