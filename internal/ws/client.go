// internal/ws/client.go
//
// One live observer connection. Each client runs a read pump (dispatching
// MARK_CELL / REQUEST_BINGO / PING into the room service) and a write pump
// (draining the send channel, with ping/pong keepalive). ERROR messages go
// only to the offending connection and leave it open.

package ws

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/recruiting-bingo/go-server/internal/room"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second
	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second
	// Send pings to peer with this period (must be less than pongWait).
	pingPeriod = (pongWait * 9) / 10
	// Maximum inbound message size in bytes.
	maxMessageSize = 1024
	// Outbound buffer per subscriber; a subscriber this far behind is dropped.
	sendBufferSize = 32
)

// RoomService is the subset of engine operations reachable over the live
// channel. *room.Engine satisfies it.
type RoomService interface {
	GetState(ctx context.Context, roomID string) (*room.RoomState, error)
	MarkCell(ctx context.Context, roomID, playerID string, index int, value bool) (*room.RoomState, error)
	RequestBingo(ctx context.Context, roomID, playerID string) (*room.RoomState, bool, int, error)
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Browser clients connect from the app origin; CORS-style checks happen
	// at the HTTP layer.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Client is one websocket subscriber of a room.
type Client struct {
	hub      *Hub
	svc      RoomService
	conn     *websocket.Conn
	roomID   string
	playerID string // empty for anonymous observers

	mu     sync.Mutex // guards send/closed
	send   chan []byte
	closed bool
}

// ServeWS upgrades the request, subscribes the connection to the room, and
// pushes an initial state snapshot. Unknown rooms 404 before the upgrade.
func ServeWS(hub *Hub, svc RoomService, roomID, playerID string, w http.ResponseWriter, r *http.Request) {
	state, err := svc.GetState(r.Context(), roomID)
	if err != nil {
		var nf room.NotFoundError
		if errors.As(err, &nf) {
			http.Error(w, `{"error":"room not found"}`, http.StatusNotFound)
			return
		}
		http.Error(w, `{"error":"internal error"}`, http.StatusInternalServerError)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Str("roomId", roomID).Msg("websocket upgrade failed")
		return
	}

	c := &Client{
		hub:      hub,
		svc:      svc,
		conn:     conn,
		roomID:   roomID,
		playerID: playerID,
		send:     make(chan []byte, sendBufferSize),
	}
	hub.Subscribe(roomID, c)
	c.reply(stateUpdate(state))

	go c.writePump()
	go c.readPump()
}

// enqueue offers a payload to the send buffer without blocking. Returns
// false if the client is closed or backed up.
func (c *Client) enqueue(payload []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	select {
	case c.send <- payload:
		return true
	default:
		return false
	}
}

// closeSend marks the client closed and closes the send channel, which ends
// the write pump. Safe to call more than once.
func (c *Client) closeSend() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.send)
	}
}

// reply sends a message to this connection only.
func (c *Client) reply(msg ServerMessage) {
	payload, err := json.Marshal(msg)
	if err != nil {
		log.Error().Err(err).Str("type", msg.Type).Msg("marshal reply")
		return
	}
	c.enqueue(payload)
}

// readPump consumes client messages until the connection dies, then
// unsubscribes and announces the departure.
func (c *Client) readPump() {
	defer func() {
		c.hub.Unsubscribe(c.roomID, c)
		_ = c.conn.Close()
		c.announceLeft()
	}()
	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, payload, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Debug().Err(err).Str("roomId", c.roomID).Msg("websocket closed")
			}
			return
		}
		var msg ClientMessage
		if err := json.Unmarshal(payload, &msg); err != nil {
			c.reply(errorMessage("malformed message"))
			continue
		}
		c.dispatch(msg)
	}
}

// dispatch routes one client message into the room service. Operation
// failures are reported to this connection only; successful mutations reach
// everyone through the engine's notifier.
func (c *Client) dispatch(msg ClientMessage) {
	ctx := context.Background()
	switch msg.Type {
	case TypeMarkCell:
		if _, err := c.svc.MarkCell(ctx, c.roomID, msg.PlayerID, msg.Index, msg.Value); err != nil {
			c.reply(errorMessage(err.Error()))
		}
	case TypeRequestBingo:
		state, confirmed, _, err := c.svc.RequestBingo(ctx, c.roomID, msg.PlayerID)
		if err != nil {
			c.reply(errorMessage(err.Error()))
			return
		}
		if !confirmed {
			// A failed claim mutates nothing, so nothing is broadcast; tell
			// the claimant where things stand.
			c.reply(stateUpdate(state))
		}
	case TypePing:
		state, err := c.svc.GetState(ctx, c.roomID)
		if err != nil {
			c.reply(errorMessage(err.Error()))
			return
		}
		c.reply(stateUpdate(state))
	default:
		c.reply(errorMessage(fmt.Sprintf("unknown message type %q", msg.Type)))
	}
}

// announceLeft broadcasts a presence update when an identified player's
// connection goes away. Departure does not mutate room state.
func (c *Client) announceLeft() {
	if c.playerID == "" {
		return
	}
	state, err := c.svc.GetState(context.Background(), c.roomID)
	if err != nil {
		return
	}
	c.hub.Broadcast(c.roomID, playerLeft(state, c.playerID))
}

// writePump drains the send channel to the connection and keeps the
// connection alive with periodic pings.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()
	for {
		select {
		case payload, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
