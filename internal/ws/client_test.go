package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recruiting-bingo/go-server/internal/card"
	"github.com/recruiting-bingo/go-server/internal/room"
	"github.com/recruiting-bingo/go-server/internal/store"
)

// liveTestServer wires a real engine to a hub behind an httptest server, the
// same shape the HTTP layer uses in production.
type liveTestServer struct {
	engine *room.Engine
	hub    *Hub
	ts     *httptest.Server
}

func newLiveTestServer(t *testing.T) *liveTestServer {
	t.Helper()
	hub := NewHub()
	engine := room.NewEngine(store.NewMemoryStore(), hub, card.DefaultLibrary())

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		ServeWS(hub, engine, r.URL.Query().Get("room"), r.URL.Query().Get("playerId"), w, r)
	})
	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)
	return &liveTestServer{engine: engine, hub: hub, ts: ts}
}

func (s *liveTestServer) dial(t *testing.T, roomID, playerID string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(s.ts.URL, "http") + "/ws?room=" + roomID
	if playerID != "" {
		url += "&playerId=" + playerID
	}
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func readServerMessage(t *testing.T, conn *websocket.Conn) ServerMessage {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, payload, err := conn.ReadMessage()
	require.NoError(t, err)
	var msg ServerMessage
	require.NoError(t, json.Unmarshal(payload, &msg))
	return msg
}

func writeClientMessage(t *testing.T, conn *websocket.Conn, msg ClientMessage) {
	t.Helper()
	require.NoError(t, conn.WriteJSON(msg))
}

func createLiveRoom(t *testing.T, s *liveTestServer, stopAtFirst bool) (roomID, hostID string) {
	t.Helper()
	state, hostID, err := s.engine.Create(context.Background(), room.CreateParams{
		RoomID:            "LIVE1",
		CreatorName:       "Host",
		CreatorColor:      "#123456",
		StopAtFirstWinner: stopAtFirst,
	})
	require.NoError(t, err)
	return state.RoomID, hostID
}

func TestServeWSUnknownRoom(t *testing.T) {
	s := newLiveTestServer(t)
	url := "ws" + strings.TrimPrefix(s.ts.URL, "http") + "/ws?room=NOPE"
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestServeWSInitialSnapshot(t *testing.T) {
	s := newLiveTestServer(t)
	roomID, _ := createLiveRoom(t, s, false)

	conn := s.dial(t, roomID, "")
	msg := readServerMessage(t, conn)
	assert.Equal(t, TypeStateUpdate, msg.Type)
	require.NotNil(t, msg.State)
	assert.Equal(t, roomID, msg.State.RoomID)
	assert.Len(t, msg.State.Card, 25)
}

func TestPingElicitsFreshState(t *testing.T) {
	s := newLiveTestServer(t)
	roomID, hostID := createLiveRoom(t, s, false)

	conn := s.dial(t, roomID, hostID)
	readServerMessage(t, conn) // initial snapshot

	writeClientMessage(t, conn, ClientMessage{Type: TypePing, PlayerID: hostID})
	msg := readServerMessage(t, conn)
	assert.Equal(t, TypeStateUpdate, msg.Type)
	require.NotNil(t, msg.State)
}

func TestMarkCellBroadcastsToAllSubscribers(t *testing.T) {
	s := newLiveTestServer(t)
	roomID, hostID := createLiveRoom(t, s, false)

	marker := s.dial(t, roomID, hostID)
	watcher := s.dial(t, roomID, "")
	readServerMessage(t, marker)
	readServerMessage(t, watcher)

	writeClientMessage(t, marker, ClientMessage{Type: TypeMarkCell, PlayerID: hostID, Index: 12, Value: true})

	for _, conn := range []*websocket.Conn{marker, watcher} {
		msg := readServerMessage(t, conn)
		assert.Equal(t, TypeStateUpdate, msg.Type)
		require.NotNil(t, msg.State)
		assert.True(t, msg.State.Players[hostID].Marked[12])
	}
}

func TestErrorGoesToOffendingConnectionOnly(t *testing.T) {
	s := newLiveTestServer(t)
	roomID, hostID := createLiveRoom(t, s, false)

	offender := s.dial(t, roomID, hostID)
	bystander := s.dial(t, roomID, "")
	readServerMessage(t, offender)
	readServerMessage(t, bystander)

	// Out-of-range index fails validation; only the offender hears about it.
	writeClientMessage(t, offender, ClientMessage{Type: TypeMarkCell, PlayerID: hostID, Index: 99, Value: true})
	msg := readServerMessage(t, offender)
	assert.Equal(t, TypeError, msg.Type)
	assert.NotEmpty(t, msg.Message)

	// The connection stays open and usable.
	writeClientMessage(t, offender, ClientMessage{Type: TypePing, PlayerID: hostID})
	msg = readServerMessage(t, offender)
	assert.Equal(t, TypeStateUpdate, msg.Type)

	// The bystander saw neither message.
	require.NoError(t, bystander.SetReadDeadline(time.Now().Add(300*time.Millisecond)))
	_, _, err := bystander.ReadMessage()
	assert.Error(t, err)
}

func TestMalformedPayloadGetsError(t *testing.T) {
	s := newLiveTestServer(t)
	roomID, _ := createLiveRoom(t, s, false)

	conn := s.dial(t, roomID, "")
	readServerMessage(t, conn)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("{not json")))
	msg := readServerMessage(t, conn)
	assert.Equal(t, TypeError, msg.Type)

	writeClientMessage(t, conn, ClientMessage{Type: "BOGUS"})
	msg = readServerMessage(t, conn)
	assert.Equal(t, TypeError, msg.Type)
}

func TestRequestBingoOverLiveChannel(t *testing.T) {
	s := newLiveTestServer(t)
	roomID, hostID := createLiveRoom(t, s, true)

	conn := s.dial(t, roomID, hostID)
	readServerMessage(t, conn)

	// Claim without a line: private state update, no winner.
	writeClientMessage(t, conn, ClientMessage{Type: TypeRequestBingo, PlayerID: hostID})
	msg := readServerMessage(t, conn)
	assert.Equal(t, TypeStateUpdate, msg.Type)
	assert.Empty(t, msg.State.Winners)

	// Complete the top row; each mark broadcasts a state update.
	for col := 0; col < 5; col++ {
		writeClientMessage(t, conn, ClientMessage{Type: TypeMarkCell, PlayerID: hostID, Index: col, Value: true})
		readServerMessage(t, conn)
	}

	writeClientMessage(t, conn, ClientMessage{Type: TypeRequestBingo, PlayerID: hostID})
	msg = readServerMessage(t, conn)
	require.Equal(t, TypeBingoConfirmed, msg.Type)
	assert.Equal(t, hostID, msg.PlayerID)
	require.NotNil(t, msg.WinnerIndex)
	assert.Equal(t, 0, *msg.WinnerIndex)

	// stopAtFirstWinner: the terminal transition follows.
	msg = readServerMessage(t, conn)
	assert.Equal(t, TypeGameEnded, msg.Type)
	require.NotNil(t, msg.EndedAt)
}

func TestPlayerLeftAnnouncedOnDisconnect(t *testing.T) {
	s := newLiveTestServer(t)
	roomID, hostID := createLiveRoom(t, s, false)

	leaver := s.dial(t, roomID, hostID)
	watcher := s.dial(t, roomID, "")
	readServerMessage(t, leaver)
	readServerMessage(t, watcher)

	require.NoError(t, leaver.Close())

	msg := readServerMessage(t, watcher)
	assert.Equal(t, TypePlayerLeft, msg.Type)
	assert.Equal(t, hostID, msg.PlayerID)
}
