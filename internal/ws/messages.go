// internal/ws/messages.go
//
// Wire messages for the live room channel. Both directions use a tagged
// JSON union: a "type" discriminator plus the fields that kind needs.
// Dispatch is an explicit switch on the type tag.

package ws

import (
	"time"

	"github.com/recruiting-bingo/go-server/internal/room"
)

// Client-to-server message kinds.
const (
	TypeMarkCell     = "MARK_CELL"
	TypeRequestBingo = "REQUEST_BINGO"
	TypePing         = "PING"
)

// Server-to-client message kinds.
const (
	TypeStateUpdate    = "STATE_UPDATE"
	TypePlayerJoined   = "PLAYER_JOINED"
	TypePlayerLeft     = "PLAYER_LEFT"
	TypeBingoConfirmed = "BINGO_CONFIRMED"
	TypeGameEnded      = "GAME_ENDED"
	TypeError          = "ERROR"
)

// ClientMessage is anything an observer may send over the live channel.
type ClientMessage struct {
	Type     string `json:"type"`
	PlayerID string `json:"playerId,omitempty"`
	Index    int    `json:"index,omitempty"`
	Value    bool   `json:"value,omitempty"`
}

// ServerMessage is anything the distributor pushes to observers.
type ServerMessage struct {
	Type        string          `json:"type"`
	PlayerID    string          `json:"playerId,omitempty"`
	WinnerIndex *int            `json:"winnerIndex,omitempty"`
	EndedAt     *time.Time      `json:"endedAt,omitempty"`
	Message     string          `json:"message,omitempty"`
	State       *room.RoomState `json:"state,omitempty"`
}

func stateUpdate(state *room.RoomState) ServerMessage {
	return ServerMessage{Type: TypeStateUpdate, State: state}
}

func playerJoined(state *room.RoomState, playerID string) ServerMessage {
	return ServerMessage{Type: TypePlayerJoined, PlayerID: playerID, State: state}
}

func playerLeft(state *room.RoomState, playerID string) ServerMessage {
	return ServerMessage{Type: TypePlayerLeft, PlayerID: playerID, State: state}
}

func bingoConfirmed(state *room.RoomState, playerID string, winnerIndex int) ServerMessage {
	return ServerMessage{Type: TypeBingoConfirmed, PlayerID: playerID, WinnerIndex: &winnerIndex, State: state}
}

func gameEnded(state *room.RoomState) ServerMessage {
	return ServerMessage{Type: TypeGameEnded, EndedAt: state.EndedAt, State: state}
}

func errorMessage(msg string) ServerMessage {
	return ServerMessage{Type: TypeError, Message: msg}
}
