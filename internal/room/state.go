// internal/room/state.go
//
// Core state for one bingo room session.
// Defines:
//   - RoomState: the authoritative per-room record.
//   - PlayerState: one participant's identity and marked vector.
//   - Settings: fixed-at-creation room options.
//
// JSON tags match the wire shape served to clients; timestamps marshal as
// RFC 3339 strings.

package room

import "time"

// Settings holds room options fixed at creation time.
type Settings struct {
	// StopAtFirstWinner ends the room the moment the first winner is
	// confirmed. Later claims still rank but cannot re-open the room.
	StopAtFirstWinner bool `json:"stopAtFirstWinner"`
}

// PlayerState is one participant in a room.
type PlayerState struct {
	PlayerID string    `json:"playerId"`
	Name     string    `json:"name"`
	Color    string    `json:"color"`
	Marked   []bool    `json:"marked"` // index-aligned with RoomState.Card, always 25 entries
	JoinedAt time.Time `json:"joinedAt"`
	IsHost   bool      `json:"isHost"`
}

// RoomState is the authoritative record for one session. It is only ever
// mutated by the Engine, one operation at a time per room.
type RoomState struct {
	RoomID         string                  `json:"roomId"`
	RoomName       string                  `json:"roomName,omitempty"`
	Card           []string                `json:"card"` // 25 distinct entries, fixed for the room's life
	CreatedAt      time.Time               `json:"createdAt"`
	LastActivityAt time.Time               `json:"lastActivityAt"`
	EndedAt        *time.Time              `json:"endedAt"` // non-nil once terminal, never reverts
	Settings       Settings                `json:"settings"`
	Players        map[string]*PlayerState `json:"players"`
	Winners        []string                `json:"winners"` // player ids in confirmation order
}

// Ended reports whether the room has reached its terminal state.
func (s *RoomState) Ended() bool { return s.EndedAt != nil }

// WinnerIndex returns the player's rank in the winners list, or -1.
func (s *RoomState) WinnerIndex(playerID string) int {
	for i, id := range s.Winners {
		if id == playerID {
			return i
		}
	}
	return -1
}

// Clone deep-copies the state so snapshots handed to observers can never
// alias the engine's mutable copy.
func (s *RoomState) Clone() *RoomState {
	out := *s
	out.Card = append([]string(nil), s.Card...)
	out.Winners = append([]string(nil), s.Winners...)
	if s.EndedAt != nil {
		ended := *s.EndedAt
		out.EndedAt = &ended
	}
	out.Players = make(map[string]*PlayerState, len(s.Players))
	for id, p := range s.Players {
		cp := *p
		cp.Marked = append([]bool(nil), p.Marked...)
		out.Players[id] = &cp
	}
	return &out
}
