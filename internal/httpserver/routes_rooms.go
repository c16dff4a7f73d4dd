// internal/httpserver/routes_rooms.go
//
// REST routes for room sessions, mounted under /api/rooms:
//   - POST /api/rooms                 → create a room, creator becomes host
//   - GET  /api/rooms/{roomID}        → point-in-time room snapshot
//   - POST /api/rooms/{roomID}/join   → join (or rejoin) a room
//   - POST /api/rooms/{roomID}/mark   → mark/unmark one cell
//   - POST /api/rooms/{roomID}/bingo  → claim a completed line
//
// Room codes are generated server-side from an unambiguous alphabet and
// retried on the (unlikely) collision.

package httpserver

import (
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/recruiting-bingo/go-server/internal/room"
)

// mountRooms registers all /api/rooms routes.
func (s *Server) mountRooms(root chi.Router) {
	root.Route("/api/rooms", func(r chi.Router) {
		r.Post("/", s.handleCreateRoom)
		r.Route("/{roomID}", func(r chi.Router) {
			r.Get("/", s.handleGetRoom)
			r.Post("/join", s.handleJoinRoom)
			r.Post("/mark", s.handleMarkCell)
			r.Post("/bingo", s.handleRequestBingo)
		})
	})
}

// createRoomReq/Res payloads for POST /api/rooms.
type createRoomReq struct {
	CreatorName       string   `json:"creatorName"`
	CreatorColor      string   `json:"creatorColor"`
	RoomName          string   `json:"roomName,omitempty"`
	CustomEntries     []string `json:"customEntries,omitempty"`
	StopAtFirstWinner bool     `json:"stopAtFirstWinner,omitempty"`
}
type createRoomRes struct {
	Room     *room.RoomState `json:"room"`
	PlayerID string          `json:"playerId"`
}

func (s *Server) handleCreateRoom(w http.ResponseWriter, r *http.Request) {
	var req createRoomReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"invalid json"}`, http.StatusBadRequest)
		return
	}

	// Retry on room-code collision; anything else surfaces to the caller.
	var (
		state    *room.RoomState
		playerID string
		err      error
	)
	for attempt := 0; attempt < 5; attempt++ {
		state, playerID, err = s.engine.Create(r.Context(), room.CreateParams{
			RoomID:            genRoomCode(),
			RoomName:          req.RoomName,
			CreatorName:       req.CreatorName,
			CreatorColor:      req.CreatorColor,
			StopAtFirstWinner: req.StopAtFirstWinner,
			CustomEntries:     req.CustomEntries,
		})
		var se room.StateError
		if errors.As(err, &se) {
			continue
		}
		break
	}
	if err != nil {
		writeError(w, err)
		return
	}

	log.Info().Str("roomId", state.RoomID).Str("playerId", playerID).Msg("room created")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(createRoomRes{Room: state, PlayerID: playerID})
}

// getRoomRes payload for GET /api/rooms/{roomID}.
type getRoomRes struct {
	Room *room.RoomState `json:"room"`
}

func (s *Server) handleGetRoom(w http.ResponseWriter, r *http.Request) {
	state, err := s.engine.GetState(r.Context(), chi.URLParam(r, "roomID"))
	if err != nil {
		writeError(w, err)
		return
	}
	_ = json.NewEncoder(w).Encode(getRoomRes{Room: state})
}

// joinRoomReq/Res payloads for POST /api/rooms/{roomID}/join.
type joinRoomReq struct {
	Name   string `json:"name"`
	Color  string `json:"color"`
	Rejoin bool   `json:"rejoin,omitempty"`
}
type joinRoomRes struct {
	Room     *room.RoomState `json:"room"`
	PlayerID string          `json:"playerId"`
}

func (s *Server) handleJoinRoom(w http.ResponseWriter, r *http.Request) {
	var req joinRoomReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"invalid json"}`, http.StatusBadRequest)
		return
	}
	roomID := chi.URLParam(r, "roomID")
	state, playerID, err := s.engine.Join(r.Context(), roomID, req.Name, req.Color, req.Rejoin)
	if err != nil {
		writeError(w, err)
		return
	}
	log.Info().Str("roomId", roomID).Str("playerId", playerID).Bool("rejoin", req.Rejoin).Msg("player joined")
	_ = json.NewEncoder(w).Encode(joinRoomRes{Room: state, PlayerID: playerID})
}

// markCellReq/Res payloads for POST /api/rooms/{roomID}/mark.
type markCellReq struct {
	PlayerID string `json:"playerId"`
	Index    int    `json:"index"`
	Value    bool   `json:"value"`
}
type markCellRes struct {
	Room *room.RoomState `json:"room"`
}

func (s *Server) handleMarkCell(w http.ResponseWriter, r *http.Request) {
	var req markCellReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"invalid json"}`, http.StatusBadRequest)
		return
	}
	state, err := s.engine.MarkCell(r.Context(), chi.URLParam(r, "roomID"), req.PlayerID, req.Index, req.Value)
	if err != nil {
		writeError(w, err)
		return
	}
	_ = json.NewEncoder(w).Encode(markCellRes{Room: state})
}

// requestBingoReq/Res payloads for POST /api/rooms/{roomID}/bingo.
type requestBingoReq struct {
	PlayerID string `json:"playerId"`
}
type requestBingoRes struct {
	Room            *room.RoomState `json:"room"`
	WinnerConfirmed bool            `json:"winnerConfirmed"`
	WinnerIndex     *int            `json:"winnerIndex,omitempty"`
}

func (s *Server) handleRequestBingo(w http.ResponseWriter, r *http.Request) {
	var req requestBingoReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"invalid json"}`, http.StatusBadRequest)
		return
	}
	roomID := chi.URLParam(r, "roomID")
	state, confirmed, winnerIndex, err := s.engine.RequestBingo(r.Context(), roomID, req.PlayerID)
	if err != nil {
		writeError(w, err)
		return
	}
	res := requestBingoRes{Room: state, WinnerConfirmed: confirmed}
	if confirmed {
		res.WinnerIndex = &winnerIndex
		log.Info().Str("roomId", roomID).Str("playerId", req.PlayerID).Int("winnerIndex", winnerIndex).Msg("bingo confirmed")
	}
	_ = json.NewEncoder(w).Encode(res)
}

// roomCodeAlphabet omits easily-confused characters (0/O, 1/I/L).
const roomCodeAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"

// genRoomCode creates a 6-character shareable room code. Bytes at or above
// the rejection bound are discarded so every symbol is equally likely.
func genRoomCode() string {
	const bound = 256 - 256%len(roomCodeAlphabet)
	var code [6]byte
	n := 0
	for n < len(code) {
		var buf [16]byte
		if _, err := rand.Read(buf[:]); err != nil {
			panic(fmt.Sprintf("room code entropy: %v", err))
		}
		for _, v := range buf {
			if n == len(code) {
				break
			}
			if int(v) >= bound {
				continue
			}
			code[n] = roomCodeAlphabet[int(v)%len(roomCodeAlphabet)]
			n++
		}
	}
	return string(code[:])
}
