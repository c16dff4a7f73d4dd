// internal/httpserver/server.go
//
// HTTP server wiring for the bingo backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health", "/api/stats".
//   - Room endpoints mounted under /api/rooms (see routes_rooms.go).
//   - Live update channel at /ws/rooms/{roomID}.
//
// Notes:
//   - Rooms are unauthenticated by design; a player id is the only handle a
//     participant holds.
//   - CORS is origin-aware so a separately-hosted web client can call the API.

package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/recruiting-bingo/go-server/internal/room"
	"github.com/recruiting-bingo/go-server/internal/ws"
)

// Server bundles the router, the room engine, and the update hub.
type Server struct {
	r      *chi.Mux
	engine *room.Engine
	hub    *ws.Hub
}

// New constructs a Server, installs middleware, and registers routes.
func New(engine *room.Engine, hub *ws.Hub) *Server {
	s := &Server{r: chi.NewRouter(), engine: engine, hub: hub}

	// --- middleware ---
	s.r.Use(chimw.RequestID) // add X-Request-ID
	s.r.Use(chimw.RealIP)    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(chimw.Recoverer) // recover from panics
	s.r.Use(corsFromEnv)     // CORS for the web client origin

	// REST surface: bounded handler time, JSON responses.
	s.r.Group(func(r chi.Router) {
		r.Use(chimw.Timeout(10 * time.Second))
		r.Use(jsonContentType)

		// --- diagnostics ---
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"service":"bingo-go","endpoints":["/health","/api/rooms","/api/stats","/ws/rooms/{roomID}"]}`))
		})
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"ok":true}`))
		})

		s.mountRooms(r)

		r.Get("/api/stats", s.handleStats)
	})

	// Live update channel. ServeWS negotiates the upgrade itself, so it
	// stays outside the timeout/JSON middleware.
	s.r.Get("/ws/rooms/{roomID}", s.handleWebsocket)

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"not_found","path":"`+r.URL.Path+`"}`, http.StatusNotFound)
	})

	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// handleWebsocket subscribes the connection to a room's live updates. The
// optional playerId query parameter identifies the observer for presence
// announcements.
func (s *Server) handleWebsocket(w http.ResponseWriter, r *http.Request) {
	roomID := chi.URLParam(r, "roomID")
	playerID := r.URL.Query().Get("playerId")
	ws.ServeWS(s.hub, s.engine, roomID, playerID, w, r)
}

// handleStats reports coarse service counters.
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	count, err := s.engine.RoomCount(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("count rooms")
		http.Error(w, `{"error":"stats unavailable"}`, http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]int{"rooms": count})
}

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// corsFromEnv enables CORS for a single origin.
// Uses CLIENT_ORIGIN env var; defaults to http://localhost:5173.
func corsFromEnv(next http.Handler) http.Handler {
	origin := os.Getenv("CLIENT_ORIGIN")
	if origin == "" {
		origin = "http://localhost:5173"
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ------------------------------ errors -------------------------------------

// writeError maps domain errors onto HTTP statuses with a JSON body.
func writeError(w http.ResponseWriter, err error) {
	var (
		ve room.ValidationError
		nf room.NotFoundError
		se room.StateError
	)
	status := http.StatusInternalServerError
	switch {
	case errors.As(err, &ve):
		status = http.StatusBadRequest
	case errors.As(err, &nf):
		status = http.StatusNotFound
	case errors.As(err, &se):
		status = http.StatusConflict
	default:
		log.Error().Err(err).Msg("room operation failed")
	}
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}
