// internal/store/sqlite.go
//
// SQLite-backed implementation of the room.Store interface.
// One row per room in the rooms table, holding the JSON-serialized
// RoomState plus a few scalar columns for inspection. Upserts on save, so
// the row always reflects the latest accepted mutation; state survives
// process restarts.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/recruiting-bingo/go-server/internal/room"
)

// sqlite persists rooms in a SQL database (driver: mattn/go-sqlite3).
type sqlite struct {
	db *sql.DB
}

// NewSQLiteStore constructs a store over an opened, migrated database.
func NewSQLiteStore(db *sql.DB) room.Store {
	return &sqlite{db: db}
}

// Save upserts the room row with the serialized state.
func (s *sqlite) Save(ctx context.Context, state *room.RoomState) error {
	blob, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshal room %s: %w", state.RoomID, err)
	}
	var endedAt any
	if state.EndedAt != nil {
		endedAt = state.EndedAt.UTC().Format(time.RFC3339Nano)
	}
	_, err = s.db.ExecContext(ctx, `
        INSERT INTO rooms (room_id, state, created_at, last_activity_at, ended_at)
        VALUES (?, ?, ?, ?, ?)
        ON CONFLICT(room_id) DO UPDATE SET
            state = excluded.state,
            last_activity_at = excluded.last_activity_at,
            ended_at = excluded.ended_at`,
		state.RoomID,
		string(blob),
		state.CreatedAt.UTC().Format(time.RFC3339Nano),
		state.LastActivityAt.UTC().Format(time.RFC3339Nano),
		endedAt,
	)
	if err != nil {
		return fmt.Errorf("save room %s: %w", state.RoomID, err)
	}
	return nil
}

// Get loads and deserializes the room row, or returns a NotFoundError.
func (s *sqlite) Get(ctx context.Context, roomID string) (*room.RoomState, error) {
	var blob string
	err := s.db.QueryRowContext(ctx,
		`SELECT state FROM rooms WHERE room_id = ?`, roomID,
	).Scan(&blob)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, room.NotFoundError{Msg: "room not found"}
	}
	if err != nil {
		return nil, fmt.Errorf("load room %s: %w", roomID, err)
	}
	var state room.RoomState
	if err := json.Unmarshal([]byte(blob), &state); err != nil {
		return nil, fmt.Errorf("unmarshal room %s: %w", roomID, err)
	}
	return &state, nil
}

// Count reports the number of stored rooms.
func (s *sqlite) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM rooms`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
