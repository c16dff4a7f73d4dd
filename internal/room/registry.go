// internal/room/registry.go
//
// Player naming logic used by Join: case-insensitive name lookup within a
// room's player set, and disambiguation of colliding display names by
// appending " (2)", " (3)", ... until unique. Operates on the player map
// passed in by the engine; no storage of its own.

package room

import (
	"fmt"
	"strings"
)

// FindPlayerByName returns the player whose display name matches name
// case-insensitively (both sides trimmed), or nil.
func FindPlayerByName(players map[string]*PlayerState, name string) *PlayerState {
	want := strings.ToLower(strings.TrimSpace(name))
	for _, p := range players {
		if strings.ToLower(strings.TrimSpace(p.Name)) == want {
			return p
		}
	}
	return nil
}

// DisambiguateName returns name unchanged if no player already uses it,
// otherwise the first "<name> (n)" (n starting at 2) that is free.
func DisambiguateName(players map[string]*PlayerState, name string) string {
	if FindPlayerByName(players, name) == nil {
		return name
	}
	for n := 2; ; n++ {
		candidate := fmt.Sprintf("%s (%d)", name, n)
		if FindPlayerByName(players, candidate) == nil {
			return candidate
		}
	}
}
