// internal/card/generator.go
//
// Card generation for bingo rooms.
// Responsibilities:
//   - GenerateRandom: draw a card of distinct entries from a content library.
//   - BuildFromCustomInputs: honor user-supplied entries and fill the rest
//     from the library without introducing duplicates.
//
// Randomness comes from crypto/rand so card draws are uniform and not
// reproducible across processes.

package card

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
)

// Size is the number of cells on a generated card.
const Size = 25

// GenerateRandom draws size distinct entries from library via a uniform
// shuffle. The library must contain at least size entries.
func GenerateRandom(library []string, size int) ([]string, error) {
	if len(library) < size {
		return nil, fmt.Errorf("library must contain at least %d entries; received %d", size, len(library))
	}
	return pickUnique(library, size, nil)
}

// BuildFromCustomInputs builds a card where each non-blank custom entry is
// kept verbatim (post-trim) at its slot, and blank slots are filled from
// library entries not already used on the card. Custom input beyond size is
// ignored; missing input is treated as blank.
func BuildFromCustomInputs(custom []string, library []string, size int) ([]string, error) {
	result := make([]string, size)
	used := make(map[string]bool)
	var fillSlots []int

	for i := 0; i < size; i++ {
		entry := ""
		if i < len(custom) {
			entry = strings.TrimSpace(custom[i])
		}
		if entry != "" {
			result[i] = entry
			used[entry] = true
		} else {
			fillSlots = append(fillSlots, i)
		}
	}

	fills, err := pickUnique(library, len(fillSlots), used)
	if err != nil {
		return nil, err
	}
	for i, slot := range fillSlots {
		result[slot] = fills[i]
	}
	return result, nil
}

// pickUnique shuffles the library entries not present in exclude (Fisher-Yates)
// and returns the first count of them.
func pickUnique(library []string, count int, exclude map[string]bool) ([]string, error) {
	pool := make([]string, 0, len(library))
	for _, entry := range library {
		if !exclude[entry] {
			pool = append(pool, entry)
		}
	}
	if len(pool) < count {
		return nil, fmt.Errorf("not enough unique entries available to pick %d items", count)
	}
	for i := len(pool) - 1; i > 0; i-- {
		j := randIndex(i + 1)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:count], nil
}

// randIndex returns a uniform random int in [0, n) from crypto/rand.
func randIndex(n int) int {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0
	}
	return int(v.Int64())
}
