package card

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func numberedLibrary(n int) []string {
	lib := make([]string, n)
	for i := range lib {
		lib[i] = fmt.Sprintf("entry %02d", i)
	}
	return lib
}

func assertDistinct(t *testing.T, entries []string) {
	t.Helper()
	seen := make(map[string]bool, len(entries))
	for _, e := range entries {
		assert.NotEmpty(t, e)
		assert.False(t, seen[e], "duplicate entry %q", e)
		seen[e] = true
	}
}

func TestGenerateRandom(t *testing.T) {
	lib := numberedLibrary(40)
	got, err := GenerateRandom(lib, Size)
	require.NoError(t, err)
	require.Len(t, got, Size)
	assertDistinct(t, got)

	inLib := make(map[string]bool, len(lib))
	for _, e := range lib {
		inLib[e] = true
	}
	for _, e := range got {
		assert.True(t, inLib[e], "entry %q not from library", e)
	}
}

func TestGenerateRandomLibraryTooSmall(t *testing.T) {
	_, err := GenerateRandom(numberedLibrary(10), Size)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "library must contain at least 25 entries")
}

func TestGenerateRandomExactFit(t *testing.T) {
	lib := numberedLibrary(Size)
	got, err := GenerateRandom(lib, Size)
	require.NoError(t, err)
	assert.ElementsMatch(t, lib, got)
}

func TestBuildFromCustomInputsKeepsSlots(t *testing.T) {
	custom := make([]string, Size)
	custom[0] = "  my first entry  "
	custom[12] = "center square"
	custom[24] = "my last entry"

	got, err := BuildFromCustomInputs(custom, numberedLibrary(40), Size)
	require.NoError(t, err)
	require.Len(t, got, Size)
	assertDistinct(t, got)

	assert.Equal(t, "my first entry", got[0])
	assert.Equal(t, "center square", got[12])
	assert.Equal(t, "my last entry", got[24])
}

func TestBuildFromCustomInputsExcludesUsedEntries(t *testing.T) {
	lib := numberedLibrary(26)
	// Use one library entry as a custom value; it must not reappear.
	custom := []string{lib[0]}

	got, err := BuildFromCustomInputs(custom, lib, Size)
	require.NoError(t, err)
	assertDistinct(t, got)
	assert.Equal(t, lib[0], got[0])
}

func TestBuildFromCustomInputsShortAndLongInput(t *testing.T) {
	// Shorter than the card: remaining slots are filled from the library.
	got, err := BuildFromCustomInputs([]string{"one", "two"}, numberedLibrary(40), Size)
	require.NoError(t, err)
	require.Len(t, got, Size)
	assert.Equal(t, "one", got[0])
	assert.Equal(t, "two", got[1])

	// Longer than the card: excess input is ignored.
	long := make([]string, Size+10)
	for i := range long {
		long[i] = fmt.Sprintf("custom %02d", i)
	}
	got, err = BuildFromCustomInputs(long, numberedLibrary(40), Size)
	require.NoError(t, err)
	require.Len(t, got, Size)
	assert.Equal(t, "custom 24", got[Size-1])
}

func TestBuildFromCustomInputsNotEnoughUniqueEntries(t *testing.T) {
	blanks := make([]string, Size)
	_, err := BuildFromCustomInputs(blanks, numberedLibrary(2), Size)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not enough unique entries")
}

func TestDefaultLibrary(t *testing.T) {
	lib := DefaultLibrary()
	assert.GreaterOrEqual(t, len(lib), Size)
	assertDistinct(t, lib)

	// Returned slice is a copy.
	lib[0] = "mutated"
	assert.NotEqual(t, "mutated", DefaultLibrary()[0])
}
