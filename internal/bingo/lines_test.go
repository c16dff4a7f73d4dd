package bingo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func markCells(indices ...int) []bool {
	marked := make([]bool, CellCount)
	for _, i := range indices {
		marked[i] = true
	}
	return marked
}

func TestLinesTable(t *testing.T) {
	require.Len(t, Lines, LineCount)
	for _, line := range Lines {
		require.Len(t, line, BoardSize)
	}

	// Fixed ordering: rows, then columns, then the two diagonals.
	assert.Equal(t, Line{0, 1, 2, 3, 4}, Lines[0])
	assert.Equal(t, Line{20, 21, 22, 23, 24}, Lines[4])
	assert.Equal(t, Line{0, 5, 10, 15, 20}, Lines[5])
	assert.Equal(t, Line{4, 9, 14, 19, 24}, Lines[9])
	assert.Equal(t, Line{0, 6, 12, 18, 24}, Lines[10])
	assert.Equal(t, Line{4, 8, 12, 16, 20}, Lines[11])
}

func TestWinningLinesEmptyBoard(t *testing.T) {
	lines, err := WinningLines(markCells())
	require.NoError(t, err)
	assert.Empty(t, lines)

	won, err := HasBingo(markCells())
	require.NoError(t, err)
	assert.False(t, won)
}

func TestWinningLinesTopRow(t *testing.T) {
	marked := markCells(0, 1, 2, 3, 4)

	lines, err := WinningLines(marked)
	require.NoError(t, err)
	require.Equal(t, []Line{{0, 1, 2, 3, 4}}, lines)

	won, err := HasBingo(marked)
	require.NoError(t, err)
	assert.True(t, won)
}

func TestWinningLinesBothDiagonals(t *testing.T) {
	marked := markCells(0, 6, 12, 18, 24, 4, 8, 16, 20)

	lines, err := WinningLines(marked)
	require.NoError(t, err)
	// Main diagonal first, then anti-diagonal, matching table order.
	assert.Equal(t, []Line{{0, 6, 12, 18, 24}, {4, 8, 12, 16, 20}}, lines)
}

func TestWinningLinesAllMarked(t *testing.T) {
	marked := make([]bool, CellCount)
	for i := range marked {
		marked[i] = true
	}
	lines, err := WinningLines(marked)
	require.NoError(t, err)
	assert.Len(t, lines, LineCount)
}

func TestWinningLinesRejectsWrongLength(t *testing.T) {
	_, err := WinningLines(make([]bool, 24))
	assert.Error(t, err)

	_, err = HasBingo(nil)
	assert.Error(t, err)
}

func TestIncompleteLineDoesNotWin(t *testing.T) {
	won, err := HasBingo(markCells(0, 1, 2, 3))
	require.NoError(t, err)
	assert.False(t, won)
}

func TestCoordinateHelpers(t *testing.T) {
	idx, err := IndexFromRowCol(2, 3)
	require.NoError(t, err)
	assert.Equal(t, 13, idx)

	row, col, err := RowColFromIndex(13)
	require.NoError(t, err)
	assert.Equal(t, 2, row)
	assert.Equal(t, 3, col)

	_, err = IndexFromRowCol(5, 0)
	assert.Error(t, err)
	_, _, err = RowColFromIndex(25)
	assert.Error(t, err)
}
