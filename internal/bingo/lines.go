// internal/bingo/lines.go
//
// Line evaluation for a 5x5 bingo board.
// Defines:
//   - Lines: the 12 fixed winning lines (5 rows, 5 columns, 2 diagonals).
//   - WinningLines / HasBingo: evaluation of a marked vector.
//   - IndexFromRowCol / RowColFromIndex: coordinate helpers.
//
// Cells are indexed 0..24 row-major (index = row*5 + col). There is no free
// center square: every cell of a line must be marked for the line to count.

package bingo

import "fmt"

const (
	// BoardSize is the side length of the board.
	BoardSize = 5
	// CellCount is the total number of cells on a board.
	CellCount = BoardSize * BoardSize
	// LineCount is the number of winning lines on a board.
	LineCount = 2*BoardSize + 2
)

// Line is an ordered list of the 5 cell indices that make up one winning line.
type Line []int

// Lines holds every winning line in a fixed order: rows 0-4, then columns 0-4,
// then the main diagonal, then the anti-diagonal. Callers that surface "which
// lines won" rely on this ordering, so it must not change.
var Lines = buildLines()

func buildLines() []Line {
	lines := make([]Line, 0, LineCount)

	for row := 0; row < BoardSize; row++ {
		line := make(Line, BoardSize)
		for col := 0; col < BoardSize; col++ {
			line[col] = row*BoardSize + col
		}
		lines = append(lines, line)
	}

	for col := 0; col < BoardSize; col++ {
		line := make(Line, BoardSize)
		for row := 0; row < BoardSize; row++ {
			line[row] = row*BoardSize + col
		}
		lines = append(lines, line)
	}

	main := make(Line, BoardSize)
	anti := make(Line, BoardSize)
	for i := 0; i < BoardSize; i++ {
		main[i] = i * (BoardSize + 1)
		anti[i] = (i + 1) * (BoardSize - 1)
	}
	return append(lines, main, anti)
}

// WinningLines returns every line whose 5 cells are all marked, in the fixed
// construction order. The marked vector must have exactly CellCount entries.
func WinningLines(marked []bool) ([]Line, error) {
	if len(marked) != CellCount {
		return nil, fmt.Errorf("expected %d cells, received %d", CellCount, len(marked))
	}
	var won []Line
	for _, line := range Lines {
		complete := true
		for _, idx := range line {
			if !marked[idx] {
				complete = false
				break
			}
		}
		if complete {
			won = append(won, line)
		}
	}
	return won, nil
}

// HasBingo reports whether at least one winning line is fully marked.
func HasBingo(marked []bool) (bool, error) {
	lines, err := WinningLines(marked)
	if err != nil {
		return false, err
	}
	return len(lines) > 0, nil
}

// IndexFromRowCol converts board coordinates to a cell index.
func IndexFromRowCol(row, col int) (int, error) {
	if row < 0 || row >= BoardSize || col < 0 || col >= BoardSize {
		return 0, fmt.Errorf("row/col out of range: row=%d, col=%d", row, col)
	}
	return row*BoardSize + col, nil
}

// RowColFromIndex converts a cell index to board coordinates.
func RowColFromIndex(index int) (row, col int, err error) {
	if index < 0 || index >= CellCount {
		return 0, 0, fmt.Errorf("index out of range: %d", index)
	}
	return index / BoardSize, index % BoardSize, nil
}
