package engine

import (
	"fmt"
	"time"
)

// CanMove checks whether the tile at (row,col) can slide into the blank.
// True iff the cell is in bounds, is not the blank itself, and sits exactly
// one cardinal step away from the blank.
func (ps *PuzzleState) CanMove(row, col int) bool {
	if row < 0 || row >= ps.Size || col < 0 || col >= ps.Size {
		return false
	}
	if ps.Grid[row][col] == Blank {
		return false
	}

	rowDiff := abs(row - ps.BlankPos.Row)
	colDiff := abs(col - ps.BlankPos.Col)
	return (rowDiff == 1 && colDiff == 0) || (rowDiff == 0 && colDiff == 1)
}

// MoveTile attempts to slide the tile at (row,col) into the blank cell.
// A rejected move is an idempotent no-op returning false, not an error.
// On success the tile and blank swap, the blank position is co-updated,
// and the move count increments by one. The history entry is stamped with
// the provided clock; nil falls back to the wall clock.
func (ps *PuzzleState) MoveTile(row, col int, config *GameConfig, now func() time.Time) bool {
	if !ps.CanMove(row, col) {
		if config != nil && config.Messages.CantMove != "" {
			ps.Message = config.Messages.CantMove
		}
		return false
	}

	tile := ps.Grid[row][col]
	from := Position{Row: row, Col: col}
	to := ps.BlankPos

	ps.Grid[ps.BlankPos.Row][ps.BlankPos.Col] = tile
	ps.Grid[row][col] = Blank
	ps.BlankPos = from
	ps.Moves++

	ps.addMoveToHistory(tile, from, to, true, now)

	if ps.IsSolved() {
		if config != nil && config.Messages.Solved != "" {
			ps.Message = fmt.Sprintf(config.Messages.Solved, ps.Moves)
		}
	} else if config != nil {
		ps.Message = fmt.Sprintf("Moves: %d", ps.Moves)
	}

	return true
}

// IsSolved scans row-major order and reports whether every cell matches the
// canonical solved arrangement. Short-circuits on the first mismatch.
func (ps *PuzzleState) IsSolved() bool {
	expected := 1
	for row := 0; row < ps.Size; row++ {
		for col := 0; col < ps.Size; col++ {
			if row == ps.Size-1 && col == ps.Size-1 {
				return ps.Grid[row][col] == Blank
			}
			if ps.Grid[row][col] != expected {
				return false
			}
			expected++
		}
	}
	return true
}

// Elapsed returns wall-clock time since the puzzle was generated. Clock
// jumps propagate directly; elapsed time is derived, never accumulated.
func (ps *PuzzleState) Elapsed(now func() time.Time) time.Duration {
	if now == nil {
		now = time.Now
	}
	return now().Sub(ps.StartedAt)
}

// addMoveToHistory appends an entry to both the cumulative history and the
// current restart segment.
func (ps *PuzzleState) addMoveToHistory(tile int, from, to Position, success bool, now func() time.Time) {
	if now == nil {
		now = time.Now
	}
	entry := MoveHistoryEntry{
		Tile:       tile,
		From:       from,
		To:         to,
		Timestamp:  now().Unix(),
		Success:    success,
		MoveNumber: ps.TotalMoves + 1,
	}
	ps.MoveHistory = append(ps.MoveHistory, entry)
	ps.TotalMoves++

	ps.CurrentMoves = append(ps.CurrentMoves, entry)
	ps.CurrentMovesCount++
}

// abs returns the absolute value of x
func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
