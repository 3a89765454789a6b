package engine

import (
	"fmt"
	"math/rand"
	"time"
)

// NewSolvedGrid builds the canonical solved board: row-major values
// 1..size²-1 with the blank in the last cell.
func NewSolvedGrid(size int) [][]int {
	grid := make([][]int, size)
	for row := range grid {
		grid[row] = make([]int, size)
		for col := range grid[row] {
			grid[row][col] = row*size + col + 1
		}
	}
	grid[size-1][size-1] = Blank
	return grid
}

// GeneratePuzzle creates a fully-initialized puzzle state for the config.
// The board is shuffled by a random walk of the blank from the solved
// arrangement, then parity-checked; an unsolvable board is repaired by
// swapping the first two non-blank tiles in row-major order.
func GeneratePuzzle(config *GameConfig, rng *rand.Rand, now func() time.Time) (*PuzzleState, error) {
	if err := ValidateGameConfig(config); err != nil {
		return nil, err
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if now == nil {
		now = time.Now
	}

	size := config.Size()
	grid := NewSolvedGrid(size)
	blank := Position{Row: size - 1, Col: size - 1}

	shuffleGrid(grid, blank, size, rng)
	blank = FindBlank(grid)

	if !CheckSolvability(grid) {
		repairParity(grid)
		blank = FindBlank(grid)
	}

	return &PuzzleState{
		Grid:         grid,
		Size:         size,
		BlankPos:     blank,
		Moves:        0,
		StartedAt:    now(),
		ConfigName:   config.Name,
		Difficulty:   config.Difficulty,
		Message:      config.Messages.Welcome,
		MoveHistory:  []MoveHistoryEntry{},
		TotalMoves:   0,
		CurrentMoves: []MoveHistoryEntry{},
	}, nil
}

// shuffleGrid performs size*size*ShuffleFactor random blank walks in place.
// Each iteration tries the four directions in a random order and takes the
// first one that stays inside the board.
func shuffleGrid(grid [][]int, blank Position, size int, rng *rand.Rand) {
	directions := []Position{
		{Row: 0, Col: 1},
		{Row: 0, Col: -1},
		{Row: 1, Col: 0},
		{Row: -1, Col: 0},
	}

	for i := 0; i < size*size*ShuffleFactor; i++ {
		rng.Shuffle(len(directions), func(a, b int) {
			directions[a], directions[b] = directions[b], directions[a]
		})

		for _, dir := range directions {
			row, col := blank.Row+dir.Row, blank.Col+dir.Col
			if row < 0 || row >= size || col < 0 || col >= size {
				continue
			}
			grid[blank.Row][blank.Col] = grid[row][col]
			grid[row][col] = Blank
			blank = Position{Row: row, Col: col}
			break
		}
	}
}

// CheckSolvability reports whether the board can reach the canonical solved
// arrangement via legal slide moves. For odd sizes the board is solvable iff
// the inversion count is even; for even sizes iff the count plus the blank's
// 1-indexed distance from the bottom row is odd.
func CheckSolvability(grid [][]int) bool {
	size := len(grid)
	inversions := CountInversions(grid)

	if size%2 == 1 {
		return inversions%2 == 0
	}

	blankFromBottom := size - FindBlank(grid).Row
	return (inversions+blankFromBottom)%2 == 1
}

// repairParity swaps the first two non-blank cells in row-major order,
// flipping inversion parity by exactly one.
func repairParity(grid [][]int) {
	var first *int
	for row := range grid {
		for col := range grid[row] {
			if grid[row][col] == Blank {
				continue
			}
			if first == nil {
				first = &grid[row][col]
				continue
			}
			*first, grid[row][col] = grid[row][col], *first
			return
		}
	}
}

// FindBlank scans the board for the blank cell.
func FindBlank(grid [][]int) Position {
	for row := range grid {
		for col := range grid[row] {
			if grid[row][col] == Blank {
				return Position{Row: row, Col: col}
			}
		}
	}
	return Position{}
}

// ValidateGrid checks the board invariants: a square grid within the
// supported size bounds, containing each value in 0..size²-1 exactly once.
func ValidateGrid(grid [][]int) error {
	size := len(grid)
	if size < MinBoardSize || size > MaxBoardSize {
		return fmt.Errorf("grid validation: size must be between %d and %d, got %d", MinBoardSize, MaxBoardSize, size)
	}

	seen := make([]bool, size*size)
	for i, row := range grid {
		if len(row) != size {
			return fmt.Errorf("grid validation: row %d has %d cells, expected %d", i, len(row), size)
		}
		for j, value := range row {
			if value < 0 || value >= size*size {
				return fmt.Errorf("grid validation: value %d at (%d,%d) out of range", value, i, j)
			}
			if seen[value] {
				return fmt.Errorf("grid validation: value %d appears more than once", value)
			}
			seen[value] = true
		}
	}
	return nil
}
