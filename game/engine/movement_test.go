package engine

import (
	"testing"
	"time"
)

func centerBlankState() *PuzzleState {
	return &PuzzleState{
		Grid:     [][]int{{1, 2, 3}, {4, 0, 5}, {6, 7, 8}},
		Size:     3,
		BlankPos: Position{Row: 1, Col: 1},
	}
}

func TestCanMove(t *testing.T) {
	ps := centerBlankState()

	tests := []struct {
		name string
		row  int
		col  int
		want bool
	}{
		{"above blank", 0, 1, true},
		{"left of blank", 1, 0, true},
		{"right of blank", 1, 2, true},
		{"below blank", 2, 1, true},
		{"diagonal", 0, 0, false},
		{"far corner", 2, 2, false},
		{"blank itself", 1, 1, false},
		{"negative row", -1, 1, false},
		{"row out of bounds", 3, 1, false},
		{"col out of bounds", 1, 3, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ps.CanMove(tt.row, tt.col); got != tt.want {
				t.Errorf("CanMove(%d,%d): expected %v, got %v", tt.row, tt.col, tt.want, got)
			}
		})
	}
}

func TestMoveTile(t *testing.T) {
	ps := centerBlankState()
	config := createTestConfig()

	if !ps.MoveTile(0, 1, config, nil) {
		t.Fatal("Expected legal move to succeed")
	}

	if ps.Grid[1][1] != 2 {
		t.Errorf("Expected tile 2 at old blank cell, got %d", ps.Grid[1][1])
	}
	if ps.Grid[0][1] != Blank {
		t.Errorf("Expected blank at (0,1), got %d", ps.Grid[0][1])
	}
	if ps.BlankPos.Row != 0 || ps.BlankPos.Col != 1 {
		t.Errorf("Expected BlankPos (0,1), got %v", ps.BlankPos)
	}
	if ps.Moves != 1 {
		t.Errorf("Expected 1 move, got %d", ps.Moves)
	}
	if len(ps.MoveHistory) != 1 {
		t.Fatalf("Expected 1 history entry, got %d", len(ps.MoveHistory))
	}

	entry := ps.MoveHistory[0]
	if entry.Tile != 2 {
		t.Errorf("Expected history tile 2, got %d", entry.Tile)
	}
	if entry.From != (Position{Row: 0, Col: 1}) || entry.To != (Position{Row: 1, Col: 1}) {
		t.Errorf("Unexpected history from/to: %v -> %v", entry.From, entry.To)
	}
	if !entry.Success {
		t.Error("Expected history entry marked successful")
	}
}

func TestMoveTileHistoryTimestamp(t *testing.T) {
	ps := centerBlankState()
	config := createTestConfig()
	now := func() time.Time { return time.Unix(1700000000, 0) }

	if !ps.MoveTile(0, 1, config, now) {
		t.Fatal("Expected legal move to succeed")
	}
	if len(ps.MoveHistory) != 1 {
		t.Fatalf("Expected 1 history entry, got %d", len(ps.MoveHistory))
	}
	if got := ps.MoveHistory[0].Timestamp; got != 1700000000 {
		t.Errorf("Expected history timestamp from the injected clock, got %d", got)
	}
}

func TestMoveTileRejected(t *testing.T) {
	ps := centerBlankState()
	config := createTestConfig()

	if ps.MoveTile(0, 0, config, nil) {
		t.Fatal("Expected diagonal move to be rejected")
	}

	if ps.Moves != 0 {
		t.Errorf("Expected move count unchanged, got %d", ps.Moves)
	}
	if ps.Grid[0][0] != 1 {
		t.Errorf("Expected grid unchanged, got %d at (0,0)", ps.Grid[0][0])
	}
	if len(ps.MoveHistory) != 0 {
		t.Errorf("Expected no history entry for rejected move, got %d", len(ps.MoveHistory))
	}
	if ps.Message != config.Messages.CantMove {
		t.Errorf("Expected cant-move message, got %q", ps.Message)
	}
}

func TestMoveTileSolves(t *testing.T) {
	ps := &PuzzleState{
		Grid:     [][]int{{1, 2, 3}, {4, 5, 6}, {7, 0, 8}},
		Size:     3,
		BlankPos: Position{Row: 2, Col: 1},
	}
	config := createTestConfig()

	if !ps.MoveTile(2, 2, config, nil) {
		t.Fatal("Expected final move to succeed")
	}
	if !ps.IsSolved() {
		t.Error("Expected board to be solved")
	}
	if ps.Message != "Solved in 1 moves!" {
		t.Errorf("Expected solved message with move count, got %q", ps.Message)
	}
}

func TestIsSolved(t *testing.T) {
	tests := []struct {
		name string
		grid [][]int
		want bool
	}{
		{"solved", [][]int{{1, 2, 3}, {4, 5, 6}, {7, 8, 0}}, true},
		{"blank displaced", [][]int{{1, 2, 3}, {4, 5, 6}, {7, 0, 8}}, false},
		{"first tiles swapped", [][]int{{2, 1, 3}, {4, 5, 6}, {7, 8, 0}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ps := &PuzzleState{Grid: tt.grid, Size: 3, BlankPos: FindBlank(tt.grid)}
			if got := ps.IsSolved(); got != tt.want {
				t.Errorf("Expected solved=%v, got %v", tt.want, got)
			}
		})
	}
}

func TestElapsed(t *testing.T) {
	start := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	ps := &PuzzleState{StartedAt: start}
	now := func() time.Time { return start.Add(90 * time.Second) }

	if got := ps.Elapsed(now); got != 90*time.Second {
		t.Errorf("Expected 90s elapsed, got %v", got)
	}
}

func TestManhattanDistance(t *testing.T) {
	a := Position{Row: 0, Col: 0}
	b := Position{Row: 2, Col: 3}
	if got := ManhattanDistance(a, b); got != 5 {
		t.Errorf("Expected distance 5, got %d", got)
	}
	if got := ManhattanDistance(b, a); got != 5 {
		t.Errorf("Expected symmetric distance 5, got %d", got)
	}
}
