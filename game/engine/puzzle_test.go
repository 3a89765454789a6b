package engine

import (
	"math/rand"
	"testing"
	"time"
)

func createTestConfig() *GameConfig {
	config := &GameConfig{
		Name:        "Engine Test Config",
		Description: "Configuration for engine tests",
		Difficulty:  Easy,
	}
	config.Messages.Welcome = "Welcome to the test puzzle!"
	config.Messages.Solved = "Solved in %d moves!"
	config.Messages.CantMove = "Can't move that tile!"
	config.Messages.Restarted = "Reshuffled!"
	return config
}

func testRand() *rand.Rand {
	return rand.New(rand.NewSource(42))
}

func TestNewSolvedGrid(t *testing.T) {
	grid := NewSolvedGrid(3)

	expected := [][]int{
		{1, 2, 3},
		{4, 5, 6},
		{7, 8, 0},
	}
	for row := range expected {
		for col := range expected[row] {
			if grid[row][col] != expected[row][col] {
				t.Errorf("Expected %d at (%d,%d), got %d", expected[row][col], row, col, grid[row][col])
			}
		}
	}
}

func TestGeneratePuzzle(t *testing.T) {
	config := createTestConfig()
	state, err := GeneratePuzzle(config, testRand(), nil)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if state.Size != 3 {
		t.Errorf("Expected size 3 for easy difficulty, got %d", state.Size)
	}
	if err := ValidateGrid(state.Grid); err != nil {
		t.Errorf("Generated grid failed validation: %v", err)
	}
	if !CheckSolvability(state.Grid) {
		t.Error("Generated grid is not solvable")
	}
	if state.Grid[state.BlankPos.Row][state.BlankPos.Col] != Blank {
		t.Errorf("BlankPos %v does not point at the blank", state.BlankPos)
	}
	if state.Moves != 0 {
		t.Errorf("Expected 0 moves on a fresh puzzle, got %d", state.Moves)
	}
	if state.Message != config.Messages.Welcome {
		t.Errorf("Expected welcome message, got %q", state.Message)
	}
}

func TestGeneratePuzzleAllDifficulties(t *testing.T) {
	tests := []struct {
		difficulty Difficulty
		wantSize   int
	}{
		{Easy, 3},
		{Medium, 4},
		{Hard, 5},
		{Expert, 6},
	}

	for _, tt := range tests {
		t.Run(string(tt.difficulty), func(t *testing.T) {
			config := createTestConfig()
			config.Difficulty = tt.difficulty

			state, err := GeneratePuzzle(config, testRand(), nil)
			if err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}
			if state.Size != tt.wantSize {
				t.Errorf("Expected size %d, got %d", tt.wantSize, state.Size)
			}
			if !CheckSolvability(state.Grid) {
				t.Error("Generated grid is not solvable")
			}
		})
	}
}

func TestGeneratePuzzleAlwaysSolvable(t *testing.T) {
	config := createTestConfig()
	config.Difficulty = Medium

	for seed := int64(0); seed < 50; seed++ {
		rng := rand.New(rand.NewSource(seed))
		state, err := GeneratePuzzle(config, rng, nil)
		if err != nil {
			t.Fatalf("Seed %d: expected no error, got %v", seed, err)
		}
		if !CheckSolvability(state.Grid) {
			t.Errorf("Seed %d produced an unsolvable grid: %v", seed, state.Grid)
		}
	}
}

func TestGeneratePuzzleInjectedClock(t *testing.T) {
	config := createTestConfig()
	fixed := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	now := func() time.Time { return fixed }

	state, err := GeneratePuzzle(config, testRand(), now)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !state.StartedAt.Equal(fixed) {
		t.Errorf("Expected StartedAt %v, got %v", fixed, state.StartedAt)
	}
}

func TestGeneratePuzzleInvalidConfig(t *testing.T) {
	_, err := GeneratePuzzle(nil, testRand(), nil)
	if err == nil {
		t.Error("Expected error for nil config")
	}

	config := createTestConfig()
	config.Difficulty = "impossible"
	_, err = GeneratePuzzle(config, testRand(), nil)
	if err == nil {
		t.Error("Expected error for unrecognized difficulty")
	}
}

func TestCheckSolvability(t *testing.T) {
	tests := []struct {
		name string
		grid [][]int
		want bool
	}{
		{
			name: "solved 3x3",
			grid: [][]int{{1, 2, 3}, {4, 5, 6}, {7, 8, 0}},
			want: true,
		},
		{
			name: "single inversion 3x3",
			grid: [][]int{{1, 2, 3}, {4, 5, 6}, {8, 7, 0}},
			want: false,
		},
		{
			name: "solved 4x4",
			grid: [][]int{{1, 2, 3, 4}, {5, 6, 7, 8}, {9, 10, 11, 12}, {13, 14, 15, 0}},
			want: true,
		},
		{
			name: "swapped 14 and 15",
			grid: [][]int{{1, 2, 3, 4}, {5, 6, 7, 8}, {9, 10, 11, 12}, {13, 15, 14, 0}},
			want: false,
		},
		{
			name: "blank moved up one row 4x4",
			grid: [][]int{{1, 2, 3, 4}, {5, 6, 7, 8}, {9, 10, 11, 0}, {13, 14, 15, 12}},
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CheckSolvability(tt.grid); got != tt.want {
				t.Errorf("Expected solvable=%v, got %v", tt.want, got)
			}
		})
	}
}

func TestRepairParity(t *testing.T) {
	grid := [][]int{{1, 2, 3}, {4, 5, 6}, {8, 7, 0}}
	if CheckSolvability(grid) {
		t.Fatal("Fixture should start unsolvable")
	}

	repairParity(grid)

	if !CheckSolvability(grid) {
		t.Errorf("Expected repaired grid to be solvable, got %v", grid)
	}
	if grid[0][0] != 2 || grid[0][1] != 1 {
		t.Errorf("Expected first two tiles swapped, got %v", grid[0])
	}
}

func TestRepairParityBlankFirst(t *testing.T) {
	// blank occupies the first cell; repair must skip it
	grid := [][]int{{0, 2, 1}, {3, 4, 5}, {6, 7, 8}}
	repairParity(grid)

	if grid[0][0] != Blank {
		t.Errorf("Expected blank untouched at (0,0), got %d", grid[0][0])
	}
	if grid[0][1] != 1 || grid[0][2] != 2 {
		t.Errorf("Expected first two non-blank tiles swapped, got %v", grid[0])
	}
}

func TestFindBlank(t *testing.T) {
	grid := [][]int{{1, 2, 3}, {4, 0, 5}, {6, 7, 8}}
	pos := FindBlank(grid)
	if pos.Row != 1 || pos.Col != 1 {
		t.Errorf("Expected blank at (1,1), got (%d,%d)", pos.Row, pos.Col)
	}
}

func TestValidateGrid(t *testing.T) {
	tests := []struct {
		name    string
		grid    [][]int
		wantErr bool
	}{
		{
			name:    "valid 3x3",
			grid:    [][]int{{1, 2, 3}, {4, 5, 6}, {7, 8, 0}},
			wantErr: false,
		},
		{
			name:    "ragged rows",
			grid:    [][]int{{1, 2, 3}, {4, 5}, {7, 8, 0}},
			wantErr: true,
		},
		{
			name:    "duplicate value",
			grid:    [][]int{{1, 1, 3}, {4, 5, 6}, {7, 8, 0}},
			wantErr: true,
		},
		{
			name:    "value out of range",
			grid:    [][]int{{1, 2, 3}, {4, 5, 6}, {7, 8, 99}},
			wantErr: true,
		},
		{
			name:    "too small",
			grid:    [][]int{{0}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateGrid(tt.grid)
			if (err != nil) != tt.wantErr {
				t.Errorf("Expected wantErr=%v, got err=%v", tt.wantErr, err)
			}
		})
	}
}

func TestCountInversions(t *testing.T) {
	tests := []struct {
		name string
		grid [][]int
		want int
	}{
		{"solved", [][]int{{1, 2, 3}, {4, 5, 6}, {7, 8, 0}}, 0},
		{"one inversion", [][]int{{2, 1, 3}, {4, 5, 6}, {7, 8, 0}}, 1},
		{"reversed pair at end", [][]int{{1, 2, 3}, {4, 5, 6}, {8, 7, 0}}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CountInversions(tt.grid); got != tt.want {
				t.Errorf("Expected %d inversions, got %d", tt.want, got)
			}
		})
	}
}
