package engine

import (
	"sync"
	"testing"
	"time"
)

func TestNewEngine(t *testing.T) {
	config := createTestConfig()
	engine, err := NewEngine(config)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	state := engine.GetState()
	if state.Size != 3 {
		t.Errorf("Expected size 3, got %d", state.Size)
	}
	if !CheckSolvability(state.Grid) {
		t.Error("Expected a solvable initial board")
	}
}

func TestNewEngineInvalidConfig(t *testing.T) {
	_, err := NewEngine(nil)
	if err == nil {
		t.Error("Expected error for nil config")
	}
}

func TestNewEngineWithRandDeterministic(t *testing.T) {
	config := createTestConfig()

	e1, err := NewEngineWithRand(config, testRand(), nil)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	e2, err := NewEngineWithRand(config, testRand(), nil)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	g1, g2 := e1.GetState().Grid, e2.GetState().Grid
	for row := range g1 {
		for col := range g1[row] {
			if g1[row][col] != g2[row][col] {
				t.Fatalf("Expected identical boards for identical seeds, differ at (%d,%d)", row, col)
			}
		}
	}
}

func TestEngineMove(t *testing.T) {
	config := createTestConfig()
	engine, err := NewEngineWithRand(config, testRand(), nil)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	movable := engine.GetMovableTiles()
	if len(movable) < 2 {
		t.Fatalf("Expected at least 2 movable tiles, got %d", len(movable))
	}

	tap := movable[0]
	if !engine.Move(tap.Row, tap.Col) {
		t.Errorf("Expected move at %v to succeed", tap)
	}
	if engine.MoveCount() != 1 {
		t.Errorf("Expected move count 1, got %d", engine.MoveCount())
	}

	blank := engine.GetState().BlankPos
	if engine.Move(blank.Row, blank.Col) {
		t.Error("Expected tapping the blank to be rejected")
	}
	if engine.MoveCount() != 1 {
		t.Errorf("Expected move count unchanged after rejected tap, got %d", engine.MoveCount())
	}
}

func TestEngineBulkMove(t *testing.T) {
	config := createTestConfig()
	engine, err := NewEngineWithRand(config, testRand(), nil)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	movable := engine.GetMovableTiles()
	taps := []Position{
		movable[0],
		{Row: -1, Col: -1},
		movable[0],
	}

	results := engine.BulkMove(taps)
	if len(results) != 3 {
		t.Fatalf("Expected 3 results, got %d", len(results))
	}
	if !results[0] {
		t.Error("Expected first tap to succeed")
	}
	if results[1] {
		t.Error("Expected out-of-bounds tap to fail")
	}
	if engine.MoveCount() < 1 {
		t.Errorf("Expected at least 1 successful move, got %d", engine.MoveCount())
	}
}

func TestEngineBulkMoveTruncates(t *testing.T) {
	config := createTestConfig()
	engine, err := NewEngineWithRand(config, testRand(), nil)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	taps := make([]Position, MaxBulkMoves+10)
	for i := range taps {
		taps[i] = Position{Row: -1, Col: -1}
	}

	results := engine.BulkMove(taps)
	if len(results) != MaxBulkMoves {
		t.Errorf("Expected %d results after truncation, got %d", MaxBulkMoves, len(results))
	}
}

func TestEngineRestart(t *testing.T) {
	config := createTestConfig()
	engine, err := NewEngineWithRand(config, testRand(), nil)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	movable := engine.GetMovableTiles()
	engine.Move(movable[0].Row, movable[0].Col)
	historyBefore := len(engine.GetMoveHistory())
	totalBefore := engine.GetState().TotalMoves

	if err := engine.Restart(); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	state := engine.GetState()
	if state.Moves != 0 {
		t.Errorf("Expected current move count reset, got %d", state.Moves)
	}
	if len(state.MoveHistory) != historyBefore {
		t.Errorf("Expected cumulative history preserved (%d entries), got %d", historyBefore, len(state.MoveHistory))
	}
	if state.TotalMoves != totalBefore {
		t.Errorf("Expected total moves preserved (%d), got %d", totalBefore, state.TotalMoves)
	}
	if state.CurrentMovesCount != 0 {
		t.Errorf("Expected current segment reset, got %d", state.CurrentMovesCount)
	}
	if !CheckSolvability(state.Grid) {
		t.Error("Expected restarted board to be solvable")
	}
	if state.Message != config.Messages.Restarted {
		t.Errorf("Expected restarted message, got %q", state.Message)
	}
}

func TestEngineSetConfigSameSize(t *testing.T) {
	engine, err := NewEngineWithRand(createTestConfig(), testRand(), nil)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	gridBefore := CopyGrid(engine.GetState().Grid)

	newConfig := createTestConfig()
	newConfig.Name = "renamed"
	if err := engine.SetConfig(newConfig); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	state := engine.GetState()
	if state.ConfigName != "renamed" {
		t.Errorf("Expected config name updated, got %q", state.ConfigName)
	}
	for row := range gridBefore {
		for col := range gridBefore[row] {
			if state.Grid[row][col] != gridBefore[row][col] {
				t.Fatal("Expected board unchanged for same-size config swap")
			}
		}
	}
}

func TestEngineSetConfigNewSize(t *testing.T) {
	engine, err := NewEngineWithRand(createTestConfig(), testRand(), nil)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	newConfig := createTestConfig()
	newConfig.Difficulty = Medium
	if err := engine.SetConfig(newConfig); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	state := engine.GetState()
	if state.Size != 4 {
		t.Errorf("Expected 4x4 board after difficulty change, got %d", state.Size)
	}
	if !CheckSolvability(state.Grid) {
		t.Error("Expected regenerated board to be solvable")
	}
}

func TestEngineSetState(t *testing.T) {
	engine, err := NewEngineWithRand(createTestConfig(), testRand(), nil)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	restored := &PuzzleState{
		Grid: [][]int{{1, 2, 3}, {4, 0, 5}, {6, 7, 8}},
		// BlankPos deliberately stale; SetState must recompute it
		BlankPos: Position{Row: 0, Col: 0},
	}
	if err := engine.SetState(restored); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	state := engine.GetState()
	if state.BlankPos != (Position{Row: 1, Col: 1}) {
		t.Errorf("Expected recomputed blank at (1,1), got %v", state.BlankPos)
	}
	if state.Size != 3 {
		t.Errorf("Expected size recomputed to 3, got %d", state.Size)
	}
}

func TestEngineSetStateInvalid(t *testing.T) {
	engine, err := NewEngineWithRand(createTestConfig(), testRand(), nil)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if err := engine.SetState(nil); err == nil {
		t.Error("Expected error for nil state")
	}
	if err := engine.SetState(&PuzzleState{Grid: [][]int{{1, 1}, {2, 0}}}); err == nil {
		t.Error("Expected error for grid with duplicates")
	}
}

func TestEngineGetStateComputedFields(t *testing.T) {
	start := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	clock := start
	now := func() time.Time { return clock }

	engine, err := NewEngineWithRand(createTestConfig(), testRand(), now)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	clock = start.Add(30 * time.Second)
	state := engine.GetState()
	if state.ElapsedSeconds != 30 {
		t.Errorf("Expected 30 elapsed seconds, got %v", state.ElapsedSeconds)
	}
	if state.Solved != engine.IsSolved() {
		t.Error("Expected Solved field to match IsSolved")
	}
	if len(state.MovableTiles) < 2 || len(state.MovableTiles) > 4 {
		t.Errorf("Expected 2 to 4 movable tiles, got %d", len(state.MovableTiles))
	}
}

func TestEngineGetStateSnapshot(t *testing.T) {
	engine, err := NewEngineWithRand(createTestConfig(), testRand(), nil)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	state := engine.GetState()
	if engine.state.MovableTiles != nil {
		t.Error("Expected internal state untouched by GetState")
	}
	if engine.state.Solved {
		t.Error("Expected internal Solved flag untouched by GetState")
	}

	state.Grid[0][0], state.Grid[0][1] = state.Grid[0][1], state.Grid[0][0]
	if engine.state.Grid[0][0] == state.Grid[0][0] && engine.state.Grid[0][1] == state.Grid[0][1] {
		t.Error("Expected snapshot grid to be independent of the engine's grid")
	}
}

func TestEngineGetStateConcurrent(t *testing.T) {
	engine, err := NewEngineWithRand(createTestConfig(), testRand(), nil)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				state := engine.GetState()
				if len(state.Grid) != state.Size {
					t.Error("Expected consistent snapshot grid")
					return
				}
			}
		}()
	}
	wg.Wait()
}

func TestGetMovableTilesCorner(t *testing.T) {
	engine, err := NewEngineWithRand(createTestConfig(), testRand(), nil)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if err := engine.SetState(&PuzzleState{
		Grid: [][]int{{0, 1, 2}, {3, 4, 5}, {6, 7, 8}},
	}); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	tiles := engine.GetMovableTiles()
	if len(tiles) != 2 {
		t.Errorf("Expected 2 movable tiles for corner blank, got %d", len(tiles))
	}
}

func TestGetLastMove(t *testing.T) {
	engine, err := NewEngineWithRand(createTestConfig(), testRand(), nil)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if engine.GetLastMove() != nil {
		t.Error("Expected nil last move on a fresh board")
	}

	tap := engine.GetMovableTiles()[0]
	engine.Move(tap.Row, tap.Col)

	last := engine.GetLastMove()
	if last == nil {
		t.Fatal("Expected a last move after a successful tap")
	}
	if last.MoveNumber != 1 {
		t.Errorf("Expected move number 1, got %d", last.MoveNumber)
	}
}
