package engine

import (
	"errors"
	"math/rand"
	"time"
)

// Engine drives a single puzzle instance. Mutating operations are not safe
// for concurrent use; callers synchronize at the session layer. GetState
// returns an independent snapshot, so concurrent reads are allowed.
type Engine interface {
	GetState() *PuzzleState
	SetState(state *PuzzleState) error
	Restart() error
	GetConfig() *GameConfig
	SetConfig(config *GameConfig) error
	CanMove(row, col int) bool
	Move(row, col int) bool
	BulkMove(taps []Position) []bool
	IsSolved() bool
	ElapsedTime() time.Duration
	MoveCount() int
	GetMovableTiles() []Position
	GetMoveHistory() []MoveHistoryEntry
	GetLastMove() *MoveHistoryEntry
}

// GameEngine is the standard Engine implementation.
type GameEngine struct {
	state  *PuzzleState
	config *GameConfig
	rng    *rand.Rand
	now    func() time.Time
}

// NewEngine creates an engine seeded from the wall clock.
func NewEngine(config *GameConfig) (*GameEngine, error) {
	return NewEngineWithRand(config, nil, nil)
}

// NewEngineWithRand creates an engine with an injected randomness source and
// clock. Either may be nil, in which case time-seeded randomness and the
// wall clock are used.
func NewEngineWithRand(config *GameConfig, rng *rand.Rand, now func() time.Time) (*GameEngine, error) {
	if err := ValidateGameConfig(config); err != nil {
		return nil, err
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if now == nil {
		now = time.Now
	}

	state, err := GeneratePuzzle(config, rng, now)
	if err != nil {
		return nil, err
	}

	return &GameEngine{
		state:  state,
		config: config,
		rng:    rng,
		now:    now,
	}, nil
}

// GetState returns a snapshot of the current state with computed fields
// filled in. The engine's own state is never written, so concurrent
// readers holding a shared lock may call it safely.
func (e *GameEngine) GetState() *PuzzleState {
	snapshot := *e.state
	snapshot.Grid = CopyGrid(e.state.Grid)
	snapshot.Solved = e.state.IsSolved()
	snapshot.ElapsedSeconds = e.state.Elapsed(e.now).Seconds()
	snapshot.MovableTiles = e.GetMovableTiles()
	return &snapshot
}

// SetState replaces the engine state, typically when restoring a persisted
// session. The grid is validated and the blank position recomputed so a
// stale or hand-edited BlankPos cannot corrupt move legality.
func (e *GameEngine) SetState(state *PuzzleState) error {
	if state == nil {
		return errors.New("state cannot be nil")
	}
	if err := ValidateGrid(state.Grid); err != nil {
		return err
	}
	state.Size = len(state.Grid)
	state.BlankPos = FindBlank(state.Grid)
	e.state = state
	return nil
}

// Restart generates a fresh solvable puzzle from the current config. The
// cumulative move history and total count carry over; the current segment
// resets.
func (e *GameEngine) Restart() error {
	history := e.state.MoveHistory
	total := e.state.TotalMoves

	state, err := GeneratePuzzle(e.config, e.rng, e.now)
	if err != nil {
		return err
	}

	state.MoveHistory = history
	state.TotalMoves = total
	state.CurrentMoves = nil
	state.CurrentMovesCount = 0
	if e.config.Messages.Restarted != "" {
		state.Message = e.config.Messages.Restarted
	}

	e.state = state
	return nil
}

// GetConfig returns the active game config.
func (e *GameEngine) GetConfig() *GameConfig {
	return e.config
}

// SetConfig swaps the active config. The board is regenerated only when the
// new config produces a different size; a message-only change keeps the
// current board intact.
func (e *GameEngine) SetConfig(config *GameConfig) error {
	if err := ValidateGameConfig(config); err != nil {
		return err
	}

	if config.Size() != e.state.Size {
		e.config = config
		return e.Restart()
	}

	e.config = config
	e.state.ConfigName = config.Name
	e.state.Difficulty = config.Difficulty
	return nil
}

// CanMove reports whether the tile at (row,col) is currently movable.
func (e *GameEngine) CanMove(row, col int) bool {
	return e.state.CanMove(row, col)
}

// Move attempts to slide the tile at (row,col). Returns false when the tap
// is illegal; the state is untouched in that case apart from the message.
func (e *GameEngine) Move(row, col int) bool {
	return e.state.MoveTile(row, col, e.config, e.now)
}

// BulkMove applies a sequence of taps in order and returns the per-tap
// outcomes. Rejected taps do not abort the sequence. The sequence is
// truncated at MaxBulkMoves.
func (e *GameEngine) BulkMove(taps []Position) []bool {
	if len(taps) > MaxBulkMoves {
		taps = taps[:MaxBulkMoves]
	}

	results := make([]bool, len(taps))
	for i, tap := range taps {
		results[i] = e.Move(tap.Row, tap.Col)
	}
	return results
}

// IsSolved reports whether the board is in the canonical solved arrangement.
func (e *GameEngine) IsSolved() bool {
	return e.state.IsSolved()
}

// ElapsedTime returns time since the current board was generated.
func (e *GameEngine) ElapsedTime() time.Duration {
	return e.state.Elapsed(e.now)
}

// MoveCount returns the number of successful moves on the current board.
func (e *GameEngine) MoveCount() int {
	return e.state.Moves
}

// GetMovableTiles lists the positions of tiles adjacent to the blank. At
// most four tiles qualify; corner blanks yield two, edge blanks three.
func (e *GameEngine) GetMovableTiles() []Position {
	var tiles []Position
	blank := e.state.BlankPos
	neighbors := []Position{
		{Row: blank.Row - 1, Col: blank.Col},
		{Row: blank.Row + 1, Col: blank.Col},
		{Row: blank.Row, Col: blank.Col - 1},
		{Row: blank.Row, Col: blank.Col + 1},
	}
	for _, n := range neighbors {
		if n.Row >= 0 && n.Row < e.state.Size && n.Col >= 0 && n.Col < e.state.Size {
			tiles = append(tiles, n)
		}
	}
	return tiles
}

// GetMoveHistory returns the cumulative move history across restarts.
func (e *GameEngine) GetMoveHistory() []MoveHistoryEntry {
	return e.state.MoveHistory
}

// GetLastMove returns the most recent history entry, or nil when no move
// has been made.
func (e *GameEngine) GetLastMove() *MoveHistoryEntry {
	if len(e.state.MoveHistory) == 0 {
		return nil
	}
	return &e.state.MoveHistory[len(e.state.MoveHistory)-1]
}
