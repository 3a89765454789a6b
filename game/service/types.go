package service

import (
	"time"

	"github.com/tilegame/slidepuzzle/game/engine"
)

// SessionInfo provides information about a game session
type SessionInfo struct {
	ID             string              `json:"id"`
	ConfigName     string              `json:"config_name"`
	CreatedAt      time.Time           `json:"created_at"`
	LastAccessedAt time.Time           `json:"last_accessed_at"`
	GameState      *engine.PuzzleState `json:"game_state"`
	GameConfig     *engine.GameConfig  `json:"game_config"`
}

// MoveResult contains the result of a single tile tap
type MoveResult struct {
	Success   bool                `json:"success"`
	GameState *engine.PuzzleState `json:"game_state"`
	Message   string              `json:"message"`
	Events    []GameEvent         `json:"events,omitempty"`
	Step      *StepInfo           `json:"step,omitempty"`
	Attempted *AttemptInfo        `json:"attempted,omitempty"`
}

// BulkMoveResult contains the result of a tap sequence
type BulkMoveResult struct {
	// Summary
	MovesExecuted  int                 `json:"moves_executed"`
	RequestedMoves int                 `json:"requested_moves"`
	Success        bool                `json:"success"`
	GameState      *engine.PuzzleState `json:"game_state"`
	Events         []GameEvent         `json:"events"`
	Truncated      bool                `json:"truncated,omitempty"`
	Limit          int                 `json:"limit,omitempty"`

	// Start/end snapshot
	StartBlank engine.Position `json:"start_blank"`
	EndBlank   engine.Position `json:"end_blank"`

	// Per-step compact trace (only for this call)
	Steps []StepInfo `json:"steps,omitempty"`

	// Final status aids
	Solved       bool              `json:"solved"`
	SolvedOnMove int               `json:"solved_on_move,omitempty"` // 1-based index of the tap that solved the board
	Message      string            `json:"message,omitempty"`
	MovableTiles []engine.Position `json:"movable_tiles,omitempty"`
}

// StepInfo is a compact record for each tap in a bulk call
type StepInfo struct {
	Idx     int             `json:"idx"`
	Tile    int             `json:"tile,omitempty"`
	From    engine.Position `json:"from"`
	To      engine.Position `json:"to"`
	Success bool            `json:"success"`
	Solved  bool            `json:"solved,omitempty"`
}

// AttemptInfo details a rejected tap
type AttemptInfo struct {
	Row    int    `json:"row"`
	Col    int    `json:"col"`
	Tile   int    `json:"tile,omitempty"`
	Reason string `json:"reason"` // out_of_bounds|blank_cell|not_adjacent
}

// GameEvent represents an event that occurred during gameplay
type GameEvent struct {
	Type      string          `json:"type"` // "move", "rejected", "solved", "restart", "difficulty_change"
	Message   string          `json:"message"`
	Timestamp time.Time       `json:"timestamp"`
	Position  engine.Position `json:"position,omitempty"`
}

// HistoryOptions configures move history retrieval
type HistoryOptions struct {
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
	Order string `json:"order"` // "asc" or "desc"
}

// HistoryResponse contains paginated move history
type HistoryResponse struct {
	Moves       []engine.MoveHistoryEntry `json:"moves"`
	TotalMoves  int                       `json:"total_moves"`
	Page        int                       `json:"page"`
	PageSize    int                       `json:"page_size"`
	TotalPages  int                       `json:"total_pages"`
	HasNext     bool                      `json:"has_next"`
	HasPrevious bool                      `json:"has_previous"`
}

// SolvabilityReport explains the parity check for the current board
type SolvabilityReport struct {
	Solvable        bool   `json:"solvable"`
	Inversions      int    `json:"inversions"`
	BoardSize       int    `json:"board_size"`
	BlankFromBottom int    `json:"blank_from_bottom,omitempty"` // 1-indexed, even sizes only
	Rule            string `json:"rule"`
}

// ConfigInfo provides information about a game configuration
type ConfigInfo struct {
	Filename    string `json:"filename"`
	ConfigID    string `json:"config_id"` // The identifier to use for session creation
	Name        string `json:"name"`      // Display name
	Description string `json:"description"`
	Difficulty  string `json:"difficulty"`
	BoardSize   int    `json:"board_size"`
}
