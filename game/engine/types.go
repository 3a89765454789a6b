package engine

import "time"

// Difficulty selects a board size through an explicit lookup table.
type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
	Expert Difficulty = "expert"

	// Validation constants
	MinBoardSize  = 2
	MaxBoardSize  = 6
	ShuffleFactor = 10
	MaxBulkMoves  = 50

	// Blank is the cell value representing the empty slot.
	Blank = 0
)

// difficultySizes is the recognized difficulty-to-size mapping.
var difficultySizes = map[Difficulty]int{
	Easy:   3,
	Medium: 4,
	Hard:   5,
	Expert: 6,
}

// Difficulties returns the recognized difficulties in ascending board size.
func Difficulties() []Difficulty {
	return []Difficulty{Easy, Medium, Hard, Expert}
}

// BoardSize returns the board size for the difficulty and whether the
// difficulty is recognized.
func (d Difficulty) BoardSize() (int, bool) {
	size, ok := difficultySizes[d]
	return size, ok
}

// Position represents row,col coordinates on the board.
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// GameConfig represents a puzzle preset loaded from JSON.
type GameConfig struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Difficulty  Difficulty `json:"difficulty,omitempty"`
	BoardSize   int        `json:"board_size,omitempty"`
	Messages    struct {
		Welcome   string `json:"welcome"`
		Solved    string `json:"solved"`
		CantMove  string `json:"cant_move"`
		Restarted string `json:"restarted"`
	} `json:"messages"`
}

// Size resolves the effective board size: an explicit board_size wins,
// otherwise the difficulty table is consulted. Returns 0 when neither is set.
func (c *GameConfig) Size() int {
	if c.BoardSize != 0 {
		return c.BoardSize
	}
	if size, ok := c.Difficulty.BoardSize(); ok {
		return size
	}
	return 0
}

// PuzzleState represents the complete puzzle state
type PuzzleState struct {
	Grid       [][]int    `json:"grid"`
	Size       int        `json:"size"`
	BlankPos   Position   `json:"blank_pos"`
	Moves      int        `json:"moves"`
	StartedAt  time.Time  `json:"started_at"`
	ConfigName string     `json:"config_name"`
	Difficulty Difficulty `json:"difficulty"`
	Message    string     `json:"message"`

	MoveHistory []MoveHistoryEntry `json:"move_history"`
	TotalMoves  int                `json:"total_moves"`

	// CurrentMoves tracks only the moves since the last restart. It mirrors
	// MoveHistory entries but gets cleared on restart while MoveHistory
	// remains cumulative.
	CurrentMoves      []MoveHistoryEntry `json:"current_moves"`
	CurrentMovesCount int                `json:"current_moves_count"`

	// Computed helper views (not required for core game logic)
	Solved         bool       `json:"solved,omitempty"`
	ElapsedSeconds float64    `json:"elapsed_seconds,omitempty"`
	MovableTiles   []Position `json:"movable_tiles,omitempty"`
}

// MoveHistoryEntry represents a single tile move in the game history
type MoveHistoryEntry struct {
	Tile       int      `json:"tile"`
	From       Position `json:"from"`
	To         Position `json:"to"`
	Timestamp  int64    `json:"timestamp"`
	Success    bool     `json:"success"`
	MoveNumber int      `json:"move_number"`
}
