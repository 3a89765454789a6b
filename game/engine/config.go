package engine

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// ValidateGameConfig checks that a config names a game, carries the required
// message templates, and resolves to a legal board size.
func ValidateGameConfig(config *GameConfig) error {
	if config == nil {
		return fmt.Errorf("config cannot be nil")
	}
	if config.Name == "" {
		return fmt.Errorf("config name is required")
	}
	if config.Messages.Welcome == "" {
		return fmt.Errorf("welcome message is required")
	}
	if config.Messages.Solved == "" {
		return fmt.Errorf("solved message is required")
	}
	if !strings.Contains(config.Messages.Solved, "%d") {
		return fmt.Errorf("solved message must contain a %%d move-count placeholder")
	}

	if config.Difficulty != "" {
		if _, ok := config.Difficulty.BoardSize(); !ok {
			return fmt.Errorf("unrecognized difficulty: %s", config.Difficulty)
		}
	}

	size := config.Size()
	if size == 0 {
		return fmt.Errorf("config must set either difficulty or board_size")
	}
	if size < MinBoardSize || size > MaxBoardSize {
		return fmt.Errorf("board size must be between %d and %d, got %d", MinBoardSize, MaxBoardSize, size)
	}

	return nil
}

// DefaultConfig returns the builtin preset for a difficulty. Unknown
// difficulties fall back to Medium.
func DefaultConfig(difficulty Difficulty) *GameConfig {
	if _, ok := difficulty.BoardSize(); !ok {
		difficulty = Medium
	}

	config := &GameConfig{
		Name:        string(difficulty),
		Description: fmt.Sprintf("Builtin %s preset", difficulty),
		Difficulty:  difficulty,
	}
	config.Messages.Welcome = "Slide tiles into the gap to restore order. Tap a tile next to the blank to move it."
	config.Messages.Solved = "Solved in %d moves!"
	config.Messages.CantMove = "That tile can't move. Pick one next to the blank."
	config.Messages.Restarted = "Board reshuffled. Good luck!"
	return config
}

// LoadGameConfig reads and validates a config from a JSON file.
func LoadGameConfig(filename string) (*GameConfig, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config GameConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := ValidateGameConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}
