// Package config provides configuration management for the sliding puzzle.
//
// The config package handles:
//   - Loading game configurations from JSON files
//   - Configuration validation and caching
//   - Builtin difficulty presets as fallbacks
//   - Default configuration management
//   - Configuration discovery and listing
//
// Configuration Format:
//
// Game configurations are stored as JSON files in the configs directory.
// Each configuration defines:
//   - A difficulty (easy, medium, hard, expert) or an explicit board_size
//   - Display name and description
//   - Message templates for welcome, solved, rejected-move, and restart
//
// Builtin Presets:
//
// The four difficulty names always resolve, even with an empty config
// directory: a file named after a difficulty overrides the builtin preset,
// otherwise the builtin is used. Difficulties map to board sizes:
// easy=3x3, medium=4x4, hard=5x5, expert=6x6.
//
// Usage:
//
//	manager, err := config.NewManager("configs")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Load specific configuration
//	gameConfig, err := manager.LoadConfig("easy")
//
//	// Get default configuration
//	defaultConfig := manager.GetDefault()
//
//	// List available configurations
//	configs, err := manager.ListConfigs()
package config
