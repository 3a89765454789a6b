// Command validate provides a small CLI that validates puzzle preset JSON
// files in the ../configs directory. It checks:
//   - JSON structure and required fields
//   - Board size resolution (explicit board_size or a known difficulty)
//   - Size bounds (2..6)
//   - Consistency between board_size and difficulty when both are set
//   - Required message keys and the %d placeholder in the solved message
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Config mirrors the JSON schema for a puzzle preset.
type Config struct {
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Difficulty  string            `json:"difficulty"`
	BoardSize   int               `json:"board_size"`
	Messages    map[string]string `json:"messages"`
}

// difficultySizes is the builtin difficulty table the engine resolves against.
var difficultySizes = map[string]int{
	"easy":   3,
	"medium": 4,
	"hard":   5,
	"expert": 6,
}

// ValidationResult captures the outcome of validating a single file.
// If Valid is true, Errors contains informational messages; otherwise it
// accumulates the validation errors that were found.
type ValidationResult struct {
	File   string
	Valid  bool
	Errors []string
}

// validateConfig loads and validates a single preset JSON file.
func validateConfig(filePath string) ValidationResult {
	result := ValidationResult{
		File:   filepath.Base(filePath),
		Valid:  true,
		Errors: []string{},
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Failed to read file: %v", err))
		return result
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Invalid JSON: %v", err))
		return result
	}

	if config.Name == "" {
		result.Valid = false
		result.Errors = append(result.Errors, "Missing required field: name")
	}

	size := resolveSize(&config, &result)

	validateMessages(&config, &result)

	// Add informational data
	if result.Valid {
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Name: %s", config.Name))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Board: %dx%d (%d tiles)", size, size, size*size-1))
		if config.Difficulty != "" {
			result.Errors = append(result.Errors, fmt.Sprintf("✓ Difficulty: %s", config.Difficulty))
		}
	}

	return result
}

// resolveSize determines the board size the engine would use and records
// any inconsistencies on the way.
func resolveSize(config *Config, result *ValidationResult) int {
	size := config.BoardSize

	if config.Difficulty != "" {
		tableSize, known := difficultySizes[config.Difficulty]
		if !known {
			result.Valid = false
			result.Errors = append(result.Errors, fmt.Sprintf("Unknown difficulty: %q (expected easy, medium, hard, or expert)", config.Difficulty))
		} else if size == 0 {
			size = tableSize
		} else if size != tableSize {
			// Explicit board_size wins, but flag the mismatch
			result.Errors = append(result.Errors, fmt.Sprintf("Note: board_size %d overrides difficulty %q (table size %d)", size, config.Difficulty, tableSize))
		}
	}

	if size == 0 {
		result.Valid = false
		result.Errors = append(result.Errors, "No board size: set board_size or a known difficulty")
		return 0
	}

	if size < 2 || size > 6 {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Board size %d out of range (2..6)", size))
	}

	return size
}

// validateMessages checks the message keys every preset must carry.
func validateMessages(config *Config, result *ValidationResult) {
	requiredMessages := []string{
		"welcome",
		"solved",
		"cant_move",
		"restarted",
	}
	for _, msg := range requiredMessages {
		if _, exists := config.Messages[msg]; !exists {
			result.Valid = false
			result.Errors = append(result.Errors, fmt.Sprintf("Missing required message: %s", msg))
		}
	}

	// The solved message is formatted with the final move count
	if solved, exists := config.Messages["solved"]; exists && !strings.Contains(solved, "%d") {
		result.Valid = false
		result.Errors = append(result.Errors, "Message 'solved' must contain a %d placeholder for the move count")
	}
}

// main scans ../configs for *.json files and validates each one, printing a
// concise report and exiting with non-zero status if any are invalid.
func main() {
	configDir := "../configs"
	if len(os.Args) > 1 {
		configDir = os.Args[1]
	}

	files, err := filepath.Glob(filepath.Join(configDir, "*.json"))
	if err != nil {
		fmt.Printf("Error finding config files: %v\n", err)
		os.Exit(1)
	}

	allValid := true
	for _, file := range files {
		result := validateConfig(file)

		fmt.Printf("\n%s %s\n", strings.Repeat("=", 20), result.File)

		if result.Valid {
			fmt.Println("✅ VALID")
			for _, info := range result.Errors {
				fmt.Println("  " + info)
			}
		} else {
			fmt.Println("❌ INVALID")
			allValid = false
			for _, err := range result.Errors {
				if !strings.HasPrefix(err, "✓") {
					fmt.Println("  ❌ " + err)
				}
			}
		}
	}

	fmt.Printf("\n%s\n", strings.Repeat("=", 40))
	if allValid {
		fmt.Println("✅ All configurations are valid!")
	} else {
		fmt.Println("❌ Some configurations have errors")
		os.Exit(1)
	}
}
