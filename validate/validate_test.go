package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "preset.json")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	return path
}

func TestValidateConfig_Valid(t *testing.T) {
	path := writeConfig(t, `{
		"name": "Classic 15",
		"description": "The classic 4x4 puzzle",
		"difficulty": "medium",
		"messages": {
			"welcome": "Welcome!",
			"solved": "Solved in %d moves!",
			"cant_move": "That tile can't move.",
			"restarted": "Reshuffled."
		}
	}`)

	result := validateConfig(path)

	if !result.Valid {
		t.Fatalf("Expected valid config, got errors: %v", result.Errors)
	}

	joined := strings.Join(result.Errors, "\n")
	if !strings.Contains(joined, "✓ Board: 4x4") {
		t.Errorf("Expected 4x4 board info, got: %s", joined)
	}
}

func TestValidateConfig_MissingName(t *testing.T) {
	path := writeConfig(t, `{
		"difficulty": "easy",
		"messages": {
			"welcome": "Welcome!",
			"solved": "Solved in %d moves!",
			"cant_move": "Nope.",
			"restarted": "Again!"
		}
	}`)

	result := validateConfig(path)

	if result.Valid {
		t.Error("Expected invalid result for missing name")
	}

	found := false
	for _, e := range result.Errors {
		if strings.Contains(e, "name") {
			found = true
		}
	}
	if !found {
		t.Errorf("Expected name error, got: %v", result.Errors)
	}
}

func TestValidateConfig_UnknownDifficulty(t *testing.T) {
	path := writeConfig(t, `{
		"name": "Bad",
		"difficulty": "nightmare",
		"messages": {
			"welcome": "W",
			"solved": "%d",
			"cant_move": "C",
			"restarted": "R"
		}
	}`)

	result := validateConfig(path)

	if result.Valid {
		t.Error("Expected invalid result for unknown difficulty")
	}
}

func TestValidateConfig_NoSize(t *testing.T) {
	path := writeConfig(t, `{
		"name": "Sizeless",
		"messages": {
			"welcome": "W",
			"solved": "%d",
			"cant_move": "C",
			"restarted": "R"
		}
	}`)

	result := validateConfig(path)

	if result.Valid {
		t.Error("Expected invalid result when no board size is resolvable")
	}
}

func TestValidateConfig_SizeOutOfRange(t *testing.T) {
	path := writeConfig(t, `{
		"name": "Huge",
		"board_size": 9,
		"messages": {
			"welcome": "W",
			"solved": "%d",
			"cant_move": "C",
			"restarted": "R"
		}
	}`)

	result := validateConfig(path)

	if result.Valid {
		t.Error("Expected invalid result for board size 9")
	}
}

func TestValidateConfig_BoardSizeOverridesDifficulty(t *testing.T) {
	path := writeConfig(t, `{
		"name": "Override",
		"difficulty": "easy",
		"board_size": 5,
		"messages": {
			"welcome": "W",
			"solved": "%d",
			"cant_move": "C",
			"restarted": "R"
		}
	}`)

	result := validateConfig(path)

	if !result.Valid {
		t.Fatalf("Expected valid config, got errors: %v", result.Errors)
	}

	joined := strings.Join(result.Errors, "\n")
	if !strings.Contains(joined, "board_size 5 overrides") {
		t.Errorf("Expected override note, got: %s", joined)
	}
	if !strings.Contains(joined, "✓ Board: 5x5") {
		t.Errorf("Expected 5x5 board info, got: %s", joined)
	}
}

func TestValidateConfig_MissingMessages(t *testing.T) {
	path := writeConfig(t, `{
		"name": "Quiet",
		"difficulty": "easy",
		"messages": {
			"welcome": "W"
		}
	}`)

	result := validateConfig(path)

	if result.Valid {
		t.Error("Expected invalid result for missing messages")
	}

	joined := strings.Join(result.Errors, "\n")
	for _, key := range []string{"solved", "cant_move", "restarted"} {
		if !strings.Contains(joined, key) {
			t.Errorf("Expected missing message error for %q, got: %s", key, joined)
		}
	}
}

func TestValidateConfig_SolvedPlaceholder(t *testing.T) {
	path := writeConfig(t, `{
		"name": "No placeholder",
		"difficulty": "easy",
		"messages": {
			"welcome": "W",
			"solved": "You did it!",
			"cant_move": "C",
			"restarted": "R"
		}
	}`)

	result := validateConfig(path)

	if result.Valid {
		t.Errorf("Expected invalid result for solved message without %%d")
	}
}

func TestValidateConfig_InvalidJSON(t *testing.T) {
	path := writeConfig(t, `{"name": "test", invalid json}`)

	result := validateConfig(path)

	if result.Valid {
		t.Error("Expected invalid result for malformed JSON")
	}
}

func TestValidateConfig_MissingFile(t *testing.T) {
	result := validateConfig("/non/existent/file.json")

	if result.Valid {
		t.Error("Expected invalid result for missing file")
	}
}
