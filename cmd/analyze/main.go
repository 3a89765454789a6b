// Command analyze prints quick, human-readable statistics about the shuffle
// generator. For each builtin difficulty it runs a batch of shuffles and
// summarizes solvability, inversion counts, tile displacement, and where the
// blank comes to rest. It also inspects preset files in the project's
// configs directory.
package main

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/tilegame/slidepuzzle/game/engine"
)

const shufflesPerDifficulty = 1000

// ShuffleStats accumulates results over a batch of generated boards.
type ShuffleStats struct {
	Boards         int
	Solvable       int
	AlreadySolved  int
	MinInversions  int
	MaxInversions  int
	SumInversions  int
	SumDisplaced   int
	BlankAtHomePos int
}

func main() {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	for _, difficulty := range engine.Difficulties() {
		size, _ := difficulty.BoardSize()
		fmt.Printf("\n=== %s (%dx%d, %d shuffles) ===\n",
			difficulty, size, size, shufflesPerDifficulty)
		stats, err := analyzeDifficulty(difficulty, rng)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			continue
		}
		printStats(stats)
	}

	configDir := "configs"
	if len(os.Args) > 1 {
		configDir = os.Args[1]
	}
	analyzeConfigDir(configDir)
}

// analyzeDifficulty generates a batch of boards for the difficulty and
// collects aggregate statistics over them.
func analyzeDifficulty(difficulty engine.Difficulty, rng *rand.Rand) (*ShuffleStats, error) {
	config := engine.DefaultConfig(difficulty)
	size := config.Size()

	stats := &ShuffleStats{MinInversions: -1}

	for i := 0; i < shufflesPerDifficulty; i++ {
		state, err := engine.GeneratePuzzle(config, rng, time.Now)
		if err != nil {
			return nil, err
		}

		stats.Boards++

		if engine.CheckSolvability(state.Grid) {
			stats.Solvable++
		}

		inversions := engine.CountInversions(state.Grid)
		if stats.MinInversions < 0 || inversions < stats.MinInversions {
			stats.MinInversions = inversions
		}
		if inversions > stats.MaxInversions {
			stats.MaxInversions = inversions
		}
		stats.SumInversions += inversions

		stats.SumDisplaced += countDisplaced(state.Grid)

		if state.BlankPos.Row == size-1 && state.BlankPos.Col == size-1 {
			stats.BlankAtHomePos++
		}

		if isSolvedGrid(state.Grid) {
			stats.AlreadySolved++
		}
	}

	return stats, nil
}

func printStats(stats *ShuffleStats) {
	fmt.Printf("Boards generated: %d\n", stats.Boards)
	fmt.Printf("Solvable: %d/%d\n", stats.Solvable, stats.Boards)
	fmt.Printf("Inversions: min=%d max=%d avg=%.1f\n",
		stats.MinInversions, stats.MaxInversions,
		float64(stats.SumInversions)/float64(stats.Boards))
	fmt.Printf("Displaced tiles per board (avg): %.1f\n",
		float64(stats.SumDisplaced)/float64(stats.Boards))
	fmt.Printf("Blank ended bottom-right: %d\n", stats.BlankAtHomePos)
	if stats.AlreadySolved > 0 {
		fmt.Printf("⚠️  WARNING: %d boards came out already solved!\n", stats.AlreadySolved)
	}
	if stats.Solvable != stats.Boards {
		fmt.Printf("⚠️  WARNING: %d boards were NOT solvable!\n", stats.Boards-stats.Solvable)
	}
}

// countDisplaced counts tiles that are not on their solved cell. The blank
// is ignored.
func countDisplaced(grid [][]int) int {
	size := len(grid)
	displaced := 0
	for row := range grid {
		for col := range grid[row] {
			tile := grid[row][col]
			if tile == engine.Blank {
				continue
			}
			if tile != row*size+col+1 {
				displaced++
			}
		}
	}
	return displaced
}

func isSolvedGrid(grid [][]int) bool {
	return countDisplaced(grid) == 0 &&
		grid[len(grid)-1][len(grid)-1] == engine.Blank
}

// analyzeConfigDir reports on every preset file found in dir.
func analyzeConfigDir(dir string) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		fmt.Printf("\nNo config directory at %s (%v), skipping preset analysis\n", dir, err)
		return
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		fmt.Printf("\n=== Analyzing %s ===\n", entry.Name())
		analyzeConfig(filepath.Join(dir, entry.Name()))
	}
}

// analyzeConfig loads a single preset file and prints its settings.
func analyzeConfig(path string) {
	config, err := engine.LoadGameConfig(path)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		return
	}

	fmt.Printf("Name: %s\n", config.Name)
	fmt.Printf("Description: %s\n", config.Description)
	if config.Difficulty != "" {
		fmt.Printf("Difficulty: %s\n", config.Difficulty)
	}

	size := config.Size()
	if size == 0 {
		fmt.Printf("⚠️  WARNING: no board size resolvable (neither board_size nor a known difficulty)\n")
		return
	}
	fmt.Printf("Board: %dx%d (%d tiles)\n", size, size, size*size-1)

	if err := engine.ValidateGameConfig(config); err != nil {
		fmt.Printf("⚠️  WARNING: config does not validate: %v\n", err)
	} else {
		fmt.Printf("Config OK\n")
	}
}
