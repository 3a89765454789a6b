package engine

// ManhattanDistance returns the grid distance between two positions.
func ManhattanDistance(a, b Position) int {
	return abs(a.Row-b.Row) + abs(a.Col-b.Col)
}

// CountInversions counts ordered pairs that appear out of order in the
// row-major flattening of the grid, the blank excluded. The parity of this
// count drives solvability.
func CountInversions(grid [][]int) int {
	var flat []int
	for _, row := range grid {
		for _, v := range row {
			if v != Blank {
				flat = append(flat, v)
			}
		}
	}

	inversions := 0
	for i := 0; i < len(flat); i++ {
		for j := i + 1; j < len(flat); j++ {
			if flat[i] > flat[j] {
				inversions++
			}
		}
	}
	return inversions
}

// CopyGrid returns a deep copy of a grid.
func CopyGrid(grid [][]int) [][]int {
	out := make([][]int, len(grid))
	for i, row := range grid {
		out[i] = make([]int, len(row))
		copy(out[i], row)
	}
	return out
}
