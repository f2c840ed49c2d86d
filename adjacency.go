package main

// neighborTable lists, for every cell, the cells reachable in a single
// step: the in-bounds orthogonal neighbors in up, down, left, right
// order, then the four diagonals (up-left, up-right, down-left,
// down-right) on cells where row+col is even. The table is immutable
// after initialization.
var neighborTable = buildNeighborTable()

var stepOffsets = [...]struct{ dx, dy int }{
	{0, -1}, {0, 1}, {-1, 0}, {1, 0},
	{-1, -1}, {1, -1}, {-1, 1}, {1, 1},
}

func buildNeighborTable() [boardCells][]int {
	var table [boardCells][]int
	for i := 0; i < boardCells; i++ {
		x, y := cellX(i), cellY(i)
		limit := 4
		if (x+y)%2 == 0 {
			limit = len(stepOffsets)
		}
		for o := 0; o < limit; o++ {
			nx, ny := x+stepOffsets[o].dx, y+stepOffsets[o].dy
			if inBounds(nx, ny) {
				table[i] = append(table[i], cellIndex(nx, ny))
			}
		}
	}
	return table
}

func Neighbors(cell int) []int {
	return neighborTable[cell]
}

// jumpLanding continues the from->to displacement one step past to and
// returns the landing cell, or -1 when it leaves the board. Diagonal
// steps keep row+col parity, so a legal landing is always adjacent to
// the jumped cell along the same line.
func jumpLanding(from, to int) int {
	x := 2*cellX(to) - cellX(from)
	y := 2*cellY(to) - cellY(from)
	if !inBounds(x, y) {
		return -1
	}
	return cellIndex(x, y)
}
