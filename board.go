package main

type Cell int

const (
	CellEmpty Cell = iota
	CellGoat
	CellTiger
)

const (
	boardSize  = 5
	boardCells = boardSize * boardSize
)

// Board holds the 25 intersections in row-major order. It is a value
// type so that history snapshots are plain copies.
type Board struct {
	cells [boardCells]Cell
}

func (b Board) At(i int) Cell {
	return b.cells[i]
}

func (b *Board) Set(i int, value Cell) {
	b.cells[i] = value
}

func (b *Board) Remove(i int) {
	b.cells[i] = CellEmpty
}

func (b Board) Count(value Cell) int {
	count := 0
	for _, cell := range b.cells {
		if cell == value {
			count++
		}
	}
	return count
}

func cellIndex(x, y int) int {
	return y*boardSize + x
}

func cellX(i int) int {
	return i % boardSize
}

func cellY(i int) int {
	return i / boardSize
}

func inBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < boardSize && y < boardSize
}

func (c Cell) String() string {
	switch c {
	case CellGoat:
		return "Goat"
	case CellTiger:
		return "Tiger"
	default:
		return "Empty"
	}
}

func CellFromSide(side Side) Cell {
	if side == SideGoat {
		return CellGoat
	}
	return CellTiger
}
