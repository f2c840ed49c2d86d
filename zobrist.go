package main

type zobristTable struct {
	cells  [boardCells * 2]uint64
	side   uint64
	placed [totalGoats + 1]uint64
}

// zobrist is built once from a fixed seed and never regenerated, so
// fingerprints stay consistent for the whole process lifetime.
var zobrist = buildZobristTable()

func buildZobristTable() zobristTable {
	rng := splitmix64{state: 0x9e3779b97f4a7c15}
	var z zobristTable
	for i := range z.cells {
		z.cells[i] = rng.next()
	}
	z.side = rng.next()
	for i := range z.placed {
		z.placed[i] = rng.next()
	}
	return z
}

func (z *zobristTable) piece(cell int, value Cell) uint64 {
	idx := cell * 2
	if value == CellTiger {
		idx++
	}
	return z.cells[idx]
}

// ComputeHash derives the position fingerprint from scratch: every
// occupied cell, the side to move, and the goats-placed count. The
// capture count needs no marker of its own since board content plus
// goatsPlaced determines it.
func ComputeHash(state GameState) uint64 {
	var hash uint64
	for i := 0; i < boardCells; i++ {
		cell := state.Board.At(i)
		if cell == CellEmpty {
			continue
		}
		hash ^= zobrist.piece(i, cell)
	}
	if state.ToMove == SideTiger {
		hash ^= zobrist.side
	}
	hash ^= zobrist.placed[state.GoatsPlaced]
	return hash
}

// updateHashAfterMove applies the XOR delta for move. It runs after the
// board mutation and turn flip, and must stay in lockstep with
// ComputeHash.
func updateHashAfterMove(state *GameState, move Move, mover Side, prevPlaced int) {
	hash := state.Hash
	if mover == SideTiger {
		hash ^= zobrist.side
	}
	switch move.Kind {
	case MovePlace:
		hash ^= zobrist.piece(move.To, CellGoat)
	case MoveStep:
		cell := state.Board.At(move.To)
		hash ^= zobrist.piece(move.From, cell)
		hash ^= zobrist.piece(move.To, cell)
	case MoveJump:
		hash ^= zobrist.piece(move.From, CellTiger)
		hash ^= zobrist.piece(move.To, CellTiger)
		hash ^= zobrist.piece(move.Jumped, CellGoat)
	}
	hash ^= zobrist.placed[prevPlaced]
	hash ^= zobrist.placed[state.GoatsPlaced]
	if state.ToMove == SideTiger {
		hash ^= zobrist.side
	}
	state.Hash = hash
}

type splitmix64 struct {
	state uint64
}

func (s *splitmix64) next() uint64 {
	s.state += 0x9e3779b97f4a7c15
	z := s.state
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}
