package main

// LegalMoves enumerates the moves available to side without mutating
// the state. The order is deterministic: ascending cell index, then
// neighbors in table order, so search and tests are reproducible.
func (s *GameState) LegalMoves(side Side) []Move {
	moves := make([]Move, 0, 32)
	if side == SideGoat {
		if s.Phase() == PhasePlacement {
			for i := 0; i < boardCells; i++ {
				if s.Board.At(i) == CellEmpty {
					moves = append(moves, PlaceMove(i))
				}
			}
			return moves
		}
		for i := 0; i < boardCells; i++ {
			if s.Board.At(i) != CellGoat {
				continue
			}
			for _, n := range neighborTable[i] {
				if s.Board.At(n) == CellEmpty {
					moves = append(moves, StepMove(i, n))
				}
			}
		}
		return moves
	}
	for i := 0; i < boardCells; i++ {
		if s.Board.At(i) != CellTiger {
			continue
		}
		for _, n := range neighborTable[i] {
			switch s.Board.At(n) {
			case CellEmpty:
				moves = append(moves, StepMove(i, n))
			case CellGoat:
				landing := jumpLanding(i, n)
				if landing >= 0 && s.Board.At(landing) == CellEmpty {
					moves = append(moves, JumpMove(i, landing, n))
				}
			}
		}
	}
	return moves
}

// IsLegal reports whether move is present in the current enumeration
// for side, with a reason when it is not.
func (s *GameState) IsLegal(move Move, side Side) (bool, string) {
	if s.ToMove != side {
		return false, "not this side's turn"
	}
	for _, m := range s.LegalMoves(side) {
		if m.Equals(move) {
			return true, ""
		}
	}
	return false, "move is not legal in this position"
}

// ResolveMove finds the legal move for the side to move matching the
// given kind and cells, so callers can only ever apply a move the
// engine itself enumerated.
func (s *GameState) ResolveMove(kind MoveKind, from, to int) (Move, bool) {
	for _, m := range s.LegalMoves(s.ToMove) {
		if m.Kind != kind || m.To != to {
			continue
		}
		if kind != MovePlace && m.From != from {
			continue
		}
		return m, true
	}
	return Move{}, false
}
