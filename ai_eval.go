package main

// EvaluateState scores a non-terminal position from Tiger's
// perspective: positive favors Tiger. It reads only board contents and
// the capture counter, never the side to move.
//
// Terms: captured goats, tiger mobility (a step counts 1, an available
// jump counts 2), a penalty per tiger with no move at all, and a
// penalty per adjacent goat pair since clustered goats are harder to
// jump.
func EvaluateState(state GameState, weights HeuristicConfig) float64 {
	score := float64(state.GoatsCaptured) * weights.GoatCapture
	for i := 0; i < boardCells; i++ {
		switch state.Board.At(i) {
		case CellTiger:
			mobility := 0
			for _, n := range neighborTable[i] {
				switch state.Board.At(n) {
				case CellEmpty:
					mobility++
				case CellGoat:
					landing := jumpLanding(i, n)
					if landing >= 0 && state.Board.At(landing) == CellEmpty {
						mobility += 2
					}
				}
			}
			if mobility == 0 {
				score -= weights.TrappedTiger
			} else {
				score += float64(mobility) * weights.TigerMobility
			}
		case CellGoat:
			// Count each unordered goat pair once.
			for _, n := range neighborTable[i] {
				if n > i && state.Board.At(n) == CellGoat {
					score -= weights.GoatCluster
				}
			}
		}
	}
	return score
}
