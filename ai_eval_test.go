package main

import "testing"

func TestEvalCaptureTerm(t *testing.T) {
	state := GameState{}
	state.GoatsCaptured = 3
	weights := HeuristicConfig{GoatCapture: 2000}
	if got := EvaluateState(state, weights); got != 6000 {
		t.Fatalf("capture term: got %v want 6000", got)
	}
}

func TestEvalTigerMobility(t *testing.T) {
	state := GameState{}
	state.Board.Set(12, CellTiger)
	weights := HeuristicConfig{TigerMobility: 20}
	// A center tiger on an empty board has eight step moves.
	if got := EvaluateState(state, weights); got != 160 {
		t.Fatalf("mobility term: got %v want 160", got)
	}
}

func TestEvalJumpCountsDouble(t *testing.T) {
	state := GameState{}
	state.Board.Set(0, CellTiger)
	state.Board.Set(1, CellGoat)
	weights := HeuristicConfig{TigerMobility: 20}
	// Corner tiger: steps to 5 and 6, plus a jump over 1 worth two.
	if got := EvaluateState(state, weights); got != 80 {
		t.Fatalf("jump mobility: got %v want 80", got)
	}
}

func TestEvalTrappedTigerPenalty(t *testing.T) {
	state := GameState{}
	state.Board.Set(0, CellTiger)
	for _, cell := range []int{1, 5, 6, 2, 10, 12} {
		state.Board.Set(cell, CellGoat)
	}
	weights := HeuristicConfig{TrappedTiger: 500}
	if got := EvaluateState(state, weights); got != -500 {
		t.Fatalf("trapped tiger: got %v want -500", got)
	}
}

func TestEvalGoatPairCountedOnce(t *testing.T) {
	state := GameState{}
	state.Board.Set(1, CellGoat)
	state.Board.Set(2, CellGoat)
	weights := HeuristicConfig{GoatCluster: 10}
	if got := EvaluateState(state, weights); got != -10 {
		t.Fatalf("goat pair: got %v want -10", got)
	}
}

func TestEvalTigerRelativeSign(t *testing.T) {
	state := GameState{}
	state.Board.Set(12, CellTiger)
	state.GoatsCaptured = 1
	weights := DefaultConfig().Heuristics

	goatTurn := state
	goatTurn.ToMove = SideGoat
	tigerTurn := state
	tigerTurn.ToMove = SideTiger
	if EvaluateState(goatTurn, weights) != EvaluateState(tigerTurn, weights) {
		t.Fatalf("evaluation must not depend on the side to move")
	}
}
