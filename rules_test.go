package main

import "testing"

func containsMove(moves []Move, want Move) bool {
	for _, m := range moves {
		if m.Equals(want) {
			return true
		}
	}
	return false
}

func TestTigerJumpEnumerationOrthogonal(t *testing.T) {
	state := GameState{}
	state.Board.Set(0, CellTiger)
	state.Board.Set(1, CellGoat)
	state.ToMove = SideTiger

	moves := state.LegalMoves(SideTiger)
	if !containsMove(moves, JumpMove(0, 2, 1)) {
		t.Fatalf("expected jump 0>x1>2 in %v", moves)
	}
}

func TestTigerJumpEnumerationDiagonal(t *testing.T) {
	state := GameState{}
	state.Board.Set(0, CellTiger)
	state.Board.Set(6, CellGoat)
	state.ToMove = SideTiger

	moves := state.LegalMoves(SideTiger)
	if !containsMove(moves, JumpMove(0, 12, 6)) {
		t.Fatalf("expected jump 0>x6>12 in %v", moves)
	}
}

func TestTigerJumpBlockedLanding(t *testing.T) {
	state := GameState{}
	state.Board.Set(0, CellTiger)
	state.Board.Set(1, CellGoat)
	state.Board.Set(2, CellGoat)
	state.ToMove = SideTiger

	moves := state.LegalMoves(SideTiger)
	for _, m := range moves {
		if m.Kind == MoveJump && m.Jumped == 1 {
			t.Fatalf("jump over cell 1 must be blocked by occupied landing")
		}
	}
}

func TestJumpApplicationEffects(t *testing.T) {
	state := GameState{}
	state.Board.Set(0, CellTiger)
	state.Board.Set(1, CellGoat)
	state.GoatsPlaced = 3
	state.ToMove = SideTiger
	state.Status = StatusRunning
	state.Hash = ComputeHash(state)

	state.ApplyMove(JumpMove(0, 2, 1))
	if state.Board.At(0) != CellEmpty {
		t.Fatalf("origin cell must be vacated")
	}
	if state.Board.At(1) != CellEmpty {
		t.Fatalf("jumped goat must be removed")
	}
	if state.Board.At(2) != CellTiger {
		t.Fatalf("tiger must land past the goat")
	}
	if state.GoatsCaptured != 1 {
		t.Fatalf("capture counter not incremented")
	}
	if state.ToMove != SideGoat {
		t.Fatalf("turn must pass to goat")
	}
}

func TestGoatMovementAfterPlacement(t *testing.T) {
	state := GameState{}
	state.Board.Set(12, CellGoat)
	state.GoatsPlaced = totalGoats
	state.ToMove = SideGoat

	moves := state.LegalMoves(SideGoat)
	if len(moves) != len(Neighbors(12)) {
		t.Fatalf("expected %d steps for a lone center goat, got %d", len(Neighbors(12)), len(moves))
	}
	for _, m := range moves {
		if m.Kind != MoveStep || m.From != 12 {
			t.Fatalf("unexpected goat move %v", m)
		}
	}
}

func TestIsLegalRejectsForeignMove(t *testing.T) {
	state := DefaultGameState()
	if ok, _ := state.IsLegal(PlaceMove(0), SideGoat); ok {
		t.Fatalf("placement on an occupied corner must be illegal")
	}
	if ok, reason := state.IsLegal(PlaceMove(7), SideTiger); ok || reason == "" {
		t.Fatalf("goat placement on tiger's turn must be rejected with a reason")
	}
}

func TestResolveMoveIgnoresFromForPlacement(t *testing.T) {
	state := DefaultGameState()
	move, ok := state.ResolveMove(MovePlace, 99, 7)
	if !ok {
		t.Fatalf("expected placement at 7 to resolve")
	}
	if !move.Equals(PlaceMove(7)) {
		t.Fatalf("resolved %v, want %v", move, PlaceMove(7))
	}
}
