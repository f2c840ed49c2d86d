package main

import (
	"math/rand"
	"testing"
)

func TestResetInitialPosition(t *testing.T) {
	state := DefaultGameState()
	for _, cell := range tigerStartCells {
		if state.Board.At(cell) != CellTiger {
			t.Fatalf("expected tiger at cell %d", cell)
		}
	}
	if state.Board.Count(CellTiger) != totalTigers {
		t.Fatalf("expected %d tigers, got %d", totalTigers, state.Board.Count(CellTiger))
	}
	if state.Board.Count(CellGoat) != 0 {
		t.Fatalf("expected empty goat count at start")
	}
	if state.ToMove != SideGoat {
		t.Fatalf("goat moves first")
	}
	if state.Phase() != PhasePlacement {
		t.Fatalf("expected placement phase at start")
	}
	moves := state.LegalMoves(SideGoat)
	if len(moves) != boardCells-totalTigers {
		t.Fatalf("expected %d placements, got %d", boardCells-totalTigers, len(moves))
	}
}

func TestApplyUndoRestoresState(t *testing.T) {
	state := DefaultGameState()
	before := state
	move := state.LegalMoves(SideGoat)[0]
	state.ApplyMove(move)
	if state.ToMove != SideTiger {
		t.Fatalf("expected turn to pass to tiger")
	}
	if state.GoatsPlaced != 1 {
		t.Fatalf("expected one goat placed")
	}
	state.UndoMove()
	if state.Board != before.Board {
		t.Fatalf("board not restored by undo")
	}
	if state.ToMove != before.ToMove || state.GoatsPlaced != before.GoatsPlaced ||
		state.GoatsCaptured != before.GoatsCaptured || state.Status != before.Status {
		t.Fatalf("scalar fields not restored by undo")
	}
	if state.Hash != before.Hash {
		t.Fatalf("hash not restored by undo: got %d want %d", state.Hash, before.Hash)
	}
}

func TestRandomPlayoutInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for game := 0; game < 20; game++ {
		state := DefaultGameState()
		state.Status = StatusRunning
		for ply := 0; ply < 120 && !state.IsOver(); ply++ {
			moves := state.LegalMoves(state.ToMove)
			if len(moves) == 0 {
				break
			}
			state.ApplyMove(moves[rng.Intn(len(moves))])

			if got := state.Board.Count(CellTiger); got != totalTigers {
				t.Fatalf("game %d ply %d: tiger count %d", game, ply, got)
			}
			wantGoats := state.GoatsPlaced - state.GoatsCaptured
			if got := state.Board.Count(CellGoat); got != wantGoats {
				t.Fatalf("game %d ply %d: goat count %d, want %d", game, ply, got, wantGoats)
			}
			if state.GoatsPlaced > totalGoats {
				t.Fatalf("game %d ply %d: placed %d goats", game, ply, state.GoatsPlaced)
			}
		}
		// Unwind the whole game and check we are back at the start.
		for state.HistoryLen() > 0 {
			state.UndoMove()
		}
		fresh := DefaultGameState()
		fresh.Status = StatusRunning
		if state.Board != fresh.Board || state.Hash != fresh.Hash {
			t.Fatalf("game %d: full undo did not restore the initial position", game)
		}
	}
}

func TestFifthCaptureWinsRegardlessOfTurn(t *testing.T) {
	state := DefaultGameState()
	state.GoatsCaptured = captureWinGoats
	state.ToMove = SideGoat
	state.refreshStatus()
	if state.Status != StatusTigerWon {
		t.Fatalf("expected tiger win at %d captures, got %v", captureWinGoats, state.Status)
	}
}

func TestBlockedTigersLoseOnTigerTurn(t *testing.T) {
	state := GameState{}
	state.Board.Set(0, CellTiger)
	// Every step and every jump landing around the lone tiger is a goat.
	for _, cell := range []int{1, 5, 6, 2, 10, 12} {
		state.Board.Set(cell, CellGoat)
	}
	state.GoatsPlaced = totalGoats
	state.GoatsCaptured = 0

	state.ToMove = SideTiger
	state.refreshStatus()
	if state.Status != StatusGoatWon {
		t.Fatalf("expected goat win with blocked tigers, got %v", state.Status)
	}

	// The same position on Goat's turn is not terminal.
	state.ToMove = SideGoat
	state.refreshStatus()
	if state.Status != StatusRunning {
		t.Fatalf("blocked tigers must only decide the game on tiger's turn")
	}
}

func TestBlockingMoveEndsGame(t *testing.T) {
	state := GameState{}
	state.Board.Set(0, CellTiger)
	for _, cell := range []int{1, 5, 2, 10, 12} {
		state.Board.Set(cell, CellGoat)
	}
	state.Board.Set(7, CellGoat)
	state.GoatsPlaced = totalGoats
	state.ToMove = SideGoat
	state.Status = StatusRunning
	state.Hash = ComputeHash(state)

	move, ok := state.ResolveMove(MoveStep, 7, 6)
	if !ok {
		t.Fatalf("expected step 7>6 to be legal")
	}
	state.ApplyMove(move)
	if state.Status != StatusGoatWon {
		t.Fatalf("expected the blocking step to win for goats, got %v", state.Status)
	}
}
