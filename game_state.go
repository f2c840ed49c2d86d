package main

type Side int

type GameStatus int

const (
	SideGoat Side = iota
	SideTiger
)

const (
	StatusNotStarted GameStatus = iota
	StatusRunning
	StatusGoatWon
	StatusTigerWon
)

type GamePhase int

const (
	PhasePlacement GamePhase = iota
	PhaseMovement
)

const (
	totalGoats      = 20
	totalTigers     = 4
	captureWinGoats = 5
)

// tigerStartCells are the four corners of the board.
var tigerStartCells = [totalTigers]int{0, 4, 20, 24}

type stateSnapshot struct {
	board         Board
	toMove        Side
	status        GameStatus
	goatsPlaced   int
	goatsCaptured int
	hash          uint64
	hasLastMove   bool
	lastMove      Move
}

type GameState struct {
	Board         Board
	ToMove        Side
	Status        GameStatus
	GoatsPlaced   int
	GoatsCaptured int
	Hash          uint64
	HasLastMove   bool
	LastMove      Move
	LastMessage   string
	history       []stateSnapshot
}

func DefaultGameState() GameState {
	state := GameState{}
	state.Reset()
	return state
}

func (s *GameState) Reset() {
	s.Board = Board{}
	for _, cell := range tigerStartCells {
		s.Board.Set(cell, CellTiger)
	}
	s.ToMove = SideGoat
	s.Status = StatusNotStarted
	s.GoatsPlaced = 0
	s.GoatsCaptured = 0
	s.HasLastMove = false
	s.LastMove = Move{From: -1, To: -1, Jumped: -1}
	s.LastMessage = ""
	s.history = nil
	s.Hash = ComputeHash(*s)
}

func (s GameState) Clone() GameState {
	clone := s
	clone.history = append([]stateSnapshot(nil), s.history...)
	return clone
}

// Phase is derived, never stored: placement until all goats are in.
func (s GameState) Phase() GamePhase {
	if s.GoatsPlaced < totalGoats {
		return PhasePlacement
	}
	return PhaseMovement
}

func (s GameState) IsOver() bool {
	return s.Status == StatusGoatWon || s.Status == StatusTigerWon
}

func (s GameState) Winner() (Side, bool) {
	switch s.Status {
	case StatusGoatWon:
		return SideGoat, true
	case StatusTigerWon:
		return SideTiger, true
	}
	return SideGoat, false
}

func (s GameState) HistoryLen() int {
	return len(s.history)
}

func (s *GameState) snapshot() stateSnapshot {
	return stateSnapshot{
		board:         s.Board,
		toMove:        s.ToMove,
		status:        s.Status,
		goatsPlaced:   s.GoatsPlaced,
		goatsCaptured: s.GoatsCaptured,
		hash:          s.Hash,
		hasLastMove:   s.HasLastMove,
		lastMove:      s.LastMove,
	}
}

// ApplyMove mutates the state in place. The move must come from
// LegalMoves for the side to move; arbitrary coordinates are never
// accepted here.
func (s *GameState) ApplyMove(move Move) {
	s.history = append(s.history, s.snapshot())
	prevPlaced := s.GoatsPlaced
	mover := s.ToMove
	switch move.Kind {
	case MovePlace:
		s.Board.Set(move.To, CellGoat)
		s.GoatsPlaced++
	case MoveStep:
		cell := s.Board.At(move.From)
		s.Board.Remove(move.From)
		s.Board.Set(move.To, cell)
	case MoveJump:
		s.Board.Remove(move.From)
		s.Board.Remove(move.Jumped)
		s.Board.Set(move.To, CellTiger)
		s.GoatsCaptured++
	}
	s.ToMove = otherSide(mover)
	s.HasLastMove = true
	s.LastMove = move
	s.refreshStatus()
	updateHashAfterMove(s, move, mover, prevPlaced)
}

// UndoMove restores the most recent snapshot exactly. Calling it with
// no moves applied is a caller contract violation.
func (s *GameState) UndoMove() {
	if len(s.history) == 0 {
		panic("UndoMove: empty history")
	}
	snap := s.history[len(s.history)-1]
	s.history = s.history[:len(s.history)-1]
	s.Board = snap.board
	s.ToMove = snap.toMove
	s.Status = snap.status
	s.GoatsPlaced = snap.goatsPlaced
	s.GoatsCaptured = snap.goatsCaptured
	s.Hash = snap.hash
	s.HasLastMove = snap.hasLastMove
	s.LastMove = snap.lastMove
}

// refreshStatus recomputes the terminal status. The capture-count check
// always precedes the mobility check, and tiger mobility only decides
// the game on Tiger's turn.
func (s *GameState) refreshStatus() {
	if s.GoatsCaptured >= captureWinGoats {
		s.Status = StatusTigerWon
		return
	}
	if s.ToMove == SideTiger && len(s.LegalMoves(SideTiger)) == 0 {
		s.Status = StatusGoatWon
		return
	}
	s.Status = StatusRunning
}

func otherSide(side Side) Side {
	if side == SideGoat {
		return SideTiger
	}
	return SideGoat
}

func (s Side) String() string {
	if s == SideGoat {
		return "goat"
	}
	return "tiger"
}

func (p GamePhase) String() string {
	if p == PhasePlacement {
		return "placement"
	}
	return "movement"
}
