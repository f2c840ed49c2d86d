package main

import "fmt"

type MoveKind int

const (
	MovePlace MoveKind = iota
	MoveStep
	MoveJump
)

// Move is a tagged variant: a placement targets To only, a step slides
// From->To, a jump carries the captured goat's cell. Unused cell fields
// hold -1.
type Move struct {
	Kind   MoveKind `json:"kind"`
	From   int      `json:"from"`
	To     int      `json:"to"`
	Jumped int      `json:"jumped"`
	Depth  int      `json:"depth,omitempty"`
}

func PlaceMove(to int) Move {
	return Move{Kind: MovePlace, From: -1, To: to, Jumped: -1}
}

func StepMove(from, to int) Move {
	return Move{Kind: MoveStep, From: from, To: to, Jumped: -1}
}

func JumpMove(from, to, jumped int) Move {
	return Move{Kind: MoveJump, From: from, To: to, Jumped: jumped}
}

// Equals ignores Depth, which is advisory search metadata.
func (m Move) Equals(other Move) bool {
	return m.Kind == other.Kind && m.From == other.From && m.To == other.To && m.Jumped == other.Jumped
}

func (m Move) String() string {
	switch m.Kind {
	case MovePlace:
		return fmt.Sprintf("place@%d", m.To)
	case MoveJump:
		return fmt.Sprintf("%d>x%d>%d", m.From, m.Jumped, m.To)
	default:
		return fmt.Sprintf("%d>%d", m.From, m.To)
	}
}

func (k MoveKind) String() string {
	switch k {
	case MovePlace:
		return "place"
	case MoveJump:
		return "jump"
	default:
		return "step"
	}
}

func moveKindFromString(s string) (MoveKind, bool) {
	switch s {
	case "place":
		return MovePlace, true
	case "step":
		return MoveStep, true
	case "jump":
		return MoveJump, true
	}
	return MovePlace, false
}
