package main

type PlayerType int

const (
	PlayerHuman PlayerType = iota
	PlayerAI
)

// GameSettings chooses who drives each side. The board, the piece
// counts and the capture-win threshold are fixed by the rules.
type GameSettings struct {
	GoatType  PlayerType `json:"-"`
	TigerType PlayerType `json:"-"`
}

func DefaultGameSettings() GameSettings {
	return GameSettings{
		GoatType:  PlayerHuman,
		TigerType: PlayerAI,
	}
}
