package main

import (
	"log"
	"time"

	"github.com/google/uuid"
)

type Game struct {
	id          string
	settings    GameSettings
	state       GameState
	history     MoveHistory
	goatPlayer  IPlayer
	tigerPlayer IPlayer
	turnStart   time.Time
}

func NewGame(settings GameSettings) Game {
	g := Game{}
	g.Reset(settings)
	return g
}

func (g *Game) Reset(settings GameSettings) {
	g.stopAIPlayers()
	g.id = uuid.NewString()
	g.settings = settings
	g.state.Reset()
	g.history.Clear()
	g.createPlayers()
	g.turnStart = time.Now()
	log.Printf("[game] %s goat=%s tiger=%s", g.id, playerTypeName(settings.GoatType), playerTypeName(settings.TigerType))
}

func (g *Game) Start() {
	if g.state.Status == StatusNotStarted {
		g.state.Status = StatusRunning
		g.turnStart = time.Now()
	}
}

func (g *Game) ID() string {
	return g.id
}

func (g *Game) State() GameState {
	return g.state.Clone()
}

func (g *Game) History() MoveHistory {
	return g.history
}

func (g *Game) TurnStartedAtMs() int64 {
	if g.turnStart.IsZero() {
		return 0
	}
	return g.turnStart.UnixMilli()
}

// TryApplyMove applies a move for the side to move after verifying it
// is present in the current legal-move enumeration. A foreign move is
// a no-op with a reason string.
func (g *Game) TryApplyMove(move Move) (bool, string) {
	if g.state.Status != StatusRunning {
		return false, "game not running"
	}
	side := g.state.ToMove
	if ok, reason := g.state.IsLegal(move, side); !ok {
		g.state.LastMessage = "Illegal move: " + reason
		return false, g.state.LastMessage
	}
	g.state.LastMessage = ""
	player := g.playerForSide(side)
	isAiMove := player != nil && !player.IsHuman()
	elapsedMs := float64(time.Since(g.turnStart).Milliseconds())
	g.state.ApplyMove(move)
	g.history.Push(HistoryEntry{Move: move, Side: side, ElapsedMs: elapsedMs, IsAi: isAiMove, Depth: move.Depth})
	g.logMovePlayed(move, side, elapsedMs, isAiMove)
	if winner, over := g.state.Winner(); over {
		log.Printf("[game] %s %s wins (captured=%d)", g.id, winner, g.state.GoatsCaptured)
	}
	g.turnStart = time.Now()
	return true, ""
}

// Tick advances AI turns: it collects a finished background search or
// starts one. Returns true when a move was applied.
func (g *Game) Tick() bool {
	if g.state.Status != StatusRunning {
		return false
	}
	player := g.currentPlayer()
	ai, ok := player.(*AIPlayer)
	if !ok {
		return false
	}
	if ai.HasMoveReady() {
		if move, ok := ai.TakeMove(g.state.Hash); ok {
			applied, _ := g.TryApplyMove(move)
			return applied
		}
		return false
	}
	if !ai.IsThinking() {
		ai.StartThinking(g.state.Clone())
	}
	return false
}

func (g *Game) AiThinking() bool {
	if ai, ok := g.currentPlayer().(*AIPlayer); ok {
		return ai.IsThinking()
	}
	return false
}

func (g *Game) CurrentPlayerIsHuman() bool {
	player := g.currentPlayer()
	return player != nil && player.IsHuman()
}

func (g *Game) ResetForConfigChange() {
	if ai, ok := g.goatPlayer.(*AIPlayer); ok {
		ai.ResetForConfigChange()
	}
	if ai, ok := g.tigerPlayer.(*AIPlayer); ok {
		ai.ResetForConfigChange()
	}
}

func (g *Game) createPlayers() {
	g.goatPlayer = makePlayer(g.settings.GoatType)
	g.tigerPlayer = makePlayer(g.settings.TigerType)
}

func (g *Game) currentPlayer() IPlayer {
	return g.playerForSide(g.state.ToMove)
}

func (g *Game) playerForSide(side Side) IPlayer {
	if side == SideGoat {
		return g.goatPlayer
	}
	return g.tigerPlayer
}

func (g *Game) stopAIPlayers() {
	if ai, ok := g.goatPlayer.(*AIPlayer); ok {
		ai.Stop()
	}
	if ai, ok := g.tigerPlayer.(*AIPlayer); ok {
		ai.Stop()
	}
}

func makePlayer(kind PlayerType) IPlayer {
	if kind == PlayerAI {
		return NewAIPlayer()
	}
	return NewHumanPlayer()
}

func playerTypeName(kind PlayerType) string {
	if kind == PlayerAI {
		return "ai"
	}
	return "human"
}

func (g *Game) logMovePlayed(move Move, side Side, elapsedMs float64, isAi bool) {
	actor := "human"
	if isAi {
		actor = "ai"
	}
	log.Printf("[game] %s %s %s %s t=%.0fms placed=%d captured=%d", g.id, side, actor, move, elapsedMs, g.state.GoatsPlaced, g.state.GoatsCaptured)
}
