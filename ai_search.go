package main

import (
	"errors"
	"math"
	"sort"
	"time"
)

const winScore = 1000000.0

// errSearchDeadline unwinds the recursion when the time budget runs
// out. Every frame undoes its move before propagating it; only the
// iterative-deepening driver catches it.
var errSearchDeadline = errors.New("search deadline exceeded")

type SearchStats struct {
	Nodes           int64
	TTProbes        int64
	TTHits          int64
	TTStores        int64
	Cutoffs         int64
	Start           time.Time
	DepthDurations  []time.Duration
	CompletedDepths int
}

// searchContext owns the live game state for the duration of one
// best-move request. The state is mutated in place and restored to its
// entry values on every exit path.
type searchContext struct {
	state       *GameState
	tt          *TranspositionTable
	config      Config
	stats       *SearchStats
	killers     []Move
	hasKiller   []bool
	deadline    time.Time
	hasDeadline bool
	shouldStop  func() bool
	sincePoll   int
	expired     bool
}

// pollDeadline rechecks the wall clock every AiPollNodeInterval nodes.
// Once expired the flag sticks, so deeper frames unwind promptly
// without further clock reads.
func (sc *searchContext) pollDeadline() bool {
	if sc.expired {
		return true
	}
	interval := sc.config.AiPollNodeInterval
	if interval <= 0 {
		interval = 1024
	}
	sc.sincePoll++
	if sc.sincePoll < interval {
		return false
	}
	sc.sincePoll = 0
	if sc.shouldStop != nil && sc.shouldStop() {
		sc.expired = true
		return true
	}
	if sc.hasDeadline && time.Now().After(sc.deadline) {
		sc.expired = true
	}
	return sc.expired
}

// searchMove applies move, recurses one ply shallower and always
// undoes, whether the child returns normally or is unwinding the
// deadline signal.
func (sc *searchContext) searchMove(move Move, depth int, alpha, beta float64) (float64, error) {
	sc.state.ApplyMove(move)
	defer sc.state.UndoMove()
	return sc.alphaBeta(depth-1, alpha, beta)
}

func (sc *searchContext) alphaBeta(depth int, alpha, beta float64) (float64, error) {
	if sc.stats != nil {
		sc.stats.Nodes++
	}
	if sc.pollDeadline() {
		return 0, errSearchDeadline
	}

	key := sc.state.Hash
	alphaOrig, betaOrig := alpha, beta
	if sc.tt != nil {
		if sc.stats != nil {
			sc.stats.TTProbes++
		}
		if entry, ok := sc.tt.Probe(key); ok && entry.Depth >= depth {
			if sc.stats != nil {
				sc.stats.TTHits++
			}
			switch entry.Flag {
			case TTExact:
				return entry.Score, nil
			case TTLower:
				if entry.Score > alpha {
					alpha = entry.Score
				}
			case TTUpper:
				if entry.Score < beta {
					beta = entry.Score
				}
			}
			if alpha >= beta {
				if sc.stats != nil {
					sc.stats.Cutoffs++
				}
				return entry.Score, nil
			}
		}
	}

	if sc.state.IsOver() {
		// Remaining depth biases toward shallow wins and away from
		// shallow losses.
		if sc.state.Status == StatusTigerWon {
			return winScore + float64(depth), nil
		}
		return -winScore - float64(depth), nil
	}
	if depth <= 0 {
		return EvaluateState(*sc.state, sc.config.Heuristics), nil
	}

	// The role is recomputed from the live turn at every node; the
	// recursion alternates it exactly once per ply.
	side := sc.state.ToMove
	maximizing := side == SideTiger
	moves := sc.orderMoves(sc.state.LegalMoves(side), depth)

	best := math.Inf(-1)
	if !maximizing {
		best = math.Inf(1)
	}
	bestMove := Move{}
	haveBest := false
	for _, move := range moves {
		value, err := sc.searchMove(move, depth, alpha, beta)
		if err != nil {
			return 0, err
		}
		if maximizing {
			if value > best {
				best = value
				bestMove = move
				haveBest = true
			}
			if best > alpha {
				alpha = best
			}
		} else {
			if value < best {
				best = value
				bestMove = move
				haveBest = true
			}
			if best < beta {
				beta = best
			}
		}
		if alpha >= beta {
			if sc.stats != nil {
				sc.stats.Cutoffs++
			}
			sc.recordKiller(depth, move)
			break
		}
	}
	if !haveBest {
		// Only reachable when Goat has every piece blocked in the
		// movement phase; that is not a terminal position, so score it
		// statically.
		return EvaluateState(*sc.state, sc.config.Heuristics), nil
	}

	flag := TTExact
	if best <= alphaOrig {
		flag = TTUpper
	} else if best >= betaOrig {
		flag = TTLower
	}
	if sc.tt != nil {
		sc.tt.Store(key, TTEntry{Depth: depth, Score: best, Flag: flag, BestMove: bestMove, HasMove: true})
		if sc.stats != nil {
			sc.stats.TTStores++
		}
	}
	return best, nil
}

// orderMoves sorts captures first, then the killer recorded at this
// depth among the non-captures; everything else keeps generation
// order. Ordering affects visit order only, never the result.
func (sc *searchContext) orderMoves(moves []Move, depth int) []Move {
	killerOk := sc.config.AiEnableKillerMoves && depth >= 0 && depth < len(sc.killers) && sc.hasKiller[depth]
	prio := func(m Move) int {
		if m.Kind == MoveJump {
			return 0
		}
		if killerOk && sc.killers[depth].Equals(m) {
			return 1
		}
		return 2
	}
	sort.SliceStable(moves, func(i, j int) bool {
		return prio(moves[i]) < prio(moves[j])
	})
	return moves
}

// recordKiller keeps one slot per depth; the most recent cutoff wins.
func (sc *searchContext) recordKiller(depth int, move Move) {
	if !sc.config.AiEnableKillerMoves {
		return
	}
	if depth < 0 || depth >= len(sc.killers) {
		return
	}
	sc.killers[depth] = move
	sc.hasKiller[depth] = true
}

func (sc *searchContext) searchRoot(moves []Move, depth int, maximizing bool) (Move, float64, error) {
	ordered := sc.orderMoves(append([]Move(nil), moves...), depth)
	alpha := math.Inf(-1)
	beta := math.Inf(1)
	best := math.Inf(-1)
	if !maximizing {
		best = math.Inf(1)
	}
	bestMove := ordered[0]
	for _, move := range ordered {
		value, err := sc.searchMove(move, depth, alpha, beta)
		if err != nil {
			return Move{}, 0, err
		}
		if maximizing {
			if value > best {
				best = value
				bestMove = move
			}
			if best > alpha {
				alpha = best
			}
		} else {
			if value < best {
				best = value
				bestMove = move
			}
			if best < beta {
				beta = best
			}
		}
	}
	if sc.tt != nil {
		sc.tt.Store(sc.state.Hash, TTEntry{Depth: depth, Score: best, Flag: TTExact, BestMove: bestMove, HasMove: true})
	}
	return bestMove, best, nil
}

// targetDepth picks the deepening ceiling by phase: the wide placement
// tree gets the shallowest target, the movement tree deepens once
// enough goats have fallen.
func targetDepth(state GameState, config Config) int {
	if state.Phase() == PhasePlacement {
		return config.AiPlacementDepth
	}
	if state.GoatsCaptured < config.AiEndgameCaptures {
		return config.AiMovementDepth
	}
	return config.AiEndgameDepth
}

func provenWin(score float64, maximizing bool) bool {
	if maximizing {
		return score >= winScore
	}
	return score <= -winScore
}

// ChooseBestMove runs iterative deepening on the live state and returns
// the move from the deepest depth that completed inside the budget. It
// returns false only when the side to move has no legal moves, which
// callers rule out by checking terminal status first. The state is
// restored to its entry values before returning, on every path.
func ChooseBestMove(state *GameState, tt *TranspositionTable, config Config, stats *SearchStats, shouldStop func() bool) (Move, bool) {
	side := state.ToMove
	rootMoves := state.LegalMoves(side)
	if len(rootMoves) == 0 {
		return Move{}, false
	}

	start := time.Now()
	if stats != nil && stats.Start.IsZero() {
		stats.Start = start
	}
	target := targetDepth(*state, config)
	if target < 1 {
		target = 1
	}
	sc := &searchContext{
		state:      state,
		tt:         tt,
		config:     config,
		stats:      stats,
		killers:    make([]Move, target+1),
		hasKiller:  make([]bool, target+1),
		shouldStop: shouldStop,
	}
	if config.AiTimeBudgetMs > 0 {
		sc.deadline = start.Add(time.Duration(config.AiTimeBudgetMs) * time.Millisecond)
		sc.hasDeadline = true
	}

	maximizing := side == SideTiger
	bestMove := rootMoves[0]
	for depth := 1; depth <= target; depth++ {
		depthStart := time.Now()
		move, score, err := sc.searchRoot(rootMoves, depth, maximizing)
		if err != nil {
			break
		}
		bestMove = move
		if stats != nil {
			stats.CompletedDepths = depth
			stats.DepthDurations = append(stats.DepthDurations, time.Since(depthStart))
		}
		if provenWin(score, maximizing) {
			break
		}
		if sc.hasDeadline && time.Now().After(sc.deadline) {
			break
		}
	}
	return bestMove, true
}
