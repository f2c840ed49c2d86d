package main

import (
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// AIPlayer wraps the search engine behind the IPlayer interface. A move
// can be requested synchronously with ChooseMove or computed on a
// worker goroutine with StartThinking/TakeMove; the worker always
// searches a private clone of the game state.
type AIPlayer struct {
	moveMutex  sync.Mutex
	workerDone chan struct{}
	thinking   atomic.Bool
	moveReady  atomic.Bool
	stopSignal atomic.Bool
	readyMove  Move
	readyFor   uint64
}

func NewAIPlayer() *AIPlayer {
	return &AIPlayer{}
}

func (a *AIPlayer) IsHuman() bool {
	return false
}

func (a *AIPlayer) ChooseMove(state GameState) (Move, bool) {
	config := GetConfig()
	stats := &SearchStats{Start: time.Now()}
	working := state.Clone()
	move, ok := ChooseBestMove(&working, SharedTT(), config, stats, func() bool { return a.stopSignal.Load() })
	if config.AiLogSearchStats {
		logSearchStats("choose", stats, config)
	}
	if ok {
		move.Depth = stats.CompletedDepths
	}
	return move, ok
}

// StartThinking kicks off one background search keyed by the state's
// fingerprint, so a result computed for a stale position is discarded.
func (a *AIPlayer) StartThinking(state GameState) {
	if a.thinking.Load() {
		return
	}
	if a.workerDone != nil {
		<-a.workerDone
	}
	a.thinking.Store(true)
	a.moveReady.Store(false)
	a.stopSignal.Store(false)

	working := state.Clone()
	key := working.Hash
	done := make(chan struct{})
	a.workerDone = done
	config := GetConfig()
	go func() {
		defer close(done)
		stats := &SearchStats{Start: time.Now()}
		move, ok := ChooseBestMove(&working, SharedTT(), config, stats, func() bool { return a.stopSignal.Load() })
		if config.AiLogSearchStats {
			logSearchStats("think", stats, config)
		}
		if a.stopSignal.Load() {
			a.moveReady.Store(false)
			a.thinking.Store(false)
			return
		}
		a.moveMutex.Lock()
		if ok {
			move.Depth = stats.CompletedDepths
			a.readyMove = move
			a.readyFor = key
		} else {
			a.readyMove = Move{}
			a.readyFor = 0
		}
		a.moveMutex.Unlock()
		a.moveReady.Store(ok)
		a.thinking.Store(false)
	}()
}

func (a *AIPlayer) IsThinking() bool {
	return a.thinking.Load()
}

func (a *AIPlayer) HasMoveReady() bool {
	return a.moveReady.Load()
}

// TakeMove hands out the computed move when it was produced for the
// given position fingerprint.
func (a *AIPlayer) TakeMove(stateHash uint64) (Move, bool) {
	a.moveMutex.Lock()
	defer a.moveMutex.Unlock()
	if !a.moveReady.Load() {
		return Move{}, false
	}
	a.moveReady.Store(false)
	if a.readyFor != stateHash {
		return Move{}, false
	}
	return a.readyMove, true
}

func (a *AIPlayer) Stop() {
	a.stopSignal.Store(true)
	a.moveReady.Store(false)
}

func (a *AIPlayer) ResetForConfigChange() {
	a.Stop()
	a.stopSignal.Store(false)
}

func (a *AIPlayer) CacheSize() int {
	return SharedTT().Count()
}

func logSearchStats(tag string, stats *SearchStats, config Config) {
	if stats == nil {
		return
	}
	elapsed := time.Duration(0)
	if !stats.Start.IsZero() {
		elapsed = time.Since(stats.Start)
	}
	nps := 0.0
	if elapsed > 0 {
		nps = float64(stats.Nodes) / elapsed.Seconds()
	}
	ttHitRate := 0.0
	if stats.TTProbes > 0 {
		ttHitRate = float64(stats.TTHits) * 100.0 / float64(stats.TTProbes)
	}
	parts := make([]string, 0, len(stats.DepthDurations))
	for _, d := range stats.DepthDurations {
		parts = append(parts, fmt.Sprintf("%dms", d.Milliseconds()))
	}
	fmt.Printf("[ai:%s] t=%dms budget=%dms completed=%d nodes=%d nps=%.0f tt_size=%d tt_probe=%d tt_hit=%d tt_hit_rate=%.1f%% tt_store=%d cutoffs=%d depth_times=[%s]\n",
		tag,
		elapsed.Milliseconds(),
		config.AiTimeBudgetMs,
		stats.CompletedDepths,
		stats.Nodes,
		nps,
		SharedTT().Count(),
		stats.TTProbes,
		stats.TTHits,
		ttHitRate,
		stats.TTStores,
		stats.Cutoffs,
		strings.Join(parts, ","),
	)
}
