package main

import "sync"

type TTFlag uint8

const (
	TTExact TTFlag = iota
	TTLower
	TTUpper
)

type TTEntry struct {
	Depth    int
	Score    float64
	Flag     TTFlag
	BestMove Move
	HasMove  bool
}

// TranspositionTable caches finished search results keyed by position
// fingerprint. Store is replace-always, and a fingerprint collision is
// never verified against the actual board: an accepted, bounded risk at
// this state-space size.
type TranspositionTable struct {
	mu      sync.RWMutex
	entries map[uint64]TTEntry
}

func NewTranspositionTable() *TranspositionTable {
	return &TranspositionTable{entries: make(map[uint64]TTEntry)}
}

func (tt *TranspositionTable) Probe(key uint64) (TTEntry, bool) {
	tt.mu.RLock()
	defer tt.mu.RUnlock()
	entry, ok := tt.entries[key]
	return entry, ok
}

func (tt *TranspositionTable) Store(key uint64, entry TTEntry) {
	tt.mu.Lock()
	tt.entries[key] = entry
	tt.mu.Unlock()
}

func (tt *TranspositionTable) Count() int {
	tt.mu.RLock()
	defer tt.mu.RUnlock()
	return len(tt.entries)
}

func (tt *TranspositionTable) Clear() {
	tt.mu.Lock()
	tt.entries = make(map[uint64]TTEntry)
	tt.mu.Unlock()
}

var sharedTT = NewTranspositionTable()

func SharedTT() *TranspositionTable {
	return sharedTT
}

func FlushGlobalCaches() {
	sharedTT.Clear()
}

func (f TTFlag) String() string {
	switch f {
	case TTLower:
		return "lower"
	case TTUpper:
		return "upper"
	default:
		return "exact"
	}
}
