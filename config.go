package main

import "sync"

type Config struct {
	AiTimeBudgetMs      int             `json:"ai_time_budget_ms"`
	AiPlacementDepth    int             `json:"ai_placement_depth"`
	AiMovementDepth     int             `json:"ai_movement_depth"`
	AiEndgameDepth      int             `json:"ai_endgame_depth"`
	AiEndgameCaptures   int             `json:"ai_endgame_captures"`
	AiPollNodeInterval  int             `json:"ai_poll_node_interval"`
	AiEnableKillerMoves bool            `json:"ai_enable_killer_moves"`
	AiLogSearchStats    bool            `json:"ai_log_search_stats"`
	Heuristics          HeuristicConfig `json:"heuristics"`
}

type HeuristicConfig struct {
	GoatCapture   float64 `json:"goat_capture"`
	TigerMobility float64 `json:"tiger_mobility"`
	TrappedTiger  float64 `json:"trapped_tiger"`
	GoatCluster   float64 `json:"goat_cluster"`
}

type ConfigStore struct {
	mu     sync.RWMutex
	config Config
}

func DefaultConfig() Config {
	return Config{
		// Wall-clock budget for one best-move request. The deadline is
		// polled every AiPollNodeInterval nodes, so worst-case overrun
		// is the subtree explored between two polls.
		AiTimeBudgetMs:     1500,
		AiPollNodeInterval: 1024,

		// Target depths by phase: the placement tree branches into
		// every empty cell, the movement tree is much narrower.
		AiPlacementDepth:  5,
		AiMovementDepth:   6,
		AiEndgameDepth:    8,
		AiEndgameCaptures: 2, // switch to endgame depth at this many captures

		AiEnableKillerMoves: true,
		AiLogSearchStats:    false, // turn ON temporarily to tune

		Heuristics: HeuristicConfig{
			GoatCapture:   2000.0,
			TigerMobility: 20.0,
			TrappedTiger:  500.0,
			GoatCluster:   10.0,
		},
	}
}

var configStore = &ConfigStore{config: DefaultConfig()}

func GetConfig() Config {
	return configStore.Get()
}

func (c *ConfigStore) Get() Config {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.config
}

func (c *ConfigStore) Update(newConfig Config) {
	c.mu.Lock()
	c.config = newConfig
	c.mu.Unlock()
}
