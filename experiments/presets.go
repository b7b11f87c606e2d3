package experiments

import (
	"connect4/experiments/metrics"
	"connect4/searcher/agent"
	"time"
)

// Strength pits minimax at each depth against a Monte-Carlo agent running
// simulations playouts per column.
func Strength(depths []int, simulations int, seed uint64) ([]metrics.AgentConfig, []MatchUp) {
	baseline := metrics.AgentConfig{ID: 0, Kind: agent.KindMonteCarlo, Simulations: simulations, Goroutines: 1, Seed: seed}
	configs := []metrics.AgentConfig{baseline}
	matchUps := []MatchUp{}
	for i, depth := range depths {
		config := metrics.AgentConfig{ID: i + 1, Kind: agent.KindMinimax, Depth: depth, Goroutines: 1}
		configs = append(configs, config)
		matchUps = append(matchUps, MatchUp{baseline, config})
	}
	return configs, matchUps
}

// Throughput plays UCT against itself with the same time budget at each
// goroutine count, for the same playing strength and similar game length.
// Move records then show episodes per move against goroutines.
func Throughput(goroutines []int, duration time.Duration, seed uint64) ([]metrics.AgentConfig, []MatchUp) {
	configs := []metrics.AgentConfig{}
	matchUps := []MatchUp{}
	for i, n := range goroutines {
		config := metrics.AgentConfig{ID: i + 1, Kind: agent.KindUCT, Duration: duration, Goroutines: n, Seed: seed}
		configs = append(configs, config)
		matchUps = append(matchUps, MatchUp{config, config})
	}
	return configs, matchUps
}

// Baseline pits every config against a random agent.
func Baseline(configs []metrics.AgentConfig, seed uint64) ([]metrics.AgentConfig, []MatchUp) {
	random := metrics.AgentConfig{ID: 0, Kind: agent.KindRandom, Goroutines: 1, Seed: seed}
	all := []metrics.AgentConfig{random}
	matchUps := []MatchUp{}
	for _, config := range configs {
		all = append(all, config)
		matchUps = append(matchUps, MatchUp{random, config})
	}
	return all, matchUps
}
