package agent

import (
	"connect4/experiments/metrics"
	"connect4/game"
	"connect4/searcher"
	"time"

	"github.com/pkg/errors"
)

const (
	KindMinimax    = "minimax"
	KindMonteCarlo = "montecarlo"
	KindUCT        = "uct"
	KindRandom     = "random"
)

type Agent interface {
	Name() string
	// FindMove returns the column to drop piece into and performance metrics (if collected) from the search
	FindMove(board game.Board, piece game.Piece) (int, metrics.SearchMetric, error)
}

// New builds the agent described by config. A zero seed is replaced by the
// current time.
func New(config metrics.AgentConfig) (Agent, error) {
	seed := config.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	options := []searcher.Option{
		searcher.WithGoroutines(config.Goroutines),
		searcher.WithMetrics(),
	}

	switch config.Kind {
	case KindMinimax:
		if config.Depth < 1 {
			return nil, errors.Errorf("minimax depth must be positive, got %d", config.Depth)
		}
		return NewMinimaxAgent(config.Depth, options...), nil
	case KindMonteCarlo:
		if config.Simulations < 1 {
			return nil, errors.Errorf("montecarlo simulations must be positive, got %d", config.Simulations)
		}
		return NewMonteCarloAgent(config.Simulations, seed, options...), nil
	case KindUCT:
		if config.Episodes < 1 && config.Duration <= 0 {
			return nil, errors.New("uct needs episodes or a duration")
		}
		if config.Episodes > 0 {
			options = append(options, searcher.WithEpisodes(config.Episodes))
		}
		if config.Duration > 0 {
			options = append(options, searcher.WithDuration(config.Duration))
		}
		return NewUCTAgent(seed, options...), nil
	case KindRandom:
		return NewRandomAgent(seed), nil
	default:
		return nil, errors.Errorf("unknown agent kind %q", config.Kind)
	}
}
