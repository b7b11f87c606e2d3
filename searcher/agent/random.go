package agent

import (
	"connect4/experiments/metrics"
	"connect4/game"
	"connect4/searcher"

	"golang.org/x/exp/rand"
)

type randomAgent struct {
	rng *rand.Rand
}

// NewRandomAgent returns a baseline agent that plays a uniformly random
// valid column.
func NewRandomAgent(seed uint64) Agent {
	return &randomAgent{rng: rand.New(rand.NewSource(seed))}
}

func (a *randomAgent) Name() string {
	return "random"
}

func (a *randomAgent) FindMove(board game.Board, piece game.Piece) (int, metrics.SearchMetric, error) {
	columns := board.ValidColumns()
	if len(columns) == 0 {
		return searcher.NoColumn, metrics.SearchMetric{}, game.ErrNoValidColumns
	}
	return columns[a.rng.Intn(len(columns))], metrics.SearchMetric{Goroutines: 1}, nil
}
