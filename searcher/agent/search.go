package agent

import (
	"connect4/experiments/metrics"
	"connect4/game"
	"connect4/searcher"
	"fmt"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

type minimaxAgent struct {
	depth   int
	options []searcher.Option
}

// NewMinimaxAgent returns an agent that searches depth plies with a full
// alpha-beta window, maximizing for its own piece.
func NewMinimaxAgent(depth int, options ...searcher.Option) Agent {
	return minimaxAgent{depth: depth, options: options}
}

func (a minimaxAgent) Name() string {
	return fmt.Sprintf("minimax(depth=%d)", a.depth)
}

func (a minimaxAgent) FindMove(board game.Board, piece game.Piece) (int, metrics.SearchMetric, error) {
	columns := board.ValidColumns()
	if len(columns) == 0 {
		return searcher.NoColumn, metrics.SearchMetric{}, game.ErrNoValidColumns
	}

	m := searcher.NewMinimax(piece, a.options...)
	result, metric := m.Search(board, a.depth, searcher.NegInf, searcher.PosInf, true)
	if result.Column == searcher.NoColumn {
		log.Warn().
			Int("depth", a.depth).
			Stringer("piece", piece).
			Msg("minimax returned no column, playing the first valid column")
		return columns[0], metric, nil
	}
	return result.Column, metric, nil
}

type monteCarloAgent struct {
	simulations int
	seeds       *rand.Rand
	options     []searcher.Option
}

// NewMonteCarloAgent returns an agent that runs simulations playouts per
// column. Every move draws a fresh seed from seed, so a game is reproducible
// without repeating the same playouts on each turn.
func NewMonteCarloAgent(simulations int, seed uint64, options ...searcher.Option) Agent {
	return &monteCarloAgent{
		simulations: simulations,
		seeds:       rand.New(rand.NewSource(seed)),
		options:     options,
	}
}

func (a *monteCarloAgent) Name() string {
	return fmt.Sprintf("montecarlo(simulations=%d)", a.simulations)
}

func (a *monteCarloAgent) FindMove(board game.Board, piece game.Piece) (int, metrics.SearchMetric, error) {
	options := append(a.options[:len(a.options):len(a.options)], searcher.WithSeed(a.seeds.Uint64()))
	return searcher.NewMonteCarlo(piece, options...).ChooseMoveWithMetrics(board, a.simulations)
}

type uctAgent struct {
	seeds   *rand.Rand
	options []searcher.Option
}

// NewUCTAgent returns an agent backed by a fresh UCT tree on every move.
// options must carry an episode or duration budget.
func NewUCTAgent(seed uint64, options ...searcher.Option) Agent {
	return &uctAgent{
		seeds:   rand.New(rand.NewSource(seed)),
		options: options,
	}
}

func (a *uctAgent) Name() string {
	return "uct"
}

func (a *uctAgent) FindMove(board game.Board, piece game.Piece) (int, metrics.SearchMetric, error) {
	options := append(a.options[:len(a.options):len(a.options)], searcher.WithSeed(a.seeds.Uint64()))
	return searcher.NewUCT(options...).FindMove(board, piece)
}
