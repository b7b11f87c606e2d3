package searcher

import (
	"connect4/experiments/metrics"
	"connect4/game"
	"sync"

	"golang.org/x/exp/rand"
)

// ColumnScore is the sum of playout outcomes after dropping into Column.
type ColumnScore struct {
	Column int
	Score  int
}

// MonteCarlo scores every valid column by random playouts and plays the
// column with the highest total.
type MonteCarlo struct {
	piece      game.Piece
	goroutines int
	seed       uint64
	metrics    metrics.Collector
}

func NewMonteCarlo(piece game.Piece, options ...Option) *MonteCarlo {
	if piece == game.Empty {
		panic("agent piece must be a player piece")
	}
	s := defaultSettings()
	s.apply(options)
	return &MonteCarlo{
		piece:      piece,
		goroutines: s.goroutines,
		seed:       s.seed,
		metrics:    s.metrics,
	}
}

func (m *MonteCarlo) Piece() game.Piece {
	return m.piece
}

// ChooseMove returns the column with the highest playout total. Ties go to
// the first column in increasing order.
func (m *MonteCarlo) ChooseMove(board game.Board, simulations int) (int, error) {
	column, _, err := m.ChooseMoveWithMetrics(board, simulations)
	return column, err
}

func (m *MonteCarlo) ChooseMoveWithMetrics(board game.Board, simulations int) (int, metrics.SearchMetric, error) {
	m.metrics.Start(m.goroutines)
	scores := m.Scores(board, simulations)
	metric := m.metrics.Complete()
	if len(scores) == 0 {
		return NoColumn, metric, game.ErrNoValidColumns
	}

	best := scores[0]
	for _, s := range scores[1:] {
		if s.Score > best.Score {
			best = s
		}
	}
	return best.Column, metric, nil
}

// Scores runs simulations playouts for each valid column, in increasing
// column order. Each column draws from its own random stream, so the result
// only depends on the seed and not on the number of goroutines.
func (m *MonteCarlo) Scores(board game.Board, simulations int) []ColumnScore {
	columns := board.ValidColumns()
	scores := make([]ColumnScore, len(columns))

	task := make(chan int, len(columns))
	for i := range columns {
		task <- i
	}
	close(task)

	var wg sync.WaitGroup
	for i := 0; i < min(m.goroutines, len(columns)); i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for idx := range task {
				col := columns[idx]
				rng := branchRand(m.seed, col)
				committed := play(board, col, m.piece)
				total := 0
				for n := 0; n < simulations; n++ {
					total += Simulate(committed, m.piece, rng)
					m.metrics.AddPlayout()
				}
				scores[idx] = ColumnScore{Column: col, Score: total}
			}
		}()
	}
	wg.Wait()

	return scores
}

// Simulate plays uniformly random moves on a copy of board until someone
// wins or the board fills. The opponent of startingPiece moves first. It
// returns +1 if startingPiece wins, -1 if the opponent wins and 0 on a draw.
func Simulate(board game.Board, startingPiece game.Piece, rng *rand.Rand) int {
	mover := startingPiece.Opponent()
	for {
		columns := board.ValidColumns()
		if len(columns) == 0 {
			return 0
		}
		board = play(board, columns[rng.Intn(len(columns))], mover)
		if board.HasWon(mover) {
			if mover == startingPiece {
				return 1
			}
			return -1
		}
		mover = mover.Opponent()
	}
}
