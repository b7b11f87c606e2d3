package searcher

import (
	"connect4/experiments/metrics"
	"connect4/game"
	"fmt"
	"math"
	"sync"
)

const (
	// WinScore dominates every non-terminal valuation, so a forced win is
	// always preferred.
	WinScore = 100_000_000

	NoColumn = -1

	NegInf = math.MinInt
	PosInf = math.MaxInt
)

// Result is the outcome of a search: the chosen column (NoColumn at
// terminal positions) and its score from the maximizer's point of view.
type Result struct {
	Column int
	Score  int
}

// Minimax is a depth-limited minimax search with alpha-beta pruning.
// Scores are WinScore, -WinScore or 0; no heuristic is applied at the depth
// cutoff.
type Minimax struct {
	maximizer  game.Piece
	minimizer  game.Piece
	goroutines int
	metrics    metrics.Collector
}

func NewMinimax(maximizer game.Piece, options ...Option) *Minimax {
	if maximizer == game.Empty {
		panic("maximizer must be a player piece")
	}
	s := defaultSettings()
	s.apply(options)
	return &Minimax{
		maximizer:  maximizer,
		minimizer:  maximizer.Opponent(),
		goroutines: s.goroutines,
		metrics:    s.metrics,
	}
}

func (m *Minimax) Maximizer() game.Piece {
	return m.maximizer
}

// Search runs minimax from board. The caller passes NegInf/PosInf for a full
// window. With more than one goroutine the root children are searched
// concurrently; the returned score is the same as the sequential search for
// a full window.
func (m *Minimax) Search(board game.Board, depth, alpha, beta int, maximizing bool) (Result, metrics.SearchMetric) {
	m.metrics.Start(m.goroutines)
	var result Result
	if m.goroutines > 1 {
		result = m.searchRoot(board, depth, alpha, beta, maximizing)
	} else {
		result = m.minimax(board, depth, alpha, beta, maximizing)
	}
	return result, m.metrics.Complete()
}

func (m *Minimax) minimax(board game.Board, depth, alpha, beta int, maximizing bool) Result {
	m.metrics.AddNode()

	columns := board.ValidColumns()
	if score, terminal := m.terminal(board, depth, columns); terminal {
		return Result{Column: NoColumn, Score: score}
	}

	// Ties keep the first valid column
	best := Result{Column: columns[0], Score: PosInf}
	piece := m.minimizer
	if maximizing {
		best.Score = NegInf
		piece = m.maximizer
	}

	for _, col := range columns {
		child := play(board, col, piece)
		score := m.minimax(child, depth-1, alpha, beta, !maximizing).Score
		if maximizing {
			if score > best.Score {
				best = Result{Column: col, Score: score}
			}
			alpha = max(alpha, best.Score)
		} else {
			if score < best.Score {
				best = Result{Column: col, Score: score}
			}
			beta = min(beta, best.Score)
		}
		if alpha >= beta {
			m.metrics.AddCutoff()
			break
		}
	}
	return best
}

// searchRoot evaluates every root child on its own goroutine with the
// caller's window, then reduces in column order exactly like minimax does.
func (m *Minimax) searchRoot(board game.Board, depth, alpha, beta int, maximizing bool) Result {
	m.metrics.AddNode()

	columns := board.ValidColumns()
	if score, terminal := m.terminal(board, depth, columns); terminal {
		return Result{Column: NoColumn, Score: score}
	}

	piece := m.minimizer
	if maximizing {
		piece = m.maximizer
	}

	scores := make([]int, len(columns))
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
				child := play(board, columns[idx], piece)
				scores[idx] = m.minimax(child, depth-1, alpha, beta, !maximizing).Score
			}
		}()
	}
	wg.Wait()

	best := Result{Column: columns[0], Score: PosInf}
	if maximizing {
		best.Score = NegInf
	}
	for i, score := range scores {
		if (maximizing && score > best.Score) || (!maximizing && score < best.Score) {
			best = Result{Column: columns[i], Score: score}
		}
	}
	return best
}

func (m *Minimax) terminal(board game.Board, depth int, columns []int) (int, bool) {
	switch {
	case board.HasWon(m.maximizer):
		return WinScore, true
	case board.HasWon(m.minimizer):
		return -WinScore, true
	case len(columns) == 0 || depth <= 0:
		return 0, true
	}
	return 0, false
}

// play returns a copy of board with piece dropped into col. Callers only
// pass columns from ValidColumns, so a failure is a broken invariant.
func play(board game.Board, col int, piece game.Piece) game.Board {
	if _, err := board.Play(col, piece); err != nil {
		panic(fmt.Sprintf("playing column %d: %v", col, err))
	}
	return board
}
