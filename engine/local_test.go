package engine

import (
	"connect4/experiments/metrics"
	"connect4/game"
	"connect4/searcher/agent"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

// scripted plays a fixed list of columns.
type scripted struct {
	columns []int
	err     error
}

func (s *scripted) Name() string { return "scripted" }

func (s *scripted) FindMove(board game.Board, piece game.Piece) (int, metrics.SearchMetric, error) {
	if s.err != nil {
		return -1, metrics.SearchMetric{}, s.err
	}
	col := s.columns[0]
	s.columns = s.columns[1:]
	return col, metrics.SearchMetric{Goroutines: 1}, nil
}

func TestLocalEngineRun(t *testing.T) {
	t.Run("vertical win", func(t *testing.T) {
		agents := []agent.Agent{
			&scripted{columns: []int{0, 0, 0, 0}},
			&scripted{columns: []int{1, 1, 1}},
		}

		winner, gameMetric, moveMetrics, err := LocalEngine(game.NewStandardBoard(), agents).Run()

		require.NoError(t, err)
		require.Equal(t, game.PlayerA, winner)
		require.Equal(t, int(game.PlayerA), gameMetric.Winner)
		require.Equal(t, int(game.PlayerA), gameMetric.StartingPlayer)
		require.Equal(t, 7, gameMetric.TotalMoves)
		require.Len(t, moveMetrics, 7)
		require.NotEmpty(t, gameMetric.ID)
		require.False(t, gameMetric.EndTime.Before(gameMetric.StartTime))
		for i, mm := range moveMetrics {
			require.Equal(t, i+1, mm.Step)
		}
		require.Equal(t, int(game.PlayerB), moveMetrics[1].Player)
		require.Equal(t, 1, moveMetrics[1].Column)
	})

	t.Run("draw on a full board", func(t *testing.T) {
		agents := []agent.Agent{
			&scripted{columns: []int{0, 1}},
			&scripted{columns: []int{0, 1}},
		}

		winner, gameMetric, _, err := LocalEngine(game.NewBoard(2, 2), agents).Run()

		require.NoError(t, err)
		require.Equal(t, game.Empty, winner)
		require.Equal(t, 0, gameMetric.Winner)
		require.Equal(t, 4, gameMetric.TotalMoves)
	})

	t.Run("continuing an opening", func(t *testing.T) {
		board, err := game.Replay(game.NewStandardBoard(), game.PlayerA, 3)
		require.NoError(t, err)
		agents := []agent.Agent{
			&scripted{columns: []int{1, 2, 1}},
			&scripted{columns: []int{0, 0, 0, 0}},
		}

		winner, gameMetric, _, err := LocalEngine(board, agents).Run()

		require.NoError(t, err)
		require.Equal(t, int(game.PlayerB), gameMetric.StartingPlayer)
		require.Equal(t, game.PlayerB, winner)
	})

	t.Run("rejecting an invalid column", func(t *testing.T) {
		agents := []agent.Agent{
			&scripted{columns: []int{9}},
			&scripted{columns: []int{0}},
		}

		_, _, _, err := LocalEngine(game.NewStandardBoard(), agents).Run()

		require.ErrorIs(t, err, game.ErrColumnOutOfRange)
	})

	t.Run("reporting agent errors", func(t *testing.T) {
		failure := errors.New("search failed")
		agents := []agent.Agent{
			&scripted{err: failure},
			&scripted{},
		}

		_, _, moveMetrics, err := LocalEngine(game.NewStandardBoard(), agents).Run()

		require.ErrorIs(t, err, failure)
		require.Empty(t, moveMetrics)
	})
}

func TestLocalEngineObserver(t *testing.T) {
	agents := []agent.Agent{
		agent.NewMinimaxAgent(2),
		agent.NewRandomAgent(1),
	}
	var steps []int
	var last game.Board
	var durations []time.Duration
	observer := func(move metrics.MoveMetric, board game.Board) {
		steps = append(steps, move.Step)
		durations = append(durations, move.Duration)
		require.Equal(t, game.Piece(move.Player), board.At(mustTopRow(t, board, move.Column), move.Column))
		last = board
	}

	winner, gameMetric, moveMetrics, err := LocalEngine(game.NewStandardBoard(), agents, WithObserver(observer)).Run()

	require.NoError(t, err)
	require.Len(t, steps, gameMetric.TotalMoves)
	require.Len(t, moveMetrics, gameMetric.TotalMoves)
	require.Equal(t, gameMetric.TotalMoves, last.Count())
	for i, mm := range moveMetrics {
		require.Equal(t, mm.Duration, durations[i], "Observer should see the search duration of each move")
	}
	if winner == game.Empty {
		require.True(t, last.IsFull())
	} else {
		require.True(t, last.HasWon(winner))
	}
}

func TestLocalEngineAgents(t *testing.T) {
	require.Panics(t, func() {
		LocalEngine(game.NewStandardBoard(), []agent.Agent{agent.NewRandomAgent(1)})
	})
}

// mustTopRow returns the highest occupied row of col.
func mustTopRow(t *testing.T, board game.Board, col int) int {
	t.Helper()
	row, err := board.NextOpenRow(col)
	if errors.Is(err, game.ErrColumnFull) {
		return board.Rows() - 1
	}
	require.NoError(t, err)
	return row - 1
}
