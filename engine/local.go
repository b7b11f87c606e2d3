package engine

import (
	"connect4/experiments/metrics"
	"connect4/game"
	"connect4/searcher/agent"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

type local struct {
	board    game.Board
	agents   [2]agent.Agent // Indexed by piece: PlayerA, PlayerB
	observer Observer
}

type Option func(e *local)

func WithObserver(observer Observer) Option {
	return func(e *local) {
		e.observer = observer
	}
}

// LocalEngine drives a game in process. agents[0] plays game.PlayerA and
// agents[1] plays game.PlayerB. PlayerA moves first on an even number of
// pieces, so a board with an opening already played continues correctly.
func LocalEngine(board game.Board, agents []agent.Agent, options ...Option) Engine {
	if len(agents) != 2 {
		panic("need exactly two agents")
	}

	e := &local{
		board:  board,
		agents: [2]agent.Agent{agents[0], agents[1]},
	}
	for _, option := range options {
		option(e)
	}
	return e
}

func (e *local) Run() (game.Piece, metrics.GameMetric, []metrics.MoveMetric, error) {
	board := e.board
	piece := game.PlayerA
	if board.Count()%2 == 1 {
		piece = game.PlayerB
	}

	gameMetric := metrics.GameMetric{
		ID:             uuid.NewString(),
		StartingPlayer: int(piece),
		StartTime:      time.Now(),
	}
	logger := log.With().Str("game", gameMetric.ID).Logger()
	logger.Info().
		Str("playerA", e.agentOf(game.PlayerA).Name()).
		Str("playerB", e.agentOf(game.PlayerB).Name()).
		Msgf("player %s is starting", piece)

	moveMetrics := []metrics.MoveMetric{}
	winner := board.Winner()
	for step := 1; winner == game.Empty && !board.IsFull(); step++ {
		a := e.agentOf(piece)
		column, searchMetric, err := a.FindMove(board, piece)
		if err != nil {
			return game.Empty, gameMetric, moveMetrics, errors.Wrapf(err, "%s on move %d", a.Name(), step)
		}
		if _, err := board.Play(column, piece); err != nil {
			return game.Empty, gameMetric, moveMetrics, errors.Wrapf(err, "%s played column %d on move %d", a.Name(), column, step)
		}

		moveMetric := metrics.MoveMetric{
			Step:         step,
			Player:       int(piece),
			Column:       column,
			SearchMetric: searchMetric,
		}
		moveMetrics = append(moveMetrics, moveMetric)
		logger.Debug().
			Int("step", step).
			Stringer("player", piece).
			Int("column", column).
			Dur("duration", searchMetric.Duration).
			Msg("move")
		if e.observer != nil {
			e.observer(moveMetric, board)
		}

		if board.HasWon(piece) {
			winner = piece
		}
		piece = piece.Opponent()
	}

	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	gameMetric.TotalMoves = len(moveMetrics)
	gameMetric.Winner = int(winner)

	if winner == game.Empty {
		logger.Info().Int("moves", gameMetric.TotalMoves).Msg("game ended in a draw")
	} else {
		logger.Info().Int("moves", gameMetric.TotalMoves).Msgf("player %s won", winner)
	}
	return winner, gameMetric, moveMetrics, nil
}

func (e *local) agentOf(piece game.Piece) agent.Agent {
	return e.agents[piece-game.PlayerA]
}
