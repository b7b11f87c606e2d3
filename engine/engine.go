package engine

import (
	"connect4/experiments/metrics"
	"connect4/game"
)

type Engine interface {
	// Run plays the game until a player connects or the board fills. The
	// winner is game.Empty on a draw.
	Run() (winner game.Piece, gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric, err error)
}

// Observer is notified after every move with its metrics and the resulting
// board.
type Observer func(move metrics.MoveMetric, board game.Board)
