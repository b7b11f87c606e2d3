package searcher

import (
	"connect4/experiments/metrics"
	"connect4/game"
	"sync"
	"time"

	"golang.org/x/exp/rand"
)

// UCT is a tree-parallel Monte-Carlo tree search: workers share one tree and
// use virtual losses to spread out over different branches.
type UCT struct {
	goroutines int
	episodes   int
	duration   time.Duration
	seed       uint64
	metrics    metrics.Collector
}

func NewUCT(options ...Option) *UCT {
	s := defaultSettings()
	s.apply(options)
	if s.episodes <= 0 && s.duration <= 0 {
		panic("Must specify search episodes or duration")
	}
	return &UCT{
		goroutines: s.goroutines,
		episodes:   s.episodes,
		duration:   s.duration,
		seed:       s.seed,
		metrics:    s.metrics,
	}
}

// FindMove builds a fresh tree for piece to move on board and returns the
// most visited column.
func (u *UCT) FindMove(board game.Board, piece game.Piece) (int, metrics.SearchMetric, error) {
	columns := board.ValidColumns()
	if len(columns) == 0 {
		return NoColumn, metrics.SearchMetric{}, game.ErrNoValidColumns
	}

	root := newDecision(nil, NoColumn, piece.Opponent(), board)
	u.metrics.Start(u.goroutines)
	if u.episodes > 0 {
		u.iterate(root, board)
	} else {
		u.countdown(root, board)
	}
	metric := u.metrics.Complete()

	column := root.bestColumn()
	if column == NoColumn { // Root already decided
		column = columns[0]
	}
	return column, metric, nil
}

func (u *UCT) iterate(root *decision, board game.Board) {
	task := make(chan any, u.episodes)
	for i := 0; i < u.episodes; i++ {
		task <- nil
	}
	close(task)

	var wg sync.WaitGroup
	for i := 0; i < u.goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			rng := branchRand(u.seed, i)
			for range task {
				u.simulate(root, board, rng)
			}
		}()
	}

	wg.Wait()
}

func (u *UCT) countdown(root *decision, board game.Board) {
	done := make(chan any)

	var wg sync.WaitGroup
	for i := 0; i < u.goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			rng := branchRand(u.seed, i)
			for {
				select {
				case <-done:
					return
				default:
					u.simulate(root, board, rng)
				}
			}
		}()
	}

	<-time.After(u.duration)
	close(done)
	wg.Wait()
}

func (u *UCT) simulate(root *decision, board game.Board, rng *rand.Rand) {
	node, board := selectThenExpand(root, board)
	winner := u.rollout(node, board, rng)
	backup(node, winner)
	u.metrics.AddEpisode()
}

func selectThenExpand(root *decision, board game.Board) (*decision, game.Board) {
	parent := root
	child, board, selected := parent.SelectOrExpand(board)
	for selected && (child != parent) {
		parent = child
		child, board, selected = parent.SelectOrExpand(board)
	}
	return child, board
}

// rollout returns the winner of a random playout from node, Empty on a draw.
func (u *UCT) rollout(node *decision, board game.Board, rng *rand.Rand) game.Piece {
	u.metrics.AddNode()
	if node.terminal {
		return board.Winner()
	}

	u.metrics.AddPlayout()
	switch Simulate(board, node.mover, rng) {
	case 1:
		return node.mover
	case -1:
		return node.mover.Opponent()
	default:
		return game.Empty
	}
}

func backup(node *decision, winner game.Piece) {
	for node != nil {
		node = node.Backup(winner)
	}
}
