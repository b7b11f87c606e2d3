package searcher

import (
	"connect4/game"
	"sync"
)

// decision is a UCT tree node: the position reached after mover dropped
// into column. Rewards are kept from mover's point of view so the parent
// picks the child that is best for the player choosing at the parent.
type decision struct {
	sync.Mutex
	parent     *decision
	mover      game.Piece
	column     int
	terminal   bool
	unexplored []int
	children   []*decision
	rewards    float64
	visits     float64
}

func newDecision(parent *decision, column int, mover game.Piece, board game.Board) *decision {
	d := &decision{
		parent: parent,
		mover:  mover,
		column: column,
	}
	if board.Winner() != game.Empty || board.IsFull() {
		d.terminal = true
	} else {
		d.unexplored = board.ValidColumns()
	}
	return d
}

// SelectOrExpand descends one level from d. It expands the next unexplored
// column if any, otherwise selects the child with the highest UCT value.
// The returned child carries a virtual loss until it is backed up.
func (d *decision) SelectOrExpand(board game.Board) (*decision, game.Board, bool) {
	d.Lock()
	defer d.Unlock()

	if d.terminal {
		return d, board, false
	}

	toMove := d.mover.Opponent()
	if len(d.unexplored) > 0 { // Expandable node
		column := d.unexplored[0]
		d.unexplored = d.unexplored[1:]
		next := play(board, column, toMove)
		child := newDecision(d, column, toMove, next)
		d.children = append(d.children, child)
		child.applyLoss()
		return child, next, false
	}

	// Fully expanded node
	child := d.pickChild()
	child.applyLoss()
	return child, play(board, child.column, toMove), true
}

func (d *decision) pickChild() *decision {
	if len(d.children) == 0 {
		panic("node has no children")
	}

	// Virtual losses can leave children with more visits than the parent
	policy := newUCTPolicy(CSquared, max(d.visits, 1))

	var best *decision
	bestScore := 0.0
	for _, child := range d.children {
		rewards, visits := child.stats()
		score := policy.evaluate(rewards, visits)
		if best == nil || score > bestScore {
			best = child
			bestScore = score
		}
	}
	return best
}

func (d *decision) applyLoss() {
	d.Lock()
	defer d.Unlock()

	d.rewards += Loss
	d.visits++
}

func (d *decision) reverseLoss() {
	d.rewards -= Loss
	d.visits--
}

func (d *decision) stats() (rewards float64, visits float64) {
	d.Lock()
	defer d.Unlock()

	return d.rewards, d.visits
}

// Backup records the playout result on d and returns its parent.
func (d *decision) Backup(winner game.Piece) *decision {
	d.Lock()
	defer d.Unlock()

	if d.parent != nil { // Non-root node
		d.reverseLoss()
	}

	d.rewards += reward(winner, d.mover)
	d.visits++

	return d.parent
}

func reward(winner, mover game.Piece) float64 {
	switch winner {
	case game.Empty:
		return Draw
	case mover:
		return Win
	default:
		return Loss
	}
}

// bestColumn returns the most visited child's column, first on ties.
func (d *decision) bestColumn() int {
	d.Lock()
	defer d.Unlock()

	column := NoColumn
	maxVisits := -1.0
	for _, child := range d.children {
		if _, visits := child.stats(); visits > maxVisits {
			maxVisits = visits
			column = child.column
		}
	}
	return column
}
