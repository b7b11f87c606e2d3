package metrics

import (
	"sync/atomic"
	"time"
)

type SearchMetric struct {
	Goroutines int
	Duration   time.Duration
	Nodes      int // Positions visited by tree searches
	Cutoffs    int // Alpha-beta prunes
	Playouts   int // Random games played to completion
	Episodes   int // Tree search iterations
}

type MoveMetric struct {
	Step   int
	Player int // game.Piece of the mover
	Column int
	SearchMetric
}

type GameMetric struct {
	ID             string
	StartingPlayer int // game.Piece
	Winner         int // game.Piece, 0 on a draw
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
	TotalMoves     int
}

// Collector accumulates statistics of a single search. Counters are safe to
// update from several goroutines; Start and Complete are not.
type Collector interface {
	Start(goroutines int)
	AddNode()
	AddCutoff()
	AddPlayout()
	AddEpisode()
	Complete() SearchMetric
}

type collector struct {
	goroutines int
	startTime  time.Time
	nodes      atomic.Int64
	cutoffs    atomic.Int64
	playouts   atomic.Int64
	episodes   atomic.Int64
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(goroutines int) {
	m.startTime = time.Now()
	m.goroutines = goroutines
	m.nodes.Store(0)
	m.cutoffs.Store(0)
	m.playouts.Store(0)
	m.episodes.Store(0)
}

func (m *collector) AddNode() {
	m.nodes.Add(1)
}

func (m *collector) AddCutoff() {
	m.cutoffs.Add(1)
}

func (m *collector) AddPlayout() {
	m.playouts.Add(1)
}

func (m *collector) AddEpisode() {
	m.episodes.Add(1)
}

func (m *collector) Complete() SearchMetric {
	return SearchMetric{
		Goroutines: m.goroutines,
		Duration:   time.Since(m.startTime),
		Nodes:      int(m.nodes.Load()),
		Cutoffs:    int(m.cutoffs.Load()),
		Playouts:   int(m.playouts.Load()),
		Episodes:   int(m.episodes.Load()),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(goroutines int)   {}
func (m *dummyCollector) AddNode()               {}
func (m *dummyCollector) AddCutoff()             {}
func (m *dummyCollector) AddPlayout()            {}
func (m *dummyCollector) AddEpisode()            {}
func (m *dummyCollector) Complete() SearchMetric { return SearchMetric{} }
