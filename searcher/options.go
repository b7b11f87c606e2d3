package searcher

import (
	"connect4/experiments/metrics"
	"time"

	"golang.org/x/exp/rand"
)

// Option configures any of the searchers in this package. Options that do
// not apply to a searcher are ignored by it.
type Option func(s *settings)

type settings struct {
	goroutines int
	seed       uint64
	episodes   int
	duration   time.Duration
	metrics    metrics.Collector
}

func defaultSettings() settings {
	return settings{
		goroutines: 1,
		seed:       uint64(time.Now().UnixNano()),
		metrics:    metrics.NewDummyCollector(),
	}
}

func (s *settings) apply(options []Option) {
	for _, option := range options {
		option(s)
	}
}

// WithGoroutines spreads independent branches over n goroutines.
func WithGoroutines(n int) Option {
	return func(s *settings) {
		if n > 0 {
			s.goroutines = n
		}
	}
}

// WithSeed fixes the random stream so results are reproducible.
func WithSeed(seed uint64) Option {
	return func(s *settings) {
		s.seed = seed
	}
}

// WithEpisodes bounds a tree search by iteration count.
func WithEpisodes(episodes int) Option {
	return func(s *settings) {
		if episodes > 0 {
			s.episodes = episodes
		}
	}
}

// WithDuration bounds a tree search by wall time.
func WithDuration(duration time.Duration) Option {
	return func(s *settings) {
		if duration > 0 {
			s.duration = duration
		}
	}
}

func WithMetrics() Option {
	return func(s *settings) {
		s.metrics = metrics.NewCollector()
	}
}

// branchRand returns the generator for one branch (a column or a worker).
// Streams of different branches are independent for the same seed.
func branchRand(seed uint64, branch int) *rand.Rand {
	return rand.New(rand.NewSource(seed ^ (uint64(branch+1) * 0x9E3779B97F4A7C15)))
}
