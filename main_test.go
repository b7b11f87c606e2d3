package main

import (
	"bytes"
	"connect4/experiments/metrics"
	"connect4/searcher/agent"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func move(player int, duration time.Duration) metrics.MoveMetric {
	return metrics.MoveMetric{Player: player, SearchMetric: metrics.SearchMetric{Duration: duration}}
}

func TestPrintTimings(t *testing.T) {
	agents := []agent.Agent{agent.NewMinimaxAgent(3), agent.NewRandomAgent(1)}

	t.Run("naming the faster agent", func(t *testing.T) {
		var buf bytes.Buffer

		printTimings(&buf, agents, []metrics.MoveMetric{
			move(1, 30*time.Millisecond),
			move(2, time.Millisecond),
			move(1, 10*time.Millisecond),
		})

		require.Equal(t,
			"A minimax(depth=3): 2 moves, 40ms total, 20ms per move\n"+
				"B random: 1 moves, 1ms total, 1ms per move\n"+
				"B random is faster overall\n",
			buf.String())
	})

	t.Run("ties go to the first agent", func(t *testing.T) {
		var buf bytes.Buffer

		printTimings(&buf, agents, []metrics.MoveMetric{
			move(1, time.Millisecond),
			move(2, time.Millisecond),
		})

		require.Contains(t, buf.String(), "A minimax(depth=3) is faster overall\n")
	})

	t.Run("no comparison when one agent never moved", func(t *testing.T) {
		var buf bytes.Buffer

		printTimings(&buf, agents, []metrics.MoveMetric{move(1, time.Millisecond)})

		require.NotContains(t, buf.String(), "faster")
	})
}

func TestParseColumns(t *testing.T) {
	got, err := parseColumns(" 3, 4,3 ")
	require.NoError(t, err)
	require.Equal(t, []int{3, 4, 3}, got)

	got, err = parseColumns("")
	require.NoError(t, err)
	require.Empty(t, got)

	_, err = parseColumns("3,x")
	require.Error(t, err)
}
