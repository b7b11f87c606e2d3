package game

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func TestHasWon(t *testing.T) {
	tests := []struct {
		name string
		rows []string
	}{
		{"horizontal", []string{
			".......",
			".......",
			".......",
			".......",
			"B.BB...",
			"BAAAAB.",
		}},
		{"vertical", []string{
			".......",
			"......A",
			"......A",
			"B.....A",
			"B.....A",
			"BB....B",
		}},
		{"ascending diagonal", []string{
			".......",
			".......",
			"......A",
			".....AB",
			"....ABB",
			"...ABBA",
		}},
		{"descending diagonal", []string{
			".......",
			".......",
			"A......",
			"BA.....",
			"BBA....",
			"ABBA...",
		}},
		{"along the top edge", []string{
			"...AAAA",
			"...BBAB",
			"...ABBA",
			"...BAAB",
			"...ABBA",
			"...BAAB",
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := ParseBoard(4, tt.rows...)
			require.NoError(t, err)

			require.True(t, b.HasWon(PlayerA), "A should have four in a row\n%s", b)
			require.False(t, b.HasWon(PlayerB), "B should not have four in a row\n%s", b)
			require.Equal(t, PlayerA, b.Winner())
		})
	}

	t.Run("three in a row is not a win", func(t *testing.T) {
		b, err := ParseBoard(4,
			"...",
			"A..",
			"A..",
			"A..",
			"BBB",
		)
		require.NoError(t, err)

		require.False(t, b.HasWon(PlayerA))
		require.False(t, b.HasWon(PlayerB))
		require.Equal(t, Empty, b.Winner())
	})

	t.Run("full board without any run of three", func(t *testing.T) {
		// Pairs of rows alternate by column; no line holds more than two.
		b := NewStandardBoard()
		for col := 0; col < b.Cols(); col++ {
			for row := 0; row < b.Rows(); row++ {
				piece := PlayerA
				if (row/2+col)%2 == 1 {
					piece = PlayerB
				}
				_, err := b.Play(col, piece)
				require.NoError(t, err)
			}
		}

		require.True(t, b.IsFull())
		require.False(t, b.HasWon(PlayerA), "\n%s", b)
		require.False(t, b.HasWon(PlayerB), "\n%s", b)
	})

	t.Run("empty piece never wins", func(t *testing.T) {
		require.False(t, NewStandardBoard().HasWon(Empty))
	})

	t.Run("connect length is a board parameter", func(t *testing.T) {
		b, err := ParseBoard(3,
			"....",
			"....",
			"B...",
			"AAAB",
		)
		require.NoError(t, err)

		require.True(t, b.HasWon(PlayerA))
	})
}

func TestHasWonPlantedRuns(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for trial := 0; trial < 300; trial++ {
		b := randomBoard(rng, 6, 7)
		for _, piece := range []Piece{PlayerA, PlayerB} {
			require.Equal(t, referenceHasWon(b, piece), b.HasWon(piece), "\n%s", b)
		}
	}

	for trial := 0; trial < 200; trial++ {
		d := directions[rng.Intn(len(directions))]
		b := plantRun(rng, d[0], d[1])
		require.True(t, b.HasWon(PlayerA), "planted run %v should win\n%s", d, b)
	}
}

// plantRun builds a board holding a four-long run of A in direction
// (dRow, dCol), with B noise underneath and beside it.
func plantRun(rng *rand.Rand, dRow, dCol int) Board {
	rows, cols := 6, 7
	var grid [6][7]Piece
	for {
		row, col := rng.Intn(rows), rng.Intn(cols)
		endRow, endCol := row+3*dRow, col+3*dCol
		if endRow < 0 || endRow >= rows || endCol < 0 || endCol >= cols {
			continue
		}
		for i := 0; i < 4; i++ {
			grid[row+i*dRow][col+i*dCol] = PlayerA
		}
		break
	}
	b := NewBoard(rows, cols)
	for col := 0; col < cols; col++ {
		top := -1
		for row := 0; row < rows; row++ {
			if grid[row][col] != Empty {
				top = row
			}
		}
		height := top + 1
		if extra := rng.Intn(rows - height + 1); extra > 0 {
			height += extra
		}
		for row := 0; row < height; row++ {
			piece := grid[row][col]
			if piece == Empty {
				piece = PlayerB
				if rng.Intn(3) == 0 {
					piece = PlayerA
				}
			}
			if _, err := b.Play(col, piece); err != nil {
				panic(err)
			}
		}
	}
	return b
}

// referenceHasWon checks every segment of four cells independently.
func referenceHasWon(b Board, piece Piece) bool {
	for row := 0; row < b.Rows(); row++ {
		for col := 0; col < b.Cols(); col++ {
			for _, d := range [][2]int{{0, 1}, {1, 0}, {1, 1}, {1, -1}} {
				n := 0
				for i := 0; i < b.Connect(); i++ {
					r, c := row+d[0]*i, col+d[1]*i
					if r < 0 || r >= b.Rows() || c < 0 || c >= b.Cols() || b.At(r, c) != piece {
						break
					}
					n++
				}
				if n == b.Connect() {
					return true
				}
			}
		}
	}
	return false
}
