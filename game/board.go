package game

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Board is a grid of pieces with rows indexed bottom-to-top. It is a value
// type: assigning a Board copies the whole grid, so searches can mutate
// their own copy without touching the caller's board.
type Board struct {
	cells   [MaxRows][MaxCols]Piece
	rows    int
	cols    int
	connect int
	count   int
}

// NewStandardBoard returns an empty 6x7 connect-four board.
func NewStandardBoard() Board {
	return NewBoardWithConnect(DefaultRows, DefaultCols, DefaultConnect)
}

// NewBoard returns an empty rows x cols board where four in a row wins.
func NewBoard(rows, cols int) Board {
	return NewBoardWithConnect(rows, cols, DefaultConnect)
}

// NewBoardWithConnect returns an empty board where connect pieces in a row
// win. Dimensions must fit MaxRows x MaxCols.
func NewBoardWithConnect(rows, cols, connect int) Board {
	if rows < 1 || rows > MaxRows || cols < 1 || cols > MaxCols {
		panic(fmt.Sprintf("invalid board dimensions %dx%d", rows, cols))
	}
	if connect < 1 {
		panic(fmt.Sprintf("invalid connect length %d", connect))
	}
	return Board{rows: rows, cols: cols, connect: connect}
}

func (b Board) Rows() int    { return b.rows }
func (b Board) Cols() int    { return b.cols }
func (b Board) Connect() int { return b.connect }

// Count returns the number of pieces on the board.
func (b Board) Count() int { return b.count }

// At returns the piece at (row, col). Out of range cells read as Empty.
func (b Board) At(row, col int) Piece {
	if row < 0 || row >= b.rows || col < 0 || col >= b.cols {
		return Empty
	}
	return b.cells[row][col]
}

// IsValidColumn reports whether a piece can still be dropped into col.
func (b Board) IsValidColumn(col int) bool {
	if col < 0 || col >= b.cols {
		return false
	}
	return b.cells[b.rows-1][col] == Empty
}

// NextOpenRow returns the lowest empty row of col.
func (b Board) NextOpenRow(col int) (int, error) {
	if col < 0 || col >= b.cols {
		return -1, errors.Wrapf(ErrColumnOutOfRange, "column %d", col)
	}
	for row := 0; row < b.rows; row++ {
		if b.cells[row][col] == Empty {
			return row, nil
		}
	}
	return -1, errors.Wrapf(ErrColumnFull, "column %d", col)
}

// Drop writes piece into (row, col). The row must be the next open row of
// the column so the gravity invariant always holds.
func (b *Board) Drop(row, col int, piece Piece) error {
	if piece == Empty {
		return errors.Wrapf(ErrInvalidDrop, "empty piece at column %d", col)
	}
	open, err := b.NextOpenRow(col)
	if err != nil {
		return err
	}
	if row != open {
		return errors.Wrapf(ErrInvalidDrop, "row %d in column %d, next open row is %d", row, col, open)
	}
	b.cells[row][col] = piece
	b.count++
	return nil
}

// Play drops piece into the lowest open row of col and returns that row.
func (b *Board) Play(col int, piece Piece) (int, error) {
	row, err := b.NextOpenRow(col)
	if err != nil {
		return -1, err
	}
	return row, b.Drop(row, col, piece)
}

// ValidColumns returns the playable columns in increasing order. An empty
// result means the board is full.
func (b Board) ValidColumns() []int {
	columns := make([]int, 0, b.cols)
	for col := 0; col < b.cols; col++ {
		if b.cells[b.rows-1][col] == Empty {
			columns = append(columns, col)
		}
	}
	return columns
}

// IsFull reports whether no column can take another piece.
func (b Board) IsFull() bool {
	return b.count >= b.rows*b.cols
}

// String renders the board top row first, one character per cell.
func (b Board) String() string {
	var sb strings.Builder
	for row := b.rows - 1; row >= 0; row-- {
		for col := 0; col < b.cols; col++ {
			sb.WriteString(b.cells[row][col].String())
		}
		sb.WriteByte('\n')
	}
	for col := 0; col < b.cols; col++ {
		sb.WriteString(fmt.Sprintf("%d", col%10))
	}
	sb.WriteByte('\n')
	return sb.String()
}

// ParseBoard builds a board from rows written top row first, using the
// String() alphabet: 'A', 'B' and '.' for empty. Pieces must rest on the
// bottom or on another piece.
func ParseBoard(connect int, rows ...string) (Board, error) {
	if len(rows) == 0 {
		return Board{}, errors.New("no rows")
	}
	cols := len(rows[0])
	for i, r := range rows {
		if len(r) != cols {
			return Board{}, errors.Errorf("row %d has %d cells, want %d", i, len(r), cols)
		}
	}
	board := NewBoardWithConnect(len(rows), cols, connect)
	for col := 0; col < cols; col++ {
		for row := 0; row < len(rows); row++ {
			var piece Piece
			switch c := rows[len(rows)-1-row][col]; c {
			case 'A':
				piece = PlayerA
			case 'B':
				piece = PlayerB
			case '.':
				continue
			default:
				return Board{}, errors.Errorf("unknown cell %q", c)
			}
			if err := board.Drop(row, col, piece); err != nil {
				return Board{}, err
			}
		}
	}
	return board, nil
}

// Replay plays columns on a copy of board, alternating pieces starting with
// first.
func Replay(board Board, first Piece, columns ...int) (Board, error) {
	piece := first
	for i, col := range columns {
		if _, err := board.Play(col, piece); err != nil {
			return board, errors.Wrapf(err, "move %d", i+1)
		}
		piece = piece.Opponent()
	}
	return board, nil
}
