package game

import "github.com/pkg/errors"

// Piece is the content of a single board cell.
type Piece uint8

const (
	Empty Piece = iota
	PlayerA
	PlayerB
)

// Opponent returns the other player's piece. Empty has no opponent.
func (p Piece) Opponent() Piece {
	switch p {
	case PlayerA:
		return PlayerB
	case PlayerB:
		return PlayerA
	default:
		return Empty
	}
}

func (p Piece) String() string {
	switch p {
	case PlayerA:
		return "A"
	case PlayerB:
		return "B"
	default:
		return "."
	}
}

const (
	DefaultRows    = 6
	DefaultCols    = 7
	DefaultConnect = 4

	// Upper bounds of the backing array; keeps Board a plain value.
	MaxRows = 16
	MaxCols = 16
)

var (
	ErrColumnFull       = errors.New("column is full")
	ErrColumnOutOfRange = errors.New("column out of range")
	ErrInvalidDrop      = errors.New("invalid drop")
	ErrNoValidColumns   = errors.New("no valid columns")
)
