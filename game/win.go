package game

// Horizontal, vertical, ascending and descending diagonal.
var directions = [4][2]int{{0, 1}, {1, 0}, {1, 1}, {-1, 1}}

// HasWon reports whether piece has Connect() pieces in a row in any of the
// four orientations.
func (b Board) HasWon(piece Piece) bool {
	if piece == Empty {
		return false
	}
	for row := 0; row < b.rows; row++ {
		for col := 0; col < b.cols; col++ {
			if b.cells[row][col] != piece {
				continue
			}
			for _, d := range directions {
				if b.runFrom(row, col, d[0], d[1], piece) {
					return true
				}
			}
		}
	}
	return false
}

// Winner returns the piece that has won, or Empty.
func (b Board) Winner() Piece {
	if b.HasWon(PlayerA) {
		return PlayerA
	}
	if b.HasWon(PlayerB) {
		return PlayerB
	}
	return Empty
}

func (b Board) runFrom(row, col, dRow, dCol int, piece Piece) bool {
	endRow := row + dRow*(b.connect-1)
	endCol := col + dCol*(b.connect-1)
	if endRow < 0 || endRow >= b.rows || endCol < 0 || endCol >= b.cols {
		return false
	}
	for i := 1; i < b.connect; i++ {
		if b.cells[row+dRow*i][col+dCol*i] != piece {
			return false
		}
	}
	return true
}
