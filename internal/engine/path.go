package engine

import (
	"chessrules/internal/board"
	"chessrules/internal/core"
)

// pathClear reports whether every square strictly between from and to is
// empty. from and to must share a row, a column or a diagonal.
func pathClear(b *board.Board, from, to core.Square) bool {
	rowDir := sign(to.Row - from.Row)
	colDir := sign(to.Col - from.Col)

	sq := core.Sq(from.Row+rowDir, from.Col+colDir)
	for sq != to {
		if !b.IsEmpty(sq) {
			return false
		}
		sq = core.Sq(sq.Row+rowDir, sq.Col+colDir)
	}

	return true
}

func isStraight(dr, dc int) bool {
	return (dr == 0) != (dc == 0)
}

func isDiagonal(dr, dc int) bool {
	return dr != 0 && abs(dr) == abs(dc)
}

func sign(n int) int {
	switch {
	case n > 0:
		return 1
	case n < 0:
		return -1
	default:
		return 0
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
