package board

import (
	"fmt"
	"strings"

	"chessrules/internal/core"
)

const (
	// StartingPlacement is the standard setup, black on the top two rows
	StartingPlacement = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR"
)

// Board is a value type; copying it takes a snapshot.
type Board struct {
	squares [core.BoardSize][core.BoardSize]core.Piece
}

// New returns the standard starting position
func New() Board {
	b, err := ParsePlacement(StartingPlacement)
	if err != nil {
		panic(err)
	}
	return b
}

// ParsePlacement reads the piece-placement field of a FEN string, rows top to
// bottom. Anything after the first space is ignored.
func ParsePlacement(placement string) (Board, error) {
	var b Board

	fields := strings.Fields(placement)
	if len(fields) == 0 {
		return b, fmt.Errorf("%w: empty placement", core.ErrInvalidPlacement)
	}

	rows := strings.Split(fields[0], "/")
	if len(rows) != core.BoardSize {
		return b, fmt.Errorf("%w: expected %d rows, got %d", core.ErrInvalidPlacement, core.BoardSize, len(rows))
	}

	for r, row := range rows {
		col := 0
		for i := 0; i < len(row); i++ {
			ch := row[i]
			if ch >= '1' && ch <= '8' {
				col += int(ch - '0')
				continue
			}
			if col >= core.BoardSize {
				return b, fmt.Errorf("%w: too many pieces in row %d", core.ErrInvalidPlacement, r)
			}
			p, ok := core.PieceFromSymbol(ch)
			if !ok {
				return b, fmt.Errorf("%w: unknown piece symbol %q in row %d", core.ErrInvalidPlacement, ch, r)
			}
			b.squares[r][col] = p
			col++
		}
		if col != core.BoardSize {
			return b, fmt.Errorf("%w: row %d has %d columns", core.ErrInvalidPlacement, r, col)
		}
	}

	return b, nil
}

// Placement formats the board back into a placement string
func (b Board) Placement() string {
	var sb strings.Builder
	for r := 0; r < core.BoardSize; r++ {
		if r > 0 {
			sb.WriteByte('/')
		}
		empty := 0
		for c := 0; c < core.BoardSize; c++ {
			p := b.squares[r][c]
			if p.IsEmpty() {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			sb.WriteByte(p.Symbol())
		}
		if empty > 0 {
			sb.WriteByte(byte('0' + empty))
		}
	}
	return sb.String()
}

// At returns the piece on sq; off-board squares read as empty
func (b *Board) At(sq core.Square) core.Piece {
	if !sq.OnBoard() {
		return core.Empty
	}
	return b.squares[sq.Row][sq.Col]
}

// Set places p on sq and reports whether sq was on the board
func (b *Board) Set(sq core.Square, p core.Piece) bool {
	if !sq.OnBoard() {
		return false
	}
	b.squares[sq.Row][sq.Col] = p
	return true
}

// Clear empties sq
func (b *Board) Clear(sq core.Square) {
	b.Set(sq, core.Empty)
}

func (b *Board) IsEmpty(sq core.Square) bool {
	return b.At(sq).IsEmpty()
}

// FindKing returns the first king of the given color in row-major order
func (b *Board) FindKing(c core.Color) (core.Square, bool) {
	want := core.NewPiece(core.King, c)
	for r := 0; r < core.BoardSize; r++ {
		for f := 0; f < core.BoardSize; f++ {
			if b.squares[r][f] == want {
				return core.Sq(r, f), true
			}
		}
	}
	return core.Square{}, false
}

// Squares visits every square in row-major order
func Squares(fn func(sq core.Square)) {
	for r := 0; r < core.BoardSize; r++ {
		for c := 0; c < core.BoardSize; c++ {
			fn(core.Sq(r, c))
		}
	}
}

// ToASCII creates an ASCII representation of the board with row and column
// indices on the edges
func (b *Board) ToASCII() string {
	var sb strings.Builder
	sb.WriteString("  0 1 2 3 4 5 6 7\n")

	for r := 0; r < core.BoardSize; r++ {
		sb.WriteString(fmt.Sprintf("%d ", r))
		for c := 0; c < core.BoardSize; c++ {
			piece := b.squares[r][c]
			if piece.IsEmpty() {
				sb.WriteString(". ")
			} else {
				sb.WriteString(fmt.Sprintf("%c ", piece.Symbol()))
			}
		}
		sb.WriteString(fmt.Sprintf(" %d\n", r))
	}
	sb.WriteString("  0 1 2 3 4 5 6 7")

	return sb.String()
}
