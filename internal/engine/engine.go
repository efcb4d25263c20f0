// Package engine decides move legality for the game and applies validated
// moves to a board. It holds no game state of its own: every operation takes
// the board it works on.
package engine

import (
	"chessrules/internal/board"
	"chessrules/internal/core"
)

// Engine evaluates moves under a fixed rule set
type Engine struct {
	rules Rules
}

// Move is a move that passed Validate. Its fields are unexported so that
// Apply can only be reached through validation.
type Move struct {
	from  core.Square
	to    core.Square
	piece core.Piece
	ok    bool
}

func (m Move) From() core.Square { return m.from }
func (m Move) To() core.Square   { return m.to }
func (m Move) Piece() core.Piece { return m.piece }

// Outcome describes what Apply did to the board
type Outcome struct {
	Piece    core.Piece // piece as it stood before the move
	Captured core.Piece // empty when nothing was taken
	Promoted bool
}

func New(rules Rules) *Engine {
	return &Engine{rules: rules}
}

func (e *Engine) Rules() Rules {
	return e.rules
}

// IsLegalMove reports whether the side turn may move the piece on from to to.
// Off-board squares are illegal, never an error.
func (e *Engine) IsLegalMove(b *board.Board, from, to core.Square, turn core.Color) bool {
	_, err := e.Validate(b, from, to, turn)
	return err == nil
}

// Validate returns a move token for Apply, or the reason the move is illegal.
// Every reason wraps core.ErrIllegalMove.
func (e *Engine) Validate(b *board.Board, from, to core.Square, turn core.Color) (Move, error) {
	if err := e.check(b, from, to, turn); err != nil {
		return Move{}, err
	}
	if e.rules.ForbidSelfCheck && e.leavesKingInCheck(b, from, to, turn) {
		return Move{}, core.ErrSelfCheck
	}
	return Move{from: from, to: to, piece: b.At(from), ok: true}, nil
}

// LegalDestinations scans all squares in row-major order and returns those
// the piece on from may move to.
func (e *Engine) LegalDestinations(b *board.Board, from core.Square, turn core.Color) []core.Square {
	p := b.At(from)
	if p.IsEmpty() || p.Color != turn {
		return nil
	}

	var dests []core.Square
	board.Squares(func(to core.Square) {
		if e.IsLegalMove(b, from, to, turn) {
			dests = append(dests, to)
		}
	})
	return dests
}

// Apply performs a validated move: the piece lands on the destination,
// replacing whatever stood there, the source is cleared, and a pawn reaching
// a back rank is promoted. A zero Move is a no-op.
func (e *Engine) Apply(b *board.Board, m Move) Outcome {
	if !m.ok {
		return Outcome{}
	}

	piece := b.At(m.from)
	captured := b.At(m.to)

	b.Set(m.to, piece)
	b.Clear(m.from)

	return Outcome{
		Piece:    piece,
		Captured: captured,
		Promoted: Promote(b, m.to),
	}
}

// Promote turns a pawn standing on row 0 or row 7 into a queen of the same
// color. Either back rank counts for either color.
func Promote(b *board.Board, sq core.Square) bool {
	p := b.At(sq)
	if p.Kind != core.Pawn {
		return false
	}
	if sq.Row != 0 && sq.Row != core.BoardSize-1 {
		return false
	}
	b.Set(sq, core.NewPiece(core.Queen, p.Color))
	return true
}

// KingInCheck reports whether any piece of the opposing color could move onto
// kingSquare. Self-check filtering never applies here.
func (e *Engine) KingInCheck(b *board.Board, kingSquare core.Square, kingColor core.Color) bool {
	attacker := core.OppositeColor(kingColor)

	inCheck := false
	board.Squares(func(sq core.Square) {
		if inCheck {
			return
		}
		p := b.At(sq)
		if p.IsEmpty() || p.Color != attacker {
			return
		}
		if e.check(b, sq, kingSquare, attacker) == nil {
			inCheck = true
		}
	})
	return inCheck
}

// InCheck locates the king of color c and tests it. A side without a king is
// never in check.
func (e *Engine) InCheck(b *board.Board, c core.Color) bool {
	kingSq, ok := b.FindKing(c)
	if !ok {
		return false
	}
	return e.KingInCheck(b, kingSq, c)
}

// check runs the ownership guards and the per-piece geometry
func (e *Engine) check(b *board.Board, from, to core.Square, turn core.Color) error {
	if !from.OnBoard() || !to.OnBoard() {
		return core.ErrOffBoard
	}

	piece := b.At(from)
	if piece.IsEmpty() {
		return core.ErrEmptySquare
	}
	if piece.Color != turn {
		return core.ErrWrongTurn
	}

	target := b.At(to)
	if e.rules.SelfCaptureGuard && !target.IsEmpty() && target.Color == piece.Color {
		return core.ErrSelfCapture
	}

	if from == to {
		return core.ErrNullMove
	}

	if !e.reaches(b, piece, from, to) {
		return core.ErrBadGeometry
	}
	return nil
}

func (e *Engine) reaches(b *board.Board, piece core.Piece, from, to core.Square) bool {
	dr := to.Row - from.Row
	dc := to.Col - from.Col

	switch piece.Kind {
	case core.Pawn:
		return e.pawnReaches(b, piece.Color, from, to)
	case core.Rook:
		return isStraight(dr, dc) && pathClear(b, from, to)
	case core.Knight:
		return (abs(dr) == 1 && abs(dc) == 2) || (abs(dr) == 2 && abs(dc) == 1)
	case core.Bishop:
		return isDiagonal(dr, dc) && pathClear(b, from, to)
	case core.Queen:
		return (isStraight(dr, dc) || isDiagonal(dr, dc)) && pathClear(b, from, to)
	case core.King:
		return abs(dr) <= 1 && abs(dc) <= 1 && (dr != 0 || dc != 0)
	default:
		return false
	}
}

func (e *Engine) pawnReaches(b *board.Board, c core.Color, from, to core.Square) bool {
	dir := pawnDirection(c)
	dr := to.Row - from.Row
	dc := to.Col - from.Col

	if dc == 0 {
		switch {
		case dr == dir:
			return !e.rules.StrictPawnAdvance || b.IsEmpty(to)
		case dr == 2*dir && from.Row == pawnHomeRow(c):
			if !e.rules.StrictPawnAdvance {
				return true
			}
			return b.IsEmpty(core.Sq(from.Row+dir, from.Col)) && b.IsEmpty(to)
		}
		return false
	}

	return abs(dc) == 1 && dr == dir && !b.IsEmpty(to)
}

func (e *Engine) leavesKingInCheck(b *board.Board, from, to core.Square, turn core.Color) bool {
	sim := *b
	sim.Set(to, sim.At(from))
	sim.Clear(from)
	Promote(&sim, to)
	return e.InCheck(&sim, turn)
}

// pawnDirection is the row step of a forward pawn move; white moves up
func pawnDirection(c core.Color) int {
	if c == core.ColorWhite {
		return -1
	}
	return 1
}

func pawnHomeRow(c core.Color) int {
	if c == core.ColorWhite {
		return core.BoardSize - 2
	}
	return 1
}
