package game

import (
	"fmt"
	"slices"

	"chessrules/internal/board"
	"chessrules/internal/core"
	"chessrules/internal/engine"
)

// Selection is the piece picked by the side to move and where it may go
type Selection struct {
	Square core.Square
	Piece  core.Piece
	Legal  []core.Square
}

// MoveResult tracks the outcome of a move
type MoveResult struct {
	From     core.Square
	To       core.Square
	Piece    core.Piece
	Captured core.Piece
	Promoted bool
	Turn     core.Color // side to move after the move
	Check    bool
	Status   string // core.CheckLabel or empty
}

// Game is the authoritative state of one game. It is not safe for concurrent
// use; callers serialize access.
type Game struct {
	board     board.Board
	turn      core.Color
	engine    *engine.Engine
	selection *Selection
	check     bool
	plies     int
}

// New starts a game from the standard setup with white to move
func New(rules engine.Rules) *Game {
	return &Game{
		board:  board.New(),
		turn:   core.ColorWhite,
		engine: engine.New(rules),
	}
}

// NewFromPlacement starts a game from a custom setup. The check flag is
// computed for the side to move so the status is right from the first view.
func NewFromPlacement(placement string, turn core.Color, rules engine.Rules) (*Game, error) {
	b, err := board.ParsePlacement(placement)
	if err != nil {
		return nil, err
	}
	if !turn.Valid() {
		return nil, fmt.Errorf("invalid turn: %q", byte(turn))
	}

	g := &Game{
		board:  b,
		turn:   turn,
		engine: engine.New(rules),
	}
	g.check = g.engine.InCheck(&g.board, turn)
	return g, nil
}

// Select picks the piece on sq for the side to move and returns its legal
// destinations. A failed selection keeps the previous one.
func (g *Game) Select(sq core.Square) ([]core.Square, error) {
	if !sq.OnBoard() {
		return nil, core.ErrOffBoard
	}
	p := g.board.At(sq)
	if p.IsEmpty() {
		return nil, core.ErrEmptySquare
	}
	if p.Color != g.turn {
		return nil, core.ErrWrongTurn
	}

	legal := g.engine.LegalDestinations(&g.board, sq, g.turn)
	g.selection = &Selection{Square: sq, Piece: p, Legal: legal}
	return slices.Clone(legal), nil
}

func (g *Game) Deselect() {
	g.selection = nil
}

// MoveTo moves the selected piece to sq. sq must be one of the destinations
// returned by the last Select; otherwise nothing changes.
func (g *Game) MoveTo(sq core.Square) (MoveResult, error) {
	if g.selection == nil {
		return MoveResult{}, core.ErrNoSelection
	}
	if !slices.Contains(g.selection.Legal, sq) {
		return MoveResult{}, fmt.Errorf("%w: %v to %v", core.ErrNotSelected, g.selection.Square, sq)
	}

	m, err := g.engine.Validate(&g.board, g.selection.Square, sq, g.turn)
	if err != nil {
		return MoveResult{}, err
	}

	out := g.engine.Apply(&g.board, m)
	g.turn = core.OppositeColor(g.turn)
	g.plies++
	g.selection = nil
	g.check = g.engine.InCheck(&g.board, g.turn)

	return MoveResult{
		From:     m.From(),
		To:       m.To(),
		Piece:    out.Piece,
		Captured: out.Captured,
		Promoted: out.Promoted,
		Turn:     g.turn,
		Check:    g.check,
		Status:   core.CheckStatus(g.check),
	}, nil
}

// Move selects from and moves to to in one step
func (g *Game) Move(from, to core.Square) (MoveResult, error) {
	prev := g.selection
	if _, err := g.Select(from); err != nil {
		return MoveResult{}, err
	}
	res, err := g.MoveTo(to)
	if err != nil {
		g.selection = prev
	}
	return res, err
}

// Click applies a single board click the way a pointer-driven shell would:
// with nothing selected it selects, with a selection it moves to a legal
// square or switches to another own piece. Other clicks are ignored.
// moved is true when the click applied a move.
func (g *Game) Click(sq core.Square) (res MoveResult, moved bool, err error) {
	if g.selection != nil && slices.Contains(g.selection.Legal, sq) {
		res, err = g.MoveTo(sq)
		return res, err == nil, err
	}

	p := g.board.At(sq)
	if !p.IsEmpty() && p.Color == g.turn {
		_, err = g.Select(sq)
		return MoveResult{}, false, err
	}

	if g.selection == nil {
		_, err = g.Select(sq)
	}
	return MoveResult{}, false, err
}

// Board returns a snapshot of the board
func (g *Game) Board() board.Board {
	return g.board
}

func (g *Game) Turn() core.Color {
	return g.turn
}

// Selection returns a copy of the current selection
func (g *Game) Selection() (Selection, bool) {
	if g.selection == nil {
		return Selection{}, false
	}
	s := *g.selection
	s.Legal = slices.Clone(s.Legal)
	return s, true
}

// Check reports whether the side to move was in check after the last move
func (g *Game) Check() bool {
	return g.check
}

func (g *Game) CheckStatus() string {
	return core.CheckStatus(g.check)
}

// Plies counts applied moves
func (g *Game) Plies() int {
	return g.plies
}

func (g *Game) Rules() engine.Rules {
	return g.engine.Rules()
}
