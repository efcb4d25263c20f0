package game

import (
	"errors"
	"reflect"
	"testing"

	"chessrules/internal/core"
	"chessrules/internal/engine"
)

func TestOpeningPawnScenario(t *testing.T) {
	t.Parallel()
	g := New(engine.DefaultRules())

	legal, err := g.Select(core.Sq(6, 4))
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	want := []core.Square{core.Sq(4, 4), core.Sq(5, 4)}
	if !reflect.DeepEqual(legal, want) {
		t.Fatalf("legal = %v, want %v", legal, want)
	}

	res, err := g.MoveTo(core.Sq(4, 4))
	if err != nil {
		t.Fatalf("MoveTo: %v", err)
	}
	if res.Turn != core.ColorBlack || g.Turn() != core.ColorBlack {
		t.Errorf("turn = %v, want black", g.Turn())
	}
	if res.Status != "" || g.CheckStatus() != "" {
		t.Errorf("status = %q, want empty", res.Status)
	}
	if res.Piece != core.NewPiece(core.Pawn, core.ColorWhite) || !res.Captured.IsEmpty() {
		t.Errorf("unexpected result %+v", res)
	}
	b := g.Board()
	if b.At(core.Sq(4, 4)) != core.NewPiece(core.Pawn, core.ColorWhite) || !b.IsEmpty(core.Sq(6, 4)) {
		t.Error("pawn not moved on the board")
	}
	if _, ok := g.Selection(); ok {
		t.Error("selection survived the move")
	}
	if g.Plies() != 1 {
		t.Errorf("plies = %d, want 1", g.Plies())
	}
}

func TestSelectErrors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		sq      core.Square
		wantErr error
	}{
		{"empty square", core.Sq(4, 4), core.ErrEmptySquare},
		{"opponent piece", core.Sq(1, 4), core.ErrWrongTurn},
		{"off board", core.Sq(9, 9), core.ErrOffBoard},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := New(engine.DefaultRules())
			if _, err := g.Select(core.Sq(6, 0)); err != nil {
				t.Fatalf("Select: %v", err)
			}
			_, err := g.Select(tt.sq)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("got %v, want %v", err, tt.wantErr)
			}
			sel, ok := g.Selection()
			if !ok || sel.Square != core.Sq(6, 0) {
				t.Errorf("previous selection lost: %+v", sel)
			}
		})
	}
}

func TestMoveToRejectsWithoutMutation(t *testing.T) {
	t.Parallel()
	g := New(engine.DefaultRules())
	before := g.Board()

	if _, err := g.MoveTo(core.Sq(5, 4)); !errors.Is(err, core.ErrNoSelection) {
		t.Fatalf("got %v, want ErrNoSelection", err)
	}

	if _, err := g.Select(core.Sq(6, 4)); err != nil {
		t.Fatalf("Select: %v", err)
	}
	_, err := g.MoveTo(core.Sq(3, 4))
	if !errors.Is(err, core.ErrIllegalMove) {
		t.Fatalf("got %v, want ErrIllegalMove", err)
	}
	if g.Board() != before || g.Turn() != core.ColorWhite || g.Plies() != 0 {
		t.Error("rejected move changed the game")
	}
	if _, ok := g.Selection(); !ok {
		t.Error("rejected move cleared the selection")
	}
}

func TestTurnAlternates(t *testing.T) {
	t.Parallel()
	g := New(engine.DefaultRules())
	moves := [][2]core.Square{
		{core.Sq(6, 4), core.Sq(4, 4)},
		{core.Sq(1, 4), core.Sq(3, 4)},
		{core.Sq(7, 6), core.Sq(5, 5)},
		{core.Sq(0, 1), core.Sq(2, 2)},
	}

	for i, mv := range moves {
		before := g.Turn()
		if _, err := g.Move(mv[0], mv[1]); err != nil {
			t.Fatalf("move %d: %v", i, err)
		}
		if g.Turn() != core.OppositeColor(before) {
			t.Fatalf("move %d: turn did not flip", i)
		}
	}
	if g.Plies() != len(moves) {
		t.Errorf("plies = %d, want %d", g.Plies(), len(moves))
	}

	// white cannot move twice
	if _, err := g.Move(core.Sq(0, 6), core.Sq(2, 5)); !errors.Is(err, core.ErrWrongTurn) {
		t.Fatalf("got %v, want ErrWrongTurn", err)
	}
	if g.Turn() != core.ColorWhite {
		t.Error("failed move flipped the turn")
	}
}

func TestMoveRestoresSelectionOnFailure(t *testing.T) {
	t.Parallel()
	g := New(engine.DefaultRules())
	if _, err := g.Select(core.Sq(7, 1)); err != nil {
		t.Fatalf("Select: %v", err)
	}
	if _, err := g.Move(core.Sq(6, 0), core.Sq(3, 0)); err == nil {
		t.Fatal("expected illegal move")
	}
	sel, ok := g.Selection()
	if !ok || sel.Square != core.Sq(7, 1) {
		t.Errorf("selection = %+v, want (7,1)", sel)
	}
}

func TestCheckStatusAfterMove(t *testing.T) {
	t.Parallel()
	g, err := NewFromPlacement("4k3/8/8/8/8/8/8/R3K3", core.ColorWhite, engine.DefaultRules())
	if err != nil {
		t.Fatalf("NewFromPlacement: %v", err)
	}
	if g.Check() {
		t.Fatal("no check expected before the move")
	}

	res, err := g.Move(core.Sq(7, 0), core.Sq(0, 0))
	if err != nil {
		t.Fatalf("Move: %v", err)
	}
	if !res.Check || res.Status != core.CheckLabel {
		t.Fatalf("result = %+v, want check", res)
	}
	if g.CheckStatus() != "Check" {
		t.Errorf("status = %q", g.CheckStatus())
	}

	// check is advisory: black may ignore it
	if _, err := g.Move(core.Sq(0, 4), core.Sq(1, 4)); err != nil {
		t.Fatalf("king move: %v", err)
	}
	if g.Check() {
		t.Error("white should not be in check")
	}
}

func TestAdvisoryCheckAllowsIgnoringIt(t *testing.T) {
	t.Parallel()
	g, err := NewFromPlacement("R3k3/8/8/8/8/8/8/4K3", core.ColorBlack, engine.DefaultRules())
	if err != nil {
		t.Fatalf("NewFromPlacement: %v", err)
	}
	if !g.Check() {
		t.Fatal("black should start in check")
	}
	// the king stays on the attacked rank
	if _, err := g.Move(core.Sq(0, 4), core.Sq(0, 3)); err != nil {
		t.Fatalf("Move: %v", err)
	}
	if g.Turn() != core.ColorWhite {
		t.Fatal("turn did not flip")
	}
}

func TestNewFromPlacementComputesCheck(t *testing.T) {
	t.Parallel()
	g, err := NewFromPlacement("4r3/8/8/8/8/8/8/4K3", core.ColorWhite, engine.DefaultRules())
	if err != nil {
		t.Fatalf("NewFromPlacement: %v", err)
	}
	if !g.Check() {
		t.Error("white king on an open file should start in check")
	}

	if _, err := NewFromPlacement("bad", core.ColorWhite, engine.DefaultRules()); !errors.Is(err, core.ErrInvalidPlacement) {
		t.Errorf("got %v, want ErrInvalidPlacement", err)
	}
	if _, err := NewFromPlacement("8/8/8/8/8/8/8/8", 'x', engine.DefaultRules()); err == nil {
		t.Error("invalid turn accepted")
	}
}

func TestPromotionThroughGame(t *testing.T) {
	t.Parallel()
	g, err := NewFromPlacement("8/P7/8/8/8/8/8/8", core.ColorWhite, engine.DefaultRules())
	if err != nil {
		t.Fatalf("NewFromPlacement: %v", err)
	}
	res, err := g.Move(core.Sq(1, 0), core.Sq(0, 0))
	if err != nil {
		t.Fatalf("Move: %v", err)
	}
	if !res.Promoted {
		t.Error("promotion not reported")
	}
	b := g.Board()
	if got := b.At(core.Sq(0, 0)); got != core.NewPiece(core.Queen, core.ColorWhite) {
		t.Errorf("got %v, want white queen", got)
	}
}

func TestClick(t *testing.T) {
	t.Parallel()
	g := New(engine.DefaultRules())

	// click on empty square with nothing selected
	if _, moved, err := g.Click(core.Sq(4, 4)); moved || !errors.Is(err, core.ErrEmptySquare) {
		t.Fatalf("moved=%v err=%v", moved, err)
	}

	if _, moved, err := g.Click(core.Sq(6, 4)); moved || err != nil {
		t.Fatalf("select click: moved=%v err=%v", moved, err)
	}

	// switch to another own piece
	if _, moved, err := g.Click(core.Sq(7, 6)); moved || err != nil {
		t.Fatalf("reselect click: moved=%v err=%v", moved, err)
	}
	sel, _ := g.Selection()
	if sel.Square != core.Sq(7, 6) {
		t.Fatalf("selection = %v, want (7,6)", sel.Square)
	}

	// a non-destination is ignored
	if _, moved, err := g.Click(core.Sq(3, 3)); moved || err != nil {
		t.Fatalf("ignored click: moved=%v err=%v", moved, err)
	}

	res, moved, err := g.Click(core.Sq(5, 5))
	if !moved || err != nil {
		t.Fatalf("move click: moved=%v err=%v", moved, err)
	}
	if res.To != core.Sq(5, 5) || g.Turn() != core.ColorBlack {
		t.Errorf("unexpected result %+v", res)
	}
}

func TestSelectionIsACopy(t *testing.T) {
	t.Parallel()
	g := New(engine.DefaultRules())
	legal, err := g.Select(core.Sq(6, 4))
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	legal[0] = core.Sq(0, 0)

	sel, _ := g.Selection()
	if sel.Legal[0] == core.Sq(0, 0) {
		t.Error("caller mutated the stored legal set")
	}
}
