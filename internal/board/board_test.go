package board

import (
	"errors"
	"strings"
	"testing"

	"chessrules/internal/core"
)

func TestNewStandardSetup(t *testing.T) {
	t.Parallel()
	b := New()

	tests := []struct {
		sq   core.Square
		want core.Piece
	}{
		{core.Sq(0, 0), core.NewPiece(core.Rook, core.ColorBlack)},
		{core.Sq(0, 3), core.NewPiece(core.Queen, core.ColorBlack)},
		{core.Sq(0, 4), core.NewPiece(core.King, core.ColorBlack)},
		{core.Sq(1, 5), core.NewPiece(core.Pawn, core.ColorBlack)},
		{core.Sq(6, 4), core.NewPiece(core.Pawn, core.ColorWhite)},
		{core.Sq(7, 1), core.NewPiece(core.Knight, core.ColorWhite)},
		{core.Sq(7, 4), core.NewPiece(core.King, core.ColorWhite)},
		{core.Sq(4, 4), core.Empty},
	}
	for _, tt := range tests {
		if got := b.At(tt.sq); got != tt.want {
			t.Errorf("At(%v) = %v, want %v", tt.sq, got, tt.want)
		}
	}

	occupied := 0
	Squares(func(sq core.Square) {
		if !b.IsEmpty(sq) {
			occupied++
		}
	})
	if occupied != 32 {
		t.Errorf("occupied squares = %d, want 32", occupied)
	}
}

func TestPlacementRoundTrip(t *testing.T) {
	t.Parallel()
	placements := []string{
		StartingPlacement,
		"4k3/8/8/8/8/8/8/4K2R",
		"8/8/8/3q4/8/8/8/8",
	}
	for _, p := range placements {
		b, err := ParsePlacement(p)
		if err != nil {
			t.Fatalf("ParsePlacement(%q): %v", p, err)
		}
		if got := b.Placement(); got != p {
			t.Errorf("Placement() = %q, want %q", got, p)
		}
	}
}

func TestParsePlacementIgnoresTrailingFields(t *testing.T) {
	t.Parallel()
	b, err := ParsePlacement(StartingPlacement + " w KQkq - 0 1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b != New() {
		t.Error("trailing FEN fields changed the board")
	}
}

func TestParsePlacementErrors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name      string
		placement string
	}{
		{"empty", ""},
		{"too few rows", "8/8/8"},
		{"short row", "7/8/8/8/8/8/8/8"},
		{"long row", "ppppppppp/8/8/8/8/8/8/8"},
		{"bad symbol", "x7/8/8/8/8/8/8/8"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParsePlacement(tt.placement)
			if !errors.Is(err, core.ErrInvalidPlacement) {
				t.Fatalf("got %v, want ErrInvalidPlacement", err)
			}
		})
	}
}

func TestOffBoardAccess(t *testing.T) {
	t.Parallel()
	b := New()
	if !b.At(core.Sq(-1, 4)).IsEmpty() {
		t.Error("off-board read must be empty")
	}
	if b.Set(core.Sq(8, 0), core.NewPiece(core.Queen, core.ColorWhite)) {
		t.Error("off-board write must be rejected")
	}
}

func TestFindKing(t *testing.T) {
	t.Parallel()
	b := New()
	sq, ok := b.FindKing(core.ColorBlack)
	if !ok || sq != core.Sq(0, 4) {
		t.Fatalf("black king at %v (%v), want (0,4)", sq, ok)
	}

	b.Clear(core.Sq(7, 4))
	if _, ok := b.FindKing(core.ColorWhite); ok {
		t.Error("cleared king must not be found")
	}
}

func TestBoardIsValueSnapshot(t *testing.T) {
	t.Parallel()
	b := New()
	snap := b
	b.Clear(core.Sq(6, 0))
	if snap.IsEmpty(core.Sq(6, 0)) {
		t.Error("mutating the board changed the snapshot")
	}
}

func TestToASCII(t *testing.T) {
	t.Parallel()
	b := New()
	ascii := b.ToASCII()
	lines := strings.Split(ascii, "\n")
	if len(lines) != 10 {
		t.Fatalf("got %d lines, want 10", len(lines))
	}
	if lines[1] != "0 r n b q k b n r  0" {
		t.Errorf("top row = %q", lines[1])
	}
	if lines[5] != "4 . . . . . . . .  4" {
		t.Errorf("empty row = %q", lines[5])
	}
}
