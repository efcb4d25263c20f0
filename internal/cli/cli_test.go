package cli

import (
	"bytes"
	"strings"
	"testing"

	"chessrules/internal/board"
	"chessrules/internal/core"
	"chessrules/internal/game"
)

func TestParseCommand(t *testing.T) {
	t.Parallel()
	tests := []struct {
		input  string
		want   CommandType
		square core.Square
	}{
		{"", CmdNone, core.Square{}},
		{"select 6 4", CmdSelect, core.Sq(6, 4)},
		{"s 7 1", CmdSelect, core.Sq(7, 1)},
		{"move 4 4", CmdMove, core.Sq(4, 4)},
		{"  5 5  ", CmdClick, core.Sq(5, 5)},
		{"board", CmdBoard, core.Square{}},
		{"deselect", CmdDeselect, core.Square{}},
		{"new 8/8/8/8/8/8/8/8 b", CmdNew, core.Square{}},
		{"rules strict on", CmdRules, core.Square{}},
		{"color off", CmdColor, core.Square{}},
		{"?", CmdHelp, core.Square{}},
		{"exit", CmdQuit, core.Square{}},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			cmd, err := ParseCommand(tt.input)
			if err != nil {
				t.Fatalf("ParseCommand: %v", err)
			}
			if cmd.Type != tt.want || cmd.Square != tt.square {
				t.Errorf("got %+v, want type %d square %v", cmd, tt.want, tt.square)
			}
		})
	}
}

func TestParseCommandErrors(t *testing.T) {
	t.Parallel()
	for _, input := range []string{"select", "move 4", "select a 4", "4 b", "e2e4"} {
		if _, err := ParseCommand(input); err == nil {
			t.Errorf("%q: expected error", input)
		}
	}
}

func TestRenderBoardPlain(t *testing.T) {
	t.Parallel()
	view := New(&bytes.Buffer{})
	out := view.RenderBoard(board.New(), nil)

	lines := strings.Split(strings.Trim(out, "\n"), "\n")
	if len(lines) != 10 {
		t.Fatalf("got %d lines:\n%s", len(lines), out)
	}
	if lines[1] != "0  r  n  b  q  k  b  n  r  0" {
		t.Errorf("row 0 = %q", lines[1])
	}
	if lines[4] != "3  .  .  .  .  .  .  .  .  3" {
		t.Errorf("row 3 = %q", lines[4])
	}
}

func TestRenderBoardMarksSelection(t *testing.T) {
	t.Parallel()
	view := New(&bytes.Buffer{})
	sel := &game.Selection{
		Square: core.Sq(6, 4),
		Piece:  core.NewPiece(core.Pawn, core.ColorWhite),
		Legal:  []core.Square{core.Sq(4, 4), core.Sq(5, 4)},
	}
	out := view.RenderBoard(board.New(), sel)

	lines := strings.Split(strings.Trim(out, "\n"), "\n")
	if !strings.Contains(lines[7], "[P]") {
		t.Errorf("selected pawn not marked: %q", lines[7])
	}
	if strings.Count(lines[5], "*")+strings.Count(lines[6], "*") != 2 {
		t.Errorf("legal squares not marked:\n%s\n%s", lines[5], lines[6])
	}
}

func TestRenderBoardColored(t *testing.T) {
	t.Parallel()
	view := New(&bytes.Buffer{})
	if err := view.SetTheme("on"); err != nil {
		t.Fatalf("SetTheme: %v", err)
	}
	if view.Theme() != ThemeBrown {
		t.Errorf("theme = %s, want brown", view.Theme())
	}
	if out := view.RenderBoard(board.New(), nil); !strings.Contains(out, "\x1b[") {
		t.Error("no escape sequences in coloured output")
	}
	if err := view.SetTheme("purple"); err == nil {
		t.Error("unknown theme accepted")
	}
}

func TestDisplayBoardStatus(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	view := New(&buf)
	view.DisplayBoard(board.New(), nil, core.ColorBlack, core.CheckLabel)
	if !strings.Contains(buf.String(), "Black to move (Check)") {
		t.Errorf("missing status line:\n%s", buf.String())
	}
	if got := view.Prompt(core.ColorWhite, ""); got != "[White]> " {
		t.Errorf("prompt = %q", got)
	}
}
