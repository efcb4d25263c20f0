package commands

import (
	"bytes"
	"net"
	"strings"
	"testing"
	"time"

	"chessrules/internal/client/api"
	"chessrules/internal/engine"
	chesshttp "chessrules/internal/http"
	"chessrules/internal/processor"
	"chessrules/internal/service"

	"github.com/fatih/color"
)

func newTestRegistry(t *testing.T) (*Registry, *Session, *bytes.Buffer) {
	t.Helper()
	color.NoColor = true

	svc := service.New(nil, 0)
	app := chesshttp.NewFiberApp(processor.New(svc, engine.DefaultRules()), svc, true)
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	go app.Listener(ln)
	t.Cleanup(func() {
		app.ShutdownWithTimeout(time.Second)
		svc.Shutdown(time.Second)
	})

	var out bytes.Buffer
	s := &Session{
		Client: api.New("http://" + ln.Addr().String()),
		Out:    &out,
	}
	return NewRegistry(s), s, &out
}

func TestSessionPlaysMoves(t *testing.T) {
	r, s, out := newTestRegistry(t)

	if r.Execute("new") {
		t.Fatal("new asked to quit")
	}
	if s.GameID == "" || s.Turn != "w" {
		t.Fatalf("session = %+v", s)
	}

	r.Execute("select 6 4")
	if !strings.Contains(out.String(), "Selected P (6,4): (4,4) (5,4)") {
		t.Fatalf("selection not shown:\n%s", out)
	}

	out.Reset()
	r.Execute("move 4 4")
	got := out.String()
	if !strings.Contains(got, "P (6,4) -> (4,4)") {
		t.Errorf("move line missing:\n%s", got)
	}
	if !strings.Contains(got, "Ply: 1") || s.Turn != "b" || s.Plies != 1 {
		t.Errorf("state not updated: turn=%s plies=%d\n%s", s.Turn, s.Plies, got)
	}

	out.Reset()
	r.Execute("m 1 4 3 4")
	if s.Plies != 2 || !strings.Contains(out.String(), "p (1,4) -> (3,4)") {
		t.Errorf("from-square move failed:\n%s", out)
	}
}

func TestSessionErrors(t *testing.T) {
	r, s, out := newTestRegistry(t)

	r.Execute("select 6 4")
	if !strings.Contains(out.String(), "no current game") {
		t.Errorf("missing game error:\n%s", out)
	}

	r.Execute("new")
	out.Reset()
	r.Execute("move 4 4")
	if !strings.Contains(out.String(), "NO_SELECTION") {
		t.Errorf("server error not shown:\n%s", out)
	}

	out.Reset()
	r.Execute("select six 4")
	if !strings.Contains(out.String(), "usage: select") {
		t.Errorf("bad square accepted:\n%s", out)
	}

	out.Reset()
	r.Execute("frobnicate")
	if !strings.Contains(out.String(), "Unknown command: frobnicate") {
		t.Errorf("unknown command not reported:\n%s", out)
	}

	id := s.GameID
	out.Reset()
	r.Execute("delete")
	if s.GameID != "" || !strings.Contains(out.String(), "Game deleted: "+id) {
		t.Errorf("delete failed:\n%s", out)
	}
}

func TestSessionCustomGameAndDeselect(t *testing.T) {
	r, s, out := newTestRegistry(t)

	r.Execute("new 4k3/8/8/8/8/8/8/R3K3 b strict")
	if s.Turn != "b" {
		t.Fatalf("turn = %q, want b\n%s", s.Turn, out)
	}

	r.Execute("select 0 4")
	out.Reset()
	r.Execute("deselect")
	if strings.Contains(out.String(), "Selected") {
		t.Errorf("selection still shown:\n%s", out)
	}

	out.Reset()
	r.Execute("show")
	if !strings.Contains(out.String(), "Turn: Black") {
		t.Errorf("show output:\n%s", out)
	}
}

func TestSessionPollReturnsWhenBehind(t *testing.T) {
	r, s, out := newTestRegistry(t)

	r.Execute("new")
	id := s.GameID
	r.Execute("move 6 4 4 4")

	// a second session that has seen nothing yet
	other := &Session{Client: s.Client, Out: out, GameID: id}
	out.Reset()
	if err := pollHandler(other, nil); err != nil {
		t.Fatalf("poll: %v", err)
	}
	if !strings.Contains(out.String(), "Game updated") || other.Plies != 1 {
		t.Errorf("poll output:\n%s", out)
	}
}

func TestHelpAndExit(t *testing.T) {
	r, _, out := newTestRegistry(t)

	r.Execute("help")
	for _, name := range []string{"new", "select", "move", "deselect", "poll", "raw"} {
		if !strings.Contains(out.String(), name) {
			t.Errorf("help lacks %q", name)
		}
	}

	out.Reset()
	r.Execute("help move")
	if !strings.Contains(out.String(), "Usage: move") {
		t.Errorf("command help:\n%s", out)
	}

	if !r.Execute("exit") {
		t.Error("exit did not quit")
	}
	if !r.Execute("x") {
		t.Error("x did not quit")
	}
}

func TestParseSquares(t *testing.T) {
	tests := []struct {
		args    []string
		want    int
		wantErr bool
	}{
		{[]string{"6", "4"}, 1, false},
		{[]string{"6", "4", "4", "4"}, 2, false},
		{[]string{"6"}, 0, true},
		{[]string{"a", "4"}, 0, true},
		{[]string{"6", "b"}, 0, true},
	}
	for _, tt := range tests {
		got, err := parseSquares(tt.args)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseSquares(%v) err = %v", tt.args, err)
			continue
		}
		if len(got) != tt.want {
			t.Errorf("parseSquares(%v) = %v", tt.args, got)
		}
	}
}
