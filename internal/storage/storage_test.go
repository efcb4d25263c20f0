package storage

import (
	"path/filepath"
	"testing"
	"time"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "chess.db"), true)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	if err := s.InitDB(); err != nil {
		t.Fatalf("InitDB: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRecordAndQuery(t *testing.T) {
	s := newTestStore(t)
	start := time.Now().UTC().Truncate(time.Second)

	s.RecordNewGame(GameRecord{
		GameID:           "g1",
		Name:             "brave-otter",
		InitialPlacement: "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR",
		StartingTurn:     "w",
		SelfCaptureGuard: true,
		StartTimeUTC:     start,
	})
	s.RecordNewGame(GameRecord{
		GameID:           "g2",
		Name:             "calm-heron",
		InitialPlacement: "4k3/8/8/8/8/8/8/4K3",
		StartingTurn:     "b",
		ForbidSelfCheck:  true,
		StartTimeUTC:     start.Add(time.Second),
	})
	s.RecordMove(MoveRecord{
		GameID:         "g1",
		Ply:            1,
		FromRow:        6,
		FromCol:        4,
		ToRow:          4,
		ToCol:          4,
		Piece:          "P",
		PlacementAfter: "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR",
		PlayerColor:    "w",
		MoveTimeUTC:    start,
	})
	s.RecordGameEnd("g1", start.Add(time.Minute))

	if err := s.Flush(time.Second); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if !s.IsHealthy() {
		t.Fatal("store degraded after valid writes")
	}

	all, err := s.QueryGames("*", "")
	if err != nil {
		t.Fatalf("QueryGames: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("got %d games, want 2", len(all))
	}
	if all[0].GameID != "g2" {
		t.Errorf("newest game first, got %s", all[0].GameID)
	}

	byName, err := s.QueryGames("", "brave-otter")
	if err != nil {
		t.Fatalf("QueryGames: %v", err)
	}
	if len(byName) != 1 || byName[0].GameID != "g1" {
		t.Fatalf("name filter returned %+v", byName)
	}
	g := byName[0]
	if !g.SelfCaptureGuard || g.StrictPawnAdvance || g.ForbidSelfCheck {
		t.Errorf("rule flags not round-tripped: %+v", g)
	}
	if !g.EndTimeUTC.Valid {
		t.Error("end time not recorded")
	}

	moves, err := s.QueryMoves("g1")
	if err != nil {
		t.Fatalf("QueryMoves: %v", err)
	}
	if len(moves) != 1 {
		t.Fatalf("got %d moves, want 1", len(moves))
	}
	if m := moves[0]; m.Ply != 1 || m.ToRow != 4 || m.Piece != "P" || m.PlayerColor != "w" {
		t.Errorf("unexpected move %+v", m)
	}
}

func TestFailedWriteDegradesStore(t *testing.T) {
	s := newTestStore(t)

	// player_color CHECK constraint violation
	s.RecordMove(MoveRecord{
		GameID:         "missing",
		Ply:            1,
		Piece:          "P",
		PlacementAfter: "8/8/8/8/8/8/8/8",
		PlayerColor:    "x",
		MoveTimeUTC:    time.Now().UTC(),
	})

	deadline := time.Now().Add(2 * time.Second)
	for s.IsHealthy() && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if s.IsHealthy() {
		t.Fatal("store still healthy after failed write")
	}
	if err := s.Flush(100 * time.Millisecond); err == nil {
		t.Error("flush on degraded store should fail")
	}
}

func TestDeleteDB(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gone.db")
	s, err := NewStore(path, false)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	if err := s.InitDB(); err != nil {
		t.Fatalf("InitDB: %v", err)
	}
	if err := s.DeleteDB(); err != nil {
		t.Fatalf("DeleteDB: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Errorf("second close: %v", err)
	}
}
