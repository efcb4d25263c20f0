package storage

import (
	"database/sql"
	"time"
)

// GameRecord represents a row in the games table
type GameRecord struct {
	GameID            string       `db:"game_id"`
	Name              string       `db:"name"`
	InitialPlacement  string       `db:"initial_placement"`
	StartingTurn      string       `db:"starting_turn"` // "w" or "b"
	SelfCaptureGuard  bool         `db:"self_capture_guard"`
	StrictPawnAdvance bool         `db:"strict_pawn_advance"`
	ForbidSelfCheck   bool         `db:"forbid_self_check"`
	StartTimeUTC      time.Time    `db:"start_time_utc"`
	EndTimeUTC        sql.NullTime `db:"end_time_utc"`
}

// MoveRecord represents a row in the moves table
type MoveRecord struct {
	MoveID         int64     `db:"move_id"`
	GameID         string    `db:"game_id"`
	Ply            int       `db:"ply"`
	FromRow        int       `db:"from_row"`
	FromCol        int       `db:"from_col"`
	ToRow          int       `db:"to_row"`
	ToCol          int       `db:"to_col"`
	Piece          string    `db:"piece"`    // piece symbol, e.g. "P" or "n"
	Captured       string    `db:"captured"` // empty when nothing was taken
	Promoted       bool      `db:"promoted"`
	InCheck        bool      `db:"in_check"`
	PlacementAfter string    `db:"placement_after"`
	PlayerColor    string    `db:"player_color"` // "w" or "b"
	MoveTimeUTC    time.Time `db:"move_time_utc"`
}

// Schema defines the SQLite database structure
const Schema = `
CREATE TABLE IF NOT EXISTS games (
	game_id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	initial_placement TEXT NOT NULL,
	starting_turn TEXT NOT NULL CHECK(starting_turn IN ('w', 'b')),
	self_capture_guard INTEGER NOT NULL DEFAULT 1,
	strict_pawn_advance INTEGER NOT NULL DEFAULT 0,
	forbid_self_check INTEGER NOT NULL DEFAULT 0,
	start_time_utc DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	end_time_utc DATETIME
);

CREATE TABLE IF NOT EXISTS moves (
	move_id INTEGER PRIMARY KEY AUTOINCREMENT,
	game_id TEXT NOT NULL,
	ply INTEGER NOT NULL,
	from_row INTEGER NOT NULL,
	from_col INTEGER NOT NULL,
	to_row INTEGER NOT NULL,
	to_col INTEGER NOT NULL,
	piece TEXT NOT NULL,
	captured TEXT NOT NULL DEFAULT '',
	promoted INTEGER NOT NULL DEFAULT 0,
	in_check INTEGER NOT NULL DEFAULT 0,
	placement_after TEXT NOT NULL,
	player_color TEXT NOT NULL CHECK(player_color IN ('w', 'b')),
	move_time_utc DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (game_id) REFERENCES games(game_id) ON DELETE CASCADE,
	UNIQUE(game_id, ply)
);

CREATE INDEX IF NOT EXISTS idx_moves_game_id ON moves(game_id);
CREATE INDEX IF NOT EXISTS idx_games_name ON games(name);
`
