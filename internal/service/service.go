package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"chessrules/internal/board"
	"chessrules/internal/core"
	"chessrules/internal/engine"
	"chessrules/internal/game"
	"chessrules/internal/storage"

	petname "github.com/dustinkirkland/golang-petname"
	"github.com/google/uuid"
)

const (
	DefaultIdleTTL     = 2 * time.Hour
	CleanupJobInterval = 5 * time.Minute
)

// Snapshot is a consistent read of one game taken under the service lock
type Snapshot struct {
	GameID    string
	Name      string
	Board     board.Board
	Turn      core.Color
	Check     bool
	Plies     int
	Selection *game.Selection
	Rules     engine.Rules
}

// entry wraps a game with its registry metadata
type entry struct {
	game       *game.Game
	name       string
	lastActive time.Time
}

// Service owns every live game. All game mutations run under mu so each game
// sees strictly sequential transitions.
type Service struct {
	games   map[string]*entry
	mu      sync.RWMutex
	store   *storage.Store // nil if persistence disabled
	waiter  *WaitRegistry
	idleTTL time.Duration
	now     func() time.Time
}

// New creates a service with optional storage. idleTTL <= 0 disables
// eviction of idle games.
func New(store *storage.Store, idleTTL time.Duration) *Service {
	return &Service{
		games:   make(map[string]*entry),
		store:   store,
		waiter:  NewWaitRegistry(WaitTimeout),
		idleTTL: idleTTL,
		now:     time.Now,
	}
}

// GenerateGameID creates a new unique game ID
func (s *Service) GenerateGameID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.generateID()
}

func (s *Service) generateID() string {
	for {
		id := uuid.New().String()
		if _, exists := s.games[id]; !exists {
			return id
		}
	}
}

// CreateGame starts a game from placement (standard setup when empty) with
// turn to move
func (s *Service) CreateGame(placement string, turn core.Color, rules engine.Rules) (Snapshot, error) {
	if placement == "" {
		placement = board.StartingPlacement
	}
	g, err := game.NewFromPlacement(placement, turn, rules)
	if err != nil {
		return Snapshot{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.generateID()
	e := &entry{
		game:       g,
		name:       petname.Generate(2, "-"),
		lastActive: s.now(),
	}
	s.games[id] = e

	if s.store != nil {
		b := g.Board()
		s.store.RecordNewGame(storage.GameRecord{
			GameID:            id,
			Name:              e.name,
			InitialPlacement:  b.Placement(),
			StartingTurn:      turn.String(),
			SelfCaptureGuard:  rules.SelfCaptureGuard,
			StrictPawnAdvance: rules.StrictPawnAdvance,
			ForbidSelfCheck:   rules.ForbidSelfCheck,
			StartTimeUTC:      e.lastActive.UTC(),
		})
	}

	return snapshot(id, e), nil
}

// GetGame returns a snapshot of a game
func (s *Service) GetGame(gameID string) (Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.games[gameID]
	if !ok {
		return Snapshot{}, fmt.Errorf("%w: %s", core.ErrGameNotFound, gameID)
	}
	return snapshot(gameID, e), nil
}

// Select stores a selection in the game and returns its legal destinations
func (s *Service) Select(gameID string, sq core.Square) ([]core.Square, Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.games[gameID]
	if !ok {
		return nil, Snapshot{}, fmt.Errorf("%w: %s", core.ErrGameNotFound, gameID)
	}
	e.lastActive = s.now()

	legal, err := e.game.Select(sq)
	if err != nil {
		return nil, Snapshot{}, err
	}
	return legal, snapshot(gameID, e), nil
}

// Deselect drops the stored selection of a game
func (s *Service) Deselect(gameID string) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.games[gameID]
	if !ok {
		return Snapshot{}, fmt.Errorf("%w: %s", core.ErrGameNotFound, gameID)
	}
	e.lastActive = s.now()
	e.game.Deselect()
	return snapshot(gameID, e), nil
}

// Move applies a move. With from set it selects and moves in one step,
// otherwise it moves the stored selection.
func (s *Service) Move(gameID string, from *core.Square, to core.Square) (game.MoveResult, Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.games[gameID]
	if !ok {
		return game.MoveResult{}, Snapshot{}, fmt.Errorf("%w: %s", core.ErrGameNotFound, gameID)
	}
	e.lastActive = s.now()

	var (
		res game.MoveResult
		err error
	)
	if from != nil {
		res, err = e.game.Move(*from, to)
	} else {
		res, err = e.game.MoveTo(to)
	}
	if err != nil {
		return game.MoveResult{}, Snapshot{}, err
	}

	s.afterMove(gameID, e, res)

	return res, snapshot(gameID, e), nil
}

// Click applies a single board click to a game, see game.Click. moved is
// true when the click applied a move.
func (s *Service) Click(gameID string, sq core.Square) (res game.MoveResult, moved bool, snap Snapshot, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.games[gameID]
	if !ok {
		return game.MoveResult{}, false, Snapshot{}, fmt.Errorf("%w: %s", core.ErrGameNotFound, gameID)
	}
	e.lastActive = s.now()

	res, moved, err = e.game.Click(sq)
	if err != nil {
		return game.MoveResult{}, false, Snapshot{}, err
	}
	if moved {
		s.afterMove(gameID, e, res)
	}
	return res, moved, snapshot(gameID, e), nil
}

// afterMove persists an applied move and wakes long-poll clients. Caller
// holds mu.
func (s *Service) afterMove(gameID string, e *entry, res game.MoveResult) {
	plies := e.game.Plies()

	if s.store != nil {
		b := e.game.Board()
		s.store.RecordMove(storage.MoveRecord{
			GameID:         gameID,
			Ply:            plies,
			FromRow:        res.From.Row,
			FromCol:        res.From.Col,
			ToRow:          res.To.Row,
			ToCol:          res.To.Col,
			Piece:          res.Piece.SymbolString(),
			Captured:       res.Captured.SymbolString(),
			Promoted:       res.Promoted,
			InCheck:        res.Check,
			PlacementAfter: b.Placement(),
			PlayerColor:    core.OppositeColor(res.Turn).String(),
			MoveTimeUTC:    e.lastActive.UTC(),
		})
	}

	s.waiter.NotifyGame(gameID, plies)
}

// DeleteGame removes a game from memory and wakes its long-poll clients
func (s *Service) DeleteGame(gameID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.games[gameID]; !ok {
		return fmt.Errorf("%w: %s", core.ErrGameNotFound, gameID)
	}
	s.removeLocked(gameID)
	return nil
}

func (s *Service) removeLocked(gameID string) {
	delete(s.games, gameID)
	s.waiter.RemoveGame(gameID)
	if s.store != nil {
		s.store.RecordGameEnd(gameID, s.now().UTC())
	}
}

// GameCount returns the number of live games
func (s *Service) GameCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.games)
}

// RegisterWait registers a client to wait for game state changes
//
// The ply is compared under the lock moves are applied with, so a move that
// lands before registration fires the channel at once instead of being missed.
func (s *Service) RegisterWait(ctx context.Context, gameID string, ply int) <-chan struct{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.games[gameID]
	if !ok || e.game.Plies() != ply {
		ready := make(chan struct{}, 1)
		ready <- struct{}{}
		return ready
	}
	return s.waiter.RegisterWait(ctx, gameID, ply)
}

// GetStorageHealth returns the storage component status
func (s *Service) GetStorageHealth() string {
	if s.store == nil {
		return "disabled"
	}
	if s.store.IsHealthy() {
		return "ok"
	}
	return "degraded"
}

// RunCleanupJob evicts idle games every interval until ctx is cancelled
func (s *Service) RunCleanupJob(ctx context.Context, interval time.Duration) {
	if s.idleTTL <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.evictIdle(); n > 0 {
				log.Printf("cleanup: evicted %d idle games", n)
			}
		}
	}
}

func (s *Service) evictIdle() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-s.idleTTL)
	evicted := 0
	for id, e := range s.games {
		if e.lastActive.Before(cutoff) {
			s.removeLocked(id)
			evicted++
		}
	}
	return evicted
}

// Shutdown releases waiting clients, drops games and closes storage
func (s *Service) Shutdown(timeout time.Duration) error {
	var errs []error

	if err := s.waiter.Shutdown(timeout); err != nil {
		errs = append(errs, fmt.Errorf("wait registry: %w", err))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.games = make(map[string]*entry)

	if s.store != nil {
		if err := s.store.Close(); err != nil {
			errs = append(errs, fmt.Errorf("storage: %w", err))
		}
	}

	return errors.Join(errs...)
}

func snapshot(id string, e *entry) Snapshot {
	snap := Snapshot{
		GameID: id,
		Name:   e.name,
		Board:  e.game.Board(),
		Turn:   e.game.Turn(),
		Check:  e.game.Check(),
		Plies:  e.game.Plies(),
		Rules:  e.game.Rules(),
	}
	if sel, ok := e.game.Selection(); ok {
		snap.Selection = &sel
	}
	return snap
}
