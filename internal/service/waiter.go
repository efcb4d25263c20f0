package service

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// WaitTimeout is the longest a long-poll client is held before it gets the
// unchanged state back
const WaitTimeout = 25 * time.Second

// WaitRegistry parks long-polling clients until the game they watch changes
type WaitRegistry struct {
	mu       sync.Mutex
	waiters  map[string][]*waitRequest // gameID → waiting clients
	timeout  time.Duration
	shutdown chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

type waitRequest struct {
	gameID string
	ply    int           // ply count the client already has
	notify chan struct{} // buffered, receives exactly one signal
	done   chan struct{}
	once   sync.Once
}

// fire wakes the client once; later calls are no-ops
func (r *waitRequest) fire() {
	r.once.Do(func() {
		r.notify <- struct{}{}
		close(r.done)
	})
}

func NewWaitRegistry(timeout time.Duration) *WaitRegistry {
	if timeout <= 0 {
		timeout = WaitTimeout
	}
	return &WaitRegistry{
		waiters:  make(map[string][]*waitRequest),
		timeout:  timeout,
		shutdown: make(chan struct{}),
	}
}

// RegisterWait returns a channel that receives one signal when the game's
// ply count moves away from ply, the game is removed, the wait times out or
// the registry shuts down.
func (w *WaitRegistry) RegisterWait(ctx context.Context, gameID string, ply int) <-chan struct{} {
	req := &waitRequest{
		gameID: gameID,
		ply:    ply,
		notify: make(chan struct{}, 1),
		done:   make(chan struct{}),
	}

	w.mu.Lock()
	w.waiters[gameID] = append(w.waiters[gameID], req)
	w.mu.Unlock()

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		timer := time.NewTimer(w.timeout)
		defer timer.Stop()

		select {
		case <-ctx.Done():
			// client went away, nobody to signal
			w.remove(req)
			req.once.Do(func() { close(req.done) })
		case <-timer.C:
			w.remove(req)
			req.fire()
		case <-req.done:
		case <-w.shutdown:
			w.remove(req)
			req.fire()
		}
	}()

	return req.notify
}

// NotifyGame wakes every client of gameID whose known ply differs from ply
func (w *WaitRegistry) NotifyGame(gameID string, ply int) {
	w.mu.Lock()
	var fired []*waitRequest
	kept := w.waiters[gameID][:0]
	for _, req := range w.waiters[gameID] {
		if req.ply != ply {
			fired = append(fired, req)
		} else {
			kept = append(kept, req)
		}
	}
	if len(kept) == 0 {
		delete(w.waiters, gameID)
	} else {
		w.waiters[gameID] = kept
	}
	w.mu.Unlock()

	for _, req := range fired {
		req.fire()
	}
}

// RemoveGame wakes and forgets every client of a game about to be deleted
func (w *WaitRegistry) RemoveGame(gameID string) {
	w.mu.Lock()
	waitList := w.waiters[gameID]
	delete(w.waiters, gameID)
	w.mu.Unlock()

	for _, req := range waitList {
		req.fire()
	}
}

// Pending returns the number of parked clients for a game
func (w *WaitRegistry) Pending(gameID string) int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.waiters[gameID])
}

// Shutdown releases all parked clients and waits for their goroutines
func (w *WaitRegistry) Shutdown(timeout time.Duration) error {
	w.stopOnce.Do(func() { close(w.shutdown) })

	done := make(chan struct{})
	go func() {
		w.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-time.After(timeout):
		return fmt.Errorf("wait registry shutdown timeout")
	}
}

func (w *WaitRegistry) remove(req *waitRequest) {
	w.mu.Lock()
	defer w.mu.Unlock()

	waitList := w.waiters[req.gameID]
	for i, waiter := range waitList {
		if waiter == req {
			w.waiters[req.gameID] = append(waitList[:i], waitList[i+1:]...)
			break
		}
	}
	if len(w.waiters[req.gameID]) == 0 {
		delete(w.waiters, req.gameID)
	}
}
