package service

import (
	"context"
	"testing"
	"time"
)

func waitSignal(t *testing.T, ch <-chan struct{}, within time.Duration) bool {
	t.Helper()
	select {
	case <-ch:
		return true
	case <-time.After(within):
		return false
	}
}

func TestNotifyWakesOnPlyChange(t *testing.T) {
	t.Parallel()
	w := NewWaitRegistry(time.Minute)
	defer w.Shutdown(time.Second)

	ch := w.RegisterWait(context.Background(), "g1", 3)

	// same ply leaves the client parked
	w.NotifyGame("g1", 3)
	if waitSignal(t, ch, 20*time.Millisecond) {
		t.Fatal("woken without a change")
	}
	if w.Pending("g1") != 1 {
		t.Fatalf("pending = %d, want 1", w.Pending("g1"))
	}

	w.NotifyGame("g1", 4)
	if !waitSignal(t, ch, time.Second) {
		t.Fatal("not woken after ply change")
	}
	if w.Pending("g1") != 0 {
		t.Errorf("pending = %d, want 0", w.Pending("g1"))
	}
}

func TestNotifyIgnoresOtherGames(t *testing.T) {
	t.Parallel()
	w := NewWaitRegistry(time.Minute)
	defer w.Shutdown(time.Second)

	ch := w.RegisterWait(context.Background(), "g1", 0)
	w.NotifyGame("g2", 1)
	if waitSignal(t, ch, 20*time.Millisecond) {
		t.Fatal("woken by another game")
	}
}

func TestWaitTimesOut(t *testing.T) {
	t.Parallel()
	w := NewWaitRegistry(20 * time.Millisecond)
	defer w.Shutdown(time.Second)

	ch := w.RegisterWait(context.Background(), "g1", 0)
	if !waitSignal(t, ch, time.Second) {
		t.Fatal("wait did not time out")
	}
}

func TestCancelledClientIsForgotten(t *testing.T) {
	t.Parallel()
	w := NewWaitRegistry(time.Minute)
	defer w.Shutdown(time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	w.RegisterWait(ctx, "g1", 0)
	cancel()

	deadline := time.Now().Add(time.Second)
	for w.Pending("g1") != 0 {
		if time.Now().After(deadline) {
			t.Fatal("cancelled waiter still registered")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestRemoveGameAndShutdownRelease(t *testing.T) {
	t.Parallel()
	w := NewWaitRegistry(time.Minute)

	removed := w.RegisterWait(context.Background(), "g1", 0)
	w.RemoveGame("g1")
	if !waitSignal(t, removed, time.Second) {
		t.Fatal("RemoveGame did not release the client")
	}

	parked := w.RegisterWait(context.Background(), "g2", 0)
	if err := w.Shutdown(time.Second); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}
	if !waitSignal(t, parked, time.Second) {
		t.Fatal("Shutdown did not release the client")
	}
}
