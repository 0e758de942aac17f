package core

import (
	"context"
	"sync"
)

// Waiter is a single-use rendezvous between the goroutine blocked inside
// a synchronous operation and the provider listener that completes it.
// The signal persists until observed, so a Signal that lands before Wait
// begins is never lost. A Waiter must not be reused across operations.
type Waiter struct {
	once sync.Once
	done chan struct{}
}

func NewWaiter() *Waiter {
	return &Waiter{done: make(chan struct{})}
}

// Signal marks completion and wakes every blocked waiter. Calls after
// the first are no-ops.
func (w *Waiter) Signal() {
	w.once.Do(func() {
		close(w.done)
	})
}

// Wait blocks the calling goroutine until Signal has been called.
func (w *Waiter) Wait() {
	<-w.done
}

// WaitContext blocks until Signal or until ctx is done, whichever comes
// first. A nil context waits indefinitely, matching the provider's
// assumption that the listener eventually fires.
func (w *Waiter) WaitContext(ctx context.Context) error {
	if ctx == nil {
		w.Wait()
		return nil
	}
	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// errorSlot holds the pending operation error. The listener writes at
// most once before signalling; the waiting goroutine reads only after
// the waiter fires, which orders the write before the read. First write
// wins.
type errorSlot struct {
	once sync.Once
	err  error
}

func (s *errorSlot) set(err error) {
	s.once.Do(func() {
		s.err = err
	})
}

func (s *errorSlot) get() error {
	return s.err
}
