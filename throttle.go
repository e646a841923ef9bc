package pacer

import (
	"errors"
	"sync"
	"time"
)

// Throttler invokes its callback on the leading edge of a burst: the first
// call fires synchronously and locks the wrapper for the interval, and every
// call arriving while locked is dropped. The lock always self-clears; there
// is no trailing invocation.
type Throttler[T any] struct {
	mu       sync.Mutex
	locked   bool
	unlock   Handle
	closed   bool
	interval time.Duration
	sched    Scheduler
	fn       func(T)
}

// NewThrottler wraps fn so that at most one call per interval gets through.
// A nil scheduler falls back to the runtime timer.
func NewThrottler[T any](sched Scheduler, interval time.Duration, fn func(T)) (*Throttler[T], error) {
	if interval <= 0 {
		return nil, errors.New("interval must be positive")
	}
	if fn == nil {
		return nil, errors.New("callback must not be nil")
	}
	if sched == nil {
		sched = NewScheduler()
	}
	return &Throttler[T]{interval: interval, sched: sched, fn: fn}, nil
}

// Call invokes the wrapped callback with v if the wrapper is unlocked, and
// drops v otherwise. The callback runs synchronously on the caller's
// goroutine; a panic inside it propagates to the caller.
func (t *Throttler[T]) Call(v T) {
	t.mu.Lock()
	if t.locked || t.closed {
		t.mu.Unlock()
		return
	}
	t.locked = true
	t.unlock = t.sched.Schedule(t.interval, t.release)
	t.mu.Unlock()

	t.fn(v)
}

func (t *Throttler[T]) release() {
	t.mu.Lock()
	t.locked = false
	t.unlock = nil
	t.mu.Unlock()
}

// Close cancels a pending unlock timer and drops all further calls.
func (t *Throttler[T]) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.closed = true
	t.locked = false
	if t.unlock != nil {
		t.unlock.Cancel()
		t.unlock = nil
	}
}

// Throttle is a convenience wrapper returning the throttled function directly.
func Throttle[T any](sched Scheduler, interval time.Duration, fn func(T)) (func(T), error) {
	t, err := NewThrottler(sched, interval, fn)
	if err != nil {
		return nil, err
	}
	return t.Call, nil
}
