package pacer

import (
	"errors"
	"sync"
	"time"
)

// Debouncer invokes its callback on the trailing edge of a burst: each call
// cancels the pending invocation and schedules a new one, so the callback
// fires once per burst, a quiet period after the last call, with that call's
// argument. At most one timer is pending at any time.
type Debouncer[T any] struct {
	mu      sync.Mutex
	pending Handle
	gen     uint64
	last    T
	closed  bool
	quiet   time.Duration
	sched   Scheduler
	fn      func(T)
}

// NewDebouncer wraps fn so it fires once a quiet period has elapsed with no
// further calls. A nil scheduler falls back to the runtime timer.
func NewDebouncer[T any](sched Scheduler, quiet time.Duration, fn func(T)) (*Debouncer[T], error) {
	if quiet <= 0 {
		return nil, errors.New("quiet period must be positive")
	}
	if fn == nil {
		return nil, errors.New("callback must not be nil")
	}
	if sched == nil {
		sched = NewScheduler()
	}
	return &Debouncer[T]{quiet: quiet, sched: sched, fn: fn}, nil
}

// Call records v as the latest argument, cancels any pending invocation and
// schedules a new one for a quiet period from now.
func (d *Debouncer[T]) Call(v T) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return
	}
	if d.pending != nil {
		d.pending.Cancel()
	}
	d.gen++
	gen := d.gen
	d.last = v
	d.pending = d.sched.Schedule(d.quiet, func() { d.fire(gen, v) })
}

// fire runs in the scheduler's context. The generation check discards a
// timer that lost the race against a newer Call or a Flush.
func (d *Debouncer[T]) fire(gen uint64, v T) {
	d.mu.Lock()
	if d.closed || gen != d.gen {
		d.mu.Unlock()
		return
	}
	d.pending = nil
	d.mu.Unlock()

	d.fn(v)
}

// Flush invokes a pending callback immediately with the latest argument.
// It is a no-op when nothing is pending.
func (d *Debouncer[T]) Flush() {
	d.mu.Lock()
	if d.closed || d.pending == nil {
		d.mu.Unlock()
		return
	}
	d.pending.Cancel()
	d.pending = nil
	d.gen++
	v := d.last
	d.mu.Unlock()

	d.fn(v)
}

// Close cancels any pending invocation and drops all further calls.
func (d *Debouncer[T]) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closed = true
	d.gen++
	if d.pending != nil {
		d.pending.Cancel()
		d.pending = nil
	}
}

// Debounce is a convenience wrapper returning the debounced function directly.
func Debounce[T any](sched Scheduler, quiet time.Duration, fn func(T)) (func(T), error) {
	d, err := NewDebouncer(sched, quiet, fn)
	if err != nil {
		return nil, err
	}
	return d.Call, nil
}
