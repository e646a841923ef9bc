package pacer

import (
	"sort"
	"sync"
	"time"
)

// SimScheduler is a deterministic Scheduler driven by a manual clock.
// Advance moves the clock forward and runs every due callback synchronously
// on the caller's goroutine, in non-decreasing due-time order; callbacks
// scheduled for the same instant run in the order they were scheduled.
type SimScheduler struct {
	mu    sync.Mutex
	now   time.Time
	seq   int
	queue []*simTimer
}

type simTimer struct {
	s        *SimScheduler
	due      time.Time
	seq      int
	fn       func()
	canceled bool
	fired    bool
}

// NewSimScheduler returns a simulated scheduler starting at the zero time.
func NewSimScheduler() *SimScheduler {
	return &SimScheduler{}
}

// Now returns the current simulated time.
func (s *SimScheduler) Now() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now
}

// Schedule queues fn to run once the clock has advanced by delay.
// Non-positive delays run on the next Advance call.
func (s *SimScheduler) Schedule(delay time.Duration, fn func()) Handle {
	if delay < 0 {
		delay = 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	t := &simTimer{s: s, due: s.now.Add(delay), seq: s.seq, fn: fn}
	s.queue = append(s.queue, t)
	return t
}

// Advance moves the clock forward by d, running due callbacks along the way.
// Callbacks may schedule further work; anything falling due before the target
// instant runs within the same Advance call.
func (s *SimScheduler) Advance(d time.Duration) {
	s.mu.Lock()
	target := s.now.Add(d)
	for {
		t := s.popDue(target)
		if t == nil {
			break
		}
		if t.due.After(s.now) {
			s.now = t.due
		}
		t.fired = true
		fn := t.fn
		s.mu.Unlock()
		fn()
		s.mu.Lock()
	}
	s.now = target
	s.mu.Unlock()
}

// popDue removes and returns the earliest pending timer due at or before
// target, or nil. Caller holds s.mu.
func (s *SimScheduler) popDue(target time.Time) *simTimer {
	pending := s.queue[:0]
	for _, t := range s.queue {
		if !t.canceled {
			pending = append(pending, t)
		}
	}
	s.queue = pending
	if len(s.queue) == 0 {
		return nil
	}
	sort.SliceStable(s.queue, func(i, j int) bool {
		if s.queue[i].due.Equal(s.queue[j].due) {
			return s.queue[i].seq < s.queue[j].seq
		}
		return s.queue[i].due.Before(s.queue[j].due)
	})
	if s.queue[0].due.After(target) {
		return nil
	}
	t := s.queue[0]
	s.queue = s.queue[1:]
	return t
}

// Cancel stops the callback if it has not run yet.
func (t *simTimer) Cancel() bool {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	if t.fired || t.canceled {
		return false
	}
	t.canceled = true
	return true
}
