package pacer

import "time"

// Scheduler runs a callback once after a delay. Throttle unlocks, debounce
// fires and any other deferred work all go through the same primitive so a
// simulated clock can drive them in tests.
type Scheduler interface {
	Schedule(delay time.Duration, fn func()) Handle
}

// Handle refers to a scheduled callback.
type Handle interface {
	// Cancel stops the callback if it has not started yet and reports
	// whether it was prevented from running.
	Cancel() bool
}

// NewScheduler returns a Scheduler backed by the runtime timer.
func NewScheduler() Scheduler {
	return timerScheduler{}
}

type timerScheduler struct{}

func (timerScheduler) Schedule(delay time.Duration, fn func()) Handle {
	return timerHandle{timer: time.AfterFunc(delay, fn)}
}

type timerHandle struct {
	timer *time.Timer
}

func (h timerHandle) Cancel() bool {
	return h.timer.Stop()
}
