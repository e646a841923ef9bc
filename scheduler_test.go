package pacer

import (
	"testing"
	"time"
)

// TestSimSchedulerOrdering ensures due callbacks run in non-decreasing
// due-time order, FIFO among equal due-times.
func TestSimSchedulerOrdering(t *testing.T) {
	sim := NewSimScheduler()

	var order []string
	sim.Schedule(30*time.Millisecond, func() { order = append(order, "b") })
	sim.Schedule(10*time.Millisecond, func() { order = append(order, "a") })
	sim.Schedule(30*time.Millisecond, func() { order = append(order, "c") })

	sim.Advance(40 * time.Millisecond)

	want := []string{"a", "b", "c"}
	if len(order) != len(want) {
		t.Fatalf("got %d callbacks, want %d", len(order), len(want))
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("order[%d] = %q, want %q", i, order[i], want[i])
		}
	}
}

func TestSimSchedulerCancel(t *testing.T) {
	sim := NewSimScheduler()

	ran := false
	h := sim.Schedule(10*time.Millisecond, func() { ran = true })

	if !h.Cancel() {
		t.Error("first Cancel = false, want true")
	}
	if h.Cancel() {
		t.Error("second Cancel = true, want false")
	}

	sim.Advance(20 * time.Millisecond)
	if ran {
		t.Error("canceled callback ran")
	}
}

// TestSimSchedulerNestedSchedule ensures callbacks scheduling further work
// have it run within the same Advance when it falls due.
func TestSimSchedulerNestedSchedule(t *testing.T) {
	sim := NewSimScheduler()

	var fired []time.Time
	sim.Schedule(10*time.Millisecond, func() {
		fired = append(fired, sim.Now())
		sim.Schedule(10*time.Millisecond, func() {
			fired = append(fired, sim.Now())
		})
	})

	sim.Advance(30 * time.Millisecond)

	if len(fired) != 2 {
		t.Fatalf("got %d callbacks, want 2", len(fired))
	}
	if got := fired[1].Sub(fired[0]); got != 10*time.Millisecond {
		t.Errorf("nested callback fired %v after parent, want 10ms", got)
	}
	if got := sim.Now().Sub(time.Time{}); got != 30*time.Millisecond {
		t.Errorf("clock at %v after Advance, want 30ms", got)
	}
}

func TestSimSchedulerZeroDelay(t *testing.T) {
	sim := NewSimScheduler()

	ran := false
	sim.Schedule(0, func() { ran = true })

	sim.Advance(0)
	if !ran {
		t.Error("zero-delay callback did not run on Advance(0)")
	}
}

// TestTimerScheduler smoke-tests the runtime-timer implementation.
func TestTimerScheduler(t *testing.T) {
	s := NewScheduler()

	done := make(chan struct{})
	s.Schedule(10*time.Millisecond, func() { close(done) })

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("scheduled callback never ran")
	}
}

func TestTimerSchedulerCancel(t *testing.T) {
	s := NewScheduler()

	ran := make(chan struct{})
	h := s.Schedule(50*time.Millisecond, func() { close(ran) })

	if !h.Cancel() {
		t.Fatal("Cancel = false, want true")
	}

	select {
	case <-ran:
		t.Error("canceled callback ran")
	case <-time.After(100 * time.Millisecond):
	}
}
