package pacer

import (
	"math/rand"
	"testing"
	"time"
)

func TestSequenceMatcherKonami(t *testing.T) {
	matches := 0
	m, err := NewSequenceMatcher(KonamiPattern, func() { matches++ })
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	for i, key := range KonamiPattern {
		got := m.Observe(key)
		want := i == len(KonamiPattern)-1
		if got != want {
			t.Errorf("Observe(%q) at position %d = %v, want %v", key, i, got, want)
		}
	}
	if matches != 1 {
		t.Errorf("matches = %d, want 1", matches)
	}

	// No reset after a match: the full pattern again slides into place and
	// retriggers.
	for _, key := range KonamiPattern {
		m.Observe(key)
	}
	if matches != 2 {
		t.Errorf("matches = %d after second pass, want 2", matches)
	}
}

// TestSequenceMatcherAltered ensures a single wrong key anywhere in the
// stream suppresses the match.
func TestSequenceMatcherAltered(t *testing.T) {
	for i := range KonamiPattern {
		altered := make([]string, len(KonamiPattern))
		copy(altered, KonamiPattern)
		altered[i] = "x"

		matches := 0
		m, err := NewSequenceMatcher(KonamiPattern, func() { matches++ })
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		for _, key := range altered {
			m.Observe(key)
		}
		if matches != 0 {
			t.Errorf("altered position %d produced %d matches, want 0", i, matches)
		}
	}
}

// TestSequenceMatcherOverlap pins the sliding-retrigger behavior for a
// pattern whose tail is also its head.
func TestSequenceMatcherOverlap(t *testing.T) {
	m, err := NewSequenceMatcher([]string{"a", "b", "a"}, nil)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	stream := []string{"a", "b", "a", "b", "a"}
	wantMatch := []bool{false, false, true, false, true}

	for i, key := range stream {
		if got := m.Observe(key); got != wantMatch[i] {
			t.Errorf("Observe(%q) at position %d = %v, want %v", key, i, got, wantMatch[i])
		}
	}
}

// TestSequenceMatcherBufferBound feeds an arbitrary random stream and checks
// the buffer never grows past the pattern length.
func TestSequenceMatcherBufferBound(t *testing.T) {
	m, err := NewSequenceMatcher(KonamiPattern, nil)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	alphabet := []string{"ArrowUp", "ArrowDown", "ArrowLeft", "ArrowRight", "a", "b", "Enter"}
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	for i := 0; i < 1000; i++ {
		m.Observe(alphabet[rng.Intn(len(alphabet))])
		if n := len(m.buffer); n > len(KonamiPattern) {
			t.Fatalf("buffer length %d after %d observations, limit %d", n, i+1, len(KonamiPattern))
		}
	}
}

func TestSequenceMatcherObserveEvent(t *testing.T) {
	matches := 0
	m, err := NewSequenceMatcher([]string{"a", "b"}, func() { matches++ })
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	m.ObserveEvent(Event{Type: "keydown", Key: "a"})
	// Events without a key identifier leave the buffer untouched.
	m.ObserveEvent(Event{Type: "pointermove"})
	m.ObserveEvent(Event{Type: "keydown", Key: "b"})

	if matches != 1 {
		t.Errorf("matches = %d, want 1", matches)
	}
}

func TestSequenceMatcherValidation(t *testing.T) {
	if _, err := NewSequenceMatcher(nil, nil); err == nil {
		t.Error("empty pattern accepted")
	}
}
