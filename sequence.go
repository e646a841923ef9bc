package pacer

import (
	"errors"
	"sync"
)

// KonamiPattern is the canonical easter-egg key sequence.
var KonamiPattern = []string{
	"ArrowUp", "ArrowUp",
	"ArrowDown", "ArrowDown",
	"ArrowLeft", "ArrowRight",
	"ArrowLeft", "ArrowRight",
	"b", "a",
}

// SequenceMatcher watches a stream of key identifiers and signals whenever
// the trailing window equals a fixed target pattern. The buffer holds at most
// len(pattern) keys, evicting the oldest on overflow, and is never reset
// after a match: an overlapping retrigger happens naturally when the
// pattern's tail coincides with its head.
type SequenceMatcher struct {
	mu      sync.Mutex
	pattern []string
	buffer  []string
	onMatch func()
}

// NewSequenceMatcher builds a matcher for pattern. onMatch may be nil; when
// set it is invoked once per completed match, synchronously from Observe.
func NewSequenceMatcher(pattern []string, onMatch func()) (*SequenceMatcher, error) {
	if len(pattern) == 0 {
		return nil, errors.New("pattern must not be empty")
	}
	p := make([]string, len(pattern))
	copy(p, pattern)
	return &SequenceMatcher{
		pattern: p,
		buffer:  make([]string, 0, len(p)),
		onMatch: onMatch,
	}, nil
}

// Observe appends key to the rolling buffer, trims it to the pattern length
// and reports whether the buffer now equals the pattern.
func (m *SequenceMatcher) Observe(key string) bool {
	m.mu.Lock()
	m.buffer = append(m.buffer, key)
	if len(m.buffer) > len(m.pattern) {
		copy(m.buffer, m.buffer[1:])
		m.buffer = m.buffer[:len(m.pattern)]
	}
	matched := len(m.buffer) == len(m.pattern)
	if matched {
		for i := range m.pattern {
			if m.buffer[i] != m.pattern[i] {
				matched = false
				break
			}
		}
	}
	cb := m.onMatch
	m.mu.Unlock()

	if matched && cb != nil {
		cb()
	}
	return matched
}

// ObserveEvent feeds the event's key identifier into the matcher. Events
// without a key leave the buffer untouched.
func (m *SequenceMatcher) ObserveEvent(ev Event) bool {
	if ev.Key == "" {
		return false
	}
	return m.Observe(ev.Key)
}
