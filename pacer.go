package pacer

import (
	"context"
	"time"
)

// Event is a single discrete input event: a pointer move, a key press, a
// focus change. Wrappers pass events through unchanged; only the sequence
// matcher inspects Key.
type Event struct {
	Type string    `json:"type"`
	Key  string    `json:"key,omitempty"`
	Time time.Time `json:"time"`
}

// Gate defines the interface for keyed admission decisions: the first event
// for an identifier passes and closes the window, later events are dropped
// until it reopens.
type Gate interface {
	// Allow checks if an event from a specific identifier may pass now.
	// Returns (allowed, retryAfter, error); retryAfter is how long until the
	// window for this identifier reopens and is zero when allowed.
	Allow(ctx context.Context, identifier string) (bool, time.Duration, error)
	// Close releases any resources held by the gate.
	Close(ctx context.Context) error
}

// Config holds the gate settings.
type Config struct {
	Interval time.Duration // Window during which at most one event passes
	Burst    int           // Token bucket size, rate gate only (default 1)
}
