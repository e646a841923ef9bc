package pacer

import (
	"context"
	"errors"
	"sync"
	"time"
)

// memoryGate implements Gate using local system memory.
// It is suitable for single-instance applications or local testing.
type memoryGate struct {
	// windows maps an identifier to the unix-millisecond instant at which
	// its admission window reopens.
	windows map[string]int64

	mu     sync.Mutex
	stopCh chan struct{}
	wg     sync.WaitGroup
	cfg    Config
}

// NewMemoryGate initializes a new in-memory leading-edge gate.
// It also starts a background goroutine to periodically clean up stale keys.
func NewMemoryGate(cfg Config) (Gate, error) {
	if cfg.Interval <= 0 {
		return nil, errors.New("interval must be positive")
	}
	g := &memoryGate{
		cfg:     cfg,
		windows: make(map[string]int64),
		stopCh:  make(chan struct{}),
	}

	go g.cleanupWorker()
	return g, nil
}

// Allow admits the first event per identifier and closes the window for the
// configured interval; events arriving while the window is closed are denied
// with the time remaining until it reopens.
func (m *memoryGate) Allow(ctx context.Context, identifier string) (bool, time.Duration, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now().UnixMilli()
	if until, ok := m.windows[identifier]; ok && until > now {
		return false, time.Duration(until-now) * time.Millisecond, nil
	}

	m.windows[identifier] = now + m.cfg.Interval.Milliseconds()
	return true, 0, nil
}

// Close stops the cleanup worker and releases resources.
func (m *memoryGate) Close(ctx context.Context) error {
	close(m.stopCh)
	done := make(chan struct{})
	go func() {
		m.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// cleanupWorker periodically removes identifiers whose windows have long
// reopened to keep memory usage under control.
func (m *memoryGate) cleanupWorker() {
	m.wg.Add(1)
	defer m.wg.Done()

	ticker := time.NewTicker(m.cfg.Interval * 2)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.mu.Lock()
			now := time.Now().UnixMilli()
			for id, until := range m.windows {
				if until <= now {
					delete(m.windows, id)
				}
			}
			m.mu.Unlock()
		case <-m.stopCh:
			return
		}
	}
}
