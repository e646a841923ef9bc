package pacer

import (
	"context"
	"errors"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// rateGate implements Gate with a token bucket per identifier. Unlike the
// hard lockout of the memory gate, it tolerates short bursts up to the
// configured size while keeping the long-run admission rate at one event per
// interval.
type rateGate struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	limit    rate.Limit
	burst    int
}

// NewRateGate initializes a token-bucket gate refilling one token per
// interval. Config.Burst defaults to 1.
func NewRateGate(cfg Config) (Gate, error) {
	if cfg.Interval <= 0 {
		return nil, errors.New("interval must be positive")
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}
	return &rateGate{
		limiters: make(map[string]*rate.Limiter),
		limit:    rate.Every(cfg.Interval),
		burst:    burst,
	}, nil
}

func (g *rateGate) Allow(ctx context.Context, identifier string) (bool, time.Duration, error) {
	g.mu.Lock()
	l, ok := g.limiters[identifier]
	if !ok {
		l = rate.NewLimiter(g.limit, g.burst)
		g.limiters[identifier] = l
	}
	g.mu.Unlock()

	r := l.Reserve()
	if delay := r.Delay(); delay > 0 {
		// Not admissible right now; hand the token back.
		r.Cancel()
		return false, delay, nil
	}
	return true, 0, nil
}

// Close releases any resources held by the gate.
func (g *rateGate) Close(ctx context.Context) error {
	// no background goroutine to stop; implement to satisfy interface
	return nil
}
