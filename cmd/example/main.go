package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
	pacer "github.com/tdtran/pacer"
)

func main() {
	// 1. Demonstrate the pacing core on a simulated clock
	sim := pacer.NewSimScheduler()
	d := pacer.NewDispatcher(sim)

	moves := 0
	if _, err := d.Bind("pointermove", func(pacer.Event) { moves++ }, pacer.WithThrottle(100*time.Millisecond)); err != nil {
		log.Fatalf("Failed to bind pointermove: %v", err)
	}

	var lastInput string
	if _, err := d.Bind("input", func(ev pacer.Event) { lastInput = ev.Key }, pacer.WithDebounce(50*time.Millisecond)); err != nil {
		log.Fatalf("Failed to bind input: %v", err)
	}

	matches := 0
	matcher, err := pacer.NewSequenceMatcher(pacer.KonamiPattern, func() { matches++ })
	if err != nil {
		log.Fatalf("Failed to build matcher: %v", err)
	}
	if _, err := d.Bind("keydown", func(ev pacer.Event) { matcher.ObserveEvent(ev) }); err != nil {
		log.Fatalf("Failed to bind keydown: %v", err)
	}

	// A second of pointer movement at 10ms spacing: the throttled handler
	// sees roughly one event per 100ms instead of all hundred.
	for i := 0; i < 100; i++ {
		d.Dispatch(pacer.Event{Type: "pointermove", Time: sim.Now()})
		sim.Advance(10 * time.Millisecond)
	}
	log.Printf("pointermove: 100 events dispatched, %d reached the handler", moves)

	// A short typing burst: the debounced handler sees only the last key.
	for _, key := range []string{"p", "a", "c"} {
		d.Dispatch(pacer.Event{Type: "input", Key: key, Time: sim.Now()})
		sim.Advance(5 * time.Millisecond)
	}
	sim.Advance(50 * time.Millisecond)
	log.Printf("input: burst of 3 keys, handler saw %q once", lastInput)

	// The full easter-egg sequence.
	for _, key := range pacer.KonamiPattern {
		d.Dispatch(pacer.Event{Type: "keydown", Key: key, Time: sim.Now()})
		sim.Advance(5 * time.Millisecond)
	}
	log.Printf("keydown: konami sequence matched %d time(s)", matches)

	// 2. Serve an endpoint behind a gate, shared via Redis when available
	redisAddr := os.Getenv("REDIS_ADDR")
	cfg := pacer.Config{Interval: time.Second}

	var gate pacer.Gate
	if redisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr: redisAddr,
		})
		gate = pacer.NewRedisGate(rdb, cfg)
		log.Printf("Gating via Redis at %s (Interval: %v)", redisAddr, cfg.Interval)
	} else {
		gate, err = pacer.NewMemoryGate(cfg)
		if err != nil {
			log.Fatalf("Failed to build memory gate: %v", err)
		}
		log.Printf("Gating via Memory (Interval: %v)", cfg.Interval)
	}

	// 3. Identify callers by remote address
	keyFunc := func(r *http.Request) string {
		// In production, consider headers like X-Forwarded-For if behind a proxy
		return r.RemoteAddr
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/ping", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("pong"))
	})

	gated := pacer.Middleware(gate, keyFunc)

	serverAddr := ":8080"
	log.Printf("Server starting at %s", serverAddr)

	if err := http.ListenAndServe(serverAddr, gated(mux)); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
