package pacer

import (
	"context"
	"errors"
	"sync"
	"time"
)

// Source emits events to be dispatched.
type Source interface {
	Stream(ctx context.Context, emit func(Event) error) error
}

// SourceFunc adapts a function literal to the Source interface.
type SourceFunc func(ctx context.Context, emit func(Event) error) error

// Stream calls the underlying function.
func (f SourceFunc) Stream(ctx context.Context, emit func(Event) error) error {
	return f(ctx, emit)
}

// BindOption configures a single binding.
type BindOption func(*bindOptions)

type bindOptions struct {
	once     bool
	throttle time.Duration
	debounce time.Duration
}

// Once removes the binding after its handler has run one time.
func Once() BindOption {
	return func(o *bindOptions) { o.once = true }
}

// WithThrottle rate-limits the binding on the leading edge: the first event
// of a burst reaches the handler, the rest of the interval is dropped.
func WithThrottle(interval time.Duration) BindOption {
	return func(o *bindOptions) { o.throttle = interval }
}

// WithDebounce delays the binding to the trailing edge: the handler sees the
// last event of a burst, a quiet period after it.
func WithDebounce(quiet time.Duration) BindOption {
	return func(o *bindOptions) { o.debounce = quiet }
}

type binding struct {
	id     int
	call   func(Event)
	closer func()
}

// Dispatcher routes events to handlers bound per event type, applying
// throttle or debounce pacing per binding. Each binding owns its own wrapper
// state; unbinding tears the wrapper down so no deferred callback leaks.
type Dispatcher struct {
	mu        sync.RWMutex
	sched     Scheduler
	listeners map[string][]*binding
	nextID    int
	closed    bool
}

// NewDispatcher builds a dispatcher. A nil scheduler falls back to the
// runtime timer.
func NewDispatcher(sched Scheduler) *Dispatcher {
	if sched == nil {
		sched = NewScheduler()
	}
	return &Dispatcher{
		sched:     sched,
		listeners: make(map[string][]*binding),
	}
}

// Bind registers handler for eventType and returns the binding id.
func (d *Dispatcher) Bind(eventType string, handler func(Event), opts ...BindOption) (int, error) {
	if eventType == "" {
		return 0, errors.New("event type must not be empty")
	}
	if handler == nil {
		return 0, errors.New("handler must not be nil")
	}
	var o bindOptions
	for _, opt := range opts {
		opt(&o)
	}
	if o.throttle > 0 && o.debounce > 0 {
		return 0, errors.New("throttle and debounce are mutually exclusive")
	}

	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return 0, errors.New("dispatcher is closed")
	}
	d.nextID++
	id := d.nextID
	d.mu.Unlock()

	inner := handler
	if o.once {
		var one sync.Once
		inner = func(ev Event) {
			one.Do(func() {
				handler(ev)
				d.Unbind(eventType, id)
			})
		}
	}

	call := inner
	var closer func()
	switch {
	case o.throttle > 0:
		t, err := NewThrottler[Event](d.sched, o.throttle, inner)
		if err != nil {
			return 0, err
		}
		call, closer = t.Call, t.Close
	case o.debounce > 0:
		db, err := NewDebouncer[Event](d.sched, o.debounce, inner)
		if err != nil {
			return 0, err
		}
		call, closer = db.Call, db.Close
	}

	b := &binding{id: id, call: call, closer: closer}

	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		if closer != nil {
			closer()
		}
		return 0, errors.New("dispatcher is closed")
	}
	d.listeners[eventType] = append(d.listeners[eventType], b)
	d.mu.Unlock()
	return id, nil
}

// Unbind removes the binding and tears down its pacing state. It reports
// whether the binding was found.
func (d *Dispatcher) Unbind(eventType string, id int) bool {
	d.mu.Lock()
	listeners := d.listeners[eventType]
	var removed *binding
	for i, b := range listeners {
		if b.id == id {
			removed = b
			d.listeners[eventType] = append(listeners[:i], listeners[i+1:]...)
			break
		}
	}
	d.mu.Unlock()

	if removed == nil {
		return false
	}
	if removed.closer != nil {
		removed.closer()
	}
	return true
}

// Dispatch delivers ev to every binding registered for its type. The
// listener list is snapshotted first, so handlers may bind and unbind freely.
func (d *Dispatcher) Dispatch(ev Event) {
	d.mu.RLock()
	listeners := make([]*binding, len(d.listeners[ev.Type]))
	copy(listeners, d.listeners[ev.Type])
	d.mu.RUnlock()

	for _, b := range listeners {
		b.call(ev)
	}
}

// Pump feeds every event from src into the dispatcher until the stream ends
// or the context is done.
func (d *Dispatcher) Pump(ctx context.Context, src Source) error {
	return src.Stream(ctx, func(ev Event) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		d.Dispatch(ev)
		return nil
	})
}

// Close removes all bindings and tears down their pacing state. Further
// Bind calls fail; Dispatch becomes a no-op.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	d.closed = true
	var closers []func()
	for _, listeners := range d.listeners {
		for _, b := range listeners {
			if b.closer != nil {
				closers = append(closers, b.closer)
			}
		}
	}
	d.listeners = make(map[string][]*binding)
	d.mu.Unlock()

	for _, c := range closers {
		c()
	}
}
