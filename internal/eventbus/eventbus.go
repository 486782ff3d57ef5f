package eventbus

import (
	"errors"
	"fmt"
	"io"
	"log"
	"runtime/debug"
	"sync"

	"touchviz/internal/domain"
)

// Re-export domain types for convenience
type DomainEvent = domain.DomainEvent
type EventType = domain.EventType

// Event type constants
const (
	EventSelectionAdded   = domain.EventSelectionAdded
	EventSelectionRemoved = domain.EventSelectionRemoved
	EventGestureFinished  = domain.EventGestureFinished
	EventTouch            = domain.EventTouch
	EventTouchpadJoined   = domain.EventTouchpadJoined
	EventTouchpadLeft     = domain.EventTouchpadLeft
	EventConfigLoaded     = domain.EventConfigLoaded
	EventConfigSaved      = domain.EventConfigSaved
)

var (
	ErrNilListener  = errors.New("eventbus: nil listener")
	ErrAlreadyBound = errors.New("eventbus: listener already bound")
	ErrNotBound     = errors.New("eventbus: listener not bound")
)

// Mode controls whether binding mistakes and listener failures are reported to the caller
type Mode int

const (
	// Lenient logs problems and carries on
	Lenient Mode = iota
	// Strict returns problems to the caller, mostly for tests
	Strict
)

// HandlerFunc handles one event. The return value is only seen through DispatchWithReturns.
type HandlerFunc func(DomainEvent) any

// Listener is a bindable handler. Listeners are compared by pointer identity.
type Listener struct {
	name string
	fn   HandlerFunc
}

// NewListener wraps fn into a listener
func NewListener(name string, fn HandlerFunc) *Listener {
	return &Listener{name: name, fn: fn}
}

// On wraps a handler without a return value
func On(name string, fn func(DomainEvent)) *Listener {
	return NewListener(name, func(e DomainEvent) any {
		fn(e)
		return nil
	})
}

func (l *Listener) String() string {
	if l == nil {
		return "<nil>"
	}
	if l.name == "" {
		return fmt.Sprintf("listener(%p)", l)
	}
	return l.name
}

// ListenerError is reported when a listener panics during dispatch
type ListenerError struct {
	Event    EventType
	Listener string
	Value    any
}

func (e *ListenerError) Error() string {
	return fmt.Sprintf("listener %s failed on %s: %v", e.Listener, e.Event, e.Value)
}

// Unwrap exposes a panic value that was itself an error
func (e *ListenerError) Unwrap() error {
	err, _ := e.Value.(error)
	return err
}

// Dispatcher delivers events synchronously to the listeners bound for their type
type Dispatcher struct {
	mu       sync.RWMutex
	handlers map[EventType][]*Listener
	mode     Mode
	logger   *log.Logger
}

// New creates a lenient dispatcher
func New() *Dispatcher {
	return &Dispatcher{
		handlers: make(map[EventType][]*Listener),
	}
}

// NewStrict creates a dispatcher that reports binding mistakes and listener failures
func NewStrict() *Dispatcher {
	d := New()
	d.mode = Strict
	return d
}

// SetLogger replaces the standard logger for diagnostics
func (d *Dispatcher) SetLogger(l *log.Logger) {
	d.logger = l
}

// Mode returns the dispatcher mode
func (d *Dispatcher) Mode() Mode {
	return d.mode
}

func (d *Dispatcher) logf(format string, args ...any) {
	if d.logger != nil {
		d.logger.Printf(format, args...)
		return
	}
	log.Printf(format, args...)
}

func (d *Dispatcher) report(err error) error {
	d.logf("EventBus: %v", err)
	if d.mode == Strict {
		return err
	}
	return nil
}

// Bind registers l for events of type t. Binding the same listener twice is a no-op.
func (d *Dispatcher) Bind(t EventType, l *Listener) error {
	if l == nil {
		if d.mode == Strict {
			return ErrNilListener
		}
		return nil
	}

	d.mu.Lock()
	for _, h := range d.handlers[t] {
		if h == l {
			d.mu.Unlock()
			return d.report(fmt.Errorf("%w: %s on %s", ErrAlreadyBound, l, t))
		}
	}
	d.handlers[t] = append(d.handlers[t], l)
	d.mu.Unlock()
	return nil
}

// Unbind removes l from events of type t. The type is forgotten once its last listener is gone.
func (d *Dispatcher) Unbind(t EventType, l *Listener) error {
	d.mu.Lock()
	handlers := d.handlers[t]
	for i, h := range handlers {
		if h != l {
			continue
		}
		// Copy so snapshots held by running dispatches stay intact
		rest := make([]*Listener, 0, len(handlers)-1)
		rest = append(rest, handlers[:i]...)
		rest = append(rest, handlers[i+1:]...)
		if len(rest) == 0 {
			delete(d.handlers, t)
		} else {
			d.handlers[t] = rest
		}
		d.mu.Unlock()
		return nil
	}
	d.mu.Unlock()
	return d.report(fmt.Errorf("%w: %s on %s", ErrNotBound, l, t))
}

// Listeners returns the number of listeners bound for t
func (d *Dispatcher) Listeners(t EventType) int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.handlers[t])
}

// Has reports whether any listener is bound for t
func (d *Dispatcher) Has(t EventType) bool {
	return d.Listeners(t) > 0
}

func (d *Dispatcher) snapshot(t EventType) []*Listener {
	d.mu.RLock()
	defer d.mu.RUnlock()
	handlers := d.handlers[t]
	// Make a copy so listeners can bind and unbind while we iterate
	handlersCopy := make([]*Listener, len(handlers))
	copy(handlersCopy, handlers)
	return handlersCopy
}

// call runs one listener and turns a panic into a ListenerError
func (d *Dispatcher) call(l *Listener, event DomainEvent) (result any, err error) {
	defer func() {
		if r := recover(); r != nil {
			d.logf("Event handler panic for %s in %s: %v\nStack: %s", event.Type(), l, r, debug.Stack())
			err = &ListenerError{Event: event.Type(), Listener: l.String(), Value: r}
		}
	}()
	return l.fn(event), nil
}

// Dispatch calls every listener bound for the event's type in binding order.
// A failing listener does not stop the others unless the dispatcher is strict.
func (d *Dispatcher) Dispatch(event DomainEvent) error {
	for _, l := range d.snapshot(event.Type()) {
		if _, err := d.call(l, event); err != nil && d.mode == Strict {
			return err
		}
	}
	return nil
}

// DispatchWithReturns is like Dispatch but calls one listener per Results.Next
// and exposes its return value.
func (d *Dispatcher) DispatchWithReturns(event DomainEvent) *Results {
	return &Results{d: d, event: event, pending: d.snapshot(event.Type())}
}

// Results iterates over listener return values. It can be consumed once.
type Results struct {
	d       *Dispatcher
	event   DomainEvent
	pending []*Listener
	value   any
	err     error
}

// Next invokes the next listener. It returns false when listeners are exhausted
// or, in strict mode, after a listener failed.
func (r *Results) Next() bool {
	r.value = nil
	if r.err != nil {
		return false
	}
	for len(r.pending) > 0 {
		l := r.pending[0]
		r.pending = r.pending[1:]
		v, err := r.d.call(l, r.event)
		if err != nil {
			if r.d.mode == Strict {
				r.err = err
				r.pending = nil
				return false
			}
			continue
		}
		r.value = v
		return true
	}
	return false
}

// Value returns the result of the listener invoked by the last Next
func (r *Results) Value() any {
	return r.value
}

// Err returns the failure that stopped iteration in strict mode
func (r *Results) Err() error {
	return r.err
}

// Discard returns a logger that drops everything, for tests that expect failures
func Discard() *log.Logger {
	return log.New(io.Discard, "", 0)
}
