package gesture

import (
	"sort"

	"touchviz/internal/domain"
	"touchviz/internal/eventbus"
)

// Mode selects the shape new touches draw
type Mode int

const (
	ModeLasso Mode = iota
	ModeRectangle
)

func (m Mode) String() string {
	if m == ModeRectangle {
		return "rectangle"
	}
	return "lasso"
}

// ParseMode accepts "lasso" and "rectangle"; anything else is lasso
func ParseMode(s string) Mode {
	if s == "rectangle" || s == "rect" {
		return ModeRectangle
	}
	return ModeLasso
}

// Tracker keeps one gesture per active touch, so several touches can select at once
type Tracker struct {
	mode   Mode
	active map[domain.TouchID]Gesture
	bus    *eventbus.Dispatcher
}

// NewTracker creates a tracker. Finished gestures are announced on bus.
func NewTracker(bus *eventbus.Dispatcher) *Tracker {
	return &Tracker{
		active: make(map[domain.TouchID]Gesture),
		bus:    bus,
	}
}

func (t *Tracker) Mode() Mode        { return t.mode }
func (t *Tracker) SetMode(mode Mode) { t.mode = mode }

// Handle routes ev to the gesture of its touch, starting one on TouchStart.
// It returns the gesture ev belonged to, or nil.
func (t *Tracker) Handle(ev domain.TouchEvent) Gesture {
	switch ev.Phase {
	case domain.TouchStart:
		if old, ok := t.active[ev.Touch]; ok {
			old.Clear()
		}
		var g Gesture
		if t.mode == ModeRectangle {
			g = NewRectangleGesture(ev, t.bus)
		} else {
			g = NewLasso(ev, t.bus)
		}
		t.active[ev.Touch] = g
		return g
	default:
		g, ok := t.active[ev.Touch]
		if !ok || !g.HandleTouch(ev) {
			return nil
		}
		if g.Done() {
			delete(t.active, ev.Touch)
		}
		return g
	}
}

// Active returns the gestures in progress ordered by touch
func (t *Tracker) Active() []Gesture {
	gestures := make([]Gesture, 0, len(t.active))
	for _, g := range t.active {
		gestures = append(gestures, g)
	}
	sort.Slice(gestures, func(i, j int) bool {
		return gestures[i].Touch().String() < gestures[j].Touch().String()
	})
	return gestures
}

// Cancel drops the gesture of touch without finishing it
func (t *Tracker) Cancel(touch domain.TouchID) {
	if g, ok := t.active[touch]; ok {
		g.Clear()
		delete(t.active, touch)
	}
}

// CancelSource drops every gesture of a touch source, e.g. a disconnected touchpad
func (t *Tracker) CancelSource(source string) {
	for id := range t.active {
		if id.Source == source {
			t.Cancel(id)
		}
	}
}

// Clear drops every gesture in progress
func (t *Tracker) Clear() {
	for id := range t.active {
		t.Cancel(id)
	}
}
