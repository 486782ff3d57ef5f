package gesture

import (
	"touchviz/internal/domain"
	"touchviz/internal/eventbus"
)

// Lasso follows one touch and records its path
type Lasso struct {
	touch  domain.TouchID
	points []domain.Point
	done   bool
	bus    *eventbus.Dispatcher
}

// NewLasso starts a lasso at the position of start. bus may be nil.
func NewLasso(start domain.TouchEvent, bus *eventbus.Dispatcher) *Lasso {
	return &Lasso{
		touch:  start.Touch,
		points: []domain.Point{start.Pos},
		bus:    bus,
	}
}

func (l *Lasso) Touch() domain.TouchID { return l.touch }
func (l *Lasso) Done() bool            { return l.done }

// HandleTouch extends the path on moves and finishes it on release
func (l *Lasso) HandleTouch(ev domain.TouchEvent) bool {
	if ev.Touch != l.touch || l.done {
		return false
	}
	switch ev.Phase {
	case domain.TouchMove:
		l.extend(ev.Pos)
	case domain.TouchEnd:
		l.extend(ev.Pos)
		l.done = true
		finish(l.bus, l)
	default:
		return false
	}
	return true
}

func (l *Lasso) extend(p domain.Point) {
	if len(l.points) > 0 && l.points[len(l.points)-1] == p {
		return
	}
	l.points = append(l.points, p)
}

// Path returns the recorded points without closing them
func (l *Lasso) Path() []domain.Point {
	path := make([]domain.Point, len(l.points))
	copy(path, l.points)
	return path
}

// Polygon returns the path closed back to its first point
func (l *Lasso) Polygon() domain.Polygon {
	poly := make(domain.Polygon, len(l.points), len(l.points)+1)
	copy(poly, l.points)
	if len(poly) > 1 && !poly.Closed() {
		poly = append(poly, poly[0])
	}
	return poly
}

// Tap reports whether every point stayed within TapTolerance of the start
func (l *Lasso) Tap() bool {
	if len(l.points) == 0 {
		return false
	}
	for _, p := range l.points[1:] {
		if distance(p, l.points[0]) > TapTolerance {
			return false
		}
	}
	return true
}

// Clear drops the path and stops following the touch
func (l *Lasso) Clear() {
	l.points = nil
	l.done = true
}
