package gesture

import (
	"math"

	"touchviz/internal/domain"
	"touchviz/internal/eventbus"
)

// Rectangle is an axis-aligned selection box kept as a center and a size
type Rectangle struct {
	center domain.Point
	size   domain.Point

	touch  domain.TouchID
	anchor domain.Point
	moved  bool
	done   bool
	bus    *eventbus.Dispatcher
}

// NewRectangle creates a rectangle that is positioned with Update
func NewRectangle(center, size domain.Point) *Rectangle {
	return &Rectangle{center: center, size: size}
}

// NewRectangleGesture creates a rectangle spanned between the start of a touch
// and its current position. bus may be nil.
func NewRectangleGesture(start domain.TouchEvent, bus *eventbus.Dispatcher) *Rectangle {
	return &Rectangle{
		center: start.Pos,
		touch:  start.Touch,
		anchor: start.Pos,
		bus:    bus,
	}
}

// Update moves and resizes the rectangle
func (r *Rectangle) Update(center, size domain.Point) {
	r.center = center
	r.size = size
}

func (r *Rectangle) Center() domain.Point   { return r.center }
func (r *Rectangle) Size() domain.Point     { return r.size }
func (r *Rectangle) Touch() domain.TouchID { return r.touch }
func (r *Rectangle) Done() bool            { return r.done }

// Tap reports whether the touch never left its anchor
func (r *Rectangle) Tap() bool {
	return !r.moved
}

// HandleTouch spans the rectangle between the anchor and the touch position
func (r *Rectangle) HandleTouch(ev domain.TouchEvent) bool {
	if ev.Touch != r.touch || r.done {
		return false
	}
	switch ev.Phase {
	case domain.TouchMove:
		r.span(ev.Pos)
	case domain.TouchEnd:
		r.span(ev.Pos)
		r.done = true
		finish(r.bus, r)
	default:
		return false
	}
	return true
}

func (r *Rectangle) span(p domain.Point) {
	if distance(p, r.anchor) > TapTolerance {
		r.moved = true
	}
	r.Update(
		r.anchor.Add(p).Scale(0.5),
		domain.Point{X: math.Abs(p.X - r.anchor.X), Y: math.Abs(p.Y - r.anchor.Y)},
	)
}

// TopLeft returns center - size/2
func (r *Rectangle) TopLeft() domain.Point {
	return r.center.Sub(r.size.Scale(0.5))
}

// Bounds returns the top left and bottom right corners
func (r *Rectangle) Bounds() (lo, hi domain.Point) {
	lo = r.TopLeft()
	return lo, lo.Add(r.size)
}

// Polygon returns the corners clockwise from the top left, closed
func (r *Rectangle) Polygon() domain.Polygon {
	tl := r.TopLeft()
	br := tl.Add(r.size)
	return domain.Polygon{
		tl,
		{X: br.X, Y: tl.Y},
		br,
		{X: tl.X, Y: br.Y},
		tl,
	}
}

// Clear collapses the rectangle and stops following the touch
func (r *Rectangle) Clear() {
	r.size = domain.Point{}
	r.done = true
}
