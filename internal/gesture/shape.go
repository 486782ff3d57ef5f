// Package gesture tracks the geometry of in-progress selection gestures.
// Shapes never decide membership; the view tests its elements against Polygon.
package gesture

import (
	"log"
	"math"

	"touchviz/internal/domain"
	"touchviz/internal/eventbus"
)

// TapTolerance is how far a touch may wander and still count as a tap
const TapTolerance = 0.5

// Shape is the geometry of one gesture
type Shape interface {
	Polygon() domain.Polygon
	Clear()
	Done() bool
}

// Gesture is a shape driven by a stream of touch events of one touch
type Gesture interface {
	Shape
	Touch() domain.TouchID
	// HandleTouch applies ev and reports whether it belonged to this gesture
	HandleTouch(ev domain.TouchEvent) bool
	// Tap reports whether the touch never left its start point
	Tap() bool
}

func finish(bus *eventbus.Dispatcher, g Gesture) {
	if bus == nil {
		return
	}
	err := bus.Dispatch(domain.GestureFinishedEvent{
		Touch:   g.Touch(),
		Polygon: g.Polygon(),
		Tap:     g.Tap(),
	})
	if err != nil {
		log.Printf("Gesture: finish %s: %v", g.Touch(), err)
	}
}

func distance(a, b domain.Point) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

// Contains reports whether p lies inside poly using the even-odd rule.
// An open polygon is treated as closed.
func Contains(poly domain.Polygon, p domain.Point) bool {
	n := len(poly)
	if n < 3 {
		return false
	}
	inside := false
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		a, b := poly[i], poly[j]
		if (a.Y > p.Y) != (b.Y > p.Y) {
			x := (b.X-a.X)*(p.Y-a.Y)/(b.Y-a.Y) + a.X
			if p.X < x {
				inside = !inside
			}
		}
	}
	return inside
}

// Bounds returns the top-left and bottom-right corners of poly
func Bounds(poly domain.Polygon) (lo, hi domain.Point) {
	if len(poly) == 0 {
		return lo, hi
	}
	lo, hi = poly[0], poly[0]
	for _, p := range poly[1:] {
		lo.X = math.Min(lo.X, p.X)
		lo.Y = math.Min(lo.Y, p.Y)
		hi.X = math.Max(hi.X, p.X)
		hi.Y = math.Max(hi.Y, p.Y)
	}
	return lo, hi
}
