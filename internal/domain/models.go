package domain

import "fmt"

// Point is a position on the canvas
type Point struct {
	X, Y float64
}

func (p Point) Add(q Point) Point     { return Point{p.X + q.X, p.Y + q.Y} }
func (p Point) Sub(q Point) Point     { return Point{p.X - q.X, p.Y - q.Y} }
func (p Point) Scale(f float64) Point { return Point{p.X * f, p.Y * f} }

// Polygon is an ordered list of points. A closed polygon repeats its first point at the end.
type Polygon []Point

// Closed reports whether the last point equals the first one
func (p Polygon) Closed() bool {
	return len(p) > 1 && p[0] == p[len(p)-1]
}

// TouchPhase is the stage of a touch within a gesture
type TouchPhase int

const (
	TouchStart TouchPhase = iota
	TouchMove
	TouchEnd
)

func (p TouchPhase) String() string {
	switch p {
	case TouchStart:
		return "start"
	case TouchMove:
		return "move"
	case TouchEnd:
		return "end"
	default:
		return fmt.Sprintf("TouchPhase(%d)", int(p))
	}
}

// ParseTouchPhase converts the wire name of a phase
func ParseTouchPhase(s string) (TouchPhase, error) {
	switch s {
	case "start":
		return TouchStart, nil
	case "move":
		return TouchMove, nil
	case "end":
		return TouchEnd, nil
	}
	return 0, fmt.Errorf("unknown touch phase %q", s)
}

// TouchID identifies a touch. Source separates the local mouse from touchpad clients.
type TouchID struct {
	Source string
	ID     int
}

func (t TouchID) String() string {
	return fmt.Sprintf("%s/%d", t.Source, t.ID)
}
