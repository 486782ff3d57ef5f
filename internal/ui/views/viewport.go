package views

import (
	"math"

	"touchviz/internal/domain"
)

// margin is the share of the data span left empty around the nodes
const margin = 0.05

// Viewport maps between terminal cells, the unit square of touchpads and data coordinates
type Viewport struct {
	Width  int
	Height int
	Lo     domain.Point
	Hi     domain.Point
}

// NewViewport fits the data bounds lo..hi into a width x height cell grid
func NewViewport(width, height int, lo, hi domain.Point) Viewport {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	span := hi.Sub(lo)
	if span.X <= 0 {
		span.X = 1
	}
	if span.Y <= 0 {
		span.Y = 1
	}
	pad := span.Scale(margin)
	return Viewport{
		Width:  width,
		Height: height,
		Lo:     lo.Sub(pad),
		Hi:     lo.Add(span).Add(pad),
	}
}

// CellSize returns the data extent of one cell
func (v Viewport) CellSize() domain.Point {
	return domain.Point{
		X: (v.Hi.X - v.Lo.X) / float64(v.Width),
		Y: (v.Hi.Y - v.Lo.Y) / float64(v.Height),
	}
}

// ToWorld returns the data position of the centre of a cell
func (v Viewport) ToWorld(col, row int) domain.Point {
	cell := v.CellSize()
	return domain.Point{
		X: v.Lo.X + (float64(col)+0.5)*cell.X,
		Y: v.Lo.Y + (float64(row)+0.5)*cell.Y,
	}
}

// FromUnit maps a normalized touchpad position to data coordinates
func (v Viewport) FromUnit(p domain.Point) domain.Point {
	return domain.Point{
		X: v.Lo.X + p.X*(v.Hi.X-v.Lo.X),
		Y: v.Lo.Y + p.Y*(v.Hi.Y-v.Lo.Y),
	}
}

// ToCell returns the cell holding p and whether it is on the grid
func (v Viewport) ToCell(p domain.Point) (col, row int, ok bool) {
	cell := v.CellSize()
	col = int(math.Floor((p.X - v.Lo.X) / cell.X))
	row = int(math.Floor((p.Y - v.Lo.Y) / cell.Y))
	ok = col >= 0 && col < v.Width && row >= 0 && row < v.Height
	return col, row, ok
}

// Contains reports whether a cell lies on the grid
func (v Viewport) Contains(col, row int) bool {
	return col >= 0 && col < v.Width && row >= 0 && row < v.Height
}

// Aspect returns width over height of the data area
func (v Viewport) Aspect() float64 {
	return (v.Hi.X - v.Lo.X) / (v.Hi.Y - v.Lo.Y)
}
