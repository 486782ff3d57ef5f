package views

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"touchviz/internal/domain"
)

// CanvasNode is a node as the canvas draws it
type CanvasNode struct {
	ID    string
	Pos   domain.Point
	Color lipgloss.Color // empty when the node is in no selection set
}

// LegendEntry describes one selection set
type LegendEntry struct {
	ID    string
	Color lipgloss.Color
	Count int
}

// CanvasState contains all the state needed for drawing the canvas
type CanvasState struct {
	Viewport Viewport
	Nodes    []CanvasNode
	Edges    [][2]domain.Point
	Gestures []domain.Polygon
	Erase    bool
}

type cellKind int

const (
	cellEmpty cellKind = iota
	cellEdge
	cellGesture
	cellNode
)

type cell struct {
	kind  cellKind
	r     rune
	color lipgloss.Color
}

// Renderer handles all view rendering
type Renderer struct {
	styles *Styles
}

// NewRenderer creates a new renderer
func NewRenderer(styles *Styles) *Renderer {
	if styles == nil {
		styles = NewStyles()
	}
	return &Renderer{styles: styles}
}

// Styles returns the renderer styles
func (r *Renderer) Styles() *Styles {
	return r.styles
}

// Canvas draws edges, gesture outlines and nodes, in that order of precedence
func (r *Renderer) Canvas(state CanvasState) string {
	vp := state.Viewport
	grid := make([][]cell, vp.Height)
	for i := range grid {
		grid[i] = make([]cell, vp.Width)
	}
	put := func(p domain.Point, c cell) {
		col, row, ok := vp.ToCell(p)
		if !ok || grid[row][col].kind > c.kind {
			return
		}
		grid[row][col] = c
	}

	for _, e := range state.Edges {
		for _, p := range sampleSegment(vp, e[0], e[1]) {
			put(p, cell{kind: cellEdge, r: '·'})
		}
	}
	for _, poly := range state.Gestures {
		for i := 1; i < len(poly); i++ {
			for _, p := range sampleSegment(vp, poly[i-1], poly[i]) {
				put(p, cell{kind: cellGesture, r: '•'})
			}
		}
		if len(poly) == 1 {
			put(poly[0], cell{kind: cellGesture, r: '+'})
		}
	}
	for _, n := range state.Nodes {
		glyph := 'o'
		if n.Color != "" {
			glyph = '●'
		}
		put(n.Pos, cell{kind: cellNode, r: glyph, color: n.Color})
	}

	gestureStyle := r.styles.Gesture
	if state.Erase {
		gestureStyle = r.styles.EraseGesture
	}

	lines := make([]string, vp.Height)
	var b strings.Builder
	for row := range grid {
		b.Reset()
		for _, c := range grid[row] {
			switch c.kind {
			case cellEmpty:
				b.WriteByte(' ')
			case cellEdge:
				b.WriteString(r.styles.Edge.Render(string(c.r)))
			case cellGesture:
				b.WriteString(gestureStyle.Render(string(c.r)))
			case cellNode:
				if c.color != "" {
					b.WriteString(lipgloss.NewStyle().Foreground(c.color).Bold(true).Render(string(c.r)))
				} else {
					b.WriteString(r.styles.Node.Render(string(c.r)))
				}
			}
		}
		lines[row] = b.String()
	}
	return strings.Join(lines, "\n")
}

// Legend renders one swatch per selection set, truncated to width
func (r *Renderer) Legend(entries []LegendEntry, width int) string {
	if len(entries) == 0 {
		return r.styles.Dim.Render("no selections")
	}
	parts := make([]string, 0, len(entries))
	used := 0
	for i, e := range entries {
		plain := fmt.Sprintf("■ %s (%d)", e.ID, e.Count)
		if width > 0 && used+len(plain)+2 > width && i > 0 {
			parts = append(parts, r.styles.Dim.Render(fmt.Sprintf("+%d more", len(entries)-i)))
			break
		}
		parts = append(parts, r.styles.Swatch(e.Color)+r.styles.Legend.Render(fmt.Sprintf(" %s (%d)", e.ID, e.Count)))
		used += len(plain) + 2
	}
	return strings.Join(parts, "  ")
}

// sampleSegment returns points along a..b at most half a cell apart
func sampleSegment(vp Viewport, a, b domain.Point) []domain.Point {
	cell := vp.CellSize()
	d := b.Sub(a)
	steps := int(math.Ceil(math.Max(math.Abs(d.X)/cell.X, math.Abs(d.Y)/cell.Y) * 2))
	if steps < 1 {
		return []domain.Point{a}
	}
	points := make([]domain.Point, 0, steps+1)
	for i := 0; i <= steps; i++ {
		points = append(points, a.Add(d.Scale(float64(i)/float64(steps))))
	}
	return points
}
