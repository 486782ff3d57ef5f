package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"touchviz/internal/domain"
	"touchviz/internal/ui/views"
)

// View renders the canvas with its header, legend, status line and key help
func (m *Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}
	if m.inPagerMode {
		return ""
	}

	styles := m.renderer.Styles()
	var b strings.Builder

	header := styles.Title.Render("touchviz") + "  " + styles.Mode.Render(m.tracker.Mode().String())
	if m.erase {
		header += "  " + styles.Erase.Render("ERASE")
	}
	if len(m.pads) > 0 {
		header += "  " + styles.Dim.Render(fmt.Sprintf("%d touchpad(s)", len(m.pads)))
	}
	b.WriteString(header)
	b.WriteString("\n")

	b.WriteString(m.renderer.Canvas(m.canvasState()))
	b.WriteString("\n")

	if m.cfg.UISettings.ShowLegend {
		b.WriteString(m.renderer.Legend(m.legend(), m.width))
		b.WriteString("\n")
	}

	switch {
	case m.status == "":
		b.WriteString(styles.Status.Render(fmt.Sprintf("%d node(s)", m.graph.Len())))
	case m.statusErr:
		b.WriteString(styles.StatusError.Render(m.status))
	default:
		b.WriteString(styles.StatusSuccess.Render(m.status))
	}
	b.WriteString("\n")

	b.WriteString(styles.Help.Render(m.help.View(m.keys)))
	return b.String()
}

func (m *Model) canvasState() views.CanvasState {
	colorOf := m.nodeColors()

	nodes := m.graph.Nodes()
	canvasNodes := make([]views.CanvasNode, len(nodes))
	for i, n := range nodes {
		canvasNodes[i] = views.CanvasNode{ID: n.ID, Pos: n.Pos, Color: colorOf[n.ID]}
	}

	var edges [][2]domain.Point
	for _, e := range m.graph.Edges() {
		a, _ := m.graph.Node(e[0])
		b, _ := m.graph.Node(e[1])
		edges = append(edges, [2]domain.Point{a.Pos, b.Pos})
	}

	var polys []domain.Polygon
	for _, g := range m.tracker.Active() {
		polys = append(polys, g.Polygon())
	}

	return views.CanvasState{
		Viewport: m.viewport(),
		Nodes:    canvasNodes,
		Edges:    edges,
		Gestures: polys,
		Erase:    m.erase,
	}
}

// nodeColors maps each selected node to the colour of the newest set holding it
func (m *Model) nodeColors() map[string]lipgloss.Color {
	colors := make(map[string]lipgloss.Color)
	for _, id := range m.holder.IDs() {
		c, ok := m.colors.ColorFor(id)
		if !ok {
			continue
		}
		elems, _ := m.holder.Set(id)
		for _, e := range elems {
			colors[e] = c
		}
	}
	return colors
}

func (m *Model) legend() []views.LegendEntry {
	ids := m.holder.IDs()
	entries := make([]views.LegendEntry, 0, len(ids))
	for _, id := range ids {
		c, _ := m.colors.ColorFor(id)
		elems, _ := m.holder.Set(id)
		entries = append(entries, views.LegendEntry{ID: id.String(), Color: c, Count: len(elems)})
	}
	return entries
}
