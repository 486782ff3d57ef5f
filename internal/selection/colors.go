package selection

import "github.com/charmbracelet/lipgloss"

// DefaultPalette holds the selection colours, most distinguishable first
var DefaultPalette = []lipgloss.Color{
	"203", // red
	"39",  // blue
	"78",  // green
	"214", // orange
	"171", // purple
	"51",  // cyan
	"226", // yellow
	"205", // pink
	"130", // brown
	"250", // grey
}

// ColorMapper assigns palette colours to selection ids. A slot used by fewer
// ids is always preferred, so colours only repeat once every slot is taken.
type ColorMapper struct {
	palette []lipgloss.Color
	usage   []int
	slots   map[SetID]int
}

// NewColorMapper creates a mapper over palette, or DefaultPalette when empty
func NewColorMapper(palette []lipgloss.Color) *ColorMapper {
	if len(palette) == 0 {
		palette = DefaultPalette
	}
	p := make([]lipgloss.Color, len(palette))
	copy(p, palette)
	return &ColorMapper{
		palette: p,
		usage:   make([]int, len(p)),
		slots:   make(map[SetID]int),
	}
}

// NextColor returns the colour of id, assigning the least used slot if it has none
func (m *ColorMapper) NextColor(id SetID) lipgloss.Color {
	if slot, ok := m.slots[id]; ok {
		return m.palette[slot]
	}
	slot := 0
	for i, n := range m.usage {
		if n < m.usage[slot] {
			slot = i
		}
	}
	m.usage[slot]++
	m.slots[id] = slot
	return m.palette[slot]
}

// ColorFor looks up the colour of id without assigning one
func (m *ColorMapper) ColorFor(id SetID) (lipgloss.Color, bool) {
	slot, ok := m.slots[id]
	if !ok {
		return "", false
	}
	return m.palette[slot], true
}

// Remove releases the colour of id
func (m *ColorMapper) Remove(id SetID) {
	slot, ok := m.slots[id]
	if !ok {
		return
	}
	delete(m.slots, id)
	m.usage[slot]--
}

// Usage returns the number of ids per palette slot
func (m *ColorMapper) Usage() []int {
	u := make([]int, len(m.usage))
	copy(u, m.usage)
	return u
}

// Palette returns the palette in slot order
func (m *ColorMapper) Palette() []lipgloss.Color {
	p := make([]lipgloss.Color, len(m.palette))
	copy(p, m.palette)
	return p
}

// Len returns the number of ids holding a colour
func (m *ColorMapper) Len() int {
	return len(m.slots)
}

// Reset forgets every assignment
func (m *ColorMapper) Reset() {
	m.slots = make(map[SetID]int)
	for i := range m.usage {
		m.usage[i] = 0
	}
}
