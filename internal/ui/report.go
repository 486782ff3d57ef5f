package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")).
			MarginBottom(1)

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	keyStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	descStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	dimStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// HelpContent generates help content with colors for the pager
func HelpContent() string {
	var help strings.Builder

	help.WriteString(titleStyle.Render("touchviz Help"))
	help.WriteString("\n")

	row := func(k, desc string) {
		help.WriteString(fmt.Sprintf("  %-10s %s\n", keyStyle.Render(k), descStyle.Render(desc)))
	}

	help.WriteString(sectionStyle.Render("Gestures"))
	help.WriteString("\n")
	row("click", "Add the node under the pointer; clicks close together share a set")
	row("drag", "Draw a lasso or rectangle; enclosed nodes become a new set")
	row("touchpad", "Every finger draws its own gesture")
	help.WriteString("\n")

	help.WriteString(sectionStyle.Render("Modes"))
	help.WriteString("\n")
	row("m", "Toggle lasso/rectangle")
	row("e", "Toggle erase mode: gestures remove nodes from their sets")
	row("esc", "Cancel gestures in progress")
	help.WriteString("\n")

	help.WriteString(sectionStyle.Render("Selections"))
	help.WriteString("\n")
	row("u", "Remove the newest set")
	row("c", "Remove every set")
	row("r", "Show the selection report")
	help.WriteString("\n")

	help.WriteString(sectionStyle.Render("Other"))
	help.WriteString("\n")
	row("?", "Show this help")
	row("q", "Quit")

	return help.String()
}

// Report lists every selection set with its members
func (m *Model) Report() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Selection report"))
	b.WriteString("\n")

	ids := m.holder.IDs()
	b.WriteString(dimStyle.Render(fmt.Sprintf("%d set(s) over %d node(s)", len(ids), m.graph.Len())))
	b.WriteString("\n\n")

	for _, id := range ids {
		elems, _ := m.holder.Set(id)
		swatch := " "
		if c, ok := m.colors.ColorFor(id); ok {
			swatch = lipgloss.NewStyle().Foreground(c).Render("■")
		}
		b.WriteString(fmt.Sprintf("%s %s %s\n", swatch, sectionStyle.Render(id.String()),
			dimStyle.Render(fmt.Sprintf("(%d)", len(elems)))))
		for _, e := range elems {
			n, ok := m.graph.Node(e)
			if !ok || n.Label == n.ID {
				b.WriteString(fmt.Sprintf("    %s\n", e))
				continue
			}
			b.WriteString(fmt.Sprintf("    %s  %s\n", e, descStyle.Render(n.Label)))
		}
	}
	return b.String()
}
