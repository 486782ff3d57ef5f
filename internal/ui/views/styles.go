package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title         lipgloss.Style
	Mode          lipgloss.Style
	Erase         lipgloss.Style
	Dim           lipgloss.Style
	Status        lipgloss.Style
	StatusError   lipgloss.Style
	StatusSuccess lipgloss.Style
	Help          lipgloss.Style
	Edge          lipgloss.Style
	Node          lipgloss.Style
	Gesture       lipgloss.Style
	EraseGesture  lipgloss.Style
	Legend        lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title:         lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99")),
		Mode:          lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
		Erase:         lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")), // red
		Dim:           lipgloss.NewStyle().Faint(true),
		Status:        lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		StatusError:   lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		StatusSuccess: lipgloss.NewStyle().Foreground(lipgloss.Color("78")),  // green
		Help:          lipgloss.NewStyle().Faint(true),
		Edge:          lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
		Node:          lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		Gesture:       lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		EraseGesture:  lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		Legend:        lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
	}
}

// Swatch renders a coloured block for a selection colour
func (s *Styles) Swatch(c lipgloss.Color) string {
	return lipgloss.NewStyle().Foreground(c).Render("■")
}
