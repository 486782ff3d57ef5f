package ui

import (
	"github.com/charmbracelet/bubbles/key"
)

type keyMap struct {
	Mode   key.Binding
	Erase  key.Binding
	Clear  key.Binding
	Undo   key.Binding
	Report key.Binding
	Cancel key.Binding
	Help   key.Binding
	Quit   key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Mode: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "lasso/rectangle"),
		),
		Erase: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "erase mode"),
		),
		Clear: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "clear all"),
		),
		Undo: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "drop newest set"),
		),
		Report: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "report"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel gestures"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Mode, k.Erase, k.Undo, k.Clear, k.Report, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Mode, k.Erase, k.Cancel},
		{k.Undo, k.Clear},
		{k.Report, k.Help, k.Quit},
	}
}
