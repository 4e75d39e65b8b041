package tui

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines the key bindings for the TUI.
type KeyMap struct {
	// Interval control
	Work       key.Binding
	Break      key.Binding
	StartPause key.Binding
	Reset      key.Binding

	// Sound
	ToggleNoise key.Binding

	// Session
	CopyYAML key.Binding

	// Global
	Quit key.Binding
	Help key.Binding
}

// ShortHelp returns a short help message.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Quit}
}

// FullHelp returns a full help message.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Work, k.Break, k.StartPause, k.Reset},
		{k.ToggleNoise, k.CopyYAML},
		{k.Help, k.Quit},
	}
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Work: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "start work"),
		),
		Break: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "start break"),
		),
		StartPause: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "pause/resume"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reset"),
		),
		ToggleNoise: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "toggle noise"),
		),
		CopyYAML: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy session as YAML"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
	}
}
