package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the keyboard shortcuts of the overlay. The pointer remains
// the primary input; keys mirror the context menu actions.
type KeyMap struct {
	Quit        key.Binding
	ToggleOnTop key.Binding
	Dismiss     key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "close"),
		),
		ToggleOnTop: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "always on top"),
		),
		Dismiss: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "dismiss menu"),
		),
	}
}
