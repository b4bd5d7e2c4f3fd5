package app

import (
	"charm.land/bubbles/v2/key"
)

type keyMap struct {
	Star     key.Binding
	Up       key.Binding
	Down     key.Binding
	Tooltip  key.Binding
	Activate key.Binding
	Refresh  key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Dismiss  key.Binding
	Quit     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Star: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "star"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Tooltip: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help text"),
		),
		Activate: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "copy link"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("pgup", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("pgdn", "page down"),
		),
		Dismiss: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp lists the bindings shown in the footer; the star binding is only
// offered when the viewer may use it.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Star, k.Up, k.Down, k.Tooltip, k.Activate, k.Refresh, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Star, k.Tooltip, k.Activate},
		{k.Up, k.Down, k.PageUp, k.PageDown},
		{k.Refresh, k.Dismiss, k.Quit},
	}
}
