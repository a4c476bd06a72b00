package tabs

import "charm.land/bubbles/v2/key"

// KeyMap defines key bindings for the tab bar.
type KeyMap struct {
	Prev,
	Next,
	Home,
	End,
	Activate key.Binding
}

// DefaultKeyMap returns the default key bindings for the tab bar.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Prev: key.NewBinding(
			key.WithKeys("left", "shift+tab"),
			key.WithHelp("←", "previous tab"),
		),
		Next: key.NewBinding(
			key.WithKeys("right", "tab"),
			key.WithHelp("→", "next tab"),
		),
		Home: key.NewBinding(
			key.WithKeys("home"),
			key.WithHelp("home", "first tab"),
		),
		End: key.NewBinding(
			key.WithKeys("end"),
			key.WithHelp("end", "last tab"),
		),
		Activate: key.NewBinding(
			key.WithKeys("enter", "space"),
			key.WithHelp("enter/space", "activate tab"),
		),
	}
}

// ShortHelp implements [help.KeyMap].
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Prev, k.Next, k.Activate}
}

// FullHelp implements [help.KeyMap].
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Prev, k.Next, k.Home, k.End},
		{k.Activate},
	}
}
