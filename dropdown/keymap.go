package dropdown

import "charm.land/bubbles/v2/key"

// KeyMap defines key bindings for the select widget.
type KeyMap struct {
	Open,
	Up,
	Down,
	Home,
	End,
	Confirm,
	Close key.Binding
}

// DefaultKeyMap returns the default key bindings for the select widget.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Open: key.NewBinding(
			key.WithKeys("enter", "space", "down", "up"),
			key.WithHelp("enter", "open menu"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "ctrl+p"),
			key.WithHelp("↑", "previous option"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "ctrl+n"),
			key.WithHelp("↓", "next option"),
		),
		Home: key.NewBinding(
			key.WithKeys("home"),
			key.WithHelp("home", "first option"),
		),
		End: key.NewBinding(
			key.WithKeys("end"),
			key.WithHelp("end", "last option"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter", "space"),
			key.WithHelp("enter/space", "choose"),
		),
		Close: key.NewBinding(
			key.WithKeys("esc", "alt+esc"),
			key.WithHelp("esc", "close menu"),
		),
	}
}

// ShortHelp implements [help.KeyMap].
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Open, k.Up, k.Down, k.Close}
}

// FullHelp implements [help.KeyMap].
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Open, k.Confirm, k.Close},
		{k.Up, k.Down, k.Home, k.End},
	}
}
