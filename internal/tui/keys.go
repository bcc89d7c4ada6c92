package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the keybindings of the search screen.
type KeyMap struct {
	Quit      key.Binding
	NextField key.Binding
	PrevField key.Binding
	Submit    key.Binding
	Clear     key.Binding
	Sort      key.Binding
	Order     key.Binding
	PerPage   key.Binding
	NextPage  key.Binding
	PrevPage  key.Binding
	Up        key.Binding
	Down      key.Binding
}

// DefaultKeyMap returns the default keybindings. Letters are left to the
// text inputs, so every action uses a modifier or a navigation key.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("esc", "ctrl+c"),
			key.WithHelp("esc", "quit"),
		),
		NextField: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next field"),
		),
		PrevField: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "prev field"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "search now"),
		),
		Clear: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("ctrl+l", "clear"),
		),
		Sort: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "sort"),
		),
		Order: key.NewBinding(
			key.WithKeys("ctrl+o"),
			key.WithHelp("ctrl+o", "order"),
		),
		PerPage: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "per page"),
		),
		NextPage: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("pgdn", "next page"),
		),
		PrevPage: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("pgup", "prev page"),
		),
		Up: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("↓", "down"),
		),
	}
}

// ShortHelp returns the bindings shown in the footer.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		k.NextField, k.Submit, k.Sort, k.Order, k.PerPage,
		k.PrevPage, k.NextPage, k.Clear, k.Quit,
	}
}
