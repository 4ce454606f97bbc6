// Package keys provides the key bindings shared by all dialogs.
package keys

import (
	"github.com/charmbracelet/bubbles/key"
)

// ButtonBindings move between and press the action buttons.
type ButtonBindings struct {
	Next   key.Binding
	Prev   key.Binding
	Press  key.Binding
	Escape key.Binding
	Help   key.Binding
	// Interrupt aborts the dialog with an error result.
	Interrupt key.Binding
}

// DefaultButtonBindings returns the default button bindings.
func DefaultButtonBindings() ButtonBindings {
	return ButtonBindings{
		Next: key.NewBinding(
			key.WithKeys("tab", "right"),
			key.WithHelp("Tab/→", "next button"),
		),
		Prev: key.NewBinding(
			key.WithKeys("shift+tab", "left"),
			key.WithHelp("S-Tab/←", "previous button"),
		),
		Press: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("Enter", "press button"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("Esc", "close"),
		),
		Help: key.NewBinding(
			key.WithKeys("f1"),
			key.WithHelp("F1", "help"),
		),
		Interrupt: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("Ctrl+C", "abort"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (b ButtonBindings) ShortHelp() []key.Binding {
	return []key.Binding{b.Next, b.Press, b.Escape, b.Help}
}

// FullHelp implements help.KeyMap.
func (b ButtonBindings) FullHelp() [][]key.Binding {
	return [][]key.Binding{{b.Next, b.Prev, b.Press}, {b.Escape, b.Help, b.Interrupt}}
}

// NavigationBindings for cursor movement in lists and text.
type NavigationBindings struct {
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Top      key.Binding
	Bottom   key.Binding
	Toggle   key.Binding
}

// DefaultNavigationBindings returns the default navigation bindings.
func DefaultNavigationBindings() NavigationBindings {
	return NavigationBindings{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "move down"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("PgUp", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("PgDn", "page down"),
		),
		Top: key.NewBinding(
			key.WithKeys("home", "g"),
			key.WithHelp("Home/g", "first"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("end", "G"),
			key.WithHelp("End/G", "last"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("Space", "toggle"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (n NavigationBindings) ShortHelp() []key.Binding {
	return []key.Binding{n.Up, n.Down, n.Toggle}
}

// FullHelp implements help.KeyMap.
func (n NavigationBindings) FullHelp() [][]key.Binding {
	return [][]key.Binding{{n.Up, n.Down, n.PageUp, n.PageDown}, {n.Top, n.Bottom, n.Toggle}}
}

// DisableLetterKeys drops j/k/g/G so text inputs receive them.
func (n NavigationBindings) DisableLetterKeys() NavigationBindings {
	n.Up.SetKeys("up")
	n.Down.SetKeys("down")
	n.Top.SetKeys("home")
	n.Bottom.SetKeys("end")
	n.Toggle.SetEnabled(false)
	return n
}

// ConfirmBindings answer yes/no dialogs from the keyboard.
type ConfirmBindings struct {
	Yes key.Binding
	No  key.Binding
}

// DefaultConfirmBindings returns the default yes/no bindings.
func DefaultConfirmBindings() ConfirmBindings {
	return ConfirmBindings{
		Yes: key.NewBinding(
			key.WithKeys("y", "Y"),
			key.WithHelp("y", "yes"),
		),
		No: key.NewBinding(
			key.WithKeys("n", "N"),
			key.WithHelp("n", "no"),
		),
	}
}
