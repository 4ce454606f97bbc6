package keys

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

func TestButtonBindingsMatch(t *testing.T) {
	b := DefaultButtonBindings()
	tests := []struct {
		name    string
		msg     tea.KeyMsg
		binding key.Binding
	}{
		{"tab", tea.KeyMsg{Type: tea.KeyTab}, b.Next},
		{"right", tea.KeyMsg{Type: tea.KeyRight}, b.Next},
		{"shift+tab", tea.KeyMsg{Type: tea.KeyShiftTab}, b.Prev},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, b.Press},
		{"esc", tea.KeyMsg{Type: tea.KeyEsc}, b.Escape},
		{"f1", tea.KeyMsg{Type: tea.KeyF1}, b.Help},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, b.Interrupt},
	}
	for _, tt := range tests {
		if !key.Matches(tt.msg, tt.binding) {
			t.Errorf("%s does not match its binding", tt.name)
		}
	}
}

func TestDisableLetterKeys(t *testing.T) {
	n := DefaultNavigationBindings()
	j := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}}
	if !key.Matches(j, n.Down) {
		t.Fatal("j should move down by default")
	}

	n = n.DisableLetterKeys()
	if key.Matches(j, n.Down) {
		t.Error("j still moves down after DisableLetterKeys")
	}
	if !key.Matches(tea.KeyMsg{Type: tea.KeyDown}, n.Down) {
		t.Error("arrow down stopped working")
	}
	if n.Toggle.Enabled() {
		t.Error("toggle should be disabled")
	}
}

func TestHelpKeyMaps(t *testing.T) {
	if len(DefaultButtonBindings().ShortHelp()) == 0 {
		t.Error("button short help is empty")
	}
	if len(DefaultNavigationBindings().FullHelp()) != 2 {
		t.Error("navigation full help should have two columns")
	}
}
