package components

import (
	"strings"
	"unicode"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/andri/tdialog/pkg/dialog"
	"github.com/andri/tdialog/pkg/text"
	"github.com/andri/tdialog/pkg/tui/keys"
	"github.com/andri/tdialog/pkg/tui/styles"
)

// Button is one action button.
type Button struct {
	Label    string
	Result   dialog.Result
	Disabled bool
}

// ButtonPressedMsg is emitted when a button is activated.
type ButtonPressedMsg struct {
	Result dialog.Result
}

// ButtonRow is a horizontal row of buttons with one focused.
type ButtonRow struct {
	buttons  []Button
	focus    int
	bindings keys.ButtonBindings
	theme    styles.Theme
}

// NewButtonRow creates a row focused on the first enabled button.
func NewButtonRow(theme styles.Theme, buttons ...Button) *ButtonRow {
	b := &ButtonRow{
		bindings: keys.DefaultButtonBindings(),
		theme:    theme,
	}
	for _, btn := range buttons {
		b.Add(btn)
	}
	return b
}

// Add appends a button.
func (b *ButtonRow) Add(btn Button) {
	b.buttons = append(b.buttons, btn)
	if len(b.buttons) == 1 || b.buttons[b.focus].Disabled {
		b.focus = len(b.buttons) - 1
	}
}

// Len returns the number of buttons.
func (b *ButtonRow) Len() int { return len(b.buttons) }

// Buttons returns a copy of the buttons.
func (b *ButtonRow) Buttons() []Button { return append([]Button(nil), b.buttons...) }

// Focused returns the focused button.
func (b *ButtonRow) Focused() (Button, bool) {
	if len(b.buttons) == 0 {
		return Button{}, false
	}
	return b.buttons[b.focus], true
}

// FocusIndex returns the index of the focused button.
func (b *ButtonRow) FocusIndex() int { return b.focus }

// FocusResult moves focus to the button reporting r. It returns false when
// no enabled button has that result.
func (b *ButtonRow) FocusResult(r dialog.Result) bool {
	for i, btn := range b.buttons {
		if btn.Result == r && !btn.Disabled {
			b.focus = i
			return true
		}
	}
	return false
}

// SetDisabled greys out or re-enables the buttons reporting r.
func (b *ButtonRow) SetDisabled(r dialog.Result, disabled bool) {
	for i := range b.buttons {
		if b.buttons[i].Result == r {
			b.buttons[i].Disabled = disabled
		}
	}
	if len(b.buttons) > 0 && b.buttons[b.focus].Disabled {
		b.move(1)
	}
}

// Enabled reports whether an enabled button reports r.
func (b *ButtonRow) Enabled(r dialog.Result) bool {
	for _, btn := range b.buttons {
		if btn.Result == r && !btn.Disabled {
			return true
		}
	}
	return false
}

func (b *ButtonRow) move(delta int) {
	n := len(b.buttons)
	for i := 1; i <= n; i++ {
		next := ((b.focus+delta*i)%n + n) % n
		if !b.buttons[next].Disabled {
			b.focus = next
			return
		}
	}
}

// Update handles focus movement and activation. Hotkeys are the first
// letter of each label.
func (b *ButtonRow) Update(msg tea.Msg) (tea.Cmd, bool) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || len(b.buttons) == 0 {
		return nil, false
	}
	switch {
	case key.Matches(keyMsg, b.bindings.Next):
		b.move(1)
		return nil, true
	case key.Matches(keyMsg, b.bindings.Prev):
		b.move(-1)
		return nil, true
	case key.Matches(keyMsg, b.bindings.Press):
		btn := b.buttons[b.focus]
		if btn.Disabled {
			return nil, true
		}
		return pressed(btn.Result), true
	}
	if keyMsg.Type == tea.KeyRunes && len(keyMsg.Runes) == 1 {
		r := unicode.ToLower(keyMsg.Runes[0])
		for i, btn := range b.buttons {
			if btn.Disabled || btn.Label == "" {
				continue
			}
			if unicode.ToLower([]rune(btn.Label)[0]) == r {
				b.focus = i
				return pressed(btn.Result), true
			}
		}
	}
	return nil, false
}

func pressed(r dialog.Result) tea.Cmd {
	return func() tea.Msg { return ButtonPressedMsg{Result: r} }
}

// Width returns the width of the rendered row.
func (b *ButtonRow) Width() int {
	w := 0
	for i, btn := range b.buttons {
		if i > 0 {
			w += 3
		}
		w += text.DisplayWidth(btn.Label) + 4
	}
	return w
}

// View renders the row centered in width columns.
func (b *ButtonRow) View(width int) string {
	parts := make([]string, 0, len(b.buttons))
	for i, btn := range b.buttons {
		label := "< " + btn.Label + " >"
		switch {
		case btn.Disabled:
			parts = append(parts, b.theme.ButtonDisabled.Render(label))
		case i == b.focus:
			parts = append(parts, b.theme.ButtonActive.Render(label))
		default:
			parts = append(parts, b.theme.ButtonInactive.Render(label))
		}
	}
	row := strings.Join(parts, "   ")
	if pad := (width - b.Width()) / 2; pad > 0 {
		row = strings.Repeat(" ", pad) + row
	}
	return row
}
