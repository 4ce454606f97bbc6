package catalog

import (
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/andri/tdialog/pkg/dialog"
	"github.com/andri/tdialog/pkg/output"
	"github.com/andri/tdialog/pkg/text"
	"github.com/andri/tdialog/pkg/tui/shell"
)

// passThrough reports keys a text field leaves to the shell.
func passThrough(msg tea.KeyMsg) bool {
	switch msg.Type {
	case tea.KeyEnter, tea.KeyTab, tea.KeyShiftTab, tea.KeyEsc, tea.KeyCtrlC, tea.KeyF1:
		return true
	}
	return false
}

// inputBody is a single line text field.
type inputBody struct {
	ti textinput.Model
}

func newInputBody(cfg *dialog.Config, value string, password bool) *inputBody {
	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = cfg.MaxInput
	if password {
		ti.EchoMode = textinput.EchoNone
		if cfg.Insecure {
			ti.EchoMode = textinput.EchoPassword
			ti.EchoCharacter = '*'
		}
	}
	ti.SetValue(value)
	ti.Focus()
	return &inputBody{ti: ti}
}

func (b *inputBody) Init() tea.Cmd { return textinput.Blink }

func (b *inputBody) Update(msg tea.Msg) (tea.Cmd, bool) {
	if k, ok := msg.(tea.KeyMsg); ok && passThrough(k) {
		return nil, false
	}
	var cmd tea.Cmd
	b.ti, cmd = b.ti.Update(msg)
	_, isKey := msg.(tea.KeyMsg)
	return cmd, isKey
}

func (b *inputBody) View(width, _ int) string {
	b.ti.Width = max(width-1, 1)
	return b.ti.View()
}

func (b *inputBody) Size() (int, int) {
	return max(30, text.DisplayWidth(b.ti.Value())+2), 1
}

func (b *inputBody) Value() string { return b.ti.Value() }

func textInput(rt Runtime, cfg *dialog.Config, req dialog.Request, out *output.Writer, password bool) dialog.Result {
	s := rt.NewShell(cfg, req.Text(), req)
	body := newInputBody(cfg, req.Arg(0), password)
	s.SetBody(body)
	rt.AddButtons(s, cfg, shell.ButtonsOKCancel)
	return emit(out, rt.Run(s), body.Value())
}

func inputBox(rt Runtime, cfg *dialog.Config, req dialog.Request, out *output.Writer) dialog.Result {
	return textInput(rt, cfg, req, out, false)
}

func passwordBox(rt Runtime, cfg *dialog.Config, req dialog.Request, out *output.Writer) dialog.Result {
	return textInput(rt, cfg, req, out, true)
}

// editBody is a multi-line editor. It keeps Enter, so Tab moves to the buttons.
type editBody struct {
	ta    textarea.Model
	lines int
	width int
}

func newEditBody(content string) *editBody {
	ta := textarea.New()
	ta.ShowLineNumbers = false
	ta.Prompt = ""
	ta.CharLimit = 0
	ta.MaxHeight = 0
	ta.MaxWidth = 0
	ta.SetValue(content)
	w, h := text.Measure(content)
	return &editBody{ta: ta, lines: h, width: w}
}

func (b *editBody) SetFocused(focused bool) {
	if focused {
		b.ta.Focus()
	} else {
		b.ta.Blur()
	}
}

func (b *editBody) Init() tea.Cmd { return textarea.Blink }

func (b *editBody) Update(msg tea.Msg) (tea.Cmd, bool) {
	var cmd tea.Cmd
	b.ta, cmd = b.ta.Update(msg)
	_, isKey := msg.(tea.KeyMsg)
	return cmd, isKey && b.ta.Focused()
}

func (b *editBody) View(width, height int) string {
	b.ta.SetWidth(width)
	b.ta.SetHeight(height)
	return b.ta.View()
}

func (b *editBody) Size() (int, int) {
	return max(b.width+1, 40), max(b.lines, 5)
}

func (b *editBody) Value() string { return b.ta.Value() }

// editBox edits a copy of a file and writes the result; the file itself is
// not changed.
func editBox(rt Runtime, cfg *dialog.Config, req dialog.Request, out *output.Writer) dialog.Result {
	data, err := os.ReadFile(req.Text())
	if err != nil {
		rt.ShowError(cfg, err.Error())
		return dialog.ResultError
	}
	content := strings.TrimSuffix(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n")
	s := rt.NewShell(cfg, "", req)
	body := newEditBody(text.ExpandTabs(content, cfg.Text.TabLen))
	s.SetBody(body)
	rt.AddButtons(s, cfg, shell.ButtonsOKCancel)
	return emit(out, rt.Run(s), body.Value())
}
