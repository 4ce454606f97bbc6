package shell

import (
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/andri/tdialog/internal/logger"
	"github.com/andri/tdialog/pkg/dialog"
	"github.com/andri/tdialog/pkg/output"
	"github.com/andri/tdialog/pkg/text"
	"github.com/andri/tdialog/pkg/tui/components"
	"github.com/andri/tdialog/pkg/tui/styles"
	"github.com/andri/tdialog/pkg/tui/terminal"
)

// ButtonSet selects the buttons a dialog shows.
type ButtonSet int

const (
	// ButtonsNone shows no buttons.
	ButtonsNone ButtonSet = iota
	// ButtonsOK shows OK.
	ButtonsOK
	// ButtonsOKCancel shows OK and Cancel.
	ButtonsOKCancel
	// ButtonsYesNo shows Yes and No.
	ButtonsYesNo
	// ButtonsExit shows a single Exit button.
	ButtonsExit
)

// AddButtons fills the button row of s in this order: left slots, the
// affirmative button, extra, the negative button, help and right slots.
// It honors --no-ok, --no-cancel, --extra-button, --help-button, the labels
// and the default button.
func AddButtons(s *Shell, cfg *dialog.Config, set ButtonSet) {
	if set == ButtonsNone {
		return
	}
	b := cfg.Buttons
	row := s.Buttons()

	for n, label := range b.Left {
		if label != "" {
			row.Add(components.Button{Label: label, Result: dialog.LeftSlot(n + 1)})
		}
	}
	switch set {
	case ButtonsYesNo:
		row.Add(components.Button{Label: b.YesLabel, Result: dialog.ResultOK})
	case ButtonsExit:
		row.Add(components.Button{Label: b.ExitLabel, Result: dialog.ResultOK})
	default:
		if !b.NoOK {
			row.Add(components.Button{Label: b.OKLabel, Result: dialog.ResultOK})
		}
	}
	if b.ExtraButton {
		row.Add(components.Button{Label: b.ExtraLabel, Result: dialog.ResultExtra})
	}
	switch set {
	case ButtonsYesNo:
		row.Add(components.Button{Label: b.NoLabel, Result: dialog.ResultCancel})
	case ButtonsOKCancel:
		if !b.NoCancel {
			row.Add(components.Button{Label: b.CancelLabel, Result: dialog.ResultCancel})
		}
	}
	if b.HelpButton {
		row.Add(components.Button{Label: b.HelpLabel, Result: dialog.ResultHelp})
	}
	for n, label := range b.Right {
		if label != "" {
			row.Add(components.Button{Label: label, Result: dialog.RightSlot(n + 1)})
		}
	}

	switch b.Default {
	case dialog.DefaultButtonCancel:
		row.FocusResult(dialog.ResultCancel)
	case dialog.DefaultButtonExtra:
		row.FocusResult(dialog.ResultExtra)
	case dialog.DefaultButtonHelp:
		row.FocusResult(dialog.ResultHelp)
	default:
		row.FocusResult(dialog.ResultOK)
	}
}

// Runtime creates and runs dialogs on the terminal.
type Runtime struct {
	// Out is the output channel of the current dialog.
	Out *output.Writer
	// Theme styles every dialog.
	Theme styles.Theme
	// Glyphs are the symbols the terminal can show.
	Glyphs terminal.Glyphs
	// Stderr receives errors that cannot be shown in a dialog.
	Stderr io.Writer

	log *logger.Logger
}

// NewRuntime creates a runtime writing results to out.
func NewRuntime(out *output.Writer, theme styles.Theme, glyphs terminal.Glyphs) *Runtime {
	return &Runtime{
		Out:    out,
		Theme:  theme,
		Glyphs: glyphs,
		Stderr: os.Stderr,
		log:    logger.With("component", "runtime"),
	}
}

// NewShell creates a dialog with the normalized prompt.
func (rt *Runtime) NewShell(cfg *dialog.Config, prompt string, req dialog.Request) *Shell {
	s := New(cfg, text.Normalize(prompt, cfg.Text), req, rt.Theme)
	s.SetGlyphs(rt.Glyphs)
	return s
}

// AddButtons fills the button row of s.
func (rt *Runtime) AddButtons(s *Shell, cfg *dialog.Config, set ButtonSet) {
	AddButtons(s, cfg, set)
}

// Run shows the dialog until it ends and returns its result. The shell is
// left intact so its widgets can be read afterwards.
func (rt *Runtime) Run(s *Shell) dialog.Result {
	opts := []tea.ProgramOption{}
	if !s.Inline() {
		opts = append(opts, tea.WithAltScreen())
	}
	if s.TTYInput() || !terminal.IsTerminal(os.Stdin) {
		opts = append(opts, tea.WithInputTTY())
	}

	screen := os.Stdout
	if s.Config().OutputFD == 1 || !terminal.IsTerminal(os.Stdout) {
		tty, err := terminal.OpenTTY()
		if err != nil {
			rt.log.Error("no terminal to draw on", "error", err)
			s.Finish(dialog.ResultError)
			return dialog.ResultError
		}
		defer func() { _ = tty.Close() }()
		opts = append(opts, tea.WithOutput(tty))
		screen = tty
	}
	rows, cols := terminal.ScreenSize(screen)
	s.SetScreen(cols, rows)

	if _, err := tea.NewProgram(s, opts...).Run(); err != nil {
		rt.log.Error("dialog failed", "error", err)
		s.Finish(dialog.ResultError)
		return dialog.ResultError
	}
	// a program stopped from outside never pressed a button
	s.Finish(dialog.ResultError)
	rt.printSize(s)
	return s.Result()
}

func (rt *Runtime) printSize(s *Shell) {
	if !s.Config().PrintSize || rt.Out == nil {
		return
	}
	rows, cols := s.DialogSize()
	if err := rt.Out.Size(rows, cols); err != nil {
		rt.log.Warn("print size", "error", err)
	}
}

// ErrorDialog builds the message box used to report errors.
func (rt *Runtime) ErrorDialog(cfg *dialog.Config, msg string) *Shell {
	ecfg := *cfg
	ecfg.Title = "Error"
	ecfg.Buttons.NoOK = false
	ecfg.Buttons.ExtraButton = false
	ecfg.Buttons.HelpButton = false
	ecfg.Buttons.Left = [dialog.ButtonSlots]string{}
	ecfg.Buttons.Right = [dialog.ButtonSlots]string{}
	ecfg.Buttons.Default = dialog.DefaultButtonOK
	ecfg.TimeoutMS = 0
	ecfg.PrintSize = false
	ecfg.Text = dialog.TextOptions{CRWrap: true, NoCollapse: true, TabLen: cfg.Text.TabLen}

	s := rt.NewShell(&ecfg, msg, dialog.Request{})
	s.SetErrorFrame(true)
	AddButtons(s, &ecfg, ButtonsOK)
	return s
}

// ShowError reports msg in an error dialog, falling back to Stderr when no
// terminal is available.
func (rt *Runtime) ShowError(cfg *dialog.Config, msg string) {
	rt.log.Warn("dialog error", "message", msg)
	if rt.Run(rt.ErrorDialog(cfg, msg)) == dialog.ResultError {
		_, _ = fmt.Fprintf(rt.Stderr, "Error: %s\n", msg)
	}
}
