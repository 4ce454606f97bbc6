// Package catalog holds one builder per dialog kind. A builder assembles
// the dialog from the shell widgets, runs it and writes its value to the
// output channel when the result is OK or EXTRA.
package catalog

import (
	"fmt"

	"github.com/andri/tdialog/internal/logger"
	"github.com/andri/tdialog/pkg/dialog"
	"github.com/andri/tdialog/pkg/output"
	"github.com/andri/tdialog/pkg/tui/shell"
)

// Runtime is what builders need from the terminal runtime.
type Runtime interface {
	// NewShell creates a themed, sized dialog showing the normalized prompt.
	NewShell(cfg *dialog.Config, prompt string, req dialog.Request) *shell.Shell
	// AddButtons adds the standard action buttons.
	AddButtons(s *shell.Shell, cfg *dialog.Config, set shell.ButtonSet)
	// Run shows the dialog until it ends.
	Run(s *shell.Shell) dialog.Result
	// ShowError reports a failure in a message box.
	ShowError(cfg *dialog.Config, msg string)
}

// Builder builds, runs and reports one dialog.
type Builder func(rt Runtime, cfg *dialog.Config, req dialog.Request, out *output.Writer) dialog.Result

var builders = map[dialog.Kind]Builder{
	dialog.KindMsgBox:      msgBox,
	dialog.KindYesNo:       yesNo,
	dialog.KindInfoBox:     infoBox,
	dialog.KindInputBox:    inputBox,
	dialog.KindPasswordBox: passwordBox,
	dialog.KindTextBox:     textBox,
	dialog.KindTailBox:     tailBox,
	dialog.KindLogBox:      logBox,
	dialog.KindEditBox:     editBox,
	dialog.KindMenu:        menu,
	dialog.KindChecklist:   checklist,
	dialog.KindRadiolist:   radiolist,
	dialog.KindGauge:       gauge,
	dialog.KindMixedGauge:  mixedGauge,
	dialog.KindProgress:    progress,
	dialog.KindCalendar:    calendar,
	dialog.KindTimeBox:     timeBox,
	dialog.KindRangeBox:    rangeBox,
	dialog.KindPause:       pause,
	dialog.KindFSelect:     fselect,
	dialog.KindDSelect:     dselect,
}

// Lookup returns the builder for a kind.
func Lookup(k dialog.Kind) (Builder, bool) {
	b, ok := builders[k]
	return b, ok
}

// Build checks the positional arguments against the kind's arity and runs
// its builder. A usage error is reported through the runtime and yields
// ERROR without any output.
func Build(rt Runtime, cfg *dialog.Config, req dialog.Request, out *output.Writer) dialog.Result {
	b, ok := Lookup(req.Kind())
	if !ok {
		rt.ShowError(cfg, fmt.Sprintf("no builder for --%s", req.Kind()))
		return dialog.ResultError
	}
	if err := dialog.CheckArity(req.Kind(), req.Args()); err != nil {
		return usageError(rt, cfg, err)
	}
	logger.Debug("building dialog", "kind", req.Kind().String(), "rows", req.Rows(), "cols", req.Cols(), "args", req.NArgs())
	return b(rt, cfg, req, out)
}

func usageError(rt Runtime, cfg *dialog.Config, err error) dialog.Result {
	logger.Warn("usage error", "error", err)
	rt.ShowError(cfg, err.Error())
	return dialog.ResultError
}

// emit writes value when the result carries output.
func emit(out *output.Writer, r dialog.Result, value string) dialog.Result {
	if !r.EmitsOutput() {
		return r
	}
	if err := out.Value(value); err != nil {
		logger.Error("write result", "error", err)
		return dialog.ResultError
	}
	return r
}
