package options

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/andri/tdialog/pkg/dialog"
)

// ProcessOptions are accepted in any segment and affect the whole run.
type ProcessOptions struct {
	ConfigFile   string
	LogLevel     string
	LogFile      string
	LogFormat    string
	CreateRC     string
	PrintVersion bool
	PrintMaxSize bool
	Ignore       bool
}

const (
	optAndWidget = "and-widget"
	optAndDialog = "and-dialog"
	optBegin     = "begin"
	optIgnore    = "ignore"
)

// registry binds every long option of one segment to its destination.
type registry struct {
	flags *pflag.FlagSet
}

func newRegistry(cfg *dialog.Config, proc *ProcessOptions, codes map[dialog.Result]int) *registry {
	fs := pflag.NewFlagSet("tdialog", pflag.ContinueOnError)
	fs.SortFlags = false

	str := func(p *string, usage string, names ...string) {
		for _, n := range names {
			fs.StringVar(p, n, *p, usage)
		}
	}
	boolean := func(p *bool, usage string, names ...string) {
		for _, n := range names {
			fs.BoolVar(p, n, *p, usage)
		}
	}
	integer := func(p *int, usage string, names ...string) {
		for _, n := range names {
			fs.Var(lenientInt{p}, n, usage)
		}
	}
	switchVar := func(v pflag.Value, usage string, names ...string) {
		for _, n := range names {
			fs.Var(v, n, usage)
			fs.Lookup(n).NoOptDefVal = "true"
		}
	}

	b := &cfg.Buttons
	str(&cfg.Title, "title shown in the dialog frame", "title")
	str(&cfg.BackTitle, "title shown on the backdrop", "backtitle")
	str(&b.OKLabel, "label of the OK button", "ok-label")
	str(&b.CancelLabel, "label of the Cancel button", "cancel-label")
	str(&b.YesLabel, "label of the Yes button", "yes-label")
	str(&b.NoLabel, "label of the No button", "no-label")
	str(&b.ExtraLabel, "label of the Extra button", "extra-label")
	str(&b.HelpLabel, "label of the Help button", "help-label")
	str(&b.ExitLabel, "label of the Exit button", "exit-label")
	for n := 1; n <= dialog.ButtonSlots; n++ {
		str(&b.Left[n-1], fmt.Sprintf("label of left button slot %d", n), fmt.Sprintf("left%d-button", n))
		str(&b.Right[n-1], fmt.Sprintf("label of right button slot %d", n), fmt.Sprintf("right%d-button", n))
	}
	boolean(&b.NoOK, "hide the OK button", "no-ok", "nook")
	boolean(&b.NoCancel, "hide the Cancel button", "no-cancel", "nocancel")
	boolean(&b.ExtraButton, "show the Extra button", "extra-button")
	boolean(&b.HelpButton, "show the Help button", "help-button")
	fs.Var(defaultButton{&b.Default}, "default-button", "button focused initially (ok, cancel, extra, help)")
	switchVar(&setTo[dialog.DefaultButton]{p: &b.Default, val: dialog.DefaultButtonCancel}, "focus No/Cancel initially", "defaultno")

	boolean(&cfg.Geometry.Fullscreen, "use the whole screen", "fullscreen")

	boolean(&cfg.EscapeEnabled, "allow Esc to close the dialog", "escape")
	switchVar(inverted{&cfg.EscapeEnabled}, "ignore the Esc key", "no-escape")
	str(&cfg.HelpFile, "file shown on F1", "help-file")
	str(&cfg.HelpText, "text shown on F1", "help-text")

	integer(&cfg.SleepMS, "milliseconds to wait after the dialog closes", "sleep")
	integer(&cfg.TimeoutMS, "milliseconds of inactivity before TIMEOUT", "timeout")

	boolean(&cfg.NoShadow, "draw no shadow", "no-shadow")
	switchVar(inverted{&cfg.NoShadow}, "draw a shadow", "shadow")

	boolean(&cfg.Text.CRWrap, "keep newlines of the text", "cr-wrap")
	boolean(&cfg.Text.NoCollapse, "keep tabs and repeated spaces", "no-collapse")
	boolean(&cfg.Text.Trim, "trim indentation and blank lines", "trim")
	integer(&cfg.Text.TabLen, "spaces per tab", "tab-len")

	boolean(&cfg.List.NoTags, "hide tags in lists", "no-tags")
	boolean(&cfg.List.NoItems, "lists have tags only", "no-items")
	boolean(&cfg.List.SeparateOutput, "write one checklist tag per line", "separate-output")
	boolean(&cfg.List.SingleQuoted, "quote output with single quotes", "single-quoted")
	str(&cfg.List.OutputSeparator, "separator between output values", "output-separator", "separator")

	boolean(&cfg.Stream.IgnoreEOF, "keep the dialog open at end of input", "ignore-eof")
	boolean(&cfg.Stream.TimeStamp, "prefix log lines with the time", "time-stamp")
	boolean(&cfg.Stream.DateStamp, "prefix log lines with date and time", "date-stamp")
	boolean(&cfg.Stream.Reverse, "show newest log lines first", "reverse")
	integer(&cfg.Stream.MaxLines, "log lines kept in memory", "max-lines")

	boolean(&cfg.Insecure, "echo asterisks in password fields", "insecure")
	integer(&cfg.MaxInput, "maximum input length", "max-input")
	boolean(&cfg.PrintSize, "write the dialog size to the output", "print-size")

	switchVar(&setTo[int]{p: &cfg.OutputFD, val: 1}, "write output to stdout", "stdout")
	switchVar(&setTo[int]{p: &cfg.OutputFD, val: 2}, "write output to stderr", "stderr")
	integer(&cfg.OutputFD, "write output to this file descriptor", "output-fd")

	str(&proc.ConfigFile, "rc file to load", "config")
	str(&proc.LogLevel, "log level (debug, info, warn, error)", "log-level")
	str(&proc.LogFile, "append logs to this file", "log-file")
	str(&proc.LogFormat, "log format (text, json)", "log-format")
	str(&proc.CreateRC, "write the effective rc file and exit", "create-rc")
	boolean(&proc.PrintVersion, "print the version and exit", "print-version", "version")
	boolean(&proc.PrintMaxSize, "print the maximum dialog size and exit", "print-maxsize")
	boolean(&proc.Ignore, "ignore unknown options that follow", optIgnore)

	for _, r := range dialog.AllResults() {
		fs.Var(exitCode{codes: codes, result: r}, r.String()+"-exit-code", fmt.Sprintf("exit code for %s", r))
	}

	return &registry{flags: fs}
}

// lookup returns the flag registered under name.
func (r *registry) lookup(name string) *pflag.Flag {
	return r.flags.Lookup(name)
}

// known reports whether name is an option, a dialog selector or a parser
// directive.
func (r *registry) known(name string) bool {
	if r.lookup(name) != nil {
		return true
	}
	if _, ok := dialog.KindByOption(name); ok {
		return true
	}
	switch name {
	case optAndWidget, optAndDialog, optBegin:
		return true
	}
	return false
}

// Usage renders the option list for help output.
func Usage() string {
	cfg := dialog.DefaultConfig()
	r := newRegistry(&cfg, &ProcessOptions{}, map[dialog.Result]int{})
	r.flags.String(optBegin, "", "top-left corner of the dialog: --begin <y> <x>")
	r.flags.Bool(optAndWidget, false, "start the next dialog")
	return r.flags.FlagUsages()
}
