// Package commands provides the tdialog root command. The command line is
// not parsed by cobra: every token goes to the dialog option parser, which
// splits it into --and-widget segments.
package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/andri/tdialog/internal/logger"
	"github.com/andri/tdialog/pkg/catalog"
	"github.com/andri/tdialog/pkg/config"
	"github.com/andri/tdialog/pkg/dialog"
	"github.com/andri/tdialog/pkg/options"
	"github.com/andri/tdialog/pkg/output"
	"github.com/andri/tdialog/pkg/tui/shell"
	"github.com/andri/tdialog/pkg/tui/styles"
	"github.com/andri/tdialog/pkg/tui/terminal"
)

// version information set by build flags
var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

// SetVersionInfo sets the version information for the CLI
func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	buildDate = d
}

// App holds the collaborators of one tdialog run.
type App struct {
	// Stdout receives --help output.
	Stdout io.Writer
	// Stderr receives errors that happen before any dialog can be shown.
	Stderr io.Writer

	// OpenOutput returns the output channel for a descriptor.
	OpenOutput func(fd int) (*output.Writer, error)
	// NewRuntime creates the runtime builders draw with.
	NewRuntime func(out *output.Writer, theme styles.Theme, glyphs terminal.Glyphs) catalog.Runtime
	// ScreenSize reports the terminal size for --print-maxsize.
	ScreenSize func() (rows, cols int)

	// Config is the loaded rc configuration.
	Config config.Config

	exitCode int
}

// NewApp returns an App wired to the process's terminal and descriptors.
func NewApp() *App {
	return &App{
		Stdout:     os.Stdout,
		Stderr:     os.Stderr,
		OpenOutput: output.Open,
		NewRuntime: func(out *output.Writer, theme styles.Theme, glyphs terminal.Glyphs) catalog.Runtime {
			return shell.NewRuntime(out, theme, glyphs)
		},
		ScreenSize: func() (int, int) { return terminal.ScreenSize(os.Stdout) },
	}
}

// ExitCode returns the exit code of the last Execute.
func (a *App) ExitCode() int { return a.exitCode }

// NewRootCmd creates the root cobra command
func NewRootCmd(app *App) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "tdialog [options] --<kind> <text> <height> <width> [args...] [--and-widget ...]",
		Short: "Display dialog boxes from shell scripts",
		Long: `tdialog - dialog boxes for shell scripts

tdialog shows a dialog box, writes the user's answer to the output
stream (standard error unless --stdout or --output-fd is given) and
exits with a code naming the pressed button. Dialogs are chained with
--and-widget; the chain stops at the first dialog that is not answered
with OK or Extra.

Dialog kinds:
  ` + kindList(),
		Args:               cobra.ArbitraryArgs,
		DisableFlagParsing: true,
		SilenceUsage:       true,
		SilenceErrors:      true,
		CompletionOptions:  cobra.CompletionOptions{DisableDefaultCmd: true},
		RunE: func(cmd *cobra.Command, args []string) error {
			if wantsHelp(args) {
				_, _ = fmt.Fprintf(app.Stdout, "%s\n\nUsage:\n  %s\n\nOptions:\n%s", cmd.Long, cmd.Use, options.Usage())
				app.exitCode = dialog.DefaultExitCodes[dialog.ResultOK]
				return nil
			}
			ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()
			code, err := app.Run(ctx, args)
			app.exitCode = code
			return err
		},
	}
	return rootCmd
}

func kindList() string {
	names := make([]string, 0, len(dialog.Kinds()))
	for _, k := range dialog.Kinds() {
		names = append(names, "--"+k.String())
	}
	return strings.Join(names, " ")
}

func wantsHelp(args []string) bool {
	if len(args) == 0 {
		return false
	}
	return args[0] == "--help" || args[0] == "-h"
}

// Run executes the command line and returns the process exit code.
func (a *App) Run(ctx context.Context, args []string) (int, error) {
	failed := dialog.DefaultExitCodes[dialog.ResultError]

	proc := options.ScanProcess(args)
	result, err := config.LoadConfig(config.LoadOptions{
		ConfigFile: proc.ConfigFile,
		Flags:      buildFlagSet(proc),
	})
	if err != nil {
		return failed, fmt.Errorf("failed to load configuration: %w", err)
	}
	a.Config = result.Config

	log, err := initLogger(a.Config.Logging)
	if err != nil {
		return failed, fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = log.Close() }()
	if result.ConfigFileUsed != "" {
		logger.Debug("loaded configuration", "file", result.ConfigFileUsed)
	}
	for _, w := range result.Validation.Warnings {
		logger.Warn("configuration", "warning", w)
	}

	rcCodes := dialog.NewExitCodeTable(a.Config.ExitCodes.Map())
	base := dialog.DefaultConfig()
	a.Config.Dialog.Apply(&base)
	segments, err := options.NewParser(base).ParseAll(args)
	if err != nil {
		return rcCodes.Code(dialog.ResultError), err
	}
	codes := dialog.NewExitCodeTable(a.Config.ExitCodes.Map(), options.MergeExitCodes(segments))
	logger.Debug("exit codes", "table", codes.String())

	d := &dispatcher{app: a, ctx: ctx, outputs: make(map[int]*output.Writer)}
	defer d.close()
	r, err := d.run(options.MergeProcess(segments), segments)
	return codes.Code(r), err
}

// buildFlagSet exposes the process-level options to the config loader
func buildFlagSet(proc options.ProcessOptions) *pflag.FlagSet {
	flags := pflag.NewFlagSet("config", pflag.ContinueOnError)
	set := func(name, value string) {
		flags.String(name, "", "")
		if value != "" {
			_ = flags.Set(name, value)
		}
	}
	set("log-level", proc.LogLevel)
	set("log-file", proc.LogFile)
	set("log-format", proc.LogFormat)
	return flags
}

// initLogger installs the default logger. Without a log file nothing is
// logged, since standard error carries dialog output.
func initLogger(cfg config.LoggingConfig) (*logger.Logger, error) {
	level := logger.ParseLevel(cfg.Level)
	format := logger.FormatText
	if cfg.Format == "json" {
		format = logger.FormatJSON
	}

	var log *logger.Logger
	if cfg.File != "" {
		l, err := logger.OpenFile(cfg.File, level, format)
		if err != nil {
			return nil, err
		}
		log = l
	} else {
		log = logger.New(logger.Config{Level: level, Format: format})
	}
	logger.SetDefault(log)
	return log, nil
}

// dispatcher runs the segments of one command line.
type dispatcher struct {
	app     *App
	ctx     context.Context
	outputs map[int]*output.Writer
	theme   *styles.Theme
	glyphs  terminal.Glyphs
}

func (d *dispatcher) output(fd int) (*output.Writer, error) {
	if w, ok := d.outputs[fd]; ok {
		return w, nil
	}
	w, err := d.app.OpenOutput(fd)
	if err != nil {
		return nil, err
	}
	d.outputs[fd] = w
	return w, nil
}

func (d *dispatcher) close() {
	for fd, w := range d.outputs {
		if err := w.Close(); err != nil {
			logger.Warn("close output", "fd", fd, "error", err)
		}
	}
}

// look returns the theme and glyphs, configuring lipgloss on first use.
func (d *dispatcher) look() (styles.Theme, terminal.Glyphs) {
	if d.theme == nil {
		caps := terminal.DetectCapabilities()
		terminal.ConfigureLipgloss(caps, d.app.Config.Theme.UseColors)
		theme := styles.NewTheme(d.app.Config.Theme)
		d.theme, d.glyphs = &theme, terminal.GetGlyphs(caps)
	}
	return *d.theme, d.glyphs
}

// run handles the process-level requests and then the dialogs in order.
func (d *dispatcher) run(proc options.ProcessOptions, segments []options.Segment) (dialog.Result, error) {
	fd := 2
	if len(segments) > 0 {
		fd = segments[0].Config.OutputFD
	}
	handled := false

	if proc.CreateRC != "" {
		if err := config.SaveRC(proc.CreateRC, d.app.Config); err != nil {
			return dialog.ResultError, err
		}
		logger.Info("wrote rc file", "path", proc.CreateRC)
		return dialog.ResultOK, nil
	}
	if proc.PrintVersion {
		if err := d.print(fd, fmt.Sprintf("Version: %s (commit %s, built %s)", version, commit, buildDate)); err != nil {
			return dialog.ResultError, err
		}
		handled = true
	}
	if proc.PrintMaxSize {
		rows, cols := terminal.MaxDialogSize(d.app.ScreenSize())
		if err := d.print(fd, fmt.Sprintf("MaxSize: %d, %d", rows, cols)); err != nil {
			return dialog.ResultError, err
		}
		handled = true
	}

	r := dialog.ResultOK
	ran := false
	for i := range segments {
		seg := &segments[i]
		if seg.Kind == dialog.KindNone {
			continue
		}
		if ran {
			if err := d.pause(segments[i-1].Config.Sleep()); err != nil {
				return dialog.ResultError, nil
			}
		}
		ran = true
		r = d.runDialog(seg)
		logger.Debug("dialog finished", "kind", seg.Kind.String(), "result", r.String())
		if !r.Continues() {
			break
		}
	}
	if !ran && !handled {
		return dialog.ResultError, fmt.Errorf("no dialog given; see --help")
	}
	return r, nil
}

func (d *dispatcher) print(fd int, line string) error {
	out, err := d.output(fd)
	if err != nil {
		return err
	}
	return out.Value(line)
}

// pause waits between chained dialogs. An interrupt ends the chain.
func (d *dispatcher) pause(wait time.Duration) error {
	if wait <= 0 {
		return d.ctx.Err()
	}
	t := time.NewTimer(wait)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-d.ctx.Done():
		return d.ctx.Err()
	}
}

func (d *dispatcher) runDialog(seg *options.Segment) dialog.Result {
	theme, glyphs := d.look()
	out, err := d.output(seg.Config.OutputFD)
	if err != nil {
		logger.Error("open output", "fd", seg.Config.OutputFD, "error", err)
		_, _ = fmt.Fprintf(d.app.Stderr, "Error: %v\n", err)
		return dialog.ResultError
	}
	rt := d.app.NewRuntime(out, theme, glyphs)
	req, err := seg.Request()
	if err != nil {
		rt.ShowError(&seg.Config, err.Error())
		return dialog.ResultError
	}
	return catalog.Build(rt, &seg.Config, req, out)
}

// Execute runs the root command and returns the process exit code
func Execute() int {
	app := NewApp()
	cmd := NewRootCmd(app)
	if err := cmd.Execute(); err != nil {
		_, _ = fmt.Fprintf(app.Stderr, "Error: %v\n", err)
		if app.exitCode == 0 {
			return dialog.DefaultExitCodes[dialog.ResultError]
		}
	}
	return app.exitCode
}
