package catalog

import (
	"os"

	"github.com/andri/tdialog/pkg/dialog"
	"github.com/andri/tdialog/pkg/output"
	"github.com/andri/tdialog/pkg/stream"
	"github.com/andri/tdialog/pkg/text"
	"github.com/andri/tdialog/pkg/tui/components"
	"github.com/andri/tdialog/pkg/tui/shell"
	"github.com/andri/tdialog/pkg/tui/terminal"
)

// stdinIsTerminal reports whether standard input is a terminal.
var stdinIsTerminal = func() bool { return terminal.IsTerminal(os.Stdin) }

// streamText normalizes text read from a stream. Its line breaks are kept.
func streamText(cfg *dialog.Config, s string) string {
	opts := cfg.Text
	opts.CRWrap = true
	return text.Normalize(s, opts)
}

// gaugeDisplay routes the gauge dialect to a bar and the dialog prompt. An
// empty message shows the initial prompt again.
type gaugeDisplay struct {
	s       *shell.Shell
	cfg     *dialog.Config
	bar     *components.GaugeBar
	initial string
}

func (d *gaugeDisplay) SetPercent(p int) { d.bar.SetPercent(p) }

func (d *gaugeDisplay) SetMessage(msg string) {
	if msg == "" {
		d.s.SetPrompt(d.initial)
		return
	}
	d.s.SetPrompt(streamText(d.cfg, msg))
}

// gauge shows a bar driven by the gauge protocol on standard input.
func gauge(rt Runtime, cfg *dialog.Config, req dialog.Request, _ *output.Writer) dialog.Result {
	in, err := openInput(stdinPath, cfg.Stream.IgnoreEOF)
	if err != nil {
		rt.ShowError(cfg, err.Error())
		return dialog.ResultError
	}
	s := rt.NewShell(cfg, req.Text(), req)
	bar := components.NewGaugeBar(s.Theme(), s.Glyphs())
	initial := req.IntArg(0, 0)
	bar.SetPercent(initial)
	s.SetBody(bar)

	display := &gaugeDisplay{s: s, cfg: cfg, bar: bar, initial: s.Prompt()}
	st := attach(s, in, stream.NewGaugeDialect(display, initial), closeOnEnd(s, cfg))
	defer st.Close()
	return rt.Run(s)
}

// mixedDisplay routes the gauge dialect to a mixed gauge.
type mixedDisplay struct {
	cfg *dialog.Config
	m   *components.MixedGauge
}

func (d *mixedDisplay) SetPercent(p int) { d.m.Bar.SetPercent(p) }

func (d *mixedDisplay) SetMessage(msg string) { d.m.Text = streamText(d.cfg, msg) }

// mixedGauge lists named rows with their status above an overall bar. When
// standard input is a pipe it is read with the gauge protocol; otherwise
// the dialog is drawn once and returns, like an infobox.
func mixedGauge(rt Runtime, cfg *dialog.Config, req dialog.Request, _ *output.Writer) dialog.Result {
	args := req.Args()
	var rows []components.MixedRow
	for i := 1; i+1 < len(args); i += 2 {
		rows = append(rows, components.MixedRow{Name: args[i], Status: args[i+1]})
	}

	s := rt.NewShell(cfg, req.Text(), req)
	m := components.NewMixedGauge(s.Theme(), s.Glyphs(), rows)
	percent := req.IntArg(0, 0)
	m.Bar.SetPercent(percent)
	s.SetBody(m)

	if stdinIsTerminal() {
		s.SetInline(true)
		s.FinishAfter(0, dialog.ResultOK)
		return rt.Run(s)
	}
	in, err := openInput(stdinPath, cfg.Stream.IgnoreEOF)
	if err != nil {
		rt.ShowError(cfg, err.Error())
		return dialog.ResultError
	}
	st := attach(s, in, stream.NewGaugeDialect(&mixedDisplay{cfg: cfg, m: m}, percent), closeOnEnd(s, cfg))
	defer st.Close()
	return rt.Run(s)
}

// progressDisplay routes the progress dialect to a bar. A positive caption
// length replaces the prompt with the caption, a negative one appends it.
type progressDisplay struct {
	s             *shell.Shell
	bar           *components.GaugeBar
	initial       string
	appendCaption bool
}

func (d *progressDisplay) SetValue(v, maxValue int) { d.bar.SetValue(v, maxValue) }

func (d *progressDisplay) SetMessage(caption string) {
	if d.appendCaption && d.initial != "" {
		d.s.SetPrompt(d.initial + "\n" + caption)
		return
	}
	d.s.SetPrompt(caption)
}

// progress advances a bar for every byte or digit line read from standard
// input.
func progress(rt Runtime, cfg *dialog.Config, req dialog.Request, _ *output.Writer) dialog.Result {
	maxDots := req.IntArg(0, 100)
	msgLen := req.IntArg(1, 0)
	skip := req.IntArg(2, 0)

	in, err := openInput(stdinPath, cfg.Stream.IgnoreEOF)
	if err != nil {
		rt.ShowError(cfg, err.Error())
		return dialog.ResultError
	}
	s := rt.NewShell(cfg, req.Text(), req)
	bar := components.NewGaugeBar(s.Theme(), s.Glyphs())
	bar.SetValue(0, maxDots)
	s.SetBody(bar)

	display := &progressDisplay{s: s, bar: bar, initial: s.Prompt(), appendCaption: msgLen < 0}
	dialect := stream.NewProgressDialect(display, stream.ProgressOptions{
		Max:        maxDots,
		CaptionLen: abs(msgLen),
		SkipLen:    skip,
	})
	st := attach(s, in, dialect, closeOnEnd(s, cfg))
	defer st.Close()
	return rt.Run(s)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
