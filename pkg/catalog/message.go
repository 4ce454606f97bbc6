package catalog

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/andri/tdialog/pkg/dialog"
	"github.com/andri/tdialog/pkg/output"
	"github.com/andri/tdialog/pkg/tui/components"
	"github.com/andri/tdialog/pkg/tui/shell"
)

func msgBox(rt Runtime, cfg *dialog.Config, req dialog.Request, _ *output.Writer) dialog.Result {
	s := rt.NewShell(cfg, req.Text(), req)
	rt.AddButtons(s, cfg, shell.ButtonsOK)
	return rt.Run(s)
}

func yesNo(rt Runtime, cfg *dialog.Config, req dialog.Request, _ *output.Writer) dialog.Result {
	s := rt.NewShell(cfg, req.Text(), req)
	rt.AddButtons(s, cfg, shell.ButtonsYesNo)
	return rt.Run(s)
}

// infoBox draws the message and returns at once, or after the optional
// delay in milliseconds. The message stays on screen.
func infoBox(rt Runtime, cfg *dialog.Config, req dialog.Request, _ *output.Writer) dialog.Result {
	s := rt.NewShell(cfg, req.Text(), req)
	s.SetInline(true)
	s.FinishAfter(time.Duration(max(req.IntArg(0, 0), 0))*time.Millisecond, dialog.ResultOK)
	return rt.Run(s)
}

const tagPause = "pause"

// pauseBody counts down whole seconds on a gauge.
type pauseBody struct {
	s     *shell.Shell
	bar   *components.GaugeBar
	total int
	left  int
}

func (p *pauseBody) Init() tea.Cmd {
	p.show()
	if p.left <= 0 {
		return p.s.Tick(0, tagPause)
	}
	return p.s.Tick(time.Second, tagPause)
}

func (p *pauseBody) show() {
	if p.total > 0 {
		p.bar.SetPercent(max(p.left, 0) * 100 / p.total)
	}
}

func (p *pauseBody) Update(msg tea.Msg) (tea.Cmd, bool) {
	tick, ok := msg.(shell.TickMsg)
	if !ok || tick.Tag != tagPause {
		return nil, false
	}
	p.left--
	p.show()
	if p.left <= 0 {
		p.s.Finish(dialog.ResultOK)
		return nil, true
	}
	return p.s.Tick(time.Second, tagPause), true
}

func (p *pauseBody) View(width, _ int) string {
	return p.bar.View(width, 1) + "\n" + fmt.Sprintf("%d s", max(p.left, 0))
}

func (p *pauseBody) Size() (int, int) { return 40, 2 }

// pause waits the given number of seconds. OK or Cancel end it early.
func pause(rt Runtime, cfg *dialog.Config, req dialog.Request, _ *output.Writer) dialog.Result {
	secs := max(req.IntArg(0, 0), 0)
	s := rt.NewShell(cfg, req.Text(), req)
	s.SetBody(&pauseBody{
		s:     s,
		bar:   components.NewGaugeBar(s.Theme(), s.Glyphs()),
		total: secs,
		left:  secs,
	})
	rt.AddButtons(s, cfg, shell.ButtonsOKCancel)
	return rt.Run(s)
}
