package catalog

import (
	"os"
	"strings"

	"github.com/andri/tdialog/pkg/dialog"
	"github.com/andri/tdialog/pkg/output"
	"github.com/andri/tdialog/pkg/stream"
	"github.com/andri/tdialog/pkg/text"
	"github.com/andri/tdialog/pkg/tui/components"
	"github.com/andri/tdialog/pkg/tui/shell"
)

// minSized raises the preferred size of a body whose content arrives later.
type minSized struct {
	shell.Body
	w, h int
}

func (m minSized) Size() (int, int) {
	w, h := m.Body.Size()
	return max(w, m.w), max(h, m.h)
}

func textBox(rt Runtime, cfg *dialog.Config, req dialog.Request, _ *output.Writer) dialog.Result {
	data, err := os.ReadFile(req.Text())
	if err != nil {
		rt.ShowError(cfg, err.Error())
		return dialog.ResultError
	}
	v := components.NewLogView(0, false)
	v.SetText(text.ExpandTabs(strings.ReplaceAll(string(data), "\r\n", "\n"), cfg.Text.TabLen))

	s := rt.NewShell(cfg, "", req)
	s.SetBody(v)
	rt.AddButtons(s, cfg, shell.ButtonsExit)
	return rt.Run(s)
}

// tailBox follows a file as it grows; pipes are shown until they close.
func tailBox(rt Runtime, cfg *dialog.Config, req dialog.Request, _ *output.Writer) dialog.Result {
	in, err := openInput(req.Text(), true)
	if err != nil {
		rt.ShowError(cfg, err.Error())
		return dialog.ResultError
	}
	v := components.NewLogView(cfg.Stream.MaxLines, false)
	s := rt.NewShell(cfg, "", req)
	s.SetBody(minSized{Body: v, w: 60, h: 10})
	st := attach(s, in, stream.NewLineDialect(v, stream.StampNone), nil)
	defer st.Close()

	rt.AddButtons(s, cfg, shell.ButtonsExit)
	return rt.Run(s)
}

func stampMode(opts dialog.StreamOptions) stream.StampMode {
	switch {
	case opts.DateStamp:
		return stream.StampDate
	case opts.TimeStamp:
		return stream.StampTime
	default:
		return stream.StampNone
	}
}

// logBox shows lines as they arrive. OK is enabled once the stream ends.
func logBox(rt Runtime, cfg *dialog.Config, req dialog.Request, _ *output.Writer) dialog.Result {
	in, err := openInput(req.Text(), cfg.Stream.IgnoreEOF)
	if err != nil {
		rt.ShowError(cfg, err.Error())
		return dialog.ResultError
	}
	v := components.NewLogView(cfg.Stream.MaxLines, cfg.Stream.Reverse)
	s := rt.NewShell(cfg, req.Text(), req)
	s.SetBody(minSized{Body: v, w: 60, h: 10})
	rt.AddButtons(s, cfg, shell.ButtonsOK)
	s.Buttons().SetDisabled(dialog.ResultOK, true)

	st := attach(s, in, stream.NewLineDialect(v, stampMode(cfg.Stream)), func(stream.Reason) {
		s.Buttons().SetDisabled(dialog.ResultOK, false)
		s.Buttons().FocusResult(dialog.ResultOK)
	})
	defer st.Close()
	return rt.Run(s)
}
