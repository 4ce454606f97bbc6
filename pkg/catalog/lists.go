package catalog

import (
	"strings"

	"github.com/andri/tdialog/internal/logger"
	"github.com/andri/tdialog/pkg/dialog"
	"github.com/andri/tdialog/pkg/output"
	"github.com/andri/tdialog/pkg/tui/components"
	"github.com/andri/tdialog/pkg/tui/shell"
)

// itemStatus reports whether a checklist status argument means selected.
func itemStatus(s string) bool {
	s = strings.TrimSpace(s)
	return strings.EqualFold(s, "on") || s == "1"
}

// listItems reads tag/item pairs, or tag/item/status triples when withStatus
// is set, from args.
func listItems(args []string, withStatus bool) []components.ListItem {
	step := 2
	if withStatus {
		step = 3
	}
	items := make([]components.ListItem, 0, len(args)/step)
	for i := 0; i+step <= len(args); i += step {
		it := components.ListItem{Tag: args[i], Text: args[i+1]}
		if withStatus {
			it.On = itemStatus(args[i+2])
		}
		items = append(items, it)
	}
	return items
}

func newList(s *shell.Shell, cfg *dialog.Config, req dialog.Request, mode components.ListMode) *components.List {
	args := req.Args()
	l := components.NewList(mode, listItems(args[1:], mode != components.ListMenu), s.Theme(), s.Glyphs())
	l.Height = max(req.IntArg(0, 0), 0)
	l.NoTags = cfg.List.NoTags
	l.NoItems = cfg.List.NoItems
	return l
}

func menu(rt Runtime, cfg *dialog.Config, req dialog.Request, out *output.Writer) dialog.Result {
	s := rt.NewShell(cfg, req.Text(), req)
	l := newList(s, cfg, req, components.ListMenu)
	s.SetBody(l)
	rt.AddButtons(s, cfg, shell.ButtonsOKCancel)

	r := rt.Run(s)
	cur, _ := l.Current()
	return emit(out, r, cur.Tag)
}

func checklist(rt Runtime, cfg *dialog.Config, req dialog.Request, out *output.Writer) dialog.Result {
	s := rt.NewShell(cfg, req.Text(), req)
	l := newList(s, cfg, req, components.ListCheck)
	s.SetBody(l)
	rt.AddButtons(s, cfg, shell.ButtonsOKCancel)

	r := rt.Run(s)
	if !r.EmitsOutput() {
		return r
	}
	if err := out.Values(l.Selected(), cfg.List); err != nil {
		logger.Error("write result", "error", err)
		return dialog.ResultError
	}
	return r
}

func radiolist(rt Runtime, cfg *dialog.Config, req dialog.Request, out *output.Writer) dialog.Result {
	s := rt.NewShell(cfg, req.Text(), req)
	l := newList(s, cfg, req, components.ListRadio)
	s.SetBody(l)
	rt.AddButtons(s, cfg, shell.ButtonsOKCancel)

	r := rt.Run(s)
	return emit(out, r, strings.Join(l.Selected(), ""))
}
