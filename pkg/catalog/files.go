package catalog

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/andri/tdialog/internal/logger"
	"github.com/andri/tdialog/pkg/dialog"
	"github.com/andri/tdialog/pkg/output"
	"github.com/andri/tdialog/pkg/tui/components"
	"github.com/andri/tdialog/pkg/tui/shell"
)

const parentEntry = "../"

// fileBody is a path field above a listing of the directory it names.
// Typing edits the path, arrows move in the listing and space copies the
// highlighted entry into the path.
type fileBody struct {
	ti       textinput.Model
	list     *components.List
	dirsOnly bool
	dir      string
	s        *shell.Shell
}

func newFileBody(s *shell.Shell, cfg *dialog.Config, path string, dirsOnly bool) *fileBody {
	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = cfg.MaxInput
	ti.SetValue(path)
	ti.Focus()
	b := &fileBody{ti: ti, dirsOnly: dirsOnly, s: s}
	b.reload()
	return b
}

// split returns the directory to list and the name prefix to filter by.
func split(path string) (dir, prefix string) {
	if path == "" {
		return ".", ""
	}
	if strings.HasSuffix(path, string(filepath.Separator)) {
		return path, ""
	}
	if fi, err := os.Stat(path); err == nil && fi.IsDir() {
		return path, ""
	}
	return filepath.Dir(path), filepath.Base(path)
}

// listDir returns the entries of dir starting with prefix, directories
// first and suffixed with a slash.
func listDir(dir, prefix string, dirsOnly bool) ([]components.ListItem, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var dirs, files []string
	for _, e := range entries {
		name := e.Name()
		if !strings.HasPrefix(name, prefix) {
			continue
		}
		isDir := e.IsDir()
		if e.Type()&os.ModeSymlink != 0 {
			if fi, err := os.Stat(filepath.Join(dir, name)); err == nil {
				isDir = fi.IsDir()
			}
		}
		switch {
		case isDir:
			dirs = append(dirs, name+"/")
		case !dirsOnly:
			files = append(files, name)
		}
	}
	sort.Strings(dirs)
	sort.Strings(files)

	var items []components.ListItem
	if filepath.Clean(dir) != string(filepath.Separator) {
		items = append(items, components.ListItem{Tag: parentEntry})
	}
	for _, name := range append(dirs, files...) {
		items = append(items, components.ListItem{Tag: name})
	}
	return items, nil
}

func (b *fileBody) reload() {
	dir, prefix := split(b.ti.Value())
	items, err := listDir(dir, prefix, b.dirsOnly)
	if err != nil {
		logger.Debug("list directory", "dir", dir, "error", err)
	}
	b.dir = dir
	b.list = components.NewList(components.ListMenu, items, b.s.Theme(), b.s.Glyphs())
	b.list.NoItems = true
}

// pick copies the highlighted entry into the path.
func (b *fileBody) pick() {
	it, ok := b.list.Current()
	if !ok {
		return
	}
	var next string
	switch {
	case it.Tag == parentEntry:
		next = filepath.Dir(filepath.Clean(b.dir))
		if next != string(filepath.Separator) {
			next += string(filepath.Separator)
		}
	default:
		next = filepath.Join(b.dir, it.Tag)
		if strings.HasSuffix(it.Tag, "/") {
			next += string(filepath.Separator)
		}
	}
	b.ti.SetValue(next)
	b.ti.CursorEnd()
	b.reload()
}

func (b *fileBody) Init() tea.Cmd { return textinput.Blink }

func (b *fileBody) Update(msg tea.Msg) (tea.Cmd, bool) {
	k, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		b.ti, cmd = b.ti.Update(msg)
		return cmd, false
	}
	if passThrough(k) {
		return nil, false
	}
	switch k.Type {
	case tea.KeyUp, tea.KeyDown, tea.KeyPgUp, tea.KeyPgDown:
		return b.list.Update(msg)
	case tea.KeySpace:
		b.pick()
		return nil, true
	}
	before := b.ti.Value()
	var cmd tea.Cmd
	b.ti, cmd = b.ti.Update(msg)
	if b.ti.Value() != before {
		b.reload()
	}
	return cmd, true
}

func (b *fileBody) Size() (int, int) {
	w, _ := b.list.Size()
	return max(w, 40), 12
}

func (b *fileBody) View(width, height int) string {
	b.ti.Width = max(width-1, 1)
	return b.ti.View() + "\n\n" + b.list.View(width, max(height-2, 1))
}

// Value returns the path as typed or picked.
func (b *fileBody) Value() string { return b.ti.Value() }

func pathSelect(rt Runtime, cfg *dialog.Config, req dialog.Request, out *output.Writer, dirsOnly bool) dialog.Result {
	s := rt.NewShell(cfg, "", req)
	body := newFileBody(s, cfg, req.Text(), dirsOnly)
	s.SetBody(body)
	rt.AddButtons(s, cfg, shell.ButtonsOKCancel)
	return emit(out, rt.Run(s), body.Value())
}

func fselect(rt Runtime, cfg *dialog.Config, req dialog.Request, out *output.Writer) dialog.Result {
	return pathSelect(rt, cfg, req, out, false)
}

func dselect(rt Runtime, cfg *dialog.Config, req dialog.Request, out *output.Writer) dialog.Result {
	return pathSelect(rt, cfg, req, out, true)
}
