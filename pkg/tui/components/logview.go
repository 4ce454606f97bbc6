package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/andri/tdialog/pkg/text"
)

// LogView is a scrolling text pane. It backs textbox, tailbox and logbox
// and receives streamed lines through AppendLine.
type LogView struct {
	lines    []string
	maxLines int
	reverse  bool
	follow   bool
	vp       viewport.Model
	top      key.Binding
	bottom   key.Binding
}

// NewLogView creates a pane that keeps at most maxLines lines (0 = no
// limit). With reverse the newest line is shown first.
func NewLogView(maxLines int, reverse bool) *LogView {
	return &LogView{
		maxLines: maxLines,
		reverse:  reverse,
		follow:   true,
		vp:       viewport.New(0, 0),
		top:      key.NewBinding(key.WithKeys("home", "g")),
		bottom:   key.NewBinding(key.WithKeys("end", "G")),
	}
}

// SetText replaces the content.
func (l *LogView) SetText(s string) {
	l.lines = strings.Split(strings.TrimSuffix(s, "\n"), "\n")
	l.trim()
	l.follow = false
	l.refresh()
	l.vp.GotoTop()
}

// AppendLine adds one line, dropping the oldest beyond the limit. The view
// stays pinned to the newest line unless the user scrolled away.
func (l *LogView) AppendLine(line string) {
	l.lines = append(l.lines, line)
	l.trim()
	l.refresh()
}

// Lines returns the retained lines, oldest first.
func (l *LogView) Lines() []string {
	return append([]string(nil), l.lines...)
}

// Text returns the retained lines joined by newlines.
func (l *LogView) Text() string {
	return strings.Join(l.lines, "\n")
}

func (l *LogView) trim() {
	if l.maxLines > 0 && len(l.lines) > l.maxLines {
		l.lines = append([]string(nil), l.lines[len(l.lines)-l.maxLines:]...)
	}
}

func (l *LogView) ordered() []string {
	if !l.reverse {
		return l.lines
	}
	out := make([]string, len(l.lines))
	for i, s := range l.lines {
		out[len(out)-1-i] = s
	}
	return out
}

func (l *LogView) refresh() {
	l.vp.SetContent(strings.Join(l.ordered(), "\n"))
	if !l.follow {
		return
	}
	if l.reverse {
		l.vp.GotoTop()
	} else {
		l.vp.GotoBottom()
	}
}

// Update scrolls the pane.
func (l *LogView) Update(msg tea.Msg) (tea.Cmd, bool) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil, false
	}
	km := l.vp.KeyMap
	switch {
	case key.Matches(keyMsg, l.top):
		l.vp.GotoTop()
	case key.Matches(keyMsg, l.bottom):
		l.vp.GotoBottom()
	case key.Matches(keyMsg, km.Up, km.Down, km.PageUp, km.PageDown, km.HalfPageUp, km.HalfPageDown):
		var cmd tea.Cmd
		l.vp, cmd = l.vp.Update(msg)
		l.follow = l.pinned()
		return cmd, true
	default:
		return nil, false
	}
	l.follow = l.pinned()
	return nil, true
}

func (l *LogView) pinned() bool {
	if l.reverse {
		return l.vp.AtTop()
	}
	return l.vp.AtBottom()
}

// Size returns the widest line and the line count.
func (l *LogView) Size() (int, int) {
	w := 0
	for _, s := range l.lines {
		w = max(w, text.DisplayWidth(s))
	}
	return w, len(l.lines)
}

// View renders the pane at the given size.
func (l *LogView) View(width, height int) string {
	if l.vp.Width != width || l.vp.Height != height {
		l.vp.Width = width
		l.vp.Height = height
		l.refresh()
	}
	return l.vp.View()
}

// ScrollPercent reports the scroll position in 0..1.
func (l *LogView) ScrollPercent() float64 {
	return l.vp.ScrollPercent()
}
