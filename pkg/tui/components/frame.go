package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/andri/tdialog/pkg/dialog"
	"github.com/andri/tdialog/pkg/text"
	"github.com/andri/tdialog/pkg/tui/styles"
)

// FrameChrome is the number of columns and rows a frame adds around its
// content: border plus horizontal padding, border plus title line.
const (
	FrameChromeWidth  = 4
	FrameChromeHeight = 2
)

// Frame draws a bordered window with an optional title.
type Frame struct {
	Title  string
	Shadow bool
	Error  bool
	Theme  styles.Theme
}

// Render wraps content, which must already fit width x height, in the frame.
// The outer size is (width+FrameChromeWidth) x (height+FrameChromeHeight),
// plus one row and column when a shadow is drawn.
func (f Frame) Render(content string, width, height int) string {
	style := f.Theme.Frame
	if f.Error {
		style = f.Theme.ErrorFrame
	}
	body := lipgloss.NewStyle().Width(width).Height(height).MaxHeight(height).Render(content)
	box := style.Render(body)
	if f.Title != "" {
		box = titled(box, " "+text.Truncate(f.Title, max(width-2, 1), "~")+" ", f.Theme.Title)
	}
	if f.Shadow {
		box = shadowed(box, f.Theme.Shadow)
	}
	return box
}

// titled writes the title centered over the top border.
func titled(box, title string, style lipgloss.Style) string {
	lines := strings.Split(box, "\n")
	top := lines[0]
	w := ansi.StringWidth(top)
	tw := text.DisplayWidth(title)
	if tw+2 > w {
		return box
	}
	start := (w - tw) / 2
	lines[0] = ansi.Cut(top, 0, start) + style.Render(title) + ansi.Cut(top, start+tw, w)
	return strings.Join(lines, "\n")
}

// shadowed adds a one cell shadow below and to the right.
func shadowed(box string, style lipgloss.Style) string {
	lines := strings.Split(box, "\n")
	w := ansi.StringWidth(lines[0])
	for i := range lines {
		if i == 0 {
			lines[i] += " "
			continue
		}
		lines[i] += style.Render("▌")
	}
	lines = append(lines, " "+style.Render(strings.Repeat("▀", w)))
	return strings.Join(lines, "\n")
}

// Place positions box on a screen of the given size, centered unless the
// geometry carries --begin coordinates.
func Place(screenW, screenH int, box string, g dialog.Geometry) string {
	if !g.HasBegin {
		return lipgloss.Place(screenW, screenH, lipgloss.Center, lipgloss.Center, box)
	}
	var b strings.Builder
	b.WriteString(strings.Repeat("\n", g.BeginY))
	pad := strings.Repeat(" ", g.BeginX)
	for i, line := range strings.Split(box, "\n") {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(pad + line)
	}
	return b.String()
}

// BackTitle renders the backtitle line and the rule below it.
func BackTitle(theme styles.Theme, title string, width int) string {
	if title == "" {
		return ""
	}
	line := " " + text.Truncate(title, max(width-1, 1), "~")
	return theme.BackTitle.Render(text.PadRight(line, width)) + "\n" +
		theme.Subtle.Render(strings.Repeat("─", max(width, 0)))
}

// BackTitleHeight is the number of rows BackTitle uses when set.
const BackTitleHeight = 2
