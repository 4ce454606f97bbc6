// Package components provides the widgets dialogs are assembled from.
package components

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/andri/tdialog/pkg/text"
	"github.com/andri/tdialog/pkg/tui/styles"
	"github.com/andri/tdialog/pkg/tui/terminal"
)

// GaugeBar draws a horizontal bar with a centered "<n> %" label.
type GaugeBar struct {
	percent int
	label   string
	theme   styles.Theme
	glyphs  terminal.Glyphs
}

// NewGaugeBar creates an empty gauge.
func NewGaugeBar(theme styles.Theme, glyphs terminal.Glyphs) *GaugeBar {
	g := &GaugeBar{theme: theme, glyphs: glyphs}
	g.SetPercent(0)
	return g
}

// SetPercent clamps p to 0..100 and updates the label.
func (g *GaugeBar) SetPercent(p int) {
	g.percent = min(max(p, 0), 100)
	g.label = fmt.Sprintf("%d %%", g.percent)
}

// SetValue shows value as a fraction of maxValue.
func (g *GaugeBar) SetValue(value, maxValue int) {
	if maxValue <= 0 {
		maxValue = 100
	}
	g.SetPercent(value * 100 / maxValue)
}

// SetLabel replaces the text drawn over the bar until the next update.
func (g *GaugeBar) SetLabel(label string) { g.label = label }

// Percent returns the displayed percentage.
func (g *GaugeBar) Percent() int { return g.percent }

// Label returns the text drawn over the bar.
func (g *GaugeBar) Label() string { return g.label }

// Update implements the dialog body contract; the gauge takes no input.
func (g *GaugeBar) Update(tea.Msg) (tea.Cmd, bool) { return nil, false }

// Size returns the preferred size.
func (g *GaugeBar) Size() (int, int) { return 40, 1 }

// View renders the bar at width columns.
func (g *GaugeBar) View(width, _ int) string {
	if width < 1 {
		width = 1
	}
	filled := width * g.percent / 100
	label := []rune(g.label)
	start := (width - len(label)) / 2

	var b strings.Builder
	for i := 0; i < width; i++ {
		in := i < filled
		if li := i - start; li >= 0 && li < len(label) {
			style := g.theme.GaugeLabel
			if in {
				style = style.Reverse(true)
			}
			b.WriteString(style.Render(string(label[li])))
			continue
		}
		if in {
			b.WriteString(g.theme.GaugeFull.Render(g.glyphs.GaugeFull))
		} else {
			b.WriteString(g.theme.GaugeEmpty.Render(g.glyphs.GaugeEmpty))
		}
	}
	return b.String()
}

// MixedRow is one named entry of a mixed gauge.
type MixedRow struct {
	Name   string
	Status string
}

// mixedStatus names the numeric status codes of a mixed gauge row.
var mixedStatus = []string{
	"Succeeded", "Failed", "Passed", "Completed", "Checked",
	"Done", "Skipped", "In Progress", "", "N/A",
}

// StatusText renders a status code. Codes 0-9 have names, "-N" shows N
// percent, anything else is shown verbatim.
func StatusText(code string) string {
	if n, err := strconv.Atoi(code); err == nil {
		switch {
		case n >= 0 && n < len(mixedStatus):
			return mixedStatus[n]
		case n < 0:
			return fmt.Sprintf("%d%%", min(-n, 100))
		}
	}
	return code
}

// MixedGauge lists named rows with a status column above an overall gauge.
type MixedGauge struct {
	Rows []MixedRow
	Bar  *GaugeBar
	// Text is shown between the rows and the bar.
	Text  string
	theme styles.Theme
}

// NewMixedGauge creates a mixed gauge.
func NewMixedGauge(theme styles.Theme, glyphs terminal.Glyphs, rows []MixedRow) *MixedGauge {
	return &MixedGauge{
		Rows:  rows,
		Bar:   NewGaugeBar(theme, glyphs),
		theme: theme,
	}
}

// Update implements the dialog body contract.
func (m *MixedGauge) Update(tea.Msg) (tea.Cmd, bool) { return nil, false }

// Size returns the preferred size.
func (m *MixedGauge) Size() (int, int) {
	w := 40
	for _, r := range m.Rows {
		w = max(w, text.DisplayWidth(r.Name)+16)
	}
	tw, th := 0, 0
	if m.Text != "" {
		tw, th = text.Measure(m.Text)
	}
	return max(w, tw), len(m.Rows) + th + 2
}

// View renders rows, text and the bar.
func (m *MixedGauge) View(width, _ int) string {
	statusW := 13
	nameW := max(width-statusW-1, 1)
	var lines []string
	for _, r := range m.Rows {
		status := "[" + text.Center(StatusText(r.Status), statusW-2) + "]"
		lines = append(lines, text.PadRight(r.Name, nameW)+" "+m.theme.Tag.Render(status))
	}
	lines = append(lines, "")
	if m.Text != "" {
		lines = append(lines, text.Wrap(m.Text, width))
	}
	lines = append(lines, m.Bar.View(width, 1))
	return strings.Join(lines, "\n")
}
