package catalog

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/andri/tdialog/pkg/dialog"
	"github.com/andri/tdialog/pkg/output"
	"github.com/andri/tdialog/pkg/text"
	"github.com/andri/tdialog/pkg/tui/components"
	"github.com/andri/tdialog/pkg/tui/keys"
	"github.com/andri/tdialog/pkg/tui/shell"
	"github.com/andri/tdialog/pkg/tui/styles"
)

// now is the clock used for calendar and timebox defaults.
var now = time.Now

// calendarBody is a month grid with one selected day.
type calendarBody struct {
	date  time.Time
	nav   keys.NavigationBindings
	theme styles.Theme
}

// newCalendar selects day/month/year; zero parts come from today and the
// day is clamped to the month.
func newCalendar(theme styles.Theme, day, month, year int) *calendarBody {
	today := now()
	if year <= 0 {
		year = today.Year()
	}
	if month <= 0 || month > 12 {
		month = int(today.Month())
	}
	if day <= 0 {
		day = today.Day()
	}
	day = min(day, daysIn(time.Month(month), year))
	return &calendarBody{
		date:  time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.Local),
		nav:   keys.DefaultNavigationBindings().DisableLetterKeys(),
		theme: theme,
	}
}

func daysIn(m time.Month, year int) int {
	return time.Date(year, m+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// addMonths moves by whole months, keeping the day inside the target month.
func (c *calendarBody) addMonths(n int) {
	y, m, d := c.date.Date()
	first := time.Date(y, m+time.Month(n), 1, 0, 0, 0, 0, time.Local)
	d = min(d, daysIn(first.Month(), first.Year()))
	c.date = time.Date(first.Year(), first.Month(), d, 0, 0, 0, 0, time.Local)
}

func (c *calendarBody) Update(msg tea.Msg) (tea.Cmd, bool) {
	k, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil, false
	}
	switch {
	case k.Type == tea.KeyLeft:
		c.date = c.date.AddDate(0, 0, -1)
	case k.Type == tea.KeyRight:
		c.date = c.date.AddDate(0, 0, 1)
	case key.Matches(k, c.nav.Up):
		c.date = c.date.AddDate(0, 0, -7)
	case key.Matches(k, c.nav.Down):
		c.date = c.date.AddDate(0, 0, 7)
	case key.Matches(k, c.nav.PageUp):
		c.addMonths(-1)
	case key.Matches(k, c.nav.PageDown):
		c.addMonths(1)
	default:
		return nil, false
	}
	return nil, true
}

func (c *calendarBody) Size() (int, int) { return 20, 8 }

func (c *calendarBody) View(width, _ int) string {
	y, m, d := c.date.Date()
	lines := []string{
		text.Center(fmt.Sprintf("%s %d", m, y), width),
		text.Center("Su Mo Tu We Th Fr Sa", width),
	}
	offset := int(time.Date(y, m, 1, 0, 0, 0, 0, time.Local).Weekday())
	cells := make([]string, 0, 7)
	flush := func() {
		lines = append(lines, text.Center(text.PadRight(strings.Join(cells, " "), 20), width))
		cells = cells[:0]
	}
	for i := 0; i < offset; i++ {
		cells = append(cells, "  ")
	}
	for day := 1; day <= daysIn(m, y); day++ {
		cell := fmt.Sprintf("%2d", day)
		if day == d {
			cell = c.theme.ItemSelected.Render(cell)
		}
		cells = append(cells, cell)
		if len(cells) == 7 {
			flush()
		}
	}
	if len(cells) > 0 {
		flush()
	}
	return strings.Join(lines, "\n")
}

// Value returns the selected date as dd/mm/yyyy.
func (c *calendarBody) Value() string {
	y, m, d := c.date.Date()
	return fmt.Sprintf("%02d/%02d/%04d", d, int(m), y)
}

func calendar(rt Runtime, cfg *dialog.Config, req dialog.Request, out *output.Writer) dialog.Result {
	s := rt.NewShell(cfg, req.Text(), req)
	body := newCalendar(s.Theme(), req.IntArg(0, 0), req.IntArg(1, 0), req.IntArg(2, 0))
	s.SetBody(body)
	rt.AddButtons(s, cfg, shell.ButtonsOKCancel)
	return emit(out, rt.Run(s), body.Value())
}

// timeBody edits hours, minutes and seconds; values wrap around.
type timeBody struct {
	fields [3]int
	cur    int
	nav    keys.NavigationBindings
	theme  styles.Theme
}

var timeLimits = [3]int{24, 60, 60}

func newTimeBody(theme styles.Theme, h, m, sec int) *timeBody {
	t := &timeBody{
		fields: [3]int{h, m, sec},
		nav:    keys.DefaultNavigationBindings().DisableLetterKeys(),
		theme:  theme,
	}
	for i, v := range t.fields {
		t.fields[i] = min(max(v, 0), timeLimits[i]-1)
	}
	return t
}

func (t *timeBody) step(n int) {
	lim := timeLimits[t.cur]
	t.fields[t.cur] = ((t.fields[t.cur]+n)%lim + lim) % lim
}

func (t *timeBody) Update(msg tea.Msg) (tea.Cmd, bool) {
	k, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil, false
	}
	switch {
	case k.Type == tea.KeyLeft:
		t.cur = max(t.cur-1, 0)
	case k.Type == tea.KeyRight:
		t.cur = min(t.cur+1, len(t.fields)-1)
	case key.Matches(k, t.nav.Up):
		t.step(1)
	case key.Matches(k, t.nav.Down):
		t.step(-1)
	case key.Matches(k, t.nav.PageUp):
		t.step(10)
	case key.Matches(k, t.nav.PageDown):
		t.step(-10)
	default:
		return nil, false
	}
	return nil, true
}

func (t *timeBody) Size() (int, int) { return 14, 1 }

func (t *timeBody) View(width, _ int) string {
	parts := make([]string, len(t.fields))
	for i, v := range t.fields {
		cell := fmt.Sprintf("%02d", v)
		if i == t.cur {
			cell = t.theme.ItemSelected.Render(cell)
		}
		parts[i] = cell
	}
	return text.Center(strings.Join(parts, " : "), width)
}

// Value returns the time as hh:mm:ss.
func (t *timeBody) Value() string {
	return fmt.Sprintf("%02d:%02d:%02d", t.fields[0], t.fields[1], t.fields[2])
}

func timeBox(rt Runtime, cfg *dialog.Config, req dialog.Request, out *output.Writer) dialog.Result {
	h, m, sec := now().Clock()
	if req.NArgs() == 3 {
		h, m, sec = req.IntArg(0, h), req.IntArg(1, m), req.IntArg(2, sec)
	}
	s := rt.NewShell(cfg, req.Text(), req)
	body := newTimeBody(s.Theme(), h, m, sec)
	s.SetBody(body)
	rt.AddButtons(s, cfg, shell.ButtonsOKCancel)
	return emit(out, rt.Run(s), body.Value())
}

// rangeBody picks an integer between two bounds.
type rangeBody struct {
	lo, hi, value int
	nav           keys.NavigationBindings
	bar           *components.GaugeBar
}

func (r *rangeBody) set(v int) {
	r.value = min(max(v, r.lo), r.hi)
}

func (r *rangeBody) Update(msg tea.Msg) (tea.Cmd, bool) {
	k, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil, false
	}
	switch {
	case k.Type == tea.KeyRight || key.Matches(k, r.nav.Up):
		r.set(r.value + 1)
	case k.Type == tea.KeyLeft || key.Matches(k, r.nav.Down):
		r.set(r.value - 1)
	case key.Matches(k, r.nav.PageUp):
		r.set(r.value + 10)
	case key.Matches(k, r.nav.PageDown):
		r.set(r.value - 10)
	case key.Matches(k, r.nav.Top):
		r.set(r.lo)
	case key.Matches(k, r.nav.Bottom):
		r.set(r.hi)
	default:
		return nil, false
	}
	return nil, true
}

func (r *rangeBody) Size() (int, int) { return 40, 2 }

func (r *rangeBody) View(width, _ int) string {
	lo, hi := strconv.Itoa(r.lo), strconv.Itoa(r.hi)
	gap := max(width-text.DisplayWidth(lo)-text.DisplayWidth(hi), 1)
	r.bar.SetValue(r.value-r.lo, r.hi-r.lo)
	r.bar.SetLabel(strconv.Itoa(r.value))
	return lo + strings.Repeat(" ", gap) + hi + "\n" + r.bar.View(width, 1)
}

func rangeBox(rt Runtime, cfg *dialog.Config, req dialog.Request, out *output.Writer) dialog.Result {
	lo, hi := req.IntArg(0, 0), req.IntArg(1, 0)
	if lo > hi {
		return usageError(rt, cfg, &dialog.UsageError{
			Kind:   req.Kind(),
			Reason: fmt.Sprintf("min %d is greater than max %d", lo, hi),
			Usage:  "--" + req.Kind().String() + " " + dialog.ArityOf(req.Kind()).Usage,
		})
	}
	s := rt.NewShell(cfg, req.Text(), req)
	body := &rangeBody{
		lo:  lo,
		hi:  hi,
		nav: keys.DefaultNavigationBindings().DisableLetterKeys(),
		bar: components.NewGaugeBar(s.Theme(), s.Glyphs()),
	}
	body.set(req.IntArg(2, lo))
	s.SetBody(body)
	rt.AddButtons(s, cfg, shell.ButtonsOKCancel)
	return emit(out, rt.Run(s), strconv.Itoa(body.value))
}
