package components

import (
	"strings"
	"unicode"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/andri/tdialog/pkg/text"
	"github.com/andri/tdialog/pkg/tui/keys"
	"github.com/andri/tdialog/pkg/tui/styles"
	"github.com/andri/tdialog/pkg/tui/terminal"
)

// ListMode selects how items are marked.
type ListMode int

const (
	// ListMenu has no marks; the cursor row is the choice.
	ListMenu ListMode = iota
	// ListCheck toggles any number of items.
	ListCheck
	// ListRadio keeps exactly one item on.
	ListRadio
)

// ListItem is one row of a menu, checklist or radiolist.
type ListItem struct {
	// Tag is the value written on selection
	Tag string

	// Text is the description next to the tag
	Text string

	// On marks a checked or selected item
	On bool
}

// List is a scrollable, selectable list of tagged items.
type List struct {
	// Mode selects menu, check or radio behaviour
	Mode ListMode

	// Items in display order
	Items []ListItem

	// Height is the number of visible rows (0 = all)
	Height int

	// NoTags hides the tag column
	NoTags bool

	// NoItems hides the text column
	NoItems bool

	cursor int
	offset int
	nav    keys.NavigationBindings
	theme  styles.Theme
	glyphs terminal.Glyphs
}

// NewList creates a list. A radiolist with several items on keeps the last.
func NewList(mode ListMode, items []ListItem, theme styles.Theme, glyphs terminal.Glyphs) *List {
	l := &List{
		Mode:   mode,
		Items:  append([]ListItem(nil), items...),
		nav:    keys.DefaultNavigationBindings().DisableLetterKeys(),
		theme:  theme,
		glyphs: glyphs,
	}
	if mode == ListRadio {
		last := -1
		for i, it := range l.Items {
			if it.On {
				last = i
			}
		}
		for i := range l.Items {
			l.Items[i].On = i == last
		}
	}
	// letters jump to tags, so only the space bar toggles
	l.nav.Toggle.SetEnabled(mode != ListMenu)
	return l
}

// Cursor returns the index of the highlighted row.
func (l *List) Cursor() int { return l.cursor }

// Current returns the highlighted item.
func (l *List) Current() (ListItem, bool) {
	if len(l.Items) == 0 {
		return ListItem{}, false
	}
	return l.Items[l.cursor], true
}

// SetCursorTag moves the cursor to the first item with tag.
func (l *List) SetCursorTag(tag string) bool {
	for i, it := range l.Items {
		if it.Tag == tag {
			l.setCursor(i)
			return true
		}
	}
	return false
}

// Selected returns the tags of all items that are on, in display order.
func (l *List) Selected() []string {
	var out []string
	for _, it := range l.Items {
		if it.On {
			out = append(out, it.Tag)
		}
	}
	return out
}

func (l *List) visible() int {
	if l.Height <= 0 || l.Height > len(l.Items) {
		return len(l.Items)
	}
	return l.Height
}

func (l *List) setCursor(i int) {
	if len(l.Items) == 0 {
		return
	}
	l.cursor = min(max(i, 0), len(l.Items)-1)
	h := l.visible()
	if l.cursor < l.offset {
		l.offset = l.cursor
	}
	if l.cursor >= l.offset+h {
		l.offset = l.cursor - h + 1
	}
}

// Toggle flips the highlighted item according to the mode.
func (l *List) Toggle() {
	if len(l.Items) == 0 {
		return
	}
	switch l.Mode {
	case ListCheck:
		l.Items[l.cursor].On = !l.Items[l.cursor].On
	case ListRadio:
		for i := range l.Items {
			l.Items[i].On = i == l.cursor
		}
	}
}

// Update moves the cursor, toggles items and jumps to the first tag that
// starts with a typed letter.
func (l *List) Update(msg tea.Msg) (tea.Cmd, bool) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil, false
	}
	switch {
	case key.Matches(keyMsg, l.nav.Up):
		l.setCursor(l.cursor - 1)
	case key.Matches(keyMsg, l.nav.Down):
		l.setCursor(l.cursor + 1)
	case key.Matches(keyMsg, l.nav.PageUp):
		l.setCursor(l.cursor - l.visible())
	case key.Matches(keyMsg, l.nav.PageDown):
		l.setCursor(l.cursor + l.visible())
	case key.Matches(keyMsg, l.nav.Top):
		l.setCursor(0)
	case key.Matches(keyMsg, l.nav.Bottom):
		l.setCursor(len(l.Items) - 1)
	case key.Matches(keyMsg, l.nav.Toggle):
		l.Toggle()
	default:
		return nil, l.jump(keyMsg)
	}
	return nil, true
}

func (l *List) jump(msg tea.KeyMsg) bool {
	if msg.Type != tea.KeyRunes || len(msg.Runes) != 1 {
		return false
	}
	r := unicode.ToLower(msg.Runes[0])
	n := len(l.Items)
	for i := 1; i <= n; i++ {
		idx := (l.cursor + i) % n
		tag := []rune(l.Items[idx].Tag)
		if len(tag) > 0 && unicode.ToLower(tag[0]) == r {
			l.setCursor(idx)
			return true
		}
	}
	return false
}

func (l *List) markWidth() int {
	if l.Mode == ListMenu {
		return 0
	}
	return text.DisplayWidth(l.glyphs.CheckOn) + 1
}

func (l *List) tagWidth() int {
	if l.NoTags {
		return 0
	}
	w := 0
	for _, it := range l.Items {
		w = max(w, text.DisplayWidth(it.Tag))
	}
	return w
}

// Size returns the width needed to show every row without truncation and
// the visible height.
func (l *List) Size() (int, int) {
	w := 0
	for _, it := range l.Items {
		w = max(w, text.DisplayWidth(it.Text))
	}
	if l.NoItems {
		w = 0
	}
	if tw := l.tagWidth(); tw > 0 {
		w += tw + 2
	}
	return w + l.markWidth(), l.visible()
}

// View renders the visible rows in width columns. A height smaller than
// the list shrinks the window and keeps the cursor visible.
func (l *List) View(width, height int) string {
	if height > 0 && height < l.visible() {
		l.Height = height
		l.setCursor(l.cursor)
	}
	tagW := l.tagWidth()
	h := l.visible()
	rows := make([]string, 0, h)
	for i := l.offset; i < l.offset+h && i < len(l.Items); i++ {
		it := l.Items[i]
		var b strings.Builder
		if l.Mode != ListMenu {
			b.WriteString(l.mark(it.On))
			b.WriteString(" ")
		}
		if !l.NoTags {
			b.WriteString(text.PadRight(it.Tag, tagW))
			if !l.NoItems {
				b.WriteString("  ")
			}
		}
		if !l.NoItems {
			b.WriteString(it.Text)
		}
		row := text.PadRight(text.Truncate(b.String(), width, "~"), width)
		if i == l.cursor {
			rows = append(rows, l.theme.ItemSelected.Render(row))
		} else {
			rows = append(rows, l.theme.Item.Render(row))
		}
	}
	return strings.Join(rows, "\n")
}

func (l *List) mark(on bool) string {
	switch {
	case l.Mode == ListRadio && on:
		return l.glyphs.RadioOn
	case l.Mode == ListRadio:
		return l.glyphs.RadioOff
	case on:
		return l.glyphs.CheckOn
	default:
		return l.glyphs.CheckOff
	}
}
