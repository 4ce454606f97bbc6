// Package text prepares dialog text for display: escape expansion, newline
// and blank handling, wrapping and display-width helpers.
package text

import (
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/andri/tdialog/pkg/dialog"
)

// Normalize converts a raw text argument into display text.
//
// Literal "\n" and "\t" sequences always become a newline and a tab. Real
// newlines are kept only with CRWrap and otherwise read as blanks. Trim
// drops leading blanks of every input line. Unless NoCollapse is set, tabs
// become single blanks and runs of blanks collapse to one; with NoCollapse
// tabs expand to the next multiple of TabLen.
func Normalize(s string, opts dialog.TextOptions) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")

	if opts.Trim {
		lines := strings.Split(s, "\n")
		for i, l := range lines {
			lines[i] = strings.TrimLeft(l, " \t")
		}
		s = strings.Join(lines, "\n")
	}
	if !opts.CRWrap {
		s = strings.ReplaceAll(s, "\n", " ")
	}

	s = expandEscapes(s)

	lines := strings.Split(s, "\n")
	for i, l := range lines {
		if opts.NoCollapse {
			lines[i] = ExpandTabs(l, opts.TabLen)
		} else {
			lines[i] = collapseBlanks(l)
		}
	}
	s = strings.Join(lines, "\n")

	if opts.Trim {
		s = strings.Trim(s, " \n")
	}
	return s
}

func expandEscapes(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			switch s[i+1] {
			case 'n':
				b.WriteByte('\n')
				i++
				continue
			case 't':
				b.WriteByte('\t')
				i++
				continue
			case '\\':
				b.WriteByte('\\')
				i++
				continue
			}
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

func collapseBlanks(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	blank := false
	for _, r := range s {
		if r == ' ' || r == '\t' {
			if !blank {
				b.WriteByte(' ')
			}
			blank = true
			continue
		}
		blank = false
		b.WriteRune(r)
	}
	return b.String()
}

// ExpandTabs replaces tabs with blanks up to the next multiple of tabLen.
func ExpandTabs(s string, tabLen int) string {
	if tabLen < 1 {
		tabLen = dialog.DefaultConfig().Text.TabLen
	}
	if !strings.Contains(s, "\t") {
		return s
	}
	var b strings.Builder
	col := 0
	for _, r := range s {
		if r == '\n' {
			b.WriteRune(r)
			col = 0
			continue
		}
		if r == '\t' {
			n := tabLen - col%tabLen
			b.WriteString(strings.Repeat(" ", n))
			col += n
			continue
		}
		b.WriteRune(r)
		col += DisplayWidth(string(r))
	}
	return b.String()
}

// Wrap word-wraps s to width columns, breaking words longer than a line.
func Wrap(s string, width int) string {
	if width < 1 {
		return s
	}
	return ansi.Wrap(s, width, "")
}

// Measure returns the widest line and the number of lines of s.
func Measure(s string) (width, height int) {
	lines := strings.Split(s, "\n")
	for _, l := range lines {
		if w := ansi.StringWidth(l); w > width {
			width = w
		}
	}
	return width, len(lines)
}
