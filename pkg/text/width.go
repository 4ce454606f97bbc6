package text

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
)

func styled(s string) bool { return strings.IndexByte(s, '\x1b') >= 0 }

// DisplayWidth returns the number of columns s occupies. Escape sequences
// take no room.
func DisplayWidth(s string) int {
	if styled(s) {
		return ansi.StringWidth(s)
	}
	return runewidth.StringWidth(s)
}

// Truncate trims s to width columns, marking the cut with tail.
func Truncate(s string, width int, tail string) string {
	if width <= 0 {
		return ""
	}
	if DisplayWidth(s) <= width {
		return s
	}
	if styled(s) {
		return ansi.Truncate(s, width, tail)
	}
	return runewidth.Truncate(s, width, tail)
}

// PadRight pads or truncates s to exactly width columns.
func PadRight(s string, width int) string {
	if width <= 0 {
		return ""
	}
	w := DisplayWidth(s)
	if w >= width {
		return Truncate(s, width, "")
	}
	return s + strings.Repeat(" ", width-w)
}

// Center pads s on both sides to width columns.
func Center(s string, width int) string {
	w := DisplayWidth(s)
	if w >= width {
		return Truncate(s, width, "")
	}
	left := (width - w) / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", width-w-left)
}
