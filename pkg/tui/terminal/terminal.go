// Package terminal detects terminal capabilities and screen size.
package terminal

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// Capability represents terminal capabilities.
type Capability struct {
	Has256Colors bool
	Has16Colors  bool
	// HasNoColors is set for TERM=dumb, an unset TERM or NO_COLOR.
	HasNoColors bool
	HasUnicode  bool
	Term        string
}

// Fallback screen size when the size cannot be queried.
const (
	DefaultWidth  = 80
	DefaultHeight = 24
)

// DetectCapabilities detects terminal capabilities from the environment.
func DetectCapabilities() Capability {
	term := os.Getenv("TERM")
	colorTerm := os.Getenv("COLORTERM")

	c := Capability{Term: term, HasUnicode: true}

	switch {
	case term == "dumb" || term == "":
		c.HasNoColors = true
		c.HasUnicode = false
	case term == "linux":
		c.Has16Colors = true
		c.HasUnicode = false
	case colorTerm == "truecolor" || colorTerm == "24bit":
		c.Has256Colors = true
	case strings.Contains(term, "256color"):
		c.Has256Colors = true
	default:
		c.Has16Colors = true
	}

	if os.Getenv("NO_COLOR") != "" {
		c.HasNoColors = true
		c.Has256Colors = false
		c.Has16Colors = false
	}

	return c
}

// Profile returns the termenv color profile matching the capability.
func (c Capability) Profile() termenv.Profile {
	switch {
	case c.HasNoColors:
		return termenv.Ascii
	case c.Has256Colors:
		return termenv.ANSI256
	default:
		return termenv.ANSI
	}
}

// ConfigureLipgloss applies the capability to the default lipgloss renderer.
// useColors false forces monochrome output.
func ConfigureLipgloss(c Capability, useColors bool) {
	profile := c.Profile()
	if !useColors {
		profile = termenv.Ascii
	}
	lipgloss.SetColorProfile(profile)
}

// Glyphs are the characters used to draw widgets.
type Glyphs struct {
	GaugeFull  string
	GaugeEmpty string
	CheckOn    string
	CheckOff   string
	RadioOn    string
	RadioOff   string
	ScrollUp   string
	ScrollDown string
	Directory  string
}

// GetGlyphs returns glyphs the terminal can display.
func GetGlyphs(c Capability) Glyphs {
	if c.HasNoColors || !c.HasUnicode {
		return Glyphs{
			GaugeFull:  "#",
			GaugeEmpty: " ",
			CheckOn:    "[X]",
			CheckOff:   "[ ]",
			RadioOn:    "(*)",
			RadioOff:   "( )",
			ScrollUp:   "^",
			ScrollDown: "v",
			Directory:  "/",
		}
	}
	return Glyphs{
		GaugeFull:  "█",
		GaugeEmpty: "░",
		CheckOn:    "[✓]",
		CheckOff:   "[ ]",
		RadioOn:    "(●)",
		RadioOff:   "( )",
		ScrollUp:   "↑",
		ScrollDown: "↓",
		Directory:  "/",
	}
}

// ScreenSize returns the size of the terminal behind f, falling back to
// $LINES/$COLUMNS and then to 80x24.
func ScreenSize(f *os.File) (rows, cols int) {
	if f != nil {
		if w, h, err := term.GetSize(int(f.Fd())); err == nil && w > 0 && h > 0 {
			return h, w
		}
	}
	rows, cols = envInt("LINES"), envInt("COLUMNS")
	if rows <= 0 {
		rows = DefaultHeight
	}
	if cols <= 0 {
		cols = DefaultWidth
	}
	return rows, cols
}

// MaxDialogSize is the largest dialog that fits the screen, leaving room for
// the backtitle line and the shadow.
func MaxDialogSize(screenRows, screenCols int) (rows, cols int) {
	return max(screenRows-2, 1), max(screenCols-2, 1)
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return f != nil && term.IsTerminal(int(f.Fd()))
}

// OpenTTY opens the controlling terminal for reading and writing.
func OpenTTY() (*os.File, error) {
	f, err := os.OpenFile("/dev/tty", os.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("open controlling terminal: %w", err)
	}
	return f, nil
}

func envInt(name string) int {
	var n int
	if _, err := fmt.Sscanf(os.Getenv(name), "%d", &n); err != nil {
		return 0
	}
	return n
}
