package terminal

import (
	"testing"

	"github.com/muesli/termenv"
)

func TestDetectCapabilities(t *testing.T) {
	tests := []struct {
		name         string
		term         string
		colorTerm    string
		noColor      string
		want256      bool
		want16       bool
		wantNoColors bool
		wantUnicode  bool
	}{
		{name: "dumb terminal", term: "dumb", wantNoColors: true},
		{name: "empty TERM", term: "", wantNoColors: true},
		{name: "xterm-256color", term: "xterm-256color", want256: true, wantUnicode: true},
		{name: "truecolor", term: "xterm", colorTerm: "truecolor", want256: true, wantUnicode: true},
		{name: "xterm basic", term: "xterm", want16: true, wantUnicode: true},
		{name: "linux console", term: "linux", want16: true},
		{name: "NO_COLOR overrides", term: "xterm-256color", noColor: "1", wantNoColors: true, wantUnicode: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TERM", tt.term)
			t.Setenv("COLORTERM", tt.colorTerm)
			t.Setenv("NO_COLOR", tt.noColor)

			c := DetectCapabilities()
			if c.Has256Colors != tt.want256 {
				t.Errorf("Has256Colors = %v, want %v", c.Has256Colors, tt.want256)
			}
			if c.Has16Colors != tt.want16 {
				t.Errorf("Has16Colors = %v, want %v", c.Has16Colors, tt.want16)
			}
			if c.HasNoColors != tt.wantNoColors {
				t.Errorf("HasNoColors = %v, want %v", c.HasNoColors, tt.wantNoColors)
			}
			if c.HasUnicode != tt.wantUnicode {
				t.Errorf("HasUnicode = %v, want %v", c.HasUnicode, tt.wantUnicode)
			}
		})
	}
}

func TestProfile(t *testing.T) {
	tests := []struct {
		c    Capability
		want termenv.Profile
	}{
		{Capability{HasNoColors: true}, termenv.Ascii},
		{Capability{Has256Colors: true}, termenv.ANSI256},
		{Capability{Has16Colors: true}, termenv.ANSI},
	}
	for _, tt := range tests {
		if got := tt.c.Profile(); got != tt.want {
			t.Errorf("Profile(%+v) = %v, want %v", tt.c, got, tt.want)
		}
	}
}

func TestGetGlyphs(t *testing.T) {
	unicode := GetGlyphs(Capability{HasUnicode: true})
	if unicode.GaugeFull != "█" || unicode.CheckOn != "[✓]" {
		t.Errorf("unicode glyphs = %+v", unicode)
	}

	ascii := GetGlyphs(Capability{HasNoColors: true})
	if ascii.GaugeFull != "#" || ascii.CheckOn != "[X]" || ascii.RadioOn != "(*)" {
		t.Errorf("ascii glyphs = %+v", ascii)
	}

	if GetGlyphs(Capability{HasUnicode: false}).CheckOn != "[X]" {
		t.Errorf("terminal without unicode should get ascii glyphs")
	}
}

func TestScreenSizeFallback(t *testing.T) {
	t.Setenv("LINES", "30")
	t.Setenv("COLUMNS", "100")
	rows, cols := ScreenSize(nil)
	if rows != 30 || cols != 100 {
		t.Errorf("ScreenSize = %d,%d, want 30,100", rows, cols)
	}

	t.Setenv("LINES", "")
	t.Setenv("COLUMNS", "junk")
	rows, cols = ScreenSize(nil)
	if rows != DefaultHeight || cols != DefaultWidth {
		t.Errorf("ScreenSize = %d,%d, want defaults", rows, cols)
	}
}

func TestMaxDialogSize(t *testing.T) {
	tests := []struct {
		rows, cols         int
		wantRows, wantCols int
	}{
		{24, 80, 22, 78},
		{2, 2, 1, 1},
		{0, 0, 1, 1},
	}
	for _, tt := range tests {
		r, c := MaxDialogSize(tt.rows, tt.cols)
		if r != tt.wantRows || c != tt.wantCols {
			t.Errorf("MaxDialogSize(%d,%d) = %d,%d, want %d,%d", tt.rows, tt.cols, r, c, tt.wantRows, tt.wantCols)
		}
	}
}

func TestConfigureLipgloss(t *testing.T) {
	for _, c := range []Capability{{HasNoColors: true}, {Has256Colors: true}, {Has16Colors: true}} {
		ConfigureLipgloss(c, true)
	}
	ConfigureLipgloss(Capability{Has256Colors: true}, false)
}
