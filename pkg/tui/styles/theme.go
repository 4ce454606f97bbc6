// Package styles builds the lipgloss styles used to draw dialogs.
package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/andri/tdialog/pkg/config"
)

// Theme holds every style a dialog needs.
type Theme struct {
	Screen         lipgloss.Style
	BackTitle      lipgloss.Style
	Frame          lipgloss.Style
	Title          lipgloss.Style
	Body           lipgloss.Style
	ButtonActive   lipgloss.Style
	ButtonInactive lipgloss.Style
	ButtonDisabled lipgloss.Style
	GaugeFull      lipgloss.Style
	GaugeEmpty     lipgloss.Style
	GaugeLabel     lipgloss.Style
	ItemSelected   lipgloss.Style
	Item           lipgloss.Style
	Tag            lipgloss.Style
	Subtle         lipgloss.Style
	Error          lipgloss.Style
	ErrorFrame     lipgloss.Style
	Shadow         lipgloss.Style
	Input          lipgloss.Style
}

// Borders by theme name.
var borders = map[string]lipgloss.Border{
	"rounded": lipgloss.RoundedBorder(),
	"normal":  lipgloss.NormalBorder(),
	"double":  lipgloss.DoubleBorder(),
	"thick":   lipgloss.ThickBorder(),
	"hidden":  lipgloss.HiddenBorder(),
}

// BorderFor returns the named border, rounded when the name is unknown.
func BorderFor(name string) lipgloss.Border {
	if b, ok := borders[name]; ok {
		return b
	}
	return lipgloss.RoundedBorder()
}

// NewTheme builds a theme from the rc file colors.
func NewTheme(tc config.ThemeConfig) Theme {
	color := func(s string) lipgloss.TerminalColor {
		if s == "" || !tc.UseColors {
			return lipgloss.NoColor{}
		}
		return lipgloss.Color(s)
	}
	border := BorderFor(tc.BorderStyle)

	return Theme{
		Screen:    lipgloss.NewStyle().Background(color(tc.Screen)),
		BackTitle: lipgloss.NewStyle().Bold(true).Foreground(color(tc.Title)).Background(color(tc.Screen)),
		Frame: lipgloss.NewStyle().
			Border(border).
			BorderForeground(color(tc.Border)).
			Padding(0, 1),
		Title:          lipgloss.NewStyle().Bold(true).Foreground(color(tc.Title)),
		Body:           lipgloss.NewStyle(),
		ButtonActive:   lipgloss.NewStyle().Bold(true).Reverse(!tc.UseColors).Foreground(color(tc.Dialog)).Background(color(tc.ButtonActive)),
		ButtonInactive: lipgloss.NewStyle().Foreground(color(tc.ButtonInactive)),
		ButtonDisabled: lipgloss.NewStyle().Faint(true),
		GaugeFull:      lipgloss.NewStyle().Foreground(color(tc.Gauge)),
		GaugeEmpty:     lipgloss.NewStyle().Faint(true),
		GaugeLabel:     lipgloss.NewStyle().Bold(true),
		ItemSelected:   lipgloss.NewStyle().Reverse(true),
		Item:           lipgloss.NewStyle(),
		Tag:            lipgloss.NewStyle().Bold(true).Foreground(color(tc.Title)),
		Subtle:         lipgloss.NewStyle().Faint(true),
		Error:          lipgloss.NewStyle().Bold(true).Foreground(color(tc.Error)),
		ErrorFrame: lipgloss.NewStyle().
			Border(border).
			BorderForeground(color(tc.Error)).
			Padding(0, 1),
		Shadow: lipgloss.NewStyle().Faint(true),
		Input:  lipgloss.NewStyle().Underline(true),
	}
}

// Default returns the theme of the built-in rc defaults.
func Default() Theme {
	return NewTheme(config.DefaultConfig().Theme)
}
