// Package config loads the tdialog rc file. The rc file carries the theme,
// dialog defaults applied to every segment, exit-code overrides and logging.
package config

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/andri/tdialog/pkg/dialog"
)

const (
	DefaultBorderStyle = "rounded"
	DefaultTabLen      = 8
	DefaultMaxLines    = 1000
	DefaultLogLevel    = "info"
	DefaultLogFormat   = "text"
)

// Config holds the full rc file schema.
type Config struct {
	Theme     ThemeConfig    `mapstructure:"theme" yaml:"theme" json:"theme"`
	Dialog    DialogConfig   `mapstructure:"dialog" yaml:"dialog" json:"dialog"`
	ExitCodes ExitCodeConfig `mapstructure:"exit-codes" yaml:"exit-codes" json:"exit-codes"`
	Logging   LoggingConfig  `mapstructure:"logging" yaml:"logging" json:"logging"`
}

// ThemeConfig holds colors as lipgloss color strings ("#RRGGBB" or an ANSI
// number 0-255).
type ThemeConfig struct {
	UseColors      bool   `mapstructure:"use-colors" yaml:"use-colors" json:"use-colors"`
	BorderStyle    string `mapstructure:"border-style" yaml:"border-style" json:"border-style"`
	Screen         string `mapstructure:"screen" yaml:"screen" json:"screen"`
	Dialog         string `mapstructure:"dialog" yaml:"dialog" json:"dialog"`
	Title          string `mapstructure:"title" yaml:"title" json:"title"`
	Border         string `mapstructure:"border" yaml:"border" json:"border"`
	ButtonActive   string `mapstructure:"button-active" yaml:"button-active" json:"button-active"`
	ButtonInactive string `mapstructure:"button-inactive" yaml:"button-inactive" json:"button-inactive"`
	Gauge          string `mapstructure:"gauge" yaml:"gauge" json:"gauge"`
	Error          string `mapstructure:"error" yaml:"error" json:"error"`
}

// DialogConfig holds per-dialog defaults that command-line options override.
type DialogConfig struct {
	Shadow   bool `mapstructure:"shadow" yaml:"shadow" json:"shadow"`
	Escape   bool `mapstructure:"escape" yaml:"escape" json:"escape"`
	TabLen   int  `mapstructure:"tab-len" yaml:"tab-len" json:"tab-len"`
	MaxLines int  `mapstructure:"max-lines" yaml:"max-lines" json:"max-lines"`
}

// ExitCodeConfig overrides the process exit code of each result.
type ExitCodeConfig struct {
	OK      int `mapstructure:"ok" yaml:"ok" json:"ok"`
	Cancel  int `mapstructure:"cancel" yaml:"cancel" json:"cancel"`
	Help    int `mapstructure:"help" yaml:"help" json:"help"`
	Extra   int `mapstructure:"extra" yaml:"extra" json:"extra"`
	Timeout int `mapstructure:"timeout" yaml:"timeout" json:"timeout"`
	ESC     int `mapstructure:"esc" yaml:"esc" json:"esc"`
	Error   int `mapstructure:"error" yaml:"error" json:"error"`
	Left1   int `mapstructure:"left1" yaml:"left1" json:"left1"`
	Left2   int `mapstructure:"left2" yaml:"left2" json:"left2"`
	Left3   int `mapstructure:"left3" yaml:"left3" json:"left3"`
	Right1  int `mapstructure:"right1" yaml:"right1" json:"right1"`
	Right2  int `mapstructure:"right2" yaml:"right2" json:"right2"`
	Right3  int `mapstructure:"right3" yaml:"right3" json:"right3"`
}

// LoggingConfig controls log output settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level" json:"level"`
	File   string `mapstructure:"file" yaml:"file" json:"file"`
	Format string `mapstructure:"format" yaml:"format" json:"format"`
}

// DefaultConfig returns a config with all default values applied.
func DefaultConfig() Config {
	codes := dialog.DefaultExitCodes
	return Config{
		Theme: ThemeConfig{
			UseColors:      true,
			BorderStyle:    DefaultBorderStyle,
			Screen:         "4",
			Dialog:         "7",
			Title:          "4",
			Border:         "7",
			ButtonActive:   "4",
			ButtonInactive: "7",
			Gauge:          "4",
			Error:          "1",
		},
		Dialog: DialogConfig{
			Shadow:   true,
			Escape:   true,
			TabLen:   DefaultTabLen,
			MaxLines: DefaultMaxLines,
		},
		ExitCodes: ExitCodeConfig{
			OK:      codes[dialog.ResultOK],
			Cancel:  codes[dialog.ResultCancel],
			Help:    codes[dialog.ResultHelp],
			Extra:   codes[dialog.ResultExtra],
			Timeout: codes[dialog.ResultTimeout],
			ESC:     codes[dialog.ResultESC],
			Error:   codes[dialog.ResultError],
			Left1:   codes[dialog.ResultLeft1],
			Left2:   codes[dialog.ResultLeft2],
			Left3:   codes[dialog.ResultLeft3],
			Right1:  codes[dialog.ResultRight1],
			Right2:  codes[dialog.ResultRight2],
			Right3:  codes[dialog.ResultRight3],
		},
		Logging: LoggingConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}

// Map returns the exit codes keyed by result.
func (e ExitCodeConfig) Map() map[dialog.Result]int {
	return map[dialog.Result]int{
		dialog.ResultOK:      e.OK,
		dialog.ResultCancel:  e.Cancel,
		dialog.ResultHelp:    e.Help,
		dialog.ResultExtra:   e.Extra,
		dialog.ResultTimeout: e.Timeout,
		dialog.ResultESC:     e.ESC,
		dialog.ResultError:   e.Error,
		dialog.ResultLeft1:   e.Left1,
		dialog.ResultLeft2:   e.Left2,
		dialog.ResultLeft3:   e.Left3,
		dialog.ResultRight1:  e.Right1,
		dialog.ResultRight2:  e.Right2,
		dialog.ResultRight3:  e.Right3,
	}
}

// Apply copies the rc defaults onto a fresh dialog configuration.
func (d DialogConfig) Apply(cfg *dialog.Config) {
	cfg.NoShadow = !d.Shadow
	cfg.EscapeEnabled = d.Escape
	if d.TabLen > 0 {
		cfg.Text.TabLen = d.TabLen
	}
	if d.MaxLines > 0 {
		cfg.Stream.MaxLines = d.MaxLines
	}
}

// String renders the configuration as YAML.
func (c Config) String() string {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Sprintf("Config{error: %v}", err)
	}

	return strings.TrimSpace(string(data))
}
