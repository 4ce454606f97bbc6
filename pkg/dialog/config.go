package dialog

import "time"

// DefaultButton names the button focused when a dialog opens.
type DefaultButton string

const (
	DefaultButtonOK     DefaultButton = "ok"
	DefaultButtonCancel DefaultButton = "cancel"
	DefaultButtonExtra  DefaultButton = "extra"
	DefaultButtonHelp   DefaultButton = "help"
)

// Buttons holds labels and visibility of the action buttons.
type Buttons struct {
	OKLabel     string
	CancelLabel string
	YesLabel    string
	NoLabel     string
	ExtraLabel  string
	HelpLabel   string
	ExitLabel   string
	// Left and Right label the numbered button slots; empty slots are hidden.
	Left  [ButtonSlots]string
	Right [ButtonSlots]string

	NoOK        bool
	NoCancel    bool
	ExtraButton bool
	HelpButton  bool
	Default     DefaultButton
}

// Geometry holds window placement.
type Geometry struct {
	BeginY     int
	BeginX     int
	HasBegin   bool
	Fullscreen bool
}

// TextOptions controls the text normalizer.
type TextOptions struct {
	CRWrap     bool
	NoCollapse bool
	Trim       bool
	TabLen     int
}

// ListOptions controls menu/checklist/radiolist output.
type ListOptions struct {
	NoTags          bool
	NoItems         bool
	SeparateOutput  bool
	SingleQuoted    bool
	OutputSeparator string
}

// StreamOptions controls the streaming dialogs.
type StreamOptions struct {
	IgnoreEOF bool
	TimeStamp bool
	DateStamp bool
	Reverse   bool
	MaxLines  int
}

// Config is the per-dialog configuration aggregate. It is mutated flag by
// flag while a segment is parsed and read-only once the builder runs.
type Config struct {
	Title     string
	BackTitle string

	Buttons  Buttons
	Geometry Geometry
	Text     TextOptions
	List     ListOptions
	Stream   StreamOptions

	EscapeEnabled bool
	HelpFile      string
	HelpText      string

	SleepMS   int
	TimeoutMS int

	NoShadow  bool
	Insecure  bool
	MaxInput  int
	PrintSize bool

	// OutputFD is 1 or 2, or any descriptor opened by the caller.
	OutputFD int
}

// DefaultConfig returns the configuration a segment starts from.
func DefaultConfig() Config {
	return Config{
		Buttons: Buttons{
			OKLabel:     "OK",
			CancelLabel: "Cancel",
			YesLabel:    "Yes",
			NoLabel:     "No",
			ExtraLabel:  "Extra",
			HelpLabel:   "Help",
			ExitLabel:   "EXIT",
			Default:     DefaultButtonOK,
		},
		Text: TextOptions{
			TabLen: 8,
		},
		List: ListOptions{
			OutputSeparator: " ",
		},
		Stream: StreamOptions{
			MaxLines: 1000,
		},
		EscapeEnabled: true,
		MaxInput:      2048,
		OutputFD:      2,
	}
}

// Timeout returns the --timeout value as a duration, zero when unset.
func (c *Config) Timeout() time.Duration {
	if c.TimeoutMS <= 0 {
		return 0
	}
	return time.Duration(c.TimeoutMS) * time.Millisecond
}

// Sleep returns the --sleep value as a duration, zero when unset.
func (c *Config) Sleep() time.Duration {
	if c.SleepMS <= 0 {
		return 0
	}
	return time.Duration(c.SleepMS) * time.Millisecond
}
