package dialog

import "fmt"

// Kind selects the dialog type.
type Kind int

const (
	KindNone Kind = iota
	KindMsgBox
	KindYesNo
	KindInfoBox
	KindInputBox
	KindPasswordBox
	KindTextBox
	KindTailBox
	KindLogBox
	KindEditBox
	KindMenu
	KindChecklist
	KindRadiolist
	KindGauge
	KindMixedGauge
	KindProgress
	KindCalendar
	KindTimeBox
	KindRangeBox
	KindPause
	KindFSelect
	KindDSelect
)

var kindOptions = map[Kind]string{
	KindMsgBox:      "msgbox",
	KindYesNo:       "yesno",
	KindInfoBox:     "infobox",
	KindInputBox:    "inputbox",
	KindPasswordBox: "passwordbox",
	KindTextBox:     "textbox",
	KindTailBox:     "tailbox",
	KindLogBox:      "logbox",
	KindEditBox:     "editbox",
	KindMenu:        "menu",
	KindChecklist:   "checklist",
	KindRadiolist:   "radiolist",
	KindGauge:       "gauge",
	KindMixedGauge:  "mixedgauge",
	KindProgress:    "progress",
	KindCalendar:    "calendar",
	KindTimeBox:     "timebox",
	KindRangeBox:    "rangebox",
	KindPause:       "pause",
	KindFSelect:     "fselect",
	KindDSelect:     "dselect",
}

// String returns the option name that selects the kind, without dashes.
func (k Kind) String() string {
	if name, ok := kindOptions[k]; ok {
		return name
	}
	return "none"
}

// KindByOption resolves an option name such as "gauge" to its Kind.
func KindByOption(name string) (Kind, bool) {
	for k, n := range kindOptions {
		if n == name {
			return k, true
		}
	}
	return KindNone, false
}

// Kinds returns every selectable kind.
func Kinds() []Kind {
	out := make([]Kind, 0, len(kindOptions))
	for k := KindMsgBox; k <= KindDSelect; k++ {
		out = append(out, k)
	}
	return out
}

// Streaming reports whether the kind reads an input stream.
func (k Kind) Streaming() bool {
	switch k {
	case KindGauge, KindMixedGauge, KindProgress, KindTailBox, KindLogBox:
		return true
	default:
		return false
	}
}

// Arity describes how many positional arguments follow text, rows and cols.
// A kind accepts Fixed + n*Repeat arguments for n >= MinRepeat, or any of
// the counts listed in Alternatives.
type Arity struct {
	Fixed        int
	Repeat       int
	MinRepeat    int
	Alternatives []int
	Usage        string
}

// Accepts reports whether n extra arguments satisfy the rule.
func (a Arity) Accepts(n int) bool {
	for _, alt := range a.Alternatives {
		if n == alt {
			return true
		}
	}
	if a.Repeat == 0 {
		return len(a.Alternatives) == 0 && n == a.Fixed
	}
	rest := n - a.Fixed
	if rest < 0 || rest%a.Repeat != 0 {
		return false
	}
	return rest/a.Repeat >= a.MinRepeat
}

// Min returns the smallest count the rule accepts.
func (a Arity) Min() int {
	n := -1
	if a.Repeat > 0 || len(a.Alternatives) == 0 {
		n = a.Fixed + a.Repeat*a.MinRepeat
	}
	for _, alt := range a.Alternatives {
		if n < 0 || alt < n {
			n = alt
		}
	}
	return n
}

var arities = map[Kind]Arity{
	KindMsgBox:      {Usage: "<text> <height> <width>"},
	KindYesNo:       {Usage: "<text> <height> <width>"},
	KindInfoBox:     {Alternatives: []int{0, 1}, Usage: "<text> <height> <width> [<timeout-ms>]"},
	KindInputBox:    {Alternatives: []int{0, 1}, Usage: "<text> <height> <width> [<init>]"},
	KindPasswordBox: {Alternatives: []int{0, 1}, Usage: "<text> <height> <width> [<init>]"},
	KindTextBox:     {Usage: "<file> <height> <width>"},
	KindTailBox:     {Usage: "<file> <height> <width>"},
	KindLogBox:      {Usage: "<file> <height> <width>"},
	KindEditBox:     {Usage: "<file> <height> <width>"},
	KindMenu:        {Fixed: 1, Repeat: 2, MinRepeat: 1, Usage: "<text> <height> <width> <menu-height> <tag1> <item1>..."},
	KindChecklist:   {Fixed: 1, Repeat: 3, MinRepeat: 1, Usage: "<text> <height> <width> <list-height> <tag1> <item1> <status1>..."},
	KindRadiolist:   {Fixed: 1, Repeat: 3, MinRepeat: 1, Usage: "<text> <height> <width> <list-height> <tag1> <item1> <status1>..."},
	KindGauge:       {Alternatives: []int{0, 1}, Usage: "<text> <height> <width> [<percent>]"},
	KindMixedGauge:  {Fixed: 1, Repeat: 2, MinRepeat: 0, Usage: "<text> <height> <width> <percent> <tag1> <item1>..."},
	KindProgress:    {Alternatives: []int{0, 1, 2, 3}, Usage: "<text> <height> <width> [<maxdots> [[-]<msglen> [<skip>]]]"},
	KindCalendar:    {Alternatives: []int{0, 3}, Usage: "<text> <height> <width> [<day> <month> <year>]"},
	KindTimeBox:     {Alternatives: []int{0, 3}, Usage: "<text> <height> <width> [<hour> <minute> <second>]"},
	KindRangeBox:    {Fixed: 3, Usage: "<text> <height> <width> <min> <max> <default>"},
	KindPause:       {Fixed: 1, Usage: "<text> <height> <width> <seconds>"},
	KindFSelect:     {Usage: "<filepath> <height> <width>"},
	KindDSelect:     {Usage: "<directory> <height> <width>"},
}

// ArityOf returns the positional-argument rule for a kind.
func ArityOf(k Kind) Arity {
	return arities[k]
}

// CheckArity returns a *UsageError when args does not fit the kind's rule.
func CheckArity(k Kind, args []string) error {
	a := ArityOf(k)
	if a.Accepts(len(args)) {
		return nil
	}
	return &UsageError{
		Kind:   k,
		Reason: fmt.Sprintf("wrong number of arguments (%d)", len(args)),
		Usage:  fmt.Sprintf("--%s %s", k, a.Usage),
	}
}
