package options

import (
	"strconv"
	"strings"

	"github.com/andri/tdialog/pkg/dialog"
)

// lenientInt parses the leading signed digits of its input and ignores the
// rest, so "12px" is 12 and "abc" is 0.
type lenientInt struct{ p *int }

func (v lenientInt) String() string {
	if v.p == nil {
		return "0"
	}
	return strconv.Itoa(*v.p)
}

func (v lenientInt) Set(s string) error {
	*v.p = scanInt(s)
	return nil
}

func (lenientInt) Type() string { return "int" }

func scanInt(s string) int {
	s = strings.TrimSpace(s)
	neg := false
	if s != "" && (s[0] == '-' || s[0] == '+') {
		neg = s[0] == '-'
		s = s[1:]
	}
	n := 0
	for i := 0; i < len(s) && s[i] >= '0' && s[i] <= '9'; i++ {
		if n > (1<<31-1)/10 {
			n = 1<<31 - 1
			break
		}
		n = n*10 + int(s[i]-'0')
	}
	if neg {
		return -n
	}
	return n
}

// setTo assigns a fixed value when the flag is present. It backs switches
// such as --stdout or --defaultno that write a non-bool field.
type setTo[T any] struct {
	p   *T
	val T
	set bool
}

func (v *setTo[T]) String() string { return strconv.FormatBool(v.set) }

func (v *setTo[T]) Set(s string) error {
	on, err := strconv.ParseBool(s)
	if err != nil {
		return err
	}
	if on {
		*v.p = v.val
		v.set = true
	}
	return nil
}

func (*setTo[T]) Type() string { return "bool" }

// inverted stores the negation of a boolean switch, e.g. --shadow clears
// NoShadow.
type inverted struct{ p *bool }

func (v inverted) String() string { return strconv.FormatBool(!*v.p) }

func (v inverted) Set(s string) error {
	on, err := strconv.ParseBool(s)
	if err != nil {
		return err
	}
	*v.p = !on
	return nil
}

func (inverted) Type() string { return "bool" }

// exitCode records a --<result>-exit-code override.
type exitCode struct {
	codes  map[dialog.Result]int
	result dialog.Result
}

func (v exitCode) String() string {
	if c, ok := v.codes[v.result]; ok {
		return strconv.Itoa(c)
	}
	return strconv.Itoa(dialog.DefaultExitCodes[v.result])
}

func (v exitCode) Set(s string) error {
	v.codes[v.result] = scanInt(s)
	return nil
}

func (exitCode) Type() string { return "int" }

// defaultButton validates --default-button.
type defaultButton struct{ p *dialog.DefaultButton }

func (v defaultButton) String() string { return string(*v.p) }

func (v defaultButton) Set(s string) error {
	switch b := dialog.DefaultButton(strings.ToLower(s)); b {
	case dialog.DefaultButtonOK, dialog.DefaultButtonCancel, dialog.DefaultButtonExtra, dialog.DefaultButtonHelp:
		*v.p = b
		return nil
	case "yes":
		*v.p = dialog.DefaultButtonOK
		return nil
	case "no":
		*v.p = dialog.DefaultButtonCancel
		return nil
	}
	return &ParseError{Reason: "default-button must be ok, cancel, extra or help", Token: s}
}

func (defaultButton) Type() string { return "string" }
