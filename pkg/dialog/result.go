// Package dialog defines the data model shared by the option parser, the
// builder catalog and the orchestrator.
package dialog

import (
	"fmt"
	"sort"
	"strings"
)

// Result is the closed outcome of a single dialog invocation.
type Result int

const (
	// ResultOK is the affirmative button (OK, Yes, Exit).
	ResultOK Result = iota
	// ResultCancel is the negative button (Cancel, No).
	ResultCancel
	// ResultHelp is the help button.
	ResultHelp
	// ResultExtra is the extra button.
	ResultExtra
	// ResultTimeout is reported when --timeout expires.
	ResultTimeout
	// ResultESC is reported when the dialog was closed without a choice.
	ResultESC
	// ResultError covers usage errors and failed runs.
	ResultError
	// ResultLeft1 to ResultLeft3 are the numbered button slots left of the
	// affirmative button.
	ResultLeft1
	ResultLeft2
	ResultLeft3
	// ResultRight1 to ResultRight3 are the numbered button slots after the
	// help button.
	ResultRight1
	ResultRight2
	ResultRight3
)

// ButtonSlots is the number of left and of right button slots.
const ButtonSlots = 3

var resultNames = map[Result]string{
	ResultOK:      "ok",
	ResultCancel:  "cancel",
	ResultHelp:    "help",
	ResultExtra:   "extra",
	ResultTimeout: "timeout",
	ResultESC:     "esc",
	ResultError:   "error",
	ResultLeft1:   "left1",
	ResultLeft2:   "left2",
	ResultLeft3:   "left3",
	ResultRight1:  "right1",
	ResultRight2:  "right2",
	ResultRight3:  "right3",
}

// String returns the lower-case name used by flags and config keys.
func (r Result) String() string {
	if name, ok := resultNames[r]; ok {
		return name
	}
	return "unknown"
}

// EmitsOutput reports whether a builder writes its value for this result.
func (r Result) EmitsOutput() bool {
	return r == ResultOK || r == ResultExtra
}

// Continues reports whether chained dialogs keep running after this result.
func (r Result) Continues() bool {
	return r == ResultOK || r == ResultExtra
}

// ParseResult maps a result name ("ok", "cancel", ...) to a Result.
func ParseResult(s string) (Result, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for r, name := range resultNames {
		if name == s {
			return r, nil
		}
	}
	return ResultError, fmt.Errorf("unknown result %q", s)
}

// AllResults returns every result in declaration order.
func AllResults() []Result {
	return []Result{
		ResultOK, ResultCancel, ResultHelp, ResultExtra, ResultTimeout, ResultESC, ResultError,
		ResultLeft1, ResultLeft2, ResultLeft3, ResultRight1, ResultRight2, ResultRight3,
	}
}

// LeftSlot returns the result of left button slot n (1-based).
func LeftSlot(n int) Result { return ResultLeft1 + Result(n-1) }

// RightSlot returns the result of right button slot n (1-based).
func RightSlot(n int) Result { return ResultRight1 + Result(n-1) }

// DefaultExitCodes are the process exit codes used when nothing overrides them.
var DefaultExitCodes = map[Result]int{
	ResultOK:      0,
	ResultCancel:  1,
	ResultHelp:    2,
	ResultExtra:   3,
	ResultTimeout: 4,
	ResultESC:     5,
	ResultError:   255,
	ResultLeft1:   6,
	ResultLeft2:   7,
	ResultLeft3:   8,
	ResultRight1:  9,
	ResultRight2:  10,
	ResultRight3:  11,
}

// ExitCodeTable maps results to process exit codes. It is built once at
// startup and never mutated afterwards.
type ExitCodeTable struct {
	codes map[Result]int
}

// NewExitCodeTable layers the given override maps over the defaults.
// Later maps win.
func NewExitCodeTable(overrides ...map[Result]int) ExitCodeTable {
	codes := make(map[Result]int, len(DefaultExitCodes))
	for r, c := range DefaultExitCodes {
		codes[r] = c
	}
	for _, o := range overrides {
		for r, c := range o {
			codes[r] = c
		}
	}
	return ExitCodeTable{codes: codes}
}

// Code returns the exit code for a result.
func (t ExitCodeTable) Code(r Result) int {
	if c, ok := t.codes[r]; ok {
		return c
	}
	if c, ok := DefaultExitCodes[r]; ok {
		return c
	}
	return DefaultExitCodes[ResultError]
}

// String renders the table as "name=code" pairs sorted by result.
func (t ExitCodeTable) String() string {
	results := AllResults()
	sort.Slice(results, func(i, j int) bool { return results[i] < results[j] })
	parts := make([]string, 0, len(results))
	for _, r := range results {
		parts = append(parts, fmt.Sprintf("%s=%d", r, t.Code(r)))
	}
	return strings.Join(parts, " ")
}
