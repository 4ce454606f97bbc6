package dialog

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	// SizeAuto asks for a size computed from the content.
	SizeAuto = 0
	// SizeMax asks for the full screen dimension.
	SizeMax = -1
)

// Request is one fully parsed dialog invocation. It is immutable once built.
type Request struct {
	kind Kind
	text string
	rows int
	cols int
	args []string
}

// NewRequest validates rows/cols and copies args.
func NewRequest(kind Kind, text string, rows, cols int, args []string) (Request, error) {
	if rows < SizeMax || cols < SizeMax {
		return Request{}, &UsageError{
			Kind:   kind,
			Reason: fmt.Sprintf("invalid size %dx%d", rows, cols),
			Usage:  fmt.Sprintf("--%s %s", kind, ArityOf(kind).Usage),
		}
	}
	return Request{
		kind: kind,
		text: text,
		rows: rows,
		cols: cols,
		args: append([]string(nil), args...),
	}, nil
}

// ParseRequest builds a Request from the tokens that follow a dialog selector:
// text, rows, cols and the kind-specific arguments.
func ParseRequest(kind Kind, tokens []string) (Request, error) {
	usage := fmt.Sprintf("--%s %s", kind, ArityOf(kind).Usage)
	if len(tokens) < 3 {
		return Request{}, &UsageError{Kind: kind, Reason: "expected text, height and width", Usage: usage}
	}
	rows, err := parseDimension(tokens[1])
	if err != nil {
		return Request{}, &UsageError{Kind: kind, Reason: fmt.Sprintf("height: %v", err), Usage: usage}
	}
	cols, err := parseDimension(tokens[2])
	if err != nil {
		return Request{}, &UsageError{Kind: kind, Reason: fmt.Sprintf("width: %v", err), Usage: usage}
	}
	return NewRequest(kind, tokens[0], rows, cols, tokens[3:])
}

func parseDimension(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%q is not a number", s)
	}
	return n, nil
}

// Kind returns the dialog kind.
func (r Request) Kind() Kind { return r.kind }

// Text returns the raw display text (or file name for file dialogs).
func (r Request) Text() string { return r.text }

// Rows returns the requested height; SizeAuto or SizeMax are sentinels.
func (r Request) Rows() int { return r.rows }

// Cols returns the requested width; SizeAuto or SizeMax are sentinels.
func (r Request) Cols() int { return r.cols }

// Args returns a copy of the kind-specific positional arguments.
func (r Request) Args() []string { return append([]string(nil), r.args...) }

// NArgs returns the number of kind-specific arguments.
func (r Request) NArgs() int { return len(r.args) }

// Arg returns the i-th kind-specific argument, or "" when absent.
func (r Request) Arg(i int) string {
	if i < 0 || i >= len(r.args) {
		return ""
	}
	return r.args[i]
}

// IntArg parses the i-th argument best effort, returning def when absent or invalid.
func (r Request) IntArg(i, def int) int {
	s := strings.TrimSpace(r.Arg(i))
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
