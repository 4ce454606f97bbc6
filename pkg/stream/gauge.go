package stream

import "strings"

// Sentinel lines of the gauge dialect.
const (
	SentinelSeparator = "XXX"
	SentinelEOF       = "EOF"
)

// ParseState is the gauge dialect's position within a record.
type ParseState int

const (
	// StateUninitialized is outside any XXX record.
	StateUninitialized ParseState = iota
	// StateAwaitingValue follows an XXX separator; a percentage is expected.
	StateAwaitingValue
	// StateTextSet follows the percentage; the next line replaces the message.
	StateTextSet
	// StateTextAppending appends each line to the message.
	StateTextAppending
	// StateTextAppendingContinued holds an unterminated line across reads.
	StateTextAppendingContinued
)

// String returns the state name.
func (s ParseState) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateAwaitingValue:
		return "awaiting-value"
	case StateTextSet:
		return "text-set"
	case StateTextAppending:
		return "text-appending"
	case StateTextAppendingContinued:
		return "text-appending-continued"
	default:
		return "unknown"
	}
}

// GaugeDisplay is the widget side of the gauge dialect.
type GaugeDisplay interface {
	// SetPercent updates the bar fraction and its "<n> %" label.
	SetPercent(percent int)
	// SetMessage replaces the displayed message.
	SetMessage(text string)
}

// GaugeDialect parses the gauge protocol:
//
//	XXX         start a record, a percentage follows
//	EOF         end the stream
//	<digits>    set the percentage (clamped to 0..100) and clear the message
//	<text>      set, then append to, the message
type GaugeDialect struct {
	display GaugeDisplay
	state   ParseState
	resume  ParseState
	carry   []byte
	message string
	percent int

	provisional bool
}

// NewGaugeDialect creates a parser that starts at the given percentage.
func NewGaugeDialect(display GaugeDisplay, initial int) *GaugeDialect {
	g := &GaugeDialect{display: display}
	g.percent = clamp(initial, 0, 100)
	return g
}

// State returns the current parse state.
func (g *GaugeDialect) State() ParseState { return g.state }

// Message returns the committed message text.
func (g *GaugeDialect) Message() string { return g.message }

// Percent returns the last percentage.
func (g *GaugeDialect) Percent() int { return g.percent }

// Feed implements Dialect.
func (g *GaugeDialect) Feed(chunk []byte) bool {
	if g.state == StateTextAppendingContinued {
		g.state = g.resume
	}
	rest, stopped := splitLines(g.carry, chunk, g.line)
	g.carry = rest
	if stopped {
		return true
	}
	if len(g.carry) > 0 {
		g.showPartial()
	}
	return false
}

// Flush implements Dialect. An unterminated last line counts as a line.
func (g *GaugeDialect) Flush() {
	if g.state == StateTextAppendingContinued {
		g.state = g.resume
	}
	if len(g.carry) == 0 {
		return
	}
	line := strings.TrimSuffix(string(g.carry), "\r")
	g.carry = nil
	g.line(line)
}

func (g *GaugeDialect) line(s string) bool {
	if g.provisional {
		g.provisional = false
		g.display.SetMessage(g.message)
	}

	switch strings.TrimSpace(s) {
	case SentinelSeparator:
		g.state = StateAwaitingValue
		return false
	case SentinelEOF:
		return true
	}

	switch g.state {
	case StateUninitialized:
		if isDigits(s) {
			g.setPercent(scanUint(s, 100))
			return false
		}
		g.setMessage(s)
	case StateAwaitingValue:
		if isDigits(s) {
			g.setPercent(scanUint(s, 100))
			g.state = StateTextSet
			return false
		}
		g.setMessage(s)
		g.state = StateTextAppending
	case StateTextSet:
		g.setMessage(s)
		g.state = StateTextAppending
	case StateTextAppending:
		g.appendMessage(s)
	}
	return false
}

// showPartial displays a line still waiting for its newline so slow
// producers are visible. The committed message is not changed.
func (g *GaugeDialect) showPartial() {
	partial := strings.TrimSuffix(string(g.carry), "\r")
	switch g.state {
	case StateTextSet:
		g.display.SetMessage(partial)
	case StateTextAppending:
		g.display.SetMessage(joinMessage(g.message, partial))
	default:
		return
	}
	g.provisional = true
	g.resume = g.state
	g.state = StateTextAppendingContinued
}

func (g *GaugeDialect) setPercent(p int) {
	g.percent = clamp(p, 0, 100)
	g.display.SetPercent(g.percent)
	g.message = ""
	g.display.SetMessage("")
}

func (g *GaugeDialect) setMessage(s string) {
	g.message = s
	g.display.SetMessage(s)
}

func (g *GaugeDialect) appendMessage(s string) {
	g.message = joinMessage(g.message, s)
	g.display.SetMessage(g.message)
}

// joinMessage appends a line to a message that has been set. A blank first
// line still counts, so the separator is always written.
func joinMessage(old, next string) string {
	var b strings.Builder
	b.Grow(len(old) + len(next) + 2)
	b.WriteString(old)
	b.WriteByte('\n')
	b.WriteString(next)
	return b.String()
}
