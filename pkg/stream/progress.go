package stream

import "strings"

// ProgressDisplay is the widget side of the progress dialect.
type ProgressDisplay interface {
	SetValue(value, max int)
	SetMessage(text string)
}

// ProgressDialect parses the progress protocol. Each read may start with
// SkipLen ignored bytes and CaptionLen caption bytes; the rest holds digit
// lines (explicit values) or arbitrary bytes, each of which advances an
// implicit counter.
type ProgressDialect struct {
	display    ProgressDisplay
	max        int
	captionLen int
	skipLen    int

	count   int
	value   int
	carry   []byte
	tainted bool
}

// ProgressOptions configures a ProgressDialect.
type ProgressOptions struct {
	Max        int
	CaptionLen int
	SkipLen    int
}

// NewProgressDialect creates a parser. Max defaults to 100.
func NewProgressDialect(display ProgressDisplay, opts ProgressOptions) *ProgressDialect {
	if opts.Max <= 0 {
		opts.Max = 100
	}
	return &ProgressDialect{
		display:    display,
		max:        opts.Max,
		captionLen: max(opts.CaptionLen, 0),
		skipLen:    max(opts.SkipLen, 0),
	}
}

// Value returns the current value.
func (p *ProgressDialect) Value() int { return p.value }

// Max returns the configured maximum.
func (p *ProgressDialect) Max() int { return p.max }

// Feed implements Dialect.
func (p *ProgressDialect) Feed(chunk []byte) bool {
	data := chunk
	skip := min(p.skipLen, len(data))
	data = data[skip:]

	if p.captionLen > 0 && len(data) > 0 {
		n := min(p.captionLen, len(data))
		p.display.SetMessage(strings.TrimRight(string(data[:n]), "\r\n"))
		data = data[n:]
	}

	for len(data) > 0 {
		i := indexNewline(data)
		if i < 0 {
			p.partial(data)
			return false
		}
		p.complete(data[:i])
		data = data[i+1:]
	}
	return false
}

// Flush implements Dialect.
func (p *ProgressDialect) Flush() {
	if len(p.carry) > 0 || p.tainted {
		p.complete(nil)
	}
}

func (p *ProgressDialect) partial(seg []byte) {
	if !p.tainted && isDigitRun(seg) {
		p.carry = append(p.carry, seg...)
		return
	}
	p.tainted = true
	p.countBytes(len(p.carry) + countVisible(seg))
	p.carry = nil
}

func (p *ProgressDialect) complete(seg []byte) {
	defer func() {
		p.carry = nil
		p.tainted = false
	}()
	if p.tainted {
		p.countBytes(countVisible(seg))
		return
	}
	line := string(p.carry) + strings.TrimSuffix(string(seg), "\r")
	if isDigits(line) {
		p.setValue(scanUint(line, p.max))
		return
	}
	p.countBytes(countVisible([]byte(line)))
}

func (p *ProgressDialect) countBytes(n int) {
	if n <= 0 {
		return
	}
	p.count += n
	p.setValue(p.count)
}

func (p *ProgressDialect) setValue(v int) {
	p.value = clamp(v, 0, p.max)
	p.display.SetValue(p.value, p.max)
}

func indexNewline(b []byte) int {
	for i, c := range b {
		if c == '\n' {
			return i
		}
	}
	return -1
}

func isDigitRun(b []byte) bool {
	for _, c := range b {
		if (c < '0' || c > '9') && c != ' ' && c != '\t' {
			return false
		}
	}
	return true
}

func countVisible(b []byte) int {
	n := 0
	for _, c := range b {
		if c != '\r' && c != '\n' {
			n++
		}
	}
	return n
}
