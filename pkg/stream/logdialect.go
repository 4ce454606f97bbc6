package stream

import (
	"strings"
	"time"
)

// LineSink receives complete lines.
type LineSink interface {
	AppendLine(line string)
}

// StampMode selects the prefix added to each logged line.
type StampMode int

const (
	StampNone StampMode = iota
	StampTime
	StampDate
)

// LineDialect forwards every complete line to a sink, optionally stamped
// with its arrival time.
type LineDialect struct {
	sink  LineSink
	stamp StampMode
	now   func() time.Time
	carry []byte
}

// NewLineDialect creates a line dialect.
func NewLineDialect(sink LineSink, stamp StampMode) *LineDialect {
	return &LineDialect{sink: sink, stamp: stamp, now: time.Now}
}

// SetClock replaces the clock used for stamps.
func (l *LineDialect) SetClock(now func() time.Time) {
	l.now = now
}

// Feed implements Dialect. The line dialect has no end sentinel.
func (l *LineDialect) Feed(chunk []byte) bool {
	l.carry, _ = splitLines(l.carry, chunk, func(line string) bool {
		l.emit(line)
		return false
	})
	return false
}

// Flush implements Dialect.
func (l *LineDialect) Flush() {
	if len(l.carry) == 0 {
		return
	}
	line := strings.TrimSuffix(string(l.carry), "\r")
	l.carry = nil
	l.emit(line)
}

func (l *LineDialect) emit(line string) {
	switch l.stamp {
	case StampTime:
		line = l.now().Format("[15:04:05] ") + line
	case StampDate:
		line = l.now().Format("[2006/01/02 15:04:05] ") + line
	}
	l.sink.AppendLine(line)
}
