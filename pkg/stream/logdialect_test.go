package stream

import (
	"testing"
	"time"
)

func TestLineDialect_SplitsAndCarries(t *testing.T) {
	sink := &recordingDisplay{}
	l := NewLineDialect(sink, StampNone)

	l.Feed([]byte("one\ntw"))
	l.Feed([]byte("o\r\nthree"))
	if len(sink.lines) != 2 {
		t.Fatalf("lines before flush = %v", sink.lines)
	}
	l.Flush()

	want := []string{"one", "two", "three"}
	if len(sink.lines) != len(want) {
		t.Fatalf("lines = %v, want %v", sink.lines, want)
	}
	for i := range want {
		if sink.lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, sink.lines[i], want[i])
		}
	}
}

func TestLineDialect_Stamps(t *testing.T) {
	clock := func() time.Time { return time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC) }

	tests := []struct {
		mode StampMode
		want string
	}{
		{StampNone, "msg"},
		{StampTime, "[05:06:07] msg"},
		{StampDate, "[2026/03/04 05:06:07] msg"},
	}
	for _, tt := range tests {
		sink := &recordingDisplay{}
		l := NewLineDialect(sink, tt.mode)
		l.SetClock(clock)
		l.Feed([]byte("msg\n"))
		if len(sink.lines) != 1 || sink.lines[0] != tt.want {
			t.Errorf("mode %d: lines = %v, want [%q]", tt.mode, sink.lines, tt.want)
		}
	}
}
