package stream

import (
	"strings"
	"testing"
)

func TestGaugeDialect_Examples(t *testing.T) {
	tests := []struct {
		name        string
		parts       []string
		wantPercent int
		wantMessage string
	}{
		{
			name:        "record with message",
			parts:       []string{"XXX\n50\ncompiling\n"},
			wantPercent: 50,
			wantMessage: "compiling",
		},
		{
			name:        "continuation joins with newline",
			parts:       []string{"XXX\n50\ncompiling\nstage 2\n"},
			wantPercent: 50,
			wantMessage: "compiling\nstage 2",
		},
		{
			name:        "line split across reads",
			parts:       []string{"XXX\n50\ncompil", "ing\n"},
			wantPercent: 50,
			wantMessage: "compiling",
		},
		{
			name:        "plain percentages",
			parts:       []string{"10\n20\n30\n"},
			wantPercent: 30,
			wantMessage: "",
		},
		{
			name:        "percentage clears message",
			parts:       []string{"working\n40\n"},
			wantPercent: 40,
			wantMessage: "",
		},
		{
			name:        "text outside a record replaces",
			parts:       []string{"first\nsecond\n"},
			wantPercent: 0,
			wantMessage: "second",
		},
		{
			name:        "second record replaces first",
			parts:       []string{"XXX\n10\none\nXXX\n20\ntwo\nXXX\n"},
			wantPercent: 20,
			wantMessage: "two",
		},
		{
			name:        "non numeric value is text",
			parts:       []string{"XXX\nhalf way\nthere\n"},
			wantPercent: 0,
			wantMessage: "half way\nthere",
		},
		{
			name:        "numeric line after percentage is text",
			parts:       []string{"XXX\n50\n2024\n"},
			wantPercent: 50,
			wantMessage: "2024",
		},
		{
			name:        "unterminated last line is kept",
			parts:       []string{"XXX\n70\ndone"},
			wantPercent: 70,
			wantMessage: "done",
		},
		{
			name:        "carriage returns are stripped",
			parts:       []string{"XXX\r\n60\r\nwin\r\n"},
			wantPercent: 60,
			wantMessage: "win",
		},
		{
			name:        "blank first line is kept",
			parts:       []string{"XXX\n50\n\nline\n"},
			wantPercent: 50,
			wantMessage: "\nline",
		},
		{
			name:        "blank lines inside a record",
			parts:       []string{"XXX\n50\none\n\ntwo\n"},
			wantPercent: 50,
			wantMessage: "one\n\ntwo",
		},
		{
			name:        "blank first line split across reads",
			parts:       []string{"XXX\n50\n", "\nli", "ne\n"},
			wantPercent: 50,
			wantMessage: "\nline",
		},
		{
			name:        "sentinel text inside a line is data",
			parts:       []string{"XXX\n5\nreading EOF marker\nXXX is fine\n"},
			wantPercent: 5,
			wantMessage: "reading EOF marker\nXXX is fine",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, g, _ := runGauge(tt.parts...)
			if g.Percent() != tt.wantPercent {
				t.Errorf("Percent() = %d, want %d", g.Percent(), tt.wantPercent)
			}
			if d.message != tt.wantMessage {
				t.Errorf("displayed message = %q, want %q", d.message, tt.wantMessage)
			}
			if g.Message() != tt.wantMessage {
				t.Errorf("Message() = %q, want %q", g.Message(), tt.wantMessage)
			}
		})
	}
}

func TestGaugeDialect_ChunkSplitInvariance(t *testing.T) {
	inputs := []string{
		"XXX\n50\ncompiling\nstage 2\n",
		"10\n20\nXXX\n45\nlinking\nobjects\nXXX\n99\ndone\n",
		"XXX\n30\nEOF\nnot reached\n",
		"plain text\n77\nXXX\n12\nmulti\nline\nmessage\n",
		"XXX\n50\nlast line without newline",
		"XXX\r\n5\r\ncrlf\r\n",
	}

	for _, input := range inputs {
		wantD, wantG, wantStop := runGauge(input)

		// every single cut
		for i := 1; i < len(input); i++ {
			d, g, stop := runGauge(splitAt(input, i)...)
			if d.message != wantD.message || g.Percent() != wantG.Percent() || stop != wantStop {
				t.Errorf("input %q cut at %d: got (%q, %d, %v), want (%q, %d, %v)",
					input, i, d.message, g.Percent(), stop, wantD.message, wantG.Percent(), wantStop)
			}
		}

		// every pair of cuts
		for i := 1; i < len(input); i++ {
			for j := i + 1; j < len(input); j++ {
				d, g, stop := runGauge(splitAt(input, i, j)...)
				if d.message != wantD.message || g.Percent() != wantG.Percent() || stop != wantStop {
					t.Errorf("input %q cut at %d,%d: got (%q, %d), want (%q, %d)",
						input, i, j, d.message, g.Percent(), wantD.message, wantG.Percent())
				}
			}
		}

		// byte at a time
		var bytesOneByOne []string
		for i := 0; i < len(input); i++ {
			bytesOneByOne = append(bytesOneByOne, input[i:i+1])
		}
		d, g, _ := runGauge(bytesOneByOne...)
		if d.message != wantD.message || g.Percent() != wantG.Percent() {
			t.Errorf("input %q byte by byte: got (%q, %d), want (%q, %d)",
				input, d.message, g.Percent(), wantD.message, wantG.Percent())
		}
	}
}

func TestGaugeDialect_Clamping(t *testing.T) {
	tests := []struct {
		line string
		want int
	}{
		{"0", 0},
		{"100", 100},
		{"101", 100},
		{"99999999999999999999999999", 100},
		{"  42  ", 42},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			_, g, _ := runGauge(tt.line + "\n")
			if g.Percent() != tt.want {
				t.Errorf("Percent() = %d, want %d", g.Percent(), tt.want)
			}
		})
	}
}

func TestGaugeDialect_NegativeLookingNumberIsText(t *testing.T) {
	d, g, _ := runGauge("30\n-5\n")
	if g.Percent() != 30 {
		t.Errorf("Percent() = %d, want 30", g.Percent())
	}
	if d.message != "-5" {
		t.Errorf("message = %q, want %q", d.message, "-5")
	}
	for _, p := range d.percents {
		if p < 0 || p > 100 {
			t.Errorf("display saw out-of-range percent %d", p)
		}
	}
}

func TestGaugeDialect_EOFStopsBeforeFollowingLines(t *testing.T) {
	d := &recordingDisplay{}
	g := NewGaugeDialect(d, 0)

	stop := g.Feed([]byte("XXX\n40\nbuilding\nEOF\n90\nafter eof\n"))
	if !stop {
		t.Fatal("Feed should report the EOF sentinel")
	}
	if g.Percent() != 40 {
		t.Errorf("Percent() = %d, want 40", g.Percent())
	}
	if d.message != "building" {
		t.Errorf("message = %q, want %q", d.message, "building")
	}
}

func TestGaugeDialect_StateTransitions(t *testing.T) {
	d := &recordingDisplay{}
	g := NewGaugeDialect(d, 0)

	steps := []struct {
		input string
		want  ParseState
	}{
		{"", StateUninitialized},
		{"XXX\n", StateAwaitingValue},
		{"50\n", StateTextSet},
		{"msg\n", StateTextAppending},
		{"more", StateTextAppendingContinued},
		{" text\n", StateTextAppending},
		{"XXX\n", StateAwaitingValue},
	}
	for _, st := range steps {
		g.Feed([]byte(st.input))
		if g.State() != st.want {
			t.Fatalf("after %q: state = %v, want %v", st.input, g.State(), st.want)
		}
	}
	if g.Message() != "msg\nmore text" {
		t.Errorf("Message() = %q", g.Message())
	}
}

func TestGaugeDialect_PartialLineShownProvisionally(t *testing.T) {
	d := &recordingDisplay{}
	g := NewGaugeDialect(d, 0)

	g.Feed([]byte("XXX\n50\nfirst\nsec"))
	if d.message != "first\nsec" {
		t.Errorf("provisional message = %q, want %q", d.message, "first\nsec")
	}
	if g.Message() != "first" {
		t.Errorf("committed message = %q, want %q", g.Message(), "first")
	}

	g.Feed([]byte("ond\n"))
	if d.message != "first\nsecond" {
		t.Errorf("message = %q, want %q", d.message, "first\nsecond")
	}
}

func TestGaugeDialect_ProvisionalSentinelIsRestored(t *testing.T) {
	d := &recordingDisplay{}
	g := NewGaugeDialect(d, 0)

	g.Feed([]byte("XXX\n50\nbody\nXX"))
	g.Feed([]byte("X\n"))
	if d.message != "body" {
		t.Errorf("message = %q, want %q", d.message, "body")
	}
	if g.State() != StateAwaitingValue {
		t.Errorf("state = %v, want awaiting-value", g.State())
	}
}

func TestGaugeDialect_InitialPercentIsClamped(t *testing.T) {
	g := NewGaugeDialect(&recordingDisplay{}, 250)
	if g.Percent() != 100 {
		t.Errorf("Percent() = %d, want 100", g.Percent())
	}
}

func TestJoinMessage(t *testing.T) {
	if got := joinMessage("", "a"); got != "\na" {
		t.Errorf("joinMessage(\"\", a) = %q, want %q", got, "\na")
	}
	if got := joinMessage("a", "b"); got != "a\nb" {
		t.Errorf("joinMessage(a, b) = %q", got)
	}
	long := strings.Repeat("x", 100)
	if got := joinMessage(long, long); len(got) != 201 {
		t.Errorf("len = %d, want 201", len(got))
	}
}
