package stream

import (
	"io"
	"strings"
	"sync"
)

type recordingDisplay struct {
	percent  int
	message  string
	value    int
	max      int
	percents []int
	lines    []string
}

func (d *recordingDisplay) SetPercent(p int) {
	d.percent = p
	d.percents = append(d.percents, p)
}

func (d *recordingDisplay) SetMessage(text string) { d.message = text }

func (d *recordingDisplay) SetValue(value, max int) {
	d.value = value
	d.max = max
}

func (d *recordingDisplay) AppendLine(line string) { d.lines = append(d.lines, line) }

// scriptedSource returns one scripted step per Read call.
type scriptedSource struct {
	steps  []step
	closed int
}

type step struct {
	data string
	err  error
}

func (s *scriptedSource) Read(p []byte) (int, error) {
	if len(s.steps) == 0 {
		return 0, io.EOF
	}
	st := s.steps[0]
	s.steps = s.steps[1:]
	if st.err != nil {
		return 0, st.err
	}
	n := copy(p, st.data)
	return n, nil
}

func (s *scriptedSource) Close() error {
	s.closed++
	return nil
}

func (s *scriptedSource) Name() string { return "scripted" }

func chunks(parts ...string) *scriptedSource {
	src := &scriptedSource{}
	for _, p := range parts {
		src.steps = append(src.steps, step{data: p})
	}
	return src
}

type fakeWatch struct {
	mu      sync.Mutex
	id      uint64
	stopped int
	ch      chan ReadyMsg
}

func newFakeWatch() *fakeWatch {
	return &fakeWatch{id: nextWatchID(), ch: make(chan ReadyMsg)}
}

func (w *fakeWatch) ID() uint64             { return w.id }
func (w *fakeWatch) Ready() <-chan ReadyMsg { return w.ch }
func (w *fakeWatch) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.stopped++
}

// runGauge feeds parts through a GaugeDialect as separate chunks, flushing at
// the end, and returns the display.
func runGauge(parts ...string) (*recordingDisplay, *GaugeDialect, bool) {
	d := &recordingDisplay{}
	g := NewGaugeDialect(d, 0)
	for _, p := range parts {
		if g.Feed([]byte(p)) {
			return d, g, true
		}
	}
	g.Flush()
	return d, g, false
}

func splitAt(s string, cuts ...int) []string {
	var out []string
	prev := 0
	for _, c := range cuts {
		out = append(out, s[prev:c])
		prev = c
	}
	return append(out, s[prev:])
}

func joinLines(lines ...string) string {
	return strings.Join(lines, "\n")
}
