package stream

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func nextReady(t *testing.T, w Watch) ReadyMsg {
	t.Helper()
	select {
	case msg := <-w.Ready():
		return msg
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for readiness")
	}
	return ReadyMsg{}
}

func TestPollWatch_PipeToCompletion(t *testing.T) {
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = w.Close() }()

	src, err := newFDSource(r, "pipe", false)
	if err != nil {
		t.Fatal(err)
	}

	finalized := make(chan Reason, 1)
	s, d, _ := newGaugeState(src, Options{OnFinalize: func(r Reason) { finalized <- r }})
	watch := NewPollWatch(src.Fd())
	s.Attach(watch)

	if _, err := w.Write([]byte("XXX\n50\ncompil")); err != nil {
		t.Fatal(err)
	}
	s.Handle(nextReady(t, watch))

	if _, err := w.Write([]byte("ing\n")); err != nil {
		t.Fatal(err)
	}
	_ = w.Close()

	for !s.Finalized() {
		s.Handle(nextReady(t, watch))
	}

	if got := <-finalized; got != ReasonEOF {
		t.Errorf("reason = %v, want eof", got)
	}
	if d.percent != 50 || d.message != "compiling" {
		t.Errorf("display = (%d, %q), want (50, compiling)", d.percent, d.message)
	}
}

func TestPollWatch_StopIsIdempotent(t *testing.T) {
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	defer func() {
		_ = r.Close()
		_ = w.Close()
	}()

	watch := NewPollWatch(int(r.Fd()))
	watch.Stop()
	watch.Stop()
}

func TestFollowWatch_SeesAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	if err := os.WriteFile(path, []byte("first\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	src, err := OpenSource(path)
	if err != nil {
		t.Fatal(err)
	}
	if !src.IsRegular() {
		t.Fatal("expected a regular file source")
	}

	sink := &recordingDisplay{}
	s := New(src, NewLineDialect(sink, StampNone), Options{Follow: true})
	watch, err := NewFollowWatch(path)
	if err != nil {
		t.Fatal(err)
	}
	s.Attach(watch)
	defer s.Close()

	// read "first", then hit EOF
	for len(sink.lines) < 1 {
		s.Handle(nextReady(t, watch))
	}
	s.Handle(nextReady(t, watch))

	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.WriteString("second\n"); err != nil {
		t.Fatal(err)
	}
	_ = f.Close()

	for len(sink.lines) < 2 {
		s.Handle(nextReady(t, watch))
	}
	if sink.lines[1] != "second" {
		t.Errorf("lines = %v", sink.lines)
	}
}

func TestOpenSource_MissingFile(t *testing.T) {
	_, err := OpenSource(filepath.Join(t.TempDir(), "missing"))
	if err == nil {
		t.Fatal("expected error")
	}
	if _, ok := err.(*IOError); !ok {
		t.Errorf("error type = %T, want *IOError", err)
	}
}
