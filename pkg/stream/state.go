package stream

import (
	"errors"
	"fmt"
	"io"

	"github.com/andri/tdialog/internal/logger"
)

// ScratchSize is the size of the per-notification read buffer.
const ScratchSize = 4096

// Reason tells the finalize hook why the stream ended.
type Reason int

const (
	ReasonEOF Reason = iota
	ReasonSentinel
	ReasonError
	ReasonClosed
)

// String returns a short name for logs.
func (r Reason) String() string {
	switch r {
	case ReasonEOF:
		return "eof"
	case ReasonSentinel:
		return "sentinel"
	case ReasonError:
		return "error"
	case ReasonClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// Dialect parses the bytes of one read. Feed returns true when an end
// sentinel was seen; Flush processes whatever is still carried at EOF.
type Dialect interface {
	Feed(chunk []byte) (stop bool)
	Flush()
}

// Options configures a State.
type Options struct {
	// Follow keeps the stream open at EOF and waits for more data.
	Follow bool
	// OnFinalize runs exactly once when the stream ends.
	OnFinalize func(Reason)
	// OnError surfaces read failures to the user.
	OnError func(error)
}

// State owns one input stream and feeds it to a dialect. All methods must
// be called from the UI loop.
type State struct {
	src     Source
	dialect Dialect
	opts    Options
	scratch []byte

	watch   Watch
	watchID uint64
	done    bool

	log *logger.Logger
}

// New creates a State reading src through dialect.
func New(src Source, dialect Dialect, opts Options) *State {
	return &State{
		src:     src,
		dialect: dialect,
		opts:    opts,
		scratch: make([]byte, ScratchSize),
		log:     logger.With("component", "stream", "source", src.Name()),
	}
}

// Attach registers the watch whose notifications drive this state.
func (s *State) Attach(w Watch) {
	s.watch = w
	s.watchID = w.ID()
}

// WatchID returns the registered watch id, 0 once finalized.
func (s *State) WatchID() uint64 { return s.watchID }

// Finalized reports whether the stream has ended.
func (s *State) Finalized() bool { return s.done }

// Handle processes a notification addressed to this state and acknowledges
// it. Notifications for other or stale watches are acknowledged as done.
func (s *State) Handle(msg ReadyMsg) {
	if s.done || msg.ID != s.watchID {
		msg.Ack(DispositionDone)
		return
	}
	msg.Ack(s.OnReadable(msg.Cond))
}

// OnReadable runs one read cycle.
func (s *State) OnReadable(cond Condition) Disposition {
	if s.done {
		return DispositionDone
	}
	if !cond.Readable() {
		s.fail(&IOError{Op: "poll", Name: s.src.Name(), Err: fmt.Errorf("unexpected condition %s", cond)})
		return DispositionDone
	}

	n, err := s.src.Read(s.scratch)
	switch {
	case errors.Is(err, ErrWouldBlock):
		return DispositionDrained
	case errors.Is(err, io.EOF):
		if s.opts.Follow {
			return DispositionDrained
		}
		s.dialect.Flush()
		s.Finalize(ReasonEOF)
		return DispositionDone
	case err != nil:
		s.fail(err)
		return DispositionDone
	}

	s.log.Debug("chunk", "bytes", n)
	if s.dialect.Feed(s.scratch[:n]) {
		s.Finalize(ReasonSentinel)
		return DispositionDone
	}
	return DispositionMore
}

func (s *State) fail(err error) {
	s.log.Warn("stream failed", "error", err)
	if s.opts.OnError != nil {
		s.opts.OnError(err)
	}
	s.dialect.Flush()
	s.Finalize(ReasonError)
}

// Finalize unregisters the watch, closes the source and runs the finalize
// hook. Calls after the first are no-ops.
func (s *State) Finalize(reason Reason) {
	if s.done {
		return
	}
	s.done = true
	s.watchID = 0
	if s.watch != nil {
		s.watch.Stop()
		s.watch = nil
	}
	if err := s.src.Close(); err != nil {
		s.log.Debug("close source", "error", err)
	}
	s.log.Debug("stream finalized", "reason", reason)
	if s.opts.OnFinalize != nil {
		s.opts.OnFinalize(reason)
	}
}

// Close ends the stream because its dialog is going away.
func (s *State) Close() {
	s.Finalize(ReasonClosed)
}
