package stream

import (
	"errors"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/andri/tdialog/internal/logger"
	"github.com/fsnotify/fsnotify"
	"golang.org/x/sys/unix"
)

// Condition is the readiness condition carried by a notification.
type Condition uint8

const (
	CondIn Condition = 1 << iota
	CondHup
	CondErr
	CondNval
)

// Readable reports whether the condition allows a read. A hang-up counts as
// readable: the read that follows returns the remaining bytes or EOF.
func (c Condition) Readable() bool {
	if c&(CondErr|CondNval) != 0 {
		return false
	}
	return c&(CondIn|CondHup) != 0
}

// String renders the condition bits for logs.
func (c Condition) String() string {
	var out string
	for _, b := range []struct {
		bit  Condition
		name string
	}{{CondIn, "in"}, {CondHup, "hup"}, {CondErr, "err"}, {CondNval, "nval"}} {
		if c&b.bit != 0 {
			if out != "" {
				out += "|"
			}
			out += b.name
		}
	}
	if out == "" {
		return "none"
	}
	return out
}

// Disposition is the handler's answer to a notification.
type Disposition int

const (
	// DispositionMore means more data may be pending without a new readiness edge.
	DispositionMore Disposition = iota
	// DispositionDrained means the last read hit would-block or end of file.
	DispositionDrained
	// DispositionDone means the stream was finalized; the watch should exit.
	DispositionDone
)

// ReadyMsg is one readiness notification. The handler must call Ack once.
type ReadyMsg struct {
	ID   uint64
	Cond Condition
	ack  chan Disposition
}

// Ack hands the handler's disposition back to the watcher.
func (m ReadyMsg) Ack(d Disposition) {
	if m.ack == nil {
		return
	}
	select {
	case m.ack <- d:
	default:
	}
}

// Watch delivers readiness notifications for one source. Dispatch is
// serialized: no new notification is produced until the previous one was
// acknowledged.
type Watch interface {
	ID() uint64
	Ready() <-chan ReadyMsg
	Stop()
}

var watchSeq atomic.Uint64

func nextWatchID() uint64 {
	return watchSeq.Add(1)
}

type baseWatch struct {
	id       uint64
	out      chan ReadyMsg
	ack      chan Disposition
	stop     chan struct{}
	stopOnce sync.Once
}

func newBaseWatch() baseWatch {
	return baseWatch{
		id:   nextWatchID(),
		out:  make(chan ReadyMsg),
		ack:  make(chan Disposition, 1),
		stop: make(chan struct{}),
	}
}

func (w *baseWatch) ID() uint64 { return w.id }

func (w *baseWatch) Ready() <-chan ReadyMsg { return w.out }

func (w *baseWatch) Stop() {
	w.stopOnce.Do(func() { close(w.stop) })
}

// dispatch sends one notification and waits for its acknowledgement.
// It returns false when the watch was stopped.
func (w *baseWatch) dispatch(cond Condition) (Disposition, bool) {
	msg := ReadyMsg{ID: w.id, Cond: cond, ack: w.ack}
	select {
	case w.out <- msg:
	case <-w.stop:
		return DispositionDone, false
	}
	select {
	case d := <-w.ack:
		return d, d != DispositionDone
	case <-w.stop:
		return DispositionDone, false
	}
}

// pollTimeoutMS bounds each poll(2) so Stop is observed promptly.
const pollTimeoutMS = 100

// PollWatch reports readiness of a descriptor using poll(2).
type PollWatch struct {
	baseWatch
	fd int
}

// NewPollWatch starts watching fd.
func NewPollWatch(fd int) *PollWatch {
	w := &PollWatch{baseWatch: newBaseWatch(), fd: fd}
	go w.run()
	return w
}

func (w *PollWatch) run() {
	log := logger.With("component", "stream.poll", "watch", w.id)
	fds := []unix.PollFd{{Fd: int32(w.fd), Events: unix.POLLIN}}
	for {
		select {
		case <-w.stop:
			return
		default:
		}

		fds[0].Revents = 0
		n, err := unix.Poll(fds, pollTimeoutMS)
		var cond Condition
		switch {
		case errors.Is(err, unix.EINTR):
			continue
		case err != nil:
			log.Debug("poll failed", "error", err)
			cond = CondErr
		case n == 0:
			continue
		default:
			cond = conditionFromRevents(fds[0].Revents)
		}

		if _, ok := w.dispatch(cond); !ok {
			return
		}
	}
}

func conditionFromRevents(revents int16) Condition {
	var c Condition
	if revents&unix.POLLIN != 0 {
		c |= CondIn
	}
	if revents&unix.POLLHUP != 0 {
		c |= CondHup
	}
	if revents&unix.POLLERR != 0 {
		c |= CondErr
	}
	if revents&unix.POLLNVAL != 0 {
		c |= CondNval
	}
	return c
}

// FollowWatch reports a regular file readable until the handler drains it,
// then waits for the file to grow.
type FollowWatch struct {
	baseWatch
	path    string
	watcher *fsnotify.Watcher
}

// NewFollowWatch starts following path.
func NewFollowWatch(path string) (*FollowWatch, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, &IOError{Op: "watch", Name: path, Err: err}
	}
	if err := watcher.Add(path); err != nil {
		_ = watcher.Close()
		return nil, &IOError{Op: "watch", Name: path, Err: err}
	}
	w := &FollowWatch{baseWatch: newBaseWatch(), path: filepath.Clean(path), watcher: watcher}
	go w.run()
	return w, nil
}

func (w *FollowWatch) run() {
	log := logger.With("component", "stream.follow", "watch", w.id, "path", w.path)
	defer func() {
		if err := w.watcher.Close(); err != nil {
			log.Debug("close watcher", "error", err)
		}
	}()

	for {
		d, ok := w.dispatch(CondIn)
		if !ok {
			return
		}
		if d == DispositionMore {
			continue
		}
		if !w.waitForGrowth(log) {
			return
		}
	}
}

func (w *FollowWatch) waitForGrowth(log *logger.Logger) bool {
	for {
		select {
		case <-w.stop:
			return false
		case event, ok := <-w.watcher.Events:
			if !ok {
				return false
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Has(fsnotify.Write) {
				return true
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return false
			}
			log.Debug("watcher error", "error", err)
		}
	}
}
