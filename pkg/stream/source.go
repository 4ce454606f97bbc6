// Package stream implements the non-blocking input state machine shared by
// the gauge, mixed gauge, progress, tailbox and logbox dialogs.
package stream

import (
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/sys/unix"
)

// ErrWouldBlock is returned by Source.Read when no data is ready yet.
var ErrWouldBlock = errors.New("read would block")

// Source is a non-blocking byte source. Read returns ErrWouldBlock when
// nothing is available and io.EOF at end of stream.
type Source interface {
	Read(p []byte) (int, error)
	Close() error
	Name() string
}

// IOError wraps a failed open or read on a stream.
type IOError struct {
	Op   string
	Name string
	Err  error
}

// Error implements the error interface.
func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Name, e.Err)
}

// Unwrap returns the underlying error.
func (e *IOError) Unwrap() error {
	return e.Err
}

// FDSource reads a file descriptor switched to non-blocking mode.
type FDSource struct {
	file    *os.File
	fd      int
	name    string
	stdin   bool
	regular bool
	closed  bool
}

// OpenSource opens path for streaming. "-" and "" select standard input.
func OpenSource(path string) (*FDSource, error) {
	if path == "" || path == "-" {
		return newFDSource(os.Stdin, "stdin", true)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, &IOError{Op: "open", Name: path, Err: err}
	}
	src, err := newFDSource(f, path, false)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	return src, nil
}

func newFDSource(f *os.File, name string, stdin bool) (*FDSource, error) {
	info, err := f.Stat()
	if err != nil {
		return nil, &IOError{Op: "stat", Name: name, Err: err}
	}
	// Fd() puts the descriptor back into blocking mode, so switch it
	// afterwards and keep f referenced for the lifetime of the source.
	fd := int(f.Fd())
	if err := unix.SetNonblock(fd, true); err != nil {
		return nil, &IOError{Op: "fcntl", Name: name, Err: err}
	}
	return &FDSource{
		file:    f,
		fd:      fd,
		name:    name,
		stdin:   stdin,
		regular: info.Mode().IsRegular(),
	}, nil
}

// Read performs one bounded non-blocking read.
func (s *FDSource) Read(p []byte) (int, error) {
	if s.closed {
		return 0, io.EOF
	}
	n, err := unix.Read(s.fd, p)
	switch {
	case errors.Is(err, unix.EAGAIN), errors.Is(err, unix.EINTR):
		return 0, ErrWouldBlock
	case err != nil:
		return 0, &IOError{Op: "read", Name: s.name, Err: err}
	case n == 0:
		return 0, io.EOF
	}
	return n, nil
}

// Close restores blocking mode and closes the descriptor. Standard input is
// left open for later chained dialogs.
func (s *FDSource) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	_ = unix.SetNonblock(s.fd, false)
	if s.stdin {
		return nil
	}
	return s.file.Close()
}

// Name returns the path, or "stdin".
func (s *FDSource) Name() string { return s.name }

// Fd returns the underlying descriptor.
func (s *FDSource) Fd() int { return s.fd }

// IsRegular reports whether the source is a regular file, which poll(2)
// always reports readable.
func (s *FDSource) IsRegular() bool { return s.regular }
