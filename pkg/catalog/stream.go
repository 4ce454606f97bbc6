package catalog

import (
	"github.com/andri/tdialog/internal/logger"
	"github.com/andri/tdialog/pkg/dialog"
	"github.com/andri/tdialog/pkg/stream"
	"github.com/andri/tdialog/pkg/tui/shell"
)

// stdinPath names the input of the dialogs that always read standard input.
var stdinPath = "-"

// input is an opened stream and the watch that reports it readable.
type input struct {
	src    stream.Source
	watch  stream.Watch
	follow bool
	stdin  bool
}

// openInput opens path for streaming. With follow, a regular file is
// watched for growth after EOF; pipes and terminals end at EOF.
func openInput(path string, follow bool) (*input, error) {
	src, err := stream.OpenSource(path)
	if err != nil {
		return nil, err
	}
	in := &input{src: src, stdin: path == "" || path == "-"}
	if follow && src.IsRegular() {
		w, err := stream.NewFollowWatch(path)
		if err == nil {
			in.watch, in.follow = w, true
			return in, nil
		}
		logger.Warn("follow unavailable, reading to end of file", "path", path, "error", err)
	}
	in.watch = stream.NewPollWatch(src.Fd())
	return in, nil
}

// attach wires an input into s. onEnd runs when the stream ends on its own;
// read errors are also shown over the dialog.
func attach(s *shell.Shell, in *input, dialect stream.Dialect, onEnd func(stream.Reason)) *stream.State {
	if in.stdin {
		s.NeedTTYInput()
	}
	st := stream.New(in.src, dialect, stream.Options{
		Follow: in.follow,
		OnFinalize: func(r stream.Reason) {
			if r != stream.ReasonClosed && onEnd != nil {
				onEnd(r)
			}
		},
		OnError: func(err error) {
			s.ShowOverlay("Error", err.Error())
		},
	})
	s.AttachStream(st, in.watch)
	return st
}

// closeOnEnd ends the dialog with OK when the stream ends, unless
// --ignore-eof keeps it open. After a read error the dialog stays open.
func closeOnEnd(s *shell.Shell, cfg *dialog.Config) func(stream.Reason) {
	return func(r stream.Reason) {
		if r != stream.ReasonError && !cfg.Stream.IgnoreEOF {
			s.Finish(dialog.ResultOK)
		}
	}
}
