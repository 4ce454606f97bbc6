package shell

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/andri/tdialog/pkg/dialog"
)

// WaitFor is a script step that pauses the script until Cond holds,
// executing pending commands meanwhile.
type WaitFor struct {
	Cond func() bool
}

// Drive runs s without a terminal: it feeds the scripted messages, then
// keeps executing the commands they produce until the dialog ends or the
// timeout expires. It returns the dialog result, ERROR on timeout.
func Drive(s *Shell, timeout time.Duration, script ...tea.Msg) dialog.Result {
	msgs := make(chan tea.Msg, 64)
	done := make(chan struct{})
	defer close(done)

	run := func(cmd tea.Cmd) {
		if cmd == nil {
			return
		}
		go func() {
			msg := cmd()
			select {
			case msgs <- msg:
			case <-done:
			}
		}()
	}

	deliver := func(msg tea.Msg) {
		switch m := msg.(type) {
		case nil, tea.QuitMsg:
			return
		case tea.BatchMsg:
			for _, cmd := range m {
				run(cmd)
			}
			return
		}
		_, cmd := s.Update(msg)
		run(cmd)
	}

	deadline := time.After(timeout)
	pump := func(until func() bool) bool {
		for !until() {
			select {
			case msg := <-msgs:
				deliver(msg)
			case <-deadline:
				s.Finish(dialog.ResultError)
				return false
			}
		}
		return true
	}

	run(s.Init())
	deliver(tea.WindowSizeMsg{Width: s.screenW, Height: s.screenH})
	for _, msg := range script {
		if w, ok := msg.(WaitFor); ok {
			if !pump(func() bool { return s.Finished() || w.Cond() }) {
				return s.Result()
			}
			continue
		}
		deliver(msg)
	}
	pump(s.Finished)
	return s.Result()
}
