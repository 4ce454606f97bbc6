// Package shell provides the Bubble Tea model every dialog runs in: frame,
// prompt, body, buttons, timers, help and error overlays, and the stream
// notifications that drive the streaming dialogs.
package shell

import (
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/andri/tdialog/internal/logger"
	"github.com/andri/tdialog/pkg/dialog"
	"github.com/andri/tdialog/pkg/stream"
	"github.com/andri/tdialog/pkg/text"
	"github.com/andri/tdialog/pkg/tui/components"
	"github.com/andri/tdialog/pkg/tui/keys"
	"github.com/andri/tdialog/pkg/tui/styles"
	"github.com/andri/tdialog/pkg/tui/terminal"
)

// Body is the content area between the prompt and the buttons.
type Body interface {
	// Update handles a message and reports whether it consumed it.
	Update(msg tea.Msg) (tea.Cmd, bool)
	// View renders the body at the given size.
	View(width, height int) string
	// Size returns the preferred size used for auto-sizing.
	Size() (width, height int)
}

// Initializer is implemented by bodies that start commands when the dialog opens.
type Initializer interface {
	Init() tea.Cmd
}

// Focuser is implemented by bodies that keep Enter for themselves. Tab
// moves focus between such a body and the buttons.
type Focuser interface {
	SetFocused(focused bool)
}

// TickMsg is a timer tick. Ticks from an earlier generation are dropped.
type TickMsg struct {
	Gen uint64
	Seq uint64
	Tag string
	At  time.Time
}

const (
	tagTimeout = "timeout"
	tagFinish  = "finish"
)

type readyMsg struct {
	binding *streamBinding
	msg     stream.ReadyMsg
}

type streamBinding struct {
	state *stream.State
	watch stream.Watch
}

type overlay struct {
	title   string
	message string
}

// Shell is the tea.Model of one dialog.
type Shell struct {
	cfg      *dialog.Config
	req      dialog.Request
	theme    styles.Theme
	glyphs   terminal.Glyphs
	prompt   string
	body     Body
	buttons  *components.ButtonRow
	bindings keys.ButtonBindings
	help     help.Model

	screenW int
	screenH int

	result   dialog.Result
	finished bool
	quitSent bool
	quit     chan struct{}
	gen      uint64

	timeout    time.Duration
	timeoutSeq uint64
	finishWith dialog.Result

	bodyFocused bool
	errorFrame  bool
	inline      bool
	ttyInput    bool
	overlay     *overlay
	showHelp    bool

	streams  []*streamBinding
	initCmds []tea.Cmd
	pending  []tea.Cmd
	onPress  func(dialog.Result) bool
	onFinish []func(dialog.Result)

	log *logger.Logger
}

// New creates a shell showing prompt above the body. The prompt is used
// as given; callers normalize it first.
func New(cfg *dialog.Config, prompt string, req dialog.Request, theme styles.Theme) *Shell {
	h := help.New()
	h.ShowAll = true
	return &Shell{
		cfg:      cfg,
		req:      req,
		theme:    theme,
		glyphs:   terminal.GetGlyphs(terminal.Capability{}),
		prompt:   prompt,
		buttons:  components.NewButtonRow(theme),
		bindings: keys.DefaultButtonBindings(),
		help:     h,
		screenW:  80,
		screenH:  24,
		result:   dialog.ResultError,
		quit:     make(chan struct{}),
		timeout:  cfg.Timeout(),
		log:      logger.With("component", "shell", "kind", req.Kind().String()),
	}
}

// Config returns the dialog configuration.
func (s *Shell) Config() *dialog.Config { return s.cfg }

// Request returns the dialog request.
func (s *Shell) Request() dialog.Request { return s.req }

// Theme returns the theme the shell draws with.
func (s *Shell) Theme() styles.Theme { return s.theme }

// Glyphs returns the symbols the shell draws with.
func (s *Shell) Glyphs() terminal.Glyphs { return s.glyphs }

// SetGlyphs replaces the symbols, ASCII by default.
func (s *Shell) SetGlyphs(g terminal.Glyphs) { s.glyphs = g }

// Prompt returns the normalized prompt text.
func (s *Shell) Prompt() string { return s.prompt }

// SetPrompt replaces the prompt.
func (s *Shell) SetPrompt(prompt string) { s.prompt = prompt }

// SetBody installs the content widget.
func (s *Shell) SetBody(b Body) {
	s.body = b
	if f, ok := b.(Focuser); ok {
		s.bodyFocused = true
		f.SetFocused(true)
	}
}

// Body returns the content widget.
func (s *Shell) Body() Body { return s.body }

// Buttons returns the button row.
func (s *Shell) Buttons() *components.ButtonRow { return s.buttons }

// SetTimeout overrides the --timeout duration.
func (s *Shell) SetTimeout(d time.Duration) { s.timeout = d }

// SetErrorFrame draws the dialog with the error border.
func (s *Shell) SetErrorFrame(on bool) { s.errorFrame = on }

// SetInline keeps the dialog on the main screen after it ends.
func (s *Shell) SetInline(on bool) { s.inline = on }

// Inline reports whether the dialog stays on the main screen.
func (s *Shell) Inline() bool { return s.inline }

// NeedTTYInput records that stdin carries data, so keys must come from the terminal.
func (s *Shell) NeedTTYInput() { s.ttyInput = true }

// TTYInput reports whether keys must be read from the terminal.
func (s *Shell) TTYInput() bool { return s.ttyInput }

// SetScreen sets the terminal size used before the first resize message.
func (s *Shell) SetScreen(width, height int) {
	s.screenW, s.screenH = width, height
}

// OnPress registers a hook run before a button ends the dialog. Returning
// false keeps the dialog open.
func (s *Shell) OnPress(fn func(dialog.Result) bool) { s.onPress = fn }

// OnFinish registers a hook run once when the dialog ends.
func (s *Shell) OnFinish(fn func(dialog.Result)) { s.onFinish = append(s.onFinish, fn) }

// AddInit queues a command to run when the dialog opens.
func (s *Shell) AddInit(cmd tea.Cmd) {
	if cmd != nil {
		s.initCmds = append(s.initCmds, cmd)
	}
}

// Post queues a command to run after the current update.
func (s *Shell) Post(cmd tea.Cmd) {
	if cmd != nil {
		s.pending = append(s.pending, cmd)
	}
}

// Tick returns a command that delivers a TickMsg with tag after d.
func (s *Shell) Tick(d time.Duration, tag string) tea.Cmd {
	gen := s.gen
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return TickMsg{Gen: gen, Tag: tag, At: t}
	})
}

func (s *Shell) timeoutTick() tea.Cmd {
	if s.timeout <= 0 {
		return nil
	}
	s.timeoutSeq++
	gen, seq := s.gen, s.timeoutSeq
	return tea.Tick(s.timeout, func(t time.Time) tea.Msg {
		return TickMsg{Gen: gen, Seq: seq, Tag: tagTimeout, At: t}
	})
}

// FinishAfter ends the dialog with r once d has passed.
func (s *Shell) FinishAfter(d time.Duration, r dialog.Result) {
	s.finishWith = r
	s.AddInit(s.Tick(max(d, 0), tagFinish))
}

// AttachStream registers a stream and its watch. Notifications are handled
// one at a time inside Update.
func (s *Shell) AttachStream(state *stream.State, watch stream.Watch) {
	state.Attach(watch)
	b := &streamBinding{state: state, watch: watch}
	s.streams = append(s.streams, b)
	s.AddInit(s.waitReady(b))
}

func (s *Shell) waitReady(b *streamBinding) tea.Cmd {
	quit := s.quit
	return func() tea.Msg {
		select {
		case m := <-b.watch.Ready():
			return readyMsg{binding: b, msg: m}
		case <-quit:
			return nil
		}
	}
}

// ShowOverlay shows a message box over the dialog until a key is pressed.
func (s *Shell) ShowOverlay(title, message string) {
	s.overlay = &overlay{title: title, message: message}
}

// OverlayMessage returns the message of the visible overlay, if any.
func (s *Shell) OverlayMessage() (string, bool) {
	if s.overlay == nil {
		return "", false
	}
	return s.overlay.message, true
}

// Respond ends the dialog with the result mapped from a response.
func (s *Shell) Respond(r Response) {
	if r == ResponseClose && !s.cfg.EscapeEnabled {
		return
	}
	s.Finish(MapResponse(r))
}

// Finish ends the dialog. Calls after the first are ignored.
func (s *Shell) Finish(r dialog.Result) {
	if s.finished {
		return
	}
	s.finished = true
	s.result = r
	s.gen++
	close(s.quit)
	for _, b := range s.streams {
		b.state.Close()
	}
	for _, fn := range s.onFinish {
		fn(r)
	}
	s.log.Debug("dialog finished", "result", r)
}

// Finished reports whether the dialog has ended.
func (s *Shell) Finished() bool { return s.finished }

// Result returns the outcome, ERROR until the dialog ended.
func (s *Shell) Result() dialog.Result { return s.result }

// Init implements tea.Model.
func (s *Shell) Init() tea.Cmd {
	cmds := append([]tea.Cmd(nil), s.initCmds...)
	if i, ok := s.body.(Initializer); ok {
		cmds = append(cmds, i.Init())
	}
	cmds = append(cmds, s.timeoutTick())
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (s *Shell) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	if !s.finished {
		cmd = s.update(msg)
	} else if m, ok := msg.(readyMsg); ok {
		m.msg.Ack(stream.DispositionDone)
	}

	cmds := append([]tea.Cmd{cmd}, s.pending...)
	s.pending = nil
	if s.finished && !s.quitSent {
		s.quitSent = true
		cmds = append(cmds, tea.Quit)
	}
	return s, tea.Batch(cmds...)
}

func (s *Shell) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.screenW, s.screenH = msg.Width, msg.Height
		return nil

	case readyMsg:
		msg.binding.state.Handle(msg.msg)
		if msg.binding.state.Finalized() || s.finished {
			return nil
		}
		return s.waitReady(msg.binding)

	case TickMsg:
		if msg.Gen != s.gen {
			return nil
		}
		switch msg.Tag {
		case tagTimeout:
			if msg.Seq == s.timeoutSeq {
				s.Respond(ResponseTimeout)
			}
			return nil
		case tagFinish:
			s.Finish(s.finishWith)
			return nil
		}
		if s.body != nil {
			cmd, _ := s.body.Update(msg)
			return cmd
		}
		return nil

	case components.ButtonPressedMsg:
		s.press(msg.Result)
		return nil

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if s.body != nil {
		cmd, _ := s.body.Update(msg)
		return cmd
	}
	return nil
}

func (s *Shell) handleKey(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, s.bindings.Interrupt) {
		s.Respond(ResponseOther)
		return nil
	}
	if s.overlay != nil {
		s.overlay = nil
		return nil
	}
	if s.showHelp {
		s.showHelp = false
		return nil
	}

	reset := s.timeoutTick()
	switch {
	case key.Matches(msg, s.bindings.Help):
		s.showHelp = true
		return reset
	case key.Matches(msg, s.bindings.Escape):
		s.Respond(ResponseClose)
		return reset
	}

	if s.bodyFocused {
		if key.Matches(msg, s.bindings.Next, s.bindings.Prev) && msg.Type != tea.KeyLeft && msg.Type != tea.KeyRight {
			s.focusBody(false)
			return reset
		}
		if cmd, handled := s.body.Update(msg); handled {
			return tea.Batch(reset, cmd)
		}
		return reset
	}

	if s.body != nil {
		if cmd, handled := s.body.Update(msg); handled {
			return tea.Batch(reset, cmd)
		}
	}
	if _, ok := s.body.(Focuser); ok && s.wrapsToBody(msg) {
		s.focusBody(true)
		return reset
	}
	cmd, _ := s.buttons.Update(msg)
	return tea.Batch(reset, cmd)
}

// wrapsToBody reports whether tab or shift+tab would leave the button row.
func (s *Shell) wrapsToBody(msg tea.KeyMsg) bool {
	switch msg.Type {
	case tea.KeyTab:
		return s.buttons.FocusIndex() == s.buttons.Len()-1
	case tea.KeyShiftTab:
		return s.buttons.FocusIndex() == 0
	}
	return false
}

func (s *Shell) focusBody(on bool) {
	s.bodyFocused = on
	if f, ok := s.body.(Focuser); ok {
		f.SetFocused(on)
	}
}

func (s *Shell) press(r dialog.Result) {
	if s.onPress != nil && !s.onPress(r) {
		return
	}
	s.Finish(r)
}

// View implements tea.Model.
func (s *Shell) View() string {
	if s.finished && !s.inline {
		return ""
	}
	var box string
	switch {
	case s.showHelp:
		box = s.renderHelp()
	case s.overlay != nil:
		box = s.renderOverlay()
	default:
		box = s.renderDialog()
	}
	top := components.BackTitle(s.theme, s.cfg.BackTitle, s.screenW)
	if s.inline {
		if top != "" {
			return top + "\n" + box
		}
		return box
	}
	availH := s.screenH
	if top != "" {
		availH -= components.BackTitleHeight
	}
	placed := components.Place(s.screenW, max(availH, 1), box, s.cfg.Geometry)
	if top != "" {
		return top + "\n" + placed
	}
	return placed
}

func (s *Shell) renderDialog() string {
	l := s.layout()
	var parts []string
	if l.promptH > 0 {
		parts = append(parts, l.prompt)
	}
	if s.body != nil && l.bodyH > 0 {
		if len(parts) > 0 {
			parts = append(parts, "")
		}
		parts = append(parts, s.body.View(l.innerW, l.bodyH))
	}
	content := strings.Join(parts, "\n")
	if s.buttons.Len() > 0 {
		row := s.buttons.View(l.innerW)
		if content == "" {
			content = strings.Repeat("\n", max(l.innerH-1, 0)) + row
		} else {
			used := strings.Count(content, "\n") + 1
			content += strings.Repeat("\n", max(l.innerH-used, 1)) + row
		}
	}
	frame := components.Frame{
		Title:  s.cfg.Title,
		Shadow: !s.cfg.NoShadow,
		Error:  s.errorFrame,
		Theme:  s.theme,
	}
	return frame.Render(content, l.innerW, l.innerH)
}

func (s *Shell) renderOverlay() string {
	msg := s.overlay.message
	w := max(min(50, s.screenW-components.FrameChromeWidth-2), 10)
	wrapped := text.Wrap(msg, w)
	_, h := text.Measure(wrapped)
	frame := components.Frame{Title: s.overlay.title, Error: true, Theme: s.theme}
	hint := s.theme.Subtle.Render("press any key")
	return frame.Render(wrapped+"\n\n"+hint, w, h+2)
}

func (s *Shell) renderHelp() string {
	var b strings.Builder
	if s.cfg.HelpText != "" {
		b.WriteString(s.cfg.HelpText)
		b.WriteString("\n\n")
	}
	if s.cfg.HelpFile != "" {
		data, err := os.ReadFile(s.cfg.HelpFile)
		if err != nil {
			b.WriteString(s.theme.Error.Render(err.Error()))
		} else {
			b.WriteString(strings.TrimRight(string(data), "\n"))
		}
		b.WriteString("\n\n")
	}
	b.WriteString(s.help.View(s.bindings))
	w := min(s.screenW-components.FrameChromeWidth-2, 70)
	content := text.Wrap(b.String(), max(w, 10))
	cw, ch := text.Measure(content)
	frame := components.Frame{Title: "Help", Theme: s.theme}
	return frame.Render(content, max(cw, 10), ch)
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
