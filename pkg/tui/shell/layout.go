package shell

import (
	"strings"

	"github.com/andri/tdialog/pkg/dialog"
	"github.com/andri/tdialog/pkg/text"
	"github.com/andri/tdialog/pkg/tui/components"
	"github.com/andri/tdialog/pkg/tui/terminal"
)

// buttonRows is the blank line plus the button row.
const buttonRows = 2

type layout struct {
	prompt  string
	promptH int
	innerW  int
	innerH  int
	bodyH   int
}

// layout resolves the requested rows and cols against the content and the
// screen. 0 sizes from the content, -1 and --fullscreen take the maximum,
// anything else is clamped to the screen.
func (s *Shell) layout() layout {
	availH := s.screenH
	if s.cfg.BackTitle != "" {
		availH -= components.BackTitleHeight
	}
	maxRows, maxCols := terminal.MaxDialogSize(availH, s.screenW)
	shadow := boolInt(!s.cfg.NoShadow)
	maxInnerW := max(maxCols-components.FrameChromeWidth-shadow, 1)
	maxInnerH := max(maxRows-components.FrameChromeHeight-shadow, 1)

	bodyW, bodyH := 0, 0
	if s.body != nil {
		bodyW, bodyH = s.body.Size()
	}
	btnH := 0
	if s.buttons.Len() > 0 {
		btnH = buttonRows
	}
	full := s.cfg.Geometry.Fullscreen

	var l layout
	switch cols := s.req.Cols(); {
	case full || cols == dialog.SizeMax:
		l.innerW = maxInnerW
	case cols > 0:
		l.innerW = min(max(cols-components.FrameChromeWidth, 1), maxInnerW)
	default:
		pw := 0
		if s.prompt != "" {
			pw, _ = text.Measure(s.prompt)
		}
		promptCap := max(maxInnerW*2/3, min(40, maxInnerW))
		l.innerW = max(bodyW, s.buttons.Width(), text.DisplayWidth(s.cfg.Title)+4, min(pw, promptCap), 1)
		l.innerW = min(l.innerW, maxInnerW)
	}

	if s.prompt != "" {
		l.prompt = text.Wrap(s.prompt, l.innerW)
		_, l.promptH = text.Measure(l.prompt)
	}
	hasBody := s.body != nil && bodyH > 0
	sep := 0
	if hasBody && l.promptH > 0 {
		sep = 1
	}

	switch rows := s.req.Rows(); {
	case full || rows == dialog.SizeMax:
		l.innerH = maxInnerH
	case rows > 0:
		l.innerH = min(max(rows-components.FrameChromeHeight, 1), maxInnerH)
	default:
		l.innerH = min(max(l.promptH+sep+bodyH+btnH, 1), maxInnerH)
	}

	room := l.innerH - btnH - sep
	if hasBody {
		room--
	}
	if l.promptH > room {
		l.promptH = max(room, 0)
		lines := strings.Split(l.prompt, "\n")
		l.prompt = strings.Join(lines[:l.promptH], "\n")
		if l.promptH == 0 {
			sep = 0
		}
	}
	if hasBody {
		l.bodyH = max(l.innerH-btnH-sep-l.promptH, 1)
	}
	return l
}

// DialogSize returns the outer height and width of the dialog window,
// border included and shadow excluded.
func (s *Shell) DialogSize() (rows, cols int) {
	l := s.layout()
	return l.innerH + components.FrameChromeHeight, l.innerW + components.FrameChromeWidth
}
