// Package options turns the command line into dialog segments. Each segment
// holds one dialog selector with its arguments and the configuration built
// from the options that surround it; --and-widget separates segments.
package options

import (
	"fmt"
	"strings"

	"github.com/andri/tdialog/pkg/dialog"
)

// Segment is one dialog invocation parsed from the command line.
type Segment struct {
	Kind   dialog.Kind
	Config dialog.Config
	// Args holds text, height, width and the kind-specific arguments.
	Args []string
	// ExitCodes holds --<result>-exit-code overrides seen in this segment.
	ExitCodes map[dialog.Result]int
	Process   ProcessOptions
	// Chained is set when the segment ended at --and-widget.
	Chained bool
}

// Request validates the positional arguments of the segment.
func (s Segment) Request() (dialog.Request, error) {
	return dialog.ParseRequest(s.Kind, s.Args)
}

// Parser parses segments starting from a base configuration, normally the
// defaults loaded from the rc file.
type Parser struct {
	Base dialog.Config
}

// NewParser returns a parser whose segments start from base.
func NewParser(base dialog.Config) *Parser {
	return &Parser{Base: base}
}

// Parse parses one segment with the built-in defaults.
func Parse(tokens []string, start int) (Segment, int, error) {
	return NewParser(dialog.DefaultConfig()).Parse(tokens, start)
}

// Parse consumes tokens from start up to the end of the list or the next
// chaining operator and returns the segment and the index of the first
// unconsumed token.
func (p *Parser) Parse(tokens []string, start int) (Segment, int, error) {
	seg := Segment{
		Config:    p.Base,
		ExitCodes: make(map[dialog.Result]int),
	}
	reg := newRegistry(&seg.Config, &seg.Process, seg.ExitCodes)
	ignore := ignoreBefore(tokens, start)

	i := start
	for i < len(tokens) {
		tok := tokens[i]
		name, value, hasValue, isOption := splitOption(tok)
		if !isOption {
			if ignore {
				i++
				continue
			}
			return seg, i, &ParseError{Index: i, Token: tok, Reason: "unexpected argument"}
		}

		switch {
		case name == optAndWidget || name == optAndDialog:
			seg.Chained = true
			return seg, i + 1, nil

		case name == optBegin:
			y, x, next, err := parseBegin(tokens, i)
			if err != nil {
				return seg, i, err
			}
			seg.Config.Geometry.BeginY, seg.Config.Geometry.BeginX = y, x
			seg.Config.Geometry.HasBegin = true
			i = next
			continue
		}

		if kind, ok := dialog.KindByOption(name); ok {
			if seg.Kind != dialog.KindNone {
				return seg, i, &ParseError{
					Index:  i,
					Token:  tok,
					Reason: fmt.Sprintf("dialog %s and dialog %s without chaining-operator", seg.Kind, kind),
				}
			}
			seg.Kind = kind
			next := i + 1
			minArgs := 3 + dialog.ArityOf(kind).Min()
			for next < len(tokens) && !p.endsArgs(reg, tokens[next], next-i-1 >= minArgs) {
				next++
			}
			seg.Args = append([]string(nil), tokens[i+1:next]...)
			if err := checkSize(kind, seg.Args, i); err != nil {
				return seg, i, err
			}
			i = next
			continue
		}

		f := reg.lookup(name)
		if f == nil {
			if ignore {
				i++
				continue
			}
			return seg, i, &ParseError{Index: i, Token: tok, Reason: "unknown option"}
		}
		if name == optIgnore {
			ignore = true
		}

		switch {
		case hasValue:
		case f.NoOptDefVal != "":
			value = f.NoOptDefVal
		case i+1 < len(tokens):
			i++
			value = tokens[i]
		default:
			return seg, i, &ParseError{Index: i, Token: tok, Reason: "missing value"}
		}
		if err := f.Value.Set(value); err != nil {
			return seg, i, &ParseError{Index: i, Token: tok, Reason: "invalid value", Err: err}
		}
		f.Changed = true
		i++
	}

	return seg, i, nil
}

// ParseAll parses every segment of the token list. Output routing chosen in
// one segment carries over to the segments after it.
func (p *Parser) ParseAll(tokens []string) ([]Segment, error) {
	var segments []Segment
	base := p.Base
	for i := 0; i < len(tokens); {
		seg, next, err := (&Parser{Base: base}).Parse(tokens, i)
		if err != nil {
			return segments, err
		}
		segments = append(segments, seg)
		base.OutputFD = seg.Config.OutputFD
		i = next
	}
	return segments, nil
}

// MergeExitCodes collects the exit-code overrides of all segments; later
// segments win.
func MergeExitCodes(segments []Segment) map[dialog.Result]int {
	codes := make(map[dialog.Result]int)
	for _, s := range segments {
		for r, c := range s.ExitCodes {
			codes[r] = c
		}
	}
	return codes
}

// MergeProcess collects the process-level options of all segments.
func MergeProcess(segments []Segment) ProcessOptions {
	var out ProcessOptions
	for _, s := range segments {
		p := s.Process
		if p.ConfigFile != "" {
			out.ConfigFile = p.ConfigFile
		}
		if p.LogLevel != "" {
			out.LogLevel = p.LogLevel
		}
		if p.LogFile != "" {
			out.LogFile = p.LogFile
		}
		if p.LogFormat != "" {
			out.LogFormat = p.LogFormat
		}
		if p.CreateRC != "" {
			out.CreateRC = p.CreateRC
		}
		out.PrintVersion = out.PrintVersion || p.PrintVersion
		out.PrintMaxSize = out.PrintMaxSize || p.PrintMaxSize
		out.Ignore = out.Ignore || p.Ignore
	}
	return out
}

// ScanProcess extracts the process-level options without validating the
// rest of the command line. It runs before the rc file is loaded.
func ScanProcess(tokens []string) ProcessOptions {
	var proc ProcessOptions
	cfg := dialog.DefaultConfig()
	reg := newRegistry(&cfg, &proc, make(map[dialog.Result]int))
	for i := 0; i < len(tokens); i++ {
		name, value, hasValue, isOption := splitOption(tokens[i])
		if !isOption {
			continue
		}
		f := reg.lookup(name)
		if f == nil || !isProcessOption(name) {
			continue
		}
		switch {
		case hasValue:
		case f.NoOptDefVal != "":
			value = f.NoOptDefVal
		case i+1 < len(tokens):
			i++
			value = tokens[i]
		default:
			continue
		}
		_ = f.Value.Set(value)
	}
	return proc
}

func isProcessOption(name string) bool {
	switch name {
	case "config", "log-level", "log-file", "log-format", "create-rc",
		"print-version", "version", "print-maxsize", optIgnore:
		return true
	}
	return false
}

// endsArgs reports whether tok ends the positional arguments of a selector.
// Known options always do. Once the selector has its minimum argument count
// an unknown option does too, so that --ignore or the unknown-option error
// applies to it.
func (p *Parser) endsArgs(reg *registry, tok string, satisfied bool) bool {
	name, _, _, isOption := splitOption(tok)
	return isOption && (satisfied || reg.known(name))
}

// splitOption splits "--name=value" and "--name". Anything that does not
// start with two dashes followed by a name is not an option.
func splitOption(tok string) (name, value string, hasValue, ok bool) {
	if !strings.HasPrefix(tok, "--") || len(tok) == 2 {
		return "", "", false, false
	}
	name = tok[2:]
	if eq := strings.IndexByte(name, '='); eq >= 0 {
		return name[:eq], name[eq+1:], true, eq > 0
	}
	return name, "", false, true
}

func ignoreBefore(tokens []string, start int) bool {
	for _, tok := range tokens[:min(start, len(tokens))] {
		if name, _, _, ok := splitOption(tok); ok && name == optIgnore {
			return true
		}
	}
	return false
}

func parseBegin(tokens []string, i int) (y, x, next int, err error) {
	if i+2 >= len(tokens) {
		return 0, 0, i, &ParseError{Index: i, Token: tokens[i], Reason: "expected <y> <x>"}
	}
	y, x = scanInt(tokens[i+1]), scanInt(tokens[i+2])
	if y < 0 || x < 0 {
		return 0, 0, i, &ParseError{
			Index:  i,
			Token:  tokens[i],
			Reason: fmt.Sprintf("position %d,%d must not be negative", y, x),
		}
	}
	return y, x, i + 3, nil
}

// checkSize rejects heights and widths below the maximize sentinel.
func checkSize(kind dialog.Kind, args []string, index int) error {
	if len(args) < 3 {
		return nil
	}
	rows, cols := scanInt(args[1]), scanInt(args[2])
	if rows < dialog.SizeMax || cols < dialog.SizeMax {
		return &ParseError{
			Index:  index,
			Token:  "--" + kind.String(),
			Reason: "invalid size",
			Err: &dialog.UsageError{
				Kind:   kind,
				Reason: fmt.Sprintf("invalid size %dx%d", rows, cols),
				Usage:  fmt.Sprintf("--%s %s", kind, dialog.ArityOf(kind).Usage),
			},
		}
	}
	return nil
}
