package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNew_Levels(t *testing.T) {
	tests := []struct {
		name         string
		level        Level
		logFunc      func(*Logger, string)
		shouldAppear bool
	}{
		{"debug level logs debug", LevelDebug, func(l *Logger, m string) { l.Debug(m) }, true},
		{"info level filters debug", LevelInfo, func(l *Logger, m string) { l.Debug(m) }, false},
		{"warn level logs error", LevelWarn, func(l *Logger, m string) { l.Error(m) }, true},
		{"error level filters warn", LevelError, func(l *Logger, m string) { l.Warn(m) }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			l := New(Config{Level: tt.level, Format: FormatText, Output: &buf})
			tt.logFunc(l, "marker-message")
			if got := strings.Contains(buf.String(), "marker-message"); got != tt.shouldAppear {
				t.Errorf("message appeared = %v, want %v (output %q)", got, tt.shouldAppear, buf.String())
			}
		})
	}
}

func TestNew_NilOutputDiscards(t *testing.T) {
	l := New(Config{Level: LevelDebug})
	l.Error("nowhere")
}

func TestNew_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: LevelInfo, Format: FormatJSON, Output: &buf})
	l.With("component", "stream").Info("chunk", "bytes", 12)

	out := buf.String()
	for _, want := range []string{`"msg":"chunk"`, `"component":"stream"`, `"bytes":12`} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %s", out, want)
		}
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]Level{
		"debug":   LevelDebug,
		" WARN ":  LevelWarn,
		"error":   LevelError,
		"info":    LevelInfo,
		"verbose": LevelInfo,
		"":        LevelInfo,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestOpenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tdialog.log")
	l, err := OpenFile(path, LevelInfo, FormatText)
	if err != nil {
		t.Fatal(err)
	}
	l.Info("written to file")
	if err := l.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "written to file") {
		t.Errorf("log file content = %q", data)
	}
}

func TestDefaultLogger(t *testing.T) {
	orig := GetDefault()
	defer SetDefault(orig)

	var buf bytes.Buffer
	SetDefault(New(Config{Level: LevelDebug, Output: &buf}))
	Debug("d")
	Info("i")
	Warn("w")
	Error("e")
	With("k", "v").Info("scoped")

	out := buf.String()
	for _, want := range []string{"msg=d", "msg=i", "msg=w", "msg=e", "k=v"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q: %s", want, out)
		}
	}
}
