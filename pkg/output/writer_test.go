package output_test

import (
	"bytes"
	"testing"

	"github.com/andri/tdialog/pkg/dialog"
	"github.com/andri/tdialog/pkg/output"
)

func TestQuote(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		single bool
		want   string
	}{
		{"plain", "tag1", false, "tag1"},
		{"blank", "two words", false, `"two words"`},
		{"blank single", "two words", true, `'two words'`},
		{"empty", "", false, `""`},
		{"dollar", "$HOME", false, `"\$HOME"`},
		{"double quote", `say "hi"`, false, `"say \"hi\""`},
		{"single quote in single mode", "it's", true, `'it'\''s'`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := output.Quote(tt.in, tt.single); got != tt.want {
				t.Errorf("Quote(%q, %v) = %s, want %s", tt.in, tt.single, got, tt.want)
			}
		})
	}
}

func TestWriterValues(t *testing.T) {
	tests := []struct {
		name   string
		values []string
		opts   dialog.ListOptions
		want   string
	}{
		{"joined", []string{"a", "b c"}, dialog.ListOptions{OutputSeparator: " "}, "a \"b c\"\n"},
		{"custom separator", []string{"a", "b"}, dialog.ListOptions{OutputSeparator: ","}, "a,b\n"},
		{"empty separator defaults to blank", []string{"a", "b"}, dialog.ListOptions{}, "a b\n"},
		{"separate output", []string{"a", "b c"}, dialog.ListOptions{SeparateOutput: true}, "a\nb c\n"},
		{"single quoted", []string{"x y"}, dialog.ListOptions{SingleQuoted: true}, "'x y'\n"},
		{"nothing selected", nil, dialog.ListOptions{}, "\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := output.New(&buf).Values(tt.values, tt.opts); err != nil {
				t.Fatal(err)
			}
			if got := buf.String(); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWriterValueAndSize(t *testing.T) {
	var buf bytes.Buffer
	w := output.New(&buf)
	if w.Written() != 0 {
		t.Fatalf("fresh writer reports %d bytes", w.Written())
	}
	if err := w.Size(10, 40); err != nil {
		t.Fatal(err)
	}
	if err := w.Value("hello"); err != nil {
		t.Fatal(err)
	}
	if got, want := buf.String(), "Size: 10, 40\nhello\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if w.Written() != buf.Len() {
		t.Errorf("Written = %d, want %d", w.Written(), buf.Len())
	}
}

func TestOpenStandardDescriptors(t *testing.T) {
	for _, fd := range []int{1, 2} {
		w, err := output.Open(fd)
		if err != nil {
			t.Fatalf("Open(%d): %v", fd, err)
		}
		if err := w.Close(); err != nil {
			t.Errorf("Close(%d): %v", fd, err)
		}
	}
	if _, err := output.Open(-3); err == nil {
		t.Error("expected error for negative descriptor")
	}
}
