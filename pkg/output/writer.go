// Package output writes dialog results to the output channel.
package output

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/andri/tdialog/pkg/dialog"
)

// Writer writes newline-terminated result records.
type Writer struct {
	mu      sync.Mutex
	w       io.Writer
	closer  io.Closer
	written int
}

// New wraps w.
func New(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Open returns a writer for a file descriptor: 1 is stdout, 2 is stderr,
// anything else must already be open in the process.
func Open(fd int) (*Writer, error) {
	switch fd {
	case 1:
		return New(os.Stdout), nil
	case 2:
		return New(os.Stderr), nil
	}
	if fd < 0 {
		return nil, fmt.Errorf("invalid output descriptor %d", fd)
	}
	f := os.NewFile(uintptr(fd), fmt.Sprintf("fd%d", fd))
	if f == nil {
		return nil, fmt.Errorf("output descriptor %d is not open", fd)
	}
	if _, err := f.Stat(); err != nil {
		return nil, fmt.Errorf("output descriptor %d: %w", fd, err)
	}
	return &Writer{w: f, closer: f}, nil
}

// Value writes a single value record.
func (w *Writer) Value(s string) error {
	return w.write(s + "\n")
}

// Values writes list results. Each value is quoted when it holds characters
// a shell would split on. With SeparateOutput every value gets its own line
// and is never quoted; otherwise values are joined by OutputSeparator.
func (w *Writer) Values(values []string, opts dialog.ListOptions) error {
	if len(values) == 0 {
		return w.write("\n")
	}
	if opts.SeparateOutput {
		return w.write(strings.Join(values, "\n") + "\n")
	}
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = Quote(v, opts.SingleQuoted)
	}
	sep := opts.OutputSeparator
	if sep == "" {
		sep = " "
	}
	return w.write(strings.Join(quoted, sep) + "\n")
}

// Size writes the --print-size record.
func (w *Writer) Size(rows, cols int) error {
	return w.write(fmt.Sprintf("Size: %d, %d\n", rows, cols))
}

// Written returns the number of bytes written so far.
func (w *Writer) Written() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.written
}

// Close releases a descriptor opened by Open.
func (w *Writer) Close() error {
	if w.closer == nil {
		return nil
	}
	return w.closer.Close()
}

func (w *Writer) write(s string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	n, err := io.WriteString(w.w, s)
	w.written += n
	if err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

const shellSpecial = " \t\n\"'\\$`|&;<>()*?[]{}#~!"

// Quote wraps s in double quotes, or single quotes when single is set, if s
// is empty or contains shell-meaningful characters.
func Quote(s string, single bool) string {
	if s != "" && !strings.ContainsAny(s, shellSpecial) {
		return s
	}
	if single {
		return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
	}
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`, "$", `\$`, "`", "\\`")
	return `"` + r.Replace(s) + `"`
}
