package dialog

import "fmt"

// UsageError reports positional arguments that do not fit a dialog kind.
type UsageError struct {
	Kind   Kind
	Reason string
	Usage  string
}

// Error implements the error interface.
func (e *UsageError) Error() string {
	if e.Usage == "" {
		return fmt.Sprintf("--%s: %s", e.Kind, e.Reason)
	}
	return fmt.Sprintf("--%s: %s\nusage: %s", e.Kind, e.Reason, e.Usage)
}
