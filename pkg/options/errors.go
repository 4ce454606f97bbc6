package options

import "fmt"

// ParseError reports a command-line token that could not be applied.
type ParseError struct {
	Index  int
	Token  string
	Reason string
	Err    error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	msg := e.Reason
	if e.Token != "" {
		msg = fmt.Sprintf("%s: %s", e.Token, e.Reason)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}
