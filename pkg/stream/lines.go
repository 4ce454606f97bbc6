package stream

import (
	"bytes"
	"strings"
)

// splitLines calls fn for every newline-terminated line in data, prefixed by
// carry, and returns the unterminated remainder as the new carry. fn returns
// true to stop early; the rest of data is then discarded.
func splitLines(carry, data []byte, fn func(line string) bool) (rest []byte, stopped bool) {
	if len(carry) > 0 {
		joined := make([]byte, 0, len(carry)+len(data))
		joined = append(joined, carry...)
		data = append(joined, data...)
	}
	for {
		i := bytes.IndexByte(data, '\n')
		if i < 0 {
			break
		}
		line := strings.TrimSuffix(string(data[:i]), "\r")
		data = data[i+1:]
		if fn(line) {
			return nil, true
		}
	}
	if len(data) == 0 {
		return nil, false
	}
	return append([]byte(nil), data...), false
}

// isDigits reports whether s, ignoring surrounding blanks, is a non-empty
// run of ASCII digits.
func isDigits(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// scanUint parses the leading digits of s, stopping at the first non-digit
// and saturating at limit.
func scanUint(s string, limit int) int {
	s = strings.TrimSpace(s)
	n := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			break
		}
		n = n*10 + int(c-'0')
		if n > limit {
			return limit
		}
	}
	return n
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
