package config

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"
)

// ValidationError wraps a ValidationResult as an error.
type ValidationError struct {
	Result ValidationResult
}

// Error implements the error interface, returning all validation errors as a single message.
func (e *ValidationError) Error() string {
	if len(e.Result.Errors) == 0 {
		return "configuration validation failed"
	}
	if len(e.Result.Errors) == 1 {
		return fmt.Sprintf("configuration validation failed: %s", e.Result.Errors[0])
	}
	var b strings.Builder
	b.WriteString("configuration validation failed:")
	for _, err := range e.Result.Errors {
		b.WriteString("\n  - ")
		b.WriteString(err.Error())
	}
	return b.String()
}

// Unwrap returns the underlying errors joined together.
func (e *ValidationError) Unwrap() error {
	return errors.Join(e.Result.Errors...)
}

// ValidationResult captures validation errors and warnings.
type ValidationResult struct {
	Errors   []error
	Warnings []string
}

// HasErrors reports whether validation errors exist.
func (r ValidationResult) HasErrors() bool {
	return len(r.Errors) > 0
}

// HasWarnings reports whether validation warnings exist.
func (r ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

var (
	allowedLogLevels    = []string{"debug", "info", "warn", "error"}
	allowedLogFormats   = []string{"text", "json"}
	allowedBorderStyles = []string{"rounded", "normal", "double", "thick", "hidden"}

	hexColor = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)
)

// ValidateConfig validates configuration values and returns all issues.
func ValidateConfig(cfg Config) ValidationResult {
	var result ValidationResult

	if cfg.Logging.Level != "" && !slices.Contains(allowedLogLevels, cfg.Logging.Level) {
		result.Errors = append(result.Errors, fmt.Errorf(
			"invalid logging.level %q: allowed values are %v",
			cfg.Logging.Level, allowedLogLevels))
	}
	if cfg.Logging.Format != "" && !slices.Contains(allowedLogFormats, cfg.Logging.Format) {
		result.Errors = append(result.Errors, fmt.Errorf(
			"invalid logging.format %q: allowed values are %v",
			cfg.Logging.Format, allowedLogFormats))
	}

	if cfg.Theme.BorderStyle != "" && !slices.Contains(allowedBorderStyles, cfg.Theme.BorderStyle) {
		result.Errors = append(result.Errors, fmt.Errorf(
			"invalid theme.border-style %q: allowed values are %v",
			cfg.Theme.BorderStyle, allowedBorderStyles))
	}
	for _, c := range []struct{ key, value string }{
		{"screen", cfg.Theme.Screen},
		{"dialog", cfg.Theme.Dialog},
		{"title", cfg.Theme.Title},
		{"border", cfg.Theme.Border},
		{"button-active", cfg.Theme.ButtonActive},
		{"button-inactive", cfg.Theme.ButtonInactive},
		{"gauge", cfg.Theme.Gauge},
		{"error", cfg.Theme.Error},
	} {
		if err := validateColor(c.value); err != nil {
			result.Errors = append(result.Errors, fmt.Errorf("invalid theme.%s: %w", c.key, err))
		}
	}

	if cfg.Dialog.TabLen < 1 {
		result.Errors = append(result.Errors, fmt.Errorf(
			"dialog.tab-len must be >= 1, got: %d", cfg.Dialog.TabLen))
	}
	if cfg.Dialog.MaxLines < 1 {
		result.Errors = append(result.Errors, fmt.Errorf(
			"dialog.max-lines must be >= 1, got: %d", cfg.Dialog.MaxLines))
	}

	seen := make(map[int]string)
	for r, code := range cfg.ExitCodes.Map() {
		if code < 0 || code > 255 {
			result.Errors = append(result.Errors, fmt.Errorf(
				"exit-codes.%s must be within 0..255, got: %d", r, code))
			continue
		}
		if other, ok := seen[code]; ok {
			a, b := other, r.String()
			if a > b {
				a, b = b, a
			}
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("exit-codes.%s and exit-codes.%s share code %d", a, b, code))
		}
		seen[code] = r.String()
	}

	return result
}

func validateColor(s string) error {
	if s == "" || hexColor.MatchString(s) {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 || n > 255 {
		return fmt.Errorf("color %q must be #RGB, #RRGGBB or 0-255", s)
	}
	return nil
}
