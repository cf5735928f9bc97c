// Package apperr defines the error kinds surfaced by the cabinet core.
package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput marks a malformed or missing required field.
	ErrInvalidInput = errors.New("invalid input")
	// ErrNotFound marks a reference to a record that does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConflict marks a uniqueness violation at a creation boundary.
	ErrConflict = errors.New("conflict")
)

// Invalid wraps ErrInvalidInput with the violated constraint.
func Invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

// NotFound wraps ErrNotFound with the missing reference.
func NotFound(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}

// Conflict wraps ErrConflict with the clashing value.
func Conflict(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrConflict, fmt.Sprintf(format, args...))
}

// Message strips the sentinel prefix so the violated constraint can be shown
// to a caller verbatim.
func Message(err error) string {
	if err == nil {
		return ""
	}
	text := err.Error()
	for _, sentinel := range []error{ErrInvalidInput, ErrNotFound, ErrConflict} {
		prefix := sentinel.Error() + ": "
		if errors.Is(err, sentinel) && len(text) > len(prefix) && text[:len(prefix)] == prefix {
			return text[len(prefix):]
		}
	}
	return text
}
