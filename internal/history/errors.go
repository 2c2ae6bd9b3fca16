package history

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKindValidation is reported by ValidationError.ErrorKind.
const ErrorKindValidation = "validation"

var (
	ErrProtected     = errors.New("object is protected")
	ErrDuplicateName = errors.New("name already in use")
	ErrInvalidName   = errors.New("invalid name")
	ErrSameLocation  = errors.New("already at that location")
	ErrNotFound      = errors.New("not found")
	ErrInvalidRange  = errors.New("invalid range")
	ErrLocked        = errors.New("track is locked")
	ErrUnsupported   = errors.New("operation not supported")
)

// ValidationError reports an edit that was refused before any mutation took
// place. Err is one of the sentinel errors above.
type ValidationError struct {
	Op     string
	Reason string
	Err    error
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, 2)
	if op := strings.TrimSpace(e.Op); op != "" {
		parts = append(parts, op)
	}
	if reason := strings.TrimSpace(e.Reason); reason != "" {
		parts = append(parts, reason)
	} else if e.Err != nil {
		parts = append(parts, e.Err.Error())
	}
	if len(parts) == 0 {
		return "edit refused"
	}
	return strings.Join(parts, ": ")
}

func (e *ValidationError) Unwrap() error { return e.Err }

// ErrorKind classifies the error for callers that map failures to statuses.
func (e *ValidationError) ErrorKind() string { return ErrorKindValidation }

// Invalid builds a ValidationError tagged with cause.
func Invalid(cause error, op, format string, args ...any) error {
	return &ValidationError{Op: op, Reason: fmt.Sprintf(format, args...), Err: cause}
}

// IsValidation reports whether err carries a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
