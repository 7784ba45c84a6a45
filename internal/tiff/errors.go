package tiff

import (
	"errors"
	"fmt"
)

// ErrUnsupported is wrapped by errors for valid TIFF features this package does not decode.
var ErrUnsupported = errors.New("unsupported TIFF feature")

// FormatError indicates a malformed TIFF file.
type FormatError struct {
	Tag    Tag // Offending entry, 0 for header problems
	Reason string
}

func (e *FormatError) Error() string {
	if e.Tag == 0 {
		return fmt.Sprintf("invalid TIFF: %s", e.Reason)
	}
	return fmt.Sprintf("invalid TIFF entry %v: %s", e.Tag, e.Reason)
}

func formatErrorf(tag Tag, format string, args ...any) *FormatError {
	return &FormatError{Tag: tag, Reason: fmt.Sprintf(format, args...)}
}

func unsupportedf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrUnsupported, fmt.Sprintf(format, args...))
}
