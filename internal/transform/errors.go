package transform

import (
	"errors"
	"fmt"
)

// Tag names used in error messages.
const (
	ModelPixelScaleTag     = "ModelPixelScaleTag"
	ModelTiepointTag       = "ModelTiepointTag"
	ModelTransformationTag = "ModelTransformationTag"
)

// ErrUnsupported is wrapped by errors for transformations this build cannot perform.
var ErrUnsupported = errors.New("unsupported coordinate transformation")

// FormatError indicates tag data that cannot describe a valid coordinate transformation.
type FormatError struct {
	Tag    string // Offending tag
	Reason string
	Err    error // Optional cause, e.g. ErrUnsupported
}

func (e *FormatError) Error() string {
	if e.Tag == "" {
		return fmt.Sprintf("invalid coordinate transformation: %s", e.Reason)
	}
	return fmt.Sprintf("invalid %s: %s", e.Tag, e.Reason)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

func formatErrorf(tag, format string, args ...any) *FormatError {
	return &FormatError{Tag: tag, Reason: fmt.Sprintf(format, args...)}
}
