package geokeys

import "fmt"

// FormatError indicates a malformed GeoKeyDirectory or GeoKey value.
type FormatError struct {
	Key    KeyID // 0 for problems with the directory header
	Reason string
}

func (e *FormatError) Error() string {
	if e.Key == 0 {
		return fmt.Sprintf("invalid GeoKeyDirectory: %s", e.Reason)
	}
	return fmt.Sprintf("invalid %v: %s", e.Key, e.Reason)
}

func formatErrorf(key KeyID, format string, args ...any) *FormatError {
	return &FormatError{Key: key, Reason: fmt.Sprintf(format, args...)}
}
