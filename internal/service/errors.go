// internal/service/errors.go
package service

import (
	"errors"
	"fmt"
)

// ErrNotFound covers both an unknown user and a user without credits; the
// two cases are deliberately not distinguished.
var ErrNotFound = errors.New("user or credits not found")

// ValidationError rejects a whole plan upload, pointing at the first bad
// row (1-based).
type ValidationError struct {
	Row     int
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func rowError(row int, format string, args ...any) *ValidationError {
	return &ValidationError{Row: row, Message: fmt.Sprintf(format, args...)}
}

// YearRangeError rejects a performance request for a year outside
// [2000, current year + 1].
type YearRangeError struct {
	Year int
	Max  int
}

func (e *YearRangeError) Error() string {
	return fmt.Sprintf("Invalid year: %d. Must be between 2000 and %d.", e.Year, e.Max)
}
