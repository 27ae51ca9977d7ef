package huffpack

import (
	"errors"
	"fmt"
)

// ErrEmptyTable is returned when a code tree is requested for a frequency
// table with no entries.
var ErrEmptyTable = errors.New("frequency table is empty")

// ErrCorruptStream is the sentinel for every malformed-stream failure.  Test
// for it with errors.Is; the concrete error is a *CorruptError.
var ErrCorruptStream = errors.New("corrupt compressed stream")

// CorruptError describes where and why a compressed stream failed to parse.
type CorruptError struct {
	// Section names the part of the stream being parsed, e.g. "header" or
	// "payload".
	Section string

	// Offset is the byte offset (header) or bit offset (payload) at which
	// the problem was detected.
	Offset int64

	// Reason is a human-readable description of the problem.
	Reason string
}

func corruptf(section string, offset int64, format string, args ...interface{}) *CorruptError {
	return &CorruptError{Section: section, Offset: offset, Reason: fmt.Sprintf(format, args...)}
}

// Error returns the error message.
func (err *CorruptError) Error() string {
	return fmt.Sprintf("%v: %s at offset %d: %s", ErrCorruptStream, err.Section, err.Offset, err.Reason)
}

// Unwrap returns ErrCorruptStream.
func (err *CorruptError) Unwrap() error {
	return ErrCorruptStream
}

var _ error = (*CorruptError)(nil)
