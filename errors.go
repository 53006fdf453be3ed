package snapraw

import (
	"errors"
	"fmt"
	"io"
)

var (
	// ErrNoMetadata is returned when every strategy for a file is
	// exhausted without finding a usable tag directory.
	ErrNoMetadata = errors.New("snapraw: no metadata found")

	// ErrNoTimestamp is returned by DecodeDate when metadata was found
	// but no directory holds a parseable capture timestamp.
	ErrNoTimestamp = errors.New("snapraw: no capture timestamp found")

	// Internal error to signal that we should stop any further processing.
	errStop = fmt.Errorf("stop")
)

// InvalidFormatError wraps an error caused by a malformed or truncated file.
type InvalidFormatError struct {
	Err error
}

func (e *InvalidFormatError) Error() string {
	return fmt.Sprintf("snapraw: invalid format: %v", e.Err)
}

func (e *InvalidFormatError) Unwrap() error {
	return e.Err
}

var errInvalidFormat = &InvalidFormatError{Err: errors.New("invalid format")}

func newInvalidFormatErrorf(format string, args ...any) error {
	return &InvalidFormatError{Err: fmt.Errorf(format, args...)}
}

func newInvalidFormatError(err error) error {
	if _, ok := err.(*InvalidFormatError); ok {
		return err
	}
	return &InvalidFormatError{Err: err}
}

// IsInvalidFormat reports whether err indicates a malformed file as
// opposed to an I/O failure.
func IsInvalidFormat(err error) bool {
	var ife *InvalidFormatError
	return errors.As(err, &ife)
}

func isInvalidFormatErrorCandidate(err error) bool {
	return err == io.ErrUnexpectedEOF || err == errShortRead
}
