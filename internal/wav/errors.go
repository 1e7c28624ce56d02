package wav

import (
	"errors"
	"fmt"
)

// ErrUnsupported is wrapped by FormatError when the header is a valid RIFF
// header describing something other than 16-bit PCM.
var ErrUnsupported = errors.New("unsupported WAV encoding")

// FormatError reports a malformed or unsupported WAV header.
type FormatError struct {
	Field  string
	Reason string
	Err    error
}

func (e *FormatError) Error() string {
	if e.Field == "" {
		return "wav: " + e.Reason
	}
	return fmt.Sprintf("wav: %s: %s", e.Field, e.Reason)
}

func (e *FormatError) Unwrap() error { return e.Err }

// IOError reports a failure reading the PCM payload, including a payload
// shorter than the data chunk declares.
type IOError struct {
	Op  string
	Err error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("wav: %s: %v", e.Op, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }
