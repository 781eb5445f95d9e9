// Package clierr carries process exit codes through cobra's error returns.
package clierr

import (
	"errors"
	"fmt"
)

// ExitCoder is an error that selects the process exit code.
type ExitCoder interface {
	error
	ExitCode() int
}

// ExitError pairs a user-facing message and an optional cause with an exit
// code. errors.Is and errors.As see through it to the cause.
type ExitError struct {
	code  int
	msg   string
	cause error
}

func (e *ExitError) Error() string {
	if e.cause == nil {
		return e.msg
	}
	return fmt.Sprintf("%s: %v", e.msg, e.cause)
}

func (e *ExitError) ExitCode() int { return e.code }

func (e *ExitError) Unwrap() error { return e.cause }

// New creates an ExitError with a message.
func New(code int, msg string) error {
	return &ExitError{code: normalize(code), msg: msg}
}

// Newf is a formatted variant of New.
func Newf(code int, format string, args ...any) error {
	return New(code, fmt.Sprintf(format, args...))
}

// Wrap creates an ExitError around cause. A nil cause yields New.
func Wrap(code int, msg string, cause error) error {
	if cause == nil {
		return New(code, msg)
	}
	return &ExitError{code: normalize(code), msg: msg, cause: cause}
}

// ExitCodeOf extracts the exit code of err: 0 for nil, 1 when err carries
// no code.
func ExitCodeOf(err error) int {
	if err == nil {
		return 0
	}
	var ec ExitCoder
	if errors.As(err, &ec) {
		return ec.ExitCode()
	}
	return 1
}

// normalize keeps failures from reporting success.
func normalize(code int) int {
	if code <= 0 {
		return 1
	}
	return code
}
