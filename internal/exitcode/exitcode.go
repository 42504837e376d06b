package exitcode

import (
	"errors"
	"fmt"
)

const (
	Success         = 0
	UsageError      = 1
	ValidationError = 2
	DBConnError     = 3
	StoreError      = 4
	DecodeError     = 5
	PartialSuccess  = 6
	ExportError     = 7
	GenerateError   = 8
)

// Error asks main to exit with Code once the command has returned and its
// deferred cleanup has run. The cause has already been logged.
type Error struct {
	Code int
}

func (e *Error) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

// New returns an *Error for code, or nil for Success.
func New(code int) error {
	if code == Success {
		return nil
	}
	return &Error{Code: code}
}

// Code maps a command error to a process exit code. Errors that carry no
// code (flag parsing, config loading) are usage errors.
func Code(err error) int {
	if err == nil {
		return Success
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return UsageError
}
