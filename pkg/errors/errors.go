package errors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrUnexpected   ErrorCode = "UNEXPECTED"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"
	ErrNotFound     ErrorCode = "NOT_FOUND"
	ErrCancelled    ErrorCode = "CANCELLED"
	ErrStepsFailed  ErrorCode = "STEPS_FAILED"

	// External process errors
	ErrCommand ErrorCode = "COMMAND"
	ErrClone   ErrorCode = "CLONE"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"
	ErrConfigValid ErrorCode = "CONFIG_INVALID"

	// FileSystem errors
	ErrFileAccess ErrorCode = "FILE_ACCESS"
	ErrFileWrite  ErrorCode = "FILE_WRITE"
	ErrDirCreate  ErrorCode = "DIR_CREATE"
)

// SetupError represents a structured error with code and details
type SetupError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *SetupError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *SetupError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *SetupError) Is(target error) bool {
	var targetErr *SetupError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new SetupError with the given code and message
func New(code ErrorCode, message string) *SetupError {
	return &SetupError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new SetupError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *SetupError {
	return &SetupError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a SetupError.
// Callers must not return the result as an error interface when err may be nil.
func Wrap(err error, code ErrorCode, message string) *SetupError {
	if err == nil {
		return nil
	}
	return &SetupError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *SetupError {
	if err == nil {
		return nil
	}
	return &SetupError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *SetupError) WithDetail(key string, value interface{}) *SetupError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithDetails adds multiple details to the error
func (e *SetupError) WithDetails(details map[string]interface{}) *SetupError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// CommandFailed builds the COMMAND error for an external process that could
// not be started or exited non-zero. exitCode is -1 when the process never ran.
func CommandFailed(err error, name string, args []string, exitCode int, stderr string) *SetupError {
	line := strings.TrimSpace(name + " " + strings.Join(args, " "))
	e := &SetupError{
		Code:    ErrCommand,
		Message: fmt.Sprintf("command %q failed", line),
		Wrapped: err,
	}
	e.WithDetail("command", name).
		WithDetail("args", args).
		WithDetail("exit_code", exitCode)
	if s := strings.TrimSpace(stderr); s != "" {
		e.WithDetail("stderr", s)
	}
	return e
}

// NotFound builds the NOT_FOUND error for a missing path.
func NotFound(what, path string) *SetupError {
	return Newf(ErrNotFound, "%s not found: %s", what, path).WithDetail("path", path)
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var setupErr *SetupError
	if errors.As(err, &setupErr) {
		return setupErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a SetupError
func GetErrorCode(err error) ErrorCode {
	var setupErr *SetupError
	if errors.As(err, &setupErr) {
		return setupErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a SetupError
func GetErrorDetails(err error) map[string]interface{} {
	var setupErr *SetupError
	if errors.As(err, &setupErr) {
		return setupErr.Details
	}
	return nil
}

// ExitCode returns the exit_code detail of the first COMMAND error in the
// chain, or -1.
func ExitCode(err error) int {
	for err != nil {
		var setupErr *SetupError
		if !errors.As(err, &setupErr) {
			return -1
		}
		if setupErr.Code == ErrCommand {
			if code, ok := setupErr.Details["exit_code"].(int); ok {
				return code
			}
			return -1
		}
		err = setupErr.Wrapped
	}
	return -1
}
