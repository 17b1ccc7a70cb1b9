package errors

import (
	"encoding/json"
	"fmt"
)

// ErrorCode represents a specific error condition
type ErrorCode string

const (
	// Configuration errors
	ErrCodeConfigNotFound   ErrorCode = "CONFIG_NOT_FOUND"
	ErrCodeConfigInvalid    ErrorCode = "CONFIG_INVALID"
	ErrCodeConfigValidation ErrorCode = "CONFIG_VALIDATION"

	// Editor host errors
	ErrCodeEditorUnavailable ErrorCode = "EDITOR_UNAVAILABLE"
	ErrCodeEditorCommand     ErrorCode = "EDITOR_COMMAND"

	// File watcher errors
	ErrCodeWatcherFailed ErrorCode = "WATCHER_FAILED"

	// Daemon errors
	ErrCodeDaemonRunning    ErrorCode = "DAEMON_RUNNING"
	ErrCodeDaemonNotRunning ErrorCode = "DAEMON_NOT_RUNNING"
	ErrCodeDaemonSocket     ErrorCode = "DAEMON_SOCKET"

	// General errors
	ErrCodeInternal     ErrorCode = "INTERNAL_ERROR"
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
)

// DraftError represents a structured error with context
type DraftError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
	Cause   error                  `json:"-"`
}

// Error implements the error interface
func (e *DraftError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *DraftError) Unwrap() error {
	return e.Cause
}

// WithDetail adds a detail to the error
func (e *DraftError) WithDetail(key string, value interface{}) *DraftError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// ToJSON converts the error to JSON
func (e *DraftError) ToJSON() string {
	data, _ := json.MarshalIndent(e, "", "  ")
	return string(data)
}

// New creates a new DraftError
func New(code ErrorCode, message string) *DraftError {
	return &DraftError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error with a DraftError
func Wrap(err error, code ErrorCode, message string) *DraftError {
	return &DraftError{
		Code:    code,
		Message: message,
		Cause:   err,
	}
}

// Is checks if an error is a specific DraftError code
func Is(err error, code ErrorCode) bool {
	if err == nil {
		return false
	}

	draftErr, ok := err.(*DraftError)
	if !ok {
		if unwrapper, ok := err.(interface{ Unwrap() error }); ok {
			return Is(unwrapper.Unwrap(), code)
		}
		return false
	}

	return draftErr.Code == code
}

// GetCode extracts the error code from an error
func GetCode(err error) ErrorCode {
	if err == nil {
		return ""
	}

	draftErr, ok := err.(*DraftError)
	if !ok {
		if unwrapper, ok := err.(interface{ Unwrap() error }); ok {
			return GetCode(unwrapper.Unwrap())
		}
		return ""
	}

	return draftErr.Code
}
