// Package errors provides coded errors for the trading cycle.
//
// Codes are grouped by range:
//   - General (1-99)
//   - Validation (100-199): bad parameters, configuration, insufficient data, invalid actions
//   - Data (200-299): storage lookups and queries
//   - Broker (500-599): session and order failures
//   - External data (700-799): malformed responses, forecast, news and notification failures
//   - Cycle (800-899): unexpected controller failures
//
// Usage:
//
//	err := errors.Wrap(errors.ErrCodeBrokerRequest, "failed to list positions", cause)
//	if errors.HasCode(err, errors.ErrCodeMalformedResponse) { ... }
package errors

import (
	"errors"
	"fmt"
)

// Error is a structured error with a code and message.
type Error struct {
	Code    ErrorCode
	Message string
	Cause   error
}

func New(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

func Newf(code ErrorCode, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

func Wrap(code ErrorCode, message string, cause error) *Error {
	return &Error{Code: code, Message: message, Cause: cause}
}

func Wrapf(code ErrorCode, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// GetCode returns the code of the first *Error in the chain, or ErrCodeUnknown.
func GetCode(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	var ide *InsufficientDataError
	if errors.As(err, &ide) {
		return ErrCodeInsufficientData
	}
	return ErrCodeUnknown
}

// HasCode checks if an error has a specific ErrorCode.
func HasCode(err error, code ErrorCode) bool {
	return GetCode(err) == code
}

// InsufficientDataError is returned when a calculation has fewer data points than it requires.
type InsufficientDataError struct {
	Required int    // Minimum data points required
	Actual   int    // Data points supplied
	Symbol   string // Optional instrument context
	Message  string
}

func NewInsufficientDataError(required, actual int, symbol, message string) *InsufficientDataError {
	return &InsufficientDataError{
		Required: required,
		Actual:   actual,
		Symbol:   symbol,
		Message:  message,
	}
}

func NewInsufficientDataErrorf(required, actual int, symbol, format string, args ...any) *InsufficientDataError {
	return NewInsufficientDataError(required, actual, symbol, fmt.Sprintf(format, args...))
}

func (e *InsufficientDataError) Error() string {
	return e.Message
}

// IsInsufficientDataError reports whether err is or wraps an *InsufficientDataError.
func IsInsufficientDataError(err error) bool {
	var e *InsufficientDataError
	return errors.As(err, &e)
}

// AsInsufficientDataError returns the *InsufficientDataError in err's chain, if any.
func AsInsufficientDataError(err error) (*InsufficientDataError, bool) {
	var e *InsufficientDataError
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}
