// Package errors provides structured error types for circlepack.
//
// Every error that leaves a package boundary carries a [Code]. The CLI prints
// [UserMessage], the HTTP service answers with [HTTPStatus] and the code, and
// configuration errors also name the offending [Error.Field].
//
// # Error Codes
//
//   - INVALID_*: the caller sent something unusable
//   - FILE_NOT_FOUND: a scene or config path does not exist
//   - TIMEOUT: a packing did not settle within its tick limit
//   - INTERNAL_ERROR, UNSUPPORTED: everything else
//
// # Usage
//
//	err := errors.Invalid("border", "must be below size/2 (%v)", size/2)
//	if errors.Is(err, errors.ErrCodeInvalidConfig) {
//	    fmt.Println(errors.FieldOf(err)) // border
//	}
//
//	err = errors.Wrap(errors.ErrCodeFileNotFound, origErr, "read scene %s", path)
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code is a machine-readable error category.
type Code string

const (
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidStyle  Code = "INVALID_STYLE"
	ErrCodeInvalidScene  Code = "INVALID_SCENE"

	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// ErrCodeTimeout means the tick limit ran out before the packing settled.
	ErrCodeTimeout Code = "TIMEOUT"

	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error is a coded error with an optional cause.
type Error struct {
	Code    Code
	Message string
	Field   string // configuration key at fault, if any
	Cause   error
}

func (e *Error) Error() string {
	msg := e.Message
	if e.Field != "" {
		msg = e.Field + " " + msg
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, msg, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, msg)
}

func (e *Error) Unwrap() error { return e.Cause }

// New creates an Error with a formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates an Error around cause.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// Invalid reports a bad configuration value. The message should read as a
// continuation of the field name: Invalid("size", "must be positive").
func Invalid(field, format string, args ...any) *Error {
	return &Error{Code: ErrCodeInvalidConfig, Field: field, Message: fmt.Sprintf(format, args...)}
}

// Is reports whether the first *Error in err's chain has code.
func Is(err error, code Code) bool {
	return GetCode(err) == code && code != ""
}

// GetCode returns the code of the first *Error in err's chain, or "".
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// FieldOf returns the configuration field named by err, or "".
func FieldOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Field
	}
	return ""
}

// UserMessage returns the message without the code prefix. Errors from
// outside this package are returned as is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		if e.Field != "" {
			return e.Field + " " + e.Message
		}
		return e.Message
	}
	return err.Error()
}

// HTTPStatus maps err's code to a response status.
func HTTPStatus(err error) int {
	switch GetCode(err) {
	case ErrCodeInvalidInput, ErrCodeInvalidConfig, ErrCodeInvalidFormat,
		ErrCodeInvalidStyle, ErrCodeInvalidScene:
		return http.StatusBadRequest
	case ErrCodeFileNotFound:
		return http.StatusNotFound
	case ErrCodeTimeout:
		return http.StatusUnprocessableEntity
	case ErrCodeUnsupported:
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}
