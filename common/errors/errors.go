package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// Error is a service error carrying the HTTP status it maps to.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *Error) Error() string {
	if e.Err != nil && e.Err.Error() != e.Message {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New creates an Error.
func New(code int, message string, err error) *Error {
	return &Error{Code: code, Message: message, Err: err}
}

// Validation rejects caller input before any backend call is made.
func Validation(message string) *Error {
	return New(http.StatusBadRequest, message, nil)
}

// Upstream wraps a failure reported by a managed backend. Its message is
// passed through to the caller unchanged.
func Upstream(err error) *Error {
	return New(http.StatusInternalServerError, rootMessage(err), err)
}

// Internal wraps an unclassified failure behind a generic message.
func Internal(err error) *Error {
	return New(http.StatusInternalServerError, "Internal server error", err)
}

// As returns the *Error in err's chain, if there is one.
func As(err error) (*Error, bool) {
	var appErr *Error
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// StatusOf returns the HTTP status for err, 500 when it is not an *Error.
func StatusOf(err error) int {
	if appErr, ok := As(err); ok {
		return appErr.Code
	}
	return http.StatusInternalServerError
}

// MessageOf returns the caller-facing message for err.
func MessageOf(err error) string {
	if appErr, ok := As(err); ok {
		return appErr.Message
	}
	return "Internal server error"
}

// rootMessage unwraps err down to the innermost error so "repo: insert: x"
// surfaces as the backend's own "x".
func rootMessage(err error) string {
	if err == nil {
		return ""
	}
	for {
		next := stderrors.Unwrap(err)
		if next == nil {
			return err.Error()
		}
		err = next
	}
}
