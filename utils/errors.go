// utils/errors.go
package utils

import (
	"context"
	"errors"
	"fmt"
)

// ErrorKind classifies failures so the request boundary can map them to a status.
type ErrorKind string

const (
	KindUnauthorized  ErrorKind = "unauthorized"
	KindValidation    ErrorKind = "validation"
	KindNotFound      ErrorKind = "not_found"
	KindConflict      ErrorKind = "conflict"
	KindConfiguration ErrorKind = "configuration"
	KindTimeout       ErrorKind = "timeout"
	KindInternal      ErrorKind = "internal"
)

// AppError is the error type every service returns to the controllers.
type AppError struct {
	Kind    ErrorKind
	Message string
	Field   string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func Unauthorized(msg string) *AppError {
	return &AppError{Kind: KindUnauthorized, Message: msg}
}

func Validation(msg string) *AppError {
	return &AppError{Kind: KindValidation, Message: msg}
}

// ValidationField reports a validation failure tied to a single input field.
func ValidationField(field, msg string) *AppError {
	return &AppError{Kind: KindValidation, Message: msg, Field: field}
}

func NotFound(msg string) *AppError {
	return &AppError{Kind: KindNotFound, Message: msg}
}

func Conflict(msg string) *AppError {
	return &AppError{Kind: KindConflict, Message: msg}
}

func Configuration(msg string) *AppError {
	return &AppError{Kind: KindConfiguration, Message: msg}
}

func Internal(err error) *AppError {
	return &AppError{Kind: KindInternal, Message: "Internal server error", Err: err}
}

// AsAppError normalizes any error into an AppError. Deadline expiry becomes a
// timeout, anything unknown becomes internal.
func AsAppError(err error) *AppError {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return &AppError{Kind: KindTimeout, Message: "Request timed out", Err: err}
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Internal(err)
}

// IsKind reports whether err is an AppError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	appErr := AsAppError(err)
	return appErr != nil && appErr.Kind == kind
}
