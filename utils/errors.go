package utils

import (
	"errors"
	"fmt"
	"net/http"
)

type ErrorKind string

const (
	KindValidation         ErrorKind = "validation"
	KindInvalidStatus      ErrorKind = "invalid_status"
	KindPreconditionFailed ErrorKind = "precondition_failed"
	KindInvalidCredential  ErrorKind = "invalid_credential"
	KindNotFound           ErrorKind = "not_found"
	KindConflict           ErrorKind = "conflict"
	KindUnauthorized       ErrorKind = "unauthorized"
	KindForbidden          ErrorKind = "forbidden"
	KindInternal           ErrorKind = "internal"
)

// AppError is the error every service returns. Message is shown to the caller verbatim.
type AppError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func newError(kind ErrorKind, format string, args ...any) *AppError {
	return &AppError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func Validation(format string, args ...any) *AppError {
	return newError(KindValidation, format, args...)
}

func InvalidStatus(format string, args ...any) *AppError {
	return newError(KindInvalidStatus, format, args...)
}

func PreconditionFailed(format string, args ...any) *AppError {
	return newError(KindPreconditionFailed, format, args...)
}

func InvalidCredential(format string, args ...any) *AppError {
	return newError(KindInvalidCredential, format, args...)
}

func NotFound(format string, args ...any) *AppError {
	return newError(KindNotFound, format, args...)
}

func Conflict(format string, args ...any) *AppError {
	return newError(KindConflict, format, args...)
}

func Unauthorized(format string, args ...any) *AppError {
	return newError(KindUnauthorized, format, args...)
}

func Forbidden(format string, args ...any) *AppError {
	return newError(KindForbidden, format, args...)
}

// Internal wraps a storage or runtime failure. The cause is kept for logs only.
func Internal(err error) *AppError {
	return &AppError{Kind: KindInternal, Message: "internal server error", Err: err}
}

// KindOf returns the kind of err, or internal for errors that are not AppErrors.
func KindOf(err error) ErrorKind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

func IsKind(err error, kind ErrorKind) bool {
	return err != nil && KindOf(err) == kind
}

func StatusCode(err error) int {
	switch KindOf(err) {
	case KindValidation, KindInvalidStatus, KindPreconditionFailed, KindInvalidCredential, KindConflict:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
