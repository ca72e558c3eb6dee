// Package apierror provides the canonical error taxonomy for the API.
// Every failure returned to a client goes through this package so that
// business-rule violations, authorization failures and store errors map
// to stable codes and HTTP statuses without leaking internal detail.
package apierror

import (
	"errors"
	"fmt"
	"net/http"
)

// Code classifies a failure. The set is closed: handlers translate each
// code to exactly one HTTP status, and services never invent new ones.
type Code string

const (
	Unauthenticated    Code = "unauthenticated"
	PermissionDenied   Code = "permission_denied"
	InvalidArgument    Code = "invalid_argument"
	NotFound           Code = "not_found"
	FailedPrecondition Code = "failed_precondition"
	AlreadyExists      Code = "already_exists"
	Internal           Code = "internal"
)

// Error is the envelope serialized in every 4xx/5xx response body.
type Error struct {
	Code   Code   `json:"code"`
	Detail string `json:"detail"`
}

func (e *Error) Error() string { return e.Detail }

func New(code Code, detail string) *Error {
	return &Error{Code: code, Detail: detail}
}

func Newf(code Code, format string, args ...interface{}) *Error {
	return &Error{Code: code, Detail: fmt.Sprintf(format, args...)}
}

// From normalizes any error into an *Error. Unclassified errors become
// Internal with a generic message — the original error is for the logs,
// never for the client.
func From(err error) *Error {
	var ae *Error
	if errors.As(err, &ae) {
		return ae
	}
	return &Error{Code: Internal, Detail: "Error interno del servidor"}
}

// Status maps a code to its HTTP status. FailedPrecondition and
// AlreadyExists both surface as 409: the request was well-formed but the
// current state of the world rejects it.
func Status(code Code) int {
	switch code {
	case Unauthenticated:
		return http.StatusUnauthorized
	case PermissionDenied:
		return http.StatusForbidden
	case InvalidArgument:
		return http.StatusBadRequest
	case NotFound:
		return http.StatusNotFound
	case FailedPrecondition, AlreadyExists:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Is reports whether err carries the given code.
func Is(err error, code Code) bool {
	var ae *Error
	return errors.As(err, &ae) && ae.Code == code
}

// ValidationError wraps per-field validation failures.
type ValidationError struct {
	Code   Code              `json:"code"`
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Code: InvalidArgument, Detail: "Error de validacion", Fields: fields}
}
