// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package apperr defines the client-facing error type of the Tasklist API.

Services return an [*AppError] for every outcome the caller should see
(missing task, foreign account, bad credentials, throttled login) and plain
wrapped errors for everything else. The HTTP layer turns the former into its
status and code, and collapses the latter into a generic 500.
*/
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Stable machine-readable codes. Clients match on these, never on messages.
const (
	CodeNotFound        = "NOT_FOUND"
	CodeUnauthorized    = "UNAUTHORIZED"
	CodeAccessDenied    = "ACCESS_DENIED"
	CodeConflict        = "CONFLICT"
	CodeValidation      = "VALIDATION_ERROR"
	CodeUnprocessable   = "UNPROCESSABLE"
	CodeRateLimited     = "RATE_LIMITED"
	CodeInternal        = "INTERNAL_ERROR"
	internalMessage     = "An unexpected error occurred"
	rateLimitedTemplate = "Too many requests. Try again in %ds."
)

// AppError carries an HTTP status, a code from the list above and a message
// that is safe to show. Cause is for server logs only.
type AppError struct {
	Code       string       `json:"code"`
	Message    string       `json:"error"`
	HTTPStatus int          `json:"-"`
	Cause      error        `json:"-"`
	Details    []FieldError `json:"details,omitempty"`
	// RetryAfter is the Retry-After hint in seconds for RATE_LIMITED.
	RetryAfter int `json:"-"`
}

// FieldError is one failed validation rule.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *AppError) Error() string { return e.Message }

// Unwrap exposes Cause to [errors.Is] and [errors.As].
func (e *AppError) Unwrap() error { return e.Cause }

// WithCause records the underlying error and returns e.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

func newError(code string, status int, message string) *AppError {
	return &AppError{Code: code, Message: message, HTTPStatus: status}
}

// NotFound reports a missing resource, e.g. NotFound("Task") -> "Task not found".
func NotFound(resource string) *AppError {
	return newError(CodeNotFound, http.StatusNotFound, resource+" not found")
}

// Unauthorized reports missing or rejected credentials.
func Unauthorized(msg string) *AppError {
	return newError(CodeUnauthorized, http.StatusUnauthorized, msg)
}

// AccessDenied reports an authenticated caller acting on someone else's
// resource. The status is 400, not 403.
func AccessDenied(msg string) *AppError {
	return newError(CodeAccessDenied, http.StatusBadRequest, msg)
}

// Conflict reports a unique-constraint clash such as a taken email.
func Conflict(msg string) *AppError {
	return newError(CodeConflict, http.StatusConflict, msg)
}

// ValidationError reports malformed input with optional per-field details.
func ValidationError(msg string, details ...FieldError) *AppError {
	appError := newError(CodeValidation, http.StatusBadRequest, msg)
	appError.Details = details
	return appError
}

// Unprocessable reports well-formed input that cannot be accepted, such as a
// non-image avatar upload.
func Unprocessable(msg string) *AppError {
	return newError(CodeUnprocessable, http.StatusUnprocessableEntity, msg)
}

// RateLimited reports throttling with a Retry-After hint in seconds.
func RateLimited(retryAfterSeconds int) *AppError {
	appError := newError(CodeRateLimited, http.StatusTooManyRequests, fmt.Sprintf(rateLimitedTemplate, retryAfterSeconds))
	appError.RetryAfter = retryAfterSeconds
	return appError
}

// Internal hides cause behind a generic 500 message.
func Internal(cause error) *AppError {
	return newError(CodeInternal, http.StatusInternalServerError, internalMessage).WithCause(cause)
}

// As returns the first [*AppError] in err's chain, or nil.
func As(err error) *AppError {
	var appError *AppError
	if errors.As(err, &appError) {
		return appError
	}
	return nil
}

// IsAppError reports whether err's chain holds an [*AppError].
func IsAppError(err error) bool {
	return As(err) != nil
}

// HasCode reports whether err's chain holds an [*AppError] with the given code.
func HasCode(err error, code string) bool {
	appError := As(err)
	return appError != nil && appError.Code == code
}
