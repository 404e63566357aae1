// Package apperr defines the application error taxonomy and its mapping to
// HTTP status codes. Services return *apperr.Error values; controllers hand
// them to response.WriteError, so no fault ever escapes to the transport
// layer unmapped.
package apperr

import (
	"errors"
	"net/http"
)

// Code identifies a class of application error.
type Code string

const (
	CodeValidation        Code = "validation"
	CodeUnauthorized      Code = "unauthorized"
	CodeForbidden         Code = "forbidden"
	CodeNotFound          Code = "not_found"
	CodeInsufficientStock Code = "insufficient_stock"
	CodeEmptyCart         Code = "empty_cart"
	CodeInternal          Code = "internal"
)

// Error is a typed application error with a user-facing message.
type Error struct {
	Code    Code
	Message string
	Err     error // optional wrapped cause, not exposed to clients
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// New builds an *Error with the given code and message.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

func Validation(message string) *Error        { return New(CodeValidation, message) }
func Unauthorized(message string) *Error      { return New(CodeUnauthorized, message) }
func Forbidden(message string) *Error         { return New(CodeForbidden, message) }
func NotFound(message string) *Error          { return New(CodeNotFound, message) }
func InsufficientStock(message string) *Error { return New(CodeInsufficientStock, message) }
func EmptyCart(message string) *Error         { return New(CodeEmptyCart, message) }

// Internal wraps an unexpected store/provider failure.
func Internal(message string, err error) *Error {
	return &Error{Code: CodeInternal, Message: message, Err: err}
}

// CodeOf returns the code carried by err, or CodeInternal for anything that
// is not an *Error.
func CodeOf(err error) Code {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Code
	}
	return CodeInternal
}

// Is reports whether err carries the given code.
func Is(err error, code Code) bool {
	return CodeOf(err) == code
}

// HTTPStatus maps an error to its HTTP status code.
func HTTPStatus(err error) int {
	switch CodeOf(err) {
	case CodeValidation, CodeInsufficientStock, CodeEmptyCart:
		return http.StatusBadRequest
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeForbidden:
		return http.StatusForbidden
	case CodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Message returns the user-facing message for err. Internal causes are
// masked behind a generic message so store errors never leak to clients.
func Message(err error) string {
	var ae *Error
	if errors.As(err, &ae) && ae.Code != CodeInternal {
		return ae.Message
	}
	if errors.As(err, &ae) && ae.Message != "" {
		return ae.Message
	}
	return "Internal Server Error"
}
