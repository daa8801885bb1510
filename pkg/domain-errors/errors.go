// Package domainerrors carries typed error codes across layers. Services return
// these codes; transports map them to status codes and wire error strings.
package domainerrors

import (
	"errors"
	"net/http"
)

// Code is a stable, wire-safe error identifier.
type Code string

// Protocol codes. Their string values are written verbatim into redirect and
// JSON error responses.
const (
	CodeInvalidRequest           Code = "invalid_request"
	CodeInvalidRequestURI        Code = "invalid_request_uri"
	CodeLoginRequired            Code = "login_required"
	CodeConsentRequired          Code = "consent_required"
	CodeInteractionRequired      Code = "interaction_required"
	CodeAccountSelectionRequired Code = "account_selection_required"
	CodeInvalidClient            Code = "invalid_client"
	CodeInternal                 Code = "internal_server_error"
)

// Transport and infrastructure codes.
const (
	CodeBadRequest   Code = "bad_request"
	CodeInvalidInput Code = "invalid_input"
	CodeUnauthorized Code = "unauthorized"
	CodeNotFound     Code = "not_found"
	CodeConflict     Code = "conflict"
	CodeRateLimited  Code = "rate_limited"
)

// Error is a domain error with a code and a human-readable message.
type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New creates a domain error.
func New(code Code, msg string) error {
	return &Error{Code: code, Message: msg}
}

// Wrap attaches a code and message to an underlying error.
func Wrap(err error, code Code, msg string) error {
	return &Error{Code: code, Message: msg, Err: err}
}

// Is reports whether the outermost domain error in err's chain has the given code.
func Is(err error, code Code) bool {
	var de *Error
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}

// HasCode reports whether any domain error in err's chain has the given code.
func HasCode(err error, code Code) bool {
	for err != nil {
		var de *Error
		if !errors.As(err, &de) {
			return false
		}
		if de.Code == code {
			return true
		}
		err = de.Err
	}
	return false
}

// CodeOf returns the outermost domain error code, or CodeInternal.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}

// ToHTTPStatus maps a code onto an HTTP status.
func ToHTTPStatus(code Code) int {
	switch code {
	case CodeInvalidRequest, CodeInvalidRequestURI, CodeBadRequest, CodeInvalidInput,
		CodeLoginRequired, CodeConsentRequired, CodeInteractionRequired, CodeAccountSelectionRequired:
		return http.StatusBadRequest
	case CodeInvalidClient, CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeNotFound:
		return http.StatusNotFound
	case CodeConflict:
		return http.StatusConflict
	case CodeRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}
