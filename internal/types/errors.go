package types

import (
	"errors"
	"net/http"
)

// ErrorKind classifies failures surfaced to API callers
type ErrorKind string

const (
	KindInvalidInput         ErrorKind = "invalid_input"
	KindUpstreamTimeout      ErrorKind = "upstream_timeout"
	KindUpstreamUnreachable  ErrorKind = "upstream_unreachable"
	KindUpstreamBadResponse  ErrorKind = "upstream_bad_response"
	KindParseFailure         ErrorKind = "parse_failure"
	KindConfigurationMissing ErrorKind = "configuration_missing"
	KindInternal             ErrorKind = "internal"
)

// Error is an application error carrying its kind and a caller-facing message
type Error struct {
	Kind    ErrorKind
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

// NewError creates an Error of the given kind
func NewError(kind ErrorKind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// StatusCode maps an error kind to its HTTP status
func (k ErrorKind) StatusCode() int {
	switch k {
	case KindInvalidInput:
		return http.StatusBadRequest
	case KindUpstreamTimeout:
		return http.StatusGatewayTimeout
	case KindUpstreamUnreachable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// KindOf returns the kind of err, or KindInternal when err is not an *Error
func KindOf(err error) ErrorKind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}
