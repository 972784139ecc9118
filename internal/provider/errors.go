package provider

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"
)

// ErrorKind classifies a provider failure. The classification is applied at
// the adapter boundary exactly once and propagated unchanged, so callers can
// distinguish retryable from non-retryable failures.
type ErrorKind string

// Provider error kinds.
const (
	KindAuth            ErrorKind = "auth"
	KindRateLimit       ErrorKind = "rate_limit"
	KindConnection      ErrorKind = "connection"
	KindInvalidResponse ErrorKind = "invalid_response"
	KindGeneric         ErrorKind = "generic"
)

// Error is the tagged error type raised by vendor adapters and by the
// orchestration service for local parse/validation failures.
type Error struct {
	Kind    ErrorKind
	Vendor  string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s provider: %s: %v", e.Vendor, e.Message, e.Err)
	}
	return fmt.Sprintf("%s provider: %s", e.Vendor, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Retryable reports whether the failure is worth retrying by a caller.
// Rate limits and transport failures are transient; auth and malformed
// responses are not.
func (e *Error) Retryable() bool {
	return e.Kind == KindRateLimit || e.Kind == KindConnection
}

// NewError builds a classified provider error wrapping an optional cause.
func NewError(kind ErrorKind, vendor, message string, cause error) *Error {
	return &Error{Kind: kind, Vendor: vendor, Message: message, Err: cause}
}

// AsError extracts a *Error from an error chain.
func AsError(err error) (*Error, bool) {
	var pe *Error
	if errors.As(err, &pe) {
		return pe, true
	}
	return nil, false
}

// classifyStatus maps an HTTP status code from a vendor SDK error to an
// error kind. Zero (no status available) falls through to generic.
func classifyStatus(code int) ErrorKind {
	switch {
	case code == 401 || code == 403:
		return KindAuth
	case code == 429:
		return KindRateLimit
	case code >= 500 || code == 408:
		return KindConnection
	default:
		return KindGeneric
	}
}

// classifyTransport recognises transport-level failures that surface without
// an HTTP status, such as DNS errors or refused connections.
func classifyTransport(err error) (ErrorKind, bool) {
	var netErr net.Error
	if errors.As(err, &netErr) {
		return KindConnection, true
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return KindConnection, true
	}
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "connection refused") || strings.Contains(msg, "no such host") {
		return KindConnection, true
	}
	return KindGeneric, false
}
