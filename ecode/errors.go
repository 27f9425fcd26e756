package ecode

import (
	"context"
	"errors"
	"fmt"
)

// Kind classifies a client-side failure
type Kind string

const (
	// Validation malformed input or backend response shape
	Validation Kind = "validation"
	// Network unreachable backend, DNS or connection failure
	Network Kind = "network"
	// Timeout bounded wait exceeded
	Timeout Kind = "timeout"
	// Unauthorized backend rejected the session credential (401);
	// a rejected login exchange is a Backend failure instead
	Unauthorized Kind = "unauthorized"
	// Store session persistence failure
	Store Kind = "store"
	// Decode malformed credential structure
	Decode Kind = "decode"
	// Backend backend-reported failure other than 401
	Backend Kind = "backend"
)

// Error carries a failure kind, an internal message and an optional cause
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap returns the underlying cause
func (e *Error) Unwrap() error {
	return e.Err
}

// New creates an error of the given kind
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Newf creates an error of the given kind with a formatted message
func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates an error of the given kind preserving the cause
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf extracts the kind from an error chain; empty when not an *Error
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// Is reports whether the error chain contains an *Error of the given kind
func Is(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// FromTransport maps a transport-level failure to Timeout or Network
func FromTransport(err error) *Error {
	if errors.Is(err, context.DeadlineExceeded) {
		return Wrap(Timeout, "request deadline exceeded", err)
	}
	return Wrap(Network, "request failed", err)
}
