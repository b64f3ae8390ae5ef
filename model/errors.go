package model

import "errors"

// Kind is a stable category for programmatic error handling.
//
// Callers should branch on Kind rather than matching error strings.
// Use errors.As to extract *Error for structured handling.
type Kind string

const (
	KindResourceExhausted      Kind = "ResourceExhausted"
	KindInsufficientFunds      Kind = "InsufficientFunds"
	KindInsufficientCapability Kind = "InsufficientCapability"
	KindIneligibleProfile      Kind = "IneligibleProfile"
	KindNotRegistered          Kind = "NotRegistered"
	KindDownstreamRejected     Kind = "DownstreamRejected"
	KindAlreadyRegistered      Kind = "AlreadyRegistered"
	KindAlreadyInitialized     Kind = "AlreadyInitialized"
	KindNotInitialized         Kind = "NotInitialized"
	KindInvalidRequest         Kind = "InvalidRequest"
	KindOutOfRange             Kind = "OutOfRange"
	KindQuery                  Kind = "Query"
	KindStorage                Kind = "Storage"
)

// Error is the structured error returned by every state transition.
//
// Message is intended for humans; do not match on it.
type Error struct {
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
	Cause   error  `json:"-"`
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Cause != nil {
		return string(e.Kind) + ": " + e.Message + ": " + e.Cause.Error()
	}
	return string(e.Kind) + ": " + e.Message
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

func NewError(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func WrapError(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Cause: cause}
}

// IsKind reports whether err is (or wraps) a *Error with the given Kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Kind == kind
}

// KindOf returns the Kind of a structured error, or "" if err is not one.
func KindOf(err error) Kind {
	var e *Error
	if !errors.As(err, &e) {
		return ""
	}
	return e.Kind
}
