// Package serrors attaches semantic kinds to errors so callers can classify
// failures (timeouts, missing elements, rejected logins) with errors.Is while
// keeping the original cause chain intact.
package serrors

import (
	"errors"
	"fmt"
)

// Kind is implemented by every sentinel created with NewKind.
type Kind interface {
	error
	isKind()
}

type kind struct{ s string }

func (k kind) Error() string { return k.s }
func (k kind) isKind()       {}

// NewKind creates a comparable sentinel for a category of failures.
func NewKind(name string) Kind { return kind{s: name} }

var (
	// ErrNotFound indicates an expected page element, table row or resource is missing.
	ErrNotFound = NewKind("NOT_FOUND")
	// ErrUnauthorized indicates the control panel did not accept the credentials.
	ErrUnauthorized = NewKind("UNAUTHORIZED")
	// ErrInvalidConfig indicates required settings are missing or malformed.
	ErrInvalidConfig = NewKind("INVALID_CONFIG")
	// ErrConflict indicates the resource already exists.
	ErrConflict = NewKind("CONFLICT")
	// ErrTimeout indicates a wait or poll ran out of time.
	ErrTimeout = NewKind("TIMEOUT")
	// ErrUnavailable indicates the remote browser endpoint could not be reached.
	ErrUnavailable = NewKind("UNAVAILABLE")
	// ErrInternal indicates an unexpected failure inside the page scripts or driver.
	ErrInternal = NewKind("INTERNAL")
)

// Error carries a kind, an optional cause and an optional message.
// errors.Is and errors.As match against both the kind and the cause.
//
// The string form is "<msg>: <cause>", falling back to whichever part is set
// and finally to the kind name.
type Error struct {
	kind Kind
	err  error
	msg  string
}

// With builds an error of kind k with a formatted message.
func With(k Kind, msgFmt string, args ...any) *Error {
	return &Error{kind: k, msg: fmt.Sprintf(msgFmt, args...)}
}

// Wrap builds an error of kind k around err with a formatted message.
func Wrap(k Kind, err error, msgFmt string, args ...any) *Error {
	return &Error{kind: k, err: err, msg: fmt.Sprintf(msgFmt, args...)}
}

// KindOnly builds an error that carries nothing but its kind.
func KindOnly(k Kind) *Error { return &Error{kind: k} }

func (e *Error) Error() string {
	switch {
	case e == nil:
		return "<nil>"
	case e.msg != "" && e.err != nil:
		return e.msg + ": " + e.err.Error()
	case e.msg != "":
		return e.msg
	case e.err != nil:
		return e.err.Error()
	case e.kind != nil:
		return e.kind.Error()
	default:
		return "unknown error"
	}
}

// Unwrap exposes the cause to the errors package.
func (e *Error) Unwrap() error { return e.err }

// Is reports whether target is the kind of e or anywhere in its cause chain.
func (e *Error) Is(target error) bool {
	if e == nil || target == nil {
		return e == nil && target == nil
	}

	return (e.kind != nil && errors.Is(e.kind, target)) ||
		(e.err != nil && errors.Is(e.err, target))
}

// As assigns either the kind or a matching cause to target.
func (e *Error) As(target any) bool {
	if e == nil || target == nil {
		return false
	}

	return (e.kind != nil && errors.As(e.kind, target)) ||
		(e.err != nil && errors.As(e.err, target))
}

// Kind returns the sentinel of e, or nil.
func (e *Error) Kind() Kind { return e.kind }

// Message returns the message attached to e.
func (e *Error) Message() string { return e.msg }

// Cause returns the wrapped error, or nil.
func (e *Error) Cause() error { return e.err }

// KindOf returns the kind of the first *Error found in err's chain, or nil.
func KindOf(err error) Kind {
	var se *Error
	if errors.As(err, &se) {
		return se.kind
	}

	return nil
}
