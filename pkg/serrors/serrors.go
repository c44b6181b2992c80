// Package serrors provides semantic error kinds arranged in a shallow
// hierarchy, and an Error wrapper that makes those kinds visible to errors.Is
// and errors.As. Transport layers map kinds to status codes; domain packages
// derive their own kinds from the defaults here.
package serrors

import (
	"errors"
	"fmt"
)

// Kind is a marker interface implemented by all semantic error kinds created
// with NewKind or NewSubKind.
type Kind interface {
	error
	isKind()
	// Parent returns the kind this one was derived from, or nil for roots.
	Parent() Kind
}

// kind is the unexported implementation of Kind. Two kinds are the same
// sentinel when both their name and their parent are equal.
type kind struct {
	s      string
	parent Kind
}

func (k kind) Error() string { return k.s }
func (k kind) isKind()       {}
func (k kind) Parent() Kind  { return k.parent }

// Is reports whether target is one of the ancestors of k. Matching k itself is
// handled by errors.Is through equality.
func (k kind) Is(target error) bool {
	return k.parent != nil && errors.Is(k.parent, target)
}

// NewKind creates a new root kind with the provided name.
func NewKind(name string) Kind { return kind{s: name} }

// NewSubKind creates a kind derived from parent. An error of the new kind also
// matches parent (and all of parent's ancestors) through errors.Is.
func NewSubKind(parent Kind, name string) Kind { return kind{s: name, parent: parent} }

// Default root kinds. The HTTP layer maps each to a status code.
var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = NewKind("NOT_FOUND")
	// ErrUnauthorized indicates missing or invalid credentials.
	ErrUnauthorized = NewKind("UNAUTHORIZED")
	// ErrBadRequest indicates the client sent invalid data.
	ErrBadRequest = NewKind("BAD_REQUEST")
	// ErrConflict indicates a state conflict, e.g. an email that is already taken.
	ErrConflict = NewKind("CONFLICT")
	// ErrInternal indicates an internal server error.
	ErrInternal = NewKind("INTERNAL")
	// ErrRateLimited indicates an upstream provider throttled the request.
	ErrRateLimited = NewKind("RATE_LIMITED")
)

// Error represents a semantic error carrying a kind, an optional wrapped error
// and an optional message.
//
// Error string formatting:
//   - If both msg and err are set: "<msg>: <err>"
//   - If only msg is set: "<msg>"
//   - If only err is set: "<err>"
//   - If neither set: the kind's Error() string.
type Error struct {
	kind Kind
	err  error
	msg  string
}

// With constructs a new semantic error with the given kind and a formatted message.
func With(k Kind, msgFmt string, args ...any) *Error {
	return &Error{kind: k, msg: fmt.Sprintf(msgFmt, args...)}
}

// Wrap constructs a new semantic error with the given kind that wraps err.
func Wrap(k Kind, err error, msgFmt string, args ...any) *Error {
	return &Error{kind: k, err: err, msg: fmt.Sprintf(msgFmt, args...)}
}

// KindOnly creates a semantic error carrying only the kind.
func KindOnly(k Kind) *Error { return &Error{kind: k} }

// Error implements the error interface.
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

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error { return e.err }

// Is matches target against the kind (including its ancestors) or the
// wrapped error chain.
func (e *Error) Is(target error) bool {
	if e == nil || target == nil {
		return e == nil && target == nil
	}
	if e.kind != nil && errors.Is(e.kind, target) {
		return true
	}

	return e.err != nil && errors.Is(e.err, target)
}

// As enables type assertions against either the kind or the wrapped error chain.
func (e *Error) As(target any) bool {
	if e == nil || target == nil {
		return false
	}
	if e.kind != nil && errors.As(e.kind, target) {
		return true
	}

	return e.err != nil && errors.As(e.err, target)
}

// Kind returns the kind associated with this error, or nil.
func (e *Error) Kind() Kind { return e.kind }

// Message returns the message attached to this error.
func (e *Error) Message() string { return e.msg }

// Cause returns the wrapped cause (may be nil).
func (e *Error) Cause() error { return e.err }

// Kinded is implemented by errors that expose a semantic kind. Both *Error and
// the value-object validation error implement it.
type Kinded interface {
	Kind() Kind
}

// KindOf returns the most specific kind found in err's chain, or nil when the
// chain carries no kind at all.
func KindOf(err error) Kind {
	var k Kinded
	if errors.As(err, &k) && k.Kind() != nil {
		return k.Kind()
	}

	var bare Kind
	if errors.As(err, &bare) {
		return bare
	}

	return nil
}

// HasAncestor reports whether k is, or derives from, ancestor.
func HasAncestor(k, ancestor Kind) bool {
	for ; k != nil; k = k.Parent() {
		if k == ancestor {
			return true
		}
	}

	return false
}
