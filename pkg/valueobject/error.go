package valueobject

import (
	"accounts/pkg/serrors"
	"errors"
	"fmt"
)

// Failure kinds. Every value object error matches ErrValueObject, and through it
// serrors.ErrBadRequest.
var (
	// ErrValueObject roots all construction-time validation failures.
	ErrValueObject = serrors.NewSubKind(serrors.ErrBadRequest, "INVALID_VALUE")
	// ErrEmpty is returned for the empty string.
	ErrEmpty = serrors.NewSubKind(ErrValueObject, "EMPTY")
	// ErrTooShort is returned when the value is below the minimum length.
	ErrTooShort = serrors.NewSubKind(ErrValueObject, "TOO_SHORT")
	// ErrTooLong is returned when the value is above the maximum length.
	ErrTooLong = serrors.NewSubKind(ErrValueObject, "TOO_LONG")
	// ErrInvalidFormat is returned when a format rule rejects the value.
	ErrInvalidFormat = serrors.NewSubKind(ErrValueObject, "INVALID_FORMAT")
	// ErrNotArgon2id is returned when a password hash uses another algorithm.
	ErrNotArgon2id = serrors.NewSubKind(ErrValueObject, "NOT_ARGON2ID")
)

// ExcerptLength is the maximum number of code points of an offending value
// that may appear in an error message.
const ExcerptLength = 20

const ellipsis = "..."

// Excerpt truncates value to ExcerptLength code points, appending an ellipsis
// when anything was cut.
func Excerpt(value string) string {
	if Length(value) <= ExcerptLength {
		return value
	}

	return string([]rune(value)[:ExcerptLength]) + ellipsis
}

// templates holds the default message of each failure kind. The first verb is
// always the family label; length kinds then take the limit and the actual length.
var templates = map[serrors.Kind]string{ //nolint: gochecknoglobals
	ErrEmpty:         "%s must not be empty",
	ErrTooShort:      "%s must be at least %d characters long, got %d",
	ErrTooLong:       "%s must be at most %d characters long, got %d",
	ErrInvalidFormat: "%s has an invalid format: %q",
	ErrNotArgon2id:   "%s must use the argon2id algorithm, got %s",
}

// redactedTemplates replace the templates that would quote the value.
var redactedTemplates = map[serrors.Kind]string{ //nolint: gochecknoglobals
	ErrInvalidFormat: "%s has an invalid format",
}

// Family groups the value objects that share an error identity, e.g. all the
// email types. It owns a kind of its own so callers can match a whole family
// with errors.Is.
type Family struct {
	// Label names the field in messages, e.g. "user name".
	Label string
	// Redact suppresses the offending value in messages.
	Redact bool
	// Messages overrides the default template of individual failure kinds.
	Messages map[serrors.Kind]string

	kind serrors.Kind
}

// NewFamily creates a family whose kind is named code and derives from ErrValueObject.
func NewFamily(code, label string, redact bool) *Family {
	return &Family{
		Label:  label,
		Redact: redact,
		kind:   serrors.NewSubKind(ErrValueObject, code),
	}
}

// Kind returns the family's own error kind.
func (f *Family) Kind() serrors.Kind { return f.kind }

// Code returns the family's kind name.
func (f *Family) Code() string { return f.kind.Error() }

func (f *Family) template(k serrors.Kind) string {
	if tpl, ok := f.Messages[k]; ok {
		return tpl
	}
	if f.Redact {
		if tpl, ok := redactedTemplates[k]; ok {
			return tpl
		}
	}

	return templates[k]
}

func (f *Family) message(v Violation, raw string) string {
	tpl := f.template(v.Kind)
	switch v.Kind {
	case ErrTooShort, ErrTooLong:
		return fmt.Sprintf(tpl, f.Label, v.Limit, v.Actual)
	case ErrNotArgon2id:
		return fmt.Sprintf(tpl, f.Label, v.Detail)
	case ErrInvalidFormat:
		if f.Redact {
			return fmt.Sprintf(tpl, f.Label)
		}

		return fmt.Sprintf(tpl, f.Label, Excerpt(raw))
	default:
		return fmt.Sprintf(tpl, f.Label)
	}
}

// Error is the single error type returned by value object constructors.
type Error struct {
	// Family is the value object family that rejected the input.
	Family *Family
	// Violation holds the failure kind and its details.
	Violation Violation

	msg string
}

func newError(f *Family, v Violation, raw string) *Error {
	return &Error{Family: f, Violation: v, msg: f.message(v, raw)}
}

// Error returns the precomputed, bounded message.
func (e *Error) Error() string { return e.msg }

// Kind returns the failure kind.
func (e *Error) Kind() serrors.Kind { return e.Violation.Kind }

// Is matches the failure kind, its ancestors, and the family kind.
func (e *Error) Is(target error) bool {
	if e.Violation.Kind != nil && errors.Is(e.Violation.Kind, target) {
		return true
	}

	return e.Family != nil && errors.Is(e.Family.kind, target)
}
