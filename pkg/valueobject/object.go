// Package valueobject implements validated, immutable string value objects.
//
// A concrete value object is a named struct embedding Base. Its constructor
// runs a RuleSet against the raw input: rules are evaluated in declaration
// order and the first violation is returned as an *Error, so a value object
// either exists in a valid state or not at all. Equality is structural and
// keyed on an explicit Type discriminant carried next to the wrapped value.
package valueobject

// Type discriminates concrete value object types. Two objects can only be
// equal when their types are identical.
type Type string

// Object is implemented by every value object through its embedded Base.
type Object interface {
	// Type returns the discriminant of the concrete value object.
	Type() Type
	// Value returns the wrapped primitive. The boolean is false for the explicit
	// "none" value of nullable types.
	Value() (string, bool)
	// String returns the wrapped value, or an empty string for "none".
	String() string
	// Equals reports structural equality with other.
	Equals(other Object) bool
}

// Base carries the wrapped value of a value object. It has no exported fields
// and can only be produced by a RuleSet, which makes every non-zero Base valid.
type Base struct {
	typ     Type
	value   string
	present bool
}

var _ Object = Base{}

// Type returns the discriminant.
func (b Base) Type() Type { return b.typ }

// Value returns the wrapped value and whether it is present.
func (b Base) Value() (string, bool) { return b.value, b.present }

// IsNull reports whether b holds the explicit "none" value.
func (b Base) IsNull() bool { return !b.present }

// String returns the wrapped value, or "" for "none".
func (b Base) String() string {
	if !b.present {
		return ""
	}

	return b.value
}

// Equals reports whether other has the same type and the same wrapped value.
func (b Base) Equals(other Object) bool {
	if other == nil || other.Type() != b.typ {
		return false
	}

	return b.SameValue(other)
}

// SameValue compares wrapped values while ignoring the type discriminant.
func (b Base) SameValue(other Object) bool {
	if other == nil {
		return false
	}
	v, ok := other.Value()

	return ok == b.present && v == b.value
}
