package valueobject

import (
	"accounts/pkg/serrors"
	"regexp"
	"unicode/utf8"
)

// Violation describes why a single rule rejected a value.
type Violation struct {
	// Kind is one of ErrEmpty, ErrTooShort, ErrTooLong, ErrInvalidFormat or
	// ErrNotArgon2id.
	Kind serrors.Kind
	// Actual is the measured length for length violations.
	Actual int
	// Limit is the violated bound for length violations.
	Limit int
	// Detail carries rule-specific context, e.g. the detected hash algorithm.
	Detail string
}

// Rule is a named check. Check returns nil when value is acceptable.
type Rule struct {
	Name  string
	Check func(value string) *Violation
}

// Column describes how a value object is persisted as a string column.
type Column struct {
	// Width is the maximum number of characters the column holds.
	Width int
	// Nullable is true when the value object supports the "none" value.
	Nullable bool
}

// RuleSet is the ordered list of rules a value object's constructor applies.
type RuleSet struct {
	// Type is stamped on every Base this set produces.
	Type Type
	// Family selects the error kind and message templates for violations.
	Family *Family
	// Nullable allows Null to be used for this type.
	Nullable bool
	// Width is the maximum length, exposed to the persistence layer.
	Width int
	// Rules are evaluated in order; the first violation wins.
	Rules []Rule
}

// Validate runs the rules against raw and returns the first violation as an *Error.
func (rs RuleSet) Validate(raw string) error {
	for _, rule := range rs.Rules {
		if v := rule.Check(raw); v != nil {
			return newError(rs.Family, *v, raw)
		}
	}

	return nil
}

// Parse validates raw and wraps it in a Base of this set's type.
func (rs RuleSet) Parse(raw string) (Base, error) {
	if err := rs.Validate(raw); err != nil {
		return Base{}, err
	}

	return Base{typ: rs.Type, value: raw, present: true}, nil
}

// Null returns the "none" value of this set's type without running any rule.
// It panics for sets that are not nullable.
func (rs RuleSet) Null() Base {
	if !rs.Nullable {
		panic("valueobject: " + string(rs.Type) + " is not nullable")
	}

	return Base{typ: rs.Type}
}

// Column returns the persistence metadata of this set.
func (rs RuleSet) Column() Column {
	return Column{Width: rs.Width, Nullable: rs.Nullable}
}

// Length returns the number of Unicode code points in value. All length rules
// measure with it.
func Length(value string) int { return utf8.RuneCountInString(value) }

// NotEmpty rejects the empty string.
func NotEmpty() Rule {
	return Rule{
		Name: "not_empty",
		Check: func(value string) *Violation {
			if value == "" {
				return &Violation{Kind: ErrEmpty}
			}

			return nil
		},
	}
}

// MinLength rejects values shorter than minimum code points.
func MinLength(minimum int) Rule {
	return Rule{
		Name: "min_length",
		Check: func(value string) *Violation {
			if n := Length(value); n < minimum {
				return &Violation{Kind: ErrTooShort, Actual: n, Limit: minimum}
			}

			return nil
		},
	}
}

// MaxLength rejects values longer than maximum code points.
func MaxLength(maximum int) Rule {
	return Rule{
		Name: "max_length",
		Check: func(value string) *Violation {
			if n := Length(value); n > maximum {
				return &Violation{Kind: ErrTooLong, Actual: n, Limit: maximum}
			}

			return nil
		},
	}
}

// Matches rejects values that do not match re.
func Matches(re *regexp.Regexp) Rule {
	return Satisfies("matches", re.MatchString)
}

// Rejects rejects values in which re finds a match.
func Rejects(re *regexp.Regexp) Rule {
	return Satisfies("rejects", func(value string) bool { return !re.MatchString(value) })
}

// Satisfies rejects values for which ok returns false, reporting an invalid format.
func Satisfies(name string, ok func(value string) bool) Rule {
	return Rule{
		Name: name,
		Check: func(value string) *Violation {
			if !ok(value) {
				return &Violation{Kind: ErrInvalidFormat}
			}

			return nil
		},
	}
}
