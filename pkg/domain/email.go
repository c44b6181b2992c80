package domain

import (
	"accounts/pkg/valueobject"
	"net/mail"

	"github.com/go-playground/validator/v10"
)

// EmailMaxLength is the maximum length of every email variant in code points.
const EmailMaxLength = 255

// Email validation comes in two flavors that disagree on edge cases:
//
//   - Email and UnverifiedEmail use the validator package's "email" rule. It
//     accepts quoted local parts ("john doe"@example.com) but requires an
//     alphabetic top-level domain.
//   - EmailAddress requires a bare RFC 5322 addr-spec that net/mail parses back
//     to the identical string. Quoted local parts do not round-trip, numeric
//     top-level domains do.
//
// Callers rely on either behavior, so the two are kept apart.
var emailValidator = validator.New() //nolint: gochecknoglobals

func isEmail(value string) bool {
	return emailValidator.Var(value, "email") == nil
}

func isEmailAddress(value string) bool {
	addr, err := mail.ParseAddress(value)

	return err == nil && addr.Name == "" && addr.Address == value
}

func emailRules(typ valueobject.Type, family *valueobject.Family, format func(string) bool) valueobject.RuleSet {
	return valueobject.RuleSet{
		Type:   typ,
		Family: family,
		Width:  EmailMaxLength,
		Rules: []valueobject.Rule{
			valueobject.NotEmpty(),
			valueobject.MinLength(1),
			valueobject.MaxLength(EmailMaxLength),
			valueobject.Satisfies("email", format),
		},
	}
}

// Error families of the email variants.
var (
	EmailFamily           = valueobject.NewFamily("INVALID_EMAIL", "email", false)
	UnverifiedEmailFamily = valueobject.NewFamily("INVALID_UNVERIFIED_EMAIL", "unverified email", false)
	EmailAddressFamily    = valueobject.NewFamily("INVALID_EMAIL_ADDRESS", "email address", false)

	ErrInvalidEmail           = EmailFamily.Kind()
	ErrInvalidUnverifiedEmail = UnverifiedEmailFamily.Kind()
	ErrInvalidEmailAddress    = EmailAddressFamily.Kind()
)

//nolint: gochecknoglobals
var (
	verifiedEmailRules   = emailRules("email", EmailFamily, isEmail)
	unverifiedEmailRules = emailRules("unverified_email", UnverifiedEmailFamily, isEmail)
	emailAddressRules    = emailRules("email_address", EmailAddressFamily, isEmailAddress)
)

// EmailLike is implemented by every email variant.
type EmailLike interface {
	valueobject.Object
	email()
}

// emailBase is embedded by the email variants to share IsSameValue.
type emailBase struct{ valueobject.Base }

func (emailBase) email() {}

// IsSameValue reports whether other wraps the same address, regardless of
// which email variant it is. Equals, in contrast, also requires the same variant.
func (e emailBase) IsSameValue(other EmailLike) bool {
	return other != nil && e.SameValue(other)
}

// Column returns the persistence metadata shared by the email variants.
func (emailBase) Column() valueobject.Column { return verifiedEmailRules.Column() }

// Email is an address the user has proven to own.
type Email struct{ emailBase }

// NewEmail validates raw as a verified email.
func NewEmail(raw string) (Email, error) {
	b, err := verifiedEmailRules.Parse(raw)
	if err != nil {
		return Email{}, err
	}

	return Email{emailBase{b}}, nil
}

// UnverifiedEmail is an address awaiting verification.
type UnverifiedEmail struct{ emailBase }

// NewUnverifiedEmail validates raw as an unverified email.
func NewUnverifiedEmail(raw string) (UnverifiedEmail, error) {
	b, err := unverifiedEmailRules.Parse(raw)
	if err != nil {
		return UnverifiedEmail{}, err
	}

	return UnverifiedEmail{emailBase{b}}, nil
}

// Verified returns the verified counterpart of u.
func (u UnverifiedEmail) Verified() (Email, error) {
	return NewEmail(u.String())
}

// EmailAddress is a strictly formatted RFC 5322 addr-spec.
type EmailAddress struct{ emailBase }

// NewEmailAddress validates raw as an email address.
func NewEmailAddress(raw string) (EmailAddress, error) {
	b, err := emailAddressRules.Parse(raw)
	if err != nil {
		return EmailAddress{}, err
	}

	return EmailAddress{emailBase{b}}, nil
}
