package domain

import (
	"accounts/pkg/password"
	"accounts/pkg/valueobject"
)

// Password length bounds in code points. They apply to plain passwords and to
// their encoded hashes alike.
const (
	PasswordMinLength = 12
	PasswordMaxLength = 255
)

// Password families redact the value: their messages report lengths and the
// detected algorithm only.
var (
	PlainPasswordFamily    = valueobject.NewFamily("INVALID_PASSWORD", "password", true)
	Argon2idPasswordFamily = valueobject.NewFamily("INVALID_PASSWORD_HASH", "password hash", true)

	ErrInvalidPlainPassword    = PlainPasswordFamily.Kind()
	ErrInvalidArgon2idPassword = Argon2idPasswordFamily.Kind()
)

// argon2id rejects hashes produced by any other algorithm. Malformed strings
// are reported as "unknown".
func argon2id() valueobject.Rule {
	return valueobject.Rule{
		Name: "argon2id",
		Check: func(value string) *valueobject.Violation {
			if algorithm := password.Identify(value); algorithm != password.AlgorithmArgon2id {
				return &valueobject.Violation{Kind: valueobject.ErrNotArgon2id, Detail: algorithm}
			}

			return nil
		},
	}
}

//nolint: gochecknoglobals
var (
	plainPasswordRules = valueobject.RuleSet{
		Type:   "plain_password",
		Family: PlainPasswordFamily,
		Width:  PasswordMaxLength,
		Rules: []valueobject.Rule{
			valueobject.NotEmpty(),
			valueobject.MinLength(PasswordMinLength),
			valueobject.MaxLength(PasswordMaxLength),
		},
	}
	argon2idPasswordRules = valueobject.RuleSet{
		Type:   "argon2id_password",
		Family: Argon2idPasswordFamily,
		Width:  PasswordMaxLength,
		Rules: []valueobject.Rule{
			valueobject.NotEmpty(),
			valueobject.MinLength(PasswordMinLength),
			valueobject.MaxLength(PasswordMaxLength),
			argon2id(),
		},
	}
)

// PlainPassword is a password as typed by the user. It must never be stored.
type PlainPassword struct{ valueobject.Base }

// NewPlainPassword validates raw as a plain password.
func NewPlainPassword(raw string) (PlainPassword, error) {
	b, err := plainPasswordRules.Parse(raw)
	if err != nil {
		return PlainPassword{}, err
	}

	return PlainPassword{b}, nil
}

// Argon2idPassword is an Argon2id hash in PHC string format.
type Argon2idPassword struct{ valueobject.Base }

// NewArgon2idPassword validates raw as an Argon2id hash.
func NewArgon2idPassword(raw string) (Argon2idPassword, error) {
	b, err := argon2idPasswordRules.Parse(raw)
	if err != nil {
		return Argon2idPassword{}, err
	}

	return Argon2idPassword{b}, nil
}

// Column returns the persistence metadata of password hashes.
func (Argon2idPassword) Column() valueobject.Column { return argon2idPasswordRules.Column() }
