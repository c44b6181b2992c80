package domain

import (
	"accounts/pkg/valueobject"
	"fmt"
	"sort"
)

// parsers maps every value object type to its validating constructor.
var parsers = map[valueobject.Type]func(string) (valueobject.Object, error){ //nolint: gochecknoglobals
	"user_name":                wrap(NewUserName),
	"email":                    wrap(NewEmail),
	"unverified_email":         wrap(NewUnverifiedEmail),
	"email_address":            wrap(NewEmailAddress),
	"plain_password":           wrap(NewPlainPassword),
	"argon2id_password":        wrap(NewArgon2idPassword),
	"email_verification_token": wrap(NewEmailVerificationToken),
}

func wrap[T valueobject.Object](parse func(string) (T, error)) func(string) (valueobject.Object, error) {
	return func(raw string) (valueobject.Object, error) {
		v, err := parse(raw)
		if err != nil {
			return nil, err
		}

		return v, nil
	}
}

// Types lists the value object types accepted by Parse, sorted.
func Types() []valueobject.Type {
	types := make([]valueobject.Type, 0, len(parsers))
	for t := range parsers {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })

	return types
}

// Parse runs the constructor of the value object type typ on raw.
func Parse(typ valueobject.Type, raw string) (valueobject.Object, error) {
	parse, ok := parsers[typ]
	if !ok {
		return nil, fmt.Errorf("unknown value object type %q", typ)
	}

	return parse(raw)
}
