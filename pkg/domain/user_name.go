package domain

import (
	"accounts/pkg/valueobject"
	"regexp"
)

// UserNameMaxLength is the maximum length of a user name in code points.
const UserNameMaxLength = 255

// userNameWhitespace matches leading or trailing whitespace (including the
// vertical tab and the full-width space U+3000) and control whitespace
// anywhere in the value. RE2's \s does not include \v.
var userNameWhitespace = regexp.MustCompile(`^[\s\v\x{3000}]|[\s\v\x{3000}]$|[\t\n\r]`)

// UserNameFamily is the error family of UserName.
var UserNameFamily = valueobject.NewFamily("INVALID_USER_NAME", "user name", false)

// ErrInvalidUserName matches every UserName validation failure.
var ErrInvalidUserName = UserNameFamily.Kind()

var userNameRules = valueobject.RuleSet{ //nolint: gochecknoglobals
	Type:     "user_name",
	Family:   UserNameFamily,
	Nullable: true,
	Width:    UserNameMaxLength,
	Rules: []valueobject.Rule{
		valueobject.NotEmpty(),
		valueobject.MinLength(1),
		valueobject.MaxLength(UserNameMaxLength),
		valueobject.Rejects(userNameWhitespace),
	},
}

// UserName is the display name of a user. It may be explicitly absent.
type UserName struct{ valueobject.Base }

// NewUserName validates raw as a user name.
func NewUserName(raw string) (UserName, error) {
	b, err := userNameRules.Parse(raw)
	if err != nil {
		return UserName{}, err
	}

	return UserName{b}, nil
}

// NullUserName returns the absent user name.
func NullUserName() UserName { return UserName{userNameRules.Null()} }

// Column returns the persistence metadata of user names.
func (UserName) Column() valueobject.Column { return userNameRules.Column() }
