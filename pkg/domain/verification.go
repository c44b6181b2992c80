package domain

import (
	"accounts/pkg/clock"
	"accounts/pkg/valueobject"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Verification token length bounds in code points.
const (
	EmailVerificationTokenMinLength = 32
	EmailVerificationTokenMaxLength = 255
)

var lowerHex = regexp.MustCompile(`^[0-9a-f]+$`)

//nolint: gochecknoglobals
var (
	EmailVerificationTokenFamily = valueobject.NewFamily(
		"INVALID_VERIFICATION_TOKEN", "email verification token", false)

	ErrInvalidEmailVerificationToken = EmailVerificationTokenFamily.Kind()

	emailVerificationTokenRules = valueobject.RuleSet{
		Type:   "email_verification_token",
		Family: EmailVerificationTokenFamily,
		Width:  EmailVerificationTokenMaxLength,
		Rules: []valueobject.Rule{
			valueobject.NotEmpty(),
			valueobject.MinLength(EmailVerificationTokenMinLength),
			valueobject.MaxLength(EmailVerificationTokenMaxLength),
			valueobject.Matches(lowerHex),
		},
	}
)

// EmailVerificationToken is the secret sent to a user to prove ownership of an
// email address. It consists of lowercase hexadecimal characters only.
type EmailVerificationToken struct{ valueobject.Base }

// NewEmailVerificationToken validates raw as a verification token.
func NewEmailVerificationToken(raw string) (EmailVerificationToken, error) {
	b, err := emailVerificationTokenRules.Parse(raw)
	if err != nil {
		return EmailVerificationToken{}, err
	}

	return EmailVerificationToken{b}, nil
}

// GenerateEmailVerificationToken returns a fresh 64 character token built from
// two random UUIDs.
func GenerateEmailVerificationToken() (EmailVerificationToken, error) {
	var sb strings.Builder
	for range 2 {
		id, err := uuid.NewRandom()
		if err != nil {
			return EmailVerificationToken{}, fmt.Errorf("could not generate token: %w", err)
		}
		sb.WriteString(strings.ReplaceAll(id.String(), "-", ""))
	}

	return NewEmailVerificationToken(sb.String())
}

// Column returns the persistence metadata of verification tokens.
func (EmailVerificationToken) Column() valueobject.Column {
	return emailVerificationTokenRules.Column()
}

// EmailVerification is a pending proof of ownership for an email address.
type EmailVerification struct {
	// Token is the secret mailed to the address.
	Token EmailVerificationToken
	// UserID is the user that requested the verification.
	UserID UserID
	// Email is the address being verified.
	Email UnverifiedEmail
	// ExpiresAt is the instant after which Token is no longer accepted.
	ExpiresAt time.Time
	// CreatedAt is the time the verification was issued.
	CreatedAt time.Time
}

// Expired reports whether the verification can no longer be used.
func (v EmailVerification) Expired(c clock.Clock) bool {
	return !c.Now().Before(v.ExpiresAt)
}
