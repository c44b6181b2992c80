package domain_test

import (
	"accounts/pkg/domain"
	"accounts/pkg/valueobject"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEmailVariants_Acceptance(t *testing.T) {
	long := strings.Repeat("a", 64) + "@" + strings.Repeat("b", 63) + "." + strings.Repeat("c", 63) + "." + strings.Repeat("d", 62) + ".com"

	tests := []struct {
		name         string
		in           string
		email        bool
		emailAddress bool
	}{
		{name: "simple", in: "user@example.com", email: true, emailAddress: true},
		{name: "subdomain and plus tag", in: "first.last+tag@mail.example.co.jp", email: true, emailAddress: true},
		{name: "quoted local part", in: `"john.doe"@example.com`, email: true, emailAddress: false},
		{name: "numeric top-level domain", in: "user@example.123", email: false, emailAddress: true},
		{name: "display name", in: "John <john@example.com>", email: false, emailAddress: false},
		{name: "missing at", in: "plainaddress", email: false, emailAddress: false},
		{name: "missing local part", in: "@example.com", email: false, emailAddress: false},
		{name: "missing domain", in: "user@", email: false, emailAddress: false},
		{name: "space in local part", in: "user name@example.com", email: false, emailAddress: false},
		{name: "leading space", in: " user@example.com", email: false, emailAddress: false},
		{name: "too long", in: long, email: false, emailAddress: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := domain.NewEmail(tt.in)
			if tt.email {
				require.NoError(t, err)
				require.Equal(t, tt.in, e.String())
			} else {
				require.ErrorIs(t, err, domain.ErrInvalidEmail)
			}

			u, err := domain.NewUnverifiedEmail(tt.in)
			if tt.email {
				require.NoError(t, err)
				require.Equal(t, tt.in, u.String())
			} else {
				require.ErrorIs(t, err, domain.ErrInvalidUnverifiedEmail)
			}

			a, err := domain.NewEmailAddress(tt.in)
			if tt.emailAddress {
				require.NoError(t, err)
				require.Equal(t, tt.in, a.String())
			} else {
				require.ErrorIs(t, err, domain.ErrInvalidEmailAddress)
			}
		})
	}
}

func TestEmail_FailureKinds(t *testing.T) {
	_, err := domain.NewEmail("")
	require.ErrorIs(t, err, valueobject.ErrEmpty)
	require.EqualError(t, err, "email must not be empty")

	tooLong := strings.Repeat("a", 250) + "@x.com"
	_, err = domain.NewUnverifiedEmail(tooLong)
	require.ErrorIs(t, err, valueobject.ErrTooLong)
	require.EqualError(t, err, "unverified email must be at most 255 characters long, got 256")

	_, err = domain.NewEmailAddress("not an email at all")
	require.ErrorIs(t, err, valueobject.ErrInvalidFormat)
	require.EqualError(t, err, `email address has an invalid format: "not an email at all"`)
}

func TestEmail_EqualsIsTypeDiscriminating(t *testing.T) {
	e, err := domain.NewEmail("x@y.com")
	require.NoError(t, err)
	e2, err := domain.NewEmail("x@y.com")
	require.NoError(t, err)
	u, err := domain.NewUnverifiedEmail("x@y.com")
	require.NoError(t, err)
	a, err := domain.NewEmailAddress("x@y.com")
	require.NoError(t, err)

	require.True(t, e.Equals(e2))
	require.False(t, e.Equals(u))
	require.False(t, u.Equals(e))
	require.False(t, e.Equals(a))
}

func TestEmail_IsSameValue(t *testing.T) {
	e, err := domain.NewEmail("x@y.com")
	require.NoError(t, err)
	same, err := domain.NewUnverifiedEmail("x@y.com")
	require.NoError(t, err)
	other, err := domain.NewUnverifiedEmail("z@y.com")
	require.NoError(t, err)
	addr, err := domain.NewEmailAddress("x@y.com")
	require.NoError(t, err)

	require.True(t, e.IsSameValue(same))
	require.True(t, same.IsSameValue(e))
	require.False(t, e.IsSameValue(other))
	require.True(t, addr.IsSameValue(e))
	require.False(t, e.IsSameValue(nil))
}

func TestUnverifiedEmail_Verified(t *testing.T) {
	u, err := domain.NewUnverifiedEmail("x@y.com")
	require.NoError(t, err)

	e, err := u.Verified()
	require.NoError(t, err)
	require.Equal(t, "x@y.com", e.String())
	require.True(t, e.IsSameValue(u))
	require.False(t, e.Equals(u))
}

func TestEmail_Column(t *testing.T) {
	e, err := domain.NewEmail("x@y.com")
	require.NoError(t, err)

	require.Equal(t, valueobject.Column{Width: 255}, e.Column())
}
