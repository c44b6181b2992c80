package postgres_test

import (
	"accounts/pkg/domain"
	"accounts/pkg/password"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestUser(t *testing.T, email string) domain.User {
	t.Helper()

	encoded, err := password.NewHasher(password.Params{
		Memory: 1024, Iterations: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32,
	}).Hash("correct horse battery staple")
	require.NoError(t, err)
	hash, err := domain.NewArgon2idPassword(encoded)
	require.NoError(t, err)

	user := domain.User{Name: domain.NullUserName(), Password: hash}
	if email != "" {
		e, err := domain.NewEmail(email)
		require.NoError(t, err)
		user.Email = &e
	}

	return user
}

func mustEmail(t *testing.T, raw string) domain.Email {
	t.Helper()
	e, err := domain.NewEmail(raw)
	require.NoError(t, err)

	return e
}
