package domain_test

import (
	"accounts/pkg/domain"
	"accounts/pkg/password"
	"accounts/pkg/valueobject"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/bcrypt"
)

const testPassword = "correct horse battery staple"

var testHashParams = password.Params{Memory: 1024, Iterations: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32}

func argon2iHash(t *testing.T, plain string) string {
	t.Helper()

	salt := make([]byte, 16)
	_, err := rand.Read(salt)
	require.NoError(t, err)
	key := argon2.Key([]byte(plain), salt, 1, 1024, 1, 32)

	return fmt.Sprintf("$argon2i$v=%d$m=1024,t=1,p=1$%s$%s", argon2.Version,
		base64.RawStdEncoding.EncodeToString(salt), base64.RawStdEncoding.EncodeToString(key))
}

func TestNewPlainPassword(t *testing.T) {
	p, err := domain.NewPlainPassword(testPassword)
	require.NoError(t, err)
	require.Equal(t, testPassword, p.String())

	_, err = domain.NewPlainPassword(strings.Repeat("x", 12))
	require.NoError(t, err)

	_, err = domain.NewPlainPassword(strings.Repeat("あ", 255))
	require.NoError(t, err, "length is measured in code points")

	_, err = domain.NewPlainPassword("")
	require.ErrorIs(t, err, valueobject.ErrEmpty)
	require.ErrorIs(t, err, domain.ErrInvalidPlainPassword)

	_, err = domain.NewPlainPassword("short-pass1")
	require.ErrorIs(t, err, valueobject.ErrTooShort)
	require.EqualError(t, err, "password must be at least 12 characters long, got 11")
	require.NotContains(t, err.Error(), "short-pass1")

	_, err = domain.NewPlainPassword(strings.Repeat("x", 256))
	require.ErrorIs(t, err, valueobject.ErrTooLong)
	require.EqualError(t, err, "password must be at most 255 characters long, got 256")
}

func TestNewArgon2idPassword(t *testing.T) {
	encoded, err := password.NewHasher(testHashParams).Hash(testPassword)
	require.NoError(t, err)

	p, err := domain.NewArgon2idPassword(encoded)
	require.NoError(t, err)
	require.Equal(t, encoded, p.String())
	require.Equal(t, 255, p.Column().Width)
}

func TestNewArgon2idPassword_OtherAlgorithms(t *testing.T) {
	bcryptHash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	require.NoError(t, err)

	tests := []struct {
		name      string
		encoded   string
		algorithm string
	}{
		{name: "bcrypt", encoded: string(bcryptHash), algorithm: password.AlgorithmBcrypt},
		{name: "argon2i", encoded: argon2iHash(t, testPassword), algorithm: password.AlgorithmArgon2i},
		{name: "plain text", encoded: testPassword, algorithm: password.AlgorithmUnknown},
		{name: "broken argon2id", encoded: "$argon2id$v=19$m=1024,t=1,p=1$$", algorithm: password.AlgorithmUnknown},
		{
			name:      "argon2id with trailing garbage",
			encoded:   "$argon2id$v=19junk$m=1024,t=1,p=1garbage$c2FsdHNhbHQ$a2V5a2V5a2V5",
			algorithm: password.AlgorithmUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := domain.NewArgon2idPassword(tt.encoded)
			require.ErrorIs(t, err, valueobject.ErrNotArgon2id)
			require.ErrorIs(t, err, domain.ErrInvalidArgon2idPassword)

			var voErr *valueobject.Error
			require.ErrorAs(t, err, &voErr)
			require.Equal(t, tt.algorithm, voErr.Violation.Detail)
			require.EqualError(t, err, "password hash must use the argon2id algorithm, got "+tt.algorithm)
			require.NotContains(t, err.Error(), tt.encoded)
		})
	}
}

func TestNewArgon2idPassword_Lengths(t *testing.T) {
	_, err := domain.NewArgon2idPassword("")
	require.ErrorIs(t, err, valueobject.ErrEmpty)

	_, err = domain.NewArgon2idPassword("$argon2id$")
	require.ErrorIs(t, err, valueobject.ErrTooShort)

	_, err = domain.NewArgon2idPassword(strings.Repeat("$", 256))
	require.ErrorIs(t, err, valueobject.ErrTooLong)
}
