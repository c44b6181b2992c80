// Package password hashes passwords with Argon2id and identifies the algorithm
// behind an encoded password hash.
package password

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

// ErrMalformedHash is returned by Verify for strings that are not Argon2id PHC hashes.
var ErrMalformedHash = errors.New("malformed argon2id hash")

// Params configures Argon2id hashing.
type Params struct {
	// Memory is the memory cost in KiB.
	Memory uint32
	// Iterations is the time cost.
	Iterations uint32
	// Parallelism is the number of lanes.
	Parallelism uint8
	// SaltLength is the length of the random salt in bytes.
	SaltLength uint32
	// KeyLength is the length of the derived key in bytes.
	KeyLength uint32
}

// DefaultParams returns the OWASP recommended Argon2id parameters.
func DefaultParams() Params {
	return Params{
		Memory:      64 * 1024,
		Iterations:  3,
		Parallelism: 2,
		SaltLength:  16,
		KeyLength:   32,
	}
}

// Hasher produces and verifies Argon2id hashes in PHC string format.
type Hasher struct {
	params Params
}

// NewHasher returns a Hasher using params. Zero fields fall back to DefaultParams.
func NewHasher(params Params) *Hasher {
	def := DefaultParams()
	if params.Memory == 0 {
		params.Memory = def.Memory
	}
	if params.Iterations == 0 {
		params.Iterations = def.Iterations
	}
	if params.Parallelism == 0 {
		params.Parallelism = def.Parallelism
	}
	if params.SaltLength == 0 {
		params.SaltLength = def.SaltLength
	}
	if params.KeyLength == 0 {
		params.KeyLength = def.KeyLength
	}

	return &Hasher{params: params}
}

// Hash derives an Argon2id key from plain using a fresh random salt and returns
// it encoded as $argon2id$v=19$m=...,t=...,p=...$salt$key.
func (h *Hasher) Hash(plain string) (string, error) {
	salt := make([]byte, h.params.SaltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("could not generate salt: %w", err)
	}

	key := argon2.IDKey([]byte(plain), salt,
		h.params.Iterations, h.params.Memory, h.params.Parallelism, h.params.KeyLength)

	return encode(AlgorithmArgon2id, phc{
		version:     argon2.Version,
		memory:      h.params.Memory,
		iterations:  h.params.Iterations,
		parallelism: h.params.Parallelism,
		salt:        salt,
		key:         key,
	}), nil
}

// Verify reports whether plain matches the Argon2id hash encoded. The cost
// parameters are taken from the hash, so hashes created with older parameters
// keep verifying.
func (h *Hasher) Verify(plain, encoded string) (bool, error) {
	algorithm, p, ok := decode(encoded)
	if !ok || algorithm != AlgorithmArgon2id {
		return false, ErrMalformedHash
	}

	key := argon2.IDKey([]byte(plain), p.salt,
		p.iterations, p.memory, p.parallelism, uint32(len(p.key))) //nolint: gosec

	return subtle.ConstantTimeCompare(p.key, key) == 1, nil
}

// phc holds the decoded fields of an Argon2 PHC string.
type phc struct {
	version     int
	memory      uint32
	iterations  uint32
	parallelism uint8
	salt        []byte
	key         []byte
}

func encode(algorithm string, p phc) string {
	return fmt.Sprintf("$%s$v=%d$m=%d,t=%d,p=%d$%s$%s",
		algorithm, p.version, p.memory, p.iterations, p.parallelism,
		base64.RawStdEncoding.EncodeToString(p.salt),
		base64.RawStdEncoding.EncodeToString(p.key))
}

// decode parses an Argon2 PHC string. It never fails loudly: ok is false for
// anything that is not a well-formed argon2i or argon2id hash.
func decode(encoded string) (string, phc, bool) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[0] != "" {
		return "", phc{}, false
	}

	algorithm := parts[1]
	if algorithm != AlgorithmArgon2id && algorithm != AlgorithmArgon2i {
		return "", phc{}, false
	}

	// Sscanf stops at the last verb, so each segment must also re-encode to
	// itself to rule out trailing garbage.
	var p phc
	if _, err := fmt.Sscanf(parts[2], "v=%d", &p.version); err != nil || p.version != argon2.Version ||
		fmt.Sprintf("v=%d", p.version) != parts[2] {
		return "", phc{}, false
	}
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &p.memory, &p.iterations, &p.parallelism); err != nil ||
		fmt.Sprintf("m=%d,t=%d,p=%d", p.memory, p.iterations, p.parallelism) != parts[3] {
		return "", phc{}, false
	}
	if p.memory == 0 || p.iterations == 0 || p.parallelism == 0 {
		return "", phc{}, false
	}

	var err error
	if p.salt, err = base64.RawStdEncoding.DecodeString(parts[4]); err != nil || len(p.salt) == 0 {
		return "", phc{}, false
	}
	if p.key, err = base64.RawStdEncoding.DecodeString(parts[5]); err != nil || len(p.key) == 0 {
		return "", phc{}, false
	}

	return algorithm, p, true
}
