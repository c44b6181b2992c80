package password

import "golang.org/x/crypto/bcrypt"

// Algorithm names reported by Identify.
const (
	AlgorithmArgon2id = "argon2id"
	AlgorithmArgon2i  = "argon2i"
	AlgorithmBcrypt   = "bcrypt"
	AlgorithmUnknown  = "unknown"
)

// Identify returns the algorithm that produced the encoded hash. Strings that
// are not recognizable hashes yield AlgorithmUnknown.
func Identify(encoded string) string {
	if algorithm, _, ok := decode(encoded); ok {
		return algorithm
	}

	if _, err := bcrypt.Cost([]byte(encoded)); err == nil {
		return AlgorithmBcrypt
	}

	return AlgorithmUnknown
}
