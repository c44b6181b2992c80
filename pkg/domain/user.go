package domain

import (
	"time"

	"github.com/google/uuid"
)

// UserID uniquely identifies a user within the system.
// It is a thin wrapper around uuid.UUID to provide type safety at the domain layer.
type UserID uuid.UUID

// String returns the canonical UUID form.
func (id UserID) String() string { return uuid.UUID(id).String() }

// ParseUserID parses the canonical string form of a UserID.
func ParseUserID(s string) (UserID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return UserID{}, err //nolint: wrapcheck
	}

	return UserID(id), nil
}

// User is a registered account.
type User struct {
	// ID is the unique identifier of the user.
	ID UserID
	// Name is the optional display name.
	Name UserName
	// Email is the verified address used to sign in. It is nil until the user
	// completes their first verification.
	Email *Email
	// Password is the Argon2id hash of the user's password.
	Password Argon2idPassword

	// CreatedAt is the time the user registered.
	CreatedAt time.Time
	// UpdatedAt is the time the user was last modified.
	UpdatedAt time.Time
}

// Verified reports whether the user has a verified email.
func (u User) Verified() bool { return u.Email != nil }
