package storage

import (
	"accounts/pkg/domain"
	"context"
)

// UserStorage persists users. Lookups return nil without an error when no row
// matches.
type UserStorage interface {
	// StoreUser inserts a new user and returns it with its generated ID and
	// timestamps.
	StoreUser(ctx context.Context, user domain.User) (*domain.User, error)
	// UserByID returns the user with the given ID.
	UserByID(ctx context.Context, id domain.UserID) (*domain.User, error)
	// UserByEmail returns the user whose verified email equals email.
	UserByEmail(ctx context.Context, email domain.Email) (*domain.User, error)
	// SetUserEmail replaces the verified email of a user. ErrDuplicate is
	// returned when another user already owns the address.
	SetUserEmail(ctx context.Context, id domain.UserID, email domain.Email) (*domain.User, error)
}

// VerificationStorage persists pending email verifications.
type VerificationStorage interface {
	// StoreVerification inserts a verification.
	StoreVerification(ctx context.Context, verification domain.EmailVerification) error
	// VerificationByToken returns the verification for token, or nil.
	VerificationByToken(ctx context.Context, token domain.EmailVerificationToken) (*domain.EmailVerification, error)
	// DeleteVerificationsByUser removes every verification of a user and reports
	// how many were removed.
	DeleteVerificationsByUser(ctx context.Context, userID domain.UserID) (int64, error)
}
