// Package account implements user registration, email verification, login
// and profile management on top of the domain value objects.
package account

import (
	"accounts/pkg/domain"
	"context"
)

// RegisterRequest carries the raw, unvalidated registration input.
type RegisterRequest struct {
	// Name is the optional display name. nil registers a user without a name.
	Name *string
	// Email is the address to verify.
	Email string
	// Password is the plain text password.
	Password string
}

// Service is the account use case boundary shared by the API and the worker.
// Raw input is validated through the value object constructors; validation
// failures are returned unchanged and match serrors.ErrBadRequest.
//
//go:generate mockgen -package mockaccount -source=interface.go -destination=mock/mockaccount.go *
type Service interface {
	// Register creates an unverified user and queues a verification email.
	Register(ctx context.Context, req RegisterRequest) (*domain.User, error)
	// VerifyEmail consumes a verification token and makes its address the
	// user's verified email.
	VerifyEmail(ctx context.Context, token string) (*domain.User, error)
	// Login checks credentials against a verified email.
	Login(ctx context.Context, email, password string) (*domain.User, error)
	// Profile returns the user with the given ID.
	Profile(ctx context.Context, id domain.UserID) (*domain.User, error)
	// RequestEmailChange queues a verification for a new address.
	RequestEmailChange(ctx context.Context, id domain.UserID, email string) (*domain.EmailVerification, error)
	// SendVerification delivers the email of a pending verification.
	SendVerification(ctx context.Context, token string) error
}
