// Package mailer delivers account emails.
//
//go:generate mockgen -package mockmailer -source=mailer.go -destination=mock/mockmailer.go *
package mailer

import (
	"accounts/pkg/domain"
	"accounts/pkg/logger"
	"accounts/pkg/serrors"
	"context"
	"time"

	"go.uber.org/zap"
)

// Mailer sends messages to users.
type Mailer interface {
	// SendVerification mails token to the address awaiting verification.
	SendVerification(ctx context.Context, to domain.UnverifiedEmail, token domain.EmailVerificationToken) error
}

// VerificationSubject is the subject line of verification emails.
const VerificationSubject = "Verify your email address"

// VerificationText is the plain text body of a verification email.
func VerificationText(verifyURL string, token domain.EmailVerificationToken) string {
	return "Open the link below to verify your email address:\n\n" + verifyURL + token.String()
}

// Log is a Mailer that writes messages to the context logger instead of
// delivering them. It is used in development and tests.
type Log struct {
	// VerifyURL is prefixed to the token to form the verification link.
	VerifyURL string
}

// SendVerification logs the verification link.
func (l Log) SendVerification(ctx context.Context, to domain.UnverifiedEmail, token domain.EmailVerificationToken) error {
	logger.Info(ctx, "verification email",
		logger.Email(to),
		zap.String("link", l.VerifyURL+token.String()))

	return nil
}

// RateLimitStatus describes the rate-limit window reported by a mail provider.
type RateLimitStatus struct {
	Limit     int       // Limit is the total number of allowed requests in the current window.
	Remaining int       // Remaining indicates how many requests are left in the current window.
	ResetAt   time.Time // ResetAt is when the rate-limit window resets.
}

// RateLimitError is returned when the provider refused a message because its
// rate limit was exhausted. It matches serrors.ErrRateLimited.
type RateLimitError struct {
	Status RateLimitStatus
	Detail string
}

func (e *RateLimitError) Error() string {
	return "rate limited until " + e.Status.ResetAt.Format(time.RFC3339) + ": " + e.Detail
}

func (e *RateLimitError) Is(target error) bool { return target == serrors.ErrRateLimited }

// RetryIn returns how long to wait before sending again, never negative.
func (e *RateLimitError) RetryIn(now time.Time) time.Duration {
	return max(e.Status.ResetAt.Sub(now), 0)
}
