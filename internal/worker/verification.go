package worker

import (
	"accounts/internal/account"
	"accounts/pkg/logger"
	"accounts/pkg/mailer"
	"accounts/pkg/serrors"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/riverqueue/river"
	"go.uber.org/zap"
)

// sendTimeout bounds a single delivery attempt.
const sendTimeout = 30 * time.Second

// SendVerificationWorker mails verification tokens queued by the account
// service. Jobs whose verification is gone, whose token is malformed or whose
// message the provider rejected are canceled since retrying cannot succeed.
// A rate limited job is snoozed until the provider's window resets. Other
// errors are returned so river retries them until the job runs out of attempts.
type SendVerificationWorker struct {
	river.WorkerDefaults[account.SendVerificationJobArgs]

	accounts account.Service
}

// NewSendVerificationWorker constructs a SendVerificationWorker.
func NewSendVerificationWorker(accounts account.Service) *SendVerificationWorker {
	return &SendVerificationWorker{accounts: accounts}
}

func (w *SendVerificationWorker) Timeout(*river.Job[account.SendVerificationJobArgs]) time.Duration {
	return sendTimeout
}

func (w *SendVerificationWorker) Work(ctx context.Context, job *river.Job[account.SendVerificationJobArgs]) error {
	ctx = logger.WithFields(ctx, zap.Int64("jobID", job.ID), zap.Int("attempt", job.Attempt))

	err := w.accounts.SendVerification(ctx, job.Args.Token)
	if err != nil {
		if errors.Is(err, serrors.ErrNotFound) || errors.Is(err, serrors.ErrBadRequest) {
			logger.Warn(ctx, "dropping verification email", zap.Error(err))

			return river.JobCancel(err) //nolint: wrapcheck
		}

		var rlErr *mailer.RateLimitError
		if errors.As(err, &rlErr) {
			dur := rlErr.RetryIn(time.Now())
			logger.Warn(ctx, "mail provider rate limited", zap.Duration("snooze", dur))

			return river.JobSnooze(dur) //nolint: wrapcheck
		}

		logger.Error(ctx, "error in sending verification email", zap.Error(err))

		return fmt.Errorf("could not send verification email: %w", err)
	}

	logger.Info(ctx, "verification email sent")

	return nil
}
