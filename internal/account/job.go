package account

import (
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/rivertype"
)

// SendVerificationJobArgs is the river job that mails a verification token.
type SendVerificationJobArgs struct {
	// Token identifies the verification. Only one live job exists per token.
	Token string `json:"token" river:"unique"`

	maxAttempts int
}

// Kind returns the river job kind.
func (args SendVerificationJobArgs) Kind() string { return "SendVerificationEmail" }

// InsertOpts bounds retries and keeps a single unfinished job per token.
func (args SendVerificationJobArgs) InsertOpts() river.InsertOpts {
	return river.InsertOpts{
		MaxAttempts: args.maxAttempts,
		UniqueOpts: river.UniqueOpts{
			ByArgs: true,
			ByState: []rivertype.JobState{
				rivertype.JobStateAvailable,
				rivertype.JobStatePending,
				rivertype.JobStateRunning,
				rivertype.JobStateRetryable,
				rivertype.JobStateScheduled,
			},
		},
	}
}
