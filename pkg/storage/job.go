package storage

import (
	"context"

	"github.com/riverqueue/river"
)

// JobStorage enqueues background jobs in the same database as the rest of the
// data, so a job inserted through a TxStorage only becomes visible on commit.
type JobStorage interface {
	// AddJob enqueues a job and reports whether it was inserted. It returns
	// false when a unique job with the same arguments already exists.
	AddJob(ctx context.Context, args river.JobArgs, opts *river.InsertOpts) (bool, error)
}
