package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/riverqueue/river"
	"github.com/riverqueue/river/riverdriver/riverdatabasesql"
	"github.com/riverqueue/river/rivertype"
)

// AddJob enqueues a river job. Inside a transaction the job is inserted with
// InsertTx and becomes visible on commit. It reports false when river skipped
// the insert as a duplicate of a unique job.
func (p *PgSQL) AddJob(ctx context.Context, args river.JobArgs, opts *river.InsertOpts) (bool, error) {
	var (
		res *rivertype.JobInsertResult
		err error
	)

	if tx, ok := p.DB.(*sql.Tx); ok {
		client, cErr := river.NewClient[*sql.Tx](riverdatabasesql.New(nil), &river.Config{})
		if cErr != nil {
			return false, fmt.Errorf("could not create river queue client: %w", cErr)
		}
		res, err = client.InsertTx(ctx, tx, args, opts)
	} else {
		db, _ := p.DB.(*sql.DB)
		client, cErr := river.NewClient(riverdatabasesql.New(db), &river.Config{})
		if cErr != nil {
			return false, fmt.Errorf("could not create river queue client: %w", cErr)
		}
		res, err = client.Insert(ctx, args, opts)
	}
	if err != nil {
		return false, fmt.Errorf("could not insert %s job: %w", args.Kind(), err)
	}

	return !res.UniqueSkippedAsDuplicate, nil
}
