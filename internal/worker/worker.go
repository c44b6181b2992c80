// Package worker runs the background jobs of the account service on river.
package worker

import (
	"accounts/internal/account"
	"accounts/pkg/logger"
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/riverdriver/riverpgxv5"
	"go.uber.org/zap/exp/zapslog"
)

// Options configure the river client.
type Options struct {
	// MaxWorkers bounds the concurrently running jobs of the default queue.
	MaxWorkers int
}

// Start registers the account workers and starts processing jobs.
func Start(ctx context.Context,
	dbPool *pgxpool.Pool,
	accounts account.Service,
	options Options) (*river.Client[pgx.Tx], error) {
	workers := river.NewWorkers()
	river.AddWorker(workers, NewSendVerificationWorker(accounts))

	riverClient, err := river.NewClient(riverpgxv5.New(dbPool), &river.Config{
		Queues: map[string]river.QueueConfig{
			river.QueueDefault: {MaxWorkers: options.MaxWorkers},
		},
		Workers: workers,
		Logger:  slog.New(zapslog.NewHandler(logger.Get(ctx).Core())),
	})
	if err != nil {
		return nil, fmt.Errorf("could not create river queue client: %w", err)
	}

	if err := riverClient.Start(ctx); err != nil {
		return nil, fmt.Errorf("could not start river queue client: %w", err)
	}

	return riverClient, nil
}
