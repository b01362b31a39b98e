package worker

import (
	"context"
	"fmt"
	"log/slog"
	"pagesmith/internal/builder"
	"pagesmith/internal/config"
	"pagesmith/pkg/logger"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/riverdriver/riverpgxv5"
	"go.uber.org/zap/exp/zapslog"
)

// Options represents the configuration of the job queue runtime.
type Options struct {
	// MaxWorkers is the maximum number of jobs processed concurrently on the
	// default queue.
	MaxWorkers int
}

// NewOptions creates worker options from the given app config.
func NewOptions(cfg *config.Config) Options {
	return Options{
		MaxWorkers: cfg.Worker.MaxWorkers,
	}
}

// Start registers the publish worker and starts the River job queue client on
// the given database pool. The returned client should be stopped on shutdown.
func Start(ctx context.Context,
	dbPool *pgxpool.Pool,
	builder builder.Builder,
	options Options) (*river.Client[pgx.Tx], error) {
	workers := river.NewWorkers()
	river.AddWorker(workers, NewBuildWorker(builder))

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
