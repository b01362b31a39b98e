package builder

import (
	"context"
	"errors"
	"fmt"
	"pagesmith/internal/config"
	"pagesmith/pkg/domain"
	"pagesmith/pkg/evaluator"
	"pagesmith/pkg/logger"
	"pagesmith/pkg/metrics"
	"pagesmith/pkg/pagecheck"
	"pagesmith/pkg/publisher"
	"pagesmith/pkg/serrors"
	"pagesmith/pkg/sitegen"
	"pagesmith/pkg/storage"
	"time"

	"go.uber.org/zap"
)

// Options configure how publish jobs are enqueued and how completed builds are
// reused. These settings are typically derived from application configuration.
type Options struct {
	// MaxAttempts is the maximum number of attempts the background worker should
	// make when processing a publish job before marking the build failed.
	MaxAttempts int
	// RebuildTTL is the duration during which a completed build makes new
	// submissions for the same task and round reuse its result instead of
	// enqueueing a duplicate job.
	RebuildTTL time.Duration
}

// NewOptions constructs an Options value from the provided application config.
func NewOptions(cfg *config.Config) Options {
	return Options{
		MaxAttempts: cfg.Builder.MaxAttempts,
		RebuildTTL:  cfg.Builder.RebuildTTL,
	}
}

// builder is the concrete implementation of the Builder interface.
// It coordinates persistence with the storage layer, site generation,
// publication, verification and receipt delivery.
type builder struct {
	// options holds runtime configuration that affects enqueueing and reuse.
	options Options
	// storage is the persistence layer used to store builds and manage jobs.
	storage storage.Storage
	// generator produces the site files for a task brief.
	generator sitegen.Generator
	// publisher pushes the site files to a repository and serves them as a page.
	publisher publisher.Publisher
	// evaluator delivers completion receipts to the evaluation service.
	evaluator evaluator.Evaluator
	// checker verifies the live page against the task checks; nil disables
	// verification.
	checker pagecheck.Checker
}

// Submit stores a new build request and attempts to enqueue a background job
// to publish it. If a recent completed build exists for the same task and
// round (within RebuildTTL), the new build is immediately marked as completed
// with that result.
func (b builder) Submit(ctx context.Context, build domain.Build) (*domain.Build, error) {
	task, err := NormalizeTask(build.Task)
	if err != nil {
		return nil, serrors.Wrap(serrors.ErrBadRequest, err, "invalid task")
	}
	build.Task = task
	if build.Round <= 0 {
		build.Round = 1
	}
	build.Status = domain.BuildStatusPending

	var stored *domain.Build
	if err := b.storage.WithTx(ctx, func(tx storage.AllStorage) error {
		res, err := tx.StoreBuilds(ctx, build)
		if err != nil {
			return fmt.Errorf("could not store build: %w", err)
		}
		stored = &res[0]

		jobAdded, err := tx.AddJob(ctx, JobArgs{
			Task:            task,
			Round:           build.Round,
			maxAttempts:     b.options.MaxAttempts,
			uniqueJobPeriod: b.options.RebuildTTL,
		}, nil)
		if err != nil {
			return fmt.Errorf("could not add job: %w", err)
		}

		// if a job was not added, it means that another job already exists for
		// this task and round. river unique jobs prevent duplicate publications.
		if !jobAdded {
			// if the existing job is already completed, we should get its result
			// from db and update the new build
			last, err := tx.LastCompletedBuildByTask(ctx, task, build.Round)
			if err != nil {
				return fmt.Errorf("could not get last completed build: %w", err)
			}

			if last != nil {
				updated, err := tx.UpdateBuildByID(ctx, stored.ID, storage.BuildUpdates{
					Status: domain.BuildStatusCompleted,
					Result: &last.Result,
				})
				if err != nil {
					return fmt.Errorf("could not update build: %w", err)
				}
				stored = updated
			} // else: the job is in the queue and will be processed soon.
			// Job will automatically update all pending builds by task upon completion.
		}

		return nil
	}); err != nil {
		return nil, fmt.Errorf("could not submit build: %w", err)
	}

	return stored, nil
}

// Builds returns a page of builds filtered by status. It supports cursor-based
// pagination using an RFC3339 timestamp string and returns the next cursor
// when more results are available.
func (b builder) Builds(ctx context.Context,
	status domain.BuildStatus,
	cursor string,
	limit uint) ([]domain.Build, string, error) {
	var cursorTime time.Time
	if cursor != "" {
		t, err := time.Parse(time.RFC3339, cursor)
		if err != nil {
			return nil, "", serrors.Wrap(serrors.ErrBadRequest, err, "invalid cursor")
		}
		cursorTime = t
	}

	page, err := b.storage.Builds(ctx, status, cursorTime, limit)
	if err != nil {
		return nil, "", fmt.Errorf("could not get builds: %w", err)
	}

	var next string
	if page.NextCursor != nil {
		next = page.NextCursor.Format(time.RFC3339)
	}

	return page.Builds, next, nil
}

// Build publishes the most recent pending build for the given task and round:
// it generates the site files, commits them to the repository, waits for the
// page to come live, verifies it, and delivers the completion receipt. On
// success all pending builds for the task and round are marked completed with
// the shared result.
//
// Failed attempts are recorded against the pending builds; once the attempt
// budget is exhausted the builds flip to failed. Rate-limited publications are
// reported to the caller without consuming an attempt so the job can be
// snoozed until the limit resets. The returned rate-limit status reflects the
// publisher's view after the attempt, also on failure.
func (b builder) Build(ctx context.Context, task string, round int) (publisher.RateLimitStatus, error) {
	pending, err := b.storage.PendingBuildByTask(ctx, task, round)
	if err != nil {
		return publisher.RateLimitStatus{}, fmt.Errorf("could not get pending build: %w", err)
	}
	if pending == nil {
		// every build for this delivery was completed or deleted meanwhile
		return publisher.RateLimitStatus{}, serrors.With(serrors.ErrConflict,
			"no pending build for task %q round %d", task, round)
	}

	started := time.Now()

	site, err := b.generator.Generate(ctx, sitegen.Request{
		Task:        pending.Task,
		Round:       pending.Round,
		Brief:       pending.Brief,
		Checks:      pending.Checks,
		Attachments: pending.Attachments,
	})
	if err != nil {
		return publisher.RateLimitStatus{}, b.markFailure(ctx, task, round,
			fmt.Errorf("could not generate site: %w", err))
	}

	res, rl, err := b.publisher.Publish(ctx, publisher.Request{
		Repo:        pending.Task,
		Description: pending.Brief,
		Round:       pending.Round,
		Update:      pending.Round > 1,
		Files:       site.Files,
	})
	if err != nil {
		if errors.Is(err, serrors.ErrRateLimited) {
			// the worker snoozes the job until the limit resets; the attempt
			// budget of the build is left untouched
			return rl, fmt.Errorf("could not publish site: %w", err)
		}

		return rl, b.markFailure(ctx, task, round, fmt.Errorf("could not publish site: %w", err))
	}

	if err := b.publisher.WaitLive(ctx, res.PagesURL); err != nil {
		return rl, b.markFailure(ctx, task, round, fmt.Errorf("page did not come live: %w", err))
	}

	result := domain.BuildResult{
		RepoURL:   res.RepoURL,
		CommitSHA: res.CommitSHA,
		PagesURL:  res.PagesURL,
	}

	// verification is advisory: failed checks are recorded on the result but
	// do not fail the build
	if b.checker != nil {
		checks, err := b.checker.Check(ctx, res.PagesURL, pending.Checks)
		if err != nil {
			logger.Warn(ctx, "could not verify live page", zap.Error(err))
		} else {
			result.Checks = checks
			for _, check := range checks {
				if !check.Passed {
					logger.Warn(ctx, "live page check failed",
						zap.String("check", check.Check),
						zap.String("detail", check.Detail))
				}
			}
		}
	}

	if err := b.evaluator.Notify(ctx, pending.EvaluationURL, evaluator.Receipt{
		Email:     pending.Email,
		Task:      pending.Task,
		Round:     pending.Round,
		Nonce:     pending.Nonce,
		RepoURL:   res.RepoURL,
		CommitSHA: res.CommitSHA,
		PagesURL:  res.PagesURL,
	}); err != nil {
		return rl, b.markFailure(ctx, task, round, fmt.Errorf("could not notify evaluator: %w", err))
	}

	notified := time.Now().UTC()
	result.NotifiedAt = &notified

	empty := ""
	if err := b.storage.UpdatePendingBuildsByTask(ctx, task, round, storage.BuildUpdates{
		Status:    domain.BuildStatusCompleted,
		Result:    &result,
		LastError: &empty,
	}); err != nil {
		return rl, fmt.Errorf("could not mark builds completed: %w", err)
	}

	metrics.BuildsPublished.Add(ctx, 1)
	metrics.PublishSeconds.Record(ctx, time.Since(started).Seconds())

	return rl, nil
}

// Result fetches a single build by ID. It returns a not-found error when no
// matching build exists.
func (b builder) Result(ctx context.Context, ID domain.BuildID) (*domain.Build, error) {
	res, err := b.storage.BuildByID(ctx, ID)
	if err != nil {
		return nil, fmt.Errorf("could not get build result: %w", err)
	}
	if res == nil {
		return nil, serrors.With(serrors.ErrNotFound, "build not found")
	}

	return res, nil
}

// Delete removes a build. If the build does not exist, a not-found error is
// returned. Jobs are not cancelled here because other pending builds may still
// depend on the same task job.
func (b builder) Delete(ctx context.Context, ID domain.BuildID) error {
	res, err := b.storage.DeleteBuild(ctx, ID)
	if err != nil {
		return fmt.Errorf("could not delete build: %w", err)
	}
	if res == nil {
		return serrors.With(serrors.ErrNotFound, "build not found")
	}

	// we don't delete jobs from the queue here because there might be other builds
	// depending on the job. the job worker makes sure there is still a pending
	// build for the task before publishing.

	return nil
}

// markFailure records a failed attempt on all pending builds of the task and
// round. The storage layer keeps the builds pending until the attempt budget
// is exhausted, so the job queue can retry. The cause is returned unchanged
// for the caller to propagate.
func (b builder) markFailure(ctx context.Context, task string, round int, cause error) error {
	metrics.BuildsFailed.Add(ctx, 1)

	msg := cause.Error()
	if err := b.storage.UpdatePendingBuildsByTask(ctx, task, round, storage.BuildUpdates{
		Status:      domain.BuildStatusFailed,
		LastError:   &msg,
		MaxAttempts: b.options.MaxAttempts,
	}); err != nil {
		logger.Error(ctx, "could not record build failure", zap.Error(err))
	}

	return cause
}

// New creates a new Builder instance backed by the provided storage and
// publication dependencies, configured with the given options. A nil checker
// disables live page verification.
func New(storage storage.Storage,
	generator sitegen.Generator,
	publisher publisher.Publisher,
	evaluator evaluator.Evaluator,
	checker pagecheck.Checker,
	options Options) Builder {
	return &builder{
		options:   options,
		storage:   storage,
		generator: generator,
		publisher: publisher,
		evaluator: evaluator,
		checker:   checker,
	}
}
