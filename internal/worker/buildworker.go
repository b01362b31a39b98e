package worker

import (
	"context"
	"errors"
	"fmt"
	"pagesmith/internal/builder"
	"pagesmith/pkg/logger"
	"pagesmith/pkg/publisher"
	"pagesmith/pkg/serrors"
	"sync"
	"time"

	"github.com/riverqueue/river"
	"go.uber.org/zap"
)

// BuildWorker is a River worker that publishes sites using a provided
// builder.Builder implementation. It embeds River's WorkerDefaults to integrate
// with the job runtime and provides its own cooperative rate limiting. The rate
// limiting logic ensures that we never exceed the GitHub API's rate limits
// while still allowing maximal concurrency when budget remains.
//
// # Rate limiting overview
//
// The worker tracks the last known upstream rate-limit status (lastRLStatus) and the
// number of publications currently in flight (inFlightRequests). Before starting a
// build, reserveRL is called to "reserve" a slot from the current budget. The
// effective remaining budget is computed as:
//
//	remaining := lastRLStatus.Remaining
//	if now > lastRLStatus.ResetAt { remaining = lastRLStatus.Limit }
//
// A publication is allowed to start if remaining - inFlightRequests > 0. This allows
// multiple concurrent publications as long as they do not exceed the Remaining
// budget. When there is no budget left, reserveRL waits until either:
//   - the ResetAt time is reached (budget replenishes to Limit), or
//   - another in-flight publication finishes and signals requestFinishedChan.
//
// After a publication completes, requestFinished is called with the server-provided
// publisher.RateLimitStatus gathered from the response. It decrements the
// inFlightRequests counter, notifies any goroutines waiting in reserveRL by sending a
// message on requestFinishedChan (non-blocking), and updates lastRLStatus. The
// update strategy prefers the freshest ResetAt and the lowest Remaining to avoid
// optimistic races when multiple concurrent publications report slightly different
// views of the budget. If ResetAt changes, it is always adopted. Otherwise,
// Remaining is only replaced when it decreases, which is conservative and prevents
// overuse.
//
// Bootstrap behavior: At startup, before any API call has returned a rate-limit
// status, lastRLStatus is initialized to a synthetic status with Limit=1,
// Remaining=1, and a far-future ResetAt. This permits exactly one publication to go
// through so we can obtain real rate-limit headers from the GitHub API. Subsequent
// publications use actual data.
//
// Concurrency safety: All rate-limit mutable state is guarded by mu. The
// requestFinishedChan is used as a wake-up signal for waiters without accumulating
// backpressure; send is non-blocking and dropped if no one is waiting.
//
// Error handling: If the build returns a conflict, the job is canceled. If the
// build indicates upstream rate limiting, the job is snoozed until ResetAt
// (deferring retry). Other errors are logged and returned.
type BuildWorker struct {
	river.WorkerDefaults[builder.JobArgs]

	// builder runs the actual publication pipeline and returns rate-limit status
	// from the GitHub API alongside any error.
	builder builder.Builder
	// mu protects all fields below it: inFlightRequests and lastRLStatus.
	mu sync.Mutex
	// inFlightRequests counts how many publications are currently running. It is
	// used in conjunction with lastRLStatus.Remaining to decide if another
	// publication may start.
	inFlightRequests int
	// lastRLStatus stores the most recent view of the upstream rate-limit headers.
	// It is updated after each publication, preferring newer ResetAt and lower
	// Remaining to avoid optimistic races between concurrent publications.
	lastRLStatus *publisher.RateLimitStatus
	// requestFinishedChan is a non-buffered notification channel used to wake up
	// goroutines waiting in reserveRL when any in-flight publication completes.
	requestFinishedChan chan struct{}
}

// NewBuildWorker constructs a BuildWorker using the provided builder.
// The returned worker enforces cooperative rate limiting across
// its concurrent jobs.
func NewBuildWorker(builder builder.Builder) *BuildWorker {
	return &BuildWorker{
		builder:             builder,
		requestFinishedChan: make(chan struct{}),
	}
}

// Work executes a single publish job while respecting rate limits.
// It reserves rate-limit budget, runs the build, updates the
// internal rate-limit state, and maps errors to appropriate River actions.
func (w *BuildWorker) Work(ctx context.Context, job *river.Job[builder.JobArgs]) error {
	ctx = logger.WithFields(ctx,
		zap.Int64("jobID", job.ID),
		zap.String("task", job.Args.Task),
		zap.Int("round", job.Args.Round))

	// try to reserve a rate limit slot
	if err := w.reserveRL(ctx); err != nil {
		logger.Error(ctx, "error reserving rate limit", zap.Error(err))

		return fmt.Errorf("could not reserve rate limit: %w", err)
	}

	RLStatus, err := w.builder.Build(ctx, job.Args.Task, job.Args.Round)
	w.requestFinished(ctx, RLStatus)
	if err != nil {
		if errors.Is(err, serrors.ErrConflict) {
			return river.JobCancel(err) //nolint: wrapcheck
		}

		logger.Error(ctx, "error in publishing site", zap.Error(err))

		if errors.Is(err, serrors.ErrRateLimited) {
			dur := time.Until(RLStatus.ResetAt)
			if dur < 0 {
				dur = 0
			}

			return river.JobSnooze(dur) //nolint: wrapcheck
		}

		return fmt.Errorf("could not publish site: %w", err)
	}

	logger.Info(ctx, "site published successfully")

	return nil
}

// requestFinished is called after every publish attempt. It decrements the
// in-flight counter, notifies any goroutines waiting to reserve rate limit, and
// updates the last known rate-limit status using a conservative merge strategy to
// avoid races between concurrent publications.
func (w *BuildWorker) requestFinished(ctx context.Context, newRLStatus publisher.RateLimitStatus) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.inFlightRequests > 0 {
		w.inFlightRequests--
	} else {
		// Defensive clamp: avoid negative values in case of unexpected sequencing.
		w.inFlightRequests = 0
	}

	// If other goroutines are blocked in reserveRL, try to wake exactly one without
	// blocking this goroutine. If no one is waiting, the signal is dropped.
	select {
	case w.requestFinishedChan <- struct{}{}:
	default:
	}

	// If the call didn't return any RL info, don't change our view.
	if newRLStatus.ResetAt.IsZero() {
		return
	}

	log := func() {
		logger.Debug(ctx, "received rate limit status",
			zap.Int("limit", newRLStatus.Limit),
			zap.Int("remaining", newRLStatus.Remaining),
			zap.Time("resetAt", newRLStatus.ResetAt),
			zap.Int("inFlight", w.inFlightRequests))
	}

	// First observation: adopt it unconditionally.
	if w.lastRLStatus == nil {
		w.lastRLStatus = &newRLStatus
		log()

		return
	}

	// If ResetAt changed, always adopt the new window.
	if !w.lastRLStatus.ResetAt.Equal(newRLStatus.ResetAt) {
		w.lastRLStatus = &newRLStatus
		log()

		return
	}

	// Otherwise prefer the lower Remaining to stay conservative under concurrency.
	if newRLStatus.Remaining < w.lastRLStatus.Remaining {
		w.lastRLStatus = &newRLStatus
		log()
	}
}

// reserveRL reserves one unit from the rate-limit budget or blocks until a unit
// becomes available. It implements the cooperative rate limiting described in the
// type-level comment:
//  1. On first use, initialize a synthetic RL state to allow a single probe
//     publication to gather real headers.
//  2. Compute effective remaining budget; if we've passed ResetAt, Remaining is
//     treated as Limit.
//  3. If remaining - inFlightRequests > 0, increment inFlightRequests and return.
//  4. Otherwise, wait until either ResetAt elapses or any in-flight publication
//     completes (signaled via requestFinishedChan), then retry.
//
// If ctx is canceled while waiting, an error is returned.
func (w *BuildWorker) reserveRL(ctx context.Context) error {
	for {
		w.mu.Lock()

		if w.lastRLStatus == nil {
			// At startup allow one publication to get feedback from the API.
			w.lastRLStatus = &publisher.RateLimitStatus{
				Limit:     1,
				Remaining: 1,
				// Far-future reset so the first reservation doesn't
				// unblock due to a timer; we'll replace this with real headers soon.
				ResetAt: time.Now().Add(365 * 24 * time.Hour),
			}
		}

		remaining := w.lastRLStatus.Remaining
		// If the reset time has passed, treat the full limit as remaining.
		if time.Now().UTC().After(w.lastRLStatus.ResetAt) {
			remaining = w.lastRLStatus.Limit
		}

		// If budget remains once we account for in-flight publications, reserve and go.
		if remaining-w.inFlightRequests > 0 {
			logger.Debug(ctx, "reserved rate limit slot",
				zap.Int("remaining", remaining),
				zap.Int("limit", w.lastRLStatus.Limit),
				zap.Time("resetAt", w.lastRLStatus.ResetAt),
				zap.Int("inFlight", w.inFlightRequests))
			w.inFlightRequests++
			w.mu.Unlock()

			return nil
		}

		// Otherwise, wait for either the reset time (if in the future) or for any
		// publication to finish, then retry.
		limit := w.lastRLStatus.Limit
		resetAt := w.lastRLStatus.ResetAt
		inFlight := w.inFlightRequests
		w.mu.Unlock()

		logger.Debug(ctx, "waiting for rate limit slot",
			zap.Int("remaining", remaining),
			zap.Int("limit", limit),
			zap.Time("resetAt", resetAt),
			zap.Int("inFlight", inFlight))

		select {
		case <-ctx.Done():
			return fmt.Errorf("timeout waiting for rate limit: %w", ctx.Err())
		case <-w.requestFinishedChan:
			// loop to re-evaluate
			continue
		case <-time.After(time.Until(resetAt)):
			// Reset window elapsed; loop and try again.
			continue
		}
	}
}
