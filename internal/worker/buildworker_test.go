package worker_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/riverqueue/river"
	"github.com/riverqueue/river/rivertype"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"pagesmith/internal/builder"
	mockbuilder "pagesmith/internal/builder/mock"
	"pagesmith/internal/worker"
	"pagesmith/pkg/logger"
	"pagesmith/pkg/publisher"
	"pagesmith/pkg/serrors"
)

func TestMain(m *testing.M) {
	logger.Setup(logger.DevelopmentEnvironment)
	m.Run()
}

func makeJob(id int64, task string) *river.Job[builder.JobArgs] {
	return &river.Job[builder.JobArgs]{
		JobRow: &rivertype.JobRow{ID: id},
		Args:   builder.JobArgs{Task: task, Round: 1},
	}
}

func TestBuildWorker_Work_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mock := mockbuilder.NewMockBuilder(ctrl)
	w := worker.NewBuildWorker(mock)

	// Return some RL status that should be adopted on first success
	rl := publisher.RateLimitStatus{Limit: 100, Remaining: 99, ResetAt: time.Now().Add(time.Minute)}
	mock.EXPECT().Build(gomock.Any(), "task-ok", 1).Return(rl, nil)

	require.NoError(t, w.Work(context.Background(), makeJob(1, "task-ok")))
}

func TestBuildWorker_Work_ConflictCancels(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mock := mockbuilder.NewMockBuilder(ctrl)
	w := worker.NewBuildWorker(mock)

	rl := publisher.RateLimitStatus{Limit: 100, Remaining: 100, ResetAt: time.Now().Add(time.Minute)}
	mock.EXPECT().Build(gomock.Any(), "task-conflict", 1).
		Return(rl, serrors.With(serrors.ErrConflict, "no pending build"))

	err := w.Work(context.Background(), makeJob(2, "task-conflict"))
	require.Error(t, err)
	var cancelErr *river.JobCancelError
	require.ErrorAs(t, err, &cancelErr)
}

func TestBuildWorker_Work_RateLimitedSnoozes(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mock := mockbuilder.NewMockBuilder(ctrl)
	w := worker.NewBuildWorker(mock)

	resetAt := time.Now().Add(1500 * time.Millisecond)
	rl := publisher.RateLimitStatus{Limit: 100, Remaining: 0, ResetAt: resetAt}
	mock.EXPECT().Build(gomock.Any(), "task-rl", 1).
		Return(rl, serrors.With(serrors.ErrRateLimited, "provider rl"))

	err := w.Work(context.Background(), makeJob(3, "task-rl"))
	require.Error(t, err)
	var snoozeErr *river.JobSnoozeError
	require.ErrorAs(t, err, &snoozeErr)
	// Duration should be around time.Until(resetAt)
	require.GreaterOrEqual(t, snoozeErr.Duration, 1200*time.Millisecond)
	require.LessOrEqual(t, snoozeErr.Duration, 2*time.Second)
}

func TestBuildWorker_Work_GenericErrorWrapped(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mock := mockbuilder.NewMockBuilder(ctrl)
	w := worker.NewBuildWorker(mock)

	rl := publisher.RateLimitStatus{Limit: 100, Remaining: 100, ResetAt: time.Now().Add(time.Minute)}
	buildErr := errors.New("boom")
	mock.EXPECT().Build(gomock.Any(), "task-err", 1).Return(rl, buildErr)

	err := w.Work(context.Background(), makeJob(4, "task-err"))
	require.Error(t, err)
	var cancelErr *river.JobCancelError
	require.NotErrorAs(t, err, &cancelErr, "did not expect JobCancelError")
	var snoozeErr *river.JobSnoozeError
	require.NotErrorAs(t, err, &snoozeErr, "did not expect JobSnoozeError")
}

func TestBuildWorker_CooperativeRateLimit_BlocksSecondUntilFirstFinishes(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mock := mockbuilder.NewMockBuilder(ctrl)
	w := worker.NewBuildWorker(mock)

	firstBuildStart := make(chan struct{})
	allowFirstToFinish := make(chan struct{})
	secondBuildStarted := make(chan struct{})

	// First Build blocks until we allow it to finish.
	mock.EXPECT().Build(gomock.Any(), "task-a", 1).
		DoAndReturn(func(ctx context.Context, _ string, _ int) (publisher.RateLimitStatus, error) {
			close(firstBuildStart)
			<-allowFirstToFinish

			return publisher.RateLimitStatus{Limit: 1, Remaining: 1, ResetAt: time.Now().Add(time.Minute)}, nil
		})
	// Second Build should not be called until the first finishes and requestFinished wakes it.
	mock.EXPECT().Build(gomock.Any(), "task-b", 1).
		DoAndReturn(func(ctx context.Context, _ string, _ int) (publisher.RateLimitStatus, error) {
			close(secondBuildStarted)

			return publisher.RateLimitStatus{Limit: 1, Remaining: 1, ResetAt: time.Now().Add(time.Minute)}, nil
		})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	// Start first work which should proceed immediately.
	go func() { _ = w.Work(ctx, makeJob(10, "task-a")) }()
	// Wait until first Build has started.
	<-firstBuildStart

	// Start second work, which should block before Build due to RL.
	go func() { _ = w.Work(ctx, makeJob(11, "task-b")) }()

	// Ensure second Build does NOT start within 100ms while first is still running.
	select {
	case <-secondBuildStarted:
		t.Fatal("second build started before first finished; RL not enforced")
	case <-time.After(100 * time.Millisecond):
		// expected: still blocked
	}

	// Now let the first Build finish; this should wake the waiter and allow second to start.
	close(allowFirstToFinish)

	select {
	case <-secondBuildStarted:
		// success
	case <-time.After(2 * time.Second):
		t.Fatal("second build did not start after first finished")
	}
}

func TestBuildWorker_RL_AllowsUpToRemainingConcurrent_ThenBlocksExtra(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mock := mockbuilder.NewMockBuilder(ctrl)
	w := worker.NewBuildWorker(mock)

	// Prime the worker with RL Remaining=2 so two in-flight can start immediately.
	rlPrime := publisher.RateLimitStatus{Limit: 2, Remaining: 2, ResetAt: time.Now().Add(time.Minute)}
	mock.EXPECT().Build(gomock.Any(), "task-prime", 1).Return(rlPrime, nil)

	require.NoError(t, w.Work(context.Background(), makeJob(20, "task-prime")))

	bStarted := make(chan struct{})
	cStarted := make(chan struct{})
	dStarted := make(chan struct{})
	finishB := make(chan struct{})
	finishC := make(chan struct{})

	// B and C should both be able to start concurrently under Remaining=2.
	mock.EXPECT().Build(gomock.Any(), "task-b", 1).
		DoAndReturn(func(ctx context.Context, _ string, _ int) (publisher.RateLimitStatus, error) {
			close(bStarted)
			<-finishB

			// Return Remaining=2 so after B finishes, remaining - inFlight (1) > 0 allowing D to start.
			return publisher.RateLimitStatus{Limit: 2, Remaining: 2, ResetAt: time.Now().Add(time.Minute)}, nil
		})
	mock.EXPECT().Build(gomock.Any(), "task-c", 1).
		DoAndReturn(func(ctx context.Context, _ string, _ int) (publisher.RateLimitStatus, error) {
			close(cStarted)
			<-finishC

			return publisher.RateLimitStatus{Limit: 2, Remaining: 0, ResetAt: time.Now().Add(time.Minute)}, nil
		})
	// D should be blocked until either B or C finishes and wakes a waiter.
	mock.EXPECT().Build(gomock.Any(), "task-d", 1).
		DoAndReturn(func(ctx context.Context, _ string, _ int) (publisher.RateLimitStatus, error) {
			close(dStarted)

			return publisher.RateLimitStatus{Limit: 2, Remaining: 1, ResetAt: time.Now().Add(time.Minute)}, nil
		})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	go func() { _ = w.Work(ctx, makeJob(21, "task-b")) }()
	go func() { _ = w.Work(ctx, makeJob(22, "task-c")) }()

	// Wait until both B and C are in-flight.
	select {
	case <-bStarted:
	case <-time.After(time.Second):
		t.Fatal("b did not start in time")
	}
	select {
	case <-cStarted:
	case <-time.After(time.Second):
		t.Fatal("c did not start in time")
	}

	// Start D, which should block before Build until one finishes.
	go func() { _ = w.Work(ctx, makeJob(23, "task-d")) }()

	select {
	case <-dStarted:
		t.Fatal("d started before any in-flight finished; RL not enforced for Remaining=2")
	case <-time.After(150 * time.Millisecond):
		// expected: still blocked
	}

	// Unblock one (B), which should allow D to start.
	close(finishB)

	select {
	case <-dStarted:
		// success
	case <-time.After(2 * time.Second):
		t.Fatal("d did not start after one request finished")
	}

	// Let C finish to avoid goroutine leaks.
	close(finishC)
}

func TestBuildWorker_RL_WaitsForReset_WhenRemainingZero(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mock := mockbuilder.NewMockBuilder(ctrl)
	w := worker.NewBuildWorker(mock)

	// First call returns Remaining=0 with a short ResetAt in the future.
	resetDelay := 300 * time.Millisecond
	resetAt := time.Now().Add(resetDelay)
	rlZero := publisher.RateLimitStatus{Limit: 5, Remaining: 0, ResetAt: resetAt}
	mock.EXPECT().Build(gomock.Any(), "task-a", 1).Return(rlZero, nil)
	require.NoError(t, w.Work(context.Background(), makeJob(30, "task-a")))

	started := make(chan struct{})
	start := time.Now()
	mock.EXPECT().Build(gomock.Any(), "task-b", 1).
		DoAndReturn(func(ctx context.Context, _ string, _ int) (publisher.RateLimitStatus, error) {
			close(started)
			// Return any RL status; here we simulate a reset having happened.
			return publisher.RateLimitStatus{Limit: 5, Remaining: 4, ResetAt: time.Now().Add(time.Minute)}, nil
		})

	// Start B; it should not invoke Build until roughly after resetDelay.
	go func() { _ = w.Work(context.Background(), makeJob(31, "task-b")) }()

	select {
	case <-started:
		elapsed := time.Since(start)
		require.GreaterOrEqual(t,
			elapsed,
			resetDelay-75*time.Millisecond,
			"Build started too early before reset window elapsed")
	case <-time.After(2 * time.Second):
		t.Fatal("b did not start after reset window elapsed")
	}
}

func TestBuildWorker_RL_UnblocksOnFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mock := mockbuilder.NewMockBuilder(ctrl)
	w := worker.NewBuildWorker(mock)

	firstStarted := make(chan struct{})
	allowFirstToFinish := make(chan struct{})
	secondStarted := make(chan struct{})

	// First returns a generic error after we allow it to finish.
	mock.EXPECT().Build(gomock.Any(), "task-fail", 1).
		DoAndReturn(func(ctx context.Context, _ string, _ int) (publisher.RateLimitStatus, error) {
			close(firstStarted)
			<-allowFirstToFinish

			return publisher.RateLimitStatus{
				Limit:     1,
				Remaining: 1,
				ResetAt:   time.Now().Add(time.Minute),
			}, errors.New("boom")
		})
	mock.EXPECT().Build(gomock.Any(), "task-next", 1).
		DoAndReturn(func(ctx context.Context, _ string, _ int) (publisher.RateLimitStatus, error) {
			close(secondStarted)

			return publisher.RateLimitStatus{Limit: 1, Remaining: 1, ResetAt: time.Now().Add(time.Minute)}, nil
		})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	go func() { _ = w.Work(ctx, makeJob(40, "task-fail")) }()
	<-firstStarted

	go func() { _ = w.Work(ctx, makeJob(41, "task-next")) }()

	select {
	case <-secondStarted:
		t.Fatal("second started before first failed; RL not enforced")
	case <-time.After(100 * time.Millisecond):
		// expected
	}

	close(allowFirstToFinish)

	select {
	case <-secondStarted:
		// ok
	case <-time.After(2 * time.Second):
		t.Fatal("second did not start after first finished with error")
	}
}
