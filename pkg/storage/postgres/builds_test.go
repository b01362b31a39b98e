package postgres_test

import (
	"context"
	"pagesmith/pkg/domain"
	"pagesmith/pkg/storage"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func newBuild(task string, round int, status domain.BuildStatus) domain.Build {
	return domain.Build{
		Task:          task,
		Round:         round,
		Email:         "solver@example.com",
		Nonce:         "nonce-" + uuid.NewString(),
		Brief:         "Create a captcha solver that displays the image from the url parameter",
		EvaluationURL: "https://evaluator.example.com/notify",
		Status:        status,
	}
}

func TestPgSQL_StoreBuilds(t *testing.T) {
	t.Parallel()

	pgSQL, cleanup := setupTestDB(t)
	t.Cleanup(cleanup)

	ctx := context.Background()

	t.Run("store single build", func(t *testing.T) {
		t.Parallel()

		b := newBuild("captcha-solver", 1, domain.BuildStatusPending)
		b.Checks = []string{"Repo has MIT license", "js: document.images.length > 0"}
		b.Attachments = []domain.Attachment{{Name: "sample.png", URL: "data:image/png;base64,iVBOR"}}

		res, err := pgSQL.StoreBuilds(ctx, b)
		require.NoError(t, err)
		require.Len(t, res, 1)
		require.Equal(t, "captcha-solver", res[0].Task)
		require.Equal(t, 1, res[0].Round)
		require.Equal(t, b.Checks, res[0].Checks)
		require.Equal(t, b.Attachments, res[0].Attachments)
		require.False(t, res[0].CreatedAt.IsZero())
	})

	t.Run("store multiple builds", func(t *testing.T) {
		t.Parallel()

		b1 := newBuild("image-gallery", 1, domain.BuildStatusPending)
		b2 := newBuild("image-gallery", 2, domain.BuildStatusPending)

		res, err := pgSQL.StoreBuilds(ctx, b1, b2)
		require.NoError(t, err)
		require.Len(t, res, 2)
	})

	t.Run("store empty builds", func(t *testing.T) {
		t.Parallel()

		res, err := pgSQL.StoreBuilds(ctx)
		require.NoError(t, err)
		require.Empty(t, res)
	})
}

func TestPgSQL_UpdatePendingBuildsByTask(t *testing.T) {
	t.Parallel()

	pgSQL, cleanup := setupTestDB(t)
	t.Cleanup(cleanup)
	ctx := context.Background()

	taskA := "captcha-solver"
	taskB := "markdown-editor"

	// insert builds
	b1 := newBuild(taskA, 1, domain.BuildStatusPending)
	b2 := newBuild(taskA, 1, domain.BuildStatusPending)
	b3 := newBuild(taskA, 1, domain.BuildStatusCompleted)
	b4 := newBuild(taskB, 1, domain.BuildStatusPending)
	ins, err := pgSQL.StoreBuilds(ctx, b1, b2, b3, b4)
	require.NoError(t, err)
	require.Len(t, ins, 4)

	// update only pending builds for taskA
	empty := ""
	u := storage.BuildUpdates{
		Status: domain.BuildStatusCompleted,
		Result: &domain.BuildResult{
			RepoURL:   "https://github.com/octocat/captcha-solver",
			CommitSHA: "abc123",
			PagesURL:  "https://octocat.github.io/captcha-solver/",
		},
		LastError: &empty, // clear last_error to NULL
	}
	require.NoError(t, pgSQL.UpdatePendingBuildsByTask(ctx, taskA, 1, u))

	// fetch all builds and validate
	page, err := pgSQL.Builds(ctx, "", time.Time{}, 50)
	require.NoError(t, err)

	// build index by id
	byID := map[uuid.UUID]domain.Build{}
	for _, b := range page.Builds {
		byID[uuid.UUID(b.ID)] = b
	}

	// assertions for b1, b2 updated
	for i := range 2 {
		b := byID[uuid.UUID(ins[i].ID)]
		require.Equal(t, domain.BuildStatusCompleted, b.Status)
		require.EqualValues(t, 1, b.Attempts)
		require.False(t, b.UpdatedAt.IsZero())
		require.Empty(t, b.LastError)
		require.Equal(t, "abc123", b.Result.CommitSHA)
	}
	// b3 (completed) should remain with attempts 0
	gb3 := byID[uuid.UUID(ins[2].ID)]
	require.EqualValues(t, 0, gb3.Attempts)
	// b4 for taskB should remain pending
	gb4 := byID[uuid.UUID(ins[3].ID)]
	require.Equal(t, domain.BuildStatusPending, gb4.Status)
}

func TestPgSQL_UpdatePendingBuildsByTask_FailureBudget(t *testing.T) {
	t.Parallel()

	pgSQL, cleanup := setupTestDB(t)
	t.Cleanup(cleanup)
	ctx := context.Background()

	task := "captcha-solver"
	stored, err := pgSQL.StoreBuilds(ctx, newBuild(task, 1, domain.BuildStatusPending))
	require.NoError(t, err)
	require.Len(t, stored, 1)
	id := stored[0].ID

	lastErr := "pages never went live"
	fail := storage.BuildUpdates{
		Status:      domain.BuildStatusFailed,
		LastError:   &lastErr,
		MaxAttempts: 3,
	}

	// the first two failures stay pending so the job queue can retry
	for i := range 2 {
		require.NoError(t, pgSQL.UpdatePendingBuildsByTask(ctx, task, 1, fail))

		got, err := pgSQL.BuildByID(ctx, id)
		require.NoError(t, err)
		require.NotNil(t, got)
		require.Equal(t, domain.BuildStatusPending, got.Status)
		require.EqualValues(t, i+1, got.Attempts)
		require.Equal(t, lastErr, got.LastError)
	}

	// the third failure exhausts the budget
	require.NoError(t, pgSQL.UpdatePendingBuildsByTask(ctx, task, 1, fail))

	got, err := pgSQL.BuildByID(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, domain.BuildStatusFailed, got.Status)
	require.EqualValues(t, 3, got.Attempts)

	// nothing pending remains for the task
	pending, err := pgSQL.PendingBuildByTask(ctx, task, 1)
	require.NoError(t, err)
	require.Nil(t, pending)
}

func TestPgSQL_PendingBuildByTask(t *testing.T) {
	t.Parallel()

	pgSQL, cleanup := setupTestDB(t)
	t.Cleanup(cleanup)
	ctx := context.Background()

	task := "captcha-solver"
	stored, err := pgSQL.StoreBuilds(ctx,
		newBuild(task, 1, domain.BuildStatusPending),
		newBuild(task, 1, domain.BuildStatusPending),
		newBuild(task, 2, domain.BuildStatusCompleted),
	)
	require.NoError(t, err)
	require.Len(t, stored, 3)

	// make the second pending build the newest
	now := time.Now().UTC()
	_, err = pgSQL.DB.ExecContext(ctx, "UPDATE builds SET created_at = $1 WHERE id = $2", now.Add(-time.Minute), uuid.UUID(stored[0].ID))
	require.NoError(t, err)
	_, err = pgSQL.DB.ExecContext(ctx, "UPDATE builds SET created_at = $1 WHERE id = $2", now, uuid.UUID(stored[1].ID))
	require.NoError(t, err)

	got, err := pgSQL.PendingBuildByTask(ctx, task, 1)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, stored[1].ID, got.ID)

	// round without a pending build
	got2, err := pgSQL.PendingBuildByTask(ctx, task, 2)
	require.NoError(t, err)
	require.Nil(t, got2)

	// unknown task
	got3, err := pgSQL.PendingBuildByTask(ctx, "unknown-task", 1)
	require.NoError(t, err)
	require.Nil(t, got3)
}

func TestPgSQL_UpdateBuildByID(t *testing.T) {
	t.Parallel()

	pgSQL, cleanup := setupTestDB(t)
	t.Cleanup(cleanup)
	ctx := context.Background()

	stored, err := pgSQL.StoreBuilds(ctx, newBuild("captcha-solver", 1, domain.BuildStatusPending))
	require.NoError(t, err)
	require.Len(t, stored, 1)
	id := stored[0].ID

	notified := time.Now().UTC().Truncate(time.Second)
	updated, err := pgSQL.UpdateBuildByID(ctx, id, storage.BuildUpdates{
		Status: domain.BuildStatusCompleted,
		Result: &domain.BuildResult{
			PagesURL:   "https://octocat.github.io/captcha-solver/",
			NotifiedAt: &notified,
		},
	})
	require.NoError(t, err)
	require.NotNil(t, updated)
	require.Equal(t, domain.BuildStatusCompleted, updated.Status)
	require.EqualValues(t, 1, updated.Attempts)
	require.Equal(t, "https://octocat.github.io/captcha-solver/", updated.Result.PagesURL)
	require.NotNil(t, updated.Result.NotifiedAt)
	require.True(t, notified.Equal(*updated.Result.NotifiedAt))

	// fetching should observe the same state
	got, err := pgSQL.BuildByID(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, domain.BuildStatusCompleted, got.Status)

	// unknown id returns nil without error
	missing, err := pgSQL.UpdateBuildByID(ctx, domain.BuildID(uuid.New()), storage.BuildUpdates{
		Status: domain.BuildStatusFailed,
	})
	require.NoError(t, err)
	require.Nil(t, missing)
}

func TestPgSQL_DeleteBuild(t *testing.T) {
	t.Parallel()

	pgSQL, cleanup := setupTestDB(t)
	t.Cleanup(cleanup)
	ctx := context.Background()

	stored, err := pgSQL.StoreBuilds(ctx, newBuild("captcha-solver", 1, domain.BuildStatusPending))
	require.NoError(t, err)
	require.Len(t, stored, 1)
	id := stored[0].ID

	// delete
	deleted, err := pgSQL.DeleteBuild(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, deleted)
	require.Equal(t, id, deleted.ID)
	// fetching by id should return nil
	got, err := pgSQL.BuildByID(ctx, id)
	require.NoError(t, err)
	require.Nil(t, got)
	// listing should not include it
	page, err := pgSQL.Builds(ctx, "", time.Time{}, 10)
	require.NoError(t, err)
	for _, b := range page.Builds {
		require.NotEqual(t, id, b.ID)
	}
	// deleting again should not error
	deleted2, err := pgSQL.DeleteBuild(ctx, id)
	require.NoError(t, err)
	require.Nil(t, deleted2)
}

func TestPgSQL_Builds_Pagination(t *testing.T) {
	t.Parallel()

	pgSQL, cleanup := setupTestDB(t)
	t.Cleanup(cleanup)
	ctx := context.Background()

	// insert 5 builds
	builds := make([]domain.Build, 0, 5)
	for range 5 {
		builds = append(builds, newBuild("task-"+uuid.NewString(), 1, domain.BuildStatusPending))
	}
	stored, err := pgSQL.StoreBuilds(ctx, builds...)
	require.NoError(t, err)
	require.Len(t, stored, 5)

	// adjust created_at to be deterministic descending: now, now-1m, ...
	now := time.Now().UTC()
	for i, b := range stored {
		created := now.Add(-time.Duration(4-i) * time.Minute) // stored order is same as input; make last newest
		_, err := pgSQL.DB.ExecContext(ctx, "UPDATE builds SET created_at = $1 WHERE id = $2", created, uuid.UUID(b.ID))
		require.NoError(t, err)
	}

	// first page, limit 2
	p1, err := pgSQL.Builds(ctx, "", time.Time{}, 2)
	require.NoError(t, err)
	require.Len(t, p1.Builds, 2)
	require.NotNil(t, p1.NextCursor)
	c1 := *p1.NextCursor

	// second page
	p2, err := pgSQL.Builds(ctx, "", c1, 2)
	require.NoError(t, err)
	require.Len(t, p2.Builds, 2)
	require.NotNil(t, p2.NextCursor)
	c2 := *p2.NextCursor

	// third (last) page, should have 1 left and no next cursor
	p3, err := pgSQL.Builds(ctx, "", c2, 2)
	require.NoError(t, err)
	require.Len(t, p3.Builds, 1)
	require.Nil(t, p3.NextCursor)
}

func TestPgSQL_Builds_StatusFilter(t *testing.T) {
	t.Parallel()

	pgSQL, cleanup := setupTestDB(t)
	t.Cleanup(cleanup)
	ctx := context.Background()

	stored, err := pgSQL.StoreBuilds(ctx,
		newBuild("captcha-solver", 1, domain.BuildStatusPending),
		newBuild("captcha-solver", 2, domain.BuildStatusPending),
		newBuild("markdown-editor", 1, domain.BuildStatusCompleted),
	)
	require.NoError(t, err)
	require.Len(t, stored, 3)

	pending, err := pgSQL.Builds(ctx, domain.BuildStatusPending, time.Time{}, 10)
	require.NoError(t, err)
	require.Len(t, pending.Builds, 2)

	completed, err := pgSQL.Builds(ctx, domain.BuildStatusCompleted, time.Time{}, 10)
	require.NoError(t, err)
	require.Len(t, completed.Builds, 1)
	require.Equal(t, "markdown-editor", completed.Builds[0].Task)

	all, err := pgSQL.Builds(ctx, "", time.Time{}, 10)
	require.NoError(t, err)
	require.Len(t, all.Builds, 3)
}

func TestPgSQL_BuildByID(t *testing.T) {
	t.Parallel()

	pgSQL, cleanup := setupTestDB(t)
	t.Cleanup(cleanup)
	ctx := context.Background()

	storedA, err := pgSQL.StoreBuilds(ctx, newBuild("captcha-solver", 1, domain.BuildStatusPending))
	require.NoError(t, err)
	storedB, err := pgSQL.StoreBuilds(ctx, newBuild("markdown-editor", 1, domain.BuildStatusPending))
	require.NoError(t, err)
	idA := storedA[0].ID
	idB := storedB[0].ID

	got, err := pgSQL.BuildByID(ctx, idA)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, idA, got.ID)
	require.Equal(t, "captcha-solver", got.Task)

	// soft delete and ensure not returned
	_, err = pgSQL.DeleteBuild(ctx, idB)
	require.NoError(t, err)
	got2, err := pgSQL.BuildByID(ctx, idB)
	require.NoError(t, err)
	require.Nil(t, got2)
}

func TestPgSQL_LastCompletedBuildByTask(t *testing.T) {
	t.Parallel()

	pgSQL, cleanup := setupTestDB(t)
	t.Cleanup(cleanup)
	ctx := context.Background()

	task := "captcha-solver"

	// no completed build yet
	got, err := pgSQL.LastCompletedBuildByTask(ctx, task, 1)
	require.NoError(t, err)
	require.Nil(t, got)

	stored, err := pgSQL.StoreBuilds(ctx,
		newBuild(task, 1, domain.BuildStatusCompleted),
		newBuild(task, 1, domain.BuildStatusCompleted),
		newBuild(task, 1, domain.BuildStatusPending),
	)
	require.NoError(t, err)
	require.Len(t, stored, 3)

	// make the second completed build the newest
	now := time.Now().UTC()
	_, err = pgSQL.DB.ExecContext(ctx, "UPDATE builds SET created_at = $1 WHERE id = $2", now.Add(-time.Hour), uuid.UUID(stored[0].ID))
	require.NoError(t, err)
	_, err = pgSQL.DB.ExecContext(ctx, "UPDATE builds SET created_at = $1 WHERE id = $2", now, uuid.UUID(stored[1].ID))
	require.NoError(t, err)

	got, err = pgSQL.LastCompletedBuildByTask(ctx, task, 1)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, stored[1].ID, got.ID)
	require.Equal(t, domain.BuildStatusCompleted, got.Status)

	// other rounds are not considered
	got2, err := pgSQL.LastCompletedBuildByTask(ctx, task, 2)
	require.NoError(t, err)
	require.Nil(t, got2)
}
