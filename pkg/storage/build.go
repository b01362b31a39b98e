package storage

import (
	"context"
	"time"

	"pagesmith/pkg/domain"
)

// BuildUpdates describes a set of optional fields that can be applied to an
// existing build during an update. Only non-nil fields will be updated.
type BuildUpdates struct {
	// Status is the new status to set for the build. Empty leaves the status
	// unchanged.
	Status domain.BuildStatus
	// Result, when provided, replaces the stored build result payload.
	Result *domain.BuildResult
	// LastError, when provided, sets the last error text. An empty string value
	// indicates the error should be cleared (set to NULL).
	LastError *string
	// MaxAttempts, when provided alongside a Failed status, ensures that status
	// is only updated to Failed if the current attempts after increment would
	// reach this threshold. A value <= 0 disables this guard.
	MaxAttempts int
}

// BuildPage groups a page of builds together with an optional NextCursor used
// for pagination.
type BuildPage struct {
	// Builds contains the current page of build records.
	Builds []domain.Build
	// NextCursor points to the timestamp to be used as the cursor for fetching
	// the next page. It is nil when there is no next page.
	NextCursor *time.Time
}

// BuildStorage defines CRUD and query operations related to builds.
// Implementations should ensure idempotency and proper handling of
// soft-deletes where applicable.
type BuildStorage interface {
	// StoreBuilds inserts one or more builds and returns the stored rows as
	// they exist in the database (including generated fields).
	StoreBuilds(ctx context.Context, builds ...domain.Build) ([]domain.Build, error)
	// UpdatePendingBuildsByTask updates all pending builds for the given task
	// and round using the provided field set.
	// Notes:
	// - Attempts is incremented by 1 and updated_at is set automatically.
	// - If Status is Failed and MaxAttempts > 0, status is only set to Failed
	//   when the attempts after increment would reach MaxAttempts; otherwise
	//   status remains unchanged (i.e., stays Pending).
	UpdatePendingBuildsByTask(ctx context.Context, task string, round int, updates BuildUpdates) error
	// PendingBuildByTask returns the most recent pending build for the given
	// task and round, or nil when none is pending. Soft-deleted records are
	// excluded.
	PendingBuildByTask(ctx context.Context, task string, round int) (*domain.Build, error)
	// UpdateBuildByID updates a single build identified by its ID and returns the updated row.
	// The update ignores soft-deleted rows and sets updated_at automatically. Only provided fields are changed.
	UpdateBuildByID(ctx context.Context, ID domain.BuildID, updates BuildUpdates) (*domain.Build, error)
	// DeleteBuild performs a soft delete for the given build ID and returns
	// the deleted build, or nil if it was not found.
	DeleteBuild(ctx context.Context, ID domain.BuildID) (*domain.Build, error)
	// Builds returns a page of builds created before the optional cursor time,
	// limited by the given limit. If status is non-empty, results are filtered
	// to records with the given status.
	Builds(ctx context.Context, status domain.BuildStatus, cursor time.Time, limit uint) (BuildPage, error)
	// BuildByID fetches a build by its ID, excluding soft-deleted records.
	// Returns nil when not found.
	BuildByID(ctx context.Context, ID domain.BuildID) (*domain.Build, error)
	// LastCompletedBuildByTask returns the most recent completed build for the
	// given task and round. Returns nil when no completed build exists.
	LastCompletedBuildByTask(ctx context.Context, task string, round int) (*domain.Build, error)
}
