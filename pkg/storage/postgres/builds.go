package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"pagesmith/pkg/domain"
	"pagesmith/pkg/storage"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
)

const (
	buildsTable = "builds"
)

func (p *PgSQL) StoreBuilds(ctx context.Context, builds ...domain.Build) ([]domain.Build, error) {
	if len(builds) == 0 {
		return nil, nil
	}

	pgBuilds, err := domainBuildsToPg(builds)
	if err != nil {
		return nil, err
	}

	var result []PgBuild
	if err := p.Builder.Insert(buildsTable).
		Rows(pgBuilds).
		Returning(&PgBuild{}).
		Executor().ScanStructsContext(ctx, &result); err != nil {
		return nil, fmt.Errorf("could not store builds into pg: %w", err)
	}

	return pgBuildsToDomain(result)
}

// updatesRecord converts BuildUpdates into a goqu record. Attempts is
// incremented by 1 and updated_at is refreshed on every update.
func updatesRecord(updates storage.BuildUpdates) (goqu.Record, error) {
	rec := goqu.Record{
		"updated_at": goqu.L("CURRENT_TIMESTAMP"),
		"attempts":   goqu.L("attempts + 1"),
	}

	switch {
	case updates.Status == domain.BuildStatusFailed && updates.MaxAttempts > 0:
		// keep the build pending while the job queue still has retries left
		rec["status"] = goqu.L("CASE WHEN attempts + 1 >= ? THEN ? ELSE status END",
			updates.MaxAttempts, string(domain.BuildStatusFailed))
	case updates.Status != "":
		rec["status"] = updates.Status
	}

	if updates.Result != nil {
		b, err := json.Marshal(updates.Result)
		if err != nil {
			return nil, fmt.Errorf("could not marshal result: %w", err)
		}

		rec["result"] = b
	}
	if updates.LastError != nil {
		if *updates.LastError == "" {
			// set to NULL when empty string provided
			rec["last_error"] = goqu.L("NULL")
		} else {
			rec["last_error"] = *updates.LastError
		}
	}

	return rec, nil
}

// UpdatePendingBuildsByTask updates all pending builds for the given task and
// round with provided fields. Only non-nil fields from updates are set.
func (p *PgSQL) UpdatePendingBuildsByTask(ctx context.Context, task string, round int, updates storage.BuildUpdates) error {
	rec, err := updatesRecord(updates)
	if err != nil {
		return err
	}

	_, err = p.Builder.Update(buildsTable).
		Set(rec).Where(
		goqu.I("task").Eq(task),
		goqu.I("round").Eq(round),
		goqu.I("status").Eq(string(domain.BuildStatusPending)),
		goqu.I("deleted_at").IsNull(),
	).Executor().ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("could not update pending builds by task in pg: %w", err)
	}

	return nil
}

// PendingBuildByTask returns the most recent pending build for a task and
// round, or nil when nothing is pending.
func (p *PgSQL) PendingBuildByTask(ctx context.Context, task string, round int) (*domain.Build, error) {
	var row PgBuild
	found, err := p.Builder.From(buildsTable).
		Where(
			goqu.I("task").Eq(task),
			goqu.I("round").Eq(round),
			goqu.I("status").Eq(string(domain.BuildStatusPending)),
			goqu.I("deleted_at").IsNull(),
		).
		Order(goqu.I("created_at").Desc(), goqu.I("id").Desc()).
		Limit(1).
		Executor().ScanStructContext(ctx, &row)
	if err != nil {
		return nil, fmt.Errorf("could not fetch pending build by task: %w", err)
	}
	if !found {
		return nil, nil
	}

	return row.ToDomain()
}

// UpdateBuildByID updates a single build by ID and returns the updated row,
// excluding soft-deleted rows.
func (p *PgSQL) UpdateBuildByID(ctx context.Context, id domain.BuildID, updates storage.BuildUpdates) (*domain.Build, error) {
	rec, err := updatesRecord(updates)
	if err != nil {
		return nil, err
	}

	var row PgBuild
	found, err := p.Builder.Update(buildsTable).
		Set(rec).Where(
		goqu.I("id").Eq(uuid.UUID(id)),
		goqu.I("deleted_at").IsNull(),
	).Returning(&PgBuild{}).Executor().ScanStructContext(ctx, &row)
	if err != nil {
		return nil, fmt.Errorf("could not update build by id in pg: %w", err)
	}
	if !found {
		return nil, nil
	}

	return row.ToDomain()
}

// DeleteBuild performs a soft delete by setting the deleted_at timestamp for a
// given build id, returning the deleted record.
func (p *PgSQL) DeleteBuild(ctx context.Context, id domain.BuildID) (*domain.Build, error) {
	var row PgBuild
	found, err := p.Builder.Update(buildsTable).
		Set(goqu.Record{
			"deleted_at": goqu.L("CURRENT_TIMESTAMP"),
		}).Where(
		goqu.I("id").Eq(uuid.UUID(id)),
		goqu.I("deleted_at").IsNull(),
	).Returning(&PgBuild{}).Executor().ScanStructContext(ctx, &row)
	if err != nil {
		return nil, fmt.Errorf("could not delete build in pg: %w", err)
	}
	if !found {
		return nil, nil
	}

	return row.ToDomain()
}

// Builds returns a list of builds filtered by optional status and cursor and
// limited by limit. Results are ordered by created_at DESC, id DESC. Returns
// the next cursor for pagination.
func (p *PgSQL) Builds(ctx context.Context,
	status domain.BuildStatus,
	cursor time.Time,
	limit uint) (storage.BuildPage, error) {
	w := []goqu.Expression{
		goqu.I("deleted_at").IsNull(),
	}
	if status != "" {
		w = append(w, goqu.I("status").Eq(string(status)))
	}
	if !cursor.IsZero() {
		w = append(w, goqu.I("created_at").Lt(cursor))
	}

	// fetch one extra to determine if there is a next page
	fetch := limit + 1
	ds := p.Builder.From(buildsTable).
		Where(w...).
		Order(goqu.I("created_at").Desc(), goqu.I("id").Desc()).
		Limit(fetch)

	var rows []PgBuild
	if err := ds.Executor().ScanStructsContext(ctx, &rows); err != nil {
		return storage.BuildPage{}, fmt.Errorf("could not fetch builds from pg: %w", err)
	}

	// if we fetched more than the limit, there is a next page
	var nextCursor *time.Time
	if uint(len(rows)) > limit {
		trimmed := rows[:limit]
		nextCursor = &trimmed[len(trimmed)-1].CreatedAt
		rows = trimmed
	}

	domainRows, err := pgBuildsToDomain(rows)
	if err != nil {
		return storage.BuildPage{}, err
	}

	return storage.BuildPage{
		Builds:     domainRows,
		NextCursor: nextCursor,
	}, nil
}

// BuildByID returns a build by its ID, excluding soft-deleted rows.
func (p *PgSQL) BuildByID(ctx context.Context, id domain.BuildID) (*domain.Build, error) {
	var row PgBuild
	found, err := p.Builder.From(buildsTable).
		Where(
			goqu.I("id").Eq(uuid.UUID(id)),
			goqu.I("deleted_at").IsNull(),
		).
		Executor().ScanStructContext(ctx, &row)
	if err != nil {
		return nil, fmt.Errorf("could not fetch build by id: %w", err)
	}
	if !found {
		return nil, nil
	}

	return row.ToDomain()
}

// LastCompletedBuildByTask returns the most recent completed build for a task
// and round, or nil when none exists.
func (p *PgSQL) LastCompletedBuildByTask(ctx context.Context, task string, round int) (*domain.Build, error) {
	var row PgBuild
	found, err := p.Builder.From(buildsTable).
		Where(
			goqu.I("task").Eq(task),
			goqu.I("round").Eq(round),
			goqu.I("status").Eq(string(domain.BuildStatusCompleted)),
			goqu.I("deleted_at").IsNull(),
		).
		Order(goqu.I("created_at").Desc(), goqu.I("id").Desc()).
		Limit(1).
		Executor().ScanStructContext(ctx, &row)
	if err != nil {
		return nil, fmt.Errorf("could not fetch last completed build by task: %w", err)
	}
	if !found {
		return nil, nil
	}

	return row.ToDomain()
}
