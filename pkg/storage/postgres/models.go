package postgres

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"pagesmith/pkg/domain"
	"time"

	"github.com/google/uuid"
)

type PgBuild struct {
	ID uuid.UUID `db:"id" goqu:"skipinsert"`

	Task  string `db:"task"`
	Round int    `db:"round"`
	Email string `db:"email"`
	Nonce string `db:"nonce"`
	Brief string `db:"brief"`

	Checks        json.RawMessage `db:"checks"`
	Attachments   json.RawMessage `db:"attachments"`
	EvaluationURL string          `db:"evaluation_url"`

	Status string          `db:"status"`
	Result json.RawMessage `db:"result" goqu:"skipinsert"`

	Attempts  uint           `db:"attempts"   goqu:"skipinsert"`
	LastError sql.NullString `db:"last_error" goqu:"skipinsert"`

	CreatedAt time.Time    `db:"created_at" goqu:"skipinsert"`
	UpdatedAt sql.NullTime `db:"updated_at" goqu:"skipinsert"`
	DeletedAt sql.NullTime `db:"deleted_at" goqu:"skipinsert"`
}

// TODO: use https://github.com/jmattheis/goverter for converting

func (p *PgBuild) ToDomain() (*domain.Build, error) {
	var checks []string
	if len(p.Checks) > 0 {
		if err := json.Unmarshal(p.Checks, &checks); err != nil {
			return nil, fmt.Errorf("could not unmarshal build checks: %w", err)
		}
	}

	var attachments []domain.Attachment
	if len(p.Attachments) > 0 {
		if err := json.Unmarshal(p.Attachments, &attachments); err != nil {
			return nil, fmt.Errorf("could not unmarshal build attachments: %w", err)
		}
	}

	var result domain.BuildResult
	if err := json.Unmarshal(p.Result, &result); err != nil {
		return nil, fmt.Errorf("could not unmarshal build result: %w", err)
	}

	return &domain.Build{
		ID:            domain.BuildID(p.ID),
		Task:          p.Task,
		Round:         p.Round,
		Email:         p.Email,
		Nonce:         p.Nonce,
		Brief:         p.Brief,
		Checks:        checks,
		Attachments:   attachments,
		EvaluationURL: p.EvaluationURL,
		Status:        domain.BuildStatus(p.Status),
		Result:        result,
		Attempts:      p.Attempts,
		LastError:     p.LastError.String,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt.Time,
		DeletedAt:     p.DeletedAt.Time,
	}, nil
}

func (p *PgBuild) FromDomain(build domain.Build) error {
	checks, err := json.Marshal(build.Checks)
	if err != nil {
		return fmt.Errorf("could not marshal build checks: %w", err)
	}

	attachments, err := json.Marshal(build.Attachments)
	if err != nil {
		return fmt.Errorf("could not marshal build attachments: %w", err)
	}

	result, err := json.Marshal(build.Result)
	if err != nil {
		return fmt.Errorf("could not marshal build result: %w", err)
	}

	*p = PgBuild{
		ID:            uuid.UUID(build.ID),
		Task:          build.Task,
		Round:         build.Round,
		Email:         build.Email,
		Nonce:         build.Nonce,
		Brief:         build.Brief,
		Checks:        checks,
		Attachments:   attachments,
		EvaluationURL: build.EvaluationURL,
		Status:        string(build.Status),
		Result:        result,
		Attempts:      build.Attempts,
		LastError: sql.NullString{
			String: build.LastError,
			Valid:  build.LastError != "",
		},
		CreatedAt: build.CreatedAt,
		UpdatedAt: sql.NullTime{
			Time:  build.UpdatedAt,
			Valid: !build.UpdatedAt.IsZero(),
		},
		DeletedAt: sql.NullTime{
			Time:  build.DeletedAt,
			Valid: !build.DeletedAt.IsZero(),
		},
	}

	return nil
}

func domainBuildsToPg(builds []domain.Build) ([]PgBuild, error) {
	out := make([]PgBuild, len(builds))
	for i := range out {
		if err := out[i].FromDomain(builds[i]); err != nil {
			return nil, err
		}
	}

	return out, nil
}

func pgBuildsToDomain(builds []PgBuild) ([]domain.Build, error) {
	out := make([]domain.Build, 0, len(builds))
	for _, build := range builds {
		d, err := build.ToDomain()
		if err != nil {
			return nil, err
		}

		out = append(out, *d)
	}

	return out, nil
}
