package v1handler

import (
	"context"
	"net/http"
	"pagesmith/pkg/domain"
	"pagesmith/pkg/logger"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TaskAttachment is the wire representation of a brief attachment.
type TaskAttachment struct {
	Name string `json:"name" required:"true" doc:"File name of the attachment"`
	URL  string `json:"url" required:"true" doc:"Source URL, possibly a data URI"`
}

// CheckResult is the wire representation of a single verification outcome.
type CheckResult struct {
	Check  string `json:"check"`
	Passed bool   `json:"passed"`
	Detail string `json:"detail,omitempty"`
}

// BuildResult is the wire representation of a build outcome.
type BuildResult struct {
	RepoURL    string        `json:"repoUrl,omitempty"`
	CommitSHA  string        `json:"commitSha,omitempty"`
	PagesURL   string        `json:"pagesUrl,omitempty"`
	Checks     []CheckResult `json:"checks,omitempty"`
	NotifiedAt *time.Time    `json:"notifiedAt,omitempty"`
}

// Build is the wire representation of a build.
type Build struct {
	ID            uuid.UUID        `json:"id"`
	Task          string           `json:"task"`
	Round         int              `json:"round"`
	Email         string           `json:"email,omitempty"`
	Nonce         string           `json:"nonce,omitempty"`
	Brief         string           `json:"brief,omitempty"`
	Checks        []string         `json:"checks,omitempty"`
	Attachments   []TaskAttachment `json:"attachments,omitempty"`
	EvaluationURL string           `json:"evaluation_url,omitempty"`
	Status        string           `json:"status" enum:"PENDING,COMPLETED,FAILED"`
	Result        BuildResult      `json:"result"`
	Attempts      int              `json:"attempts"`
	CreatedAt     time.Time        `json:"createdAt"`
	UpdatedAt     *time.Time       `json:"updatedAt,omitempty"`
}

// DomainBuildResultToV1 converts a domain build result to its wire
// representation.
func DomainBuildResultToV1(in *domain.BuildResult) *BuildResult {
	out := BuildResult{
		RepoURL:    in.RepoURL,
		CommitSHA:  in.CommitSHA,
		PagesURL:   in.PagesURL,
		NotifiedAt: in.NotifiedAt,
	}

	for _, check := range in.Checks {
		out.Checks = append(out.Checks, CheckResult{
			Check:  check.Check,
			Passed: check.Passed,
			Detail: check.Detail,
		})
	}

	return &out
}

// DomainBuildToV1 converts a domain build to its wire representation.
func DomainBuildToV1(in *domain.Build) *Build {
	var updatedAt *time.Time
	if !in.UpdatedAt.IsZero() {
		t := in.UpdatedAt

		updatedAt = &t
	}

	var attachments []TaskAttachment
	for _, a := range in.Attachments {
		attachments = append(attachments, TaskAttachment{Name: a.Name, URL: a.URL})
	}

	return &Build{
		ID:            uuid.UUID(in.ID),
		Task:          in.Task,
		Round:         in.Round,
		Email:         in.Email,
		Nonce:         in.Nonce,
		Brief:         in.Brief,
		Checks:        in.Checks,
		Attachments:   attachments,
		EvaluationURL: in.EvaluationURL,
		Status:        string(in.Status),
		Result:        *DomainBuildResultToV1(&in.Result),
		Attempts:      int(in.Attempts), //nolint: gosec
		CreatedAt:     in.CreatedAt,
		UpdatedAt:     updatedAt,
	}
}

// RegisterBuilds attaches the operator endpoints for inspecting and removing
// builds. All of them require a valid bearer token.
func (h *Handler) RegisterBuilds(api huma.API, sec *SecHandler) {
	security := []map[string][]string{{"bearer": {}}}
	middlewares := huma.Middlewares{sec.Middleware(api)}

	type listBuildsInput struct {
		Status string `query:"status" enum:"PENDING,COMPLETED,FAILED" required:"false" doc:"Only return builds in this state"`
		Cursor string `query:"cursor" required:"false" doc:"Opaque cursor returned by a previous page"`
		Limit  int    `query:"limit" default:"20" minimum:"1" maximum:"100"`
	}
	type listBuildsOutput struct {
		Body struct {
			Items      []Build `json:"items"`
			NextCursor string  `json:"nextCursor,omitempty"`
		}
	}

	huma.Register(api, huma.Operation{
		OperationID: "list-builds",
		Method:      http.MethodGet,
		Path:        "/v1/builds",
		Summary:     "List builds",
		Tags:        []string{"Builds"},
		Security:    security,
		Middlewares: middlewares,
	}, func(ctx context.Context, input *listBuildsInput) (*listBuildsOutput, error) {
		builds, nextCursor, err := h.deps.Builder.Builds(ctx,
			domain.BuildStatus(input.Status),
			input.Cursor,
			uint(input.Limit)) //nolint: gosec
		if err != nil {
			return nil, mapErr(ctx, err)
		}

		out := &listBuildsOutput{}
		out.Body.Items = make([]Build, 0, len(builds))
		for i := range builds {
			out.Body.Items = append(out.Body.Items, *DomainBuildToV1(&builds[i]))
		}
		out.Body.NextCursor = nextCursor

		return out, nil
	})

	type buildIDInput struct {
		ID uuid.UUID `path:"id"`
	}
	type buildOutput struct {
		Body Build
	}

	huma.Register(api, huma.Operation{
		OperationID: "get-build",
		Method:      http.MethodGet,
		Path:        "/v1/builds/{id}",
		Summary:     "Get a build by ID",
		Tags:        []string{"Builds"},
		Security:    security,
		Middlewares: middlewares,
	}, func(ctx context.Context, input *buildIDInput) (*buildOutput, error) {
		build, err := h.deps.Builder.Result(ctx, domain.BuildID(input.ID))
		if err != nil {
			return nil, mapErr(ctx, err)
		}

		out := &buildOutput{}
		out.Body = *DomainBuildToV1(build)

		return out, nil
	})

	huma.Register(api, huma.Operation{
		OperationID:   "delete-build",
		Method:        http.MethodDelete,
		Path:          "/v1/builds/{id}",
		Summary:       "Delete a build",
		Tags:          []string{"Builds"},
		Security:      security,
		Middlewares:   middlewares,
		DefaultStatus: http.StatusNoContent,
	}, func(ctx context.Context, input *buildIDInput) (*struct{}, error) {
		if err := h.deps.Builder.Delete(ctx, domain.BuildID(input.ID)); err != nil {
			return nil, mapErr(ctx, err)
		}

		logger.Info(ctx, "build deleted",
			zap.String("buildID", input.ID.String()),
			zap.String("userID", uuid.UUID(GetUserIDFromContext(ctx)).String()))

		return &struct{}{}, nil
	})
}
