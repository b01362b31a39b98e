package v1handler

import (
	"context"
	"crypto/subtle"
	"net/http"
	"pagesmith/pkg/domain"
	"pagesmith/pkg/serrors"

	"github.com/danielgtaylor/huma/v2"
)

// TaskRequest is the brief envelope POSTed by the evaluation harness.
type TaskRequest struct {
	Email         string           `json:"email" format:"email" required:"true" doc:"Participant the build is attributed to"`
	Secret        string           `json:"secret" required:"true" doc:"Shared webhook secret"`
	Task          string           `json:"task" required:"true" doc:"Task slug; doubles as the repository name"`
	Round         int              `json:"round,omitempty" default:"1" minimum:"1" doc:"Delivery round, starting at 1"`
	Nonce         string           `json:"nonce" required:"true" doc:"Opaque value echoed back to the evaluator"`
	Brief         string           `json:"brief" required:"true" doc:"Description of what the page must do"`
	Checks        []string         `json:"checks,omitempty" doc:"Verification checks the evaluator will run"`
	EvaluationURL string           `json:"evaluation_url" format:"uri" required:"true" doc:"Where the completion receipt is POSTed"`
	Attachments   []TaskAttachment `json:"attachments,omitempty"`
}

// RegisterHook attaches the task webhook operation. The endpoint is not
// bearer-protected; the shared secret inside the payload authorizes the call.
func (h *Handler) RegisterHook(api huma.API) {
	type submitTaskInput struct {
		Body TaskRequest
	}
	type submitTaskOutput struct {
		Body Build
	}

	huma.Register(api, huma.Operation{
		OperationID:   "submit-task",
		Method:        http.MethodPost,
		Path:          "/",
		Summary:       "Accept a task brief and queue the site build",
		Description:   "Validates the shared secret, stores the build and schedules its publication. The completion receipt is delivered asynchronously to the evaluation URL.",
		Tags:          []string{"Hook"},
		DefaultStatus: http.StatusAccepted,
	}, func(ctx context.Context, input *submitTaskInput) (*submitTaskOutput, error) {
		if subtle.ConstantTimeCompare([]byte(input.Body.Secret), []byte(h.options.HookSecret)) != 1 {
			return nil, mapErr(ctx, serrors.With(serrors.ErrForbidden, "invalid secret"))
		}

		build, err := h.deps.Builder.Submit(ctx, domain.Build{
			Task:          input.Body.Task,
			Round:         input.Body.Round,
			Email:         input.Body.Email,
			Nonce:         input.Body.Nonce,
			Brief:         input.Body.Brief,
			Checks:        input.Body.Checks,
			Attachments:   attachmentsToDomain(input.Body.Attachments),
			EvaluationURL: input.Body.EvaluationURL,
		})
		if err != nil {
			return nil, mapErr(ctx, err)
		}

		out := &submitTaskOutput{}
		out.Body = *DomainBuildToV1(build)

		return out, nil
	})
}

func attachmentsToDomain(in []TaskAttachment) []domain.Attachment {
	if len(in) == 0 {
		return nil
	}

	out := make([]domain.Attachment, 0, len(in))
	for _, a := range in {
		out = append(out, domain.Attachment{Name: a.Name, URL: a.URL})
	}

	return out
}
