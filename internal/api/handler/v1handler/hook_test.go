package v1handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"pagesmith/pkg/domain"
	"pagesmith/pkg/serrors"

	"go.uber.org/mock/gomock"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func postTask(ta *testAPI, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	return ta.do(req)
}

func taskBody(secret string) string {
	return `{
		"email": "solver@example.com",
		"secret": "` + secret + `",
		"task": "Captcha-Solver",
		"round": 2,
		"nonce": "nonce-1",
		"brief": "Create a captcha solver demo page",
		"checks": ["Repo has MIT license"],
		"evaluation_url": "https://evaluator.example.com/notify",
		"attachments": [{"name": "sample.png", "url": "data:image/png;base64,aGk="}]
	}`
}

func TestHook_SubmitTask_Accepted(t *testing.T) {
	ta := newTestAPI(t)

	id := uuid.New()
	ta.builder.EXPECT().Submit(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ any, build domain.Build) (*domain.Build, error) {
			require.Equal(t, "Captcha-Solver", build.Task)
			require.Equal(t, 2, build.Round)
			require.Equal(t, "solver@example.com", build.Email)
			require.Equal(t, "nonce-1", build.Nonce)
			require.Equal(t, "Create a captcha solver demo page", build.Brief)
			require.Equal(t, []string{"Repo has MIT license"}, build.Checks)
			require.Len(t, build.Attachments, 1)
			require.Equal(t, "sample.png", build.Attachments[0].Name)
			require.Equal(t, "https://evaluator.example.com/notify", build.EvaluationURL)

			stored := build
			stored.ID = domain.BuildID(id)
			stored.Task = "captcha-solver"
			stored.Status = domain.BuildStatusPending
			stored.CreatedAt = time.Now()

			return &stored, nil
		})

	rec := postTask(ta, taskBody(testHookSecret))
	require.Equal(t, http.StatusAccepted, rec.Code)

	var body struct {
		ID     uuid.UUID `json:"id"`
		Task   string    `json:"task"`
		Round  int       `json:"round"`
		Status string    `json:"status"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, id, body.ID)
	require.Equal(t, "captcha-solver", body.Task)
	require.Equal(t, 2, body.Round)
	require.Equal(t, string(domain.BuildStatusPending), body.Status)
}

func TestHook_SubmitTask_InvalidSecret(t *testing.T) {
	ta := newTestAPI(t)

	// no Submit expectation; the request must be rejected before reaching the builder
	rec := postTask(ta, taskBody("wrong-secret"))
	require.Equal(t, http.StatusForbidden, rec.Code)
	require.Equal(t, "invalid secret", decodeError(t, rec).Detail)
}

func TestHook_SubmitTask_MissingBrief(t *testing.T) {
	ta := newTestAPI(t)

	rec := postTask(ta, `{
		"email": "solver@example.com",
		"secret": "`+testHookSecret+`",
		"task": "captcha-solver",
		"nonce": "nonce-1",
		"evaluation_url": "https://evaluator.example.com/notify"
	}`)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestHook_SubmitTask_DefaultRound(t *testing.T) {
	ta := newTestAPI(t)

	ta.builder.EXPECT().Submit(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ any, build domain.Build) (*domain.Build, error) {
			// round omitted in the payload falls back to 1
			require.Equal(t, 1, build.Round)

			stored := build
			stored.ID = domain.BuildID(uuid.New())
			stored.Status = domain.BuildStatusPending

			return &stored, nil
		})

	rec := postTask(ta, `{
		"email": "solver@example.com",
		"secret": "`+testHookSecret+`",
		"task": "captcha-solver",
		"nonce": "nonce-1",
		"brief": "Create a captcha solver demo page",
		"evaluation_url": "https://evaluator.example.com/notify"
	}`)
	require.Equal(t, http.StatusAccepted, rec.Code)
}

func TestHook_SubmitTask_InvalidTask(t *testing.T) {
	ta := newTestAPI(t)

	ta.builder.EXPECT().Submit(gomock.Any(), gomock.Any()).
		Return(nil, serrors.With(serrors.ErrBadRequest, "invalid task"))

	rec := postTask(ta, taskBody(testHookSecret))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "invalid task", decodeError(t, rec).Detail)
}
