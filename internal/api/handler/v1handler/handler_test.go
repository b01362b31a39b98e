package v1handler_test

import (
	"crypto/rsa"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"pagesmith/internal/api/handler/v1handler"
	"testing"
	"time"

	"pagesmith/pkg/logger"
	"pagesmith/pkg/serrors"

	mockbuilder "pagesmith/internal/builder/mock"

	"go.uber.org/mock/gomock"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

const testHookSecret = "hook-secret"

func TestMain(m *testing.M) {
	// Initialize logger to avoid nil pointer deref during tests
	logger.Setup(logger.DevelopmentEnvironment)
	m.Run()
}

// testAPI bundles a router with all v1 operations registered against a mocked
// builder, plus the private key matching the security handler's public key.
type testAPI struct {
	builder *mockbuilder.MockBuilder
	priv    *rsa.PrivateKey
	router  *chi.Mux
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	ctrl := gomock.NewController(t)
	m := mockbuilder.NewMockBuilder(ctrl)

	priv, pubPEM := genRSAKeys(t)
	sec := newSecHandlerForTest(t, pubPEM)

	router := chi.NewMux()
	cfg := huma.DefaultConfig("Pagesmith API", "test")
	cfg.DocsPath = ""
	api := humachi.New(router, cfg)
	v1handler.New(v1handler.Deps{Builder: m}, &v1handler.Options{HookSecret: testHookSecret}).Register(api, sec)

	return &testAPI{builder: m, priv: priv, router: router}
}

func (ta *testAPI) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	ta.router.ServeHTTP(rec, req)

	return rec
}

// bearer returns an Authorization header value with a freshly signed token.
func (ta *testAPI) bearer(t *testing.T) string {
	t.Helper()
	now := time.Now()

	return "Bearer " + signJWTRS256(t, ta.priv, uuid.NewString(), now, now.Add(time.Hour))
}

// errorBody is the subset of the problem+json envelope the tests care about.
type errorBody struct {
	Status int    `json:"status"`
	Detail string `json:"detail"`
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errorBody {
	t.Helper()
	var body errorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	return body
}

func getBuild(ta *testAPI, t *testing.T, id uuid.UUID) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/v1/builds/"+id.String(), nil)
	req.Header.Set("Authorization", ta.bearer(t))

	return ta.do(req)
}

func TestErrorMapping_InternalOnPlainError(t *testing.T) {
	ta := newTestAPI(t)

	id := uuid.New()
	ta.builder.EXPECT().Result(gomock.Any(), gomock.Any()).Return(nil, errors.New("boom"))

	rec := getBuild(ta, t, id)
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decodeError(t, rec)
	// the cause must not leak to the client
	require.Equal(t, "internal error", body.Detail)
}

func TestErrorMapping_KindSentinelDirect_NotFound(t *testing.T) {
	ta := newTestAPI(t)

	id := uuid.New()
	// pass the kind sentinel directly
	ta.builder.EXPECT().Result(gomock.Any(), gomock.Any()).Return(nil, serrors.ErrNotFound)

	rec := getBuild(ta, t, id)
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "resource not found", decodeError(t, rec).Detail)
}

func TestErrorMapping_SemanticWithMessage_BadRequest(t *testing.T) {
	ta := newTestAPI(t)

	id := uuid.New()
	err := serrors.With(serrors.ErrBadRequest, "invalid cursor")
	ta.builder.EXPECT().Result(gomock.Any(), gomock.Any()).Return(nil, err)

	rec := getBuild(ta, t, id)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "invalid cursor", decodeError(t, rec).Detail)
}

func TestErrorMapping_SemanticWrap_Conflict(t *testing.T) {
	ta := newTestAPI(t)

	id := uuid.New()
	cause := errors.New("no pending build")
	ta.builder.EXPECT().Result(gomock.Any(), gomock.Any()).
		Return(nil, serrors.Wrap(serrors.ErrConflict, cause, "already published"))

	rec := getBuild(ta, t, id)
	require.Equal(t, http.StatusConflict, rec.Code)
	body := decodeError(t, rec)
	// should include the provided message, not the cause
	require.Equal(t, "already published", body.Detail)
}

func TestErrorMapping_InternalKind_GeneratesInternal(t *testing.T) {
	ta := newTestAPI(t)

	id := uuid.New()
	ta.builder.EXPECT().Result(gomock.Any(), gomock.Any()).
		Return(nil, serrors.KindOnly(serrors.ErrInternal))

	rec := getBuild(ta, t, id)
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Equal(t, "internal error", decodeError(t, rec).Detail)
}
