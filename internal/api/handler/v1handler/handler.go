// Package v1handler implements the v1 HTTP operations: the task webhook that
// accepts briefs from the evaluation harness and the bearer-protected build
// endpoints used by operators.
package v1handler

import (
	"context"
	"errors"
	"pagesmith/internal/builder"
	"pagesmith/internal/config"
	"pagesmith/pkg/logger"
	"pagesmith/pkg/serrors"

	"github.com/danielgtaylor/huma/v2"
)

const DefaultLimit = 20

// Deps contains the service dependencies of the v1 handlers.
type Deps struct {
	Builder builder.Builder
}

// Options represents the configuration of the v1 handlers.
type Options struct {
	// HookSecret is the shared secret task webhook submissions must present.
	HookSecret string
}

// NewOptions creates handler options from the given app config.
func NewOptions(cfg *config.Config) *Options {
	return &Options{
		HookSecret: cfg.Hook.Secret,
	}
}

type Handler struct {
	deps    Deps
	options *Options
}

func New(deps Deps, options *Options) *Handler {
	return &Handler{deps: deps, options: options}
}

// Register attaches all v1 operations to the given API. Operator endpoints
// are guarded by the provided security handler.
func (h *Handler) Register(api huma.API, sec *SecHandler) {
	h.RegisterHook(api)
	h.RegisterBuilds(api, sec)
}

// mapErr logs the given error and converts it to an HTTP error response.
// Semantic kinds map to their status codes; anything else is reported as an
// internal error without leaking the cause to the client.
func mapErr(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}

	logger.Error(ctx, err.Error())

	kind := serrors.ErrInternal
	msg := ""

	var serr *serrors.Error
	var k serrors.Kind
	switch {
	case errors.As(err, &serr) && serr.Kind() != nil:
		kind = serr.Kind()
		msg = serr.Message()
	case errors.As(err, &k):
		kind = k
	}

	switch kind {
	case serrors.ErrNotFound:
		return huma.Error404NotFound(orDefault(msg, "resource not found"))
	case serrors.ErrUnauthorized:
		return huma.Error401Unauthorized(orDefault(msg, "unauthorized"))
	case serrors.ErrForbidden:
		return huma.Error403Forbidden(orDefault(msg, "forbidden"))
	case serrors.ErrBadRequest:
		return huma.Error400BadRequest(orDefault(msg, "invalid request"))
	case serrors.ErrConflict:
		return huma.Error409Conflict(orDefault(msg, "conflict"))
	case serrors.ErrRateLimited:
		return huma.Error429TooManyRequests(orDefault(msg, "rate limited"))
	case serrors.ErrTimeout:
		return huma.Error504GatewayTimeout(orDefault(msg, "timed out"))
	case serrors.ErrUnavailable:
		return huma.Error503ServiceUnavailable(orDefault(msg, "temporarily unavailable"))
	default:
		return huma.Error500InternalServerError("internal error")
	}
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}

	return s
}
