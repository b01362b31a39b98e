package v1handler

import (
	"context"
	"crypto/rsa"
	"fmt"
	"net/http"
	"pagesmith/internal/config"
	"pagesmith/pkg/domain"
	"pagesmith/pkg/logger"
	"pagesmith/pkg/serrors"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CtxKey is the type of the context keys set by the v1 handlers.
type CtxKey string

// UserIDKey is the context key the authenticated user ID is stored under.
const UserIDKey CtxKey = "userID"

// SecHandlerOptions configures the security handler guarding the operator
// endpoints.
type SecHandlerOptions struct {
	// PublicKey is the PEM encoded RSA public key used to verify bearer tokens.
	PublicKey string
}

// NewSecHandlerOptions creates security handler options from the given app config.
func NewSecHandlerOptions(cfg *config.Config) *SecHandlerOptions {
	return &SecHandlerOptions{
		PublicKey: cfg.JWT.PublicKey,
	}
}

// SecHandler verifies RS256 bearer tokens and resolves the authenticated user.
type SecHandler struct {
	publicKey *rsa.PublicKey
}

func NewSecHandler(options *SecHandlerOptions) (*SecHandler, error) {
	key, err := jwt.ParseRSAPublicKeyFromPEM([]byte(options.PublicKey))
	if err != nil {
		return nil, fmt.Errorf("could not parse public key: %w", err)
	}

	return &SecHandler{publicKey: key}, nil
}

// HandleBearerAuth validates the given bearer token and returns a context
// carrying the authenticated user ID. The token must be signed with RS256 by
// the configured key pair and carry a UUID subject.
func (s SecHandler) HandleBearerAuth(ctx context.Context, token string) (context.Context, error) {
	claims := jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return s.publicKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}))
	if err != nil {
		return ctx, serrors.Wrap(serrors.ErrUnauthorized, err, "invalid token")
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return ctx, serrors.Wrap(serrors.ErrUnauthorized, err, "invalid subject")
	}

	return context.WithValue(ctx, UserIDKey, domain.UserID(userID)), nil
}

// Middleware returns a huma middleware enforcing bearer auth on the wrapped
// operations.
func (s *SecHandler) Middleware(api huma.API) func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		token, found := strings.CutPrefix(ctx.Header("Authorization"), "Bearer ")
		if !found || token == "" {
			_ = huma.WriteErr(api, ctx, http.StatusUnauthorized, "missing bearer token")

			return
		}

		authed, err := s.HandleBearerAuth(ctx.Context(), token)
		if err != nil {
			logger.Warn(ctx.Context(), "rejected bearer token", zap.Error(err))
			_ = huma.WriteErr(api, ctx, http.StatusUnauthorized, "invalid bearer token")

			return
		}

		next(huma.WithContext(ctx, authed))
	}
}

// GetUserIDFromContext returns the user ID stored in ctx by the security
// middleware, or the zero ID when the request was not authenticated.
func GetUserIDFromContext(ctx context.Context) domain.UserID {
	if userID, ok := ctx.Value(UserIDKey).(domain.UserID); ok {
		return userID
	}

	return domain.UserID{}
}
