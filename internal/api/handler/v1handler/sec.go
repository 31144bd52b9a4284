package v1handler

import (
	"context"
	"crypto/rsa"
	"fmt"
	"net/http"
	"strings"

	"lunchradar/internal/config"
	"lunchradar/pkg/domain"
	"lunchradar/pkg/logger"
	"lunchradar/pkg/serrors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ctxKey is a private type for context values set by this package.
type ctxKey int

// UserIDKey is the context key under which the authenticated user ID is stored.
const UserIDKey ctxKey = iota

// SecHandlerOptions configures bearer token verification. An empty PublicKey
// disables authentication, which is intended for local development only.
type SecHandlerOptions struct {
	// PublicKey is the PEM encoded RSA public key tokens are verified against.
	PublicKey string
}

// NewSecHandlerOptions constructs SecHandlerOptions from the application config.
func NewSecHandlerOptions(cfg *config.Config) *SecHandlerOptions {
	return &SecHandlerOptions{
		PublicKey: cfg.JWT.PublicKey,
	}
}

// SecHandler verifies RS256 bearer tokens and stores the subject in the
// request context.
type SecHandler struct {
	publicKey *rsa.PublicKey
}

func NewSecHandler(opts *SecHandlerOptions) (*SecHandler, error) {
	if opts == nil || opts.PublicKey == "" {
		return &SecHandler{}, nil
	}

	key, err := jwt.ParseRSAPublicKeyFromPEM([]byte(opts.PublicKey))
	if err != nil {
		return nil, fmt.Errorf("could not parse RSA public key: %w", err)
	}

	return &SecHandler{publicKey: key}, nil
}

// VerifyToken validates the raw token and returns a context carrying the
// authenticated user ID. Any validation failure maps to ErrUnauthorized.
func (s *SecHandler) VerifyToken(ctx context.Context, raw string) (context.Context, error) {
	token, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		return s.publicKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}))
	if err != nil {
		return ctx, serrors.Wrap(serrors.ErrUnauthorized, err, "invalid token")
	}
	if !token.Valid {
		return ctx, serrors.With(serrors.ErrUnauthorized, "invalid token")
	}

	sub, err := token.Claims.GetSubject()
	if err != nil {
		return ctx, serrors.Wrap(serrors.ErrUnauthorized, err, "missing subject")
	}
	uid, err := uuid.Parse(sub)
	if err != nil {
		return ctx, serrors.Wrap(serrors.ErrUnauthorized, err, "invalid subject")
	}

	return context.WithValue(ctx, UserIDKey, domain.UserID(uid)), nil
}

// Middleware enforces bearer authentication on every request. When no public
// key is configured the request passes through unauthenticated.
func (s *SecHandler) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.publicKey == nil {
			next.ServeHTTP(w, r)

			return
		}

		auth := r.Header.Get("Authorization")
		const prefix = "Bearer "
		if !strings.HasPrefix(auth, prefix) {
			writeError(r.Context(), w, serrors.With(serrors.ErrUnauthorized, "missing bearer token"))

			return
		}

		ctx, err := s.VerifyToken(r.Context(), strings.TrimPrefix(auth, prefix))
		if err != nil {
			writeError(r.Context(), w, err)

			return
		}

		if uid, ok := ctx.Value(UserIDKey).(domain.UserID); ok {
			ctx = logger.WithFields(ctx, zap.String("userID", uid.String()))
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
