package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"oidcore/pkg/platform/httputil"
)

// AccessTokenValidator verifies bearer access tokens.
type AccessTokenValidator interface {
	ValidateAccessToken(ctx context.Context, token string) (*TokenClaims, error)
}

// TokenClaims are the access token claims handlers need.
type TokenClaims struct {
	Subject  string
	Scope    []string
	ClientID string
}

type contextKeyTokenClaims struct{}

// GetTokenClaims retrieves the verified access token claims from the context.
func GetTokenClaims(ctx context.Context) *TokenClaims {
	claims, _ := ctx.Value(contextKeyTokenClaims{}).(*TokenClaims)
	return claims
}

// WithTokenClaims injects claims; used by tests that skip RequireBearer.
func WithTokenClaims(ctx context.Context, claims *TokenClaims) context.Context {
	return context.WithValue(ctx, contextKeyTokenClaims{}, claims)
}

// RequireBearer rejects requests without a valid bearer access token with a
// 401 and a WWW-Authenticate challenge.
func RequireBearer(validator AccessTokenValidator, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			token, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				logger.WarnContext(ctx, "unauthorized access - missing token",
					"request_id", GetRequestID(ctx),
				)
				unauthorized(w, `Bearer`, "Missing or invalid Authorization header")
				return
			}

			claims, err := validator.ValidateAccessToken(ctx, token)
			if err != nil {
				logger.WarnContext(ctx, "unauthorized access - invalid token",
					"error", err,
					"request_id", GetRequestID(ctx),
				)
				unauthorized(w, `Bearer error="invalid_token"`, "Invalid or expired token")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithTokenClaims(ctx, claims)))
		})
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func unauthorized(w http.ResponseWriter, challenge, description string) {
	w.Header().Set("WWW-Authenticate", challenge)
	httputil.WriteJSON(w, http.StatusUnauthorized, httputil.ErrorResponse{
		Error:            "invalid_token",
		ErrorDescription: description,
	})
}
