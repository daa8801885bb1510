package testutil

import (
	"net/http"
	"time"

	"oidcore/internal/platform/middleware"
	"oidcore/pkg/requestcontext"
)

// WithBearerClaims adds validated access token claims to the request context,
// as RequireBearer would.
func WithBearerClaims(req *http.Request, subject, clientID string, scope ...string) *http.Request {
	ctx := middleware.WithTokenClaims(req.Context(), &middleware.TokenClaims{
		Subject:  subject,
		ClientID: clientID,
		Scope:    scope,
	})
	return req.WithContext(ctx)
}

// WithTime pins the request-scoped clock.
func WithTime(req *http.Request, t time.Time) *http.Request {
	return req.WithContext(requestcontext.WithTime(req.Context(), t))
}
