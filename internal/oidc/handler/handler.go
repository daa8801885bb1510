// Package handler exposes the provider's protocol endpoints over HTTP and the
// handoff entry points used by the login and consent surfaces.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	jwttoken "oidcore/internal/jwt_token"
	"oidcore/internal/oidc/clientauth"
	"oidcore/internal/oidc/models"
	"oidcore/internal/platform/metrics"
	"oidcore/internal/platform/middleware"
	"oidcore/pkg/domain"
	dErrors "oidcore/pkg/domain-errors"
	"oidcore/pkg/platform/httputil"
	"oidcore/pkg/platform/middleware/metadata"
	"oidcore/pkg/platform/middleware/requesttime"
)

// Service is the flow controller surface the handler drives.
type Service interface {
	BeginAuthentication(ctx context.Context, req *models.AuthenticationRequest) (*models.Redirect, error)
	CompleteAuthentication(ctx context.Context, id domain.AuthenticationRequestID, subject string, isUserAuthenticated, isSilent bool) (*models.Redirect, error)
	CompleteAuthorization(ctx context.Context, id domain.AuthorizationRequestID, isConsentGiven, isSilent bool) (*models.Redirect, error)
	ExchangeCode(ctx context.Context, req models.ExchangeRequest) (*models.TokenResponse, error)
	UserInfo(ctx context.Context, subject, clientID string, scope []string) (map[string]any, error)
}

type ClientAuthenticator interface {
	Authenticate(ctx context.Context, req clientauth.Request) (*models.Client, error)
}

type AccessTokenVerifier interface {
	VerifyAccessToken(ctx context.Context, token string) (*jwttoken.Claims, error)
}

// Handler serves /authorize, /token and /userinfo.
type Handler struct {
	service Service
	clients ClientAuthenticator
	tokens  AccessTokenVerifier
	logger  *slog.Logger
	metrics *metrics.Metrics
	limiter *middleware.IPRateLimiter
}

type Option func(*Handler)

// WithTokenRateLimiter applies a per-IP limit to /token.
func WithTokenRateLimiter(l *middleware.IPRateLimiter) Option {
	return func(h *Handler) { h.limiter = l }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(h *Handler) { h.metrics = m }
}

func New(service Service, clients ClientAuthenticator, tokens AccessTokenVerifier, logger *slog.Logger, opts ...Option) *Handler {
	h := &Handler{
		service: service,
		clients: clients,
		tokens:  tokens,
		logger:  logger,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Register mounts the protocol routes on r. Callers mount r under the
// configured path prefix.
func (h *Handler) Register(r chi.Router) {
	oidcRouter := chi.NewRouter()
	oidcRouter.Use(middleware.Recovery(h.logger))
	oidcRouter.Use(middleware.RequestID)
	oidcRouter.Use(middleware.Logger(h.logger))
	oidcRouter.Use(chimw.Timeout(30 * time.Second))
	oidcRouter.Use(requesttime.Middleware)
	oidcRouter.Use(metadata.ClientMetadata)
	oidcRouter.Use(middleware.LatencyMiddleware(h.metrics))

	oidcRouter.Get("/authorize", h.handleAuthorize)
	oidcRouter.Post("/authorize", h.handleAuthorize)

	oidcRouter.Group(func(r chi.Router) {
		if h.limiter != nil {
			r.Use(middleware.RateLimit(h.limiter, h.metrics, h.logger))
		}
		r.Post("/token", h.handleToken)
	})

	oidcRouter.Group(func(r chi.Router) {
		r.Use(middleware.RequireBearer(h, h.logger))
		r.Get("/userinfo", h.handleUserInfo)
		r.Post("/userinfo", h.handleUserInfo)
	})

	r.Mount("/", oidcRouter)
}

// ValidateAccessToken adapts the token issuer to the bearer middleware.
func (h *Handler) ValidateAccessToken(ctx context.Context, token string) (*middleware.TokenClaims, error) {
	claims, err := h.tokens.VerifyAccessToken(ctx, token)
	if err != nil {
		return nil, err
	}
	tc := &middleware.TokenClaims{
		Subject: claims.Subject,
		Scope:   claims.ScopeList(),
	}
	if len(claims.Audience) > 0 {
		tc.ClientID = claims.Audience[0]
	}
	return tc, nil
}

func (h *Handler) writeRedirect(w http.ResponseWriter, r *http.Request, redirect *models.Redirect, err error) {
	if err != nil {
		if dErrors.CodeOf(err) == dErrors.CodeInternal {
			h.logger.ErrorContext(r.Context(), "authorization flow failed",
				"error", err,
				"request_id", middleware.GetRequestID(r.Context()),
			)
		}
		httputil.WriteError(w, err)
		return
	}
	w.Header().Set("Cache-Control", "no-store")
	http.Redirect(w, r, redirect.Location, http.StatusFound)
}
