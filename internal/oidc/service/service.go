// Package service implements the provider's flow controllers: beginning and
// completing authentication, completing authorization, exchanging codes for
// tokens, and resolving user info. It is transport-agnostic; every browser
// step returns a *models.Redirect for the caller to issue.
package service

import (
	"context"
	"errors"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	jwttoken "oidcore/internal/jwt_token"
	"oidcore/internal/oidc/codegen"
	"oidcore/internal/oidc/models"
	"oidcore/internal/oidc/tokenhash"
	"oidcore/internal/platform/metrics"
	"oidcore/pkg/domain"
	audit "oidcore/pkg/platform/audit"
	"oidcore/pkg/requestcontext"
)

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks ClientLookup,UserInfoLookup,AuthenticationRequestStore,AuthorizationRequestStore,AuthorizationCodeStore,ConsentStore,AuditPublisher

// ClientLookup resolves registered clients; unknown ids yield sentinel.ErrNotFound.
type ClientLookup interface {
	GetClient(ctx context.Context, clientID string) (*models.Client, error)
}

// UserInfoLookup returns the claims released for subject under scope.
type UserInfoLookup interface {
	GetUserInfo(ctx context.Context, subject string, scope []string) (map[string]any, error)
}

type AuthenticationRequestStore interface {
	Save(ctx context.Context, req *models.AuthenticationRequest) (domain.AuthenticationRequestID, error)
	Load(ctx context.Context, id domain.AuthenticationRequestID) (*models.AuthenticationRequest, error)
}

type AuthorizationRequestStore interface {
	Save(ctx context.Context, req *models.AuthorizationRequest) (domain.AuthorizationRequestID, error)
	Load(ctx context.Context, id domain.AuthorizationRequestID) (*models.AuthorizationRequest, error)
	// MarkCompleted records that artifacts were issued for id. A second call
	// fails with sentinel.ErrConflict.
	MarkCompleted(ctx context.Context, id domain.AuthorizationRequestID) error
}

// AuthorizationCodeStore binds codes to authorization requests.
//
// Save fails with sentinel.ErrConflict when the code exists. Revoke must be
// atomic: of any number of concurrent calls for one code, exactly one
// succeeds and the rest see sentinel.ErrNotFound.
type AuthorizationCodeStore interface {
	Save(ctx context.Context, code string, authorizationRequestID domain.AuthorizationRequestID) error
	Load(ctx context.Context, code string) (domain.AuthorizationRequestID, error)
	Revoke(ctx context.Context, code string) error
}

// ConsentStore records per (client, scope item, subject) grants. Grant is
// additive; IsGiven is true only when every scope item is granted.
type ConsentStore interface {
	IsGiven(ctx context.Context, subject string, scope []string, clientID string) (bool, error)
	Grant(ctx context.Context, subject string, scope []string, clientID string) error
	Revoke(ctx context.Context, subject string, scope []string, clientID string) error
}

type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// Stores bundles the persistence collaborators.
type Stores struct {
	Clients                ClientLookup
	UserInfo               UserInfoLookup
	AuthenticationRequests AuthenticationRequestStore
	AuthorizationRequests  AuthorizationRequestStore
	Codes                  AuthorizationCodeStore
	Consents               ConsentStore
}

type Config struct {
	// Host is the issuer and the base of the login and consent URLs.
	Host            string
	LoginPage       string
	ConsentPage     string
	CodeLength      int
	CodeMaxAttempts int
}

type Service struct {
	stores  Stores
	tokens  *jwttoken.JWTService
	hasher  *tokenhash.Hasher
	codes   *codegen.Generator
	cfg     Config
	logger  *slog.Logger
	metrics *metrics.Metrics
	auditor AuditPublisher
	tracer  trace.Tracer
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

func WithAuditPublisher(p AuditPublisher) Option {
	return func(s *Service) { s.auditor = p }
}

func WithTracer(t trace.Tracer) Option {
	return func(s *Service) { s.tracer = t }
}

func New(stores Stores, tokens *jwttoken.JWTService, hasher *tokenhash.Hasher, cfg Config, opts ...Option) (*Service, error) {
	switch {
	case stores.Clients == nil, stores.UserInfo == nil, stores.AuthenticationRequests == nil,
		stores.AuthorizationRequests == nil, stores.Codes == nil, stores.Consents == nil:
		return nil, errors.New("all stores are required")
	case tokens == nil || hasher == nil:
		return nil, errors.New("token service and hasher are required")
	case cfg.Host == "":
		return nil, errors.New("host is required")
	}

	s := &Service{
		stores: stores,
		tokens: tokens,
		hasher: hasher,
		cfg:    cfg,
		logger: slog.Default(),
		tracer: otel.Tracer("oidcore/internal/oidc/service"),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.codes = codegen.New(stores.Codes,
		codegen.WithLength(cfg.CodeLength),
		codegen.WithMaxAttempts(cfg.CodeMaxAttempts),
		codegen.WithCollisionObserver(s.metrics),
	)
	return s, nil
}

func (s *Service) emit(ctx context.Context, action audit.AuditEvent, event audit.Event) {
	if s.auditor == nil {
		return
	}
	event.Action = string(action)
	event.Category = action.Category()
	event.Timestamp = requestcontext.Now(ctx)
	event.RequestID = requestcontext.RequestID(ctx)
	event.IP = requestcontext.ClientIP(ctx)
	if err := s.auditor.Emit(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "failed to emit audit event",
			"action", event.Action,
			"error", err,
			"request_id", event.RequestID,
		)
	}
}
