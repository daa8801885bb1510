package service

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"oidcore/internal/oidc/models"
	dErrors "oidcore/pkg/domain-errors"
	audit "oidcore/pkg/platform/audit"
	"oidcore/pkg/requestcontext"
)

// ExchangeCode redeems an authorization code for an access token and an ID
// token. The client must already be authenticated. Every failure surfaces
// as invalid_request; the reason is only logged.
func (s *Service) ExchangeCode(ctx context.Context, req models.ExchangeRequest) (*models.TokenResponse, error) {
	start := time.Now()
	defer s.metrics.ObserveTokenExchange(start)

	ctx, span := s.tracer.Start(ctx, "oidc.ExchangeCode", trace.WithAttributes(
		attribute.String("client_id", req.ClientID),
	))
	defer span.End()

	if req.Code == "" {
		return nil, s.exchangeFailure(ctx, req, "missing code", nil)
	}
	authzID, err := s.stores.Codes.Load(ctx, req.Code)
	if err != nil {
		return nil, s.exchangeFailure(ctx, req, "unknown authorization code", err)
	}
	authz, err := s.stores.AuthorizationRequests.Load(ctx, authzID)
	if err != nil {
		return nil, s.exchangeFailure(ctx, req, "authorization request not loadable", err)
	}
	authn, err := s.stores.AuthenticationRequests.Load(ctx, authz.AuthenticationRequestID)
	if err != nil {
		return nil, s.exchangeFailure(ctx, req, "authentication request not loadable", err)
	}
	if authn.ClientID != req.ClientID {
		return nil, s.exchangeFailure(ctx, req, "code was issued to another client", nil)
	}
	if req.RedirectURI != "" && req.RedirectURI != authn.RedirectURI {
		return nil, s.exchangeFailure(ctx, req, "redirect_uri does not match", nil)
	}
	if !authn.HasOpenIDScope() {
		return nil, s.exchangeFailure(ctx, req, "openid scope missing", nil)
	}
	client, err := s.stores.Clients.GetClient(ctx, req.ClientID)
	if err != nil {
		return nil, s.exchangeFailure(ctx, req, "client not loadable", err)
	}

	// Single use: only the caller whose revoke succeeds may mint tokens.
	if err := s.stores.Codes.Revoke(ctx, req.Code); err != nil {
		return nil, s.exchangeFailure(ctx, req, "authorization code already redeemed", err)
	}

	payload := models.TokenPayload{
		Subject:  authz.Subject,
		Scope:    authn.Scope,
		AuthTime: authn.AuthTime,
		Nonce:    authn.Nonce,
		CHash:    s.hasher.HalfHash(req.Code),
	}
	accessToken, err := s.tokens.SignAccessToken(ctx, client, payload)
	if err != nil {
		return nil, s.exchangeFailure(ctx, req, "failed to sign access token", err)
	}
	payload.AtHash = s.hasher.HalfHash(accessToken)
	idToken, err := s.tokens.SignIDToken(ctx, client, payload)
	if err != nil {
		return nil, s.exchangeFailure(ctx, req, "failed to sign id token", err)
	}

	s.metrics.IncrementTokenIssued("access_token", "token")
	s.metrics.IncrementTokenIssued("id_token", "token")
	s.emit(ctx, audit.EventTokenIssued, audit.Event{ClientID: client.ID, Subject: authz.Subject, Decision: "authorization_code"})

	return &models.TokenResponse{
		AccessToken: accessToken,
		TokenType:   models.TokenTypeBearer,
		ExpiresIn:   int64(s.tokens.AccessTokenTTL().Seconds()),
		IDToken:     idToken,
	}, nil
}

func (s *Service) exchangeFailure(ctx context.Context, req models.ExchangeRequest, reason string, err error) error {
	s.metrics.IncrementTokenExchangeFailure()
	s.logger.WarnContext(ctx, "token exchange failed",
		"reason", reason,
		"error", err,
		"client_id", req.ClientID,
		"request_id", requestcontext.RequestID(ctx),
	)
	s.emit(ctx, audit.EventTokenExchangeFailed, audit.Event{ClientID: req.ClientID, Reason: reason})
	return dErrors.New(dErrors.CodeInvalidRequest, "invalid request")
}
