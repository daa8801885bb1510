package service

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"oidcore/internal/oidc/models"
	"oidcore/pkg/domain"
	dErrors "oidcore/pkg/domain-errors"
	audit "oidcore/pkg/platform/audit"
	"oidcore/pkg/platform/sentinel"
	"oidcore/pkg/requestcontext"
)

// BeginAuthentication handles a validated /authorize request. It returns an
// error only while the redirect URI is still untrusted and the failure is
// not one the protocol reports by redirect.
func (s *Service) BeginAuthentication(ctx context.Context, req *models.AuthenticationRequest) (*models.Redirect, error) {
	ctx, span := s.tracer.Start(ctx, "oidc.BeginAuthentication", trace.WithAttributes(
		attribute.String("client_id", req.ClientID),
	))
	defer span.End()

	client, err := s.stores.Clients.GetClient(ctx, req.ClientID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			s.logger.WarnContext(ctx, "authentication request for unknown client", "client_id", req.ClientID)
			return s.errorRedirect(ctx, req.RedirectURI, req.State, dErrors.CodeInvalidRequest, ""), nil
		}
		span.RecordError(err)
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load client")
	}
	if !client.HasRedirectURI(req.RedirectURI) {
		s.logger.WarnContext(ctx, "redirect uri not registered for client",
			"client_id", client.ID,
			"redirect_uri", req.RedirectURI,
		)
		return s.errorRedirect(ctx, req.RedirectURI, req.State, dErrors.CodeInvalidRequestURI, ""), nil
	}

	now := requestcontext.Now(ctx)
	req.AuthTime = now.Unix()
	id, err := s.stores.AuthenticationRequests.Save(ctx, req)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to save authentication request", "error", err, "client_id", client.ID)
		return s.errorRedirect(ctx, req.RedirectURI, req.State, dErrors.CodeInternal, ""), nil
	}
	span.SetAttributes(attribute.String("authentication_request_id", id.String()))

	if !req.HasPrompt(models.PromptNone) {
		return s.loginRedirect(id), nil
	}

	// Silent authentication: only an id_token_hint can stand in for the user.
	if len(req.Prompt) > 1 {
		return s.errorRedirect(ctx, req.RedirectURI, req.State, dErrors.CodeInvalidRequest, "prompt none cannot be combined with other values"), nil
	}
	if req.IDTokenHint == "" {
		return s.errorRedirect(ctx, req.RedirectURI, req.State, dErrors.CodeInteractionRequired, ""), nil
	}
	hint, err := s.tokens.VerifyIDToken(ctx, req.IDTokenHint, client)
	if err != nil {
		s.logger.WarnContext(ctx, "id_token_hint rejected", "error", err, "client_id", client.ID)
		return s.errorRedirect(ctx, req.RedirectURI, req.State, dErrors.CodeLoginRequired, ""), nil
	}
	if req.MaxAge != nil && now.Unix() > hint.AuthTime+*req.MaxAge {
		return s.errorRedirect(ctx, req.RedirectURI, req.State, dErrors.CodeLoginRequired, "authentication is older than max_age"), nil
	}
	return s.CompleteAuthentication(ctx, id, hint.Subject, true, true)
}

// CompleteAuthentication is the login surface's handoff back into the flow.
// isSilent is true when no user interaction took place.
func (s *Service) CompleteAuthentication(ctx context.Context, id domain.AuthenticationRequestID, subject string, isUserAuthenticated, isSilent bool) (*models.Redirect, error) {
	ctx, span := s.tracer.Start(ctx, "oidc.CompleteAuthentication", trace.WithAttributes(
		attribute.String("authentication_request_id", id.String()),
		attribute.Bool("silent", isSilent),
	))
	defer span.End()

	req, err := s.stores.AuthenticationRequests.Load(ctx, id)
	if err != nil {
		return nil, loadError(err, "authentication request")
	}

	if !isUserAuthenticated || subject == "" {
		s.emit(ctx, audit.EventAuthenticationFailed, audit.Event{ClientID: req.ClientID, Subject: subject, Reason: "not_authenticated"})
		return s.errorRedirect(ctx, req.RedirectURI, req.State, dErrors.CodeLoginRequired, ""), nil
	}
	if isSilent && req.HasPrompt(models.PromptLogin) {
		return s.errorRedirect(ctx, req.RedirectURI, req.State, dErrors.CodeLoginRequired, ""), nil
	}

	if req.IDTokenHint != "" {
		client, err := s.stores.Clients.GetClient(ctx, req.ClientID)
		if err != nil {
			s.logger.ErrorContext(ctx, "failed to load client", "error", err, "client_id", req.ClientID)
			return s.errorRedirect(ctx, req.RedirectURI, req.State, dErrors.CodeInternal, ""), nil
		}
		hint, err := s.tokens.VerifyIDToken(ctx, req.IDTokenHint, client)
		if err != nil {
			s.logger.WarnContext(ctx, "id_token_hint rejected", "error", err, "client_id", req.ClientID)
			return s.errorRedirect(ctx, req.RedirectURI, req.State, dErrors.CodeInvalidRequest, "invalid id_token"), nil
		}
		if hint.Subject != subject {
			s.emit(ctx, audit.EventAuthenticationFailed, audit.Event{ClientID: req.ClientID, Subject: subject, Reason: "subject_mismatch"})
			return s.errorRedirect(ctx, req.RedirectURI, req.State, dErrors.CodeLoginRequired, "user logged in as different id from the id_token"), nil
		}
	}

	authzID, err := s.stores.AuthorizationRequests.Save(ctx, &models.AuthorizationRequest{
		AuthenticationRequestID: id,
		Subject:                 subject,
	})
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to save authorization request", "error", err)
		return s.errorRedirect(ctx, req.RedirectURI, req.State, dErrors.CodeInternal, ""), nil
	}
	s.emit(ctx, audit.EventAuthenticationCompleted, audit.Event{ClientID: req.ClientID, Subject: subject})

	if req.HasPrompt(models.PromptConsent) {
		return s.consentRedirect(authzID), nil
	}

	given, err := s.stores.Consents.IsGiven(ctx, subject, req.Scope, req.ClientID)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to check consent", "error", err, "client_id", req.ClientID)
		return s.errorRedirect(ctx, req.RedirectURI, req.State, dErrors.CodeInternal, ""), nil
	}
	if given {
		return s.CompleteAuthorization(ctx, authzID, true, true)
	}
	return s.consentRedirect(authzID), nil
}

func loadError(err error, what string) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.Wrap(err, dErrors.CodeNotFound, what+" not found")
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load "+what)
}
