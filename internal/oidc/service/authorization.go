package service

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"oidcore/internal/oidc/flow"
	"oidcore/internal/oidc/models"
	"oidcore/pkg/domain"
	dErrors "oidcore/pkg/domain-errors"
	audit "oidcore/pkg/platform/audit"
	"oidcore/pkg/platform/sentinel"
	"oidcore/pkg/requestcontext"
)

// CompleteAuthorization is the consent surface's handoff back into the flow.
// On success it issues the artifacts the response_type asks for and returns
// the client redirect carrying them in the fragment.
func (s *Service) CompleteAuthorization(ctx context.Context, id domain.AuthorizationRequestID, isConsentGiven, isSilent bool) (*models.Redirect, error) {
	ctx, span := s.tracer.Start(ctx, "oidc.CompleteAuthorization", trace.WithAttributes(
		attribute.String("authorization_request_id", id.String()),
		attribute.Bool("silent", isSilent),
	))
	defer span.End()

	authz, err := s.stores.AuthorizationRequests.Load(ctx, id)
	if err != nil {
		return nil, loadError(err, "authorization request")
	}
	req, err := s.stores.AuthenticationRequests.Load(ctx, authz.AuthenticationRequestID)
	if err != nil {
		return nil, loadError(err, "authentication request")
	}
	client, err := s.stores.Clients.GetClient(ctx, req.ClientID)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to load client", "error", err, "client_id", req.ClientID)
		return s.errorRedirect(ctx, req.RedirectURI, req.State, dErrors.CodeInternal, ""), nil
	}

	if !isConsentGiven {
		s.emit(ctx, audit.EventConsentDenied, audit.Event{ClientID: client.ID, Subject: authz.Subject})
		return s.errorRedirect(ctx, req.RedirectURI, req.State, dErrors.CodeConsentRequired, ""), nil
	}
	if isSilent && req.HasPrompt(models.PromptConsent) {
		return s.errorRedirect(ctx, req.RedirectURI, req.State, dErrors.CodeConsentRequired, ""), nil
	}

	if err := s.stores.AuthorizationRequests.MarkCompleted(ctx, id); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			s.logger.WarnContext(ctx, "authorization request already completed",
				"authorization_request_id", id.String(),
				"client_id", client.ID,
			)
			return s.errorRedirect(ctx, req.RedirectURI, req.State, dErrors.CodeInvalidRequest, "authorization request already completed"), nil
		}
		s.logger.ErrorContext(ctx, "failed to mark authorization request completed", "error", err, "client_id", client.ID)
		return s.errorRedirect(ctx, req.RedirectURI, req.State, dErrors.CodeInternal, ""), nil
	}

	if err := s.stores.Consents.Grant(ctx, authz.Subject, req.Scope, client.ID); err != nil {
		s.logger.ErrorContext(ctx, "failed to record consent", "error", err, "client_id", client.ID)
		return s.errorRedirect(ctx, req.RedirectURI, req.State, dErrors.CodeInternal, ""), nil
	}
	s.emit(ctx, audit.EventConsentGranted, audit.Event{ClientID: client.ID, Subject: authz.Subject})

	kind, ok := flow.Classify(req.ResponseTypes)
	if !ok {
		return s.errorRedirect(ctx, req.RedirectURI, req.State, dErrors.CodeInvalidRequest, "unsupported response_type"), nil
	}
	span.SetAttributes(attribute.String("flow", string(kind)))
	plan := flow.PlanFor(req.ResponseTypes)

	payload := models.TokenPayload{
		Subject:  authz.Subject,
		Scope:    req.Scope,
		AuthTime: req.AuthTime,
		Nonce:    req.Nonce,
	}
	f := &fragment{}
	f.add("state", req.State)

	if plan.Code {
		code, err := s.codes.Issue(ctx, id)
		if err != nil {
			s.logger.ErrorContext(ctx, "failed to issue authorization code", "error", err, "client_id", client.ID)
			return s.errorRedirect(ctx, req.RedirectURI, req.State, dErrors.CodeInternal, ""), nil
		}
		payload.CHash = s.hasher.HalfHash(code)
		f.add("code", code)
		s.emit(ctx, audit.EventCodeIssued, audit.Event{ClientID: client.ID, Subject: authz.Subject})
	}
	if plan.AccessToken {
		accessToken, err := s.tokens.SignAccessToken(ctx, client, payload)
		if err != nil {
			s.logger.ErrorContext(ctx, "failed to sign access token", "error", err, "client_id", client.ID)
			return s.errorRedirect(ctx, req.RedirectURI, req.State, dErrors.CodeInternal, ""), nil
		}
		payload.AtHash = s.hasher.HalfHash(accessToken)
		f.add("access_token", accessToken)
		f.add("expires_in", expiresIn(s.tokens.AccessTokenTTL().Seconds()))
		f.add("token_type", models.TokenTypeBearer)
		s.metrics.IncrementTokenIssued("access_token", "authorize")
	}
	if plan.IDToken {
		idToken, err := s.tokens.SignIDToken(ctx, client, payload)
		if err != nil {
			s.logger.ErrorContext(ctx, "failed to sign id token", "error", err, "client_id", client.ID)
			return s.errorRedirect(ctx, req.RedirectURI, req.State, dErrors.CodeInternal, ""), nil
		}
		f.add("id_token", idToken)
		s.metrics.IncrementTokenIssued("id_token", "authorize")
	}
	if plan.AccessToken || plan.IDToken {
		s.emit(ctx, audit.EventTokenIssued, audit.Event{ClientID: client.ID, Subject: authz.Subject, Decision: string(kind)})
	}

	s.logger.InfoContext(ctx, "authorization completed",
		"client_id", client.ID,
		"flow", string(kind),
		"request_id", requestcontext.RequestID(ctx),
	)
	return s.successRedirect(req.RedirectURI, f), nil
}
