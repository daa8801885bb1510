package handler

import (
	"net/http"

	"oidcore/internal/oidc/models"
	"oidcore/internal/platform/middleware"
	"oidcore/pkg/domain"
	"oidcore/pkg/platform/httputil"
)

// handleAuthorize accepts the authentication request as a query string (GET)
// or form body (POST).
func (h *Handler) handleAuthorize(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	values := r.URL.Query()
	if r.Method == http.MethodPost {
		if err := r.ParseForm(); err != nil {
			h.logger.WarnContext(ctx, "malformed authorize form",
				"error", err,
				"request_id", middleware.GetRequestID(ctx),
			)
			httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
				Error:            "invalid_request",
				ErrorDescription: "malformed form body",
			})
			return
		}
		values = r.PostForm
	}

	req, err := models.ParseAuthenticationRequest(values)
	if err != nil {
		h.logger.WarnContext(ctx, "invalid authentication request",
			"error", err,
			"client_id", values.Get("client_id"),
			"request_id", middleware.GetRequestID(ctx),
		)
		httputil.WriteError(w, err)
		return
	}

	redirect, err := h.service.BeginAuthentication(ctx, req)
	h.writeRedirect(w, r, redirect, err)
}

// Authenticated resumes the flow once the login surface has identified (or
// failed to identify) the user.
func (h *Handler) Authenticated(w http.ResponseWriter, r *http.Request, id domain.AuthenticationRequestID, subject string, ok bool) {
	redirect, err := h.service.CompleteAuthentication(r.Context(), id, subject, ok, false)
	h.writeRedirect(w, r, redirect, err)
}

// Authorized resumes the flow once the consent surface has a decision.
func (h *Handler) Authorized(w http.ResponseWriter, r *http.Request, id domain.AuthorizationRequestID, allow bool) {
	redirect, err := h.service.CompleteAuthorization(r.Context(), id, allow, false)
	h.writeRedirect(w, r, redirect, err)
}
