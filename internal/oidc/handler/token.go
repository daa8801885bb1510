package handler

import (
	"net/http"
	"strings"

	"oidcore/internal/oidc/clientauth"
	"oidcore/internal/oidc/models"
	"oidcore/internal/platform/middleware"
	"oidcore/pkg/platform/httputil"
)

var errInvalidRequest = httputil.ErrorResponse{Error: "invalid_request"}

func (h *Handler) handleToken(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)
	httputil.NoStore(w)

	if err := r.ParseForm(); err != nil {
		h.logger.WarnContext(ctx, "malformed token request", "error", err, "request_id", requestID)
		httputil.WriteJSON(w, http.StatusBadRequest, errInvalidRequest)
		return
	}
	form := r.PostForm

	client, err := h.clients.Authenticate(ctx, clientauth.Request{
		AuthorizationHeader: r.Header.Get("Authorization"),
		ClientID:            form.Get("client_id"),
		ClientSecret:        form.Get("client_secret"),
		ClientAssertion:     form.Get("client_assertion"),
		ClientAssertionType: form.Get("client_assertion_type"),
	})
	if err != nil {
		if strings.HasPrefix(r.Header.Get("Authorization"), "Basic ") {
			w.Header().Set("WWW-Authenticate", `Basic realm="oidc"`)
		}
		httputil.WriteJSON(w, http.StatusUnauthorized, httputil.ErrorResponse{Error: "invalid_client"})
		return
	}

	if form.Get("grant_type") != models.GrantTypeAuthorizationCode {
		h.logger.WarnContext(ctx, "unsupported grant type",
			"grant_type", form.Get("grant_type"),
			"client_id", client.ID,
			"request_id", requestID,
		)
		httputil.WriteJSON(w, http.StatusBadRequest, errInvalidRequest)
		return
	}
	if id := form.Get("client_id"); id != "" && id != client.ID {
		h.logger.WarnContext(ctx, "client_id does not match authenticated client",
			"client_id", client.ID,
			"request_id", requestID,
		)
		httputil.WriteJSON(w, http.StatusBadRequest, errInvalidRequest)
		return
	}

	resp, err := h.service.ExchangeCode(ctx, models.ExchangeRequest{
		Code:        form.Get("code"),
		RedirectURI: form.Get("redirect_uri"),
		ClientID:    client.ID,
	})
	if err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, errInvalidRequest)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}
