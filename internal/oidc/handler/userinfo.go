package handler

import (
	"net/http"

	"oidcore/internal/platform/middleware"
	dErrors "oidcore/pkg/domain-errors"
	"oidcore/pkg/platform/httputil"
)

func (h *Handler) handleUserInfo(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	claims := middleware.GetTokenClaims(ctx)
	if claims == nil {
		// RequireBearer guarantees claims; reaching here is a wiring bug.
		h.logger.ErrorContext(ctx, "token claims missing from context despite bearer middleware",
			"request_id", middleware.GetRequestID(ctx),
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeInternal, "authentication context error"))
		return
	}

	info, err := h.service.UserInfo(ctx, claims.Subject, claims.ClientID, claims.Scope)
	if err != nil {
		if dErrors.Is(err, dErrors.CodeUnauthorized) {
			w.Header().Set("WWW-Authenticate", `Bearer error="insufficient_scope"`)
		}
		httputil.WriteError(w, err)
		return
	}
	w.Header().Set("Cache-Control", "no-store")
	httputil.WriteJSON(w, http.StatusOK, info)
}
