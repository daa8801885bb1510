// Package interaction serves minimal login and consent pages for local
// development. Production deployments replace it with their own surfaces and
// call the same handoff methods.
package interaction

import (
	"context"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"oidcore/internal/platform/middleware"
	"oidcore/pkg/domain"
	"oidcore/pkg/platform/httputil"
	"oidcore/pkg/platform/middleware/requesttime"
)

// Authenticator verifies user credentials and returns the subject.
type Authenticator interface {
	Authenticate(ctx context.Context, username, password string) (string, error)
}

// Handoff resumes the provider flow after an interaction.
type Handoff interface {
	Authenticated(w http.ResponseWriter, r *http.Request, id domain.AuthenticationRequestID, subject string, ok bool)
	Authorized(w http.ResponseWriter, r *http.Request, id domain.AuthorizationRequestID, allow bool)
}

var pages = template.Must(template.New("login").Parse(`<!doctype html>
<title>Sign in</title>
<form method="post" action="{{.Action}}">
<input type="hidden" name="authenticationRequestId" value="{{.ID}}">
<label>Username <input name="username" autocomplete="username"></label>
<label>Password <input name="password" type="password" autocomplete="current-password"></label>
<button type="submit">Sign in</button>
</form>
`))

func init() {
	template.Must(pages.New("consent").Parse(`<!doctype html>
<title>Allow access</title>
<form method="post" action="{{.Action}}">
<input type="hidden" name="authorizationRequestId" value="{{.ID}}">
<p>The application is requesting access to your account.</p>
<button type="submit" name="allow" value="true">Allow</button>
<button type="submit" name="allow" value="false">Deny</button>
</form>
`))
}

type Handler struct {
	users   Authenticator
	handoff Handoff
	logger  *slog.Logger
	// loginPath and consentPath are the paths pages post back to.
	loginPath   string
	consentPath string
}

func New(users Authenticator, handoff Handoff, loginPath, consentPath string, logger *slog.Logger) *Handler {
	return &Handler{
		users:       users,
		handoff:     handoff,
		logger:      logger,
		loginPath:   loginPath,
		consentPath: consentPath,
	}
}

// Register mounts the pages at their configured paths on r.
func (h *Handler) Register(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequestID)
		r.Use(requesttime.Middleware)
		r.Get(h.loginPath, h.handleLoginPage)
		r.Post(h.loginPath, h.handleLogin)
		r.Get(h.consentPath, h.handleConsentPage)
		r.Post(h.consentPath, h.handleConsent)
	})
}

type pageData struct {
	Action string
	ID     string
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, name string, data pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	if err := pages.ExecuteTemplate(w, name, data); err != nil {
		h.logger.ErrorContext(r.Context(), "failed to render page", "page", name, "error", err)
	}
}

func (h *Handler) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	id, err := domain.ParseAuthenticationRequestID(r.URL.Query().Get("authenticationRequestId"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	h.render(w, r, "login", pageData{Action: h.loginPath, ID: id.String()})
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := r.ParseForm(); err != nil {
		http.Error(w, "malformed form", http.StatusBadRequest)
		return
	}
	id, err := domain.ParseAuthenticationRequestID(r.PostForm.Get("authenticationRequestId"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	subject, err := h.users.Authenticate(ctx, r.PostForm.Get("username"), r.PostForm.Get("password"))
	if err != nil {
		h.logger.InfoContext(ctx, "login failed",
			"authentication_request_id", id.String(),
			"request_id", middleware.GetRequestID(ctx),
		)
		h.handoff.Authenticated(w, r, id, "", false)
		return
	}
	h.handoff.Authenticated(w, r, id, subject, true)
}

func (h *Handler) handleConsentPage(w http.ResponseWriter, r *http.Request) {
	id, err := domain.ParseAuthorizationRequestID(r.URL.Query().Get("authorizationRequestId"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	h.render(w, r, "consent", pageData{Action: h.consentPath, ID: id.String()})
}

func (h *Handler) handleConsent(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "malformed form", http.StatusBadRequest)
		return
	}
	id, err := domain.ParseAuthorizationRequestID(r.PostForm.Get("authorizationRequestId"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	h.handoff.Authorized(w, r, id, r.PostForm.Get("allow") == "true")
}
