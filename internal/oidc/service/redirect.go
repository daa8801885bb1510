package service

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"oidcore/internal/oidc/models"
	"oidcore/pkg/domain"
	dErrors "oidcore/pkg/domain-errors"
)

var defaultDescriptions = map[dErrors.Code]string{
	dErrors.CodeInternal:                 "an error occurred within the server",
	dErrors.CodeInteractionRequired:      "unable to authenticate without user interaction",
	dErrors.CodeLoginRequired:            "user is not authenticated",
	dErrors.CodeConsentRequired:          "user did not allow permission for scope requested",
	dErrors.CodeAccountSelectionRequired: "user did not select any authenticated account",
	dErrors.CodeInvalidRequest:           "invalid request",
	dErrors.CodeInvalidRequestURI:        "request uri invalid or does not belong to client",
}

// escape matches encodeURIComponent closely enough for redirect parameters:
// spaces become %20 rather than +.
func escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// errorRedirect builds {redirectURI}?error=..&error_description=..&state=..
// An empty description falls back to the code's default text.
func (s *Service) errorRedirect(ctx context.Context, redirectURI, state string, code dErrors.Code, description string) *models.Redirect {
	if description == "" {
		description = defaultDescriptions[code]
	}

	var b strings.Builder
	b.WriteString(redirectURI)
	if strings.Contains(redirectURI, "?") {
		b.WriteByte('&')
	} else {
		b.WriteByte('?')
	}
	b.WriteString("error=")
	b.WriteString(escape(string(code)))
	if description != "" {
		b.WriteString("&error_description=")
		b.WriteString(escape(description))
	}
	if state != "" {
		b.WriteString("&state=")
		b.WriteString(escape(state))
	}

	s.metrics.IncrementAuthorizeRedirect(string(models.RedirectError), string(code))
	s.logger.InfoContext(ctx, "authorization error redirect",
		"error", string(code),
		"description", description,
	)
	return &models.Redirect{Kind: models.RedirectError, Location: b.String(), Error: code}
}

// fragment accumulates success parameters in issue order.
type fragment struct {
	parts []string
}

func (f *fragment) add(key, value string) {
	if value == "" {
		return
	}
	f.parts = append(f.parts, key+"="+escape(value))
}

func (f *fragment) String() string {
	return strings.Join(f.parts, "&")
}

func (s *Service) successRedirect(redirectURI string, f *fragment) *models.Redirect {
	s.metrics.IncrementAuthorizeRedirect(string(models.RedirectSuccess), "")
	return &models.Redirect{Kind: models.RedirectSuccess, Location: redirectURI + "#" + f.String()}
}

func (s *Service) loginRedirect(id domain.AuthenticationRequestID) *models.Redirect {
	s.metrics.IncrementAuthorizeRedirect(string(models.RedirectLogin), "")
	return &models.Redirect{
		Kind:     models.RedirectLogin,
		Location: s.cfg.Host + "/" + s.cfg.LoginPage + "?authenticationRequestId=" + id.String(),
	}
}

func (s *Service) consentRedirect(id domain.AuthorizationRequestID) *models.Redirect {
	s.metrics.IncrementAuthorizeRedirect(string(models.RedirectConsent), "")
	return &models.Redirect{
		Kind:     models.RedirectConsent,
		Location: s.cfg.Host + "/" + s.cfg.ConsentPage + "?authorizationRequestId=" + id.String(),
	}
}

func expiresIn(seconds float64) string {
	return strconv.FormatInt(int64(seconds), 10)
}
