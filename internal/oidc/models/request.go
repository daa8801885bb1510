package models

import (
	"slices"

	"oidcore/pkg/domain"
)

// ResponseType is one member of the response_type set.
type ResponseType string

const (
	ResponseTypeCode    ResponseType = "code"
	ResponseTypeIDToken ResponseType = "id_token"
	ResponseTypeToken   ResponseType = "token"
)

func (r ResponseType) IsValid() bool {
	switch r {
	case ResponseTypeCode, ResponseTypeIDToken, ResponseTypeToken:
		return true
	}
	return false
}

// Prompt is one member of the prompt set.
type Prompt string

const (
	PromptNone          Prompt = "none"
	PromptLogin         Prompt = "login"
	PromptConsent       Prompt = "consent"
	PromptSelectAccount Prompt = "select_account"
)

func (p Prompt) IsValid() bool {
	switch p {
	case PromptNone, PromptLogin, PromptConsent, PromptSelectAccount:
		return true
	}
	return false
}

// Display values accepted on the authorization endpoint.
const (
	DisplayPage  = "page"
	DisplayPopup = "popup"
	DisplayTouch = "touch"
	DisplayWap   = "wap"
)

// ScopeOpenID must be present in every request handled by this provider.
const ScopeOpenID = "openid"

// AuthenticationRequest is the validated /authorize request. It is immutable
// once persisted and referenced afterwards by its AuthenticationRequestID.
type AuthenticationRequest struct {
	ResponseTypes []ResponseType `json:"response_type"`
	Scope         []string       `json:"scope"`
	ClientID      string         `json:"client_id"`
	RedirectURI   string         `json:"redirect_uri"`
	State         string         `json:"state,omitempty"`
	ResponseMode  string         `json:"response_mode,omitempty"`
	Nonce         string         `json:"nonce,omitempty"`
	Display       string         `json:"display,omitempty"`
	Prompt        []Prompt       `json:"prompt,omitempty"`
	MaxAge        *int64         `json:"max_age,omitempty"`
	UILocales     []string       `json:"ui_locales,omitempty"`
	IDTokenHint   string         `json:"id_token_hint,omitempty"`
	LoginHint     string         `json:"login_hint,omitempty"`
	ACRValues     []string       `json:"acr_values,omitempty"`
	// AuthTime is the unix time at which the request was received.
	AuthTime int64 `json:"auth_time"`
}

func (r *AuthenticationRequest) HasPrompt(p Prompt) bool {
	return slices.Contains(r.Prompt, p)
}

func (r *AuthenticationRequest) HasResponseType(t ResponseType) bool {
	return slices.Contains(r.ResponseTypes, t)
}

func (r *AuthenticationRequest) HasOpenIDScope() bool {
	return slices.Contains(r.Scope, ScopeOpenID)
}

// AuthorizationRequest binds an authenticated subject to the authentication
// request they completed login for.
type AuthorizationRequest struct {
	AuthenticationRequestID domain.AuthenticationRequestID `json:"authentication_request_id"`
	Subject                 string                         `json:"sub"`
}
