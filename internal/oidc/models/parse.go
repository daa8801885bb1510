package models

import (
	"net/url"
	"slices"
	"strconv"

	"github.com/asaskevich/govalidator"

	dErrors "oidcore/pkg/domain-errors"
	"oidcore/pkg/platform/strings"
)

var validDisplays = []string{DisplayPage, DisplayPopup, DisplayTouch, DisplayWap}

// ParseAuthenticationRequest reads and validates /authorize parameters from a
// query string or form body. Space-delimited parameters may also arrive as
// repeated values; both forms are flattened and deduped in order.
//
// AuthTime is left zero; the authentication flow stamps it.
func ParseAuthenticationRequest(values url.Values) (*AuthenticationRequest, error) {
	req := &AuthenticationRequest{
		Scope:        strings.SplitSpaceDelimited(values["scope"]...),
		ClientID:     values.Get("client_id"),
		RedirectURI:  values.Get("redirect_uri"),
		State:        values.Get("state"),
		ResponseMode: values.Get("response_mode"),
		Nonce:        values.Get("nonce"),
		Display:      values.Get("display"),
		UILocales:    strings.SplitSpaceDelimited(values["ui_locales"]...),
		IDTokenHint:  values.Get("id_token_hint"),
		LoginHint:    values.Get("login_hint"),
		ACRValues:    strings.SplitSpaceDelimited(values["acr_values"]...),
	}
	for _, rt := range strings.SplitSpaceDelimited(values["response_type"]...) {
		req.ResponseTypes = append(req.ResponseTypes, ResponseType(rt))
	}
	for _, p := range strings.SplitSpaceDelimited(values["prompt"]...) {
		req.Prompt = append(req.Prompt, Prompt(p))
	}
	if raw, ok := values["max_age"]; ok && len(raw) > 0 {
		if !govalidator.IsInt(raw[0]) {
			return nil, dErrors.New(dErrors.CodeInvalidRequest, "max_age must be an integer")
		}
		maxAge, err := strconv.ParseInt(raw[0], 10, 64)
		if err != nil || maxAge < 0 {
			return nil, dErrors.New(dErrors.CodeInvalidRequest, "max_age must be a non-negative integer")
		}
		req.MaxAge = &maxAge
	}

	if err := req.Validate(); err != nil {
		return nil, err
	}
	return req, nil
}

// Validate enforces the authorization endpoint's parameter rules.
func (r *AuthenticationRequest) Validate() error {
	if !r.HasOpenIDScope() {
		return dErrors.New(dErrors.CodeInvalidRequest, "scope must include openid")
	}
	if len(r.ResponseTypes) == 0 {
		return dErrors.New(dErrors.CodeInvalidRequest, "response_type is required")
	}
	for _, rt := range r.ResponseTypes {
		if !rt.IsValid() {
			return dErrors.New(dErrors.CodeInvalidRequest, "unsupported response_type: "+string(rt))
		}
	}
	if !govalidator.StringLength(r.ClientID, "1", "255") {
		return dErrors.New(dErrors.CodeInvalidRequest, "client_id is required")
	}
	if !govalidator.StringLength(r.RedirectURI, "1", "2048") {
		return dErrors.New(dErrors.CodeInvalidRequest, "redirect_uri is required")
	}
	// nonce binds implicit/hybrid ID tokens that never pass through the token endpoint
	if r.HasResponseType(ResponseTypeIDToken) && !r.HasResponseType(ResponseTypeCode) && r.Nonce == "" {
		return dErrors.New(dErrors.CodeInvalidRequest, "nonce is required when requesting id_token without code")
	}
	if r.Display != "" && !slices.Contains(validDisplays, r.Display) {
		return dErrors.New(dErrors.CodeInvalidRequest, "unsupported display: "+r.Display)
	}
	for _, p := range r.Prompt {
		if !p.IsValid() {
			return dErrors.New(dErrors.CodeInvalidRequest, "unsupported prompt: "+string(p))
		}
	}
	if r.MaxAge != nil && *r.MaxAge < 0 {
		return dErrors.New(dErrors.CodeInvalidRequest, "max_age must be a non-negative integer")
	}
	return nil
}
