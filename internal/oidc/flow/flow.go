// Package flow maps a response_type set onto an OIDC response flow and the
// artifacts that flow emits.
package flow

import (
	"slices"

	"oidcore/internal/oidc/models"
)

// Classify selects the flow for a response_type set.
//
//	{code}                      -> authorization_code
//	{code, id_token|token...}   -> hybrid
//	{id_token}, {id_token token} -> implicit
//	{token}                     -> hybrid
//
// A lone token is classified as hybrid rather than rejected; callers relying
// on the OAuth 2.0 implicit grant get an access token in the fragment.
// ok is false for an empty or unrecognised set.
func Classify(types []models.ResponseType) (models.Flow, bool) {
	hasCode := slices.Contains(types, models.ResponseTypeCode)
	hasIDToken := slices.Contains(types, models.ResponseTypeIDToken)
	hasToken := slices.Contains(types, models.ResponseTypeToken)

	switch {
	case hasCode && !hasIDToken && !hasToken:
		return models.FlowAuthorizationCode, true
	case hasCode:
		return models.FlowHybrid, true
	case hasIDToken:
		return models.FlowImplicit, true
	case hasToken:
		return models.FlowHybrid, true
	default:
		return "", false
	}
}

// Plan lists the artifacts to emit. Generation order is fixed: the code
// first, then the access token, then the ID token, because each later
// artifact may carry a hash of an earlier one.
type Plan struct {
	Code        bool
	AccessToken bool
	IDToken     bool
}

// PlanFor derives the artifact plan for a response_type set.
func PlanFor(types []models.ResponseType) Plan {
	return Plan{
		Code:        slices.Contains(types, models.ResponseTypeCode),
		AccessToken: slices.Contains(types, models.ResponseTypeToken),
		IDToken:     slices.Contains(types, models.ResponseTypeIDToken),
	}
}
