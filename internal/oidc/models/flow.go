package models

// Flow is the OAuth/OIDC response flow selected by the response_type set.
type Flow string

const (
	FlowAuthorizationCode Flow = "authorization_code"
	FlowImplicit          Flow = "implicit"
	FlowHybrid            Flow = "hybrid"
)
