package models

// TokenPayload carries the protocol claims for an issued token. Registered
// claims (iss, aud, exp, iat, jti) are added by the issuer.
type TokenPayload struct {
	Subject  string
	Scope    []string
	AuthTime int64
	Nonce    string
	CHash    string
	AtHash   string
}

// ExchangeRequest is a /token request after client authentication.
type ExchangeRequest struct {
	Code        string
	RedirectURI string
	ClientID    string
}

// TokenResponse is the /token success body.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
	IDToken     string `json:"id_token"`
}

const TokenTypeBearer = "Bearer"

// GrantTypeAuthorizationCode is the only grant the token endpoint serves.
const GrantTypeAuthorizationCode = "authorization_code"
