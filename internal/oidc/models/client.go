package models

// Client is a registered relying party.
//
// Secret doubles as the HMAC key for the client's ID tokens and
// client_assertion JWTs, so it is held in plaintext by the client registry.
type Client struct {
	ID           string   `json:"id"`
	Secret       string   `json:"-"`
	RedirectURIs []string `json:"redirect_uris"`
}

// HasRedirectURI reports whether uri is registered for the client. Matching is exact.
func (c *Client) HasRedirectURI(uri string) bool {
	for _, registered := range c.RedirectURIs {
		if registered == uri {
			return true
		}
	}
	return false
}
