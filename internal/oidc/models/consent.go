package models

// ConsentRecord grants one scope item to one client on behalf of one subject.
// Grants are additive; consent for a request is given when every requested
// scope item has a record.
type ConsentRecord struct {
	ClientID  string `json:"client_id"`
	ScopeItem string `json:"scope_item"`
	Subject   string `json:"sub"`
	Granted   bool   `json:"granted"`
}
