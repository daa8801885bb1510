package audit

import (
	"context"
	"time"
)

// EventCategory classifies audit events for retention and routing.
type EventCategory string

const (
	// CategoryCompliance covers consent changes, which must be kept.
	CategoryCompliance EventCategory = "compliance"
	// CategorySecurity covers failed logins and client authentication failures.
	CategorySecurity EventCategory = "security"
	// CategoryOperations covers routine issuance and access.
	CategoryOperations EventCategory = "operations"
)

// Event is emitted from the flow services. It never carries codes, tokens
// or secrets.
type Event struct {
	Category  EventCategory `json:"category"`
	Timestamp time.Time     `json:"timestamp"`
	Subject   string        `json:"sub,omitempty"`
	ClientID  string        `json:"client_id,omitempty"`
	Action    string        `json:"action"`
	Decision  string        `json:"decision,omitempty"`
	Reason    string        `json:"reason,omitempty"`
	IP        string        `json:"ip,omitempty"`
	RequestID string        `json:"request_id,omitempty"`
}

type AuditEvent string

const (
	EventAuthenticationCompleted AuditEvent = "authentication_completed"
	EventAuthenticationFailed    AuditEvent = "authentication_failed"
	EventConsentGranted          AuditEvent = "consent_granted"
	EventConsentDenied           AuditEvent = "consent_denied"
	EventCodeIssued              AuditEvent = "authorization_code_issued"
	EventTokenIssued             AuditEvent = "token_issued"
	EventTokenExchangeFailed     AuditEvent = "token_exchange_failed"
	EventClientAuthFailed        AuditEvent = "client_auth_failed"
	EventUserInfoAccessed        AuditEvent = "userinfo_accessed"
)

var eventCategories = map[AuditEvent]EventCategory{
	EventConsentGranted: CategoryCompliance,
	EventConsentDenied:  CategoryCompliance,

	EventAuthenticationFailed: CategorySecurity,
	EventTokenExchangeFailed:  CategorySecurity,
	EventClientAuthFailed:     CategorySecurity,

	EventAuthenticationCompleted: CategoryOperations,
	EventCodeIssued:              CategoryOperations,
	EventTokenIssued:             CategoryOperations,
	EventUserInfoAccessed:        CategoryOperations,
}

// Category returns the EventCategory for this audit event.
// Unknown events default to CategoryOperations.
func (e AuditEvent) Category() EventCategory {
	if cat, ok := eventCategories[e]; ok {
		return cat
	}
	return CategoryOperations
}

// Store persists events.
type Store interface {
	Append(ctx context.Context, event Event) error
}

// Emitter is what services depend on.
type Emitter interface {
	Emit(ctx context.Context, event Event) error
}
