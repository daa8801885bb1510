package models

import dErrors "oidcore/pkg/domain-errors"

// RedirectKind classifies the browser redirect produced by a flow step.
type RedirectKind string

const (
	RedirectLogin   RedirectKind = "login"
	RedirectConsent RedirectKind = "consent"
	RedirectSuccess RedirectKind = "success"
	RedirectError   RedirectKind = "error"
)

// Redirect is the outcome of an authentication or authorization step. The
// transport turns it into a 302.
type Redirect struct {
	Kind     RedirectKind
	Location string
	// Error is set when Kind is RedirectError.
	Error dErrors.Code
}
