// Package domain holds typed identifiers shared across the provider.
//
// Authentication and authorization requests are both referenced by opaque
// UUIDs that travel through the login and consent surfaces. Distinct types
// keep one from being resolved against the other's store.
package domain

import (
	"strings"

	"github.com/google/uuid"

	dErrors "oidcore/pkg/domain-errors"
)

type (
	AuthenticationRequestID uuid.UUID
	AuthorizationRequestID  uuid.UUID
)

// maxIDLength bounds input before it reaches the UUID parser.
const maxIDLength = 64

func NewAuthenticationRequestID() AuthenticationRequestID {
	return AuthenticationRequestID(uuid.New())
}

func NewAuthorizationRequestID() AuthorizationRequestID {
	return AuthorizationRequestID(uuid.New())
}

// ParseAuthenticationRequestID validates an id received from the login surface.
func ParseAuthenticationRequestID(s string) (AuthenticationRequestID, error) {
	u, err := parseUUID(s, "authentication request id")
	return AuthenticationRequestID(u), err
}

// ParseAuthorizationRequestID validates an id received from the consent surface.
func ParseAuthorizationRequestID(s string) (AuthorizationRequestID, error) {
	u, err := parseUUID(s, "authorization request id")
	return AuthorizationRequestID(u), err
}

func (id AuthenticationRequestID) String() string { return uuid.UUID(id).String() }
func (id AuthorizationRequestID) String() string  { return uuid.UUID(id).String() }

func (id AuthenticationRequestID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }
func (id AuthorizationRequestID) IsNil() bool  { return uuid.UUID(id) == uuid.Nil }

func parseUUID(s, label string) (uuid.UUID, error) {
	if strings.TrimSpace(s) == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, label+" is required")
	}
	if len(s) > maxIDLength {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, label+" is too long")
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.Wrap(err, dErrors.CodeInvalidInput, "invalid "+label)
	}
	if u == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, label+" must not be nil")
	}
	return u, nil
}

func (id AuthenticationRequestID) MarshalText() ([]byte, error) {
	return uuid.UUID(id).MarshalText()
}

func (id *AuthenticationRequestID) UnmarshalText(b []byte) error {
	return (*uuid.UUID)(id).UnmarshalText(b)
}

func (id AuthorizationRequestID) MarshalText() ([]byte, error) {
	return uuid.UUID(id).MarshalText()
}

func (id *AuthorizationRequestID) UnmarshalText(b []byte) error {
	return (*uuid.UUID)(id).UnmarshalText(b)
}
