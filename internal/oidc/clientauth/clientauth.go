// Package clientauth authenticates confidential clients at the token endpoint.
//
// Three credential shapes are accepted, checked in this order:
//
//	client_secret_basic  Authorization: Basic base64(client_id:client_secret)
//	client_secret_post   client_id and client_secret in the form body
//	client_secret_jwt    client_assertion signed with the client secret
//
// Every failure is reported as ErrAuthenticationFailed so callers cannot
// distinguish an unknown client from a wrong secret.
package clientauth

import (
	"context"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"oidcore/internal/oidc/models"
	"oidcore/pkg/requestcontext"
)

// AssertionTypeJWTBearer is the only client_assertion_type accepted.
const AssertionTypeJWTBearer = "urn:ietf:params:oauth:client-assertion-type:jwt-bearer"

var ErrAuthenticationFailed = errors.New("client authentication failed")

type Method string

const (
	MethodBasic Method = "client_secret_basic"
	MethodPost  Method = "client_secret_post"
	MethodJWT   Method = "client_secret_jwt"
)

// Request holds the raw credential material from a token request.
type Request struct {
	AuthorizationHeader string
	ClientID            string
	ClientSecret        string
	ClientAssertion     string
	ClientAssertionType string
}

// Credential is one of basicCredential, postCredential or assertionCredential.
type Credential interface {
	Method() Method
}

type basicCredential struct {
	clientID string
	secret   string
}

type postCredential struct {
	clientID string
	secret   string
}

type assertionCredential struct {
	assertion string
	// clientID is the optional body client_id; when present it must match iss.
	clientID string
}

func (basicCredential) Method() Method     { return MethodBasic }
func (postCredential) Method() Method      { return MethodPost }
func (assertionCredential) Method() Method { return MethodJWT }

// Extract selects the credential variant by request shape. A malformed Basic
// header fails rather than falling through; other schemes are ignored.
func Extract(req Request) (Credential, error) {
	if strings.HasPrefix(req.AuthorizationHeader, "Basic ") {
		return parseBasic(req.AuthorizationHeader)
	}
	if req.ClientID != "" && req.ClientSecret != "" {
		return postCredential{clientID: req.ClientID, secret: req.ClientSecret}, nil
	}
	if req.ClientAssertion != "" || req.ClientAssertionType != "" {
		if req.ClientAssertionType != AssertionTypeJWTBearer {
			return nil, fmt.Errorf("%w: unsupported client_assertion_type", ErrAuthenticationFailed)
		}
		if req.ClientAssertion == "" {
			return nil, fmt.Errorf("%w: empty client_assertion", ErrAuthenticationFailed)
		}
		return assertionCredential{assertion: req.ClientAssertion, clientID: req.ClientID}, nil
	}
	return nil, fmt.Errorf("%w: no client credentials", ErrAuthenticationFailed)
}

func parseBasic(header string) (Credential, error) {
	encoded, ok := strings.CutPrefix(header, "Basic ")
	if !ok {
		return nil, fmt.Errorf("%w: unsupported authorization scheme", ErrAuthenticationFailed)
	}
	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(encoded))
	if err != nil {
		return nil, fmt.Errorf("%w: malformed basic credentials", ErrAuthenticationFailed)
	}
	parts := strings.Split(string(raw), ":")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return nil, fmt.Errorf("%w: malformed basic credentials", ErrAuthenticationFailed)
	}
	return basicCredential{clientID: parts[0], secret: parts[1]}, nil
}

// ClientLookup resolves registered clients. It returns sentinel.ErrNotFound
// for unknown ids.
type ClientLookup interface {
	GetClient(ctx context.Context, clientID string) (*models.Client, error)
}

// FailureObserver counts failed authentications by method.
type FailureObserver interface {
	IncrementClientAuthFailures(method string)
}

type Authenticator struct {
	clients  ClientLookup
	audience string
	logger   *slog.Logger
	observer FailureObserver
}

type Option func(*Authenticator)

func WithLogger(logger *slog.Logger) Option {
	return func(a *Authenticator) { a.logger = logger }
}

func WithFailureObserver(o FailureObserver) Option {
	return func(a *Authenticator) { a.observer = o }
}

// New returns an Authenticator. audience is the value client assertions
// must carry in aud, normally the provider host.
func New(clients ClientLookup, audience string, opts ...Option) *Authenticator {
	a := &Authenticator{
		clients:  clients,
		audience: audience,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Authenticate returns the authenticated client or ErrAuthenticationFailed.
func (a *Authenticator) Authenticate(ctx context.Context, req Request) (*models.Client, error) {
	cred, err := Extract(req)
	if err != nil {
		return nil, a.fail(ctx, "none", err)
	}

	var client *models.Client
	switch c := cred.(type) {
	case basicCredential:
		client, err = a.checkSecret(ctx, c.clientID, c.secret)
	case postCredential:
		client, err = a.checkSecret(ctx, c.clientID, c.secret)
	case assertionCredential:
		client, err = a.checkAssertion(ctx, c)
	default:
		err = fmt.Errorf("%w: unknown credential", ErrAuthenticationFailed)
	}
	if err != nil {
		return nil, a.fail(ctx, string(cred.Method()), err)
	}
	return client, nil
}

func (a *Authenticator) checkSecret(ctx context.Context, clientID, secret string) (*models.Client, error) {
	client, err := a.clients.GetClient(ctx, clientID)
	if err != nil {
		return nil, fmt.Errorf("%w: lookup client: %w", ErrAuthenticationFailed, err)
	}
	if subtle.ConstantTimeCompare([]byte(client.Secret), []byte(secret)) != 1 {
		return nil, fmt.Errorf("%w: secret mismatch", ErrAuthenticationFailed)
	}
	return client, nil
}

func (a *Authenticator) checkAssertion(ctx context.Context, c assertionCredential) (*models.Client, error) {
	unverified := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(c.assertion, unverified); err != nil {
		return nil, fmt.Errorf("%w: malformed assertion", ErrAuthenticationFailed)
	}
	clientID := unverified.Issuer
	if clientID == "" || unverified.Subject != clientID {
		return nil, fmt.Errorf("%w: assertion iss and sub must name the client", ErrAuthenticationFailed)
	}
	if c.clientID != "" && c.clientID != clientID {
		return nil, fmt.Errorf("%w: client_id does not match assertion", ErrAuthenticationFailed)
	}

	client, err := a.clients.GetClient(ctx, clientID)
	if err != nil {
		return nil, fmt.Errorf("%w: lookup client: %w", ErrAuthenticationFailed, err)
	}

	_, err = jwt.ParseWithClaims(c.assertion, &jwt.RegisteredClaims{}, func(*jwt.Token) (any, error) {
		return []byte(client.Secret), nil
	},
		jwt.WithValidMethods([]string{"HS256", "HS384", "HS512"}),
		jwt.WithIssuer(clientID),
		jwt.WithSubject(clientID),
		jwt.WithAudience(a.audience),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(func() time.Time { return requestcontext.Now(ctx) }),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: assertion rejected: %w", ErrAuthenticationFailed, err)
	}
	return client, nil
}

func (a *Authenticator) fail(ctx context.Context, method string, err error) error {
	a.logger.WarnContext(ctx, "client authentication failed",
		"method", method,
		"reason", err.Error(),
		"request_id", requestcontext.RequestID(ctx),
	)
	if a.observer != nil {
		a.observer.IncrementClientAuthFailures(method)
	}
	if !errors.Is(err, ErrAuthenticationFailed) {
		return fmt.Errorf("%w: %w", ErrAuthenticationFailed, err)
	}
	return err
}
