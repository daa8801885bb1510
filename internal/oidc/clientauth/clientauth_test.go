package clientauth

import (
	"context"
	"encoding/base64"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/suite"

	"oidcore/internal/oidc/models"
	"oidcore/pkg/platform/sentinel"
	"oidcore/pkg/requestcontext"
)

const host = "https://op.example.com"

type clientMap map[string]*models.Client

func (m clientMap) GetClient(_ context.Context, id string) (*models.Client, error) {
	c, ok := m[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return c, nil
}

type failureCounter map[string]int

func (f failureCounter) IncrementClientAuthFailures(method string) { f[method]++ }

type ClientAuthSuite struct {
	suite.Suite
	ctx      context.Context
	now      time.Time
	client   *models.Client
	failures failureCounter
	auth     *Authenticator
}

func TestClientAuthSuite(t *testing.T) {
	suite.Run(t, new(ClientAuthSuite))
}

func (s *ClientAuthSuite) SetupTest() {
	s.now = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	s.ctx = requestcontext.WithTime(context.Background(), s.now)
	s.client = &models.Client{ID: "client-123", Secret: "s3cret", RedirectURIs: []string{"https://client.example.com/cb"}}
	s.failures = failureCounter{}
	s.auth = New(clientMap{s.client.ID: s.client}, host,
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		WithFailureObserver(s.failures),
	)
}

func basic(id, secret string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(id+":"+secret))
}

func (s *ClientAuthSuite) assertion(claims jwt.RegisteredClaims, secret string) string {
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	s.Require().NoError(err)
	return token
}

func (s *ClientAuthSuite) validClaims() jwt.RegisteredClaims {
	return jwt.RegisteredClaims{
		Issuer:    s.client.ID,
		Subject:   s.client.ID,
		Audience:  jwt.ClaimStrings{host},
		ExpiresAt: jwt.NewNumericDate(s.now.Add(5 * time.Minute)),
		IssuedAt:  jwt.NewNumericDate(s.now),
		ID:        "jti-1",
	}
}

func (s *ClientAuthSuite) TestBasic() {
	s.Run("valid credentials", func() {
		c, err := s.auth.Authenticate(s.ctx, Request{AuthorizationHeader: basic("client-123", "s3cret")})
		s.Require().NoError(err)
		s.Equal("client-123", c.ID)
	})

	s.Run("wrong secret", func() {
		_, err := s.auth.Authenticate(s.ctx, Request{AuthorizationHeader: basic("client-123", "nope")})
		s.ErrorIs(err, ErrAuthenticationFailed)
	})

	s.Run("unknown client", func() {
		_, err := s.auth.Authenticate(s.ctx, Request{AuthorizationHeader: basic("client-999", "s3cret")})
		s.ErrorIs(err, ErrAuthenticationFailed)
	})

	s.Run("extra colon component", func() {
		_, err := s.auth.Authenticate(s.ctx, Request{AuthorizationHeader: basic("client-123", "s3cret:extra")})
		s.ErrorIs(err, ErrAuthenticationFailed)
	})

	s.Run("not base64", func() {
		_, err := s.auth.Authenticate(s.ctx, Request{AuthorizationHeader: "Basic !!!"})
		s.ErrorIs(err, ErrAuthenticationFailed)
	})

	s.Run("malformed basic header does not fall through to body", func() {
		_, err := s.auth.Authenticate(s.ctx, Request{
			AuthorizationHeader: "Basic !!!",
			ClientID:            "client-123",
			ClientSecret:        "s3cret",
		})
		s.ErrorIs(err, ErrAuthenticationFailed)
	})

	s.Run("other scheme falls through to body credentials", func() {
		c, err := s.auth.Authenticate(s.ctx, Request{
			AuthorizationHeader: "Bearer abc",
			ClientID:            "client-123",
			ClientSecret:        "s3cret",
		})
		s.Require().NoError(err)
		s.Equal("client-123", c.ID)
	})

	s.Equal(2, s.failures[string(MethodBasic)])
	s.Equal(3, s.failures["none"])
}

func (s *ClientAuthSuite) TestPost() {
	s.Run("valid credentials", func() {
		c, err := s.auth.Authenticate(s.ctx, Request{ClientID: "client-123", ClientSecret: "s3cret"})
		s.Require().NoError(err)
		s.Equal("client-123", c.ID)
	})

	s.Run("wrong secret", func() {
		_, err := s.auth.Authenticate(s.ctx, Request{ClientID: "client-123", ClientSecret: "s3cre"})
		s.ErrorIs(err, ErrAuthenticationFailed)
	})

	s.Run("no credentials at all", func() {
		_, err := s.auth.Authenticate(s.ctx, Request{ClientID: "client-123"})
		s.ErrorIs(err, ErrAuthenticationFailed)
		s.Equal(1, s.failures["none"])
	})
}

func (s *ClientAuthSuite) TestAssertion() {
	s.Run("valid assertion", func() {
		c, err := s.auth.Authenticate(s.ctx, Request{
			ClientAssertion:     s.assertion(s.validClaims(), "s3cret"),
			ClientAssertionType: AssertionTypeJWTBearer,
		})
		s.Require().NoError(err)
		s.Equal("client-123", c.ID)
	})

	tests := []struct {
		name   string
		mutate func(*jwt.RegisteredClaims)
		secret string
		aType  string
		bodyID string
	}{
		{name: "wrong key", secret: "other"},
		{name: "sub differs from iss", mutate: func(c *jwt.RegisteredClaims) { c.Subject = "someone" }},
		{name: "wrong audience", mutate: func(c *jwt.RegisteredClaims) { c.Audience = jwt.ClaimStrings{"https://rp.example.com"} }},
		{name: "expired", mutate: func(c *jwt.RegisteredClaims) { c.ExpiresAt = jwt.NewNumericDate(s.now.Add(-time.Minute)) }},
		{name: "missing exp", mutate: func(c *jwt.RegisteredClaims) { c.ExpiresAt = nil }},
		{name: "unknown issuer", mutate: func(c *jwt.RegisteredClaims) { c.Issuer, c.Subject = "client-999", "client-999" }},
		{name: "wrong assertion type", aType: "urn:ietf:params:oauth:client-assertion-type:saml2-bearer"},
		{name: "body client_id mismatch", bodyID: "client-456"},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			claims := s.validClaims()
			if tt.mutate != nil {
				tt.mutate(&claims)
			}
			secret := "s3cret"
			if tt.secret != "" {
				secret = tt.secret
			}
			aType := AssertionTypeJWTBearer
			if tt.aType != "" {
				aType = tt.aType
			}
			_, err := s.auth.Authenticate(s.ctx, Request{
				ClientID:            tt.bodyID,
				ClientAssertion:     s.assertion(claims, secret),
				ClientAssertionType: aType,
			})
			s.ErrorIs(err, ErrAuthenticationFailed)
		})
	}

	s.Run("malformed assertion", func() {
		_, err := s.auth.Authenticate(s.ctx, Request{ClientAssertion: "not.a.jwt", ClientAssertionType: AssertionTypeJWTBearer})
		s.ErrorIs(err, ErrAuthenticationFailed)
	})
}

func (s *ClientAuthSuite) TestExtract_Order() {
	cred, err := Extract(Request{AuthorizationHeader: basic("a", "b"), ClientID: "c", ClientSecret: "d"})
	s.Require().NoError(err)
	s.Equal(MethodBasic, cred.Method())

	cred, err = Extract(Request{ClientID: "c", ClientSecret: "d", ClientAssertion: "x", ClientAssertionType: AssertionTypeJWTBearer})
	s.Require().NoError(err)
	s.Equal(MethodPost, cred.Method())

	cred, err = Extract(Request{ClientID: "c", ClientAssertion: "x", ClientAssertionType: AssertionTypeJWTBearer})
	s.Require().NoError(err)
	s.Equal(MethodJWT, cred.Method())
}
