package jwttoken

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"oidcore/internal/oidc/models"
	dErrors "oidcore/pkg/domain-errors"
	"oidcore/pkg/requestcontext"
)

// DefaultAlgorithm signs both ID and access tokens unless configured otherwise.
const DefaultAlgorithm = "HS512"

// Claims are the protocol claims carried by ID and access tokens.
type Claims struct {
	Scope    string `json:"scope,omitempty"`
	AuthTime int64  `json:"auth_time,omitempty"`
	Nonce    string `json:"nonce,omitempty"`
	CHash    string `json:"c_hash,omitempty"`
	AtHash   string `json:"at_hash,omitempty"`
	jwt.RegisteredClaims
}

// ScopeList splits the space-delimited scope claim.
func (c *Claims) ScopeList() []string {
	return strings.Fields(c.Scope)
}

type Config struct {
	Issuer            string
	Algorithm         string
	AccessTokenSecret string
	IDTokenTTL        time.Duration
	AccessTokenTTL    time.Duration
}

// JWTService issues and verifies tokens. ID tokens are keyed with the
// audience client's secret; access tokens with a provider-held secret.
// Both carry aud=client id and iss=issuer.
type JWTService struct {
	method         *jwt.SigningMethodHMAC
	issuer         string
	accessKey      []byte
	idTokenTTL     time.Duration
	accessTokenTTL time.Duration
}

func NewJWTService(cfg Config) (*JWTService, error) {
	alg := cfg.Algorithm
	if alg == "" {
		alg = DefaultAlgorithm
	}
	method, ok := jwt.GetSigningMethod(alg).(*jwt.SigningMethodHMAC)
	if !ok {
		return nil, fmt.Errorf("unsupported signing algorithm %q", alg)
	}
	if cfg.Issuer == "" {
		return nil, errors.New("issuer is required")
	}
	if cfg.AccessTokenSecret == "" {
		return nil, errors.New("access token secret is required")
	}
	return &JWTService{
		method:         method,
		issuer:         cfg.Issuer,
		accessKey:      []byte(cfg.AccessTokenSecret),
		idTokenTTL:     cfg.IDTokenTTL,
		accessTokenTTL: cfg.AccessTokenTTL,
	}, nil
}

func (s *JWTService) AccessTokenTTL() time.Duration { return s.accessTokenTTL }

func (s *JWTService) Algorithm() string { return s.method.Alg() }

// SignIDToken issues an ID token for client.
func (s *JWTService) SignIDToken(ctx context.Context, client *models.Client, payload models.TokenPayload) (string, error) {
	return s.sign(ctx, []byte(client.Secret), client.ID, s.idTokenTTL, Claims{
		AuthTime: payload.AuthTime,
		Nonce:    payload.Nonce,
		CHash:    payload.CHash,
		AtHash:   payload.AtHash,
	}, payload.Subject)
}

// SignAccessToken issues an access token for client.
func (s *JWTService) SignAccessToken(ctx context.Context, client *models.Client, payload models.TokenPayload) (string, error) {
	return s.sign(ctx, s.accessKey, client.ID, s.accessTokenTTL, Claims{
		Scope:    strings.Join(payload.Scope, " "),
		AuthTime: payload.AuthTime,
		Nonce:    payload.Nonce,
		CHash:    payload.CHash,
	}, payload.Subject)
}

// VerifyIDToken checks signature, issuer, expiry and that client is the audience.
func (s *JWTService) VerifyIDToken(ctx context.Context, tokenString string, client *models.Client) (*Claims, error) {
	return s.verify(ctx, tokenString, []byte(client.Secret), jwt.WithAudience(client.ID))
}

// VerifyAccessToken checks signature, issuer and expiry. Any client may be the audience.
func (s *JWTService) VerifyAccessToken(ctx context.Context, tokenString string) (*Claims, error) {
	return s.verify(ctx, tokenString, s.accessKey)
}

func (s *JWTService) sign(ctx context.Context, key []byte, audience string, ttl time.Duration, claims Claims, subject string) (string, error) {
	now := requestcontext.Now(ctx)
	claims.RegisteredClaims = jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		IssuedAt:  jwt.NewNumericDate(now),
		Issuer:    s.issuer,
		Audience:  []string{audience},
		ID:        uuid.NewString(),
	}

	signedToken, err := jwt.NewWithClaims(s.method, claims).SignedString(key)
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "failed to sign token")
	}
	return signedToken, nil
}

func (s *JWTService) verify(ctx context.Context, tokenString string, key []byte, opts ...jwt.ParserOption) (*Claims, error) {
	opts = append(opts,
		jwt.WithValidMethods([]string{s.method.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(func() time.Time { return requestcontext.Now(ctx) }),
	)
	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenUnverifiable
		}
		return key, nil
	}, opts...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, dErrors.Wrap(err, dErrors.CodeUnauthorized, "token has expired")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeUnauthorized, "invalid token")
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid token claims")
	}
	return claims, nil
}
