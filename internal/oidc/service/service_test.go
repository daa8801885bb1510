package service

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	jwttoken "oidcore/internal/jwt_token"
	"oidcore/internal/oidc/models"
	"oidcore/internal/oidc/service/mocks"
	"oidcore/internal/oidc/tokenhash"
	"oidcore/pkg/domain"
	dErrors "oidcore/pkg/domain-errors"
	"oidcore/pkg/platform/sentinel"
	"oidcore/pkg/requestcontext"
)

const (
	testHost        = "https://op.example.com"
	testRedirectURI = "https://client.example.com/cb"
)

type ServiceSuite struct {
	suite.Suite
	ctrl *gomock.Controller

	mockClients  *mocks.MockClientLookup
	mockUserInfo *mocks.MockUserInfoLookup
	mockAuthn    *mocks.MockAuthenticationRequestStore
	mockAuthz    *mocks.MockAuthorizationRequestStore
	mockCodes    *mocks.MockAuthorizationCodeStore
	mockConsents *mocks.MockConsentStore
	mockAudit    *mocks.MockAuditPublisher

	tokens  *jwttoken.JWTService
	hasher  *tokenhash.Hasher
	service *Service
	client  *models.Client
	now     time.Time
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockClients = mocks.NewMockClientLookup(s.ctrl)
	s.mockUserInfo = mocks.NewMockUserInfoLookup(s.ctrl)
	s.mockAuthn = mocks.NewMockAuthenticationRequestStore(s.ctrl)
	s.mockAuthz = mocks.NewMockAuthorizationRequestStore(s.ctrl)
	s.mockCodes = mocks.NewMockAuthorizationCodeStore(s.ctrl)
	s.mockConsents = mocks.NewMockConsentStore(s.ctrl)
	s.mockAudit = mocks.NewMockAuditPublisher(s.ctrl)
	s.mockAudit.EXPECT().Emit(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	var err error
	s.tokens, err = jwttoken.NewJWTService(jwttoken.Config{
		Issuer:            testHost,
		Algorithm:         "HS256",
		AccessTokenSecret: "access-secret",
		IDTokenTTL:        time.Hour,
		AccessTokenTTL:    30 * time.Minute,
	})
	s.Require().NoError(err)
	s.hasher, err = tokenhash.New("sha256")
	s.Require().NoError(err)

	s.service, err = New(Stores{
		Clients:                s.mockClients,
		UserInfo:               s.mockUserInfo,
		AuthenticationRequests: s.mockAuthn,
		AuthorizationRequests:  s.mockAuthz,
		Codes:                  s.mockCodes,
		Consents:               s.mockConsents,
	}, s.tokens, s.hasher, Config{
		Host:        testHost,
		LoginPage:   "login",
		ConsentPage: "consent",
		CodeLength:  32,
	}, WithAuditPublisher(s.mockAudit))
	s.Require().NoError(err)

	s.client = &models.Client{ID: "client-1", Secret: "client-secret", RedirectURIs: []string{testRedirectURI}}
	s.now = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
}

func (s *ServiceSuite) ctx() context.Context {
	return requestcontext.WithTime(context.Background(), s.now)
}

func (s *ServiceSuite) authnRequest(types ...models.ResponseType) *models.AuthenticationRequest {
	return &models.AuthenticationRequest{
		ResponseTypes: types,
		Scope:         []string{"openid", "profile"},
		ClientID:      s.client.ID,
		RedirectURI:   testRedirectURI,
		State:         "af0 ifjsldkj",
		Nonce:         "n-0S6",
		AuthTime:      s.now.Unix(),
	}
}

func (s *ServiceSuite) hint(subject string, authTime int64) string {
	token, err := s.tokens.SignIDToken(s.ctx(), s.client, models.TokenPayload{Subject: subject, AuthTime: authTime})
	s.Require().NoError(err)
	return token
}

func (s *ServiceSuite) errorParams(redirect *models.Redirect) url.Values {
	s.Require().Equal(models.RedirectError, redirect.Kind)
	s.Require().True(strings.HasPrefix(redirect.Location, testRedirectURI+"?"), redirect.Location)
	u, err := url.Parse(redirect.Location)
	s.Require().NoError(err)
	return u.Query()
}

func (s *ServiceSuite) fragmentKeys(redirect *models.Redirect) ([]string, url.Values) {
	s.Require().Equal(models.RedirectSuccess, redirect.Kind)
	u, err := url.Parse(redirect.Location)
	s.Require().NoError(err)
	raw := u.EscapedFragment()
	var keys []string
	for _, part := range strings.Split(raw, "&") {
		keys = append(keys, strings.SplitN(part, "=", 2)[0])
	}
	values, err := url.ParseQuery(raw)
	s.Require().NoError(err)
	return keys, values
}

func (s *ServiceSuite) TestNewRequiresCollaborators() {
	_, err := New(Stores{}, s.tokens, s.hasher, Config{Host: testHost})
	s.Error(err)

	_, err = New(s.service.stores, nil, s.hasher, Config{Host: testHost})
	s.Error(err)

	_, err = New(s.service.stores, s.tokens, s.hasher, Config{})
	s.Error(err)
}

func (s *ServiceSuite) TestBeginAuthentication() {
	s.Run("unknown client redirects with invalid_request", func() {
		req := s.authnRequest(models.ResponseTypeCode)
		s.mockClients.EXPECT().GetClient(gomock.Any(), s.client.ID).Return(nil, sentinel.ErrNotFound)

		redirect, err := s.service.BeginAuthentication(s.ctx(), req)
		s.Require().NoError(err)
		params := s.errorParams(redirect)
		s.Equal("invalid_request", params.Get("error"))
		s.Equal("invalid request", params.Get("error_description"))
		s.Equal("af0 ifjsldkj", params.Get("state"))
		s.Contains(redirect.Location, "state=af0%20ifjsldkj")
	})

	s.Run("client lookup failure is returned", func() {
		s.mockClients.EXPECT().GetClient(gomock.Any(), s.client.ID).Return(nil, errors.New("db down"))

		redirect, err := s.service.BeginAuthentication(s.ctx(), s.authnRequest(models.ResponseTypeCode))
		s.Require().Error(err)
		s.Nil(redirect)
		s.True(dErrors.Is(err, dErrors.CodeInternal))
	})

	s.Run("unregistered redirect uri", func() {
		req := s.authnRequest(models.ResponseTypeCode)
		req.RedirectURI = "https://client.example.com/other"
		s.mockClients.EXPECT().GetClient(gomock.Any(), s.client.ID).Return(s.client, nil)

		redirect, err := s.service.BeginAuthentication(s.ctx(), req)
		s.Require().NoError(err)
		s.Equal(dErrors.CodeInvalidRequestURI, redirect.Error)
		s.Contains(redirect.Location, "error_description=request%20uri%20invalid%20or%20does%20not%20belong%20to%20client")
	})

	s.Run("interactive request persists and redirects to login", func() {
		req := s.authnRequest(models.ResponseTypeCode)
		req.AuthTime = 0
		id := domain.NewAuthenticationRequestID()
		s.mockClients.EXPECT().GetClient(gomock.Any(), s.client.ID).Return(s.client, nil)
		s.mockAuthn.EXPECT().Save(gomock.Any(), req).Return(id, nil)

		redirect, err := s.service.BeginAuthentication(s.ctx(), req)
		s.Require().NoError(err)
		s.Equal(models.RedirectLogin, redirect.Kind)
		s.Equal(testHost+"/login?authenticationRequestId="+id.String(), redirect.Location)
		s.Equal(s.now.Unix(), req.AuthTime)
	})

	s.Run("save failure redirects with internal_server_error", func() {
		s.mockClients.EXPECT().GetClient(gomock.Any(), s.client.ID).Return(s.client, nil)
		s.mockAuthn.EXPECT().Save(gomock.Any(), gomock.Any()).Return(domain.AuthenticationRequestID{}, errors.New("redis down"))

		redirect, err := s.service.BeginAuthentication(s.ctx(), s.authnRequest(models.ResponseTypeCode))
		s.Require().NoError(err)
		s.Equal("an error occurred within the server", s.errorParams(redirect).Get("error_description"))
	})
}

func (s *ServiceSuite) TestBeginAuthenticationSilent() {
	silent := func(prompt ...models.Prompt) *models.AuthenticationRequest {
		req := s.authnRequest(models.ResponseTypeCode)
		req.Prompt = prompt
		s.mockClients.EXPECT().GetClient(gomock.Any(), s.client.ID).Return(s.client, nil)
		s.mockAuthn.EXPECT().Save(gomock.Any(), req).Return(domain.NewAuthenticationRequestID(), nil)
		return req
	}

	s.Run("none combined with other prompts", func() {
		req := silent(models.PromptNone, models.PromptLogin)
		redirect, err := s.service.BeginAuthentication(s.ctx(), req)
		s.Require().NoError(err)
		s.Equal(dErrors.CodeInvalidRequest, redirect.Error)
	})

	s.Run("missing hint requires interaction", func() {
		req := silent(models.PromptNone)
		redirect, err := s.service.BeginAuthentication(s.ctx(), req)
		s.Require().NoError(err)
		s.Equal(dErrors.CodeInteractionRequired, redirect.Error)
		s.Equal("unable to authenticate without user interaction", s.errorParams(redirect).Get("error_description"))
	})

	s.Run("unverifiable hint requires login", func() {
		req := silent(models.PromptNone)
		req.IDTokenHint = "not-a-jwt"
		redirect, err := s.service.BeginAuthentication(s.ctx(), req)
		s.Require().NoError(err)
		s.Equal(dErrors.CodeLoginRequired, redirect.Error)
	})

	s.Run("expired hint requires login", func() {
		req := silent(models.PromptNone)
		old := s.now.Add(-2 * time.Hour)
		token, err := s.tokens.SignIDToken(requestcontext.WithTime(context.Background(), old), s.client,
			models.TokenPayload{Subject: "alice", AuthTime: old.Unix()})
		s.Require().NoError(err)
		req.IDTokenHint = token

		redirect, err := s.service.BeginAuthentication(s.ctx(), req)
		s.Require().NoError(err)
		s.Equal(dErrors.CodeLoginRequired, redirect.Error)
	})

	s.Run("hint older than max_age requires login", func() {
		req := silent(models.PromptNone)
		maxAge := int64(60)
		req.MaxAge = &maxAge
		req.IDTokenHint = s.hint("alice", s.now.Add(-5*time.Minute).Unix())

		redirect, err := s.service.BeginAuthentication(s.ctx(), req)
		s.Require().NoError(err)
		s.Equal(dErrors.CodeLoginRequired, redirect.Error)
	})

	silentSuccess := func(req *models.AuthenticationRequest) *models.Redirect {
		authnID := domain.NewAuthenticationRequestID()
		authzID := domain.NewAuthorizationRequestID()
		s.mockClients.EXPECT().GetClient(gomock.Any(), s.client.ID).Return(s.client, nil).Times(2)
		s.mockAuthn.EXPECT().Save(gomock.Any(), req).Return(authnID, nil)
		s.mockAuthn.EXPECT().Load(gomock.Any(), authnID).Return(req, nil)
		s.mockAuthz.EXPECT().Save(gomock.Any(), gomock.Any()).Return(authzID, nil)
		s.mockConsents.EXPECT().IsGiven(gomock.Any(), "alice", req.Scope, s.client.ID).Return(false, nil)

		redirect, err := s.service.BeginAuthentication(s.ctx(), req)
		s.Require().NoError(err)
		return redirect
	}

	s.Run("hint within max_age completes silently", func() {
		req := s.authnRequest(models.ResponseTypeCode)
		req.Prompt = []models.Prompt{models.PromptNone}
		maxAge := int64(300)
		req.MaxAge = &maxAge
		req.IDTokenHint = s.hint("alice", s.now.Add(-30*time.Second).Unix())

		redirect := silentSuccess(req)
		s.Empty(redirect.Error)
		s.Equal(models.RedirectConsent, redirect.Kind)
	})

	s.Run("hint exactly max_age old is still accepted", func() {
		req := s.authnRequest(models.ResponseTypeCode)
		req.Prompt = []models.Prompt{models.PromptNone}
		maxAge := int64(60)
		req.MaxAge = &maxAge
		req.IDTokenHint = s.hint("alice", s.now.Add(-60*time.Second).Unix())

		redirect := silentSuccess(req)
		s.Empty(redirect.Error)
		s.Equal(models.RedirectConsent, redirect.Kind)
	})

	s.Run("valid hint completes authentication silently", func() {
		req := s.authnRequest(models.ResponseTypeCode)
		req.Prompt = []models.Prompt{models.PromptNone}
		req.IDTokenHint = s.hint("alice", s.now.Unix())
		authnID := domain.NewAuthenticationRequestID()
		authzID := domain.NewAuthorizationRequestID()

		s.mockClients.EXPECT().GetClient(gomock.Any(), s.client.ID).Return(s.client, nil).Times(2)
		s.mockAuthn.EXPECT().Save(gomock.Any(), req).Return(authnID, nil)
		s.mockAuthn.EXPECT().Load(gomock.Any(), authnID).Return(req, nil)
		s.mockAuthz.EXPECT().Save(gomock.Any(), &models.AuthorizationRequest{AuthenticationRequestID: authnID, Subject: "alice"}).Return(authzID, nil)
		s.mockConsents.EXPECT().IsGiven(gomock.Any(), "alice", req.Scope, s.client.ID).Return(false, nil)

		redirect, err := s.service.BeginAuthentication(s.ctx(), req)
		s.Require().NoError(err)
		s.Equal(models.RedirectConsent, redirect.Kind)
		s.Equal(testHost+"/consent?authorizationRequestId="+authzID.String(), redirect.Location)
	})
}

func (s *ServiceSuite) TestCompleteAuthentication() {
	authnID := domain.NewAuthenticationRequestID()

	s.Run("unknown request id", func() {
		s.mockAuthn.EXPECT().Load(gomock.Any(), authnID).Return(nil, sentinel.ErrNotFound)

		_, err := s.service.CompleteAuthentication(s.ctx(), authnID, "alice", true, false)
		s.Require().Error(err)
		s.True(dErrors.Is(err, dErrors.CodeNotFound))
	})

	s.Run("user not authenticated", func() {
		s.mockAuthn.EXPECT().Load(gomock.Any(), authnID).Return(s.authnRequest(models.ResponseTypeCode), nil)

		redirect, err := s.service.CompleteAuthentication(s.ctx(), authnID, "alice", false, false)
		s.Require().NoError(err)
		s.Equal("user is not authenticated", s.errorParams(redirect).Get("error_description"))
	})

	s.Run("silent login with prompt=login", func() {
		req := s.authnRequest(models.ResponseTypeCode)
		req.Prompt = []models.Prompt{models.PromptLogin}
		s.mockAuthn.EXPECT().Load(gomock.Any(), authnID).Return(req, nil)

		redirect, err := s.service.CompleteAuthentication(s.ctx(), authnID, "alice", true, true)
		s.Require().NoError(err)
		s.Equal(dErrors.CodeLoginRequired, redirect.Error)
	})

	s.Run("hint for a different subject", func() {
		req := s.authnRequest(models.ResponseTypeCode)
		req.IDTokenHint = s.hint("bob", s.now.Unix())
		s.mockAuthn.EXPECT().Load(gomock.Any(), authnID).Return(req, nil)
		s.mockClients.EXPECT().GetClient(gomock.Any(), s.client.ID).Return(s.client, nil)

		redirect, err := s.service.CompleteAuthentication(s.ctx(), authnID, "alice", true, false)
		s.Require().NoError(err)
		params := s.errorParams(redirect)
		s.Equal("login_required", params.Get("error"))
		s.Equal("user logged in as different id from the id_token", params.Get("error_description"))
	})

	s.Run("invalid hint", func() {
		req := s.authnRequest(models.ResponseTypeCode)
		req.IDTokenHint = "garbage"
		s.mockAuthn.EXPECT().Load(gomock.Any(), authnID).Return(req, nil)
		s.mockClients.EXPECT().GetClient(gomock.Any(), s.client.ID).Return(s.client, nil)

		redirect, err := s.service.CompleteAuthentication(s.ctx(), authnID, "alice", true, false)
		s.Require().NoError(err)
		params := s.errorParams(redirect)
		s.Equal("invalid_request", params.Get("error"))
		s.Equal("invalid id_token", params.Get("error_description"))
	})

	s.Run("prompt=consent always shows consent", func() {
		req := s.authnRequest(models.ResponseTypeCode)
		req.Prompt = []models.Prompt{models.PromptConsent}
		authzID := domain.NewAuthorizationRequestID()
		s.mockAuthn.EXPECT().Load(gomock.Any(), authnID).Return(req, nil)
		s.mockAuthz.EXPECT().Save(gomock.Any(), gomock.Any()).Return(authzID, nil)

		redirect, err := s.service.CompleteAuthentication(s.ctx(), authnID, "alice", true, false)
		s.Require().NoError(err)
		s.Equal(models.RedirectConsent, redirect.Kind)
	})

	s.Run("cached consent skips the consent page", func() {
		req := s.authnRequest(models.ResponseTypeCode)
		authzID := domain.NewAuthorizationRequestID()
		authz := &models.AuthorizationRequest{AuthenticationRequestID: authnID, Subject: "alice"}
		s.mockAuthn.EXPECT().Load(gomock.Any(), authnID).Return(req, nil).Times(2)
		s.mockAuthz.EXPECT().Save(gomock.Any(), authz).Return(authzID, nil)
		s.mockConsents.EXPECT().IsGiven(gomock.Any(), "alice", req.Scope, s.client.ID).Return(true, nil)
		s.mockAuthz.EXPECT().Load(gomock.Any(), authzID).Return(authz, nil)
		s.mockAuthz.EXPECT().MarkCompleted(gomock.Any(), authzID).Return(nil)
		s.mockClients.EXPECT().GetClient(gomock.Any(), s.client.ID).Return(s.client, nil)
		s.mockConsents.EXPECT().Grant(gomock.Any(), "alice", req.Scope, s.client.ID).Return(nil)
		s.mockCodes.EXPECT().Save(gomock.Any(), gomock.Any(), authzID).Return(nil)

		redirect, err := s.service.CompleteAuthentication(s.ctx(), authnID, "alice", true, false)
		s.Require().NoError(err)
		keys, values := s.fragmentKeys(redirect)
		s.Equal([]string{"state", "code"}, keys)
		s.Len(values.Get("code"), 32)
	})
}

func (s *ServiceSuite) expectAuthorization(types ...models.ResponseType) (domain.AuthorizationRequestID, *models.AuthenticationRequest) {
	authnID := domain.NewAuthenticationRequestID()
	authzID := domain.NewAuthorizationRequestID()
	req := s.authnRequest(types...)
	s.mockAuthz.EXPECT().Load(gomock.Any(), authzID).Return(&models.AuthorizationRequest{AuthenticationRequestID: authnID, Subject: "alice"}, nil)
	s.mockAuthn.EXPECT().Load(gomock.Any(), authnID).Return(req, nil)
	s.mockClients.EXPECT().GetClient(gomock.Any(), s.client.ID).Return(s.client, nil)
	return authzID, req
}

func (s *ServiceSuite) TestCompleteAuthorization() {
	s.Run("consent denied", func() {
		authzID, _ := s.expectAuthorization(models.ResponseTypeCode)

		redirect, err := s.service.CompleteAuthorization(s.ctx(), authzID, false, false)
		s.Require().NoError(err)
		s.Equal("user did not allow permission for scope requested", s.errorParams(redirect).Get("error_description"))
	})

	s.Run("silent consent with prompt=consent", func() {
		authzID, req := s.expectAuthorization(models.ResponseTypeCode)
		req.Prompt = []models.Prompt{models.PromptConsent}

		redirect, err := s.service.CompleteAuthorization(s.ctx(), authzID, true, true)
		s.Require().NoError(err)
		s.Equal(dErrors.CodeConsentRequired, redirect.Error)
	})

	s.Run("completed request cannot be replayed", func() {
		authzID, _ := s.expectAuthorization(models.ResponseTypeCode)
		s.mockAuthz.EXPECT().MarkCompleted(gomock.Any(), authzID).Return(sentinel.ErrConflict)

		redirect, err := s.service.CompleteAuthorization(s.ctx(), authzID, true, false)
		s.Require().NoError(err)
		s.Equal(dErrors.CodeInvalidRequest, redirect.Error)
		s.Equal("authorization request already completed", s.errorParams(redirect).Get("error_description"))
	})

	s.Run("hybrid issues every artifact in order with bound hashes", func() {
		authzID, req := s.expectAuthorization(models.ResponseTypeIDToken, models.ResponseTypeToken, models.ResponseTypeCode)
		s.mockAuthz.EXPECT().MarkCompleted(gomock.Any(), authzID).Return(nil)
		s.mockConsents.EXPECT().Grant(gomock.Any(), "alice", req.Scope, s.client.ID).Return(nil)
		s.mockCodes.EXPECT().Save(gomock.Any(), gomock.Any(), authzID).Return(nil)

		redirect, err := s.service.CompleteAuthorization(s.ctx(), authzID, true, false)
		s.Require().NoError(err)
		s.True(strings.HasPrefix(redirect.Location, testRedirectURI+"#state="))

		keys, values := s.fragmentKeys(redirect)
		s.Equal([]string{"state", "code", "access_token", "expires_in", "token_type", "id_token"}, keys)
		s.Equal("af0 ifjsldkj", values.Get("state"))
		s.Equal("1800", values.Get("expires_in"))
		s.Equal("Bearer", values.Get("token_type"))

		idClaims, err := s.tokens.VerifyIDToken(s.ctx(), values.Get("id_token"), s.client)
		s.Require().NoError(err)
		s.Equal("alice", idClaims.Subject)
		s.Equal("n-0S6", idClaims.Nonce)
		s.Equal(s.hasher.HalfHash(values.Get("code")), idClaims.CHash)
		s.Equal(s.hasher.HalfHash(values.Get("access_token")), idClaims.AtHash)

		atClaims, err := s.tokens.VerifyAccessToken(s.ctx(), values.Get("access_token"))
		s.Require().NoError(err)
		s.Equal("openid profile", atClaims.Scope)
		s.Equal(idClaims.CHash, atClaims.CHash)
		s.Empty(atClaims.AtHash)
	})

	s.Run("implicit id_token only", func() {
		authzID, req := s.expectAuthorization(models.ResponseTypeIDToken)
		req.State = ""
		s.mockAuthz.EXPECT().MarkCompleted(gomock.Any(), authzID).Return(nil)
		s.mockConsents.EXPECT().Grant(gomock.Any(), "alice", req.Scope, s.client.ID).Return(nil)

		redirect, err := s.service.CompleteAuthorization(s.ctx(), authzID, true, false)
		s.Require().NoError(err)
		keys, values := s.fragmentKeys(redirect)
		s.Equal([]string{"id_token"}, keys)

		claims, err := s.tokens.VerifyIDToken(s.ctx(), values.Get("id_token"), s.client)
		s.Require().NoError(err)
		s.Empty(claims.CHash)
		s.Empty(claims.AtHash)
	})

	s.Run("code space exhausted", func() {
		authzID, req := s.expectAuthorization(models.ResponseTypeCode)
		s.mockAuthz.EXPECT().MarkCompleted(gomock.Any(), authzID).Return(nil)
		s.mockConsents.EXPECT().Grant(gomock.Any(), "alice", req.Scope, s.client.ID).Return(nil)
		s.mockCodes.EXPECT().Save(gomock.Any(), gomock.Any(), authzID).Return(sentinel.ErrConflict).Times(5)

		redirect, err := s.service.CompleteAuthorization(s.ctx(), authzID, true, false)
		s.Require().NoError(err)
		s.Equal(dErrors.CodeInternal, redirect.Error)
	})
}

func (s *ServiceSuite) expectCode(code string) (*models.AuthenticationRequest, domain.AuthorizationRequestID) {
	authnID := domain.NewAuthenticationRequestID()
	authzID := domain.NewAuthorizationRequestID()
	req := s.authnRequest(models.ResponseTypeCode)
	s.mockCodes.EXPECT().Load(gomock.Any(), code).Return(authzID, nil)
	s.mockAuthz.EXPECT().Load(gomock.Any(), authzID).Return(&models.AuthorizationRequest{AuthenticationRequestID: authnID, Subject: "alice"}, nil)
	s.mockAuthn.EXPECT().Load(gomock.Any(), authnID).Return(req, nil)
	return req, authzID
}

func (s *ServiceSuite) TestExchangeCode() {
	s.Run("issues tokens and revokes the code", func() {
		s.expectCode("abc123")
		s.mockClients.EXPECT().GetClient(gomock.Any(), s.client.ID).Return(s.client, nil)
		s.mockCodes.EXPECT().Revoke(gomock.Any(), "abc123").Return(nil)

		resp, err := s.service.ExchangeCode(s.ctx(), models.ExchangeRequest{Code: "abc123", RedirectURI: testRedirectURI, ClientID: s.client.ID})
		s.Require().NoError(err)
		s.Equal("Bearer", resp.TokenType)
		s.Equal(int64(1800), resp.ExpiresIn)

		claims, err := s.tokens.VerifyIDToken(s.ctx(), resp.IDToken, s.client)
		s.Require().NoError(err)
		s.Equal(s.hasher.HalfHash("abc123"), claims.CHash)
		s.Equal(s.hasher.HalfHash(resp.AccessToken), claims.AtHash)
		s.Equal(s.now.Unix(), claims.AuthTime)
	})

	failures := []struct {
		name   string
		req    models.ExchangeRequest
		expect func()
	}{
		{
			name: "missing code",
			req:  models.ExchangeRequest{ClientID: "client-1"},
		},
		{
			name: "unknown code",
			req:  models.ExchangeRequest{Code: "nope", ClientID: "client-1"},
			expect: func() {
				s.mockCodes.EXPECT().Load(gomock.Any(), "nope").Return(domain.AuthorizationRequestID{}, sentinel.ErrNotFound)
			},
		},
		{
			name:   "code issued to another client",
			req:    models.ExchangeRequest{Code: "abc", ClientID: "client-2"},
			expect: func() { s.expectCode("abc") },
		},
		{
			name:   "redirect uri mismatch",
			req:    models.ExchangeRequest{Code: "abc", ClientID: "client-1", RedirectURI: "https://client.example.com/other"},
			expect: func() { s.expectCode("abc") },
		},
		{
			name: "missing openid scope",
			req:  models.ExchangeRequest{Code: "abc", ClientID: "client-1"},
			expect: func() {
				req, _ := s.expectCode("abc")
				req.Scope = []string{"profile"}
			},
		},
		{
			name: "code already redeemed",
			req:  models.ExchangeRequest{Code: "abc", ClientID: "client-1"},
			expect: func() {
				s.expectCode("abc")
				s.mockClients.EXPECT().GetClient(gomock.Any(), "client-1").Return(s.client, nil)
				s.mockCodes.EXPECT().Revoke(gomock.Any(), "abc").Return(sentinel.ErrNotFound)
			},
		},
	}
	for _, tt := range failures {
		s.Run(tt.name, func() {
			if tt.expect != nil {
				tt.expect()
			}
			resp, err := s.service.ExchangeCode(s.ctx(), tt.req)
			s.Require().Error(err)
			s.Nil(resp)
			s.True(dErrors.Is(err, dErrors.CodeInvalidRequest))
			s.Equal("invalid request", err.Error())
		})
	}
}

func (s *ServiceSuite) TestUserInfo() {
	s.Run("sub always reflects the token subject", func() {
		s.mockUserInfo.EXPECT().GetUserInfo(gomock.Any(), "alice", []string{"openid", "email"}).
			Return(map[string]any{"sub": "someone-else", "email": "alice@example.com"}, nil)

		claims, err := s.service.UserInfo(s.ctx(), "alice", "client-1", []string{"openid", "email"})
		s.Require().NoError(err)
		s.Equal("alice", claims["sub"])
		s.Equal("alice@example.com", claims["email"])
	})

	s.Run("openid scope required", func() {
		_, err := s.service.UserInfo(s.ctx(), "alice", "client-1", []string{"email"})
		s.True(dErrors.Is(err, dErrors.CodeUnauthorized))
	})

	s.Run("unknown user", func() {
		s.mockUserInfo.EXPECT().GetUserInfo(gomock.Any(), "ghost", gomock.Any()).Return(nil, sentinel.ErrNotFound)

		_, err := s.service.UserInfo(s.ctx(), "ghost", "client-1", []string{"openid"})
		s.True(dErrors.Is(err, dErrors.CodeNotFound))
	})
}
