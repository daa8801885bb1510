package service

import (
	"context"
	"errors"
	"slices"

	"oidcore/internal/oidc/models"
	dErrors "oidcore/pkg/domain-errors"
	audit "oidcore/pkg/platform/audit"
	"oidcore/pkg/platform/sentinel"
)

// UserInfo resolves the claims released for subject under the access
// token's scope. The sub claim is always present and always subject.
func (s *Service) UserInfo(ctx context.Context, subject, clientID string, scope []string) (map[string]any, error) {
	if subject == "" {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "subject required")
	}
	if !slices.Contains(scope, models.ScopeOpenID) {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "token lacks openid scope")
	}

	info, err := s.stores.UserInfo.GetUserInfo(ctx, subject, scope)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.Wrap(err, dErrors.CodeNotFound, "user not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load user info")
	}

	claims := make(map[string]any, len(info)+1)
	for k, v := range info {
		claims[k] = v
	}
	claims["sub"] = subject

	s.emit(ctx, audit.EventUserInfoAccessed, audit.Event{ClientID: clientID, Subject: subject})
	return claims, nil
}
