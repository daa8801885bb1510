package authorizationcode

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"oidcore/pkg/domain"
	"oidcore/pkg/platform/sentinel"
)

const keyPrefix = "oidc:code:"

// RedisStore binds codes with SETNX and a TTL. Revoke relies on the DEL
// reply count, which Redis computes atomically.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedis(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) Save(ctx context.Context, code string, authorizationRequestID domain.AuthorizationRequestID) error {
	ok, err := s.client.SetNX(ctx, keyPrefix+code, authorizationRequestID.String(), s.ttl).Result()
	if err != nil {
		return fmt.Errorf("save authorization code: %w", err)
	}
	if !ok {
		return fmt.Errorf("authorization code: %w", sentinel.ErrConflict)
	}
	return nil
}

func (s *RedisStore) Load(ctx context.Context, code string) (domain.AuthorizationRequestID, error) {
	raw, err := s.client.Get(ctx, keyPrefix+code).Result()
	if errors.Is(err, redis.Nil) {
		return domain.AuthorizationRequestID{}, fmt.Errorf("authorization code not found: %w", sentinel.ErrNotFound)
	}
	if err != nil {
		return domain.AuthorizationRequestID{}, fmt.Errorf("load authorization code: %w", err)
	}
	return domain.ParseAuthorizationRequestID(raw)
}

func (s *RedisStore) Revoke(ctx context.Context, code string) error {
	n, err := s.client.Del(ctx, keyPrefix+code).Result()
	if err != nil {
		return fmt.Errorf("revoke authorization code: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("authorization code not found: %w", sentinel.ErrNotFound)
	}
	return nil
}
