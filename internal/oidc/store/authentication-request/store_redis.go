package authenticationrequest

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"oidcore/internal/oidc/models"
	"oidcore/internal/oidc/store"
	"oidcore/pkg/domain"
)

const keyPrefix = "oidc:authn:"

// RedisStore persists authentication requests as JSON with a TTL, so
// abandoned logins age out on their own.
type RedisStore struct {
	kv *store.RedisJSON[models.AuthenticationRequest]
}

func NewRedis(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{kv: store.NewRedisJSON[models.AuthenticationRequest](client, keyPrefix, ttl)}
}

func (s *RedisStore) Save(ctx context.Context, req *models.AuthenticationRequest) (domain.AuthenticationRequestID, error) {
	id := domain.NewAuthenticationRequestID()
	if err := s.kv.Put(ctx, id.String(), req); err != nil {
		return domain.AuthenticationRequestID{}, err
	}
	return id, nil
}

func (s *RedisStore) Load(ctx context.Context, id domain.AuthenticationRequestID) (*models.AuthenticationRequest, error) {
	return s.kv.Get(ctx, id.String())
}
