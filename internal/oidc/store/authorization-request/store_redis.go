package authorizationrequest

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"oidcore/internal/oidc/models"
	"oidcore/internal/oidc/store"
	"oidcore/pkg/domain"
)

const keyPrefix = "oidc:authz:"

type RedisStore struct {
	kv *store.RedisJSON[models.AuthorizationRequest]
}

func NewRedis(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{kv: store.NewRedisJSON[models.AuthorizationRequest](client, keyPrefix, ttl)}
}

func (s *RedisStore) Save(ctx context.Context, req *models.AuthorizationRequest) (domain.AuthorizationRequestID, error) {
	id := domain.NewAuthorizationRequestID()
	if err := s.kv.Put(ctx, id.String(), req); err != nil {
		return domain.AuthorizationRequestID{}, err
	}
	return id, nil
}

func (s *RedisStore) Load(ctx context.Context, id domain.AuthorizationRequestID) (*models.AuthorizationRequest, error) {
	return s.kv.Get(ctx, id.String())
}

func (s *RedisStore) MarkCompleted(ctx context.Context, id domain.AuthorizationRequestID) error {
	if _, err := s.kv.Get(ctx, id.String()); err != nil {
		return err
	}
	return s.kv.MarkOnce(ctx, id.String(), "completed")
}
