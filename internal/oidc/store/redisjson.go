// Package store holds helpers shared by the provider's store implementations.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"oidcore/pkg/platform/sentinel"
)

// RedisJSON persists JSON-encoded values under a key prefix with a TTL.
type RedisJSON[T any] struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

func NewRedisJSON[T any](client *redis.Client, prefix string, ttl time.Duration) *RedisJSON[T] {
	return &RedisJSON[T]{client: client, prefix: prefix, ttl: ttl}
}

func (r *RedisJSON[T]) Key(id string) string {
	return r.prefix + id
}

// Put writes value under id, failing with sentinel.ErrConflict if id is taken.
func (r *RedisJSON[T]) Put(ctx context.Context, id string, value *T) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", r.prefix, err)
	}
	ok, err := r.client.SetNX(ctx, r.Key(id), data, r.ttl).Result()
	if err != nil {
		return fmt.Errorf("write %s: %w", r.Key(id), err)
	}
	if !ok {
		return fmt.Errorf("%s: %w", r.Key(id), sentinel.ErrConflict)
	}
	return nil
}

// MarkOnce sets a marker named marker for id with the store's TTL. It fails
// with sentinel.ErrConflict if the marker is already set.
func (r *RedisJSON[T]) MarkOnce(ctx context.Context, id, marker string) error {
	key := r.prefix + marker + ":" + id
	ok, err := r.client.SetNX(ctx, key, 1, r.ttl).Result()
	if err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	if !ok {
		return fmt.Errorf("%s: %w", key, sentinel.ErrConflict)
	}
	return nil
}

func (r *RedisJSON[T]) Get(ctx context.Context, id string) (*T, error) {
	data, err := r.client.Get(ctx, r.Key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("%s: %w", r.Key(id), sentinel.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", r.Key(id), err)
	}
	var value T
	if err := json.Unmarshal(data, &value); err != nil {
		return nil, fmt.Errorf("unmarshal %s: %w", r.Key(id), err)
	}
	return &value, nil
}
