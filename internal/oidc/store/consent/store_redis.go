package consent

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"oidcore/pkg/platform/strings"
)

// RedisStore keeps one set of granted scope items per (client, subject).
// Consent does not expire.
type RedisStore struct {
	client *redis.Client
}

func NewRedis(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// setKey length-prefixes the client id so ids containing ':' cannot make two
// (client, subject) pairs share a set.
func setKey(clientID, subject string) string {
	return fmt.Sprintf("oidc:consent:%d:%s:%s", len(clientID), clientID, subject)
}

func (s *RedisStore) IsGiven(ctx context.Context, subject string, scope []string, clientID string) (bool, error) {
	granted, err := s.client.SMembers(ctx, setKey(clientID, subject)).Result()
	if err != nil {
		return false, fmt.Errorf("load consent: %w", err)
	}
	return strings.ContainsAll(granted, scope), nil
}

func (s *RedisStore) Grant(ctx context.Context, subject string, scope []string, clientID string) error {
	if len(scope) == 0 {
		return nil
	}
	if err := s.client.SAdd(ctx, setKey(clientID, subject), toAny(scope)...).Err(); err != nil {
		return fmt.Errorf("grant consent: %w", err)
	}
	return nil
}

func (s *RedisStore) Revoke(ctx context.Context, subject string, scope []string, clientID string) error {
	if len(scope) == 0 {
		return nil
	}
	if err := s.client.SRem(ctx, setKey(clientID, subject), toAny(scope)...).Err(); err != nil {
		return fmt.Errorf("revoke consent: %w", err)
	}
	return nil
}

func toAny(items []string) []any {
	out := make([]any, len(items))
	for i, item := range items {
		out[i] = item
	}
	return out
}
