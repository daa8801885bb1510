package authenticationrequest_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"oidcore/internal/oidc/models"
	authenticationrequest "oidcore/internal/oidc/store/authentication-request"
	"oidcore/pkg/domain"
	"oidcore/pkg/platform/sentinel"
)

type requestStore interface {
	Save(ctx context.Context, req *models.AuthenticationRequest) (domain.AuthenticationRequestID, error)
	Load(ctx context.Context, id domain.AuthenticationRequestID) (*models.AuthenticationRequest, error)
}

func stores(t *testing.T) map[string]requestStore {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return map[string]requestStore{
		"memory": authenticationrequest.NewInMemory(),
		"redis":  authenticationrequest.NewRedis(client, time.Minute),
	}
}

func TestStore(t *testing.T) {
	ctx := context.Background()
	maxAge := int64(300)

	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			req := &models.AuthenticationRequest{
				ResponseTypes: []models.ResponseType{models.ResponseTypeCode, models.ResponseTypeIDToken},
				Scope:         []string{"openid", "email"},
				ClientID:      "client-1",
				RedirectURI:   "https://client.example.com/cb",
				State:         "s1",
				Prompt:        []models.Prompt{models.PromptConsent},
				MaxAge:        &maxAge,
				AuthTime:      1700000000,
			}

			id, err := store.Save(ctx, req)
			require.NoError(t, err)
			assert.False(t, id.IsNil())

			loaded, err := store.Load(ctx, id)
			require.NoError(t, err)
			assert.Equal(t, req, loaded)

			loaded.Scope[0] = "mutated"
			again, err := store.Load(ctx, id)
			require.NoError(t, err)
			assert.Equal(t, "openid", again.Scope[0])

			other, err := store.Save(ctx, req)
			require.NoError(t, err)
			assert.NotEqual(t, id, other)

			_, err = store.Load(ctx, domain.NewAuthenticationRequestID())
			assert.True(t, errors.Is(err, sentinel.ErrNotFound))
		})
	}
}

func TestRedisStoreExpires(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	store := authenticationrequest.NewRedis(client, time.Minute)
	ctx := context.Background()

	id, err := store.Save(ctx, &models.AuthenticationRequest{ClientID: "client-1"})
	require.NoError(t, err)
	assert.True(t, mr.Exists("oidc:authn:"+id.String()))

	mr.FastForward(2 * time.Minute)
	_, err = store.Load(ctx, id)
	assert.ErrorIs(t, err, sentinel.ErrNotFound)
}
