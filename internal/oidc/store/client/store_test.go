package client_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"oidcore/internal/oidc/models"
	"oidcore/internal/oidc/store/client"
	"oidcore/pkg/platform/sentinel"
)

func TestInMemoryStore(t *testing.T) {
	ctx := context.Background()
	seed := &models.Client{ID: "client-1", Secret: "s3cret", RedirectURIs: []string{"https://a.example.com/cb"}}
	store := client.NewInMemory(seed)

	got, err := store.GetClient(ctx, "client-1")
	require.NoError(t, err)
	assert.Equal(t, seed, got)

	got.RedirectURIs[0] = "https://evil.example.com"
	again, err := store.GetClient(ctx, "client-1")
	require.NoError(t, err)
	assert.Equal(t, "https://a.example.com/cb", again.RedirectURIs[0])

	require.NoError(t, store.Upsert(ctx, &models.Client{ID: "client-1", Secret: "rotated"}))
	again, err = store.GetClient(ctx, "client-1")
	require.NoError(t, err)
	assert.Equal(t, "rotated", again.Secret)

	_, err = store.GetClient(ctx, "missing")
	assert.ErrorIs(t, err, sentinel.ErrNotFound)
}
