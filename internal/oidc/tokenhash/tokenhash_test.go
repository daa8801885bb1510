package tokenhash

import (
	"crypto/sha256"
	"crypto/sha512"
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHalfHash(t *testing.T) {
	t.Run("sha512 encodes the first 32 bytes", func(t *testing.T) {
		h, err := New(SHA512)
		require.NoError(t, err)

		sum := sha512.Sum512([]byte("jHkWEdUXMU1BwAsC4vtUsZwnNvTIxEl0z9K3vx5KF0Y"))
		want := base64.StdEncoding.EncodeToString(sum[:32])
		assert.Equal(t, want, h.HalfHash("jHkWEdUXMU1BwAsC4vtUsZwnNvTIxEl0z9K3vx5KF0Y"))
	})

	t.Run("uses the standard padded alphabet", func(t *testing.T) {
		h, err := New(SHA512)
		require.NoError(t, err)

		assert.Equal(t, "SRW7PIUUlSlcFydo/zRPVlmM5I3qKErN13FKHHCRJtc=", h.HalfHash("a1b2c3d4"))
	})

	t.Run("sha256 left half of the OIDC core sample token", func(t *testing.T) {
		h, err := New(SHA256)
		require.NoError(t, err)

		assert.Equal(t, "77QmUPtjPfzWtF2AnpK9RQ==", h.HalfHash("jHkWEdUXMU1BwAsC4vtUsZwnNvTIxEl0z9K3vx5KF0Y"))

		sum := sha256.Sum256([]byte("abc"))
		assert.Equal(t, sum[:], h.Digest("abc"))
	})

	t.Run("sha384 output length", func(t *testing.T) {
		h, err := New(SHA384)
		require.NoError(t, err)
		decoded, err := base64.StdEncoding.DecodeString(h.HalfHash("code"))
		require.NoError(t, err)
		assert.Len(t, decoded, 24)
	})

	t.Run("deterministic", func(t *testing.T) {
		h, _ := New(SHA512)
		assert.Equal(t, h.HalfHash("x"), h.HalfHash("x"))
		assert.NotEqual(t, h.HalfHash("x"), h.HalfHash("y"))
	})
}

func TestNew_RejectsUnknownAlgorithm(t *testing.T) {
	_, err := New("md5")
	require.Error(t, err)
}
