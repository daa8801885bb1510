// Package tokenhash computes the left-half hashes that bind an ID token to
// the code (c_hash) and access token (at_hash) issued alongside it.
package tokenhash

import (
	"crypto/sha256"
	"crypto/sha512"
	"encoding/base64"
	"fmt"
	"hash"
)

// Supported digest names.
const (
	SHA256 = "sha256"
	SHA384 = "sha384"
	SHA512 = "sha512"
)

// Hasher digests values with one configured algorithm.
type Hasher struct {
	alg string
	new func() hash.Hash
}

// New returns a Hasher for alg (sha256, sha384 or sha512).
func New(alg string) (*Hasher, error) {
	switch alg {
	case SHA256:
		return &Hasher{alg: alg, new: sha256.New}, nil
	case SHA384:
		return &Hasher{alg: alg, new: sha512.New384}, nil
	case SHA512:
		return &Hasher{alg: alg, new: sha512.New}, nil
	default:
		return nil, fmt.Errorf("unsupported hash algorithm %q", alg)
	}
}

func (h *Hasher) Algorithm() string { return h.alg }

// Digest returns the full digest of s.
func (h *Hasher) Digest(s string) []byte {
	d := h.new()
	d.Write([]byte(s))
	return d.Sum(nil)
}

// HalfHash returns the standard padded base64 encoding of the left half of
// the digest of s.
func (h *Hasher) HalfHash(s string) string {
	sum := h.Digest(s)
	return base64.StdEncoding.EncodeToString(sum[:len(sum)/2])
}
