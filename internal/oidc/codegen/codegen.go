// Package codegen mints authorization codes.
package codegen

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"

	"oidcore/pkg/domain"
	"oidcore/pkg/platform/sentinel"
)

// ErrCodeSpaceExhausted is returned when every attempt collided with an
// existing code. It indicates a misconfigured code length, not bad input.
var ErrCodeSpaceExhausted = errors.New("authorization code space exhausted")

const (
	DefaultLength      = 64
	DefaultMaxAttempts = 5
)

// Saver persists a code. Save must fail with sentinel.ErrConflict when the
// code is already taken.
type Saver interface {
	Save(ctx context.Context, code string, authorizationRequestID domain.AuthorizationRequestID) error
}

// CollisionObserver is notified of each collision.
type CollisionObserver interface {
	IncrementCodeCollisions()
}

// Generator produces random hex codes of a fixed length.
type Generator struct {
	length      int
	maxAttempts int
	store       Saver
	observer    CollisionObserver
}

type Option func(*Generator)

// WithLength sets the code length in hex characters.
func WithLength(n int) Option {
	return func(g *Generator) {
		if n > 0 {
			g.length = n
		}
	}
}

func WithMaxAttempts(n int) Option {
	return func(g *Generator) {
		if n > 0 {
			g.maxAttempts = n
		}
	}
}

func WithCollisionObserver(o CollisionObserver) Option {
	return func(g *Generator) {
		g.observer = o
	}
}

func New(store Saver, opts ...Option) *Generator {
	g := &Generator{
		length:      DefaultLength,
		maxAttempts: DefaultMaxAttempts,
		store:       store,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Issue generates a code, binds it to the authorization request and returns it.
func (g *Generator) Issue(ctx context.Context, authorizationRequestID domain.AuthorizationRequestID) (string, error) {
	for range g.maxAttempts {
		code, err := g.random()
		if err != nil {
			return "", err
		}
		err = g.store.Save(ctx, code, authorizationRequestID)
		if err == nil {
			return code, nil
		}
		if !errors.Is(err, sentinel.ErrConflict) {
			return "", fmt.Errorf("save authorization code: %w", err)
		}
		if g.observer != nil {
			g.observer.IncrementCodeCollisions()
		}
	}
	return "", ErrCodeSpaceExhausted
}

func (g *Generator) random() (string, error) {
	buf := make([]byte, (g.length+1)/2)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}
	return hex.EncodeToString(buf)[:g.length], nil
}
