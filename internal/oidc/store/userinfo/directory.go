// Package userinfo is a small in-process user directory: it verifies demo
// credentials for the interaction pages and releases claims by scope.
package userinfo

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/crypto/bcrypt"

	"oidcore/pkg/platform/sentinel"
)

// ErrInvalidCredentials is returned for an unknown user or a wrong password.
var ErrInvalidCredentials = errors.New("invalid credentials")

// scopeClaims lists the standard claims each scope value releases.
var scopeClaims = map[string][]string{
	"profile": {
		"name", "family_name", "given_name", "middle_name", "nickname",
		"preferred_username", "profile", "picture", "website", "gender",
		"birthdate", "zoneinfo", "locale", "updated_at",
	},
	"email":   {"email", "email_verified"},
	"address": {"address"},
	"phone":   {"phone_number", "phone_number_verified"},
}

type user struct {
	subject      string
	passwordHash []byte
	claims       map[string]any
}

type Directory struct {
	mu    sync.RWMutex
	users map[string]*user // keyed by username
	subs  map[string]*user // keyed by subject
	cost  int
}

type Option func(*Directory)

// WithBcryptCost overrides bcrypt.DefaultCost; tests use bcrypt.MinCost.
func WithBcryptCost(cost int) Option {
	return func(d *Directory) { d.cost = cost }
}

func NewDirectory(opts ...Option) *Directory {
	d := &Directory{
		users: make(map[string]*user),
		subs:  make(map[string]*user),
		cost:  bcrypt.DefaultCost,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Add registers a user. The username doubles as the subject.
func (d *Directory) Add(username, password string, claims map[string]any) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), d.cost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	u := &user{subject: username, passwordHash: hash, claims: claims}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.users[username] = u
	d.subs[u.subject] = u
	return nil
}

// Authenticate returns the subject for valid credentials.
func (d *Directory) Authenticate(_ context.Context, username, password string) (string, error) {
	d.mu.RLock()
	u, ok := d.users[username]
	d.mu.RUnlock()
	if !ok {
		return "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(u.passwordHash, []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}
	return u.subject, nil
}

// GetUserInfo returns the claims released by scope. sub is always included.
func (d *Directory) GetUserInfo(_ context.Context, subject string, scope []string) (map[string]any, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	u, ok := d.subs[subject]
	if !ok {
		return nil, fmt.Errorf("user %q: %w", subject, sentinel.ErrNotFound)
	}
	out := map[string]any{"sub": u.subject}
	for _, item := range scope {
		for _, claim := range scopeClaims[item] {
			if v, ok := u.claims[claim]; ok {
				out[claim] = v
			}
		}
	}
	return out, nil
}
