// Package resilient keeps audit events flowing when the primary sink is down.
// Every append is tried against the primary; once the breaker opens, failed
// appends land in the fallback until the primary recovers.
package resilient

import (
	"context"
	"log/slog"

	audit "oidcore/pkg/platform/audit"
	"oidcore/pkg/platform/circuit"
)

type Store struct {
	primary  audit.Store
	fallback audit.Store
	breaker  *circuit.Breaker
	logger   *slog.Logger
}

type Option func(*Store)

func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

func New(primary, fallback audit.Store, breaker *circuit.Breaker, opts ...Option) *Store {
	s := &Store{
		primary:  primary,
		fallback: fallback,
		breaker:  breaker,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) Append(ctx context.Context, event audit.Event) error {
	err := s.primary.Append(ctx, event)
	if err == nil {
		if _, change := s.breaker.RecordSuccess(); change.Closed {
			s.logger.InfoContext(ctx, "audit sink recovered", "breaker", s.breaker.Name())
		}
		return nil
	}

	useFallback, change := s.breaker.RecordFailure()
	if change.Opened {
		s.logger.WarnContext(ctx, "audit sink failing, using fallback",
			"breaker", s.breaker.Name(),
			"error", err,
		)
	}
	if !useFallback {
		return err
	}
	return s.fallback.Append(ctx, event)
}
