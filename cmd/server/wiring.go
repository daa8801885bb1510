package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"oidcore/internal/oidc/models"
	"oidcore/internal/oidc/service"
	authenticationrequest "oidcore/internal/oidc/store/authentication-request"
	authorizationcode "oidcore/internal/oidc/store/authorization-code"
	authorizationrequest "oidcore/internal/oidc/store/authorization-request"
	"oidcore/internal/oidc/store/client"
	"oidcore/internal/oidc/store/consent"
	"oidcore/internal/oidc/store/userinfo"
	"oidcore/internal/platform/config"
	"oidcore/internal/platform/postgres"
	"oidcore/internal/platform/redis"
	audit "oidcore/pkg/platform/audit"
	"oidcore/pkg/platform/audit/publisher"
	kafkastore "oidcore/pkg/platform/audit/store/kafka"
	auditmemory "oidcore/pkg/platform/audit/store/memory"
	"oidcore/pkg/platform/audit/store/resilient"
	"oidcore/pkg/platform/circuit"
)

const auditBufferSize = 1024

// infrastructure holds the optional backing services. Either may be nil, in
// which case the in-memory stores are used.
type infrastructure struct {
	redis *redis.Client
	db    *sql.DB
}

func openInfrastructure(ctx context.Context, cfg config.Server, log *slog.Logger) (*infrastructure, error) {
	infra := &infrastructure{}
	var err error
	if infra.redis, err = redis.New(ctx, cfg.Redis); err != nil {
		return nil, err
	}
	if infra.db, err = postgres.Open(ctx, cfg.Postgres); err != nil {
		infra.Close()
		return nil, err
	}
	if infra.db != nil {
		if err := postgres.Migrate(ctx, infra.db); err != nil {
			infra.Close()
			return nil, err
		}
	}
	log.Info("infrastructure ready",
		"redis", infra.redis != nil,
		"postgres", infra.db != nil,
	)
	return infra, nil
}

func (i *infrastructure) Health(ctx context.Context) error {
	var errs []error
	if i.redis != nil {
		errs = append(errs, i.redis.Health(ctx))
	}
	if i.db != nil {
		errs = append(errs, i.db.PingContext(ctx))
	}
	return errors.Join(errs...)
}

func (i *infrastructure) Close() {
	if i.redis != nil {
		_ = i.redis.Close()
	}
	if i.db != nil {
		_ = i.db.Close()
	}
}

type clientRegistry interface {
	service.ClientLookup
	Upsert(ctx context.Context, client *models.Client) error
}

// buildStores picks Redis for short-lived request state and Postgres for
// clients and consent, falling back to memory for whichever is not configured.
func buildStores(ctx context.Context, cfg config.Server, infra *infrastructure) (service.Stores, *userinfo.Directory, error) {
	p := cfg.Provider
	var stores service.Stores

	if infra.redis != nil {
		rc := infra.redis.Client
		stores.AuthenticationRequests = authenticationrequest.NewRedis(rc, p.RequestTTL)
		stores.AuthorizationRequests = authorizationrequest.NewRedis(rc, p.RequestTTL)
		stores.Codes = authorizationcode.NewRedis(rc, p.CodeTTL)
		stores.Consents = consent.NewRedis(rc)
	} else {
		stores.AuthenticationRequests = authenticationrequest.NewInMemory()
		stores.AuthorizationRequests = authorizationrequest.NewInMemory()
		stores.Codes = authorizationcode.NewInMemory()
		stores.Consents = consent.NewInMemory()
	}

	var clients clientRegistry = client.NewInMemory()
	if infra.db != nil {
		clients = client.NewPostgres(infra.db)
		stores.Consents = consent.NewPostgres(infra.db)
	}
	stores.Clients = clients

	users := userinfo.NewDirectory()
	stores.UserInfo = users

	d := cfg.Demo
	if d.ClientID != "" {
		if err := clients.Upsert(ctx, &models.Client{
			ID:           d.ClientID,
			Secret:       d.ClientSecret,
			RedirectURIs: []string{d.RedirectURI},
		}); err != nil {
			return service.Stores{}, nil, fmt.Errorf("seed demo client: %w", err)
		}
	}
	if d.Username != "" {
		if err := users.Add(d.Username, d.Password, map[string]any{
			"name":               "Demo User",
			"preferred_username": d.Username,
			"email":              d.Username + "@example.com",
			"email_verified":     true,
		}); err != nil {
			return service.Stores{}, nil, fmt.Errorf("seed demo user: %w", err)
		}
	}
	return stores, users, nil
}

// buildAuditPublisher sends audit events to Kafka when brokers are
// configured and keeps them in memory otherwise. Events produced while the
// Kafka breaker is open are held in memory.
func buildAuditPublisher(cfg config.Server, log *slog.Logger) (service.AuditPublisher, func(), error) {
	var store audit.Store = auditmemory.NewInMemoryStore()
	closeStore := func() {}

	if len(cfg.Kafka.Brokers) > 0 {
		kc, err := kafkastore.NewClient(cfg.Kafka.Brokers, "oidcore")
		if err != nil {
			return nil, nil, fmt.Errorf("kafka client: %w", err)
		}
		store = resilient.New(
			kafkastore.New(kc, cfg.Kafka.AuditTopic),
			auditmemory.NewInMemoryStore(),
			circuit.New("audit-kafka"),
			resilient.WithLogger(log),
		)
		closeStore = kc.Close
	}

	pub := publisher.NewPublisher(store,
		publisher.WithAsyncBuffer(auditBufferSize),
		publisher.WithLogger(log),
	)
	return pub, func() {
		pub.Close()
		closeStore()
	}, nil
}
