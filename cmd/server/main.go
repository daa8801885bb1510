package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"oidcore/internal/interaction"
	jwttoken "oidcore/internal/jwt_token"
	"oidcore/internal/oidc/clientauth"
	"oidcore/internal/oidc/handler"
	"oidcore/internal/oidc/service"
	"oidcore/internal/oidc/tokenhash"
	"oidcore/internal/platform/config"
	"oidcore/internal/platform/httpserver"
	"oidcore/internal/platform/logger"
	"oidcore/internal/platform/metrics"
	"oidcore/internal/platform/middleware"
)

const shutdownTimeout = 10 * time.Second

// main wires dependencies and owns the server lifecycle. Protocol logic
// lives in internal/oidc.
func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Server, log *slog.Logger) error {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(reg)

	infra, err := openInfrastructure(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer infra.Close()

	stores, users, err := buildStores(ctx, cfg, infra)
	if err != nil {
		return err
	}
	auditor, closeAudit, err := buildAuditPublisher(cfg, log)
	if err != nil {
		return err
	}
	defer closeAudit()

	p := cfg.Provider
	tokens, err := jwttoken.NewJWTService(jwttoken.Config{
		Issuer:            p.Host,
		Algorithm:         p.JWTAlgorithm,
		AccessTokenSecret: p.AccessTokenSecret,
		IDTokenTTL:        p.IDTokenTTL,
		AccessTokenTTL:    p.AccessTokenTTL,
	})
	if err != nil {
		return fmt.Errorf("token issuer: %w", err)
	}
	hasher, err := tokenhash.New(p.HashAlgorithm)
	if err != nil {
		return fmt.Errorf("hash service: %w", err)
	}

	svc, err := service.New(stores, tokens, hasher, service.Config{
		Host:            p.Host,
		LoginPage:       p.LoginPage,
		ConsentPage:     p.ConsentPage,
		CodeLength:      p.CodeLength,
		CodeMaxAttempts: p.CodeMaxAttempts,
	},
		service.WithLogger(log),
		service.WithMetrics(m),
		service.WithAuditPublisher(auditor),
	)
	if err != nil {
		return fmt.Errorf("flow service: %w", err)
	}

	authenticator := clientauth.New(stores.Clients, p.Host,
		clientauth.WithLogger(log),
		clientauth.WithFailureObserver(m),
	)
	oidcHandler := handler.New(svc, authenticator, tokens, log,
		handler.WithMetrics(m),
		handler.WithTokenRateLimiter(middleware.NewIPRateLimiter(cfg.RateLimit.TokenRPS, cfg.RateLimit.TokenBurst, 0)),
	)
	pages := interaction.New(users, oidcHandler, "/"+p.LoginPage, "/"+p.ConsentPage, log)

	r := chi.NewRouter()
	r.Route(p.PathPrefix, oidcHandler.Register)
	pages.Register(r)
	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		if err := infra.Health(req.Context()); err != nil {
			http.Error(w, "unhealthy", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	metricsHandler := promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})
	servers := []*http.Server{httpserver.New(cfg.Addr, r)}
	if cfg.MetricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", metricsHandler)
		servers = append(servers, httpserver.New(cfg.MetricsAddr, mux))
	} else {
		r.Handle("/metrics", metricsHandler)
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, srv := range servers {
		g.Go(func() error {
			log.Info("listening", "addr", srv.Addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("serve %s: %w", srv.Addr, err)
			}
			return nil
		})
	}
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		var errs []error
		for _, srv := range servers {
			if err := srv.Shutdown(shutdownCtx); err != nil {
				errs = append(errs, fmt.Errorf("shutdown %s: %w", srv.Addr, err))
			}
		}
		log.Info("servers stopped")
		return errors.Join(errs...)
	})
	return g.Wait()
}
