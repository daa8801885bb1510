package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Server captures process level configuration.
type Server struct {
	Addr        string
	MetricsAddr string
	LogLevel    string
	LogFormat   string

	Provider  Provider
	RateLimit RateLimit
	Redis     RedisConfig
	Postgres  PostgresConfig
	Kafka     KafkaConfig
	Demo      Demo
}

// Provider holds the OIDC protocol settings.
type Provider struct {
	// Host is the issuer and the base of login/consent URLs.
	Host              string
	PathPrefix        string
	LoginPage         string
	ConsentPage       string
	JWTAlgorithm      string
	HashAlgorithm     string
	IDTokenTTL        time.Duration
	AccessTokenTTL    time.Duration
	AccessTokenSecret string
	CodeLength        int
	CodeMaxAttempts   int
	// RequestTTL bounds how long pending authentication/authorization
	// requests are kept by stores that expire entries.
	RequestTTL time.Duration
	CodeTTL    time.Duration
}

// RateLimit configures the per-IP token endpoint limiter.
type RateLimit struct {
	TokenRPS   float64
	TokenBurst int
}

type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type PostgresConfig struct {
	URL          string
	MaxOpenConns int
	MaxIdleConns int
}

type KafkaConfig struct {
	Brokers    []string
	AuditTopic string
}

// Demo seeds a client and a user for local development.
type Demo struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string
	Username     string
	Password     string
}

// FromEnv builds a Server config from environment variables so main stays lean.
// Unset values fall back to development defaults.
func FromEnv() (Server, error) {
	var errs []error
	env := envReader{errs: &errs}

	cfg := Server{
		Addr:        env.str("OIDC_ADDR", ":8080"),
		MetricsAddr: env.str("METRICS_ADDR", ""),
		LogLevel:    env.str("LOG_LEVEL", "info"),
		LogFormat:   env.str("LOG_FORMAT", "json"),
		Provider: Provider{
			Host:              strings.TrimSuffix(env.str("OIDC_HOST", "http://localhost:8080"), "/"),
			PathPrefix:        env.str("OIDC_PATH_PREFIX", "/oidc"),
			LoginPage:         strings.Trim(env.str("OIDC_LOGIN_PAGE", "login"), "/"),
			ConsentPage:       strings.Trim(env.str("OIDC_CONSENT_PAGE", "consent"), "/"),
			JWTAlgorithm:      env.str("OIDC_JWT_ALGORITHM", "HS512"),
			HashAlgorithm:     env.str("OIDC_HASH_ALGORITHM", "sha512"),
			IDTokenTTL:        env.duration("OIDC_ID_TOKEN_TTL", time.Hour),
			AccessTokenTTL:    env.duration("OIDC_ACCESS_TOKEN_TTL", time.Hour),
			AccessTokenSecret: env.str("OIDC_ACCESS_TOKEN_SECRET", "dev-access-token-secret-change-in-production"),
			CodeLength:        env.int("OIDC_CODE_LENGTH", 64),
			CodeMaxAttempts:   env.int("OIDC_CODE_MAX_ATTEMPTS", 5),
			RequestTTL:        env.duration("OIDC_REQUEST_TTL", 10*time.Minute),
			CodeTTL:           env.duration("OIDC_CODE_TTL", 10*time.Minute),
		},
		RateLimit: RateLimit{
			TokenRPS:   env.float("TOKEN_RATE_LIMIT_RPS", 10),
			TokenBurst: env.int("TOKEN_RATE_LIMIT_BURST", 20),
		},
		Redis: RedisConfig{
			URL:          env.str("REDIS_URL", ""),
			PoolSize:     env.int("REDIS_POOL_SIZE", 10),
			MinIdleConns: env.int("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  env.duration("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  env.duration("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: env.duration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		Postgres: PostgresConfig{
			URL:          env.str("DATABASE_URL", ""),
			MaxOpenConns: env.int("DATABASE_MAX_OPEN_CONNS", 10),
			MaxIdleConns: env.int("DATABASE_MAX_IDLE_CONNS", 5),
		},
		Kafka: KafkaConfig{
			Brokers:    splitList(env.str("KAFKA_BROKERS", "")),
			AuditTopic: env.str("AUDIT_TOPIC", "oidc.audit"),
		},
		Demo: Demo{
			ClientID:     env.str("DEMO_CLIENT_ID", "demo-client"),
			ClientSecret: env.str("DEMO_CLIENT_SECRET", "demo-client-secret"),
			RedirectURI:  env.str("DEMO_REDIRECT_URI", "http://localhost:3000/callback"),
			Username:     env.str("DEMO_USERNAME", "demo"),
			Password:     env.str("DEMO_PASSWORD", "demo"),
		},
	}

	if err := cfg.validate(); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return Server{}, errors.Join(errs...)
	}
	return cfg, nil
}

func (s Server) validate() error {
	p := s.Provider
	switch {
	case p.Host == "":
		return errors.New("OIDC_HOST is required")
	case p.IDTokenTTL <= 0 || p.AccessTokenTTL <= 0:
		return errors.New("token TTLs must be positive")
	case p.CodeLength < 16:
		return errors.New("OIDC_CODE_LENGTH must be at least 16")
	case p.CodeMaxAttempts < 1:
		return errors.New("OIDC_CODE_MAX_ATTEMPTS must be at least 1")
	case !strings.HasPrefix(p.PathPrefix, "/"):
		return errors.New("OIDC_PATH_PREFIX must start with /")
	}
	return nil
}

type envReader struct {
	errs *[]error
}

func (e envReader) str(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func (e envReader) int(key string, def int) int {
	v := e.str(key, "")
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		*e.errs = append(*e.errs, fmt.Errorf("%s: %w", key, err))
		return def
	}
	return n
}

func (e envReader) float(key string, def float64) float64 {
	v := e.str(key, "")
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		*e.errs = append(*e.errs, fmt.Errorf("%s: %w", key, err))
		return def
	}
	return f
}

func (e envReader) duration(key string, def time.Duration) time.Duration {
	v := e.str(key, "")
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		*e.errs = append(*e.errs, fmt.Errorf("%s: %w", key, err))
		return def
	}
	return d
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
