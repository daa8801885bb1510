package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var latencyBuckets = []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1}

// Metrics holds the provider's Prometheus collectors. A nil *Metrics is valid
// and records nothing.
type Metrics struct {
	AuthorizeRedirects    *prometheus.CounterVec
	TokensIssued          *prometheus.CounterVec
	TokenExchangeFailures prometheus.Counter
	ClientAuthFailures    *prometheus.CounterVec
	CodeCollisions        prometheus.Counter
	HTTPRequestDuration   *prometheus.HistogramVec
	TokenExchangeDuration prometheus.Histogram
	RateLimitedRequests   prometheus.Counter
}

// New creates and registers all collectors with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		AuthorizeRedirects: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "oidc_authorize_redirects_total",
			Help: "Browser redirects produced by the authorization flow, by kind and error code",
		}, []string{"kind", "error"}),
		TokensIssued: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "oidc_tokens_issued_total",
			Help: "Artifacts issued, by kind (code, access_token, id_token) and endpoint",
		}, []string{"kind", "endpoint"}),
		TokenExchangeFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "oidc_token_exchange_failures_total",
			Help: "Rejected authorization code exchanges",
		}),
		ClientAuthFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "oidc_client_auth_failures_total",
			Help: "Failed client authentications at the token endpoint, by method",
		}, []string{"method"}),
		CodeCollisions: factory.NewCounter(prometheus.CounterOpts{
			Name: "oidc_code_collisions_total",
			Help: "Generated authorization codes that collided with an existing code",
		}),
		HTTPRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "oidc_http_request_duration_seconds",
			Help:    "HTTP request latency by route and status",
			Buckets: latencyBuckets,
		}, []string{"route", "status"}),
		TokenExchangeDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "oidc_token_exchange_duration_seconds",
			Help:    "Duration of authorization code exchanges",
			Buckets: latencyBuckets,
		}),
		RateLimitedRequests: factory.NewCounter(prometheus.CounterOpts{
			Name: "oidc_rate_limited_requests_total",
			Help: "Token endpoint requests rejected by the per-IP limiter",
		}),
	}
}

func (m *Metrics) IncrementAuthorizeRedirect(kind, errorCode string) {
	if m == nil {
		return
	}
	m.AuthorizeRedirects.WithLabelValues(kind, errorCode).Inc()
}

func (m *Metrics) IncrementTokenIssued(kind, endpoint string) {
	if m == nil {
		return
	}
	m.TokensIssued.WithLabelValues(kind, endpoint).Inc()
}

func (m *Metrics) IncrementTokenExchangeFailure() {
	if m == nil {
		return
	}
	m.TokenExchangeFailures.Inc()
}

func (m *Metrics) IncrementClientAuthFailures(method string) {
	if m == nil {
		return
	}
	m.ClientAuthFailures.WithLabelValues(method).Inc()
}

func (m *Metrics) IncrementCodeCollisions() {
	if m == nil {
		return
	}
	m.CodeCollisions.Inc()
}

func (m *Metrics) IncrementRateLimited() {
	if m == nil {
		return
	}
	m.RateLimitedRequests.Inc()
}

// ObserveTokenExchange records the duration of a code exchange.
// Call with time.Now() at the start of the operation.
func (m *Metrics) ObserveTokenExchange(start time.Time) {
	if m == nil {
		return
	}
	m.TokenExchangeDuration.Observe(time.Since(start).Seconds())
}

func (m *Metrics) ObserveHTTPRequest(route, status string, start time.Time) {
	if m == nil {
		return
	}
	m.HTTPRequestDuration.WithLabelValues(route, status).Observe(time.Since(start).Seconds())
}
