package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.IncrementAuthorizeRedirect("error", "login_required")
	m.IncrementAuthorizeRedirect("error", "login_required")
	m.IncrementTokenIssued("id_token", "token")
	m.IncrementClientAuthFailures("client_secret_basic")
	m.IncrementCodeCollisions()
	m.ObserveTokenExchange(time.Now())

	assert.InDelta(t, 2, testutil.ToFloat64(m.AuthorizeRedirects.WithLabelValues("error", "login_required")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.TokensIssued.WithLabelValues("id_token", "token")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.ClientAuthFailures.WithLabelValues("client_secret_basic")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.CodeCollisions), 0)
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.IncrementAuthorizeRedirect("login", "")
		m.IncrementTokenExchangeFailure()
		m.ObserveHTTPRequest("/oidc/token", "200", time.Now())
	})
}
