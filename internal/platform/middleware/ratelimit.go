package middleware

import (
	"container/list"
	"log/slog"
	"net/http"
	"sync"

	"golang.org/x/time/rate"

	"oidcore/internal/platform/metrics"
	"oidcore/pkg/platform/httputil"
	"oidcore/pkg/platform/middleware/metadata"
	"oidcore/pkg/requestcontext"
)

const defaultMaxLimiterEntries = 10000

type limiterEntry struct {
	key     string
	limiter *rate.Limiter
}

// IPRateLimiter keeps one token bucket per client IP, bounded by LRU eviction.
type IPRateLimiter struct {
	mu         sync.Mutex
	entries    map[string]*list.Element
	lru        *list.List
	limit      rate.Limit
	burst      int
	maxEntries int
}

func NewIPRateLimiter(rps float64, burst, maxEntries int) *IPRateLimiter {
	if maxEntries <= 0 {
		maxEntries = defaultMaxLimiterEntries
	}
	return &IPRateLimiter{
		entries:    make(map[string]*list.Element),
		lru:        list.New(),
		limit:      rate.Limit(rps),
		burst:      burst,
		maxEntries: maxEntries,
	}
}

// Allow reports whether a request from ip may proceed.
func (l *IPRateLimiter) Allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if elem, ok := l.entries[ip]; ok {
		l.lru.MoveToFront(elem)
		return elem.Value.(*limiterEntry).limiter.Allow()
	}

	if len(l.entries) >= l.maxEntries {
		if oldest := l.lru.Back(); oldest != nil {
			delete(l.entries, oldest.Value.(*limiterEntry).key)
			l.lru.Remove(oldest)
		}
	}

	entry := &limiterEntry{key: ip, limiter: rate.NewLimiter(l.limit, l.burst)}
	l.entries[ip] = l.lru.PushFront(entry)
	return entry.limiter.Allow()
}

// RateLimit rejects requests over the per-IP budget with 429.
func RateLimit(limiter *IPRateLimiter, m *metrics.Metrics, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := requestcontext.ClientIP(r.Context())
			if ip == "" {
				ip = metadata.ClientIPFromRequest(r)
			}
			if !limiter.Allow(ip) {
				m.IncrementRateLimited()
				logger.WarnContext(r.Context(), "rate limit exceeded",
					"client_ip", ip,
					"path", r.URL.Path,
					"request_id", GetRequestID(r.Context()),
				)
				w.Header().Set("Retry-After", "1")
				httputil.WriteJSON(w, http.StatusTooManyRequests, httputil.ErrorResponse{
					Error:            "rate_limited",
					ErrorDescription: "too many requests",
				})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
