package kit

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"
)

// IPRateLimiter applies a fixed-window request cap per client IP.
type IPRateLimiter struct {
	mu     sync.Mutex
	limit  int
	window time.Duration
	seen   map[string]*windowCount
}

type windowCount struct {
	start time.Time
	n     int
}

func NewIPRateLimiter(limit int, windowSeconds int) *IPRateLimiter {
	return &IPRateLimiter{
		limit:  limit,
		window: time.Duration(windowSeconds) * time.Second,
		seen:   make(map[string]*windowCount),
	}
}

func (l *IPRateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if l.exceeded(clientIP(r), time.Now()) {
			WriteError(w, http.StatusTooManyRequests, "Muitas requisições")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (l *IPRateLimiter) exceeded(ip string, now time.Time) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	wc, ok := l.seen[ip]
	if !ok || now.Sub(wc.start) >= l.window {
		l.seen[ip] = &windowCount{start: now, n: 1}
		return false
	}

	wc.n++
	return wc.n > l.limit
}

func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if first, _, found := strings.Cut(xff, ","); found || first != "" {
			return strings.TrimSpace(first)
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil && host != "" {
		return host
	}
	return r.RemoteAddr
}
