package middleware

import (
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// IPRateLimiter limits requests per client IP using a token bucket per IP.
// Buckets idle for longer than idleTTL are dropped on the next sweep.
type IPRateLimiter struct {
	mu      sync.Mutex
	ips     map[string]*visitor
	limit   rate.Limit
	burst   int
	idleTTL time.Duration
	lastGC  time.Time
}

type visitor struct {
	lim  *rate.Limiter
	seen time.Time
}

// NewIPRateLimiter creates a per-IP limiter; limit is events per second, burst is max tokens per bucket.
func NewIPRateLimiter(limit rate.Limit, burst int) *IPRateLimiter {
	return &IPRateLimiter{
		ips:     make(map[string]*visitor),
		limit:   limit,
		burst:   burst,
		idleTTL: 10 * time.Minute,
		lastGC:  time.Now(),
	}
}

func (l *IPRateLimiter) allow(ip string, now time.Time) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if now.Sub(l.lastGC) > l.idleTTL {
		for k, v := range l.ips {
			if now.Sub(v.seen) > l.idleTTL {
				delete(l.ips, k)
			}
		}
		l.lastGC = now
	}

	v, ok := l.ips[ip]
	if !ok {
		v = &visitor{lim: rate.NewLimiter(l.limit, l.burst)}
		l.ips[ip] = v
	}
	v.seen = now
	return v.lim.AllowN(now, 1)
}

// clientIP strips the port from RemoteAddr. chi's RealIP middleware has already
// rewritten RemoteAddr from X-Forwarded-For / X-Real-IP when those are present.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// Middleware returns 429 when the client IP exceeds the rate.
func (l *IPRateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !l.allow(clientIP(r), time.Now()) {
			w.Header().Set("Retry-After", strconv.Itoa(int(l.retryAfter().Seconds())))
			writeJSONError(w, "too many requests", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (l *IPRateLimiter) retryAfter() time.Duration {
	if l.limit <= 0 {
		return time.Minute
	}
	d := time.Duration(float64(time.Second) / float64(l.limit))
	if d < time.Second {
		d = time.Second
	}
	return d
}

// AuthRateLimiter returns a limiter for register and token endpoints: 10 requests per minute per IP, burst 5.
func AuthRateLimiter() *IPRateLimiter {
	return NewIPRateLimiter(rate.Limit(10.0/60.0), 5)
}
