package api

import (
	"fmt"
	"net"
	"net/http"
	"net/netip"
	"strings"
	"sync"
	"time"

	"github.com/marcus/sitegate/internal/metrics"
)

// RateLimiter implements per-key fixed-window rate limiting.
type RateLimiter struct {
	mu        sync.Mutex
	buckets   map[string]*bucket
	lastSweep time.Time
}

type bucket struct {
	count    int
	windowAt time.Time
}

const sweepInterval = 5 * time.Minute

// NewRateLimiter creates a RateLimiter. Stale buckets are swept during Allow.
func NewRateLimiter() *RateLimiter {
	return &RateLimiter{buckets: make(map[string]*bucket), lastSweep: time.Now()}
}

// Allow checks if the key is within the rate limit (limit per 1-minute window).
func (rl *RateLimiter) Allow(key string, limit int) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	if now.Sub(rl.lastSweep) >= sweepInterval {
		rl.sweep(now)
	}

	b, ok := rl.buckets[key]
	if !ok || now.Sub(b.windowAt) >= time.Minute {
		rl.buckets[key] = &bucket{count: 1, windowAt: now}
		return true
	}
	if b.count >= limit {
		return false
	}
	b.count++
	return true
}

// sweep drops buckets whose window closed more than a minute ago. Caller holds mu.
func (rl *RateLimiter) sweep(now time.Time) {
	cutoff := now.Add(-2 * time.Minute)
	for k, b := range rl.buckets {
		if b.windowAt.Before(cutoff) {
			delete(rl.buckets, k)
		}
	}
	rl.lastSweep = now
}

// rateLimitMiddleware rate-limits every route except health and metrics by
// client IP.
func rateLimitMiddleware(rl *RateLimiter, limit int, trusted proxyList) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/healthz" || r.URL.Path == "/metrics" {
				next.ServeHTTP(w, r)
				return
			}
			ip := clientIP(r, trusted)
			if !rl.Allow("ip:"+ip, limit) {
				metrics.RecordRateLimited()
				logFor(r.Context()).Warn("rate limited", "ip", ip)
				w.Header().Set("Retry-After", "60")
				writeError(w, r, http.StatusTooManyRequests, ErrCodeRateLimited, "rate limit exceeded")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// proxyList is the set of reverse proxies whose X-Forwarded-For is believed.
type proxyList []netip.Prefix

// parseProxies accepts IPs and CIDR prefixes.
func parseProxies(entries []string) (proxyList, error) {
	var out proxyList
	for _, e := range entries {
		e = strings.TrimSpace(e)
		if e == "" {
			continue
		}
		if strings.Contains(e, "/") {
			p, err := netip.ParsePrefix(e)
			if err != nil {
				return nil, fmt.Errorf("trusted proxy %q: %w", e, err)
			}
			out = append(out, p.Masked())
			continue
		}
		a, err := netip.ParseAddr(e)
		if err != nil {
			return nil, fmt.Errorf("trusted proxy %q: %w", e, err)
		}
		a = a.Unmap()
		out = append(out, netip.PrefixFrom(a, a.BitLen()))
	}
	return out, nil
}

func (pl proxyList) contains(a netip.Addr) bool {
	a = a.Unmap()
	for _, p := range pl {
		if p.Contains(a) {
			return true
		}
	}
	return false
}

// clientIP keys the limiter on the connection's peer address. X-Forwarded-For
// is only consulted when the peer is a trusted proxy; the chain is walked from
// the right and the first untrusted hop is the client.
func clientIP(r *http.Request, trusted proxyList) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	peer, err := netip.ParseAddr(host)
	if err != nil || !trusted.contains(peer) {
		return host
	}

	hops := strings.Split(r.Header.Get("X-Forwarded-For"), ",")
	client := host
	for i := len(hops) - 1; i >= 0; i-- {
		a, err := netip.ParseAddr(strings.TrimSpace(hops[i]))
		if err != nil {
			break
		}
		client = a.Unmap().String()
		if !trusted.contains(a) {
			break
		}
	}
	return client
}
