package httpserver

import (
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/juju/ratelimit"

	"github.com/robalobadob/pillgame/apps/go-server/internal/metrics"
)

const pruneEvery = 30 * time.Minute

// rateLimiter keeps one token bucket per client IP.
type rateLimiter struct {
	rate     float64
	capacity int64

	mu        sync.RWMutex
	clients   map[string]*ratelimit.Bucket
	lastPrune time.Time
}

func newRateLimiter(rate float64, capacity int64) *rateLimiter {
	if capacity < 1 {
		capacity = 1
	}
	return &rateLimiter{
		rate:      rate,
		capacity:  capacity,
		clients:   make(map[string]*ratelimit.Bucket),
		lastPrune: time.Now(),
	}
}

func (rl *rateLimiter) getBucket(clientIP string) *ratelimit.Bucket {
	rl.mu.RLock()
	bucket, exists := rl.clients[clientIP]
	rl.mu.RUnlock()

	if !exists {
		rl.mu.Lock()
		if time.Since(rl.lastPrune) > pruneEvery {
			rl.pruneLocked()
		}
		if bucket, exists = rl.clients[clientIP]; !exists {
			bucket = ratelimit.NewBucketWithRate(rl.rate, rl.capacity)
			rl.clients[clientIP] = bucket
		}
		metrics.RateLimiterBucketsTotal.Set(float64(len(rl.clients)))
		rl.mu.Unlock()
	}
	return bucket
}

// pruneLocked forgets clients whose bucket has refilled. Caller holds mu.
func (rl *rateLimiter) pruneLocked() {
	for ip, bucket := range rl.clients {
		if bucket.Available() == bucket.Capacity() {
			delete(rl.clients, ip)
		}
	}
	rl.lastPrune = time.Now()
}

// tokenCost is free for probes and one token for everything else.
func tokenCost(r *http.Request) int64 {
	switch r.URL.Path {
	case "/health", "/metrics":
		return 0
	}
	return 1
}

func clientIP(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}

func (rl *rateLimiter) middleware(next http.Handler) http.Handler {
	limit := strconv.FormatInt(rl.capacity, 10)
	rate := strconv.FormatFloat(rl.rate, 'f', -1, 64)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cost := tokenCost(r)
		if cost == 0 {
			next.ServeHTTP(w, r)
			return
		}
		bucket := rl.getBucket(clientIP(r))

		w.Header().Set("X-RateLimit-Limit", limit)
		w.Header().Set("X-RateLimit-Rate", rate)
		if bucket.TakeAvailable(cost) < cost {
			w.Header().Set("X-RateLimit-Remaining", "0")
			w.Header().Set("Retry-After", "1")
			metrics.RateLimitRejections.Inc()
			writeErr(w, http.StatusTooManyRequests, "rate_limited")
			return
		}
		w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(bucket.Available(), 10))
		next.ServeHTTP(w, r)
	})
}
