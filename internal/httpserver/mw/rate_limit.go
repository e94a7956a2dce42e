package mw

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/MrSnakeDoc/showcase/internal/logger"
	"github.com/MrSnakeDoc/showcase/internal/utils"
)

// RateLimitConfig configures a per-client token bucket. Clients start with
// Burst tokens and regain RefillPerMin per minute.
type RateLimitConfig struct {
	Scope        string // names the limited route group in logs
	Burst        int
	RefillPerMin int
	MaxClients   int           // idle clients are evicted early past this many buckets
	IdleTTL      time.Duration // bucket lifetime without requests
	TrustProxy   bool          // resolve IP from proxy headers when true

	Now    func() time.Time
	Logger logger.Logger
}

type tokenBucket struct {
	tokens   float64
	refilled time.Time
	seen     time.Time
}

type decision struct {
	allowed    bool
	remaining  int
	retryAfter int // seconds
}

// limiter guards every bucket with one mutex; a take is a few float ops.
type limiter struct {
	cfg      RateLimitConfig
	perSec   float64
	capacity float64

	mu        sync.Mutex
	buckets   map[string]*tokenBucket
	nextSweep time.Time
}

func newLimiter(cfg RateLimitConfig) *limiter {
	cfg.Burst = max(cfg.Burst, 1)
	cfg.RefillPerMin = max(cfg.RefillPerMin, 1)
	if cfg.IdleTTL <= 0 {
		cfg.IdleTTL = 15 * time.Minute
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Logger == nil {
		cfg.Logger = logger.NewNop()
	}
	return &limiter{
		cfg:       cfg,
		perSec:    float64(cfg.RefillPerMin) / 60.0,
		capacity:  float64(cfg.Burst),
		buckets:   make(map[string]*tokenBucket),
		nextSweep: cfg.Now().Add(time.Minute),
	}
}

func (l *limiter) take(client string, now time.Time) decision {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !now.Before(l.nextSweep) || (l.cfg.MaxClients > 0 && len(l.buckets) >= l.cfg.MaxClients) {
		l.evictIdle(now)
	}

	b, ok := l.buckets[client]
	if !ok {
		b = &tokenBucket{tokens: l.capacity, refilled: now}
		l.buckets[client] = b
	}
	b.seen = now

	if elapsed := now.Sub(b.refilled).Seconds(); elapsed > 0 {
		b.tokens = math.Min(l.capacity, b.tokens+elapsed*l.perSec)
		b.refilled = now
	}

	if b.tokens < 1 {
		wait := int(math.Ceil((1 - b.tokens) / l.perSec))
		return decision{retryAfter: max(wait, 1)}
	}
	b.tokens--
	return decision{allowed: true, remaining: int(b.tokens)}
}

func (l *limiter) evictIdle(now time.Time) {
	for client, b := range l.buckets {
		if now.Sub(b.seen) > l.cfg.IdleTTL {
			delete(l.buckets, client)
		}
	}
	l.nextSweep = now.Add(time.Minute)
}

func (l *limiter) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}

// RateLimit answers 429 with Retry-After once a client's bucket is empty.
// The X-RateLimit-* headers are set on every response.
func RateLimit(cfg RateLimitConfig) func(http.Handler) http.Handler {
	return rateLimit(newLimiter(cfg))
}

func rateLimit(l *limiter) func(http.Handler) http.Handler {
	limit := strconv.Itoa(l.cfg.Burst)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			client := utils.ClientIP(r, l.cfg.TrustProxy)
			d := l.take(client, l.cfg.Now())

			h := w.Header()
			h.Set("X-RateLimit-Limit", limit)
			h.Set("X-RateLimit-Remaining", strconv.Itoa(d.remaining))
			if d.allowed {
				next.ServeHTTP(w, r)
				return
			}

			l.cfg.Logger.Debug("rate limited",
				logger.String("scope", l.cfg.Scope),
				logger.String("client", client),
				logger.Int("retry_after", d.retryAfter))
			h.Set("Retry-After", strconv.Itoa(d.retryAfter))
			h.Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte(`{"error":"rate limit exceeded"}` + "\n"))
		})
	}
}
