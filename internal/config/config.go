package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// Durable backends for the catalog resource.
const (
	BackendBolt   = "bolt"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

type Config struct {
	ListenPort      string        // ex: ":8080"
	ShutdownTimeout time.Duration // ex: 5s
	RequestTimeout  time.Duration // per-request timeout for REST routes (not the websocket stream)

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	// Catalog
	StoreBackend   string        // "bolt" | "redis" | "memory"
	BoltPath       string        // ex: "data/showcase.db"
	StoreKey       string        // name of the durable resource
	SeedFile       string        // optional YAML replacing the built-in seed
	ProfileFile    string        // optional YAML replacing profile, skills and experience
	ReloadInterval time.Duration // periodic catalog reload (0 = manual only)
	LatencyList    time.Duration
	LatencyGet     time.Duration
	LatencySave    time.Duration
	LatencyDelete  time.Duration

	// Redis (only when StoreBackend == "redis")
	RedisAddr             string        // ex: "localhost:6379"
	RedisUser             string        // optional
	RedisPassword         string        // optional
	RedisPasswordRequired bool          // true => require password, false => allow empty password
	RedisDB               int           // Redis DB number
	RedisDT               time.Duration // Redis dial timeout (ex: 5s)
	RedisRT               time.Duration // Redis read timeout (ex: 3s)
	RedisWT               time.Duration // Redis write timeout (ex: 3s)
	RedisMaxWait          time.Duration // max wait between retries (ex: 10s)
	RedisPingTimeout      time.Duration // timeout for each ping attempt (ex: 5s)
	RedisPoolSize         int           // Redis connection pool size
	RedisConnectTimeout   time.Duration // Total time to retry connecting (ex: 30s)
	RedisRetryInterval    time.Duration // Initial wait between retries (ex: 2s, grows exponentially)
	RedisWarnThreshold    int           // warn after this many attempts

	// Assistant
	AIProvider     string        // "googleai" | "openai" | "anthropic" | "ollama"
	AIAPIKey       string        // empty => degraded mode
	AIModel        string        // ex: "gemini-2.5-flash"
	OllamaHost     string        // ex: "http://localhost:11434"
	AIReplyTimeout time.Duration // 0 = no timeout
	DegradedDelay  time.Duration // simulated reply delay

	// Sessions
	SessionIdleTTL       time.Duration // close sessions idle for longer
	SessionSweepInterval time.Duration // how often idle sessions are swept

	AllowedHosts     []string // optional, restrict admin routes to specific Host headers
	AllowedCIDRS     []string // optional, restrict admin routes to specific IPs (e.g. "1.2.3.4, 10.0.0.0/8")
	TrustProxy       bool     // true => trust X-Forwarded-For headers (e.g. cloudflared)
	ChatBurst        int      // token bucket size for chat and description routes
	ChatRefillPerMin int      // tokens added per minute
}

func Load() *Config {
	cfg := &Config{
		// Server settings
		ListenPort:      getenv("SHOWCASE_LISTEN_PORT", ":8080"),
		ShutdownTimeout: mustDuration("SHOWCASE_SHUTDOWN_TIMEOUT", 5*time.Second),
		RequestTimeout:  mustDuration("SHOWCASE_REQUEST_TIMEOUT", 30*time.Second),

		// Logging
		LogLevel:  getenv("SHOWCASE_LOG_LEVEL", "info"),
		PrettyLog: mustBool("SHOWCASE_PRETTY_LOG", true),

		// Catalog
		StoreBackend:   strings.ToLower(getenv("SHOWCASE_STORE_BACKEND", BackendBolt)),
		BoltPath:       getenv("SHOWCASE_BOLT_PATH", "data/showcase.db"),
		StoreKey:       getenv("SHOWCASE_STORE_KEY", "showcase_portfolio_data"),
		SeedFile:       getenv("SHOWCASE_SEED_FILE", ""),
		ProfileFile:    getenv("SHOWCASE_PROFILE_FILE", ""),
		ReloadInterval: mustDuration("SHOWCASE_CATALOG_RELOAD_INTERVAL", 0),
		LatencyList:    mustDuration("SHOWCASE_LATENCY_LIST", 300*time.Millisecond),
		LatencyGet:     mustDuration("SHOWCASE_LATENCY_GET", 200*time.Millisecond),
		LatencySave:    mustDuration("SHOWCASE_LATENCY_SAVE", 400*time.Millisecond),
		LatencyDelete:  mustDuration("SHOWCASE_LATENCY_DELETE", 300*time.Millisecond),

		// Redis settings
		RedisUser:             getenv("SHOWCASE_REDIS_USERNAME", "default"),
		RedisPasswordRequired: mustBool("SHOWCASE_REDIS_PASSWORD_REQUIRED", false),
		RedisPassword:         getenv("SHOWCASE_REDIS_PASSWORD", ""),
		RedisDB:               getenvInt("SHOWCASE_REDIS_DB", 0),
		RedisDT:               mustDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
		RedisRT:               mustDuration("REDIS_READ_TIMEOUT", 3*time.Second),
		RedisWT:               mustDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		RedisMaxWait:          mustDuration("REDIS_MAX_WAIT", 10*time.Second),
		RedisPingTimeout:      mustDuration("REDIS_PING_TIMEOUT", 5*time.Second),
		RedisPoolSize:         getenvInt("REDIS_POOL_SIZE", 10),
		RedisConnectTimeout:   mustDuration("REDIS_CONNECT_TIMEOUT", 30*time.Second),
		RedisRetryInterval:    mustDuration("REDIS_RETRY_INTERVAL", 2*time.Second),
		RedisWarnThreshold:    getenvInt("REDIS_WARN_THRESHOLD", 3),

		// Assistant
		AIProvider:     strings.ToLower(getenv("SHOWCASE_AI_PROVIDER", "googleai")),
		AIAPIKey:       getenv("SHOWCASE_AI_API_KEY", os.Getenv("API_KEY")),
		AIModel:        getenv("SHOWCASE_AI_MODEL", "gemini-2.5-flash"),
		OllamaHost:     getenv("SHOWCASE_OLLAMA_HOST", ""),
		AIReplyTimeout: mustDuration("SHOWCASE_AI_REPLY_TIMEOUT", 0),
		DegradedDelay:  mustDuration("SHOWCASE_DEGRADED_DELAY", time.Second),

		// Sessions
		SessionIdleTTL:       mustDuration("SHOWCASE_SESSION_IDLE_TTL", 30*time.Minute),
		SessionSweepInterval: mustDuration("SHOWCASE_SESSION_SWEEP_INTERVAL", 5*time.Minute),

		// Access restrictions
		AllowedHosts:     splitAndTrim(getenv("SHOWCASE_ALLOWED_HOSTS", "")),
		AllowedCIDRS:     parseAllowedIPs(getenv("SHOWCASE_ADMIN_CIDRS", "")),
		TrustProxy:       mustBool("SHOWCASE_TRUST_PROXY", false),
		ChatBurst:        getenvInt("SHOWCASE_CHAT_BURST", 5),
		ChatRefillPerMin: getenvInt("SHOWCASE_CHAT_REFILL_PER_MIN", 20),
	}

	switch cfg.StoreBackend {
	case BackendBolt, BackendMemory:
	case BackendRedis:
		cfg.RedisAddr = requireEnv("SHOWCASE_REDIS_ADDR")
		// Validate Redis password configuration
		if cfg.RedisPasswordRequired && cfg.RedisPassword == "" {
			panic("❌ FATAL: SHOWCASE_REDIS_PASSWORD is required when SHOWCASE_REDIS_PASSWORD_REQUIRED=true")
		}
	default:
		panic(fmt.Sprintf("❌ FATAL: Unknown SHOWCASE_STORE_BACKEND %q (want bolt, redis or memory)", cfg.StoreBackend))
	}

	// Log config only in debug mode with redacted sensitive fields
	if cfg.LogLevel == "debug" {
		log.Printf("[DEBUG] cfg: %+v\n", cfg.Redacted())
	}

	return cfg
}

// Redacted returns a copy safe to log.
func (c Config) Redacted() Config {
	const mask = "***REDACTED***"
	if c.RedisPassword != "" {
		c.RedisPassword = mask
	}
	if c.RedisUser != "" {
		c.RedisUser = mask
	}
	if c.AIAPIKey != "" {
		c.AIAPIKey = mask
	}
	return c
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func requireEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		panic(fmt.Sprintf("❌ FATAL: Required environment variable %s is not set", key))
	}
	return v
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func mustBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func mustDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func parseAllowedIPs(allowed string) []string {
	if allowed == "" {
		return nil
	}
	ips := make([]string, 0, 4)
	for _, ip := range splitAndTrim(allowed) {
		if ip != "" {
			ips = append(ips, ip)
		}
	}
	return ips
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	raw := strings.Split(s, ",")
	parts := make([]string, 0, len(raw))
	for _, part := range raw {
		trimmed := strings.TrimSpace(part)
		// Remove surrounding quotes if present
		trimmed = strings.Trim(trimmed, `"'`)
		if trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}
