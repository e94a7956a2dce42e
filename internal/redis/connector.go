package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/showcase/internal/clock"
	"github.com/MrSnakeDoc/showcase/internal/config"
	"github.com/MrSnakeDoc/showcase/internal/logger"
)

// ConnectOptions configures the client behind the redis resource backend
// and how long startup waits for the server.
type ConnectOptions struct {
	Addr         string // host:port
	User         string
	Password     string
	RedisDB      int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	PoolSize     int

	ConnectTimeout time.Duration // overall budget for reaching the server
	RetryInterval  time.Duration // first wait, doubled after each failure
	MaxWait        time.Duration // cap on a single wait
	PingTimeout    time.Duration // per attempt
	WarnThreshold  int           // failures logged at warn before switching to error
}

// OptionsFromConfig maps the SHOWCASE_REDIS_* and REDIS_* settings.
func OptionsFromConfig(cfg *config.Config) ConnectOptions {
	return ConnectOptions{
		Addr:           cfg.RedisAddr,
		User:           cfg.RedisUser,
		Password:       cfg.RedisPassword,
		RedisDB:        cfg.RedisDB,
		DialTimeout:    cfg.RedisDT,
		ReadTimeout:    cfg.RedisRT,
		WriteTimeout:   cfg.RedisWT,
		PoolSize:       cfg.RedisPoolSize,
		ConnectTimeout: cfg.RedisConnectTimeout,
		RetryInterval:  cfg.RedisRetryInterval,
		MaxWait:        cfg.RedisMaxWait,
		PingTimeout:    cfg.RedisPingTimeout,
		WarnThreshold:  cfg.RedisWarnThreshold,
	}
}

// Validate reports every retry setting that cannot drive the connect loop.
func (o ConnectOptions) Validate() error {
	var errs []error
	positive := []struct {
		name string
		v    time.Duration
	}{
		{"ConnectTimeout", o.ConnectTimeout},
		{"RetryInterval", o.RetryInterval},
		{"MaxWait", o.MaxWait},
		{"PingTimeout", o.PingTimeout},
	}
	for _, p := range positive {
		if p.v <= 0 {
			errs = append(errs, fmt.Errorf("%s must be > 0, got %v", p.name, p.v))
		}
	}
	if o.WarnThreshold < 0 {
		errs = append(errs, fmt.Errorf("WarnThreshold must be >= 0, got %d", o.WarnThreshold))
	}
	return errors.Join(errs...)
}

// New opens a client for the resource backend and blocks until the server
// answers a PING, ConnectTimeout elapses or ctx ends. The client is closed
// when the server never answers.
func New(ctx context.Context, opts ConnectOptions, log logger.Logger) (*redis.Client, error) {
	if err := opts.Validate(); err != nil {
		log.Error("invalid redis options", logger.Error(err))
		return nil, err
	}

	client := redis.NewClient(&redis.Options{
		Addr:         opts.Addr,
		Username:     opts.User,
		Password:     opts.Password,
		DB:           opts.RedisDB,
		DialTimeout:  opts.DialTimeout,
		ReadTimeout:  opts.ReadTimeout,
		WriteTimeout: opts.WriteTimeout,
		PoolSize:     opts.PoolSize,
	})

	ping := func(ctx context.Context) error { return client.Ping(ctx).Err() }
	w := waiter{opts: opts, clock: clock.System{}, log: log}
	if err := w.wait(ctx, ping); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}

// waiter retries a ping with capped exponential backoff.
type waiter struct {
	opts  ConnectOptions
	clock clock.Clock
	log   logger.Logger
}

func (w waiter) wait(ctx context.Context, ping func(context.Context) error) error {
	addr := w.opts.Addr
	start := w.clock.Now()
	deadline := start.Add(w.opts.ConnectTimeout)
	w.log.Info("waiting for redis resource backend",
		logger.String("addr", addr),
		logger.Duration("timeout", w.opts.ConnectTimeout))

	backoff := w.opts.RetryInterval
	for attempt := 1; ; attempt++ {
		pingCtx, cancel := context.WithTimeout(ctx, w.opts.PingTimeout)
		err := ping(pingCtx)
		cancel()
		if err == nil {
			w.logConnected(attempt, w.clock.Now().Sub(start))
			return nil
		}

		remaining := deadline.Sub(w.clock.Now())
		if remaining <= 0 {
			w.log.Error("redis resource backend unreachable",
				logger.String("addr", addr),
				logger.Int("attempts", attempt),
				logger.Error(err))
			return fmt.Errorf("redis unavailable at %s after %d attempts (timeout: %v): %w",
				addr, attempt, w.opts.ConnectTimeout, err)
		}

		pause := min(backoff, remaining)
		w.logRetry(attempt, remaining, pause, err)
		if serr := w.clock.Sleep(ctx, pause); serr != nil {
			return fmt.Errorf("redis wait at %s interrupted after %d attempts: %w", addr, attempt, serr)
		}
		backoff = min(backoff*2, w.opts.MaxWait)
	}
}

func (w waiter) logConnected(attempts int, elapsed time.Duration) {
	if attempts == 1 {
		w.log.Info("connected to redis", logger.String("addr", w.opts.Addr))
		return
	}
	w.log.Warn("connected to redis after retry",
		logger.String("addr", w.opts.Addr),
		logger.Int("attempts", attempts),
		logger.Duration("elapsed", elapsed))
}

// logRetry escalates to error once past WarnThreshold or close to the deadline.
func (w waiter) logRetry(attempt int, remaining, pause time.Duration, err error) {
	fields := []logger.Field{
		logger.String("addr", w.opts.Addr),
		logger.Int("attempt", attempt),
		logger.Duration("remaining", remaining),
		logger.Duration("next_retry_in", pause),
		logger.Error(err),
	}
	if attempt <= w.opts.WarnThreshold && remaining >= 10*time.Second {
		w.log.Warn("redis not reachable yet, retrying", fields...)
		return
	}
	w.log.Error("redis still unreachable, retrying", fields...)
}
