package app

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/MrSnakeDoc/showcase/internal/assistant"
	"github.com/MrSnakeDoc/showcase/internal/catalog"
	"github.com/MrSnakeDoc/showcase/internal/clock"
	"github.com/MrSnakeDoc/showcase/internal/comments"
	"github.com/MrSnakeDoc/showcase/internal/config"
	"github.com/MrSnakeDoc/showcase/internal/domain"
	"github.com/MrSnakeDoc/showcase/internal/index"
	"github.com/MrSnakeDoc/showcase/internal/logger"
	"github.com/MrSnakeDoc/showcase/internal/redis"
	"github.com/MrSnakeDoc/showcase/internal/seed"
	"github.com/MrSnakeDoc/showcase/internal/store"
	boltstore "github.com/MrSnakeDoc/showcase/internal/store/bolt"
	redisstore "github.com/MrSnakeDoc/showcase/internal/store/redis"
)

// Core holds the components shared by the HTTP app and the CLI commands.
// The catalog is not loaded yet when NewCore returns.
type Core struct {
	Config   *config.Config
	Logger   logger.Logger
	Clock    clock.Clock
	Persona  domain.Persona
	Resource store.Resource
	Store    *catalog.Store
	Catalog  *catalog.Service
	Sessions *index.SessionIndex
	Factory  assistant.Factory
	Comments *comments.Board

	ping    func(context.Context) error
	closers []namedCloser
}

type namedCloser struct {
	name string
	c    io.Closer
}

// NewCore builds every component from cfg. Resources already opened are
// released if a later step fails.
func NewCore(ctx context.Context, cfg *config.Config, log logger.Logger) (core *Core, err error) {
	c := &Core{
		Config:   cfg,
		Logger:   log,
		Clock:    clock.System{},
		Sessions: index.NewSessionIndex(),
	}
	defer func() {
		if err != nil {
			c.closeResources()
		}
	}()

	persona, records, err := loadSeed(cfg, log)
	if err != nil {
		return nil, err
	}
	c.Persona = persona

	if err := c.openResource(ctx); err != nil {
		return nil, err
	}

	c.Store = catalog.NewStore(c.Resource, records, log)
	c.Catalog = catalog.NewService(c.Store, c.Clock, catalog.Latency{
		List:   cfg.LatencyList,
		Get:    cfg.LatencyGet,
		Save:   cfg.LatencySave,
		Delete: cfg.LatencyDelete,
	})
	c.Comments = comments.NewBoard(c.Clock)

	gw, err := assistant.NewGateway(ctx, assistant.Config{
		Provider:   assistant.Provider(cfg.AIProvider),
		APIKey:     cfg.AIAPIKey,
		Model:      cfg.AIModel,
		OllamaHost: cfg.OllamaHost,
	}, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create assistant gateway: %w", err)
	}
	c.Factory = assistant.Factory{
		Gateway: gw,
		Base: assistant.Options{
			Persona:       persona,
			Clock:         c.Clock,
			DegradedDelay: cfg.DegradedDelay,
			ReplyTimeout:  cfg.AIReplyTimeout,
			Logger:        log,
		},
	}

	return c, nil
}

// loadSeed returns the persona and record seed, applying the optional files.
func loadSeed(cfg *config.Config, log logger.Logger) (domain.Persona, []domain.Record, error) {
	persona := seed.DefaultPersona()
	records := seed.DefaultRecords()

	if cfg.ProfileFile != "" {
		p, err := seed.NewLoader(cfg.ProfileFile).LoadPersona()
		if err != nil {
			return persona, nil, fmt.Errorf("failed to load profile file: %w", err)
		}
		persona = p
		log.Info("profile override loaded", logger.String("file", cfg.ProfileFile))
	}

	if cfg.SeedFile != "" {
		r, err := seed.NewLoader(cfg.SeedFile).LoadRecords()
		if err != nil {
			return persona, nil, fmt.Errorf("failed to load seed file: %w", err)
		}
		records = r
		log.Info("record seed override loaded",
			logger.String("file", cfg.SeedFile),
			logger.Int("records", len(records)))
	}

	return persona, records, nil
}

func (c *Core) openResource(ctx context.Context) error {
	switch c.Config.StoreBackend {
	case config.BackendRedis:
		client, err := redis.New(ctx, redis.OptionsFromConfig(c.Config), c.Logger)
		if err != nil {
			return fmt.Errorf("failed to connect to redis: %w", err)
		}
		c.closers = append(c.closers, namedCloser{"redis", client})
		res := redisstore.NewResource(client, c.Config.StoreKey)
		c.Resource = res
		c.ping = res.Ping
		return nil

	case config.BackendMemory:
		c.Logger.Warn("memory backend selected, catalog changes will not survive a restart")
		c.Resource = store.NewMemory(c.Config.StoreKey)
		return nil

	default:
		res, err := boltstore.Open(c.Config.BoltPath, c.Config.StoreKey)
		if err != nil {
			return fmt.Errorf("failed to open bolt database: %w", err)
		}
		c.closers = append(c.closers, namedCloser{"bolt", res})
		c.Resource = res
		c.Logger.Info("bolt resource opened",
			logger.String("path", res.Path()),
			logger.String("key", res.Name()))
		return nil
	}
}

// Backend returns the configured durable backend.
func (c *Core) Backend() string { return c.Config.StoreBackend }

// Ping checks the durable backend. Backends without a network hop are
// always reachable.
func (c *Core) Ping(ctx context.Context) error {
	if c.ping == nil {
		return nil
	}
	return c.ping(ctx)
}

// OpenSession opens an assistant session, optionally scoped to a record
// fetched from the catalog, and registers it. An unknown recordID is
// ErrNotFound.
func (c *Core) OpenSession(ctx context.Context, recordID string) (*assistant.Session, error) {
	return c.Sessions.Open(ctx, c.Catalog, c.Factory, recordID)
}

// Close ends every session and releases the durable backend.
func (c *Core) Close() error {
	if n := c.Sessions.CloseAll(); n > 0 {
		c.Logger.Info("closed open sessions", logger.Int("count", n))
	}
	return c.closeResources()
}

func (c *Core) closeResources() error {
	var errs []error
	for i := len(c.closers) - 1; i >= 0; i-- {
		nc := c.closers[i]
		if err := nc.c.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close %s: %w", nc.name, err))
		}
	}
	c.closers = nil
	return errors.Join(errs...)
}
