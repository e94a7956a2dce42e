package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MrSnakeDoc/showcase/internal/config"
	"github.com/MrSnakeDoc/showcase/internal/httpserver"
	"github.com/MrSnakeDoc/showcase/internal/httpserver/deps"
	"github.com/MrSnakeDoc/showcase/internal/logger"
	"github.com/MrSnakeDoc/showcase/internal/scheduler"
	"github.com/MrSnakeDoc/showcase/internal/utils"
	"github.com/MrSnakeDoc/showcase/internal/version"
)

type App struct {
	cfg      *config.Config
	logger   logger.Logger
	core     *Core
	server   *httpserver.Server
	reloader *scheduler.CatalogReloader
	reaper   *scheduler.SessionReaper
}

func New(ctx context.Context, cfg *config.Config, loggerClient logger.Logger) (*App, error) {
	core, err := NewCore(ctx, cfg, loggerClient)
	if err != nil {
		return nil, err
	}

	// Create manual reload trigger channel
	reloadTrigger := make(chan struct{}, 1)

	reloader := scheduler.NewCatalogReloader(
		core.Store,
		loggerClient,
		cfg.ReloadInterval,
		reloadTrigger,
	)

	reaper := scheduler.NewSessionReaper(
		core.Sessions,
		core.Clock,
		loggerClient,
		cfg.SessionSweepInterval,
		cfg.SessionIdleTTL,
	)

	// Dependencies passed to routes (extend as needed).
	d := deps.Deps{
		Logger:           loggerClient,
		StartTime:        time.Now(),
		Version:          version.Version,
		Commit:           version.Commit,
		BuildDate:        version.BuildDate,
		GoVersion:        version.GoVersion,
		TimeNow:          time.Now,
		AllowedHosts:     cfg.AllowedHosts,
		AllowedCIDRS:     cfg.AllowedCIDRS,
		TrustProxy:       cfg.TrustProxy,
		RequestTimeout:   cfg.RequestTimeout,
		ChatBurst:        cfg.ChatBurst,
		ChatRefillPerMin: cfg.ChatRefillPerMin,
		Persona:          core.Persona,
		Catalog:          core.Catalog,
		Comments:         core.Comments,
		Sessions:         core.Sessions,
		Factory:          core.Factory,
		Backend:          core.Backend(),
		BackendPing:      core.Ping,
		ReloadTrigger:    reloadTrigger,
	}

	server := httpserver.New(cfg, loggerClient, d)

	return &App{
		cfg:      cfg,
		logger:   loggerClient,
		core:     core,
		server:   server,
		reloader: reloader,
		reaper:   reaper,
	}, nil
}

// Run serves until ctx is done or SIGINT/SIGTERM arrives, then shuts down.
func (a *App) Run(ctx context.Context) error {
	a.logger.Infof("🚀 Starting showcase v%s on %s", version.Version, a.cfg.ListenPort)
	a.logger.Infof("showcase %s (commit=%s, built=%s, go=%s)",
		version.Version, version.Commit, version.BuildDate, version.GoVersion)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	defer utils.MustClose(a.core, "core", a.logger)

	// Start catalog reloader (loads the catalog and listens for reload triggers)
	if err := a.reloader.Start(ctx); err != nil {
		return fmt.Errorf("failed to start catalog reloader: %w", err)
	}
	a.logger.Info("catalog reloader started",
		logger.String("backend", a.core.Backend()),
		logger.Duration("interval", a.cfg.ReloadInterval))

	// Start session reaper
	a.reaper.Start(ctx)
	a.logger.Info("session reaper started",
		logger.String("assistant_mode", a.core.Factory.Mode()),
		logger.Duration("interval", a.cfg.SessionSweepInterval),
		logger.Duration("idle_ttl", a.cfg.SessionIdleTTL))

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("⏳ Shutting down gracefully...")
	case err := <-errCh:
		a.reloader.Stop()
		a.reaper.Stop()
		return err
	}

	a.reloader.Stop()
	a.reaper.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}

	a.logger.Info("✅ showcase stopped cleanly")
	return nil
}
