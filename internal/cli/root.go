// Package cli provides the showcase command-line interface.
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/showcase/internal/app"
	"github.com/MrSnakeDoc/showcase/internal/config"
	"github.com/MrSnakeDoc/showcase/internal/logger"
	"github.com/MrSnakeDoc/showcase/internal/utils"
	"github.com/MrSnakeDoc/showcase/internal/version"
)

// globalOptions are the persistent flags shared by every command.
type globalOptions struct {
	logLevel string
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	opts := &globalOptions{}

	root := &cobra.Command{
		Use:   "showcase",
		Short: "Portfolio showcase server and tools",
		Long: `Showcase serves a creator's portfolio: a record catalog with search and
comments, plus an AI assistant that answers questions about the work.

Without an AI credential the assistant runs in degraded mode and simulates
its replies.

Examples:
  showcase serve
  showcase records list --category "Web Apps"
  showcase records list --query motion
  showcase describe subtitle-studio
  showcase chat motion-graphics-yas`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "",
		"override SHOWCASE_LOG_LEVEL (debug, info, warn, error)")

	root.AddCommand(newServeCmd(opts))
	root.AddCommand(newRecordsCmd(opts))
	root.AddCommand(newDescribeCmd(opts))
	root.AddCommand(newChatCmd(opts))

	return root
}

// Execute runs the root command with ctx.
func Execute(ctx context.Context) error {
	return NewRootCmd().ExecuteContext(ctx)
}

// load reads the environment configuration and builds the logger.
func (o *globalOptions) load() (*config.Config, logger.Logger) {
	cfg := config.Load()
	if o.logLevel != "" {
		cfg.LogLevel = o.logLevel
	}
	return cfg, logger.New(cfg.LogLevel, cfg.PrettyLog)
}

// withCore builds the shared components, loads the catalog and runs fn.
// Everything is released when fn returns.
func (o *globalOptions) withCore(ctx context.Context, fn func(ctx context.Context, core *app.Core) error) error {
	cfg, log := o.load()
	defer func() { _ = log.Sync() }()

	core, err := app.NewCore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer utils.MustClose(core, "core", log)

	if err := core.Store.Load(ctx); err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}
	return fn(ctx, core)
}
