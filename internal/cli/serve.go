package cli

import (
	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/showcase/internal/app"
)

func newServeCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server until SIGINT/SIGTERM",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log := opts.load()
			defer func() { _ = log.Sync() }()

			log.Debugf("configuration: %+v", cfg.Redacted())

			a, err := app.New(cmd.Context(), cfg, log)
			if err != nil {
				return err
			}
			return a.Run(cmd.Context())
		},
	}
}
