package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/showcase/internal/app"
	"github.com/MrSnakeDoc/showcase/internal/assistant"
	"github.com/MrSnakeDoc/showcase/internal/domain"
)

func newDescribeCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "describe <record-id>",
		Short: "Generate a marketing description for a record",
		Long: `Ask the assistant for a short marketing description of a record.
The description is printed only; the catalog is not modified.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withCore(cmd.Context(), func(ctx context.Context, core *app.Core) error {
				record, ok, err := core.Catalog.Get(ctx, args[0])
				if err != nil {
					return err
				}
				if !ok {
					return fmt.Errorf("record %q: %w", args[0], domain.ErrNotFound)
				}

				desc := assistant.GenerateDescription(ctx, core.Factory.Gateway, record, core.Logger)
				_, err = fmt.Fprintln(cmd.OutOrStdout(), desc.Text)
				return err
			})
		},
	}
}
