package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/showcase/internal/app"
	"github.com/MrSnakeDoc/showcase/internal/domain"
)

func newRecordsCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "records",
		Short: "Inspect or reset the record catalog",
	}
	cmd.AddCommand(newRecordsListCmd(opts))
	cmd.AddCommand(newRecordsResetCmd(opts))
	return cmd
}

func newRecordsListCmd(opts *globalOptions) *cobra.Command {
	var (
		category string
		query    string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print the catalog",
		Long: `Print the catalog in stored order, or ranked by relevance with --query.

Examples:
  showcase records list
  showcase records list --category Documentary
  showcase records list --query "motion typography"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c := domain.CategoryAll
			if category != "" {
				parsed, err := domain.ParseCategory(category)
				if err != nil {
					return err
				}
				c = parsed
			}

			return opts.withCore(cmd.Context(), func(ctx context.Context, core *app.Core) error {
				records, err := listRecords(ctx, core, c, query)
				if err != nil {
					return err
				}
				return printRecords(cmd.OutOrStdout(), records)
			})
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "", "filter by category label")
	cmd.Flags().StringVarP(&query, "query", "q", "", "rank by relevance to query")
	return cmd
}

func listRecords(ctx context.Context, core *app.Core, c domain.Category, query string) ([]domain.Record, error) {
	if strings.TrimSpace(query) == "" {
		return core.Catalog.ListByCategory(ctx, c)
	}

	candidates, err := core.Catalog.Search(ctx, query, c)
	if err != nil {
		return nil, err
	}
	records := make([]domain.Record, 0, len(candidates))
	for _, cand := range candidates {
		records = append(records, cand.Record)
	}
	return records, nil
}

func printRecords(w io.Writer, records []domain.Record) error {
	if len(records) == 0 {
		_, err := fmt.Fprintln(w, "No records found.")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "ID\tCATEGORY\tVIEWS\tTITLE")
	for _, r := range records {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", r.ID, r.Category, r.ViewCount, r.Title)
	}
	return tw.Flush()
}

func newRecordsResetCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Overwrite the durable catalog with the seed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.withCore(cmd.Context(), func(ctx context.Context, core *app.Core) error {
				if err := core.Store.Reset(ctx); err != nil {
					return err
				}
				_, err := fmt.Fprintf(cmd.OutOrStdout(), "Catalog reset: %d records written to %s (%s)\n",
					core.Store.Count(), core.Store.ResourceName(), core.Backend())
				return err
			})
		},
	}
}
