package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/spektr-org/launchdash/dashboard"
	"github.com/spektr-org/launchdash/engine"
	"github.com/spektr-org/launchdash/schema"
)

func newSummaryCmd(opts *rootOptions) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print successful launches per site",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ds, err := opts.loadDataset()
			if err != nil {
				return err
			}
			table := engine.BuildTable(engine.TableSpec{
				Title:       "Successful Launches by Site",
				GroupKey:    schema.KeySite,
				Aggregation: engine.AggCount,
			}, dashboard.SuccessGroups(ds))

			out := cmd.OutOrStdout()
			switch format {
			case "table":
				return writeTable(out, table)
			case "csv":
				return writeTableCSV(out, table)
			case "json", "pretty":
				return writeJSON(out, table, format)
			}
			return fmt.Errorf("unknown format %q (want table, csv or json)", format)
		},
	}
	cmd.Flags().StringVar(&format, "format", "table", "table, csv, json or pretty")
	return cmd
}
