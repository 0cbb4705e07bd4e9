package main

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/DanieelRC/LegislaBot/internal/wire"
)

var usageDays int

var usageCmd = &cobra.Command{
	Use:   "usage",
	Short: "Show recorded API usage per day",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withCore(cmd, func(ctx context.Context, core *wire.Core) error {
			days, err := core.Usage.Daily(ctx, usageDays)
			if err != nil {
				return err
			}
			if len(days) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no usage recorded")
				return nil
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "DATE\tTOKENS\tCOST (USD)")
			var tokens int64
			var cost float64
			for _, d := range days {
				fmt.Fprintf(tw, "%s\t%d\t%.4f\n", d.Date, d.Tokens, d.Cost)
				tokens += d.Tokens
				cost += d.Cost
			}
			fmt.Fprintf(tw, "TOTAL\t%d\t%.4f\n", tokens, cost)
			return tw.Flush()
		})
	},
}
