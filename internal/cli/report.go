package cli

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Jehuti-ms/AgriMetrics-sub000/internal/wire"
)

// ReportCmd returns the report command
func ReportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Farm-wide reports",
	}

	cmd.AddCommand(reportSummaryCmd())

	return cmd
}

func reportSummaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Show the farm-wide summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			probeRemote(ctx)

			summary, err := wire.ReportService().Summary(ctx)
			if err != nil {
				return fmt.Errorf("failed to build summary: %w", err)
			}

			bold := color.New(color.Bold)

			bold.Println("Production")
			w := newTable()
			fmt.Fprintln(w, "  PRODUCT\tTOTAL")
			for product, total := range summary.Production {
				fmt.Fprintf(w, "  %s\t%v\n", product, total)
			}
			w.Flush()

			bold.Println("Finances")
			fmt.Printf("  Income %.2f, expense %.2f, balance %.2f, sales revenue %.2f\n",
				summary.Income, summary.Expense, summary.Balance, summary.SalesRevenue)

			bold.Println("Feed stock")
			w = newTable()
			fmt.Fprintln(w, "  FEED\tKG ON HAND")
			for feedType, kg := range summary.FeedStockKg {
				fmt.Fprintf(w, "  %s\t%v\n", feedType, kg)
			}
			w.Flush()

			bold.Println("Sync")
			w = newTable()
			fmt.Fprintln(w, "  COLLECTION\tTOTAL\tSYNCED\tPENDING\tSTALE")
			for _, st := range summary.Collections {
				fmt.Fprintf(w, "  %s\t%d\t%d\t%d\t%d\n",
					st.Collection, st.Total, st.Synced, st.LocalOnly, st.Stale)
			}
			return w.Flush()
		},
	}
}
