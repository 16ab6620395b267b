package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Jehuti-ms/AgriMetrics-sub000/internal/cli"
	"github.com/Jehuti-ms/AgriMetrics-sub000/internal/db"
	"github.com/Jehuti-ms/AgriMetrics-sub000/internal/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "agrimetrics",
		Short:   "AgriMetrics - local-first farm record keeping",
		Version: version.String(),
		Long: `AgriMetrics tracks production, income and expenses, sales, and feed
inventory. Records are always saved locally and synced to a remote store
whenever one is configured and reachable.`,
	}

	rootCmd.AddCommand(cli.InitCmd())
	rootCmd.AddCommand(cli.ProductionCmd())
	rootCmd.AddCommand(cli.TransactionCmd())
	rootCmd.AddCommand(cli.SaleCmd())
	rootCmd.AddCommand(cli.FeedCmd())
	rootCmd.AddCommand(cli.ReportCmd())
	rootCmd.AddCommand(cli.SyncCmd())

	err := rootCmd.Execute()
	db.Close()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
