package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Jehuti-ms/AgriMetrics-sub000/internal/wire"
)

// SyncCmd returns the sync command
func SyncCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Push pending records to the remote store",
		Long: `Manage synchronization with the remote store.

Records are always saved locally first; sync pushes records that have not
yet been confirmed remotely.`,
	}

	cmd.AddCommand(syncNowCmd())
	cmd.AddCommand(syncStatusCmd())
	cmd.AddCommand(syncWatchCmd())

	return cmd
}

func syncNowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "now",
		Short: "Run one reconcile pass over every collection",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			if wire.Config().RedisAddr == "" {
				return fmt.Errorf("no remote store configured (set redis_addr in the config)")
			}
			if !wire.Monitor().ProbeOnce(ctx) {
				return fmt.Errorf("remote store is not reachable")
			}

			records := wire.Records()
			for _, collection := range records.Collections() {
				res, err := records.Reconcile(ctx, collection)
				if err != nil {
					return fmt.Errorf("failed to reconcile %s: %w", collection, err)
				}
				fmt.Printf("✓ %s: pushed %d, skipped %d, failed %d\n",
					collection, res.Pushed, res.Skipped, res.Failed)
			}
			return nil
		},
	}
}

func syncStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show connectivity and per-collection sync state",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			probeRemote(ctx)

			cfg := wire.Config()
			switch {
			case cfg.RedisAddr == "":
				fmt.Println("Remote:", color.YellowString("not configured (local-only)"))
			case wire.Monitor().Online():
				fmt.Println("Remote:", color.GreenString("online"), "("+cfg.RedisAddr+")")
			default:
				fmt.Println("Remote:", color.RedString("offline"), "("+cfg.RedisAddr+")")
			}
			if cfg.UserID == "" {
				fmt.Println("User:  ", color.YellowString("anonymous (records stay on this device)"))
			} else {
				fmt.Println("User:  ", cfg.UserID)
			}

			overview, err := wire.ReportService().SyncOverview(ctx)
			if err != nil {
				return fmt.Errorf("failed to compute sync overview: %w", err)
			}
			w := newTable()
			fmt.Fprintln(w, "COLLECTION\tTOTAL\tSYNCED\tPENDING\tSTALE")
			for _, st := range overview {
				fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%d\n",
					st.Collection, st.Total, st.Synced, st.LocalOnly, st.Stale)
			}
			return w.Flush()
		},
	}
}

func syncWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Keep probing connectivity and sync on every reconnect",
		Long: `Run the connectivity probe loop in the foreground. Every time the remote
store becomes reachable again, pending records are pushed automatically.
Stop with Ctrl+C.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if wire.Config().RedisAddr == "" {
				return fmt.Errorf("no remote store configured (set redis_addr in the config)")
			}

			ctx := context.Background()
			monitor := wire.Monitor()
			monitor.Start(ctx)
			defer monitor.Stop()

			fmt.Println("Watching connectivity; pending records sync on reconnect. Ctrl+C to stop.")

			sig := make(chan os.Signal, 1)
			signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
			<-sig
			fmt.Println("\nStopped.")
			return nil
		},
	}
}
