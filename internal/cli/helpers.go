// Package cli contains the cobra commands for the AgriMetrics CLI.
package cli

import (
	"context"
	"os"
	"text/tabwriter"

	"github.com/Jehuti-ms/AgriMetrics-sub000/internal/wire"
)

// probeRemote refreshes the connectivity flag before an operation that may
// talk to the remote store. Without a configured remote this is a no-op that
// leaves the monitor offline.
func probeRemote(ctx context.Context) {
	if wire.Config().RedisAddr == "" {
		return
	}
	wire.Monitor().ProbeOnce(ctx)
}

// newTable returns a tabwriter for aligned list output.
func newTable() *tabwriter.Writer {
	return tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
}

// syncMark renders the per-record sync indicator for list views.
func syncMark(synced bool, source string) string {
	if source == "demo" {
		return "demo"
	}
	if synced {
		return "synced"
	}
	return "pending"
}
