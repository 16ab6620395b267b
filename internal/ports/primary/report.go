package primary

import "context"

// ReportService defines the primary port for cross-module reporting. It is
// read-only: it aggregates whatever the record collections currently hold.
type ReportService interface {
	// Summary computes the farm-wide summary across all collections.
	Summary(ctx context.Context) (*FarmSummary, error)

	// SyncOverview reports per-collection sync state counts.
	SyncOverview(ctx context.Context) ([]SyncStatus, error)
}

// FarmSummary is the farm-wide report.
type FarmSummary struct {
	Production   map[string]float64 // product -> total quantity
	Income       float64
	Expense      float64
	Balance      float64
	SalesRevenue float64
	FeedStockKg  map[string]float64 // feed type -> kg on hand
	Collections  []SyncStatus
}
