package primary

import "context"

// ProductionService defines the primary port for production record keeping.
type ProductionService interface {
	// AddEntry records a production entry (eggs collected, milk yielded, ...).
	AddEntry(ctx context.Context, req AddProductionRequest) (*ProductionEntry, error)

	// ListEntries lists production entries, newest first.
	ListEntries(ctx context.Context) ([]*ProductionEntry, error)

	// UpdateEntry updates quantity and/or unit of an entry.
	UpdateEntry(ctx context.Context, req UpdateProductionRequest) (*ProductionEntry, error)

	// DeleteEntry removes an entry.
	DeleteEntry(ctx context.Context, id string) error

	// Stats computes per-product totals across all entries.
	Stats(ctx context.Context) (*ProductionStats, error)
}

// AddProductionRequest contains parameters for recording production.
type AddProductionRequest struct {
	Product    string  // eggs, milk, honey, ...
	Quantity   float64 // must be > 0
	Unit       string  // pieces, liters, kg
	RecordedOn string  // YYYY-MM-DD; defaults to today
	Note       string
}

// UpdateProductionRequest contains parameters for updating an entry.
type UpdateProductionRequest struct {
	ID       string
	Quantity float64 // 0 leaves unchanged
	Unit     string  // empty leaves unchanged
	Note     string  // empty leaves unchanged
}

// ProductionEntry is a production record as presented to callers.
type ProductionEntry struct {
	ID         string
	Product    string
	Quantity   float64
	Unit       string
	RecordedOn string
	Note       string
	Source     string
	Synced     bool
}

// ProductionStats aggregates production entries.
type ProductionStats struct {
	Entries   int
	ByProduct map[string]float64 // product -> total quantity
}
