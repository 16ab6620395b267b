package primary

import "context"

// SalesService defines the primary port for sales record keeping.
type SalesService interface {
	// AddSale records a sale.
	AddSale(ctx context.Context, req AddSaleRequest) (*Sale, error)

	// ListSales lists sales, newest first.
	ListSales(ctx context.Context) ([]*Sale, error)

	// UpdateSale updates quantity, unit price, and/or buyer.
	UpdateSale(ctx context.Context, req UpdateSaleRequest) (*Sale, error)

	// DeleteSale removes a sale.
	DeleteSale(ctx context.Context, id string) error

	// Stats computes revenue and units-sold totals.
	Stats(ctx context.Context) (*SalesStats, error)
}

// AddSaleRequest contains parameters for recording a sale.
type AddSaleRequest struct {
	Item      string
	Quantity  float64 // must be > 0
	UnitPrice float64 // must be >= 0
	Buyer     string
	Date      string // YYYY-MM-DD; defaults to today
}

// UpdateSaleRequest contains parameters for updating a sale.
type UpdateSaleRequest struct {
	ID        string
	Quantity  float64 // 0 leaves unchanged
	UnitPrice float64 // < 0 leaves unchanged
	Buyer     string  // empty leaves unchanged
}

// Sale is a sales record as presented to callers.
type Sale struct {
	ID        string
	Item      string
	Quantity  float64
	UnitPrice float64
	Total     float64
	Buyer     string
	Date      string
	Source    string
	Synced    bool
}

// SalesStats aggregates sales.
type SalesStats struct {
	Count   int
	Units   float64
	Revenue float64
	ByItem  map[string]float64 // item -> revenue
}
