package primary

import "context"

// Feed inventory operations.
const (
	FeedPurchase = "purchase"
	FeedUse      = "use"
)

// FeedService defines the primary port for feed inventory tracking.
type FeedService interface {
	// AddMovement records a feed purchase or usage.
	AddMovement(ctx context.Context, req AddFeedRequest) (*FeedMovement, error)

	// ListMovements lists feed movements, newest first.
	ListMovements(ctx context.Context) ([]*FeedMovement, error)

	// DeleteMovement removes a movement.
	DeleteMovement(ctx context.Context, id string) error

	// Stock computes current stock per feed type (purchases minus usage).
	Stock(ctx context.Context) (*FeedStock, error)
}

// AddFeedRequest contains parameters for recording a feed movement.
type AddFeedRequest struct {
	FeedType   string  // layer mash, maize bran, ...
	QuantityKg float64 // must be > 0
	Operation  string  // purchase or use
	Date       string  // YYYY-MM-DD; defaults to today
}

// FeedMovement is a feed inventory record as presented to callers.
type FeedMovement struct {
	ID         string
	FeedType   string
	QuantityKg float64
	Operation  string
	Date       string
	Source     string
	Synced     bool
}

// FeedStock reports current stock levels.
type FeedStock struct {
	ByType   map[string]float64 // feed type -> kg on hand
	LowStock []string           // types at or under the configured threshold
}
