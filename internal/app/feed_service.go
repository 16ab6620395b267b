package app

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/Jehuti-ms/AgriMetrics-sub000/internal/core/record"
	"github.com/Jehuti-ms/AgriMetrics-sub000/internal/ports/primary"
)

// FeedCollection is the collection name for feed inventory movements.
const FeedCollection = "feed"

// DefaultLowStockThresholdKg flags feed types running low in stock reports.
const DefaultLowStockThresholdKg = 10.0

// FeedServiceImpl implements the FeedService interface.
type FeedServiceImpl struct {
	records    primary.RecordService
	lowStockKg float64
}

// NewFeedService creates a new FeedService and registers its collection and
// demo seed with the record service. A non-positive threshold uses the
// default.
func NewFeedService(records primary.RecordService, lowStockKg float64) *FeedServiceImpl {
	if lowStockKg <= 0 {
		lowStockKg = DefaultLowStockThresholdKg
	}
	records.RegisterCollection(FeedCollection, feedSeed())
	return &FeedServiceImpl{records: records, lowStockKg: lowStockKg}
}

// AddMovement records a feed purchase or usage.
func (s *FeedServiceImpl) AddMovement(ctx context.Context, req primary.AddFeedRequest) (*primary.FeedMovement, error) {
	if req.FeedType == "" {
		return nil, fmt.Errorf("feed type is required")
	}
	if req.QuantityKg <= 0 {
		return nil, fmt.Errorf("quantity must be positive, got %v", req.QuantityKg)
	}
	if req.Operation != primary.FeedPurchase && req.Operation != primary.FeedUse {
		return nil, fmt.Errorf("operation must be %q or %q, got %q",
			primary.FeedPurchase, primary.FeedUse, req.Operation)
	}
	date := req.Date
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}

	rec, err := s.records.Create(ctx, FeedCollection, map[string]any{
		"feedType":   req.FeedType,
		"quantityKg": req.QuantityKg,
		"operation":  req.Operation,
		"date":       date,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create feed movement: %w", err)
	}
	return recordToFeed(rec), nil
}

// ListMovements lists feed movements, newest first.
func (s *FeedServiceImpl) ListMovements(ctx context.Context) ([]*primary.FeedMovement, error) {
	recs, err := s.records.Load(ctx, FeedCollection)
	if err != nil {
		return nil, fmt.Errorf("failed to list feed movements: %w", err)
	}
	out := make([]*primary.FeedMovement, len(recs))
	for i, r := range recs {
		out[i] = recordToFeed(r)
	}
	return out, nil
}

// DeleteMovement removes a movement.
func (s *FeedServiceImpl) DeleteMovement(ctx context.Context, id string) error {
	return s.records.Delete(ctx, FeedCollection, id)
}

// Stock computes current stock per feed type: purchases minus usage.
func (s *FeedServiceImpl) Stock(ctx context.Context) (*primary.FeedStock, error) {
	recs, err := s.records.Load(ctx, FeedCollection)
	if err != nil {
		return nil, fmt.Errorf("failed to load feed movements: %w", err)
	}
	stock := &primary.FeedStock{ByType: make(map[string]float64)}
	for _, r := range recs {
		feedType := payloadString(r.Payload, "feedType")
		if feedType == "" {
			continue
		}
		qty := payloadFloat(r.Payload, "quantityKg")
		if payloadString(r.Payload, "operation") == primary.FeedUse {
			qty = -qty
		}
		stock.ByType[feedType] += qty
	}
	for feedType, kg := range stock.ByType {
		if kg <= s.lowStockKg {
			stock.LowStock = append(stock.LowStock, feedType)
		}
	}
	sort.Strings(stock.LowStock)
	return stock, nil
}

func recordToFeed(rec *record.Record) *primary.FeedMovement {
	return &primary.FeedMovement{
		ID:         rec.ID,
		FeedType:   payloadString(rec.Payload, "feedType"),
		QuantityKg: payloadFloat(rec.Payload, "quantityKg"),
		Operation:  payloadString(rec.Payload, "operation"),
		Date:       payloadString(rec.Payload, "date"),
		Source:     string(rec.Source),
		Synced:     rec.State() == record.StateSynced,
	}
}

// feedSeed is the first-run demo data shown on a pristine store.
func feedSeed() []map[string]any {
	return []map[string]any{
		{"feedType": "layer mash", "quantityKg": 50.0, "operation": "purchase", "date": "2026-08-01"},
		{"feedType": "layer mash", "quantityKg": 15.0, "operation": "use", "date": "2026-08-08"},
		{"feedType": "maize bran", "quantityKg": 25.0, "operation": "purchase", "date": "2026-08-04"},
	}
}
