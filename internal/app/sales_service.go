package app

import (
	"context"
	"fmt"
	"time"

	"github.com/Jehuti-ms/AgriMetrics-sub000/internal/core/record"
	"github.com/Jehuti-ms/AgriMetrics-sub000/internal/ports/primary"
)

// SalesCollection is the collection name for sales records.
const SalesCollection = "sales"

// SalesServiceImpl implements the SalesService interface.
type SalesServiceImpl struct {
	records primary.RecordService
}

// NewSalesService creates a new SalesService and registers its collection
// and demo seed with the record service.
func NewSalesService(records primary.RecordService) *SalesServiceImpl {
	records.RegisterCollection(SalesCollection, salesSeed())
	return &SalesServiceImpl{records: records}
}

// AddSale records a sale.
func (s *SalesServiceImpl) AddSale(ctx context.Context, req primary.AddSaleRequest) (*primary.Sale, error) {
	if req.Item == "" {
		return nil, fmt.Errorf("item is required")
	}
	if req.Quantity <= 0 {
		return nil, fmt.Errorf("quantity must be positive, got %v", req.Quantity)
	}
	if req.UnitPrice < 0 {
		return nil, fmt.Errorf("unit price must not be negative, got %v", req.UnitPrice)
	}
	date := req.Date
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}

	rec, err := s.records.Create(ctx, SalesCollection, map[string]any{
		"item":      req.Item,
		"quantity":  req.Quantity,
		"unitPrice": req.UnitPrice,
		"buyer":     req.Buyer,
		"date":      date,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create sale: %w", err)
	}
	return recordToSale(rec), nil
}

// ListSales lists sales, newest first.
func (s *SalesServiceImpl) ListSales(ctx context.Context) ([]*primary.Sale, error) {
	recs, err := s.records.Load(ctx, SalesCollection)
	if err != nil {
		return nil, fmt.Errorf("failed to list sales: %w", err)
	}
	out := make([]*primary.Sale, len(recs))
	for i, r := range recs {
		out[i] = recordToSale(r)
	}
	return out, nil
}

// UpdateSale updates quantity, unit price, and/or buyer.
func (s *SalesServiceImpl) UpdateSale(ctx context.Context, req primary.UpdateSaleRequest) (*primary.Sale, error) {
	patch := map[string]any{}
	if req.Quantity > 0 {
		patch["quantity"] = req.Quantity
	}
	if req.UnitPrice >= 0 {
		patch["unitPrice"] = req.UnitPrice
	}
	if req.Buyer != "" {
		patch["buyer"] = req.Buyer
	}
	if len(patch) == 0 {
		return nil, fmt.Errorf("nothing to update for sale %s", req.ID)
	}

	rec, err := s.records.Update(ctx, SalesCollection, req.ID, patch)
	if err != nil {
		return nil, err
	}
	return recordToSale(rec), nil
}

// DeleteSale removes a sale.
func (s *SalesServiceImpl) DeleteSale(ctx context.Context, id string) error {
	return s.records.Delete(ctx, SalesCollection, id)
}

// Stats computes revenue and units-sold totals.
func (s *SalesServiceImpl) Stats(ctx context.Context) (*primary.SalesStats, error) {
	recs, err := s.records.Load(ctx, SalesCollection)
	if err != nil {
		return nil, fmt.Errorf("failed to load sales: %w", err)
	}
	stats := &primary.SalesStats{
		Count:  len(recs),
		ByItem: make(map[string]float64),
	}
	for _, r := range recs {
		qty := payloadFloat(r.Payload, "quantity")
		total := qty * payloadFloat(r.Payload, "unitPrice")
		stats.Units += qty
		stats.Revenue += total
		if item := payloadString(r.Payload, "item"); item != "" {
			stats.ByItem[item] += total
		}
	}
	return stats, nil
}

func recordToSale(rec *record.Record) *primary.Sale {
	qty := payloadFloat(rec.Payload, "quantity")
	price := payloadFloat(rec.Payload, "unitPrice")
	return &primary.Sale{
		ID:        rec.ID,
		Item:      payloadString(rec.Payload, "item"),
		Quantity:  qty,
		UnitPrice: price,
		Total:     qty * price,
		Buyer:     payloadString(rec.Payload, "buyer"),
		Date:      payloadString(rec.Payload, "date"),
		Source:    string(rec.Source),
		Synced:    rec.State() == record.StateSynced,
	}
}

// salesSeed is the first-run demo data shown on a pristine store.
func salesSeed() []map[string]any {
	return []map[string]any{
		{"item": "eggs", "quantity": 60.0, "unitPrice": 0.5, "buyer": "market stall", "date": "2026-08-05"},
		{"item": "milk", "quantity": 20.0, "unitPrice": 1.2, "buyer": "dairy co-op", "date": "2026-08-07"},
	}
}
