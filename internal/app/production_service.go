package app

import (
	"context"
	"fmt"
	"time"

	"github.com/Jehuti-ms/AgriMetrics-sub000/internal/core/record"
	"github.com/Jehuti-ms/AgriMetrics-sub000/internal/ports/primary"
)

// ProductionCollection is the collection name for production records.
const ProductionCollection = "production"

// ProductionServiceImpl implements the ProductionService interface.
type ProductionServiceImpl struct {
	records primary.RecordService
}

// NewProductionService creates a new ProductionService and registers its
// collection and demo seed with the record service.
func NewProductionService(records primary.RecordService) *ProductionServiceImpl {
	records.RegisterCollection(ProductionCollection, productionSeed())
	return &ProductionServiceImpl{records: records}
}

// AddEntry records a production entry.
func (s *ProductionServiceImpl) AddEntry(ctx context.Context, req primary.AddProductionRequest) (*primary.ProductionEntry, error) {
	if req.Product == "" {
		return nil, fmt.Errorf("product is required")
	}
	if req.Quantity <= 0 {
		return nil, fmt.Errorf("quantity must be positive, got %v", req.Quantity)
	}
	recordedOn := req.RecordedOn
	if recordedOn == "" {
		recordedOn = time.Now().Format("2006-01-02")
	}
	unit := req.Unit
	if unit == "" {
		unit = "pieces"
	}

	rec, err := s.records.Create(ctx, ProductionCollection, map[string]any{
		"product":    req.Product,
		"quantity":   req.Quantity,
		"unit":       unit,
		"recordedOn": recordedOn,
		"note":       req.Note,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create production entry: %w", err)
	}
	return recordToProduction(rec), nil
}

// ListEntries lists production entries, newest first.
func (s *ProductionServiceImpl) ListEntries(ctx context.Context) ([]*primary.ProductionEntry, error) {
	recs, err := s.records.Load(ctx, ProductionCollection)
	if err != nil {
		return nil, fmt.Errorf("failed to list production entries: %w", err)
	}
	out := make([]*primary.ProductionEntry, len(recs))
	for i, r := range recs {
		out[i] = recordToProduction(r)
	}
	return out, nil
}

// UpdateEntry updates quantity, unit, and/or note of an entry.
func (s *ProductionServiceImpl) UpdateEntry(ctx context.Context, req primary.UpdateProductionRequest) (*primary.ProductionEntry, error) {
	patch := map[string]any{}
	if req.Quantity > 0 {
		patch["quantity"] = req.Quantity
	}
	if req.Unit != "" {
		patch["unit"] = req.Unit
	}
	if req.Note != "" {
		patch["note"] = req.Note
	}
	if len(patch) == 0 {
		return nil, fmt.Errorf("nothing to update for entry %s", req.ID)
	}

	rec, err := s.records.Update(ctx, ProductionCollection, req.ID, patch)
	if err != nil {
		return nil, err
	}
	return recordToProduction(rec), nil
}

// DeleteEntry removes an entry.
func (s *ProductionServiceImpl) DeleteEntry(ctx context.Context, id string) error {
	return s.records.Delete(ctx, ProductionCollection, id)
}

// Stats computes per-product totals across all entries.
func (s *ProductionServiceImpl) Stats(ctx context.Context) (*primary.ProductionStats, error) {
	recs, err := s.records.Load(ctx, ProductionCollection)
	if err != nil {
		return nil, fmt.Errorf("failed to load production entries: %w", err)
	}
	stats := &primary.ProductionStats{
		Entries:   len(recs),
		ByProduct: make(map[string]float64),
	}
	for _, r := range recs {
		product := payloadString(r.Payload, "product")
		if product == "" {
			continue
		}
		stats.ByProduct[product] += payloadFloat(r.Payload, "quantity")
	}
	return stats, nil
}

func recordToProduction(rec *record.Record) *primary.ProductionEntry {
	return &primary.ProductionEntry{
		ID:         rec.ID,
		Product:    payloadString(rec.Payload, "product"),
		Quantity:   payloadFloat(rec.Payload, "quantity"),
		Unit:       payloadString(rec.Payload, "unit"),
		RecordedOn: payloadString(rec.Payload, "recordedOn"),
		Note:       payloadString(rec.Payload, "note"),
		Source:     string(rec.Source),
		Synced:     rec.State() == record.StateSynced,
	}
}

// productionSeed is the first-run demo data shown on a pristine store.
func productionSeed() []map[string]any {
	return []map[string]any{
		{"product": "eggs", "quantity": 24.0, "unit": "pieces", "recordedOn": "2026-08-01", "note": "morning collection"},
		{"product": "eggs", "quantity": 26.0, "unit": "pieces", "recordedOn": "2026-08-02", "note": ""},
		{"product": "milk", "quantity": 12.5, "unit": "liters", "recordedOn": "2026-08-02", "note": "two cows"},
	}
}
