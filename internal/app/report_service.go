package app

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/Jehuti-ms/AgriMetrics-sub000/internal/core/record"
	"github.com/Jehuti-ms/AgriMetrics-sub000/internal/ports/primary"
)

// ReportServiceImpl implements the ReportService interface. Reports work on
// the raw record payloads rather than the typed views, so they keep working
// for legacy records with partial payloads.
type ReportServiceImpl struct {
	records primary.RecordService
}

// NewReportService creates a new ReportService.
func NewReportService(records primary.RecordService) *ReportServiceImpl {
	return &ReportServiceImpl{records: records}
}

// Summary computes the farm-wide summary across all collections.
func (s *ReportServiceImpl) Summary(ctx context.Context) (*primary.FarmSummary, error) {
	summary := &primary.FarmSummary{
		Production:  make(map[string]float64),
		FeedStockKg: make(map[string]float64),
	}

	production, err := s.rawPayloads(ctx, ProductionCollection)
	if err != nil {
		return nil, err
	}
	for _, raw := range production {
		product := gjson.GetBytes(raw, "product").String()
		if product == "" {
			continue
		}
		summary.Production[product] += gjson.GetBytes(raw, "quantity").Float()
	}

	transactions, err := s.rawPayloads(ctx, TransactionsCollection)
	if err != nil {
		return nil, err
	}
	for _, raw := range transactions {
		amount := gjson.GetBytes(raw, "amount").Float()
		switch gjson.GetBytes(raw, "type").String() {
		case primary.TransactionIncome:
			summary.Income += amount
		case primary.TransactionExpense:
			summary.Expense += amount
		}
	}
	summary.Balance = summary.Income - summary.Expense

	sales, err := s.rawPayloads(ctx, SalesCollection)
	if err != nil {
		return nil, err
	}
	for _, raw := range sales {
		summary.SalesRevenue += gjson.GetBytes(raw, "quantity").Float() *
			gjson.GetBytes(raw, "unitPrice").Float()
	}

	feed, err := s.rawPayloads(ctx, FeedCollection)
	if err != nil {
		return nil, err
	}
	for _, raw := range feed {
		feedType := gjson.GetBytes(raw, "feedType").String()
		if feedType == "" {
			continue
		}
		qty := gjson.GetBytes(raw, "quantityKg").Float()
		if gjson.GetBytes(raw, "operation").String() == primary.FeedUse {
			qty = -qty
		}
		summary.FeedStockKg[feedType] += qty
	}

	overview, err := s.SyncOverview(ctx)
	if err != nil {
		return nil, err
	}
	summary.Collections = overview
	return summary, nil
}

// SyncOverview reports per-collection sync state counts.
func (s *ReportServiceImpl) SyncOverview(ctx context.Context) ([]primary.SyncStatus, error) {
	var out []primary.SyncStatus
	for _, collection := range s.records.Collections() {
		recs, err := s.records.Load(ctx, collection)
		if err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", collection, err)
		}
		status := primary.SyncStatus{Collection: collection, Total: len(recs)}
		for _, r := range recs {
			switch r.State() {
			case record.StateSynced:
				status.Synced++
			case record.StateLocalOnly:
				status.LocalOnly++
			case record.StateStale:
				status.Stale++
			}
		}
		out = append(out, status)
	}
	return out, nil
}

// rawPayloads loads a collection and returns each payload as raw JSON.
func (s *ReportServiceImpl) rawPayloads(ctx context.Context, collection string) ([][]byte, error) {
	recs, err := s.records.Load(ctx, collection)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", collection, err)
	}
	out := make([][]byte, 0, len(recs))
	for _, r := range recs {
		raw, err := json.Marshal(r.Payload)
		if err != nil {
			continue
		}
		out = append(out, raw)
	}
	return out, nil
}
