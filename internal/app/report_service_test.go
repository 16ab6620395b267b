package app

import (
	"context"
	"testing"

	"github.com/Jehuti-ms/AgriMetrics-sub000/internal/core/record"
	"github.com/Jehuti-ms/AgriMetrics-sub000/internal/ports/primary"
)

// newPopulatedServices wires all four feature modules against one mock
// record service and fills them with a small data set.
func newPopulatedServices(t *testing.T) (*mockRecordService, *ReportServiceImpl) {
	t.Helper()
	records := newMockRecordService()
	production := NewProductionService(records)
	transactions := NewTransactionService(records)
	sales := NewSalesService(records)
	feed := NewFeedService(records, 0)
	ctx := context.Background()

	must := func(err error) {
		t.Helper()
		if err != nil {
			t.Fatalf("seeding failed: %v", err)
		}
	}

	_, err := production.AddEntry(ctx, primary.AddProductionRequest{Product: "eggs", Quantity: 24})
	must(err)
	_, err = production.AddEntry(ctx, primary.AddProductionRequest{Product: "milk", Quantity: 12, Unit: "liters"})
	must(err)
	_, err = transactions.AddTransaction(ctx, primary.AddTransactionRequest{Type: primary.TransactionIncome, Amount: 200})
	must(err)
	_, err = transactions.AddTransaction(ctx, primary.AddTransactionRequest{Type: primary.TransactionExpense, Amount: 45})
	must(err)
	_, err = sales.AddSale(ctx, primary.AddSaleRequest{Item: "eggs", Quantity: 60, UnitPrice: 0.5})
	must(err)
	_, err = feed.AddMovement(ctx, primary.AddFeedRequest{FeedType: "layer mash", QuantityKg: 50, Operation: primary.FeedPurchase})
	must(err)
	_, err = feed.AddMovement(ctx, primary.AddFeedRequest{FeedType: "layer mash", QuantityKg: 15, Operation: primary.FeedUse})
	must(err)

	return records, NewReportService(records)
}

func TestSummary(t *testing.T) {
	_, reports := newPopulatedServices(t)

	summary, err := reports.Summary(context.Background())
	if err != nil {
		t.Fatalf("Summary failed: %v", err)
	}
	if summary.Production["eggs"] != 24 || summary.Production["milk"] != 12 {
		t.Errorf("unexpected production totals: %v", summary.Production)
	}
	if summary.Income != 200 || summary.Expense != 45 || summary.Balance != 155 {
		t.Errorf("unexpected money totals: income=%v expense=%v balance=%v",
			summary.Income, summary.Expense, summary.Balance)
	}
	if summary.SalesRevenue != 30 {
		t.Errorf("expected sales revenue 30, got %v", summary.SalesRevenue)
	}
	if summary.FeedStockKg["layer mash"] != 35 {
		t.Errorf("expected 35kg layer mash, got %v", summary.FeedStockKg["layer mash"])
	}
	if len(summary.Collections) != 4 {
		t.Errorf("expected sync overview for 4 collections, got %d", len(summary.Collections))
	}
}

func TestSummary_ToleratesPartialPayloads(t *testing.T) {
	records, reports := newPopulatedServices(t)

	// Legacy records can miss fields entirely. They must not poison totals.
	now := record.Now()
	records.seed(ProductionCollection, &record.Record{
		ID: "legacy", UserID: "u", Source: record.SourceLocal,
		CreatedAt: now, UpdatedAt: now,
		Payload: map[string]any{"note": "no product field"},
	})

	summary, err := reports.Summary(context.Background())
	if err != nil {
		t.Fatalf("Summary failed: %v", err)
	}
	if summary.Production["eggs"] != 24 {
		t.Errorf("unexpected production totals: %v", summary.Production)
	}
	if _, ok := summary.Production[""]; ok {
		t.Error("expected records without a product to be skipped")
	}
}

func TestSyncOverview(t *testing.T) {
	records := newMockRecordService()
	NewTransactionService(records)
	reports := NewReportService(records)

	now := record.Now()
	records.seed(TransactionsCollection, &record.Record{
		ID: "a", UserID: "u", Source: record.SourceRemote,
		CreatedAt: now, UpdatedAt: now, SyncedAt: now,
		Payload: map[string]any{},
	})
	records.seed(TransactionsCollection, &record.Record{
		ID: "b", UserID: "u", Source: record.SourceLocal,
		CreatedAt: now, UpdatedAt: now,
		Payload: map[string]any{},
	})
	records.seed(TransactionsCollection, &record.Record{
		ID: "c", UserID: "u", Source: record.SourceLocal,
		CreatedAt: now, UpdatedAt: "2026-08-02T00:00:00.000Z", SyncedAt: "2026-08-01T00:00:00.000Z",
		Payload: map[string]any{},
	})

	overview, err := reports.SyncOverview(context.Background())
	if err != nil {
		t.Fatalf("SyncOverview failed: %v", err)
	}
	if len(overview) != 1 {
		t.Fatalf("expected 1 collection, got %d", len(overview))
	}
	status := overview[0]
	if status.Collection != TransactionsCollection || status.Total != 3 {
		t.Errorf("unexpected status: %+v", status)
	}
	if status.Synced != 1 || status.LocalOnly != 1 || status.Stale != 1 {
		t.Errorf("unexpected state counts: %+v", status)
	}
}
