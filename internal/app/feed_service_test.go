package app

import (
	"context"
	"testing"

	"github.com/Jehuti-ms/AgriMetrics-sub000/internal/ports/primary"
)

func TestAddMovement(t *testing.T) {
	svc := NewFeedService(newMockRecordService(), 0)

	mv, err := svc.AddMovement(context.Background(), primary.AddFeedRequest{
		FeedType:   "layer mash",
		QuantityKg: 50,
		Operation:  primary.FeedPurchase,
		Date:       "2026-08-01",
	})
	if err != nil {
		t.Fatalf("AddMovement failed: %v", err)
	}
	if mv.FeedType != "layer mash" || mv.QuantityKg != 50 || mv.Operation != primary.FeedPurchase {
		t.Errorf("unexpected movement: %+v", mv)
	}
}

func TestAddMovement_Validation(t *testing.T) {
	svc := NewFeedService(newMockRecordService(), 0)
	ctx := context.Background()

	if _, err := svc.AddMovement(ctx, primary.AddFeedRequest{QuantityKg: 5, Operation: primary.FeedUse}); err == nil {
		t.Error("expected error for missing feed type")
	}
	if _, err := svc.AddMovement(ctx, primary.AddFeedRequest{FeedType: "bran", Operation: primary.FeedUse}); err == nil {
		t.Error("expected error for zero quantity")
	}
	if _, err := svc.AddMovement(ctx, primary.AddFeedRequest{FeedType: "bran", QuantityKg: 5, Operation: "restock"}); err == nil {
		t.Error("expected error for unknown operation")
	}
}

func TestStock(t *testing.T) {
	svc := NewFeedService(newMockRecordService(), 0)
	ctx := context.Background()

	for _, req := range []primary.AddFeedRequest{
		{FeedType: "layer mash", QuantityKg: 50, Operation: primary.FeedPurchase},
		{FeedType: "layer mash", QuantityKg: 15, Operation: primary.FeedUse},
		{FeedType: "maize bran", QuantityKg: 8, Operation: primary.FeedPurchase},
	} {
		if _, err := svc.AddMovement(ctx, req); err != nil {
			t.Fatalf("AddMovement failed: %v", err)
		}
	}

	stock, err := svc.Stock(ctx)
	if err != nil {
		t.Fatalf("Stock failed: %v", err)
	}
	if stock.ByType["layer mash"] != 35 {
		t.Errorf("expected 35kg layer mash, got %v", stock.ByType["layer mash"])
	}
	if stock.ByType["maize bran"] != 8 {
		t.Errorf("expected 8kg maize bran, got %v", stock.ByType["maize bran"])
	}
	if len(stock.LowStock) != 1 || stock.LowStock[0] != "maize bran" {
		t.Errorf("expected maize bran flagged low, got %v", stock.LowStock)
	}
}

func TestStock_CustomThreshold(t *testing.T) {
	svc := NewFeedService(newMockRecordService(), 40)
	ctx := context.Background()

	if _, err := svc.AddMovement(ctx, primary.AddFeedRequest{
		FeedType: "layer mash", QuantityKg: 35, Operation: primary.FeedPurchase,
	}); err != nil {
		t.Fatalf("AddMovement failed: %v", err)
	}

	stock, err := svc.Stock(ctx)
	if err != nil {
		t.Fatalf("Stock failed: %v", err)
	}
	if len(stock.LowStock) != 1 {
		t.Errorf("expected low-stock flag under raised threshold, got %v", stock.LowStock)
	}
}
