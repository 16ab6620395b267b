package app

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/Jehuti-ms/AgriMetrics-sub000/internal/core/record"
	"github.com/Jehuti-ms/AgriMetrics-sub000/internal/ports/primary"
)

// ============================================================================
// Mock Implementations
// ============================================================================

// mockRecordService implements primary.RecordService for the feature module
// tests. It stamps a minimal envelope and keeps everything in memory; sync
// behavior is covered by the coordinator tests.
type mockRecordService struct {
	collections map[string][]*record.Record
	order       []string
	nextID      int

	createErr error
	loadErr   error
}

func newMockRecordService() *mockRecordService {
	return &mockRecordService{collections: make(map[string][]*record.Record)}
}

func (m *mockRecordService) Load(ctx context.Context, collection string) ([]*record.Record, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return m.collections[collection], nil
}

func (m *mockRecordService) Create(ctx context.Context, collection string, payload map[string]any) (*record.Record, error) {
	if m.createErr != nil {
		return nil, m.createErr
	}
	m.nextID++
	now := record.Now()
	rec := &record.Record{
		ID:        fmt.Sprintf("rec-%d", m.nextID),
		UserID:    record.AnonymousUser,
		Source:    record.SourceLocal,
		CreatedAt: now,
		UpdatedAt: now,
		Payload:   record.CopyPayload(payload),
	}
	m.collections[collection] = append(m.collections[collection], rec)
	return rec, nil
}

func (m *mockRecordService) Update(ctx context.Context, collection, id string, patch map[string]any) (*record.Record, error) {
	for _, rec := range m.collections[collection] {
		if rec.ID == id {
			for k, v := range patch {
				rec.Payload[k] = v
			}
			rec.UpdatedAt = record.Now()
			rec.SyncedAt = ""
			return rec, nil
		}
	}
	return nil, fmt.Errorf("update %s/%s: %w", collection, id, record.ErrNotFound)
}

func (m *mockRecordService) Delete(ctx context.Context, collection, id string) error {
	recs := m.collections[collection]
	for i, rec := range recs {
		if rec.ID == id {
			m.collections[collection] = append(recs[:i:i], recs[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("delete %s/%s: %w", collection, id, record.ErrNotFound)
}

func (m *mockRecordService) Reconcile(ctx context.Context, collection string) (primary.ReconcileResult, error) {
	return primary.ReconcileResult{Collection: collection}, nil
}

func (m *mockRecordService) RegisterCollection(collection string, seed []map[string]any) {
	if _, ok := m.collections[collection]; !ok {
		m.collections[collection] = nil
		m.order = append(m.order, collection)
	}
}

func (m *mockRecordService) Collections() []string {
	return m.order
}

// seed inserts a record directly, bypassing Create.
func (m *mockRecordService) seed(collection string, rec *record.Record) {
	m.collections[collection] = append(m.collections[collection], rec)
}

// ============================================================================
// TransactionService
// ============================================================================

func TestAddTransaction(t *testing.T) {
	records := newMockRecordService()
	svc := NewTransactionService(records)

	tx, err := svc.AddTransaction(context.Background(), primary.AddTransactionRequest{
		Type:     primary.TransactionIncome,
		Amount:   120,
		Category: "sales",
		Note:     "2 trays of eggs",
		Date:     "2026-08-01",
	})
	if err != nil {
		t.Fatalf("AddTransaction failed: %v", err)
	}
	if tx.ID == "" {
		t.Error("expected assigned id")
	}
	if tx.Type != primary.TransactionIncome || tx.Amount != 120 || tx.Category != "sales" {
		t.Errorf("unexpected transaction: %+v", tx)
	}
	if tx.Date != "2026-08-01" {
		t.Errorf("expected explicit date kept, got %q", tx.Date)
	}
}

func TestAddTransaction_DefaultsDateToToday(t *testing.T) {
	svc := NewTransactionService(newMockRecordService())

	tx, err := svc.AddTransaction(context.Background(), primary.AddTransactionRequest{
		Type:   primary.TransactionExpense,
		Amount: 45,
	})
	if err != nil {
		t.Fatalf("AddTransaction failed: %v", err)
	}
	if tx.Date == "" {
		t.Error("expected a default date")
	}
}

func TestAddTransaction_Validation(t *testing.T) {
	svc := NewTransactionService(newMockRecordService())
	ctx := context.Background()

	tests := []struct {
		name string
		req  primary.AddTransactionRequest
		want string
	}{
		{"bad type", primary.AddTransactionRequest{Type: "transfer", Amount: 10}, "transaction type"},
		{"zero amount", primary.AddTransactionRequest{Type: primary.TransactionIncome, Amount: 0}, "amount must be positive"},
		{"negative amount", primary.AddTransactionRequest{Type: primary.TransactionExpense, Amount: -5}, "amount must be positive"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.AddTransaction(ctx, tt.req)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected error mentioning %q, got %v", tt.want, err)
			}
		})
	}
}

func TestUpdateTransaction_RequiresAPatch(t *testing.T) {
	svc := NewTransactionService(newMockRecordService())

	_, err := svc.UpdateTransaction(context.Background(), primary.UpdateTransactionRequest{ID: "rec-1"})
	if err == nil {
		t.Fatal("expected error for empty patch")
	}
}

func TestTransactionStats(t *testing.T) {
	records := newMockRecordService()
	svc := NewTransactionService(records)
	ctx := context.Background()

	for _, req := range []primary.AddTransactionRequest{
		{Type: primary.TransactionIncome, Amount: 120},
		{Type: primary.TransactionIncome, Amount: 80},
		{Type: primary.TransactionExpense, Amount: 45},
	} {
		if _, err := svc.AddTransaction(ctx, req); err != nil {
			t.Fatalf("AddTransaction failed: %v", err)
		}
	}

	stats, err := svc.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if stats.Income != 200 || stats.Expense != 45 || stats.Balance != 155 {
		t.Errorf("unexpected stats: %+v", stats)
	}
	if stats.Count != 3 {
		t.Errorf("expected 3 transactions, got %d", stats.Count)
	}
}

func TestTransactionSyncFlagReflectsState(t *testing.T) {
	records := newMockRecordService()
	svc := NewTransactionService(records)

	now := record.Now()
	records.seed(TransactionsCollection, &record.Record{
		ID: "synced-1", UserID: "u", Source: record.SourceRemote,
		CreatedAt: now, UpdatedAt: now, SyncedAt: now,
		Payload: map[string]any{"type": "income", "amount": 10.0},
	})
	records.seed(TransactionsCollection, &record.Record{
		ID: "pending-1", UserID: "u", Source: record.SourceLocal,
		CreatedAt: now, UpdatedAt: now,
		Payload: map[string]any{"type": "expense", "amount": 5.0},
	})

	list, err := svc.ListTransactions(context.Background())
	if err != nil {
		t.Fatalf("ListTransactions failed: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 transactions, got %d", len(list))
	}
	if !list[0].Synced || list[0].Source != "remote" {
		t.Errorf("expected first transaction synced/remote, got %+v", list[0])
	}
	if list[1].Synced {
		t.Errorf("expected second transaction pending, got %+v", list[1])
	}
}
