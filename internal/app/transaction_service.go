package app

import (
	"context"
	"fmt"
	"time"

	"github.com/Jehuti-ms/AgriMetrics-sub000/internal/core/record"
	"github.com/Jehuti-ms/AgriMetrics-sub000/internal/ports/primary"
)

// TransactionsCollection is the collection name for income/expense records.
const TransactionsCollection = "transactions"

// TransactionServiceImpl implements the TransactionService interface. It
// holds no authoritative state; every read goes back through the record
// service.
type TransactionServiceImpl struct {
	records primary.RecordService
}

// NewTransactionService creates a new TransactionService and registers its
// collection and demo seed with the record service.
func NewTransactionService(records primary.RecordService) *TransactionServiceImpl {
	records.RegisterCollection(TransactionsCollection, transactionSeed())
	return &TransactionServiceImpl{records: records}
}

// AddTransaction records an income or expense transaction.
func (s *TransactionServiceImpl) AddTransaction(ctx context.Context, req primary.AddTransactionRequest) (*primary.Transaction, error) {
	if req.Type != primary.TransactionIncome && req.Type != primary.TransactionExpense {
		return nil, fmt.Errorf("transaction type must be %q or %q, got %q",
			primary.TransactionIncome, primary.TransactionExpense, req.Type)
	}
	if req.Amount <= 0 {
		return nil, fmt.Errorf("transaction amount must be positive, got %v", req.Amount)
	}
	date := req.Date
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}

	rec, err := s.records.Create(ctx, TransactionsCollection, map[string]any{
		"type":     req.Type,
		"amount":   req.Amount,
		"category": req.Category,
		"note":     req.Note,
		"date":     date,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}
	return recordToTransaction(rec), nil
}

// ListTransactions lists transactions, newest first.
func (s *TransactionServiceImpl) ListTransactions(ctx context.Context) ([]*primary.Transaction, error) {
	recs, err := s.records.Load(ctx, TransactionsCollection)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	out := make([]*primary.Transaction, len(recs))
	for i, r := range recs {
		out[i] = recordToTransaction(r)
	}
	return out, nil
}

// UpdateTransaction updates amount, category, and/or note.
func (s *TransactionServiceImpl) UpdateTransaction(ctx context.Context, req primary.UpdateTransactionRequest) (*primary.Transaction, error) {
	patch := map[string]any{}
	if req.Amount > 0 {
		patch["amount"] = req.Amount
	}
	if req.Category != "" {
		patch["category"] = req.Category
	}
	if req.Note != "" {
		patch["note"] = req.Note
	}
	if len(patch) == 0 {
		return nil, fmt.Errorf("nothing to update for transaction %s", req.ID)
	}

	rec, err := s.records.Update(ctx, TransactionsCollection, req.ID, patch)
	if err != nil {
		return nil, err
	}
	return recordToTransaction(rec), nil
}

// DeleteTransaction removes a transaction.
func (s *TransactionServiceImpl) DeleteTransaction(ctx context.Context, id string) error {
	return s.records.Delete(ctx, TransactionsCollection, id)
}

// Stats computes income, expense, and balance totals.
func (s *TransactionServiceImpl) Stats(ctx context.Context) (*primary.TransactionStats, error) {
	recs, err := s.records.Load(ctx, TransactionsCollection)
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}
	stats := &primary.TransactionStats{Count: len(recs)}
	for _, r := range recs {
		amount := payloadFloat(r.Payload, "amount")
		switch payloadString(r.Payload, "type") {
		case primary.TransactionIncome:
			stats.Income += amount
		case primary.TransactionExpense:
			stats.Expense += amount
		}
	}
	stats.Balance = stats.Income - stats.Expense
	return stats, nil
}

func recordToTransaction(rec *record.Record) *primary.Transaction {
	return &primary.Transaction{
		ID:       rec.ID,
		Type:     payloadString(rec.Payload, "type"),
		Amount:   payloadFloat(rec.Payload, "amount"),
		Category: payloadString(rec.Payload, "category"),
		Note:     payloadString(rec.Payload, "note"),
		Date:     payloadString(rec.Payload, "date"),
		Source:   string(rec.Source),
		Synced:   rec.State() == record.StateSynced,
	}
}

// transactionSeed is the first-run demo data shown on a pristine store.
func transactionSeed() []map[string]any {
	return []map[string]any{
		{"type": "income", "amount": 120.0, "category": "sales", "note": "2 trays of eggs", "date": "2026-08-01"},
		{"type": "expense", "amount": 45.0, "category": "feed", "note": "layer mash 25kg", "date": "2026-08-03"},
		{"type": "income", "amount": 80.0, "category": "sales", "note": "broiler sale", "date": "2026-08-10"},
	}
}
