package primary

import "context"

// Transaction types.
const (
	TransactionIncome  = "income"
	TransactionExpense = "expense"
)

// TransactionService defines the primary port for income/expense bookkeeping.
type TransactionService interface {
	// AddTransaction records an income or expense transaction.
	AddTransaction(ctx context.Context, req AddTransactionRequest) (*Transaction, error)

	// ListTransactions lists transactions, newest first.
	ListTransactions(ctx context.Context) ([]*Transaction, error)

	// UpdateTransaction updates amount, category, and/or note.
	UpdateTransaction(ctx context.Context, req UpdateTransactionRequest) (*Transaction, error)

	// DeleteTransaction removes a transaction.
	DeleteTransaction(ctx context.Context, id string) error

	// Stats computes income, expense, and balance totals.
	Stats(ctx context.Context) (*TransactionStats, error)
}

// AddTransactionRequest contains parameters for recording a transaction.
type AddTransactionRequest struct {
	Type     string  // income or expense
	Amount   float64 // must be > 0
	Category string  // feed, veterinary, equipment, sales, ...
	Note     string
	Date     string // YYYY-MM-DD; defaults to today
}

// UpdateTransactionRequest contains parameters for updating a transaction.
type UpdateTransactionRequest struct {
	ID       string
	Amount   float64 // 0 leaves unchanged
	Category string  // empty leaves unchanged
	Note     string  // empty leaves unchanged
}

// Transaction is an income/expense record as presented to callers.
type Transaction struct {
	ID       string
	Type     string
	Amount   float64
	Category string
	Note     string
	Date     string
	Source   string
	Synced   bool
}

// TransactionStats aggregates transactions.
type TransactionStats struct {
	Count   int
	Income  float64
	Expense float64
	Balance float64
}
