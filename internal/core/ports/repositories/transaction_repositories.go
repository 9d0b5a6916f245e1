package repositories

import (
	"context"
	"time"

	"github.com/teambudget/team_budget_app/internal/core/domain"
)

// TransactionReader defines read operations for transaction data
type TransactionReader interface {
	// FindTransactionByID retrieves a specific transaction by its unique identifier.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// ListTransactionsByAccountID retrieves the transactions of an account,
	// newest first, optionally restricted to a date range.
	ListTransactionsByAccountID(ctx context.Context, accountID string, from, to *time.Time) ([]domain.Transaction, error)

	// HasTransactionsForAccount reports whether the account has any transactions.
	HasTransactionsForAccount(ctx context.Context, accountID string) (bool, error)

	// SumAmountsByAccountID aggregates the account's transaction amounts up to
	// and including the cutoff date. Projected sums everything; exercised only
	// the cleared transactions. An account with no transactions sums to zero.
	SumAmountsByAccountID(ctx context.Context, accountID string, asOf time.Time) (domain.Balance, error)
}

// TransactionWriter defines write operations for transaction data
type TransactionWriter interface {
	// SaveTransaction persists a new transaction.
	SaveTransaction(ctx context.Context, txn domain.Transaction) error

	// UpdateTransaction updates an existing transaction's details.
	UpdateTransaction(ctx context.Context, txn domain.Transaction) error

	// DeleteTransaction removes a transaction.
	DeleteTransaction(ctx context.Context, transactionID string) error
}

// TransactionRepositoryFacade combines all transaction-related repository interfaces
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}
