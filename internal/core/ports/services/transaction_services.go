package services

import (
	"context"
	"time"

	"github.com/teambudget/team_budget_app/internal/core/domain"
	"github.com/teambudget/team_budget_app/internal/dto"
)

// TransactionReaderSvc defines read operations for transaction data
type TransactionReaderSvc interface {
	// GetTransactionByID retrieves a transaction the actor can read.
	GetTransactionByID(ctx context.Context, actor domain.User, transactionID string) (*domain.Transaction, error)

	// ListAccountTransactions retrieves the transactions of an account,
	// optionally restricted to a date range.
	ListAccountTransactions(ctx context.Context, actor domain.User, accountID string, from, to *time.Time) ([]domain.Transaction, error)
}

// TransactionWriterSvc defines write operations for transaction data
type TransactionWriterSvc interface {
	// CreateTransaction creates a transaction on an account. A category, when
	// given, must belong to the account's book.
	CreateTransaction(ctx context.Context, actor domain.User, accountID string, req dto.CreateTransactionRequest) (*domain.Transaction, error)

	// UpdateTransaction applies a partial update, with the same category/book
	// rule as CreateTransaction.
	UpdateTransaction(ctx context.Context, actor domain.User, transactionID string, req dto.UpdateTransactionRequest) (*domain.Transaction, error)

	// DeleteTransaction removes a transaction.
	DeleteTransaction(ctx context.Context, actor domain.User, transactionID string) error
}

// TransactionSvcFacade combines all transaction-related service interfaces
type TransactionSvcFacade interface {
	TransactionReaderSvc
	TransactionWriterSvc
}

// BalanceSvc derives account balances from transaction history.
type BalanceSvc interface {
	// ComputeBalance returns the exercised and projected balance of an account
	// as of a cutoff date. An empty asOf defaults to today's local date; a
	// malformed asOf fails with ErrValidation.
	ComputeBalance(ctx context.Context, actor domain.User, accountID string, asOf string) (*domain.Balance, error)
}
