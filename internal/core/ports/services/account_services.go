package services

import (
	"context"

	"github.com/teambudget/team_budget_app/internal/core/domain"
	"github.com/teambudget/team_budget_app/internal/dto"
)

// AccountReaderSvc defines read operations for account data
type AccountReaderSvc interface {
	// GetAccountByID retrieves an account the actor can read.
	GetAccountByID(ctx context.Context, actor domain.User, accountID string) (*domain.Account, error)

	// ListBookAccounts retrieves the accounts of a book the actor can read.
	ListBookAccounts(ctx context.Context, actor domain.User, bookID string) ([]domain.Account, error)
}

// AccountWriterSvc defines write operations for account data
type AccountWriterSvc interface {
	// CreateAccount creates an account inside a book.
	CreateAccount(ctx context.Context, actor domain.User, bookID string, req dto.CreateAccountRequest) (*domain.Account, error)

	// UpdateAccount updates an account's details.
	UpdateAccount(ctx context.Context, actor domain.User, accountID string, req dto.UpdateAccountRequest) (*domain.Account, error)

	// DeleteAccount removes an account. An account that still has transactions
	// fails with ErrConflict.
	DeleteAccount(ctx context.Context, actor domain.User, accountID string) error
}

// AccountSvcFacade combines all account-related service interfaces
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
}
