package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/teambudget/team_budget_app/internal/apperrors"
	"github.com/teambudget/team_budget_app/internal/core/domain"
	portsrepo "github.com/teambudget/team_budget_app/internal/core/ports/repositories"
	portssvc "github.com/teambudget/team_budget_app/internal/core/ports/services"
	"github.com/teambudget/team_budget_app/internal/dto"
)

// dateLayout is the ISO calendar date format used on the wire.
const dateLayout = "2006-01-02"

// transactionService implements transaction CRUD. A transaction's category,
// when set, must belong to the same book as its account.
type transactionService struct {
	BaseService
	txnRepo      portsrepo.TransactionRepositoryFacade
	accountRepo  portsrepo.AccountReader
	categoryRepo portsrepo.CategoryReader
	bookRepo     portsrepo.BookReader
	authorizer   portssvc.TeamAuthorizerSvc
}

// NewTransactionService creates a new transaction service with the provided dependencies
func NewTransactionService(
	txnRepo portsrepo.TransactionRepositoryFacade,
	accountRepo portsrepo.AccountReader,
	categoryRepo portsrepo.CategoryReader,
	bookRepo portsrepo.BookReader,
	authorizer portssvc.TeamAuthorizerSvc,
) portssvc.TransactionSvcFacade {
	return &transactionService{
		txnRepo:      txnRepo,
		accountRepo:  accountRepo,
		categoryRepo: categoryRepo,
		bookRepo:     bookRepo,
		authorizer:   authorizer,
	}
}

var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

// GetTransactionByID retrieves a transaction the actor can read.
func (s *transactionService) GetTransactionByID(ctx context.Context, actor domain.User, transactionID string) (*domain.Transaction, error) {
	txn, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeAccountAccess(ctx, actor, txn.AccountID, false); err != nil {
		return nil, err
	}
	return txn, nil
}

// ListAccountTransactions retrieves the transactions of an account, newest
// first, optionally restricted to a date range.
func (s *transactionService) ListAccountTransactions(ctx context.Context, actor domain.User, accountID string, from, to *time.Time) ([]domain.Transaction, error) {
	if err := s.authorizeAccountAccess(ctx, actor, accountID, false); err != nil {
		return nil, err
	}
	txns, err := s.txnRepo.ListTransactionsByAccountID(ctx, accountID, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to list transactions for account", slog.String("account_id", accountID))
		return nil, err
	}
	if txns == nil {
		return []domain.Transaction{}, nil
	}
	return txns, nil
}

// CreateTransaction creates a transaction on an account.
func (s *transactionService) CreateTransaction(ctx context.Context, actor domain.User, accountID string, req dto.CreateTransactionRequest) (*domain.Transaction, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeAccountAccess(ctx, actor, accountID, true); err != nil {
		return nil, err
	}

	date, err := time.ParseInLocation(dateLayout, req.Date, time.Local)
	if err != nil {
		return nil, apperrors.NewValidationFailedError("invalid date: " + req.Date)
	}

	if req.CategoryID != nil {
		if err := s.validateCategory(ctx, *req.CategoryID, account.BookID); err != nil {
			return nil, err
		}
	}

	now := time.Now()
	txn := domain.Transaction{
		TransactionID: uuid.NewString(),
		AccountID:     accountID,
		CategoryID:    req.CategoryID,
		Description:   req.Description,
		Amount:        req.Amount,
		Date:          date,
		Exercised:     req.Exercised,
		Note:          req.Note,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.UserID,
		},
	}

	if err := s.txnRepo.SaveTransaction(ctx, txn); err != nil {
		s.LogError(ctx, err, "Failed to save transaction", slog.String("transaction_id", txn.TransactionID))
		return nil, err
	}

	s.LogInfo(ctx, "Transaction created successfully",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("account_id", accountID))
	return &txn, nil
}

// UpdateTransaction applies a partial update to a transaction.
func (s *transactionService) UpdateTransaction(ctx context.Context, actor domain.User, transactionID string, req dto.UpdateTransactionRequest) (*domain.Transaction, error) {
	txn, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	account, err := s.accountRepo.FindAccountByID(ctx, txn.AccountID)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeAccountAccess(ctx, actor, txn.AccountID, true); err != nil {
		return nil, err
	}

	switch {
	case req.ClearCategory:
		txn.CategoryID = nil
	case req.CategoryID != nil:
		if err := s.validateCategory(ctx, *req.CategoryID, account.BookID); err != nil {
			return nil, err
		}
		txn.CategoryID = req.CategoryID
	}

	if req.Date != nil {
		date, err := time.ParseInLocation(dateLayout, *req.Date, time.Local)
		if err != nil {
			return nil, apperrors.NewValidationFailedError("invalid date: " + *req.Date)
		}
		txn.Date = date
	}
	if req.Description != nil {
		txn.Description = *req.Description
	}
	if req.Amount != nil {
		txn.Amount = *req.Amount
	}
	if req.Exercised != nil {
		txn.Exercised = *req.Exercised
	}
	if req.Note != nil {
		txn.Note = *req.Note
	}
	txn.LastUpdatedAt = time.Now()
	txn.LastUpdatedBy = actor.UserID

	if err := s.txnRepo.UpdateTransaction(ctx, *txn); err != nil {
		s.LogError(ctx, err, "Failed to update transaction", slog.String("transaction_id", transactionID))
		return nil, err
	}
	return txn, nil
}

// DeleteTransaction removes a transaction.
func (s *transactionService) DeleteTransaction(ctx context.Context, actor domain.User, transactionID string) error {
	txn, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return err
	}
	if err := s.authorizeAccountAccess(ctx, actor, txn.AccountID, true); err != nil {
		return err
	}

	if err := s.txnRepo.DeleteTransaction(ctx, transactionID); err != nil {
		s.LogError(ctx, err, "Failed to delete transaction", slog.String("transaction_id", transactionID))
		return err
	}
	s.LogInfo(ctx, "Transaction deleted", slog.String("transaction_id", transactionID))
	return nil
}

// authorizeAccountAccess resolves the account's team through its book and
// checks the required capability.
func (s *transactionService) authorizeAccountAccess(ctx context.Context, actor domain.User, accountID string, write bool) error {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return err
	}
	book, err := s.bookRepo.FindBookByID(ctx, account.BookID)
	if err != nil {
		return err
	}
	if write {
		return s.authorizer.AuthorizeWrite(ctx, actor, book.TeamID)
	}
	return s.authorizer.AuthorizeRead(ctx, actor, book.TeamID)
}

// validateCategory checks that the category exists and belongs to the given book.
func (s *transactionService) validateCategory(ctx context.Context, categoryID, bookID string) error {
	category, err := s.categoryRepo.FindCategoryByID(ctx, categoryID)
	if err != nil {
		return err
	}
	if category.BookID != bookID {
		return apperrors.NewValidationFailedError("category belongs to a different book")
	}
	return nil
}
