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

// accountService implements account CRUD within a book. Authorization
// resolves through the book's team.
type accountService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
	bookRepo    portsrepo.BookReader
	txnRepo     portsrepo.TransactionReader
	authorizer  portssvc.TeamAuthorizerSvc
}

// NewAccountService creates a new account service with the provided dependencies
func NewAccountService(
	accountRepo portsrepo.AccountRepositoryFacade,
	bookRepo portsrepo.BookReader,
	txnRepo portsrepo.TransactionReader,
	authorizer portssvc.TeamAuthorizerSvc,
) portssvc.AccountSvcFacade {
	return &accountService{
		accountRepo: accountRepo,
		bookRepo:    bookRepo,
		txnRepo:     txnRepo,
		authorizer:  authorizer,
	}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// GetAccountByID retrieves an account the actor can read.
func (s *accountService) GetAccountByID(ctx context.Context, actor domain.User, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	book, err := s.bookRepo.FindBookByID(ctx, account.BookID)
	if err != nil {
		return nil, err
	}
	if err := s.authorizer.AuthorizeRead(ctx, actor, book.TeamID); err != nil {
		return nil, err
	}
	return account, nil
}

// ListBookAccounts retrieves the accounts of a book the actor can read.
func (s *accountService) ListBookAccounts(ctx context.Context, actor domain.User, bookID string) ([]domain.Account, error) {
	book, err := s.bookRepo.FindBookByID(ctx, bookID)
	if err != nil {
		return nil, err
	}
	if err := s.authorizer.AuthorizeRead(ctx, actor, book.TeamID); err != nil {
		return nil, err
	}
	accounts, err := s.accountRepo.ListAccountsByBookID(ctx, bookID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts for book", slog.String("book_id", bookID))
		return nil, err
	}
	if accounts == nil {
		return []domain.Account{}, nil
	}
	return accounts, nil
}

// CreateAccount creates an account inside a book.
func (s *accountService) CreateAccount(ctx context.Context, actor domain.User, bookID string, req dto.CreateAccountRequest) (*domain.Account, error) {
	if !req.AccountType.IsValid() {
		return nil, apperrors.NewValidationFailedError("invalid account type: " + string(req.AccountType))
	}

	book, err := s.bookRepo.FindBookByID(ctx, bookID)
	if err != nil {
		return nil, err
	}
	if err := s.authorizer.AuthorizeWrite(ctx, actor, book.TeamID); err != nil {
		return nil, err
	}
	if book.IsDeleted() && !actor.Superadmin {
		return nil, apperrors.NewForbiddenError("book is deleted")
	}

	now := time.Now()
	account := domain.Account{
		AccountID:   uuid.NewString(),
		BookID:      bookID,
		Name:        req.Name,
		AccountType: req.AccountType,
		Note:        req.Note,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.UserID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		s.LogError(ctx, err, "Failed to save account", slog.String("account_id", account.AccountID))
		return nil, err
	}

	s.LogInfo(ctx, "Account created successfully",
		slog.String("account_id", account.AccountID),
		slog.String("book_id", bookID))
	return &account, nil
}

// UpdateAccount applies a partial update to an account.
func (s *accountService) UpdateAccount(ctx context.Context, actor domain.User, accountID string, req dto.UpdateAccountRequest) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	book, err := s.bookRepo.FindBookByID(ctx, account.BookID)
	if err != nil {
		return nil, err
	}
	if err := s.authorizer.AuthorizeWrite(ctx, actor, book.TeamID); err != nil {
		return nil, err
	}

	if req.AccountType != nil {
		if !req.AccountType.IsValid() {
			return nil, apperrors.NewValidationFailedError("invalid account type: " + string(*req.AccountType))
		}
		account.AccountType = *req.AccountType
	}
	if req.Name != nil {
		account.Name = *req.Name
	}
	if req.Note != nil {
		account.Note = *req.Note
	}
	account.LastUpdatedAt = time.Now()
	account.LastUpdatedBy = actor.UserID

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		s.LogError(ctx, err, "Failed to update account", slog.String("account_id", accountID))
		return nil, err
	}
	return account, nil
}

// DeleteAccount removes an account. An account that still has transactions is
// rejected; transactions must be deleted or moved first.
func (s *accountService) DeleteAccount(ctx context.Context, actor domain.User, accountID string) error {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return err
	}
	book, err := s.bookRepo.FindBookByID(ctx, account.BookID)
	if err != nil {
		return err
	}
	if err := s.authorizer.AuthorizeWrite(ctx, actor, book.TeamID); err != nil {
		return err
	}

	hasTxns, err := s.txnRepo.HasTransactionsForAccount(ctx, accountID)
	if err != nil {
		return err
	}
	if hasTxns {
		return apperrors.NewConflictError("account has transactions")
	}

	if err := s.accountRepo.DeleteAccount(ctx, accountID); err != nil {
		s.LogError(ctx, err, "Failed to delete account", slog.String("account_id", accountID))
		return err
	}
	s.LogInfo(ctx, "Account deleted", slog.String("account_id", accountID))
	return nil
}
