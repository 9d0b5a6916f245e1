package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/teambudget/team_budget_app/internal/apperrors"
	"github.com/teambudget/team_budget_app/internal/core/domain"
	portsrepo "github.com/teambudget/team_budget_app/internal/core/ports/repositories"
	portssvc "github.com/teambudget/team_budget_app/internal/core/ports/services"
)

// balanceService computes account balances as of a reference date. The
// exercised balance sums only exercised transactions, the projected balance
// sums all transactions dated on or before the reference date.
type balanceService struct {
	BaseService
	txnRepo     portsrepo.TransactionReader
	accountRepo portsrepo.AccountReader
	bookRepo    portsrepo.BookReader
	authorizer  portssvc.TeamAuthorizerSvc
}

// NewBalanceService creates a new balance service with the provided dependencies
func NewBalanceService(
	txnRepo portsrepo.TransactionReader,
	accountRepo portsrepo.AccountReader,
	bookRepo portsrepo.BookReader,
	authorizer portssvc.TeamAuthorizerSvc,
) portssvc.BalanceSvc {
	return &balanceService{
		txnRepo:     txnRepo,
		accountRepo: accountRepo,
		bookRepo:    bookRepo,
		authorizer:  authorizer,
	}
}

var _ portssvc.BalanceSvc = (*balanceService)(nil)

// ComputeBalance returns the exercised and projected balances of an account
// as of the given date. An empty asOf defaults to today.
func (s *balanceService) ComputeBalance(ctx context.Context, actor domain.User, accountID string, asOf string) (*domain.Balance, error) {
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

	refDate := time.Now().Local()
	if asOf != "" {
		refDate, err = time.ParseInLocation(dateLayout, asOf, time.Local)
		if err != nil {
			return nil, apperrors.NewValidationFailedError("invalid as-of date: " + asOf)
		}
	}

	balance, err := s.txnRepo.SumAmountsByAccountID(ctx, accountID, refDate)
	if err != nil {
		s.LogError(ctx, err, "Failed to compute balance", slog.String("account_id", accountID))
		return nil, err
	}
	return &balance, nil
}
