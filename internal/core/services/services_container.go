package services

import (
	portsrepo "github.com/teambudget/team_budget_app/internal/core/ports/repositories"
	portssvc "github.com/teambudget/team_budget_app/internal/core/ports/services"
	"github.com/teambudget/team_budget_app/internal/platform/config"
)

// NewServiceContainer wires all services with their dependencies and returns
// the container handed to the HTTP layer.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	authorizer := NewAuthzService(
		repos.TeamRepo,
		repos.BookRepo,
		repos.AccountRepo,
		repos.CategoryRepo,
		repos.TransactionRepo,
	)

	userSvc := NewUserService(repos.UserRepo)
	tokenSvc := NewTokenService(userSvc, cfg)
	teamSvc := NewTeamService(repos.TeamRepo, repos.UserRepo, authorizer)
	bookSvc := NewBookService(repos.BookRepo, repos.TeamRepo, authorizer)
	accountSvc := NewAccountService(repos.AccountRepo, repos.BookRepo, repos.TransactionRepo, authorizer)
	categorySvc := NewCategoryService(repos.CategoryRepo, repos.BookRepo, authorizer)
	transactionSvc := NewTransactionService(repos.TransactionRepo, repos.AccountRepo, repos.CategoryRepo, repos.BookRepo, authorizer)
	balanceSvc := NewBalanceService(repos.TransactionRepo, repos.AccountRepo, repos.BookRepo, authorizer)

	return &portssvc.ServiceContainer{
		User:        userSvc,
		Token:       tokenSvc,
		Authorizer:  authorizer,
		Team:        teamSvc,
		Book:        bookSvc,
		Account:     accountSvc,
		Category:    categorySvc,
		Transaction: transactionSvc,
		Balance:     balanceSvc,
	}
}
