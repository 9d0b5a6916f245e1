package services_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/teambudget/team_budget_app/internal/apperrors"
	"github.com/teambudget/team_budget_app/internal/core/domain"
	portssvc "github.com/teambudget/team_budget_app/internal/core/ports/services"
	"github.com/teambudget/team_budget_app/internal/core/services"
	"github.com/teambudget/team_budget_app/internal/dto"
)

type TransactionServiceTestSuite struct {
	suite.Suite
	mockTxnRepo      *MockTransactionRepository
	mockAccountRepo  *MockAccountRepository
	mockCategoryRepo *MockCategoryRepository
	mockBookRepo     *MockBookRepository
	mockAuthorizer   *MockAuthorizer
	service          portssvc.TransactionSvcFacade
}

func (suite *TransactionServiceTestSuite) SetupTest() {
	suite.mockTxnRepo = new(MockTransactionRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockCategoryRepo = new(MockCategoryRepository)
	suite.mockBookRepo = new(MockBookRepository)
	suite.mockAuthorizer = new(MockAuthorizer)
	suite.service = services.NewTransactionService(
		suite.mockTxnRepo,
		suite.mockAccountRepo,
		suite.mockCategoryRepo,
		suite.mockBookRepo,
		suite.mockAuthorizer,
	)
}

func (suite *TransactionServiceTestSuite) expectWritableAccount(ctx context.Context, actor domain.User) {
	account := &domain.Account{AccountID: "acct-1", BookID: "book-1"}
	book := &domain.Book{BookID: "book-1", TeamID: "team-1"}
	suite.mockAccountRepo.On("FindAccountByID", ctx, "acct-1").Return(account, nil)
	suite.mockBookRepo.On("FindBookByID", ctx, "book-1").Return(book, nil)
	suite.mockAuthorizer.On("AuthorizeWrite", ctx, actor, "team-1").Return(nil)
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_Success() {
	ctx := context.Background()
	actor := domain.User{UserID: "user-1"}
	suite.expectWritableAccount(ctx, actor)
	suite.mockTxnRepo.On("SaveTransaction", ctx, mock.MatchedBy(func(txn domain.Transaction) bool {
		return txn.AccountID == "acct-1" &&
			txn.Amount.Equal(decimal.NewFromInt(-50)) &&
			txn.Date.Format("2006-01-02") == "2024-01-15" &&
			!txn.Exercised
	})).Return(nil).Once()

	txn, err := suite.service.CreateTransaction(ctx, actor, "acct-1", dto.CreateTransactionRequest{
		Description: "groceries",
		Amount:      decimal.NewFromInt(-50),
		Date:        "2024-01-15",
	})

	suite.Require().NoError(err)
	suite.NotEmpty(txn.TransactionID)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_InvalidDate() {
	ctx := context.Background()
	actor := domain.User{UserID: "user-1"}
	suite.expectWritableAccount(ctx, actor)

	_, err := suite.service.CreateTransaction(ctx, actor, "acct-1", dto.CreateTransactionRequest{
		Description: "groceries",
		Amount:      decimal.NewFromInt(-50),
		Date:        "15/01/2024",
	})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveTransaction")
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_CategoryFromAnotherBook() {
	ctx := context.Background()
	actor := domain.User{UserID: "user-1"}
	suite.expectWritableAccount(ctx, actor)
	foreign := &domain.Category{CategoryID: "cat-x", BookID: "book-2", CategoryType: domain.Expense}
	suite.mockCategoryRepo.On("FindCategoryByID", ctx, "cat-x").Return(foreign, nil).Once()

	categoryID := "cat-x"
	_, err := suite.service.CreateTransaction(ctx, actor, "acct-1", dto.CreateTransactionRequest{
		CategoryID:  &categoryID,
		Description: "groceries",
		Amount:      decimal.NewFromInt(-50),
		Date:        "2024-01-15",
	})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Contains(err.Error(), "different book")
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveTransaction")
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_ViewerForbidden() {
	ctx := context.Background()
	actor := domain.User{UserID: "viewer-1"}
	account := &domain.Account{AccountID: "acct-1", BookID: "book-1"}
	book := &domain.Book{BookID: "book-1", TeamID: "team-1"}

	suite.mockAccountRepo.On("FindAccountByID", ctx, "acct-1").Return(account, nil)
	suite.mockBookRepo.On("FindBookByID", ctx, "book-1").Return(book, nil)
	suite.mockAuthorizer.On("AuthorizeWrite", ctx, actor, "team-1").
		Return(apperrors.NewForbiddenError("insufficient permissions")).Once()

	_, err := suite.service.CreateTransaction(ctx, actor, "acct-1", dto.CreateTransactionRequest{
		Description: "groceries",
		Amount:      decimal.NewFromInt(-50),
		Date:        "2024-01-15",
	})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *TransactionServiceTestSuite) TestUpdateTransaction_ClearCategory() {
	ctx := context.Background()
	actor := domain.User{UserID: "user-1"}
	categoryID := "cat-food"
	existing := &domain.Transaction{
		TransactionID: "txn-1",
		AccountID:     "acct-1",
		CategoryID:    &categoryID,
		Amount:        decimal.NewFromInt(-50),
	}

	suite.mockTxnRepo.On("FindTransactionByID", ctx, "txn-1").Return(existing, nil).Once()
	suite.expectWritableAccount(ctx, actor)
	suite.mockTxnRepo.On("UpdateTransaction", ctx, mock.MatchedBy(func(txn domain.Transaction) bool {
		return txn.CategoryID == nil
	})).Return(nil).Once()

	updated, err := suite.service.UpdateTransaction(ctx, actor, "txn-1", dto.UpdateTransactionRequest{
		ClearCategory: true,
	})

	suite.Require().NoError(err)
	suite.Nil(updated.CategoryID)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func TestTransactionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TransactionServiceTestSuite))
}
