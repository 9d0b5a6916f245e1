package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/teambudget/team_budget_app/internal/apperrors"
	"github.com/teambudget/team_budget_app/internal/core/domain"
	portssvc "github.com/teambudget/team_budget_app/internal/core/ports/services"
	"github.com/teambudget/team_budget_app/internal/core/services"
	"github.com/teambudget/team_budget_app/internal/dto"
)

type BookServiceTestSuite struct {
	suite.Suite
	mockBookRepo   *MockBookRepository
	mockTeamRepo   *MockTeamRepository
	mockAuthorizer *MockAuthorizer
	service        portssvc.BookSvcFacade
}

func (suite *BookServiceTestSuite) SetupTest() {
	suite.mockBookRepo = new(MockBookRepository)
	suite.mockTeamRepo = new(MockTeamRepository)
	suite.mockAuthorizer = new(MockAuthorizer)
	suite.service = services.NewBookService(suite.mockBookRepo, suite.mockTeamRepo, suite.mockAuthorizer)
}

func activeBook(bookID string) *domain.Book {
	return &domain.Book{BookID: bookID, TeamID: "team-1", Name: "2024 Budget"}
}

func deletedBook(bookID string) *domain.Book {
	deletedAt := time.Now().Add(-time.Hour)
	return &domain.Book{BookID: bookID, TeamID: "team-1", Name: "2024 Budget", DeletedAt: &deletedAt}
}

func (suite *BookServiceTestSuite) TestCreateBook_Success() {
	ctx := context.Background()
	actor := domain.User{UserID: "user-1"}

	suite.mockTeamRepo.On("FindTeamByID", ctx, "team-1").Return(activeTeam("team-1"), nil).Once()
	suite.mockAuthorizer.On("AuthorizeWrite", ctx, actor, "team-1").Return(nil).Once()
	suite.mockBookRepo.On("SaveBook", ctx, mock.MatchedBy(func(book domain.Book) bool {
		return book.Name == "2024 Budget" && book.TeamID == "team-1" && book.CurrencySymbol == "EUR"
	})).Return(nil).Once()

	book, err := suite.service.CreateBook(ctx, actor, "team-1", dto.CreateBookRequest{
		Name:           "2024 Budget",
		CurrencySymbol: "EUR",
	})

	suite.Require().NoError(err)
	suite.NotEmpty(book.BookID)
	suite.mockBookRepo.AssertExpectations(suite.T())
}

func (suite *BookServiceTestSuite) TestCreateBook_DeletedTeamRejected() {
	ctx := context.Background()
	actor := domain.User{UserID: "user-1"}

	suite.mockTeamRepo.On("FindTeamByID", ctx, "team-1").Return(deletedTeam("team-1"), nil).Once()
	suite.mockAuthorizer.On("AuthorizeWrite", ctx, actor, "team-1").Return(nil).Once()

	_, err := suite.service.CreateBook(ctx, actor, "team-1", dto.CreateBookRequest{Name: "2024 Budget"})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockBookRepo.AssertNotCalled(suite.T(), "SaveBook")
}

func (suite *BookServiceTestSuite) TestSoftDeleteBook_AlreadyDeleted() {
	ctx := context.Background()
	actor := domain.User{UserID: "user-1"}

	suite.mockBookRepo.On("FindBookByID", ctx, "book-1").Return(deletedBook("book-1"), nil).Once()
	suite.mockAuthorizer.On("AuthorizeWrite", ctx, actor, "team-1").Return(nil).Once()

	err := suite.service.SoftDeleteBook(ctx, actor, "book-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrPreconditionFailed)
	suite.mockBookRepo.AssertNotCalled(suite.T(), "SetBookDeletedAt")
}

func (suite *BookServiceTestSuite) TestRestoreBook_Success() {
	ctx := context.Background()
	actor := domain.User{UserID: "user-1"}

	suite.mockBookRepo.On("FindBookByID", ctx, "book-1").Return(deletedBook("book-1"), nil).Once()
	suite.mockAuthorizer.On("AuthorizeWrite", ctx, actor, "team-1").Return(nil).Once()
	suite.mockBookRepo.On("SetBookDeletedAt", ctx, "book-1", (*time.Time)(nil),
		actor.UserID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	suite.Require().NoError(suite.service.RestoreBook(ctx, actor, "book-1"))
	suite.mockBookRepo.AssertExpectations(suite.T())
}

func (suite *BookServiceTestSuite) TestPermanentDeleteBook_RequiresSoftDeleteFirst() {
	ctx := context.Background()
	actor := domain.User{UserID: "user-1"}

	suite.mockBookRepo.On("FindBookByID", ctx, "book-1").Return(activeBook("book-1"), nil).Once()
	suite.mockAuthorizer.On("AuthorizeAdmin", ctx, actor, "team-1").Return(nil).Once()

	err := suite.service.PermanentDeleteBook(ctx, actor, "book-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrPreconditionFailed)
	suite.mockBookRepo.AssertNotCalled(suite.T(), "DeleteBookPermanently")
}

func (suite *BookServiceTestSuite) TestPermanentDeleteBook_AdminOnly() {
	ctx := context.Background()
	actor := domain.User{UserID: "collab-1"}

	suite.mockBookRepo.On("FindBookByID", ctx, "book-1").Return(deletedBook("book-1"), nil).Once()
	suite.mockAuthorizer.On("AuthorizeAdmin", ctx, actor, "team-1").
		Return(apperrors.NewForbiddenError("insufficient permissions")).Once()

	err := suite.service.PermanentDeleteBook(ctx, actor, "book-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *BookServiceTestSuite) TestPermanentDeleteBook_Success() {
	ctx := context.Background()
	actor := domain.User{UserID: "admin-1"}

	suite.mockBookRepo.On("FindBookByID", ctx, "book-1").Return(deletedBook("book-1"), nil).Once()
	suite.mockAuthorizer.On("AuthorizeAdmin", ctx, actor, "team-1").Return(nil).Once()
	suite.mockBookRepo.On("DeleteBookPermanently", ctx, "book-1").Return(nil).Once()

	suite.Require().NoError(suite.service.PermanentDeleteBook(ctx, actor, "book-1"))
	suite.mockBookRepo.AssertExpectations(suite.T())
}

func (suite *BookServiceTestSuite) TestListTeamBooks_ExcludesDeletedByDefault() {
	ctx := context.Background()
	actor := domain.User{UserID: "user-1"}
	books := []domain.Book{*activeBook("book-1")}

	suite.mockTeamRepo.On("FindTeamByID", ctx, "team-1").Return(activeTeam("team-1"), nil).Once()
	suite.mockAuthorizer.On("AuthorizeRead", ctx, actor, "team-1").Return(nil).Once()
	suite.mockBookRepo.On("ListBooksByTeamID", ctx, "team-1", false).Return(books, nil).Once()

	result, err := suite.service.ListTeamBooks(ctx, actor, "team-1", false)

	suite.Require().NoError(err)
	suite.Len(result, 1)
	suite.mockBookRepo.AssertExpectations(suite.T())
}

func TestBookServiceTestSuite(t *testing.T) {
	suite.Run(t, new(BookServiceTestSuite))
}
