package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/teambudget/team_budget_app/internal/apperrors"
	"github.com/teambudget/team_budget_app/internal/core/domain"
	portssvc "github.com/teambudget/team_budget_app/internal/core/ports/services"
	"github.com/teambudget/team_budget_app/internal/core/services"
	"github.com/teambudget/team_budget_app/internal/dto"
)

type CategoryServiceTestSuite struct {
	suite.Suite
	mockCategoryRepo *MockCategoryRepository
	mockBookRepo     *MockBookRepository
	mockAuthorizer   *MockAuthorizer
	service          portssvc.CategorySvcFacade
}

func (suite *CategoryServiceTestSuite) SetupTest() {
	suite.mockCategoryRepo = new(MockCategoryRepository)
	suite.mockBookRepo = new(MockBookRepository)
	suite.mockAuthorizer = new(MockAuthorizer)
	suite.service = services.NewCategoryService(suite.mockCategoryRepo, suite.mockBookRepo, suite.mockAuthorizer)
}

func (suite *CategoryServiceTestSuite) expectWritableBook(ctx context.Context, actor domain.User) {
	book := &domain.Book{BookID: "book-1", TeamID: "team-1"}
	suite.mockBookRepo.On("FindBookByID", ctx, "book-1").Return(book, nil)
	suite.mockAuthorizer.On("AuthorizeWrite", ctx, actor, "team-1").Return(nil)
}

func rootCategory(categoryID, name string, categoryType domain.CategoryType) *domain.Category {
	return &domain.Category{
		CategoryID:   categoryID,
		BookID:       "book-1",
		Name:         name,
		CategoryType: categoryType,
	}
}

func childCategory(categoryID, parentID string, categoryType domain.CategoryType) *domain.Category {
	return &domain.Category{
		CategoryID:       categoryID,
		BookID:           "book-1",
		Name:             "child",
		CategoryType:     categoryType,
		ParentCategoryID: &parentID,
	}
}

// --- CreateCategory ---

func (suite *CategoryServiceTestSuite) TestCreateCategory_Root() {
	ctx := context.Background()
	actor := domain.User{UserID: "user-1"}
	suite.expectWritableBook(ctx, actor)
	suite.mockCategoryRepo.On("SaveCategory", ctx, mock.MatchedBy(func(c domain.Category) bool {
		return c.Name == "Food" && c.CategoryType == domain.Expense && c.ParentCategoryID == nil
	})).Return(nil).Once()

	category, err := suite.service.CreateCategory(ctx, actor, "book-1", dto.CreateCategoryRequest{
		Name:         "Food",
		CategoryType: domain.Expense,
	})

	suite.Require().NoError(err)
	suite.Equal(domain.Expense, category.CategoryType)
	suite.mockCategoryRepo.AssertExpectations(suite.T())
}

func (suite *CategoryServiceTestSuite) TestCreateCategory_InvalidType() {
	ctx := context.Background()
	actor := domain.User{UserID: "user-1"}
	suite.expectWritableBook(ctx, actor)

	_, err := suite.service.CreateCategory(ctx, actor, "book-1", dto.CreateCategoryRequest{
		Name:         "Food",
		CategoryType: domain.CategoryType("SAVINGS"),
	})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockCategoryRepo.AssertNotCalled(suite.T(), "SaveCategory")
}

func (suite *CategoryServiceTestSuite) TestCreateCategory_ChildInheritsParentType() {
	ctx := context.Background()
	actor := domain.User{UserID: "user-1"}
	suite.expectWritableBook(ctx, actor)
	parent := rootCategory("cat-food", "Food", domain.Expense)
	suite.mockCategoryRepo.On("FindCategoryByID", ctx, "cat-food").Return(parent, nil).Once()
	suite.mockCategoryRepo.On("SaveCategory", ctx, mock.MatchedBy(func(c domain.Category) bool {
		return c.Name == "Groceries" && c.CategoryType == domain.Expense
	})).Return(nil).Once()

	parentID := "cat-food"
	// The caller-supplied type contradicts the parent; the parent wins silently.
	category, err := suite.service.CreateCategory(ctx, actor, "book-1", dto.CreateCategoryRequest{
		Name:             "Groceries",
		CategoryType:     domain.Income,
		ParentCategoryID: &parentID,
	})

	suite.Require().NoError(err)
	suite.Equal(domain.Expense, category.CategoryType)
}

func (suite *CategoryServiceTestSuite) TestCreateCategory_ParentMustBeRoot() {
	ctx := context.Background()
	actor := domain.User{UserID: "user-1"}
	suite.expectWritableBook(ctx, actor)
	nested := childCategory("cat-groceries", "cat-food", domain.Expense)
	suite.mockCategoryRepo.On("FindCategoryByID", ctx, "cat-groceries").Return(nested, nil).Once()

	parentID := "cat-groceries"
	_, err := suite.service.CreateCategory(ctx, actor, "book-1", dto.CreateCategoryRequest{
		Name:             "Snacks",
		CategoryType:     domain.Expense,
		ParentCategoryID: &parentID,
	})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidHierarchy)
	suite.Contains(err.Error(), "max category depth exceeded")
}

func (suite *CategoryServiceTestSuite) TestCreateCategory_ParentFromAnotherBook() {
	ctx := context.Background()
	actor := domain.User{UserID: "user-1"}
	suite.expectWritableBook(ctx, actor)
	foreign := &domain.Category{CategoryID: "cat-x", BookID: "book-2", CategoryType: domain.Expense}
	suite.mockCategoryRepo.On("FindCategoryByID", ctx, "cat-x").Return(foreign, nil).Once()

	parentID := "cat-x"
	_, err := suite.service.CreateCategory(ctx, actor, "book-1", dto.CreateCategoryRequest{
		Name:             "Snacks",
		CategoryType:     domain.Expense,
		ParentCategoryID: &parentID,
	})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidHierarchy)
	suite.Contains(err.Error(), "different book")
}

// --- UpdateCategory ---

func (suite *CategoryServiceTestSuite) TestUpdateCategory_TypeChangeCascadesToChildren() {
	ctx := context.Background()
	actor := domain.User{UserID: "user-1"}
	food := rootCategory("cat-food", "Food", domain.Expense)

	suite.mockCategoryRepo.On("FindCategoryByID", ctx, "cat-food").Return(food, nil).Once()
	suite.expectWritableBook(ctx, actor)
	suite.mockCategoryRepo.On("UpdateCategoryCascadeType", ctx, mock.MatchedBy(func(c domain.Category) bool {
		return c.CategoryID == "cat-food" && c.CategoryType == domain.Income
	})).Return(nil).Once()

	newType := domain.Income
	updated, err := suite.service.UpdateCategory(ctx, actor, "cat-food", dto.UpdateCategoryRequest{
		CategoryType: &newType,
	})

	suite.Require().NoError(err)
	suite.Equal(domain.Income, updated.CategoryType)
	suite.mockCategoryRepo.AssertNotCalled(suite.T(), "UpdateCategory")
	suite.mockCategoryRepo.AssertExpectations(suite.T())
}

func (suite *CategoryServiceTestSuite) TestUpdateCategory_RenameOnlySkipsCascade() {
	ctx := context.Background()
	actor := domain.User{UserID: "user-1"}
	food := rootCategory("cat-food", "Food", domain.Expense)

	suite.mockCategoryRepo.On("FindCategoryByID", ctx, "cat-food").Return(food, nil).Once()
	suite.expectWritableBook(ctx, actor)
	suite.mockCategoryRepo.On("UpdateCategory", ctx, mock.MatchedBy(func(c domain.Category) bool {
		return c.Name == "Meals" && c.CategoryType == domain.Expense
	})).Return(nil).Once()

	newName := "Meals"
	updated, err := suite.service.UpdateCategory(ctx, actor, "cat-food", dto.UpdateCategoryRequest{
		Name: &newName,
	})

	suite.Require().NoError(err)
	suite.Equal("Meals", updated.Name)
	suite.mockCategoryRepo.AssertNotCalled(suite.T(), "UpdateCategoryCascadeType")
}

func (suite *CategoryServiceTestSuite) TestUpdateCategory_OwnParentRejected() {
	ctx := context.Background()
	actor := domain.User{UserID: "user-1"}
	food := rootCategory("cat-food", "Food", domain.Expense)

	suite.mockCategoryRepo.On("FindCategoryByID", ctx, "cat-food").Return(food, nil).Once()
	suite.expectWritableBook(ctx, actor)

	selfID := "cat-food"
	_, err := suite.service.UpdateCategory(ctx, actor, "cat-food", dto.UpdateCategoryRequest{
		ParentCategoryID: &selfID,
	})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidHierarchy)
}

func (suite *CategoryServiceTestSuite) TestUpdateCategory_ParentWithChildrenCannotBecomeChild() {
	ctx := context.Background()
	actor := domain.User{UserID: "user-1"}
	food := rootCategory("cat-food", "Food", domain.Expense)

	suite.mockCategoryRepo.On("FindCategoryByID", ctx, "cat-food").Return(food, nil).Once()
	suite.expectWritableBook(ctx, actor)
	suite.mockCategoryRepo.On("HasChildCategories", ctx, "cat-food").Return(true, nil).Once()

	otherRootID := "cat-bills"
	_, err := suite.service.UpdateCategory(ctx, actor, "cat-food", dto.UpdateCategoryRequest{
		ParentCategoryID: &otherRootID,
	})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidHierarchy)
	suite.Contains(err.Error(), "cannot become a subcategory")
}

func (suite *CategoryServiceTestSuite) TestUpdateCategory_AssigningParentInheritsType() {
	ctx := context.Background()
	actor := domain.User{UserID: "user-1"}
	salary := rootCategory("cat-salary", "Salary", domain.Income)
	food := rootCategory("cat-food", "Food", domain.Expense)

	suite.mockCategoryRepo.On("FindCategoryByID", ctx, "cat-salary").Return(salary, nil).Once()
	suite.expectWritableBook(ctx, actor)
	suite.mockCategoryRepo.On("HasChildCategories", ctx, "cat-salary").Return(false, nil).Once()
	// Parent resolution plus the type lookup on the new parent.
	suite.mockCategoryRepo.On("FindCategoryByID", ctx, "cat-food").Return(food, nil)
	suite.mockCategoryRepo.On("UpdateCategory", ctx, mock.MatchedBy(func(c domain.Category) bool {
		return c.CategoryType == domain.Expense && c.ParentCategoryID != nil && *c.ParentCategoryID == "cat-food"
	})).Return(nil).Once()

	parentID := "cat-food"
	updated, err := suite.service.UpdateCategory(ctx, actor, "cat-salary", dto.UpdateCategoryRequest{
		ParentCategoryID: &parentID,
	})

	suite.Require().NoError(err)
	suite.Equal(domain.Expense, updated.CategoryType)
}

// --- DeleteCategory ---

func (suite *CategoryServiceTestSuite) TestDeleteCategory_BlockedByTransactions() {
	ctx := context.Background()
	actor := domain.User{UserID: "user-1"}
	food := rootCategory("cat-food", "Food", domain.Expense)

	suite.mockCategoryRepo.On("FindCategoryByID", ctx, "cat-food").Return(food, nil).Once()
	suite.expectWritableBook(ctx, actor)
	suite.mockCategoryRepo.On("HasTransactions", ctx, "cat-food").Return(true, nil).Once()

	err := suite.service.DeleteCategory(ctx, actor, "cat-food")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockCategoryRepo.AssertNotCalled(suite.T(), "DeleteCategory")
}

func (suite *CategoryServiceTestSuite) TestDeleteCategory_BlockedByChildren() {
	ctx := context.Background()
	actor := domain.User{UserID: "user-1"}
	food := rootCategory("cat-food", "Food", domain.Expense)

	suite.mockCategoryRepo.On("FindCategoryByID", ctx, "cat-food").Return(food, nil).Once()
	suite.expectWritableBook(ctx, actor)
	suite.mockCategoryRepo.On("HasTransactions", ctx, "cat-food").Return(false, nil).Once()
	suite.mockCategoryRepo.On("HasChildCategories", ctx, "cat-food").Return(true, nil).Once()

	err := suite.service.DeleteCategory(ctx, actor, "cat-food")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.Contains(err.Error(), "subcategories")
}

func (suite *CategoryServiceTestSuite) TestDeleteCategory_Success() {
	ctx := context.Background()
	actor := domain.User{UserID: "user-1"}
	food := rootCategory("cat-food", "Food", domain.Expense)

	suite.mockCategoryRepo.On("FindCategoryByID", ctx, "cat-food").Return(food, nil).Once()
	suite.expectWritableBook(ctx, actor)
	suite.mockCategoryRepo.On("HasTransactions", ctx, "cat-food").Return(false, nil).Once()
	suite.mockCategoryRepo.On("HasChildCategories", ctx, "cat-food").Return(false, nil).Once()
	suite.mockCategoryRepo.On("DeleteCategory", ctx, "cat-food").Return(nil).Once()

	suite.Require().NoError(suite.service.DeleteCategory(ctx, actor, "cat-food"))
	suite.mockCategoryRepo.AssertExpectations(suite.T())
}

// --- ListBookCategories ---

func (suite *CategoryServiceTestSuite) TestListBookCategories_BuildsTwoLevelTree() {
	ctx := context.Background()
	actor := domain.User{UserID: "user-1"}
	book := &domain.Book{BookID: "book-1", TeamID: "team-1"}
	foodID := "cat-food"
	flat := []domain.Category{
		*rootCategory("cat-bills", "Bills", domain.Expense),
		*rootCategory("cat-food", "Food", domain.Expense),
		*childCategory("cat-groceries", foodID, domain.Expense),
		*childCategory("cat-restaurants", foodID, domain.Expense),
	}

	suite.mockBookRepo.On("FindBookByID", ctx, "book-1").Return(book, nil).Once()
	suite.mockAuthorizer.On("AuthorizeRead", ctx, actor, "team-1").Return(nil).Once()
	suite.mockCategoryRepo.On("ListCategoriesByBookID", ctx, "book-1").Return(flat, nil).Once()

	nodes, err := suite.service.ListBookCategories(ctx, actor, "book-1")

	suite.Require().NoError(err)
	suite.Require().Len(nodes, 2)
	suite.Equal("Bills", nodes[0].Name)
	suite.Empty(nodes[0].Children)
	suite.Equal("Food", nodes[1].Name)
	suite.Len(nodes[1].Children, 2)
}

func TestCategoryServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CategoryServiceTestSuite))
}
