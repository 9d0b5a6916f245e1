package services_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/teambudget/team_budget_app/internal/core/domain"
)

// Shared testify mocks for the repository and authorizer ports used across
// the service test suites.

// --- Mock UserRepository ---

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) ListUsers(ctx context.Context, limit int, offset int) ([]domain.User, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) SetUserActive(ctx context.Context, userID string, active bool, updatedBy string, now time.Time) error {
	args := m.Called(ctx, userID, active, updatedBy, now)
	return args.Error(0)
}

// --- Mock TeamRepository ---

type MockTeamRepository struct {
	mock.Mock
}

func (m *MockTeamRepository) FindTeamByID(ctx context.Context, teamID string) (*domain.Team, error) {
	args := m.Called(ctx, teamID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Team), args.Error(1)
}

func (m *MockTeamRepository) ListTeamsByUserID(ctx context.Context, userID string) ([]domain.Team, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Team), args.Error(1)
}

func (m *MockTeamRepository) SaveTeam(ctx context.Context, team domain.Team) error {
	args := m.Called(ctx, team)
	return args.Error(0)
}

func (m *MockTeamRepository) UpdateTeam(ctx context.Context, team domain.Team) error {
	args := m.Called(ctx, team)
	return args.Error(0)
}

func (m *MockTeamRepository) SetTeamDeletedAt(ctx context.Context, teamID string, deletedAt *time.Time, updatedBy string, now time.Time) error {
	args := m.Called(ctx, teamID, deletedAt, updatedBy, now)
	return args.Error(0)
}

func (m *MockTeamRepository) DeleteTeamPermanently(ctx context.Context, teamID string) error {
	args := m.Called(ctx, teamID)
	return args.Error(0)
}

func (m *MockTeamRepository) AddTeamMember(ctx context.Context, member domain.TeamMember) error {
	args := m.Called(ctx, member)
	return args.Error(0)
}

func (m *MockTeamRepository) FindTeamMember(ctx context.Context, teamID, userID string) (*domain.TeamMember, error) {
	args := m.Called(ctx, teamID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TeamMember), args.Error(1)
}

func (m *MockTeamRepository) ListTeamMembers(ctx context.Context, teamID string) ([]domain.TeamMember, error) {
	args := m.Called(ctx, teamID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TeamMember), args.Error(1)
}

func (m *MockTeamRepository) UpdateTeamMemberRole(ctx context.Context, teamID, userID string, role domain.TeamRole, guardLastAdmin bool) error {
	args := m.Called(ctx, teamID, userID, role, guardLastAdmin)
	return args.Error(0)
}

func (m *MockTeamRepository) RemoveTeamMember(ctx context.Context, teamID, userID string, guardLastAdmin bool) error {
	args := m.Called(ctx, teamID, userID, guardLastAdmin)
	return args.Error(0)
}

func (m *MockTeamRepository) CountTeamAdmins(ctx context.Context, teamID string) (int, error) {
	args := m.Called(ctx, teamID)
	return args.Int(0), args.Error(1)
}

// --- Mock BookRepository ---

type MockBookRepository struct {
	mock.Mock
}

func (m *MockBookRepository) FindBookByID(ctx context.Context, bookID string) (*domain.Book, error) {
	args := m.Called(ctx, bookID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Book), args.Error(1)
}

func (m *MockBookRepository) ListBooksByTeamID(ctx context.Context, teamID string, includeDeleted bool) ([]domain.Book, error) {
	args := m.Called(ctx, teamID, includeDeleted)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Book), args.Error(1)
}

func (m *MockBookRepository) SaveBook(ctx context.Context, book domain.Book) error {
	args := m.Called(ctx, book)
	return args.Error(0)
}

func (m *MockBookRepository) UpdateBook(ctx context.Context, book domain.Book) error {
	args := m.Called(ctx, book)
	return args.Error(0)
}

func (m *MockBookRepository) SetBookDeletedAt(ctx context.Context, bookID string, deletedAt *time.Time, updatedBy string, now time.Time) error {
	args := m.Called(ctx, bookID, deletedAt, updatedBy, now)
	return args.Error(0)
}

func (m *MockBookRepository) DeleteBookPermanently(ctx context.Context, bookID string) error {
	args := m.Called(ctx, bookID)
	return args.Error(0)
}

// --- Mock AccountRepository ---

type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccountsByBookID(ctx context.Context, bookID string) ([]domain.Account, error) {
	args := m.Called(ctx, bookID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) DeleteAccount(ctx context.Context, accountID string) error {
	args := m.Called(ctx, accountID)
	return args.Error(0)
}

// --- Mock CategoryRepository ---

type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) FindCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error) {
	args := m.Called(ctx, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *MockCategoryRepository) ListCategoriesByBookID(ctx context.Context, bookID string) ([]domain.Category, error) {
	args := m.Called(ctx, bookID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Category), args.Error(1)
}

func (m *MockCategoryRepository) ListChildCategories(ctx context.Context, parentCategoryID string) ([]domain.Category, error) {
	args := m.Called(ctx, parentCategoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Category), args.Error(1)
}

func (m *MockCategoryRepository) HasChildCategories(ctx context.Context, categoryID string) (bool, error) {
	args := m.Called(ctx, categoryID)
	return args.Bool(0), args.Error(1)
}

func (m *MockCategoryRepository) HasTransactions(ctx context.Context, categoryID string) (bool, error) {
	args := m.Called(ctx, categoryID)
	return args.Bool(0), args.Error(1)
}

func (m *MockCategoryRepository) SaveCategory(ctx context.Context, category domain.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) UpdateCategory(ctx context.Context, category domain.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) UpdateCategoryCascadeType(ctx context.Context, category domain.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) DeleteCategory(ctx context.Context, categoryID string) error {
	args := m.Called(ctx, categoryID)
	return args.Error(0)
}

// --- Mock TransactionRepository ---

type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) ListTransactionsByAccountID(ctx context.Context, accountID string, from, to *time.Time) ([]domain.Transaction, error) {
	args := m.Called(ctx, accountID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) HasTransactionsForAccount(ctx context.Context, accountID string) (bool, error) {
	args := m.Called(ctx, accountID)
	return args.Bool(0), args.Error(1)
}

func (m *MockTransactionRepository) SumAmountsByAccountID(ctx context.Context, accountID string, asOf time.Time) (domain.Balance, error) {
	args := m.Called(ctx, accountID, asOf)
	return args.Get(0).(domain.Balance), args.Error(1)
}

func (m *MockTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

func (m *MockTransactionRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

func (m *MockTransactionRepository) DeleteTransaction(ctx context.Context, transactionID string) error {
	args := m.Called(ctx, transactionID)
	return args.Error(0)
}

// --- Mock Authorizer ---

type MockAuthorizer struct {
	mock.Mock
}

func (m *MockAuthorizer) ResolveRole(ctx context.Context, teamID, userID string) (*domain.TeamRole, error) {
	args := m.Called(ctx, teamID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TeamRole), args.Error(1)
}

func (m *MockAuthorizer) CanRead(ctx context.Context, actor domain.User, teamID string) (domain.Decision, error) {
	args := m.Called(ctx, actor, teamID)
	return args.Get(0).(domain.Decision), args.Error(1)
}

func (m *MockAuthorizer) CanWrite(ctx context.Context, actor domain.User, teamID string) (domain.Decision, error) {
	args := m.Called(ctx, actor, teamID)
	return args.Get(0).(domain.Decision), args.Error(1)
}

func (m *MockAuthorizer) CanAdmin(ctx context.Context, actor domain.User, teamID string) (domain.Decision, error) {
	args := m.Called(ctx, actor, teamID)
	return args.Get(0).(domain.Decision), args.Error(1)
}

func (m *MockAuthorizer) AuthorizeRead(ctx context.Context, actor domain.User, teamID string) error {
	args := m.Called(ctx, actor, teamID)
	return args.Error(0)
}

func (m *MockAuthorizer) AuthorizeWrite(ctx context.Context, actor domain.User, teamID string) error {
	args := m.Called(ctx, actor, teamID)
	return args.Error(0)
}

func (m *MockAuthorizer) AuthorizeAdmin(ctx context.Context, actor domain.User, teamID string) error {
	args := m.Called(ctx, actor, teamID)
	return args.Error(0)
}
