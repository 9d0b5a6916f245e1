package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"github.com/teambudget/team_budget_app/internal/apperrors"
	"github.com/teambudget/team_budget_app/internal/core/domain"
	portssvc "github.com/teambudget/team_budget_app/internal/core/ports/services"
	"github.com/teambudget/team_budget_app/internal/core/services"
)

type AuthzServiceTestSuite struct {
	suite.Suite
	mockTeamRepo     *MockTeamRepository
	mockBookRepo     *MockBookRepository
	mockAccountRepo  *MockAccountRepository
	mockCategoryRepo *MockCategoryRepository
	mockTxnRepo      *MockTransactionRepository
	service          portssvc.AuthorizerFacade
}

func (suite *AuthzServiceTestSuite) SetupTest() {
	suite.mockTeamRepo = new(MockTeamRepository)
	suite.mockBookRepo = new(MockBookRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockCategoryRepo = new(MockCategoryRepository)
	suite.mockTxnRepo = new(MockTransactionRepository)
	suite.service = services.NewAuthzService(
		suite.mockTeamRepo,
		suite.mockBookRepo,
		suite.mockAccountRepo,
		suite.mockCategoryRepo,
		suite.mockTxnRepo,
	)
}

func (suite *AuthzServiceTestSuite) member(role domain.TeamRole) *domain.TeamMember {
	return &domain.TeamMember{TeamID: "team-1", UserID: "user-1", Role: role}
}

// --- ResolveRole ---

func (suite *AuthzServiceTestSuite) TestResolveRole_Member() {
	ctx := context.Background()
	suite.mockTeamRepo.On("FindTeamMember", ctx, "team-1", "user-1").
		Return(suite.member(domain.RoleViewer), nil).Once()

	role, err := suite.service.ResolveRole(ctx, "team-1", "user-1")

	suite.Require().NoError(err)
	suite.Require().NotNil(role)
	suite.Equal(domain.RoleViewer, *role)
	suite.mockTeamRepo.AssertExpectations(suite.T())
}

func (suite *AuthzServiceTestSuite) TestResolveRole_NotAMember() {
	ctx := context.Background()
	suite.mockTeamRepo.On("FindTeamMember", ctx, "team-1", "user-1").
		Return(nil, apperrors.ErrNotFound).Once()

	role, err := suite.service.ResolveRole(ctx, "team-1", "user-1")

	suite.Require().NoError(err)
	suite.Nil(role)
}

func (suite *AuthzServiceTestSuite) TestResolveRole_UnknownTeamIsNoRoleNotError() {
	ctx := context.Background()
	unknownTeamID := uuid.NewString()
	suite.mockTeamRepo.On("FindTeamMember", ctx, unknownTeamID, "user-1").
		Return(nil, apperrors.ErrNotFound)

	role, err := suite.service.ResolveRole(ctx, unknownTeamID, "user-1")

	suite.Require().NoError(err)
	suite.Nil(role)
}

// --- Capability matrix ---

func (suite *AuthzServiceTestSuite) TestCanRead_AnyRoleSuffices() {
	ctx := context.Background()
	actor := domain.User{UserID: "user-1"}

	for _, role := range []domain.TeamRole{domain.RoleAdmin, domain.RoleCollaborator, domain.RoleViewer} {
		suite.mockTeamRepo.On("FindTeamMember", ctx, "team-1", "user-1").
			Return(suite.member(role), nil).Once()

		decision, err := suite.service.CanRead(ctx, actor, "team-1")

		suite.Require().NoError(err)
		suite.True(decision.Allowed, "role %s should be able to read", role)
	}
}

func (suite *AuthzServiceTestSuite) TestCanWrite_ViewerDenied() {
	ctx := context.Background()
	actor := domain.User{UserID: "user-1"}
	suite.mockTeamRepo.On("FindTeamMember", ctx, "team-1", "user-1").
		Return(suite.member(domain.RoleViewer), nil).Once()

	decision, err := suite.service.CanWrite(ctx, actor, "team-1")

	suite.Require().NoError(err)
	suite.False(decision.Allowed)
	suite.Equal("insufficient permissions", decision.Reason)
}

func (suite *AuthzServiceTestSuite) TestCanWrite_CollaboratorAllowed() {
	ctx := context.Background()
	actor := domain.User{UserID: "user-1"}
	suite.mockTeamRepo.On("FindTeamMember", ctx, "team-1", "user-1").
		Return(suite.member(domain.RoleCollaborator), nil).Once()

	decision, err := suite.service.CanWrite(ctx, actor, "team-1")

	suite.Require().NoError(err)
	suite.True(decision.Allowed)
}

func (suite *AuthzServiceTestSuite) TestCanAdmin_CollaboratorDenied() {
	ctx := context.Background()
	actor := domain.User{UserID: "user-1"}
	suite.mockTeamRepo.On("FindTeamMember", ctx, "team-1", "user-1").
		Return(suite.member(domain.RoleCollaborator), nil).Once()

	decision, err := suite.service.CanAdmin(ctx, actor, "team-1")

	suite.Require().NoError(err)
	suite.False(decision.Allowed)
	suite.Equal("insufficient permissions", decision.Reason)
}

func (suite *AuthzServiceTestSuite) TestCanAdmin_AdminAllowed() {
	ctx := context.Background()
	actor := domain.User{UserID: "user-1"}
	suite.mockTeamRepo.On("FindTeamMember", ctx, "team-1", "user-1").
		Return(suite.member(domain.RoleAdmin), nil).Once()

	decision, err := suite.service.CanAdmin(ctx, actor, "team-1")

	suite.Require().NoError(err)
	suite.True(decision.Allowed)
}

func (suite *AuthzServiceTestSuite) TestNonMember_DeniedWithReason() {
	ctx := context.Background()
	actor := domain.User{UserID: "user-1"}
	suite.mockTeamRepo.On("FindTeamMember", ctx, "team-1", "user-1").
		Return(nil, apperrors.ErrNotFound)

	decision, err := suite.service.CanRead(ctx, actor, "team-1")
	suite.Require().NoError(err)
	suite.False(decision.Allowed)
	suite.Equal("not a team member", decision.Reason)
}

// --- Superadmin bypass ---

func (suite *AuthzServiceTestSuite) TestSuperadmin_BypassesMembershipLookup() {
	ctx := context.Background()
	actor := domain.User{UserID: "root", Superadmin: true}

	readDecision, err := suite.service.CanRead(ctx, actor, "team-1")
	suite.Require().NoError(err)
	suite.True(readDecision.Allowed)

	writeDecision, err := suite.service.CanWrite(ctx, actor, "team-1")
	suite.Require().NoError(err)
	suite.True(writeDecision.Allowed)

	adminDecision, err := suite.service.CanAdmin(ctx, actor, "team-1")
	suite.Require().NoError(err)
	suite.True(adminDecision.Allowed)

	// No membership lookup must have happened.
	suite.mockTeamRepo.AssertNotCalled(suite.T(), "FindTeamMember")
}

// --- Authorize helpers ---

func (suite *AuthzServiceTestSuite) TestAuthorizeWrite_DenialIsForbidden() {
	ctx := context.Background()
	actor := domain.User{UserID: "user-1"}
	suite.mockTeamRepo.On("FindTeamMember", ctx, "team-1", "user-1").
		Return(suite.member(domain.RoleViewer), nil).Once()

	err := suite.service.AuthorizeWrite(ctx, actor, "team-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.Contains(err.Error(), "insufficient permissions")
}

func (suite *AuthzServiceTestSuite) TestAuthorizeRead_MemberSucceeds() {
	ctx := context.Background()
	actor := domain.User{UserID: "user-1"}
	suite.mockTeamRepo.On("FindTeamMember", ctx, "team-1", "user-1").
		Return(suite.member(domain.RoleViewer), nil).Once()

	suite.NoError(suite.service.AuthorizeRead(ctx, actor, "team-1"))
}

// --- Containment chain resolution ---

func (suite *AuthzServiceTestSuite) TestResolveTeamForTransaction_WalksChain() {
	ctx := context.Background()
	txn := &domain.Transaction{TransactionID: "txn-1", AccountID: "acct-1"}
	account := &domain.Account{AccountID: "acct-1", BookID: "book-1"}
	book := &domain.Book{BookID: "book-1", TeamID: "team-1"}

	suite.mockTxnRepo.On("FindTransactionByID", ctx, "txn-1").Return(txn, nil).Once()
	suite.mockAccountRepo.On("FindAccountByID", ctx, "acct-1").Return(account, nil).Once()
	suite.mockBookRepo.On("FindBookByID", ctx, "book-1").Return(book, nil).Once()

	teamID, err := suite.service.ResolveTeamForTransaction(ctx, "txn-1")

	suite.Require().NoError(err)
	suite.Equal("team-1", teamID)
	suite.mockTxnRepo.AssertExpectations(suite.T())
	suite.mockAccountRepo.AssertExpectations(suite.T())
	suite.mockBookRepo.AssertExpectations(suite.T())
}

func (suite *AuthzServiceTestSuite) TestResolveTeamForBook_NotFound() {
	ctx := context.Background()
	suite.mockBookRepo.On("FindBookByID", ctx, "missing").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.ResolveTeamForBook(ctx, "missing")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func TestAuthzServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AuthzServiceTestSuite))
}
