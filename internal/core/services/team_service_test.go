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

type TeamServiceTestSuite struct {
	suite.Suite
	mockTeamRepo   *MockTeamRepository
	mockUserRepo   *MockUserRepository
	mockAuthorizer *MockAuthorizer
	service        portssvc.TeamSvcFacade
}

func (suite *TeamServiceTestSuite) SetupTest() {
	suite.mockTeamRepo = new(MockTeamRepository)
	suite.mockUserRepo = new(MockUserRepository)
	suite.mockAuthorizer = new(MockAuthorizer)
	suite.service = services.NewTeamService(suite.mockTeamRepo, suite.mockUserRepo, suite.mockAuthorizer)
}

func activeTeam(teamID string) *domain.Team {
	return &domain.Team{TeamID: teamID, Name: "Household"}
}

func deletedTeam(teamID string) *domain.Team {
	deletedAt := time.Now().Add(-time.Hour)
	return &domain.Team{TeamID: teamID, Name: "Household", DeletedAt: &deletedAt}
}

// --- CreateTeam ---

func (suite *TeamServiceTestSuite) TestCreateTeam_CreatorBecomesAdmin() {
	ctx := context.Background()
	actor := domain.User{UserID: "creator-1"}

	suite.mockTeamRepo.On("SaveTeam", ctx, mock.MatchedBy(func(team domain.Team) bool {
		return team.Name == "Household" && team.TeamID != "" && team.CreatedBy == actor.UserID
	})).Return(nil).Once()
	suite.mockTeamRepo.On("AddTeamMember", ctx, mock.MatchedBy(func(member domain.TeamMember) bool {
		return member.UserID == actor.UserID && member.Role == domain.RoleAdmin
	})).Return(nil).Once()

	team, err := suite.service.CreateTeam(ctx, actor, dto.CreateTeamRequest{Name: "Household"})

	suite.Require().NoError(err)
	suite.Require().NotNil(team)
	suite.Equal("Household", team.Name)
	suite.NotEmpty(team.TeamID)
	suite.mockTeamRepo.AssertExpectations(suite.T())
}

// --- Lifecycle ---

func (suite *TeamServiceTestSuite) TestSoftDeleteTeam_Success() {
	ctx := context.Background()
	actor := domain.User{UserID: "admin-1"}

	suite.mockTeamRepo.On("FindTeamByID", ctx, "team-1").Return(activeTeam("team-1"), nil).Once()
	suite.mockAuthorizer.On("AuthorizeAdmin", ctx, actor, "team-1").Return(nil).Once()
	suite.mockTeamRepo.On("SetTeamDeletedAt", ctx, "team-1",
		mock.MatchedBy(func(deletedAt *time.Time) bool { return deletedAt != nil }),
		actor.UserID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	suite.Require().NoError(suite.service.SoftDeleteTeam(ctx, actor, "team-1"))
	suite.mockTeamRepo.AssertExpectations(suite.T())
}

func (suite *TeamServiceTestSuite) TestSoftDeleteTeam_AlreadyDeleted() {
	ctx := context.Background()
	actor := domain.User{UserID: "admin-1"}

	suite.mockTeamRepo.On("FindTeamByID", ctx, "team-1").Return(deletedTeam("team-1"), nil).Once()
	suite.mockAuthorizer.On("AuthorizeAdmin", ctx, actor, "team-1").Return(nil).Once()

	err := suite.service.SoftDeleteTeam(ctx, actor, "team-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrPreconditionFailed)
	suite.mockTeamRepo.AssertNotCalled(suite.T(), "SetTeamDeletedAt")
}

func (suite *TeamServiceTestSuite) TestRestoreTeam_Success() {
	ctx := context.Background()
	actor := domain.User{UserID: "admin-1"}

	suite.mockTeamRepo.On("FindTeamByID", ctx, "team-1").Return(deletedTeam("team-1"), nil).Once()
	suite.mockAuthorizer.On("AuthorizeAdmin", ctx, actor, "team-1").Return(nil).Once()
	suite.mockTeamRepo.On("SetTeamDeletedAt", ctx, "team-1", (*time.Time)(nil),
		actor.UserID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	suite.Require().NoError(suite.service.RestoreTeam(ctx, actor, "team-1"))
	suite.mockTeamRepo.AssertExpectations(suite.T())
}

func (suite *TeamServiceTestSuite) TestRestoreTeam_NotDeleted() {
	ctx := context.Background()
	actor := domain.User{UserID: "admin-1"}

	suite.mockTeamRepo.On("FindTeamByID", ctx, "team-1").Return(activeTeam("team-1"), nil).Once()
	suite.mockAuthorizer.On("AuthorizeAdmin", ctx, actor, "team-1").Return(nil).Once()

	err := suite.service.RestoreTeam(ctx, actor, "team-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrPreconditionFailed)
}

func (suite *TeamServiceTestSuite) TestPermanentDeleteTeam_RequiresSoftDeleteFirst() {
	ctx := context.Background()
	actor := domain.User{UserID: "admin-1"}

	suite.mockTeamRepo.On("FindTeamByID", ctx, "team-1").Return(activeTeam("team-1"), nil).Once()
	suite.mockAuthorizer.On("AuthorizeAdmin", ctx, actor, "team-1").Return(nil).Once()

	err := suite.service.PermanentDeleteTeam(ctx, actor, "team-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrPreconditionFailed)
	suite.mockTeamRepo.AssertNotCalled(suite.T(), "DeleteTeamPermanently")
}

func (suite *TeamServiceTestSuite) TestPermanentDeleteTeam_Success() {
	ctx := context.Background()
	actor := domain.User{UserID: "admin-1"}

	suite.mockTeamRepo.On("FindTeamByID", ctx, "team-1").Return(deletedTeam("team-1"), nil).Once()
	suite.mockAuthorizer.On("AuthorizeAdmin", ctx, actor, "team-1").Return(nil).Once()
	suite.mockTeamRepo.On("DeleteTeamPermanently", ctx, "team-1").Return(nil).Once()

	suite.Require().NoError(suite.service.PermanentDeleteTeam(ctx, actor, "team-1"))
	suite.mockTeamRepo.AssertExpectations(suite.T())
}

// --- Membership ---

func (suite *TeamServiceTestSuite) TestAddMember_Success() {
	ctx := context.Background()
	actor := domain.User{UserID: "admin-1"}
	target := &domain.User{UserID: "user-2", Username: "bob"}
	updated := []domain.TeamMember{
		{TeamID: "team-1", UserID: "admin-1", Role: domain.RoleAdmin},
		{TeamID: "team-1", UserID: "user-2", Role: domain.RoleViewer},
	}

	suite.mockTeamRepo.On("FindTeamByID", ctx, "team-1").Return(activeTeam("team-1"), nil).Once()
	suite.mockAuthorizer.On("AuthorizeAdmin", ctx, actor, "team-1").Return(nil).Once()
	suite.mockUserRepo.On("FindUserByID", ctx, "user-2").Return(target, nil).Once()
	suite.mockTeamRepo.On("AddTeamMember", ctx, mock.MatchedBy(func(member domain.TeamMember) bool {
		return member.UserID == "user-2" && member.Role == domain.RoleViewer
	})).Return(nil).Once()
	suite.mockTeamRepo.On("ListTeamMembers", ctx, "team-1").Return(updated, nil).Once()

	members, err := suite.service.AddMember(ctx, actor, "team-1", "user-2", domain.RoleViewer)

	suite.Require().NoError(err)
	suite.Len(members, 2)
	suite.mockTeamRepo.AssertExpectations(suite.T())
}

func (suite *TeamServiceTestSuite) TestAddMember_Duplicate() {
	ctx := context.Background()
	actor := domain.User{UserID: "admin-1"}

	suite.mockTeamRepo.On("FindTeamByID", ctx, "team-1").Return(activeTeam("team-1"), nil).Once()
	suite.mockAuthorizer.On("AuthorizeAdmin", ctx, actor, "team-1").Return(nil).Once()
	suite.mockUserRepo.On("FindUserByID", ctx, "user-2").Return(&domain.User{UserID: "user-2"}, nil).Once()
	suite.mockTeamRepo.On("AddTeamMember", ctx, mock.AnythingOfType("domain.TeamMember")).
		Return(apperrors.ErrDuplicate).Once()

	_, err := suite.service.AddMember(ctx, actor, "team-1", "user-2", domain.RoleViewer)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
}

func (suite *TeamServiceTestSuite) TestAddMember_InvalidRole() {
	ctx := context.Background()
	actor := domain.User{UserID: "admin-1"}

	_, err := suite.service.AddMember(ctx, actor, "team-1", "user-2", domain.TeamRole("OWNER"))

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockTeamRepo.AssertNotCalled(suite.T(), "AddTeamMember")
}

func (suite *TeamServiceTestSuite) TestAddMember_DeletedTeamRejected() {
	ctx := context.Background()
	actor := domain.User{UserID: "admin-1"}

	suite.mockTeamRepo.On("FindTeamByID", ctx, "team-1").Return(deletedTeam("team-1"), nil).Once()
	suite.mockAuthorizer.On("AuthorizeAdmin", ctx, actor, "team-1").Return(nil).Once()

	_, err := suite.service.AddMember(ctx, actor, "team-1", "user-2", domain.RoleViewer)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.Contains(err.Error(), "team is deleted")
}

func (suite *TeamServiceTestSuite) TestRemoveMember_GuardsLastAdmin() {
	ctx := context.Background()
	actor := domain.User{UserID: "admin-1"}
	admin := &domain.TeamMember{TeamID: "team-1", UserID: "admin-1", Role: domain.RoleAdmin}

	suite.mockTeamRepo.On("FindTeamByID", ctx, "team-1").Return(activeTeam("team-1"), nil).Once()
	suite.mockAuthorizer.On("AuthorizeAdmin", ctx, actor, "team-1").Return(nil).Once()
	suite.mockTeamRepo.On("FindTeamMember", ctx, "team-1", "admin-1").Return(admin, nil).Once()
	suite.mockTeamRepo.On("RemoveTeamMember", ctx, "team-1", "admin-1", true).
		Return(apperrors.NewConflictError("cannot remove the last admin of a team")).Once()

	_, err := suite.service.RemoveMember(ctx, actor, "team-1", "admin-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockTeamRepo.AssertExpectations(suite.T())
}

func (suite *TeamServiceTestSuite) TestRemoveMember_SuperadminBypassesGuard() {
	ctx := context.Background()
	actor := domain.User{UserID: "root", Superadmin: true}
	admin := &domain.TeamMember{TeamID: "team-1", UserID: "admin-1", Role: domain.RoleAdmin}
	remaining := []domain.TeamMember{}

	suite.mockTeamRepo.On("FindTeamByID", ctx, "team-1").Return(activeTeam("team-1"), nil).Once()
	suite.mockAuthorizer.On("AuthorizeAdmin", ctx, actor, "team-1").Return(nil).Once()
	suite.mockTeamRepo.On("FindTeamMember", ctx, "team-1", "admin-1").Return(admin, nil).Once()
	suite.mockTeamRepo.On("RemoveTeamMember", ctx, "team-1", "admin-1", false).Return(nil).Once()
	suite.mockTeamRepo.On("ListTeamMembers", ctx, "team-1").Return(remaining, nil).Once()

	members, err := suite.service.RemoveMember(ctx, actor, "team-1", "admin-1")

	suite.Require().NoError(err)
	suite.Empty(members)
	suite.mockTeamRepo.AssertExpectations(suite.T())
}

func (suite *TeamServiceTestSuite) TestRemoveMember_NonAdminNeedsNoGuard() {
	ctx := context.Background()
	actor := domain.User{UserID: "admin-1"}
	viewer := &domain.TeamMember{TeamID: "team-1", UserID: "user-2", Role: domain.RoleViewer}
	remaining := []domain.TeamMember{{TeamID: "team-1", UserID: "admin-1", Role: domain.RoleAdmin}}

	suite.mockTeamRepo.On("FindTeamByID", ctx, "team-1").Return(activeTeam("team-1"), nil).Once()
	suite.mockAuthorizer.On("AuthorizeAdmin", ctx, actor, "team-1").Return(nil).Once()
	suite.mockTeamRepo.On("FindTeamMember", ctx, "team-1", "user-2").Return(viewer, nil).Once()
	suite.mockTeamRepo.On("RemoveTeamMember", ctx, "team-1", "user-2", false).Return(nil).Once()
	suite.mockTeamRepo.On("ListTeamMembers", ctx, "team-1").Return(remaining, nil).Once()

	members, err := suite.service.RemoveMember(ctx, actor, "team-1", "user-2")

	suite.Require().NoError(err)
	suite.Len(members, 1)
}

func (suite *TeamServiceTestSuite) TestChangeRole_DemotionGuardsLastAdmin() {
	ctx := context.Background()
	actor := domain.User{UserID: "admin-1"}
	admin := &domain.TeamMember{TeamID: "team-1", UserID: "admin-1", Role: domain.RoleAdmin}

	suite.mockTeamRepo.On("FindTeamByID", ctx, "team-1").Return(activeTeam("team-1"), nil).Once()
	suite.mockAuthorizer.On("AuthorizeAdmin", ctx, actor, "team-1").Return(nil).Once()
	suite.mockTeamRepo.On("FindTeamMember", ctx, "team-1", "admin-1").Return(admin, nil).Once()
	suite.mockTeamRepo.On("UpdateTeamMemberRole", ctx, "team-1", "admin-1", domain.RoleViewer, true).
		Return(apperrors.NewConflictError("cannot remove the last admin of a team")).Once()

	_, err := suite.service.ChangeRole(ctx, actor, "team-1", "admin-1", domain.RoleViewer)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
}

func (suite *TeamServiceTestSuite) TestChangeRole_PromotionNeedsNoGuard() {
	ctx := context.Background()
	actor := domain.User{UserID: "admin-1"}
	viewer := &domain.TeamMember{TeamID: "team-1", UserID: "user-2", Role: domain.RoleViewer}
	updated := []domain.TeamMember{
		{TeamID: "team-1", UserID: "admin-1", Role: domain.RoleAdmin},
		{TeamID: "team-1", UserID: "user-2", Role: domain.RoleAdmin},
	}

	suite.mockTeamRepo.On("FindTeamByID", ctx, "team-1").Return(activeTeam("team-1"), nil).Once()
	suite.mockAuthorizer.On("AuthorizeAdmin", ctx, actor, "team-1").Return(nil).Once()
	suite.mockTeamRepo.On("FindTeamMember", ctx, "team-1", "user-2").Return(viewer, nil).Once()
	suite.mockTeamRepo.On("UpdateTeamMemberRole", ctx, "team-1", "user-2", domain.RoleAdmin, false).Return(nil).Once()
	suite.mockTeamRepo.On("ListTeamMembers", ctx, "team-1").Return(updated, nil).Once()

	members, err := suite.service.ChangeRole(ctx, actor, "team-1", "user-2", domain.RoleAdmin)

	suite.Require().NoError(err)
	suite.Len(members, 2)
}

func TestTeamServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TeamServiceTestSuite))
}
