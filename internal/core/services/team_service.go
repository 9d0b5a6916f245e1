package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/teambudget/team_budget_app/internal/apperrors"
	"github.com/teambudget/team_budget_app/internal/core/domain"
	portsrepo "github.com/teambudget/team_budget_app/internal/core/ports/repositories"
	portssvc "github.com/teambudget/team_budget_app/internal/core/ports/services"
	"github.com/teambudget/team_budget_app/internal/dto"
)

// teamService implements team CRUD, the soft-delete lifecycle and membership
// management with the last-admin invariant.
type teamService struct {
	BaseService
	teamRepo   portsrepo.TeamRepositoryFacade
	userRepo   portsrepo.UserReader
	authorizer portssvc.TeamAuthorizerSvc
}

// NewTeamService creates a new team service with the provided dependencies
func NewTeamService(
	teamRepo portsrepo.TeamRepositoryFacade,
	userRepo portsrepo.UserReader,
	authorizer portssvc.TeamAuthorizerSvc,
) portssvc.TeamSvcFacade {
	return &teamService{
		teamRepo:   teamRepo,
		userRepo:   userRepo,
		authorizer: authorizer,
	}
}

var _ portssvc.TeamSvcFacade = (*teamService)(nil)

// GetTeamByID retrieves a team the actor can read. Soft-deleted teams are
// returned with their deletion marker set.
func (s *teamService) GetTeamByID(ctx context.Context, actor domain.User, teamID string) (*domain.Team, error) {
	team, err := s.teamRepo.FindTeamByID(ctx, teamID)
	if err != nil {
		return nil, err
	}
	if err := s.authorizer.AuthorizeRead(ctx, actor, teamID); err != nil {
		return nil, err
	}
	return team, nil
}

// ListUserTeams retrieves the non-deleted teams the actor belongs to.
func (s *teamService) ListUserTeams(ctx context.Context, actor domain.User) ([]domain.Team, error) {
	teams, err := s.teamRepo.ListTeamsByUserID(ctx, actor.UserID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list teams for user",
			slog.String("user_id", actor.UserID))
		return nil, err
	}
	if teams == nil {
		return []domain.Team{}, nil
	}
	return teams, nil
}

// ListTeamMembers retrieves the members of a team the actor can read.
func (s *teamService) ListTeamMembers(ctx context.Context, actor domain.User, teamID string) ([]domain.TeamMember, error) {
	if _, err := s.teamRepo.FindTeamByID(ctx, teamID); err != nil {
		return nil, err
	}
	if err := s.authorizer.AuthorizeRead(ctx, actor, teamID); err != nil {
		return nil, err
	}
	return s.teamRepo.ListTeamMembers(ctx, teamID)
}

// CreateTeam creates a team; the creator becomes its first admin.
func (s *teamService) CreateTeam(ctx context.Context, actor domain.User, req dto.CreateTeamRequest) (*domain.Team, error) {
	now := time.Now()
	team := domain.Team{
		TeamID: uuid.NewString(),
		Name:   req.Name,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.UserID,
		},
	}

	if err := s.teamRepo.SaveTeam(ctx, team); err != nil {
		s.LogError(ctx, err, "Failed to save team", slog.String("team_id", team.TeamID))
		return nil, err
	}

	membership := domain.TeamMember{
		TeamID:   team.TeamID,
		UserID:   actor.UserID,
		Role:     domain.RoleAdmin,
		JoinedAt: now,
	}
	if err := s.teamRepo.AddTeamMember(ctx, membership); err != nil {
		s.LogError(ctx, err, "Failed to add creator as admin to new team",
			slog.String("team_id", team.TeamID),
			slog.String("user_id", actor.UserID))
		return nil, err
	}

	s.LogInfo(ctx, "Team created successfully",
		slog.String("team_id", team.TeamID),
		slog.String("creator_id", actor.UserID))
	return &team, nil
}

// UpdateTeam renames a team. Admin only; soft-deleted teams reject the change.
func (s *teamService) UpdateTeam(ctx context.Context, actor domain.User, teamID string, req dto.UpdateTeamRequest) (*domain.Team, error) {
	team, err := s.teamRepo.FindTeamByID(ctx, teamID)
	if err != nil {
		return nil, err
	}
	if err := s.authorizer.AuthorizeAdmin(ctx, actor, teamID); err != nil {
		return nil, err
	}
	if team.IsDeleted() && !actor.Superadmin {
		return nil, apperrors.NewForbiddenError(reasonTeamIsDeleted)
	}

	team.Name = req.Name
	team.LastUpdatedAt = time.Now()
	team.LastUpdatedBy = actor.UserID
	if err := s.teamRepo.UpdateTeam(ctx, *team); err != nil {
		s.LogError(ctx, err, "Failed to update team", slog.String("team_id", teamID))
		return nil, err
	}
	return team, nil
}

// SoftDeleteTeam marks an active team as deleted.
func (s *teamService) SoftDeleteTeam(ctx context.Context, actor domain.User, teamID string) error {
	team, err := s.teamRepo.FindTeamByID(ctx, teamID)
	if err != nil {
		return err
	}
	if err := s.authorizer.AuthorizeAdmin(ctx, actor, teamID); err != nil {
		return err
	}
	if team.IsDeleted() {
		return apperrors.NewPreconditionFailedError("team is already deleted")
	}

	now := time.Now()
	if err := s.teamRepo.SetTeamDeletedAt(ctx, teamID, &now, actor.UserID, now); err != nil {
		s.LogError(ctx, err, "Failed to soft-delete team", slog.String("team_id", teamID))
		return err
	}
	s.LogInfo(ctx, "Team soft-deleted", slog.String("team_id", teamID))
	return nil
}

// RestoreTeam reactivates a soft-deleted team. Restoring an active team fails
// with ErrPreconditionFailed rather than silently succeeding.
func (s *teamService) RestoreTeam(ctx context.Context, actor domain.User, teamID string) error {
	team, err := s.teamRepo.FindTeamByID(ctx, teamID)
	if err != nil {
		return err
	}
	if err := s.authorizer.AuthorizeAdmin(ctx, actor, teamID); err != nil {
		return err
	}
	if !team.IsDeleted() {
		return apperrors.NewPreconditionFailedError("team is not deleted")
	}

	if err := s.teamRepo.SetTeamDeletedAt(ctx, teamID, nil, actor.UserID, time.Now()); err != nil {
		s.LogError(ctx, err, "Failed to restore team", slog.String("team_id", teamID))
		return err
	}
	s.LogInfo(ctx, "Team restored", slog.String("team_id", teamID))
	return nil
}

// PermanentDeleteTeam irreversibly removes a soft-deleted team together with
// all of its books, accounts, categories, transactions and memberships. The
// cascade runs inside one database transaction, children before parents.
func (s *teamService) PermanentDeleteTeam(ctx context.Context, actor domain.User, teamID string) error {
	team, err := s.teamRepo.FindTeamByID(ctx, teamID)
	if err != nil {
		return err
	}
	if err := s.authorizer.AuthorizeAdmin(ctx, actor, teamID); err != nil {
		return err
	}
	if !team.IsDeleted() {
		return apperrors.NewPreconditionFailedError("must be soft-deleted first")
	}

	if err := s.teamRepo.DeleteTeamPermanently(ctx, teamID); err != nil {
		s.LogError(ctx, err, "Failed to permanently delete team", slog.String("team_id", teamID))
		return err
	}
	s.LogInfo(ctx, "Team permanently deleted", slog.String("team_id", teamID))
	return nil
}

// AddMember adds a user to the team and returns the updated member list.
func (s *teamService) AddMember(ctx context.Context, actor domain.User, teamID, targetUserID string, role domain.TeamRole) ([]domain.TeamMember, error) {
	if !role.IsValid() {
		return nil, apperrors.NewValidationFailedError("invalid role: " + string(role))
	}
	team, err := s.authorizeMembershipMutation(ctx, actor, teamID)
	if err != nil {
		return nil, err
	}

	target, err := s.userRepo.FindUserByID(ctx, targetUserID)
	if err != nil {
		return nil, err
	}

	membership := domain.TeamMember{
		TeamID:   team.TeamID,
		UserID:   target.UserID,
		Role:     role,
		JoinedAt: time.Now(),
	}
	if err := s.teamRepo.AddTeamMember(ctx, membership); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, apperrors.NewConflictError("user is already a member of this team")
		}
		s.LogError(ctx, err, "Failed to add user to team",
			slog.String("team_id", teamID),
			slog.String("target_user_id", targetUserID))
		return nil, err
	}

	s.LogInfo(ctx, "User added to team",
		slog.String("team_id", teamID),
		slog.String("target_user_id", targetUserID),
		slog.String("role", string(role)))
	return s.teamRepo.ListTeamMembers(ctx, teamID)
}

// RemoveMember removes a membership and returns the updated member list.
// Removing the last admin fails with ErrConflict unless the actor is a
// superadmin; the count and the removal share one locked transaction.
func (s *teamService) RemoveMember(ctx context.Context, actor domain.User, teamID, targetUserID string) ([]domain.TeamMember, error) {
	if _, err := s.authorizeMembershipMutation(ctx, actor, teamID); err != nil {
		return nil, err
	}

	member, err := s.teamRepo.FindTeamMember(ctx, teamID, targetUserID)
	if err != nil {
		return nil, err
	}

	guardLastAdmin := member.Role == domain.RoleAdmin && !actor.Superadmin
	if err := s.teamRepo.RemoveTeamMember(ctx, teamID, targetUserID, guardLastAdmin); err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "User removed from team",
		slog.String("team_id", teamID),
		slog.String("target_user_id", targetUserID))
	return s.teamRepo.ListTeamMembers(ctx, teamID)
}

// ChangeRole changes a member's role and returns the updated member list.
// Demoting the last admin fails with ErrConflict unless the actor is a
// superadmin.
func (s *teamService) ChangeRole(ctx context.Context, actor domain.User, teamID, targetUserID string, role domain.TeamRole) ([]domain.TeamMember, error) {
	if !role.IsValid() {
		return nil, apperrors.NewValidationFailedError("invalid role: " + string(role))
	}
	if _, err := s.authorizeMembershipMutation(ctx, actor, teamID); err != nil {
		return nil, err
	}

	member, err := s.teamRepo.FindTeamMember(ctx, teamID, targetUserID)
	if err != nil {
		return nil, err
	}

	guardLastAdmin := member.Role == domain.RoleAdmin && role != domain.RoleAdmin && !actor.Superadmin
	if err := s.teamRepo.UpdateTeamMemberRole(ctx, teamID, targetUserID, role, guardLastAdmin); err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Team member role changed",
		slog.String("team_id", teamID),
		slog.String("target_user_id", targetUserID),
		slog.String("role", string(role)))
	return s.teamRepo.ListTeamMembers(ctx, teamID)
}

// authorizeMembershipMutation checks that the actor administers the team and
// that the team is not soft-deleted. A deleted team rejects all membership
// mutations from non-superadmins, even its own admins.
func (s *teamService) authorizeMembershipMutation(ctx context.Context, actor domain.User, teamID string) (*domain.Team, error) {
	team, err := s.teamRepo.FindTeamByID(ctx, teamID)
	if err != nil {
		return nil, err
	}
	if err := s.authorizer.AuthorizeAdmin(ctx, actor, teamID); err != nil {
		return nil, err
	}
	if team.IsDeleted() && !actor.Superadmin {
		return nil, apperrors.NewForbiddenError(reasonTeamIsDeleted)
	}
	return team, nil
}
