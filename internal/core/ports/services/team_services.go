package services

import (
	"context"

	"github.com/teambudget/team_budget_app/internal/core/domain"
	"github.com/teambudget/team_budget_app/internal/dto"
)

// TeamReaderSvc defines read operations for team data
type TeamReaderSvc interface {
	// GetTeamByID retrieves a team the actor can read.
	GetTeamByID(ctx context.Context, actor domain.User, teamID string) (*domain.Team, error)

	// ListUserTeams retrieves the non-deleted teams the actor belongs to.
	ListUserTeams(ctx context.Context, actor domain.User) ([]domain.Team, error)

	// ListTeamMembers retrieves the members of a team the actor can read.
	ListTeamMembers(ctx context.Context, actor domain.User, teamID string) ([]domain.TeamMember, error)
}

// TeamWriterSvc defines write operations for team data
type TeamWriterSvc interface {
	// CreateTeam creates a team; the creator becomes its first admin.
	CreateTeam(ctx context.Context, actor domain.User, req dto.CreateTeamRequest) (*domain.Team, error)

	// UpdateTeam renames a team. Admin only.
	UpdateTeam(ctx context.Context, actor domain.User, teamID string, req dto.UpdateTeamRequest) (*domain.Team, error)
}

// TeamLifecycleSvc drives the team soft-delete state machine:
// active -> soft-deleted -> restored or permanently purged.
type TeamLifecycleSvc interface {
	// SoftDeleteTeam marks an active team as deleted. Admin only.
	SoftDeleteTeam(ctx context.Context, actor domain.User, teamID string) error

	// RestoreTeam reactivates a soft-deleted team. Restoring an active team
	// fails with ErrPreconditionFailed rather than silently succeeding.
	RestoreTeam(ctx context.Context, actor domain.User, teamID string) error

	// PermanentDeleteTeam irreversibly removes a soft-deleted team and all its
	// books, accounts, categories, transactions and memberships.
	PermanentDeleteTeam(ctx context.Context, actor domain.User, teamID string) error
}

// TeamMembershipSvc defines operations for managing team membership.
// Every mutation enforces the last-admin invariant for non-superadmin actors.
type TeamMembershipSvc interface {
	// AddMember adds a user to the team and returns the updated member list.
	AddMember(ctx context.Context, actor domain.User, teamID, targetUserID string, role domain.TeamRole) ([]domain.TeamMember, error)

	// RemoveMember removes a membership and returns the updated member list.
	RemoveMember(ctx context.Context, actor domain.User, teamID, targetUserID string) ([]domain.TeamMember, error)

	// ChangeRole changes a member's role and returns the updated member list.
	ChangeRole(ctx context.Context, actor domain.User, teamID, targetUserID string, role domain.TeamRole) ([]domain.TeamMember, error)
}

// TeamSvcFacade combines all team-related service interfaces
type TeamSvcFacade interface {
	TeamReaderSvc
	TeamWriterSvc
	TeamLifecycleSvc
	TeamMembershipSvc
}
