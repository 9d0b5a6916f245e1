package repositories

import (
	"context"
	"time"

	"github.com/teambudget/team_budget_app/internal/core/domain"
)

// TeamReader defines read operations for team data
type TeamReader interface {
	// FindTeamByID retrieves a specific team by its ID, including soft-deleted teams.
	// Lifecycle state is the caller's concern.
	FindTeamByID(ctx context.Context, teamID string) (*domain.Team, error)

	// ListTeamsByUserID retrieves all non-deleted teams a user is a member of.
	ListTeamsByUserID(ctx context.Context, userID string) ([]domain.Team, error)
}

// TeamWriter defines write operations for team data
type TeamWriter interface {
	// SaveTeam persists a new team.
	SaveTeam(ctx context.Context, team domain.Team) error

	// UpdateTeam updates an existing team's details.
	UpdateTeam(ctx context.Context, team domain.Team) error

	// SetTeamDeletedAt sets or clears the soft-delete marker.
	SetTeamDeletedAt(ctx context.Context, teamID string, deletedAt *time.Time, updatedBy string, now time.Time) error

	// DeleteTeamPermanently removes the team and everything it transitively
	// owns (transactions, accounts, categories, books, memberships) in one
	// all-or-nothing database transaction, children before parents.
	DeleteTeamPermanently(ctx context.Context, teamID string) error
}

// TeamMembershipManager defines operations for managing team memberships
type TeamMembershipManager interface {
	// AddTeamMember adds a user to a team. A duplicate membership yields ErrDuplicate.
	AddTeamMember(ctx context.Context, member domain.TeamMember) error

	// FindTeamMember retrieves the membership of a user in a team.
	FindTeamMember(ctx context.Context, teamID, userID string) (*domain.TeamMember, error)

	// ListTeamMembers retrieves all members of a team.
	ListTeamMembers(ctx context.Context, teamID string) ([]domain.TeamMember, error)

	// UpdateTeamMemberRole changes a member's role. When guardLastAdmin is set
	// and the change would leave the team without an admin, it fails with
	// ErrConflict; the admin count and the update share one transaction with
	// the admin rows locked.
	UpdateTeamMemberRole(ctx context.Context, teamID, userID string, role domain.TeamRole, guardLastAdmin bool) error

	// RemoveTeamMember removes a membership, with the same last-admin guard
	// semantics as UpdateTeamMemberRole.
	RemoveTeamMember(ctx context.Context, teamID, userID string, guardLastAdmin bool) error

	// CountTeamAdmins returns the number of admin memberships of a team.
	CountTeamAdmins(ctx context.Context, teamID string) (int, error)
}

// TeamRepositoryFacade combines all team-related repository interfaces
type TeamRepositoryFacade interface {
	TeamReader
	TeamWriter
	TeamMembershipManager
}

// TeamRepositoryWithTx extends TeamRepositoryFacade with transaction capabilities
type TeamRepositoryWithTx interface {
	TeamRepositoryFacade
	TransactionManager
}
