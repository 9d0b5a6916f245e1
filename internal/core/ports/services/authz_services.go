package services

import (
	"context"

	"github.com/teambudget/team_budget_app/internal/core/domain"
)

// TeamAuthorizerSvc answers capability queries for team-scoped resources.
// The superadmin bypass lives here and nowhere else: the acting user's
// superadmin flag is an explicit input on every query.
type TeamAuthorizerSvc interface {
	// ResolveRole returns the role of a user in a team, or nil when the user
	// is not a member or the team does not exist. Storage failures are the
	// only error case.
	ResolveRole(ctx context.Context, teamID, userID string) (*domain.TeamRole, error)

	// CanRead reports whether the actor may read team-scoped data.
	// Any role suffices; superadmins are always allowed.
	CanRead(ctx context.Context, actor domain.User, teamID string) (domain.Decision, error)

	// CanWrite reports whether the actor may mutate team-scoped data.
	// Admins and collaborators qualify; viewers are denied.
	CanWrite(ctx context.Context, actor domain.User, teamID string) (domain.Decision, error)

	// CanAdmin reports whether the actor may administer the team.
	CanAdmin(ctx context.Context, actor domain.User, teamID string) (domain.Decision, error)

	// AuthorizeRead is CanRead collapsed to an error: ErrForbidden with the
	// denial reason, or nil.
	AuthorizeRead(ctx context.Context, actor domain.User, teamID string) error

	// AuthorizeWrite is CanWrite collapsed to an error.
	AuthorizeWrite(ctx context.Context, actor domain.User, teamID string) error

	// AuthorizeAdmin is CanAdmin collapsed to an error.
	AuthorizeAdmin(ctx context.Context, actor domain.User, teamID string) error
}

// TeamResolverSvc resolves the owning team of a resource through the
// containment chain (transaction -> account -> book -> team).
type TeamResolverSvc interface {
	// ResolveTeamForBook returns the team owning a book.
	ResolveTeamForBook(ctx context.Context, bookID string) (string, error)

	// ResolveTeamForAccount returns the team owning an account.
	ResolveTeamForAccount(ctx context.Context, accountID string) (string, error)

	// ResolveTeamForCategory returns the team owning a category.
	ResolveTeamForCategory(ctx context.Context, categoryID string) (string, error)

	// ResolveTeamForTransaction returns the team owning a transaction.
	ResolveTeamForTransaction(ctx context.Context, transactionID string) (string, error)
}

// AuthorizerFacade combines authorization and containment-chain resolution.
type AuthorizerFacade interface {
	TeamAuthorizerSvc
	TeamResolverSvc
}
