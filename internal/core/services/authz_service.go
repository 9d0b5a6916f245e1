package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/teambudget/team_budget_app/internal/apperrors"
	"github.com/teambudget/team_budget_app/internal/core/domain"
	portsrepo "github.com/teambudget/team_budget_app/internal/core/ports/repositories"
	portssvc "github.com/teambudget/team_budget_app/internal/core/ports/services"
)

// Denial reasons returned to callers. These are user-visible strings; the
// boundary layer forwards them verbatim in 403 responses.
const (
	reasonNotAMember    = "not a team member"
	reasonInsufficient  = "insufficient permissions"
	reasonTeamIsDeleted = "team is deleted"
)

// authzService resolves roles and capability decisions for team-scoped
// resources. The superadmin bypass is implemented here and nowhere else.
type authzService struct {
	BaseService
	teamRepo     portsrepo.TeamMembershipManager
	bookRepo     portsrepo.BookReader
	accountRepo  portsrepo.AccountReader
	categoryRepo portsrepo.CategoryReader
	txnRepo      portsrepo.TransactionReader
}

// NewAuthzService creates the authorization service with the repositories it
// needs to walk the containment chain.
func NewAuthzService(
	teamRepo portsrepo.TeamMembershipManager,
	bookRepo portsrepo.BookReader,
	accountRepo portsrepo.AccountReader,
	categoryRepo portsrepo.CategoryReader,
	txnRepo portsrepo.TransactionReader,
) portssvc.AuthorizerFacade {
	return &authzService{
		teamRepo:     teamRepo,
		bookRepo:     bookRepo,
		accountRepo:  accountRepo,
		categoryRepo: categoryRepo,
		txnRepo:      txnRepo,
	}
}

var _ portssvc.AuthorizerFacade = (*authzService)(nil)

// ResolveRole returns the role of a user in a team, or nil when either the
// team or the membership does not exist. An unknown team resolves to no role,
// never an error.
func (s *authzService) ResolveRole(ctx context.Context, teamID, userID string) (*domain.TeamRole, error) {
	member, err := s.teamRepo.FindTeamMember(ctx, teamID, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil
		}
		s.LogError(ctx, err, "Failed to resolve team role",
			slog.String("team_id", teamID),
			slog.String("user_id", userID))
		return nil, err
	}
	return &member.Role, nil
}

// CanRead allows any member role; superadmins are always allowed.
func (s *authzService) CanRead(ctx context.Context, actor domain.User, teamID string) (domain.Decision, error) {
	if actor.Superadmin {
		return domain.Allow(), nil
	}
	role, err := s.ResolveRole(ctx, teamID, actor.UserID)
	if err != nil {
		return domain.Decision{}, err
	}
	if role == nil {
		return domain.Deny(reasonNotAMember), nil
	}
	return domain.Allow(), nil
}

// CanWrite allows admins and collaborators; viewers are denied.
func (s *authzService) CanWrite(ctx context.Context, actor domain.User, teamID string) (domain.Decision, error) {
	if actor.Superadmin {
		return domain.Allow(), nil
	}
	role, err := s.ResolveRole(ctx, teamID, actor.UserID)
	if err != nil {
		return domain.Decision{}, err
	}
	if role == nil {
		return domain.Deny(reasonNotAMember), nil
	}
	if *role == domain.RoleViewer {
		return domain.Deny(reasonInsufficient), nil
	}
	return domain.Allow(), nil
}

// CanAdmin allows only admins; superadmins are always allowed.
func (s *authzService) CanAdmin(ctx context.Context, actor domain.User, teamID string) (domain.Decision, error) {
	if actor.Superadmin {
		return domain.Allow(), nil
	}
	role, err := s.ResolveRole(ctx, teamID, actor.UserID)
	if err != nil {
		return domain.Decision{}, err
	}
	if role == nil {
		return domain.Deny(reasonNotAMember), nil
	}
	if *role != domain.RoleAdmin {
		return domain.Deny(reasonInsufficient), nil
	}
	return domain.Allow(), nil
}

func (s *authzService) AuthorizeRead(ctx context.Context, actor domain.User, teamID string) error {
	return s.authorize(ctx, actor, teamID, s.CanRead)
}

func (s *authzService) AuthorizeWrite(ctx context.Context, actor domain.User, teamID string) error {
	return s.authorize(ctx, actor, teamID, s.CanWrite)
}

func (s *authzService) AuthorizeAdmin(ctx context.Context, actor domain.User, teamID string) error {
	return s.authorize(ctx, actor, teamID, s.CanAdmin)
}

type capabilityCheck func(ctx context.Context, actor domain.User, teamID string) (domain.Decision, error)

func (s *authzService) authorize(ctx context.Context, actor domain.User, teamID string, check capabilityCheck) error {
	decision, err := check(ctx, actor, teamID)
	if err != nil {
		return err
	}
	if !decision.Allowed {
		s.LogDebug(ctx, "Authorization denied",
			slog.String("team_id", teamID),
			slog.String("user_id", actor.UserID),
			slog.String("reason", decision.Reason))
		return apperrors.NewForbiddenError(decision.Reason)
	}
	return nil
}

// ResolveTeamForBook returns the team owning a book.
func (s *authzService) ResolveTeamForBook(ctx context.Context, bookID string) (string, error) {
	book, err := s.bookRepo.FindBookByID(ctx, bookID)
	if err != nil {
		return "", err
	}
	return book.TeamID, nil
}

// ResolveTeamForAccount returns the team owning an account, resolved through
// its book.
func (s *authzService) ResolveTeamForAccount(ctx context.Context, accountID string) (string, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return "", err
	}
	return s.ResolveTeamForBook(ctx, account.BookID)
}

// ResolveTeamForCategory returns the team owning a category, resolved through
// its book.
func (s *authzService) ResolveTeamForCategory(ctx context.Context, categoryID string) (string, error) {
	category, err := s.categoryRepo.FindCategoryByID(ctx, categoryID)
	if err != nil {
		return "", err
	}
	return s.ResolveTeamForBook(ctx, category.BookID)
}

// ResolveTeamForTransaction returns the team owning a transaction, resolved
// through its account and book.
func (s *authzService) ResolveTeamForTransaction(ctx context.Context, transactionID string) (string, error) {
	txn, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return "", err
	}
	return s.ResolveTeamForAccount(ctx, txn.AccountID)
}
