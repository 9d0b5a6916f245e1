package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/teambudget/team_budget_app/internal/apperrors"
	"github.com/teambudget/team_budget_app/internal/core/domain"
	portsrepo "github.com/teambudget/team_budget_app/internal/core/ports/repositories"
	portssvc "github.com/teambudget/team_budget_app/internal/core/ports/services"
	"github.com/teambudget/team_budget_app/internal/dto"
)

// bookService implements book CRUD and the book soft-delete lifecycle. A
// book's access control is entirely inherited from its team.
type bookService struct {
	BaseService
	bookRepo   portsrepo.BookRepositoryFacade
	teamRepo   portsrepo.TeamReader
	authorizer portssvc.TeamAuthorizerSvc
}

// NewBookService creates a new book service with the provided dependencies
func NewBookService(
	bookRepo portsrepo.BookRepositoryFacade,
	teamRepo portsrepo.TeamReader,
	authorizer portssvc.TeamAuthorizerSvc,
) portssvc.BookSvcFacade {
	return &bookService{
		bookRepo:   bookRepo,
		teamRepo:   teamRepo,
		authorizer: authorizer,
	}
}

var _ portssvc.BookSvcFacade = (*bookService)(nil)

// GetBookByID retrieves a book the actor can read.
func (s *bookService) GetBookByID(ctx context.Context, actor domain.User, bookID string) (*domain.Book, error) {
	book, err := s.bookRepo.FindBookByID(ctx, bookID)
	if err != nil {
		return nil, err
	}
	if err := s.authorizer.AuthorizeRead(ctx, actor, book.TeamID); err != nil {
		return nil, err
	}
	return book, nil
}

// ListTeamBooks retrieves the books of a team the actor can read.
func (s *bookService) ListTeamBooks(ctx context.Context, actor domain.User, teamID string, includeDeleted bool) ([]domain.Book, error) {
	if _, err := s.teamRepo.FindTeamByID(ctx, teamID); err != nil {
		return nil, err
	}
	if err := s.authorizer.AuthorizeRead(ctx, actor, teamID); err != nil {
		return nil, err
	}
	books, err := s.bookRepo.ListBooksByTeamID(ctx, teamID, includeDeleted)
	if err != nil {
		s.LogError(ctx, err, "Failed to list books for team", slog.String("team_id", teamID))
		return nil, err
	}
	if books == nil {
		return []domain.Book{}, nil
	}
	return books, nil
}

// CreateBook creates a book inside a team. Write access to the team is
// required, and a soft-deleted team rejects new books.
func (s *bookService) CreateBook(ctx context.Context, actor domain.User, teamID string, req dto.CreateBookRequest) (*domain.Book, error) {
	team, err := s.teamRepo.FindTeamByID(ctx, teamID)
	if err != nil {
		return nil, err
	}
	if err := s.authorizer.AuthorizeWrite(ctx, actor, teamID); err != nil {
		return nil, err
	}
	if team.IsDeleted() && !actor.Superadmin {
		return nil, apperrors.NewForbiddenError(reasonTeamIsDeleted)
	}

	weekStart := 0
	if req.WeekStart != nil {
		weekStart = *req.WeekStart
	}

	now := time.Now()
	book := domain.Book{
		BookID:         uuid.NewString(),
		TeamID:         teamID,
		Name:           req.Name,
		CurrencySymbol: req.CurrencySymbol,
		WeekStart:      weekStart,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.UserID,
		},
	}

	if err := s.bookRepo.SaveBook(ctx, book); err != nil {
		s.LogError(ctx, err, "Failed to save book", slog.String("book_id", book.BookID))
		return nil, err
	}

	s.LogInfo(ctx, "Book created successfully",
		slog.String("book_id", book.BookID),
		slog.String("team_id", teamID))
	return &book, nil
}

// UpdateBook applies a partial update to a book's settings.
func (s *bookService) UpdateBook(ctx context.Context, actor domain.User, bookID string, req dto.UpdateBookRequest) (*domain.Book, error) {
	book, err := s.bookRepo.FindBookByID(ctx, bookID)
	if err != nil {
		return nil, err
	}
	if err := s.authorizer.AuthorizeWrite(ctx, actor, book.TeamID); err != nil {
		return nil, err
	}
	if book.IsDeleted() && !actor.Superadmin {
		return nil, apperrors.NewForbiddenError("book is deleted")
	}

	if req.Name != nil {
		book.Name = *req.Name
	}
	if req.CurrencySymbol != nil {
		book.CurrencySymbol = *req.CurrencySymbol
	}
	if req.WeekStart != nil {
		book.WeekStart = *req.WeekStart
	}
	book.LastUpdatedAt = time.Now()
	book.LastUpdatedBy = actor.UserID

	if err := s.bookRepo.UpdateBook(ctx, *book); err != nil {
		s.LogError(ctx, err, "Failed to update book", slog.String("book_id", bookID))
		return nil, err
	}
	return book, nil
}

// SoftDeleteBook marks an active book as deleted.
func (s *bookService) SoftDeleteBook(ctx context.Context, actor domain.User, bookID string) error {
	book, err := s.bookRepo.FindBookByID(ctx, bookID)
	if err != nil {
		return err
	}
	if err := s.authorizer.AuthorizeWrite(ctx, actor, book.TeamID); err != nil {
		return err
	}
	if book.IsDeleted() {
		return apperrors.NewPreconditionFailedError("book is already deleted")
	}

	now := time.Now()
	if err := s.bookRepo.SetBookDeletedAt(ctx, bookID, &now, actor.UserID, now); err != nil {
		s.LogError(ctx, err, "Failed to soft-delete book", slog.String("book_id", bookID))
		return err
	}
	s.LogInfo(ctx, "Book soft-deleted", slog.String("book_id", bookID))
	return nil
}

// RestoreBook reactivates a soft-deleted book. Restoring an active book fails
// with ErrPreconditionFailed rather than silently succeeding.
func (s *bookService) RestoreBook(ctx context.Context, actor domain.User, bookID string) error {
	book, err := s.bookRepo.FindBookByID(ctx, bookID)
	if err != nil {
		return err
	}
	if err := s.authorizer.AuthorizeWrite(ctx, actor, book.TeamID); err != nil {
		return err
	}
	if !book.IsDeleted() {
		return apperrors.NewPreconditionFailedError("book is not deleted")
	}

	if err := s.bookRepo.SetBookDeletedAt(ctx, bookID, nil, actor.UserID, time.Now()); err != nil {
		s.LogError(ctx, err, "Failed to restore book", slog.String("book_id", bookID))
		return err
	}
	s.LogInfo(ctx, "Book restored", slog.String("book_id", bookID))
	return nil
}

// PermanentDeleteBook irreversibly removes a soft-deleted book and everything
// it owns. The cascade runs inside one database transaction, children before
// parents: transactions, categories, accounts, then the book row.
func (s *bookService) PermanentDeleteBook(ctx context.Context, actor domain.User, bookID string) error {
	book, err := s.bookRepo.FindBookByID(ctx, bookID)
	if err != nil {
		return err
	}
	if err := s.authorizer.AuthorizeAdmin(ctx, actor, book.TeamID); err != nil {
		return err
	}
	if !book.IsDeleted() {
		return apperrors.NewPreconditionFailedError("must be soft-deleted first")
	}

	if err := s.bookRepo.DeleteBookPermanently(ctx, bookID); err != nil {
		s.LogError(ctx, err, "Failed to permanently delete book", slog.String("book_id", bookID))
		return err
	}
	s.LogInfo(ctx, "Book permanently deleted", slog.String("book_id", bookID))
	return nil
}
