package services

import (
	"context"

	"github.com/teambudget/team_budget_app/internal/core/domain"
	"github.com/teambudget/team_budget_app/internal/dto"
)

// BookReaderSvc defines read operations for book data
type BookReaderSvc interface {
	// GetBookByID retrieves a book the actor can read.
	GetBookByID(ctx context.Context, actor domain.User, bookID string) (*domain.Book, error)

	// ListTeamBooks retrieves the books of a team the actor can read.
	// Soft-deleted books are included only when includeDeleted is set.
	ListTeamBooks(ctx context.Context, actor domain.User, teamID string, includeDeleted bool) ([]domain.Book, error)
}

// BookWriterSvc defines write operations for book data
type BookWriterSvc interface {
	// CreateBook creates a book inside a team.
	CreateBook(ctx context.Context, actor domain.User, teamID string, req dto.CreateBookRequest) (*domain.Book, error)

	// UpdateBook updates a book's settings.
	UpdateBook(ctx context.Context, actor domain.User, bookID string, req dto.UpdateBookRequest) (*domain.Book, error)
}

// BookLifecycleSvc drives the book soft-delete state machine, mirroring
// TeamLifecycleSvc.
type BookLifecycleSvc interface {
	// SoftDeleteBook marks an active book as deleted.
	SoftDeleteBook(ctx context.Context, actor domain.User, bookID string) error

	// RestoreBook reactivates a soft-deleted book. Restoring an active book
	// fails with ErrPreconditionFailed.
	RestoreBook(ctx context.Context, actor domain.User, bookID string) error

	// PermanentDeleteBook irreversibly removes a soft-deleted book and all its
	// accounts, categories and transactions.
	PermanentDeleteBook(ctx context.Context, actor domain.User, bookID string) error
}

// BookSvcFacade combines all book-related service interfaces
type BookSvcFacade interface {
	BookReaderSvc
	BookWriterSvc
	BookLifecycleSvc
}
