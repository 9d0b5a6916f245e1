package repositories

import (
	"context"
	"time"

	"github.com/teambudget/team_budget_app/internal/core/domain"
)

// BookReader defines read operations for book data
type BookReader interface {
	// FindBookByID retrieves a specific book by its ID, including soft-deleted books.
	FindBookByID(ctx context.Context, bookID string) (*domain.Book, error)

	// ListBooksByTeamID retrieves the books of a team. Soft-deleted books are
	// included only when includeDeleted is set.
	ListBooksByTeamID(ctx context.Context, teamID string, includeDeleted bool) ([]domain.Book, error)
}

// BookWriter defines write operations for book data
type BookWriter interface {
	// SaveBook persists a new book.
	SaveBook(ctx context.Context, book domain.Book) error

	// UpdateBook updates an existing book's details.
	UpdateBook(ctx context.Context, book domain.Book) error

	// SetBookDeletedAt sets or clears the soft-delete marker.
	SetBookDeletedAt(ctx context.Context, bookID string, deletedAt *time.Time, updatedBy string, now time.Time) error

	// DeleteBookPermanently removes the book and everything it owns
	// (transactions, accounts, categories) in one all-or-nothing database
	// transaction, children before parents.
	DeleteBookPermanently(ctx context.Context, bookID string) error
}

// BookRepositoryFacade combines all book-related repository interfaces
type BookRepositoryFacade interface {
	BookReader
	BookWriter
}

// BookRepositoryWithTx extends BookRepositoryFacade with transaction capabilities
type BookRepositoryWithTx interface {
	BookRepositoryFacade
	TransactionManager
}
