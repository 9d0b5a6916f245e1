package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/teambudget/team_budget_app/internal/apperrors"
	"github.com/teambudget/team_budget_app/internal/core/domain"
	portsrepo "github.com/teambudget/team_budget_app/internal/core/ports/repositories"
)

type PgxBookRepository struct {
	BaseRepository
}

// newPgxBookRepository creates a new repository for book data.
func newPgxBookRepository(pool *pgxpool.Pool) portsrepo.BookRepositoryWithTx {
	return &PgxBookRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxBookRepository implements portsrepo.BookRepositoryWithTx
var _ portsrepo.BookRepositoryWithTx = (*PgxBookRepository)(nil)

var FULL_BOOK_SELECT_QUERY = `
SELECT
	b.book_id, b.team_id, b.name, b.currency_symbol, b.week_start,
	b.created_at, b.created_by, b.last_updated_at, b.last_updated_by,
	b.deleted_at
FROM books b
`

// getBooks runs the full select with the given filter and collects the rows.
func (r *PgxBookRepository) getBooks(ctx context.Context, filterQuery string, args ...any) ([]domain.Book, error) {
	query := FULL_BOOK_SELECT_QUERY + filterQuery
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query books", err)
	}
	defer rows.Close()
	books, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.Book])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []domain.Book{}, nil
		}
		return nil, apperrors.NewAppError(500, "failed to collect book rows", err)
	}
	return books, nil
}

func (r *PgxBookRepository) FindBookByID(ctx context.Context, bookID string) (*domain.Book, error) {
	books, err := r.getBooks(ctx, `WHERE b.book_id = $1`, bookID)
	if err != nil {
		return nil, err
	}
	if len(books) == 0 {
		return nil, apperrors.NewNotFoundError("book " + bookID + " not found")
	}
	return &books[0], nil
}

func (r *PgxBookRepository) ListBooksByTeamID(ctx context.Context, teamID string, includeDeleted bool) ([]domain.Book, error) {
	filter := `WHERE b.team_id = $1`
	if !includeDeleted {
		filter += ` AND b.deleted_at IS NULL`
	}
	filter += ` ORDER BY b.name`
	return r.getBooks(ctx, filter, teamID)
}

func (r *PgxBookRepository) SaveBook(ctx context.Context, book domain.Book) error {
	query := `
		INSERT INTO books (
			book_id, team_id, name, currency_symbol, week_start,
			created_at, created_by, last_updated_at, last_updated_by, deleted_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.Pool.Exec(ctx, query,
		book.BookID,
		book.TeamID,
		book.Name,
		book.CurrencySymbol,
		book.WeekStart,
		book.CreatedAt,
		book.CreatedBy,
		book.LastUpdatedAt,
		book.LastUpdatedBy,
		book.DeletedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23505" { // unique_violation
				return apperrors.ErrDuplicate
			}
			if pgErr.Code == "23503" { // foreign_key_violation
				return apperrors.NewNotFoundError("team " + book.TeamID + " not found")
			}
		}
		return apperrors.NewAppError(500, "failed to save book "+book.BookID, err)
	}
	return nil
}

func (r *PgxBookRepository) UpdateBook(ctx context.Context, book domain.Book) error {
	query := `
		UPDATE books
		SET name = $2, currency_symbol = $3, week_start = $4,
			last_updated_at = $5, last_updated_by = $6
		WHERE book_id = $1;
	`
	result, err := r.Pool.Exec(ctx, query,
		book.BookID,
		book.Name,
		book.CurrencySymbol,
		book.WeekStart,
		book.LastUpdatedAt,
		book.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update book "+book.BookID, err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("book " + book.BookID + " not found")
	}
	return nil
}

func (r *PgxBookRepository) SetBookDeletedAt(ctx context.Context, bookID string, deletedAt *time.Time, updatedBy string, now time.Time) error {
	query := `
		UPDATE books
		SET deleted_at = $2, last_updated_at = $3, last_updated_by = $4
		WHERE book_id = $1;
	`
	result, err := r.Pool.Exec(ctx, query, bookID, deletedAt, now, updatedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to set deleted_at for book "+bookID, err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("book " + bookID + " not found")
	}
	return nil
}

// DeleteBookPermanently removes the book and everything it owns in one
// transaction, children before parents.
func (r *PgxBookRepository) DeleteBookPermanently(ctx context.Context, bookID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	if err := runDeleteSteps(ctx, tx, bookScopedDeleteSteps(bookID)); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `DELETE FROM books WHERE book_id = $1;`, bookID); err != nil {
		return apperrors.NewAppError(500, "failed to delete book "+bookID, err)
	}
	return r.Commit(ctx, tx)
}
