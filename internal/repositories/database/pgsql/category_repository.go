package pgsql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/teambudget/team_budget_app/internal/apperrors"
	"github.com/teambudget/team_budget_app/internal/core/domain"
	portsrepo "github.com/teambudget/team_budget_app/internal/core/ports/repositories"
)

type PgxCategoryRepository struct {
	BaseRepository
}

// newPgxCategoryRepository creates a new repository for category data.
func newPgxCategoryRepository(pool *pgxpool.Pool) portsrepo.CategoryRepositoryWithTx {
	return &PgxCategoryRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxCategoryRepository implements portsrepo.CategoryRepositoryWithTx
var _ portsrepo.CategoryRepositoryWithTx = (*PgxCategoryRepository)(nil)

var FULL_CATEGORY_SELECT_QUERY = `
SELECT
	c.category_id, c.book_id, c.name, c.category_type, c.parent_category_id,
	c.created_at, c.created_by, c.last_updated_at, c.last_updated_by
FROM categories c
`

// getCategories runs the full select with the given filter and collects the rows.
func (r *PgxCategoryRepository) getCategories(ctx context.Context, filterQuery string, args ...any) ([]domain.Category, error) {
	query := FULL_CATEGORY_SELECT_QUERY + filterQuery
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query categories", err)
	}
	defer rows.Close()
	categories, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.Category])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []domain.Category{}, nil
		}
		return nil, apperrors.NewAppError(500, "failed to collect category rows", err)
	}
	return categories, nil
}

func (r *PgxCategoryRepository) FindCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error) {
	categories, err := r.getCategories(ctx, `WHERE c.category_id = $1`, categoryID)
	if err != nil {
		return nil, err
	}
	if len(categories) == 0 {
		return nil, apperrors.NewNotFoundError("category " + categoryID + " not found")
	}
	return &categories[0], nil
}

func (r *PgxCategoryRepository) ListCategoriesByBookID(ctx context.Context, bookID string) ([]domain.Category, error) {
	// Roots first so callers can build the tree in a single pass.
	filter := `
		WHERE c.book_id = $1
		ORDER BY c.parent_category_id NULLS FIRST, c.name`
	return r.getCategories(ctx, filter, bookID)
}

func (r *PgxCategoryRepository) ListChildCategories(ctx context.Context, parentCategoryID string) ([]domain.Category, error) {
	return r.getCategories(ctx, `WHERE c.parent_category_id = $1 ORDER BY c.name`, parentCategoryID)
}

func (r *PgxCategoryRepository) HasChildCategories(ctx context.Context, categoryID string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM categories WHERE parent_category_id = $1);`
	var exists bool
	if err := r.Pool.QueryRow(ctx, query, categoryID).Scan(&exists); err != nil {
		return false, apperrors.NewAppError(500, "failed to check children of category "+categoryID, err)
	}
	return exists, nil
}

func (r *PgxCategoryRepository) HasTransactions(ctx context.Context, categoryID string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM transactions WHERE category_id = $1);`
	var exists bool
	if err := r.Pool.QueryRow(ctx, query, categoryID).Scan(&exists); err != nil {
		return false, apperrors.NewAppError(500, "failed to check transactions of category "+categoryID, err)
	}
	return exists, nil
}

func (r *PgxCategoryRepository) SaveCategory(ctx context.Context, category domain.Category) error {
	query := `
		INSERT INTO categories (
			category_id, book_id, name, category_type, parent_category_id,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.Pool.Exec(ctx, query,
		category.CategoryID,
		category.BookID,
		category.Name,
		category.CategoryType,
		category.ParentCategoryID,
		category.CreatedAt,
		category.CreatedBy,
		category.LastUpdatedAt,
		category.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23505" { // unique_violation
				return apperrors.ErrDuplicate
			}
			if pgErr.Code == "23503" { // foreign_key_violation
				return apperrors.NewNotFoundError("book or parent category not found")
			}
		}
		return apperrors.NewAppError(500, "failed to save category "+category.CategoryID, err)
	}
	return nil
}

func (r *PgxCategoryRepository) UpdateCategory(ctx context.Context, category domain.Category) error {
	result, err := r.Pool.Exec(ctx, categoryUpdateQuery,
		category.CategoryID,
		category.Name,
		category.CategoryType,
		category.ParentCategoryID,
		category.LastUpdatedAt,
		category.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update category "+category.CategoryID, err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("category " + category.CategoryID + " not found")
	}
	return nil
}

const categoryUpdateQuery = `
	UPDATE categories
	SET name = $2, category_type = $3, parent_category_id = $4,
		last_updated_at = $5, last_updated_by = $6
	WHERE category_id = $1;
`

// UpdateCategoryCascadeType updates a root category and overwrites the type of
// every direct child in the same transaction, so a parent and its children can
// never disagree on type.
func (r *PgxCategoryRepository) UpdateCategoryCascadeType(ctx context.Context, category domain.Category) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	result, err := tx.Exec(ctx, categoryUpdateQuery,
		category.CategoryID,
		category.Name,
		category.CategoryType,
		category.ParentCategoryID,
		category.LastUpdatedAt,
		category.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update category "+category.CategoryID, err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("category " + category.CategoryID + " not found")
	}

	childQuery := `
		UPDATE categories
		SET category_type = $2, last_updated_at = $3, last_updated_by = $4
		WHERE parent_category_id = $1;
	`
	_, err = tx.Exec(ctx, childQuery,
		category.CategoryID,
		category.CategoryType,
		category.LastUpdatedAt,
		category.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to cascade type to children of category "+category.CategoryID, err)
	}
	return r.Commit(ctx, tx)
}

func (r *PgxCategoryRepository) DeleteCategory(ctx context.Context, categoryID string) error {
	query := `DELETE FROM categories WHERE category_id = $1;`
	result, err := r.Pool.Exec(ctx, query, categoryID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" { // foreign_key_violation
			return apperrors.NewConflictError("category is still referenced")
		}
		return apperrors.NewAppError(500, "failed to delete category "+categoryID, err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("category " + categoryID + " not found")
	}
	return nil
}
