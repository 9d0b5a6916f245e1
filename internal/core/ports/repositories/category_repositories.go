package repositories

import (
	"context"

	"github.com/teambudget/team_budget_app/internal/core/domain"
)

// CategoryReader defines read operations for category data
type CategoryReader interface {
	// FindCategoryByID retrieves a specific category by its unique identifier.
	FindCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error)

	// ListCategoriesByBookID retrieves all categories of a book, roots first.
	ListCategoriesByBookID(ctx context.Context, bookID string) ([]domain.Category, error)

	// ListChildCategories retrieves the direct children of a category.
	ListChildCategories(ctx context.Context, parentCategoryID string) ([]domain.Category, error)

	// HasChildCategories reports whether the category has any direct children.
	HasChildCategories(ctx context.Context, categoryID string) (bool, error)

	// HasTransactions reports whether any transaction references the category.
	HasTransactions(ctx context.Context, categoryID string) (bool, error)
}

// CategoryWriter defines write operations for category data
type CategoryWriter interface {
	// SaveCategory persists a new category.
	SaveCategory(ctx context.Context, category domain.Category) error

	// UpdateCategory updates an existing category's details.
	UpdateCategory(ctx context.Context, category domain.Category) error

	// UpdateCategoryCascadeType updates the category row and overwrites the
	// type of every direct child to match, in one database transaction.
	UpdateCategoryCascadeType(ctx context.Context, category domain.Category) error

	// DeleteCategory removes a category that has neither children nor transactions.
	DeleteCategory(ctx context.Context, categoryID string) error
}

// CategoryRepositoryFacade combines all category-related repository interfaces
type CategoryRepositoryFacade interface {
	CategoryReader
	CategoryWriter
}

// CategoryRepositoryWithTx extends CategoryRepositoryFacade with transaction capabilities
type CategoryRepositoryWithTx interface {
	CategoryRepositoryFacade
	TransactionManager
}
