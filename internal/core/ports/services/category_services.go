package services

import (
	"context"

	"github.com/teambudget/team_budget_app/internal/core/domain"
	"github.com/teambudget/team_budget_app/internal/dto"
)

// CategoryReaderSvc defines read operations for category data
type CategoryReaderSvc interface {
	// GetCategoryByID retrieves a category the actor can read.
	GetCategoryByID(ctx context.Context, actor domain.User, categoryID string) (*domain.Category, error)

	// ListBookCategories retrieves the two-level category tree of a book.
	ListBookCategories(ctx context.Context, actor domain.User, bookID string) ([]domain.CategoryNode, error)
}

// CategoryWriterSvc defines write operations for category data.
// All hierarchy rules are enforced here: nesting depth of at most two levels,
// same-book parents only, and child type always inherited from the parent.
type CategoryWriterSvc interface {
	// CreateCategory creates a category inside a book. When a parent is given,
	// the new category's type is the parent's type regardless of the request.
	CreateCategory(ctx context.Context, actor domain.User, bookID string, req dto.CreateCategoryRequest) (*domain.Category, error)

	// UpdateCategory applies a partial update. Changing a root's type cascades
	// to its direct children atomically; assigning a parent re-enters type
	// inheritance; clearing the parent honors the supplied or current type.
	UpdateCategory(ctx context.Context, actor domain.User, categoryID string, req dto.UpdateCategoryRequest) (*domain.Category, error)

	// DeleteCategory removes a category. Categories referenced by transactions
	// or with child categories fail with ErrConflict; there is no cascade.
	DeleteCategory(ctx context.Context, actor domain.User, categoryID string) error
}

// CategorySvcFacade combines all category-related service interfaces
type CategorySvcFacade interface {
	CategoryReaderSvc
	CategoryWriterSvc
}
