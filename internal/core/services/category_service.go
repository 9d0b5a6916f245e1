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

// categoryService enforces the two-level category hierarchy: same-book
// parents only, no parent-of-parent nesting, and a child's type always equal
// to its parent's type.
type categoryService struct {
	BaseService
	categoryRepo portsrepo.CategoryRepositoryFacade
	bookRepo     portsrepo.BookReader
	authorizer   portssvc.TeamAuthorizerSvc
}

// NewCategoryService creates a new category service with the provided dependencies
func NewCategoryService(
	categoryRepo portsrepo.CategoryRepositoryFacade,
	bookRepo portsrepo.BookReader,
	authorizer portssvc.TeamAuthorizerSvc,
) portssvc.CategorySvcFacade {
	return &categoryService{
		categoryRepo: categoryRepo,
		bookRepo:     bookRepo,
		authorizer:   authorizer,
	}
}

var _ portssvc.CategorySvcFacade = (*categoryService)(nil)

// GetCategoryByID retrieves a category the actor can read.
func (s *categoryService) GetCategoryByID(ctx context.Context, actor domain.User, categoryID string) (*domain.Category, error) {
	category, err := s.categoryRepo.FindCategoryByID(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	book, err := s.bookRepo.FindBookByID(ctx, category.BookID)
	if err != nil {
		return nil, err
	}
	if err := s.authorizer.AuthorizeRead(ctx, actor, book.TeamID); err != nil {
		return nil, err
	}
	return category, nil
}

// ListBookCategories retrieves the two-level category tree of a book, roots
// in name order with their direct children attached.
func (s *categoryService) ListBookCategories(ctx context.Context, actor domain.User, bookID string) ([]domain.CategoryNode, error) {
	book, err := s.bookRepo.FindBookByID(ctx, bookID)
	if err != nil {
		return nil, err
	}
	if err := s.authorizer.AuthorizeRead(ctx, actor, book.TeamID); err != nil {
		return nil, err
	}

	categories, err := s.categoryRepo.ListCategoriesByBookID(ctx, bookID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list categories for book", slog.String("book_id", bookID))
		return nil, err
	}

	// Children lookup as a secondary index: parent id -> child categories.
	childrenByParent := make(map[string][]domain.Category)
	var roots []domain.Category
	for _, c := range categories {
		if c.ParentCategoryID == nil {
			roots = append(roots, c)
		} else {
			childrenByParent[*c.ParentCategoryID] = append(childrenByParent[*c.ParentCategoryID], c)
		}
	}

	nodes := make([]domain.CategoryNode, len(roots))
	for i, root := range roots {
		children := childrenByParent[root.CategoryID]
		if children == nil {
			children = []domain.Category{}
		}
		nodes[i] = domain.CategoryNode{Category: root, Children: children}
	}
	return nodes, nil
}

// CreateCategory creates a category inside a book. When a parent is given the
// parent's type wins over the caller-supplied type.
func (s *categoryService) CreateCategory(ctx context.Context, actor domain.User, bookID string, req dto.CreateCategoryRequest) (*domain.Category, error) {
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

	categoryType := req.CategoryType
	if req.ParentCategoryID == nil && !categoryType.IsValid() {
		return nil, apperrors.NewValidationFailedError("invalid category type: " + string(categoryType))
	}

	if req.ParentCategoryID != nil {
		parent, err := s.resolveParent(ctx, *req.ParentCategoryID, bookID)
		if err != nil {
			return nil, err
		}
		// Type inheritance: the parent's type wins, silently.
		categoryType = parent.CategoryType
	}

	now := time.Now()
	category := domain.Category{
		CategoryID:       uuid.NewString(),
		BookID:           bookID,
		Name:             req.Name,
		CategoryType:     categoryType,
		ParentCategoryID: req.ParentCategoryID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.UserID,
		},
	}

	if err := s.categoryRepo.SaveCategory(ctx, category); err != nil {
		s.LogError(ctx, err, "Failed to save category", slog.String("category_id", category.CategoryID))
		return nil, err
	}

	s.LogInfo(ctx, "Category created successfully",
		slog.String("category_id", category.CategoryID),
		slog.String("book_id", bookID))
	return &category, nil
}

// UpdateCategory applies a partial update under the hierarchy rules. Changing
// a root's type overwrites every direct child's type in the same database
// transaction; assigning a parent re-enters type inheritance; clearing the
// parent honors the supplied or current type.
func (s *categoryService) UpdateCategory(ctx context.Context, actor domain.User, categoryID string, req dto.UpdateCategoryRequest) (*domain.Category, error) {
	category, err := s.categoryRepo.FindCategoryByID(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	book, err := s.bookRepo.FindBookByID(ctx, category.BookID)
	if err != nil {
		return nil, err
	}
	if err := s.authorizer.AuthorizeWrite(ctx, actor, book.TeamID); err != nil {
		return nil, err
	}

	newParentID := category.ParentCategoryID
	switch {
	case req.ClearParent:
		newParentID = nil
	case req.ParentCategoryID != nil:
		if *req.ParentCategoryID == categoryID {
			return nil, apperrors.NewInvalidHierarchyError("category cannot be its own parent")
		}
		hasChildren, err := s.categoryRepo.HasChildCategories(ctx, categoryID)
		if err != nil {
			return nil, err
		}
		if hasChildren {
			return nil, apperrors.NewInvalidHierarchyError("category has children and cannot become a subcategory")
		}
		if _, err := s.resolveParent(ctx, *req.ParentCategoryID, category.BookID); err != nil {
			return nil, err
		}
		newParentID = req.ParentCategoryID
	}

	newType := category.CategoryType
	if newParentID != nil {
		// A child's type is never independently settable: it follows the
		// parent, overriding whatever the caller supplied.
		parent, err := s.categoryRepo.FindCategoryByID(ctx, *newParentID)
		if err != nil {
			return nil, err
		}
		newType = parent.CategoryType
	} else if req.CategoryType != nil {
		if !req.CategoryType.IsValid() {
			return nil, apperrors.NewValidationFailedError("invalid category type: " + string(*req.CategoryType))
		}
		newType = *req.CategoryType
	}

	typeChanged := newType != category.CategoryType

	category.ParentCategoryID = newParentID
	category.CategoryType = newType
	if req.Name != nil {
		category.Name = *req.Name
	}
	category.LastUpdatedAt = time.Now()
	category.LastUpdatedBy = actor.UserID

	// A root whose type changed must drag its direct children along in the
	// same transaction; anything else is a plain row update.
	if typeChanged && newParentID == nil {
		err = s.categoryRepo.UpdateCategoryCascadeType(ctx, *category)
	} else {
		err = s.categoryRepo.UpdateCategory(ctx, *category)
	}
	if err != nil {
		s.LogError(ctx, err, "Failed to update category", slog.String("category_id", categoryID))
		return nil, err
	}

	return category, nil
}

// DeleteCategory removes a category. Categories still referenced by
// transactions, or with child categories, are rejected; deletion never
// cascades.
func (s *categoryService) DeleteCategory(ctx context.Context, actor domain.User, categoryID string) error {
	category, err := s.categoryRepo.FindCategoryByID(ctx, categoryID)
	if err != nil {
		return err
	}
	book, err := s.bookRepo.FindBookByID(ctx, category.BookID)
	if err != nil {
		return err
	}
	if err := s.authorizer.AuthorizeWrite(ctx, actor, book.TeamID); err != nil {
		return err
	}

	hasTxns, err := s.categoryRepo.HasTransactions(ctx, categoryID)
	if err != nil {
		return err
	}
	if hasTxns {
		return apperrors.NewConflictError("category has transactions")
	}

	hasChildren, err := s.categoryRepo.HasChildCategories(ctx, categoryID)
	if err != nil {
		return err
	}
	if hasChildren {
		return apperrors.NewConflictError("category has subcategories")
	}

	if err := s.categoryRepo.DeleteCategory(ctx, categoryID); err != nil {
		s.LogError(ctx, err, "Failed to delete category", slog.String("category_id", categoryID))
		return err
	}
	s.LogInfo(ctx, "Category deleted", slog.String("category_id", categoryID))
	return nil
}

// resolveParent validates a prospective parent: it must exist, live in the
// same book, and be a root (nesting depth is at most two levels).
func (s *categoryService) resolveParent(ctx context.Context, parentID, bookID string) (*domain.Category, error) {
	parent, err := s.categoryRepo.FindCategoryByID(ctx, parentID)
	if err != nil {
		return nil, err
	}
	if parent.BookID != bookID {
		return nil, apperrors.NewInvalidHierarchyError("parent category belongs to a different book")
	}
	if parent.ParentCategoryID != nil {
		return nil, apperrors.NewInvalidHierarchyError("max category depth exceeded")
	}
	return parent, nil
}
