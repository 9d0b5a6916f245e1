package dto

import (
	"github.com/teambudget/team_budget_app/internal/core/domain"
)

// --- Category DTOs ---

// CreateCategoryRequest defines data for creating a new category. When a
// parent is given, the effective type is the parent's type regardless of the
// value supplied here.
type CreateCategoryRequest struct {
	Name             string              `json:"name" binding:"required,max=128"`
	CategoryType     domain.CategoryType `json:"categoryType" binding:"required"`
	ParentCategoryID *string             `json:"parentCategoryID"`
}

// UpdateCategoryRequest defines a partial update of a category.
// ClearParent promotes the category to a root; it wins over ParentCategoryID.
type UpdateCategoryRequest struct {
	Name             *string              `json:"name" binding:"omitempty,max=128"`
	CategoryType     *domain.CategoryType `json:"categoryType"`
	ParentCategoryID *string              `json:"parentCategoryID"`
	ClearParent      bool                 `json:"clearParent"`
}

// CategoryResponse defines data returned for a category.
type CategoryResponse struct {
	CategoryID       string              `json:"categoryID"`
	BookID           string              `json:"bookID"`
	Name             string              `json:"name"`
	CategoryType     domain.CategoryType `json:"categoryType"`
	ParentCategoryID *string             `json:"parentCategoryID,omitempty"`
}

// ToCategoryResponse converts domain.Category to DTO.
func ToCategoryResponse(c *domain.Category) CategoryResponse {
	return CategoryResponse{
		CategoryID:       c.CategoryID,
		BookID:           c.BookID,
		Name:             c.Name,
		CategoryType:     c.CategoryType,
		ParentCategoryID: c.ParentCategoryID,
	}
}

// CategoryNodeResponse is a root category with its direct children.
type CategoryNodeResponse struct {
	CategoryResponse
	Children []CategoryResponse `json:"children"`
}

// ListCategoriesResponse wraps the two-level category tree of a book.
type ListCategoriesResponse struct {
	Categories []CategoryNodeResponse `json:"categories"`
}

// ToListCategoriesResponse converts a slice of domain.CategoryNode to DTO.
func ToListCategoriesResponse(ns []domain.CategoryNode) ListCategoriesResponse {
	list := make([]CategoryNodeResponse, len(ns))
	for i := range ns {
		children := make([]CategoryResponse, len(ns[i].Children))
		for j := range ns[i].Children {
			children[j] = ToCategoryResponse(&ns[i].Children[j])
		}
		list[i] = CategoryNodeResponse{
			CategoryResponse: ToCategoryResponse(&ns[i].Category),
			Children:         children,
		}
	}
	return ListCategoriesResponse{Categories: list}
}
