package domain

// CategoryType defines whether a category classifies expenses or income.
type CategoryType string

const (
	Expense CategoryType = "EXPENSE"
	Income  CategoryType = "INCOME"
)

// IsValid reports whether the category type is one of the known types.
func (t CategoryType) IsValid() bool {
	return t == Expense || t == Income
}

// Category is a transaction classifier scoped to a book. Categories nest at
// most two levels: a category with a parent can never itself be a parent, and
// a child's type always equals its parent's type.
type Category struct {
	CategoryID       string       `json:"categoryID" db:"category_id"` // Primary Key (UUID)
	BookID           string       `json:"bookID" db:"book_id"`         // FK -> books.book_id (NON-NULL)
	Name             string       `json:"name" db:"name"`
	CategoryType     CategoryType `json:"categoryType" db:"category_type"`                  // EXPENSE or INCOME
	ParentCategoryID *string      `json:"parentCategoryID,omitempty" db:"parent_category_id"` // Nullable self-reference, same book only
	AuditFields
}

// IsRoot reports whether the category has no parent.
func (c *Category) IsRoot() bool {
	return c.ParentCategoryID == nil
}

// CategoryNode is a category with its direct children resolved, used for
// returning the two-level tree of a book.
type CategoryNode struct {
	Category
	Children []Category `json:"children"`
}
