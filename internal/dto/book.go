package dto

import (
	"time"

	"github.com/teambudget/team_budget_app/internal/core/domain"
)

// --- Book DTOs ---

// CreateBookRequest defines data for creating a new book.
type CreateBookRequest struct {
	Name           string `json:"name" binding:"required,max=128"`
	CurrencySymbol string `json:"currencySymbol" binding:"required,max=8"`
	WeekStart      *int   `json:"weekStart" binding:"omitempty,min=0,max=6"`
}

// UpdateBookRequest defines data for updating a book's settings.
type UpdateBookRequest struct {
	Name           *string `json:"name" binding:"omitempty,max=128"`
	CurrencySymbol *string `json:"currencySymbol" binding:"omitempty,max=8"`
	WeekStart      *int    `json:"weekStart" binding:"omitempty,min=0,max=6"`
}

// BookResponse defines data returned for a book.
type BookResponse struct {
	BookID         string     `json:"bookID"`
	TeamID         string     `json:"teamID"`
	Name           string     `json:"name"`
	CurrencySymbol string     `json:"currencySymbol"`
	WeekStart      int        `json:"weekStart"`
	CreatedAt      time.Time  `json:"createdAt"`
	DeletedAt      *time.Time `json:"deletedAt,omitempty"`
}

// ToBookResponse converts domain.Book to DTO.
func ToBookResponse(b *domain.Book) BookResponse {
	return BookResponse{
		BookID:         b.BookID,
		TeamID:         b.TeamID,
		Name:           b.Name,
		CurrencySymbol: b.CurrencySymbol,
		WeekStart:      b.WeekStart,
		CreatedAt:      b.CreatedAt,
		DeletedAt:      b.DeletedAt,
	}
}

// ListBooksResponse wraps a list of books.
type ListBooksResponse struct {
	Books []BookResponse `json:"books"`
}

// ToListBooksResponse converts a slice of domain.Book to DTO.
func ToListBooksResponse(bs []domain.Book) ListBooksResponse {
	list := make([]BookResponse, len(bs))
	for i := range bs {
		list[i] = ToBookResponse(&bs[i])
	}
	return ListBooksResponse{Books: list}
}
