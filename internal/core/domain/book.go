package domain

import "time"

// Book is a ledger scoped to a team. Access control is entirely inherited from
// the owning team; a book has no membership table of its own.
type Book struct {
	BookID         string `json:"bookID" db:"book_id"` // Primary Key (UUID)
	TeamID         string `json:"teamID" db:"team_id"` // FK -> teams.team_id (NON-NULL)
	Name           string `json:"name" db:"name"`
	CurrencySymbol string `json:"currencySymbol" db:"currency_symbol"`
	WeekStart      int    `json:"weekStart" db:"week_start"` // 0 = Sunday .. 6 = Saturday
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty" db:"deleted_at"` // Soft delete marker
}

// IsDeleted reports whether the book is soft-deleted.
func (b *Book) IsDeleted() bool {
	return b.DeletedAt != nil
}
