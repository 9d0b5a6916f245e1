package domain

// AccountType defines the fundamental type of an account.
type AccountType string

const (
	Debit  AccountType = "DEBIT"
	Credit AccountType = "CREDIT"
)

// IsValid reports whether the account type is one of the known types.
func (t AccountType) IsValid() bool {
	return t == Debit || t == Credit
}

// Account represents a financial account within a book.
// It has no ACL of its own; authorization resolves through the book's team.
type Account struct {
	AccountID   string      `json:"accountID" db:"account_id"` // Primary Key (UUID)
	BookID      string      `json:"bookID" db:"book_id"`       // FK -> books.book_id (NON-NULL)
	Name        string      `json:"name" db:"name"`
	AccountType AccountType `json:"accountType" db:"account_type"` // DEBIT or CREDIT
	Note        string      `json:"note" db:"note"`
	AuditFields
}
