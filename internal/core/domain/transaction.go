package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is a single money movement on an account. The amount is signed;
// the sign encodes expense/charge vs income/payment relative to the account
// type. A transaction optionally references a category, which must belong to
// the same book as the account.
type Transaction struct {
	TransactionID string          `json:"transactionID" db:"transaction_id"` // Primary Key (UUID)
	AccountID     string          `json:"accountID" db:"account_id"`         // FK -> accounts.account_id (NON-NULL)
	CategoryID    *string         `json:"categoryID,omitempty" db:"category_id"` // Nullable FK -> categories.category_id
	Description   string          `json:"description" db:"description"`
	Amount        decimal.Decimal `json:"amount" db:"amount"`       // Signed; precise decimal type
	Date          time.Time       `json:"date" db:"date"`           // Calendar date of the movement
	Exercised     bool            `json:"exercised" db:"exercised"` // Cleared/settled vs pending
	Note          string          `json:"note" db:"note"`
	AuditFields
}

// Balance is the derived position of an account as of a cutoff date.
// Projected sums every transaction up to the cutoff; Exercised only those that
// have cleared. An account with no transactions has zero for both.
type Balance struct {
	Exercised decimal.Decimal `json:"exercised"`
	Projected decimal.Decimal `json:"projected"`
}
