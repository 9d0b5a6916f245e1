package dto

import (
	"time"

	"github.com/teambudget/team_budget_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// --- Transaction DTOs ---

// CreateTransactionRequest defines data for creating a new transaction.
// Date is an ISO calendar date (YYYY-MM-DD).
type CreateTransactionRequest struct {
	CategoryID  *string         `json:"categoryID"`
	Description string          `json:"description" binding:"required,max=256"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Date        string          `json:"date" binding:"required"`
	Exercised   bool            `json:"exercised"`
	Note        string          `json:"note"`
}

// UpdateTransactionRequest defines a partial update of a transaction.
// ClearCategory removes the category link; it wins over CategoryID.
type UpdateTransactionRequest struct {
	CategoryID    *string          `json:"categoryID"`
	ClearCategory bool             `json:"clearCategory"`
	Description   *string          `json:"description" binding:"omitempty,max=256"`
	Amount        *decimal.Decimal `json:"amount"`
	Date          *string          `json:"date"`
	Exercised     *bool            `json:"exercised"`
	Note          *string          `json:"note"`
}

// TransactionResponse defines data returned for a transaction.
type TransactionResponse struct {
	TransactionID string          `json:"transactionID"`
	AccountID     string          `json:"accountID"`
	CategoryID    *string         `json:"categoryID,omitempty"`
	Description   string          `json:"description"`
	Amount        decimal.Decimal `json:"amount"`
	Date          string          `json:"date"`
	Exercised     bool            `json:"exercised"`
	Note          string          `json:"note"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// ToTransactionResponse converts domain.Transaction to DTO.
func ToTransactionResponse(t *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID: t.TransactionID,
		AccountID:     t.AccountID,
		CategoryID:    t.CategoryID,
		Description:   t.Description,
		Amount:        t.Amount,
		Date:          t.Date.Format("2006-01-02"),
		Exercised:     t.Exercised,
		Note:          t.Note,
		CreatedAt:     t.CreatedAt,
	}
}

// ListTransactionsResponse wraps a list of transactions.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
}

// ToListTransactionsResponse converts a slice of domain.Transaction to DTO.
func ToListTransactionsResponse(ts []domain.Transaction) ListTransactionsResponse {
	list := make([]TransactionResponse, len(ts))
	for i := range ts {
		list[i] = ToTransactionResponse(&ts[i])
	}
	return ListTransactionsResponse{Transactions: list}
}
