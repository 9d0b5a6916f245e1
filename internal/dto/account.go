package dto

import (
	"time"

	"github.com/teambudget/team_budget_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// --- Account DTOs ---

// CreateAccountRequest defines data for creating a new account.
type CreateAccountRequest struct {
	Name        string             `json:"name" binding:"required,max=128"`
	AccountType domain.AccountType `json:"accountType" binding:"required"`
	Note        string             `json:"note"`
}

// UpdateAccountRequest defines data for updating an account.
type UpdateAccountRequest struct {
	Name        *string             `json:"name" binding:"omitempty,max=128"`
	AccountType *domain.AccountType `json:"accountType"`
	Note        *string             `json:"note"`
}

// AccountResponse defines data returned for an account.
type AccountResponse struct {
	AccountID   string             `json:"accountID"`
	BookID      string             `json:"bookID"`
	Name        string             `json:"name"`
	AccountType domain.AccountType `json:"accountType"`
	Note        string             `json:"note"`
	CreatedAt   time.Time          `json:"createdAt"`
}

// ToAccountResponse converts domain.Account to DTO.
func ToAccountResponse(a *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:   a.AccountID,
		BookID:      a.BookID,
		Name:        a.Name,
		AccountType: a.AccountType,
		Note:        a.Note,
		CreatedAt:   a.CreatedAt,
	}
}

// ListAccountsResponse wraps a list of accounts.
type ListAccountsResponse struct {
	Accounts []AccountResponse `json:"accounts"`
}

// ToListAccountsResponse converts a slice of domain.Account to DTO.
func ToListAccountsResponse(as []domain.Account) ListAccountsResponse {
	list := make([]AccountResponse, len(as))
	for i := range as {
		list[i] = ToAccountResponse(&as[i])
	}
	return ListAccountsResponse{Accounts: list}
}

// BalanceResponse carries the derived position of an account.
type BalanceResponse struct {
	AccountID string          `json:"accountID"`
	AsOf      string          `json:"asOf"`
	Exercised decimal.Decimal `json:"exercised"`
	Projected decimal.Decimal `json:"projected"`
}
