package pgsql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/teambudget/team_budget_app/internal/apperrors"
	"github.com/teambudget/team_budget_app/internal/core/domain"
	portsrepo "github.com/teambudget/team_budget_app/internal/core/ports/repositories"
)

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for account data.
func newPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepositoryFacade {
	return &PgxAccountRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxAccountRepository implements portsrepo.AccountRepositoryFacade
var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

var FULL_ACCOUNT_SELECT_QUERY = `
SELECT
	a.account_id, a.book_id, a.name, a.account_type, a.note,
	a.created_at, a.created_by, a.last_updated_at, a.last_updated_by
FROM accounts a
`

// getAccounts runs the full select with the given filter and collects the rows.
func (r *PgxAccountRepository) getAccounts(ctx context.Context, filterQuery string, args ...any) ([]domain.Account, error) {
	query := FULL_ACCOUNT_SELECT_QUERY + filterQuery
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query accounts", err)
	}
	defer rows.Close()
	accounts, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.Account])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []domain.Account{}, nil
		}
		return nil, apperrors.NewAppError(500, "failed to collect account rows", err)
	}
	return accounts, nil
}

func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	accounts, err := r.getAccounts(ctx, `WHERE a.account_id = $1`, accountID)
	if err != nil {
		return nil, err
	}
	if len(accounts) == 0 {
		return nil, apperrors.NewNotFoundError("account " + accountID + " not found")
	}
	return &accounts[0], nil
}

func (r *PgxAccountRepository) ListAccountsByBookID(ctx context.Context, bookID string) ([]domain.Account, error) {
	return r.getAccounts(ctx, `WHERE a.book_id = $1 ORDER BY a.name`, bookID)
}

func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	query := `
		INSERT INTO accounts (
			account_id, book_id, name, account_type, note,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.Pool.Exec(ctx, query,
		account.AccountID,
		account.BookID,
		account.Name,
		account.AccountType,
		account.Note,
		account.CreatedAt,
		account.CreatedBy,
		account.LastUpdatedAt,
		account.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23505" { // unique_violation
				return apperrors.ErrDuplicate
			}
			if pgErr.Code == "23503" { // foreign_key_violation
				return apperrors.NewNotFoundError("book " + account.BookID + " not found")
			}
		}
		return apperrors.NewAppError(500, "failed to save account "+account.AccountID, err)
	}
	return nil
}

func (r *PgxAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	query := `
		UPDATE accounts
		SET name = $2, account_type = $3, note = $4,
			last_updated_at = $5, last_updated_by = $6
		WHERE account_id = $1;
	`
	result, err := r.Pool.Exec(ctx, query,
		account.AccountID,
		account.Name,
		account.AccountType,
		account.Note,
		account.LastUpdatedAt,
		account.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update account "+account.AccountID, err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("account " + account.AccountID + " not found")
	}
	return nil
}

func (r *PgxAccountRepository) DeleteAccount(ctx context.Context, accountID string) error {
	query := `DELETE FROM accounts WHERE account_id = $1;`
	result, err := r.Pool.Exec(ctx, query, accountID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" { // foreign_key_violation
			return apperrors.NewConflictError("account has transactions")
		}
		return apperrors.NewAppError(500, "failed to delete account "+accountID, err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("account " + accountID + " not found")
	}
	return nil
}
