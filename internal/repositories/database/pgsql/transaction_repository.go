package pgsql

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/teambudget/team_budget_app/internal/apperrors"
	"github.com/teambudget/team_budget_app/internal/core/domain"
	portsrepo "github.com/teambudget/team_budget_app/internal/core/ports/repositories"
)

type PgxTransactionRepository struct {
	BaseRepository
}

// newPgxTransactionRepository creates a new repository for transaction data.
func newPgxTransactionRepository(pool *pgxpool.Pool) portsrepo.TransactionRepositoryFacade {
	return &PgxTransactionRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxTransactionRepository implements portsrepo.TransactionRepositoryFacade
var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

var FULL_TRANSACTION_SELECT_QUERY = `
SELECT
	t.transaction_id, t.account_id, t.category_id, t.description, t.amount,
	t.date, t.exercised, t.note,
	t.created_at, t.created_by, t.last_updated_at, t.last_updated_by
FROM transactions t
`

// getTransactions runs the full select with the given filter and collects the rows.
func (r *PgxTransactionRepository) getTransactions(ctx context.Context, filterQuery string, args ...any) ([]domain.Transaction, error) {
	query := FULL_TRANSACTION_SELECT_QUERY + filterQuery
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query transactions", err)
	}
	defer rows.Close()
	txns, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.Transaction])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []domain.Transaction{}, nil
		}
		return nil, apperrors.NewAppError(500, "failed to collect transaction rows", err)
	}
	return txns, nil
}

func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	txns, err := r.getTransactions(ctx, `WHERE t.transaction_id = $1`, transactionID)
	if err != nil {
		return nil, err
	}
	if len(txns) == 0 {
		return nil, apperrors.NewNotFoundError("transaction " + transactionID + " not found")
	}
	return &txns[0], nil
}

func (r *PgxTransactionRepository) ListTransactionsByAccountID(ctx context.Context, accountID string, from, to *time.Time) ([]domain.Transaction, error) {
	filter := `WHERE t.account_id = $1`
	args := []any{accountID}
	if from != nil {
		args = append(args, *from)
		filter += ` AND t.date >= $` + argIndex(len(args))
	}
	if to != nil {
		args = append(args, *to)
		filter += ` AND t.date <= $` + argIndex(len(args))
	}
	filter += ` ORDER BY t.date DESC, t.created_at DESC`
	return r.getTransactions(ctx, filter, args...)
}

// argIndex renders a 1-based positional parameter index for query building.
func argIndex(n int) string {
	return strconv.Itoa(n)
}

func (r *PgxTransactionRepository) HasTransactionsForAccount(ctx context.Context, accountID string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM transactions WHERE account_id = $1);`
	var exists bool
	if err := r.Pool.QueryRow(ctx, query, accountID).Scan(&exists); err != nil {
		return false, apperrors.NewAppError(500, "failed to check transactions of account "+accountID, err)
	}
	return exists, nil
}

// SumAmountsByAccountID aggregates in the database so balances stay exact
// regardless of transaction count. COALESCE covers the empty account case.
func (r *PgxTransactionRepository) SumAmountsByAccountID(ctx context.Context, accountID string, asOf time.Time) (domain.Balance, error) {
	query := `
		SELECT
			COALESCE(SUM(amount) FILTER (WHERE exercised), 0) AS exercised,
			COALESCE(SUM(amount), 0) AS projected
		FROM transactions
		WHERE account_id = $1 AND date <= $2;
	`
	var balance domain.Balance
	err := r.Pool.QueryRow(ctx, query, accountID, asOf).Scan(&balance.Exercised, &balance.Projected)
	if err != nil {
		return domain.Balance{}, apperrors.NewAppError(500, "failed to sum amounts for account "+accountID, err)
	}
	return balance, nil
}

func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	query := `
		INSERT INTO transactions (
			transaction_id, account_id, category_id, description, amount,
			date, exercised, note,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.Pool.Exec(ctx, query,
		txn.TransactionID,
		txn.AccountID,
		txn.CategoryID,
		txn.Description,
		txn.Amount,
		txn.Date,
		txn.Exercised,
		txn.Note,
		txn.CreatedAt,
		txn.CreatedBy,
		txn.LastUpdatedAt,
		txn.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23505" { // unique_violation
				return apperrors.ErrDuplicate
			}
			if pgErr.Code == "23503" { // foreign_key_violation
				return apperrors.NewNotFoundError("account or category not found")
			}
		}
		return apperrors.NewAppError(500, "failed to save transaction "+txn.TransactionID, err)
	}
	return nil
}

func (r *PgxTransactionRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction) error {
	query := `
		UPDATE transactions
		SET category_id = $2, description = $3, amount = $4, date = $5,
			exercised = $6, note = $7, last_updated_at = $8, last_updated_by = $9
		WHERE transaction_id = $1;
	`
	result, err := r.Pool.Exec(ctx, query,
		txn.TransactionID,
		txn.CategoryID,
		txn.Description,
		txn.Amount,
		txn.Date,
		txn.Exercised,
		txn.Note,
		txn.LastUpdatedAt,
		txn.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return apperrors.NewNotFoundError("category not found")
		}
		return apperrors.NewAppError(500, "failed to update transaction "+txn.TransactionID, err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("transaction " + txn.TransactionID + " not found")
	}
	return nil
}

func (r *PgxTransactionRepository) DeleteTransaction(ctx context.Context, transactionID string) error {
	query := `DELETE FROM transactions WHERE transaction_id = $1;`
	result, err := r.Pool.Exec(ctx, query, transactionID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete transaction "+transactionID, err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("transaction " + transactionID + " not found")
	}
	return nil
}
