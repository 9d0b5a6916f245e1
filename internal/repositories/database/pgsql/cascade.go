package pgsql

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/teambudget/team_budget_app/internal/apperrors"
)

// deleteStep is one DELETE statement in a permanent-delete cascade. Steps are
// ordered children before parents so that foreign keys never block a later
// step.
type deleteStep struct {
	table string
	where string
	args  []any
}

// bookScopedDeleteSteps returns the cascade that empties a single book:
// transactions, then child categories, then root categories, then accounts.
// The book row itself is not included so that the team cascade can reuse the
// same steps across all of its books.
func bookScopedDeleteSteps(bookID string) []deleteStep {
	return []deleteStep{
		{
			table: "transactions",
			where: "account_id IN (SELECT account_id FROM accounts WHERE book_id = $1)",
			args:  []any{bookID},
		},
		{
			table: "categories",
			where: "book_id = $1 AND parent_category_id IS NOT NULL",
			args:  []any{bookID},
		},
		{
			table: "categories",
			where: "book_id = $1",
			args:  []any{bookID},
		},
		{
			table: "accounts",
			where: "book_id = $1",
			args:  []any{bookID},
		},
	}
}

// teamScopedDeleteSteps returns the cascade that removes every book of a team
// and the team's own rows: per-book contents, then books, then memberships,
// then the team row.
func teamScopedDeleteSteps(teamID string) []deleteStep {
	return []deleteStep{
		{
			table: "transactions",
			where: "account_id IN (SELECT account_id FROM accounts WHERE book_id IN (SELECT book_id FROM books WHERE team_id = $1))",
			args:  []any{teamID},
		},
		{
			table: "categories",
			where: "book_id IN (SELECT book_id FROM books WHERE team_id = $1) AND parent_category_id IS NOT NULL",
			args:  []any{teamID},
		},
		{
			table: "categories",
			where: "book_id IN (SELECT book_id FROM books WHERE team_id = $1)",
			args:  []any{teamID},
		},
		{
			table: "accounts",
			where: "book_id IN (SELECT book_id FROM books WHERE team_id = $1)",
			args:  []any{teamID},
		},
		{
			table: "books",
			where: "team_id = $1",
			args:  []any{teamID},
		},
		{
			table: "team_users",
			where: "team_id = $1",
			args:  []any{teamID},
		},
		{
			table: "teams",
			where: "team_id = $1",
			args:  []any{teamID},
		},
	}
}

// runDeleteSteps executes the steps in order inside the given transaction.
func runDeleteSteps(ctx context.Context, tx pgx.Tx, steps []deleteStep) error {
	for _, step := range steps {
		query := "DELETE FROM " + step.table + " WHERE " + step.where + ";"
		if _, err := tx.Exec(ctx, query, step.args...); err != nil {
			return apperrors.NewAppError(500, "failed to delete from "+step.table, err)
		}
	}
	return nil
}
