package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/teambudget/team_budget_app/internal/apperrors"
	"github.com/teambudget/team_budget_app/internal/core/domain"
	portsrepo "github.com/teambudget/team_budget_app/internal/core/ports/repositories"
)

type PgxTeamRepository struct {
	BaseRepository
}

// newPgxTeamRepository creates a new repository for team and membership data.
func newPgxTeamRepository(pool *pgxpool.Pool) portsrepo.TeamRepositoryWithTx {
	return &PgxTeamRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxTeamRepository implements portsrepo.TeamRepositoryWithTx
var _ portsrepo.TeamRepositoryWithTx = (*PgxTeamRepository)(nil)

var FULL_TEAM_SELECT_QUERY = `
SELECT
	t.team_id, t.name,
	t.created_at, t.created_by, t.last_updated_at, t.last_updated_by,
	t.deleted_at
FROM teams t
`

// getTeams runs the full select with the given filter and collects the rows.
func (r *PgxTeamRepository) getTeams(ctx context.Context, filterQuery string, args ...any) ([]domain.Team, error) {
	query := FULL_TEAM_SELECT_QUERY + filterQuery
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query teams", err)
	}
	defer rows.Close()
	teams, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.Team])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []domain.Team{}, nil
		}
		return nil, apperrors.NewAppError(500, "failed to collect team rows", err)
	}
	return teams, nil
}

func (r *PgxTeamRepository) FindTeamByID(ctx context.Context, teamID string) (*domain.Team, error) {
	teams, err := r.getTeams(ctx, `WHERE t.team_id = $1`, teamID)
	if err != nil {
		return nil, err
	}
	if len(teams) == 0 {
		return nil, apperrors.NewNotFoundError("team " + teamID + " not found")
	}
	return &teams[0], nil
}

func (r *PgxTeamRepository) ListTeamsByUserID(ctx context.Context, userID string) ([]domain.Team, error) {
	filter := `
		JOIN team_users tu ON t.team_id = tu.team_id
		WHERE tu.user_id = $1 AND t.deleted_at IS NULL
		ORDER BY t.name`
	return r.getTeams(ctx, filter, userID)
}

func (r *PgxTeamRepository) SaveTeam(ctx context.Context, team domain.Team) error {
	query := `
		INSERT INTO teams (
			team_id, name,
			created_at, created_by, last_updated_at, last_updated_by, deleted_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := r.Pool.Exec(ctx, query,
		team.TeamID,
		team.Name,
		team.CreatedAt,
		team.CreatedBy,
		team.LastUpdatedAt,
		team.LastUpdatedBy,
		team.DeletedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return apperrors.ErrDuplicate
		}
		return apperrors.NewAppError(500, "failed to save team "+team.TeamID, err)
	}
	return nil
}

func (r *PgxTeamRepository) UpdateTeam(ctx context.Context, team domain.Team) error {
	query := `
		UPDATE teams
		SET name = $2, last_updated_at = $3, last_updated_by = $4
		WHERE team_id = $1;
	`
	result, err := r.Pool.Exec(ctx, query, team.TeamID, team.Name, team.LastUpdatedAt, team.LastUpdatedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update team "+team.TeamID, err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("team " + team.TeamID + " not found")
	}
	return nil
}

func (r *PgxTeamRepository) SetTeamDeletedAt(ctx context.Context, teamID string, deletedAt *time.Time, updatedBy string, now time.Time) error {
	query := `
		UPDATE teams
		SET deleted_at = $2, last_updated_at = $3, last_updated_by = $4
		WHERE team_id = $1;
	`
	result, err := r.Pool.Exec(ctx, query, teamID, deletedAt, now, updatedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to set deleted_at for team "+teamID, err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("team " + teamID + " not found")
	}
	return nil
}

// DeleteTeamPermanently removes the team and everything it transitively owns
// in one transaction, children before parents.
func (r *PgxTeamRepository) DeleteTeamPermanently(ctx context.Context, teamID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	if err := runDeleteSteps(ctx, tx, teamScopedDeleteSteps(teamID)); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

func (r *PgxTeamRepository) AddTeamMember(ctx context.Context, member domain.TeamMember) error {
	query := `
		INSERT INTO team_users (team_id, user_id, role, joined_at)
		VALUES ($1, $2, $3, $4);
	`
	_, err := r.Pool.Exec(ctx, query,
		member.TeamID,
		member.UserID,
		member.Role,
		member.JoinedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23505" { // unique_violation
				return apperrors.ErrDuplicate
			}
			if pgErr.Code == "23503" { // foreign_key_violation
				return apperrors.NewNotFoundError("team or user not found")
			}
		}
		return apperrors.NewAppError(500, "failed to add user "+member.UserID+" to team "+member.TeamID, err)
	}
	return nil
}

func (r *PgxTeamRepository) FindTeamMember(ctx context.Context, teamID, userID string) (*domain.TeamMember, error) {
	query := `
		SELECT tu.team_id, tu.user_id, u.username, tu.role, tu.joined_at
		FROM team_users tu
		JOIN users u ON tu.user_id = u.user_id
		WHERE tu.team_id = $1 AND tu.user_id = $2;
	`
	var m domain.TeamMember
	err := r.Pool.QueryRow(ctx, query, teamID, userID).Scan(
		&m.TeamID,
		&m.UserID,
		&m.Username,
		&m.Role,
		&m.JoinedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("membership not found")
		}
		return nil, apperrors.NewAppError(500, "failed to find membership of user "+userID+" in team "+teamID, err)
	}
	return &m, nil
}

func (r *PgxTeamRepository) ListTeamMembers(ctx context.Context, teamID string) ([]domain.TeamMember, error) {
	query := `
		SELECT tu.team_id, tu.user_id, u.username, tu.role, tu.joined_at
		FROM team_users tu
		JOIN users u ON tu.user_id = u.user_id
		WHERE tu.team_id = $1
		ORDER BY tu.joined_at;
	`
	rows, err := r.Pool.Query(ctx, query, teamID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query members of team "+teamID, err)
	}
	defer rows.Close()

	members, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.TeamMember])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []domain.TeamMember{}, nil
		}
		return nil, apperrors.NewAppError(500, "failed to collect member rows", err)
	}
	return members, nil
}

// UpdateTeamMemberRole changes a member's role. With guardLastAdmin set, the
// admin rows are locked and counted in the same transaction so that two
// concurrent demotions cannot both slip past the check.
func (r *PgxTeamRepository) UpdateTeamMemberRole(ctx context.Context, teamID, userID string, role domain.TeamRole, guardLastAdmin bool) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	if guardLastAdmin {
		if err := r.guardLastAdminLocked(ctx, tx, teamID, userID); err != nil {
			return err
		}
	}

	query := `
		UPDATE team_users
		SET role = $3
		WHERE team_id = $1 AND user_id = $2;
	`
	result, err := tx.Exec(ctx, query, teamID, userID, role)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update role of user "+userID+" in team "+teamID, err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("membership not found")
	}
	return r.Commit(ctx, tx)
}

// RemoveTeamMember removes a membership with the same last-admin guard
// semantics as UpdateTeamMemberRole.
func (r *PgxTeamRepository) RemoveTeamMember(ctx context.Context, teamID, userID string, guardLastAdmin bool) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	if guardLastAdmin {
		if err := r.guardLastAdminLocked(ctx, tx, teamID, userID); err != nil {
			return err
		}
	}

	query := `DELETE FROM team_users WHERE team_id = $1 AND user_id = $2;`
	result, err := tx.Exec(ctx, query, teamID, userID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to remove user "+userID+" from team "+teamID, err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("membership not found")
	}
	return r.Commit(ctx, tx)
}

func (r *PgxTeamRepository) CountTeamAdmins(ctx context.Context, teamID string) (int, error) {
	query := `SELECT COUNT(*) FROM team_users WHERE team_id = $1 AND role = $2;`
	var count int
	if err := r.Pool.QueryRow(ctx, query, teamID, domain.RoleAdmin).Scan(&count); err != nil {
		return 0, apperrors.NewAppError(500, "failed to count admins of team "+teamID, err)
	}
	return count, nil
}

// guardLastAdminLocked locks the team's admin memberships and fails with
// ErrConflict when userID is the only admin left. FOR UPDATE cannot be
// combined with an aggregate, so the rows are fetched and counted here.
func (r *PgxTeamRepository) guardLastAdminLocked(ctx context.Context, tx pgx.Tx, teamID, userID string) error {
	query := `
		SELECT user_id
		FROM team_users
		WHERE team_id = $1 AND role = $2
		FOR UPDATE;
	`
	rows, err := tx.Query(ctx, query, teamID, domain.RoleAdmin)
	if err != nil {
		return apperrors.NewAppError(500, "failed to lock admin rows of team "+teamID, err)
	}
	adminIDs, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return apperrors.NewAppError(500, "failed to collect admin rows of team "+teamID, err)
	}

	if len(adminIDs) == 1 && adminIDs[0] == userID {
		return apperrors.NewConflictError("cannot remove the last admin of a team")
	}
	return nil
}
