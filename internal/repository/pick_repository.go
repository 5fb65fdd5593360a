package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/yourusername/godbot/internal/database"
	"github.com/yourusername/godbot/internal/models"
)

const pickColumns = `id, profile, sport, match_date, matchup, home_team, away_team, pick_type, side,
	line, details, odds, edge, status, profit, result_score, created_at, updated_at`

// PostgresPickRepository implements PickRepository for PostgreSQL
type PostgresPickRepository struct {
	db *database.DB
}

// NewPostgresPickRepository creates a new pick repository
func NewPostgresPickRepository(db *database.DB) *PostgresPickRepository {
	return &PostgresPickRepository{db: db}
}

// FindPending retrieves the open pick for (profile, matchup, match date)
func (r *PostgresPickRepository) FindPending(ctx context.Context, profile models.Profile, matchup string, matchDate time.Time) (*models.Pick, error) {
	query := `SELECT ` + pickColumns + `
		FROM picks
		WHERE profile = $1 AND matchup = $2 AND match_date = $3 AND status = 'PENDING'
		ORDER BY created_at DESC
		LIMIT 1`

	pick, err := scanPick(r.db.Conn(ctx).QueryRow(ctx, query, profile, matchup, matchDate))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, persistenceErr("failed to get pending pick", err)
	}
	return pick, nil
}

// Create inserts a new pick
func (r *PostgresPickRepository) Create(ctx context.Context, pick *models.Pick) error {
	query := `INSERT INTO picks (` + pickColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`

	_, err := r.db.Conn(ctx).Exec(ctx, query,
		pick.ID, pick.Profile, pick.Sport, pick.MatchDate, pick.Matchup, pick.HomeTeam, pick.AwayTeam,
		pick.Type, pick.Side, pick.Line, pick.Details, pick.Odds, pick.Edge, pick.Status,
		pick.Profit, pick.ResultScore, pick.CreatedAt, pick.UpdatedAt,
	)
	if err != nil {
		return persistenceErr("failed to create pick", err)
	}
	return nil
}

// Update rewrites the line fields of a pending pick
func (r *PostgresPickRepository) Update(ctx context.Context, id uuid.UUID, u models.PickUpdate) error {
	query := `UPDATE picks
		SET pick_type = $2, side = $3, line = $4, details = $5, odds = $6, edge = $7, updated_at = NOW()
		WHERE id = $1 AND status = 'PENDING'`

	tag, err := r.db.Conn(ctx).Exec(ctx, query, id, u.Type, u.Side, u.Line, u.Details, u.Odds, u.Edge)
	if err != nil {
		return persistenceErr("failed to update pick", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

// Grade writes the terminal status of a pending pick
func (r *PostgresPickRepository) Grade(ctx context.Context, id uuid.UUID, g models.PickGrade) error {
	query := `UPDATE picks
		SET status = $2, profit = $3, result_score = $4, updated_at = NOW()
		WHERE id = $1 AND status = 'PENDING'`

	tag, err := r.db.Conn(ctx).Exec(ctx, query, id, g.Status, g.Profit, g.ResultScore)
	if err != nil {
		return persistenceErr("failed to grade pick", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

// FindAll retrieves picks matching the filter, newest match first
func (r *PostgresPickRepository) FindAll(ctx context.Context, filter models.PickFilter) ([]*models.Pick, error) {
	where, args := buildPickFilter(filter, postgresDialect)
	query := `SELECT ` + pickColumns + ` FROM picks` + where + ` ORDER BY match_date DESC, created_at DESC`

	rows, err := r.db.Conn(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, persistenceErr("failed to query picks", err)
	}
	defer rows.Close()

	var picks []*models.Pick
	for rows.Next() {
		pick, err := scanPick(rows)
		if err != nil {
			return nil, persistenceErr("failed to scan pick", err)
		}
		picks = append(picks, pick)
	}
	if err := rows.Err(); err != nil {
		return nil, persistenceErr("failed to iterate picks", err)
	}
	return picks, nil
}

// Delete removes picks by id inside a single transaction
func (r *PostgresPickRepository) Delete(ctx context.Context, ids ...uuid.UUID) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	deleted := 0
	err := r.db.WithTransaction(ctx, func(txCtx context.Context) error {
		for _, id := range ids {
			tag, err := r.db.Conn(txCtx).Exec(txCtx, `DELETE FROM picks WHERE id = $1`, id)
			if err != nil {
				return err
			}
			deleted += int(tag.RowsAffected())
		}
		return nil
	})
	if err != nil {
		return 0, persistenceErr("failed to delete picks", err)
	}
	return deleted, nil
}

func scanPick(row pgx.Row) (*models.Pick, error) {
	p := &models.Pick{}
	err := row.Scan(
		&p.ID, &p.Profile, &p.Sport, &p.MatchDate, &p.Matchup, &p.HomeTeam, &p.AwayTeam,
		&p.Type, &p.Side, &p.Line, &p.Details, &p.Odds, &p.Edge, &p.Status,
		&p.Profit, &p.ResultScore, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// dialect captures the placeholder and time encoding of a SQL driver
type dialect struct {
	placeholder func(n int) string
	timeArg     func(t time.Time) any
}

var postgresDialect = dialect{
	placeholder: func(n int) string { return fmt.Sprintf("$%d", n) },
	timeArg:     func(t time.Time) any { return t },
}

// buildPickFilter renders the WHERE clause for a filter
func buildPickFilter(filter models.PickFilter, d dialect) (string, []any) {
	var (
		clauses []string
		args    []any
	)
	add := func(expr string, v any) {
		args = append(args, v)
		clauses = append(clauses, fmt.Sprintf(expr, d.placeholder(len(args))))
	}

	if filter.Profile != "" {
		add("profile = %s", string(filter.Profile))
	}
	if len(filter.Statuses) > 0 {
		marks := make([]string, 0, len(filter.Statuses))
		for _, s := range filter.Statuses {
			args = append(args, string(s))
			marks = append(marks, d.placeholder(len(args)))
		}
		clauses = append(clauses, "status IN ("+strings.Join(marks, ", ")+")")
	}
	if filter.From != nil {
		add("match_date >= %s", d.timeArg(*filter.From))
	}
	if filter.To != nil {
		add("match_date <= %s", d.timeArg(*filter.To))
	}

	if len(clauses) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

func persistenceErr(msg string, err error) error {
	return fmt.Errorf("%s: %w: %w", msg, models.ErrPersistence, err)
}
