package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/yourusername/godbot/internal/database"
	"github.com/yourusername/godbot/internal/models"
)

var sqliteDialect = dialect{
	placeholder: func(int) string { return "?" },
	timeArg:     func(t time.Time) any { return formatTime(t) },
}

// SQLitePickRepository implements PickRepository on a local SQLite file
type SQLitePickRepository struct {
	db  *database.SQLite
	now func() time.Time
}

// NewSQLitePickRepository creates a new sqlite-backed pick repository
func NewSQLitePickRepository(db *database.SQLite) *SQLitePickRepository {
	return &SQLitePickRepository{db: db, now: time.Now}
}

// FindPending retrieves the open pick for (profile, matchup, match date)
func (r *SQLitePickRepository) FindPending(ctx context.Context, profile models.Profile, matchup string, matchDate time.Time) (*models.Pick, error) {
	query := `SELECT ` + pickColumns + `
		FROM picks
		WHERE profile = ? AND matchup = ? AND match_date = ? AND status = 'PENDING'
		ORDER BY created_at DESC
		LIMIT 1`

	pick, err := scanSQLitePick(r.db.DB().QueryRowContext(ctx, query, string(profile), matchup, formatTime(matchDate)))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, persistenceErr("failed to get pending pick", err)
	}
	return pick, nil
}

// Create inserts a new pick
func (r *SQLitePickRepository) Create(ctx context.Context, pick *models.Pick) error {
	query := `INSERT INTO picks (` + pickColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.DB().ExecContext(ctx, query,
		pick.ID.String(), string(pick.Profile), pick.Sport, formatTime(pick.MatchDate), pick.Matchup,
		pick.HomeTeam, pick.AwayTeam, string(pick.Type), string(pick.Side), pick.Line, pick.Details,
		pick.Odds, pick.Edge, string(pick.Status), pick.Profit, pick.ResultScore,
		formatTime(pick.CreatedAt), formatTime(pick.UpdatedAt),
	)
	if err != nil {
		return persistenceErr("failed to create pick", err)
	}
	return nil
}

// Update rewrites the line fields of a pending pick
func (r *SQLitePickRepository) Update(ctx context.Context, id uuid.UUID, u models.PickUpdate) error {
	query := `UPDATE picks
		SET pick_type = ?, side = ?, line = ?, details = ?, odds = ?, edge = ?, updated_at = ?
		WHERE id = ? AND status = 'PENDING'`

	res, err := r.db.DB().ExecContext(ctx, query,
		string(u.Type), string(u.Side), u.Line, u.Details, u.Odds, u.Edge, formatTime(r.now()), id.String())
	return affectedOne(res, err, "failed to update pick")
}

// Grade writes the terminal status of a pending pick
func (r *SQLitePickRepository) Grade(ctx context.Context, id uuid.UUID, g models.PickGrade) error {
	query := `UPDATE picks
		SET status = ?, profit = ?, result_score = ?, updated_at = ?
		WHERE id = ? AND status = 'PENDING'`

	res, err := r.db.DB().ExecContext(ctx, query,
		string(g.Status), g.Profit, g.ResultScore, formatTime(r.now()), id.String())
	return affectedOne(res, err, "failed to grade pick")
}

// FindAll retrieves picks matching the filter, newest match first
func (r *SQLitePickRepository) FindAll(ctx context.Context, filter models.PickFilter) ([]*models.Pick, error) {
	where, args := buildPickFilter(filter, sqliteDialect)
	query := `SELECT ` + pickColumns + ` FROM picks` + where + ` ORDER BY match_date DESC, created_at DESC`

	rows, err := r.db.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, persistenceErr("failed to query picks", err)
	}
	defer rows.Close()

	var picks []*models.Pick
	for rows.Next() {
		pick, err := scanSQLitePick(rows)
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
func (r *SQLitePickRepository) Delete(ctx context.Context, ids ...uuid.UUID) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	deleted := 0
	err := r.db.WithTransaction(ctx, func(tx *sql.Tx) error {
		for _, id := range ids {
			res, err := tx.ExecContext(ctx, `DELETE FROM picks WHERE id = ?`, id.String())
			if err != nil {
				return err
			}
			n, err := res.RowsAffected()
			if err != nil {
				return err
			}
			deleted += int(n)
		}
		return nil
	})
	if err != nil {
		return 0, persistenceErr("failed to delete picks", err)
	}
	return deleted, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSQLitePick(row rowScanner) (*models.Pick, error) {
	var (
		p                               models.Pick
		id, matchDate, created, updated string
		profit                          sql.NullFloat64
		resultScore                     sql.NullString
	)
	err := row.Scan(
		&id, &p.Profile, &p.Sport, &matchDate, &p.Matchup, &p.HomeTeam, &p.AwayTeam,
		&p.Type, &p.Side, &p.Line, &p.Details, &p.Odds, &p.Edge, &p.Status,
		&profit, &resultScore, &created, &updated,
	)
	if err != nil {
		return nil, err
	}

	if p.ID, err = uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("%w: %s", models.ErrInvalidID, id)
	}
	if p.MatchDate, err = parseTime(matchDate); err != nil {
		return nil, err
	}
	if p.CreatedAt, err = parseTime(created); err != nil {
		return nil, err
	}
	if p.UpdatedAt, err = parseTime(updated); err != nil {
		return nil, err
	}
	if profit.Valid {
		v := profit.Float64
		p.Profit = &v
	}
	if resultScore.Valid {
		v := resultScore.String
		p.ResultScore = &v
	}
	return &p, nil
}

func affectedOne(res sql.Result, err error, msg string) error {
	if err != nil {
		return persistenceErr(msg, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return persistenceErr(msg, err)
	}
	if n == 0 {
		return models.ErrNotFound
	}
	return nil
}

// Fixed-width layout keeps text timestamps ordered lexically.
const sqliteTimeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatTime(t time.Time) string {
	return t.UTC().Format(sqliteTimeLayout)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(sqliteTimeLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid stored timestamp %q: %w", s, err)
	}
	return t, nil
}
