package repository

import (
	"context"
	"time"

	"github.com/yourusername/godbot/internal/database"
	"github.com/yourusername/godbot/internal/models"
)

// SQLiteTradeRepository implements TradeRepository on a local SQLite file
type SQLiteTradeRepository struct {
	db  *database.SQLite
	now func() time.Time
}

// NewSQLiteTradeRepository creates a new sqlite-backed trade repository
func NewSQLiteTradeRepository(db *database.SQLite) *SQLiteTradeRepository {
	return &SQLiteTradeRepository{db: db, now: time.Now}
}

// Create inserts the trade unless its id is already recorded
func (r *SQLiteTradeRepository) Create(ctx context.Context, t *models.Trade) (bool, error) {
	query := `INSERT INTO trades (` + tradeColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO NOTHING`

	res, err := r.db.DB().ExecContext(ctx, query,
		t.ID, t.GameID, t.Team, t.ConditionID, t.Outcome, t.Action, t.EntryPrice, t.VegasPrice,
		t.Amount, string(t.Status), t.PnL, formatTime(t.CreatedAt), formatTime(t.UpdatedAt),
	)
	if err != nil {
		return false, persistenceErr("failed to create trade", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, persistenceErr("failed to create trade", err)
	}
	return n == 1, nil
}

// FindAll retrieves trades, newest first
func (r *SQLiteTradeRepository) FindAll(ctx context.Context, statuses ...models.TradeStatus) ([]*models.Trade, error) {
	where, args := buildTradeFilter(statuses, sqliteDialect)
	query := `SELECT ` + tradeColumns + ` FROM trades` + where + ` ORDER BY created_at DESC, id`

	rows, err := r.db.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, persistenceErr("failed to query trades", err)
	}
	defer rows.Close()

	var trades []*models.Trade
	for rows.Next() {
		t, err := scanSQLiteTrade(rows)
		if err != nil {
			return nil, persistenceErr("failed to scan trade", err)
		}
		trades = append(trades, t)
	}
	if err := rows.Err(); err != nil {
		return nil, persistenceErr("failed to iterate trades", err)
	}
	return trades, nil
}

// Settle writes the outcome of an open trade
func (r *SQLiteTradeRepository) Settle(ctx context.Context, id string, status models.TradeStatus, pnl float64) error {
	query := `UPDATE trades SET status = ?, pnl = ?, updated_at = ?
		WHERE id = ? AND status = 'OPEN'`

	res, err := r.db.DB().ExecContext(ctx, query, string(status), pnl, formatTime(r.now()), id)
	return affectedOne(res, err, "failed to settle trade")
}

func scanSQLiteTrade(row rowScanner) (*models.Trade, error) {
	var (
		t                models.Trade
		created, updated string
	)
	err := row.Scan(
		&t.ID, &t.GameID, &t.Team, &t.ConditionID, &t.Outcome, &t.Action, &t.EntryPrice, &t.VegasPrice,
		&t.Amount, &t.Status, &t.PnL, &created, &updated,
	)
	if err != nil {
		return nil, err
	}
	if t.CreatedAt, err = parseTime(created); err != nil {
		return nil, err
	}
	if t.UpdatedAt, err = parseTime(updated); err != nil {
		return nil, err
	}
	return &t, nil
}
