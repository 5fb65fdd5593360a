package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/yourusername/godbot/internal/database"
	"github.com/yourusername/godbot/internal/models"
)

const tradeColumns = `id, game_id, team, condition_id, outcome, action, entry_price, vegas_price,
	amount, status, pnl, created_at, updated_at`

// PostgresTradeRepository implements TradeRepository for PostgreSQL
type PostgresTradeRepository struct {
	db *database.DB
}

// NewPostgresTradeRepository creates a new trade repository
func NewPostgresTradeRepository(db *database.DB) *PostgresTradeRepository {
	return &PostgresTradeRepository{db: db}
}

// Create inserts the trade unless its id is already recorded
func (r *PostgresTradeRepository) Create(ctx context.Context, t *models.Trade) (bool, error) {
	query := `INSERT INTO trades (` + tradeColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (id) DO NOTHING`

	tag, err := r.db.Conn(ctx).Exec(ctx, query,
		t.ID, t.GameID, t.Team, t.ConditionID, t.Outcome, t.Action, t.EntryPrice, t.VegasPrice,
		t.Amount, t.Status, t.PnL, t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		return false, persistenceErr("failed to create trade", err)
	}
	return tag.RowsAffected() == 1, nil
}

// FindAll retrieves trades, newest first
func (r *PostgresTradeRepository) FindAll(ctx context.Context, statuses ...models.TradeStatus) ([]*models.Trade, error) {
	where, args := buildTradeFilter(statuses, postgresDialect)
	query := `SELECT ` + tradeColumns + ` FROM trades` + where + ` ORDER BY created_at DESC, id`

	rows, err := r.db.Conn(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, persistenceErr("failed to query trades", err)
	}
	defer rows.Close()

	var trades []*models.Trade
	for rows.Next() {
		t, err := scanTrade(rows)
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
func (r *PostgresTradeRepository) Settle(ctx context.Context, id string, status models.TradeStatus, pnl float64) error {
	query := `UPDATE trades SET status = $2, pnl = $3, updated_at = NOW()
		WHERE id = $1 AND status = 'OPEN'`

	tag, err := r.db.Conn(ctx).Exec(ctx, query, id, status, pnl)
	if err != nil {
		return persistenceErr("failed to settle trade", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

func scanTrade(row pgx.Row) (*models.Trade, error) {
	t := &models.Trade{}
	err := row.Scan(
		&t.ID, &t.GameID, &t.Team, &t.ConditionID, &t.Outcome, &t.Action, &t.EntryPrice, &t.VegasPrice,
		&t.Amount, &t.Status, &t.PnL, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return t, nil
}

func buildTradeFilter(statuses []models.TradeStatus, d dialect) (string, []any) {
	if len(statuses) == 0 {
		return "", nil
	}
	args := make([]any, 0, len(statuses))
	marks := make([]string, 0, len(statuses))
	for _, s := range statuses {
		args = append(args, string(s))
		marks = append(marks, d.placeholder(len(args)))
	}
	return fmt.Sprintf(" WHERE status IN (%s)", strings.Join(marks, ", ")), args
}
