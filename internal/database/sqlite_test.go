package database

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenSQLiteAppliesSchema(t *testing.T) {
	db := SetupTestSQLite(t)
	require.NoError(t, db.Ping(context.Background()))

	var n int
	err := db.DB().QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = 'picks'`).Scan(&n)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestSQLiteWithTransactionRollsBack(t *testing.T) {
	db := SetupTestSQLite(t)
	ctx := context.Background()
	boom := errors.New("boom")

	err := db.WithTransaction(ctx, func(tx *sql.Tx) error {
		_, err := tx.Exec(`INSERT INTO picks (id, profile, sport, match_date, matchup, home_team, away_team,
			pick_type, side, details, odds, created_at, updated_at)
			VALUES ('a', 'ZEUS', 'NBA', '2025-01-10T00:00:00Z', 'A @ B', 'B', 'A', 'SPREAD', 'HOME', 'B -2', -110,
			'2025-01-09T00:00:00Z', '2025-01-09T00:00:00Z')`)
		require.NoError(t, err)
		return boom
	})
	assert.ErrorIs(t, err, boom)

	var n int
	require.NoError(t, db.DB().QueryRow(`SELECT COUNT(*) FROM picks`).Scan(&n))
	assert.Zero(t, n)
}
