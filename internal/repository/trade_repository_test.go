package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/godbot/internal/database"
	"github.com/yourusername/godbot/internal/models"
)

func testTrade(gameID, team string, created time.Time) *models.Trade {
	return &models.Trade{
		ID:          models.TradeID("opp_"+gameID, team),
		GameID:      gameID,
		Team:        team,
		ConditionID: "0x" + gameID,
		Outcome:     team,
		Action:      "BUY_SIGNAL",
		EntryPrice:  0.4,
		VegasPrice:  0.52,
		Amount:      models.DefaultTradeStake,
		Status:      models.TradeStatusOpen,
		CreatedAt:   created,
		UpdatedAt:   created,
	}
}

func TestSQLiteTradeCreateOncePerID(t *testing.T) {
	repo := NewSQLiteTradeRepository(database.SetupTestSQLite(t))
	ctx := context.Background()
	created := time.Date(2025, 1, 9, 12, 0, 0, 0, time.UTC)

	ok, err := repo.Create(ctx, testTrade("e1", "Lakers", created))
	require.NoError(t, err)
	assert.True(t, ok)

	again := testTrade("e1", "Lakers", created.Add(time.Hour))
	again.EntryPrice = 0.3
	ok, err = repo.Create(ctx, again)
	require.NoError(t, err)
	assert.False(t, ok)

	trades, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, trades, 1)
	assert.Equal(t, 0.4, trades[0].EntryPrice)
	assert.Equal(t, models.TradeStatusOpen, trades[0].Status)
	assert.True(t, created.Equal(trades[0].CreatedAt))
}

func TestSQLiteTradeSettleOnlyOpen(t *testing.T) {
	repo := NewSQLiteTradeRepository(database.SetupTestSQLite(t))
	ctx := context.Background()
	created := time.Date(2025, 1, 9, 12, 0, 0, 0, time.UTC)

	won := testTrade("e1", "Lakers", created)
	open := testTrade("e2", "Heat", created.Add(time.Minute))
	for _, tr := range []*models.Trade{won, open} {
		_, err := repo.Create(ctx, tr)
		require.NoError(t, err)
	}

	require.NoError(t, repo.Settle(ctx, won.ID, models.TradeStatusWon, 75))
	assert.ErrorIs(t, repo.Settle(ctx, won.ID, models.TradeStatusLost, -50), models.ErrNotFound)
	assert.ErrorIs(t, repo.Settle(ctx, "opp_missing_Bulls", models.TradeStatusLost, -50), models.ErrNotFound)

	openOnly, err := repo.FindAll(ctx, models.TradeStatusOpen)
	require.NoError(t, err)
	require.Len(t, openOnly, 1)
	assert.Equal(t, open.ID, openOnly[0].ID)

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, open.ID, all[0].ID, "newest first")
	assert.Equal(t, models.TradeStatusWon, all[1].Status)
	assert.Equal(t, 75.0, all[1].PnL)
}

func TestBuildTradeFilterPlaceholders(t *testing.T) {
	where, args := buildTradeFilter([]models.TradeStatus{models.TradeStatusWon, models.TradeStatusLost}, postgresDialect)
	assert.Equal(t, " WHERE status IN ($1, $2)", where)
	assert.Equal(t, []any{"WON", "LOST"}, args)

	where, args = buildTradeFilter(nil, sqliteDialect)
	assert.Empty(t, where)
	assert.Empty(t, args)
}
