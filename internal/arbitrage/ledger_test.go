package arbitrage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/godbot/internal/database"
	"github.com/yourusername/godbot/internal/datasource"
	"github.com/yourusername/godbot/internal/models"
	"github.com/yourusername/godbot/internal/repository"
)

type mockResolutions struct{ mock.Mock }

func (m *mockResolutions) MarketResolution(ctx context.Context, conditionID string) (*datasource.MarketResolution, error) {
	args := m.Called(ctx, conditionID)
	res, _ := args.Get(0).(*datasource.MarketResolution)
	return res, args.Error(1)
}

// failingTrades fails the first Create and delegates the rest
type failingTrades struct {
	repository.TradeRepository
	failed bool
}

func (f *failingTrades) Create(ctx context.Context, t *models.Trade) (bool, error) {
	if !f.failed {
		f.failed = true
		return false, fmt.Errorf("failed to create trade: %w: disk full", models.ErrPersistence)
	}
	return f.TradeRepository.Create(ctx, t)
}

func newTradeRepo(t *testing.T) *repository.SQLiteTradeRepository {
	t.Helper()
	return repository.NewSQLiteTradeRepository(database.SetupTestSQLite(t))
}

func buyMarkets() *mockMarkets {
	markets := &mockMarkets{}
	markets.On("FindTeamPrice", mock.Anything, "Lakers").Return(&datasource.TeamMarket{
		ConditionID: "0xlal", TeamOutcome: "Los Angeles Lakers", TeamPrice: 0.5,
	}, nil)
	markets.On("FindTeamPrice", mock.Anything, "Heat").Return(&datasource.TeamMarket{
		ConditionID: "0xmia", TeamOutcome: "Miami Heat", TeamPrice: 0.4,
	}, nil)
	return markets
}

func TestRunnerLogsEachSignalOnce(t *testing.T) {
	now := time.Date(2025, 1, 9, 12, 0, 0, 0, time.UTC)
	odds := &mockOdds{}
	odds.On("GetOdds", mock.Anything, "basketball_nba", "us").Return([]models.OddsEvent{
		h2hEvent("e1", "Lakers", "Celtics", now.Add(6*time.Hour), -150),
		h2hEvent("e3", "Heat", "Magic", now.Add(8*time.Hour), 110),
	}, nil)

	trades := newTradeRepo(t)
	clock := func() time.Time { return now }
	ledger := NewLedger(trades, &mockResolutions{}, nil).WithClock(clock)
	runner := NewRunner(odds, buyMarkets(), nil).WithClock(clock).WithLedger(ledger)

	for i := 0; i < 2; i++ {
		reports, err := runner.Run(context.Background(), "basketball_nba", "us")
		require.NoError(t, err)
		require.Len(t, reports, 2)
	}

	all, err := trades.FindAll(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 2)

	byID := map[string]*models.Trade{}
	for _, tr := range all {
		byID[tr.ID] = tr
	}
	lakers := byID["opp_e1_Lakers"]
	require.NotNil(t, lakers)
	assert.Equal(t, "0xlal", lakers.ConditionID)
	assert.Equal(t, "Los Angeles Lakers", lakers.Outcome)
	assert.Equal(t, 0.5, lakers.EntryPrice)
	assert.InDelta(t, 0.6, lakers.VegasPrice, 1e-9)
	assert.Equal(t, models.DefaultTradeStake, lakers.Amount)
	assert.Equal(t, models.TradeStatusOpen, lakers.Status)
	assert.NotNil(t, byID["opp_e3_Heat"])
}

func TestLedgerRecordSkipsWaitAndKeepsGoingAfterFailure(t *testing.T) {
	repo := &failingTrades{TradeRepository: newTradeRepo(t)}
	ledger := NewLedger(repo, &mockResolutions{}, nil)

	report := func(id, team string, action TradeAction) Report {
		return Report{
			Event:  models.OddsEvent{ID: id},
			Market: &datasource.TeamMarket{ConditionID: "0x" + id, TeamOutcome: team},
			Trade: TradeOpportunity{
				ID: "opp_" + id, Ticker: team, MarketPrice: 0.4, VegasPrice: 0.5, Action: action,
			},
		}
	}

	logged, err := ledger.Record(context.Background(), []Report{
		report("e1", "Lakers", ActionBuySignal),
		report("e2", "Knicks", ActionWait),
		report("e3", "Heat", ActionBuySignal),
	})
	assert.ErrorIs(t, err, models.ErrPersistence)
	assert.Equal(t, 1, logged)

	all, err := repo.FindAll(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "opp_e3_Heat", all[0].ID)
}

func TestLedgerSettle(t *testing.T) {
	ctx := context.Background()
	repo := newTradeRepo(t)
	created := time.Date(2025, 1, 9, 12, 0, 0, 0, time.UTC)

	open := func(id, outcome string, entry float64, offset time.Duration) *models.Trade {
		return &models.Trade{
			ID: models.TradeID("opp_"+id, outcome), GameID: id, Team: outcome, ConditionID: "0x" + id,
			Outcome: outcome, Action: string(ActionBuySignal), EntryPrice: entry, VegasPrice: 0.6,
			Amount: models.DefaultTradeStake, Status: models.TradeStatusOpen,
			CreatedAt: created.Add(offset), UpdatedAt: created.Add(offset),
		}
	}
	for _, tr := range []*models.Trade{
		open("won", "Lakers", 0.4, 0),
		open("lost", "Heat", 0.35, time.Minute),
		open("live", "Knicks", 0.5, 2*time.Minute),
		open("gone", "Bulls", 0.5, 3*time.Minute),
	} {
		_, err := repo.Create(ctx, tr)
		require.NoError(t, err)
	}

	res := &mockResolutions{}
	res.On("MarketResolution", mock.Anything, "0xwon").Return(&datasource.MarketResolution{
		Closed: true, Outcomes: []string{"Boston Celtics", "Los Angeles Lakers"}, OutcomePrices: []float64{0, 1},
	}, nil)
	res.On("MarketResolution", mock.Anything, "0xlost").Return(&datasource.MarketResolution{
		Closed: true, Outcomes: []string{"Miami Heat", "Orlando Magic"}, OutcomePrices: []float64{0, 1},
	}, nil)
	res.On("MarketResolution", mock.Anything, "0xlive").Return(&datasource.MarketResolution{
		Closed: false, Outcomes: []string{"New York Knicks", "Chicago Bulls"}, OutcomePrices: []float64{0.55, 0.45},
	}, nil)
	res.On("MarketResolution", mock.Anything, "0xgone").Return(nil, errors.New("timeout"))

	ledger := NewLedger(repo, res, nil)
	result, err := ledger.Settle(ctx)
	require.NoError(t, err)
	assert.Equal(t, &SettleResult{Open: 4, Won: 1, Lost: 1, Unresolved: 2}, result)

	stats, err := ledger.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.TradeStats{Total: 4, Open: 2, Won: 1, Lost: 1, Profit: 25, WinRate: 50}, stats)

	again, err := ledger.Settle(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, again.Open)

	openTrades, err := repo.FindAll(ctx, models.TradeStatusOpen)
	require.NoError(t, err)
	var out bytes.Buffer
	WriteLedger(&out, stats, openTrades)
	assert.Contains(t, out.String(), "+25.00")
	assert.Contains(t, out.String(), "opp_live_Knicks")
}
