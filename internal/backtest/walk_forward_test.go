package backtest

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/godbot/internal/models"
	"github.com/yourusername/godbot/internal/prediction"
)

// dailySeason plays two games a day at the same tip-off for the given days
func dailySeason(days int) []models.Game {
	first := time.Date(2024, 10, 22, 19, 0, 0, 0, time.UTC)
	var games []models.Game
	for d := 0; d < days; d++ {
		tip := first.AddDate(0, 0, d)
		if d%2 == 0 {
			games = append(games,
				finalGame(2*d+1, tip, "Celtics", "Wizards", 118, 104),
				finalGame(2*d+2, tip, "Nuggets", "Hornets", 112, 108))
		} else {
			games = append(games,
				finalGame(2*d+1, tip, "Wizards", "Celtics", 101, 115),
				finalGame(2*d+2, tip, "Hornets", "Nuggets", 109, 111))
		}
	}
	return games
}

func TestWalkForwardSpread(t *testing.T) {
	result := WalkForward(dailySeason(30), prediction.Zeus, models.PickTypeSpread)

	assert.Equal(t, 20, result.Dates)
	assert.Equal(t, 40, result.Games)
	assert.Equal(t, result.Games, result.Wins+result.Losses)
	assert.LessOrEqual(t, result.Score, 0.0)
}

func TestWalkForwardMoneylineCountsConfidentGamesOnly(t *testing.T) {
	result := WalkForward(dailySeason(30), prediction.Loki, models.PickTypeMoneyline)

	assert.Equal(t, 40, result.Games)
	assert.LessOrEqual(t, result.Wins+result.Losses, result.Games)
	assert.Equal(t, float64(result.Wins-result.Losses), result.Score)
}

func TestWalkForwardNeedsWarmup(t *testing.T) {
	result := WalkForward(dailySeason(WarmupDates), prediction.Zeus, models.PickTypeTotal)
	assert.Zero(t, result.Dates)
	assert.Zero(t, result.Score)
}

func TestRestStudy(t *testing.T) {
	short := RestStudy(dailySeason(50), prediction.Zeus)
	assert.Zero(t, short.N)
	assert.False(t, short.RestAwareBetter())

	// every team plays daily, so both penalties apply and cancel out
	result := RestStudy(dailySeason(75), prediction.Zeus)
	assert.Equal(t, 50, result.N)
	assert.Greater(t, result.BaseRMSE, 0.0)
	assert.InDelta(t, result.BaseRMSE, result.RestRMSE, 1e-9)
	assert.InDelta(t, 0, result.ImprovementPct, 1e-9)
}

func TestBootstrap(t *testing.T) {
	constant := &Result{History: []BetRecord{
		{PnL: StandardPayout}, {PnL: StandardPayout}, {PnL: StandardPayout}, {PnL: StandardPayout},
	}}
	b := Bootstrap(constant, 200, rand.New(rand.NewSource(1)))
	assert.Equal(t, 200, b.Iterations)
	assert.Equal(t, 4, b.Bets)
	assert.InDelta(t, 91, b.MeanROI, 1e-9)
	assert.InDelta(t, 91, b.P5ROI, 1e-9)
	assert.InDelta(t, 91, b.P95ROI, 1e-9)
	assert.Equal(t, 1.0, b.ProbPositive)

	mixed := &Result{History: []BetRecord{{PnL: StandardPayout}, {PnL: -1}, {PnL: 2.1}, {PnL: -1}, {PnL: 0}}}
	b = Bootstrap(mixed, 0, rand.New(rand.NewSource(1)))
	require.Len(t, b.Distribution, DefaultBootstrapIterations)
	assert.LessOrEqual(t, b.P5ROI, b.MeanROI)
	assert.LessOrEqual(t, b.MeanROI, b.P95ROI)
	assert.GreaterOrEqual(t, b.ProbPositive, 0.0)
	assert.LessOrEqual(t, b.ProbPositive, 1.0)

	empty := Bootstrap(&Result{}, 10, rand.New(rand.NewSource(1)))
	assert.Zero(t, empty.Bets)
	assert.Zero(t, empty.MeanROI)
}
