package prediction

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/godbot/internal/models"
)

func team(name string, eff, margin, trend float64, rest int) *models.TeamStats {
	return &models.TeamStats{
		TeamName:      name,
		PointsPerGame: 115,
		PointsAllowed: 110,
		Pace:          100,
		Efficiency:    eff,
		AvgMargin:     margin,
		RecentTrend:   trend,
		DaysRest:      rest,
	}
}

func TestPredictSpread(t *testing.T) {
	home := team("Lakers", 5, 5, 4, 2)
	away := team("Celtics", -3, -3, -2, 2)

	// 8*0.25 + 8*0.15 + 6*0.15 + 3.5 = 7.6
	assert.Equal(t, 7.5, Zeus.PredictSpread(home, away))

	home.InjuryImpact = 1
	// 7.6 - 2.0 = 5.6
	assert.Equal(t, 5.5, Zeus.PredictSpread(home, away))
}

func TestPredictSpreadRestIsOneSided(t *testing.T) {
	even := Zeus.PredictSpread(team("A", 0, 0, 0, 2), team("B", 0, 0, 0, 2))
	assert.Equal(t, 3.5, even)

	assert.Equal(t, -1.0, Zeus.PredictSpread(team("A", 0, 0, 0, 0), team("B", 0, 0, 0, 2)))
	assert.Equal(t, 8.0, Zeus.PredictSpread(team("A", 0, 0, 0, 2), team("B", 0, 0, 0, 0)))
	assert.Equal(t, 3.5, Zeus.PredictSpread(team("A", 0, 0, 0, 0), team("B", 0, 0, 0, 0)))
}

func TestPredictTotal(t *testing.T) {
	home := team("Lakers", 0, 0, 0, 2)
	away := team("Celtics", 0, 0, 0, 2)

	// (115+115+110+110)/2 + (100-98.5)*0.4 = 225.6
	assert.Equal(t, 225.5, Shiva.PredictTotal(home, away))

	home.DaysRest = 0
	away.DaysRest = 0
	// 225.6 - 5.0 = 220.6
	assert.Equal(t, 220.5, Shiva.PredictTotal(home, away))
}

func TestPredictionsAreHalfPoints(t *testing.T) {
	for eff := -10.0; eff <= 10; eff += 0.7 {
		home := team("A", eff, eff/2, eff/3, 1)
		away := team("B", -eff, 0.3, 1.1, 0)
		home.PointsPerGame += eff
		for _, w := range []Weights{Zeus, Loki, Shiva} {
			s := w.PredictSpread(home, away) * 2
			tot := w.PredictTotal(home, away) * 2
			assert.Equal(t, math.Trunc(s), s)
			assert.Equal(t, math.Trunc(tot), tot)
		}
	}
}

func TestWinProbability(t *testing.T) {
	assert.Equal(t, 0.5, WinProbability(0))
	assert.InDelta(t, 0.68, WinProbability(6), 1e-9)
	assert.Equal(t, 0.01, WinProbability(-40))
	assert.Equal(t, 0.99, WinProbability(40))

	prev := WinProbability(-50)
	for x := -50.0; x <= 50; x += 0.5 {
		p := WinProbability(x)
		assert.GreaterOrEqual(t, p, prev)
		assert.GreaterOrEqual(t, p, 0.01)
		assert.LessOrEqual(t, p, 0.99)
		prev = p
	}
}

func TestOddsToProbability(t *testing.T) {
	assert.InDelta(t, 0.40, OddsToProbability(150), 1e-9)
	assert.InDelta(t, 110.0/210.0, OddsToProbability(-110), 1e-9)
	assert.InDelta(t, 0.5, OddsToProbability(-100), 1e-9)
}

func TestAnalyzeMatchup(t *testing.T) {
	home := team("Lakers", 5, 5, 4, 2)
	away := team("Celtics", -3, -3, -2, 2)
	lines := []models.BettingLine{
		{Source: "book", Type: models.LineTypeSpread, Line: -2.5, Odds: -110},
		{Source: "book", Type: models.LineTypeTotal, Line: 224, Odds: -110},
	}

	a := Zeus.AnalyzeMatchup(home, away, lines)
	require.Equal(t, "Lakers-Celtics", a.ID)
	assert.Equal(t, -7.5, a.Spread)
	assert.Equal(t, 225.5, a.Total)
	// spread edge |-7.5 - -2.5| = 5 beats total edge 1.5
	assert.Equal(t, 10.0, a.Edge)
	assert.Equal(t, 99, a.ConfidenceScore)
	assert.Equal(t, RecommendBet, a.Recommendation)
	assert.InDelta(t, 0.725, a.WinProbability, 1e-9)

	pass := Zeus.AnalyzeMatchup(home, away, []models.BettingLine{{Type: models.LineTypeSpread, Line: -6.5}})
	assert.Equal(t, RecommendPass, pass.Recommendation)
	assert.Equal(t, 60, pass.ConfidenceScore)
}

func TestForProfile(t *testing.T) {
	w, err := ForProfile(models.ProfileLoki)
	require.NoError(t, err)
	assert.Equal(t, 0.60, w.RecentForm)

	_, err = ForProfile("ODIN")
	assert.Error(t, err)
}
