// Package prediction turns two teams' statistics and a weighting profile
// into model lines for spread, total and win probability.
package prediction

import (
	"math"

	"github.com/yourusername/godbot/internal/models"
)

const (
	// LeaguePaceBaseline is the pace the totals adjustment is measured against
	LeaguePaceBaseline = 98.5
	winProbSlope       = 0.03
	minWinProb         = 0.01
	maxWinProb         = 0.99
	betThreshold       = 4.0
)

// Recommendation is the binary outcome of AnalyzeMatchup
type Recommendation string

const (
	RecommendBet  Recommendation = "BET"
	RecommendPass Recommendation = "PASS"
)

// MatchupAnalysis is the transient result of comparing model and market lines
type MatchupAnalysis struct {
	ID              string               `json:"id"`
	Home            *models.TeamStats    `json:"home"`
	Away            *models.TeamStats    `json:"away"`
	MarketLines     []models.BettingLine `json:"market_lines"`
	WinProbability  float64              `json:"win_probability"`
	Spread          float64              `json:"spread"`
	Total           float64              `json:"total"`
	Edge            float64              `json:"edge"`
	Recommendation  Recommendation       `json:"recommendation"`
	ConfidenceScore int                  `json:"confidence_score"`
}

// PredictSpread returns the predicted home margin (positive means home is
// favoured) rounded to the nearest half point. Negate it for a home spread.
func (w Weights) PredictSpread(home, away *models.TeamStats) float64 {
	eff := (home.Efficiency - away.Efficiency) * w.Efficiency
	margin := (home.AvgMargin - away.AvgMargin) * w.Margin
	form := (home.RecentTrend - away.RecentTrend) * w.RecentForm
	injury := (away.InjuryImpact - home.InjuryImpact) * w.InjuryScalar

	rest := 0.0
	if home.DaysRest == 0 && away.DaysRest > 0 {
		rest -= w.Rest
	}
	if away.DaysRest == 0 && home.DaysRest > 0 {
		rest += w.Rest
	}

	return models.RoundHalfPoint(eff + margin + form + injury + rest + w.HomeCourt)
}

// PredictTotal returns the predicted combined score rounded to the nearest half point
func (w Weights) PredictTotal(home, away *models.TeamStats) float64 {
	base := (home.PointsPerGame + away.PointsPerGame + home.PointsAllowed + away.PointsAllowed) / 2
	pace := ((home.Pace+away.Pace)/2 - LeaguePaceBaseline) * w.Pace

	fatigue := 0.0
	if home.DaysRest == 0 {
		fatigue += w.Fatigue
	}
	if away.DaysRest == 0 {
		fatigue += w.Fatigue
	}

	return models.RoundHalfPoint(base + pace + fatigue)
}

// AnalyzeMatchup compares the model's spread and total to every market line
// and keeps the largest disagreement.
func (w Weights) AnalyzeMatchup(home, away *models.TeamStats, lines []models.BettingLine) MatchupAnalysis {
	margin := w.PredictSpread(home, away)
	total := w.PredictTotal(home, away)

	var spreadEdge, totalEdge float64
	for _, l := range lines {
		switch l.Type {
		case models.LineTypeSpread:
			spreadEdge = math.Max(spreadEdge, math.Abs(-margin-l.Line))
		case models.LineTypeTotal:
			totalEdge = math.Max(totalEdge, math.Abs(total-l.Line))
		}
	}

	primary := math.Max(spreadEdge, totalEdge)
	confidence := math.Min(math.Max(primary*10+50, 0), 99)

	rec := RecommendPass
	if primary > betThreshold {
		rec = RecommendBet
	}

	return MatchupAnalysis{
		ID:              home.TeamName + "-" + away.TeamName,
		Home:            home,
		Away:            away,
		MarketLines:     lines,
		WinProbability:  WinProbability(margin),
		Spread:          -margin,
		Total:           total,
		Edge:            models.RoundTo(primary*2, 2),
		Recommendation:  rec,
		ConfidenceScore: int(models.RoundHalfUp(confidence)),
	}
}

// WinProbability maps a predicted margin to a bounded win probability
func WinProbability(margin float64) float64 {
	p := 0.5 + winProbSlope*margin
	return math.Max(minWinProb, math.Min(maxWinProb, p))
}

// OddsToProbability converts American odds to implied probability
func OddsToProbability(odds float64) float64 {
	if odds > 0 {
		return 100 / (odds + 100)
	}
	a := math.Abs(odds)
	return a / (a + 100)
}
