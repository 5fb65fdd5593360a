package backtest

import (
	"math"

	"github.com/yourusername/godbot/internal/models"
	"github.com/yourusername/godbot/internal/prediction"
	"github.com/yourusername/godbot/internal/stats"
)

// Rest study parameters
const (
	RestStudyStartIndex = 100
	BackToBackDays      = 1.4
	RestPenalty         = 3.0
	defaultRestDays     = 3.0
)

// RestStudyResult compares the base model against a rest-aware variant
type RestStudyResult struct {
	N              int     `json:"n"`
	BaseRMSE       float64 `json:"base_rmse"`
	RestRMSE       float64 `json:"rest_rmse"`
	ImprovementPct float64 `json:"improvement_pct"`
}

// RestAwareBetter reports whether the rest-aware variant had the lower error
func (r RestStudyResult) RestAwareBetter() bool {
	return r.N > 0 && r.RestRMSE < r.BaseRMSE
}

// RestStudy predicts every finished game from RestStudyStartIndex onwards
// using stats from all earlier games, and measures the margin RMSE with and
// without a back-to-back penalty.
func RestStudy(games []models.Game, w prediction.Weights) RestStudyResult {
	finished := finishedGames(games)

	var baseSq, restSq float64
	n := 0
	for i := RestStudyStartIndex; i < len(finished); i++ {
		g := &finished[i]
		snapshot := stats.Aggregate(finished[:i], g.Date)
		home, okHome := snapshot[g.Home.Name]
		away, okAway := snapshot[g.Away.Name]
		if !okHome || !okAway {
			continue
		}

		actual := float64(g.Diff())
		base := w.PredictSpread(home, away)
		rest := base
		if onBackToBack(home, g) {
			rest -= RestPenalty
		}
		if onBackToBack(away, g) {
			rest += RestPenalty
		}

		baseSq += (actual - base) * (actual - base)
		restSq += (actual - rest) * (actual - rest)
		n++
	}

	result := RestStudyResult{N: n}
	if n == 0 {
		return result
	}
	result.BaseRMSE = math.Sqrt(baseSq / float64(n))
	result.RestRMSE = math.Sqrt(restSq / float64(n))
	if result.BaseRMSE > 0 {
		result.ImprovementPct = (result.BaseRMSE - result.RestRMSE) / result.BaseRMSE * 100
	}
	return result
}

func onBackToBack(s *models.TeamStats, g *models.Game) bool {
	days := defaultRestDays
	if !s.LastGameDate.IsZero() {
		days = math.Abs(g.Date.Sub(s.LastGameDate).Hours()) / 24
	}
	return days < BackToBackDays
}
