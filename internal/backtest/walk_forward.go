package backtest

import (
	"math"
	"sort"
	"time"

	"github.com/yourusername/godbot/internal/models"
	"github.com/yourusername/godbot/internal/prediction"
	"github.com/yourusername/godbot/internal/stats"
)

// Walk-forward parameters
const (
	WarmupDates        = 10
	MinHistoryGames    = 20
	SpreadAccuracyBand = 5.0
	TotalAccuracyBand  = 8.0
	ConfidentMargin    = 3.0
)

// WalkForwardResult scores how well a profile predicts games it has not
// seen. Score is maximized: negative absolute error for spread and total,
// units won for moneyline.
type WalkForwardResult struct {
	Mode    models.PickType `json:"mode"`
	Score   float64         `json:"score"`
	Wins    int             `json:"wins"`
	Losses  int             `json:"losses"`
	WinRate float64         `json:"win_rate"`
	Dates   int             `json:"dates"`
	Games   int             `json:"games"`
}

// WalkForward steps through the finished games date by date. Each date is
// predicted from stats built only on strictly earlier games, with rest
// measured from that date. The first WarmupDates dates only build history.
func WalkForward(games []models.Game, w prediction.Weights, mode models.PickType) WalkForwardResult {
	finished := finishedGames(games)
	result := WalkForwardResult{Mode: mode}

	days := distinctDays(finished)
	if len(days) <= WarmupDates {
		return result
	}

	for _, day := range days[WarmupDates:] {
		cut := sort.Search(len(finished), func(i int) bool {
			return !finished[i].Date.Before(day)
		})
		if cut < MinHistoryGames {
			continue
		}
		snapshot := stats.Aggregate(finished[:cut], day)
		result.Dates++

		next := day.AddDate(0, 0, 1)
		for i := cut; i < len(finished) && finished[i].Date.Before(next); i++ {
			g := &finished[i]
			home, okHome := snapshot[g.Home.Name]
			away, okAway := snapshot[g.Away.Name]
			if !okHome || !okAway {
				continue
			}
			result.Games++
			scoreGame(&result, g, w, home, away, mode)
		}
	}

	if decided := result.Wins + result.Losses; decided > 0 {
		result.WinRate = float64(result.Wins) / float64(decided) * 100
	}
	result.Score = models.RoundTo(result.Score, 2)
	return result
}

func scoreGame(result *WalkForwardResult, g *models.Game, w prediction.Weights, home, away *models.TeamStats, mode models.PickType) {
	diff := float64(g.Diff())
	switch mode {
	case models.PickTypeSpread:
		errAbs := math.Abs(w.PredictSpread(home, away) - diff)
		result.tally(errAbs < SpreadAccuracyBand)
		result.Score -= errAbs
	case models.PickTypeTotal:
		errAbs := math.Abs(w.PredictTotal(home, away) - float64(g.Total()))
		result.tally(errAbs < TotalAccuracyBand)
		result.Score -= errAbs
	case models.PickTypeMoneyline:
		margin := w.PredictSpread(home, away)
		if math.Abs(margin) <= ConfidentMargin {
			return
		}
		correct := (margin > 0) == (diff > 0)
		result.tally(correct)
		if correct {
			result.Score++
		} else {
			result.Score--
		}
	}
}

func (r *WalkForwardResult) tally(win bool) {
	if win {
		r.Wins++
	} else {
		r.Losses++
	}
}

// finishedGames returns the scored games sorted by date
func finishedGames(games []models.Game) []models.Game {
	out := make([]models.Game, 0, len(games))
	for _, g := range games {
		if g.HasScores() {
			out = append(out, g)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})
	return out
}

func distinctDays(sorted []models.Game) []time.Time {
	var days []time.Time
	for _, g := range sorted {
		day := truncateDay(g.Date)
		if len(days) == 0 || !days[len(days)-1].Equal(day) {
			days = append(days, day)
		}
	}
	return days
}
