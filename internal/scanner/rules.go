package scanner

import (
	"math"

	"github.com/yourusername/godbot/internal/models"
	"github.com/yourusername/godbot/internal/prediction"
)

// Adjustments are the injury and fatigue corrections for one matchup
type Adjustments struct {
	HomeStars      []string
	AwayStars      []string
	HomeBackToBack bool
	AwayBackToBack bool
	HomePenalty    float64
	AwayPenalty    float64
	TotalPenalty   float64
}

// Decision is a would-be pick before it is attached to a matchup
type Decision struct {
	Type models.PickType
	Side models.PickSide
	Line float64
	Odds float64
	Edge float64
}

// Adjust computes the penalties for a matchup from the injury reports
func (c Config) Adjust(home, away *models.TeamStats, reports []models.InjuryReport) Adjustments {
	stars := make(map[string]struct{}, len(c.StarPlayers))
	for _, name := range c.StarPlayers {
		stars[name] = struct{}{}
	}

	adj := Adjustments{
		HomeStars:      injuredStars(home.TeamName, reports, stars),
		AwayStars:      injuredStars(away.TeamName, reports, stars),
		HomeBackToBack: home.OnBackToBack(),
		AwayBackToBack: away.OnBackToBack(),
	}

	adj.HomePenalty = float64(len(adj.HomeStars)) * c.StarPenalty
	adj.AwayPenalty = float64(len(adj.AwayStars)) * c.StarPenalty
	adj.TotalPenalty = float64(len(adj.HomeStars)+len(adj.AwayStars)) * c.TotalStarPenalty

	if adj.HomeBackToBack {
		adj.HomePenalty += c.BackToBackPenalty
		adj.TotalPenalty += c.TotalFatiguePenalty
	}
	if adj.AwayBackToBack {
		adj.AwayPenalty += c.BackToBackPenalty
		adj.TotalPenalty += c.TotalFatiguePenalty
	}
	return adj
}

func injuredStars(team string, reports []models.InjuryReport, stars map[string]struct{}) []string {
	var out []string
	for _, r := range reports {
		if r.Team != team || !r.Unavailable() {
			continue
		}
		if _, ok := stars[r.Player]; ok {
			out = append(out, r.Player)
		}
	}
	return out
}

// AdjustedMargin applies the penalties to a raw home margin
func (a Adjustments) AdjustedMargin(raw float64) float64 {
	return raw - a.HomePenalty + a.AwayPenalty
}

// SpreadDecision compares the adjusted home margin against the first market
// home spread. The side is whichever team the model likes more than the market.
func (c Config) SpreadDecision(margin float64, lines []models.BettingLine) (Decision, bool) {
	market, ok := models.FindLine(lines, models.LineTypeSpread)
	if !ok {
		return Decision{}, false
	}

	modelSpread := -margin
	diff := math.Abs(modelSpread - market.Line)
	if diff <= c.SpreadThreshold {
		return Decision{}, false
	}

	d := Decision{
		Type: models.PickTypeSpread,
		Side: models.PickSideHome,
		Line: market.Line,
		Odds: StandardOdds,
		Edge: models.RoundTo(diff*2, 1),
	}
	if modelSpread >= market.Line {
		d.Side = models.PickSideAway
		d.Line = -market.Line
	}
	return d, true
}

// TotalDecision compares the adjusted total against the first market total
func (c Config) TotalDecision(total float64, lines []models.BettingLine) (Decision, bool) {
	market, ok := models.FindLine(lines, models.LineTypeTotal)
	if !ok {
		return Decision{}, false
	}

	diff := math.Abs(total - market.Line)
	if diff <= c.TotalThreshold {
		return Decision{}, false
	}

	side := models.PickSideUnder
	if total > market.Line {
		side = models.PickSideOver
	}
	return Decision{
		Type: models.PickTypeTotal,
		Side: side,
		Line: market.Line,
		Odds: StandardOdds,
		Edge: models.RoundTo(diff*2, 1),
	}, true
}

// MoneylineDecision backs the underdog when its model win probability beats
// the implied probability by the configured gap. The home side is checked
// first.
func (c Config) MoneylineDecision(margin float64, lines []models.BettingLine) (Decision, bool) {
	home, okHome := models.FindLine(lines, models.LineTypeMoneylineHome)
	away, okAway := models.FindLine(lines, models.LineTypeMoneylineAway)
	if !okHome || !okAway {
		return Decision{}, false
	}

	var (
		side    models.PickSide
		dogOdds float64
		dogProb float64
	)
	switch {
	case home.Odds > 100:
		side, dogOdds, dogProb = models.PickSideHome, home.Odds, prediction.WinProbability(margin)
	case away.Odds > 100:
		side, dogOdds, dogProb = models.PickSideAway, away.Odds, prediction.WinProbability(-margin)
	default:
		return Decision{}, false
	}

	probEdge := dogProb - prediction.OddsToProbability(dogOdds)
	if probEdge <= c.MoneylineProbEdge || dogProb < c.MoneylineMinProb {
		return Decision{}, false
	}

	return Decision{
		Type: models.PickTypeMoneyline,
		Side: side,
		Odds: dogOdds,
		Edge: models.RoundTo(probEdge*100, 1),
	}, true
}
