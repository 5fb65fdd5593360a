package settlement

import (
	"fmt"

	"github.com/yourusername/godbot/internal/models"
)

// Grade scores a pick against a final result. Only the structured Side and
// Line fields are read.
func Grade(p *models.Pick, homeScore, awayScore int) models.PickGrade {
	diff := float64(homeScore - awayScore)
	status := models.PickStatusLoss

	switch p.Type {
	case models.PickTypeSpread:
		cover := diff
		if p.Side == models.PickSideAway {
			cover = -diff
		}
		status = compare(cover + p.Line)
	case models.PickTypeTotal:
		over := float64(homeScore+awayScore) - p.Line
		if p.Side == models.PickSideUnder {
			over = -over
		}
		status = compare(over)
	case models.PickTypeMoneyline:
		won := homeScore > awayScore
		if p.Side == models.PickSideAway {
			won = awayScore > homeScore
		}
		if won {
			status = models.PickStatusWin
		}
	}

	return models.PickGrade{
		Status:      status,
		Profit:      Profit(status, p.Odds),
		ResultScore: fmt.Sprintf("%d-%d", awayScore, homeScore),
	}
}

func compare(margin float64) models.PickStatus {
	switch {
	case margin > 0:
		return models.PickStatusWin
	case margin == 0:
		return models.PickStatusPush
	default:
		return models.PickStatusLoss
	}
}

// Profit returns the unit profit for a one-unit stake at American odds,
// rounded to cents
func Profit(status models.PickStatus, odds float64) float64 {
	switch status {
	case models.PickStatusWin:
		if odds > 0 {
			return models.RoundTo(odds/100, 2)
		}
		return models.RoundTo(100/-odds, 2)
	case models.PickStatusPush:
		return 0
	default:
		return -1
	}
}
