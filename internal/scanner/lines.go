package scanner

import (
	"github.com/yourusername/godbot/internal/models"
)

// ExtractLines normalizes every bookmaker quote of an event into betting
// lines, in bookmaker order. Outcomes missing a required point are skipped.
func ExtractLines(event models.OddsEvent) []models.BettingLine {
	var lines []models.BettingLine
	for _, book := range event.Bookmakers {
		for _, market := range book.Markets {
			for _, o := range market.Outcomes {
				line, ok := toLine(market.Key, o, event, book.Title)
				if ok {
					lines = append(lines, line)
				}
			}
		}
	}
	return lines
}

func toLine(marketKey string, o models.Outcome, event models.OddsEvent, source string) (models.BettingLine, bool) {
	switch marketKey {
	case models.MarketKeySpreads:
		if o.Name != event.HomeTeam || o.Point == nil {
			return models.BettingLine{}, false
		}
		return models.BettingLine{Source: source, Line: *o.Point, Odds: o.Price, Type: models.LineTypeSpread}, true
	case models.MarketKeyTotals:
		if o.Name != models.OutcomeOver || o.Point == nil {
			return models.BettingLine{}, false
		}
		return models.BettingLine{Source: source, Line: *o.Point, Odds: o.Price, Type: models.LineTypeTotal}, true
	case models.MarketKeyH2H:
		switch o.Name {
		case event.HomeTeam:
			return models.BettingLine{Source: source, Odds: o.Price, Type: models.LineTypeMoneylineHome}, true
		case event.AwayTeam:
			return models.BettingLine{Source: source, Odds: o.Price, Type: models.LineTypeMoneylineAway}, true
		}
	}
	return models.BettingLine{}, false
}
