package models

import "time"

// Market keys used by the odds provider
const (
	MarketKeySpreads = "spreads"
	MarketKeyTotals  = "totals"
	MarketKeyH2H     = "h2h"
)

// OutcomeOver names the over side of a totals market
const OutcomeOver = "Over"

// OddsEvent is one upcoming game with every bookmaker's quoted markets
type OddsEvent struct {
	ID           string      `json:"id"`
	SportKey     string      `json:"sport_key"`
	CommenceTime time.Time   `json:"commence_time"`
	HomeTeam     string      `json:"home_team"`
	AwayTeam     string      `json:"away_team"`
	Bookmakers   []Bookmaker `json:"bookmakers"`
}

// Bookmaker groups the markets quoted by a single book
type Bookmaker struct {
	Key     string       `json:"key"`
	Title   string       `json:"title"`
	Markets []OddsMarket `json:"markets"`
}

// OddsMarket is a single market (spreads, totals, h2h) with its outcomes
type OddsMarket struct {
	Key      string    `json:"key"`
	Outcomes []Outcome `json:"outcomes"`
}

// Outcome is one priced selection. Point is absent for h2h markets.
type Outcome struct {
	Name  string   `json:"name"`
	Price float64  `json:"price"`
	Point *float64 `json:"point"`
}

// LineType tags what a BettingLine quotes
type LineType string

const (
	LineTypeSpread        LineType = "spread"
	LineTypeTotal         LineType = "total"
	LineTypeMoneylineHome LineType = "moneyline_home"
	LineTypeMoneylineAway LineType = "moneyline_away"
)

// BettingLine is a normalized market quote. Line is 0 for moneylines.
type BettingLine struct {
	Source string   `json:"source"`
	Line   float64  `json:"line"`
	Odds   float64  `json:"odds"`
	Type   LineType `json:"type"`
}

// FindLine returns the first line of the given type
func FindLine(lines []BettingLine, lineType LineType) (BettingLine, bool) {
	for _, l := range lines {
		if l.Type == lineType {
			return l, true
		}
	}
	return BettingLine{}, false
}
