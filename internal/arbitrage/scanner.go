// Package arbitrage compares sportsbook odds with prediction-market prices.
// It does not use the prediction model and never places orders.
package arbitrage

import (
	"math"

	"github.com/yourusername/godbot/internal/models"
	"github.com/yourusername/godbot/internal/prediction"
)

// MinEdge is the probability gap needed before a quote is flagged
const MinEdge = 0.05

// Recommendation is the scanner's signal for a market
type Recommendation string

const (
	RecommendBuy  Recommendation = "BUY"
	RecommendSell Recommendation = "SELL"
	RecommendHold Recommendation = "HOLD"
)

// Opportunity is a comparison of one sportsbook line with one market price
type Opportunity struct {
	ID              string         `json:"id"`
	Matchup         string         `json:"matchup"`
	MarketProb      float64        `json:"market_prob"`
	PolyPrice       float64        `json:"poly_price"`
	EdgeRaw         float64        `json:"edge_raw"`
	EdgePercent     float64        `json:"edge_percent"`
	Recommendation  Recommendation `json:"recommendation"`
	Confidence      float64        `json:"confidence"`
	PotentialProfit float64        `json:"potential_profit"`
}

// Scan compares a sportsbook line, read as implied probability, with a
// prediction-market price in [0, 1]. ROI is the gap relative to the market
// price, so PotentialProfit is the expected profit on a 100 unit stake.
func Scan(matchupID, homeTeam string, line models.BettingLine, polyPrice float64) Opportunity {
	prob := prediction.OddsToProbability(line.Odds)
	gap := prob - polyPrice

	rec := RecommendHold
	switch {
	case gap > MinEdge:
		rec = RecommendBuy
	case gap < -MinEdge:
		rec = RecommendSell
	}

	roi := 0.0
	if polyPrice > 0 {
		roi = gap / polyPrice
	}
	pct := models.RoundTo(roi*100, 2)

	return Opportunity{
		ID:              "arb_" + matchupID,
		Matchup:         homeTeam,
		MarketProb:      prob,
		PolyPrice:       polyPrice,
		EdgeRaw:         gap,
		EdgePercent:     pct,
		Recommendation:  rec,
		Confidence:      math.Min(math.Abs(gap)*200, 99),
		PotentialProfit: pct,
	}
}
