package arbitrage

import (
	"fmt"
	"math"

	"github.com/yourusername/godbot/internal/prediction"
)

// TradeAction is the value strategy's entry signal
type TradeAction string

const (
	ActionBuySignal TradeAction = "BUY_SIGNAL"
	ActionWait      TradeAction = "WAIT"
)

// TradeOpportunity is a suggested limit entry on a prediction market
type TradeOpportunity struct {
	ID          string      `json:"id"`
	Ticker      string      `json:"ticker"`
	MarketPrice float64     `json:"market_price"`
	VegasPrice  float64     `json:"vegas_price"`
	Discrepancy float64     `json:"discrepancy"`
	Action      TradeAction `json:"action"`
	TargetEntry float64     `json:"target_entry"`
	Reason      string      `json:"reason"`
}

// ValueStrategy buys teams the crowd prices below the sportsbook
type ValueStrategy struct {
	MinDiscrepancy float64
}

// NewValueStrategy creates a strategy with the default 5% threshold
func NewValueStrategy() *ValueStrategy {
	return &ValueStrategy{MinDiscrepancy: MinEdge}
}

// Evaluate compares a market price with American sportsbook odds for a team
func (s *ValueStrategy) Evaluate(gameID, team string, polyPrice, vegasOdds float64) TradeOpportunity {
	vegas := prediction.OddsToProbability(vegasOdds)
	gap := vegas - polyPrice

	opp := TradeOpportunity{
		ID:          "opp_" + gameID,
		Ticker:      team,
		MarketPrice: polyPrice,
		VegasPrice:  vegas,
		Discrepancy: gap,
		Action:      ActionWait,
		TargetEntry: polyPrice,
		Reason:      fmt.Sprintf("Market efficient. Diff: %.1f%%", gap*100),
	}

	switch {
	case gap > s.MinDiscrepancy:
		opp.Action = ActionBuySignal
		opp.Reason = fmt.Sprintf("Undervalued by %.1f%% vs Vegas", gap*100)
	case gap < -s.MinDiscrepancy:
		opp.Reason = fmt.Sprintf("Overvalued by %.1f%% vs Vegas", math.Abs(gap*100))
	}
	return opp
}
