package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TradeStatus represents the lifecycle state of a paper trade
type TradeStatus string

const (
	TradeStatusOpen TradeStatus = "OPEN"
	TradeStatusWon  TradeStatus = "WON"
	TradeStatusLost TradeStatus = "LOST"
)

// DefaultTradeStake is the paper amount put on every signal
const DefaultTradeStake = 50.0

// Trade is a paper position on a prediction-market outcome. Nothing is
// ever sent to an exchange; the ledger only records and settles signals.
type Trade struct {
	ID          string      `db:"id" json:"id" validate:"required"`
	GameID      string      `db:"game_id" json:"game_id" validate:"required"`
	Team        string      `db:"team" json:"team" validate:"required"`
	ConditionID string      `db:"condition_id" json:"condition_id" validate:"required"`
	Outcome     string      `db:"outcome" json:"outcome"`
	Action      string      `db:"action" json:"action" validate:"required"`
	EntryPrice  float64     `db:"entry_price" json:"entry_price" validate:"gte=0,lte=1"`
	VegasPrice  float64     `db:"vegas_price" json:"vegas_price"`
	Amount      float64     `db:"amount" json:"amount" validate:"gt=0"`
	Status      TradeStatus `db:"status" json:"status" validate:"required,oneof=OPEN WON LOST"`
	PnL         float64     `db:"pnl" json:"pnl"`
	CreatedAt   time.Time   `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time   `db:"updated_at" json:"updated_at"`
}

// TradeID keys a trade by the signal it came from, so a signal seen on
// every run is recorded once
func TradeID(signalID, team string) string {
	return signalID + "_" + team
}

// SettledPnL returns the profit of a resolved trade. A won YES position pays
// one unit per contract, so it returns amount/entry - amount; a zero entry
// price counts as 1. A lost trade forfeits the stake. Open trades earn 0.
func (t *Trade) SettledPnL(status TradeStatus) float64 {
	amount := decimal.NewFromFloat(t.Amount)
	switch status {
	case TradeStatusWon:
		entry := decimal.NewFromFloat(t.EntryPrice)
		if !entry.IsPositive() {
			entry = decimal.NewFromInt(1)
		}
		pnl, _ := amount.Div(entry).Sub(amount).Round(2).Float64()
		return pnl
	case TradeStatusLost:
		pnl, _ := amount.Neg().Float64()
		return pnl
	}
	return 0
}

// TradeStats summarizes the ledger. WinRate covers closed trades only.
type TradeStats struct {
	Total   int     `json:"total"`
	Open    int     `json:"open"`
	Won     int     `json:"won"`
	Lost    int     `json:"lost"`
	Profit  float64 `json:"profit"`
	WinRate float64 `json:"win_rate"`
}

// SummarizeTrades aggregates a slice of trades
func SummarizeTrades(trades []*Trade) TradeStats {
	var (
		s      TradeStats
		profit decimal.Decimal
	)
	for _, t := range trades {
		s.Total++
		profit = profit.Add(decimal.NewFromFloat(t.PnL))
		switch t.Status {
		case TradeStatusOpen:
			s.Open++
		case TradeStatusWon:
			s.Won++
		case TradeStatusLost:
			s.Lost++
		}
	}
	s.Profit, _ = profit.Round(2).Float64()
	if closed := s.Won + s.Lost; closed > 0 {
		s.WinRate = RoundTo(float64(s.Won)/float64(closed)*100, 1)
	}
	return s
}
