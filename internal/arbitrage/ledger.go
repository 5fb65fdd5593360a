package arbitrage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/godbot/internal/datasource"
	"github.com/yourusername/godbot/internal/logger"
	"github.com/yourusername/godbot/internal/metrics"
	"github.com/yourusername/godbot/internal/models"
	"github.com/yourusername/godbot/internal/repository"
)

// Resolved outcome prices sit at 0 or 1; anything between is still trading.
const (
	resolvedWin  = 0.99
	resolvedLoss = 0.01
)

// SettleResult counts what one ledger settlement pass did
type SettleResult struct {
	Open       int `json:"open"`
	Won        int `json:"won"`
	Lost       int `json:"lost"`
	Unresolved int `json:"unresolved"`
	// Skipped trades were closed by another run first
	Skipped int `json:"skipped"`
}

// Ledger records value signals as paper trades and settles them from
// market resolution. It never places orders.
type Ledger struct {
	trades      repository.TradeRepository
	resolutions datasource.MarketResolutionSource
	stake       float64
	now         func() time.Time
	logger      logrus.FieldLogger
}

// NewLedger creates a ledger staking models.DefaultTradeStake per signal
func NewLedger(trades repository.TradeRepository, resolutions datasource.MarketResolutionSource, log logrus.FieldLogger) *Ledger {
	return &Ledger{
		trades:      trades,
		resolutions: resolutions,
		stake:       models.DefaultTradeStake,
		now:         time.Now,
		logger:      logger.OrDiscard(log).WithField("component", "ledger"),
	}
}

// WithClock overrides the clock stamped on new trades
func (l *Ledger) WithClock(now func() time.Time) *Ledger {
	l.now = now
	return l
}

// Record opens a trade for every BUY_SIGNAL report. A signal already in the
// ledger is left as it is. Persistence failures are returned after the
// remaining reports are tried.
func (l *Ledger) Record(ctx context.Context, reports []Report) (int, error) {
	var (
		logged int
		errs   []error
	)
	for _, r := range reports {
		if r.Trade.Action != ActionBuySignal || r.Market == nil {
			continue
		}
		trade := l.newTrade(r)
		if err := trade.Validate(); err != nil {
			l.logger.WithError(err).WithField("trade_id", trade.ID).Warn("Skipping invalid trade")
			continue
		}

		created, err := l.trades.Create(ctx, trade)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if !created {
			continue
		}
		logged++
		metrics.RecordTradeLogged()
		l.logger.WithFields(logrus.Fields{
			"trade_id": trade.ID,
			"team":     trade.Team,
			"entry":    trade.EntryPrice,
			"amount":   trade.Amount,
		}).Info("Trade logged")
	}
	return logged, errors.Join(errs...)
}

func (l *Ledger) newTrade(r Report) *models.Trade {
	now := l.now().UTC()
	outcome := r.Market.TeamOutcome
	if outcome == "" {
		outcome = r.Trade.Ticker
	}
	return &models.Trade{
		ID:          models.TradeID(r.Trade.ID, r.Trade.Ticker),
		GameID:      r.Event.ID,
		Team:        r.Trade.Ticker,
		ConditionID: r.Market.ConditionID,
		Outcome:     outcome,
		Action:      string(r.Trade.Action),
		EntryPrice:  r.Trade.MarketPrice,
		VegasPrice:  r.Trade.VegasPrice,
		Amount:      l.stake,
		Status:      models.TradeStatusOpen,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Settle closes open trades whose market has resolved. Lookup failures
// leave the trade open for a later run.
func (l *Ledger) Settle(ctx context.Context) (*SettleResult, error) {
	open, err := l.trades.FindAll(ctx, models.TradeStatusOpen)
	if err != nil {
		return nil, err
	}

	result := &SettleResult{Open: len(open)}
	var errs []error
	for _, trade := range open {
		status, ok := l.resolve(ctx, trade)
		if !ok {
			result.Unresolved++
			continue
		}

		pnl := trade.SettledPnL(status)
		err := l.trades.Settle(ctx, trade.ID, status, pnl)
		switch {
		case errors.Is(err, models.ErrNotFound):
			result.Skipped++
			l.logger.WithField("trade_id", trade.ID).Debug("Trade already settled")
			continue
		case err != nil:
			errs = append(errs, err)
			continue
		}

		if status == models.TradeStatusWon {
			result.Won++
		} else {
			result.Lost++
		}
		metrics.RecordTradeSettled(string(status))
		l.logger.WithFields(logrus.Fields{
			"trade_id": trade.ID,
			"status":   status,
			"pnl":      pnl,
		}).Info("Trade settled")
	}

	l.logger.WithFields(logrus.Fields{
		"open":       result.Open,
		"won":        result.Won,
		"lost":       result.Lost,
		"unresolved": result.Unresolved,
	}).Info("Ledger settlement completed")
	return result, errors.Join(errs...)
}

func (l *Ledger) resolve(ctx context.Context, trade *models.Trade) (models.TradeStatus, bool) {
	entry := l.logger.WithField("trade_id", trade.ID)

	res, err := l.resolutions.MarketResolution(ctx, trade.ConditionID)
	if err != nil {
		if errors.Is(err, datasource.ErrNoMarket) {
			entry.Debug("Market not found")
		} else {
			entry.WithError(err).Warn("Market lookup failed")
		}
		return "", false
	}
	if !res.Closed {
		return "", false
	}

	price, ok := res.OutcomePrice(trade.Outcome)
	switch {
	case !ok:
		entry.WithField("outcome", trade.Outcome).Warn("Outcome missing from resolved market")
		return "", false
	case price >= resolvedWin:
		return models.TradeStatusWon, true
	case price <= resolvedLoss:
		return models.TradeStatusLost, true
	}
	return "", false
}

// Stats summarizes every trade in the ledger
func (l *Ledger) Stats(ctx context.Context) (models.TradeStats, error) {
	trades, err := l.trades.FindAll(ctx)
	if err != nil {
		return models.TradeStats{}, fmt.Errorf("load trades: %w", err)
	}
	return models.SummarizeTrades(trades), nil
}
