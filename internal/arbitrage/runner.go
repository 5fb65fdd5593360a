package arbitrage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/godbot/internal/datasource"
	"github.com/yourusername/godbot/internal/logger"
	"github.com/yourusername/godbot/internal/models"
	"github.com/yourusername/godbot/internal/scanner"
)

// Report pairs the scanner and value-strategy views of one home team
type Report struct {
	Event       models.OddsEvent       `json:"event"`
	Market      *datasource.TeamMarket `json:"market"`
	Opportunity Opportunity            `json:"opportunity"`
	Trade       TradeOpportunity       `json:"trade"`
}

// Runner compares every upcoming home moneyline with its market price
type Runner struct {
	odds     datasource.OddsSource
	markets  datasource.MarketPriceSource
	strategy *ValueStrategy
	ledger   *Ledger
	now      func() time.Time
	logger   logrus.FieldLogger
}

// NewRunner creates an arbitrage runner
func NewRunner(odds datasource.OddsSource, markets datasource.MarketPriceSource, log logrus.FieldLogger) *Runner {
	return &Runner{
		odds:     odds,
		markets:  markets,
		strategy: NewValueStrategy(),
		now:      time.Now,
		logger:   logger.OrDiscard(log).WithField("component", "arbitrage"),
	}
}

// WithClock overrides the clock used to skip started games
func (r *Runner) WithClock(now func() time.Time) *Runner {
	r.now = now
	return r
}

// WithLedger records every BUY_SIGNAL as a paper trade
func (r *Runner) WithLedger(l *Ledger) *Runner {
	r.ledger = l
	return r
}

// Run fetches quotes once and evaluates each upcoming event's first home
// moneyline. Teams without a matching market are skipped.
func (r *Runner) Run(ctx context.Context, sport, region string) ([]Report, error) {
	events, err := r.odds.GetOdds(ctx, sport, region)
	if err != nil {
		return nil, fmt.Errorf("fetch odds: %w: %w", models.ErrUpstreamUnavailable, err)
	}
	if len(events) == 0 {
		return nil, fmt.Errorf("no odds events: %w", models.ErrUpstreamUnavailable)
	}

	now := r.now()
	var reports []Report
	for _, event := range events {
		if !event.CommenceTime.After(now) {
			continue
		}
		line, ok := models.FindLine(scanner.ExtractLines(event), models.LineTypeMoneylineHome)
		if !ok {
			continue
		}

		market, err := r.markets.FindTeamPrice(ctx, event.HomeTeam)
		if err != nil {
			entry := r.logger.WithError(err).WithField("team", event.HomeTeam)
			if errors.Is(err, datasource.ErrNoMarket) {
				entry.Debug("No prediction market for team")
			} else {
				entry.Warn("Prediction market lookup failed")
			}
			continue
		}

		reports = append(reports, Report{
			Event:       event,
			Market:      market,
			Opportunity: Scan(event.ID, event.HomeTeam, line, market.TeamPrice),
			Trade:       r.strategy.Evaluate(event.ID, event.HomeTeam, market.TeamPrice, line.Odds),
		})
	}

	r.logger.WithFields(logrus.Fields{
		"events":  len(events),
		"reports": len(reports),
	}).Info("Arbitrage scan completed")

	if r.ledger == nil {
		return reports, nil
	}
	logged, err := r.ledger.Record(ctx, reports)
	r.logger.WithField("logged", logged).Debug("Ledger updated")
	return reports, err
}
