// Package backtest replays finished games against synthetic market lines to
// estimate how a weighting profile would have performed.
package backtest

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/godbot/internal/datasource"
	"github.com/yourusername/godbot/internal/logger"
	"github.com/yourusername/godbot/internal/metrics"
	"github.com/yourusername/godbot/internal/models"
	"github.com/yourusername/godbot/internal/prediction"
)

// Thresholds and payouts of the simulated markets
const (
	SpreadEdgeThreshold = 4.5
	TotalEdgeThreshold  = 5.0
	MoneylineProbEdge   = 0.08
	MoneylineMinProb    = 0.40
	StandardPayout      = 0.91

	spreadEdgeScale = 2.5
	totalEdgeScale  = 2.0
	minDogOdds      = 110
	dogOddsPerPoint = 22
	dogSpreadCutoff = 1.5
)

// BetRecord is one simulated bet
type BetRecord struct {
	Date    time.Time         `json:"date"`
	Matchup string            `json:"matchup"`
	Side    models.PickSide   `json:"side"`
	Pick    string            `json:"pick"`
	Result  models.PickStatus `json:"result"`
	PnL     float64           `json:"pnl"`
	Edge    float64           `json:"edge"`
}

// Result aggregates one simulation run
type Result struct {
	Profile    string          `json:"profile"`
	Mode       models.PickType `json:"mode"`
	Start      time.Time       `json:"start"`
	Days       int             `json:"days"`
	TotalGames int             `json:"total_games"`
	BetsPlaced int             `json:"bets_placed"`
	Wins       int             `json:"wins"`
	Losses     int             `json:"losses"`
	Pushes     int             `json:"pushes"`
	WinRate    float64         `json:"win_rate"`
	ROI        float64         `json:"roi"`
	Profit     float64         `json:"profit"`
	History    []BetRecord     `json:"history"`
}

// Engine orchestrates backtesting runs
type Engine struct {
	games  datasource.GameSource
	logger logrus.FieldLogger
}

// NewEngine creates a new backtesting engine
func NewEngine(games datasource.GameSource, log logrus.FieldLogger) (*Engine, error) {
	if games == nil {
		return nil, fmt.Errorf("game source is required")
	}
	return &Engine{
		games:  games,
		logger: logger.OrDiscard(log).WithField("component", "backtest"),
	}, nil
}

// Run replays cfg.Days days ending at cfg.Start. All noise is drawn from
// rng, so a seeded generator reproduces a run exactly. A day whose fetch
// fails is logged and skipped; a window with no finished games at all is
// reported as upstream unavailable.
func (e *Engine) Run(ctx context.Context, w prediction.Weights, cfg Config, rng *rand.Rand) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, fmt.Errorf("random source is required")
	}

	e.logger.WithFields(logrus.Fields{
		"profile": w.Name,
		"mode":    cfg.Mode,
		"start":   cfg.Start.Format(dateLayout),
		"days":    cfg.Days,
	}).Info("Starting backtest run")

	result := &Result{Profile: w.Name, Mode: cfg.Mode, Start: cfg.Start, Days: cfg.Days}
	var lastErr error

	for i := 0; i < cfg.Days; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		day := cfg.Start.AddDate(0, 0, -i)
		games, err := e.games.GetGamesByDate(ctx, day)
		if err != nil {
			lastErr = err
			e.logger.WithError(err).WithField("date", day.Format(dateLayout)).Warn("Skipping backtest day")
			continue
		}
		for k := range games {
			e.replay(&games[k], day, w, cfg.Mode, rng, result)
		}
	}

	if result.TotalGames == 0 {
		if lastErr != nil {
			return nil, fmt.Errorf("no finished games between %s and %s: %w: %w",
				cfg.Start.AddDate(0, 0, 1-cfg.Days).Format(dateLayout), cfg.Start.Format(dateLayout),
				models.ErrUpstreamUnavailable, lastErr)
		}
		return nil, fmt.Errorf("no finished games between %s and %s: %w",
			cfg.Start.AddDate(0, 0, 1-cfg.Days).Format(dateLayout), cfg.Start.Format(dateLayout),
			models.ErrUpstreamUnavailable)
	}

	result.finalize()
	metrics.RecordBacktestRun(w.Name, string(cfg.Mode), result.ROI)

	e.logger.WithFields(logrus.Fields{
		"profile":  w.Name,
		"mode":     cfg.Mode,
		"games":    result.TotalGames,
		"bets":     result.BetsPlaced,
		"win_rate": result.WinRate,
		"roi":      result.ROI,
	}).Info("Backtest run completed")

	return result, nil
}

func (e *Engine) replay(g *models.Game, day time.Time, w prediction.Weights, mode models.PickType, rng *rand.Rand, result *Result) {
	if !g.HasScores() {
		return
	}
	result.TotalGames++

	home, away := synthesizeStats(g, rng)
	matchup := teamCode(g.Home) + " vs " + teamCode(g.Away)

	var bet *BetRecord
	switch mode {
	case models.PickTypeSpread:
		bet = simulateSpread(g, w.PredictSpread(home, away), rng)
	case models.PickTypeTotal:
		bet = simulateTotal(g, w.PredictTotal(home, away), rng)
	case models.PickTypeMoneyline:
		bet = simulateMoneyline(g, w.PredictSpread(home, away), rng)
	}
	if bet == nil {
		return
	}

	bet.Date = day
	bet.Matchup = matchup
	result.add(*bet)
}

// synthesizeStats builds noisy team snapshots around the actual result.
// Draw order is fixed so seeded runs are reproducible.
func synthesizeStats(g *models.Game, rng *rand.Rand) (*models.TeamStats, *models.TeamStats) {
	homeRest := simulateRest(rng)
	awayRest := simulateRest(rng)
	homeNoise := uniform(rng, -5, 5)
	awayNoise := uniform(rng, -5, 5)

	home := &models.TeamStats{
		TeamName:      g.Home.Name,
		PointsPerGame: float64(*g.HomeScore) + homeNoise,
		PointsAllowed: 110,
		Pace:          98 + uniform(rng, 0, 4),
		Efficiency:    5,
		RecentTrend:   uniform(rng, -5, 5),
		InjuryImpact:  simulateInjury(rng),
		DaysRest:      homeRest,
		AvgMargin:     uniform(rng, -5, 10),
	}
	away := &models.TeamStats{
		TeamName:      g.Away.Name,
		PointsPerGame: float64(*g.AwayScore) + awayNoise,
		PointsAllowed: 112,
		Pace:          98 + uniform(rng, 0, 4),
		Efficiency:    -2,
		RecentTrend:   uniform(rng, -5, 5),
		InjuryImpact:  simulateInjury(rng),
		DaysRest:      awayRest,
		AvgMargin:     uniform(rng, -7, 8),
	}
	return home, away
}

// simulateSpread compares the predicted margin with a market margin near
// the actual one and backs whichever side the model prefers.
func simulateSpread(g *models.Game, margin float64, rng *rand.Rand) *BetRecord {
	diff := float64(g.Diff())
	market := diff*0.9 + uniform(rng, -2, 2)
	edge := math.Abs(margin - market)
	if edge <= SpreadEdgeThreshold {
		return nil
	}

	homeLine := models.RoundHalfPoint(-market)
	bet := &BetRecord{Edge: models.RoundTo(edge*spreadEdgeScale, 1)}
	var cover float64
	if margin > market {
		bet.Side = models.PickSideHome
		bet.Pick = teamCode(g.Home) + " " + signed(homeLine)
		cover = diff - market
	} else {
		bet.Side = models.PickSideAway
		bet.Pick = teamCode(g.Away) + " " + signed(-homeLine)
		cover = market - diff
	}
	settleStandard(bet, cover)
	return bet
}

func simulateTotal(g *models.Game, predicted float64, rng *rand.Rand) *BetRecord {
	actual := float64(g.Total())
	market := actual + uniform(rng, -8, 8)
	edge := math.Abs(predicted - market)
	if edge <= TotalEdgeThreshold {
		return nil
	}

	line := models.RoundHalfUp(market)
	bet := &BetRecord{Edge: models.RoundTo(edge*totalEdgeScale, 1)}
	var cover float64
	if predicted > market {
		bet.Side = models.PickSideOver
		bet.Pick = fmt.Sprintf("O %.0f", line)
		cover = actual - market
	} else {
		bet.Side = models.PickSideUnder
		bet.Pick = fmt.Sprintf("U %.0f", line)
		cover = market - actual
	}
	settleStandard(bet, cover)
	return bet
}

// simulateMoneyline prices the underdog of a synthetic market and backs it
// when the model gives it a meaningfully better chance than its odds imply.
func simulateMoneyline(g *models.Game, margin float64, rng *rand.Rand) *BetRecord {
	diff := g.Diff()
	market := float64(diff)*0.5 + uniform(rng, -15, 15)

	var side models.PickSide
	var dogSpread, modelProb float64
	switch {
	case market > dogSpreadCutoff:
		side = models.PickSideAway
		dogSpread = market
		modelProb = prediction.WinProbability(-margin)
	case market < -dogSpreadCutoff:
		side = models.PickSideHome
		dogSpread = -market
		modelProb = prediction.WinProbability(margin)
	default:
		return nil
	}

	odds := DogOdds(dogSpread)
	probEdge := modelProb - prediction.OddsToProbability(odds)
	if probEdge <= MoneylineProbEdge || modelProb < MoneylineMinProb {
		return nil
	}

	won := (side == models.PickSideHome && diff > 0) || (side == models.PickSideAway && diff < 0)
	bet := &BetRecord{
		Side: side,
		Pick: fmt.Sprintf("%s ML (+%.0f)", side, odds),
		Edge: models.RoundTo(probEdge*100, 1),
	}
	if won {
		bet.Result = models.PickStatusWin
		bet.PnL = models.RoundTo(odds/100, 2)
	} else {
		bet.Result = models.PickStatusLoss
		bet.PnL = -1
	}
	return bet
}

// DogOdds converts an underdog's spread into positive American odds
func DogOdds(dogSpread float64) float64 {
	odds := 100 + models.RoundHalfUp(dogSpread)*dogOddsPerPoint
	if odds < minDogOdds {
		odds = minDogOdds
	}
	return odds
}

func settleStandard(bet *BetRecord, cover float64) {
	switch {
	case cover > 0:
		bet.Result = models.PickStatusWin
		bet.PnL = StandardPayout
	case cover < 0:
		bet.Result = models.PickStatusLoss
		bet.PnL = -1
	default:
		bet.Result = models.PickStatusPush
	}
}

func (r *Result) add(bet BetRecord) {
	r.BetsPlaced++
	switch bet.Result {
	case models.PickStatusWin:
		r.Wins++
	case models.PickStatusLoss:
		r.Losses++
	case models.PickStatusPush:
		r.Pushes++
	}
	r.Profit += bet.PnL
	r.History = append(r.History, bet)
}

func (r *Result) finalize() {
	r.Profit = models.RoundTo(r.Profit, 2)
	if r.BetsPlaced == 0 {
		return
	}
	r.WinRate = float64(r.Wins) / float64(r.BetsPlaced) * 100
	r.ROI = r.Profit / float64(r.BetsPlaced) * 100
}

func simulateRest(rng *rand.Rand) int {
	if rng.Float64() > 0.8 {
		return 0
	}
	if rng.Float64() > 0.5 {
		return 2
	}
	return 1
}

func simulateInjury(rng *rand.Rand) float64 {
	if rng.Float64() > 0.9 {
		return 4.0
	}
	return 0.5
}

func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

func teamCode(t models.Team) string {
	if t.Code != "" {
		return t.Code
	}
	return t.Name
}

func signed(v float64) string {
	switch {
	case v > 0:
		return fmt.Sprintf("+%g", v)
	case v == 0:
		return "0"
	}
	return fmt.Sprintf("%g", v)
}
