// Package settlement grades pending picks once their games are final.
package settlement

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/godbot/internal/datasource"
	"github.com/yourusername/godbot/internal/logger"
	"github.com/yourusername/godbot/internal/metrics"
	"github.com/yourusername/godbot/internal/models"
	"github.com/yourusername/godbot/internal/repository"
)

const dateLayout = "2006-01-02"

// Result summarizes one settlement run
type Result struct {
	Pending      int
	Graded       int
	Wins         int
	Losses       int
	Pushes       int
	Unresolved   int
	DatesSkipped int
	// AlreadyGraded picks were closed by a concurrent run first
	AlreadyGraded int
}

type finalScore struct {
	home, away int
}

// Engine matches pending picks against final scores
type Engine struct {
	games     datasource.GameSource
	picks     repository.PickRepository
	lookahead int
	log       *logger.SettlementLogger
}

// New creates a settlement engine. Each pick date is checked together with
// lookaheadDays following dates, since provider dates drift from tip-off.
func New(games datasource.GameSource, picks repository.PickRepository, lookaheadDays int, log logrus.FieldLogger) *Engine {
	if lookaheadDays < 0 {
		lookaheadDays = 0
	}
	return &Engine{
		games:     games,
		picks:     picks,
		lookahead: lookaheadDays,
		log:       logger.NewSettlementLogger(log),
	}
}

// Run grades every pending pick whose game is final. Picks without a
// resolvable game stay pending for the next run.
func (e *Engine) Run(ctx context.Context) (*Result, error) {
	pending, err := e.picks.FindAll(ctx, models.PickFilter{Statuses: []models.PickStatus{models.PickStatusPending}})
	if err != nil {
		return nil, fmt.Errorf("loading pending picks: %w", err)
	}

	result := &Result{Pending: len(pending)}
	if len(pending) == 0 {
		metrics.UpdatePendingPicks(0)
		return result, nil
	}

	byDate := groupByDate(pending)
	dates := make([]string, 0, len(byDate))
	for d := range byDate {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	var firstErr error
	for _, day := range dates {
		picks := byDate[day]
		scores, err := e.finalScores(ctx, day)
		if err != nil {
			e.log.LogDateSkipped(day, err.Error(), len(picks))
			result.DatesSkipped++
			result.Unresolved += len(picks)
			continue
		}

		for _, p := range picks {
			score, ok := scores[p.HomeTeam]
			if !ok {
				e.log.LogUnresolved(p.ID.String(), p.Matchup)
				result.Unresolved++
				continue
			}

			grade := Grade(p, score.home, score.away)
			if err := e.picks.Grade(ctx, p.ID, grade); err != nil {
				if errors.Is(err, models.ErrNotFound) {
					e.log.WithField("pick_id", p.ID.String()).Debug("Pick already graded")
					result.AlreadyGraded++
					continue
				}
				e.log.WithError(err).WithField("pick_id", p.ID.String()).Error("Failed to grade pick")
				if firstErr == nil {
					firstErr = err
				}
				result.Unresolved++
				continue
			}

			e.log.LogGraded(p.ID.String(), string(p.Profile), p.Details, string(grade.Status), grade.ResultScore, grade.Profit)
			metrics.RecordPickSettled(string(p.Profile), string(grade.Status))
			result.Graded++
			switch grade.Status {
			case models.PickStatusWin:
				result.Wins++
			case models.PickStatusLoss:
				result.Losses++
			case models.PickStatusPush:
				result.Pushes++
			}
		}
	}

	metrics.UpdatePendingPicks(result.Pending - result.Graded - result.AlreadyGraded)
	return result, firstErr
}

// finalScores returns home team name to final score for the day and the
// lookahead window. An empty window counts as an upstream failure.
func (e *Engine) finalScores(ctx context.Context, day string) (map[string]finalScore, error) {
	start, err := time.Parse(dateLayout, day)
	if err != nil {
		return nil, err
	}

	var games []models.Game
	for i := 0; i <= e.lookahead; i++ {
		g, err := e.games.GetGamesByDate(ctx, start.AddDate(0, 0, i))
		if err != nil {
			return nil, err
		}
		games = append(games, g...)
	}
	if len(games) == 0 {
		return nil, fmt.Errorf("no games returned: %w", models.ErrUpstreamUnavailable)
	}

	scores := make(map[string]finalScore)
	for i := range games {
		g := &games[i]
		if !g.IsFinished() || g.HomeScore == nil || g.AwayScore == nil {
			continue
		}
		scores[g.Home.Name] = finalScore{home: *g.HomeScore, away: *g.AwayScore}
	}
	if len(scores) == 0 {
		return nil, errors.New("no finished games yet")
	}
	return scores, nil
}

func groupByDate(picks []*models.Pick) map[string][]*models.Pick {
	out := make(map[string][]*models.Pick)
	for _, p := range picks {
		day := p.MatchDate.UTC().Format(dateLayout)
		out[day] = append(out[day], p)
	}
	return out
}
