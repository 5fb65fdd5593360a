// Package service holds the periodic maintenance jobs around the pick
// pipeline: stats refresh, duplicate cleanup and profile reporting.
package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/godbot/internal/cache"
	"github.com/yourusername/godbot/internal/datasource"
	"github.com/yourusername/godbot/internal/logger"
	"github.com/yourusername/godbot/internal/metrics"
	"github.com/yourusername/godbot/internal/models"
	"github.com/yourusername/godbot/internal/stats"
)

// StatsRefresher rebuilds the team stats cache from the season history
type StatsRefresher struct {
	games     datasource.GameSource
	cache     cache.TeamStatsCache
	validator *GameValidator
	season    string
	now       func() time.Time
	logger    logrus.FieldLogger
}

// NewStatsRefresher creates a new stats refresher
func NewStatsRefresher(games datasource.GameSource, statsCache cache.TeamStatsCache, season string, log logrus.FieldLogger) *StatsRefresher {
	log = logger.OrDiscard(log)
	return &StatsRefresher{
		games:     games,
		cache:     statsCache,
		validator: NewGameValidator(log),
		season:    season,
		now:       time.Now,
		logger:    log.WithField("component", "stats_refresh"),
	}
}

// WithClock overrides the reference time for days of rest
func (s *StatsRefresher) WithClock(now func() time.Time) *StatsRefresher {
	s.now = now
	return s
}

// Refresh aggregates the season and writes every team's snapshot. An empty
// history writes nothing. A failed write does not stop the other teams;
// the first failure is returned.
func (s *StatsRefresher) Refresh(ctx context.Context) (*RefreshMetrics, error) {
	m := NewRefreshMetrics()
	defer m.Finish()

	s.logger.WithField("season", s.season).Info("Starting stats refresh")

	games, err := s.games.GetGames(ctx, s.season)
	if err != nil {
		m.RecordError()
		return m, fmt.Errorf("fetch season %s: %w: %w", s.season, models.ErrUpstreamUnavailable, err)
	}
	if len(games) == 0 {
		return m, fmt.Errorf("season %s has no games: %w", s.season, models.ErrUpstreamUnavailable)
	}
	m.GamesFetched = len(games)

	valid, rejected := s.validator.FilterValid(games)
	m.GamesRejected = rejected

	snapshot := stats.Aggregate(valid, s.now())
	teams := make([]string, 0, len(snapshot))
	for name := range snapshot {
		teams = append(teams, name)
	}
	sort.Strings(teams)

	var firstErr error
	for _, name := range teams {
		ts := snapshot[name]
		ts.Season = s.season
		ts.UpdatedAt = s.now().UTC()
		if err := s.cache.Upsert(ctx, name, ts); err != nil {
			m.RecordError()
			s.logger.WithError(err).WithField("team", name).Error("Failed to cache team stats")
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		m.RecordTeam()
	}

	metrics.UpdateTeamsRefreshed(m.Teams())
	s.logger.WithFields(logrus.Fields{
		"season":   s.season,
		"games":    m.GamesFetched,
		"rejected": m.GamesRejected,
		"teams":    m.Teams(),
	}).Info("Stats refresh completed")

	return m, firstErr
}
