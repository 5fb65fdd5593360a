// Package scanner compares model lines against live quotes and records a
// pick per profile whenever the disagreement clears that profile's threshold.
package scanner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/godbot/internal/datasource"
	"github.com/yourusername/godbot/internal/logger"
	"github.com/yourusername/godbot/internal/metrics"
	"github.com/yourusername/godbot/internal/models"
	"github.com/yourusername/godbot/internal/prediction"
	"github.com/yourusername/godbot/internal/repository"
	"github.com/yourusername/godbot/internal/stats"
)

const dateLayout = "2006-01-02"

// Result summarizes one scan run
type Result struct {
	Events    int
	Evaluated int
	Skipped   int
	Created   int
	Updated   int
	Picks     []*models.Pick
}

// Scanner runs the matchup scan
type Scanner struct {
	games    datasource.GameSource
	odds     datasource.OddsSource
	injuries datasource.InjurySource
	picks    repository.PickRepository

	cfg   Config
	zeus  prediction.Weights
	shiva prediction.Weights

	log *logger.ScanLogger
	now func() time.Time
}

// New creates a scanner with the canonical profile weights
func New(
	games datasource.GameSource,
	odds datasource.OddsSource,
	injuries datasource.InjurySource,
	picks repository.PickRepository,
	cfg Config,
	log logrus.FieldLogger,
) *Scanner {
	return &Scanner{
		games:    games,
		odds:     odds,
		injuries: injuries,
		picks:    picks,
		cfg:      cfg,
		zeus:     prediction.Zeus,
		shiva:    prediction.Shiva,
		log:      logger.NewScanLogger(log),
		now:      time.Now,
	}
}

// WithClock overrides the reference time, mainly for tests
func (s *Scanner) WithClock(now func() time.Time) *Scanner {
	s.now = now
	return s
}

// WithWeights overrides the spread and total weights. LOKI has none of its
// own: its moneyline reads the adjusted ZEUS margin.
func (s *Scanner) WithWeights(zeus, shiva prediction.Weights) *Scanner {
	s.zeus, s.shiva = zeus, shiva
	return s
}

// Run executes one scan. An empty or failed history or odds fetch returns
// an error matching models.ErrUpstreamUnavailable with nothing written.
// Persistence failures do not stop sibling matchups; the first is returned.
func (s *Scanner) Run(ctx context.Context) (*Result, error) {
	started := s.now()
	s.log.LogScanStarted(s.cfg.Season, s.cfg.Sport)

	history, err := s.games.GetGames(ctx, s.cfg.Season)
	if err != nil {
		return nil, fmt.Errorf("fetching season history: %w", upstream(err))
	}
	if len(history) == 0 {
		return nil, fmt.Errorf("season %s returned no games: %w", s.cfg.Season, models.ErrUpstreamUnavailable)
	}
	teamStats := stats.Aggregate(history, started)
	s.log.LogStatsBuilt(len(history), len(teamStats))

	events, err := s.odds.GetOdds(ctx, s.cfg.Sport, s.cfg.Region)
	if err != nil {
		return nil, fmt.Errorf("fetching odds: %w", upstream(err))
	}
	if len(events) == 0 {
		return nil, fmt.Errorf("no upcoming odds: %w", models.ErrUpstreamUnavailable)
	}

	reports := s.fetchInjuries(ctx, events)

	result := &Result{Events: len(events)}
	var firstErr error

	for _, event := range events {
		if !event.CommenceTime.After(started) {
			result.Skipped++
			continue
		}
		home, away := teamStats[event.HomeTeam], teamStats[event.AwayTeam]
		if home == nil || away == nil {
			s.log.WithFields(logrus.Fields{
				"matchup": models.MatchupLabel(event.AwayTeam, event.HomeTeam),
			}).Debug(models.ErrMissingTeamStats.Error())
			result.Skipped++
			continue
		}
		lines := ExtractLines(event)
		if len(lines) == 0 {
			result.Skipped++
			continue
		}

		result.Evaluated++
		for _, pick := range s.evaluate(event, home, away, lines, reports) {
			created, err := s.save(ctx, pick)
			if err != nil {
				s.log.WithError(err).WithField("profile", pick.Profile).Error("Failed to save pick")
				if firstErr == nil {
					firstErr = err
				}
				continue
			}
			if created {
				result.Created++
			} else {
				result.Updated++
			}
			result.Picks = append(result.Picks, pick)
		}
	}

	s.log.LogScanCompleted(result.Events, result.Created, result.Updated, s.now().Sub(started))
	return result, firstErr
}

// fetchInjuries loads reports once per distinct UTC commence date. A failed
// date is logged and scanned without reports.
func (s *Scanner) fetchInjuries(ctx context.Context, events []models.OddsEvent) []models.InjuryReport {
	seen := make(map[string]struct{})
	var reports []models.InjuryReport
	for _, e := range events {
		date := utcDay(e.CommenceTime)
		day := date.Format(dateLayout)
		if _, ok := seen[day]; ok {
			continue
		}
		seen[day] = struct{}{}

		r, err := s.injuries.GetInjuries(ctx, date)
		if err != nil {
			s.log.WithError(err).WithField("date", day).Warn("Injury report unavailable")
			continue
		}
		reports = append(reports, r...)
	}
	return reports
}

func utcDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// evaluate runs every profile over one matchup
func (s *Scanner) evaluate(event models.OddsEvent, home, away *models.TeamStats, lines []models.BettingLine, reports []models.InjuryReport) []*models.Pick {
	adj := s.cfg.Adjust(home, away, reports)
	s.logAdjustments(home.TeamName, away.TeamName, adj)

	margin := adj.AdjustedMargin(s.zeus.PredictSpread(home, away))
	total := s.shiva.PredictTotal(home, away) - adj.TotalPenalty

	var picks []*models.Pick
	if d, ok := s.cfg.SpreadDecision(margin, lines); ok {
		picks = append(picks, s.newPick(models.ProfileZeus, event, d))
	}
	if d, ok := s.cfg.TotalDecision(total, lines); ok {
		picks = append(picks, s.newPick(models.ProfileShiva, event, d))
	}
	// the moneyline reuses the adjusted spread margin
	if d, ok := s.cfg.MoneylineDecision(margin, lines); ok {
		picks = append(picks, s.newPick(models.ProfileLoki, event, d))
	}
	return picks
}

func (s *Scanner) logAdjustments(home, away string, adj Adjustments) {
	if len(adj.HomeStars) > 0 {
		s.log.LogPenalty(home, "injury", float64(len(adj.HomeStars))*s.cfg.StarPenalty, adj.HomeStars)
	}
	if len(adj.AwayStars) > 0 {
		s.log.LogPenalty(away, "injury", float64(len(adj.AwayStars))*s.cfg.StarPenalty, adj.AwayStars)
	}
	if adj.HomeBackToBack {
		s.log.LogPenalty(home, "back_to_back", s.cfg.BackToBackPenalty, nil)
	}
	if adj.AwayBackToBack {
		s.log.LogPenalty(away, "back_to_back", s.cfg.BackToBackPenalty, nil)
	}
}

func (s *Scanner) newPick(profile models.Profile, event models.OddsEvent, d Decision) *models.Pick {
	now := s.now()
	p := &models.Pick{
		ID:        uuid.New(),
		Profile:   profile,
		Sport:     s.cfg.SportLabel,
		MatchDate: event.CommenceTime,
		Matchup:   models.MatchupLabel(event.AwayTeam, event.HomeTeam),
		HomeTeam:  event.HomeTeam,
		AwayTeam:  event.AwayTeam,
		Type:      d.Type,
		Side:      d.Side,
		Line:      d.Line,
		Odds:      d.Odds,
		Edge:      d.Edge,
		Status:    models.PickStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	p.Details = p.RenderDetails()
	return p
}

// save updates the open pick for the same key or inserts a new one
func (s *Scanner) save(ctx context.Context, pick *models.Pick) (bool, error) {
	existing, err := s.picks.FindPending(ctx, pick.Profile, pick.Matchup, pick.MatchDate)
	switch {
	case errors.Is(err, models.ErrNotFound):
		if err := pick.Validate(); err != nil {
			return false, err
		}
		if err := s.picks.Create(ctx, pick); err != nil {
			return false, err
		}
		s.log.LogPickSaved(string(pick.Profile), pick.Matchup, pick.Details, pick.Edge, true)
		metrics.RecordPickSaved(string(pick.Profile), true, pick.Edge)
		return true, nil
	case err != nil:
		return false, err
	}

	update := models.PickUpdate{
		Type:    pick.Type,
		Side:    pick.Side,
		Line:    pick.Line,
		Details: pick.Details,
		Odds:    pick.Odds,
		Edge:    pick.Edge,
	}
	if err := s.picks.Update(ctx, existing.ID, update); err != nil {
		return false, err
	}
	pick.ID = existing.ID
	pick.CreatedAt = existing.CreatedAt
	s.log.LogPickSaved(string(pick.Profile), pick.Matchup, pick.Details, pick.Edge, false)
	metrics.RecordPickSaved(string(pick.Profile), false, pick.Edge)
	return false, nil
}

// upstream tags err as an upstream failure unless it already is one
func upstream(err error) error {
	if errors.Is(err, models.ErrUpstreamUnavailable) {
		return err
	}
	return fmt.Errorf("%w: %w", models.ErrUpstreamUnavailable, err)
}
