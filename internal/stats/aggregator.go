// Package stats derives per-team rolling statistics from completed games.
package stats

import (
	"math"
	"sort"
	"time"

	"github.com/yourusername/godbot/internal/models"
)

const (
	// DefaultPace is used for every team since box scores carry no possession data
	DefaultPace = 100.0
	// RecentWindow is the number of trailing games used for recent trend
	RecentWindow = 5
)

type teamTotals struct {
	scored   int
	allowed  int
	games    int
	margins  []int
	lastGame time.Time
}

// Aggregate reduces games into a snapshot keyed by team name. Games without
// both scores are ignored, so a team that has not played is absent from the map.
// now is the reference time for days of rest.
func Aggregate(games []models.Game, now time.Time) map[string]*models.TeamStats {
	sorted := make([]models.Game, len(games))
	copy(sorted, games)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	totals := make(map[string]*teamTotals)
	for i := range sorted {
		g := &sorted[i]
		if !g.HasScores() {
			continue
		}
		record(totals, g.Home.Name, *g.HomeScore, *g.AwayScore, g.Date)
		record(totals, g.Away.Name, *g.AwayScore, *g.HomeScore, g.Date)
	}

	snapshot := make(map[string]*models.TeamStats, len(totals))
	for name, t := range totals {
		snapshot[name] = t.toStats(name, now)
	}
	return snapshot
}

func record(totals map[string]*teamTotals, team string, scored, allowed int, date time.Time) {
	t, ok := totals[team]
	if !ok {
		t = &teamTotals{}
		totals[team] = t
	}
	t.scored += scored
	t.allowed += allowed
	t.games++
	t.margins = append(t.margins, scored-allowed)
	if date.After(t.lastGame) {
		t.lastGame = date
	}
}

func (t *teamTotals) toStats(name string, now time.Time) *models.TeamStats {
	games := float64(t.games)
	ppg := float64(t.scored) / games
	allowed := float64(t.allowed) / games

	recent := t.margins
	if len(recent) > RecentWindow {
		recent = recent[len(recent)-RecentWindow:]
	}
	sum := 0
	for _, m := range recent {
		sum += m
	}

	return &models.TeamStats{
		TeamName:      name,
		GamesPlayed:   t.games,
		PointsPerGame: models.RoundTo(ppg, 1),
		PointsAllowed: models.RoundTo(allowed, 1),
		Pace:          DefaultPace,
		Efficiency:    models.RoundTo(ppg-allowed, 1),
		RecentTrend:   models.RoundTo(float64(sum)/float64(len(recent)), 1),
		InjuryImpact:  0,
		DaysRest:      DaysBetween(t.lastGame, now),
		AvgMargin:     models.RoundTo(float64(t.scored-t.allowed)/games, 1),
		LastGameDate:  t.lastGame,
	}
}

// DaysBetween returns the absolute distance between two instants in whole
// days, rounded up.
func DaysBetween(from, to time.Time) int {
	d := to.Sub(from)
	if d < 0 {
		d = -d
	}
	return int(math.Ceil(d.Hours() / 24))
}
