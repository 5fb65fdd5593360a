package logger

import (
	"time"

	"github.com/sirupsen/logrus"
)

// ScanLogger provides dedicated logging for matchup scans.
type ScanLogger struct {
	*logrus.Entry
}

// NewScanLogger creates a new scan logger.
func NewScanLogger(base logrus.FieldLogger) *ScanLogger {
	return &ScanLogger{Entry: OrDiscard(base).WithField("component", "scanner")}
}

// LogScanStarted logs the start of a scan.
func (sl *ScanLogger) LogScanStarted(season, sport string) {
	sl.WithFields(logrus.Fields{
		"season": season,
		"sport":  sport,
	}).Info("Market scan started")
}

// LogStatsBuilt logs the aggregated snapshot size.
func (sl *ScanLogger) LogStatsBuilt(games, teams int) {
	sl.WithFields(logrus.Fields{
		"games": games,
		"teams": teams,
	}).Info("Team stats built")
}

// LogPenalty logs an injury or fatigue adjustment for a team.
func (sl *ScanLogger) LogPenalty(team, reason string, points float64, players []string) {
	fields := logrus.Fields{
		"team":   team,
		"reason": reason,
		"points": points,
	}
	if len(players) > 0 {
		fields["players"] = players
	}
	sl.WithFields(fields).Info("Line adjustment applied")
}

// LogPickSaved logs a created or updated pick.
func (sl *ScanLogger) LogPickSaved(profile, matchup, details string, edge float64, created bool) {
	action := "updated"
	if created {
		action = "created"
	}
	sl.WithFields(logrus.Fields{
		"profile": profile,
		"matchup": matchup,
		"details": details,
		"edge":    edge,
		"action":  action,
	}).Info("Pick saved")
}

// LogScanCompleted logs the end of a scan.
func (sl *ScanLogger) LogScanCompleted(events, created, updated int, duration time.Duration) {
	sl.WithFields(logrus.Fields{
		"events":      events,
		"created":     created,
		"updated":     updated,
		"duration_ms": duration.Milliseconds(),
	}).Info("Market scan completed")
}
