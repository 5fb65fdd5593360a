package logger

import "github.com/sirupsen/logrus"

// SettlementLogger provides dedicated logging for pick grading.
type SettlementLogger struct {
	*logrus.Entry
}

// NewSettlementLogger creates a new settlement logger.
func NewSettlementLogger(base logrus.FieldLogger) *SettlementLogger {
	return &SettlementLogger{Entry: OrDiscard(base).WithField("component", "settlement")}
}

// LogGraded logs a terminal grade.
func (sl *SettlementLogger) LogGraded(pickID, profile, details, result, score string, profit float64) {
	sl.WithFields(logrus.Fields{
		"pick_id": pickID,
		"profile": profile,
		"details": details,
		"result":  result,
		"score":   score,
		"profit":  profit,
	}).Info("Pick graded")
}

// LogUnresolved logs a pick left pending for a later run.
func (sl *SettlementLogger) LogUnresolved(pickID, matchup string) {
	sl.WithFields(logrus.Fields{
		"pick_id": pickID,
		"matchup": matchup,
	}).Debug("Game not finished or not found")
}

// LogDateSkipped logs a date that could not be settled this run.
func (sl *SettlementLogger) LogDateSkipped(date, reason string, picks int) {
	sl.WithFields(logrus.Fields{
		"date":   date,
		"reason": reason,
		"picks":  picks,
	}).Warn("Settlement date skipped")
}
