package logger

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestLogger() (*logrus.Logger, *bytes.Buffer) {
	log := logrus.New()
	buf := &bytes.Buffer{}
	log.SetOutput(buf)
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetLevel(logrus.DebugLevel)
	return log, buf
}

func parseLogOutput(buf *bytes.Buffer) map[string]interface{} {
	var logEntry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &logEntry); err != nil {
		return nil
	}
	return logEntry
}

func TestNewLoggerLevel(t *testing.T) {
	l := NewLogger("debug", "development")
	assert.Equal(t, logrus.DebugLevel, l.GetLevel())
	assert.IsType(t, &logrus.TextFormatter{}, l.Formatter)

	l = NewLogger("nonsense", "production")
	assert.Equal(t, logrus.InfoLevel, l.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, l.Formatter)
}

func TestScanLoggerPickSaved(t *testing.T) {
	log, buf := setupTestLogger()
	sl := NewScanLogger(log)

	sl.LogPickSaved("ZEUS", "Celtics @ Lakers", "Lakers -2.5", 7, true)

	entry := parseLogOutput(buf)
	require.NotNil(t, entry)
	assert.Equal(t, "scanner", entry["component"])
	assert.Equal(t, "ZEUS", entry["profile"])
	assert.Equal(t, "created", entry["action"])
	assert.Equal(t, 7.0, entry["edge"])
}

func TestScanLoggerCompleted(t *testing.T) {
	log, buf := setupTestLogger()
	NewScanLogger(log).LogScanCompleted(8, 3, 1, 1500*time.Millisecond)

	entry := parseLogOutput(buf)
	require.NotNil(t, entry)
	assert.Equal(t, float64(1500), entry["duration_ms"])
	assert.Equal(t, float64(3), entry["created"])
}

func TestSettlementLoggerGraded(t *testing.T) {
	log, buf := setupTestLogger()
	NewSettlementLogger(log).LogGraded("id-1", "ZEUS", "Lakers -4", "WIN", "90-101", 0.91)

	entry := parseLogOutput(buf)
	require.NotNil(t, entry)
	assert.Equal(t, "settlement", entry["component"])
	assert.Equal(t, "WIN", entry["result"])
	assert.Equal(t, 0.91, entry["profit"])
}

func TestNilBaseLoggerDiscards(t *testing.T) {
	assert.NotPanics(t, func() {
		NewScanLogger(nil).LogScanStarted("2024", "basketball_nba")
		NewSettlementLogger(nil).LogDateSkipped("2025-01-10", "no games", 2)
	})
}
