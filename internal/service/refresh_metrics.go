package service

import (
	"fmt"
	"sync"
	"time"
)

// RefreshMetrics tracks statistics about one stats refresh
type RefreshMetrics struct {
	mu            sync.RWMutex
	StartTime     time.Time
	Duration      time.Duration
	GamesFetched  int
	GamesRejected int
	TeamsWritten  int
	Errors        int
}

// NewRefreshMetrics creates a new metrics tracker
func NewRefreshMetrics() *RefreshMetrics {
	return &RefreshMetrics{
		StartTime: time.Now(),
	}
}

// RecordTeam increments the written team count
func (m *RefreshMetrics) RecordTeam() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.TeamsWritten++
}

// RecordError increments error count
func (m *RefreshMetrics) RecordError() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Errors++
}

// Finish stamps the run duration
func (m *RefreshMetrics) Finish() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Duration = time.Since(m.StartTime)
}

// Teams returns the number of teams written
func (m *RefreshMetrics) Teams() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.TeamsWritten
}

// String returns a formatted string representation of metrics
func (m *RefreshMetrics) String() string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return fmt.Sprintf(
		"RefreshMetrics{Games=%d, Rejected=%d, Teams=%d, Errors=%d, Duration=%v}",
		m.GamesFetched,
		m.GamesRejected,
		m.TeamsWritten,
		m.Errors,
		m.Duration,
	)
}
