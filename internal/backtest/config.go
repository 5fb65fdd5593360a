package backtest

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/yourusername/godbot/internal/config"
	"github.com/yourusername/godbot/internal/models"
)

const dateLayout = "2006-01-02"

// Config describes one simulation window. Days are replayed backwards from
// Start, so Start itself is the most recent day simulated.
type Config struct {
	Start time.Time
	Days  int
	Mode  models.PickType
}

// FromConfig builds a simulation window from app config. An empty start
// means today (UTC).
func FromConfig(cfg *config.BacktestConfig, start string, mode models.PickType) (Config, error) {
	if cfg == nil {
		return Config{}, fmt.Errorf("backtest config is required")
	}

	day := time.Now().UTC()
	if start != "" {
		parsed, err := time.Parse(dateLayout, start)
		if err != nil {
			return Config{}, fmt.Errorf("invalid start date: %w", err)
		}
		day = parsed
	}

	bt := Config{
		Start: truncateDay(day),
		Days:  cfg.Days,
		Mode:  mode,
	}
	return bt, bt.Validate()
}

// Validate validates simulation parameters
func (c Config) Validate() error {
	if c.Days <= 0 {
		return fmt.Errorf("days must be positive")
	}
	if c.Start.IsZero() {
		return fmt.Errorf("start date is required")
	}
	switch c.Mode {
	case models.PickTypeSpread, models.PickTypeTotal, models.PickTypeMoneyline:
		return nil
	}
	return fmt.Errorf("unknown mode %q", c.Mode)
}

// ParseMode accepts spread, total or moneyline in any case
func ParseMode(s string) (models.PickType, error) {
	mode := models.PickType(strings.ToUpper(strings.TrimSpace(s)))
	switch mode {
	case models.PickTypeSpread, models.PickTypeTotal, models.PickTypeMoneyline:
		return mode, nil
	}
	return "", fmt.Errorf("unknown mode %q: want spread, total or moneyline", s)
}

// ModeForProfile returns the market a profile trades
func ModeForProfile(p models.Profile) models.PickType {
	switch p {
	case models.ProfileShiva:
		return models.PickTypeTotal
	case models.ProfileLoki:
		return models.PickTypeMoneyline
	}
	return models.PickTypeSpread
}

// NewRand returns a fixed-seed generator when seeded is set, otherwise one
// seeded from the clock so every run samples fresh noise.
func NewRand(cfg config.BacktestConfig) *rand.Rand {
	seed := time.Now().UnixNano()
	if cfg.Seeded {
		seed = cfg.Seed
	}
	return rand.New(rand.NewSource(seed))
}

func truncateDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
