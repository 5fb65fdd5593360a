package scanner

import "github.com/yourusername/godbot/internal/config"

// StandardOdds is the price recorded for spread and totals picks
const StandardOdds = -110.0

// Config holds the scan inputs and decision thresholds
type Config struct {
	Season     string
	Sport      string
	Region     string
	SportLabel string

	StarPlayers       []string
	StarPenalty       float64
	BackToBackPenalty float64

	SpreadThreshold     float64
	TotalThreshold      float64
	TotalStarPenalty    float64
	TotalFatiguePenalty float64
	MoneylineProbEdge   float64
	MoneylineMinProb    float64
}

// DefaultConfig returns the production thresholds
func DefaultConfig() Config {
	return Config{
		Season:              "2024",
		Sport:               "basketball_nba",
		Region:              "us",
		SportLabel:          "NBA",
		StarPlayers:         config.DefaultStarPlayers,
		StarPenalty:         3.0,
		BackToBackPenalty:   3.0,
		SpreadThreshold:     2.0,
		TotalThreshold:      5.0,
		TotalStarPenalty:    1.5,
		TotalFatiguePenalty: 1.0,
		MoneylineProbEdge:   0.08,
		MoneylineMinProb:    0.40,
	}
}

// ConfigFrom maps the application config onto scanner settings
func ConfigFrom(cfg *config.Config) Config {
	s := cfg.Scanner
	out := Config{
		Season:              cfg.Providers.APISports.Season,
		Sport:               cfg.Providers.OddsAPI.Sport,
		Region:              cfg.Providers.OddsAPI.Region,
		SportLabel:          s.SportLabel,
		StarPlayers:         s.StarPlayers,
		StarPenalty:         s.StarPenalty,
		BackToBackPenalty:   s.BackToBackPenalty,
		SpreadThreshold:     s.SpreadThreshold,
		TotalThreshold:      s.TotalThreshold,
		TotalStarPenalty:    s.TotalStarPenalty,
		TotalFatiguePenalty: s.TotalFatiguePenalty,
		MoneylineProbEdge:   s.MoneylineProbEdge,
		MoneylineMinProb:    s.MoneylineMinProb,
	}
	if len(out.StarPlayers) == 0 {
		out.StarPlayers = config.DefaultStarPlayers
	}
	return out
}
