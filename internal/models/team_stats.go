package models

import "time"

// TeamStats is a per-team rolling snapshot derived from completed games
type TeamStats struct {
	TeamName      string    `db:"team_name" json:"team_name"`
	Season        string    `db:"season" json:"season"`
	GamesPlayed   int       `db:"games_played" json:"games_played"`
	PointsPerGame float64   `db:"points_per_game" json:"points_per_game"`
	PointsAllowed float64   `db:"points_allowed" json:"points_allowed"`
	Pace          float64   `db:"pace" json:"pace"`
	Efficiency    float64   `db:"efficiency" json:"efficiency"`
	RecentTrend   float64   `db:"recent_trend" json:"recent_trend"`
	InjuryImpact  float64   `db:"injury_impact" json:"injury_impact"`
	DaysRest      int       `db:"days_rest" json:"days_rest"`
	AvgMargin     float64   `db:"avg_margin" json:"avg_margin"`
	LastGameDate  time.Time `db:"last_game_date" json:"last_game_date"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}

// OnBackToBack reports whether the team played the previous day
func (s *TeamStats) OnBackToBack() bool {
	return s.DaysRest <= 1
}
