package models

import "time"

// Game status codes reported by the results provider for completed games
const (
	GameStatusFinal         = "FT"
	GameStatusFinalOvertime = "AOT"
	GameStatusFinishedLong  = "Finished"
)

// Team identifies one side of a game
type Team struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Code string `json:"code"`
}

// Game represents a scheduled or completed game. Scores stay nil until played.
type Game struct {
	ID          int       `json:"id"`
	Season      string    `json:"season"`
	Date        time.Time `json:"date"`
	Home        Team      `json:"home"`
	Away        Team      `json:"away"`
	HomeScore   *int      `json:"home_score"`
	AwayScore   *int      `json:"away_score"`
	StatusShort string    `json:"status_short"`
	StatusLong  string    `json:"status_long"`
}

// HasScores reports whether both final scores are present
func (g *Game) HasScores() bool {
	return g.HomeScore != nil && g.AwayScore != nil && *g.HomeScore > 0 && *g.AwayScore > 0
}

// IsFinished checks if the provider marked the game as completed
func (g *Game) IsFinished() bool {
	switch g.StatusShort {
	case GameStatusFinal, GameStatusFinalOvertime:
		return true
	}
	return g.StatusLong == GameStatusFinishedLong
}

// Diff returns home score minus away score. Callers must check HasScores first.
func (g *Game) Diff() int {
	return *g.HomeScore - *g.AwayScore
}

// Total returns the combined final score. Callers must check HasScores first.
func (g *Game) Total() int {
	return *g.HomeScore + *g.AwayScore
}

// Injury report types that take a player out of the lineup
const (
	InjuryTypeOut     = "Out"
	InjuryTypeMissing = "Missing"
)

// InjuryReport is one player availability entry for a date
type InjuryReport struct {
	Team   string `json:"team"`
	Player string `json:"player"`
	Type   string `json:"type"`
}

// Unavailable reports whether the player will not play
func (r InjuryReport) Unavailable() bool {
	return r.Type == InjuryTypeOut || r.Type == InjuryTypeMissing
}
