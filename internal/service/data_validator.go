package service

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/godbot/internal/logger"
	"github.com/yourusername/godbot/internal/models"
)

// maxTeamScore bounds a plausible single-team score
const maxTeamScore = 250

// GameValidator rejects provider games that would corrupt aggregation
type GameValidator struct {
	logger logrus.FieldLogger
}

// NewGameValidator creates a new game validator
func NewGameValidator(log logrus.FieldLogger) *GameValidator {
	return &GameValidator{logger: logger.OrDiscard(log)}
}

// ValidateGame returns every rule a game breaks
func (v *GameValidator) ValidateGame(g *models.Game) []string {
	var problems []string

	if g.Home.Name == "" {
		problems = append(problems, "home team is required")
	}
	if g.Away.Name == "" {
		problems = append(problems, "away team is required")
	}
	if g.Home.Name != "" && g.Home.Name == g.Away.Name {
		problems = append(problems, fmt.Sprintf("team %q cannot play itself", g.Home.Name))
	}
	if g.Date.IsZero() {
		problems = append(problems, "date is required")
	}
	for _, s := range []struct {
		side  string
		score *int
	}{{"home", g.HomeScore}, {"away", g.AwayScore}} {
		if s.score == nil {
			continue
		}
		if *s.score < 0 || *s.score > maxTeamScore {
			problems = append(problems, fmt.Sprintf("%s score out of range (0-%d), got %d", s.side, maxTeamScore, *s.score))
		}
	}

	return problems
}

// FilterValid drops invalid games, logging each rejection
func (v *GameValidator) FilterValid(games []models.Game) ([]models.Game, int) {
	valid := make([]models.Game, 0, len(games))
	rejected := 0
	for i := range games {
		if problems := v.ValidateGame(&games[i]); len(problems) > 0 {
			rejected++
			v.logger.WithFields(logrus.Fields{
				"game_id":  games[i].ID,
				"problems": problems,
			}).Warn("Rejecting invalid game")
			continue
		}
		valid = append(valid, games[i])
	}
	return valid, rejected
}
