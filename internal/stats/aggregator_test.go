package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/godbot/internal/models"
)

func game(day int, home, away string, hs, as int) models.Game {
	h, a := hs, as
	return models.Game{
		Date:      time.Date(2025, 1, day, 0, 0, 0, 0, time.UTC),
		Home:      models.Team{Name: home},
		Away:      models.Team{Name: away},
		HomeScore: &h,
		AwayScore: &a,
	}
}

func TestAggregateAverages(t *testing.T) {
	games := []models.Game{
		game(3, "Lakers", "Celtics", 110, 100),
		game(1, "Celtics", "Lakers", 120, 105),
		game(2, "Lakers", "Knicks", 99, 101),
	}
	now := time.Date(2025, 1, 4, 12, 0, 0, 0, time.UTC)

	snapshot := Aggregate(games, now)
	require.Len(t, snapshot, 3)

	lakers := snapshot["Lakers"]
	require.NotNil(t, lakers)
	assert.Equal(t, 3, lakers.GamesPlayed)
	assert.Equal(t, models.RoundTo(314.0/3.0, 1), lakers.PointsPerGame)
	assert.Equal(t, models.RoundTo(321.0/3.0, 1), lakers.PointsAllowed)
	assert.Equal(t, DefaultPace, lakers.Pace)
	assert.Equal(t, -2.3, lakers.AvgMargin)
	assert.Equal(t, 2, lakers.DaysRest)
	assert.Equal(t, time.Date(2025, 1, 3, 0, 0, 0, 0, time.UTC), lakers.LastGameDate)
}

func TestAggregateRecentTrendUsesLastFive(t *testing.T) {
	var games []models.Game
	// Six games: a blowout loss first, then five wins by 10.
	games = append(games, game(1, "Lakers", "Celtics", 80, 130))
	for d := 2; d <= 6; d++ {
		games = append(games, game(d, "Lakers", "Celtics", 110, 100))
	}

	snapshot := Aggregate(games, time.Date(2025, 1, 7, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, 10.0, snapshot["Lakers"].RecentTrend)
	assert.Equal(t, -10.0, snapshot["Celtics"].RecentTrend)
	assert.Equal(t, 0.0, snapshot["Lakers"].AvgMargin)
}

func TestAggregateSkipsUnplayedGames(t *testing.T) {
	played := game(1, "Lakers", "Celtics", 110, 100)
	unplayed := models.Game{
		Date: time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC),
		Home: models.Team{Name: "Knicks"},
		Away: models.Team{Name: "Nets"},
	}

	snapshot := Aggregate([]models.Game{played, unplayed}, time.Now())
	assert.Contains(t, snapshot, "Lakers")
	assert.NotContains(t, snapshot, "Knicks")
	assert.NotContains(t, snapshot, "Nets")
}

func TestDaysBetween(t *testing.T) {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 0, DaysBetween(base, base))
	assert.Equal(t, 1, DaysBetween(base, base.Add(3*time.Hour)))
	assert.Equal(t, 2, DaysBetween(base, base.Add(25*time.Hour)))
	assert.Equal(t, 2, DaysBetween(base.Add(25*time.Hour), base))
}
