package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderDetails(t *testing.T) {
	tests := []struct {
		name string
		pick Pick
		want string
	}{
		{"home favourite", Pick{Type: PickTypeSpread, Side: PickSideHome, Line: -4.5, HomeTeam: "Lakers", AwayTeam: "Celtics"}, "Lakers -4.5"},
		{"away dog", Pick{Type: PickTypeSpread, Side: PickSideAway, Line: 3, HomeTeam: "Lakers", AwayTeam: "Celtics"}, "Celtics +3"},
		{"pick em", Pick{Type: PickTypeSpread, Side: PickSideHome, Line: 0, HomeTeam: "Lakers", AwayTeam: "Celtics"}, "Lakers 0"},
		{"over", Pick{Type: PickTypeTotal, Side: PickSideOver, Line: 221}, "OVER 221"},
		{"under half", Pick{Type: PickTypeTotal, Side: PickSideUnder, Line: 219.5}, "UNDER 219.5"},
		{"moneyline", Pick{Type: PickTypeMoneyline, Side: PickSideAway, HomeTeam: "Lakers", AwayTeam: "Celtics"}, "Celtics ML"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.pick.RenderDetails())
		})
	}
}

func TestMatchupLabel(t *testing.T) {
	assert.Equal(t, "Celtics @ Lakers", MatchupLabel("Celtics", "Lakers"))
}

func TestPickValidate(t *testing.T) {
	p := Pick{
		ID:        uuid.New(),
		Profile:   ProfileZeus,
		Sport:     "NBA",
		Matchup:   "Celtics @ Lakers",
		HomeTeam:  "Lakers",
		AwayTeam:  "Celtics",
		Type:      PickTypeSpread,
		Side:      PickSideHome,
		Odds:      -110,
		Edge:      7,
		Status:    PickStatusPending,
		MatchDate: time.Date(2026, 1, 10, 0, 30, 0, 0, time.UTC),
	}
	require.NoError(t, p.Validate())

	p.Profile = "ODIN"
	assert.Error(t, p.Validate())
}

func TestRounding(t *testing.T) {
	assert.Equal(t, 4.5, RoundHalfPoint(4.3))
	assert.Equal(t, 4.0, RoundHalfPoint(4.2))
	assert.Equal(t, -2.0, RoundHalfPoint(-2.25))
	assert.Equal(t, 2.5, RoundHalfPoint(2.25))
	assert.Equal(t, 0.91, RoundTo(100.0/110.0, 2))
	assert.Equal(t, 2.3, RoundTo(2.25, 1))
	assert.Equal(t, -2.3, RoundTo(-2.25, 1))
}

func TestGameFinished(t *testing.T) {
	assert.True(t, (&Game{StatusShort: "FT"}).IsFinished())
	assert.True(t, (&Game{StatusShort: "AOT"}).IsFinished())
	assert.True(t, (&Game{StatusLong: "Finished"}).IsFinished())
	assert.False(t, (&Game{StatusShort: "NS", StatusLong: "Scheduled"}).IsFinished())

	home, away := 101, 0
	assert.False(t, (&Game{HomeScore: &home, AwayScore: &away}).HasScores())
	away = 90
	g := &Game{HomeScore: &home, AwayScore: &away}
	require.True(t, g.HasScores())
	assert.Equal(t, 11, g.Diff())
	assert.Equal(t, 191, g.Total())
}
