package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/olekukonko/tablewriter"

	"github.com/yourusername/godbot/internal/models"
	"github.com/yourusername/godbot/internal/repository"
)

// DefaultStatsWindow is the look-back used for profile performance
const DefaultStatsWindow = 30 * 24 * time.Hour

// ProfileSummary is the graded record of one profile
type ProfileSummary struct {
	Profile models.Profile `json:"profile"`
	Profit  float64        `json:"profit"`
	Wins    int            `json:"wins"`
	Losses  int            `json:"losses"`
	Pushes  int            `json:"pushes"`
	WinRate float64        `json:"win_rate"`
}

// ProfileStats reports graded performance per profile
type ProfileStats struct {
	picks repository.PickRepository
}

// NewProfileStats creates a new profile reporter
func NewProfileStats(picks repository.PickRepository) *ProfileStats {
	return &ProfileStats{picks: picks}
}

// Summarize totals the graded picks of every profile whose match date is
// within window of now. Win rate ignores pushes.
func (s *ProfileStats) Summarize(ctx context.Context, now time.Time, window time.Duration) ([]ProfileSummary, error) {
	if window <= 0 {
		window = DefaultStatsWindow
	}
	from := now.Add(-window)

	summaries := make([]ProfileSummary, 0, len(models.Profiles))
	for _, profile := range models.Profiles {
		picks, err := s.picks.FindAll(ctx, models.PickFilter{
			Profile:  profile,
			Statuses: []models.PickStatus{models.PickStatusWin, models.PickStatusLoss, models.PickStatusPush},
			From:     &from,
		})
		if err != nil {
			return nil, fmt.Errorf("load %s picks: %w", profile, err)
		}
		summaries = append(summaries, summarize(profile, picks))
	}
	return summaries, nil
}

func summarize(profile models.Profile, picks []*models.Pick) ProfileSummary {
	sum := ProfileSummary{Profile: profile}
	for _, p := range picks {
		if p.Profit != nil {
			sum.Profit += *p.Profit
		}
		switch p.Status {
		case models.PickStatusWin:
			sum.Wins++
		case models.PickStatusLoss:
			sum.Losses++
		case models.PickStatusPush:
			sum.Pushes++
		}
	}
	sum.Profit = models.RoundTo(sum.Profit, 2)
	if decided := sum.Wins + sum.Losses; decided > 0 {
		sum.WinRate = models.RoundTo(float64(sum.Wins)/float64(decided)*100, 1)
	}
	return sum
}

// WriteProfileSummaries prints one row per profile
func WriteProfileSummaries(out io.Writer, summaries []ProfileSummary) {
	table := tablewriter.NewWriter(out)
	table.Header("Profile", "Units", "W-L-P", "Win rate")
	for _, s := range summaries {
		table.Append(
			string(s.Profile),
			fmt.Sprintf("%+.2f", s.Profit),
			fmt.Sprintf("%d-%d-%d", s.Wins, s.Losses, s.Pushes),
			fmt.Sprintf("%.1f%%", s.WinRate),
		)
	}
	table.Render()
}
