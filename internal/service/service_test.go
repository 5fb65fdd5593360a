package service

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/godbot/internal/cache"
	"github.com/yourusername/godbot/internal/database"
	"github.com/yourusername/godbot/internal/models"
	"github.com/yourusername/godbot/internal/repository"
)

type mockGameSource struct {
	mock.Mock
}

func (m *mockGameSource) GetGames(ctx context.Context, season string) ([]models.Game, error) {
	args := m.Called(ctx, season)
	games, _ := args.Get(0).([]models.Game)
	return games, args.Error(1)
}

func (m *mockGameSource) GetGamesByDate(ctx context.Context, date time.Time) ([]models.Game, error) {
	args := m.Called(ctx, date)
	games, _ := args.Get(0).([]models.Game)
	return games, args.Error(1)
}

func final(id int, day time.Time, home, away string, hs, as int) models.Game {
	return models.Game{
		ID:          id,
		Season:      "2024",
		Date:        day,
		Home:        models.Team{Name: home},
		Away:        models.Team{Name: away},
		HomeScore:   intPtr(hs),
		AwayScore:   intPtr(as),
		StatusShort: models.GameStatusFinal,
	}
}

func newPickRepo(t *testing.T) *repository.SQLitePickRepository {
	t.Helper()
	return repository.NewSQLitePickRepository(database.SetupTestSQLite(t))
}

func pendingPick(profile models.Profile, matchDate, createdAt time.Time) *models.Pick {
	p := &models.Pick{
		ID:        uuid.New(),
		Profile:   profile,
		Sport:     "NBA",
		MatchDate: matchDate,
		Matchup:   models.MatchupLabel("Celtics", "Lakers"),
		HomeTeam:  "Lakers",
		AwayTeam:  "Celtics",
		Type:      models.PickTypeSpread,
		Side:      models.PickSideHome,
		Line:      -4.5,
		Odds:      -110,
		Edge:      6,
		Status:    models.PickStatusPending,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
	p.Details = p.RenderDetails()
	return p
}

func TestStatsRefresherWritesEveryTeam(t *testing.T) {
	day := time.Date(2025, 1, 5, 0, 30, 0, 0, time.UTC)
	games := []models.Game{
		final(1, day, "Lakers", "Celtics", 110, 104),
		final(2, day.AddDate(0, 0, 1), "Knicks", "Lakers", 99, 101),
		{ID: 3, Date: day, Home: models.Team{Name: "Bulls"}},
		{ID: 4, Date: day.AddDate(0, 0, 3), Home: models.Team{Name: "Heat"}, Away: models.Team{Name: "Magic"}},
	}

	src := &mockGameSource{}
	src.On("GetGames", mock.Anything, "2024").Return(games, nil)
	statsCache := cache.NewMemoryTeamStatsCache(time.Hour)

	now := day.AddDate(0, 0, 2)
	refresher := NewStatsRefresher(src, statsCache, "2024", nil).WithClock(func() time.Time { return now })

	m, err := refresher.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, m.GamesFetched)
	assert.Equal(t, 1, m.GamesRejected)
	assert.Equal(t, 3, m.Teams())
	assert.Equal(t, 3, statsCache.Len())

	lakers, err := statsCache.Get(context.Background(), "Lakers")
	require.NoError(t, err)
	assert.Equal(t, 2, lakers.GamesPlayed)
	assert.Equal(t, "2024", lakers.Season)
	assert.True(t, now.Equal(lakers.UpdatedAt))

	_, err = statsCache.Get(context.Background(), "Heat")
	assert.ErrorIs(t, err, models.ErrNotFound)
	src.AssertExpectations(t)
}

func TestStatsRefresherUpstreamUnavailable(t *testing.T) {
	tests := []struct {
		name  string
		games []models.Game
		err   error
	}{
		{name: "fetch error", err: errors.New("connection reset")},
		{name: "empty history", games: []models.Game{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := &mockGameSource{}
			src.On("GetGames", mock.Anything, "2024").Return(tt.games, tt.err)
			statsCache := cache.NewMemoryTeamStatsCache(time.Hour)

			_, err := NewStatsRefresher(src, statsCache, "2024", nil).Refresh(context.Background())
			assert.ErrorIs(t, err, models.ErrUpstreamUnavailable)
			assert.Equal(t, 0, statsCache.Len())
		})
	}
}

func TestDuplicateCleanerKeepsNewest(t *testing.T) {
	repo := newPickRepo(t)
	ctx := context.Background()
	tipoff := time.Date(2025, 1, 10, 0, 30, 0, 0, time.UTC)
	first := time.Date(2025, 1, 9, 10, 0, 0, 0, time.UTC)

	oldest := pendingPick(models.ProfileZeus, tipoff, first)
	middle := pendingPick(models.ProfileZeus, tipoff, first.Add(time.Hour))
	newest := pendingPick(models.ProfileZeus, tipoff, first.Add(2*time.Hour))
	other := pendingPick(models.ProfileLoki, tipoff, first)
	for _, p := range []*models.Pick{oldest, middle, newest, other} {
		require.NoError(t, repo.Create(ctx, p))
	}

	removed, err := NewDuplicateCleaner(repo, nil).Clean(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	left, err := repo.FindAll(ctx, models.PickFilter{})
	require.NoError(t, err)
	ids := make([]uuid.UUID, 0, len(left))
	for _, p := range left {
		ids = append(ids, p.ID)
	}
	assert.ElementsMatch(t, []uuid.UUID{newest.ID, other.ID}, ids)
}

func TestDuplicateCleanerNothingToDo(t *testing.T) {
	repo := newPickRepo(t)
	ctx := context.Background()
	created := time.Date(2025, 1, 9, 10, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Create(ctx, pendingPick(models.ProfileZeus, time.Date(2025, 1, 10, 0, 30, 0, 0, time.UTC), created)))
	require.NoError(t, repo.Create(ctx, pendingPick(models.ProfileZeus, time.Date(2025, 1, 11, 0, 30, 0, 0, time.UTC), created)))

	removed, err := NewDuplicateCleaner(repo, nil).Clean(ctx)
	require.NoError(t, err)
	assert.Zero(t, removed)
}

func TestProfileStatsSummarize(t *testing.T) {
	repo := newPickRepo(t)
	ctx := context.Background()
	now := time.Date(2025, 1, 20, 12, 0, 0, 0, time.UTC)
	created := now.AddDate(0, 0, -15)

	grades := []struct {
		profile   models.Profile
		matchDate time.Time
		grade     models.PickGrade
	}{
		{models.ProfileZeus, now.AddDate(0, 0, -2), models.PickGrade{Status: models.PickStatusWin, Profit: 0.91, ResultScore: "101-95"}},
		{models.ProfileZeus, now.AddDate(0, 0, -3), models.PickGrade{Status: models.PickStatusWin, Profit: 0.91, ResultScore: "99-90"}},
		{models.ProfileZeus, now.AddDate(0, 0, -4), models.PickGrade{Status: models.PickStatusLoss, Profit: -1, ResultScore: "90-99"}},
		{models.ProfileZeus, now.AddDate(0, 0, -5), models.PickGrade{Status: models.PickStatusPush, Profit: 0, ResultScore: "100-96"}},
		{models.ProfileZeus, now.AddDate(0, 0, -45), models.PickGrade{Status: models.PickStatusWin, Profit: 0.91, ResultScore: "110-90"}},
		{models.ProfileShiva, now.AddDate(0, 0, -1), models.PickGrade{Status: models.PickStatusLoss, Profit: -1, ResultScore: "100-101"}},
	}
	for _, g := range grades {
		p := pendingPick(g.profile, g.matchDate, created)
		require.NoError(t, repo.Create(ctx, p))
		require.NoError(t, repo.Grade(ctx, p.ID, g.grade))
	}
	require.NoError(t, repo.Create(ctx, pendingPick(models.ProfileLoki, now.AddDate(0, 0, -1), created)))

	summaries, err := NewProfileStats(repo).Summarize(ctx, now, DefaultStatsWindow)
	require.NoError(t, err)
	require.Len(t, summaries, len(models.Profiles))

	byProfile := make(map[models.Profile]ProfileSummary)
	for _, s := range summaries {
		byProfile[s.Profile] = s
	}

	zeus := byProfile[models.ProfileZeus]
	assert.Equal(t, 2, zeus.Wins)
	assert.Equal(t, 1, zeus.Losses)
	assert.Equal(t, 1, zeus.Pushes)
	assert.Equal(t, 0.82, zeus.Profit)
	assert.Equal(t, 66.7, zeus.WinRate)

	shiva := byProfile[models.ProfileShiva]
	assert.Equal(t, -1.0, shiva.Profit)
	assert.Equal(t, 0.0, shiva.WinRate)

	loki := byProfile[models.ProfileLoki]
	assert.Zero(t, loki.Wins+loki.Losses+loki.Pushes)

	var buf bytes.Buffer
	WriteProfileSummaries(&buf, summaries)
	assert.Contains(t, buf.String(), "ZEUS")
	assert.Contains(t, buf.String(), "+0.82")
	assert.Contains(t, buf.String(), "2-1-1")
}

func TestRefreshMetricsString(t *testing.T) {
	m := NewRefreshMetrics()
	m.GamesFetched = 10
	m.RecordTeam()
	m.RecordError()
	m.Finish()

	assert.Equal(t, 1, m.Teams())
	assert.Contains(t, m.String(), "Teams=1")
}
