package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/godbot/internal/database"
	"github.com/yourusername/godbot/internal/models"
)

func newTestPickRepo(t *testing.T) *SQLitePickRepository {
	t.Helper()
	return NewSQLitePickRepository(database.SetupTestSQLite(t))
}

func testPick(profile models.Profile, matchDate time.Time) *models.Pick {
	now := time.Date(2025, 1, 9, 12, 0, 0, 0, time.UTC)
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
		Edge:      7,
		Status:    models.PickStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	p.Details = p.RenderDetails()
	return p
}

func TestSQLitePickCreateAndFindPending(t *testing.T) {
	repo := newTestPickRepo(t)
	ctx := context.Background()
	tipoff := time.Date(2025, 1, 10, 0, 30, 0, 0, time.UTC)

	pick := testPick(models.ProfileZeus, tipoff)
	require.NoError(t, repo.Create(ctx, pick))

	got, err := repo.FindPending(ctx, models.ProfileZeus, pick.Matchup, tipoff)
	require.NoError(t, err)
	assert.Equal(t, pick.ID, got.ID)
	assert.Equal(t, "Lakers -4.5", got.Details)
	assert.Equal(t, models.PickTypeSpread, got.Type)
	assert.True(t, tipoff.Equal(got.MatchDate))
	assert.Nil(t, got.Profit)
	assert.Nil(t, got.ResultScore)

	_, err = repo.FindPending(ctx, models.ProfileLoki, pick.Matchup, tipoff)
	assert.ErrorIs(t, err, models.ErrNotFound)

	_, err = repo.FindPending(ctx, models.ProfileZeus, pick.Matchup, tipoff.Add(time.Hour))
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestSQLitePickUpdateMovesLine(t *testing.T) {
	repo := newTestPickRepo(t)
	ctx := context.Background()
	pick := testPick(models.ProfileZeus, time.Date(2025, 1, 10, 0, 30, 0, 0, time.UTC))
	require.NoError(t, repo.Create(ctx, pick))

	err := repo.Update(ctx, pick.ID, models.PickUpdate{
		Type:    models.PickTypeSpread,
		Side:    models.PickSideAway,
		Line:    4.5,
		Details: "Celtics +4.5",
		Odds:    -105,
		Edge:    5.2,
	})
	require.NoError(t, err)

	picks, err := repo.FindAll(ctx, models.PickFilter{})
	require.NoError(t, err)
	require.Len(t, picks, 1)
	assert.Equal(t, models.PickSideAway, picks[0].Side)
	assert.Equal(t, 4.5, picks[0].Line)
	assert.Equal(t, -105.0, picks[0].Odds)
	assert.Equal(t, "Celtics +4.5", picks[0].Details)
}

func TestSQLitePickGradeOnlyOnce(t *testing.T) {
	repo := newTestPickRepo(t)
	ctx := context.Background()
	pick := testPick(models.ProfileZeus, time.Date(2025, 1, 10, 0, 30, 0, 0, time.UTC))
	require.NoError(t, repo.Create(ctx, pick))

	grade := models.PickGrade{Status: models.PickStatusWin, Profit: 0.91, ResultScore: "90-101"}
	require.NoError(t, repo.Grade(ctx, pick.ID, grade))

	err := repo.Grade(ctx, pick.ID, models.PickGrade{Status: models.PickStatusLoss, Profit: -1, ResultScore: "90-101"})
	assert.ErrorIs(t, err, models.ErrNotFound)

	err = repo.Update(ctx, pick.ID, models.PickUpdate{Type: models.PickTypeSpread, Side: models.PickSideHome, Odds: -110})
	assert.ErrorIs(t, err, models.ErrNotFound)

	picks, err := repo.FindAll(ctx, models.PickFilter{Statuses: []models.PickStatus{models.PickStatusWin}})
	require.NoError(t, err)
	require.Len(t, picks, 1)
	require.NotNil(t, picks[0].Profit)
	assert.Equal(t, 0.91, *picks[0].Profit)
	require.NotNil(t, picks[0].ResultScore)
	assert.Equal(t, "90-101", *picks[0].ResultScore)

	_, err = repo.FindPending(ctx, models.ProfileZeus, pick.Matchup, pick.MatchDate)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestSQLitePickFindAllFilters(t *testing.T) {
	repo := newTestPickRepo(t)
	ctx := context.Background()

	early := testPick(models.ProfileZeus, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	late := testPick(models.ProfileZeus, time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC))
	loki := testPick(models.ProfileLoki, time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC))
	for _, p := range []*models.Pick{early, late, loki} {
		require.NoError(t, repo.Create(ctx, p))
	}

	from := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	picks, err := repo.FindAll(ctx, models.PickFilter{Profile: models.ProfileZeus, From: &from})
	require.NoError(t, err)
	require.Len(t, picks, 1)
	assert.Equal(t, late.ID, picks[0].ID)

	all, err := repo.FindAll(ctx, models.PickFilter{Statuses: []models.PickStatus{models.PickStatusPending}})
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestSQLitePickDelete(t *testing.T) {
	repo := newTestPickRepo(t)
	ctx := context.Background()
	a := testPick(models.ProfileZeus, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	b := testPick(models.ProfileShiva, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, repo.Create(ctx, a))
	require.NoError(t, repo.Create(ctx, b))

	n, err := repo.Delete(ctx, a.ID, uuid.New())
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	left, err := repo.FindAll(ctx, models.PickFilter{})
	require.NoError(t, err)
	require.Len(t, left, 1)
	assert.Equal(t, b.ID, left[0].ID)
}

func TestBuildPickFilterPostgresPlaceholders(t *testing.T) {
	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	where, args := buildPickFilter(models.PickFilter{
		Profile:  models.ProfileLoki,
		Statuses: []models.PickStatus{models.PickStatusWin, models.PickStatusLoss},
		From:     &from,
	}, postgresDialect)

	assert.Equal(t, " WHERE profile = $1 AND status IN ($2, $3) AND match_date >= $4", where)
	assert.Len(t, args, 4)
	assert.Equal(t, from, args[3])
}
