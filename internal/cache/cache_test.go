package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/godbot/internal/config"
	"github.com/yourusername/godbot/internal/models"
)

func sampleStats() *models.TeamStats {
	return &models.TeamStats{
		TeamName:      "Lakers",
		Season:        "2024",
		GamesPlayed:   10,
		PointsPerGame: 114.2,
		PointsAllowed: 110.1,
		Pace:          100,
		Efficiency:    4.1,
		RecentTrend:   2.4,
		DaysRest:      2,
		AvgMargin:     4.1,
		LastGameDate:  time.Date(2025, 1, 8, 3, 0, 0, 0, time.UTC),
	}
}

func TestMemoryTeamStatsCache(t *testing.T) {
	c := NewMemoryTeamStatsCache(time.Minute)
	ctx := context.Background()

	_, err := c.Get(ctx, "Lakers")
	assert.ErrorIs(t, err, models.ErrNotFound)

	stats := sampleStats()
	require.NoError(t, c.Upsert(ctx, "Lakers", stats))
	stats.GamesPlayed = 99

	got, err := c.Get(ctx, "Lakers")
	require.NoError(t, err)
	assert.Equal(t, 10, got.GamesPlayed)
	assert.Equal(t, 1, c.Len())
}

func TestNewSelectsDriver(t *testing.T) {
	c, closeFn, err := New(config.CacheConfig{Driver: "memory"}, nil)
	require.NoError(t, err)
	assert.IsType(t, &MemoryTeamStatsCache{}, c)
	assert.NoError(t, closeFn())

	c, closeFn, err = New(config.CacheConfig{Driver: "redis", RedisAddr: "localhost:6379"}, nil)
	require.NoError(t, err)
	assert.IsType(t, &RedisTeamStatsCache{}, c)
	assert.NoError(t, closeFn())

	_, _, err = New(config.CacheConfig{Driver: "postgres"}, nil)
	assert.Error(t, err)
}

func TestRedisKeyLayout(t *testing.T) {
	c := NewRedisTeamStatsCache(redis.NewClient(&redis.Options{Addr: "localhost:0"}), "", time.Hour)
	defer c.client.Close()
	assert.Equal(t, "godbot:team_stats:Lakers", c.key("Lakers"))
}

// Runs against a live server when GODBOT_TEST_REDIS_ADDR is set
func TestRedisTeamStatsCacheRoundTrip(t *testing.T) {
	addr := os.Getenv("GODBOT_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("GODBOT_TEST_REDIS_ADDR not set")
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	defer client.Close()

	c := NewRedisTeamStatsCache(client, "godbot_test", time.Minute)
	ctx := context.Background()
	require.NoError(t, c.Upsert(ctx, "Lakers", sampleStats()))

	got, err := c.Get(ctx, "Lakers")
	require.NoError(t, err)
	assert.Equal(t, 114.2, got.PointsPerGame)

	teams, err := c.Teams(ctx)
	require.NoError(t, err)
	assert.Contains(t, teams, "Lakers")

	_, err = c.Get(ctx, "Nobody")
	assert.ErrorIs(t, err, models.ErrNotFound)
}
