package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/yourusername/godbot/internal/models"
)

const defaultKeyPrefix = "godbot"

// RedisTeamStatsCache stores snapshots as JSON strings with a TTL
type RedisTeamStatsCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisTeamStatsCache creates a Redis-backed cache
func NewRedisTeamStatsCache(client *redis.Client, prefix string, ttl time.Duration) *RedisTeamStatsCache {
	if prefix == "" {
		prefix = defaultKeyPrefix
	}
	return &RedisTeamStatsCache{client: client, prefix: prefix, ttl: ttl}
}

func (c *RedisTeamStatsCache) key(teamName string) string {
	return fmt.Sprintf("%s:team_stats:%s", c.prefix, teamName)
}

// Upsert writes the snapshot and refreshes the team index
func (c *RedisTeamStatsCache) Upsert(ctx context.Context, teamName string, stats *models.TeamStats) error {
	data, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("marshaling team stats: %w", err)
	}

	indexKey := c.prefix + ":team_stats:index"
	pipe := c.client.Pipeline()
	pipe.Set(ctx, c.key(teamName), data, c.ttl)
	pipe.SAdd(ctx, indexKey, teamName)
	pipe.Expire(ctx, indexKey, c.ttl)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("writing team stats: %w: %w", models.ErrPersistence, err)
	}
	return nil
}

// Get reads a snapshot, returning models.ErrNotFound on a miss
func (c *RedisTeamStatsCache) Get(ctx context.Context, teamName string) (*models.TeamStats, error) {
	data, err := c.client.Get(ctx, c.key(teamName)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("reading team stats: %w: %w", models.ErrPersistence, err)
	}

	var stats models.TeamStats
	if err := json.Unmarshal(data, &stats); err != nil {
		return nil, fmt.Errorf("unmarshaling team stats: %w", err)
	}
	return &stats, nil
}

// Teams lists the teams written since the index last expired
func (c *RedisTeamStatsCache) Teams(ctx context.Context) ([]string, error) {
	return c.client.SMembers(ctx, c.prefix+":team_stats:index").Result()
}
