// Package cache stores the latest team stats snapshot for readers outside
// the scan run.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/yourusername/godbot/internal/config"
	"github.com/yourusername/godbot/internal/models"
	"github.com/yourusername/godbot/internal/repository"
)

// DefaultTTL applies when cache.ttl is unset
const DefaultTTL = 24 * time.Hour

// TeamStatsCache is the write side used by the stats refresh job
type TeamStatsCache interface {
	Upsert(ctx context.Context, teamName string, stats *models.TeamStats) error
	Get(ctx context.Context, teamName string) (*models.TeamStats, error)
}

// New builds the configured cache. The postgres driver writes through the
// store's team_stats table.
func New(cfg config.CacheConfig, repos *repository.Repositories) (TeamStatsCache, func() error, error) {
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	switch cfg.Driver {
	case "", "memory":
		return NewMemoryTeamStatsCache(ttl), func() error { return nil }, nil
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		return NewRedisTeamStatsCache(client, cfg.KeyPrefix, ttl), client.Close, nil
	case "postgres":
		if repos == nil || repos.TeamStats == nil {
			return nil, nil, fmt.Errorf("postgres cache requires the postgres store")
		}
		return repos.TeamStats, func() error { return nil }, nil
	default:
		return nil, nil, fmt.Errorf("unknown cache driver: %s", cfg.Driver)
	}
}
