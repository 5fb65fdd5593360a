package cache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/yourusername/godbot/internal/models"
)

// MemoryTeamStatsCache keeps snapshots in process for a TTL
type MemoryTeamStatsCache struct {
	cache *gocache.Cache
}

// NewMemoryTeamStatsCache creates an in-process cache
func NewMemoryTeamStatsCache(ttl time.Duration) *MemoryTeamStatsCache {
	return &MemoryTeamStatsCache{cache: gocache.New(ttl, ttl*2)}
}

// Upsert stores a copy of the snapshot
func (c *MemoryTeamStatsCache) Upsert(_ context.Context, teamName string, stats *models.TeamStats) error {
	snapshot := *stats
	c.cache.SetDefault(teamName, snapshot)
	return nil
}

// Get returns the snapshot or models.ErrNotFound
func (c *MemoryTeamStatsCache) Get(_ context.Context, teamName string) (*models.TeamStats, error) {
	v, ok := c.cache.Get(teamName)
	if !ok {
		return nil, models.ErrNotFound
	}
	snapshot := v.(models.TeamStats)
	return &snapshot, nil
}

// Len returns the number of unexpired snapshots
func (c *MemoryTeamStatsCache) Len() int {
	return c.cache.ItemCount()
}
