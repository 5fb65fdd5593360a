package datasource

import (
	"context"
	"time"

	cache "github.com/patrickmn/go-cache"

	"github.com/yourusername/godbot/internal/metrics"
	"github.com/yourusername/godbot/internal/models"
)

// Provider cache hints
const (
	DefaultOddsCacheTTL   = 300 * time.Second
	DefaultScoresCacheTTL = 60 * time.Second
)

// CachedGameSource memoizes a GameSource for a short TTL
type CachedGameSource struct {
	next  GameSource
	cache *cache.Cache
}

// NewCachedGameSource wraps next with a TTL cache
func NewCachedGameSource(next GameSource, ttl time.Duration) *CachedGameSource {
	if ttl <= 0 {
		ttl = DefaultScoresCacheTTL
	}
	return &CachedGameSource{next: next, cache: cache.New(ttl, ttl*2)}
}

// GetGames returns the cached season when present
func (s *CachedGameSource) GetGames(ctx context.Context, season string) ([]models.Game, error) {
	key := "season:" + season
	if v, ok := lookup[[]models.Game](s.cache, "games", key); ok {
		return v, nil
	}
	games, err := s.next.GetGames(ctx, season)
	if err != nil {
		return nil, err
	}
	s.cache.SetDefault(key, games)
	return games, nil
}

// GetGamesByDate returns the cached date when present
func (s *CachedGameSource) GetGamesByDate(ctx context.Context, date time.Time) ([]models.Game, error) {
	key := "date:" + date.UTC().Format(dateLayout)
	if v, ok := lookup[[]models.Game](s.cache, "games", key); ok {
		return v, nil
	}
	games, err := s.next.GetGamesByDate(ctx, date)
	if err != nil {
		return nil, err
	}
	s.cache.SetDefault(key, games)
	return games, nil
}

// CachedOddsSource memoizes an OddsSource for a short TTL
type CachedOddsSource struct {
	next  OddsSource
	cache *cache.Cache
}

// NewCachedOddsSource wraps next with a TTL cache
func NewCachedOddsSource(next OddsSource, ttl time.Duration) *CachedOddsSource {
	if ttl <= 0 {
		ttl = DefaultOddsCacheTTL
	}
	return &CachedOddsSource{next: next, cache: cache.New(ttl, ttl*2)}
}

// GetOdds returns cached quotes when present
func (s *CachedOddsSource) GetOdds(ctx context.Context, sport, region string) ([]models.OddsEvent, error) {
	key := sport + ":" + region
	if v, ok := lookup[[]models.OddsEvent](s.cache, "odds", key); ok {
		return v, nil
	}
	events, err := s.next.GetOdds(ctx, sport, region)
	if err != nil {
		return nil, err
	}
	s.cache.SetDefault(key, events)
	return events, nil
}

// CachedInjurySource memoizes an InjurySource for a short TTL
type CachedInjurySource struct {
	next  InjurySource
	cache *cache.Cache
}

// NewCachedInjurySource wraps next with a TTL cache
func NewCachedInjurySource(next InjurySource, ttl time.Duration) *CachedInjurySource {
	if ttl <= 0 {
		ttl = DefaultScoresCacheTTL
	}
	return &CachedInjurySource{next: next, cache: cache.New(ttl, ttl*2)}
}

// GetInjuries returns the cached report when present
func (s *CachedInjurySource) GetInjuries(ctx context.Context, date time.Time) ([]models.InjuryReport, error) {
	key := date.UTC().Format(dateLayout)
	if v, ok := lookup[[]models.InjuryReport](s.cache, "injuries", key); ok {
		return v, nil
	}
	reports, err := s.next.GetInjuries(ctx, date)
	if err != nil {
		return nil, err
	}
	s.cache.SetDefault(key, reports)
	return reports, nil
}

func lookup[T any](c *cache.Cache, kind, key string) (T, bool) {
	var zero T
	v, found := c.Get(key)
	if !found {
		metrics.RecordCacheLookup(kind, false)
		return zero, false
	}
	typed, ok := v.(T)
	metrics.RecordCacheLookup(kind, ok)
	return typed, ok
}
