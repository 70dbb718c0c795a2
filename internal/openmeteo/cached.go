package openmeteo

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/ngmaloney/poseidon/internal/cache"
	"github.com/ngmaloney/poseidon/internal/models"
)

// Coord is the cache key: a snapshot is shared by everyone asking for the
// same coordinate pair until it expires
type Coord struct {
	Lat, Lon float64
}

// CachedFetcher wraps a Fetcher with a per-coordinate TTL cache
type CachedFetcher struct {
	source Fetcher
	cache  *cache.TTL[Coord, *models.MarineSnapshot]
	ttl    time.Duration
	logger *zap.Logger
}

// NewCachedFetcher creates a cached wrapper around source
func NewCachedFetcher(source Fetcher, ttl time.Duration, clk cache.Clock, logger *zap.Logger) *CachedFetcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachedFetcher{
		source: source,
		cache:  cache.New[Coord, *models.MarineSnapshot](clk),
		ttl:    ttl,
		logger: logger,
	}
}

// Fetch returns the cached snapshot for (lat, lon) while it is younger than the TTL
func (c *CachedFetcher) Fetch(ctx context.Context, lat, lon float64, now time.Time) (*models.MarineSnapshot, error) {
	key := Coord{Lat: lat, Lon: lon}
	if age, ok := c.cache.Age(key); ok && age < c.ttl {
		c.logger.Debug("Marine cache hit",
			zap.Float64("lat", lat),
			zap.Float64("lon", lon),
			zap.Duration("age", age.Round(time.Second)))
	}

	return c.cache.GetOrFetch(ctx, key, c.ttl, func(ctx context.Context) (*models.MarineSnapshot, error) {
		return c.source.Fetch(ctx, lat, lon, now)
	})
}

// CacheStats returns statistics about cache hits and misses
func (c *CachedFetcher) CacheStats() (hits, misses int) {
	return c.cache.Stats()
}
