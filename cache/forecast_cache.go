package cache

import (
	"context"
	"log"
	"strings"
	"sync"
	"time"

	"weather-dashboard/datasource"
	"weather-dashboard/models"
)

// CachedForecastSource wraps a ForecastSource and adds caching functionality
type CachedForecastSource struct {
	source         datasource.ForecastSource
	cache          map[string]forecastCacheEntry // key is the normalized location
	mutex          sync.RWMutex
	cacheDuration  time.Duration
	cacheHitCount  int
	cacheMissCount int
	now            func() time.Time
}

// forecastCacheEntry represents a cached forecast with its timestamp
type forecastCacheEntry struct {
	Data      *models.ForecastResponse
	Timestamp time.Time
}

// NewCachedForecastSource creates a new cached wrapper around a forecast source
func NewCachedForecastSource(source datasource.ForecastSource, cacheDuration time.Duration) *CachedForecastSource {
	return &CachedForecastSource{
		source:        source,
		cache:         make(map[string]forecastCacheEntry),
		cacheDuration: cacheDuration,
		now:           time.Now,
	}
}

// Name returns the name of the underlying forecast source with [Cached] suffix
func (c *CachedForecastSource) Name() string {
	return c.source.Name() + " [Cached]"
}

// FetchForecast fetches forecast data, using cache when available.
// Errors are never cached.
func (c *CachedForecastSource) FetchForecast(ctx context.Context, location string) (*models.ForecastResponse, error) {
	cacheKey := Key(location)

	// First check if we have this forecast in the cache
	c.mutex.RLock()
	entry, found := c.cache[cacheKey]
	c.mutex.RUnlock()

	// If found and not expired, return the cached forecast
	if found && c.now().Sub(entry.Timestamp) < c.cacheDuration {
		c.mutex.Lock()
		c.cacheHitCount++
		c.mutex.Unlock()

		log.Printf("Forecast Cache HIT for %s from %s (age: %s)",
			location, c.source.Name(), c.now().Sub(entry.Timestamp).Round(time.Second))

		return entry.Data, nil
	}

	// Cache miss or expired, fetch fresh forecast
	c.mutex.Lock()
	c.cacheMissCount++
	c.mutex.Unlock()

	log.Printf("Forecast Cache MISS for %s from %s, fetching fresh data...", location, c.source.Name())

	forecast, err := c.source.FetchForecast(ctx, location)
	if err != nil {
		return nil, err
	}

	// Store in cache
	c.mutex.Lock()
	c.cache[cacheKey] = forecastCacheEntry{
		Data:      forecast,
		Timestamp: c.now(),
	}
	c.mutex.Unlock()

	return forecast, nil
}

// CacheStats returns statistics about cache hits and misses
func (c *CachedForecastSource) CacheStats() (hits, misses int) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return c.cacheHitCount, c.cacheMissCount
}

// Prune removes expired entries and reports how many were dropped
func (c *CachedForecastSource) Prune() int {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	pruned := 0
	for key, entry := range c.cache {
		if c.now().Sub(entry.Timestamp) >= c.cacheDuration {
			delete(c.cache, key)
			pruned++
		}
	}
	return pruned
}

// Key normalizes a location into a cache key
func Key(location string) string {
	return "forecast:" + strings.ToLower(strings.TrimSpace(location))
}

// Ensure CachedForecastSource implements ForecastSource
var _ datasource.ForecastSource = (*CachedForecastSource)(nil)
