package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"weather-dashboard/datasource"
	"weather-dashboard/models"

	"github.com/redis/go-redis/v9"
)

// RedisForecastSource caches forecast responses in Redis. Redis problems
// are logged and the underlying source is used directly.
type RedisForecastSource struct {
	source datasource.ForecastSource
	redis  *redis.Client
	ttl    time.Duration
}

// NewRedisForecastSource creates a Redis backed cache around source
func NewRedisForecastSource(source datasource.ForecastSource, client *redis.Client, ttl time.Duration) *RedisForecastSource {
	return &RedisForecastSource{
		source: source,
		redis:  client,
		ttl:    ttl,
	}
}

// Connect parses a redis:// URL and checks the server answers
func Connect(ctx context.Context, redisURL string) (*redis.Client, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, err
	}
	return client, nil
}

// Name returns the name of the underlying forecast source with [Redis] suffix
func (r *RedisForecastSource) Name() string {
	return r.source.Name() + " [Redis]"
}

// FetchForecast returns the cached response for location or fetches and stores it
func (r *RedisForecastSource) FetchForecast(ctx context.Context, location string) (*models.ForecastResponse, error) {
	key := Key(location)

	data, err := r.redis.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var cached models.ForecastResponse
		if json.Unmarshal(data, &cached) == nil {
			log.Printf("Forecast Cache HIT: %s", key)
			return &cached, nil
		}
		log.Printf("Discarding unreadable cache entry %s", key)
	case errors.Is(err, redis.Nil):
	default:
		log.Printf("Redis GET error %s: %v", key, err)
	}

	forecast, err := r.source.FetchForecast(ctx, location)
	if err != nil {
		return nil, err
	}

	value, err := json.Marshal(forecast)
	if err != nil {
		log.Printf("Failed to marshal forecast for %s: %v", key, err)
		return forecast, nil
	}
	if err := r.redis.Set(ctx, key, value, r.ttl).Err(); err != nil {
		log.Printf("Redis SET error %s: %v", key, err)
	}

	return forecast, nil
}

var _ datasource.ForecastSource = (*RedisForecastSource)(nil)
