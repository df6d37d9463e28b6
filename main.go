package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"weather-dashboard/api"
	"weather-dashboard/cache"
	"weather-dashboard/dashboard"
	"weather-dashboard/datasource"
	"weather-dashboard/events"
	"weather-dashboard/view"

	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: Error loading .env file: %v", err)
	}

	port := flag.Int("port", 8080, "Port to run the server on")
	configFile := flag.String("config", "config.json", "Path to configuration file")
	enableRateLimiting := flag.Bool("rate-limit", true, "Enable API rate limiting")
	refreshInterval := flag.Duration("refresh", 0, "Refetch the current location at this interval (0 disables)")
	flag.Parse()

	if v := os.Getenv("PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			*port = p
		}
	}

	config, err := datasource.LoadConfig(*configFile)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if config.OpenWeatherMap.APIKey == "" {
		// not fatal: every fetch reports the missing key on the dashboard
		log.Println("Warning: no OpenWeatherMap API key configured")
	}

	var source datasource.ForecastSource = datasource.NewOpenWeatherMapProvider(
		config.OpenWeatherMap.APIKey,
		datasource.WithBaseURL(config.OpenWeatherMap.BaseURL),
		datasource.WithSampleCount(config.OpenWeatherMap.Count),
	)

	if *enableRateLimiting && config.RateLimit.Enabled {
		source = datasource.NewRateLimitedForecastSource(source, config.RateLimit.RPS, config.RateLimit.Burst)
		log.Println("Applied rate limiting to OpenWeatherMap provider")
	}

	ttl := time.Duration(config.CacheTTL)
	var memCache *cache.CachedForecastSource
	if config.RedisURL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		client, err := cache.Connect(ctx, config.RedisURL)
		cancel()
		if err != nil {
			log.Fatalf("Redis connection failed: %v", err)
		}
		defer client.Close()
		source = cache.NewRedisForecastSource(source, client, ttl)
		log.Println("Redis connected successfully")
	} else {
		memCache = cache.NewCachedForecastSource(source, ttl)
		source = memCache
	}
	log.Printf("Forecast source: %s", source.Name())

	store := dashboard.NewStore(source)

	if len(config.Kafka.Brokers) > 0 {
		pub, err := events.NewPublisher(config.Kafka.Brokers, config.Kafka.Topic)
		if err != nil {
			log.Fatalf("Kafka setup failed: %v", err)
		}
		defer pub.Close()
		unsubscribe := store.Subscribe(events.Subscriber(pub))
		defer unsubscribe()
	}

	opts := view.Options{
		UseCityTimezone: config.UseCityTimezone,
		ForecastDays:    config.ForecastDays,
		TimelineLength:  config.TimelineLength,
	}
	server := api.NewServer(store, opts, *port)

	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, syscall.SIGINT, syscall.SIGTERM)
	done := make(chan struct{})

	if config.DefaultLocation != "" {
		store.Select(config.DefaultLocation)
	}

	go func() {
		var refresh <-chan time.Time
		if *refreshInterval > 0 {
			ticker := time.NewTicker(*refreshInterval)
			defer ticker.Stop()
			refresh = ticker.C
		}

		prune := time.NewTicker(time.Hour)
		defer prune.Stop()

		for {
			select {
			case <-refresh:
				store.Refresh()
			case <-prune.C:
				if memCache != nil {
					if n := memCache.Prune(); n > 0 {
						log.Printf("Pruned %d expired forecasts from cache", n)
					}
				}
			case <-done:
				return
			}
		}
	}()

	go func() {
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("Server stopped: %v", err)
			shutdownChan <- syscall.SIGTERM
		}
	}()

	sig := <-shutdownChan
	log.Printf("Shutting down due to %s signal", sig)
	close(done)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
	store.Close()

	log.Println("Shutdown complete")
}
