package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"weather-dashboard/cache"
	"weather-dashboard/dashboard"
	"weather-dashboard/datasource"
	"weather-dashboard/view"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	configFile := flag.String("config", "config.json", "Path to configuration file")
	location := flag.String("q", "", "Location to show (defaults to the configured location)")
	days := flag.Int("days", 0, "Number of forecast days (0 uses the configured value)")
	timeout := flag.Duration("timeout", 15*time.Second, "Request timeout")
	flag.Parse()

	config, err := datasource.LoadConfig(*configFile)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	var source datasource.ForecastSource = datasource.NewOpenWeatherMapProvider(
		config.OpenWeatherMap.APIKey,
		datasource.WithBaseURL(config.OpenWeatherMap.BaseURL),
		datasource.WithSampleCount(config.OpenWeatherMap.Count),
	)

	// share responses with a running dashboard when Redis is configured
	if config.RedisURL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		client, err := cache.Connect(ctx, config.RedisURL)
		cancel()
		if err != nil {
			log.Printf("Warning: Redis unavailable, fetching directly: %v", err)
		} else {
			defer client.Close()
			source = cache.NewRedisForecastSource(source, client, time.Duration(config.CacheTTL))
		}
	}

	query := *location
	if query == "" && flag.NArg() > 0 {
		query = flag.Arg(0)
	}
	if query == "" {
		query = config.DefaultLocation
	}

	store := dashboard.NewStore(source, dashboard.WithFetchTimeout(*timeout))
	store.Select(query)
	store.Wait()
	snap := store.Snapshot()
	store.Close()

	opts := view.Options{
		UseCityTimezone: config.UseCityTimezone,
		ForecastDays:    config.ForecastDays,
		TimelineLength:  config.TimelineLength,
	}
	if *days > 0 {
		opts.ForecastDays = *days
	}

	if err := view.RenderText(os.Stdout, view.Build(snap, opts)); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
		os.Exit(1)
	}
	if snap.Status == dashboard.StatusError {
		os.Exit(1)
	}
}
