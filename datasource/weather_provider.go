package datasource

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"weather-dashboard/models"
)

// ForecastSource is an interface for services that can fetch weather forecasts
type ForecastSource interface {
	// FetchForecast fetches the 3-hour forecast series for a location
	FetchForecast(ctx context.Context, location string) (*models.ForecastResponse, error)

	// Name returns the source's name
	Name() string
}

// Duration is a time.Duration read from a JSON string such as "10m"
type Duration time.Duration

// UnmarshalJSON implements json.Unmarshaler
func (d *Duration) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("duration must be a string: %w", err)
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

// MarshalJSON implements json.Marshaler
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

// Config represents the application configuration
type Config struct {
	OpenWeatherMap struct {
		APIKey  string `json:"apiKey"`
		BaseURL string `json:"baseURL"`
		Count   int    `json:"count"` // samples per request, 3 hours apart
	} `json:"openWeatherMap"`

	// Location shown until the user picks another one
	DefaultLocation string `json:"defaultLocation"`

	CacheTTL Duration `json:"cacheTTL"`

	RateLimit struct {
		Enabled bool    `json:"enabled"`
		RPS     float64 `json:"rps"`
		Burst   int     `json:"burst"`
	} `json:"rateLimit"`

	// Format times in the city's own offset instead of the process zone
	UseCityTimezone bool `json:"useCityTimezone"`

	ForecastDays   int `json:"forecastDays"`
	TimelineLength int `json:"timelineLength"`

	RedisURL string `json:"redisURL"`

	Kafka struct {
		Brokers []string `json:"brokers"`
		Topic   string   `json:"topic"`
	} `json:"kafka"`
}

// LoadConfig loads configuration from a JSON file on top of DefaultConfig.
// A missing file is not an error. Environment variables override the file.
func LoadConfig(filename string) (*Config, error) {
	config := DefaultConfig()

	file, err := os.Open(filename)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, err
	default:
		defer file.Close()
		decoder := json.NewDecoder(file)
		if err := decoder.Decode(config); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", filename, err)
		}
	}

	config.applyEnv()
	if err := config.validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func (c *Config) validate() error {
	if c.RateLimit.Enabled && (c.RateLimit.RPS <= 0 || c.RateLimit.Burst < 1) {
		return fmt.Errorf("rateLimit needs a positive rps and burst, got rps=%v burst=%d",
			c.RateLimit.RPS, c.RateLimit.Burst)
	}
	return nil
}

// DefaultConfig creates a default configuration
func DefaultConfig() *Config {
	config := &Config{}
	config.OpenWeatherMap.BaseURL = DefaultBaseURL
	config.OpenWeatherMap.Count = DefaultSampleCount
	config.DefaultLocation = "London"
	config.CacheTTL = Duration(10 * time.Minute)
	// OpenWeatherMap free tier allows 60 calls/minute
	config.RateLimit.Enabled = true
	config.RateLimit.RPS = 1.0
	config.RateLimit.Burst = 5
	config.UseCityTimezone = true
	config.ForecastDays = 6
	config.TimelineLength = 8
	config.Kafka.Topic = "forecast-updates"
	return config
}

func (c *Config) applyEnv() {
	if v := os.Getenv("OPENWEATHERMAP_API_KEY"); v != "" {
		c.OpenWeatherMap.APIKey = v
	}
	if v := os.Getenv("WEATHER_LOCATION"); v != "" {
		c.DefaultLocation = v
	}
	if v := os.Getenv("REDIS_URL"); v != "" {
		c.RedisURL = v
	}
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		c.Kafka.Brokers = strings.Split(v, ",")
	}
	if v := os.Getenv("KAFKA_TOPIC"); v != "" {
		c.Kafka.Topic = v
	}
}
