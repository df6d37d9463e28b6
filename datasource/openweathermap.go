package datasource

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"weather-dashboard/models"
)

const (
	// DefaultBaseURL is the OpenWeatherMap 2.5 API root
	DefaultBaseURL = "https://api.openweathermap.org/data/2.5"

	// DefaultSampleCount asks for 56 samples, 3 hours apart (7 days)
	DefaultSampleCount = 56
)

// OpenWeatherMapProvider fetches the 3-hour forecast series from OpenWeatherMap
type OpenWeatherMapProvider struct {
	apiKey     string
	baseURL    string
	count      int
	httpClient *http.Client
}

// Option customises an OpenWeatherMapProvider
type Option func(*OpenWeatherMapProvider)

// WithBaseURL points the provider at another API root (used by tests)
func WithBaseURL(baseURL string) Option {
	return func(p *OpenWeatherMapProvider) {
		if baseURL != "" {
			p.baseURL = strings.TrimRight(baseURL, "/")
		}
	}
}

// WithSampleCount changes the cnt parameter
func WithSampleCount(count int) Option {
	return func(p *OpenWeatherMapProvider) {
		if count > 0 {
			p.count = count
		}
	}
}

// WithHTTPClient replaces the default client
func WithHTTPClient(client *http.Client) Option {
	return func(p *OpenWeatherMapProvider) {
		if client != nil {
			p.httpClient = client
		}
	}
}

// NewOpenWeatherMapProvider creates a new OpenWeatherMap provider
func NewOpenWeatherMapProvider(apiKey string, opts ...Option) *OpenWeatherMapProvider {
	p := &OpenWeatherMapProvider{
		apiKey:  apiKey,
		baseURL: DefaultBaseURL,
		count:   DefaultSampleCount,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Name returns the provider name
func (p *OpenWeatherMapProvider) Name() string {
	return "OpenWeatherMap"
}

// FetchForecast fetches the forecast series for a location. Raw units are
// kept (Kelvin, m/s, meters); conversion happens at display time.
func (p *OpenWeatherMapProvider) FetchForecast(ctx context.Context, location string) (*models.ForecastResponse, error) {
	if p.apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	// Build URL
	endpoint := fmt.Sprintf("%s/forecast", p.baseURL)
	params := url.Values{}
	params.Add("q", location)
	params.Add("appid", p.apiKey)
	params.Add("cnt", strconv.Itoa(p.count))

	// Create request
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	// Execute request
	resp, err := p.httpClient.Do(req)
	if err != nil {
		// url.Error repeats the request URL, which carries the API key
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			err = urlErr.Err
		}
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	// Read response body
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	// Check for error status code
	if resp.StatusCode != http.StatusOK {
		return nil, newProviderError(resp.StatusCode, body)
	}

	// Parse response
	var response models.ForecastResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	return &response, nil
}

func newProviderError(status int, body []byte) *ProviderError {
	var errResp struct {
		Cod     models.Code `json:"cod"`
		Message string      `json:"message"`
	}
	_ = json.Unmarshal(body, &errResp)

	return &ProviderError{
		StatusCode: status,
		Message:    errResp.Message,
	}
}
