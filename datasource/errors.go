package datasource

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// ErrMissingAPIKey is returned for every request when no API key is configured
var ErrMissingAPIKey = errors.New("invalid API key: no OpenWeatherMap API key configured")

// ProviderError is a non-200 answer from the weather provider
type ProviderError struct {
	StatusCode int
	Message    string // provider supplied message, if any
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("API error (status %d): %s", e.StatusCode, e.Message)
}

// UserMessage returns the text shown to the user for a failed fetch.
// Provider messages are passed through unchanged.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	var providerErr *ProviderError
	switch {
	case errors.As(err, &providerErr):
		if providerErr.Message != "" {
			return providerErr.Message
		}
		return http.StatusText(providerErr.StatusCode)
	case errors.Is(err, ErrMissingAPIKey):
		return ErrMissingAPIKey.Error()
	case errors.Is(err, context.DeadlineExceeded):
		return "the weather service did not answer in time"
	default:
		return "could not reach the weather service: " + err.Error()
	}
}
