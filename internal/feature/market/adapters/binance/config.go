// Package binance provides a client for the Binance public candlestick API.
package binance

import (
	"os"
	"time"
)

// DefaultBaseURL is the public Binance REST API endpoint.
const DefaultBaseURL = "https://api.binance.com"

// Config holds configuration for the Binance REST client.
type Config struct {
	BaseURL string        // Base URL for the API
	Timeout time.Duration // HTTP request timeout
}

// LoadConfig loads Binance configuration from environment variables,
// falling back to the public endpoint.
func LoadConfig() Config {
	cfg := Config{
		BaseURL: os.Getenv("BINANCE_BASE_URL"),
		Timeout: 10 * time.Second,
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	return cfg
}
