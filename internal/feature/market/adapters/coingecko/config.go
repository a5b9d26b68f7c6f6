// Package coingecko provides a client for the CoinGecko market-data API.
package coingecko

import (
	"os"
	"time"
)

// DefaultBaseURL is the public CoinGecko API endpoint.
const DefaultBaseURL = "https://api.coingecko.com/api/v3"

// Config holds configuration for the CoinGecko API client.
type Config struct {
	BaseURL  string        // Base URL for the API
	Currency string        // Quote currency for prices (e.g. "usd")
	Timeout  time.Duration // HTTP request timeout
}

// LoadConfig loads CoinGecko configuration from environment variables,
// falling back to the public endpoint and USD quotes.
func LoadConfig() Config {
	cfg := Config{
		BaseURL:  os.Getenv("COINGECKO_BASE_URL"),
		Currency: os.Getenv("COINGECKO_CURRENCY"),
		Timeout:  10 * time.Second,
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Currency == "" {
		cfg.Currency = "usd"
	}
	return cfg
}
