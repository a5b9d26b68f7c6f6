// Package dto defines data transfer objects for the CoinGecko API responses.
package dto

// MarketEntry represents one element of the /coins/markets response array.
type MarketEntry struct {
	ID                       string  `json:"id"`
	Symbol                   string  `json:"symbol"`
	Name                     string  `json:"name"`
	CurrentPrice             float64 `json:"current_price"`
	PriceChangePercentage24h float64 `json:"price_change_percentage_24h"`
	TotalVolume              float64 `json:"total_volume"`
}
