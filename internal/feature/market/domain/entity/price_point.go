// Package entity defines the domain models for market data.
package entity

import "time"

// PricePoint represents one historical closing price for an asset.
// Points are ordered by time and immutable once fetched.
type PricePoint struct {
	Time  time.Time // Timestamp of the candle open
	Close float64   // Closing price in quote currency
}

// Closes extracts the closing prices of an ordered point series.
func Closes(points []PricePoint) []float64 {
	out := make([]float64, len(points))
	for i, p := range points {
		out[i] = p.Close
	}
	return out
}
