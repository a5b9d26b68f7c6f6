// Package entity defines the domain entities for the alerts feature.
package entity

import "time"

// AlertTick is the latest 24h price movement observed for a tracked symbol.
type AlertTick struct {
	// Symbol is the stream symbol in lower case (e.g. "btcusdt").
	Symbol string

	// Change24h is the 24h price change percentage reported by the exchange.
	Change24h float64

	// LastPrice is the most recent trade price.
	LastPrice float64

	// UpdatedAt is the event time of the tick.
	UpdatedAt time.Time
}

// Direction classifies the 24h movement as "up", "down" or "flat".
func (t AlertTick) Direction() string {
	switch {
	case t.Change24h > 0:
		return "up"
	case t.Change24h < 0:
		return "down"
	default:
		return "flat"
	}
}
