package entity

import (
	statsdomain "portfolio_backend/internal/feature/stats/domain"
)

// Position is a holding enriched with its current market price.
type Position struct {
	Holding  Holding
	PriceNow float64
}

// Performance returns the percentage gain or loss of this position
// against its purchase price.
// Returns statsdomain.ErrDegenerateInput when the purchase price is zero,
// mirroring the zero-cost guard in Aggregate.
func (p Position) Performance() (float64, error) {
	if p.Holding.PriceBought == 0 {
		return 0, statsdomain.ErrDegenerateInput
	}
	return (p.PriceNow - p.Holding.PriceBought) / p.Holding.PriceBought * 100, nil
}

// Valuation is the aggregated value of an entire portfolio.
type Valuation struct {
	TotalBought    float64
	TotalCurrent   float64
	PerformancePct float64
}

// Aggregate computes the portfolio-wide valuation over all positions.
// The overall performance is weighted by position size, not a simple
// average of per-position percentages.
// Returns statsdomain.ErrDegenerateInput when the total purchase cost is zero.
func Aggregate(positions []Position) (Valuation, error) {
	var v Valuation
	for _, p := range positions {
		v.TotalBought += p.Holding.PriceBought * p.Holding.Quantity
		v.TotalCurrent += p.PriceNow * p.Holding.Quantity
	}
	if v.TotalBought == 0 {
		return Valuation{}, statsdomain.ErrDegenerateInput
	}
	v.PerformancePct = (v.TotalCurrent - v.TotalBought) / v.TotalBought * 100
	return v, nil
}
