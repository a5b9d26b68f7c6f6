// Package entity defines the domain entities for the portfolio feature.
package entity

import "time"

// Holding represents a single simulated purchase of a crypto asset.
// Each buy creates a new row; selling removes rows by ID or symbol.
type Holding struct {
	// ID is the unique identifier for the holding.
	ID uint `gorm:"primaryKey"`

	// UserID is the owner of this holding.
	UserID uint `gorm:"index;not null"`

	// Symbol is the asset identifier used for price lookups (e.g. "bitcoin").
	Symbol string `gorm:"size:64;not null;index"`

	// Quantity is the amount of the asset purchased.
	Quantity float64 `gorm:"not null"`

	// PriceBought is the unit price at the time of purchase.
	PriceBought float64 `gorm:"not null"`

	// TransactionDate is the time the purchase was recorded.
	TransactionDate time.Time

	// CreatedAt is the timestamp when the row was created.
	CreatedAt time.Time

	// UpdatedAt is the timestamp when the row was last updated.
	UpdatedAt time.Time
}
