// Package usecase implements the business logic for the portfolio feature.
package usecase

import "errors"

var (
	// ErrHoldingNotFound is returned when a holding cannot be found for removal.
	ErrHoldingNotFound = errors.New("holding not found")

	// ErrInvalidQuantity is returned when a buy request carries a non-positive quantity.
	ErrInvalidQuantity = errors.New("quantity must be positive")
)
