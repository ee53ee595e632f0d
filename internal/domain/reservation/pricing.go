package reservation

import (
	"fmt"
	"math"
)

// PricingStrategy defines the interface for calculating reservation totals.
type PricingStrategy interface {
	// Calculate returns the total in cents for the given parameters.
	Calculate(params PricingParams) (int64, error)
}

// PricingParams holds the inputs for price calculation.
type PricingParams struct {
	Nights             int
	PricePerNightCents int64
}

// NightlyPricingStrategy charges the listing's nightly price for every night.
type NightlyPricingStrategy struct{}

// NewNightlyPricingStrategy creates a NightlyPricingStrategy.
func NewNightlyPricingStrategy() *NightlyPricingStrategy {
	return &NightlyPricingStrategy{}
}

// Calculate computes nights * price per night.
func (s *NightlyPricingStrategy) Calculate(params PricingParams) (int64, error) {
	if params.Nights < 1 {
		return 0, fmt.Errorf("nights must be at least 1, got %d", params.Nights)
	}
	if params.PricePerNightCents <= 0 {
		return 0, fmt.Errorf("price per night must be positive, got %d", params.PricePerNightCents)
	}
	if params.PricePerNightCents > math.MaxInt64/int64(params.Nights) {
		return 0, fmt.Errorf("total overflows for %d nights at %d", params.Nights, params.PricePerNightCents)
	}
	return int64(params.Nights) * params.PricePerNightCents, nil
}
