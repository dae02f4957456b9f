// Package mathutil provides common mathematical utility functions.
package mathutil

import (
	"math"

	"github.com/megamarcio/bhph-engine/pkg/constants"
)

// RoundWhole rounds a value to the nearest whole currency unit. Deal
// figures (installments, down payments) are quoted without cents; this is
// deliberate product behavior and must stay exact so totals reproduce.
func RoundWhole(val float64) float64 {
	return math.Round(val)
}

// Round rounds a value to two decimals, i.e. to represent real currency.
// Used for making logical comparisons.
func Round(val float64) float64 {
	return math.Round(val*constants.DecimalPrecision) / constants.DecimalPrecision
}

// IsZero checks if a value is effectively zero (within tolerance)
func IsZero(val float64) bool {
	return math.Abs(val) <= constants.CurrencyTolerance
}

// IsNegative checks if a value is negative (less than negative tolerance)
func IsNegative(val float64) bool {
	return val < -constants.CurrencyTolerance
}

// WithinTolerance checks if two values are within a specified tolerance
func WithinTolerance(val1, val2, tolerance float64) bool {
	return math.Abs(val1-val2) <= tolerance
}

// ApplyPercentage applies a percentage to a value
func ApplyPercentage(value, percentage float64) float64 {
	return value * (percentage / constants.PercentageMultiplier)
}
