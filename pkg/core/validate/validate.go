// Package validate provides reusable financial validation utilities.
// These functions can be called from tests, API handlers, or the
// compliance engine to verify data integrity and derived metrics.
package validate

import (
	"math"
)

// CalculateYoY calculates year-over-year change between two values.
// Returns percentage change: (current - prior) / prior * 100
func CalculateYoY(current, prior float64) float64 {
	if prior == 0 {
		if current == 0 {
			return 0
		}
		return math.Inf(1) // Infinite growth from zero
	}
	return (current - prior) / prior * 100
}

// BalanceCheck verifies Assets = Liabilities + Equity.
type BalanceCheck struct {
	TotalAssets      float64
	TotalLiabilities float64
	TotalEquity      float64
	ComputedAssets   float64 // L + E
	Difference       float64
	IsBalanced       bool
	Tolerance        float64
}

// CheckBalanceEquation validates A = L + E within tolerance.
func CheckBalanceEquation(assets, liabilities, equity, tolerance float64) *BalanceCheck {
	computed := liabilities + equity
	diff := assets - computed

	return &BalanceCheck{
		TotalAssets:      assets,
		TotalLiabilities: liabilities,
		TotalEquity:      equity,
		ComputedAssets:   computed,
		Difference:       diff,
		IsBalanced:       math.Abs(diff) <= tolerance,
		Tolerance:        tolerance,
	}
}

// VarianceCheck identifies whether a reconciliation difference stays
// within a relative tolerance of the reference value.
type VarianceCheck struct {
	Reference  float64
	Computed   float64
	Difference float64
	Tolerance  float64 // relative, e.g. 0.05 for 5%
	WithinBand bool
}

// CheckRelativeVariance validates |reference - computed| < reference * tolerance.
func CheckRelativeVariance(reference, computed, tolerancePct float64) *VarianceCheck {
	diff := math.Abs(reference - computed)
	return &VarianceCheck{
		Reference:  reference,
		Computed:   computed,
		Difference: diff,
		Tolerance:  tolerancePct,
		WithinBand: diff < math.Abs(reference)*tolerancePct,
	}
}
