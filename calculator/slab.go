package calculator

import "math"

// clamp maps negative, NaN and missing inputs to zero.
func clamp(v float64) float64 {
	if !(v > 0) {
		return 0
	}
	return v
}

// saturate caps an overflowed positive result at the largest finite float.
func saturate(v float64) float64 {
	if math.IsInf(v, 1) || math.IsNaN(v) {
		return math.MaxFloat64
	}
	return v
}

// ProgressiveTax walks the table in ascending order and taxes each band of
// taxable income at its slab rate. Negative income is treated as zero.
func ProgressiveTax(taxable float64, table SlabTable) float64 {
	remaining := clamp(taxable)
	prevBound := 0.0
	tax := 0.0
	for _, slab := range table {
		if remaining <= 0 {
			break
		}
		inSlab := math.Min(remaining, slab.UpperBound-prevBound)
		tax += inSlab * slab.Rate
		remaining -= inSlab
		prevBound = slab.UpperBound
	}
	return tax
}

// MarginalRate is the rate applied to the last rupee of taxable income.
func MarginalRate(taxable float64, table SlabTable) float64 {
	taxable = clamp(taxable)
	if taxable == 0 || len(table) == 0 {
		return 0
	}
	for _, slab := range table {
		if taxable <= slab.UpperBound {
			return slab.Rate
		}
	}
	return table[len(table)-1].Rate
}
