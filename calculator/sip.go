package calculator

import (
	"math"

	"fincalc-agent/domain"
)

// ComputeSIP projects a monthly contribution with contributions made at the
// start of each month (annuity due).
func ComputeSIP(monthlyAmount float64, durationYears int, assumedRatePct float64) domain.SIPResult {
	m := clamp(monthlyAmount)
	n := durationYears * 12
	if n <= 0 {
		return domain.SIPResult{}
	}
	return sipAt(m, clamp(assumedRatePct)/12/100, n)
}

// SIPProjection reports the invested amount and value at every year end.
func SIPProjection(monthlyAmount float64, durationYears int, assumedRatePct float64) []domain.SIPYear {
	m := clamp(monthlyAmount)
	i := clamp(assumedRatePct) / 12 / 100
	years := make([]domain.SIPYear, 0, max(durationYears, 0))
	for year := 1; year <= durationYears; year++ {
		res := sipAt(m, i, year*12)
		years = append(years, domain.SIPYear{
			Year:     year,
			Invested: res.TotalPrincipal,
			Value:    res.FutureValue,
			Gain:     res.CompoundingEffect,
		})
	}
	return years
}

// sipAt saturates at math.MaxFloat64 when the compounded value overflows, so
// extreme rates or durations never produce +Inf.
func sipAt(m, i float64, n int) domain.SIPResult {
	principal := saturate(m * float64(n))
	value := principal
	if i > 0 {
		growth := math.Pow(1+i, float64(n))
		if growth != 1 {
			value = saturate(m * (growth - 1) / i * (1 + i))
		}
	}
	return domain.SIPResult{
		TotalPrincipal:    principal,
		FutureValue:       value,
		CompoundingEffect: math.Max(0, value-principal),
	}
}
