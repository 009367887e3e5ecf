package service

import (
	"context"

	"fincalc-agent/calculator"
	"fincalc-agent/domain"
)

type SIPService struct {
	rec *recorder
}

func NewSIPService(deps Deps) *SIPService {
	return &SIPService{rec: newRecorder(deps)}
}

// Calculate projects the corpus of a monthly SIP.
func (s *SIPService) Calculate(
	ctx context.Context,
	input domain.SIPInput,
) (domain.SIPResult, error) {
	if err := validateSIPInput(input); err != nil {
		return domain.SIPResult{}, s.rec.reject(domain.KindSIP, err)
	}
	return run(ctx, s.rec, domain.KindSIP, input, func() domain.SIPResult {
		return roundSIPResult(calculator.ComputeSIP(input.MonthlyAmount, input.DurationYears, input.AssumedRatePct))
	}), nil
}

// Projection adds a year-by-year breakdown.
func (s *SIPService) Projection(
	ctx context.Context,
	input domain.SIPInput,
) (domain.SIPProjectionResult, error) {
	if err := validateSIPInput(input); err != nil {
		return domain.SIPProjectionResult{}, s.rec.reject(domain.KindSIPProjection, err)
	}
	return run(ctx, s.rec, domain.KindSIPProjection, input, func() domain.SIPProjectionResult {
		years := calculator.SIPProjection(input.MonthlyAmount, input.DurationYears, input.AssumedRatePct)
		for i := range years {
			years[i].Invested = roundTo2Decimals(years[i].Invested)
			years[i].Value = roundTo2Decimals(years[i].Value)
			years[i].Gain = roundTo2Decimals(years[i].Gain)
		}
		return domain.SIPProjectionResult{
			SIPResult: roundSIPResult(calculator.ComputeSIP(input.MonthlyAmount, input.DurationYears, input.AssumedRatePct)),
			Years:     years,
		}
	}), nil
}

func validateSIPInput(input domain.SIPInput) error {
	return firstError(
		checkAmount("monthly_amount", input.MonthlyAmount, MaxSIPMonthly),
		checkYears("duration_years", input.DurationYears, MaxSIPYears),
		checkRate("assumed_rate_pct", input.AssumedRatePct),
	)
}

func roundSIPResult(r domain.SIPResult) domain.SIPResult {
	return domain.SIPResult{
		TotalPrincipal:    roundTo2Decimals(r.TotalPrincipal),
		FutureValue:       roundTo2Decimals(r.FutureValue),
		CompoundingEffect: roundTo2Decimals(r.CompoundingEffect),
	}
}
