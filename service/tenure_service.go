package service

import (
	"context"
	"fmt"
	"sort"

	"fincalc-agent/domain"
)

// TenureService evaluates the same loan over several tenures.
type TenureService struct {
	emi *EMIService
	rec *recorder
}

func NewTenureService(emi *EMIService, deps Deps) *TenureService {
	return &TenureService{emi: emi, rec: newRecorder(deps)}
}

// Compare returns one option per distinct tenure, shortest first, and marks
// the cheapest overall and the lowest installment. Ties go to the shorter
// tenure.
func (s *TenureService) Compare(
	ctx context.Context,
	input domain.TenureComparisonInput,
) (domain.TenureComparisonResult, error) {
	tenures, err := normalizeTenures(input.TenuresYears)
	if err == nil {
		err = firstError(
			checkPositiveAmount("principal", input.Principal, MaxLoanAmount),
			checkRate("annual_rate_pct", input.AnnualRatePct),
		)
	}
	if err != nil {
		return domain.TenureComparisonResult{}, s.rec.reject(domain.KindTenureComparison, err)
	}
	input.TenuresYears = tenures

	options := make([]domain.TenureOption, 0, len(tenures))
	for _, years := range tenures {
		res, err := s.emi.Calculate(ctx, domain.LoanInput{
			Principal:     input.Principal,
			AnnualRatePct: input.AnnualRatePct,
			TenureYears:   years,
		})
		if err != nil {
			return domain.TenureComparisonResult{}, fmt.Errorf("tenure %d: %w", years, err)
		}
		options = append(options, domain.TenureOption{
			TenureYears:   years,
			EMI:           res.EMI,
			TotalPayment:  res.TotalPayment,
			TotalInterest: res.TotalInterest,
		})
	}

	return run(ctx, s.rec, domain.KindTenureComparison, input, func() domain.TenureComparisonResult {
		result := domain.TenureComparisonResult{Options: options}
		best, lowest := options[0], options[0]
		for _, opt := range options[1:] {
			if opt.TotalInterest < best.TotalInterest {
				best = opt
			}
			if opt.EMI < lowest.EMI {
				lowest = opt
			}
		}
		result.LowestInterestYears = best.TenureYears
		result.LowestEMIYears = lowest.TenureYears
		return result
	}), nil
}

func normalizeTenures(tenures []int) ([]int, error) {
	if len(tenures) == 0 {
		return nil, invalid(ErrCodeInvalidTenure, "tenures_years", "at least one tenure is required")
	}
	seen := make(map[int]bool, len(tenures))
	out := make([]int, 0, len(tenures))
	for _, years := range tenures {
		if err := checkYears("tenures_years", years, MaxTenureYears); err != nil {
			return nil, err
		}
		if !seen[years] {
			seen[years] = true
			out = append(out, years)
		}
	}
	if len(out) > MaxTenureOptions {
		return nil, invalid(ErrCodeLimitExceeded, "tenures_years", "at most %d tenures can be compared", MaxTenureOptions)
	}
	sort.Ints(out)
	return out, nil
}
