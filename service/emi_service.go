package service

import (
	"context"

	"fincalc-agent/calculator"
	"fincalc-agent/domain"
)

type EMIService struct {
	rec *recorder
}

// NewEMIService creates a new EMIService.
func NewEMIService(deps Deps) *EMIService {
	return &EMIService{rec: newRecorder(deps)}
}

// Calculate returns the monthly installment, total payment and interest.
func (s *EMIService) Calculate(
	ctx context.Context,
	input domain.LoanInput,
) (domain.LoanResult, error) {
	if err := validateLoanInput(input); err != nil {
		return domain.LoanResult{}, s.rec.reject(domain.KindEMI, err)
	}
	return run(ctx, s.rec, domain.KindEMI, input, func() domain.LoanResult {
		return roundLoanResult(calculator.ComputeEMI(input.Principal, input.AnnualRatePct, input.TenureYears))
	}), nil
}

// Schedule returns the month-by-month amortization table.
func (s *EMIService) Schedule(
	ctx context.Context,
	input domain.LoanInput,
) (domain.AmortizationResult, error) {
	if err := validateLoanInput(input); err != nil {
		return domain.AmortizationResult{}, s.rec.reject(domain.KindAmortization, err)
	}
	return run(ctx, s.rec, domain.KindAmortization, input, func() domain.AmortizationResult {
		schedule := calculator.AmortizationSchedule(input.Principal, input.AnnualRatePct, input.TenureYears)
		for i := range schedule {
			schedule[i].Payment = roundTo2Decimals(schedule[i].Payment)
			schedule[i].Principal = roundTo2Decimals(schedule[i].Principal)
			schedule[i].Interest = roundTo2Decimals(schedule[i].Interest)
			schedule[i].Balance = roundTo2Decimals(schedule[i].Balance)
		}
		return domain.AmortizationResult{
			LoanResult: roundLoanResult(calculator.ComputeEMI(input.Principal, input.AnnualRatePct, input.TenureYears)),
			Schedule:   schedule,
		}
	}), nil
}

func validateLoanInput(input domain.LoanInput) error {
	return firstError(
		checkPositiveAmount("principal", input.Principal, MaxLoanAmount),
		checkRate("annual_rate_pct", input.AnnualRatePct),
		checkYears("tenure_years", input.TenureYears, MaxTenureYears),
	)
}

func roundLoanResult(r domain.LoanResult) domain.LoanResult {
	return domain.LoanResult{
		EMI:           roundTo2Decimals(r.EMI),
		TotalPayment:  roundTo2Decimals(r.TotalPayment),
		TotalInterest: roundTo2Decimals(r.TotalInterest),
	}
}
