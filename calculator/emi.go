package calculator

import (
	"math"

	"fincalc-agent/domain"
)

// ComputeEMI returns the equal monthly installment for a reducing-balance
// loan. A zero rate degenerates to principal / installments; a zero
// principal or tenure yields a zero result.
func ComputeEMI(principal, annualRatePct float64, tenureYears int) domain.LoanResult {
	p := clamp(principal)
	n := tenureYears * 12
	if p == 0 || n <= 0 {
		return domain.LoanResult{}
	}

	emi, r := monthlyInstallment(p, clamp(annualRatePct), n)
	if r == 0 {
		return domain.LoanResult{EMI: emi, TotalPayment: p}
	}

	total := saturate(emi * float64(n))
	return domain.LoanResult{
		EMI:           emi,
		TotalPayment:  total,
		TotalInterest: math.Max(0, total-p),
	}
}

// monthlyInstallment also returns the monthly rate it used; zero means the
// flat principal / n split was taken. When (1+r)^n overflows the installment
// converges to the interest-only payment p*r.
func monthlyInstallment(p, annualRatePct float64, n int) (float64, float64) {
	r := annualRatePct / 12 / 100
	if r == 0 {
		return p / float64(n), 0
	}
	growth := math.Pow(1+r, float64(n))
	switch {
	case growth == 1:
		return p / float64(n), 0
	case math.IsInf(growth, 1):
		return saturate(p * r), r
	}
	emi := p * r * growth / (growth - 1)
	if math.IsInf(emi, 1) || math.IsNaN(emi) {
		emi = p * r / (1 - 1/growth)
	}
	return saturate(emi), r
}

// AmortizationSchedule splits every installment into interest and principal.
// The last installment absorbs rounding drift so the balance closes at zero.
func AmortizationSchedule(principal, annualRatePct float64, tenureYears int) []domain.Installment {
	p := clamp(principal)
	n := tenureYears * 12
	if p == 0 || n <= 0 {
		return []domain.Installment{}
	}

	emi, r := monthlyInstallment(p, clamp(annualRatePct), n)
	schedule := make([]domain.Installment, 0, n)
	balance := p
	for month := 1; month <= n; month++ {
		interest := balance * r
		principalPart := emi - interest
		payment := emi
		if month == n || principalPart > balance {
			principalPart = balance
			payment = saturate(principalPart + interest)
		}
		balance -= principalPart
		if month == n {
			balance = 0
		}
		schedule = append(schedule, domain.Installment{
			Month:     month,
			Payment:   payment,
			Principal: principalPart,
			Interest:  interest,
			Balance:   balance,
		})
	}
	return schedule
}
