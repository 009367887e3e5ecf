package calculator

import (
	"math"

	"fincalc-agent/domain"
)

// ComputeTax runs the full pipeline: income aggregation, slab walk, the
// rebate cliff and cess. Any regime other than old is computed as new.
func ComputeTax(rules Rules, profile domain.TaxProfile, income domain.IncomeHeads, deductions domain.Deductions) domain.TaxResult {
	if profile.Regime != domain.RegimeOld {
		profile.Regime = domain.RegimeNew
	}
	regime := rules.ForRegime(profile.Regime)
	summary := AggregateIncome(rules, profile, income, deductions)

	eligible := !rules.StrictEligibility || profile.IsResidentIndividual()
	age := profile.AgeBracket
	if !eligible {
		age = domain.AgeNormal
	}
	table := regime.SlabsFor(age)

	baseTax := ProgressiveTax(summary.TaxableIncome, table)

	// 87A: all or nothing at the limit, no marginal relief.
	rebate := 0.0
	if eligible && summary.TaxableIncome <= regime.RebateLimit {
		rebate = baseTax
	}
	afterRebate := math.Max(0, baseTax-rebate)
	cess := afterRebate * rules.CessRate
	total := afterRebate + cess

	effective := 0.0
	if summary.GTI > 0 {
		effective = total / summary.GTI * 100
	}

	return domain.TaxResult{
		Regime:            profile.Regime,
		NetSalary:         summary.NetSalary,
		NetHouseProperty:  summary.NetHouseProperty,
		GTI:               summary.GTI,
		StandardDeduction: summary.StandardDeduction,
		TotalDeductions:   summary.TotalDeductions,
		TaxableIncome:     summary.TaxableIncome,
		BaseTax:           baseTax,
		RebateLimit:       regime.RebateLimit,
		Rebate:            rebate,
		Cess:              cess,
		TotalTax:          total,
		EffectiveRatePct:  effective,
		MarginalRatePct:   MarginalRate(summary.TaxableIncome, table) * 100,
	}
}

// CompareRegimes computes both regimes for the same inputs. Ties go to the
// new regime.
func CompareRegimes(rules Rules, profile domain.TaxProfile, income domain.IncomeHeads, deductions domain.Deductions) domain.RegimeComparison {
	profile.Regime = domain.RegimeNew
	newResult := ComputeTax(rules, profile, income, deductions)
	profile.Regime = domain.RegimeOld
	oldResult := ComputeTax(rules, profile, income, deductions)

	cmp := domain.RegimeComparison{
		New:         newResult,
		Old:         oldResult,
		Recommended: domain.RegimeNew,
		Savings:     oldResult.TotalTax - newResult.TotalTax,
	}
	if oldResult.TotalTax < newResult.TotalTax {
		cmp.Recommended = domain.RegimeOld
		cmp.Savings = newResult.TotalTax - oldResult.TotalTax
	}
	return cmp
}
