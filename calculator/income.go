package calculator

import (
	"math"

	"fincalc-agent/domain"
)

type IncomeSummary struct {
	NetSalary         float64
	NetHouseProperty  float64
	GTI               float64
	StandardDeduction float64
	TotalDeductions   float64
	TaxableIncome     float64
}

// AggregateIncome derives gross total and taxable income. A house-property
// loss offsets the other heads in full; the statutory set-off cap is not
// modelled.
func AggregateIncome(rules Rules, profile domain.TaxProfile, income domain.IncomeHeads, deductions domain.Deductions) IncomeSummary {
	regime := rules.ForRegime(profile.Regime)

	salary := clamp(income.Salary)
	standard := 0.0
	if !rules.StrictEligibility || profile.EntityType != domain.EntityHUF {
		standard = math.Min(salary, regime.StandardDeduction)
	}
	netSalary := salary - standard

	houseProperty := rules.HouseRentFactor*clamp(income.HouseRent) - clamp(income.HouseLoanInterest)

	gti := netSalary +
		houseProperty +
		clamp(income.Business) +
		clamp(income.STCG) +
		clamp(income.LTCG) +
		clamp(income.OtherSources)

	total := 0.0
	if profile.Regime == domain.RegimeOld {
		total = totalDeductions(rules, profile, deductions)
	}

	return IncomeSummary{
		NetSalary:         netSalary,
		NetHouseProperty:  houseProperty,
		GTI:               gti,
		StandardDeduction: standard,
		TotalDeductions:   total,
		TaxableIncome:     math.Max(0, gti-total),
	}
}

func totalDeductions(rules Rules, profile domain.TaxProfile, d domain.Deductions) float64 {
	cap80D := rules.Cap80D
	if profile.AgeBracket == domain.AgeSenior || profile.AgeBracket == domain.AgeSuperSenior {
		cap80D = rules.Cap80DSenior
	}
	return math.Min(clamp(d.Sec80C), rules.Cap80C) +
		math.Min(clamp(d.Sec80D), cap80D) +
		clamp(d.Sec80TTA) +
		clamp(d.HRAExemption)
}
