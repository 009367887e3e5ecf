package service

import (
	"context"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"gopkg.in/yaml.v3"

	"fincalc-agent/calculator"
	"fincalc-agent/domain"
)

type TaxService struct {
	rules       calculator.Rules
	fingerprint string
	rec         *recorder
}

// NewTaxService creates a TaxService over the given rule set.
func NewTaxService(rules calculator.Rules, deps Deps) *TaxService {
	return &TaxService{
		rules:       rules,
		fingerprint: rulesFingerprint(rules),
		rec:         newRecorder(deps),
	}
}

// Rules returns the rule set every calculation runs against.
func (s *TaxService) Rules() calculator.Rules {
	return s.rules
}

// rulesFingerprint hashes the full rule set, so rule files sharing a name
// but not their slabs or rates never share cached results.
func rulesFingerprint(rules calculator.Rules) string {
	raw, err := yaml.Marshal(rules)
	if err != nil {
		return rules.Name
	}
	return strconv.FormatUint(xxhash.Sum64(raw), 16)
}

// taxKey scopes cached results to the rule set that produced them.
type taxKey struct {
	Rules string          `json:"rules"`
	Input domain.TaxInput `json:"input"`
}

// Calculate computes the tax liability for one regime.
func (s *TaxService) Calculate(
	ctx context.Context,
	input domain.TaxInput,
) (domain.TaxResult, error) {
	if err := validateTaxInput(input); err != nil {
		return domain.TaxResult{}, s.rec.reject(domain.KindTax, err)
	}
	key := taxKey{Rules: s.fingerprint, Input: input}
	return run(ctx, s.rec, domain.KindTax, key, func() domain.TaxResult {
		res := calculator.ComputeTax(s.rules, input.Profile, input.Income, input.Deductions)
		return roundTaxResult(res)
	}), nil
}

// Compare computes both regimes and recommends the cheaper one.
func (s *TaxService) Compare(
	ctx context.Context,
	input domain.TaxInput,
) (domain.RegimeComparison, error) {
	if err := validateTaxInput(input); err != nil {
		return domain.RegimeComparison{}, s.rec.reject(domain.KindRegimeComparison, err)
	}
	input.Profile.Regime = ""
	key := taxKey{Rules: s.fingerprint, Input: input}
	return run(ctx, s.rec, domain.KindRegimeComparison, key, func() domain.RegimeComparison {
		cmp := calculator.CompareRegimes(s.rules, input.Profile, input.Income, input.Deductions)
		cmp.New = roundTaxResult(cmp.New)
		cmp.Old = roundTaxResult(cmp.Old)
		cmp.Savings = roundTo2Decimals(cmp.Savings)
		return cmp
	}), nil
}

func validateTaxInput(input domain.TaxInput) error {
	p := input.Profile
	in := input.Income
	d := input.Deductions
	return firstError(
		checkEnum("profile.regime", p.Regime, domain.RegimeNew, domain.RegimeOld),
		checkEnum("profile.age_bracket", p.AgeBracket, domain.AgeNormal, domain.AgeSenior, domain.AgeSuperSenior),
		checkEnum("profile.entity_type", p.EntityType, domain.EntityIndividual, domain.EntityHUF),
		checkEnum("profile.residential_status", p.ResidentialStatus, domain.Resident, domain.NonResident),
		checkAmount("income.salary", in.Salary, MaxIncomeHead),
		checkAmount("income.house_rent", in.HouseRent, MaxIncomeHead),
		checkAmount("income.house_loan_interest", in.HouseLoanInterest, MaxIncomeHead),
		checkAmount("income.business", in.Business, MaxIncomeHead),
		checkAmount("income.stcg", in.STCG, MaxIncomeHead),
		checkAmount("income.ltcg", in.LTCG, MaxIncomeHead),
		checkAmount("income.other_sources", in.OtherSources, MaxIncomeHead),
		checkAmount("deductions.sec_80c", d.Sec80C, MaxIncomeHead),
		checkAmount("deductions.sec_80d", d.Sec80D, MaxIncomeHead),
		checkAmount("deductions.sec_80tta", d.Sec80TTA, MaxIncomeHead),
		checkAmount("deductions.hra_exemption", d.HRAExemption, MaxIncomeHead),
	)
}

func roundTaxResult(r domain.TaxResult) domain.TaxResult {
	r.NetSalary = roundTo2Decimals(r.NetSalary)
	r.NetHouseProperty = roundTo2Decimals(r.NetHouseProperty)
	r.GTI = roundTo2Decimals(r.GTI)
	r.StandardDeduction = roundTo2Decimals(r.StandardDeduction)
	r.TotalDeductions = roundTo2Decimals(r.TotalDeductions)
	r.TaxableIncome = roundTo2Decimals(r.TaxableIncome)
	r.BaseTax = roundTo2Decimals(r.BaseTax)
	r.Rebate = roundTo2Decimals(r.Rebate)
	r.Cess = roundTo2Decimals(r.Cess)
	r.TotalTax = roundTo2Decimals(r.TotalTax)
	r.EffectiveRatePct = roundTo2Decimals(r.EffectiveRatePct)
	r.MarginalRatePct = roundTo2Decimals(r.MarginalRatePct)
	return r
}
