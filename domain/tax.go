package domain

type Regime string

const (
	RegimeNew Regime = "new"
	RegimeOld Regime = "old"
)

type AgeBracket string

const (
	AgeNormal      AgeBracket = "normal"
	AgeSenior      AgeBracket = "senior"       // 60 to 79
	AgeSuperSenior AgeBracket = "super_senior" // 80 and above
)

type EntityType string

const (
	EntityIndividual EntityType = "individual"
	EntityHUF        EntityType = "huf"
)

type ResidentialStatus string

const (
	Resident    ResidentialStatus = "resident"
	NonResident ResidentialStatus = "non_resident"
)

// TaxProfile describes who is being taxed. Zero values mean new regime,
// normal age bracket, resident individual.
type TaxProfile struct {
	Regime            Regime            `json:"regime"`
	AgeBracket        AgeBracket        `json:"age_bracket"`
	EntityType        EntityType        `json:"entity_type"`
	ResidentialStatus ResidentialStatus `json:"residential_status"`
}

// IsResidentIndividual reports whether the profile is an individual resident.
// Rule sets with strict eligibility only grant the rebate and age-based slabs
// to such profiles.
func (p TaxProfile) IsResidentIndividual() bool {
	return p.EntityType != EntityHUF && p.ResidentialStatus != NonResident
}

type IncomeHeads struct {
	Salary            float64 `json:"salary"`
	HouseRent         float64 `json:"house_rent"`
	HouseLoanInterest float64 `json:"house_loan_interest"`
	Business          float64 `json:"business"`
	STCG              float64 `json:"stcg"`
	LTCG              float64 `json:"ltcg"`
	OtherSources      float64 `json:"other_sources"`
}

type Deductions struct {
	Sec80C       float64 `json:"sec_80c"`
	Sec80D       float64 `json:"sec_80d"`
	Sec80TTA     float64 `json:"sec_80tta"`
	HRAExemption float64 `json:"hra_exemption"`
}

type TaxInput struct {
	Profile    TaxProfile  `json:"profile"`
	Income     IncomeHeads `json:"income"`
	Deductions Deductions  `json:"deductions"`
}

type TaxResult struct {
	Regime            Regime  `json:"regime"`
	NetSalary         float64 `json:"net_salary"`
	NetHouseProperty  float64 `json:"net_house_property"`
	GTI               float64 `json:"gti"`
	StandardDeduction float64 `json:"standard_deduction"`
	TotalDeductions   float64 `json:"total_deductions"`
	TaxableIncome     float64 `json:"taxable_income"`
	BaseTax           float64 `json:"base_tax"`
	RebateLimit       float64 `json:"rebate_limit"`
	Rebate            float64 `json:"rebate"`
	Cess              float64 `json:"cess"`
	TotalTax          float64 `json:"total_tax"`
	EffectiveRatePct  float64 `json:"effective_rate_pct"`
	MarginalRatePct   float64 `json:"marginal_rate_pct"`
}

type RegimeComparison struct {
	New         TaxResult `json:"new"`
	Old         TaxResult `json:"old"`
	Recommended Regime    `json:"recommended"`
	Savings     float64   `json:"savings"`
}
