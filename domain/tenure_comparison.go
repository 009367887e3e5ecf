package domain

type TenureComparisonInput struct {
	Principal     float64 `json:"principal"`
	AnnualRatePct float64 `json:"annual_rate_pct"`
	TenuresYears  []int   `json:"tenures_years"`
}

type TenureOption struct {
	TenureYears   int     `json:"tenure_years"`
	EMI           float64 `json:"emi"`
	TotalPayment  float64 `json:"total_payment"`
	TotalInterest float64 `json:"total_interest"`
}

type TenureComparisonResult struct {
	Options             []TenureOption `json:"options"`
	LowestInterestYears int            `json:"lowest_interest_years"`
	LowestEMIYears      int            `json:"lowest_emi_years"`
}
