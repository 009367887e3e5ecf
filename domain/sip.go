package domain

type SIPInput struct {
	MonthlyAmount  float64 `json:"monthly_amount"`
	DurationYears  int     `json:"duration_years"`
	AssumedRatePct float64 `json:"assumed_rate_pct"`
}

type SIPResult struct {
	TotalPrincipal    float64 `json:"total_principal"`
	FutureValue       float64 `json:"future_value"`
	CompoundingEffect float64 `json:"compounding_effect"`
}

type SIPYear struct {
	Year     int     `json:"year"`
	Invested float64 `json:"invested"`
	Value    float64 `json:"value"`
	Gain     float64 `json:"gain"`
}

type SIPProjectionResult struct {
	SIPResult
	Years []SIPYear `json:"years"`
}
