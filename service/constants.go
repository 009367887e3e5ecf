package service

const (
	MaxLoanAmount      = 1_000_000_000_000.0 // 1 lakh crore
	MaxInterestRate    = 100.0               // % per year
	MaxTenureYears     = 50
	MaxTenureOptions   = 20
	MaxSIPMonthly      = 100_000_000.0
	MaxSIPYears        = 60
	MaxIncomeHead      = 1_000_000_000_000.0
	MaxBuckets         = 50
	MaxBucketValue     = 10_000_000_000_000.0
	DefaultHistorySize = 1000
)
