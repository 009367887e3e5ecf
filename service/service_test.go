package service

import (
	"context"
	"errors"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fincalc-agent/calculator"
	"fincalc-agent/domain"
	"fincalc-agent/logger"
	"fincalc-agent/repository"
)

type MockCalculationRepository struct {
	mu         sync.Mutex
	Saved      []domain.Calculation
	ForceError bool
}

func (m *MockCalculationRepository) Save(_ context.Context, calc domain.Calculation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ForceError {
		return errors.New("save error")
	}
	m.Saved = append(m.Saved, calc)
	return nil
}

func (m *MockCalculationRepository) List(_ context.Context, kind domain.CalculationKind) ([]domain.Calculation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Calculation
	for _, c := range m.Saved {
		if kind == "" || c.Kind == kind {
			out = append(out, c)
		}
	}
	return out, nil
}

type failingCache struct{}

func (failingCache) Get(context.Context, string) (string, bool) { return "", false }
func (failingCache) Set(context.Context, string, string, time.Duration) error {
	return errors.New("cache down")
}

func newDeps(t *testing.T) (Deps, *MockCalculationRepository, *repository.MemoryCache) {
	repo := &MockCalculationRepository{}
	cache := repository.NewMemoryCache(0)
	return Deps{Repo: repo, Cache: cache, CacheTTL: time.Minute, Logger: logger.NewTestLogger(t)}, repo, cache
}

func TestEMIService_Calculate(t *testing.T) {
	deps, repo, _ := newDeps(t)
	svc := NewEMIService(deps)

	res, err := svc.Calculate(context.Background(), domain.LoanInput{Principal: 500_000, TenureYears: 5})
	require.NoError(t, err)

	assert.Equal(t, 8_333.33, res.EMI)
	assert.Equal(t, 500_000.0, res.TotalPayment)
	assert.Equal(t, 0.0, res.TotalInterest)
	require.Len(t, repo.Saved, 1)
	assert.Equal(t, domain.KindEMI, repo.Saved[0].Kind)
}

func TestEMIService_WithInterest(t *testing.T) {
	deps, _, _ := newDeps(t)
	svc := NewEMIService(deps)

	res, err := svc.Calculate(context.Background(), domain.LoanInput{Principal: 100_000, AnnualRatePct: 12, TenureYears: 1})
	require.NoError(t, err)

	assert.Equal(t, 8_884.88, res.EMI)
	assert.Equal(t, 106_618.55, res.TotalPayment)
	assert.Equal(t, 6_618.55, res.TotalInterest)
}

func TestEMIService_InvalidInput(t *testing.T) {
	tests := []struct {
		name  string
		input domain.LoanInput
		code  ErrorCode
		field string
	}{
		{"zero principal", domain.LoanInput{Principal: 0, AnnualRatePct: 10, TenureYears: 1}, ErrCodeInvalidAmount, "principal"},
		{"negative rate", domain.LoanInput{Principal: 1, AnnualRatePct: -1, TenureYears: 1}, ErrCodeInvalidRate, "annual_rate_pct"},
		{"zero tenure", domain.LoanInput{Principal: 1, AnnualRatePct: 10}, ErrCodeInvalidTenure, "tenure_years"},
		{"tenure too long", domain.LoanInput{Principal: 1, TenureYears: MaxTenureYears + 1}, ErrCodeLimitExceeded, "tenure_years"},
		{"rate too high", domain.LoanInput{Principal: 1, AnnualRatePct: 101, TenureYears: 1}, ErrCodeLimitExceeded, "annual_rate_pct"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deps, repo, _ := newDeps(t)
			_, err := NewEMIService(deps).Calculate(context.Background(), tt.input)

			verr, ok := AsValidation(err)
			require.True(t, ok, "expected validation error, got %v", err)
			assert.Equal(t, tt.code, verr.Code)
			assert.Equal(t, tt.field, verr.Field)
			assert.Empty(t, repo.Saved, "repository Save should NOT be called")
		})
	}
}

func TestEMIService_CacheHitSkipsRepository(t *testing.T) {
	deps, repo, cache := newDeps(t)
	svc := NewEMIService(deps)
	input := domain.LoanInput{Principal: 250_000, AnnualRatePct: 9.5, TenureYears: 3}

	first, err := svc.Calculate(context.Background(), input)
	require.NoError(t, err)
	second, err := svc.Calculate(context.Background(), input)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Len(t, repo.Saved, 1)
	assert.Equal(t, 1, cache.Len())
}

func TestEMIService_FailuresAreNotFatal(t *testing.T) {
	repo := &MockCalculationRepository{ForceError: true}
	svc := NewEMIService(Deps{Repo: repo, Cache: failingCache{}})

	res, err := svc.Calculate(context.Background(), domain.LoanInput{Principal: 1_200, TenureYears: 1})
	require.NoError(t, err)
	assert.Equal(t, 100.0, res.EMI)
}

func TestEMIService_Schedule(t *testing.T) {
	deps, _, _ := newDeps(t)
	res, err := NewEMIService(deps).Schedule(context.Background(), domain.LoanInput{Principal: 100_000, AnnualRatePct: 12, TenureYears: 1})
	require.NoError(t, err)

	assert.Equal(t, 8_884.88, res.EMI)
	require.Len(t, res.Schedule, 12)
	assert.Equal(t, 1_000.0, res.Schedule[0].Interest)
	assert.Equal(t, 7_884.88, res.Schedule[0].Principal)
	assert.Equal(t, 0.0, res.Schedule[11].Balance)
}

func TestTenureService_Compare(t *testing.T) {
	deps, repo, _ := newDeps(t)
	emi := NewEMIService(deps)
	svc := NewTenureService(emi, deps)

	res, err := svc.Compare(context.Background(), domain.TenureComparisonInput{
		Principal:     1_000_000,
		AnnualRatePct: 10,
		TenuresYears:  []int{20, 5, 10, 5},
	})
	require.NoError(t, err)

	require.Len(t, res.Options, 3)
	assert.Equal(t, []int{5, 10, 20}, []int{res.Options[0].TenureYears, res.Options[1].TenureYears, res.Options[2].TenureYears})
	assert.Equal(t, 5, res.LowestInterestYears)
	assert.Equal(t, 20, res.LowestEMIYears)
	assert.Greater(t, res.Options[0].EMI, res.Options[2].EMI)

	comparisons, err := repo.List(context.Background(), domain.KindTenureComparison)
	require.NoError(t, err)
	assert.Len(t, comparisons, 1)
}

func TestTenureService_ZeroRateTiesGoToShorterTenure(t *testing.T) {
	deps, _, _ := newDeps(t)
	svc := NewTenureService(NewEMIService(deps), deps)

	res, err := svc.Compare(context.Background(), domain.TenureComparisonInput{Principal: 120_000, TenuresYears: []int{2, 1}})
	require.NoError(t, err)
	assert.Equal(t, 1, res.LowestInterestYears)
	assert.Equal(t, 2, res.LowestEMIYears)
}

func TestTenureService_Invalid(t *testing.T) {
	deps, _, _ := newDeps(t)
	svc := NewTenureService(NewEMIService(deps), deps)
	ctx := context.Background()

	_, err := svc.Compare(ctx, domain.TenureComparisonInput{Principal: 1})
	assert.ErrorContains(t, err, "at least one tenure")

	_, err = svc.Compare(ctx, domain.TenureComparisonInput{Principal: 1, TenuresYears: []int{0}})
	verr, ok := AsValidation(err)
	require.True(t, ok)
	assert.Equal(t, ErrCodeInvalidTenure, verr.Code)

	many := make([]int, 0, MaxTenureOptions+1)
	for i := 1; i <= MaxTenureOptions+1; i++ {
		many = append(many, i)
	}
	_, err = svc.Compare(ctx, domain.TenureComparisonInput{Principal: 1, TenuresYears: many})
	verr, ok = AsValidation(err)
	require.True(t, ok)
	assert.Equal(t, ErrCodeLimitExceeded, verr.Code)
}

func TestSIPService(t *testing.T) {
	deps, _, _ := newDeps(t)
	svc := NewSIPService(deps)
	ctx := context.Background()

	flat, err := svc.Calculate(ctx, domain.SIPInput{MonthlyAmount: 10_000, DurationYears: 10})
	require.NoError(t, err)
	assert.Equal(t, domain.SIPResult{TotalPrincipal: 1_200_000, FutureValue: 1_200_000}, flat)

	grown, err := svc.Calculate(ctx, domain.SIPInput{MonthlyAmount: 10_000, DurationYears: 10, AssumedRatePct: 12})
	require.NoError(t, err)
	assert.Equal(t, 2_323_390.76, grown.FutureValue)
	assert.Equal(t, 1_123_390.76, grown.CompoundingEffect)

	proj, err := svc.Projection(ctx, domain.SIPInput{MonthlyAmount: 10_000, DurationYears: 10, AssumedRatePct: 12})
	require.NoError(t, err)
	assert.Equal(t, grown, proj.SIPResult)
	require.Len(t, proj.Years, 10)
	assert.Equal(t, grown.FutureValue, proj.Years[9].Value)

	_, err = svc.Calculate(ctx, domain.SIPInput{MonthlyAmount: 10_000})
	assert.Error(t, err)
	_, err = svc.Calculate(ctx, domain.SIPInput{MonthlyAmount: -1, DurationYears: 1})
	assert.Error(t, err)
}

func TestTaxService_Calculate(t *testing.T) {
	deps, repo, _ := newDeps(t)
	svc := NewTaxService(calculator.DefaultRules(), deps)

	res, err := svc.Calculate(context.Background(), domain.TaxInput{
		Profile: domain.TaxProfile{Regime: domain.RegimeNew},
		Income:  domain.IncomeHeads{Salary: 750_000},
	})
	require.NoError(t, err)

	assert.Equal(t, 675_000.0, res.TaxableIncome)
	assert.Equal(t, 18_750.0, res.BaseTax)
	assert.Equal(t, 18_750.0, res.Rebate)
	assert.Equal(t, 0.0, res.TotalTax)
	assert.Len(t, repo.Saved, 1)
}

func TestTaxService_Rounding(t *testing.T) {
	deps, _, _ := newDeps(t)
	svc := NewTaxService(calculator.DefaultRules(), deps)

	res, err := svc.Calculate(context.Background(), domain.TaxInput{Income: domain.IncomeHeads{Salary: 775_001}})
	require.NoError(t, err)
	assert.Equal(t, 20_000.1, res.BaseTax)
	assert.Equal(t, 800.0, res.Cess)
	assert.Equal(t, 20_800.1, res.TotalTax)
}

func TestRoundTo2Decimals(t *testing.T) {
	assert.Equal(t, 20_800.1, roundTo2Decimals(20_800.0999))
	assert.Equal(t, 0.0, roundTo2Decimals(0.004))
	assert.Equal(t, math.MaxFloat64, roundTo2Decimals(math.MaxFloat64))
}

func TestTaxService_InvalidProfile(t *testing.T) {
	deps, _, _ := newDeps(t)
	svc := NewTaxService(calculator.DefaultRules(), deps)
	ctx := context.Background()

	_, err := svc.Calculate(ctx, domain.TaxInput{Profile: domain.TaxProfile{Regime: "flat"}})
	verr, ok := AsValidation(err)
	require.True(t, ok)
	assert.Equal(t, ErrCodeInvalidEnum, verr.Code)
	assert.Equal(t, "profile.regime", verr.Field)

	_, err = svc.Calculate(ctx, domain.TaxInput{Income: domain.IncomeHeads{LTCG: -1}})
	verr, ok = AsValidation(err)
	require.True(t, ok)
	assert.Equal(t, "income.ltcg", verr.Field)
}

func TestTaxService_Compare(t *testing.T) {
	deps, _, cache := newDeps(t)
	svc := NewTaxService(calculator.DefaultRules(), deps)
	input := domain.TaxInput{
		Income:     domain.IncomeHeads{Salary: 1_050_000},
		Deductions: domain.Deductions{Sec80C: 200_000, Sec80D: 30_000, Sec80TTA: 10_000},
	}

	cmp, err := svc.Compare(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, domain.RegimeNew, cmp.Recommended)
	assert.Equal(t, 49_400.0, cmp.New.TotalTax)
	assert.Equal(t, 78_520.0, cmp.Old.TotalTax)
	assert.Equal(t, 29_120.0, cmp.Savings)

	// the requested regime does not change a comparison
	input.Profile.Regime = domain.RegimeOld
	_, err = svc.Compare(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, 1, cache.Len())
}

func TestTaxService_RuleSetsSharingANameDoNotShareCache(t *testing.T) {
	deps, _, cache := newDeps(t)
	base := calculator.DefaultRules()
	noCess := calculator.DefaultRules()
	noCess.CessRate = 0
	require.Equal(t, base.Name, noCess.Name)

	input := domain.TaxInput{Income: domain.IncomeHeads{Salary: 1_000_000}}

	withCess, err := NewTaxService(base, deps).Calculate(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, 44_200.0, withCess.TotalTax)

	withoutCess, err := NewTaxService(noCess, deps).Calculate(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, 42_500.0, withoutCess.TotalTax)
	assert.Equal(t, 2, cache.Len())

	assert.Equal(t, rulesFingerprint(base), rulesFingerprint(calculator.DefaultRules()))
	assert.NotEqual(t, rulesFingerprint(base), rulesFingerprint(noCess))
}

func TestNetWorthService(t *testing.T) {
	deps, _, _ := newDeps(t)
	svc := NewNetWorthService(deps)

	res, err := svc.Calculate(context.Background(), domain.NetWorthInput{
		Assets:      map[string]float64{domain.AssetLiquid: 1, domain.AssetGrowth: 2},
		Liabilities: map[string]float64{domain.LiabilityUnsecured: 1},
	})
	require.NoError(t, err)
	assert.Equal(t, 2.0, res.NetWorth)
	assert.Equal(t, 33.33, res.LiquidityRatioPct)
	assert.Equal(t, 33.33, res.LeverageRatioPct)
	assert.Equal(t, 66.67, res.AssetBreakdownPct[domain.AssetGrowth])

	empty, err := svc.Calculate(context.Background(), domain.NetWorthInput{})
	require.NoError(t, err)
	assert.Equal(t, 0.0, empty.LiquidityRatioPct)
	assert.Equal(t, 0.0, empty.LeverageRatioPct)

	_, err = svc.Calculate(context.Background(), domain.NetWorthInput{Assets: map[string]float64{"": 1}})
	assert.Error(t, err)
	_, err = svc.Calculate(context.Background(), domain.NetWorthInput{Liabilities: map[string]float64{"x": -5}})
	verr, ok := AsValidation(err)
	require.True(t, ok)
	assert.Equal(t, "liabilities.x", verr.Field)
}
