package service

import (
	"context"
	"strings"

	"fincalc-agent/calculator"
	"fincalc-agent/domain"
)

type NetWorthService struct {
	rec *recorder
}

func NewNetWorthService(deps Deps) *NetWorthService {
	return &NetWorthService{rec: newRecorder(deps)}
}

// Calculate aggregates the snapshot into net worth and ratios.
func (s *NetWorthService) Calculate(
	ctx context.Context,
	input domain.NetWorthInput,
) (domain.NetWorthResult, error) {
	err := firstError(
		validateBuckets("assets", input.Assets),
		validateBuckets("liabilities", input.Liabilities),
	)
	if err != nil {
		return domain.NetWorthResult{}, s.rec.reject(domain.KindNetWorth, err)
	}
	return run(ctx, s.rec, domain.KindNetWorth, input, func() domain.NetWorthResult {
		res := calculator.ComputeNetWorth(input.Assets, input.Liabilities)
		res.TotalAssets = roundTo2Decimals(res.TotalAssets)
		res.TotalLiabilities = roundTo2Decimals(res.TotalLiabilities)
		res.NetWorth = roundTo2Decimals(res.NetWorth)
		res.LiquidityRatioPct = roundTo2Decimals(res.LiquidityRatioPct)
		res.LeverageRatioPct = roundTo2Decimals(res.LeverageRatioPct)
		for k, v := range res.AssetBreakdownPct {
			res.AssetBreakdownPct[k] = roundTo2Decimals(v)
		}
		for k, v := range res.LiabilityBreakdownPct {
			res.LiabilityBreakdownPct[k] = roundTo2Decimals(v)
		}
		return res
	}), nil
}

func validateBuckets(side string, buckets map[string]float64) error {
	if len(buckets) > MaxBuckets {
		return invalid(ErrCodeLimitExceeded, side, "at most %d buckets are allowed", MaxBuckets)
	}
	for name, v := range buckets {
		if strings.TrimSpace(name) == "" {
			return invalid(ErrCodeInvalidEnum, side, "bucket names must not be empty")
		}
		if err := checkAmount(side+"."+name, v, MaxBucketValue); err != nil {
			return err
		}
	}
	return nil
}
