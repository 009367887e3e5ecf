package calculator

import (
	"maps"
	"slices"

	"fincalc-agent/domain"
)

// ComputeNetWorth totals both sides of the balance sheet. Ratios are zero
// when there are no assets. Buckets are summed in key order so the result
// does not depend on map iteration.
func ComputeNetWorth(assets, liabilities map[string]float64) domain.NetWorthResult {
	totalAssets := sumBuckets(assets)
	totalLiabilities := sumBuckets(liabilities)

	res := domain.NetWorthResult{
		TotalAssets:           totalAssets,
		TotalLiabilities:      totalLiabilities,
		NetWorth:              totalAssets - totalLiabilities,
		AssetBreakdownPct:     breakdown(assets, totalAssets),
		LiabilityBreakdownPct: breakdown(liabilities, totalLiabilities),
	}
	if totalAssets > 0 {
		res.LiquidityRatioPct = clamp(assets[domain.AssetLiquid]) / totalAssets * 100
		res.LeverageRatioPct = totalLiabilities / totalAssets * 100
	}
	return res
}

func sumBuckets(buckets map[string]float64) float64 {
	total := 0.0
	for _, name := range slices.Sorted(maps.Keys(buckets)) {
		total += clamp(buckets[name])
	}
	return total
}

func breakdown(buckets map[string]float64, total float64) map[string]float64 {
	out := make(map[string]float64, len(buckets))
	for name, v := range buckets {
		if total > 0 {
			out[name] = clamp(v) / total * 100
		} else {
			out[name] = 0
		}
	}
	return out
}
