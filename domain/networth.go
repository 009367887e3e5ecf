package domain

// Well-known bucket names. Callers may send others; they count towards totals.
const (
	AssetLiquid     = "liquid"
	AssetGrowth     = "growth"
	AssetRetirement = "retirement"
	AssetFixed      = "fixed"

	LiabilitySecured   = "secured"
	LiabilityUnsecured = "unsecured"
	LiabilityShortTerm = "short_term"
)

type NetWorthInput struct {
	Assets      map[string]float64 `json:"assets"`
	Liabilities map[string]float64 `json:"liabilities"`
}

type NetWorthResult struct {
	TotalAssets           float64            `json:"total_assets"`
	TotalLiabilities      float64            `json:"total_liabilities"`
	NetWorth              float64            `json:"net_worth"`
	LiquidityRatioPct     float64            `json:"liquidity_ratio_pct"`
	LeverageRatioPct      float64            `json:"leverage_ratio_pct"`
	AssetBreakdownPct     map[string]float64 `json:"asset_breakdown_pct"`
	LiabilityBreakdownPct map[string]float64 `json:"liability_breakdown_pct"`
}
