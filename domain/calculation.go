package domain

import "time"

type CalculationKind string

const (
	KindTax              CalculationKind = "tax"
	KindRegimeComparison CalculationKind = "tax_compare"
	KindEMI              CalculationKind = "emi"
	KindAmortization     CalculationKind = "emi_schedule"
	KindTenureComparison CalculationKind = "emi_tenures"
	KindSIP              CalculationKind = "sip"
	KindSIPProjection    CalculationKind = "sip_projection"
	KindNetWorth         CalculationKind = "networth"
)

// Calculation is one logged computation: its input and rounded output.
type Calculation struct {
	ID        string          `json:"id"`
	Kind      CalculationKind `json:"kind"`
	Input     any             `json:"input"`
	Result    any             `json:"result"`
	CreatedAt time.Time       `json:"created_at"`
}
