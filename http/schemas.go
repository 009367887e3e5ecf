package http

import (
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

var money = map[string]any{"type": "number", "minimum": 0}

func moneyObject(fields ...string) map[string]any {
	props := make(map[string]any, len(fields))
	for _, f := range fields {
		props[f] = money
	}
	return map[string]any{
		"type":                 "object",
		"properties":           props,
		"additionalProperties": false,
	}
}

func enum(values ...string) map[string]any {
	return map[string]any{"type": "string", "enum": values}
}

var taxRequestSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"profile": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"regime":             enum("new", "old"),
				"age_bracket":        enum("normal", "senior", "super_senior"),
				"entity_type":        enum("individual", "huf"),
				"residential_status": enum("resident", "non_resident"),
			},
			"additionalProperties": false,
		},
		"income":     moneyObject("salary", "house_rent", "house_loan_interest", "business", "stcg", "ltcg", "other_sources"),
		"deductions": moneyObject("sec_80c", "sec_80d", "sec_80tta", "hra_exemption"),
	},
	"additionalProperties": false,
}

var loanRequestSchema = map[string]any{
	"type":     "object",
	"required": []string{"principal", "annual_rate_pct", "tenure_years"},
	"properties": map[string]any{
		"principal":       map[string]any{"type": "number", "exclusiveMinimum": 0},
		"annual_rate_pct": money,
		"tenure_years":    map[string]any{"type": "integer", "minimum": 1},
	},
	"additionalProperties": false,
}

var tenureRequestSchema = map[string]any{
	"type":     "object",
	"required": []string{"principal", "annual_rate_pct", "tenures_years"},
	"properties": map[string]any{
		"principal":       map[string]any{"type": "number", "exclusiveMinimum": 0},
		"annual_rate_pct": money,
		"tenures_years": map[string]any{
			"type":     "array",
			"minItems": 1,
			"items":    map[string]any{"type": "integer", "minimum": 1},
		},
	},
	"additionalProperties": false,
}

var sipRequestSchema = map[string]any{
	"type":     "object",
	"required": []string{"monthly_amount", "duration_years", "assumed_rate_pct"},
	"properties": map[string]any{
		"monthly_amount":   money,
		"duration_years":   map[string]any{"type": "integer", "minimum": 1},
		"assumed_rate_pct": money,
	},
	"additionalProperties": false,
}

var netWorthRequestSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"assets":      map[string]any{"type": "object", "additionalProperties": money},
		"liabilities": map[string]any{"type": "object", "additionalProperties": money},
	},
	"additionalProperties": false,
}

const draft07 = "http://json-schema.org/draft-07/schema#"

func mustSchema(name string, schema map[string]any) *gojsonschema.Schema {
	schema["$schema"] = draft07
	s, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(schema))
	if err != nil {
		panic(fmt.Sprintf("compile %s schema: %v", name, err))
	}
	return s
}

var (
	taxSchema      = mustSchema("tax", taxRequestSchema)
	loanSchema     = mustSchema("loan", loanRequestSchema)
	tenureSchema   = mustSchema("tenure", tenureRequestSchema)
	sipSchema      = mustSchema("sip", sipRequestSchema)
	netWorthSchema = mustSchema("networth", netWorthRequestSchema)
)
