// Package calculator holds the pure financial math: slab-based income tax,
// EMI, SIP compounding and net-worth ratios. Nothing here keeps state.
package calculator

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"fincalc-agent/domain"
)

// Slab taxes income above the previous slab's bound up to UpperBound at Rate.
type Slab struct {
	UpperBound float64
	Rate       float64
}

// UnmarshalYAML reads an omitted or null upper_bound as the unbounded top slab.
func (s *Slab) UnmarshalYAML(value *yaml.Node) error {
	var raw struct {
		UpperBound *float64 `yaml:"upper_bound"`
		Rate       float64  `yaml:"rate"`
	}
	if err := value.Decode(&raw); err != nil {
		return err
	}
	s.Rate = raw.Rate
	s.UpperBound = math.Inf(1)
	if raw.UpperBound != nil {
		s.UpperBound = *raw.UpperBound
	}
	return nil
}

type SlabTable []Slab

// Validate checks that finite bounds strictly increase and the last slab is unbounded.
func (t SlabTable) Validate() error {
	if len(t) == 0 {
		return errors.New("slab table is empty")
	}
	prev := 0.0
	for i, slab := range t {
		if slab.Rate < 0 || slab.Rate > 1 || math.IsNaN(slab.Rate) {
			return fmt.Errorf("slab %d: rate %v outside [0, 1]", i, slab.Rate)
		}
		if i == len(t)-1 {
			if !math.IsInf(slab.UpperBound, 1) {
				return fmt.Errorf("slab %d: top slab must be unbounded", i)
			}
			break
		}
		if math.IsInf(slab.UpperBound, 1) || math.IsNaN(slab.UpperBound) {
			return fmt.Errorf("slab %d: only the top slab may be unbounded", i)
		}
		if slab.UpperBound <= prev {
			return fmt.Errorf("slab %d: upper bound %.2f does not exceed %.2f", i, slab.UpperBound, prev)
		}
		prev = slab.UpperBound
	}
	return nil
}

type RegimeRules struct {
	StandardDeduction float64                         `yaml:"standard_deduction"`
	RebateLimit       float64                         `yaml:"rebate_limit"`
	Slabs             map[domain.AgeBracket]SlabTable `yaml:"slabs"`
}

// SlabsFor returns the table for the age bracket, falling back to normal.
func (r RegimeRules) SlabsFor(age domain.AgeBracket) SlabTable {
	if table, ok := r.Slabs[age]; ok && len(table) > 0 {
		return table
	}
	return r.Slabs[domain.AgeNormal]
}

// Rules is one assessment year's statutory figures.
type Rules struct {
	Name            string      `yaml:"name"`
	CessRate        float64     `yaml:"cess_rate"`
	HouseRentFactor float64     `yaml:"house_rent_factor"`
	Cap80C          float64     `yaml:"cap_80c"`
	Cap80D          float64     `yaml:"cap_80d"`
	Cap80DSenior    float64     `yaml:"cap_80d_senior"`
	New             RegimeRules `yaml:"new"`
	Old             RegimeRules `yaml:"old"`
	// StrictEligibility limits the standard deduction to non-HUF entities
	// and the rebate and age-based slabs to resident individuals. When off,
	// entity type and residency do not change the computation.
	StrictEligibility bool `yaml:"strict_eligibility"`
}

func (r Rules) ForRegime(regime domain.Regime) RegimeRules {
	if regime == domain.RegimeOld {
		return r.Old
	}
	return r.New
}

func (r Rules) Validate() error {
	if r.CessRate < 0 || r.CessRate > 1 {
		return fmt.Errorf("cess rate %v outside [0, 1]", r.CessRate)
	}
	if r.HouseRentFactor < 0 || r.HouseRentFactor > 1 {
		return fmt.Errorf("house rent factor %v outside [0, 1]", r.HouseRentFactor)
	}
	if r.Cap80C < 0 || r.Cap80D < 0 || r.Cap80DSenior < 0 {
		return errors.New("deduction caps must not be negative")
	}
	for name, regime := range map[domain.Regime]RegimeRules{domain.RegimeNew: r.New, domain.RegimeOld: r.Old} {
		if regime.StandardDeduction < 0 || regime.RebateLimit < 0 {
			return fmt.Errorf("%s regime: standard deduction and rebate limit must not be negative", name)
		}
		if _, ok := regime.Slabs[domain.AgeNormal]; !ok {
			return fmt.Errorf("%s regime: missing %q slab table", name, domain.AgeNormal)
		}
		for age, table := range regime.Slabs {
			if err := table.Validate(); err != nil {
				return fmt.Errorf("%s regime, %s: %w", name, age, err)
			}
		}
	}
	return nil
}

var unbounded = math.Inf(1)

// DefaultRules returns the FY 2024-25 figures.
func DefaultRules() Rules {
	return Rules{
		Name:            "FY2024-25",
		CessRate:        0.04,
		HouseRentFactor: 0.7,
		Cap80C:          150_000,
		Cap80D:          25_000,
		Cap80DSenior:    50_000,
		New: RegimeRules{
			StandardDeduction: 75_000,
			RebateLimit:       700_000,
			Slabs: map[domain.AgeBracket]SlabTable{
				domain.AgeNormal: {
					{UpperBound: 300_000, Rate: 0},
					{UpperBound: 700_000, Rate: 0.05},
					{UpperBound: 1_000_000, Rate: 0.10},
					{UpperBound: 1_200_000, Rate: 0.15},
					{UpperBound: 1_500_000, Rate: 0.20},
					{UpperBound: unbounded, Rate: 0.30},
				},
			},
		},
		Old: RegimeRules{
			StandardDeduction: 50_000,
			RebateLimit:       500_000,
			Slabs: map[domain.AgeBracket]SlabTable{
				domain.AgeNormal: {
					{UpperBound: 250_000, Rate: 0},
					{UpperBound: 500_000, Rate: 0.05},
					{UpperBound: 1_000_000, Rate: 0.20},
					{UpperBound: unbounded, Rate: 0.30},
				},
				domain.AgeSenior: {
					{UpperBound: 300_000, Rate: 0},
					{UpperBound: 500_000, Rate: 0.05},
					{UpperBound: 1_000_000, Rate: 0.20},
					{UpperBound: unbounded, Rate: 0.30},
				},
				domain.AgeSuperSenior: {
					{UpperBound: 500_000, Rate: 0},
					{UpperBound: 1_000_000, Rate: 0.20},
					{UpperBound: unbounded, Rate: 0.30},
				},
			},
		},
	}
}

// LoadRules decodes a complete rule set from YAML and validates it.
func LoadRules(r io.Reader) (Rules, error) {
	var rules Rules
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&rules); err != nil {
		return Rules{}, fmt.Errorf("decode tax rules: %w", err)
	}
	if err := rules.Validate(); err != nil {
		return Rules{}, fmt.Errorf("invalid tax rules: %w", err)
	}
	return rules, nil
}

func LoadRulesFile(path string) (Rules, error) {
	f, err := os.Open(path)
	if err != nil {
		return Rules{}, fmt.Errorf("open tax rules: %w", err)
	}
	defer f.Close()
	return LoadRules(f)
}
