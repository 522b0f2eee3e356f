package billing

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/shopspring/decimal"
)

// ErrPlanNotConfigured signals a tier/cycle combination with no pricing
// entry. The catalog fails closed instead of silently quoting zero.
var ErrPlanNotConfigured = errors.New("no pricing configured for tier/cycle")

// Limits are the per-tier plan ceilings. Nil means unlimited.
type Limits struct {
	MaxBuildings *int `json:"max_buildings"`
	MaxUnits     *int `json:"max_units"`
	MaxUsers     *int `json:"max_users"`
}

// PlanSpec is one tier's configuration as it appears in plans.json.
type PlanSpec struct {
	Tier     Tier                      `json:"tier"`
	Prices   map[Cycle]decimal.Decimal `json:"prices"`
	Features []string                  `json:"features"`
	Limits   Limits                    `json:"limits"`
}

type plansFile struct {
	Plans []PlanSpec `json:"plans"`
}

// Catalog is the injected tier/cycle pricing and feature configuration.
// It is immutable after construction; lifecycle code reads it, never
// mutates it.
type Catalog struct {
	plans map[Tier]PlanSpec
}

// NewCatalog builds a catalog from explicit plan specs. Unknown tiers and
// unknown cycles in the price map are rejected so a typo in configuration
// surfaces at startup rather than at billing time.
func NewCatalog(specs []PlanSpec) (*Catalog, error) {
	plans := make(map[Tier]PlanSpec, len(specs))
	for _, spec := range specs {
		if !spec.Tier.Valid() {
			return nil, fmt.Errorf("invalid tier %q in plan catalog", spec.Tier)
		}
		for cycle := range spec.Prices {
			if !cycle.Valid() {
				return nil, fmt.Errorf("invalid billing cycle %q for tier %q in plan catalog", cycle, spec.Tier)
			}
		}
		if _, dup := plans[spec.Tier]; dup {
			return nil, fmt.Errorf("duplicate tier %q in plan catalog", spec.Tier)
		}
		plans[spec.Tier] = spec
	}
	return &Catalog{plans: plans}, nil
}

// LoadCatalog reads the plan catalog from a JSON file.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read plan catalog: %w", err)
	}

	var file plansFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse plan catalog: %w", err)
	}
	return NewCatalog(file.Plans)
}

// BasePrice returns the configured pre-discount price for a tier and cycle.
func (c *Catalog) BasePrice(tier Tier, cycle Cycle) (decimal.Decimal, error) {
	spec, ok := c.plans[tier]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: tier=%s cycle=%s", ErrPlanNotConfigured, tier, cycle)
	}
	price, ok := spec.Prices[cycle]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: tier=%s cycle=%s", ErrPlanNotConfigured, tier, cycle)
	}
	return price, nil
}

// Features returns the default feature identifiers for a tier, in
// configuration order.
func (c *Catalog) Features(tier Tier) ([]string, error) {
	spec, ok := c.plans[tier]
	if !ok {
		return nil, fmt.Errorf("%w: tier=%s", ErrPlanNotConfigured, tier)
	}
	out := make([]string, len(spec.Features))
	copy(out, spec.Features)
	return out, nil
}

// Limits returns the plan ceilings for a tier.
func (c *Catalog) Limits(tier Tier) (Limits, error) {
	spec, ok := c.plans[tier]
	if !ok {
		return Limits{}, fmt.Errorf("%w: tier=%s", ErrPlanNotConfigured, tier)
	}
	return spec.Limits, nil
}

// Tiers returns the tiers present in the catalog, in canonical order.
func (c *Catalog) Tiers() []Tier {
	out := make([]Tier, 0, len(c.plans))
	for _, t := range AllTiers {
		if _, ok := c.plans[t]; ok {
			out = append(out, t)
		}
	}
	return out
}
