// Package dataset loads planning datasets from YAML files into the core
// data model. It performs the generic validation a loader owes its
// consumers — type conformance, non-negativity, referential integrity —
// while the domain-specific invariants stay with core.Validate.
package dataset

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/bakeops/production-plan-optimizer/pkg/core"
)

type productSpec struct {
	ID    string             `yaml:"id"`
	Yield float64            `yaml:"yield"`
	Cost  map[string]float64 `yaml:"cost"`
}

type fileSpec struct {
	Products  []productSpec             `yaml:"products"`
	Resources []string                  `yaml:"resources"`
	Periods   []string                  `yaml:"periods"`
	Demand    map[string]map[string]int `yaml:"demand"`
	Supply    map[string]map[string]int `yaml:"supply"`
	Allowed   map[string][]string       `yaml:"allowed"`
}

// Load reads and validates a dataset file.
func Load(path string) (*core.PlanningData, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading dataset: %w", err)
	}
	return Parse(raw)
}

// Parse builds a PlanningData from YAML dataset bytes.
func Parse(raw []byte) (*core.PlanningData, error) {
	var spec fileSpec
	if err := yaml.Unmarshal(raw, &spec); err != nil {
		return nil, fmt.Errorf("parsing dataset: %w", err)
	}

	data := &core.PlanningData{
		Demand:  make(map[core.DemandKey]int),
		Supply:  make(map[core.SupplyKey]int),
		Cost:    make(map[core.PairKey]float64),
		Allowed: make(map[core.PairKey]bool),
	}

	products := make(map[string]bool, len(spec.Products))
	for _, p := range spec.Products {
		if p.ID == "" {
			return nil, fmt.Errorf("product with empty id")
		}
		if products[p.ID] {
			return nil, fmt.Errorf("duplicate product %q", p.ID)
		}
		products[p.ID] = true
		data.Products = append(data.Products, core.ProductType{ID: p.ID, Yield: p.Yield})
	}

	resources := make(map[string]bool, len(spec.Resources))
	for _, r := range spec.Resources {
		if resources[r] {
			return nil, fmt.Errorf("duplicate resource %q", r)
		}
		resources[r] = true
		data.Resources = append(data.Resources, core.ResourceType{ID: r})
	}

	periods := make(map[string]bool, len(spec.Periods))
	for i, w := range spec.Periods {
		if periods[w] {
			return nil, fmt.Errorf("duplicate period %q", w)
		}
		periods[w] = true
		// Declaration order is the total order.
		data.Periods = append(data.Periods, core.Period{ID: w, Seq: i + 1})
	}

	for product, allowedResources := range spec.Allowed {
		if !products[product] {
			return nil, fmt.Errorf("allowed references unknown product %q", product)
		}
		for _, r := range allowedResources {
			if !resources[r] {
				return nil, fmt.Errorf("allowed pair (%s, %s) references unknown resource", product, r)
			}
			data.Allowed[core.PairKey{Product: product, Resource: r}] = true
		}
	}

	for _, p := range spec.Products {
		for r, cost := range p.Cost {
			if !resources[r] {
				return nil, fmt.Errorf("cost for product %q references unknown resource %q", p.ID, r)
			}
			if cost < 0 {
				return nil, fmt.Errorf("negative cost for pair (%s, %s)", p.ID, r)
			}
			data.Cost[core.PairKey{Product: p.ID, Resource: r}] = cost
		}
	}

	for product, byPeriod := range spec.Demand {
		if !products[product] {
			return nil, fmt.Errorf("demand references unknown product %q", product)
		}
		for w, v := range byPeriod {
			if !periods[w] {
				return nil, fmt.Errorf("demand for product %q references unknown period %q", product, w)
			}
			if v < 0 {
				return nil, fmt.Errorf("negative demand for (%s, %s)", product, w)
			}
			if v > 0 {
				data.Demand[core.DemandKey{Product: product, Period: w}] = v
			}
		}
	}

	for resource, byPeriod := range spec.Supply {
		if !resources[resource] {
			return nil, fmt.Errorf("supply references unknown resource %q", resource)
		}
		for w, v := range byPeriod {
			if !periods[w] {
				return nil, fmt.Errorf("supply for resource %q references unknown period %q", resource, w)
			}
			if v < 0 {
				return nil, fmt.Errorf("negative supply for (%s, %s)", resource, w)
			}
			if v > 0 {
				data.Supply[core.SupplyKey{Resource: resource, Period: w}] = v
			}
		}
	}

	return data, nil
}
