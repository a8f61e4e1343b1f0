package core

import (
	"fmt"
)

// DataIntegrityError reports a structural violation of the data model
// invariants: non-positive yields, products with no compatible resource,
// or references to undeclared periods. It is distinct from an ordinary
// supply/demand shortfall, which is a feasibility result, not an error.
type DataIntegrityError struct {
	Reason string
}

func (e *DataIntegrityError) Error() string {
	return fmt.Sprintf("data integrity violation: %s", e.Reason)
}

// Validate re-checks the domain-specific invariants that a generic loader
// cannot know about. Type conformance, non-negativity and referential
// integrity of the raw tables are the loading collaborator's job.
func (d *PlanningData) Validate() error {
	if len(d.Products) == 0 {
		return &DataIntegrityError{Reason: "no product types declared"}
	}
	if len(d.Resources) == 0 {
		return &DataIntegrityError{Reason: "no resource types declared"}
	}
	if len(d.Periods) == 0 {
		return &DataIntegrityError{Reason: "no periods declared"}
	}

	for _, p := range d.Products {
		if p.Yield <= 0 {
			return &DataIntegrityError{
				Reason: fmt.Sprintf("product %q has non-positive yield %g", p.ID, p.Yield),
			}
		}
		if len(d.CompatibleResources(p.ID)) == 0 {
			return &DataIntegrityError{
				Reason: fmt.Sprintf("product %q has no compatible resource types", p.ID),
			}
		}
	}

	declared := make(map[string]bool, len(d.Periods))
	for _, w := range d.Periods {
		declared[w.ID] = true
	}
	for k := range d.Demand {
		if !declared[k.Period] {
			return &DataIntegrityError{
				Reason: fmt.Sprintf("demand references undeclared period %q", k.Period),
			}
		}
	}
	for k := range d.Supply {
		if !declared[k.Period] {
			return &DataIntegrityError{
				Reason: fmt.Sprintf("supply references undeclared period %q", k.Period),
			}
		}
	}
	return nil
}
