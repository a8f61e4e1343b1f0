package core

import (
	"sort"
)

// ProductType describes one producible product. Yield is the number of
// output units obtained from one resource unit and must be strictly
// positive.
type ProductType struct {
	ID    string
	Yield float64
}

// ResourceType describes one kind of production capacity.
type ResourceType struct {
	ID string
}

// Period is a discrete planning time unit. Seq defines the total order of
// periods; resource availability accumulates along it.
type Period struct {
	ID  string
	Seq int
}

// DemandKey addresses the demand table.
type DemandKey struct {
	Product string
	Period  string
}

// SupplyKey addresses the supply table.
type SupplyKey struct {
	Resource string
	Period   string
}

// PairKey addresses per-(product,resource) tables: cost and compatibility.
type PairKey struct {
	Product  string
	Resource string
}

// PlanningData is the validated in-memory representation of one planning
// problem. All maps are sparse: a missing Demand or Supply entry reads as
// zero. Instances are read-only once loaded; mutation means constructing a
// new instance.
type PlanningData struct {
	Products  []ProductType
	Resources []ResourceType
	Periods   []Period

	// Demand maps (product, period) to required volume.
	Demand map[DemandKey]int
	// Supply maps (resource, period) to resource units newly available
	// that period. Cumulative availability is derived, never stored.
	Supply map[SupplyKey]int
	// Cost maps (product, resource) to cost per produced output unit.
	// Defined only over compatible pairs.
	Cost map[PairKey]float64
	// Allowed holds the compatibility matrix as an allowed-pair set.
	Allowed map[PairKey]bool
}

// Product returns the product with the given ID, if declared.
func (d *PlanningData) Product(id string) (ProductType, bool) {
	for _, p := range d.Products {
		if p.ID == id {
			return p, true
		}
	}
	return ProductType{}, false
}

// IsAllowed reports whether the (product, resource) pair is compatible.
func (d *PlanningData) IsAllowed(product, resource string) bool {
	return d.Allowed[PairKey{Product: product, Resource: resource}]
}

// CompatibleResources returns the IDs of all resources allowed for the
// product, in declaration order.
func (d *PlanningData) CompatibleResources(product string) []string {
	var out []string
	for _, r := range d.Resources {
		if d.IsAllowed(product, r.ID) {
			out = append(out, r.ID)
		}
	}
	return out
}

// SortedPeriods returns the declared periods sorted by their total order.
func (d *PlanningData) SortedPeriods() []Period {
	out := make([]Period, len(d.Periods))
	copy(out, d.Periods)
	sort.Slice(out, func(i, j int) bool { return out[i].Seq < out[j].Seq })
	return out
}

// DemandAt reads the demand table, treating missing entries as zero.
func (d *PlanningData) DemandAt(product, period string) int {
	return d.Demand[DemandKey{Product: product, Period: period}]
}

// SupplyAt reads the supply table, treating missing entries as zero.
func (d *PlanningData) SupplyAt(resource, period string) int {
	return d.Supply[SupplyKey{Resource: resource, Period: period}]
}

// TotalDemand sums demand over all products and periods.
func (d *PlanningData) TotalDemand() int {
	total := 0
	for _, v := range d.Demand {
		total += v
	}
	return total
}

// TotalSupply sums supply over all resources and periods.
func (d *PlanningData) TotalSupply() int {
	total := 0
	for _, v := range d.Supply {
		total += v
	}
	return total
}

// PeriodDemand sums demand over all products for one period.
func (d *PlanningData) PeriodDemand(period string) int {
	total := 0
	for k, v := range d.Demand {
		if k.Period == period {
			total += v
		}
	}
	return total
}

// PeriodSupply sums supply over all resources for one period.
func (d *PlanningData) PeriodSupply(period string) int {
	total := 0
	for k, v := range d.Supply {
		if k.Period == period {
			total += v
		}
	}
	return total
}

// ResourceTotalSupply sums supply of one resource over all periods, which
// equals its cumulative supply through the final period.
func (d *PlanningData) ResourceTotalSupply(resource string) int {
	total := 0
	for k, v := range d.Supply {
		if k.Resource == resource {
			total += v
		}
	}
	return total
}
