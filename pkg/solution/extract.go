// Package solution maps a raw solver result back into domain terms:
// assigned quantities per (product, resource, period), realized output
// and cost, resource utilization, and demand satisfaction. The resulting
// Solution is a plain data structure with no behavior, safe for a
// presentation layer to serialize or render.
package solution

import (
	"fmt"
	"time"

	"github.com/bakeops/production-plan-optimizer/pkg/core"
	"github.com/bakeops/production-plan-optimizer/pkg/formulation"
	"github.com/bakeops/production-plan-optimizer/pkg/solver"
)

// NoSolutionError reports an extraction attempt on a raw result whose
// status carries no solution.
type NoSolutionError struct {
	Status solver.Status
}

func (e *NoSolutionError) Error() string {
	return fmt.Sprintf("no solution to extract: solve status is %s", e.Status)
}

// Allocation is one non-zero assignment in the solved plan.
type Allocation struct {
	Product  string
	Resource string
	Period   string

	// Quantity is the number of resource units assigned.
	Quantity int64
	// Output is Quantity converted to produced units via the product's
	// yield.
	Output float64
	// Cost is the realized cost of this allocation; zero when no cost is
	// defined for the pair, which is legitimate under output
	// maximization.
	Cost float64
}

// DemandOutcome records, per (product, period) with demand, whether the
// plan met it exactly and by how much it overproduced. Overproduction is
// only reachable when output maximization ran without the limit-to-demand
// option.
type DemandOutcome struct {
	Product string
	Period  string

	Demand         int
	Assigned       int64
	Exact          bool
	Overproduction int64
}

// Solution is the normalized, domain-term solve outcome.
type Solution struct {
	Mode           formulation.ObjectiveMode
	Status         solver.Status
	ObjectiveValue float64
	SolveTime      time.Duration

	Allocations []Allocation

	TotalCost   float64
	TotalOutput float64
	// AvgCostPerUnit is TotalCost / TotalOutput, zero when nothing was
	// produced.
	AvgCostPerUnit float64

	// Utilization maps each resource to used units over its cumulative
	// supply through the final period, as a fraction in [0, 1].
	Utilization map[string]float64

	Demands []DemandOutcome
}

// Extract maps the raw result onto the dataset and model it was produced
// from. It fails with a NoSolutionError for INFEASIBLE, UNBOUNDED or ERROR
// statuses: those are outcomes the caller must branch on before asking for
// a solution.
func Extract(data *core.PlanningData, model *formulation.Model, raw *solver.RawResult) (*Solution, error) {
	if !raw.Status.HasSolution() {
		return nil, &NoSolutionError{Status: raw.Status}
	}

	sol := &Solution{
		Mode:           model.Mode,
		Status:         raw.Status,
		ObjectiveValue: raw.ObjectiveValue,
		SolveTime:      raw.SolveTime,
		Utilization:    make(map[string]float64, len(data.Resources)),
	}

	used := make(map[string]int64, len(data.Resources))
	assigned := make(map[core.DemandKey]int64)

	for i, v := range model.Variables {
		qty := raw.Values[i]
		if qty == 0 {
			continue
		}
		product, _ := data.Product(v.Product)
		output := float64(qty) * product.Yield
		cost := 0.0
		if c, ok := data.Cost[core.PairKey{Product: v.Product, Resource: v.Resource}]; ok {
			cost = output * c
		}
		sol.Allocations = append(sol.Allocations, Allocation{
			Product:  v.Product,
			Resource: v.Resource,
			Period:   v.Period,
			Quantity: qty,
			Output:   output,
			Cost:     cost,
		})
		sol.TotalOutput += output
		sol.TotalCost += cost
		used[v.Resource] += qty
		assigned[core.DemandKey{Product: v.Product, Period: v.Period}] += qty
	}
	if sol.TotalOutput > 0 {
		sol.AvgCostPerUnit = sol.TotalCost / sol.TotalOutput
	}

	for _, r := range data.Resources {
		total := data.ResourceTotalSupply(r.ID)
		if total > 0 {
			sol.Utilization[r.ID] = float64(used[r.ID]) / float64(total)
		} else {
			sol.Utilization[r.ID] = 0
		}
	}

	for _, p := range data.Products {
		for _, w := range data.SortedPeriods() {
			demand, ok := data.Demand[core.DemandKey{Product: p.ID, Period: w.ID}]
			if !ok {
				continue
			}
			got := assigned[core.DemandKey{Product: p.ID, Period: w.ID}]
			outcome := DemandOutcome{
				Product:  p.ID,
				Period:   w.ID,
				Demand:   demand,
				Assigned: got,
				Exact:    got == int64(demand),
			}
			if got > int64(demand) {
				outcome.Overproduction = got - int64(demand)
			}
			sol.Demands = append(sol.Demands, outcome)
		}
	}
	return sol, nil
}
