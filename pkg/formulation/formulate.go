package formulation

import (
	"fmt"

	"github.com/bakeops/production-plan-optimizer/pkg/core"
)

// Formulate builds the integer program for the dataset under the given
// objective mode. The input is never mutated.
func Formulate(data *core.PlanningData, mode ObjectiveMode, opts Options) (*Model, error) {
	m := &Model{
		Mode:     mode,
		Maximize: mode == MaximizeOutput,
		index:    make(map[tripleKey]int),
	}

	periods := data.SortedPeriods()
	if err := createVariables(data, periods, m); err != nil {
		return nil, err
	}
	if err := buildObjective(data, m); err != nil {
		return nil, err
	}
	addDemandConstraints(data, periods, m, opts)
	addCumulativeSupplyConstraints(data, periods, m)
	return m, nil
}

// createVariables creates one integer variable per allowed
// (product, resource, period) triple. Disallowed pairs get no variable.
func createVariables(data *core.PlanningData, periods []core.Period, m *Model) error {
	for _, p := range data.Products {
		for _, r := range data.Resources {
			if !data.IsAllowed(p.ID, r.ID) {
				continue
			}
			// Finite domain bound: no assignment can exceed the
			// resource's whole-horizon supply.
			ub := int64(data.ResourceTotalSupply(r.ID))
			for _, w := range periods {
				m.index[tripleKey{p.ID, r.ID, w.ID}] = len(m.Variables)
				m.Variables = append(m.Variables, Variable{
					Product:    p.ID,
					Resource:   r.ID,
					Period:     w.ID,
					UpperBound: ub,
				})
			}
		}
	}
	if len(m.Variables) == 0 {
		return &ModelBuildError{Reason: "compatibility matrix admits no (product, resource) pairs"}
	}
	return nil
}

func buildObjective(data *core.PlanningData, m *Model) error {
	for i, v := range m.Variables {
		product, _ := data.Product(v.Product)
		switch m.Mode {
		case MinimizeCost:
			cost, ok := data.Cost[core.PairKey{Product: v.Product, Resource: v.Resource}]
			if !ok {
				return &ModelBuildError{
					Reason: fmt.Sprintf("no cost defined for compatible pair (%s, %s)", v.Product, v.Resource),
				}
			}
			m.Objective = append(m.Objective, Term{Var: i, Coef: cost * product.Yield})
		case MaximizeOutput:
			m.Objective = append(m.Objective, Term{Var: i, Coef: product.Yield})
		}
	}
	return nil
}

// addDemandConstraints emits one row per (product, period) with recorded
// demand: the assigned quantity over all compatible resources must equal
// the demand under cost minimization or when limited to demand, and must
// at least cover it under unconstrained output maximization, where the
// objective already rewards extra production.
func addDemandConstraints(data *core.PlanningData, periods []core.Period, m *Model, opts Options) {
	sense := GreaterOrEqual
	if m.Mode == MinimizeCost || opts.LimitToDemand {
		sense = Equal
	}
	for _, p := range data.Products {
		for _, w := range periods {
			demand, ok := data.Demand[core.DemandKey{Product: p.ID, Period: w.ID}]
			if !ok {
				continue
			}
			var terms []Term
			for _, r := range data.Resources {
				if i, exists := m.VarIndex(p.ID, r.ID, w.ID); exists {
					terms = append(terms, Term{Var: i, Coef: 1})
				}
			}
			m.Constraints = append(m.Constraints, Constraint{
				Name:  fmt.Sprintf("demand_%s_%s", p.ID, w.ID),
				Terms: terms,
				Sense: sense,
				RHS:   float64(demand),
			})
		}
	}
}

// addCumulativeSupplyConstraints emits, per (resource, period), a
// running-sum row: total quantity assigned to the resource through that
// period must not exceed its cumulative supply. Unused early capacity
// banks forward. The rows are built with one accumulator pass per resource
// over the sorted periods, appending each period's variables to a growing
// term list.
func addCumulativeSupplyConstraints(data *core.PlanningData, periods []core.Period, m *Model) {
	for _, r := range data.Resources {
		cumSupply := 0
		var running []Term
		for _, w := range periods {
			cumSupply += data.SupplyAt(r.ID, w.ID)
			for _, p := range data.Products {
				if i, exists := m.VarIndex(p.ID, r.ID, w.ID); exists {
					running = append(running, Term{Var: i, Coef: 1})
				}
			}
			if len(running) == 0 {
				continue
			}
			terms := make([]Term, len(running))
			copy(terms, running)
			m.Constraints = append(m.Constraints, Constraint{
				Name:  fmt.Sprintf("supply_%s_%s", r.ID, w.ID),
				Terms: terms,
				Sense: LessOrEqual,
				RHS:   float64(cumSupply),
			})
		}
	}
}
